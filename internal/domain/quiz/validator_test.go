package quiz

import (
	"errors"
	"testing"
)

func kindOf(t *testing.T, err error) *ValidationError {
	t.Helper()
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected *ValidationError, got %T: %v", err, err)
	}
	return ve
}

const validBatch = `[
	{"text":"Q1","options":["A","B","C","D"],"correctAnswer":"A"},
	{"text":"Q2","options":["A","B","C","D"],"correctAnswer":"C"},
	{"text":"Q3","options":["A","B","C","D"],"correctAnswer":"D"}
]`

func TestValidate_WellFormedBatch(t *testing.T) {
	t.Parallel()

	questions, err := Validate(validBatch, 3)
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if len(questions) != 3 {
		t.Fatalf("got %d questions; want 3", len(questions))
	}
	if questions[1].CorrectAnswer != "C" {
		t.Errorf("questions[1].CorrectAnswer = %q; want C", questions[1].CorrectAnswer)
	}
}

func TestValidate_StripsJSONCodeFence(t *testing.T) {
	t.Parallel()

	fenced := "```json\n" + validBatch + "\n```"
	questions, err := Validate(fenced, 3)
	if err != nil {
		t.Fatalf("Validate failed on fenced input: %v", err)
	}
	if len(questions) != 3 {
		t.Errorf("got %d questions; want 3", len(questions))
	}
}

func TestValidate_StripsBareCodeFence(t *testing.T) {
	t.Parallel()

	fenced := "```\n" + validBatch + "\n```"
	if _, err := Validate(fenced, 3); err != nil {
		t.Fatalf("Validate failed on bare-fenced input: %v", err)
	}
}

func TestValidate_MalformedJSON(t *testing.T) {
	t.Parallel()

	_, err := Validate("this is not json at all", 3)
	if ve := kindOf(t, err); ve.Kind != FailureMalformedJSON {
		t.Errorf("Kind = %q; want malformed_json", ve.Kind)
	}
}

func TestValidate_NotAnArray(t *testing.T) {
	t.Parallel()

	_, err := Validate(`{"questions": []}`, 3)
	if ve := kindOf(t, err); ve.Kind != FailureNotAnArray {
		t.Errorf("Kind = %q; want not_an_array", ve.Kind)
	}
}

func TestValidate_ThreeOptions_InvalidQuestion(t *testing.T) {
	t.Parallel()

	_, err := Validate(`[{"text":"Q1","options":["A","B","C"],"correctAnswer":"A"}]`, 1)
	ve := kindOf(t, err)
	if ve.Kind != FailureInvalidQuestion {
		t.Fatalf("Kind = %q; want invalid_question", ve.Kind)
	}
	if ve.Index != 1 {
		t.Errorf("Index = %d; want 1", ve.Index)
	}
}

func TestValidate_AnswerNotAmongOptions_NoFuzzyMatching(t *testing.T) {
	t.Parallel()

	// "b" is textually close to "B" but must not match (case-sensitive).
	_, err := Validate(`[{"text":"Q1","options":["A","B","C","D"],"correctAnswer":"b"}]`, 1)
	if ve := kindOf(t, err); ve.Kind != FailureInvalidQuestion {
		t.Errorf("Kind = %q; want invalid_question", ve.Kind)
	}
}

func TestValidate_AnswerMatchesAfterTrim(t *testing.T) {
	t.Parallel()

	questions, err := Validate(`[
		{"text":"  Q1  ","options":[" A ","B","C","D"],"correctAnswer":"A  "},
		{"text":"Q2","options":["A","B","C","D"],"correctAnswer":"B"},
		{"text":"Q3","options":["A","B","C","D"],"correctAnswer":"C"}
	]`, 3)
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if questions[0].Text != "Q1" {
		t.Errorf("Text = %q; want trimmed Q1", questions[0].Text)
	}
	if questions[0].Options[0] != "A" {
		t.Errorf("Options[0] = %q; want trimmed A", questions[0].Options[0])
	}
	if questions[0].CorrectAnswer != "A" {
		t.Errorf("CorrectAnswer = %q; want trimmed A", questions[0].CorrectAnswer)
	}
}

func TestValidate_EmptyText_InvalidQuestion(t *testing.T) {
	t.Parallel()

	_, err := Validate(`[{"text":"   ","options":["A","B","C","D"],"correctAnswer":"A"}]`, 1)
	if ve := kindOf(t, err); ve.Kind != FailureInvalidQuestion {
		t.Errorf("Kind = %q; want invalid_question", ve.Kind)
	}
}

func TestValidate_NonStringOption_InvalidQuestion(t *testing.T) {
	t.Parallel()

	_, err := Validate(`[{"text":"Q1","options":["A","B","C",4],"correctAnswer":"A"}]`, 1)
	if ve := kindOf(t, err); ve.Kind != FailureInvalidQuestion {
		t.Errorf("Kind = %q; want invalid_question", ve.Kind)
	}
}

func TestValidate_SecondQuestionInvalid_ReportsIndex2(t *testing.T) {
	t.Parallel()

	_, err := Validate(`[
		{"text":"Q1","options":["A","B","C","D"],"correctAnswer":"A"},
		{"text":"Q2","options":["A","B","C","D"],"correctAnswer":"Z"}
	]`, 2)
	ve := kindOf(t, err)
	if ve.Kind != FailureInvalidQuestion {
		t.Fatalf("Kind = %q; want invalid_question", ve.Kind)
	}
	if ve.Index != 2 {
		t.Errorf("Index = %d; want 2 (1-based)", ve.Index)
	}
}

func TestValidate_CountMismatch(t *testing.T) {
	t.Parallel()

	_, err := Validate(validBatch, 5)
	ve := kindOf(t, err)
	if ve.Kind != FailureCountMismatch {
		t.Fatalf("Kind = %q; want count_mismatch", ve.Kind)
	}
	if ve.Expected != 5 || ve.Actual != 3 {
		t.Errorf("Expected/Actual = %d/%d; want 5/3", ve.Expected, ve.Actual)
	}
}

func TestValidate_AllOrNothing(t *testing.T) {
	t.Parallel()

	// One bad question in a batch of two: no partial results.
	questions, err := Validate(`[
		{"text":"Q1","options":["A","B","C","D"],"correctAnswer":"A"},
		{"text":"Q2","options":["A","B"],"correctAnswer":"A"}
	]`, 2)
	if err == nil {
		t.Fatal("expected validation error, got nil")
	}
	if questions != nil {
		t.Errorf("got partial results %v; want nil", questions)
	}
}

func TestStripCodeFences(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   string
		want string
	}{
		{"no fence", `[1]`, `[1]`},
		{"json fence", "```json\n[1]\n```", `[1]`},
		{"bare fence", "```\n[1]\n```", `[1]`},
		{"whitespace around fence", "  ```json\n[1]\n```  ", `[1]`},
		{"single line fence", "```json[1]```", `[1]`},
	}
	for _, tc := range cases {
		if got := stripCodeFences(tc.in); got != tc.want {
			t.Errorf("%s: stripCodeFences(%q) = %q; want %q", tc.name, tc.in, got, tc.want)
		}
	}
}
