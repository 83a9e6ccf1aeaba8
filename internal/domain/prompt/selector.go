package prompt

import (
	"strconv"
	"strings"
	"time"
)

// Input is everything the routing table needs to pick a template.
type Input struct {
	Message      string
	DocumentText string
	HasDocument  bool
	IsResume     bool // only meaningful when HasDocument
	TalkMode     bool
	Timezone     string    // IANA name; invalid or empty falls back to UTC
	Now          time.Time // zero means time.Now()
}

// route is one row of the routing table. Nil fields are wildcards;
// the first matching row wins.
type route struct {
	hasDocument *bool
	isResume    *bool
	hasQuestion *bool
	talkMode    *bool
	template    Template
}

// The routing table. Order matters: rows are tried top to bottom.
var routes = []route{
	{hasDocument: b(false), talkMode: b(true), template: TemplateTalkModeBrief},
	{hasDocument: b(false), template: TemplateGeneralChat},
	{hasDocument: b(true), isResume: b(true), hasQuestion: b(false), template: TemplateResumeAnalysis},
	{hasDocument: b(true), isResume: b(true), hasQuestion: b(true), template: TemplateDocumentQA},
	{hasDocument: b(true), isResume: b(false), template: TemplateDocumentQA},
}

func b(v bool) *bool { return &v }

func (r route) matches(hasDocument, isResume, hasQuestion, talkMode bool) bool {
	if r.hasDocument != nil && *r.hasDocument != hasDocument {
		return false
	}
	if r.isResume != nil && *r.isResume != isResume {
		return false
	}
	if r.hasQuestion != nil && *r.hasQuestion != hasQuestion {
		return false
	}
	if r.talkMode != nil && *r.talkMode != talkMode {
		return false
	}
	return true
}

// Select picks a template via the routing table and assembles its variables.
func Select(in Input) Plan {
	message := strings.TrimSpace(in.Message)
	hasQuestion := message != ""

	var tmpl Template
	for _, r := range routes {
		if r.matches(in.HasDocument, in.IsResume, hasQuestion, in.TalkMode) {
			tmpl = r.template
			break
		}
	}

	vars := map[string]string{}
	switch tmpl {
	case TemplateGeneralChat:
		vars[VarMessage] = message

	case TemplateTalkModeBrief:
		vars[VarMessage] = message
		vars[VarLocalTime] = localTime(in)

	case TemplateResumeAnalysis:
		vars[VarDocumentText] = in.DocumentText

	case TemplateDocumentQA:
		vars[VarDocumentText] = in.DocumentText
		question := message
		if question == "" {
			question = DefaultDocumentQuestion
		}
		vars[VarUserQuestion] = question
	}

	return Plan{Template: tmpl, Variables: vars}
}

// BuildQuiz builds a quiz-generation plan. Topic and count must already be
// validated by the caller.
func BuildQuiz(topic string, count int) Plan {
	return Plan{
		Template: TemplateQuizGeneration,
		Variables: map[string]string{
			VarTopic: strings.TrimSpace(topic),
			VarCount: strconv.Itoa(count),
		},
	}
}

// BuildClassification builds a résumé-classification plan for a document
// snippet.
func BuildClassification(snippet string) Plan {
	return Plan{
		Template:  TemplateClassification,
		Variables: map[string]string{VarSnippet: snippet},
	}
}

// localTime renders the current date/time in the request's timezone,
// falling back to UTC when the zone is missing or unknown.
func localTime(in Input) string {
	now := in.Now
	if now.IsZero() {
		now = time.Now()
	}
	loc := time.UTC
	if in.Timezone != "" {
		if parsed, err := time.LoadLocation(in.Timezone); err == nil {
			loc = parsed
		}
	}
	return now.In(loc).Format("Monday, January 2, 2006 at 3:04 PM MST")
}
