// Package prompt owns every prompt template and the routing table that picks
// one for a request. It is pure: no I/O, no model calls.
package prompt

import (
	"fmt"
	"strings"
)

// Template identifies a prompt template.
type Template string

const (
	TemplateGeneralChat    Template = "general_chat"
	TemplateResumeAnalysis Template = "resume_analysis"
	TemplateDocumentQA     Template = "document_qa"
	TemplateTalkModeBrief  Template = "talk_mode_brief"
	TemplateQuizGeneration Template = "quiz_generation"
	TemplateClassification Template = "classification"
)

// Variable names used in Plan.Variables.
const (
	VarMessage      = "message"
	VarDocumentText = "documentText"
	VarUserQuestion = "userQuestion"
	VarTopic        = "topic"
	VarCount        = "count"
	VarLocalTime    = "localTime"
	VarSnippet      = "snippet"
)

// DefaultDocumentQuestion is used when a non-résumé document arrives without
// a question. Callers must never pass an empty question downstream.
const DefaultDocumentQuestion = "Summarize this document."

// Plan is a chosen template plus its variables. Immutable once built;
// consumed exactly once by the model client.
type Plan struct {
	Template  Template
	Variables map[string]string
}

const generalChatPersona = `You are EduGen AI, a helpful and knowledgeable assistant.
Your goal is to provide concise, informative answers (2-4 sentences).
Use markdown for emphasis (e.g., **bolding**).
When providing links, YOU MUST use Markdown format: [Link Text](URL).
Your tone should be helpful and encouraging.`

const resumeAnalysisInstructions = `You are an expert ATS (Applicant Tracking System) and professional career coach. A user has uploaded their resume for analysis. Provide a comprehensive and professional review.

Follow this structure strictly:
1.  **📊 ATS Compatibility Score:** Give a score out of 100. Justify it briefly based on clarity, keyword optimization, and standard formatting.
2.  **👍 Strengths:** Identify 2-3 of the strongest aspects of the resume (e.g., quantifiable achievements, strong action verbs, clear structure).
3.  **💡 Areas for Improvement:** Provide 2-3 specific, actionable suggestions for improvement. Be constructive.
4.  **💬 Summary:** Briefly summarize the candidate's professional profile based on the resume.`

const documentQATemplate = `You are an intelligent assistant, EduGen AI. A user has uploaded a document and asked a question about it.
Your task is to answer the user's question accurately based *only* on the provided document text.
If the answer cannot be found in the text, clearly state that the information is not in the provided document.

--- DOCUMENT CONTEXT ---
{document_text}
--- END CONTEXT ---

**User's Question:** {user_question}`

const talkModeBriefPersona = `You are EduGen AI in talk mode. The user is speaking with you out loud.
Reply in 1-2 short, natural, conversational sentences — no markdown, no lists, no links.
If the user asks about the current date or time, use this: %s.`

const classificationInstruction = "Is the following text a resume or CV? Answer with only 'yes' or 'no'."

const quizInstructionTemplate = `Generate exactly %d multiple choice quiz questions on the topic "%s".

Follow these strict rules:
1. Each question must have: "text", "options" (an array of 4 strings), and "correctAnswer" (the full string of the correct option).
2. Return ONLY a valid JSON array. Do not include any introductory text, explanations, or markdown fences like ` + "```json" + `.

Example:
[
  {"text": "What is the capital of France?", "options": ["A) London", "B) Paris", "C) Berlin", "D) Madrid"], "correctAnswer": "B) Paris"}
]

Now generate the quiz.`

const quizPersona = "You are a quiz generator. Generate engaging quiz questions using subject-relevant emojis in the question text."

// Render builds the final prompt text for the plan.
func (p Plan) Render() string {
	v := p.Variables
	switch p.Template {
	case TemplateGeneralChat:
		return generalChatPersona + "\n\nUser's question: " + v[VarMessage]

	case TemplateTalkModeBrief:
		persona := fmt.Sprintf(talkModeBriefPersona, v[VarLocalTime])
		return persona + "\n\nUser said: " + v[VarMessage]

	case TemplateResumeAnalysis:
		return resumeAnalysisInstructions + "\n\n--- RESUME CONTENT ---\n" + v[VarDocumentText]

	case TemplateDocumentQA:
		r := strings.NewReplacer(
			"{document_text}", v[VarDocumentText],
			"{user_question}", v[VarUserQuestion],
		)
		return r.Replace(documentQATemplate)

	case TemplateQuizGeneration:
		instruction := fmt.Sprintf(quizInstructionTemplate, mustAtoi(v[VarCount]), v[VarTopic])
		return quizPersona + " " + instruction

	case TemplateClassification:
		return classificationInstruction + "\n\n" + v[VarSnippet]
	}
	return ""
}

// mustAtoi converts the count variable; plans are built by this package, so
// the value is always numeric.
func mustAtoi(s string) int {
	var n int
	fmt.Sscanf(s, "%d", &n) //nolint:errcheck
	return n
}
