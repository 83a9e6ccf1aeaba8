package document

import (
	"context"
	"strings"

	"github.com/edugenhq/edugen-server/internal/domain/prompt"
)

// classifySnippetLimit caps how much document text goes into the
// classification prompt.
const classifySnippetLimit = 1000

// Classification is the résumé decision for one document. Derived once per
// request; never cached across requests.
type Classification struct {
	IsResume bool
}

// Generator is the resilient model client surface the classifier needs.
type Generator interface {
	Generate(ctx context.Context, prompt string) string
}

// Classifier asks the model whether a document is a résumé.
//
// This is a best-effort heuristic, not a guaranteed-correct classifier: the
// reply is lower-cased and scanned for the substring "yes". Anything else —
// including an empty reply or a degraded-service fallback, which never
// contains "yes" — means "not a résumé", so an uncertain classification
// fails open into the generic document path.
type Classifier struct {
	llm Generator
}

// NewClassifier creates a Classifier on top of the model client.
func NewClassifier(llm Generator) *Classifier {
	return &Classifier{llm: llm}
}

// Classify runs the classification prompt over at most the first 1000
// characters of text.
func (c *Classifier) Classify(ctx context.Context, text string) Classification {
	snippet := text
	if runes := []rune(snippet); len(runes) > classifySnippetLimit {
		snippet = string(runes[:classifySnippetLimit])
	}

	reply := c.llm.Generate(ctx, prompt.BuildClassification(snippet).Render())
	return Classification{
		IsResume: strings.Contains(strings.ToLower(reply), "yes"),
	}
}
