// Package audit records request usage events into the append-only usage log.
// Events are ops-facing only: they carry outcome and timing, never message or
// document content.
package audit

import "time"

// TopicUsage is the event-bus topic the pipeline publishes UsageEvent to.
const TopicUsage = "usage.recorded"

// Action identifies the request kind being recorded.
type Action string

const (
	ActionChat Action = "chat"
	ActionQuiz Action = "quiz"
)

// Outcome represents how a request ended.
type Outcome string

const (
	// OutcomeSuccess: the model replied normally.
	OutcomeSuccess Outcome = "success"
	// OutcomeDegraded: the caller got a fixed fallback reply instead of model
	// output (upstream error or saturation).
	OutcomeDegraded Outcome = "degraded"
	// OutcomeError: the request failed with an error surfaced to the caller.
	OutcomeError Outcome = "error"
)

// UsageEvent is a single usage-log entry. Append-only; never modified.
type UsageEvent struct {
	ID        string
	Action    Action
	Template  string // prompt template used, empty if the request failed earlier
	Outcome   Outcome
	Duration  time.Duration
	CreatedAt time.Time
}
