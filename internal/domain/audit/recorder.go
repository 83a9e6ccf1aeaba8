package audit

import (
	"context"
	"database/sql"
	"time"

	"github.com/edugenhq/edugen-server/internal/infra/eventbus"
	"github.com/edugenhq/edugen-server/internal/observability"
	"github.com/edugenhq/edugen-server/pkg/uuid"
)

// Recorder persists usage events. All writes are append-only.
type Recorder struct {
	db *sql.DB
}

// NewRecorder creates a Recorder on top of db (schema from the sqlite
// migrations).
func NewRecorder(db *sql.DB) *Recorder {
	return &Recorder{db: db}
}

// Record inserts a single usage event. Missing ID and CreatedAt are filled in.
func (r *Recorder) Record(ctx context.Context, ev *UsageEvent) error {
	if ev.ID == "" {
		ev.ID = uuid.NewV7().String()
	}
	if ev.CreatedAt.IsZero() {
		ev.CreatedAt = time.Now().UTC()
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO usage_events (id, action, template, outcome, duration_ms, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		ev.ID,
		string(ev.Action),
		ev.Template,
		string(ev.Outcome),
		ev.Duration.Milliseconds(),
		ev.CreatedAt.Format(time.RFC3339),
	)
	return err
}

// CountByAction returns the number of recorded events for an action.
func (r *Recorder) CountByAction(ctx context.Context, action Action) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM usage_events WHERE action = ?", string(action),
	).Scan(&count)
	return count, err
}

// Start consumes TopicUsage events from bus and persists them until ctx is
// done. Run it on its own goroutine; publishing stays off the request path.
func (r *Recorder) Start(ctx context.Context, bus eventbus.EventBus) {
	log := observability.WithFields("component", "audit.recorder")
	events := bus.Subscribe(TopicUsage)

	for {
		select {
		case <-ctx.Done():
			return
		case evt := <-events:
			ev, ok := evt.Payload.(*UsageEvent)
			if !ok {
				log.Warn("dropping usage event with unexpected payload type")
				continue
			}
			if err := r.Record(ctx, ev); err != nil {
				log.Error("failed to record usage event", "error", err)
			}
		}
	}
}
