package audit

import (
	"context"
	"testing"
	"time"

	"github.com/edugenhq/edugen-server/internal/infra/eventbus"
	"github.com/edugenhq/edugen-server/internal/infra/sqlite"
)

func mustOpenDB(t *testing.T) *Recorder {
	t.Helper()
	db, err := sqlite.NewDB(":memory:")
	if err != nil {
		t.Fatalf("NewDB failed: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := sqlite.MigrateUp(db); err != nil {
		t.Fatalf("MigrateUp failed: %v", err)
	}
	return NewRecorder(db)
}

func TestRecorder_Record_FillsDefaultsAndPersists(t *testing.T) {
	t.Parallel()

	rec := mustOpenDB(t)
	ev := &UsageEvent{
		Action:   ActionChat,
		Template: "general_chat",
		Outcome:  OutcomeSuccess,
		Duration: 120 * time.Millisecond,
	}
	if err := rec.Record(context.Background(), ev); err != nil {
		t.Fatalf("Record failed: %v", err)
	}
	if ev.ID == "" {
		t.Error("Record did not assign an ID")
	}
	if ev.CreatedAt.IsZero() {
		t.Error("Record did not assign CreatedAt")
	}

	count, err := rec.CountByAction(context.Background(), ActionChat)
	if err != nil {
		t.Fatalf("CountByAction failed: %v", err)
	}
	if count != 1 {
		t.Errorf("chat events = %d; want 1", count)
	}
}

func TestRecorder_CountByAction_SeparatesActions(t *testing.T) {
	t.Parallel()

	rec := mustOpenDB(t)
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		if err := rec.Record(ctx, &UsageEvent{Action: ActionQuiz, Outcome: OutcomeSuccess}); err != nil {
			t.Fatalf("Record failed: %v", err)
		}
	}

	quiz, err := rec.CountByAction(ctx, ActionQuiz)
	if err != nil {
		t.Fatalf("CountByAction failed: %v", err)
	}
	if quiz != 3 {
		t.Errorf("quiz events = %d; want 3", quiz)
	}

	chat, err := rec.CountByAction(ctx, ActionChat)
	if err != nil {
		t.Fatalf("CountByAction failed: %v", err)
	}
	if chat != 0 {
		t.Errorf("chat events = %d; want 0", chat)
	}
}

func TestRecorder_Start_ConsumesBusEvents(t *testing.T) {
	t.Parallel()

	rec := mustOpenDB(t)
	bus := eventbus.New()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go rec.Start(ctx, bus)

	// Give the consumer a moment to subscribe before publishing.
	time.Sleep(20 * time.Millisecond)
	bus.Publish(TopicUsage, &UsageEvent{Action: ActionChat, Outcome: OutcomeDegraded})

	deadline := time.After(2 * time.Second)
	for {
		count, err := rec.CountByAction(context.Background(), ActionChat)
		if err != nil {
			t.Fatalf("CountByAction failed: %v", err)
		}
		if count == 1 {
			return
		}
		select {
		case <-deadline:
			t.Fatalf("event not recorded; count = %d", count)
		case <-time.After(10 * time.Millisecond):
		}
	}
}

func TestRecorder_Start_IgnoresUnexpectedPayloads(t *testing.T) {
	t.Parallel()

	rec := mustOpenDB(t)
	bus := eventbus.New()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go rec.Start(ctx, bus)
	time.Sleep(20 * time.Millisecond)

	bus.Publish(TopicUsage, "not a usage event")
	bus.Publish(TopicUsage, &UsageEvent{Action: ActionQuiz, Outcome: OutcomeSuccess})

	deadline := time.After(2 * time.Second)
	for {
		count, err := rec.CountByAction(context.Background(), ActionQuiz)
		if err != nil {
			t.Fatalf("CountByAction failed: %v", err)
		}
		if count == 1 {
			return
		}
		select {
		case <-deadline:
			t.Fatal("valid event after bad payload was not recorded")
		case <-time.After(10 * time.Millisecond):
		}
	}
}
