package scheduler

import (
	"fmt"
	"testing"
	"time"
)

func TestEngineEmitsInTriggerOrder(t *testing.T) {
	engine := NewEngine(8)
	engine.Start()
	defer engine.Stop()

	now := time.Now().UTC()
	if err := engine.Schedule(ReminderEvent{ID: "later", TriggerAt: now.Add(80 * time.Millisecond)}); err != nil {
		t.Fatalf("schedule later: %v", err)
	}
	if err := engine.Schedule(ReminderEvent{ID: "sooner", TriggerAt: now.Add(20 * time.Millisecond)}); err != nil {
		t.Fatalf("schedule sooner: %v", err)
	}

	first := waitEvent(t, engine.C(), time.Second)
	second := waitEvent(t, engine.C(), time.Second)
	if first.ID != "sooner" || second.ID != "later" {
		t.Fatalf("unexpected order: first=%s second=%s", first.ID, second.ID)
	}
}

func TestEngineNonBlockingDropsWhenConsumerIsSlow(t *testing.T) {
	engine := NewEngine(1)
	engine.Start()
	defer engine.Stop()

	now := time.Now().UTC().Add(20 * time.Millisecond)
	for i := 0; i < 25; i++ {
		if err := engine.Schedule(ReminderEvent{
			ID:        fmt.Sprintf("evt-%d", i),
			TriggerAt: now,
		}); err != nil {
			t.Fatalf("schedule event: %v", err)
		}
	}

	time.Sleep(120 * time.Millisecond)
	if engine.Dropped() == 0 {
		t.Fatalf("expected dropped events > 0, got %d", engine.Dropped())
	}
}

func TestScheduleValidatesTriggerTime(t *testing.T) {
	engine := NewEngine(1)
	if err := engine.Schedule(ReminderEvent{ID: "bad"}); err != ErrInvalidTriggerTime {
		t.Fatalf("expected ErrInvalidTriggerTime, got %v", err)
	}
}

func TestScheduleReplacesSameID(t *testing.T) {
	engine := NewEngine(4)
	now := time.Now().UTC()
	if err := engine.Schedule(ReminderEvent{ID: "r1", Title: "old", TriggerAt: now.Add(time.Hour)}); err != nil {
		t.Fatalf("schedule: %v", err)
	}
	if err := engine.Schedule(ReminderEvent{ID: "r1", Title: "new", TriggerAt: now.Add(10 * time.Millisecond)}); err != nil {
		t.Fatalf("reschedule: %v", err)
	}
	if engine.Pending() != 1 {
		t.Fatalf("expected one pending event, got %d", engine.Pending())
	}

	engine.Start()
	defer engine.Stop()
	ev := waitEvent(t, engine.C(), time.Second)
	if ev.Title != "new" {
		t.Fatalf("expected replaced event, got %+v", ev)
	}
}

func TestCancelRemovesPendingEvent(t *testing.T) {
	engine := NewEngine(1)
	_ = engine.Schedule(ReminderEvent{ID: "a", TriggerAt: time.Now().Add(time.Hour)})
	if !engine.Cancel("a") {
		t.Fatal("expected cancel to find the event")
	}
	if engine.Cancel("a") || engine.Pending() != 0 {
		t.Fatal("expected event removed")
	}
}

func TestScheduleAfterStopFails(t *testing.T) {
	engine := NewEngine(1)
	engine.Start()
	engine.Stop()
	if err := engine.Schedule(ReminderEvent{ID: "late", TriggerAt: time.Now()}); err != ErrEngineStopped {
		t.Fatalf("expected ErrEngineStopped, got %v", err)
	}
}

func waitEvent(t *testing.T, ch <-chan ReminderEvent, timeout time.Duration) ReminderEvent {
	t.Helper()
	select {
	case ev := <-ch:
		return ev
	case <-time.After(timeout):
		t.Fatalf("timed out waiting for event")
		return ReminderEvent{}
	}
}
