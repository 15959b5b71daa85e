package model

import (
	"errors"
	"testing"
	"time"
)

func TestTodoValidateSuccess(t *testing.T) {
	now := time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)
	todo := Todo{
		ID:        "todo-1",
		Title:     "Water the plants",
		Priority:  PriorityHigh,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := todo.Validate(); err != nil {
		t.Fatalf("expected valid todo, got error: %v", err)
	}
}

func TestTodoValidateArchivedRequiresCompleted(t *testing.T) {
	now := time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)
	todo := Todo{
		ID:        "todo-1",
		Title:     "Archived",
		Priority:  PriorityLow,
		Archived:  true,
		CreatedAt: now,
	}
	err := todo.Validate()
	if err == nil || !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState, got: %v", err)
	}
}

func TestTodoValidateInvalidPriority(t *testing.T) {
	now := time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)
	todo := Todo{
		ID:        "todo-1",
		Title:     "Bad priority",
		Priority:  Priority("urgent"),
		CreatedAt: now,
	}
	err := todo.Validate()
	if err == nil || !errors.Is(err, ErrInvalidPriority) {
		t.Fatalf("expected ErrInvalidPriority, got: %v", err)
	}
}

func TestParsePriority(t *testing.T) {
	got, err := ParsePriority("  HIGH ")
	if err != nil || got != PriorityHigh {
		t.Fatalf("expected high, got %q err=%v", got, err)
	}
	if _, err := ParsePriority("critical"); !errors.Is(err, ErrInvalidPriority) {
		t.Fatalf("expected ErrInvalidPriority, got: %v", err)
	}
	if PriorityHigh.Rank() >= PriorityMedium.Rank() || PriorityMedium.Rank() >= PriorityLow.Rank() {
		t.Fatal("expected high < medium < low rank")
	}
}

func TestUpdateRequestApplyRestoreUnarchives(t *testing.T) {
	now := time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)
	todo := Todo{ID: "a", Title: "Done", Priority: PriorityMedium, Completed: true, Archived: true, CreatedAt: now}
	completed := false
	out := UpdateTodoRequest{ID: "a", Completed: &completed}.Apply(todo)
	if out.Completed || out.Archived {
		t.Fatalf("expected restored todo, got %+v", out)
	}
	if !todo.Archived {
		t.Fatal("apply must not mutate its input")
	}

	title := "  Renamed  "
	prio := PriorityLow
	out = UpdateTodoRequest{ID: "a", Title: &title, Priority: &prio}.Apply(out)
	if out.Title != "Renamed" || out.Priority != PriorityLow {
		t.Fatalf("unexpected partial update result: %+v", out)
	}
}

func TestUpdateRequestValidate(t *testing.T) {
	blank := " "
	if err := (UpdateTodoRequest{ID: "a", Title: &blank}).Validate(); err == nil {
		t.Fatal("expected blank title to be rejected")
	}
	bad := Priority("nope")
	if err := (UpdateTodoRequest{ID: "a", Priority: &bad}).Validate(); !errors.Is(err, ErrInvalidPriority) {
		t.Fatalf("expected ErrInvalidPriority, got: %v", err)
	}
	if err := (UpdateTodoRequest{}).Validate(); err == nil {
		t.Fatal("expected missing id to be rejected")
	}
}

func TestSameGroup(t *testing.T) {
	a := Todo{ID: "a", Priority: PriorityHigh}
	b := Todo{ID: "b", Priority: PriorityHigh}
	c := Todo{ID: "c", Priority: PriorityLow}
	d := Todo{ID: "d", Priority: PriorityHigh, Archived: true, Completed: true}
	if !a.SameGroup(b) {
		t.Fatal("expected a and b in the same group")
	}
	if a.SameGroup(c) || a.SameGroup(d) {
		t.Fatal("expected different priority and archived todos outside the group")
	}
}

func TestNormalizeTags(t *testing.T) {
	got := NormalizeTags([]string{"#Idea", "idea", " work ", "", "#"})
	if len(got) != 2 || got[0] != "idea" || got[1] != "work" {
		t.Fatalf("unexpected tags: %#v", got)
	}
}
