package commands

import (
	"errors"
	"testing"

	"github.com/sandeepkv93/mindflow/internal/model"
)

func TestParseSupportedCommands(t *testing.T) {
	cases := []struct {
		in       string
		typeWant Type
	}{
		{"/add pay rent", TypeAdd},
		{"note try the new cafe #food", TypeNote},
		{"/search rent", TypeSearch},
		{"priority high", TypePriority},
		{"/clear", TypeClear},
	}

	for _, tc := range cases {
		cmd, err := Parse(tc.in)
		if err != nil {
			t.Fatalf("parse %q failed: %v", tc.in, err)
		}
		if cmd.Type != tc.typeWant {
			t.Fatalf("parse %q type = %s, want %s", tc.in, cmd.Type, tc.typeWant)
		}
	}
}

func TestParseAddPriorityMarker(t *testing.T) {
	cmd, err := Parse("/add !high pay rent")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if cmd.Add.Title != "pay rent" || cmd.Add.Priority != model.PriorityHigh {
		t.Fatalf("unexpected add args: %+v", cmd.Add)
	}

	cmd, _ = Parse("/add water plants")
	if cmd.Add.Priority != model.PriorityMedium {
		t.Fatalf("expected medium default, got %s", cmd.Add.Priority)
	}

	var ce *CommandError
	if _, err := Parse("/add !urgent thing"); !errors.As(err, &ce) || ce.Code != ErrCodeInvalidArgument {
		t.Fatalf("expected invalid argument, got %v", err)
	}
	if _, err := Parse("/add !low"); !errors.As(err, &ce) || ce.Code != ErrCodeInvalidArgument {
		t.Fatalf("expected missing title error, got %v", err)
	}
}

func TestParseNoteTags(t *testing.T) {
	cmd, err := Parse("/note #Ideas ship the beta #work #ideas")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if cmd.Note.Content != "ship the beta" {
		t.Fatalf("unexpected content: %q", cmd.Note.Content)
	}
	if len(cmd.Note.Tags) != 2 || cmd.Note.Tags[0] != "ideas" || cmd.Note.Tags[1] != "work" {
		t.Fatalf("unexpected tags: %#v", cmd.Note.Tags)
	}
	if _, err := Parse("/note #only-tags"); err == nil {
		t.Fatal("expected note without content to fail")
	}
}

func TestParsePriorityAll(t *testing.T) {
	cmd, err := Parse("/priority ALL")
	if err != nil || cmd.Priority.Priority != "" {
		t.Fatalf("expected cleared priority filter, got %+v err=%v", cmd.Priority, err)
	}
	if _, err := Parse("/priority"); err == nil {
		t.Fatal("expected missing level to fail")
	}
}

func TestParseUnknownCommand(t *testing.T) {
	_, err := Parse("/unknown do x")
	if err == nil {
		t.Fatal("expected error")
	}
	var ce *CommandError
	if !errors.As(err, &ce) || ce.Code != ErrCodeUnknownCommand {
		t.Fatalf("expected unknown command error, got %v", err)
	}
}

func TestParseEmpty(t *testing.T) {
	var ce *CommandError
	if _, err := Parse(" / "); !errors.As(err, &ce) || ce.Code != ErrCodeEmptyInput {
		t.Fatalf("expected empty input error, got %v", err)
	}
}

func TestExecuteDispatch(t *testing.T) {
	cmd, err := Parse("/add write docs")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	called := false
	res, err := Execute(cmd, Handlers{
		Add: func(a AddArgs) (Result, error) {
			called = true
			if a.Title != "write docs" {
				t.Fatalf("unexpected title: %q", a.Title)
			}
			return Result{Message: "ok"}, nil
		},
	})
	if err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	if !called || res.Message != "ok" {
		t.Fatalf("dispatch failed, called=%v res=%+v", called, res)
	}
}

func TestExecuteMissingHandler(t *testing.T) {
	cmd, err := Parse("search rent")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	_, err = Execute(cmd, Handlers{})
	if err == nil {
		t.Fatal("expected error")
	}
	var ce *CommandError
	if !errors.As(err, &ce) || ce.Code != ErrCodeHandlerMissing {
		t.Fatalf("expected missing handler error, got %v", err)
	}
}
