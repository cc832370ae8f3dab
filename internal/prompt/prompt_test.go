package prompt

import (
	"context"
	"errors"
	"testing"

	"github.com/AlecAivazis/survey/v2/terminal"
)

func TestIndexOf(t *testing.T) {
	options := []string{"default", "minimal"}
	if got := IndexOf(options, "minimal"); got != 1 {
		t.Fatalf("expected 1, got %d", got)
	}
	if got := IndexOf(options, "wide"); got != -1 {
		t.Fatalf("expected -1, got %d", got)
	}
}

func TestTranslate(t *testing.T) {
	if !errors.Is(translate(terminal.InterruptErr), ErrAborted) {
		t.Fatalf("interrupt should map to ErrAborted")
	}
	boom := errors.New("boom")
	if translate(boom) != boom {
		t.Fatalf("other errors pass through")
	}
}

func TestSurvey_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	d := Survey()
	if _, err := d.Select(ctx, SelectConfig{Options: []string{"a"}}); !errors.Is(err, context.Canceled) {
		t.Fatalf("select: expected context.Canceled, got %v", err)
	}
	if _, err := d.Confirm(ctx, ConfirmConfig{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("confirm: expected context.Canceled, got %v", err)
	}
	if _, err := d.Input(ctx, InputConfig{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("input: expected context.Canceled, got %v", err)
	}
}
