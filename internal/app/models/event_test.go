package models

import (
	"testing"
	"time"
)

func TestEventCanRegister(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	future := now.Add(48 * time.Hour)
	past := now.Add(-48 * time.Hour)

	t.Run("published upcoming event", func(t *testing.T) {
		e := &Event{Status: EventStatusPublished, EventDate: future}
		if err := e.CanRegister(now); err != nil {
			t.Fatalf("expected registration open, got %v", err)
		}
	})

	t.Run("draft event", func(t *testing.T) {
		e := &Event{Status: EventStatusDraft, EventDate: future}
		if err := e.CanRegister(now); err != ErrNotPublished {
			t.Fatalf("expected ErrNotPublished, got %v", err)
		}
	})

	t.Run("deadline passed", func(t *testing.T) {
		deadline := now.Add(-time.Hour)
		e := &Event{Status: EventStatusPublished, EventDate: future, RegistrationDeadline: &deadline}
		if err := e.CanRegister(now); err != ErrDeadlinePassed {
			t.Fatalf("expected ErrDeadlinePassed, got %v", err)
		}
	})

	t.Run("event in the past", func(t *testing.T) {
		e := &Event{Status: EventStatusPublished, EventDate: past}
		if err := e.CanRegister(now); err != ErrDatePassed {
			t.Fatalf("expected ErrDatePassed, got %v", err)
		}
	})
}

func TestEventHasCapacityFor(t *testing.T) {
	one := 1
	e := &Event{MaxAttendees: &one}
	if !e.HasCapacityFor(0) {
		t.Error("empty event with capacity 1 should accept a registration")
	}
	if e.HasCapacityFor(1) {
		t.Error("full event must reject further registrations")
	}

	unlimited := &Event{}
	if !unlimited.HasCapacityFor(100000) {
		t.Error("nil maxAttendees means unlimited capacity")
	}
}
