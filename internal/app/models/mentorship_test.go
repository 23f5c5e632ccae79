package models

import "testing"

func TestMentorshipStatusTransitions(t *testing.T) {
	tests := []struct {
		from    MentorshipStatus
		to      MentorshipStatus
		allowed bool
	}{
		{MentorshipStatusPending, MentorshipStatusAccepted, true},
		{MentorshipStatusPending, MentorshipStatusDeclined, true},
		{MentorshipStatusPending, MentorshipStatusCancelled, true},
		{MentorshipStatusPending, MentorshipStatusCompleted, false},
		{MentorshipStatusAccepted, MentorshipStatusCompleted, true},
		{MentorshipStatusAccepted, MentorshipStatusDeclined, false},
		{MentorshipStatusAccepted, MentorshipStatusCancelled, false},
		{MentorshipStatusAccepted, MentorshipStatusPending, false},
		{MentorshipStatusDeclined, MentorshipStatusAccepted, false},
		{MentorshipStatusCompleted, MentorshipStatusAccepted, false},
		{MentorshipStatusCancelled, MentorshipStatusPending, false},
	}

	for _, tt := range tests {
		if got := tt.from.CanTransition(tt.to); got != tt.allowed {
			t.Errorf("%s -> %s: got %v, want %v", tt.from, tt.to, got, tt.allowed)
		}
	}
}

func TestMentorshipStatusTerminal(t *testing.T) {
	terminal := []MentorshipStatus{MentorshipStatusDeclined, MentorshipStatusCompleted, MentorshipStatusCancelled}
	for _, s := range terminal {
		if !s.IsTerminal() {
			t.Errorf("expected %s to be terminal", s)
		}
	}
	if MentorshipStatusPending.IsTerminal() {
		t.Error("PENDING must not be terminal")
	}
	if MentorshipStatusAccepted.IsTerminal() {
		t.Error("ACCEPTED must not be terminal")
	}
}

func TestMentorshipStatusActive(t *testing.T) {
	if !MentorshipStatusPending.IsActive() || !MentorshipStatusAccepted.IsActive() {
		t.Error("PENDING and ACCEPTED must count as active")
	}
	for _, s := range []MentorshipStatus{MentorshipStatusDeclined, MentorshipStatusCompleted, MentorshipStatusCancelled} {
		if s.IsActive() {
			t.Errorf("%s must not count as active", s)
		}
	}
}

func TestMentorshipRequestFeedbackTracking(t *testing.T) {
	rating := 4
	r := &MentorshipRequest{
		MenteeID:     1,
		MentorID:     2,
		Status:       MentorshipStatusCompleted,
		MenteeRating: &rating,
	}

	if !r.HasFeedbackFrom(1) {
		t.Error("mentee feedback should be recorded")
	}
	if r.HasFeedbackFrom(2) {
		t.Error("mentor feedback must be independent of mentee feedback")
	}
	if r.HasFeedbackFrom(99) {
		t.Error("non-party user cannot have feedback")
	}
}

func TestMentorshipRequestIsParty(t *testing.T) {
	r := &MentorshipRequest{MenteeID: 1, MentorID: 2}
	if !r.IsParty(1) || !r.IsParty(2) {
		t.Error("both mentee and mentor are parties")
	}
	if r.IsParty(3) {
		t.Error("unrelated user is not a party")
	}
}
