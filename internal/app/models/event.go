package models

import (
	"errors"
	"time"
)

// EventStatus represents the lifecycle state of an event
type EventStatus string

const (
	EventStatusDraft     EventStatus = "DRAFT"
	EventStatusPublished EventStatus = "PUBLISHED"
	EventStatusCancelled EventStatus = "CANCELLED"
	EventStatusCompleted EventStatus = "COMPLETED"
)

// AttendeeStatus represents the state of a single registration
type AttendeeStatus string

const (
	AttendeeStatusRegistered AttendeeStatus = "REGISTERED"
	AttendeeStatusAttended   AttendeeStatus = "ATTENDED"
	AttendeeStatusCancelled  AttendeeStatus = "CANCELLED"
)

// Event defines the event model based on the 'events' table
type Event struct {
	ID                   int64       `json:"id" db:"id"`
	Title                string      `json:"title" db:"title"`
	Description          string      `json:"description" db:"description"`
	EventDate            time.Time   `json:"eventDate" db:"event_date"`
	StartTime            string      `json:"startTime" db:"start_time"`
	EndTime              *string     `json:"endTime,omitempty" db:"end_time"`
	Location             string      `json:"location" db:"location"`
	OrganizerID          int64       `json:"organizerId" db:"organizer_id"`
	MaxAttendees         *int        `json:"maxAttendees,omitempty" db:"max_attendees"`
	Status               EventStatus `json:"status" db:"status"`
	IsPublic             bool        `json:"isPublic" db:"is_public"`
	RequiresApproval     bool        `json:"requiresApproval" db:"requires_approval"`
	RegistrationDeadline *time.Time  `json:"registrationDeadline,omitempty" db:"registration_deadline"`
	CreatedAt            time.Time   `json:"createdAt" db:"created_at"`
	UpdatedAt            time.Time   `json:"updatedAt" db:"updated_at"`

	// Related entities
	Organizer     *User `json:"organizer,omitempty"`
	AttendeeCount int   `json:"attendeeCount"`
}

// EventAttendee is an owned child row of an event ('event_attendees' table)
type EventAttendee struct {
	ID           int64          `json:"id" db:"id"`
	EventID      int64          `json:"eventId" db:"event_id"`
	UserID       int64          `json:"userId" db:"user_id"`
	Status       AttendeeStatus `json:"status" db:"status"`
	RegisteredAt time.Time      `json:"registeredAt" db:"registered_at"`

	User *User `json:"user,omitempty"`
}

// EventComment is an owned child row of an event ('event_comments' table).
// Comments are append-only: no edit, no delete.
type EventComment struct {
	ID        int64     `json:"id" db:"id"`
	EventID   int64     `json:"eventId" db:"event_id"`
	UserID    int64     `json:"userId" db:"user_id"`
	Content   string    `json:"content" db:"content"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`

	User *User `json:"user,omitempty"`
}

// CanRegister checks every registration precondition except the
// already-registered and capacity checks, which need repository lookups.
// Returns nil when registration is open at the given instant.
func (e *Event) CanRegister(now time.Time) error {
	if e.Status != EventStatusPublished {
		return ErrNotPublished
	}
	if e.RegistrationDeadline != nil && now.After(*e.RegistrationDeadline) {
		return ErrDeadlinePassed
	}
	if now.After(e.EventDate) {
		return ErrDatePassed
	}
	return nil
}

// HasCapacityFor reports whether one more registration fits. A nil
// MaxAttendees means unlimited capacity.
func (e *Event) HasCapacityFor(registeredCount int) bool {
	if e.MaxAttendees == nil {
		return true
	}
	return registeredCount < *e.MaxAttendees
}

// Registration precondition errors, mapped to domain conflicts by the services.
var (
	ErrNotPublished   = errors.New("event is not published")
	ErrDeadlinePassed = errors.New("registration deadline has passed")
	ErrDatePassed     = errors.New("event date is in the past")
)
