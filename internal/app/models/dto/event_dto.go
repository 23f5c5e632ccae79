package dto

import (
	"time"

	"github.com/emre/alumnihub/internal/app/models"
)

// --- Request DTOs ---

// CreateEventRequest represents data for creating a new event
type CreateEventRequest struct {
	Title                string     `json:"title" binding:"required,min=3,max=200"`
	Description          string     `json:"description" binding:"required,max=5000"`
	EventDate            time.Time  `json:"eventDate" binding:"required"`
	StartTime            string     `json:"startTime" binding:"required"`
	EndTime              *string    `json:"endTime,omitempty"`
	Location             string     `json:"location" binding:"required,max=300"`
	MaxAttendees         *int       `json:"maxAttendees,omitempty" binding:"omitempty,min=1"`
	IsPublic             *bool      `json:"isPublic,omitempty"`
	RequiresApproval     *bool      `json:"requiresApproval,omitempty"`
	RegistrationDeadline *time.Time `json:"registrationDeadline,omitempty"`
}

// UpdateEventRequest represents an organizer's event update. Nil fields are
// left unchanged. Date, time and location changes are rejected once any
// attendee exists.
type UpdateEventRequest struct {
	Title                *string    `json:"title,omitempty" binding:"omitempty,min=3,max=200"`
	Description          *string    `json:"description,omitempty" binding:"omitempty,max=5000"`
	EventDate            *time.Time `json:"eventDate,omitempty"`
	StartTime            *string    `json:"startTime,omitempty"`
	EndTime              *string    `json:"endTime,omitempty"`
	Location             *string    `json:"location,omitempty" binding:"omitempty,max=300"`
	MaxAttendees         *int       `json:"maxAttendees,omitempty" binding:"omitempty,min=1"`
	IsPublic             *bool      `json:"isPublic,omitempty"`
	RequiresApproval     *bool      `json:"requiresApproval,omitempty"`
	RegistrationDeadline *time.Time `json:"registrationDeadline,omitempty"`
}

// TouchesFrozenFields reports whether the update modifies fields that are
// immutable once attendees exist.
func (r *UpdateEventRequest) TouchesFrozenFields() bool {
	return r.EventDate != nil || r.StartTime != nil || r.EndTime != nil || r.Location != nil
}

// CreateEventCommentRequest appends a comment to an event
type CreateEventCommentRequest struct {
	Content string `json:"content" binding:"required,min=1,max=2000"`
}

// EventFilterRequest carries list filters for events
type EventFilterRequest struct {
	Status      *string
	OrganizerID *int64
	Upcoming    *bool
	Search      *string
	Page        int
	Limit       int
}

// --- Response DTOs ---

// EventResponse is the list projection of an event
type EventResponse struct {
	ID                   int64              `json:"id"`
	Title                string             `json:"title"`
	Description          string             `json:"description"`
	EventDate            time.Time          `json:"eventDate"`
	StartTime            string             `json:"startTime"`
	EndTime              *string            `json:"endTime,omitempty"`
	Location             string             `json:"location"`
	OrganizerID          int64              `json:"organizerId"`
	Organizer            *UserBasicResponse `json:"organizer,omitempty"`
	MaxAttendees         *int               `json:"maxAttendees,omitempty"`
	AttendeeCount        int                `json:"attendeeCount"`
	Status               string             `json:"status"`
	IsPublic             bool               `json:"isPublic"`
	RequiresApproval     bool               `json:"requiresApproval"`
	RegistrationDeadline *time.Time         `json:"registrationDeadline,omitempty"`
	CreatedAt            time.Time          `json:"createdAt"`
	UpdatedAt            time.Time          `json:"updatedAt"`
}

// EventDetailResponse extends EventResponse with attendees and comments
type EventDetailResponse struct {
	EventResponse
	Attendees []EventAttendeeResponse `json:"attendees"`
	Comments  []EventCommentResponse  `json:"comments"`
}

// EventAttendeeResponse is a single registration record
type EventAttendeeResponse struct {
	UserID       int64              `json:"userId"`
	User         *UserBasicResponse `json:"user,omitempty"`
	Status       string             `json:"status"`
	RegisteredAt time.Time          `json:"registeredAt"`
}

// EventCommentResponse is a single event comment
type EventCommentResponse struct {
	ID        int64              `json:"id"`
	UserID    int64              `json:"userId"`
	User      *UserBasicResponse `json:"user,omitempty"`
	Content   string             `json:"content"`
	CreatedAt time.Time          `json:"createdAt"`
}

// EventListResponse is a paginated list of events
type EventListResponse struct {
	Events     []EventResponse `json:"events"`
	Pagination PaginationInfo  `json:"pagination"`
}

// ToEventResponse transforms a models.Event into its list projection
func ToEventResponse(event *models.Event) EventResponse {
	resp := EventResponse{
		ID:                   event.ID,
		Title:                event.Title,
		Description:          event.Description,
		EventDate:            event.EventDate,
		StartTime:            event.StartTime,
		EndTime:              event.EndTime,
		Location:             event.Location,
		OrganizerID:          event.OrganizerID,
		MaxAttendees:         event.MaxAttendees,
		AttendeeCount:        event.AttendeeCount,
		Status:               string(event.Status),
		IsPublic:             event.IsPublic,
		RequiresApproval:     event.RequiresApproval,
		RegistrationDeadline: event.RegistrationDeadline,
		CreatedAt:            event.CreatedAt,
		UpdatedAt:            event.UpdatedAt,
	}

	if event.Organizer != nil {
		resp.Organizer = ToUserBasicResponse(event.Organizer)
	}

	return resp
}

// ToEventAttendeeResponse transforms a models.EventAttendee
func ToEventAttendeeResponse(attendee *models.EventAttendee) EventAttendeeResponse {
	resp := EventAttendeeResponse{
		UserID:       attendee.UserID,
		Status:       string(attendee.Status),
		RegisteredAt: attendee.RegisteredAt,
	}
	if attendee.User != nil {
		resp.User = ToUserBasicResponse(attendee.User)
	}
	return resp
}

// ToEventCommentResponse transforms a models.EventComment
func ToEventCommentResponse(comment *models.EventComment) EventCommentResponse {
	resp := EventCommentResponse{
		ID:        comment.ID,
		UserID:    comment.UserID,
		Content:   comment.Content,
		CreatedAt: comment.CreatedAt,
	}
	if comment.User != nil {
		resp.User = ToUserBasicResponse(comment.User)
	}
	return resp
}
