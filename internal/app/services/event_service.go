package services

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/emre/alumnihub/internal/app/models"
	"github.com/emre/alumnihub/internal/app/models/dto"
	"github.com/emre/alumnihub/internal/app/repositories"
	"github.com/emre/alumnihub/internal/pkg/apperrors"
	"github.com/emre/alumnihub/internal/pkg/helpers"
	"github.com/emre/alumnihub/internal/pkg/websocket"
)

// EventService handles the event lifecycle, registrations and comments
type EventService struct {
	eventRepo *repositories.EventRepository
	userRepo  *repositories.UserRepository
	authz     *AuthorizationService
	notifier  websocket.Notifier
	logger    zerolog.Logger
}

// NewEventService creates a new EventService
func NewEventService(
	eventRepo *repositories.EventRepository,
	userRepo *repositories.UserRepository,
	authz *AuthorizationService,
	notifier websocket.Notifier,
	logger zerolog.Logger,
) *EventService {
	return &EventService{
		eventRepo: eventRepo,
		userRepo:  userRepo,
		authz:     authz,
		notifier:  notifier,
		logger:    logger,
	}
}

// GetEvents lists events matching the filter. Anonymous callers only see
// published public events.
func (s *EventService) GetEvents(ctx context.Context, filter *dto.EventFilterRequest, authenticated bool) (*dto.EventListResponse, error) {
	events, total, err := s.eventRepo.GetAll(ctx, filter, authenticated)
	if err != nil {
		return nil, err
	}

	resp := &dto.EventListResponse{
		Events:     make([]dto.EventResponse, 0, len(events)),
		Pagination: helpers.NewPaginationInfo(total, filter.Page, filter.Limit),
	}
	for i := range events {
		resp.Events = append(resp.Events, dto.ToEventResponse(&events[i]))
	}
	return resp, nil
}

// GetEvent retrieves an event with its attendees and comments
func (s *EventService) GetEvent(ctx context.Context, eventID int64, authenticated bool) (*dto.EventDetailResponse, error) {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}

	// Unpublished and private events are invisible to anonymous callers
	if !authenticated && (!event.IsPublic || event.Status != models.EventStatusPublished) {
		return nil, apperrors.ErrEventNotFound
	}

	if organizer, err := s.userRepo.FindByID(ctx, event.OrganizerID); err == nil {
		event.Organizer = organizer
	}

	attendees, err := s.eventRepo.GetAttendees(ctx, eventID)
	if err != nil {
		return nil, err
	}
	comments, err := s.eventRepo.GetComments(ctx, eventID)
	if err != nil {
		return nil, err
	}

	resp := &dto.EventDetailResponse{
		EventResponse: dto.ToEventResponse(event),
		Attendees:     make([]dto.EventAttendeeResponse, 0, len(attendees)),
		Comments:      make([]dto.EventCommentResponse, 0, len(comments)),
	}
	for i := range attendees {
		resp.Attendees = append(resp.Attendees, dto.ToEventAttendeeResponse(&attendees[i]))
	}
	for i := range comments {
		resp.Comments = append(resp.Comments, dto.ToEventCommentResponse(&comments[i]))
	}
	return resp, nil
}

// CreateEvent creates a new event in DRAFT state
func (s *EventService) CreateEvent(ctx context.Context, organizerID int64, req *dto.CreateEventRequest) (*dto.EventResponse, error) {
	if req.EventDate.Before(time.Now()) {
		return nil, apperrors.ErrEventInPast
	}

	event := &models.Event{
		Title:                req.Title,
		Description:          req.Description,
		EventDate:            req.EventDate,
		StartTime:            req.StartTime,
		EndTime:              req.EndTime,
		Location:             req.Location,
		OrganizerID:          organizerID,
		MaxAttendees:         req.MaxAttendees,
		Status:               models.EventStatusDraft,
		IsPublic:             true,
		RegistrationDeadline: req.RegistrationDeadline,
	}
	if req.IsPublic != nil {
		event.IsPublic = *req.IsPublic
	}
	if req.RequiresApproval != nil {
		event.RequiresApproval = *req.RequiresApproval
	}

	eventID, err := s.eventRepo.Create(ctx, event)
	if err != nil {
		return nil, err
	}

	created, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("eventID", eventID).
		Int64("organizerID", organizerID).
		Msg("Event created")

	resp := dto.ToEventResponse(created)
	return &resp, nil
}

// PublishEvent moves a draft event to PUBLISHED and announces it
func (s *EventService) PublishEvent(ctx context.Context, eventID, userID int64, role models.RoleType) (*dto.EventResponse, error) {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if err := s.authz.CanManageEvent(event, userID, role); err != nil {
		return nil, err
	}
	if event.Status != models.EventStatusDraft {
		return nil, apperrors.ErrConflict
	}

	if err := s.eventRepo.UpdateStatus(ctx, eventID, models.EventStatusPublished); err != nil {
		return nil, err
	}
	event.Status = models.EventStatusPublished

	s.notifier.Publish(websocket.TopicChat, "event.published", dto.ToEventResponse(event))

	resp := dto.ToEventResponse(event)
	return &resp, nil
}

// UpdateEvent applies a partial update. Date, time and location are frozen
// once anyone has registered.
func (s *EventService) UpdateEvent(ctx context.Context, eventID, userID int64, role models.RoleType, req *dto.UpdateEventRequest) (*dto.EventResponse, error) {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if err := s.authz.CanManageEvent(event, userID, role); err != nil {
		return nil, err
	}

	if req.TouchesFrozenFields() {
		hasAttendees, err := s.eventRepo.HasAttendees(ctx, eventID)
		if err != nil {
			return nil, err
		}
		if hasAttendees {
			return nil, apperrors.ErrEventDetailsImmutable
		}
	}

	if req.Title != nil {
		event.Title = *req.Title
	}
	if req.Description != nil {
		event.Description = *req.Description
	}
	if req.EventDate != nil {
		event.EventDate = *req.EventDate
	}
	if req.StartTime != nil {
		event.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		event.EndTime = req.EndTime
	}
	if req.Location != nil {
		event.Location = *req.Location
	}
	if req.MaxAttendees != nil {
		event.MaxAttendees = req.MaxAttendees
	}
	if req.IsPublic != nil {
		event.IsPublic = *req.IsPublic
	}
	if req.RequiresApproval != nil {
		event.RequiresApproval = *req.RequiresApproval
	}
	if req.RegistrationDeadline != nil {
		event.RegistrationDeadline = req.RegistrationDeadline
	}

	if err := s.eventRepo.Update(ctx, event); err != nil {
		return nil, err
	}

	s.notifier.Publish(websocket.TopicChat, "event.updated", dto.ToEventResponse(event))

	resp := dto.ToEventResponse(event)
	return &resp, nil
}

// DeleteEvent removes an event. Events with attendees are cancelled instead
// of deleted so registrants keep a record.
func (s *EventService) DeleteEvent(ctx context.Context, eventID, userID int64, role models.RoleType) error {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return err
	}
	if err := s.authz.CanManageEvent(event, userID, role); err != nil {
		return err
	}

	hasAttendees, err := s.eventRepo.HasAttendees(ctx, eventID)
	if err != nil {
		return err
	}
	if hasAttendees {
		if err := s.eventRepo.UpdateStatus(ctx, eventID, models.EventStatusCancelled); err != nil {
			return err
		}
		s.notifier.Publish(websocket.TopicChat, "event.cancelled", dto.ToEventResponse(event))
		s.logger.Info().Int64("eventID", eventID).Msg("Event cancelled")
		return nil
	}

	if err := s.eventRepo.Delete(ctx, eventID); err != nil {
		return err
	}
	s.logger.Info().Int64("eventID", eventID).Msg("Event deleted")
	return nil
}

// Register adds the caller to an event's attendee list
func (s *EventService) Register(ctx context.Context, eventID, userID int64) (*dto.EventResponse, error) {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}

	if err := event.CanRegister(time.Now()); err != nil {
		switch {
		case errors.Is(err, models.ErrNotPublished):
			return nil, apperrors.ErrEventNotPublished
		case errors.Is(err, models.ErrDeadlinePassed):
			return nil, apperrors.ErrRegistrationClosed
		default:
			return nil, apperrors.ErrEventInPast
		}
	}

	// A registered user gets the duplicate answer even when the event is
	// full, so the check runs before capacity.
	if _, err := s.eventRepo.FindAttendee(ctx, eventID, userID); err == nil {
		return nil, apperrors.ErrAlreadyRegistered
	} else if !errors.Is(err, apperrors.ErrNotRegistered) {
		return nil, err
	}

	// Capacity is checked against the current count, then the insert runs.
	// Two simultaneous registrations can both pass the check and briefly
	// overfill the event; the count self-corrects on the next read.
	count, err := s.eventRepo.CountRegistered(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if !event.HasCapacityFor(count) {
		return nil, apperrors.ErrEventFull
	}

	if err := s.eventRepo.AddAttendee(ctx, eventID, userID); err != nil {
		return nil, err
	}

	event.AttendeeCount = count + 1
	s.notifier.Publish(websocket.UserTopic(event.OrganizerID), "event.registration", map[string]interface{}{
		"eventId": eventID,
		"userId":  userID,
	})

	s.logger.Debug().
		Int64("eventID", eventID).
		Int64("userID", userID).
		Msg("User registered for event")

	resp := dto.ToEventResponse(event)
	return &resp, nil
}

// Unregister removes the caller's registration
func (s *EventService) Unregister(ctx context.Context, eventID, userID int64) error {
	if _, err := s.eventRepo.GetByID(ctx, eventID); err != nil {
		return err
	}
	return s.eventRepo.RemoveAttendee(ctx, eventID, userID)
}

// MarkAttendance lets the organizer flip a registration to ATTENDED
func (s *EventService) MarkAttendance(ctx context.Context, eventID, userID, attendeeID int64, role models.RoleType) error {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return err
	}
	if err := s.authz.CanManageEvent(event, userID, role); err != nil {
		return err
	}

	return s.eventRepo.UpdateAttendeeStatus(ctx, eventID, attendeeID, models.AttendeeStatusAttended)
}

// AddComment appends a comment to an event
func (s *EventService) AddComment(ctx context.Context, eventID, userID int64, req *dto.CreateEventCommentRequest) (*dto.EventCommentResponse, error) {
	if _, err := s.eventRepo.GetByID(ctx, eventID); err != nil {
		return nil, err
	}

	comment := &models.EventComment{
		EventID: eventID,
		UserID:  userID,
		Content: req.Content,
	}
	if _, err := s.eventRepo.AddComment(ctx, comment); err != nil {
		return nil, err
	}

	if user, err := s.userRepo.FindByID(ctx, userID); err == nil {
		comment.User = user
	}

	resp := dto.ToEventCommentResponse(comment)
	return &resp, nil
}

// GetMyRegistrations lists events the caller has registered for
func (s *EventService) GetMyRegistrations(ctx context.Context, userID int64) ([]dto.EventResponse, error) {
	events, err := s.eventRepo.GetRegistrationsForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	resp := make([]dto.EventResponse, 0, len(events))
	for i := range events {
		resp = append(resp, dto.ToEventResponse(&events[i]))
	}
	return resp, nil
}