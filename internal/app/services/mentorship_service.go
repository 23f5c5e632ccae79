package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/emre/alumnihub/internal/app/models"
	"github.com/emre/alumnihub/internal/app/models/dto"
	"github.com/emre/alumnihub/internal/app/repositories"
	"github.com/emre/alumnihub/internal/pkg/apperrors"
	"github.com/emre/alumnihub/internal/pkg/helpers"
	"github.com/emre/alumnihub/internal/pkg/websocket"
)

// MentorshipService handles the mentorship request lifecycle, meetings and
// feedback.
type MentorshipService struct {
	mentorshipRepo *repositories.MentorshipRepository
	userRepo       *repositories.UserRepository
	authz          *AuthorizationService
	notifier       websocket.Notifier
	logger         zerolog.Logger
}

// NewMentorshipService creates a new MentorshipService
func NewMentorshipService(
	mentorshipRepo *repositories.MentorshipRepository,
	userRepo *repositories.UserRepository,
	authz *AuthorizationService,
	notifier websocket.Notifier,
	logger zerolog.Logger,
) *MentorshipService {
	return &MentorshipService{
		mentorshipRepo: mentorshipRepo,
		userRepo:       userRepo,
		authz:          authz,
		notifier:       notifier,
		logger:         logger,
	}
}

// CreateRequest opens a PENDING mentorship request from the caller to a
// mentor who is available and not the caller themselves.
func (s *MentorshipService) CreateRequest(ctx context.Context, menteeID int64, req *dto.CreateMentorshipRequestRequest) (*dto.MentorshipRequestResponse, error) {
	if req.MentorID == menteeID {
		return nil, apperrors.ErrSelfMentorship
	}

	mentor, err := s.userRepo.FindByID(ctx, req.MentorID)
	if err != nil {
		return nil, err
	}
	if !mentor.IsActive || !mentor.MentorshipAvailable {
		return nil, apperrors.ErrMentorNotAvailable
	}

	request := &models.MentorshipRequest{
		MenteeID:             menteeID,
		MentorID:             req.MentorID,
		Subject:              req.Subject,
		Message:              req.Message,
		Status:               models.MentorshipStatusPending,
		MentorshipType:       models.MentorshipType(req.MentorshipType),
		PreferredMeetingType: models.MeetingType(req.PreferredMeetingType),
		Timeline:             req.Timeline,
		Goals:                req.Goals,
		Expertise:            req.Expertise,
	}

	requestID, err := s.mentorshipRepo.Create(ctx, request)
	if err != nil {
		return nil, err
	}

	created, err := s.mentorshipRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}

	resp := dto.ToMentorshipRequestResponse(created)
	s.notifier.Publish(websocket.UserTopic(req.MentorID), "mentorship.requested", resp)

	s.logger.Info().
		Int64("requestID", requestID).
		Int64("menteeID", menteeID).
		Int64("mentorID", req.MentorID).
		Msg("Mentorship request created")

	return &resp, nil
}

// GetRequests lists requests where the caller is a party
func (s *MentorshipService) GetRequests(ctx context.Context, userID int64, filter *dto.MentorshipFilterRequest) (*dto.MentorshipRequestListResponse, error) {
	requests, total, err := s.mentorshipRepo.GetAllForUser(ctx, userID, filter)
	if err != nil {
		return nil, err
	}

	resp := &dto.MentorshipRequestListResponse{
		Requests:   make([]dto.MentorshipRequestResponse, 0, len(requests)),
		Pagination: helpers.NewPaginationInfo(total, filter.Page, filter.Limit),
	}
	for i := range requests {
		resp.Requests = append(resp.Requests, dto.ToMentorshipRequestResponse(&requests[i]))
	}
	return resp, nil
}

// GetRequest retrieves a single request visible only to its parties
func (s *MentorshipService) GetRequest(ctx context.Context, requestID, userID int64) (*dto.MentorshipRequestResponse, error) {
	request, err := s.mentorshipRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if err := s.authz.CanViewRequest(request, userID); err != nil {
		return nil, err
	}

	resp := dto.ToMentorshipRequestResponse(request)
	return &resp, nil
}

// Accept moves a PENDING request to ACCEPTED. Only the mentor may accept.
func (s *MentorshipService) Accept(ctx context.Context, requestID, userID int64, req *dto.RespondMentorshipRequest) (*dto.MentorshipRequestResponse, error) {
	return s.respond(ctx, requestID, userID, models.MentorshipStatusAccepted, "mentorship.accepted", req)
}

// Decline moves a PENDING request to DECLINED. Only the mentor may decline.
func (s *MentorshipService) Decline(ctx context.Context, requestID, userID int64, req *dto.RespondMentorshipRequest) (*dto.MentorshipRequestResponse, error) {
	return s.respond(ctx, requestID, userID, models.MentorshipStatusDeclined, "mentorship.declined", req)
}

func (s *MentorshipService) respond(ctx context.Context, requestID, userID int64, to models.MentorshipStatus, eventType string, req *dto.RespondMentorshipRequest) (*dto.MentorshipRequestResponse, error) {
	request, err := s.mentorshipRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if err := s.authz.CanRespondToRequest(request, userID); err != nil {
		return nil, err
	}
	if !request.Status.CanTransition(to) {
		return nil, apperrors.ErrInvalidStatusTransition
	}

	now := time.Now()
	var responseMessage *string
	if req != nil {
		responseMessage = req.ResponseMessage
	}

	if err := s.mentorshipRepo.UpdateStatus(ctx, requestID, to, responseMessage, &now); err != nil {
		return nil, err
	}

	request.Status = to
	request.ResponseMessage = responseMessage
	request.RespondedAt = &now

	resp := dto.ToMentorshipRequestResponse(request)
	s.notifier.Publish(websocket.UserTopic(request.MenteeID), eventType, resp)

	s.logger.Info().
		Int64("requestID", requestID).
		Str("status", string(to)).
		Msg("Mentorship request responded")

	return &resp, nil
}

// Cancel moves a PENDING request to CANCELLED. Only the mentee may cancel,
// and only before the mentor has responded.
func (s *MentorshipService) Cancel(ctx context.Context, requestID, userID int64) (*dto.MentorshipRequestResponse, error) {
	request, err := s.mentorshipRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if err := s.authz.CanCancelRequest(request, userID); err != nil {
		return nil, err
	}
	if !request.Status.CanTransition(models.MentorshipStatusCancelled) {
		return nil, apperrors.ErrInvalidStatusTransition
	}

	if err := s.mentorshipRepo.UpdateStatus(ctx, requestID, models.MentorshipStatusCancelled, nil, nil); err != nil {
		return nil, err
	}
	request.Status = models.MentorshipStatusCancelled

	resp := dto.ToMentorshipRequestResponse(request)
	s.notifier.Publish(websocket.UserTopic(request.MentorID), "mentorship.cancelled", resp)
	return &resp, nil
}

// Complete moves an ACCEPTED request to COMPLETED. Either party may close
// out the mentorship.
func (s *MentorshipService) Complete(ctx context.Context, requestID, userID int64) (*dto.MentorshipRequestResponse, error) {
	request, err := s.mentorshipRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if err := s.authz.CanViewRequest(request, userID); err != nil {
		return nil, err
	}
	if !request.Status.CanTransition(models.MentorshipStatusCompleted) {
		return nil, apperrors.ErrInvalidStatusTransition
	}

	if err := s.mentorshipRepo.UpdateStatus(ctx, requestID, models.MentorshipStatusCompleted, nil, nil); err != nil {
		return nil, err
	}
	request.Status = models.MentorshipStatusCompleted

	other := request.MentorID
	if userID == request.MentorID {
		other = request.MenteeID
	}

	resp := dto.ToMentorshipRequestResponse(request)
	s.notifier.Publish(websocket.UserTopic(other), "mentorship.completed", resp)
	return &resp, nil
}

// ScheduleMeeting appends a meeting to an ACCEPTED request. Either party
// may schedule.
func (s *MentorshipService) ScheduleMeeting(ctx context.Context, requestID, userID int64, req *dto.ScheduleMeetingRequest) (*dto.MentorshipMeetingResponse, error) {
	request, err := s.mentorshipRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if err := s.authz.CanViewRequest(request, userID); err != nil {
		return nil, err
	}
	if request.Status != models.MentorshipStatusAccepted {
		return nil, apperrors.ErrInvalidStatusTransition
	}

	meeting := &models.MentorshipMeeting{
		RequestID:       requestID,
		MeetingDate:     req.MeetingDate,
		DurationMinutes: req.DurationMinutes,
		MeetingLink:     req.MeetingLink,
		Notes:           req.Notes,
		Status:          models.MeetingStatusScheduled,
		CreatedBy:       userID,
	}

	if _, err := s.mentorshipRepo.AddMeeting(ctx, meeting); err != nil {
		return nil, err
	}

	other := request.MentorID
	if userID == request.MentorID {
		other = request.MenteeID
	}

	resp := dto.ToMentorshipMeetingResponse(meeting)
	s.notifier.Publish(websocket.UserTopic(other), "mentorship.meeting.scheduled", resp)

	s.logger.Debug().
		Int64("requestID", requestID).
		Int64("meetingID", meeting.ID).
		Msg("Mentorship meeting scheduled")

	return &resp, nil
}

// SubmitFeedback records one party's rating and review on a COMPLETED
// request. Each side may submit exactly once.
func (s *MentorshipService) SubmitFeedback(ctx context.Context, requestID, userID int64, req *dto.SubmitFeedbackRequest) (*dto.MentorshipRequestResponse, error) {
	request, err := s.mentorshipRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if err := s.authz.CanViewRequest(request, userID); err != nil {
		return nil, err
	}
	if request.Status != models.MentorshipStatusCompleted {
		return nil, apperrors.ErrInvalidStatusTransition
	}
	if request.HasFeedbackFrom(userID) {
		return nil, apperrors.ErrFeedbackAlreadyGiven
	}

	now := time.Now()
	if userID == request.MenteeID {
		err = s.mentorshipRepo.SetMenteeFeedback(ctx, requestID, req.Rating, req.Review, now)
		if err == nil {
			request.MenteeRating = &req.Rating
			request.MenteeReview = req.Review
			request.MenteeFeedbackAt = &now
		}
	} else {
		err = s.mentorshipRepo.SetMentorFeedback(ctx, requestID, req.Rating, req.Review, now)
		if err == nil {
			request.MentorRating = &req.Rating
			request.MentorReview = req.Review
			request.MentorFeedbackAt = &now
		}
	}
	if err != nil {
		return nil, err
	}

	resp := dto.ToMentorshipRequestResponse(request)
	return &resp, nil
}
