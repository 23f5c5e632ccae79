package services

import (
	"github.com/emre/alumnihub/internal/app/models"
	"github.com/emre/alumnihub/internal/pkg/apperrors"
)

// AuthorizationService centralizes ownership and party checks so each rule
// lives in exactly one place. Methods return ErrPermissionDenied when the
// caller is not allowed to act.
type AuthorizationService struct{}

// NewAuthorizationService creates a new AuthorizationService
func NewAuthorizationService() *AuthorizationService {
	return &AuthorizationService{}
}

// CanManageEvent allows the organizer and admins
func (a *AuthorizationService) CanManageEvent(event *models.Event, userID int64, role models.RoleType) error {
	if event.OrganizerID == userID || role == models.RoleAdmin {
		return nil
	}
	return apperrors.ErrPermissionDenied
}

// CanModifyMessage allows only the sender to edit or delete a message
func (a *AuthorizationService) CanModifyMessage(msg *models.ChatMessage, userID int64) error {
	if msg.SenderID == userID {
		return nil
	}
	return apperrors.ErrPermissionDenied
}

// CanViewRequest allows the two parties of a mentorship request
func (a *AuthorizationService) CanViewRequest(req *models.MentorshipRequest, userID int64) error {
	if req.IsParty(userID) {
		return nil
	}
	return apperrors.ErrPermissionDenied
}

// CanRespondToRequest allows only the mentor of record to accept or decline
func (a *AuthorizationService) CanRespondToRequest(req *models.MentorshipRequest, userID int64) error {
	if req.MentorID == userID {
		return nil
	}
	return apperrors.ErrPermissionDenied
}

// CanCancelRequest allows only the mentee who opened the request
func (a *AuthorizationService) CanCancelRequest(req *models.MentorshipRequest, userID int64) error {
	if req.MenteeID == userID {
		return nil
	}
	return apperrors.ErrPermissionDenied
}
