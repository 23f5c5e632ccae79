package middleware

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/emre/alumnihub/internal/app/models/dto"
	"github.com/emre/alumnihub/internal/pkg/apperrors"
)

// HandleAPIError maps service errors to HTTP responses. Every controller
// funnels its error path through here so status codes stay consistent.
func HandleAPIError(c *gin.Context, err error) {
	switch {
	// 401
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		respondError(c, http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials, "Invalid credentials")
	case errors.Is(err, apperrors.ErrTokenExpired):
		respondError(c, http.StatusUnauthorized, dto.ErrorCodeExpiredToken, "Token expired")
	case errors.Is(err, apperrors.ErrTokenInvalid):
		respondError(c, http.StatusUnauthorized, dto.ErrorCodeInvalidToken, "Invalid token")
	case errors.Is(err, apperrors.ErrTokenNotFound):
		respondError(c, http.StatusUnauthorized, dto.ErrorCodeTokenNotFound, "Token not found")
	case errors.Is(err, apperrors.ErrTokenRevoked):
		respondError(c, http.StatusUnauthorized, dto.ErrorCodeInvalidToken, "Token revoked")
	case errors.Is(err, apperrors.ErrAccountDisabled):
		respondError(c, http.StatusUnauthorized, dto.ErrorCodeAccountDisabled, "Account is disabled")

	// 403
	case errors.Is(err, apperrors.ErrPermissionDenied):
		respondError(c, http.StatusForbidden, dto.ErrorCodeForbidden, "Permission denied")

	// 404
	case errors.Is(err, apperrors.ErrUserNotFound):
		respondError(c, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "User not found")
	case errors.Is(err, apperrors.ErrEventNotFound):
		respondError(c, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Event not found")
	case errors.Is(err, apperrors.ErrMessageNotFound):
		respondError(c, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Message not found")
	case errors.Is(err, apperrors.ErrRequestNotFound):
		respondError(c, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Mentorship request not found")
	case errors.Is(err, apperrors.ErrResourceNotFound):
		respondError(c, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Resource not found")

	// 409 domain conflicts
	case errors.Is(err, apperrors.ErrEmailAlreadyExists):
		respondError(c, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Email already exists")
	case errors.Is(err, apperrors.ErrEventFull):
		respondError(c, http.StatusConflict, dto.ErrorCodeConflict, "Event is at capacity")
	case errors.Is(err, apperrors.ErrEventNotPublished):
		respondError(c, http.StatusConflict, dto.ErrorCodeConflict, "Event is not open for registration")
	case errors.Is(err, apperrors.ErrRegistrationClosed):
		respondError(c, http.StatusConflict, dto.ErrorCodeConflict, "Registration deadline has passed")
	case errors.Is(err, apperrors.ErrEventInPast):
		respondError(c, http.StatusConflict, dto.ErrorCodeConflict, "Event date is in the past")
	case errors.Is(err, apperrors.ErrAlreadyRegistered):
		respondError(c, http.StatusConflict, dto.ErrorCodeConflict, "Already registered for this event")
	case errors.Is(err, apperrors.ErrNotRegistered):
		respondError(c, http.StatusConflict, dto.ErrorCodeConflict, "Not registered for this event")
	case errors.Is(err, apperrors.ErrEventDetailsImmutable):
		respondError(c, http.StatusConflict, dto.ErrorCodeConflict, "Event details are frozen once attendees exist")
	case errors.Is(err, apperrors.ErrMessageDeleted):
		respondError(c, http.StatusConflict, dto.ErrorCodeConflict, "Message has been deleted")
	case errors.Is(err, apperrors.ErrEditWindowClosed):
		respondError(c, http.StatusConflict, dto.ErrorCodeConflict, "Edit window has closed")
	case errors.Is(err, apperrors.ErrAlreadyReacted):
		respondError(c, http.StatusConflict, dto.ErrorCodeConflict, "Reaction already exists")
	case errors.Is(err, apperrors.ErrSelfMentorship):
		respondError(c, http.StatusConflict, dto.ErrorCodeConflict, "Cannot request mentorship from yourself")
	case errors.Is(err, apperrors.ErrMentorNotAvailable):
		respondError(c, http.StatusConflict, dto.ErrorCodeConflict, "Mentor is not available")
	case errors.Is(err, apperrors.ErrActiveRequestExists):
		respondError(c, http.StatusConflict, dto.ErrorCodeConflict, "An active request to this mentor already exists")
	case errors.Is(err, apperrors.ErrInvalidStatusTransition):
		respondError(c, http.StatusConflict, dto.ErrorCodeConflict, "Request status does not allow this operation")
	case errors.Is(err, apperrors.ErrFeedbackAlreadyGiven):
		respondError(c, http.StatusConflict, dto.ErrorCodeConflict, "Feedback already submitted")
	case errors.Is(err, apperrors.ErrConflict):
		respondError(c, http.StatusConflict, dto.ErrorCodeConflict, "Operation conflicts with current state")

	// 400
	case errors.Is(err, apperrors.ErrValidationFailed):
		respondError(c, http.StatusBadRequest, dto.ErrorCodeValidationFailed, "Validation failed")
	case errors.Is(err, apperrors.ErrBadRequest):
		respondError(c, http.StatusBadRequest, dto.ErrorCodeInvalidRequest, "Invalid request")

	default:
		respondError(c, http.StatusInternalServerError, dto.ErrorCodeInternalServer, "Internal server error")
	}
}

func respondError(c *gin.Context, status int, code dto.ErrorCode, message string) {
	c.JSON(status, dto.APIResponse{
		Success:   false,
		Error:     dto.NewErrorDetail(code, message),
		Timestamp: time.Now(),
	})
}
