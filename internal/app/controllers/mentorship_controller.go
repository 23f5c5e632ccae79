package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/emre/alumnihub/internal/app/models/dto"
	"github.com/emre/alumnihub/internal/app/services"
	"github.com/emre/alumnihub/internal/middleware"
	"github.com/emre/alumnihub/internal/pkg/helpers"
)

// MentorshipController handles mentorship request operations
type MentorshipController struct {
	mentorshipService *services.MentorshipService
	logger            zerolog.Logger
}

// NewMentorshipController creates a new MentorshipController
func NewMentorshipController(mentorshipService *services.MentorshipService, logger zerolog.Logger) *MentorshipController {
	return &MentorshipController{
		mentorshipService: mentorshipService,
		logger:            logger,
	}
}

// CreateRequest opens a new mentorship request
// @Summary Request mentorship
// @Description Opens a PENDING request from the caller to an available mentor. At most one live request per mentor is allowed.
// @Tags mentorship
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateMentorshipRequestRequest true "Request details"
// @Success 201 {object} dto.APIResponse{data=dto.MentorshipRequestResponse} "Request created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Mentor not found"
// @Failure 409 {object} dto.ErrorResponse "Self-mentorship, mentor unavailable or active request exists"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /mentorship/requests [post]
func (c *MentorshipController) CreateRequest(ctx *gin.Context) {
	userID, _ := middleware.GetUserID(ctx)

	var req dto.CreateMentorshipRequestRequest
	if !middleware.BindAndValidate(ctx, &req) {
		return
	}

	resp, err := c.mentorshipService.CreateRequest(ctx.Request.Context(), userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(resp))
}

// GetRequests lists the caller's mentorship requests
// @Summary List mentorship requests
// @Description Lists requests where the caller is mentee or mentor
// @Tags mentorship
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(10)
// @Param role query string false "Restrict to one side" Enums(mentee, mentor)
// @Param status query string false "Request status" Enums(PENDING, ACCEPTED, DECLINED, COMPLETED, CANCELLED)
// @Success 200 {object} dto.APIResponse{data=dto.MentorshipRequestListResponse} "Request list"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /mentorship/requests [get]
func (c *MentorshipController) GetRequests(ctx *gin.Context) {
	userID, _ := middleware.GetUserID(ctx)

	filter := &dto.MentorshipFilterRequest{}
	filter.Page, filter.Limit = helpers.ParsePaginationParams(ctx)
	if v := ctx.Query("role"); v == "mentee" || v == "mentor" {
		filter.Role = &v
	}
	if v := ctx.Query("status"); v != "" {
		filter.Status = &v
	}

	resp, err := c.mentorshipService.GetRequests(ctx.Request.Context(), userID, filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// GetRequest retrieves one request
// @Summary Get mentorship request
// @Description Retrieves a request with both parties and scheduled meetings. Visible only to its parties.
// @Tags mentorship
// @Produce json
// @Security BearerAuth
// @Param id path int true "Request ID"
// @Success 200 {object} dto.APIResponse{data=dto.MentorshipRequestResponse} "Request"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Not a party"
// @Failure 404 {object} dto.ErrorResponse "Request not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /mentorship/requests/{id} [get]
func (c *MentorshipController) GetRequest(ctx *gin.Context) {
	requestID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	userID, _ := middleware.GetUserID(ctx)

	resp, err := c.mentorshipService.GetRequest(ctx.Request.Context(), requestID, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// Accept accepts a pending request
// @Summary Accept mentorship request
// @Description Moves a PENDING request to ACCEPTED. Only the mentor may accept.
// @Tags mentorship
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Request ID"
// @Param request body dto.RespondMentorshipRequest false "Optional response message"
// @Success 200 {object} dto.APIResponse{data=dto.MentorshipRequestResponse} "Request accepted"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Not the mentor"
// @Failure 404 {object} dto.ErrorResponse "Request not found"
// @Failure 409 {object} dto.ErrorResponse "Request is not pending"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /mentorship/requests/{id}/accept [post]
func (c *MentorshipController) Accept(ctx *gin.Context) {
	c.respond(ctx, c.mentorshipService.Accept)
}

// Decline declines a pending request
// @Summary Decline mentorship request
// @Description Moves a PENDING request to DECLINED. Only the mentor may decline.
// @Tags mentorship
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Request ID"
// @Param request body dto.RespondMentorshipRequest false "Optional response message"
// @Success 200 {object} dto.APIResponse{data=dto.MentorshipRequestResponse} "Request declined"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Not the mentor"
// @Failure 404 {object} dto.ErrorResponse "Request not found"
// @Failure 409 {object} dto.ErrorResponse "Request is not pending"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /mentorship/requests/{id}/decline [post]
func (c *MentorshipController) Decline(ctx *gin.Context) {
	c.respond(ctx, c.mentorshipService.Decline)
}

type respondFn func(ctx context.Context, requestID, userID int64, req *dto.RespondMentorshipRequest) (*dto.MentorshipRequestResponse, error)

func (c *MentorshipController) respond(ctx *gin.Context, fn respondFn) {
	requestID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	userID, _ := middleware.GetUserID(ctx)

	// Body is optional on accept/decline
	var req dto.RespondMentorshipRequest
	if ctx.Request.ContentLength > 0 {
		if !middleware.BindAndValidate(ctx, &req) {
			return
		}
	}

	resp, err := fn(ctx.Request.Context(), requestID, userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// Cancel cancels a pending request
// @Summary Cancel mentorship request
// @Description Moves a PENDING request to CANCELLED. Only the mentee may cancel.
// @Tags mentorship
// @Produce json
// @Security BearerAuth
// @Param id path int true "Request ID"
// @Success 200 {object} dto.APIResponse{data=dto.MentorshipRequestResponse} "Request cancelled"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Not the mentee"
// @Failure 404 {object} dto.ErrorResponse "Request not found"
// @Failure 409 {object} dto.ErrorResponse "Request is not pending"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /mentorship/requests/{id}/cancel [post]
func (c *MentorshipController) Cancel(ctx *gin.Context) {
	requestID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	userID, _ := middleware.GetUserID(ctx)

	resp, err := c.mentorshipService.Cancel(ctx.Request.Context(), requestID, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// Complete closes out an accepted mentorship
// @Summary Complete mentorship
// @Description Moves an ACCEPTED request to COMPLETED. Either party may close it.
// @Tags mentorship
// @Produce json
// @Security BearerAuth
// @Param id path int true "Request ID"
// @Success 200 {object} dto.APIResponse{data=dto.MentorshipRequestResponse} "Mentorship completed"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Not a party"
// @Failure 404 {object} dto.ErrorResponse "Request not found"
// @Failure 409 {object} dto.ErrorResponse "Request is not accepted"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /mentorship/requests/{id}/complete [post]
func (c *MentorshipController) Complete(ctx *gin.Context) {
	requestID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	userID, _ := middleware.GetUserID(ctx)

	resp, err := c.mentorshipService.Complete(ctx.Request.Context(), requestID, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// ScheduleMeeting appends a meeting to an accepted request
// @Summary Schedule meeting
// @Description Appends a meeting to an ACCEPTED request. Either party may schedule.
// @Tags mentorship
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Request ID"
// @Param request body dto.ScheduleMeetingRequest true "Meeting details"
// @Success 201 {object} dto.APIResponse{data=dto.MentorshipMeetingResponse} "Meeting scheduled"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Not a party"
// @Failure 404 {object} dto.ErrorResponse "Request not found"
// @Failure 409 {object} dto.ErrorResponse "Request is not accepted"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /mentorship/requests/{id}/meetings [post]
func (c *MentorshipController) ScheduleMeeting(ctx *gin.Context) {
	requestID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	userID, _ := middleware.GetUserID(ctx)

	var req dto.ScheduleMeetingRequest
	if !middleware.BindAndValidate(ctx, &req) {
		return
	}

	resp, err := c.mentorshipService.ScheduleMeeting(ctx.Request.Context(), requestID, userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(resp))
}

// SubmitFeedback records a party's rating and review
// @Summary Submit feedback
// @Description Records the caller's one-time rating and review on a COMPLETED mentorship
// @Tags mentorship
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Request ID"
// @Param request body dto.SubmitFeedbackRequest true "Rating and optional review"
// @Success 200 {object} dto.APIResponse{data=dto.MentorshipRequestResponse} "Feedback recorded"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Not a party"
// @Failure 404 {object} dto.ErrorResponse "Request not found"
// @Failure 409 {object} dto.ErrorResponse "Not completed or feedback already given"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /mentorship/requests/{id}/feedback [post]
func (c *MentorshipController) SubmitFeedback(ctx *gin.Context) {
	requestID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	userID, _ := middleware.GetUserID(ctx)

	var req dto.SubmitFeedbackRequest
	if !middleware.BindAndValidate(ctx, &req) {
		return
	}

	resp, err := c.mentorshipService.SubmitFeedback(ctx.Request.Context(), requestID, userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}
