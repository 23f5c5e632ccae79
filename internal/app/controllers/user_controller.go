package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/emre/alumnihub/internal/app/models/dto"
	"github.com/emre/alumnihub/internal/app/services"
	"github.com/emre/alumnihub/internal/middleware"
	"github.com/emre/alumnihub/internal/pkg/helpers"
)

// UserController handles directory and profile operations
type UserController struct {
	userService *services.UserService
	logger      zerolog.Logger
}

// NewUserController creates a new UserController
func NewUserController(userService *services.UserService, logger zerolog.Logger) *UserController {
	return &UserController{
		userService: userService,
		logger:      logger,
	}
}

func parseUserFilter(ctx *gin.Context) *dto.UserFilterRequest {
	filter := &dto.UserFilterRequest{}
	filter.Page, filter.Limit = helpers.ParsePaginationParams(ctx)

	if v := ctx.Query("search"); v != "" {
		filter.Search = &v
	}
	if v := ctx.Query("batch"); v != "" {
		if batch, err := strconv.Atoi(v); err == nil {
			filter.Batch = &batch
		}
	}
	if v := ctx.Query("location"); v != "" {
		filter.Location = &v
	}
	if v := ctx.Query("skill"); v != "" {
		filter.Skill = &v
	}
	if v := ctx.Query("mentorshipAvailable"); v != "" {
		if available, err := strconv.ParseBool(v); err == nil {
			filter.MentorshipAvailable = &available
		}
	}
	return filter
}

// GetUsers lists the alumni directory
// @Summary List users
// @Description Lists active users matching the filters. Anonymous callers only see PUBLIC profiles; authenticated callers also see ALUMNI_ONLY profiles.
// @Tags users
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(10)
// @Param search query string false "Search in name, company and skills"
// @Param batch query int false "Graduation batch"
// @Param location query string false "Location substring"
// @Param skill query string false "Exact skill"
// @Param mentorshipAvailable query bool false "Only users open to mentoring"
// @Success 200 {object} dto.APIResponse{data=dto.UserListResponse} "User list"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /users [get]
func (c *UserController) GetUsers(ctx *gin.Context) {
	filter := parseUserFilter(ctx)

	var viewerID *int64
	if userID, ok := middleware.GetUserID(ctx); ok {
		viewerID = &userID
	}

	resp, err := c.userService.GetUsers(ctx.Request.Context(), filter, viewerID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// GetMentors lists users open to mentoring
// @Summary List mentors
// @Description Lists active users who opted into mentoring, with the same filters as the directory
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(10)
// @Param search query string false "Search in name, company and skills"
// @Param skill query string false "Exact skill"
// @Success 200 {object} dto.APIResponse{data=dto.UserListResponse} "Mentor list"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /users/mentors [get]
func (c *UserController) GetMentors(ctx *gin.Context) {
	userID, _ := middleware.GetUserID(ctx)
	filter := parseUserFilter(ctx)

	resp, err := c.userService.GetMentors(ctx.Request.Context(), filter, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// GetUser retrieves a single profile
// @Summary Get user
// @Description Retrieves a profile if its visibility tier allows the caller to see it
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} dto.APIResponse{data=dto.UserResponse} "Profile"
// @Failure 400 {object} dto.ErrorResponse "Invalid user ID"
// @Failure 404 {object} dto.ErrorResponse "User not found or not visible"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /users/{id} [get]
func (c *UserController) GetUser(ctx *gin.Context) {
	targetID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var viewerID *int64
	if userID, ok := middleware.GetUserID(ctx); ok {
		viewerID = &userID
	}

	resp, err := c.userService.GetUser(ctx.Request.Context(), targetID, viewerID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// UpdateProfile applies a partial update to the caller's profile
// @Summary Update own profile
// @Description Applies the non-nil fields of the request to the caller's profile
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UpdateProfileRequest true "Profile fields to update"
// @Success 200 {object} dto.APIResponse{data=dto.UserResponse} "Updated profile"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /users/me [put]
func (c *UserController) UpdateProfile(ctx *gin.Context) {
	userID, _ := middleware.GetUserID(ctx)

	var req dto.UpdateProfileRequest
	if !middleware.BindAndValidate(ctx, &req) {
		return
	}

	resp, err := c.userService.UpdateProfile(ctx.Request.Context(), userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// UpdatePreferences updates visibility and mentorship opt-in
// @Summary Update preferences
// @Description Updates the caller's profile visibility and mentorship availability
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UpdatePreferencesRequest true "Preference fields to update"
// @Success 200 {object} dto.APIResponse{data=dto.UserResponse} "Updated profile"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /users/me/preferences [put]
func (c *UserController) UpdatePreferences(ctx *gin.Context) {
	userID, _ := middleware.GetUserID(ctx)

	var req dto.UpdatePreferencesRequest
	if !middleware.BindAndValidate(ctx, &req) {
		return
	}

	resp, err := c.userService.UpdatePreferences(ctx.Request.Context(), userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// UpdateMentorshipProfile updates the caller's mentorship profile
// @Summary Update mentorship profile
// @Description Updates the caller's mentorship expertise, experience and availability level
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UpdateMentorshipProfileRequest true "Mentorship profile fields"
// @Success 200 {object} dto.APIResponse{data=dto.UserResponse} "Updated profile"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /users/me/mentorship-profile [put]
func (c *UserController) UpdateMentorshipProfile(ctx *gin.Context) {
	userID, _ := middleware.GetUserID(ctx)

	var req dto.UpdateMentorshipProfileRequest
	if !middleware.BindAndValidate(ctx, &req) {
		return
	}

	resp, err := c.userService.UpdateMentorshipProfile(ctx.Request.Context(), userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// DeactivateAccount disables the caller's account
// @Summary Deactivate own account
// @Description Disables the account, revokes all refresh tokens and hides the profile everywhere
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse "Account deactivated"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /users/me [delete]
func (c *UserController) DeactivateAccount(ctx *gin.Context) {
	userID, _ := middleware.GetUserID(ctx)

	if err := c.userService.DeactivateAccount(ctx.Request.Context(), userID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessMessageResponse(nil, "Account deactivated"))
}
