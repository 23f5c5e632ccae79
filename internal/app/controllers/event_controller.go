package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/emre/alumnihub/internal/app/models"
	"github.com/emre/alumnihub/internal/app/models/dto"
	"github.com/emre/alumnihub/internal/app/services"
	"github.com/emre/alumnihub/internal/middleware"
	"github.com/emre/alumnihub/internal/pkg/helpers"
)

// EventController handles event lifecycle, registration and comment operations
type EventController struct {
	eventService *services.EventService
	logger       zerolog.Logger
}

// NewEventController creates a new EventController
func NewEventController(eventService *services.EventService, logger zerolog.Logger) *EventController {
	return &EventController{
		eventService: eventService,
		logger:       logger,
	}
}

func parseEventFilter(ctx *gin.Context) *dto.EventFilterRequest {
	filter := &dto.EventFilterRequest{}
	filter.Page, filter.Limit = helpers.ParsePaginationParams(ctx)

	if v := ctx.Query("status"); v != "" {
		filter.Status = &v
	}
	if v := ctx.Query("organizerId"); v != "" {
		if organizerID, err := strconv.ParseInt(v, 10, 64); err == nil {
			filter.OrganizerID = &organizerID
		}
	}
	if v := ctx.Query("upcoming"); v != "" {
		if upcoming, err := strconv.ParseBool(v); err == nil {
			filter.Upcoming = &upcoming
		}
	}
	if v := ctx.Query("search"); v != "" {
		filter.Search = &v
	}
	return filter
}

// GetEvents lists events
// @Summary List events
// @Description Lists events matching the filters. Anonymous callers only see published public events.
// @Tags events
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(10)
// @Param status query string false "Event status" Enums(DRAFT, PUBLISHED, CANCELLED, COMPLETED)
// @Param organizerId query int false "Filter by organizer"
// @Param upcoming query bool false "Only future events"
// @Param search query string false "Search in title, description and location"
// @Success 200 {object} dto.APIResponse{data=dto.EventListResponse} "Event list"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /events [get]
func (c *EventController) GetEvents(ctx *gin.Context) {
	filter := parseEventFilter(ctx)
	_, authenticated := middleware.GetUserID(ctx)

	resp, err := c.eventService.GetEvents(ctx.Request.Context(), filter, authenticated)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// GetEvent retrieves an event with attendees and comments
// @Summary Get event
// @Description Retrieves one event with its attendee list and comments
// @Tags events
// @Produce json
// @Param id path int true "Event ID"
// @Success 200 {object} dto.APIResponse{data=dto.EventDetailResponse} "Event detail"
// @Failure 400 {object} dto.ErrorResponse "Invalid event ID"
// @Failure 404 {object} dto.ErrorResponse "Event not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /events/{id} [get]
func (c *EventController) GetEvent(ctx *gin.Context) {
	eventID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	_, authenticated := middleware.GetUserID(ctx)

	resp, err := c.eventService.GetEvent(ctx.Request.Context(), eventID, authenticated)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// CreateEvent creates a draft event
// @Summary Create event
// @Description Creates a new event in DRAFT state with the caller as organizer
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateEventRequest true "Event information"
// @Success 201 {object} dto.APIResponse{data=dto.EventResponse} "Event created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 409 {object} dto.ErrorResponse "Event date is in the past"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /events [post]
func (c *EventController) CreateEvent(ctx *gin.Context) {
	userID, _ := middleware.GetUserID(ctx)

	var req dto.CreateEventRequest
	if !middleware.BindAndValidate(ctx, &req) {
		return
	}

	resp, err := c.eventService.CreateEvent(ctx.Request.Context(), userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(resp))
}

// PublishEvent publishes a draft event
// @Summary Publish event
// @Description Moves a DRAFT event to PUBLISHED and announces it to connected clients
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Success 200 {object} dto.APIResponse{data=dto.EventResponse} "Event published"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Not the organizer"
// @Failure 404 {object} dto.ErrorResponse "Event not found"
// @Failure 409 {object} dto.ErrorResponse "Event is not a draft"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /events/{id}/publish [post]
func (c *EventController) PublishEvent(ctx *gin.Context) {
	eventID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	userID, _ := middleware.GetUserID(ctx)
	role := models.RoleType(middleware.GetRole(ctx))

	resp, err := c.eventService.PublishEvent(ctx.Request.Context(), eventID, userID, role)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// UpdateEvent applies a partial update to an event
// @Summary Update event
// @Description Applies the non-nil fields. Date, time and location are frozen once attendees exist.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Param request body dto.UpdateEventRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=dto.EventResponse} "Updated event"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Not the organizer"
// @Failure 404 {object} dto.ErrorResponse "Event not found"
// @Failure 409 {object} dto.ErrorResponse "Frozen fields touched with attendees present"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /events/{id} [put]
func (c *EventController) UpdateEvent(ctx *gin.Context) {
	eventID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	userID, _ := middleware.GetUserID(ctx)
	role := models.RoleType(middleware.GetRole(ctx))

	var req dto.UpdateEventRequest
	if !middleware.BindAndValidate(ctx, &req) {
		return
	}

	resp, err := c.eventService.UpdateEvent(ctx.Request.Context(), eventID, userID, role, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// DeleteEvent removes or cancels an event
// @Summary Delete event
// @Description Deletes an event without attendees; cancels it instead when registrations exist
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Success 200 {object} dto.APIResponse "Event removed or cancelled"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Not the organizer"
// @Failure 404 {object} dto.ErrorResponse "Event not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /events/{id} [delete]
func (c *EventController) DeleteEvent(ctx *gin.Context) {
	eventID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	userID, _ := middleware.GetUserID(ctx)
	role := models.RoleType(middleware.GetRole(ctx))

	if err := c.eventService.DeleteEvent(ctx.Request.Context(), eventID, userID, role); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessMessageResponse(nil, "Event removed"))
}

// Register adds the caller to the attendee list
// @Summary Register for event
// @Description Registers the caller for a published event with open registration and free capacity
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Success 200 {object} dto.APIResponse{data=dto.EventResponse} "Registered"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Event not found"
// @Failure 409 {object} dto.ErrorResponse "Full, closed, past or already registered"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /events/{id}/register [post]
func (c *EventController) Register(ctx *gin.Context) {
	eventID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	userID, _ := middleware.GetUserID(ctx)

	resp, err := c.eventService.Register(ctx.Request.Context(), eventID, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// Unregister removes the caller's registration
// @Summary Unregister from event
// @Description Removes the caller's registration from an event
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Success 200 {object} dto.APIResponse "Unregistered"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Event not found"
// @Failure 409 {object} dto.ErrorResponse "Not registered"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /events/{id}/register [delete]
func (c *EventController) Unregister(ctx *gin.Context) {
	eventID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	userID, _ := middleware.GetUserID(ctx)

	if err := c.eventService.Unregister(ctx.Request.Context(), eventID, userID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessMessageResponse(nil, "Unregistered from event"))
}

// MarkAttendance flips a registration to ATTENDED
// @Summary Mark attendance
// @Description Lets the organizer mark a registrant as attended
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Param userId path int true "Attendee user ID"
// @Success 200 {object} dto.APIResponse "Attendance marked"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Not the organizer"
// @Failure 404 {object} dto.ErrorResponse "Event not found"
// @Failure 409 {object} dto.ErrorResponse "User is not registered"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /events/{id}/attendees/{userId}/attendance [post]
func (c *EventController) MarkAttendance(ctx *gin.Context) {
	eventID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	attendeeID, ok := parseIDParam(ctx, "userId")
	if !ok {
		return
	}
	userID, _ := middleware.GetUserID(ctx)
	role := models.RoleType(middleware.GetRole(ctx))

	if err := c.eventService.MarkAttendance(ctx.Request.Context(), eventID, userID, attendeeID, role); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessMessageResponse(nil, "Attendance marked"))
}

// AddComment appends a comment to an event
// @Summary Comment on event
// @Description Appends a comment to an event. Comments cannot be edited or removed.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Param request body dto.CreateEventCommentRequest true "Comment content"
// @Success 201 {object} dto.APIResponse{data=dto.EventCommentResponse} "Comment added"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Event not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /events/{id}/comments [post]
func (c *EventController) AddComment(ctx *gin.Context) {
	eventID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	userID, _ := middleware.GetUserID(ctx)

	var req dto.CreateEventCommentRequest
	if !middleware.BindAndValidate(ctx, &req) {
		return
	}

	resp, err := c.eventService.AddComment(ctx.Request.Context(), eventID, userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(resp))
}

// GetMyRegistrations lists the caller's registrations
// @Summary List own registrations
// @Description Lists every event the caller has a registration on
// @Tags events
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.EventResponse} "Registered events"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /events/my-registrations [get]
func (c *EventController) GetMyRegistrations(ctx *gin.Context) {
	userID, _ := middleware.GetUserID(ctx)

	resp, err := c.eventService.GetMyRegistrations(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}
