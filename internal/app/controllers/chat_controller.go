package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/emre/alumnihub/internal/app/models/dto"
	"github.com/emre/alumnihub/internal/app/services"
	"github.com/emre/alumnihub/internal/middleware"
)

// ChatController handles community chat operations
type ChatController struct {
	chatService *services.ChatService
	logger      zerolog.Logger
}

// NewChatController creates a new ChatController
func NewChatController(chatService *services.ChatService, logger zerolog.Logger) *ChatController {
	return &ChatController{
		chatService: chatService,
		logger:      logger,
	}
}

// GetMessages retrieves chat history
// @Summary Get chat history
// @Description Retrieves messages in reverse chronological order around an optional time cursor
// @Tags chat
// @Produce json
// @Security BearerAuth
// @Param before query string false "Only messages created before this time (RFC 3339)"
// @Param after query string false "Only messages created after this time (RFC 3339)"
// @Param limit query int false "Maximum messages to return" default(50)
// @Success 200 {object} dto.APIResponse{data=dto.ChatMessageListResponse} "Chat history"
// @Failure 400 {object} dto.ErrorResponse "Invalid cursor parameters"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /chat/messages [get]
func (c *ChatController) GetMessages(ctx *gin.Context) {
	var req dto.GetChatMessagesRequest
	if err := ctx.ShouldBindQuery(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, "Invalid query parameters").
			WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	resp, err := c.chatService.GetMessages(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// SendMessage stores and broadcasts a new message
// @Summary Send chat message
// @Description Stores a message and pushes it to every connected client. Mentioned users get a private notification.
// @Tags chat
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.SendChatMessageRequest true "Message content"
// @Success 201 {object} dto.APIResponse{data=dto.ChatMessageResponse} "Message sent"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Reply target not found"
// @Failure 409 {object} dto.ErrorResponse "Reply target was deleted"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /chat/messages [post]
func (c *ChatController) SendMessage(ctx *gin.Context) {
	userID, _ := middleware.GetUserID(ctx)

	var req dto.SendChatMessageRequest
	if !middleware.BindAndValidate(ctx, &req) {
		return
	}

	resp, err := c.chatService.SendMessage(ctx.Request.Context(), userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(resp))
}

// EditMessage replaces a message's content
// @Summary Edit chat message
// @Description Lets the sender edit a message within 15 minutes of sending it
// @Tags chat
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Message ID"
// @Param request body dto.EditChatMessageRequest true "New content"
// @Success 200 {object} dto.APIResponse{data=dto.ChatMessageResponse} "Message edited"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Not the sender"
// @Failure 404 {object} dto.ErrorResponse "Message not found"
// @Failure 409 {object} dto.ErrorResponse "Edit window closed or message deleted"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /chat/messages/{id} [put]
func (c *ChatController) EditMessage(ctx *gin.Context) {
	messageID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	userID, _ := middleware.GetUserID(ctx)

	var req dto.EditChatMessageRequest
	if !middleware.BindAndValidate(ctx, &req) {
		return
	}

	resp, err := c.chatService.EditMessage(ctx.Request.Context(), messageID, userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// DeleteMessage soft-deletes a message
// @Summary Delete chat message
// @Description Replaces the content with a placeholder and keeps the row so replies stay anchored
// @Tags chat
// @Produce json
// @Security BearerAuth
// @Param id path int true "Message ID"
// @Success 200 {object} dto.APIResponse "Message deleted"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Not the sender"
// @Failure 404 {object} dto.ErrorResponse "Message not found"
// @Failure 409 {object} dto.ErrorResponse "Message already deleted"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /chat/messages/{id} [delete]
func (c *ChatController) DeleteMessage(ctx *gin.Context) {
	messageID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	userID, _ := middleware.GetUserID(ctx)

	if err := c.chatService.DeleteMessage(ctx.Request.Context(), messageID, userID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessMessageResponse(nil, "Message deleted"))
}

// AddReaction adds an emoji reaction
// @Summary React to message
// @Description Adds one emoji reaction per user and emoji to a message
// @Tags chat
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Message ID"
// @Param request body dto.ReactionRequest true "Emoji"
// @Success 200 {object} dto.APIResponse "Reaction added"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Message not found"
// @Failure 409 {object} dto.ErrorResponse "Already reacted or message deleted"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /chat/messages/{id}/reactions [post]
func (c *ChatController) AddReaction(ctx *gin.Context) {
	messageID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	userID, _ := middleware.GetUserID(ctx)

	var req dto.ReactionRequest
	if !middleware.BindAndValidate(ctx, &req) {
		return
	}

	if err := c.chatService.AddReaction(ctx.Request.Context(), messageID, userID, req.Emoji); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessMessageResponse(nil, "Reaction added"))
}

// RemoveReaction removes the caller's reaction
// @Summary Remove reaction
// @Description Removes the caller's emoji reaction. Removing an absent reaction succeeds.
// @Tags chat
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Message ID"
// @Param request body dto.ReactionRequest true "Emoji"
// @Success 200 {object} dto.APIResponse "Reaction removed"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Message not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /chat/messages/{id}/reactions [delete]
func (c *ChatController) RemoveReaction(ctx *gin.Context) {
	messageID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	userID, _ := middleware.GetUserID(ctx)

	var req dto.ReactionRequest
	if !middleware.BindAndValidate(ctx, &req) {
		return
	}

	if err := c.chatService.RemoveReaction(ctx.Request.Context(), messageID, userID, req.Emoji); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessMessageResponse(nil, "Reaction removed"))
}
