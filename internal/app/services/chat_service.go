package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/emre/alumnihub/internal/app/models"
	"github.com/emre/alumnihub/internal/app/models/dto"
	"github.com/emre/alumnihub/internal/app/repositories"
	"github.com/emre/alumnihub/internal/pkg/apperrors"
	"github.com/emre/alumnihub/internal/pkg/websocket"
)

// ChatService handles the community chat room: messages, edits, reactions
// and mentions. Writes go through the REST API; connected clients get the
// resulting events pushed over the hub.
type ChatService struct {
	chatRepo *repositories.ChatRepository
	userRepo *repositories.UserRepository
	authz    *AuthorizationService
	notifier websocket.Notifier
	logger   zerolog.Logger
}

// NewChatService creates a new ChatService
func NewChatService(
	chatRepo *repositories.ChatRepository,
	userRepo *repositories.UserRepository,
	authz *AuthorizationService,
	notifier websocket.Notifier,
	logger zerolog.Logger,
) *ChatService {
	return &ChatService{
		chatRepo: chatRepo,
		userRepo: userRepo,
		authz:    authz,
		notifier: notifier,
		logger:   logger,
	}
}

// GetMessages retrieves chat history around an optional message id cursor
func (s *ChatService) GetMessages(ctx context.Context, req *dto.GetChatMessagesRequest) (*dto.ChatMessageListResponse, error) {
	limit := req.Limit
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	messages, err := s.chatRepo.GetHistory(ctx, req.Before, req.After, limit)
	if err != nil {
		return nil, err
	}

	resp := &dto.ChatMessageListResponse{
		Messages: make([]dto.ChatMessageResponse, 0, len(messages)),
	}
	for i := range messages {
		resp.Messages = append(resp.Messages, dto.ToChatMessageResponse(&messages[i]))
	}
	return resp, nil
}

// SendMessage stores a new message and broadcasts it to the room. Mentioned
// users additionally get a private notification.
func (s *ChatService) SendMessage(ctx context.Context, senderID int64, req *dto.SendChatMessageRequest) (*dto.ChatMessageResponse, error) {
	if req.ReplyToID != nil {
		parent, err := s.chatRepo.GetByID(ctx, *req.ReplyToID)
		if err != nil {
			return nil, err
		}
		if parent.IsDeleted {
			return nil, apperrors.ErrMessageDeleted
		}
	}

	messageType := models.ChatMessageTypeText
	if req.MessageType != "" {
		messageType = models.ChatMessageType(req.MessageType)
	}

	msg := &models.ChatMessage{
		SenderID:    senderID,
		MessageType: messageType,
		Content:     req.Content,
		ReplyToID:   req.ReplyToID,
		Mentions:    req.Mentions,
	}

	if _, err := s.chatRepo.Create(ctx, msg); err != nil {
		return nil, err
	}

	if sender, err := s.userRepo.FindByID(ctx, senderID); err == nil {
		msg.Sender = sender
	}
	if msg.Reactions == nil {
		msg.Reactions = []models.ChatReaction{}
	}

	resp := dto.ToChatMessageResponse(msg)

	s.notifier.Publish(websocket.TopicChat, "chat.message", resp)
	for _, userID := range msg.Mentions {
		if userID == senderID {
			continue
		}
		s.notifier.Publish(websocket.UserTopic(userID), "chat.mention", resp)
	}

	s.logger.Debug().
		Int64("messageID", msg.ID).
		Int64("senderID", senderID).
		Msg("Chat message sent")

	return &resp, nil
}

// EditMessage replaces a message's content within the edit window
func (s *ChatService) EditMessage(ctx context.Context, messageID, userID int64, req *dto.EditChatMessageRequest) (*dto.ChatMessageResponse, error) {
	msg, err := s.chatRepo.GetByID(ctx, messageID)
	if err != nil {
		return nil, err
	}
	if err := s.authz.CanModifyMessage(msg, userID); err != nil {
		return nil, err
	}
	if msg.IsDeleted {
		return nil, apperrors.ErrMessageDeleted
	}

	now := time.Now()
	if !msg.EditableAt(now) {
		return nil, apperrors.ErrEditWindowClosed
	}

	if err := s.chatRepo.UpdateContent(ctx, messageID, req.Content, now); err != nil {
		return nil, err
	}

	msg.Content = req.Content
	msg.IsEdited = true
	msg.EditedAt = &now

	resp := dto.ToChatMessageResponse(msg)
	s.notifier.Publish(websocket.TopicChat, "chat.message.edited", resp)
	return &resp, nil
}

// DeleteMessage soft-deletes a message. The row stays so replies keep their
// anchor; the content is replaced with a placeholder.
func (s *ChatService) DeleteMessage(ctx context.Context, messageID, userID int64) error {
	msg, err := s.chatRepo.GetByID(ctx, messageID)
	if err != nil {
		return err
	}
	if err := s.authz.CanModifyMessage(msg, userID); err != nil {
		return err
	}
	if msg.IsDeleted {
		return apperrors.ErrMessageDeleted
	}

	if err := s.chatRepo.SoftDelete(ctx, messageID); err != nil {
		return err
	}

	s.notifier.Publish(websocket.TopicChat, "chat.message.deleted", map[string]interface{}{
		"messageId": messageID,
	})
	return nil
}

// AddReaction adds an emoji reaction to a message
func (s *ChatService) AddReaction(ctx context.Context, messageID, userID int64, emoji string) error {
	msg, err := s.chatRepo.GetByID(ctx, messageID)
	if err != nil {
		return err
	}
	if msg.IsDeleted {
		return apperrors.ErrMessageDeleted
	}

	if err := s.chatRepo.AddReaction(ctx, messageID, userID, emoji); err != nil {
		return err
	}

	s.notifier.Publish(websocket.TopicChat, "chat.reaction.added", map[string]interface{}{
		"messageId": messageID,
		"userId":    userID,
		"emoji":     emoji,
	})
	return nil
}

// RemoveReaction removes the caller's reaction. Removing one that does not
// exist is a no-op.
func (s *ChatService) RemoveReaction(ctx context.Context, messageID, userID int64, emoji string) error {
	if _, err := s.chatRepo.GetByID(ctx, messageID); err != nil {
		return err
	}

	if err := s.chatRepo.RemoveReaction(ctx, messageID, userID, emoji); err != nil {
		return err
	}

	s.notifier.Publish(websocket.TopicChat, "chat.reaction.removed", map[string]interface{}{
		"messageId": messageID,
		"userId":    userID,
		"emoji":     emoji,
	})
	return nil
}
