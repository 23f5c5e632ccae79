package dto

import (
	"time"

	"github.com/emre/alumnihub/internal/app/models"
)

// --- Request DTOs ---

// SendChatMessageRequest represents data for sending a new chat message
type SendChatMessageRequest struct {
	MessageType string  `json:"messageType,omitempty" binding:"omitempty,oneof=TEXT IMAGE FILE"`
	Content     string  `json:"content" binding:"required,min=1,max=5000"`
	ReplyToID   *int64  `json:"replyToId,omitempty"`
	Mentions    []int64 `json:"mentions,omitempty" binding:"omitempty,max=20"`
}

// EditChatMessageRequest represents a sender's edit of their own message
type EditChatMessageRequest struct {
	Content string `json:"content" binding:"required,min=1,max=5000"`
}

// ReactionRequest adds or removes an emoji reaction
type ReactionRequest struct {
	Emoji string `json:"emoji" binding:"required,min=1,max=16"`
}

// GetChatMessagesRequest represents cursor parameters for message history
type GetChatMessagesRequest struct {
	Before *time.Time `form:"before"`
	After  *time.Time `form:"after"`
	Limit  int        `form:"limit,default=50" binding:"omitempty,min=1,max=100"`
}

// --- Response DTOs ---

// ChatReactionResponse is a single emoji reaction on a message
type ChatReactionResponse struct {
	UserID int64  `json:"userId"`
	Emoji  string `json:"emoji"`
}

// ChatMessageResponse represents a chat message with sender information
type ChatMessageResponse struct {
	ID          int64                  `json:"id"`
	SenderID    int64                  `json:"senderId"`
	SenderName  string                 `json:"senderName,omitempty"`
	MessageType string                 `json:"messageType"`
	Content     string                 `json:"content"`
	ReplyToID   *int64                 `json:"replyToId,omitempty"`
	Mentions    []int64                `json:"mentions,omitempty"`
	Reactions   []ChatReactionResponse `json:"reactions"`
	IsEdited    bool                   `json:"isEdited"`
	EditedAt    *time.Time             `json:"editedAt,omitempty"`
	IsDeleted   bool                   `json:"isDeleted"`
	CreatedAt   time.Time              `json:"createdAt"`
}

// ChatMessageListResponse represents a page of chat history
type ChatMessageListResponse struct {
	Messages []ChatMessageResponse `json:"messages"`
}

// ToChatMessageResponse transforms a models.ChatMessage into its projection
func ToChatMessageResponse(message *models.ChatMessage) ChatMessageResponse {
	resp := ChatMessageResponse{
		ID:          message.ID,
		SenderID:    message.SenderID,
		MessageType: string(message.MessageType),
		Content:     message.Content,
		ReplyToID:   message.ReplyToID,
		Mentions:    message.Mentions,
		IsEdited:    message.IsEdited,
		EditedAt:    message.EditedAt,
		IsDeleted:   message.IsDeleted,
		CreatedAt:   message.CreatedAt,
	}

	if message.Sender != nil {
		resp.SenderName = message.Sender.FullName()
	}

	resp.Reactions = make([]ChatReactionResponse, 0, len(message.Reactions))
	for _, r := range message.Reactions {
		resp.Reactions = append(resp.Reactions, ChatReactionResponse{
			UserID: r.UserID,
			Emoji:  r.Emoji,
		})
	}

	return resp
}
