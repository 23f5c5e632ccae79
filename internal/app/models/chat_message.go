package models

import "time"

// ChatMessageType represents the type of chat message
type ChatMessageType string

const (
	ChatMessageTypeText  ChatMessageType = "TEXT"
	ChatMessageTypeImage ChatMessageType = "IMAGE"
	ChatMessageTypeFile  ChatMessageType = "FILE"
)

// EditWindow is how long a sender may edit a message after sending it
const EditWindow = 15 * time.Minute

// DeletedContentPlaceholder replaces the content of soft-deleted messages
const DeletedContentPlaceholder = "This message was deleted"

// ChatMessage represents a message in the alumni chat
type ChatMessage struct {
	ID          int64           `json:"id" db:"id"`
	SenderID    int64           `json:"senderId" db:"sender_id"`
	MessageType ChatMessageType `json:"messageType" db:"message_type"`
	Content     string          `json:"content" db:"content"`
	ReplyToID   *int64          `json:"replyToId,omitempty" db:"reply_to_id"`
	IsEdited    bool            `json:"isEdited" db:"is_edited"`
	EditedAt    *time.Time      `json:"editedAt,omitempty" db:"edited_at"`
	IsDeleted   bool            `json:"isDeleted" db:"is_deleted"`
	DeletedAt   *time.Time      `json:"deletedAt,omitempty" db:"deleted_at"`
	CreatedAt   time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time       `json:"updatedAt" db:"updated_at"`

	// Related entities
	Sender    *User          `json:"sender,omitempty"`
	Reactions []ChatReaction `json:"reactions,omitempty"`
	Mentions  []int64        `json:"mentions,omitempty"`
}

// ChatReaction is an owned child row of a message ('chat_reactions' table).
// At most one row per (message, user, emoji).
type ChatReaction struct {
	ID        int64     `json:"id" db:"id"`
	MessageID int64     `json:"messageId" db:"message_id"`
	UserID    int64     `json:"userId" db:"user_id"`
	Emoji     string    `json:"emoji" db:"emoji"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// EditableAt reports whether the message can still be edited at the given
// instant. Only applies to the sender; deleted messages are never editable.
func (m *ChatMessage) EditableAt(now time.Time) bool {
	if m.IsDeleted {
		return false
	}
	return now.Sub(m.CreatedAt) <= EditWindow
}
