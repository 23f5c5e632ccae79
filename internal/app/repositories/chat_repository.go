package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/emre/alumnihub/internal/app/models"
	"github.com/emre/alumnihub/internal/pkg/apperrors"
	"github.com/emre/alumnihub/internal/pkg/dberrors"
)

// ChatRepository handles database operations for the community chat room
// and its owned reaction and mention rows.
type ChatRepository struct {
	db *pgxpool.Pool
}

// NewChatRepository creates a new ChatRepository
func NewChatRepository(db *pgxpool.Pool) *ChatRepository {
	return &ChatRepository{db: db}
}

const chatColumns = `m.id, m.sender_id, m.message_type, m.content, m.reply_to_id,
	m.is_edited, m.edited_at, m.is_deleted, m.deleted_at, m.created_at, m.updated_at`

func scanChatMessage(row pgx.Row) (*models.ChatMessage, error) {
	var msg models.ChatMessage
	err := row.Scan(
		&msg.ID,
		&msg.SenderID,
		&msg.MessageType,
		&msg.Content,
		&msg.ReplyToID,
		&msg.IsEdited,
		&msg.EditedAt,
		&msg.IsDeleted,
		&msg.DeletedAt,
		&msg.CreatedAt,
		&msg.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &msg, nil
}

// Create inserts a message and its mention rows in a single transaction
func (r *ChatRepository) Create(ctx context.Context, msg *models.ChatMessage) (int64, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO chat_messages (sender_id, message_type, content, reply_to_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	err = tx.QueryRow(ctx, query, msg.SenderID, msg.MessageType, msg.Content, msg.ReplyToID).
		Scan(&msg.ID, &msg.CreatedAt)
	if err != nil {
		return 0, fmt.Errorf("failed to create chat message: %w", err)
	}

	for _, userID := range msg.Mentions {
		_, err := tx.Exec(ctx,
			`INSERT INTO chat_mentions (message_id, user_id) VALUES ($1, $2)`, msg.ID, userID)
		if err != nil {
			return 0, fmt.Errorf("failed to insert mention: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to commit chat message: %w", err)
	}
	return msg.ID, nil
}

// GetByID retrieves a message without its reactions or mentions
func (r *ChatRepository) GetByID(ctx context.Context, id int64) (*models.ChatMessage, error) {
	query := fmt.Sprintf(`SELECT %s FROM chat_messages m WHERE m.id = $1`, chatColumns)

	msg, err := scanChatMessage(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrMessageNotFound
		}
		return nil, fmt.Errorf("failed to get chat message: %w", err)
	}
	return msg, nil
}

// GetHistory retrieves messages in reverse chronological order, optionally
// bounded by a before/after timestamp cursor, with reactions and mentions
// populated.
func (r *ChatRepository) GetHistory(ctx context.Context, before, after *time.Time, limit int) ([]models.ChatMessage, error) {
	builder := squirrel.Select(chatColumns,
		"u.id, u.first_name, u.last_name, u.email, u.batch, u.company").
		From("chat_messages m").
		Join("users u ON m.sender_id = u.id").
		PlaceholderFormat(squirrel.Dollar)

	if before != nil {
		builder = builder.Where("m.created_at < ?", *before)
	}
	if after != nil {
		builder = builder.Where("m.created_at > ?", *after)
	}

	builder = builder.OrderBy("m.created_at DESC", "m.id DESC").Limit(uint64(limit))

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query chat history: %w", err)
	}
	defer rows.Close()

	messages := []models.ChatMessage{}
	ids := []int64{}
	for rows.Next() {
		var msg models.ChatMessage
		var sender models.User
		err := rows.Scan(
			&msg.ID,
			&msg.SenderID,
			&msg.MessageType,
			&msg.Content,
			&msg.ReplyToID,
			&msg.IsEdited,
			&msg.EditedAt,
			&msg.IsDeleted,
			&msg.DeletedAt,
			&msg.CreatedAt,
			&msg.UpdatedAt,
			&sender.ID,
			&sender.FirstName,
			&sender.LastName,
			&sender.Email,
			&sender.Batch,
			&sender.Company,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan chat row: %w", err)
		}
		msg.Sender = &sender
		messages = append(messages, msg)
		ids = append(ids, msg.ID)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating chat rows: %w", err)
	}
	if len(messages) == 0 {
		return messages, nil
	}

	if err := r.attachReactions(ctx, messages, ids); err != nil {
		return nil, err
	}
	if err := r.attachMentions(ctx, messages, ids); err != nil {
		return nil, err
	}
	return messages, nil
}

func (r *ChatRepository) attachReactions(ctx context.Context, messages []models.ChatMessage, ids []int64) error {
	rows, err := r.db.Query(ctx, `
		SELECT id, message_id, user_id, emoji, created_at
		FROM chat_reactions
		WHERE message_id = ANY($1)
		ORDER BY created_at ASC
	`, ids)
	if err != nil {
		return fmt.Errorf("failed to query reactions: %w", err)
	}
	defer rows.Close()

	byMessage := make(map[int64][]models.ChatReaction)
	for rows.Next() {
		var reaction models.ChatReaction
		err := rows.Scan(
			&reaction.ID,
			&reaction.MessageID,
			&reaction.UserID,
			&reaction.Emoji,
			&reaction.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to scan reaction row: %w", err)
		}
		byMessage[reaction.MessageID] = append(byMessage[reaction.MessageID], reaction)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating reaction rows: %w", err)
	}

	for i := range messages {
		messages[i].Reactions = byMessage[messages[i].ID]
		if messages[i].Reactions == nil {
			messages[i].Reactions = []models.ChatReaction{}
		}
	}
	return nil
}

func (r *ChatRepository) attachMentions(ctx context.Context, messages []models.ChatMessage, ids []int64) error {
	rows, err := r.db.Query(ctx, `
		SELECT message_id, user_id FROM chat_mentions WHERE message_id = ANY($1)
	`, ids)
	if err != nil {
		return fmt.Errorf("failed to query mentions: %w", err)
	}
	defer rows.Close()

	byMessage := make(map[int64][]int64)
	for rows.Next() {
		var messageID, userID int64
		if err := rows.Scan(&messageID, &userID); err != nil {
			return fmt.Errorf("failed to scan mention row: %w", err)
		}
		byMessage[messageID] = append(byMessage[messageID], userID)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating mention rows: %w", err)
	}

	for i := range messages {
		messages[i].Mentions = byMessage[messages[i].ID]
		if messages[i].Mentions == nil {
			messages[i].Mentions = []int64{}
		}
	}
	return nil
}

// UpdateContent replaces the message body and flags it as edited
func (r *ChatRepository) UpdateContent(ctx context.Context, messageID int64, content string, editedAt time.Time) error {
	query := `
		UPDATE chat_messages
		SET content = $1, is_edited = TRUE, edited_at = $2, updated_at = NOW()
		WHERE id = $3
	`

	tag, err := r.db.Exec(ctx, query, content, editedAt, messageID)
	if err != nil {
		return fmt.Errorf("failed to update chat message: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrMessageNotFound
	}
	return nil
}

// SoftDelete blanks the content with a placeholder and keeps the row so
// reply threads stay intact.
func (r *ChatRepository) SoftDelete(ctx context.Context, messageID int64) error {
	query := `
		UPDATE chat_messages
		SET content = $1, is_deleted = TRUE, deleted_at = NOW(), updated_at = NOW()
		WHERE id = $2
	`

	tag, err := r.db.Exec(ctx, query, models.DeletedContentPlaceholder, messageID)
	if err != nil {
		return fmt.Errorf("failed to delete chat message: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrMessageNotFound
	}
	return nil
}

// AddReaction inserts a reaction row. One row per (message, user, emoji).
func (r *ChatRepository) AddReaction(ctx context.Context, messageID, userID int64, emoji string) error {
	query := `
		INSERT INTO chat_reactions (message_id, user_id, emoji)
		VALUES ($1, $2, $3)
	`
	if _, err := r.db.Exec(ctx, query, messageID, userID, emoji); err != nil {
		if dberrors.IsDuplicateConstraintError(err, "chat_reactions_message_user_emoji_key") {
			return apperrors.ErrAlreadyReacted
		}
		return fmt.Errorf("failed to add reaction: %w", err)
	}
	return nil
}

// RemoveReaction deletes a reaction row. Removing an absent reaction is
// not an error.
func (r *ChatRepository) RemoveReaction(ctx context.Context, messageID, userID int64, emoji string) error {
	_, err := r.db.Exec(ctx,
		`DELETE FROM chat_reactions WHERE message_id = $1 AND user_id = $2 AND emoji = $3`,
		messageID, userID, emoji)
	if err != nil {
		return fmt.Errorf("failed to remove reaction: %w", err)
	}
	return nil
}

// GetReactions lists all reactions on a message
func (r *ChatRepository) GetReactions(ctx context.Context, messageID int64) ([]models.ChatReaction, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, message_id, user_id, emoji, created_at
		FROM chat_reactions
		WHERE message_id = $1
		ORDER BY created_at ASC
	`, messageID)
	if err != nil {
		return nil, fmt.Errorf("failed to query reactions: %w", err)
	}
	defer rows.Close()

	reactions := []models.ChatReaction{}
	for rows.Next() {
		var reaction models.ChatReaction
		err := rows.Scan(
			&reaction.ID,
			&reaction.MessageID,
			&reaction.UserID,
			&reaction.Emoji,
			&reaction.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan reaction row: %w", err)
		}
		reactions = append(reactions, reaction)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating reaction rows: %w", err)
	}
	return reactions, nil
}
