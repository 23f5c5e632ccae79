package repositories

import (
	"context"
	"errors"
	"testing"

	"github.com/emre/alumnihub/internal/app/models"
	"github.com/emre/alumnihub/internal/pkg/apperrors"
)

func TestChatReactionUniqueness(t *testing.T) {
	pool := testPool(t)
	userRepo := NewUserRepository(pool)
	repo := NewChatRepository(pool)
	ctx := context.Background()

	senderID := createTestUser(t, pool, userRepo)
	reactorID := createTestUser(t, pool, userRepo)

	messageID, err := repo.Create(ctx, &models.ChatMessage{
		SenderID:    senderID,
		MessageType: models.ChatMessageTypeText,
		Content:     "reaction uniqueness check",
	})
	if err != nil {
		t.Fatalf("create message failed: %v", err)
	}
	t.Cleanup(func() {
		_, _ = pool.Exec(context.Background(), "DELETE FROM chat_reactions WHERE message_id = $1", messageID)
		_, _ = pool.Exec(context.Background(), "DELETE FROM chat_messages WHERE id = $1", messageID)
	})

	if err := repo.AddReaction(ctx, messageID, reactorID, "👍"); err != nil {
		t.Fatalf("first reaction failed: %v", err)
	}

	if err := repo.AddReaction(ctx, messageID, reactorID, "👍"); !errors.Is(err, apperrors.ErrAlreadyReacted) {
		t.Errorf("duplicate user+emoji should return ErrAlreadyReacted, got %v", err)
	}

	// A different emoji from the same user is a distinct reaction
	if err := repo.AddReaction(ctx, messageID, reactorID, "🎉"); err != nil {
		t.Errorf("different emoji from the same user should succeed, got %v", err)
	}

	if err := repo.RemoveReaction(ctx, messageID, reactorID, "👍"); err != nil {
		t.Fatalf("remove reaction failed: %v", err)
	}

	// Removing an absent reaction is a no-op, not an error
	if err := repo.RemoveReaction(ctx, messageID, reactorID, "👍"); err != nil {
		t.Errorf("removing an absent reaction should succeed, got %v", err)
	}

	reactions, err := repo.GetReactions(ctx, messageID)
	if err != nil {
		t.Fatalf("get reactions failed: %v", err)
	}
	if len(reactions) != 1 || reactions[0].Emoji != "🎉" {
		t.Errorf("expected only the 🎉 reaction to remain, got %+v", reactions)
	}
}
