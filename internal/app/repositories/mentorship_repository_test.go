package repositories

import (
	"context"
	"errors"
	"testing"

	"github.com/emre/alumnihub/internal/app/models"
	"github.com/emre/alumnihub/internal/pkg/apperrors"
)

func TestMentorshipActivePairConstraint(t *testing.T) {
	pool := testPool(t)
	userRepo := NewUserRepository(pool)
	repo := NewMentorshipRepository(pool)
	ctx := context.Background()

	menteeID := createTestUser(t, pool, userRepo)
	mentorID := createTestUser(t, pool, userRepo)
	t.Cleanup(func() {
		_, _ = pool.Exec(context.Background(),
			"DELETE FROM mentorship_requests WHERE mentee_id = $1", menteeID)
	})

	newRequest := func() *models.MentorshipRequest {
		return &models.MentorshipRequest{
			MenteeID:             menteeID,
			MentorID:             mentorID,
			Subject:              "Career advice",
			Message:              "Looking for guidance on backend roles",
			MentorshipType:       models.MentorshipTypeCareer,
			PreferredMeetingType: models.MeetingTypeVideo,
		}
	}

	firstID, err := repo.Create(ctx, newRequest())
	if err != nil {
		t.Fatalf("first request failed: %v", err)
	}

	if _, err := repo.Create(ctx, newRequest()); !errors.Is(err, apperrors.ErrActiveRequestExists) {
		t.Errorf("second live request for the same pair should return ErrActiveRequestExists, got %v", err)
	}

	// ACCEPTED still counts as a live request
	if err := repo.UpdateStatus(ctx, firstID, models.MentorshipStatusAccepted, nil, nil); err != nil {
		t.Fatalf("accept failed: %v", err)
	}
	if _, err := repo.Create(ctx, newRequest()); !errors.Is(err, apperrors.ErrActiveRequestExists) {
		t.Errorf("ACCEPTED request should still block a new one, got %v", err)
	}

	// A terminal request frees the pair
	if err := repo.UpdateStatus(ctx, firstID, models.MentorshipStatusCompleted, nil, nil); err != nil {
		t.Fatalf("complete failed: %v", err)
	}
	if _, err := repo.Create(ctx, newRequest()); err != nil {
		t.Errorf("completed request should not block a new one, got %v", err)
	}
}
