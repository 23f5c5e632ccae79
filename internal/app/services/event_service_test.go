package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/emre/alumnihub/internal/app/models"
	"github.com/emre/alumnihub/internal/app/repositories"
	"github.com/emre/alumnihub/internal/pkg/apperrors"
	"github.com/emre/alumnihub/internal/pkg/websocket"
)

// servicePool connects to the database named by DATABASE_URL. Tests that
// need a live database are skipped when the variable is unset.
func servicePool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	url := os.Getenv("DATABASE_URL")
	if url == "" {
		t.Skip("DATABASE_URL not set, skipping integration test")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		t.Fatalf("failed to connect: %v", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		t.Fatalf("failed to ping database: %v", err)
	}
	t.Cleanup(pool.Close)
	return pool
}

func createServiceUser(t *testing.T, pool *pgxpool.Pool, repo *repositories.UserRepository) int64 {
	t.Helper()

	id, err := repo.Create(context.Background(), &models.User{
		Email:             fmt.Sprintf("it-%s@alumni.test", uuid.NewString()),
		Password:          "not-a-real-hash",
		FirstName:         "Integration",
		LastName:          "Test",
		RoleType:          models.RoleAlumni,
		ProfileVisibility: models.VisibilityPublic,
	})
	if err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	t.Cleanup(func() {
		_, _ = pool.Exec(context.Background(), "DELETE FROM users WHERE id = $1", id)
	})
	return id
}

func TestEventRegistrationCapacityFlow(t *testing.T) {
	pool := servicePool(t)
	userRepo := repositories.NewUserRepository(pool)
	eventRepo := repositories.NewEventRepository(pool)
	svc := NewEventService(eventRepo, userRepo, NewAuthorizationService(), websocket.NoopNotifier{}, zerolog.Nop())
	ctx := context.Background()

	organizerID := createServiceUser(t, pool, userRepo)
	firstID := createServiceUser(t, pool, userRepo)
	secondID := createServiceUser(t, pool, userRepo)

	one := 1
	eventID, err := eventRepo.Create(ctx, &models.Event{
		Title:        "Capacity flow",
		Description:  "Single-seat event",
		EventDate:    time.Now().Add(48 * time.Hour),
		StartTime:    "18:00",
		Location:     "Main hall",
		OrganizerID:  organizerID,
		MaxAttendees: &one,
		Status:       models.EventStatusPublished,
		IsPublic:     true,
	})
	if err != nil {
		t.Fatalf("create event failed: %v", err)
	}
	t.Cleanup(func() {
		_, _ = pool.Exec(context.Background(), "DELETE FROM event_attendees WHERE event_id = $1", eventID)
		_, _ = pool.Exec(context.Background(), "DELETE FROM events WHERE id = $1", eventID)
	})

	if _, err := svc.Register(ctx, eventID, firstID); err != nil {
		t.Fatalf("first registration failed: %v", err)
	}

	if _, err := svc.Register(ctx, eventID, secondID); !errors.Is(err, apperrors.ErrEventFull) {
		t.Errorf("second registration on a full event should return ErrEventFull, got %v", err)
	}

	// The registered user gets the duplicate answer even when the event is full
	if _, err := svc.Register(ctx, eventID, firstID); !errors.Is(err, apperrors.ErrAlreadyRegistered) {
		t.Errorf("re-registering should return ErrAlreadyRegistered, got %v", err)
	}

	if err := svc.Unregister(ctx, eventID, firstID); err != nil {
		t.Fatalf("unregister failed: %v", err)
	}

	// Unregistering frees the seat
	if _, err := svc.Register(ctx, eventID, secondID); err != nil {
		t.Errorf("registration after a seat freed up should succeed, got %v", err)
	}
}
