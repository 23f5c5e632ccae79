package repositories

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/emre/alumnihub/internal/app/models"
	"github.com/emre/alumnihub/internal/pkg/apperrors"
)

// testPool connects to the database named by DATABASE_URL. Tests that need a
// live database are skipped when the variable is unset.
func testPool(t *testing.T) *pgxpool.Pool {
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

// createTestUser inserts a throwaway active user and registers its removal.
func createTestUser(t *testing.T, pool *pgxpool.Pool, repo *UserRepository) int64 {
	t.Helper()

	user := &models.User{
		Email:             fmt.Sprintf("it-%s@alumni.test", uuid.NewString()),
		Password:          "not-a-real-hash",
		FirstName:         "Integration",
		LastName:          "Test",
		RoleType:          models.RoleAlumni,
		ProfileVisibility: models.VisibilityPublic,
	}

	id, err := repo.Create(context.Background(), user)
	if err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	t.Cleanup(func() {
		_, _ = pool.Exec(context.Background(), "DELETE FROM users WHERE id = $1", id)
	})
	return id
}

func TestUserRepositoryLifecycle(t *testing.T) {
	pool := testPool(t)
	repo := NewUserRepository(pool)
	ctx := context.Background()

	email := fmt.Sprintf("it-%s@alumni.test", uuid.NewString())
	user := &models.User{
		Email:             email,
		Password:          "not-a-real-hash",
		FirstName:         "Integration",
		LastName:          "Test",
		RoleType:          models.RoleAlumni,
		ProfileVisibility: models.VisibilityPublic,
	}

	id, err := repo.Create(ctx, user)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	t.Cleanup(func() {
		_, _ = pool.Exec(context.Background(), "DELETE FROM users WHERE id = $1", id)
	})

	found, err := repo.FindByEmail(ctx, email)
	if err != nil {
		t.Fatalf("find by email failed: %v", err)
	}
	if found.ID != id || found.FirstName != "Integration" {
		t.Errorf("unexpected user returned: %+v", found)
	}
	if !found.IsActive {
		t.Error("new users should start active")
	}

	if _, err := repo.Create(ctx, user); !errors.Is(err, apperrors.ErrEmailAlreadyExists) {
		t.Errorf("duplicate email should return ErrEmailAlreadyExists, got %v", err)
	}

	if err := repo.Deactivate(ctx, id); err != nil {
		t.Fatalf("deactivate failed: %v", err)
	}
	deactivated, err := repo.FindByID(ctx, id)
	if err != nil {
		t.Fatalf("find after deactivate failed: %v", err)
	}
	if deactivated.IsActive {
		t.Error("deactivated user should not be active")
	}

	if _, err := repo.FindByID(ctx, -1); !errors.Is(err, apperrors.ErrUserNotFound) {
		t.Errorf("missing user should return ErrUserNotFound, got %v", err)
	}
}
