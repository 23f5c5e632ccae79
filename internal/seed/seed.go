package seed

import (
	"context"
	"errors"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	appModels "github.com/emre/alumnihub/internal/app/models"
	appRepos "github.com/emre/alumnihub/internal/app/repositories"
	"github.com/emre/alumnihub/internal/pkg/apperrors"
	"github.com/emre/alumnihub/internal/pkg/auth"
)

const defaultAdminEmail = "admin@alumnihub.app"

// CreateDefaultData ensures the platform has an initial admin account.
// Safe to run on every startup; existing data is left untouched.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	userRepo := appRepos.NewUserRepository(dbPool)

	lgr.Info().Msg("Checking/Creating default data (admin account)...")

	password := os.Getenv("ADMIN_INITIAL_PASSWORD")
	if password == "" {
		password = "ChangeMe123!"
	}

	hashed, err := auth.HashPassword(password)
	if err != nil {
		lgr.Error().Err(err).Msg("Error hashing default admin password")
		return err
	}

	admin := &appModels.User{
		Email:               defaultAdminEmail,
		Password:            hashed,
		FirstName:           "Platform",
		LastName:            "Admin",
		RoleType:            appModels.RoleAdmin,
		Skills:              []string{},
		ProfileVisibility:   appModels.VisibilityPrivate,
		MentorshipExpertise: []string{},
		IsActive:            true,
	}

	if _, err := userRepo.Create(ctx, admin); err != nil {
		if errors.Is(err, apperrors.ErrEmailAlreadyExists) {
			lgr.Debug().Str("email", defaultAdminEmail).Msg("Default admin already exists")
			return nil
		}
		lgr.Error().Err(err).Msg("Error creating default admin account")
		return err
	}

	lgr.Info().Str("email", defaultAdminEmail).Msg("Default admin account created")
	return nil
}
