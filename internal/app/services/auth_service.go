package services

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/emre/alumnihub/internal/app/models"
	"github.com/emre/alumnihub/internal/app/models/dto"
	"github.com/emre/alumnihub/internal/app/repositories"
	"github.com/emre/alumnihub/internal/pkg/apperrors"
	"github.com/emre/alumnihub/internal/pkg/auth"
)

// AuthService handles registration, login and token lifecycle
type AuthService struct {
	userRepo   *repositories.UserRepository
	tokenRepo  *repositories.TokenRepository
	jwtService *auth.JWTService
	logger     zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(
	userRepo *repositories.UserRepository,
	tokenRepo *repositories.TokenRepository,
	jwtService *auth.JWTService,
	logger zerolog.Logger,
) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		tokenRepo:  tokenRepo,
		jwtService: jwtService,
		logger:     logger,
	}
}

// Register creates a new account and returns the user with a token pair
func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	role := models.RoleAlumni
	if req.Role != "" {
		role = models.RoleType(req.Role)
	}

	user := &models.User{
		Email:             req.Email,
		Password:          hashedPassword,
		FirstName:         req.FirstName,
		LastName:          req.LastName,
		Batch:             req.Batch,
		RoleType:          role,
		ProfileVisibility: models.VisibilityPublic,
		IsActive:          true,
	}

	userID, err := s.userRepo.Create(ctx, user)
	if err != nil {
		return nil, err
	}
	user.ID = userID

	s.logger.Info().
		Int64("userID", userID).
		Str("role", string(role)).
		Msg("User registered")

	return s.buildAuthResponse(ctx, user)
}

// Login authenticates a user by email and password
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		// Same answer whether the account exists or the password is wrong
		return nil, apperrors.ErrInvalidCredentials
	}

	if !auth.CheckPassword(user.Password, req.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, apperrors.ErrAccountDisabled
	}

	if err := s.userRepo.RecordLogin(ctx, user.ID, time.Now()); err != nil {
		s.logger.Warn().Err(err).Int64("userID", user.ID).Msg("Failed to record login time")
	}

	return s.buildAuthResponse(ctx, user)
}

// RefreshToken rotates a refresh token into a new token pair. The old token
// is revoked so it cannot be replayed.
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenResponse, error) {
	stored, err := s.tokenRepo.Find(ctx, refreshToken)
	if err != nil {
		return nil, err
	}

	if stored.Revoked {
		return nil, apperrors.ErrTokenRevoked
	}
	if !stored.IsValid(time.Now()) {
		_ = s.tokenRepo.Revoke(ctx, refreshToken)
		return nil, apperrors.ErrTokenExpired
	}

	user, err := s.userRepo.FindByID(ctx, stored.UserID)
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, apperrors.ErrAccountDisabled
	}

	if err := s.tokenRepo.Revoke(ctx, refreshToken); err != nil {
		return nil, fmt.Errorf("failed to revoke old token: %w", err)
	}

	return s.issueTokenPair(ctx, user)
}

// Logout revokes the presented refresh token
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	if err := s.tokenRepo.Revoke(ctx, refreshToken); err != nil {
		return err
	}

	s.logger.Debug().Msg("Refresh token revoked on logout")
	return nil
}

// GetProfile retrieves the authenticated user's own profile
func (s *AuthService) GetProfile(ctx context.Context, userID int64) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return dto.ToUserResponse(user), nil
}

// ChangePassword verifies the current password, replaces the hash and
// revokes every outstanding refresh token for the user.
func (s *AuthService) ChangePassword(ctx context.Context, userID int64, req *dto.ChangePasswordRequest) error {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	if !auth.CheckPassword(user.Password, req.CurrentPassword) {
		return apperrors.ErrInvalidCredentials
	}

	hashedPassword, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return fmt.Errorf("error hashing password: %w", err)
	}

	if err := s.userRepo.UpdatePassword(ctx, userID, hashedPassword); err != nil {
		return err
	}

	// Force re-authentication everywhere else
	if err := s.tokenRepo.RevokeAllForUser(ctx, userID); err != nil {
		return fmt.Errorf("failed to revoke user tokens: %w", err)
	}

	s.logger.Info().Int64("userID", userID).Msg("Password changed")
	return nil
}

func (s *AuthService) buildAuthResponse(ctx context.Context, user *models.User) (*dto.AuthResponse, error) {
	token, err := s.issueTokenPair(ctx, user)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		User:  dto.ToUserResponse(user),
		Token: *token,
	}, nil
}

func (s *AuthService) issueTokenPair(ctx context.Context, user *models.User) (*dto.TokenResponse, error) {
	accessToken, refreshToken, expiresIn, refreshExpiresIn, err := s.jwtService.GenerateTokenPair(
		user.ID, user.Email, string(user.RoleType))
	if err != nil {
		return nil, fmt.Errorf("failed to generate token pair: %w", err)
	}

	expiry := s.jwtService.GetRefreshTokenExpiry()
	if err := s.tokenRepo.Store(ctx, user.ID, refreshToken, expiry); err != nil {
		return nil, fmt.Errorf("failed to store refresh token: %w", err)
	}

	return &dto.TokenResponse{
		AccessToken:      accessToken,
		RefreshToken:     refreshToken,
		ExpiresIn:        expiresIn,
		RefreshExpiresIn: refreshExpiresIn,
		TokenType:        "Bearer",
	}, nil
}
