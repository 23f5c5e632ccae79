package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/emre/alumnihub/internal/app/models"
	"github.com/emre/alumnihub/internal/app/models/dto"
	"github.com/emre/alumnihub/internal/app/repositories"
	"github.com/emre/alumnihub/internal/pkg/apperrors"
	"github.com/emre/alumnihub/internal/pkg/helpers"
)

// UserService handles directory, profile and preference operations
type UserService struct {
	userRepo  *repositories.UserRepository
	tokenRepo *repositories.TokenRepository
	logger    zerolog.Logger
}

// NewUserService creates a new UserService
func NewUserService(
	userRepo *repositories.UserRepository,
	tokenRepo *repositories.TokenRepository,
	logger zerolog.Logger,
) *UserService {
	return &UserService{
		userRepo:  userRepo,
		tokenRepo: tokenRepo,
		logger:    logger,
	}
}

// GetUsers lists the alumni directory. Visibility gating happens in the
// repository query; viewerID is nil for anonymous callers.
func (s *UserService) GetUsers(ctx context.Context, filter *dto.UserFilterRequest, viewerID *int64) (*dto.UserListResponse, error) {
	users, total, err := s.userRepo.GetAll(ctx, filter, viewerID)
	if err != nil {
		return nil, err
	}

	resp := &dto.UserListResponse{
		Users:      make([]dto.UserResponse, 0, len(users)),
		Pagination: helpers.NewPaginationInfo(total, filter.Page, filter.Limit),
	}
	for i := range users {
		resp.Users = append(resp.Users, *dto.ToUserResponse(&users[i]))
	}
	return resp, nil
}

// GetMentors lists active users who opted into mentoring. Requires an
// authenticated viewer.
func (s *UserService) GetMentors(ctx context.Context, filter *dto.UserFilterRequest, viewerID int64) (*dto.UserListResponse, error) {
	available := true
	filter.MentorshipAvailable = &available
	return s.GetUsers(ctx, filter, &viewerID)
}

// GetUser retrieves a single profile, honoring its visibility tier
func (s *UserService) GetUser(ctx context.Context, userID int64, viewerID *int64) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	// Deactivated profiles read as gone to everyone but their owner
	if !user.IsActive && (viewerID == nil || *viewerID != user.ID) {
		return nil, apperrors.ErrUserNotFound
	}

	if !user.VisibleTo(viewerID) {
		return nil, apperrors.ErrUserNotFound
	}

	return dto.ToUserResponse(user), nil
}

// UpdateProfile applies a partial self-service profile update
func (s *UserService) UpdateProfile(ctx context.Context, userID int64, req *dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.Batch != nil {
		user.Batch = req.Batch
	}
	if req.Bio != nil {
		user.Bio = req.Bio
	}
	if req.Company != nil {
		user.Company = req.Company
	}
	if req.JobTitle != nil {
		user.JobTitle = req.JobTitle
	}
	if req.Location != nil {
		user.Location = req.Location
	}
	if req.LinkedinURL != nil {
		user.LinkedinURL = req.LinkedinURL
	}
	if req.GithubURL != nil {
		user.GithubURL = req.GithubURL
	}
	if req.WebsiteURL != nil {
		user.WebsiteURL = req.WebsiteURL
	}
	if req.Phone != nil {
		user.Phone = req.Phone
	}
	if req.Skills != nil {
		user.Skills = req.Skills
	}

	if err := s.userRepo.UpdateProfile(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Debug().Int64("userID", userID).Msg("Profile updated")
	return dto.ToUserResponse(user), nil
}

// UpdatePreferences applies visibility and mentorship opt-in changes
func (s *UserService) UpdatePreferences(ctx context.Context, userID int64, req *dto.UpdatePreferencesRequest) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.ProfileVisibility != nil {
		user.ProfileVisibility = models.ProfileVisibility(*req.ProfileVisibility)
	}
	if req.MentorshipAvailable != nil {
		user.MentorshipAvailable = *req.MentorshipAvailable
	}

	if err := s.userRepo.UpdatePreferences(ctx, userID, user.ProfileVisibility, user.MentorshipAvailable); err != nil {
		return nil, err
	}

	return dto.ToUserResponse(user), nil
}

// UpdateMentorshipProfile applies mentorship profile changes
func (s *UserService) UpdateMentorshipProfile(ctx context.Context, userID int64, req *dto.UpdateMentorshipProfileRequest) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Expertise != nil {
		user.MentorshipExpertise = req.Expertise
	}
	if req.Experience != nil {
		user.MentorshipExperience = req.Experience
	}
	if req.Availability != nil {
		availability := models.MentorAvailability(*req.Availability)
		user.MentorshipAvailability = &availability
	}

	err = s.userRepo.UpdateMentorshipProfile(ctx, userID,
		user.MentorshipExpertise, user.MentorshipExperience, user.MentorshipAvailability)
	if err != nil {
		return nil, err
	}

	return dto.ToUserResponse(user), nil
}

// DeactivateAccount disables the account and revokes all refresh tokens.
// The profile stays in the database but stops appearing anywhere.
func (s *UserService) DeactivateAccount(ctx context.Context, userID int64) error {
	if err := s.userRepo.Deactivate(ctx, userID); err != nil {
		return err
	}

	if err := s.tokenRepo.RevokeAllForUser(ctx, userID); err != nil {
		s.logger.Error().Err(err).Int64("userID", userID).Msg("Failed to revoke tokens on deactivation")
	}

	s.logger.Info().Int64("userID", userID).Msg("Account deactivated")
	return nil
}
