package dto

import (
	"time"

	"github.com/emre/alumnihub/internal/app/models"
)

// --- Request DTOs ---

// UpdateProfileRequest represents a self-service profile update. Nil fields
// are left unchanged.
type UpdateProfileRequest struct {
	FirstName   *string  `json:"firstName,omitempty" binding:"omitempty,min=2,max=100"`
	LastName    *string  `json:"lastName,omitempty" binding:"omitempty,min=2,max=100"`
	Batch       *int     `json:"batch,omitempty" binding:"omitempty,min=1950,max=2100"`
	Bio         *string  `json:"bio,omitempty" binding:"omitempty,max=2000"`
	Company     *string  `json:"company,omitempty" binding:"omitempty,max=200"`
	JobTitle    *string  `json:"jobTitle,omitempty" binding:"omitempty,max=200"`
	Location    *string  `json:"location,omitempty" binding:"omitempty,max=200"`
	LinkedinURL *string  `json:"linkedinUrl,omitempty" binding:"omitempty,url"`
	GithubURL   *string  `json:"githubUrl,omitempty" binding:"omitempty,url"`
	WebsiteURL  *string  `json:"websiteUrl,omitempty" binding:"omitempty,url"`
	Phone       *string  `json:"phone,omitempty" binding:"omitempty,max=30"`
	Skills      []string `json:"skills,omitempty" binding:"omitempty,max=50,dive,min=1,max=60"`
}

// UpdatePreferencesRequest updates visibility and mentorship opt-in
type UpdatePreferencesRequest struct {
	ProfileVisibility   *string `json:"profileVisibility,omitempty" binding:"omitempty,oneof=PUBLIC ALUMNI_ONLY PRIVATE"`
	MentorshipAvailable *bool   `json:"mentorshipAvailable,omitempty"`
}

// UpdateMentorshipProfileRequest updates the mentorship-specific profile
type UpdateMentorshipProfileRequest struct {
	Expertise    []string `json:"expertise,omitempty" binding:"omitempty,max=30,dive,min=1,max=60"`
	Experience   *string  `json:"experience,omitempty" binding:"omitempty,max=2000"`
	Availability *string  `json:"availability,omitempty" binding:"omitempty,oneof=HIGH MEDIUM LOW"`
}

// UserFilterRequest carries list/search filters for users
type UserFilterRequest struct {
	Search              *string
	Batch               *int
	Location            *string
	Skill               *string
	MentorshipAvailable *bool
	Page                int
	Limit               int
}

// --- Response DTOs ---

// UserResponse is the full profile projection
type UserResponse struct {
	ID                  int64    `json:"id"`
	Email               string   `json:"email"`
	FirstName           string   `json:"firstName"`
	LastName            string   `json:"lastName"`
	Batch               *int     `json:"batch,omitempty"`
	RoleType            string   `json:"roleType"`
	Bio                 *string  `json:"bio,omitempty"`
	Company             *string  `json:"company,omitempty"`
	JobTitle            *string  `json:"jobTitle,omitempty"`
	Location            *string  `json:"location,omitempty"`
	LinkedinURL         *string  `json:"linkedinUrl,omitempty"`
	GithubURL           *string  `json:"githubUrl,omitempty"`
	WebsiteURL          *string  `json:"websiteUrl,omitempty"`
	Phone               *string  `json:"phone,omitempty"`
	Skills              []string `json:"skills"`
	ProfileVisibility   string   `json:"profileVisibility"`
	MentorshipAvailable bool     `json:"mentorshipAvailable"`

	MentorshipProfile *MentorshipProfileResponse `json:"mentorshipProfile,omitempty"`

	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// MentorshipProfileResponse is the mentorship section of a profile
type MentorshipProfileResponse struct {
	Expertise    []string `json:"expertise"`
	Experience   *string  `json:"experience,omitempty"`
	Availability *string  `json:"availability,omitempty"`
}

// UserListResponse is a paginated list of users
type UserListResponse struct {
	Users      []UserResponse `json:"users"`
	Pagination PaginationInfo `json:"pagination"`
}

// ToUserResponse transforms a models.User into its full projection
func ToUserResponse(user *models.User) *UserResponse {
	if user == nil {
		return nil
	}

	resp := &UserResponse{
		ID:                  user.ID,
		Email:               user.Email,
		FirstName:           user.FirstName,
		LastName:            user.LastName,
		Batch:               user.Batch,
		RoleType:            string(user.RoleType),
		Bio:                 user.Bio,
		Company:             user.Company,
		JobTitle:            user.JobTitle,
		Location:            user.Location,
		LinkedinURL:         user.LinkedinURL,
		GithubURL:           user.GithubURL,
		WebsiteURL:          user.WebsiteURL,
		Phone:               user.Phone,
		Skills:              user.Skills,
		ProfileVisibility:   string(user.ProfileVisibility),
		MentorshipAvailable: user.MentorshipAvailable,
		IsActive:            user.IsActive,
		CreatedAt:           user.CreatedAt,
		UpdatedAt:           user.UpdatedAt,
	}
	if resp.Skills == nil {
		resp.Skills = []string{}
	}

	if len(user.MentorshipExpertise) > 0 || user.MentorshipExperience != nil || user.MentorshipAvailability != nil {
		profile := &MentorshipProfileResponse{
			Expertise:  user.MentorshipExpertise,
			Experience: user.MentorshipExperience,
		}
		if profile.Expertise == nil {
			profile.Expertise = []string{}
		}
		if user.MentorshipAvailability != nil {
			availability := string(*user.MentorshipAvailability)
			profile.Availability = &availability
		}
		resp.MentorshipProfile = profile
	}

	return resp
}

// ToUserBasicResponse transforms a models.User into its minimal projection
func ToUserBasicResponse(user *models.User) *UserBasicResponse {
	if user == nil {
		return nil
	}
	return &UserBasicResponse{
		ID:        user.ID,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Email:     user.Email,
		Batch:     user.Batch,
		Company:   user.Company,
	}
}
