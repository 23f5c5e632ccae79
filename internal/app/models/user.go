package models

import (
	"time"
)

// User defines the user model based on the 'users' table
type User struct {
	ID          int64     `json:"id" db:"id" example:"1"`
	Email       string    `json:"email" db:"email" example:"jane@alumni.example.com"`
	Password    string    `json:"-" db:"password"`
	FirstName   string    `json:"firstName" db:"first_name" example:"Jane"`
	LastName    string    `json:"lastName" db:"last_name" example:"Doe"`
	Batch       *int      `json:"batch,omitempty" db:"batch" example:"2018"` // Graduation year, cohort identifier
	RoleType    RoleType  `json:"roleType" db:"role_type" example:"ALUMNI"`
	Bio         *string   `json:"bio,omitempty" db:"bio"`
	Company     *string   `json:"company,omitempty" db:"company"`
	JobTitle    *string   `json:"jobTitle,omitempty" db:"job_title"`
	Location    *string   `json:"location,omitempty" db:"location"`
	LinkedinURL *string   `json:"linkedinUrl,omitempty" db:"linkedin_url"`
	GithubURL   *string   `json:"githubUrl,omitempty" db:"github_url"`
	WebsiteURL  *string   `json:"websiteUrl,omitempty" db:"website_url"`
	Phone       *string   `json:"phone,omitempty" db:"phone"`
	Skills      []string  `json:"skills" db:"skills"`

	// Preferences
	ProfileVisibility   ProfileVisibility `json:"profileVisibility" db:"profile_visibility" example:"PUBLIC"`
	MentorshipAvailable bool              `json:"mentorshipAvailable" db:"mentorship_available"`

	// Mentorship profile
	MentorshipExpertise    []string            `json:"mentorshipExpertise" db:"mentorship_expertise"`
	MentorshipExperience   *string             `json:"mentorshipExperience,omitempty" db:"mentorship_experience"`
	MentorshipAvailability *MentorAvailability `json:"mentorshipAvailability,omitempty" db:"mentorship_availability"`

	IsActive    bool       `json:"isActive" db:"is_active" example:"true"`
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty" db:"last_login_at"`
	CreatedAt   time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time  `json:"updatedAt" db:"updated_at"`
}

// FullName returns the user's display name
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// VisibleTo reports whether this profile may be returned to a viewer.
// Anonymous viewers see PUBLIC only; any authenticated viewer additionally
// sees ALUMNI_ONLY; PRIVATE profiles are owner-only.
func (u *User) VisibleTo(viewerID *int64) bool {
	if viewerID != nil && *viewerID == u.ID {
		return true
	}
	switch u.ProfileVisibility {
	case VisibilityPublic:
		return true
	case VisibilityAlumniOnly:
		return viewerID != nil
	default:
		return false
	}
}

// RefreshToken defines a stored refresh token based on the 'refresh_tokens' table
type RefreshToken struct {
	ID        int64     `json:"id" db:"id"`
	UserID    int64     `json:"userId" db:"user_id"`
	Token     string    `json:"token" db:"token"`
	ExpiresAt time.Time `json:"expiresAt" db:"expires_at"`
	Revoked   bool      `json:"revoked" db:"revoked"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// IsValid reports whether the refresh token can still be exchanged
func (t *RefreshToken) IsValid(now time.Time) bool {
	return !t.Revoked && now.Before(t.ExpiresAt)
}
