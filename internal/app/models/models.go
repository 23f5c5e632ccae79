package models

// RoleType defines the user role type
type RoleType string

const (
	RoleAlumni  RoleType = "ALUMNI"
	RoleStudent RoleType = "STUDENT"
	RoleFaculty RoleType = "FACULTY"
	RoleAdmin   RoleType = "ADMIN"
)

// ProfileVisibility controls who may read a user's profile
type ProfileVisibility string

const (
	VisibilityPublic     ProfileVisibility = "PUBLIC"
	VisibilityAlumniOnly ProfileVisibility = "ALUMNI_ONLY"
	VisibilityPrivate    ProfileVisibility = "PRIVATE"
)

// MentorAvailability describes a mentor's capacity level. Distinct from the
// boolean opt-in flag MentorshipAvailable on the user record.
type MentorAvailability string

const (
	AvailabilityHigh   MentorAvailability = "HIGH"
	AvailabilityMedium MentorAvailability = "MEDIUM"
	AvailabilityLow    MentorAvailability = "LOW"
)
