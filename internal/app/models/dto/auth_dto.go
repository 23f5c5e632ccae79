package dto

// RegisterRequest represents data for creating a new account
type RegisterRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8,max=72"`
	FirstName string `json:"firstName" binding:"required,min=2,max=100"`
	LastName  string `json:"lastName" binding:"required,min=2,max=100"`
	Batch     *int   `json:"batch,omitempty" binding:"omitempty,min=1950,max=2100"`
	Role      string `json:"role,omitempty" binding:"omitempty,oneof=ALUMNI STUDENT FACULTY"`
}

// LoginRequest represents login credentials
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RefreshTokenRequest represents a refresh token exchange
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// LogoutRequest revokes a refresh token
type LogoutRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// ChangePasswordRequest represents a password change for the current user
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=8,max=72"`
}

// TokenResponse carries an issued token pair
type TokenResponse struct {
	AccessToken      string `json:"accessToken"`
	RefreshToken     string `json:"refreshToken"`
	ExpiresIn        int    `json:"expiresIn" example:"3600"`
	RefreshExpiresIn int    `json:"refreshExpiresIn" example:"2592000"`
	TokenType        string `json:"tokenType" example:"Bearer"`
}

// AuthResponse is returned from register and login
type AuthResponse struct {
	User  *UserResponse `json:"user"`
	Token TokenResponse `json:"token"`
}
