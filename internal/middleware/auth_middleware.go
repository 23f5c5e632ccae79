package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/emre/alumnihub/internal/app/models/dto"
	"github.com/emre/alumnihub/internal/app/repositories"
	"github.com/emre/alumnihub/internal/pkg/auth"
)

// ContextUserIDKey is where the authenticated user id lives in the gin context
const ContextUserIDKey = "userID"

// AuthMiddleware for authentication and authorization
type AuthMiddleware struct {
	jwtService *auth.JWTService
	userRepo   *repositories.UserRepository
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(jwtService *auth.JWTService, userRepo *repositories.UserRepository) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
		userRepo:   userRepo,
	}
}

// JWTAuth requires a valid access token and an active account. Sets userID,
// email and roleType in the context.
func (m *AuthMiddleware) JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := m.authenticate(c)
		if !ok {
			return
		}

		// Deactivated accounts keep their tokens until expiry; reject them here
		user, err := m.userRepo.FindByID(c.Request.Context(), claims.UserID)
		if err != nil || !user.IsActive {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeAccountDisabled, "Account is disabled")
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
			return
		}

		c.Set(ContextUserIDKey, claims.UserID)
		c.Set("email", claims.Email)
		c.Set("roleType", claims.Role)

		c.Next()
	}
}

// OptionalJWTAuth attaches user identity when a valid token is present and
// lets anonymous requests through untouched. Used on read endpoints whose
// results vary by visibility tier.
func (m *AuthMiddleware) OptionalJWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}

		tokenString, err := auth.ExtractBearerToken(authHeader)
		if err != nil {
			c.Next()
			return
		}

		claims, err := m.jwtService.ValidateAndExtractClaims(tokenString)
		if err != nil {
			// A present but invalid token is treated as anonymous, not rejected
			c.Next()
			return
		}

		user, err := m.userRepo.FindByID(c.Request.Context(), claims.UserID)
		if err != nil || !user.IsActive {
			c.Next()
			return
		}

		c.Set(ContextUserIDKey, claims.UserID)
		c.Set("email", claims.Email)
		c.Set("roleType", claims.Role)

		c.Next()
	}
}

func (m *AuthMiddleware) authenticate(c *gin.Context) (*auth.Claims, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required").
			WithDetails("Authorization header missing")
		c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return nil, false
	}

	tokenString, err := auth.ExtractBearerToken(authHeader)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required").
			WithDetails("Invalid token format")
		c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return nil, false
	}

	claims, err := m.jwtService.ValidateAndExtractClaims(tokenString)
	if err != nil {
		errorCode := dto.ErrorCodeInvalidToken
		details := "Invalid token"
		if errors.Is(err, auth.ErrExpiredToken) {
			errorCode = dto.ErrorCodeExpiredToken
			details = "Token has expired"
		}

		errorDetail := dto.NewErrorDetail(errorCode, "Authentication failed").
			WithDetails(details)
		c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return nil, false
	}

	return claims, true
}

// GetUserID reads the authenticated user id from the context. The second
// return value is false for anonymous requests.
func GetUserID(c *gin.Context) (int64, bool) {
	value, exists := c.Get(ContextUserIDKey)
	if !exists {
		return 0, false
	}
	userID, ok := value.(int64)
	return userID, ok
}

// GetRole reads the authenticated user's role from the context
func GetRole(c *gin.Context) string {
	value, exists := c.Get("roleType")
	if !exists {
		return ""
	}
	role, _ := value.(string)
	return role
}
