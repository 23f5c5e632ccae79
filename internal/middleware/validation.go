package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/emre/alumnihub/internal/app/models/dto"
)

// BindAndValidate binds the JSON body into obj and reports field-level
// failures in the standard error envelope. Returns false when the request
// has already been answered.
func BindAndValidate(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			fields := make([]dto.FieldError, 0, len(validationErrors))
			for _, fe := range validationErrors {
				fields = append(fields, dto.FieldError{
					Field:   fe.Field(),
					Message: formatValidationError(fe),
				})
			}
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Validation failed").
				WithDetails(fields)
			c.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
			return false
		}

		errorDetail := dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, "Invalid request format").
			WithDetails(err.Error())
		c.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return false
	}
	return true
}

// formatValidationError creates a human-readable validation error message
func formatValidationError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return e.Field() + " is required"
	case "min":
		return e.Field() + " must be at least " + e.Param()
	case "max":
		return e.Field() + " must be at most " + e.Param()
	case "email":
		return e.Field() + " must be a valid email address"
	case "oneof":
		return e.Field() + " must be one of: " + e.Param()
	case "url":
		return e.Field() + " must be a valid URL"
	default:
		return e.Field() + " validation failed: " + e.Tag()
	}
}
