package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/emre/alumnihub/internal/app/models/dto"
)

// parseIDParam reads a positive int64 path parameter. On failure it answers
// the request with a 400 and returns false.
func parseIDParam(ctx *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil || id <= 0 {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, "Invalid "+name+" parameter")
		ctx.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return 0, false
	}
	return id, true
}
