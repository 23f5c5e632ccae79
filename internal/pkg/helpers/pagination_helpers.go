package helpers

import (
	"math"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/emre/alumnihub/internal/app/models/dto"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
	DefaultPage     = 1
)

// ParsePaginationParams extracts and validates pagination parameters from the request.
// Pages are 1-based; limit is clamped to [1, MaxPageSize].
func ParsePaginationParams(c *gin.Context) (page, limit int) {
	pageStr := c.DefaultQuery("page", "1")
	page, err := strconv.Atoi(pageStr)
	if err != nil || page < 1 {
		page = DefaultPage
	}

	limitStr := c.DefaultQuery("limit", "10")
	limit, err = strconv.Atoi(limitStr)
	if err != nil || limit <= 0 || limit > MaxPageSize {
		limit = DefaultPageSize
	}

	return page, limit
}

// CalculateOffsetLimit converts a 1-based page index into a SQL offset/limit pair.
func CalculateOffsetLimit(page, limit int) (offset uint64, clamped int) {
	if limit <= 0 || limit > MaxPageSize {
		clamped = DefaultPageSize
	} else {
		clamped = limit
	}

	if page < 1 {
		page = DefaultPage
	}

	offset = uint64((page - 1) * clamped)
	return offset, clamped
}

// NewPaginationInfo creates a standard PaginationInfo DTO for a 1-based page number.
func NewPaginationInfo(totalItems int64, page, limit int) dto.PaginationInfo {
	if limit <= 0 {
		limit = DefaultPageSize
	}
	if page < 1 {
		page = DefaultPage
	}

	totalPages := 0
	if totalItems > 0 {
		totalPages = int(math.Ceil(float64(totalItems) / float64(limit)))
	} else if page == 1 {
		totalPages = 1
	}

	currentPage := page
	if totalPages > 0 && currentPage > totalPages {
		currentPage = totalPages
	}

	return dto.PaginationInfo{
		CurrentPage: currentPage,
		TotalPages:  totalPages,
		PageSize:    limit,
		TotalItems:  totalItems,
		HasNextPage: currentPage < totalPages,
		HasPrevPage: currentPage > 1,
	}
}
