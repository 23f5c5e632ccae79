package dto

import "time"

// APIResponse is the standard response envelope for every endpoint:
// { success, message?, data?, error?, timestamp }
type APIResponse struct {
	Success   bool         `json:"success" example:"true"`
	Message   string       `json:"message,omitempty" example:"Operation completed successfully"`
	Data      interface{}  `json:"data,omitempty"`
	Error     *ErrorDetail `json:"error,omitempty"`
	Timestamp time.Time    `json:"timestamp" example:"2026-04-23T12:01:05.123Z"`
}

// NewSuccessResponse creates a success envelope around a payload
func NewSuccessResponse(data interface{}) APIResponse {
	return APIResponse{
		Success:   true,
		Data:      data,
		Timestamp: time.Now(),
	}
}

// NewSuccessMessageResponse creates a success envelope with a message and payload
func NewSuccessMessageResponse(data interface{}, message string) APIResponse {
	return APIResponse{
		Success:   true,
		Message:   message,
		Data:      data,
		Timestamp: time.Now(),
	}
}

// PaginationInfo carries list paging metadata
type PaginationInfo struct {
	CurrentPage int   `json:"currentPage" example:"1"`
	TotalPages  int   `json:"totalPages" example:"5"`
	PageSize    int   `json:"pageSize" example:"10"`
	TotalItems  int64 `json:"totalItems" example:"42"`
	HasNextPage bool  `json:"hasNextPage" example:"true"`
	HasPrevPage bool  `json:"hasPrevPage" example:"false"`
}

// UserBasicResponse is the minimal user projection embedded in other payloads
type UserBasicResponse struct {
	ID        int64   `json:"id" example:"1"`
	FirstName string  `json:"firstName" example:"Jane"`
	LastName  string  `json:"lastName" example:"Doe"`
	Email     string  `json:"email" example:"jane@alumni.example.com"`
	Batch     *int    `json:"batch,omitempty" example:"2018"`
	Company   *string `json:"company,omitempty" example:"Acme Corp"`
}
