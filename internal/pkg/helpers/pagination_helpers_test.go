package helpers

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func TestParsePaginationParams(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name      string
		query     string
		wantPage  int
		wantLimit int
	}{
		{"defaults", "", 1, 10},
		{"explicit values", "page=3&limit=25", 3, 25},
		{"zero page", "page=0", 1, 10},
		{"negative page", "page=-2", 1, 10},
		{"limit over max", "limit=500", 1, 10},
		{"non-numeric", "page=abc&limit=xyz", 1, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest("GET", "/?"+tt.query, nil)

			page, limit := ParsePaginationParams(c)
			if page != tt.wantPage || limit != tt.wantLimit {
				t.Errorf("got (%d, %d), want (%d, %d)", page, limit, tt.wantPage, tt.wantLimit)
			}
		})
	}
}

func TestCalculateOffsetLimit(t *testing.T) {
	offset, limit := CalculateOffsetLimit(3, 20)
	if offset != 40 || limit != 20 {
		t.Errorf("got (%d, %d), want (40, 20)", offset, limit)
	}

	offset, limit = CalculateOffsetLimit(0, 0)
	if offset != 0 || limit != DefaultPageSize {
		t.Errorf("invalid input should clamp to defaults, got (%d, %d)", offset, limit)
	}
}

func TestNewPaginationInfo(t *testing.T) {
	info := NewPaginationInfo(42, 2, 10)
	if info.TotalPages != 5 {
		t.Errorf("expected 5 total pages, got %d", info.TotalPages)
	}
	if !info.HasNextPage || !info.HasPrevPage {
		t.Error("middle page should have both neighbours")
	}

	empty := NewPaginationInfo(0, 1, 10)
	if empty.TotalPages != 1 || empty.HasNextPage || empty.HasPrevPage {
		t.Errorf("empty result should report a single page, got %+v", empty)
	}

	past := NewPaginationInfo(5, 9, 10)
	if past.CurrentPage != 1 {
		t.Errorf("page beyond the end should clamp to the last page, got %d", past.CurrentPage)
	}
}

func TestParseDuration(t *testing.T) {
	if got := ParseDuration("90m", time.Hour); got != 90*time.Minute {
		t.Errorf("got %v, want 90m", got)
	}
	if got := ParseDuration("", time.Hour); got != time.Hour {
		t.Errorf("empty value should fall back, got %v", got)
	}
	if got := ParseDuration("not-a-duration", 2*time.Hour); got != 2*time.Hour {
		t.Errorf("invalid value should fall back, got %v", got)
	}
}
