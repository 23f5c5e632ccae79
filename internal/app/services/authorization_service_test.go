package services

import (
	"errors"
	"testing"

	"github.com/emre/alumnihub/internal/app/models"
	"github.com/emre/alumnihub/internal/pkg/apperrors"
)

func TestCanManageEvent(t *testing.T) {
	authz := NewAuthorizationService()
	event := &models.Event{ID: 1, OrganizerID: 10}

	tests := []struct {
		name    string
		userID  int64
		role    models.RoleType
		wantErr bool
	}{
		{"organizer", 10, models.RoleAlumni, false},
		{"admin", 99, models.RoleAdmin, false},
		{"other user", 11, models.RoleAlumni, true},
		{"other student", 11, models.RoleStudent, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := authz.CanManageEvent(event, tt.userID, tt.role)
			if tt.wantErr && !errors.Is(err, apperrors.ErrPermissionDenied) {
				t.Errorf("expected permission denied, got %v", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("expected nil, got %v", err)
			}
		})
	}
}

func TestCanModifyMessage(t *testing.T) {
	authz := NewAuthorizationService()
	msg := &models.ChatMessage{ID: 1, SenderID: 5}

	if err := authz.CanModifyMessage(msg, 5); err != nil {
		t.Errorf("sender should be allowed, got %v", err)
	}
	if err := authz.CanModifyMessage(msg, 6); !errors.Is(err, apperrors.ErrPermissionDenied) {
		t.Errorf("non-sender should be denied, got %v", err)
	}
}

func TestMentorshipRequestChecks(t *testing.T) {
	authz := NewAuthorizationService()
	req := &models.MentorshipRequest{ID: 1, MenteeID: 2, MentorID: 3}

	t.Run("view", func(t *testing.T) {
		if err := authz.CanViewRequest(req, 2); err != nil {
			t.Errorf("mentee should view, got %v", err)
		}
		if err := authz.CanViewRequest(req, 3); err != nil {
			t.Errorf("mentor should view, got %v", err)
		}
		if err := authz.CanViewRequest(req, 4); !errors.Is(err, apperrors.ErrPermissionDenied) {
			t.Errorf("outsider should be denied, got %v", err)
		}
	})

	t.Run("respond", func(t *testing.T) {
		if err := authz.CanRespondToRequest(req, 3); err != nil {
			t.Errorf("mentor should respond, got %v", err)
		}
		if err := authz.CanRespondToRequest(req, 2); !errors.Is(err, apperrors.ErrPermissionDenied) {
			t.Errorf("mentee should not respond, got %v", err)
		}
	})

	t.Run("cancel", func(t *testing.T) {
		if err := authz.CanCancelRequest(req, 2); err != nil {
			t.Errorf("mentee should cancel, got %v", err)
		}
		if err := authz.CanCancelRequest(req, 3); !errors.Is(err, apperrors.ErrPermissionDenied) {
			t.Errorf("mentor should not cancel, got %v", err)
		}
	})
}
