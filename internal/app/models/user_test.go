package models

import (
	"testing"
	"time"
)

func TestUserVisibleTo(t *testing.T) {
	viewer := int64(7)
	owner := int64(1)

	tests := []struct {
		name       string
		visibility ProfileVisibility
		viewerID   *int64
		want       bool
	}{
		{"public anonymous", VisibilityPublic, nil, true},
		{"public authenticated", VisibilityPublic, &viewer, true},
		{"alumni-only anonymous", VisibilityAlumniOnly, nil, false},
		{"alumni-only authenticated", VisibilityAlumniOnly, &viewer, true},
		{"private non-owner", VisibilityPrivate, &viewer, false},
		{"private anonymous", VisibilityPrivate, nil, false},
		{"private owner", VisibilityPrivate, &owner, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := &User{ID: 1, ProfileVisibility: tt.visibility}
			if got := u.VisibleTo(tt.viewerID); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRefreshTokenIsValid(t *testing.T) {
	now := time.Now()
	valid := &RefreshToken{ExpiresAt: now.Add(time.Hour)}
	if !valid.IsValid(now) {
		t.Error("unexpired, unrevoked token should be valid")
	}

	expired := &RefreshToken{ExpiresAt: now.Add(-time.Hour)}
	if expired.IsValid(now) {
		t.Error("expired token must be invalid")
	}

	revoked := &RefreshToken{ExpiresAt: now.Add(time.Hour), Revoked: true}
	if revoked.IsValid(now) {
		t.Error("revoked token must be invalid")
	}
}
