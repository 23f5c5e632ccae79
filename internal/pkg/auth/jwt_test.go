package auth

import (
	"strings"
	"testing"
	"time"
)

func newTestService(accessExp time.Duration) *JWTService {
	return NewJWTService(JWTConfig{
		SecretKey:       "test-secret-key",
		AccessTokenExp:  accessExp,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "alumnihub.test",
	})
}

func TestGenerateAndValidateTokenPair(t *testing.T) {
	s := newTestService(time.Hour)

	access, refresh, expiresIn, refreshExpiresIn, err := s.GenerateTokenPair(42, "jane@alumni.example.com", "ALUMNI")
	if err != nil {
		t.Fatalf("GenerateTokenPair failed: %v", err)
	}
	if access == "" || refresh == "" {
		t.Fatal("expected non-empty tokens")
	}
	if expiresIn != 3600 {
		t.Errorf("expected expiresIn 3600, got %d", expiresIn)
	}
	if refreshExpiresIn != 86400 {
		t.Errorf("expected refreshExpiresIn 86400, got %d", refreshExpiresIn)
	}

	claims, err := s.ValidateAndExtractClaims(access)
	if err != nil {
		t.Fatalf("ValidateAndExtractClaims failed: %v", err)
	}
	if claims.UserID != 42 {
		t.Errorf("expected userID 42, got %d", claims.UserID)
	}
	if claims.Email != "jane@alumni.example.com" {
		t.Errorf("unexpected email: %s", claims.Email)
	}
	if claims.Role != "ALUMNI" {
		t.Errorf("unexpected role: %s", claims.Role)
	}
}

func TestValidateToken_Expired(t *testing.T) {
	s := newTestService(-time.Minute)

	access, _, _, _, err := s.GenerateTokenPair(1, "old@alumni.example.com", "ALUMNI")
	if err != nil {
		t.Fatalf("GenerateTokenPair failed: %v", err)
	}

	if _, err := s.ValidateToken(access); err != ErrExpiredToken {
		t.Fatalf("expected ErrExpiredToken, got %v", err)
	}
}

func TestValidateToken_WrongSecret(t *testing.T) {
	s := newTestService(time.Hour)
	access, _, _, _, err := s.GenerateTokenPair(1, "a@b.com", "ALUMNI")
	if err != nil {
		t.Fatalf("GenerateTokenPair failed: %v", err)
	}

	other := NewJWTService(JWTConfig{
		SecretKey:       "different-secret",
		AccessTokenExp:  time.Hour,
		RefreshTokenExp: time.Hour,
	})
	if _, err := other.ValidateToken(access); err == nil {
		t.Fatal("expected validation to fail with wrong secret")
	}
}

func TestValidateAndExtractClaims_Empty(t *testing.T) {
	s := newTestService(time.Hour)
	if _, err := s.ValidateAndExtractClaims(""); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestExtractBearerToken(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		want    string
		wantErr bool
	}{
		{"with prefix", "Bearer abc.def.ghi", "abc.def.ghi", false},
		{"without prefix", "abc.def.ghi", "abc.def.ghi", false},
		{"empty", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractBearerToken(tt.header)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
			if strings.HasPrefix(got, "Bearer") {
				t.Error("prefix not stripped")
			}
		})
	}
}

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("s3cure-pass")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	if hash == "s3cure-pass" {
		t.Fatal("hash must not equal plaintext")
	}
	if !CheckPassword(hash, "s3cure-pass") {
		t.Error("expected matching password to verify")
	}
	if CheckPassword(hash, "wrong-pass") {
		t.Error("expected non-matching password to fail")
	}
}
