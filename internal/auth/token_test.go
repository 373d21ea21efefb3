package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/maintenance-system/maintenance-service/internal/model"
)

func testUser() *model.User {
	return &model.User{ID: 7, Username: "manutencao", Role: model.RoleMaintenance}
}

func TestIssueAndVerifyPair(t *testing.T) {
	m := NewManager("test-secret", time.Hour, 24*time.Hour)
	access, refresh, err := m.IssuePair(testUser())
	if err != nil {
		t.Fatalf("IssuePair: %v", err)
	}
	if access == refresh {
		t.Fatal("access and refresh must differ")
	}

	claims, err := m.VerifyAccess(access)
	if err != nil {
		t.Fatalf("VerifyAccess: %v", err)
	}
	if claims.UserID != 7 || claims.Username != "manutencao" || claims.Role != model.RoleMaintenance {
		t.Errorf("claims = %+v", claims)
	}
	if claims.TokenType != TokenTypeAccess {
		t.Errorf("TokenType = %q, want %q", claims.TokenType, TokenTypeAccess)
	}
	if claims.ID == "" {
		t.Error("jti must be set")
	}
}

func TestVerifyAccessRejectsRefreshToken(t *testing.T) {
	m := NewManager("test-secret", time.Hour, 24*time.Hour)
	_, refresh, err := m.IssuePair(testUser())
	if err != nil {
		t.Fatalf("IssuePair: %v", err)
	}
	if _, err := m.VerifyAccess(refresh); err == nil {
		t.Fatal("refresh token must not pass access verification")
	}
}

func TestVerifyRejectsTamperedToken(t *testing.T) {
	m := NewManager("test-secret", time.Hour, 24*time.Hour)
	access, _, err := m.IssuePair(testUser())
	if err != nil {
		t.Fatalf("IssuePair: %v", err)
	}
	parts := strings.Split(access, ".")
	tampered := parts[0] + "." + parts[1] + "." + strings.Repeat("A", len(parts[2]))
	if _, err := m.VerifyAccess(tampered); err == nil {
		t.Fatal("tampered signature must be rejected")
	}
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	issuer := NewManager("secret-one", time.Hour, 24*time.Hour)
	verifier := NewManager("secret-two", time.Hour, 24*time.Hour)
	access, _, err := issuer.IssuePair(testUser())
	if err != nil {
		t.Fatalf("IssuePair: %v", err)
	}
	if _, err := verifier.VerifyAccess(access); err == nil {
		t.Fatal("token signed with another secret must be rejected")
	}
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	m := NewManager("test-secret", -time.Minute, 24*time.Hour)
	access, _, err := m.IssuePair(testUser())
	if err != nil {
		t.Fatalf("IssuePair: %v", err)
	}
	if _, err := m.VerifyAccess(access); err == nil {
		t.Fatal("expired token must be rejected")
	}
}

func TestRefresh(t *testing.T) {
	m := NewManager("test-secret", time.Hour, 24*time.Hour)
	access, refresh, err := m.IssuePair(testUser())
	if err != nil {
		t.Fatalf("IssuePair: %v", err)
	}

	newAccess, err := m.Refresh(refresh)
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	claims, err := m.VerifyAccess(newAccess)
	if err != nil {
		t.Fatalf("VerifyAccess after refresh: %v", err)
	}
	if claims.UserID != 7 || claims.Role != model.RoleMaintenance {
		t.Errorf("refreshed claims = %+v", claims)
	}

	// an access token cannot be used to refresh
	if _, err := m.Refresh(access); err == nil {
		t.Fatal("access token must not pass refresh verification")
	}
}
