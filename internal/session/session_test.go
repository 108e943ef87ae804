package session

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/VipulSingh-10/Tanzania-Car-Sharing-Frontend/internal/domain/models"
	"github.com/VipulSingh-10/Tanzania-Car-Sharing-Frontend/internal/domain/types"
	"github.com/VipulSingh-10/Tanzania-Car-Sharing-Frontend/pkg/logger"
	"github.com/golang-jwt/jwt/v5"
)

func newTestSession(t *testing.T) (*Session, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "session.json")
	log := logger.InitLogger("test", logger.LevelError)
	return New(context.Background(), NewStore(path), log), path
}

func testProfile() models.UserIdentity {
	return models.UserIdentity{
		UserID:      "u1",
		FullName:    "A B",
		EmailID:     "a@b.com",
		PhoneNumber: "+255700000000",
	}
}

func TestLoginLogout(t *testing.T) {
	s, _ := newTestSession(t)
	ctx := context.Background()

	if s.IsAuthenticated() {
		t.Fatal("fresh session must be unauthenticated")
	}

	if err := s.Login(ctx, "u1", testProfile(), ""); err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if !s.IsAuthenticated() {
		t.Fatal("must be authenticated immediately after login")
	}
	if s.UserID() != "u1" {
		t.Fatalf("unexpected user id %q", s.UserID())
	}

	if err := s.Logout(ctx); err != nil {
		t.Fatalf("logout failed: %v", err)
	}
	if s.IsAuthenticated() {
		t.Fatal("must be unauthenticated immediately after logout")
	}
	if _, ok := s.Profile(); ok {
		t.Fatal("profile must be gone after logout")
	}
}

func TestRestoreAcrossRestart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	log := logger.InitLogger("test", logger.LevelError)
	ctx := context.Background()

	first := New(ctx, NewStore(path), log)
	if err := first.Login(ctx, "u1", testProfile(), ""); err != nil {
		t.Fatalf("login failed: %v", err)
	}

	// Simulated restart: a new session over the same store must be
	// authenticated before any guard runs.
	second := New(ctx, NewStore(path), log)
	if !second.IsAuthenticated() {
		t.Fatal("session must be restored synchronously at construction")
	}
	profile, ok := second.Profile()
	if !ok || profile.FullName != "A B" {
		t.Fatalf("profile not restored: %+v", profile)
	}
}

func TestLogoutClearsDurableState(t *testing.T) {
	s, path := newTestSession(t)
	ctx := context.Background()

	if err := s.Login(ctx, "u1", testProfile(), ""); err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if err := s.Logout(ctx); err != nil {
		t.Fatalf("logout failed: %v", err)
	}

	if _, err := os.Stat(path); !errors.Is(err, os.ErrNotExist) {
		t.Fatal("durable state must be cleared on logout")
	}

	restarted := New(ctx, NewStore(path), logger.InitLogger("test", logger.LevelError))
	if restarted.IsAuthenticated() {
		t.Fatal("restarted session must not resurrect a logged-out user")
	}
}

func TestCorruptStoreMeansNoSession(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}

	s := New(context.Background(), NewStore(path), logger.InitLogger("test", logger.LevelError))
	if s.IsAuthenticated() {
		t.Fatal("corrupt store must read as unauthenticated")
	}
}

func TestRequire(t *testing.T) {
	s, _ := newTestSession(t)
	ctx := context.Background()

	if _, err := s.Require(ctx); !errors.Is(err, types.ErrNotAuthenticated) {
		t.Fatalf("expected ErrNotAuthenticated, got %v", err)
	}

	if err := s.Login(ctx, "u1", testProfile(), ""); err != nil {
		t.Fatalf("login failed: %v", err)
	}
	userID, err := s.Require(ctx)
	if err != nil || userID != "u1" {
		t.Fatalf("guard should pass: %q, %v", userID, err)
	}
}

func TestExpiredTokenReadsUnauthenticated(t *testing.T) {
	s, _ := newTestSession(t)
	ctx := context.Background()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "u1",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
	})
	signed, err := token.SignedString([]byte("irrelevant"))
	if err != nil {
		t.Fatal(err)
	}

	if err := s.Login(ctx, "u1", testProfile(), signed); err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if s.IsAuthenticated() {
		t.Fatal("expired token must read as unauthenticated")
	}
	if _, err := s.Require(ctx); !errors.Is(err, types.ErrSessionExpired) {
		t.Fatalf("expected ErrSessionExpired, got %v", err)
	}
}
