package auth

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func newTestService() *Service {
	return NewService(Options{Cost: bcrypt.MinCost})
}

func TestSignUpAndSignIn(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	user, token, err := svc.SignUp(ctx, "demo@example.com", "secret")
	if err != nil {
		t.Fatalf("SignUp: %v", err)
	}
	if user.ID == "" || token == "" {
		t.Fatalf("expected user id and session token, got %+v %q", user, token)
	}
	if got, ok := svc.SessionUser(token); !ok || got.Email != "demo@example.com" {
		t.Fatalf("expected session opened on sign up")
	}

	again, token2, err := svc.SignIn(ctx, "demo@example.com", "secret")
	if err != nil {
		t.Fatalf("SignIn: %v", err)
	}
	if again.ID != user.ID {
		t.Fatalf("expected same account, got %q vs %q", again.ID, user.ID)
	}
	if token2 == token {
		t.Fatalf("expected a fresh session token per sign in")
	}
}

func TestSignUpRejectsDuplicateEmail(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	if _, _, err := svc.SignUp(ctx, "demo@example.com", "secret"); err != nil {
		t.Fatalf("SignUp: %v", err)
	}
	_, _, err := svc.SignUp(ctx, "Demo@Example.COM", "other")
	if !errors.Is(err, ErrUserExists) {
		t.Fatalf("expected ErrUserExists for case-insensitive duplicate, got %v", err)
	}
}

func TestSignInWrongPassword(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	svc.SignUp(ctx, "demo@example.com", "secret")

	if _, _, err := svc.SignIn(ctx, "demo@example.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, _, err := svc.SignIn(ctx, "nobody@example.com", "secret"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}
}

func TestSignUpRequiresCredentials(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	if _, _, err := svc.SignUp(ctx, "", "secret"); !errors.Is(err, ErrMissingCredentials) {
		t.Fatalf("expected ErrMissingCredentials, got %v", err)
	}
	if _, _, err := svc.SignUp(ctx, "demo@example.com", ""); !errors.Is(err, ErrMissingCredentials) {
		t.Fatalf("expected ErrMissingCredentials, got %v", err)
	}
}

func TestSignInNormalizesEmail(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	svc.SignUp(ctx, "demo@example.com", "secret")
	user, _, err := svc.SignIn(ctx, "  DEMO@example.com ", "secret")
	if err != nil {
		t.Fatalf("SignIn: %v", err)
	}
	if user.Email != "demo@example.com" {
		t.Fatalf("expected normalized email, got %q", user.Email)
	}
}

func TestSignOutDropsSession(t *testing.T) {
	svc := newTestService()
	_, token, _ := svc.SignUp(context.Background(), "demo@example.com", "secret")
	svc.SignOut(token)
	if _, ok := svc.SessionUser(token); ok {
		t.Fatalf("expected session dropped")
	}
	// Unknown token sign out is a no-op.
	svc.SignOut("missing")
}

func TestPasswordsAreHashed(t *testing.T) {
	store := NewMemoryStore()
	svc := NewService(Options{Store: store, Cost: bcrypt.MinCost})
	ctx := context.Background()
	svc.SignUp(ctx, "demo@example.com", "secret")

	account, found, err := store.FindByEmail(ctx, "demo@example.com")
	if err != nil || !found {
		t.Fatalf("expected stored account, found=%v err=%v", found, err)
	}
	if account.PasswordHash == "secret" {
		t.Fatalf("password stored in the clear")
	}
	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte("secret")) != nil {
		t.Fatalf("expected hash to verify against the password")
	}
}

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.json")
	store := NewFileStore(path)
	ctx := context.Background()

	if _, found, err := store.FindByEmail(ctx, "demo@example.com"); err != nil || found {
		t.Fatalf("expected empty store, found=%v err=%v", found, err)
	}

	account := Account{ID: "u1", Email: "demo@example.com", PasswordHash: "hash"}
	if err := store.Save(ctx, account); err != nil {
		t.Fatalf("Save: %v", err)
	}

	reopened := NewFileStore(path)
	got, found, err := reopened.FindByEmail(ctx, "demo@example.com")
	if err != nil || !found {
		t.Fatalf("expected persisted account, found=%v err=%v", found, err)
	}
	if got != account {
		t.Fatalf("unexpected account %+v", got)
	}
}

func TestFileStoreUpdatesExistingAccount(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.json")
	store := NewFileStore(path)
	ctx := context.Background()

	store.Save(ctx, Account{ID: "u1", Email: "demo@example.com", PasswordHash: "old"})
	store.Save(ctx, Account{ID: "u1", Email: "demo@example.com", PasswordHash: "new"})

	got, _, err := store.FindByEmail(ctx, "demo@example.com")
	if err != nil {
		t.Fatalf("FindByEmail: %v", err)
	}
	if got.PasswordHash != "new" {
		t.Fatalf("expected updated hash, got %q", got.PasswordHash)
	}
}
