package services

import (
	"context"
	"testing"
	"time"

	"github.com/beanup/interview-guide/internal/db"
)

type authStubStore struct {
	users map[string]*db.User
}

func newAuthStubStore() *authStubStore {
	return &authStubStore{users: map[string]*db.User{}}
}

func (s *authStubStore) CreateUser(ctx context.Context, u *db.User) error {
	copy := *u
	s.users[u.Email] = &copy
	return nil
}

func (s *authStubStore) GetUserByEmail(ctx context.Context, email string) (*db.User, error) {
	if u, ok := s.users[email]; ok {
		copy := *u
		return &copy, nil
	}
	return nil, db.ErrNotFound
}

func TestAuthRegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	store := newAuthStubStore()
	svc := NewAuthService(store, func(uid, email string, ttl time.Duration) (string, error) {
		return "token:" + uid, nil
	})
	svc.now = func() time.Time { return time.Unix(0, 0) }

	res, err := svc.Register(ctx, "user@example.com", "Secret123")
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if res.UserID == "" {
		t.Fatalf("expected user id in result: %+v", res)
	}
	if res.Token != "token:"+res.UserID {
		t.Fatalf("unexpected token %q", res.Token)
	}

	if _, err = svc.Register(ctx, "user@example.com", "Secret123"); err == nil {
		t.Fatalf("expected conflict error on duplicate registration")
	}
	if se, ok := AsServiceError(err); !ok || se.Code != ErrorConflict {
		t.Fatalf("expected conflict code, got %v", err)
	}

	loginRes, err := svc.Login(ctx, "user@example.com", "Secret123")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if loginRes.Token == "" {
		t.Fatalf("expected token in login response")
	}

	if _, err := svc.Login(ctx, "user@example.com", "wrong"); err == nil {
		t.Fatalf("expected error for wrong password")
	}
	if _, err := svc.Login(ctx, "missing@example.com", "Secret123"); err == nil {
		t.Fatalf("expected error for missing user")
	}
}

func TestAuthEmailNormalized(t *testing.T) {
	ctx := context.Background()
	store := newAuthStubStore()
	svc := NewAuthService(store, func(uid, email string, ttl time.Duration) (string, error) {
		return "tok", nil
	})

	if _, err := svc.Register(ctx, "  Founder@Example.COM ", "Secret123"); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if _, ok := store.users["founder@example.com"]; !ok {
		t.Fatalf("email not lowercased/trimmed: %v", store.users)
	}
	if _, err := svc.Login(ctx, "FOUNDER@example.com", "Secret123"); err != nil {
		t.Fatalf("login with differently cased email failed: %v", err)
	}
}

func TestAuthValidation(t *testing.T) {
	ctx := context.Background()
	store := newAuthStubStore()
	svc := NewAuthService(store, func(uid, email string, ttl time.Duration) (string, error) {
		return "tok", nil
	})

	if _, err := svc.Register(ctx, "", ""); err == nil {
		t.Fatalf("expected validation error")
	}
	if _, err := svc.Login(ctx, "", ""); err == nil {
		t.Fatalf("expected validation error on login")
	}
}
