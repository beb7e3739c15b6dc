package services

import (
	"strings"
	"testing"
	"time"
)

type stubAuthStore struct {
	byEmail map[string]*AuthUser
	byID    map[string]*AuthUser
}

func newStubAuthStore() *stubAuthStore {
	return &stubAuthStore{byEmail: map[string]*AuthUser{}, byID: map[string]*AuthUser{}}
}

func (s *stubAuthStore) FindUserByEmail(email string) (*AuthUser, error) {
	return s.byEmail[strings.ToLower(email)], nil
}

func (s *stubAuthStore) AddUser(u *AuthUser) error {
	s.byEmail[strings.ToLower(u.Email)] = u
	s.byID[u.ID] = u
	return nil
}

func (s *stubAuthStore) GetUser(id string) (*UserProfile, error) {
	u, ok := s.byID[id]
	if !ok {
		return nil, nil
	}
	return &UserProfile{UID: u.ID, Email: u.Email, DisplayName: u.DisplayName, Role: u.Role}, nil
}

func testSigner(uid, role, name string, ttl time.Duration) (string, error) {
	return "token-" + uid + "-" + role, nil
}

func TestRegisterAndLogin(t *testing.T) {
	store := newStubAuthStore()
	svc := NewAuthService(store, testSigner)

	res, err := svc.Register("ayse@example.com", "Secret123!", "Ayse Demir", RoleAuditor)
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if res.Role != RoleAuditor || res.Token == "" || res.UserID == "" {
		t.Fatalf("unexpected register result: %+v", res)
	}

	login, err := svc.Login("ayse@example.com", "Secret123!")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if login.UserID != res.UserID || login.Role != RoleAuditor {
		t.Fatalf("unexpected login result: %+v", login)
	}

	if _, err := svc.Login("ayse@example.com", "wrong"); err == nil {
		t.Fatalf("wrong password must be rejected")
	}
	if _, err := svc.Register("ayse@example.com", "Other123!", "Dup", RoleAuditor); err == nil {
		t.Fatalf("duplicate email must be rejected")
	}
}

func TestRegisterValidation(t *testing.T) {
	svc := NewAuthService(newStubAuthStore(), testSigner)
	if _, err := svc.Register("", "pw", "X", RoleAuditor); err == nil {
		t.Fatalf("empty email must be rejected")
	}
	if _, err := svc.Register("x@example.com", "  ", "X", RoleAuditor); err == nil {
		t.Fatalf("blank password must be rejected")
	}
	if _, err := svc.Register("x@example.com", "pw", "X", Role("Manager")); err == nil {
		t.Fatalf("unknown role must be rejected")
	}
}

func TestLoginRejectsUnresolvableRole(t *testing.T) {
	store := newStubAuthStore()
	svc := NewAuthService(store, testSigner)
	if _, err := svc.Register("ayse@example.com", "Secret123!", "Ayse Demir", RoleAuditor); err != nil {
		t.Fatalf("register: %v", err)
	}
	store.byEmail["ayse@example.com"].Role = ""

	_, err := svc.Login("ayse@example.com", "Secret123!")
	se, ok := AsServiceError(err)
	if !ok || se.Code != ErrorUnauthorized {
		t.Fatalf("err = %v, want unauthorized (no resolvable role)", err)
	}
}

func TestProfileResolution(t *testing.T) {
	store := newStubAuthStore()
	svc := NewAuthService(store, testSigner)
	res, err := svc.Register("ayse@example.com", "Secret123!", "Ayse Demir", RoleAuditor)
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	p, err := svc.Profile(res.UserID)
	if err != nil {
		t.Fatalf("profile: %v", err)
	}
	if p.DisplayName != "Ayse Demir" || p.Role != RoleAuditor {
		t.Fatalf("profile = %+v", p)
	}

	if _, err := svc.Profile(""); err == nil {
		t.Fatalf("blank uid must be unauthorized")
	}
	if _, err := svc.Profile("ghost"); err == nil {
		t.Fatalf("missing profile must be unauthorized")
	}
}
