package services

import (
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// AuthUser is the stored credential record behind a profile.
type AuthUser struct {
	ID          string
	Email       string
	PassHash    []byte
	DisplayName string
	PhotoURL    string
	Role        Role
	CreatedAt   time.Time
}

type AuthStore interface {
	FindUserByEmail(email string) (*AuthUser, error)
	AddUser(u *AuthUser) error
	GetUser(id string) (*UserProfile, error)
}

type TokenSigner func(uid, role, name string, ttl time.Duration) (string, error)

type AuthService struct {
	store     AuthStore
	now       func() time.Time
	idGen     func(prefix string, n int) string
	signToken TokenSigner
	tokenTTL  time.Duration
}

type AuthResult struct {
	Token  string
	UserID string
	Role   Role
}

func NewAuthService(store AuthStore, signer TokenSigner) *AuthService {
	return &AuthService{
		store:     store,
		now:       func() time.Time { return time.Now().UTC() },
		idGen:     func(prefix string, n int) string { return prefix + shortID(n) },
		signToken: signer,
		tokenTTL:  30 * 24 * time.Hour,
	}
}

// Register creates a new profile. The public surface only ever creates
// auditors; admin accounts come from seeding or operator action.
func (s *AuthService) Register(email, password, displayName string, role Role) (*AuthResult, error) {
	email = strings.TrimSpace(email)
	if email == "" || strings.TrimSpace(password) == "" {
		return nil, NewInvalidError("email/password required")
	}
	if role != RoleAdmin && role != RoleAuditor {
		return nil, NewInvalidError("unknown role")
	}
	existing, err := s.store.FindUserByEmail(email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, NewConflictError("email exists")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	userID := s.idGen("u", 7)
	now := s.now()
	if strings.TrimSpace(displayName) == "" {
		displayName = email
	}
	u := &AuthUser{ID: userID, Email: email, PassHash: hash, DisplayName: displayName, Role: role, CreatedAt: now}
	if err := s.store.AddUser(u); err != nil {
		return nil, err
	}
	if s.signToken == nil {
		return nil, NewInvalidError("token signer not configured")
	}
	token, err := s.signToken(userID, string(role), displayName, s.tokenTTL)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, UserID: userID, Role: role}, nil
}

func (s *AuthService) Login(email, password string) (*AuthResult, error) {
	email = strings.TrimSpace(email)
	if email == "" || strings.TrimSpace(password) == "" {
		return nil, NewInvalidError("email/password required")
	}
	u, err := s.store.FindUserByEmail(email)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, NewUnauthorizedError("invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword(u.PassHash, []byte(password)); err != nil {
		return nil, NewUnauthorizedError("invalid credentials")
	}
	if u.Role != RoleAdmin && u.Role != RoleAuditor {
		// A profile with no resolvable role is unauthorized.
		return nil, NewUnauthorizedError("no role assigned")
	}
	if s.signToken == nil {
		return nil, NewInvalidError("token signer not configured")
	}
	token, err := s.signToken(u.ID, string(u.Role), u.DisplayName, s.tokenTTL)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, UserID: u.ID, Role: u.Role}, nil
}

// Profile resolves the stored profile for an authenticated principal.
func (s *AuthService) Profile(uid string) (*UserProfile, error) {
	if strings.TrimSpace(uid) == "" {
		return nil, NewUnauthorizedError("unauthenticated")
	}
	p, err := s.store.GetUser(uid)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, NewUnauthorizedError("profile not found")
	}
	return p, nil
}

func (s *AuthService) TokenTTL() time.Duration {
	return s.tokenTTL
}
