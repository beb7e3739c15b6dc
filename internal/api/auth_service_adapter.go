package api

import (
	"github.com/mkarahan/storeaudit/internal/services"
)

type authStoreAdapter struct {
	store Datastore
}

func newAuthStoreAdapter(store Datastore) services.AuthStore {
	return &authStoreAdapter{store: store}
}

func (a *authStoreAdapter) FindUserByEmail(email string) (*services.AuthUser, error) {
	u := a.store.FindUserByEmail(email)
	if u == nil {
		return nil, nil
	}
	return &services.AuthUser{
		ID:          u.ID,
		Email:       u.Email,
		PassHash:    u.PassHash,
		DisplayName: u.DisplayName,
		PhotoURL:    u.PhotoURL,
		Role:        services.Role(u.Role),
		CreatedAt:   u.CreatedAt,
	}, nil
}

func (a *authStoreAdapter) AddUser(u *services.AuthUser) error {
	if u == nil {
		return services.NewInvalidError("user required")
	}
	a.store.AddUser(&User{
		ID:          u.ID,
		Email:       u.Email,
		PassHash:    u.PassHash,
		DisplayName: u.DisplayName,
		PhotoURL:    u.PhotoURL,
		Role:        string(u.Role),
		CreatedAt:   u.CreatedAt,
	})
	return nil
}

func (a *authStoreAdapter) GetUser(id string) (*services.UserProfile, error) {
	return convertAPIUser(a.store.GetUser(id)), nil
}

var _ services.AuthStore = (*authStoreAdapter)(nil)
