package repository

import (
	"context"

	"go-caixa-pos/pkg/kvstore"
)

// AuthRepository persists the local login flag and operator identity.
type AuthRepository interface {
	SetLoggedIn(ctx context.Context, email string) error
	Clear(ctx context.Context) error
	// Current returns the logged-in operator email, or "" when logged out.
	Current(ctx context.Context) (string, error)
}

type authRepo struct {
	store kvstore.Store
}

func NewAuthRepo(store kvstore.Store) AuthRepository {
	return &authRepo{store: store}
}

func (r *authRepo) SetLoggedIn(ctx context.Context, email string) error {
	flag, err := kvstore.SetJSONOp(KeyLoggedIn, true)
	if err != nil {
		return err
	}
	operator, err := kvstore.SetJSONOp(KeyOperatorEmail, email)
	if err != nil {
		return err
	}
	return r.store.Batch(ctx, flag, operator)
}

func (r *authRepo) Clear(ctx context.Context) error {
	return r.store.Batch(ctx, kvstore.RemoveOp(KeyLoggedIn), kvstore.RemoveOp(KeyOperatorEmail))
}

func (r *authRepo) Current(ctx context.Context) (string, error) {
	var loggedIn bool
	if _, err := kvstore.GetJSON(ctx, r.store, KeyLoggedIn, &loggedIn); err != nil {
		return "", err
	}
	if !loggedIn {
		return "", nil
	}
	var email string
	if _, err := kvstore.GetJSON(ctx, r.store, KeyOperatorEmail, &email); err != nil {
		return "", err
	}
	return email, nil
}
