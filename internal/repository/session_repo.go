package repository

import (
	"context"

	"go-caixa-pos/internal/model"
	"go-caixa-pos/pkg/kvstore"
)

type SessionRepository interface {
	// LoadActive returns nil when no session is open.
	LoadActive(ctx context.Context) (*model.Session, error)
	LoadHistory(ctx context.Context) ([]model.Session, error)
	SaveActive(ctx context.Context, session *model.Session) error
	// Archive stores the new history and drops the active snapshot in one
	// batch, so a closed session is never both active and archived.
	Archive(ctx context.Context, history []model.Session) error
}

type sessionRepo struct {
	store kvstore.Store
}

func NewSessionRepo(store kvstore.Store) SessionRepository {
	return &sessionRepo{store: store}
}

func (r *sessionRepo) LoadActive(ctx context.Context) (*model.Session, error) {
	var s model.Session
	found, err := kvstore.GetJSON(ctx, r.store, KeyActiveSession, &s)
	if err != nil || !found {
		return nil, err
	}
	return &s, nil
}

func (r *sessionRepo) LoadHistory(ctx context.Context) ([]model.Session, error) {
	history := []model.Session{}
	if _, err := kvstore.GetJSON(ctx, r.store, KeySessionHistory, &history); err != nil {
		return nil, err
	}
	return history, nil
}

func (r *sessionRepo) SaveActive(ctx context.Context, session *model.Session) error {
	if session == nil {
		return r.store.Remove(ctx, KeyActiveSession)
	}
	return kvstore.SetJSON(ctx, r.store, KeyActiveSession, session)
}

func (r *sessionRepo) Archive(ctx context.Context, history []model.Session) error {
	op, err := kvstore.SetJSONOp(KeySessionHistory, history)
	if err != nil {
		return err
	}
	return r.store.Batch(ctx, op, kvstore.RemoveOp(KeyActiveSession))
}
