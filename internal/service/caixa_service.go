package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go-caixa-pos/internal/model"
	"go-caixa-pos/internal/repository"
	"go-caixa-pos/internal/ws"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

var ErrInvalidMovementKind = errors.New("only withdrawal and deposit can be recorded manually")

const (
	DefaultOpenNote    = "Cash drawer opened"
	DefaultHistorySize = 10
)

// CaixaService owns the cash drawer session and its archive. Transition
// methods report whether the transition was applied; a transition that is
// not valid in the current state is dropped without an error. The returned
// error is always a persistence failure, in which case memory is untouched.
type CaixaService interface {
	Open(ctx context.Context, amount decimal.Decimal, note, operator string) (bool, error)
	RecordMovement(ctx context.Context, kind model.MovementKind, amount decimal.Decimal, note, operator string) (bool, error)
	RegisterSale(ctx context.Context, saleID string, total decimal.Decimal, operator string) (bool, error)
	Close(ctx context.Context, counted decimal.Decimal, operator string) (bool, error)

	// Active returns a copy of the open session, or nil.
	Active() *model.Session
	History() []model.Session
	HistorySummaries(limit int) []model.SessionSummary
	Balance() decimal.Decimal
	IsOpen() bool
}

type caixaService struct {
	mu      sync.Mutex
	repo    repository.SessionRepository
	wsHub   *ws.Hub
	now     func() time.Time
	active  *model.Session
	history []model.Session
}

// NewCaixaService loads the persisted session state. A nil clock uses
// time.Now.
func NewCaixaService(ctx context.Context, repo repository.SessionRepository, hub *ws.Hub, clock func() time.Time) (CaixaService, error) {
	if clock == nil {
		clock = time.Now
	}
	active, err := repo.LoadActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("load active session: %w", err)
	}
	history, err := repo.LoadHistory(ctx)
	if err != nil {
		return nil, fmt.Errorf("load session history: %w", err)
	}
	if active != nil && !active.IsOpen() {
		log.Warn().Str("session_id", active.ID).Msg("persisted active session is not open, ignoring it")
		active = nil
	}
	return &caixaService{
		repo:    repo,
		wsHub:   hub,
		now:     clock,
		active:  active,
		history: history,
	}, nil
}

func (s *caixaService) movement(kind model.MovementKind, amount decimal.Decimal, note, operator string) model.Movement {
	return model.Movement{
		ID:        model.NewID(),
		Kind:      kind,
		Amount:    model.NewAmount(amount).Decimal,
		Note:      note,
		Timestamp: s.now(),
		Operator:  operator,
	}
}

func (s *caixaService) Open(ctx context.Context, amount decimal.Decimal, note, operator string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active != nil {
		log.Debug().Str("session_id", s.active.ID).Msg("open ignored, drawer already open")
		return false, nil
	}

	if strings.TrimSpace(note) == "" {
		note = DefaultOpenNote
	}
	first := s.movement(model.MovementOpen, amount, note, operator)
	next := &model.Session{
		ID:            model.NewID(),
		OpenedAt:      first.Timestamp,
		OpeningAmount: first.Amount,
		Status:        model.SessionOpen,
		Movements:     []model.Movement{first},
		Operator:      operator,
	}

	if err := s.repo.SaveActive(ctx, next); err != nil {
		return false, fmt.Errorf("persist opened session: %w", err)
	}
	s.active = next

	log.Info().
		Str("session_id", next.ID).
		Str("operator", operator).
		Str("amount", next.OpeningAmount.StringFixed(2)).
		Msg("cash drawer opened")
	s.notify("opened", next)
	return true, nil
}

func (s *caixaService) RecordMovement(ctx context.Context, kind model.MovementKind, amount decimal.Decimal, note, operator string) (bool, error) {
	if !kind.Manual() {
		return false, ErrInvalidMovementKind
	}
	if strings.TrimSpace(note) == "" {
		note = manualNote(kind)
	}
	return s.appendMovement(ctx, kind, amount, note, operator)
}

func (s *caixaService) RegisterSale(ctx context.Context, saleID string, total decimal.Decimal, operator string) (bool, error) {
	return s.appendMovement(ctx, model.MovementSale, total, "Sale #"+saleID, operator)
}

func (s *caixaService) appendMovement(ctx context.Context, kind model.MovementKind, amount decimal.Decimal, note, operator string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active == nil {
		log.Debug().Str("kind", string(kind)).Msg("movement dropped, drawer closed")
		return false, nil
	}

	next := s.active.Clone()
	m := s.movement(kind, amount, note, operator)
	next.Movements = append(next.Movements, m)

	if err := s.repo.SaveActive(ctx, &next); err != nil {
		return false, fmt.Errorf("persist %s movement: %w", kind, err)
	}
	s.active = &next

	log.Info().
		Str("session_id", next.ID).
		Str("kind", string(kind)).
		Str("amount", m.Amount.StringFixed(2)).
		Str("balance", next.Balance().StringFixed(2)).
		Msg("movement recorded")
	s.notify("movement", &next)
	return true, nil
}

func (s *caixaService) Close(ctx context.Context, counted decimal.Decimal, operator string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active == nil {
		log.Debug().Msg("close ignored, drawer already closed")
		return false, nil
	}

	closed := s.active.Clone()
	counted = model.NewAmount(counted).Decimal
	rec := model.NewReconciliation(counted, closed.Balance())

	m := s.movement(model.MovementClose, counted,
		fmt.Sprintf("Cash drawer closed - difference: %s", rec.Difference.StringFixed(2)), operator)
	closed.Movements = append(closed.Movements, m)
	closed.Status = model.SessionClosed
	closedAt := m.Timestamp
	closed.ClosedAt = &closedAt
	closed.ClosingAmount = &counted

	history := make([]model.Session, len(s.history), len(s.history)+1)
	copy(history, s.history)
	history = append(history, closed)

	if err := s.repo.Archive(ctx, history); err != nil {
		return false, fmt.Errorf("archive closed session: %w", err)
	}
	s.history = history
	s.active = nil

	log.Info().
		Str("session_id", closed.ID).
		Str("expected", rec.Expected.StringFixed(2)).
		Str("counted", rec.Counted.StringFixed(2)).
		Str("difference", rec.Difference.StringFixed(2)).
		Str("classification", string(rec.Classification)).
		Msg("cash drawer closed")
	s.notify("closed", &closed)
	return true, nil
}

func (s *caixaService) Active() *model.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active == nil {
		return nil
	}
	out := s.active.Clone()
	return &out
}

func (s *caixaService) History() []model.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Session, len(s.history))
	for i := range s.history {
		out[i] = s.history[i].Clone()
	}
	return out
}

// HistorySummaries returns up to limit archived sessions, newest first, with
// the reconciliation recomputed from each session's own movements.
func (s *caixaService) HistorySummaries(limit int) []model.SessionSummary {
	s.mu.Lock()
	defer s.mu.Unlock()
	if limit <= 0 || limit > len(s.history) {
		limit = len(s.history)
	}
	out := make([]model.SessionSummary, 0, limit)
	for i := len(s.history) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, s.history[i].Summary())
	}
	return out
}

func (s *caixaService) Balance() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active.Balance()
}

func (s *caixaService) IsOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active.IsOpen()
}

func (s *caixaService) notify(action string, session *model.Session) {
	s.wsHub.Notify(ws.EventCaixaUpdate, map[string]interface{}{
		"action":     action,
		"session_id": session.ID,
		"status":     session.Status,
		"balance":    session.Balance().StringFixed(2),
		"operator":   session.Operator,
	})
}

func manualNote(kind model.MovementKind) string {
	switch kind {
	case model.MovementWithdrawal:
		return "Withdrawal"
	case model.MovementDeposit:
		return "Deposit"
	}
	return string(kind)
}
