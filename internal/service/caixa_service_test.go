package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"go-caixa-pos/internal/model"
	"go-caixa-pos/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const operator = "ana@loja.com"

var monday = time.Date(2026, 3, 16, 9, 0, 0, 0, time.UTC)

func openExample(t *testing.T, f *fixture) {
	t.Helper()
	ctx := context.Background()
	mustApply(t)(f.caixa.Open(ctx, money("100.00"), "", operator))
	mustApply(t)(f.caixa.RecordMovement(ctx, model.MovementDeposit, money("50.00"), "troco", operator))
	mustApply(t)(f.caixa.RecordMovement(ctx, model.MovementWithdrawal, money("30.00"), "", operator))
	mustApply(t)(f.caixa.RegisterSale(ctx, "s-1", money("25.50"), operator))
}

// mustApply checks a transition result: mustApply(t)(svc.Open(...)).
func mustApply(t *testing.T) func(bool, error) {
	t.Helper()
	return func(applied bool, err error) {
		t.Helper()
		require.NoError(t, err)
		require.True(t, applied)
	}
}

func TestCaixa_ExampleFlowReconciles(t *testing.T) {
	f := newFixture(t, monday)
	openExample(t, f)

	assert.True(t, f.caixa.IsOpen())
	assertMoney(t, "145.50", f.caixa.Balance())

	active := f.caixa.Active()
	require.NotNil(t, active)
	require.Len(t, active.Movements, 4)
	assert.Equal(t, DefaultOpenNote, active.Movements[0].Note)
	assert.Equal(t, "Withdrawal", active.Movements[2].Note)
	assert.Equal(t, "Sale #s-1", active.Movements[3].Note)

	mustApply(t)(f.caixa.Close(context.Background(), money("145.50"), operator))

	assert.False(t, f.caixa.IsOpen())
	assert.Nil(t, f.caixa.Active())
	assert.True(t, f.caixa.Balance().IsZero())

	history := f.caixa.History()
	require.Len(t, history, 1)
	closed := history[0]
	assert.Equal(t, model.SessionClosed, closed.Status)
	require.NotNil(t, closed.ClosedAt)
	require.NotNil(t, closed.ClosingAmount)
	assertMoney(t, "145.50", *closed.ClosingAmount)

	last := closed.Movements[len(closed.Movements)-1]
	assert.Equal(t, model.MovementClose, last.Kind)
	assertMoney(t, "145.50", last.Amount)
	assert.Equal(t, "Cash drawer closed - difference: 0.00", last.Note)

	rec := closed.Reconcile()
	require.NotNil(t, rec)
	assert.Equal(t, model.Reconciled, rec.Classification)
}

func TestCaixa_CloseShortfall(t *testing.T) {
	f := newFixture(t, monday)
	openExample(t, f)
	mustApply(t)(f.caixa.Close(context.Background(), money("140.00"), operator))

	summaries := f.caixa.HistorySummaries(10)
	require.Len(t, summaries, 1)
	require.NotNil(t, summaries[0].Reconciliation)
	assertMoney(t, "-5.50", summaries[0].Reconciliation.Difference)
	assert.Equal(t, model.Shortfall, summaries[0].Reconciliation.Classification)

	last := f.caixa.History()[0].Movements
	assert.True(t, strings.HasSuffix(last[len(last)-1].Note, "-5.50"))
}

func TestCaixa_OpenTwiceIsNoop(t *testing.T) {
	f := newFixture(t, monday)
	ctx := context.Background()
	mustApply(t)(f.caixa.Open(ctx, money("100"), "", operator))
	before := f.caixa.Active()

	applied, err := f.caixa.Open(ctx, money("500"), "again", "other@loja.com")
	require.NoError(t, err)
	assert.False(t, applied)
	assert.Equal(t, before, f.caixa.Active())
}

func TestCaixa_ClosedDropsMovements(t *testing.T) {
	f := newFixture(t, monday)
	ctx := context.Background()

	applied, err := f.caixa.RecordMovement(ctx, model.MovementDeposit, money("10"), "", operator)
	require.NoError(t, err)
	assert.False(t, applied)

	applied, err = f.caixa.RegisterSale(ctx, "s-1", money("10"), operator)
	require.NoError(t, err)
	assert.False(t, applied)

	applied, err = f.caixa.Close(ctx, money("10"), operator)
	require.NoError(t, err)
	assert.False(t, applied)

	assert.Nil(t, f.caixa.Active())
	assert.Empty(t, f.caixa.History())
}

func TestCaixa_RejectsNonManualKinds(t *testing.T) {
	f := newFixture(t, monday)
	ctx := context.Background()
	mustApply(t)(f.caixa.Open(ctx, money("10"), "", operator))

	for _, kind := range []model.MovementKind{model.MovementOpen, model.MovementSale, model.MovementClose} {
		applied, err := f.caixa.RecordMovement(ctx, kind, money("1"), "", operator)
		assert.ErrorIs(t, err, ErrInvalidMovementKind)
		assert.False(t, applied)
	}
	assert.Len(t, f.caixa.Active().Movements, 1)
}

func TestCaixa_NegativeAmountsBecomeZero(t *testing.T) {
	f := newFixture(t, monday)
	ctx := context.Background()
	mustApply(t)(f.caixa.Open(ctx, money("-20"), "", operator))
	mustApply(t)(f.caixa.RecordMovement(ctx, model.MovementWithdrawal, money("-5"), "", operator))

	active := f.caixa.Active()
	for _, m := range active.Movements {
		assert.False(t, m.Amount.IsNegative())
	}
	assert.True(t, active.OpeningAmount.IsZero())
	assert.True(t, f.caixa.Balance().IsZero())
}

func TestCaixa_StateSurvivesRestart(t *testing.T) {
	f := newFixture(t, monday)
	ctx := context.Background()
	openExample(t, f)
	mustApply(t)(f.caixa.Close(ctx, money("140.00"), operator))
	mustApply(t)(f.caixa.Open(ctx, money("80"), "", operator))

	reloaded, err := NewCaixaService(ctx, repository.NewSessionRepo(f.store), nil, f.clock.Now)
	require.NoError(t, err)

	assert.True(t, reloaded.IsOpen())
	assertMoney(t, "80", reloaded.Balance())
	require.Len(t, reloaded.History(), 1)
	rec := reloaded.History()[0].Reconcile()
	require.NotNil(t, rec)
	assertMoney(t, "-5.50", rec.Difference)
}

func TestCaixa_ArchivedSessionReloadsFieldForField(t *testing.T) {
	f := newFixture(t, monday)
	ctx := context.Background()
	openExample(t, f)
	mustApply(t)(f.caixa.Close(ctx, money("145.50"), operator))

	require.Len(t, f.caixa.History(), 1)
	want := f.caixa.History()[0]

	history, err := repository.NewSessionRepo(f.store).LoadHistory(ctx)
	require.NoError(t, err)
	require.Len(t, history, 1)
	got := history[0]

	assert.Equal(t, want.ID, got.ID)
	assert.Equal(t, want.Status, got.Status)
	assert.Equal(t, want.Operator, got.Operator)
	assert.True(t, want.OpenedAt.Equal(got.OpenedAt))
	require.NotNil(t, got.ClosedAt)
	assert.True(t, want.ClosedAt.Equal(*got.ClosedAt))
	assert.True(t, want.OpeningAmount.Equal(got.OpeningAmount))
	require.NotNil(t, got.ClosingAmount)
	assert.True(t, want.ClosingAmount.Equal(*got.ClosingAmount))

	require.Len(t, got.Movements, len(want.Movements))
	kinds := []model.MovementKind{
		model.MovementOpen, model.MovementDeposit, model.MovementWithdrawal,
		model.MovementSale, model.MovementClose,
	}
	require.Len(t, got.Movements, len(kinds))
	for i, m := range got.Movements {
		w := want.Movements[i]
		assert.Equal(t, kinds[i], m.Kind, "movement %d", i)
		assert.Equal(t, w.ID, m.ID)
		assert.Equal(t, w.Kind, m.Kind)
		assert.Equal(t, w.Note, m.Note)
		assert.Equal(t, w.Operator, m.Operator)
		assert.True(t, w.Amount.Equal(m.Amount), "movement %d amount", i)
		assert.True(t, w.Timestamp.Equal(m.Timestamp), "movement %d timestamp", i)
	}

	assertMoney(t, "145.50", got.Balance())
	rec := got.Reconcile()
	require.NotNil(t, rec)
	assert.Equal(t, model.Reconciled, rec.Classification)
}

func TestCaixa_FailedWriteLeavesMemoryUntouched(t *testing.T) {
	f := newFixture(t, monday)
	ctx := context.Background()
	mustApply(t)(f.caixa.Open(ctx, money("100"), "", operator))

	f.store.setFailing(true)
	applied, err := f.caixa.RecordMovement(ctx, model.MovementDeposit, money("50"), "", operator)
	assert.ErrorIs(t, err, errBoom)
	assert.False(t, applied)
	assertMoney(t, "100", f.caixa.Balance())

	applied, err = f.caixa.Close(ctx, money("100"), operator)
	assert.ErrorIs(t, err, errBoom)
	assert.False(t, applied)
	assert.True(t, f.caixa.IsOpen())
	assert.Empty(t, f.caixa.History())

	f.store.setFailing(false)
	mustApply(t)(f.caixa.Close(ctx, money("100"), operator))
	assert.Len(t, f.caixa.History(), 1)
}

func TestCaixa_HistorySummariesNewestFirst(t *testing.T) {
	f := newFixture(t, monday)
	ctx := context.Background()
	var ids []string
	for i := 0; i < 12; i++ {
		mustApply(t)(f.caixa.Open(ctx, money("10"), "", operator))
		ids = append(ids, f.caixa.Active().ID)
		mustApply(t)(f.caixa.Close(ctx, money("10"), operator))
	}

	summaries := f.caixa.HistorySummaries(DefaultHistorySize)
	require.Len(t, summaries, DefaultHistorySize)
	assert.Equal(t, ids[11], summaries[0].ID)
	assert.Equal(t, ids[2], summaries[9].ID)

	assert.Len(t, f.caixa.HistorySummaries(0), 12)
}

func TestCaixa_ActiveIsACopy(t *testing.T) {
	f := newFixture(t, monday)
	ctx := context.Background()
	mustApply(t)(f.caixa.Open(ctx, money("10"), "", operator))

	snapshot := f.caixa.Active()
	snapshot.Movements = append(snapshot.Movements, model.Movement{Kind: model.MovementDeposit, Amount: money("1000")})

	assertMoney(t, "10", f.caixa.Balance())
}
