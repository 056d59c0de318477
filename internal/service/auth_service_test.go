package service

import (
	"context"
	"testing"
	"time"

	"go-caixa-pos/internal/repository"
	"go-caixa-pos/pkg/jwt"
	"go-caixa-pos/pkg/kvstore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuth_LoginLogout(t *testing.T) {
	ctx := context.Background()
	auth := NewAuthService(repository.NewAuthRepo(kvstore.NewMemory()), time.Hour)

	_, err := auth.Current(ctx)
	assert.ErrorIs(t, err, ErrNotLoggedIn)

	_, err = auth.Login(ctx, "ana@loja.com", "")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = auth.Login(ctx, "  ", "secret")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	resp, err := auth.Login(ctx, " ana@loja.com ", "anything")
	require.NoError(t, err)
	assert.Equal(t, "ana@loja.com", resp.Operator)
	assert.NotEmpty(t, resp.Token)

	claims, err := jwt.ValidateToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "ana@loja.com", claims.Email)

	current, err := auth.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, "ana@loja.com", current)

	require.NoError(t, auth.Logout(ctx))
	_, err = auth.Current(ctx)
	assert.ErrorIs(t, err, ErrNotLoggedIn)
}

func TestAuth_LogoutKeepsDrawerOpen(t *testing.T) {
	f := newFixture(t, monday)
	ctx := context.Background()
	auth := NewAuthService(repository.NewAuthRepo(f.store), time.Hour)

	_, err := auth.Login(ctx, operator, "x")
	require.NoError(t, err)
	mustApply(t)(f.caixa.Open(ctx, money("40"), "", operator))
	require.NoError(t, auth.Logout(ctx))

	assert.True(t, f.caixa.IsOpen())
	reloaded, err := NewCaixaService(ctx, repository.NewSessionRepo(f.store), nil, nil)
	require.NoError(t, err)
	assert.True(t, reloaded.IsOpen())
}
