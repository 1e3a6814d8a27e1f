package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/bookshop/internal/db/dbtest"
	"github.com/Skotchmaster/bookshop/internal/models"
	"github.com/Skotchmaster/bookshop/internal/repo"
	"github.com/Skotchmaster/bookshop/internal/tokens"
	"github.com/Skotchmaster/bookshop/internal/transport"
)

var testSecret = []byte("test-jwt-secret")

func newTestAuthService(t *testing.T) (*AuthService, *recordingPublisher) {
	t.Helper()
	pub := &recordingPublisher{}
	return &AuthService{
		Repo:      repo.New(dbtest.New(t)),
		Events:    pub,
		JWTSecret: testSecret,
		TokenTTL:  15 * time.Minute,
	}, pub
}

func TestAuthService_RegisterThenLogin(t *testing.T) {
	svc, pub := newTestAuthService(t)

	customer, err := svc.Register(ctx, transport.RegisterRequest{Username: "reader", Email: "reader@example.com", Password: "secret-pw"})
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, customer.Role)
	assert.NotEqual(t, "secret-pw", customer.PasswordHash)
	assert.Equal(t, []string{"customer_registered"}, pub.types())

	res, err := svc.Login(ctx, transport.LoginRequest{Username: "reader", Password: "secret-pw"})
	require.NoError(t, err)
	assert.Equal(t, customer.ID, res.CustomerID)
	assert.False(t, res.IsAdmin)

	claims, err := tokens.AccessClaimsFromToken(res.AccessToken, testSecret)
	require.NoError(t, err)
	assert.Equal(t, customer.ID, claims.ID)
	assert.Equal(t, models.RoleUser, claims.Role)
	assert.WithinDuration(t, res.AccessExp, claims.ExpiresAt.Time, time.Second)
}

func TestAuthService_Register_Rejects(t *testing.T) {
	svc, _ := newTestAuthService(t)

	tests := []struct {
		name     string
		username string
		password string
	}{
		{name: "empty username", username: "", password: "secret-pw"},
		{name: "short password", username: "user", password: "123"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(ctx, transport.RegisterRequest{Username: tt.username, Password: tt.password})
			assert.ErrorIs(t, err, ErrValidation)
		})
	}

	_, err := svc.Register(ctx, transport.RegisterRequest{Username: "dup", Password: "secret-pw"})
	require.NoError(t, err)
	_, err = svc.Register(ctx, transport.RegisterRequest{Username: "dup", Password: "another-pw"})
	assert.ErrorIs(t, err, ErrConflict)
}

func TestAuthService_Login_InvalidCredentials(t *testing.T) {
	svc, _ := newTestAuthService(t)

	_, err := svc.Register(ctx, transport.RegisterRequest{Username: "reader", Password: "secret-pw"})
	require.NoError(t, err)

	_, err = svc.Login(ctx, transport.LoginRequest{Username: "reader", Password: "wrong-pw"})
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = svc.Login(ctx, transport.LoginRequest{Username: "nobody", Password: "secret-pw"})
	assert.ErrorIs(t, err, ErrUnauthorized)
}
