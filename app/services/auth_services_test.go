package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kicksup/kicksup/app/events"
	"github.com/kicksup/kicksup/app/models"
	"github.com/kicksup/kicksup/app/services"
	"github.com/kicksup/kicksup/pkg/auth"
	"github.com/kicksup/kicksup/pkg/result"
)

func TestLoginSeededAdmin(t *testing.T) {
	f := newFixture(t)

	res, err := f.auth.Login(context.Background(), services.LoginRequest{Username: "admin", Password: "Admin123!"})
	require.NoError(t, err)
	require.True(t, res.OK)
	assert.Equal(t, "Administrator", res.Data.Role)
	assert.Equal(t, "admin", res.Data.Username)

	claims, err := auth.ValidateToken(res.Data.Token)
	require.NoError(t, err)
	id, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, res.Data.UserID, id)
	assert.Equal(t, "Administrator", claims.Role)
	assert.Equal(t, []string{events.NameLoginAttempted}, f.rec.names())
}

func TestLoginFailuresShareMessage(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	wrongPass, err := f.auth.Login(ctx, services.LoginRequest{Username: "admin", Password: "nope"})
	require.NoError(t, err)
	unknown, err := f.auth.Login(ctx, services.LoginRequest{Username: "ghost", Password: "Admin123!"})
	require.NoError(t, err)
	caseMismatch, err := f.auth.Login(ctx, services.LoginRequest{Username: "ADMIN", Password: "Admin123!"})
	require.NoError(t, err)

	for _, res := range []result.Result[services.AuthResponse]{wrongPass, unknown, caseMismatch} {
		assert.False(t, res.OK)
		assert.Equal(t, result.InvalidCredentials, res.Kind)
		assert.Equal(t, services.MsgInvalidCredentials, res.Message)
		assert.Empty(t, res.Data.Token)
	}
}

func TestRegister(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	req := services.RegisterRequest{
		FirstName: "Laura", LastName: "Ríos", Age: 28, DateOfBirth: "1997-03-09",
		Country: "Colombia", City: "Bogotá", Phone: "3100000000", Address: "Cra 7",
		Username: "laura", Password: "Secret123",
	}
	res, err := f.auth.Register(ctx, req)
	require.NoError(t, err)
	require.True(t, res.OK)
	assert.Equal(t, "Client", res.Data.Role)
	assert.NotEmpty(t, res.Data.Token)

	stored := f.user(t, "laura")
	assert.Equal(t, models.RoleClient, stored.Role)
	assert.NotEqual(t, "Secret123", stored.PasswordHash)
	assert.True(t, auth.CheckPassword(stored.PasswordHash, "Secret123"))
	assert.Equal(t, time.Date(1997, 3, 9, 0, 0, 0, 0, time.UTC), stored.DateOfBirth.UTC())

	again, err := f.auth.Register(ctx, req)
	require.NoError(t, err)
	assert.False(t, again.OK)
	assert.Equal(t, result.Validation, again.Kind)
	assert.Equal(t, services.MsgUsernameTaken, again.Message)

	// The first registration is untouched.
	login, err := f.auth.Login(ctx, services.LoginRequest{Username: "laura", Password: "Secret123"})
	require.NoError(t, err)
	assert.True(t, login.OK)
}

func TestRegisterWithRole(t *testing.T) {
	f := newFixture(t)
	role := models.RoleAdministrator

	res, err := f.auth.Register(context.Background(), services.RegisterRequest{
		FirstName: "Root", LastName: "User", Username: "root", Password: "Secret123", Role: &role,
	})
	require.NoError(t, err)
	require.True(t, res.OK)
	assert.Equal(t, "Administrator", res.Data.Role)
	assert.Contains(t, f.rec.names(), events.NameUserRegistered)
}

func TestRegisterRejectsBadDate(t *testing.T) {
	f := newFixture(t)

	res, err := f.auth.Register(context.Background(), services.RegisterRequest{
		FirstName: "A", LastName: "B", Username: "ab", Password: "Secret123", DateOfBirth: "09/03/1997",
	})
	require.NoError(t, err)
	assert.False(t, res.OK)
	assert.Equal(t, result.Validation, res.Kind)
}

func TestParseDate(t *testing.T) {
	d, err := services.ParseDate("2000-02-29")
	require.NoError(t, err)
	assert.Equal(t, 29, d.Day())

	d, err = services.ParseDate("2000-02-29T10:00:00-05:00")
	require.NoError(t, err)
	assert.Equal(t, 15, d.Hour())

	d, err = services.ParseDate("")
	require.NoError(t, err)
	assert.True(t, d.IsZero())
}
