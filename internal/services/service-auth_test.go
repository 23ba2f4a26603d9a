package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bonchef/maintenance-api/internal/auth"
	"github.com/bonchef/maintenance-api/internal/models"
)

func TestRegister(t *testing.T) {
	t.Run("hashes password and defaults role", func(t *testing.T) {
		svc, ctx := newTestService(t)
		user, err := svc.Register(ctx, models.RegisterRequest{
			Email: "new@bonchef.example", Password: "s3cret", Name: "New",
		})
		require.NoError(t, err)
		assert.Equal(t, models.RoleTechnician, user.Role)
		assert.NotEqual(t, "s3cret", user.Password)
		assert.True(t, auth.CheckPassword(user.Password, "s3cret"))
	})

	t.Run("duplicate email conflicts", func(t *testing.T) {
		svc, ctx := newTestService(t)
		_, err := svc.Register(ctx, models.RegisterRequest{
			Email: "dup@bonchef.example", Password: "x", Name: "One",
		})
		require.NoError(t, err)
		_, err = svc.Register(ctx, models.RegisterRequest{
			Email: "dup@bonchef.example", Password: "y", Name: "Two",
		})
		assert.ErrorIs(t, err, ErrConflict)
	})

	t.Run("unknown role rejected", func(t *testing.T) {
		svc, ctx := newTestService(t)
		_, err := svc.Register(ctx, models.RegisterRequest{
			Email: "role@bonchef.example", Password: "x", Name: "R", Role: "wizard",
		})
		assert.ErrorIs(t, err, ErrInvalid)
	})
}

func TestLogin(t *testing.T) {
	svc, ctx := newTestService(t)
	_, err := svc.Register(ctx, models.RegisterRequest{
		Email: "login@bonchef.example", Password: "open sesame", Name: "L",
	})
	require.NoError(t, err)

	t.Run("correct credentials", func(t *testing.T) {
		user, err := svc.Login(ctx, models.LoginRequest{
			Email: "login@bonchef.example", Password: "open sesame",
		})
		require.NoError(t, err)
		assert.Equal(t, "L", user.Name)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(ctx, models.LoginRequest{
			Email: "login@bonchef.example", Password: "closed sesame",
		})
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := svc.Login(ctx, models.LoginRequest{
			Email: "nobody@bonchef.example", Password: "whatever",
		})
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})
}
