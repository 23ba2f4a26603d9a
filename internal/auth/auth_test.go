package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/bonchef/maintenance-api/internal/models"
	"github.com/bonchef/maintenance-api/internal/store"
)

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("hunter2")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter2", hash)
	assert.True(t, CheckPassword(hash, "hunter2"))
	assert.False(t, CheckPassword(hash, "hunter3"))
}

func TestTokenRoundTrip(t *testing.T) {
	st := store.NewMemory()
	user := models.User{
		ID:    "u1",
		Email: "tech@bonchef.example",
		Name:  "Tech",
		Role:  models.RoleTechnician,
	}
	require.NoError(t, st.Users.Insert(context.Background(), user))

	a := New(st, "test-secret", time.Hour)

	token, err := a.IssueToken(user)
	require.NoError(t, err)

	resolved, err := a.ResolveToken(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, resolved.ID)
	assert.Equal(t, user.Email, resolved.Email)

	t.Run("cached second lookup", func(t *testing.T) {
		again, err := a.ResolveToken(context.Background(), token)
		require.NoError(t, err)
		assert.Equal(t, resolved, again)
	})

	t.Run("garbage token", func(t *testing.T) {
		_, err := a.ResolveToken(context.Background(), "not.a.token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := New(st, "other-secret", time.Hour)
		forged, err := other.IssueToken(user)
		require.NoError(t, err)
		_, err = a.ResolveToken(context.Background(), forged)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired token", func(t *testing.T) {
		short := New(st, "test-secret", -time.Minute)
		expired, err := short.IssueToken(user)
		require.NoError(t, err)
		_, err = a.ResolveToken(context.Background(), expired)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("token for deleted user", func(t *testing.T) {
		ghost := models.User{ID: "u2", Email: "gone@bonchef.example"}
		require.NoError(t, st.Users.Insert(context.Background(), ghost))
		ghostToken, err := a.IssueToken(ghost)
		require.NoError(t, err)
		_, err = st.Users.Delete(context.Background(), bson.M{"id": "u2"})
		require.NoError(t, err)
		_, err = a.ResolveToken(context.Background(), ghostToken)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}
