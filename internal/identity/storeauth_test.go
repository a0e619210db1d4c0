package identity

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tooldex/tooldex/internal/domain"
	"github.com/tooldex/tooldex/internal/kv"
	"github.com/tooldex/tooldex/internal/store"
	"github.com/tooldex/tooldex/internal/store/local"
)

func newStoreAuth(t *testing.T) (*StoreAuth, store.Adapter) {
	t.Helper()
	mem := kv.NewMemory()
	adapter := local.New(mem)
	auth := NewStoreAuth(adapter, mem)
	auth.cost = bcryptMinCostForTests
	return auth, adapter
}

const bcryptMinCostForTests = 4

func TestSignUpAndSignIn(t *testing.T) {
	ctx := context.Background()
	auth, _ := newStoreAuth(t)

	res := auth.SignUp(ctx, "Ada@Example.com", "hunter22", "Ada")
	require.True(t, res.Success, "sign-up failed: %s", res.Err)
	require.NotNil(t, res.User)
	assert.Equal(t, "ada@example.com", res.User.Email)
	assert.Equal(t, domain.RoleUser, res.User.Role)
	assert.Empty(t, res.User.Password, "result must not leak the hash")

	// A fresh sign-in with the same credentials works, case-insensitively.
	res = auth.SignIn(ctx, "ADA@example.COM", "hunter22")
	require.True(t, res.Success, "sign-in failed: %s", res.Err)

	cur, err := auth.CurrentUser(ctx)
	require.NoError(t, err)
	require.NotNil(t, cur)
	assert.Equal(t, "ada@example.com", cur.Email)
}

func TestSignUpDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	auth, _ := newStoreAuth(t)

	require.True(t, auth.SignUp(ctx, "dup@example.com", "pw1", "First").Success)

	res := auth.SignUp(ctx, "dup@example.com", "pw2", "Second")
	assert.False(t, res.Success)
	assert.Equal(t, MsgEmailExists, res.Err)
	assert.Nil(t, res.User)
}

func TestSignInRejectsBadCredentials(t *testing.T) {
	ctx := context.Background()
	auth, _ := newStoreAuth(t)
	require.True(t, auth.SignUp(ctx, "ada@example.com", "correct", "Ada").Success)

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{"wrong password", "ada@example.com", "incorrect"},
		{"unknown email", "nobody@example.com", "correct"},
		{"empty password", "ada@example.com", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := auth.SignIn(ctx, tt.email, tt.password)
			assert.False(t, res.Success)
			assert.Equal(t, MsgInvalidCredentials, res.Err)
		})
	}
}

func TestSignInBlockedAccount(t *testing.T) {
	ctx := context.Background()
	auth, adapter := newStoreAuth(t)

	res := auth.SignUp(ctx, "blocked@example.com", "pw", "B")
	require.True(t, res.Success)
	require.NoError(t, adapter.Update(ctx, domain.CollectionUsers, res.User.ID,
		store.Record{"status": domain.UserBlocked}))

	res = auth.SignIn(ctx, "blocked@example.com", "pw")
	assert.False(t, res.Success)
	assert.Equal(t, MsgAccountBlocked, res.Err)
}

func TestSignOutClearsSession(t *testing.T) {
	ctx := context.Background()
	auth, _ := newStoreAuth(t)
	require.True(t, auth.SignUp(ctx, "ada@example.com", "pw", "Ada").Success)

	require.NoError(t, auth.SignOut(ctx))

	cur, err := auth.CurrentUser(ctx)
	require.NoError(t, err)
	assert.Nil(t, cur)

	// Signing out twice is harmless.
	require.NoError(t, auth.SignOut(ctx))
}

func TestCurrentUserWithoutSession(t *testing.T) {
	auth, _ := newStoreAuth(t)
	cur, err := auth.CurrentUser(context.Background())
	require.NoError(t, err)
	assert.Nil(t, cur)
}
