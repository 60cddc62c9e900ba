package auth

import (
	"context"
	"testing"
	"time"

	"github.com/Burhanmalu/LUMARIYA/apperr"
	"github.com/Burhanmalu/LUMARIYA/database/dbtest"
	"github.com/Burhanmalu/LUMARIYA/models"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokensRoundTrip(t *testing.T) {
	tokens := NewTokens("secret", time.Hour)
	tok, err := tokens.Issue(&models.User{ID: 17, Email: "a@example.com"})
	require.NoError(t, err)

	id, err := tokens.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, uint(17), id)
}

func TestTokensRejectForgedAndExpired(t *testing.T) {
	tokens := NewTokens("secret", time.Hour)
	tok, err := tokens.Issue(&models.User{ID: 17})
	require.NoError(t, err)

	_, err = NewTokens("other", time.Hour).Verify(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)

	later := NewTokens("secret", time.Hour)
	later.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	_, err = later.Verify(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = tokens.Verify("not.a.jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestSignedStateStore(t *testing.T) {
	ctx := context.Background()
	store := NewSignedStateStore("secret")

	state, err := store.New(ctx)
	require.NoError(t, err)
	assert.NoError(t, store.Consume(ctx, state))

	assert.ErrorIs(t, store.Consume(ctx, ""), ErrInvalidState)
	assert.ErrorIs(t, NewSignedStateStore("other").Consume(ctx, state), ErrInvalidState)

	access, err := NewTokens("secret", time.Hour).Issue(&models.User{ID: 1})
	require.NoError(t, err)
	assert.ErrorIs(t, store.Consume(ctx, access), ErrInvalidState, "access tokens are not states")

	expired := NewSignedStateStore("secret")
	expired.now = func() time.Time { return time.Now().Add(time.Hour) }
	assert.ErrorIs(t, expired.Consume(ctx, state), ErrInvalidState)
}

type memoryStates map[string]bool

func (m memoryStates) SetNX(ctx context.Context, key string, _ any, _ time.Duration) *redis.BoolCmd {
	if m[key] {
		return redis.NewBoolResult(false, nil)
	}
	m[key] = true
	return redis.NewBoolResult(true, nil)
}

func (m memoryStates) GetDel(ctx context.Context, key string) *redis.StringCmd {
	if !m[key] {
		return redis.NewStringResult("", redis.Nil)
	}
	delete(m, key)
	return redis.NewStringResult("1", nil)
}

func TestRedisStateStoreIsSingleUse(t *testing.T) {
	ctx := context.Background()
	mem := memoryStates{}
	store := &RedisStateStore{rdb: mem}

	state, err := store.New(ctx)
	require.NoError(t, err)
	assert.True(t, mem[stateKey(state)])

	require.NoError(t, store.Consume(ctx, state))
	assert.ErrorIs(t, store.Consume(ctx, state), ErrInvalidState)
	assert.ErrorIs(t, store.Consume(ctx, "unknown"), ErrInvalidState)
}

func TestRegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	db := dbtest.Open(t)

	user, err := Register(ctx, db, RegisterInput{Email: " Meera@Example.com", Password: "secret1", FullName: "Meera"})
	require.NoError(t, err)
	assert.Equal(t, "meera@example.com", user.Email)
	require.NotNil(t, user.PasswordHash)
	assert.NotEqual(t, "secret1", *user.PasswordHash)
	assert.False(t, user.IsAdmin)

	_, err = Register(ctx, db, RegisterInput{Email: "meera@example.com", Password: "another", FullName: "M"})
	assert.ErrorIs(t, err, apperr.ErrConflict)

	_, err = Register(ctx, db, RegisterInput{Email: "x@example.com", Password: "short", FullName: "X"})
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)

	got, err := Login(ctx, db, LoginInput{Email: "MEERA@example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	_, err = Login(ctx, db, LoginInput{Email: "meera@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, apperr.ErrUnauthorized)
	_, err = Login(ctx, db, LoginInput{Email: "nobody@example.com", Password: "secret1"})
	assert.ErrorIs(t, err, apperr.ErrUnauthorized)
}

func TestFindOrCreateOAuthUser(t *testing.T) {
	ctx := context.Background()
	db := dbtest.Open(t)

	created, err := FindOrCreateOAuthUser(ctx, db, "google", Profile{ID: "g-1", Email: "Riya@example.com", EmailVerified: true, Name: "Riya"})
	require.NoError(t, err)
	assert.Equal(t, "riya@example.com", created.Email)
	assert.Nil(t, created.PasswordHash)
	assert.True(t, created.HasCredential())

	again, err := FindOrCreateOAuthUser(ctx, db, "facebook", Profile{ID: "f-9", Email: "riya@example.com", EmailVerified: true, Name: "Riya"})
	require.NoError(t, err)
	assert.Equal(t, created.ID, again.ID)
	assert.Equal(t, "google", *again.OAuthProvider, "an existing link is kept")

	pwUser, err := Register(ctx, db, RegisterInput{Email: "dev@example.com", Password: "secret1", FullName: "Dev"})
	require.NoError(t, err)
	linked, err := FindOrCreateOAuthUser(ctx, db, "facebook", Profile{ID: "f-2", Email: "dev@example.com", EmailVerified: true})
	require.NoError(t, err)
	assert.Equal(t, pwUser.ID, linked.ID)
	require.NotNil(t, linked.OAuthID)
	assert.Equal(t, "f-2", *linked.OAuthID)

	_, err = FindOrCreateOAuthUser(ctx, db, "facebook", Profile{ID: "f-3"})
	require.ErrorIs(t, err, apperr.ErrInvalidInput)
	assert.Contains(t, err.Error(), "facebook")
}

func TestOAuthUnverifiedEmailNeverLinks(t *testing.T) {
	ctx := context.Background()
	db := dbtest.Open(t)

	owner, err := Register(ctx, db, RegisterInput{Email: "owner@example.com", Password: "secret1", FullName: "Owner"})
	require.NoError(t, err)

	_, err = FindOrCreateOAuthUser(ctx, db, "google", Profile{ID: "g-evil", Email: "owner@example.com", Name: "Mallory"})
	require.ErrorIs(t, err, apperr.ErrForbidden)

	var stored models.User
	require.NoError(t, db.First(&stored, owner.ID).Error)
	assert.Nil(t, stored.OAuthProvider, "account must stay unlinked")

	_, err = FindOrCreateOAuthUser(ctx, db, "google", Profile{ID: "g-new", Email: "fresh@example.com"})
	require.ErrorIs(t, err, apperr.ErrForbidden)
	assert.EqualValues(t, 1, dbtest.Count(t, db, &models.User{}))

	linked, err := FindOrCreateOAuthUser(ctx, db, "google", Profile{ID: "g-1", Email: "owner@example.com", EmailVerified: true})
	require.NoError(t, err)
	assert.Equal(t, owner.ID, linked.ID)

	again, err := FindOrCreateOAuthUser(ctx, db, "google", Profile{ID: "g-1", Email: "owner@example.com"})
	require.NoError(t, err, "a linked provider account signs in by id")
	assert.Equal(t, owner.ID, again.ID)
}

func TestCallbackURL(t *testing.T) {
	assert.Equal(t, "http://api.test/api/auth/google/callback", callbackURL("http://api.test/", "google"))
}
