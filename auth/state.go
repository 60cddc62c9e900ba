package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
)

const stateTTL = 10 * time.Minute

var ErrInvalidState = errors.New("invalid oauth state")

// StateStore hands out the anti-CSRF state for an OAuth round trip and
// accepts each state at most once where the backend allows it.
type StateStore interface {
	New(ctx context.Context) (string, error)
	Consume(ctx context.Context, state string) error
}

type stateClient interface {
	SetNX(ctx context.Context, key string, value any, expiration time.Duration) *redis.BoolCmd
	GetDel(ctx context.Context, key string) *redis.StringCmd
}

// RedisStateStore keeps random nonces in Redis and deletes them on use.
type RedisStateStore struct {
	rdb stateClient
}

func NewRedisStateStore(rdb *redis.Client) *RedisStateStore {
	return &RedisStateStore{rdb: rdb}
}

func stateKey(state string) string {
	return "oauth:state:" + state
}

func (s *RedisStateStore) New(ctx context.Context) (string, error) {
	state, err := randomState()
	if err != nil {
		return "", err
	}
	ok, err := s.rdb.SetNX(ctx, stateKey(state), 1, stateTTL).Result()
	if err != nil {
		return "", err
	}
	if !ok {
		return "", errors.New("oauth state collision")
	}
	return state, nil
}

func (s *RedisStateStore) Consume(ctx context.Context, state string) error {
	if state == "" {
		return ErrInvalidState
	}
	_, err := s.rdb.GetDel(ctx, stateKey(state)).Result()
	if errors.Is(err, redis.Nil) {
		return ErrInvalidState
	}
	return err
}

// SignedStateStore needs no storage: the state is a short-lived HS256 token.
// It cannot stop a replay inside the TTL.
type SignedStateStore struct {
	secret []byte
	now    func() time.Time
}

func NewSignedStateStore(secret string) *SignedStateStore {
	return &SignedStateStore{secret: []byte(secret), now: time.Now}
}

func (s *SignedStateStore) New(context.Context) (string, error) {
	nonce, err := randomState()
	if err != nil {
		return "", err
	}
	now := s.now()
	claims := jwt.RegisteredClaims{
		ID:        nonce,
		Audience:  jwt.ClaimStrings{"oauth-state"},
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(stateTTL)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

func (s *SignedStateStore) Consume(_ context.Context, state string) error {
	_, err := jwt.ParseWithClaims(state, &jwt.RegisteredClaims{},
		func(*jwt.Token) (any, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithAudience("oauth-state"),
		jwt.WithTimeFunc(s.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return ErrInvalidState
	}
	return nil
}

func randomState() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
