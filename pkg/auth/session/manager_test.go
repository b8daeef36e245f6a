package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	redislib "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockStore struct {
	mu   sync.Mutex
	data map[string]string
	ttls map[string]time.Duration
	err  error
}

func newMockStore() *mockStore {
	return &mockStore{data: make(map[string]string), ttls: make(map[string]time.Duration)}
}

func (m *mockStore) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = fmt.Sprint(value)
	m.ttls[key] = ttl
	return nil
}

func (m *mockStore) Get(ctx context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return "", m.err
	}
	val, ok := m.data[key]
	if !ok {
		return "", redislib.Nil
	}
	return val, nil
}

func (m *mockStore) RevokedTokenKey(jti string) string {
	return "revoked:" + jti
}

func newTestManager(store *mockStore, now time.Time) *Manager {
	return &Manager{store: store, keyer: store, now: func() time.Time { return now }}
}

func TestRevokeAndCheck(t *testing.T) {
	now := time.Now()
	store := newMockStore()
	manager := newTestManager(store, now)
	ctx := context.Background()

	revoked, err := manager.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, manager.Revoke(ctx, "jti-1", now.Add(2*time.Hour)))
	assert.Equal(t, 2*time.Hour, store.ttls["revoked:jti-1"])

	revoked, err = manager.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)
}

func TestRevokeSkipsExpiredTokens(t *testing.T) {
	now := time.Now()
	store := newMockStore()
	manager := newTestManager(store, now)

	require.NoError(t, manager.Revoke(context.Background(), "old", now.Add(-time.Minute)))
	assert.Empty(t, store.data)
}

func TestRevokeRequiresID(t *testing.T) {
	manager := newTestManager(newMockStore(), time.Now())
	assert.Error(t, manager.Revoke(context.Background(), " ", time.Now().Add(time.Hour)))
	_, err := manager.IsRevoked(context.Background(), "")
	assert.Error(t, err)
}

func TestIsRevokedPropagatesStoreErrors(t *testing.T) {
	store := newMockStore()
	store.err = errors.New("redis down")
	manager := newTestManager(store, time.Now())

	_, err := manager.IsRevoked(context.Background(), "jti")
	assert.EqualError(t, err, "redis down")
}

func TestNewManagerRequiresClient(t *testing.T) {
	_, err := NewManager(nil)
	assert.Error(t, err)
}
