package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exerciseStore(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	_, err := s.Get(ctx, "materialCosts")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Set(ctx, "materialCosts", `{"steel":3}`))
	v, err := s.Get(ctx, "materialCosts")
	require.NoError(t, err)
	assert.Equal(t, `{"steel":3}`, v)

	require.NoError(t, s.Set(ctx, "materialCosts", `{}`))
	v, err = s.Get(ctx, "materialCosts")
	require.NoError(t, err)
	assert.Equal(t, `{}`, v)

	require.NoError(t, s.Delete(ctx, "materialCosts"))
	_, err = s.Get(ctx, "materialCosts")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.NoError(t, s.Delete(ctx, "never-set"))
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemoryStore())
}

func TestFileStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "store.json")
	exerciseStore(t, NewFileStore(path))
}

func TestFileStorePersists(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "store.json")

	require.NoError(t, NewFileStore(path).Set(ctx, "cookie-consent", "all"))

	v, err := NewFileStore(path).Get(ctx, "cookie-consent")
	require.NoError(t, err)
	assert.Equal(t, "all", v)
}

func TestFileStoreCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	require.NoError(t, os.WriteFile(path, []byte("{broken"), 0644))

	_, err := NewFileStore(path).Get(context.Background(), "k")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestRedisStore(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	s := NewRedisStoreFromClient(client, "")
	defer s.Close()

	require.NoError(t, s.Ping(context.Background()))
	exerciseStore(t, s)

	require.NoError(t, s.Set(context.Background(), "cookie-consent", "required"))
	raw, err := mr.Get(DefaultKeyPrefix + "cookie-consent")
	require.NoError(t, err)
	assert.Equal(t, "required", raw)
}

func TestNewBackends(t *testing.T) {
	ctx := context.Background()

	s, err := New(ctx, Options{Backend: BackendMemory})
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, s)

	s, err = New(ctx, Options{Backend: BackendFile, Path: filepath.Join(t.TempDir(), "s.json")})
	require.NoError(t, err)
	assert.IsType(t, &FileStore{}, s)

	mr := miniredis.RunT(t)
	s, err = New(ctx, Options{Backend: BackendRedis, RedisAddr: mr.Addr(), KeyPrefix: "test:"})
	require.NoError(t, err)
	assert.IsType(t, &RedisStore{}, s)

	_, err = New(ctx, Options{Backend: "etcd"})
	assert.Error(t, err)
}
