package backend

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/tally/core"
)

var defaultDoc = []byte("[]\n")

// exercise checks the behaviour every backend shares.
func exercise(t *testing.T, b Backend) {
	t.Helper()
	ctx := context.Background()

	doc, err := b.ReadAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, defaultDoc, doc, "missing document starts from the default")

	require.NoError(t, b.WriteAll(ctx, []byte(`[{"id":"1"}]`)))
	doc, err = b.ReadAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, `[{"id":"1"}]`, string(doc))

	require.NoError(t, b.WriteAll(ctx, []byte("[]")))
	doc, err = b.ReadAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(doc), "writes replace the whole document")
}

func TestFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "products.json")
	f := NewFile(path, defaultDoc)
	assert.Equal(t, path, f.Path())

	_, err := os.Stat(path)
	require.True(t, os.IsNotExist(err))

	exercise(t, f)

	t.Run("default is written on first read", func(t *testing.T) {
		other := filepath.Join(t.TempDir(), "grades.json")
		_, err := NewFile(other, defaultDoc).ReadAll(context.Background())
		require.NoError(t, err)
		data, err := os.ReadFile(other)
		require.NoError(t, err)
		assert.Equal(t, defaultDoc, data)
	})

	t.Run("unreadable location", func(t *testing.T) {
		bad := NewFile(filepath.Join(t.TempDir(), "missing-dir", "grades.json"), defaultDoc)
		_, err := bad.ReadAll(context.Background())
		assert.Error(t, err)
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := f.ReadAll(ctx)
		assert.ErrorIs(t, err, context.Canceled)
		assert.ErrorIs(t, f.WriteAll(ctx, nil), context.Canceled)
	})
}

func TestMemory(t *testing.T) {
	m := NewMemory(defaultDoc)
	exercise(t, m)
	assert.Equal(t, 2, m.Writes())

	t.Run("returned documents are copies", func(t *testing.T) {
		doc, err := m.ReadAll(context.Background())
		require.NoError(t, err)
		doc[0] = 'x'
		again, err := m.ReadAll(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "[]", string(again))
	})
}

func TestRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	r := NewRedis(client, "tally:phones", defaultDoc)
	exercise(t, r)

	got, err := mr.Get("tally:phones")
	require.NoError(t, err)
	assert.Equal(t, "[]", got)

	t.Run("existing key is not overwritten", func(t *testing.T) {
		mr.Set("tally:grades", `{"S1":{}}`)
		doc, err := NewRedis(client, "tally:grades", []byte("{}")).ReadAll(context.Background())
		require.NoError(t, err)
		assert.Equal(t, `{"S1":{}}`, string(doc))
	})

	t.Run("client ping", func(t *testing.T) {
		c, err := NewRedisClient(context.Background(), mr.Addr(), "", 0)
		require.NoError(t, err)
		_ = c.Close()

		mr.RequireAuth("secret")
		defer mr.RequireAuth("")
		_, err = NewRedisClient(context.Background(), mr.Addr(), "wrong", 0)
		assert.Error(t, err)
	})
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	tests := []struct {
		name    string
		driver  string
		client  *redis.Client
		want    interface{}
		wantErr bool
	}{
		{name: "default", driver: "", want: &File{}},
		{name: "file", driver: DriverFile, want: &File{}},
		{name: "memory", driver: DriverMemory, want: &Memory{}},
		{name: "redis", driver: DriverRedis, client: client, want: &Redis{}},
		{name: "redis without client", driver: DriverRedis, wantErr: true},
		{name: "unknown", driver: "s3", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conf := &core.Config{
				Storage: core.StorageConfig{Driver: tt.driver},
				Redis:   core.RedisConfig{Prefix: "tally:"},
			}
			b, err := Open(conf, tt.client, "phones", filepath.Join(dir, "products.json"), defaultDoc)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.IsType(t, tt.want, b)
		})
	}

	t.Run("redis key is prefixed", func(t *testing.T) {
		conf := &core.Config{Storage: core.StorageConfig{Driver: DriverRedis}, Redis: core.RedisConfig{Prefix: "tally:"}}
		b, err := Open(conf, client, "grades", "", []byte("{}"))
		require.NoError(t, err)
		_, err = b.ReadAll(context.Background())
		require.NoError(t, err)
		assert.True(t, mr.Exists("tally:grades"))
	})
}
