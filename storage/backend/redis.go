package backend

import (
	"context"

	"github.com/go-redis/redis/v8"
	"github.com/pkg/errors"
)

// Redis stores the document as a single string value.
type Redis struct {
	client     *redis.Client
	key        string
	defaultDoc []byte
}

var _ Backend = (*Redis)(nil)

func NewRedis(client *redis.Client, key string, defaultDoc []byte) *Redis {
	return &Redis{client: client, key: key, defaultDoc: defaultDoc}
}

// NewRedisClient creates a client and checks the connection.
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		_ = rdb.Close()
		return nil, errors.Wrapf(err, "connecting to redis at %s", addr)
	}
	return rdb, nil
}

func (r *Redis) ReadAll(ctx context.Context) ([]byte, error) {
	doc, err := r.client.Get(ctx, r.key).Bytes()
	if err == nil {
		return doc, nil
	}
	if !errors.Is(err, redis.Nil) {
		return nil, errors.Wrapf(err, "getting %s", r.key)
	}

	// key missing: write default, unless another process just did
	if err := r.client.SetNX(ctx, r.key, r.defaultDoc, 0).Err(); err != nil {
		return nil, errors.Wrapf(err, "seeding %s", r.key)
	}
	doc, err = r.client.Get(ctx, r.key).Bytes()
	return doc, errors.Wrapf(err, "getting %s", r.key)
}

func (r *Redis) WriteAll(ctx context.Context, doc []byte) error {
	return errors.Wrapf(r.client.Set(ctx, r.key, doc, 0).Err(), "setting %s", r.key)
}
