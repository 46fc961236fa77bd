// Package backend provides whole-document storage for the record stores.
//
// A document is always read and written in full; there is no partial write and
// no locking. Two concurrent writers race and the last one wins.
package backend

import (
	"context"

	"github.com/go-redis/redis/v8"
	"github.com/pkg/errors"

	"github.com/trezcool/tally/core"
)

// Drivers
const (
	DriverFile   = "file"
	DriverRedis  = "redis"
	DriverMemory = "memory"
)

// Backend reads and writes one whole document.
type Backend interface {
	// ReadAll returns the document. A missing document is created from the backend's default first.
	ReadAll(ctx context.Context) ([]byte, error)
	// WriteAll replaces the document.
	WriteAll(ctx context.Context, doc []byte) error
}

// Open returns the backend selected by conf.Storage.Driver.
// name identifies the document ("grades", "phones"); path is its file location for the file driver.
func Open(conf *core.Config, client *redis.Client, name, path string, defaultDoc []byte) (Backend, error) {
	switch conf.Storage.Driver {
	case "", DriverFile:
		return NewFile(path, defaultDoc), nil
	case DriverRedis:
		if client == nil {
			return nil, errors.New("redis driver selected but no redis client configured")
		}
		return NewRedis(client, conf.Redis.Prefix+name, defaultDoc), nil
	case DriverMemory:
		return NewMemory(defaultDoc), nil
	default:
		return nil, errors.Errorf("unknown storage driver %q", conf.Storage.Driver)
	}
}
