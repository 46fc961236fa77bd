// Package jsondb implements the record stores on top of a whole-document backend.
//
// Every operation loads the document fresh, applies at most one mutation and writes
// the whole document back. Operations are serialized within the process only.
package jsondb

import (
	"bytes"
	"context"
	"encoding/json"
	"sync"

	"github.com/trezcool/tally/core"
	"github.com/trezcool/tally/storage/backend"
)

const indent = "    "

type DB struct {
	backend backend.Backend
	mutex   sync.Mutex
}

func New(b backend.Backend) *DB {
	return &DB{backend: b}
}

func (db *DB) read(ctx context.Context) ([]byte, error) {
	data, err := db.backend.ReadAll(ctx)
	if err != nil {
		return nil, core.NewStorageError("read", err)
	}
	return data, nil
}

// write pretty-prints the compact JSON document and stores it.
func (db *DB) write(ctx context.Context, compact []byte) error {
	var out bytes.Buffer
	if err := json.Indent(&out, compact, "", indent); err != nil {
		return core.NewStorageError("encode", err)
	}
	out.WriteByte('\n')
	if err := db.backend.WriteAll(ctx, out.Bytes()); err != nil {
		return core.NewStorageError("write", err)
	}
	return nil
}
