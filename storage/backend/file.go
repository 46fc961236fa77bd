package backend

import (
	"context"
	"os"

	"github.com/pkg/errors"
)

const filePerm = 0o644

// File stores the document in a file on disk.
// Writes truncate and rewrite the file in place; a crash mid-write can corrupt it.
type File struct {
	path       string
	defaultDoc []byte
}

var _ Backend = (*File)(nil)

func NewFile(path string, defaultDoc []byte) *File {
	return &File{path: path, defaultDoc: defaultDoc}
}

func (f *File) Path() string { return f.path }

func (f *File) ReadAll(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	doc, err := os.ReadFile(f.path)
	if err == nil {
		return doc, nil
	}
	if !os.IsNotExist(err) {
		return nil, errors.Wrapf(err, "reading %s", f.path)
	}

	// file missing: write default
	if err := os.WriteFile(f.path, f.defaultDoc, filePerm); err != nil {
		return nil, errors.Wrapf(err, "creating %s", f.path)
	}
	return append([]byte(nil), f.defaultDoc...), nil
}

func (f *File) WriteAll(ctx context.Context, doc []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return errors.Wrapf(os.WriteFile(f.path, doc, filePerm), "writing %s", f.path)
}
