// Package export stores files produced by the client (CSV exports) either in
// a local directory or in an S3-compatible bucket.
package export

import (
	"context"
	"errors"
	"strings"

	"github.com/romario-developer/despesas-pwa/internal/filex"
)

var ErrInvalidName = errors.New("invalid export file name")

// Sink stores data under name and returns where it ended up.
type Sink interface {
	Put(ctx context.Context, name string, contentType string, data []byte) (string, error)
}

// FileSink writes into a local directory.
type FileSink struct {
	Dir string
}

func NewFileSink(dir string) *FileSink {
	if dir == "" {
		dir = "."
	}
	return &FileSink{Dir: dir}
}

func (s *FileSink) Put(ctx context.Context, name, _ string, data []byte) (string, error) {
	name, err := SafeName(name)
	if err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return filex.WriteFile(s.Dir, name, data)
}

// SafeName keeps only the last path element of name, so a server-provided
// filename cannot escape the target directory.
func SafeName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if i := strings.LastIndexAny(name, `/\`); i >= 0 {
		name = name[i+1:]
	}
	if name == "" || name == "." || name == ".." {
		return "", ErrInvalidName
	}
	return name, nil
}
