package gallery

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Sink receives downloaded objects. Save returns where the object ended up.
type Sink interface {
	Save(ctx context.Context, name, contentType string, r io.Reader, size int64) (string, error)
}

// DirSink writes into a local directory. Data lands in a temporary file
// first and is renamed into place once complete.
type DirSink struct {
	Dir string
}

func (s DirSink) Save(ctx context.Context, name, contentType string, r io.Reader, size int64) (string, error) {
	base := filepath.Base(filepath.Clean("/" + name))
	if base == "/" || base == "." {
		return "", fmt.Errorf("invalid file name %q", name)
	}

	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create download dir: %w", err)
	}

	tmp, err := os.CreateTemp(s.Dir, ".download-*")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		return "", fmt.Errorf("failed to write %s: %w", base, err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("failed to close %s: %w", base, err)
	}

	dest := filepath.Join(s.Dir, base)
	if err := os.Rename(tmp.Name(), dest); err != nil {
		return "", fmt.Errorf("failed to move %s into place: %w", base, err)
	}
	return dest, nil
}
