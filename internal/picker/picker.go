// Package picker provides image sources for the add flow: files on disk and
// in-memory uploads, filtered by the embedded picker policy.
package picker

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/kozaktomas/name-that-face/internal/config"
)

var (
	// ErrExcluded is returned for files the policy treats as screenshots.
	ErrExcluded = errors.New("screenshots cannot be imported")
	// ErrUnsupportedType is returned for files whose extension is not an image type.
	ErrUnsupportedType = errors.New("unsupported image type")
)

// Policy decides which file names may be picked.
type Policy struct {
	exclude    []string
	extensions []string
}

// NewPolicy builds a Policy from the configured patterns. Patterns and
// extensions are matched case-insensitively.
func NewPolicy(cfg config.PickerPolicy) Policy {
	p := Policy{}
	for _, pattern := range cfg.Exclude {
		p.exclude = append(p.exclude, strings.ToLower(pattern))
	}
	for _, ext := range cfg.Extensions {
		p.extensions = append(p.extensions, strings.ToLower(ext))
	}
	return p
}

// Check returns ErrExcluded or ErrUnsupportedType when name may not be picked.
func (p Policy) Check(name string) error {
	base := strings.ToLower(filepath.Base(name))
	for _, pattern := range p.exclude {
		if ok, _ := filepath.Match(pattern, base); ok {
			return fmt.Errorf("%s: %w", filepath.Base(name), ErrExcluded)
		}
	}
	if len(p.extensions) > 0 && !slices.Contains(p.extensions, filepath.Ext(base)) {
		return fmt.Errorf("%s: %w", filepath.Base(name), ErrUnsupportedType)
	}
	return nil
}

// File loads an image from disk.
type File struct {
	Path   string
	Policy Policy
	// MaxSize caps the number of bytes read; zero means no limit.
	MaxSize int64
}

// Load implements workflow.ImageSource.
func (f File) Load(ctx context.Context) ([]byte, error) {
	if err := f.Policy.Check(f.Path); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	file, err := os.Open(f.Path)
	if err != nil {
		return nil, fmt.Errorf("open image: %w", err)
	}
	defer file.Close()

	return readAll(file, f.MaxSize)
}

// Upload is an image received over the network, already in memory.
type Upload struct {
	Filename string
	Data     []byte
	Policy   Policy
}

// Load implements workflow.ImageSource. The filename is checked against the
// policy only when one was supplied.
func (u Upload) Load(ctx context.Context) ([]byte, error) {
	if u.Filename != "" {
		if err := u.Policy.Check(u.Filename); err != nil {
			return nil, err
		}
	}
	return Bytes(u.Data).Load(ctx)
}

// Bytes is an in-memory image source.
type Bytes []byte

// Load implements workflow.ImageSource and returns a copy of the buffer.
func (b Bytes) Load(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(b) == 0 {
		return nil, nil
	}
	return slices.Clone([]byte(b)), nil
}

func readAll(r io.Reader, limit int64) ([]byte, error) {
	if limit <= 0 {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("read image: %w", err)
		}
		return data, nil
	}
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("image exceeds %d bytes", limit)
	}
	return data, nil
}
