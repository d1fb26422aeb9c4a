// Package backup exports the face collection to an object store: one object
// per image plus a YAML manifest carrying names and coordinates.
package backup

import (
	"context"
	"fmt"
	"path"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/kozaktomas/name-that-face/internal/database"
	"github.com/kozaktomas/name-that-face/internal/face"
)

const manifestName = "manifest.yaml"

// ObjectStore is the upload target.
type ObjectStore interface {
	EnsureBucket(ctx context.Context) error
	PutObject(ctx context.Context, key string, data []byte, contentType string) error
}

// Entry describes one backed-up face.
type Entry struct {
	ID          uuid.UUID         `yaml:"id"`
	Name        string            `yaml:"name"`
	Coordinates *face.Coordinates `yaml:"coordinates,omitempty"`
	Object      string            `yaml:"object"`
	ContentType string            `yaml:"content_type"`
	Size        int               `yaml:"size"`
}

// Manifest lists every face of one backup run.
type Manifest struct {
	CreatedAt time.Time `yaml:"created_at"`
	Count     int       `yaml:"count"`
	Faces     []Entry   `yaml:"faces"`
}

// Result summarizes a finished run.
type Result struct {
	Prefix   string
	Uploaded int
	Manifest string
}

// Options tune a backup run.
type Options struct {
	// Prefix is the key prefix for this run; defaults to the UTC timestamp.
	Prefix string
	// OnFace is called after each face is uploaded.
	OnFace func(f face.Face)
	Now    func() time.Time
}

// Run uploads every face from src to dst and writes the manifest last, so a
// manifest only exists for a complete backup.
func Run(ctx context.Context, src database.FaceReader, dst ObjectStore, opts Options) (*Result, error) {
	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}
	created := now().UTC()
	prefix := opts.Prefix
	if prefix == "" {
		prefix = created.Format("20060102T150405Z")
	}

	faces, err := src.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list faces: %w", err)
	}

	if err := dst.EnsureBucket(ctx); err != nil {
		return nil, err
	}

	manifest := Manifest{CreatedAt: created, Faces: make([]Entry, 0, len(faces))}
	for _, f := range faces {
		entry := NewEntry(prefix, f)
		if err := dst.PutObject(ctx, entry.Object, f.Image, entry.ContentType); err != nil {
			return nil, fmt.Errorf("upload face %s: %w", f.ID, err)
		}
		manifest.Faces = append(manifest.Faces, entry)
		if opts.OnFace != nil {
			opts.OnFace(f)
		}
	}
	manifest.Count = len(manifest.Faces)

	data, err := yaml.Marshal(manifest)
	if err != nil {
		return nil, fmt.Errorf("marshal manifest: %w", err)
	}
	key := path.Join(prefix, manifestName)
	if err := dst.PutObject(ctx, key, data, "application/yaml"); err != nil {
		return nil, fmt.Errorf("upload manifest: %w", err)
	}

	return &Result{Prefix: prefix, Uploaded: manifest.Count, Manifest: key}, nil
}

// NewEntry builds the manifest entry and object key for f. Images that do not
// decode are still backed up, as opaque binary objects.
func NewEntry(prefix string, f face.Face) Entry {
	ext, contentType := ".bin", "application/octet-stream"
	if _, format, err := face.DecodeImage(f.Image); err == nil {
		ext, contentType = "."+format, "image/"+format
	}
	e := Entry{
		ID:          f.ID,
		Name:        f.Name,
		Object:      path.Join(prefix, "faces", f.ID.String()+ext),
		ContentType: contentType,
		Size:        len(f.Image),
	}
	if f.Coordinates != nil {
		c := *f.Coordinates
		e.Coordinates = &c
	}
	return e
}
