// Package storage holds the object store used for uploaded documents and
// application resumes. Objects are streamed; nothing touches local disk.
package storage

import (
	"context"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Key prefixes for the two kinds of uploaded files.
const (
	PrefixDocuments = "documents"
	PrefixResumes   = "resumes"
)

// PutObjectOptions define optional parameters for uploading objects.
// Size should be the exact number of bytes if known; if unknown, set to -1 and the implementation
// will buffer/chunk as supported by the backend.
type PutObjectOptions struct {
	Size        int64
	ContentType string
	Metadata    map[string]string
}

// ObjectInfo describes a stored object.
type ObjectInfo struct {
	Key          string
	Size         int64
	ETag         string
	ContentType  string
	LastModified time.Time
	Metadata     map[string]string
}

// Storage is an S3-compatible object storage client.
type Storage interface {
	// Put uploads an object under the given key using the provided reader and options.
	Put(ctx context.Context, key string, r io.Reader, opt PutObjectOptions) (ObjectInfo, error)
	// Delete removes an object by key.
	Delete(ctx context.Context, key string) error
	// PresignGet returns a time-limited URL that can be used to download the object without credentials.
	PresignGet(ctx context.Context, key string, expiry time.Duration) (string, error)
}

// ObjectKey builds "<prefix>/<owner>/<uuid><ext>", keeping the lowercased
// extension of filename so downloads retain a usable name.
func ObjectKey(prefix, owner, filename string) string {
	ext := strings.ToLower(path.Ext(filename))
	return path.Join(prefix, owner, uuid.NewString()+ext)
}
