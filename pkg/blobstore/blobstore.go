// Package blobstore defines the contract of the remote media host that keeps
// the uploaded bytes, plus the key and URL conventions shared by its
// implementations.
package blobstore

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

type UploadOptions struct {
	// ResourceType is "image" or "raw".
	ResourceType string
	Folder       string
	// PublicID is the caller-assigned name inside Folder. Empty lets the
	// store assign one.
	PublicID    string
	FileName    string
	ContentType string
	// Size is the byte length of the content, or -1 when unknown.
	Size int64
}

type UploadResult struct {
	SecureURL string
	PublicID  string
}

type DestroyOptions struct {
	ResourceType string
}

type Store interface {
	Upload(ctx context.Context, content io.Reader, opts UploadOptions) (*UploadResult, error)
	Destroy(ctx context.Context, publicID string, opts DestroyOptions) error
}

// PublicID joins folder and name, assigning a random name when none is given.
func PublicID(folder, name string) string {
	if name == "" {
		name = uuid.NewString()
	}
	folder = strings.Trim(folder, "/")
	if folder == "" {
		return name
	}
	return folder + "/" + name
}

// ObjectKey is where a blob with the given public id lives inside the bucket.
func ObjectKey(resourceType, publicID string) string {
	if resourceType == "" {
		resourceType = "raw"
	}
	return resourceType + "/" + strings.TrimPrefix(publicID, "/")
}

// PublicURL builds the path-style URL of key under base/bucket.
func PublicURL(base, bucket, key string) string {
	return fmt.Sprintf("%s/%s/%s", strings.TrimRight(base, "/"), bucket, key)
}

// SafeFileName turns an uploaded file name into a unique blob name of the
// form <unix-millis>_<clean-basename>_<random8><ext>. The random part keeps
// same-named uploads in the same millisecond from sharing one blob.
func SafeFileName(originalName string, now time.Time) string {
	base := filepath.Base(filepath.ToSlash(originalName))
	ext := filepath.Ext(base)
	nameOnly := strings.TrimSuffix(base, ext)

	cleanName := strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-' {
			return r
		}
		return '_'
	}, nameOnly)
	if cleanName == "" {
		cleanName = "file"
	}

	return fmt.Sprintf("%d_%s_%s%s", now.UnixMilli(), cleanName, uuid.NewString()[:8], strings.ToLower(ext))
}
