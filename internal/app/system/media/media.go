// Package media abstracts the external blob store holding post images
// and avatars.
//
// A Store returns a public URL plus a deletable identifier (the
// "public ID") for every uploaded object. Uploads and deletes are
// synchronous calls on the request path; callers bound them with
// timeouts.Upload() and treat failure as terminal for that request —
// there is no retry logic.
package media

import (
	"context"
	"errors"
	"io"
	"path/filepath"
)

// MaxUploadBytes caps a single image upload (16 MiB).
const MaxUploadBytes = 16 << 20

// ErrNotFound is returned by Delete when the object does not exist.
var ErrNotFound = errors.New("media object not found")

// Asset identifies a stored object.
type Asset struct {
	URL      string // public URL clients fetch the object from
	PublicID string // identifier used to delete the object later
}

// Store is the blob-store contract.
type Store interface {
	// Upload stores the object and returns its asset handle.
	Upload(ctx context.Context, r io.Reader, filename, contentType string) (Asset, error)
	// Delete removes the object. Deleting an absent object returns
	// ErrNotFound.
	Delete(ctx context.Context, publicID string) error
}

// sanitizeFilename keeps only filesystem- and URL-safe characters and
// truncates overly long names while preserving the extension.
func sanitizeFilename(filename string) string {
	filename = filepath.Base(filename)

	result := make([]byte, 0, len(filename))
	for i := 0; i < len(filename); i++ {
		c := filename[i]
		if isAllowedFilenameChar(c) {
			result = append(result, c)
		} else {
			result = append(result, '_')
		}
	}

	if len(result) == 0 {
		return "file"
	}
	if len(result) > 100 {
		ext := filepath.Ext(string(result))
		if len(ext) > 0 && len(ext) < 10 {
			result = append(result[:100-len(ext)], ext...)
		} else {
			result = result[:100]
		}
	}
	return string(result)
}

func isAllowedFilenameChar(c byte) bool {
	return (c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z') ||
		(c >= '0' && c <= '9') ||
		c == '-' || c == '_' || c == '.'
}
