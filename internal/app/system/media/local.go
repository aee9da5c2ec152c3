// internal/app/system/media/local.go
package media

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// LocalStore writes objects to a directory on disk and serves them
// under a URL prefix (the router mounts a file server there). Used in
// development and single-node deployments.
type LocalStore struct {
	root      string // directory uploads are written into
	urlPrefix string // e.g. "/media"
}

// NewLocalStore creates the root directory if needed.
func NewLocalStore(root, urlPrefix string) (*LocalStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create media root: %w", err)
	}
	return &LocalStore{root: root, urlPrefix: strings.TrimRight(urlPrefix, "/")}, nil
}

// Root returns the directory uploads live in, for mounting a file server.
func (s *LocalStore) Root() string { return s.root }

// Upload writes the object as <yyyy>/<mm>/<uuid>-<name>. The relative
// path doubles as the public ID.
func (s *LocalStore) Upload(ctx context.Context, r io.Reader, filename, contentType string) (Asset, error) {
	if err := ctx.Err(); err != nil {
		return Asset{}, err
	}

	now := time.Now().UTC()
	rel := filepath.ToSlash(filepath.Join(
		fmt.Sprintf("%04d/%02d", now.Year(), now.Month()),
		fmt.Sprintf("%s-%s", uuid.New().String()[:8], sanitizeFilename(filename)),
	))

	dst := filepath.Join(s.root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return Asset{}, fmt.Errorf("create media dir: %w", err)
	}

	f, err := os.Create(dst)
	if err != nil {
		return Asset{}, fmt.Errorf("create media file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, io.LimitReader(r, MaxUploadBytes)); err != nil {
		os.Remove(dst)
		return Asset{}, fmt.Errorf("write media file: %w", err)
	}

	return Asset{
		URL:      s.urlPrefix + "/" + rel,
		PublicID: rel,
	}, nil
}

// Delete removes the object file.
func (s *LocalStore) Delete(ctx context.Context, publicID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	// Reject IDs that escape the root.
	clean := filepath.Clean(filepath.FromSlash(publicID))
	if strings.HasPrefix(clean, "..") || filepath.IsAbs(clean) {
		return ErrNotFound
	}
	err := os.Remove(filepath.Join(s.root, clean))
	if os.IsNotExist(err) {
		return ErrNotFound
	}
	return err
}
