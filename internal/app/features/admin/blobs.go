// internal/app/features/admin/blobs.go
package admin

import (
	"context"

	"github.com/namanchauhanrajput/blogify/internal/app/system/media"
	"github.com/namanchauhanrajput/blogify/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// deleteAsset removes a blob-store object best-effort on a background
// context; failures are logged and the object is unreferenced either
// way.
func (h *Handler) deleteAsset(publicID string) {
	if publicID == "" {
		return
	}
	ctx, cancel := timeouts.WithUpload(context.Background())
	defer cancel()
	if err := h.Media.Delete(ctx, publicID); err != nil && err != media.ErrNotFound {
		h.Log.Warn("media cleanup failed",
			zap.String("public_id", publicID), zap.Error(err))
	}
}
