// internal/app/system/media/httpstore.go
package media

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"
)

// HTTPStore talks to an external image-hosting service over its REST
// API: POST multipart to /upload, DELETE /objects/{publicID}. The host
// assigns the public ID and URL.
type HTTPStore struct {
	endpoint string
	apiKey   string
	client   *http.Client
}

// NewHTTPStore builds a client with its own bounded timeout so a slow
// blob host cannot hold requests past the handler deadline.
func NewHTTPStore(endpoint, apiKey string, timeout time.Duration) *HTTPStore {
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	return &HTTPStore{
		endpoint: strings.TrimRight(endpoint, "/"),
		apiKey:   apiKey,
		client:   &http.Client{Timeout: timeout},
	}
}

// uploadResponse is the host's reply to a successful upload.
type uploadResponse struct {
	URL      string `json:"url"`
	PublicID string `json:"public_id"`
}

// Upload streams the object to the host as multipart form data.
func (s *HTTPStore) Upload(ctx context.Context, r io.Reader, filename, contentType string) (Asset, error) {
	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)

	go func() {
		part, err := mw.CreateFormFile("file", sanitizeFilename(filename))
		if err != nil {
			pw.CloseWithError(err)
			return
		}
		if _, err := io.Copy(part, io.LimitReader(r, MaxUploadBytes)); err != nil {
			pw.CloseWithError(err)
			return
		}
		pw.CloseWithError(mw.Close())
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint+"/upload", pr)
	if err != nil {
		return Asset{}, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return Asset{}, fmt.Errorf("media upload: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return Asset{}, fmt.Errorf("media upload: host returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var ur uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&ur); err != nil {
		return Asset{}, fmt.Errorf("media upload: decode response: %w", err)
	}
	if ur.URL == "" || ur.PublicID == "" {
		return Asset{}, fmt.Errorf("media upload: host response missing url or public_id")
	}
	return Asset{URL: ur.URL, PublicID: ur.PublicID}, nil
}

// Delete removes the object from the host.
func (s *HTTPStore) Delete(ctx context.Context, publicID string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, s.endpoint+"/objects/"+publicID, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("media delete: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusNoContent:
		return nil
	case http.StatusNotFound:
		return ErrNotFound
	default:
		return fmt.Errorf("media delete: host returned %d", resp.StatusCode)
	}
}
