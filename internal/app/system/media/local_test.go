package media

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLocalStoreUploadAndDelete(t *testing.T) {
	store, err := NewLocalStore(t.TempDir(), "/media/")
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	asset, err := store.Upload(ctx, strings.NewReader("image bytes"), "photo.jpg", "image/jpeg")
	if err != nil {
		t.Fatal(err)
	}
	if asset.PublicID == "" {
		t.Fatal("empty public ID")
	}
	if !strings.HasPrefix(asset.URL, "/media/") {
		t.Errorf("URL = %q, want /media/ prefix without a double slash", asset.URL)
	}
	if !strings.HasSuffix(asset.PublicID, "photo.jpg") {
		t.Errorf("PublicID = %q, want original filename preserved", asset.PublicID)
	}

	data, err := os.ReadFile(filepath.Join(store.Root(), filepath.FromSlash(asset.PublicID)))
	if err != nil {
		t.Fatalf("uploaded file missing: %v", err)
	}
	if string(data) != "image bytes" {
		t.Errorf("stored %q", data)
	}

	if err := store.Delete(ctx, asset.PublicID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := store.Delete(ctx, asset.PublicID); !errors.Is(err, ErrNotFound) {
		t.Errorf("second Delete = %v, want ErrNotFound", err)
	}
}

func TestLocalStoreUploadsGetUniqueIDs(t *testing.T) {
	store, err := NewLocalStore(t.TempDir(), "/media")
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	a1, err := store.Upload(ctx, strings.NewReader("one"), "same.png", "image/png")
	if err != nil {
		t.Fatal(err)
	}
	a2, err := store.Upload(ctx, strings.NewReader("two"), "same.png", "image/png")
	if err != nil {
		t.Fatal(err)
	}
	if a1.PublicID == a2.PublicID {
		t.Errorf("two uploads of the same filename share ID %q", a1.PublicID)
	}
}

func TestLocalStoreDeleteRejectsEscapes(t *testing.T) {
	store, err := NewLocalStore(t.TempDir(), "/media")
	if err != nil {
		t.Fatal(err)
	}
	for _, id := range []string{"../outside.txt", "/etc/passwd", "a/../../b"} {
		if err := store.Delete(context.Background(), id); !errors.Is(err, ErrNotFound) {
			t.Errorf("Delete(%q) = %v, want ErrNotFound", id, err)
		}
	}
}

func TestSanitizeFilename(t *testing.T) {
	cases := map[string]string{
		"photo.jpg":       "photo.jpg",
		"my photo (1).js": "my_photo__1_.js",
	}
	for in, want := range cases {
		if got := sanitizeFilename(in); got != want {
			t.Errorf("sanitizeFilename(%q) = %q, want %q", in, got, want)
		}
	}
}
