package blob

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestLocalStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store, err := NewLocalStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewLocalStore: %v", err)
	}

	key := NewKey(PrefixMeals, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), "jpg")
	if !strings.HasPrefix(key, "meals/2024/05/") || !strings.HasSuffix(key, ".jpg") {
		t.Fatalf("unexpected key %q", key)
	}

	n, err := store.PutObject(ctx, key, []byte("photo"), "image/jpeg")
	if err != nil || n != 5 {
		t.Fatalf("PutObject: n=%d err=%v", n, err)
	}

	data, err := store.GetObject(ctx, key)
	if err != nil || string(data) != "photo" {
		t.Fatalf("GetObject: %q err=%v", data, err)
	}

	url, err := store.PresignGet(ctx, key, 60)
	if err != nil || !strings.HasPrefix(url, "file://") {
		t.Fatalf("PresignGet: %q err=%v", url, err)
	}

	if err := store.DeleteObject(ctx, key); err != nil {
		t.Fatalf("DeleteObject: %v", err)
	}
	if _, err := store.GetObject(ctx, key); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := store.DeleteObject(ctx, key); err != nil {
		t.Fatalf("expected delete of missing object to succeed, got %v", err)
	}
}

func TestLocalStore_RejectsEscapingKeys(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewLocalStore: %v", err)
	}
	for _, key := range []string{"", "/etc/passwd", "../outside"} {
		if _, err := store.PutObject(context.Background(), key, []byte("x"), ""); err == nil {
			t.Errorf("expected error for key %q", key)
		}
	}
}

func TestExtensionFor(t *testing.T) {
	tests := map[string]string{
		"image/png":                ".png",
		"image/jpeg":               ".jpg",
		"application/pdf":          ".pdf",
		"text/csv; charset=utf-8":  ".csv",
		"audio/mpeg":               ".mp3",
		"application/octet-stream": ".bin",
	}
	for ct, want := range tests {
		if got := ExtensionFor(ct); got != want {
			t.Errorf("ExtensionFor(%q) = %q, want %q", ct, got, want)
		}
	}
}
