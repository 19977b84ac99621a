package blob

import (
	"bytes"
	"context"
	"log"
	"strings"
	"testing"
	"time"

	appcfg "github.com/fdg312/culinary-hub/internal/config"
)

func TestNewBlobStoreLocalModes(t *testing.T) {
	tests := []struct {
		name    string
		mode    string
		wantLog []string
	}{
		{"empty mode defaults to local", "", []string{"mode=local (forced)"}},
		{"forced local", appcfg.BlobModeLocal, []string{"mode=local (forced)"}},
		{"auto without s3", appcfg.BlobModeAuto, []string{"code=s3_not_configured", "mode=local (auto, S3 not configured)"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			store, mode, err := NewBlobStore(context.Background(), appcfg.BlobConfig{
				Mode:     tt.mode,
				LocalDir: t.TempDir(),
			}, log.New(&buf, "", 0))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if mode != appcfg.BlobModeLocal {
				t.Fatalf("expected mode=local, got %s", mode)
			}
			for _, want := range tt.wantLog {
				if !strings.Contains(buf.String(), want) {
					t.Fatalf("expected %q in log, got: %s", want, buf.String())
				}
			}

			// Photos logged from the CLI go through whichever store was picked.
			key := NewKey(PrefixMeals, time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC), ".jpg")
			if _, err := store.PutObject(context.Background(), key, []byte("jpeg"), "image/jpeg"); err != nil {
				t.Fatalf("put: %v", err)
			}
			got, err := store.GetObject(context.Background(), key)
			if err != nil || string(got) != "jpeg" {
				t.Fatalf("get: %q, %v", got, err)
			}
		})
	}
}

func TestNewBlobStoreRejects(t *testing.T) {
	tests := []struct {
		name    string
		cfg     appcfg.BlobConfig
		wantErr string
	}{
		{
			name:    "s3 without credentials",
			cfg:     appcfg.BlobConfig{Mode: appcfg.BlobModeS3, S3: appcfg.S3Config{Endpoint: "https://s3.example.com"}},
			wantErr: "missing required config",
		},
		{
			name:    "unknown mode",
			cfg:     appcfg.BlobConfig{Mode: "ftp"},
			wantErr: "unsupported blob mode",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, mode, err := NewBlobStore(context.Background(), tt.cfg, nil)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("expected %q error, got %v", tt.wantErr, err)
			}
			if store != nil || mode != "" {
				t.Fatalf("expected nil store and empty mode, got %v %q", store, mode)
			}
		})
	}
}
