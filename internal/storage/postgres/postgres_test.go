package postgres

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/fdg312/culinary-hub/internal/dbmigrate"
	"github.com/fdg312/culinary-hub/internal/storage"
)

func TestPostgresStorage_RoundTrip(t *testing.T) {
	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	ctx := context.Background()

	if err := dbmigrate.Run(ctx, "up", dbURL); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	s, err := New(ctx, dbURL)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer s.Close()

	const key = "culinary_test_roundtrip"
	t.Cleanup(func() { _ = s.Delete(context.Background(), key) })

	if err := s.Put(ctx, key, []byte(`{"a":1}`)); err != nil {
		t.Fatalf("Put: %v", err)
	}
	got, err := s.Get(ctx, key)
	if err != nil || string(got) != `{"a":1}` {
		t.Fatalf("Get: %s err=%v", got, err)
	}
	if err := s.Delete(ctx, key); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.Get(ctx, key); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
