package main

import (
	"context"
	"log"
	"os"
	"os/signal"

	_ "github.com/joho/godotenv/autoload"

	"github.com/fdg312/culinary-hub/internal/app"
	"github.com/fdg312/culinary-hub/internal/config"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatalf("usage: go run ./cmd/migrate [up|status|down]")
	}

	command := os.Args[1]
	switch command {
	case "up", "status", "down":
	default:
		log.Fatalf("unsupported command %q (allowed: up, status, down)", command)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cfg := config.Load()
	logger := log.Default()
	if err := app.Migrate(ctx, cfg, command, logger); err != nil {
		log.Fatal(err)
	}

	log.Printf("migrate: %s completed successfully (storage=%s)", command, cfg.StorageMode)
}
