package config

import (
	"path/filepath"
	"strings"
	"testing"
)

func contains(s, sub string) bool { return strings.Contains(s, sub) }

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"APP_ENV", "ENV", "CULINARY_DATA_DIR", "STORAGE_MODE", "SQLITE_PATH",
		"DATABASE_URL", "DATABASE_URL_POOLED", "DATABASE_URL_DIRECT",
		"BLOB_MODE", "REPORTS_MODE", "AI_MODE", "OPENAI_API_KEY", "OPENAI_BASE_URL",
		"AI_TEMPERATURE", "AI_RATE_LIMIT_RPS", "AI_RATE_LIMIT_BURST",
		"INTAKES_MAX_WATER_ML_PER_DAY", "INTAKES_WATER_DEFAULT_ADD_ML", "REPORTS_MAX_RANGE_DAYS",
		"S3_ENDPOINT", "S3_REGION", "S3_BUCKET", "S3_ACCESS_KEY_ID", "S3_SECRET_ACCESS_KEY",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	t.Setenv("CULINARY_DATA_DIR", dir)

	cfg := Load()

	if cfg.Env != "local" {
		t.Errorf("expected env local, got %q", cfg.Env)
	}
	if cfg.StorageMode != StorageModeSQLite {
		t.Errorf("expected sqlite storage, got %q", cfg.StorageMode)
	}
	if cfg.SQLitePath != filepath.Join(dir, "culinary.db") {
		t.Errorf("unexpected sqlite path %q", cfg.SQLitePath)
	}
	if cfg.Blob.Mode != BlobModeLocal || cfg.Blob.LocalDir != filepath.Join(dir, "blobs") {
		t.Errorf("unexpected blob config %+v", cfg.Blob)
	}
	if cfg.AIMode != AIModeMock {
		t.Errorf("expected mock AI, got %q", cfg.AIMode)
	}
	if cfg.IntakesWaterDefaultAddMl != 250 || cfg.IntakesMaxWaterMlPerDay != 8000 {
		t.Errorf("unexpected water defaults %d/%d", cfg.IntakesWaterDefaultAddMl, cfg.IntakesMaxWaterMlPerDay)
	}
	if cfg.ReportsMaxRangeDays != 90 {
		t.Errorf("expected 90 report days, got %d", cfg.ReportsMaxRangeDays)
	}
	if cfg.OpenAIBaseURL != "https://api.openai.com/v1" {
		t.Errorf("unexpected base URL %q", cfg.OpenAIBaseURL)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected defaults to validate, got %v", err)
	}
}

func TestLoad_UnknownModesFallBack(t *testing.T) {
	clearEnv(t)
	t.Setenv("CULINARY_DATA_DIR", t.TempDir())
	t.Setenv("STORAGE_MODE", "mongo")
	t.Setenv("AI_MODE", "gemini")
	t.Setenv("BLOB_MODE", "ftp")

	cfg := Load()
	if cfg.StorageMode != StorageModeSQLite || cfg.AIMode != AIModeMock || cfg.Blob.Mode != BlobModeLocal {
		t.Fatalf("expected fallbacks, got storage=%q ai=%q blob=%q", cfg.StorageMode, cfg.AIMode, cfg.Blob.Mode)
	}
}

func TestLoad_ClampsAndTrims(t *testing.T) {
	clearEnv(t)
	t.Setenv("CULINARY_DATA_DIR", t.TempDir())
	t.Setenv("AI_TEMPERATURE", "5")
	t.Setenv("AI_RATE_LIMIT_RPS", "-1")
	t.Setenv("AI_RATE_LIMIT_BURST", "0")
	t.Setenv("OPENAI_BASE_URL", "http://localhost:1234/v1/")
	t.Setenv("INTAKES_MAX_WATER_ML_PER_DAY", "abc")

	cfg := Load()
	if cfg.AITemperature != 2 {
		t.Errorf("expected temperature clamped to 2, got %v", cfg.AITemperature)
	}
	if cfg.AIRateLimitRPS != 0 || cfg.AIRateLimitBurst != 1 {
		t.Errorf("unexpected rate limit %v/%d", cfg.AIRateLimitRPS, cfg.AIRateLimitBurst)
	}
	if cfg.OpenAIBaseURL != "http://localhost:1234/v1" {
		t.Errorf("expected trailing slash trimmed, got %q", cfg.OpenAIBaseURL)
	}
	if cfg.IntakesMaxWaterMlPerDay != 8000 {
		t.Errorf("expected default water max, got %d", cfg.IntakesMaxWaterMlPerDay)
	}
}

func TestLoad_DatabaseURLPriority(t *testing.T) {
	clearEnv(t)
	t.Setenv("CULINARY_DATA_DIR", t.TempDir())
	t.Setenv("DATABASE_URL", "postgres://url")
	t.Setenv("DATABASE_URL_POOLED", "postgres://pooled")
	t.Setenv("DATABASE_URL_DIRECT", "postgres://direct")

	cfg := Load()
	if cfg.DatabaseURL != "postgres://pooled" {
		t.Fatalf("expected pooled URL at runtime, got %q", cfg.DatabaseURL)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{
			name:    "openai without key",
			cfg:     Config{AIMode: AIModeOpenAI, StorageMode: StorageModeMemory},
			wantErr: "OPENAI_API_KEY",
		},
		{
			name:    "langchain without key",
			cfg:     Config{AIMode: AIModeLangChain, StorageMode: StorageModeMemory},
			wantErr: "OPENAI_API_KEY",
		},
		{
			name:    "postgres without url",
			cfg:     Config{AIMode: AIModeMock, StorageMode: StorageModePostgres},
			wantErr: "DATABASE_URL",
		},
		{
			name:    "s3 partial",
			cfg:     Config{AIMode: AIModeMock, StorageMode: StorageModeMemory, Blob: BlobConfig{Mode: BlobModeS3, S3: S3Config{Bucket: "b"}}},
			wantErr: "BLOB_MODE=s3",
		},
		{
			name: "valid",
			cfg:  Config{AIMode: AIModeOpenAI, OpenAIAPIKey: "sk", StorageMode: StorageModeMemory},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

type captureLogger struct{ lines []string }

func (c *captureLogger) Printf(format string, args ...any) {
	c.lines = append(c.lines, format)
	_ = args
}

func TestLogSummary(t *testing.T) {
	cfg := &Config{Env: "local", StorageMode: StorageModeSQLite, AIMode: AIModeMock}
	logger := &captureLogger{}
	cfg.LogSummary(logger)
	if len(logger.lines) != 2 {
		t.Fatalf("expected 2 log lines, got %d", len(logger.lines))
	}
}
