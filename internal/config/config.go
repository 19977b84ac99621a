package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

const (
	BlobModeLocal = "local"
	BlobModeS3    = "s3"
	BlobModeAuto  = "auto"
)

const (
	StorageModeSQLite   = "sqlite"
	StorageModePostgres = "postgres"
	StorageModeMemory   = "memory"
)

const (
	AIModeMock      = "mock"
	AIModeOpenAI    = "openai"
	AIModeLangChain = "langchain"
)

// Logger is the minimal logging surface used across the app.
type Logger interface {
	Printf(format string, args ...any)
}

type S3Config struct {
	Endpoint          string
	Region            string
	Bucket            string
	AccessKeyID       string
	SecretAccessKey   string
	PublicBaseURL     string
	PresignTTLSeconds int
	PreferPublicURL   bool
}

func (c S3Config) MissingRequired() []string {
	missing := make([]string, 0, 6)
	if strings.TrimSpace(c.Endpoint) == "" {
		missing = append(missing, "S3_ENDPOINT")
	}
	if strings.TrimSpace(c.Region) == "" {
		missing = append(missing, "S3_REGION")
	}
	if strings.TrimSpace(c.Bucket) == "" {
		missing = append(missing, "S3_BUCKET")
	}
	if strings.TrimSpace(c.AccessKeyID) == "" {
		missing = append(missing, "S3_ACCESS_KEY_ID")
	}
	if strings.TrimSpace(c.SecretAccessKey) == "" {
		missing = append(missing, "S3_SECRET_ACCESS_KEY")
	}
	return missing
}

func (c S3Config) IsConfigured() bool {
	return len(c.MissingRequired()) == 0
}

func (c S3Config) isEmpty() bool {
	return strings.TrimSpace(c.Endpoint) == "" &&
		strings.TrimSpace(c.Region) == "" &&
		strings.TrimSpace(c.Bucket) == "" &&
		strings.TrimSpace(c.AccessKeyID) == "" &&
		strings.TrimSpace(c.SecretAccessKey) == ""
}

func (c S3Config) Diagnostics() (level string, code string, msg string) {
	if c.isEmpty() {
		return "INFO", "s3_not_configured", "not configured (all empty)"
	}

	missing := c.MissingRequired()
	if len(missing) > 0 {
		return "WARN", "s3_partial_config", fmt.Sprintf("partial config, missing=%v", missing)
	}

	return "INFO", "s3_ready", "ready"
}

// DiagnosticsSummary returns a summary for logging (no secrets).
func (c S3Config) DiagnosticsSummary() string {
	return fmt.Sprintf("endpoint=%s region=%s bucket=%s public_base_url=%s presign_ttl=%ds prefer_public_url=%t access_key_id=%s secret_access_key=%s",
		nonEmptyOrDash(c.Endpoint),
		nonEmptyOrDash(c.Region),
		nonEmptyOrDash(c.Bucket),
		nonEmptyOrDash(c.PublicBaseURL),
		c.PresignTTLSeconds,
		c.PreferPublicURL,
		setOrNot(c.AccessKeyID),
		setOrNot(c.SecretAccessKey),
	)
}

func nonEmptyOrDash(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return "-"
	}
	return v
}

func setOrNot(v string) string {
	if strings.TrimSpace(v) == "" {
		return "not set"
	}
	return "set"
}

type BlobConfig struct {
	Mode           string // local|s3|auto
	ReportsMode    string // local|s3|auto (override)
	ReportsModeSet bool
	LocalDir       string
	S3             S3Config
}

func (c BlobConfig) EffectiveReportsMode() string {
	if c.ReportsModeSet {
		return c.ReportsMode
	}
	return c.Mode
}

// Config holds the application configuration.
type Config struct {
	Env     string // local | staging | prod
	DataDir string

	// Storage
	StorageMode       string // sqlite | postgres | memory
	SQLitePath        string
	DatabaseURL       string // runtime connection (resolved: pooled > url > direct)
	DatabaseURLRaw    string // DATABASE_URL as provided
	DatabaseURLPooled string // DATABASE_URL_POOLED as provided
	DatabaseURLDirect string // for migrations / DDL (may be empty)

	RunMigrationsOnStartup bool

	Blob BlobConfig

	// AI
	AIMode            string // mock | openai | langchain
	AIMaxOutputTokens int
	AITemperature     float64
	AITimeoutSeconds  int
	AIRateLimitRPS    float64
	AIRateLimitBurst  int
	OpenAIAPIKey      string
	OpenAIBaseURL     string
	OpenAIModel       string
	OpenAIImageModel  string
	OpenAITTSModel    string
	OpenAITTSVoice    string

	// Local session
	JWTSecret     string
	JWTIssuer     string
	JWTTTLMinutes int

	// Water
	IntakesMaxWaterMlPerDay  int
	IntakesWaterDefaultAddMl int

	// Reports
	ReportsMaxRangeDays int

	// SpeechPlayer is an optional command that plays synthesized audio; the
	// file path is appended as the last argument.
	SpeechPlayer string
}

// Load reads the configuration from environment variables.
func Load() *Config {
	// APP_ENV (fallback to ENV for backward compat, default: local)
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = os.Getenv("ENV")
	}
	if env == "" {
		env = "local"
	}

	dataDir := strings.TrimSpace(os.Getenv("CULINARY_DATA_DIR"))
	if dataDir == "" {
		dataDir = DefaultDataDir()
	}

	// ---------- Storage ----------
	storageMode := strings.ToLower(strings.TrimSpace(os.Getenv("STORAGE_MODE")))
	if storageMode == "" {
		storageMode = StorageModeSQLite
	}
	switch storageMode {
	case StorageModeSQLite, StorageModePostgres, StorageModeMemory:
	default:
		log.Printf("WARNING: unknown STORAGE_MODE=%q, fallback to %s", storageMode, StorageModeSQLite)
		storageMode = StorageModeSQLite
	}

	sqlitePath := strings.TrimSpace(os.Getenv("SQLITE_PATH"))
	if sqlitePath == "" {
		sqlitePath = filepath.Join(dataDir, "culinary.db")
	}

	// Priority: DATABASE_URL_POOLED > DATABASE_URL > DATABASE_URL_DIRECT
	dbPooled := strings.TrimSpace(os.Getenv("DATABASE_URL_POOLED"))
	dbURL := strings.TrimSpace(os.Getenv("DATABASE_URL"))
	dbDirect := strings.TrimSpace(os.Getenv("DATABASE_URL_DIRECT"))
	runtimeDB := dbPooled
	if runtimeDB == "" {
		runtimeDB = dbURL
	}
	if runtimeDB == "" {
		runtimeDB = dbDirect
	}

	runMigrationsOnStartup := parseBoolEnv("RUN_MIGRATIONS_ON_STARTUP")

	// ---------- Blob / S3 ----------
	blobMode := parseBlobMode("BLOB_MODE", BlobModeLocal)

	reportsModeRaw := strings.ToLower(strings.TrimSpace(os.Getenv("REPORTS_MODE")))
	reportsModeSet := reportsModeRaw != ""
	reportsMode := reportsModeRaw
	if reportsMode == "" {
		reportsMode = BlobModeLocal
	}
	if reportsMode != BlobModeLocal && reportsMode != BlobModeS3 && reportsMode != BlobModeAuto {
		log.Printf("WARNING: unknown REPORTS_MODE=%q, fallback to %s", reportsMode, BlobModeLocal)
		reportsMode = BlobModeLocal
	}

	s3PresignTTL := envInt("S3_PRESIGN_TTL_SECONDS", 900)
	if s3PresignTTL <= 0 {
		s3PresignTTL = 900
	}

	blobCfg := BlobConfig{
		Mode:           blobMode,
		ReportsMode:    reportsMode,
		ReportsModeSet: reportsModeSet,
		LocalDir:       filepath.Join(dataDir, "blobs"),
		S3: S3Config{
			Endpoint:          strings.TrimSpace(os.Getenv("S3_ENDPOINT")),
			Region:            strings.TrimSpace(os.Getenv("S3_REGION")),
			Bucket:            strings.TrimSpace(os.Getenv("S3_BUCKET")),
			AccessKeyID:       strings.TrimSpace(os.Getenv("S3_ACCESS_KEY_ID")),
			SecretAccessKey:   strings.TrimSpace(os.Getenv("S3_SECRET_ACCESS_KEY")),
			PublicBaseURL:     strings.TrimSpace(os.Getenv("S3_PUBLIC_BASE_URL")),
			PresignTTLSeconds: s3PresignTTL,
			PreferPublicURL:   parseBoolEnv("S3_PREFER_PUBLIC_URL"),
		},
	}

	// ---------- AI ----------
	aiMode := strings.ToLower(strings.TrimSpace(os.Getenv("AI_MODE")))
	if aiMode == "" {
		aiMode = AIModeMock
	}
	if aiMode != AIModeMock && aiMode != AIModeOpenAI && aiMode != AIModeLangChain {
		log.Printf("WARNING: unknown AI_MODE=%q, fallback to mock", aiMode)
		aiMode = AIModeMock
	}

	aiMaxOutputTokens := envInt("AI_MAX_OUTPUT_TOKENS", 1200)
	if aiMaxOutputTokens <= 0 {
		aiMaxOutputTokens = 1200
	}

	aiTemperature := envFloat("AI_TEMPERATURE", 0.3)
	if aiTemperature < 0 {
		aiTemperature = 0
	}
	if aiTemperature > 2 {
		aiTemperature = 2
	}

	aiTimeoutSeconds := envInt("AI_TIMEOUT_SECONDS", 60)
	if aiTimeoutSeconds <= 0 {
		aiTimeoutSeconds = 60
	}

	aiRateLimitRPS := envFloat("AI_RATE_LIMIT_RPS", 0)
	if aiRateLimitRPS < 0 {
		aiRateLimitRPS = 0
	}
	aiRateLimitBurst := envInt("AI_RATE_LIMIT_BURST", 1)
	if aiRateLimitBurst <= 0 {
		aiRateLimitBurst = 1
	}

	openAIModel := envString("OPENAI_MODEL", "gpt-4.1-mini")
	openAIBaseURL := strings.TrimRight(envString("OPENAI_BASE_URL", "https://api.openai.com/v1"), "/")

	// ---------- Session ----------
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		jwtSecret = "change_me"
	}
	if jwtSecret == "change_me" && env != "local" {
		log.Println("WARNING: JWT_SECRET is set to 'change_me' in non-local environment!")
	}

	// JWT_TTL_MINUTES (default: 43200 = 30 days)
	jwtTTLMinutes := envInt("JWT_TTL_MINUTES", 43200)
	if jwtTTLMinutes <= 0 {
		jwtTTLMinutes = 43200
	}

	// ---------- Water / reports ----------
	intakesMaxWaterMlPerDay := envInt("INTAKES_MAX_WATER_ML_PER_DAY", 8000)
	if intakesMaxWaterMlPerDay <= 0 {
		intakesMaxWaterMlPerDay = 8000
	}
	intakesWaterDefaultAddMl := envInt("INTAKES_WATER_DEFAULT_ADD_ML", 250)
	if intakesWaterDefaultAddMl <= 0 {
		intakesWaterDefaultAddMl = 250
	}

	reportsMaxRangeDays := envInt("REPORTS_MAX_RANGE_DAYS", 90)
	if reportsMaxRangeDays <= 0 {
		reportsMaxRangeDays = 90
	}

	return &Config{
		Env:     env,
		DataDir: dataDir,

		StorageMode:       storageMode,
		SQLitePath:        sqlitePath,
		DatabaseURL:       runtimeDB,
		DatabaseURLRaw:    dbURL,
		DatabaseURLPooled: dbPooled,
		DatabaseURLDirect: dbDirect,

		RunMigrationsOnStartup: runMigrationsOnStartup,

		Blob: blobCfg,

		AIMode:            aiMode,
		AIMaxOutputTokens: aiMaxOutputTokens,
		AITemperature:     aiTemperature,
		AITimeoutSeconds:  aiTimeoutSeconds,
		AIRateLimitRPS:    aiRateLimitRPS,
		AIRateLimitBurst:  aiRateLimitBurst,
		OpenAIAPIKey:      strings.TrimSpace(os.Getenv("OPENAI_API_KEY")),
		OpenAIBaseURL:     openAIBaseURL,
		OpenAIModel:       openAIModel,
		OpenAIImageModel:  envString("OPENAI_IMAGE_MODEL", "gpt-image-1"),
		OpenAITTSModel:    envString("OPENAI_TTS_MODEL", "gpt-4o-mini-tts"),
		OpenAITTSVoice:    envString("OPENAI_TTS_VOICE", "alloy"),

		JWTSecret:     jwtSecret,
		JWTIssuer:     envString("JWT_ISSUER", "culinary-hub"),
		JWTTTLMinutes: jwtTTLMinutes,

		IntakesMaxWaterMlPerDay:  intakesMaxWaterMlPerDay,
		IntakesWaterDefaultAddMl: intakesWaterDefaultAddMl,

		ReportsMaxRangeDays: reportsMaxRangeDays,

		SpeechPlayer: strings.TrimSpace(os.Getenv("SPEECH_PLAYER")),
	}
}

// Validate reports misconfiguration that makes startup impossible.
func (c *Config) Validate() error {
	var errs []error
	if (c.AIMode == AIModeOpenAI || c.AIMode == AIModeLangChain) && c.OpenAIAPIKey == "" {
		errs = append(errs, fmt.Errorf("OPENAI_API_KEY is required when AI_MODE=%s", c.AIMode))
	}
	if c.StorageMode == StorageModePostgres && c.DatabaseURL == "" {
		errs = append(errs, errors.New("DATABASE_URL is required when STORAGE_MODE=postgres"))
	}
	if c.StorageMode == StorageModeSQLite && c.SQLitePath == "" {
		errs = append(errs, errors.New("SQLITE_PATH is empty"))
	}
	if c.Blob.Mode == BlobModeS3 && !c.Blob.S3.IsConfigured() {
		errs = append(errs, fmt.Errorf("BLOB_MODE=s3 requires %v", c.Blob.S3.MissingRequired()))
	}
	return errors.Join(errs...)
}

// LogSummary prints the startup banner without secrets.
func (c *Config) LogSummary(logger Logger) {
	logger.Printf("INFO config: env=%s data_dir=%s storage=%s blob=%s ai=%s model=%s openai_api_key=%s jwt_secret=%s",
		c.Env, c.DataDir, c.StorageMode, c.Blob.Mode, c.AIMode, c.OpenAIModel,
		setOrNot(c.OpenAIAPIKey), setOrNot(c.JWTSecret))
	level, _, msg := c.Blob.S3.Diagnostics()
	logger.Printf("%s config: s3 %s (%s)", level, msg, c.Blob.S3.DiagnosticsSummary())
}

// DefaultDataDir is the per-user directory holding the database and local
// blobs.
func DefaultDataDir() string {
	dir, err := os.UserConfigDir()
	if err != nil || dir == "" {
		return ".culinary-hub"
	}
	return filepath.Join(dir, "culinary-hub")
}

func parseBlobMode(key string, defaultVal string) string {
	mode := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
	if mode == "" {
		return defaultVal
	}
	switch mode {
	case BlobModeLocal, BlobModeS3, BlobModeAuto:
		return mode
	default:
		log.Printf("WARNING: unknown %s=%q, fallback to %s", key, mode, defaultVal)
		return defaultVal
	}
}

func envString(key, defaultVal string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return defaultVal
	}
	return v
}

// envInt reads an int env var with a default value.
func envInt(key string, defaultVal int) int {
	s := os.Getenv(key)
	if s == "" {
		return defaultVal
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return defaultVal
	}
	return v
}

func envFloat(key string, defaultVal float64) float64 {
	s := os.Getenv(key)
	if s == "" {
		return defaultVal
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return defaultVal
	}
	return v
}

func parseBoolEnv(key string) bool {
	v := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
	return v == "1" || v == "true" || v == "yes" || v == "on"
}
