package config

import (
	"flag"
	"fmt"
	"strings"
	"time"

	pkgRetry "github.com/ModawnAI/samsung-geo-tool-sub004/internal/pkg/retry"
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	// Server configuration
	ServerAddr string `env:"SERVER_ADDR" envDefault:":8080"`
	// Upper bound for one HTTP request, including every model call
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"120s"`
	// Grace period for in-flight requests and async generations on SIGTERM
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"150s"`

	// Database configuration. An empty URL disables the prompt store and the
	// built-in default configuration snapshot is served instead.
	DatabaseURL         string        `env:"DATABASE_URL"`
	DBMaxConns          int           `env:"DB_MAX_CONNS" envDefault:"10"`
	DBMinConns          int           `env:"DB_MIN_CONNS" envDefault:"1"`
	DBMaxConnLifetime   time.Duration `env:"DB_MAX_CONN_LIFETIME" envDefault:"1h"`
	DBMaxConnIdleTime   time.Duration `env:"DB_MAX_CONN_IDLE_TIME" envDefault:"30m"`
	DBHealthCheckPeriod time.Duration `env:"DB_HEALTH_CHECK_PERIOD" envDefault:"1m"`

	// External service configurations
	LLMConnectorCfg      LLMConnectorConfig      `envPrefix:"LLM_"`
	SearchConnectorCfg   SearchConnectorConfig   `envPrefix:"SEARCH_"`
	RAGConnectorCfg      RAGConnectorConfig      `envPrefix:"RAG_"`
	CallbackConnectorCfg CallbackConnectorConfig `envPrefix:"CALLBACK_"`

	// Pipeline tuning
	PipelineCfg PipelineConfig `envPrefix:"PIPELINE_"`

	// Optional YAML file replacing the embedded grounding vocabulary
	VocabularyPath string `env:"VOCABULARY_PATH"`

	// How long a loaded prompt/weight snapshot is served before reloading
	ConfigCacheTTL time.Duration `env:"CONFIG_CACHE_TTL" envDefault:"5m"`

	// Logging configuration
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// Mock configuration for the search and retrieval services
	EnableMocks bool `env:"ENABLE_MOCKS" envDefault:"false"`

	// Environment (set from flag, not from env var)
	Environment string
}

type LLMConnectorConfig struct {
	APIKey      string        `env:"API_KEY"`
	BaseURL     string        `env:"BASE_URL"`
	Model       string        `env:"MODEL" envDefault:"gpt-4o"`
	Temperature float64       `env:"TEMPERATURE" envDefault:"0.7"`
	MaxTokens   int64         `env:"MAX_TOKENS" envDefault:"2000"`
	Timeout     time.Duration `env:"TIMEOUT" envDefault:"30s"`
}

// Enabled reports whether a completion-service credential is configured.
func (c LLMConnectorConfig) Enabled() bool {
	return strings.TrimSpace(c.APIKey) != ""
}

type SearchConnectorConfig struct {
	HTTPClientConfig
	SearchEndpoint  string               `env:"ENDPOINT" envDefault:"/search"`
	ResultsPerQuery int                  `env:"RESULTS_PER_QUERY" envDefault:"5"`
	SearchDepth     string               `env:"DEPTH" envDefault:"basic"`
	Retry           pkgRetry.RetryConfig `envPrefix:"RETRY_"`
}

// Enabled reports whether a web-search credential is configured.
func (c SearchConnectorConfig) Enabled() bool {
	return strings.TrimSpace(c.Token) != ""
}

type RAGConnectorConfig struct {
	HTTPClientConfig
	Enabled             bool                 `env:"ENABLED" envDefault:"false"`
	SearchEndpoint      string               `env:"SEARCH_ENDPOINT" envDefault:"/search"`
	MultiSearchEndpoint string               `env:"MULTI_SEARCH_ENDPOINT" envDefault:"/multi-search"`
	Retry               pkgRetry.RetryConfig `envPrefix:"RETRY_"`
}

type CallbackConnectorConfig struct {
	HTTPClientConfig
	Retry pkgRetry.RetryConfig `envPrefix:"RETRY_"`
}

type HTTPClientConfig struct {
	RequestTimeout        time.Duration `env:"TIMEOUT" envDefault:"20s"`
	ConnTimeout           time.Duration `env:"CONN_TIMEOUT" envDefault:"5s"`
	KeepAlive             time.Duration `env:"KEEP_ALIVE" envDefault:"30s"`
	IdleConnTimeout       time.Duration `env:"IDLE_CONN_TIMEOUT" envDefault:"90s"`
	ResponseHeaderTimeout time.Duration `env:"RESPONSE_HEADER_TIMEOUT" envDefault:"15s"`
	Token                 string        `env:"TOKEN"`
	Url                   string        `env:"SERVICE_URL"`
}

// PipelineConfig collects every threshold and limit of the generation pipeline.
type PipelineConfig struct {
	ScoreThreshold          int           `env:"SCORE_THRESHOLD" envDefault:"80"`
	MaxRefinementIterations int           `env:"MAX_REFINEMENT_ITERATIONS" envDefault:"1"`
	MaxSignals              int           `env:"MAX_SIGNALS" envDefault:"15"`
	MaxSections             int           `env:"MAX_SECTIONS" envDefault:"5"`
	MaxPlaybookResults      int           `env:"MAX_PLAYBOOK_RESULTS" envDefault:"12"`
	PlaybookTopKPerQuery    int           `env:"PLAYBOOK_TOP_K" envDefault:"5"`
	MaxKeywordQueries       int           `env:"MAX_KEYWORD_QUERIES" envDefault:"3"`
	MaxSectionQueries       int           `env:"MAX_SECTION_QUERIES" envDefault:"3"`
	SectionLookups          int           `env:"SECTION_LOOKUPS" envDefault:"2"`
	SectionBoost            float64       `env:"SECTION_BOOST" envDefault:"1.1"`
	TranscriptCharLimit     int           `env:"TRANSCRIPT_CHAR_LIMIT" envDefault:"3000"`
	KeywordWeight           int           `env:"KEYWORD_WEIGHT" envDefault:"2"`
	CallTimeout             time.Duration `env:"CALL_TIMEOUT" envDefault:"20s"`
}

// DefaultPipelineConfig mirrors the envDefault values above.
func DefaultPipelineConfig() PipelineConfig {
	return PipelineConfig{
		ScoreThreshold:          80,
		MaxRefinementIterations: 1,
		MaxSignals:              15,
		MaxSections:             5,
		MaxPlaybookResults:      12,
		PlaybookTopKPerQuery:    5,
		MaxKeywordQueries:       3,
		MaxSectionQueries:       3,
		SectionLookups:          2,
		SectionBoost:            1.1,
		TranscriptCharLimit:     3000,
		KeywordWeight:           2,
		CallTimeout:             20 * time.Second,
	}
}

func LoadConfig() (*Config, error) {
	envFlag := flag.String("env", "local", "Environment to run (local, prod, or custom)")
	flag.Parse()

	envFile := getEnvFile(*envFlag)
	// Try to load env file, but don't fail if it's missing.
	// In containerized/prod environments variables are usually set externally.
	if err := godotenv.Load(envFile); err != nil {
		fmt.Printf("Warning: could not load %s file (this is ok if env vars are set externally): %v\n", envFile, err)
	}

	return Parse(*envFlag)
}

// Parse reads the configuration from the current process environment.
func Parse(environment string) (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	cfg.Environment = environment

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func validateConfig(cfg *Config) error {
	var errors []string

	p := cfg.PipelineCfg
	if p.ScoreThreshold < 0 || p.ScoreThreshold > 100 {
		errors = append(errors, fmt.Sprintf("PIPELINE_SCORE_THRESHOLD must be between 0 and 100, got %d", p.ScoreThreshold))
	}

	if p.MaxRefinementIterations < 0 || p.MaxRefinementIterations > 5 {
		errors = append(errors, fmt.Sprintf("PIPELINE_MAX_REFINEMENT_ITERATIONS must be between 0 and 5, got %d", p.MaxRefinementIterations))
	}

	if p.MaxSignals < 1 || p.MaxSections < 1 || p.MaxPlaybookResults < 1 || p.PlaybookTopKPerQuery < 1 {
		errors = append(errors, "PIPELINE_MAX_SIGNALS, PIPELINE_MAX_SECTIONS, PIPELINE_MAX_PLAYBOOK_RESULTS and PIPELINE_PLAYBOOK_TOP_K must be positive")
	}

	if p.SectionBoost < 1 {
		errors = append(errors, fmt.Sprintf("PIPELINE_SECTION_BOOST must be at least 1, got %.2f", p.SectionBoost))
	}

	if p.TranscriptCharLimit < 1 {
		errors = append(errors, fmt.Sprintf("PIPELINE_TRANSCRIPT_CHAR_LIMIT must be positive, got %d", p.TranscriptCharLimit))
	}

	if p.KeywordWeight < 1 {
		errors = append(errors, fmt.Sprintf("PIPELINE_KEYWORD_WEIGHT must be positive, got %d", p.KeywordWeight))
	}

	if cfg.LLMConnectorCfg.Temperature < 0 || cfg.LLMConnectorCfg.Temperature > 2 {
		errors = append(errors, fmt.Sprintf("LLM_TEMPERATURE must be between 0 and 2, got %.2f", cfg.LLMConnectorCfg.Temperature))
	}

	if cfg.RequestTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("REQUEST_TIMEOUT must be positive, got %s", cfg.RequestTimeout))
	}

	if cfg.ShutdownTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("SHUTDOWN_TIMEOUT must be positive, got %s", cfg.ShutdownTimeout))
	}

	if p.CallTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("PIPELINE_CALL_TIMEOUT must be positive, got %s", p.CallTimeout))
	}

	if cfg.DBMinConns < 0 || cfg.DBMinConns > cfg.DBMaxConns {
		errors = append(errors, fmt.Sprintf("DB_MIN_CONNS must be between 0 and DB_MAX_CONNS(%d), got %d", cfg.DBMaxConns, cfg.DBMinConns))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation errors:\n  - %s", strings.Join(errors, "\n  - "))
	}

	return nil
}

func getEnvFile(environment string) string {
	switch environment {
	case "prod", "production":
		return ".env.prod"
	case "local", "dev", "development":
		return ".env.local"
	default:
		return fmt.Sprintf(".env.%s", environment)
	}
}
