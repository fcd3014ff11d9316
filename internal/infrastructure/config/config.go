package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/felixgeelhaar/reqgate/pkg/domain/consistency"
	"github.com/felixgeelhaar/reqgate/pkg/domain/gate"
	"github.com/felixgeelhaar/reqgate/pkg/infrastructure/health"
	"github.com/felixgeelhaar/reqgate/pkg/storage"
)

// FileName is the optional workspace configuration file.
const FileName = ".reqgate.yaml"

// Config is the resolved runtime configuration. Values come from defaults,
// then FileName, then the environment (including a workspace .env file).
type Config struct {
	Thresholds          gate.Thresholds          `yaml:"thresholds"`
	EmptyCategoryPolicy gate.EmptyCategoryPolicy `yaml:"empty_category"`
	Tolerance           float64                  `yaml:"consistency_threshold"`

	InputDir    string `yaml:"input_dir"`
	OutputDir   string `yaml:"output_dir"`
	ResultsFile string `yaml:"results_file"`

	HealthTimeout time.Duration `yaml:"health_timeout"`
	Verbose       bool          `yaml:"verbose"`

	Gateway GatewayConfig `yaml:"-"`
	GitHub  GitHubConfig  `yaml:"-"`
}

// GatewayConfig holds the model gateway credentials checked by env check.
type GatewayConfig struct {
	OpenRouterAPIKey  string
	OpenRouterBaseURL string
	AnthropicAPIKey   string
	AnthropicBaseURL  string
}

// GitHubConfig holds the CI context used by publish.
type GitHubConfig struct {
	Token      string
	Repository string
	SHA        string
	APIURL     string
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Thresholds:          gate.DefaultThresholds(),
		EmptyCategoryPolicy: gate.EmptyFail,
		Tolerance:           consistency.DefaultTolerance,
		InputDir:            storage.DefaultInputDir,
		OutputDir:           storage.DefaultOutputDir,
		ResultsFile:         storage.DefaultResultsFile,
		HealthTimeout:       health.DefaultTimeout,
	}
}

// ValidationOutputDir is where document validation reports are written.
func (c Config) ValidationOutputDir() string {
	return filepath.Join(c.OutputDir, storage.ValidationDir)
}

// Load resolves the configuration for the workspace at root. A missing .env
// or FileName is not an error.
func Load(root string) (Config, error) {
	_ = godotenv.Load(filepath.Join(root, ".env"))

	cfg := Default()
	if err := loadFile(root, &cfg); err != nil {
		return Config{}, err
	}

	cfg.Thresholds = gate.Thresholds{
		AgentConsistency:   getEnvFloat("AGENT_CONSISTENCY_THRESHOLD", cfg.Thresholds.AgentConsistency),
		DocQuality:         getEnvFloat("DOC_QUALITY_THRESHOLD", cfg.Thresholds.DocQuality),
		ToolUsage:          getEnvFloat("TOOL_USAGE_THRESHOLD", cfg.Thresholds.ToolUsage),
		TemplateCompliance: getEnvFloat("TEMPLATE_COMPLIANCE_THRESHOLD", cfg.Thresholds.TemplateCompliance),
		OverallSuccessRate: getEnvFloat("OVERALL_SUCCESS_THRESHOLD", cfg.Thresholds.OverallSuccessRate),
	}
	cfg.Tolerance = getEnvFloat("CONSISTENCY_THRESHOLD", cfg.Tolerance)
	if err := consistency.CheckTolerance(cfg.Tolerance); err != nil {
		return Config{}, fmt.Errorf("consistency threshold: %w", err)
	}
	cfg.InputDir = getEnv("REQGATE_INPUT_DIR", cfg.InputDir)
	cfg.OutputDir = getEnv("REQGATE_OUTPUT_DIR", cfg.OutputDir)
	cfg.ResultsFile = getEnv("REQGATE_RESULTS_FILE", cfg.ResultsFile)
	cfg.HealthTimeout = getEnvDuration("HEALTH_TIMEOUT", cfg.HealthTimeout)
	cfg.Verbose = getEnvBool("VERBOSE", cfg.Verbose)

	policy, err := gate.ParseEmptyCategoryPolicy(getEnv("GATE_EMPTY_CATEGORY", string(cfg.EmptyCategoryPolicy)))
	if err != nil {
		return Config{}, fmt.Errorf("GATE_EMPTY_CATEGORY: %w", err)
	}
	cfg.EmptyCategoryPolicy = policy

	cfg.Gateway = GatewayConfig{
		OpenRouterAPIKey:  getEnv("OPENROUTER_API_KEY", ""),
		OpenRouterBaseURL: getEnv("OPENROUTER_BASE_URL", ""),
		AnthropicAPIKey:   getEnv("ANTHROPIC_API_KEY", ""),
		AnthropicBaseURL:  getEnv("ANTHROPIC_BASE_URL", ""),
	}
	cfg.GitHub = GitHubConfig{
		Token:      getEnv("GITHUB_TOKEN", ""),
		Repository: getEnv("GITHUB_REPOSITORY", ""),
		SHA:        getEnv("GITHUB_SHA", ""),
		APIURL:     getEnv("GITHUB_API_URL", ""),
	}

	return cfg, nil
}

func loadFile(root string, cfg *Config) error {
	path := filepath.Join(root, FileName)
	// #nosec G304 -- Fixed file name below the workspace root
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to read %s: %w", FileName, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to unmarshal %s: %w", FileName, err)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

// getEnvFloat ignores unparseable and non-positive values.
func getEnvFloat(key string, fallback float64) float64 {
	if value, ok := os.LookupEnv(key); ok {
		if f, err := strconv.ParseFloat(strings.TrimSpace(value), 64); err == nil && f > 0 {
			return f
		}
	}
	return fallback
}

// getEnvDuration accepts Go durations ("15s") and plain milliseconds.
func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	value = strings.TrimSpace(value)
	if d, err := time.ParseDuration(value); err == nil && d > 0 {
		return d
	}
	if ms, err := strconv.Atoi(value); err == nil && ms > 0 {
		return time.Duration(ms) * time.Millisecond
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}
