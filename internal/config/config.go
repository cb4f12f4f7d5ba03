package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"calc/internal/parser"

	"github.com/goccy/go-yaml"
	"github.com/joho/godotenv"
)

// DefaultPath is the configuration file looked up when none is given.
const DefaultPath = "calc.yaml"

// ErrConfigValidation is returned when configuration validation fails
var ErrConfigValidation = errors.New("configuration validation failed")

// Config represents the calc configuration
type Config struct {
	Prompt   string         `yaml:"prompt"`
	Color    *bool          `yaml:"color"`
	TUI      bool           `yaml:"tui"`
	Recovery RecoveryConfig `yaml:"recovery"`
	Log      LogConfig      `yaml:"log"`
}

// RecoveryConfig bounds the parser's error repair search
type RecoveryConfig struct {
	MaxCost   int `yaml:"max_cost"`
	Lookahead int `yaml:"lookahead"`
}

// LogConfig is passed to commonlog.Configure
type LogConfig struct {
	Verbosity int    `yaml:"verbosity"`
	File      string `yaml:"file"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	def := parser.DefaultOptions()
	return &Config{
		Prompt: ">>> ",
		Color:  boolPtr(true),
		Recovery: RecoveryConfig{
			MaxCost:   def.MaxRepairCost,
			Lookahead: def.RecoveryLookahead,
		},
	}
}

// Load reads configPath, falling back to defaults when the file does not
// exist. A .env file in the working directory and CALC_* variables are
// applied on top.
func Load(configPath string) (*Config, error) {
	if err := loadEnvFiles(); err != nil {
		return nil, fmt.Errorf("failed to load environment files: %w", err)
	}

	config := Default()

	data, err := os.ReadFile(configPath)
	switch {
	case os.IsNotExist(err):
	case err != nil:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	default:
		// Strict mode rejects unknown fields
		if err := yaml.UnmarshalWithOptions(data, config, yaml.Strict()); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	if err := applyEnv(config); err != nil {
		return nil, err
	}
	applyDefaults(config)

	if err := validate(config); err != nil {
		return nil, err
	}
	return config, nil
}

// ParserOptions converts the recovery section for the parser.
func (c *Config) ParserOptions() parser.Options {
	return parser.Options{
		MaxRepairCost:     c.Recovery.MaxCost,
		RecoveryLookahead: c.Recovery.Lookahead,
	}
}

// ColorEnabled reports whether output should be colored.
func (c *Config) ColorEnabled() bool {
	return c.Color == nil || *c.Color
}

func validate(config *Config) error {
	if config.Recovery.MaxCost < 1 {
		return fmt.Errorf("%w: recovery.max_cost must be positive, got %d", ErrConfigValidation, config.Recovery.MaxCost)
	}
	if config.Recovery.MaxCost > parser.MaxRepairCostLimit {
		return fmt.Errorf("%w: recovery.max_cost must be at most %d, got %d",
			ErrConfigValidation, parser.MaxRepairCostLimit, config.Recovery.MaxCost)
	}
	if config.Recovery.Lookahead < 1 {
		return fmt.Errorf("%w: recovery.lookahead must be positive, got %d", ErrConfigValidation, config.Recovery.Lookahead)
	}
	if config.Log.Verbosity < -1 {
		return fmt.Errorf("%w: log.verbosity must be -1 or greater, got %d", ErrConfigValidation, config.Log.Verbosity)
	}
	return nil
}

func applyDefaults(config *Config) {
	if config.Prompt == "" {
		config.Prompt = Default().Prompt
	}
}

// applyEnv overrides file settings with CALC_* environment variables.
func applyEnv(config *Config) error {
	if v, ok := os.LookupEnv("CALC_PROMPT"); ok {
		config.Prompt = v
	}
	if v, ok := os.LookupEnv("CALC_LOG_FILE"); ok {
		config.Log.File = v
	}

	for name, dst := range map[string]*int{
		"CALC_MAX_REPAIR_COST": &config.Recovery.MaxCost,
		"CALC_LOOKAHEAD":       &config.Recovery.Lookahead,
		"CALC_LOG_VERBOSITY":   &config.Log.Verbosity,
	} {
		if err := envInt(name, dst); err != nil {
			return err
		}
	}

	if err := envBool("CALC_TUI", &config.TUI); err != nil {
		return err
	}
	if _, ok := os.LookupEnv("CALC_COLOR"); ok {
		var color bool
		if err := envBool("CALC_COLOR", &color); err != nil {
			return err
		}
		config.Color = boolPtr(color)
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		config.Color = boolPtr(false)
	}
	return nil
}

func envInt(name string, dst *int) error {
	v, ok := os.LookupEnv(name)
	if !ok {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrConfigValidation, name, err)
	}
	*dst = n
	return nil
}

func envBool(name string, dst *bool) error {
	v, ok := os.LookupEnv(name)
	if !ok {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrConfigValidation, name, err)
	}
	*dst = b
	return nil
}

// loadEnvFiles loads .env files if they exist
func loadEnvFiles() error {
	if fileExists(".env") {
		if err := godotenv.Load(".env"); err != nil {
			return fmt.Errorf("failed to load .env file: %w", err)
		}
	}
	return nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}

func boolPtr(b bool) *bool {
	return &b
}
