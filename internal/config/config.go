// Package config resolves lifeos settings from defaults, ~/.lifeos/config.toml
// and LIFE_OS_* environment variables. Command-line flags are applied last by
// the cli package.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/rcliao/life-os/internal/classify"
	"github.com/rcliao/life-os/internal/history"
	"github.com/rcliao/life-os/internal/llm"
	"github.com/rcliao/life-os/internal/store"
)

const (
	DefaultDirName  = ".lifeos"
	DefaultLogLevel = "info"
)

// Config holds the resolved configuration.
type Config struct {
	Dir        string
	ConfigPath string

	Driver string
	DBPath string

	Provider           string
	BaseURL            string
	StorageModel       string
	RetrievalModel     string
	StorageTemperature *float64
	ContextSize        int

	HistoryDepth int

	LogLevel string
	LogFile  string
}

type fileConfig struct {
	Storage struct {
		Driver string `toml:"driver"`
		Path   string `toml:"path"`
	} `toml:"storage"`
	LLM struct {
		Provider       string   `toml:"provider"`
		BaseURL        string   `toml:"base_url"`
		StorageModel   string   `toml:"storage_model"`
		RetrievalModel string   `toml:"retrieval_model"`
		Temperature    *float64 `toml:"temperature"`
		ContextSize    int      `toml:"context_size"`
	} `toml:"llm"`
	History struct {
		Depth int `toml:"depth"`
	} `toml:"history"`
	Logging struct {
		Level string `toml:"level"`
		File  string `toml:"file"`
	} `toml:"logging"`
}

// DefaultDir returns LIFE_OS_DIR, or ~/.lifeos.
func DefaultDir() string {
	if dir := os.Getenv("LIFE_OS_DIR"); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return DefaultDirName
	}
	return filepath.Join(home, DefaultDirName)
}

// Defaults returns the configuration used when nothing is set, rooted at dir.
// Model names are left empty; Load fills them for the resolved provider.
func Defaults(dir string) *Config {
	return &Config{
		Dir:            dir,
		ConfigPath:     filepath.Join(dir, "config.toml"),
		Driver:         store.DriverSQLite,
		DBPath:         filepath.Join(dir, "lifeos.db"),
		Provider:     llm.ProviderOpenAI,
		ContextSize:  classify.DefaultContextSize,
		HistoryDepth: history.DefaultDepth,
		LogLevel:     DefaultLogLevel,
		LogFile:      filepath.Join(dir, "logs", "lifeos.log"),
	}
}

// Load reads the configuration. An empty path means <dir>/config.toml; a
// missing file there is not an error, but an explicitly named one must exist.
func Load(path string) (*Config, error) {
	cfg := Defaults(DefaultDir())

	explicit := path != ""
	if explicit {
		cfg.ConfigPath = path
	}

	data, err := os.ReadFile(cfg.ConfigPath)
	switch {
	case err == nil:
		if err := cfg.applyFile(data); err != nil {
			return nil, fmt.Errorf("parse %s: %w", cfg.ConfigPath, err)
		}
	case errors.Is(err, os.ErrNotExist) && !explicit:
	default:
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg.applyEnv()
	cfg.applyModelDefaults()
	return cfg, nil
}

func (c *Config) applyFile(data []byte) error {
	var parsed fileConfig
	if err := toml.Unmarshal(data, &parsed); err != nil {
		return err
	}

	if parsed.Storage.Driver != "" {
		c.Driver = parsed.Storage.Driver
	}
	if parsed.Storage.Path != "" {
		c.DBPath = c.resolve(parsed.Storage.Path)
	}
	if parsed.LLM.Provider != "" {
		c.Provider = parsed.LLM.Provider
	}
	if parsed.LLM.BaseURL != "" {
		c.BaseURL = parsed.LLM.BaseURL
	}
	if parsed.LLM.StorageModel != "" {
		c.StorageModel = parsed.LLM.StorageModel
	}
	if parsed.LLM.RetrievalModel != "" {
		c.RetrievalModel = parsed.LLM.RetrievalModel
	}
	if parsed.LLM.Temperature != nil {
		c.StorageTemperature = parsed.LLM.Temperature
	}
	if parsed.LLM.ContextSize != 0 {
		c.ContextSize = parsed.LLM.ContextSize
	}
	if parsed.History.Depth != 0 {
		c.HistoryDepth = parsed.History.Depth
	}
	if parsed.Logging.Level != "" {
		c.LogLevel = parsed.Logging.Level
	}
	if parsed.Logging.File != "" {
		c.LogFile = c.resolve(parsed.Logging.File)
	}
	return nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("LIFE_OS_DB"); v != "" {
		c.DBPath = v
	}
	if v := os.Getenv("LIFE_OS_DRIVER"); v != "" {
		c.Driver = v
	}
	if v := os.Getenv("LIFE_OS_PROVIDER"); v != "" {
		c.Provider = v
	}
	if v := os.Getenv("LIFE_OS_BASE_URL"); v != "" {
		c.BaseURL = v
	}
	if v := os.Getenv("LIFE_OS_STORAGE_MODEL"); v != "" {
		c.StorageModel = v
	}
	if v := os.Getenv("LIFE_OS_RETRIEVAL_MODEL"); v != "" {
		c.RetrievalModel = v
	}
	if v := os.Getenv("LIFE_OS_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("LIFE_OS_CONTEXT_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.ContextSize = n
		}
	}
}

// unset models follow the provider chosen by file or env
func (c *Config) applyModelDefaults() {
	storage, retrieval := llm.DefaultModels(c.Provider)
	if c.StorageModel == "" {
		c.StorageModel = storage
	}
	if c.RetrievalModel == "" {
		c.RetrievalModel = retrieval
	}
}

// relative paths in the file are relative to the lifeos directory
func (c *Config) resolve(p string) string {
	if strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, p[2:])
		}
	}
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.Dir, p)
}

// Validate reports the first setting that cannot work.
func (c *Config) Validate() error {
	switch c.Driver {
	case store.DriverSQLite, store.DriverBolt, store.DriverMemory:
	default:
		return fmt.Errorf("storage.driver: %w: %q", store.ErrUnknownDriver, c.Driver)
	}
	switch c.Provider {
	case llm.ProviderOpenAI, llm.ProviderAnthropic:
	default:
		return fmt.Errorf("llm.provider: %w: %q", llm.ErrUnknownProvider, c.Provider)
	}
	if c.ContextSize <= 0 {
		return fmt.Errorf("llm.context_size must be positive, got %d", c.ContextSize)
	}
	if c.HistoryDepth <= 0 {
		return fmt.Errorf("history.depth must be positive, got %d", c.HistoryDepth)
	}
	if c.StorageTemperature != nil && (*c.StorageTemperature < 0 || *c.StorageTemperature > 2) {
		return fmt.Errorf("llm.temperature must be between 0 and 2, got %g", *c.StorageTemperature)
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error", "off":
	default:
		return fmt.Errorf("logging.level: unknown level %q", c.LogLevel)
	}
	return nil
}
