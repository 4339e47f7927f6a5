package docforge

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Config contains all configuration options for the engine
type Config struct {
	// LogLevel controls the verbosity of logging (debug, info, warn, error, off)
	LogLevel string
	// StrictMode turns attribute conflicts into errors instead of warnings
	StrictMode bool
	// VerifyOutput re-reads every rendered artifact and checks its structure
	VerifyOutput bool
	// AssetCacheSize is the maximum number of images to cache. 0 disables caching.
	AssetCacheSize int
	// AssetCacheTTL is the time-to-live for cached images. 0 means no expiration.
	AssetCacheTTL time.Duration
}

var (
	globalConfig      *Config
	globalConfigMutex sync.RWMutex
	configOnce        sync.Once
)

func initGlobalConfig() {
	configOnce.Do(func() {
		globalConfigMutex.Lock()
		defer globalConfigMutex.Unlock()
		if globalConfig == nil {
			globalConfig = ConfigFromEnvironment()
		}
	})
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		LogLevel:       "info",
		StrictMode:     false,
		VerifyOutput:   false,
		AssetCacheSize: 32,
		AssetCacheTTL:  0,
	}
}

// ConfigFromEnvironment creates a configuration from environment variables
func ConfigFromEnvironment() *Config {
	config := DefaultConfig()

	// DOCFORGE_LOG_LEVEL
	if val := os.Getenv("DOCFORGE_LOG_LEVEL"); val != "" {
		config.LogLevel = strings.ToLower(val)
	}

	// DOCFORGE_STRICT_MODE
	if val := os.Getenv("DOCFORGE_STRICT_MODE"); val != "" {
		config.StrictMode = parseBool(val)
	}

	// DOCFORGE_VERIFY_OUTPUT
	if val := os.Getenv("DOCFORGE_VERIFY_OUTPUT"); val != "" {
		config.VerifyOutput = parseBool(val)
	}

	// DOCFORGE_ASSET_CACHE_SIZE
	if val := os.Getenv("DOCFORGE_ASSET_CACHE_SIZE"); val != "" {
		if size, err := strconv.Atoi(val); err == nil {
			config.AssetCacheSize = size
		}
	}

	// DOCFORGE_ASSET_CACHE_TTL
	if val := os.Getenv("DOCFORGE_ASSET_CACHE_TTL"); val != "" {
		if duration, err := time.ParseDuration(val); err == nil {
			config.AssetCacheTTL = duration
		}
	}

	return config
}

// NewConfigWithDefaults creates a new configuration with defaults applied to unset fields
func NewConfigWithDefaults(overrides *Config) *Config {
	defaults := DefaultConfig()
	if overrides == nil {
		return defaults
	}

	config := *overrides
	if config.LogLevel == "" {
		config.LogLevel = defaults.LogLevel
	}
	return &config
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.AssetCacheSize < 0 {
		return errors.New("asset cache size cannot be negative")
	}

	if c.AssetCacheTTL < 0 {
		return errors.New("asset cache TTL cannot be negative")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
		"off":   true,
	}
	if !validLogLevels[c.LogLevel] {
		return errors.New("invalid log level: " + c.LogLevel)
	}

	return nil
}

// GetGlobalConfig returns a copy of the global configuration
func GetGlobalConfig() *Config {
	initGlobalConfig()
	globalConfigMutex.RLock()
	defer globalConfigMutex.RUnlock()

	configCopy := *globalConfig
	return &configCopy
}

// SetGlobalConfig sets the global configuration
func SetGlobalConfig(config *Config) {
	initGlobalConfig()
	globalConfigMutex.Lock()
	globalConfig = config
	globalConfigMutex.Unlock()

	// Update logger based on new config (outside the lock to avoid deadlock)
	UpdateLoggerFromConfig()
}

// parseBool parses a boolean value from a string
func parseBool(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "true" || s == "1" || s == "yes" || s == "on"
}
