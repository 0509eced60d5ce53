package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the clipvault configuration
type Config struct {
	// StoreSensitive controls whether sensitive-looking text is stored
	// at all. When true, sensitive entries get a short expiry; when
	// false, they are skipped entirely.
	StoreSensitive bool `yaml:"store_sensitive"`

	// SensitiveTTLSeconds is the expiry applied to sensitive entries.
	SensitiveTTLSeconds int `yaml:"sensitive_ttl_seconds"`

	// MaxHistory bounds the number of retained non-expired entries.
	MaxHistory int `yaml:"max_history"`

	// PollIntervalMS is the clipboard polling cadence.
	PollIntervalMS int `yaml:"poll_interval_ms"`

	// SweepIntervalSeconds is the cadence of the expiry sweep.
	SweepIntervalSeconds int `yaml:"sweep_interval_seconds"`

	// HistoryLocation overrides the database path when non-empty.
	HistoryLocation string `yaml:"history_location,omitempty"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		StoreSensitive:       true,
		SensitiveTTLSeconds:  60,
		MaxHistory:           500,
		PollIntervalMS:       500,
		SweepIntervalSeconds: 60,
	}
}

// SensitiveTTL returns the sensitive-entry expiry as a duration.
func (c *Config) SensitiveTTL() time.Duration {
	return time.Duration(c.SensitiveTTLSeconds) * time.Second
}

// PollInterval returns the polling cadence as a duration.
func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.PollIntervalMS) * time.Millisecond
}

// SweepInterval returns the sweep cadence as a duration.
func (c *Config) SweepInterval() time.Duration {
	return time.Duration(c.SweepIntervalSeconds) * time.Second
}

// ConfigManager manages configuration persistence
type ConfigManager struct {
	configPath string
}

// NewConfigManager creates a manager over the default config path
// (~/.config/clipvault/config.yaml).
func NewConfigManager() (*ConfigManager, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get user home directory: %w", err)
	}

	configPath := filepath.Join(homeDir, ".config", "clipvault", "config.yaml")
	return &ConfigManager{configPath: configPath}, nil
}

// NewConfigManagerWithPath creates a config manager with custom config path
func NewConfigManagerWithPath(configPath string) *ConfigManager {
	return &ConfigManager{configPath: configPath}
}

// Load reads the configuration from file, or returns defaults if the
// file doesn't exist. Fields missing from the file keep their default
// values.
func (cm *ConfigManager) Load() (*Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(cm.configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return config, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := validate(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// Save writes the configuration to file
func (cm *ConfigManager) Save(config *Config) error {
	if err := validate(config); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	configDir := filepath.Dir(cm.configPath)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(cm.configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// validate enforces the configuration bounds.
func validate(config *Config) error {
	if config.SensitiveTTLSeconds < 10 || config.SensitiveTTLSeconds > 86400 {
		return fmt.Errorf("sensitive_ttl_seconds must be between 10 and 86400")
	}
	if config.MaxHistory < 100 || config.MaxHistory > 10000 {
		return fmt.Errorf("max_history must be between 100 and 10000")
	}
	if config.PollIntervalMS <= 0 {
		return fmt.Errorf("poll_interval_ms must be greater than 0")
	}
	if config.SweepIntervalSeconds <= 0 {
		return fmt.Errorf("sweep_interval_seconds must be greater than 0")
	}
	return nil
}

// GetConfigPath returns the path to the config file
func (cm *ConfigManager) GetConfigPath() string {
	return cm.configPath
}

// Update modifies a specific configuration value
func (cm *ConfigManager) Update(key, value string) error {
	config, err := cm.Load()
	if err != nil {
		return err
	}

	switch key {
	case "store-sensitive":
		switch value {
		case "true":
			config.StoreSensitive = true
		case "false":
			config.StoreSensitive = false
		default:
			return fmt.Errorf("invalid boolean value for store-sensitive: %s (must be 'true' or 'false')", value)
		}
	case "sensitive-ttl":
		ttl, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer value for sensitive-ttl: %s", value)
		}
		config.SensitiveTTLSeconds = ttl
	case "max-history":
		limit, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer value for max-history: %s", value)
		}
		config.MaxHistory = limit
	case "poll-interval":
		interval, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer value for poll-interval: %s", value)
		}
		config.PollIntervalMS = interval
	case "sweep-interval":
		interval, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer value for sweep-interval: %s", value)
		}
		config.SweepIntervalSeconds = interval
	case "history-location":
		config.HistoryLocation = value
	default:
		return fmt.Errorf("unknown configuration key: %s", key)
	}

	return cm.Save(config)
}

// Get returns the value for a specific configuration key
func (cm *ConfigManager) Get(key string) (string, error) {
	config, err := cm.Load()
	if err != nil {
		return "", err
	}

	switch key {
	case "store-sensitive":
		return strconv.FormatBool(config.StoreSensitive), nil
	case "sensitive-ttl":
		return strconv.Itoa(config.SensitiveTTLSeconds), nil
	case "max-history":
		return strconv.Itoa(config.MaxHistory), nil
	case "poll-interval":
		return strconv.Itoa(config.PollIntervalMS), nil
	case "sweep-interval":
		return strconv.Itoa(config.SweepIntervalSeconds), nil
	case "history-location":
		if config.HistoryLocation == "" {
			return "[default]", nil
		}
		return config.HistoryLocation, nil
	default:
		return "", fmt.Errorf("unknown configuration key: %s", key)
	}
}

// List returns all configuration keys and values
func (cm *ConfigManager) List() (map[string]string, error) {
	config, err := cm.Load()
	if err != nil {
		return nil, err
	}

	result := map[string]string{
		"store-sensitive":  strconv.FormatBool(config.StoreSensitive),
		"sensitive-ttl":    strconv.Itoa(config.SensitiveTTLSeconds),
		"max-history":      strconv.Itoa(config.MaxHistory),
		"poll-interval":    strconv.Itoa(config.PollIntervalMS),
		"sweep-interval":   strconv.Itoa(config.SweepIntervalSeconds),
		"history-location": config.HistoryLocation,
	}

	if result["history-location"] == "" {
		result["history-location"] = "[default]"
	}

	return result, nil
}
