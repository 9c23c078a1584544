package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/p-doom/crowd-cast/internal/logger"
	"gopkg.in/yaml.v3"
)

// Config represents the daemon configuration
type Config struct {
	ServerPort         int      `json:"server_port" yaml:"server_port"`
	LogLevel           string   `json:"log_level" yaml:"log_level"`
	PollIntervalMs     int      `json:"poll_interval_ms" yaml:"poll_interval_ms"`
	MaxTrackedSources  int      `json:"max_tracked_sources" yaml:"max_tracked_sources"`
	ExtraSuggestedApps []string `json:"extra_suggested_apps" yaml:"extra_suggested_apps,omitempty"`
}

// Manager handles configuration loading and persistence
type Manager struct {
	configPath string
	config     *Config
	mu         sync.RWMutex
}

// NewManager creates a new configuration manager. If configFile is empty,
// the default path under the user config directory is used and created on
// first run.
func NewManager(configFile string) (*Manager, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get home directory: %w", err)
	}

	configDir := filepath.Join(homeDir, ".config", "crowdcast")
	actualConfigPath := filepath.Join(configDir, "config.yaml")
	if configFile != "" {
		actualConfigPath = configFile
	}

	if err := os.MkdirAll(filepath.Dir(actualConfigPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	m := &Manager{
		configPath: actualConfigPath,
	}

	if err := m.load(); err != nil {
		if os.IsNotExist(err) {
			logger.WithComponent("config").Info().
				Str("path", m.configPath).
				Msg("Config file not found, creating new config")
			m.config = getDefaults()
			if err := m.Save(); err != nil {
				return nil, fmt.Errorf("failed to create default config: %w", err)
			}
		} else {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	logger.WithComponent("config").Info().
		Str("path", m.configPath).
		Int("port", m.config.ServerPort).
		Msg("Config loaded")

	return m, nil
}

func getDefaults() *Config {
	return &Config{
		ServerPort:        8799,
		LogLevel:          "info",
		PollIntervalMs:    200,
		MaxTrackedSources: 64,
	}
}

func (m *Manager) load() error {
	data, err := os.ReadFile(m.configPath)
	if err != nil {
		return err
	}

	cfg := getDefaults()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	// Guard against unusable values from hand-edited files
	if cfg.ServerPort <= 0 {
		cfg.ServerPort = getDefaults().ServerPort
	}
	if cfg.PollIntervalMs <= 0 {
		cfg.PollIntervalMs = getDefaults().PollIntervalMs
	}
	if cfg.MaxTrackedSources <= 0 {
		cfg.MaxTrackedSources = getDefaults().MaxTrackedSources
	}

	m.mu.Lock()
	m.config = cfg
	m.mu.Unlock()
	return nil
}

// Get returns a copy of the current configuration
func (m *Manager) Get() Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return *m.config
}

// Save writes the configuration to disk
func (m *Manager) Save() error {
	m.mu.RLock()
	data, err := yaml.Marshal(m.config)
	m.mu.RUnlock()
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(m.configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// SetPort sets the server port
func (m *Manager) SetPort(port int) error {
	m.mu.Lock()
	m.config.ServerPort = port
	m.mu.Unlock()
	return m.Save()
}

// GetPort returns the server port
func (m *Manager) GetPort() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.config.ServerPort
}

// SetLogLevel sets the log level
func (m *Manager) SetLogLevel(level string) error {
	m.mu.Lock()
	m.config.LogLevel = level
	m.mu.Unlock()
	return m.Save()
}

// GetLogLevel returns the log level
func (m *Manager) GetLogLevel() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.config.LogLevel
}

// SetPollInterval sets the poll interval in milliseconds
func (m *Manager) SetPollInterval(ms int) error {
	m.mu.Lock()
	m.config.PollIntervalMs = ms
	m.mu.Unlock()
	return m.Save()
}

// PollInterval returns the poll interval as a duration
func (m *Manager) PollInterval() time.Duration {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return time.Duration(m.config.PollIntervalMs) * time.Millisecond
}

// GetConfigPath returns the config file path
func (m *Manager) GetConfigPath() string {
	return m.configPath
}
