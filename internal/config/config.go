package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Watch  WatchConfig  `yaml:"watch"`
	Server ServerConfig `yaml:"server"`
	// PIDFile is the singleton marker preventing a second dashboard
	// instance. The launcher checks liveness of the recorded PID.
	PIDFile string `yaml:"pid_file"`
	// LogFile receives log output while the TUI owns the terminal.
	LogFile string `yaml:"log_file"`
}

type WatchConfig struct {
	// ClaudeDir is the root of the assistant's state directory; session
	// logs live under <ClaudeDir>/projects.
	ClaudeDir       string        `yaml:"claude_dir"`
	TickRate        time.Duration `yaml:"tick_rate"`
	ScanEveryTicks  int           `yaml:"scan_every_ticks"`
	FreshnessWindow time.Duration `yaml:"freshness_window"`
	DormantAfter    time.Duration `yaml:"dormant_after"`
	SummaryMaxChars int           `yaml:"summary_max_chars"`
}

type ServerConfig struct {
	Enabled           bool          `yaml:"enabled"`
	Host              string        `yaml:"host"`
	Port              int           `yaml:"port"`
	BroadcastThrottle time.Duration `yaml:"broadcast_throttle"`
}

// Default returns the configuration used when no config file is given.
func Default() *Config {
	claudeDir := ".claude"
	if home, err := os.UserHomeDir(); err == nil {
		claudeDir = filepath.Join(home, ".claude")
	}
	return &Config{
		Watch: WatchConfig{
			ClaudeDir:       claudeDir,
			TickRate:        100 * time.Millisecond,
			ScanEveryTicks:  20,
			FreshnessWindow: 5 * time.Minute,
			DormantAfter:    5 * time.Minute,
			SummaryMaxChars: 150,
		},
		Server: ServerConfig{
			Enabled:           false,
			Host:              "127.0.0.1",
			Port:              8321,
			BroadcastThrottle: 100 * time.Millisecond,
		},
		PIDFile: filepath.Join(os.TempDir(), "pixel-agents.pid"),
		LogFile: filepath.Join(os.TempDir(), "pixel-agents.log"),
	}
}

// Load reads a YAML config file over the defaults. An empty path means
// no config file; the defaults are returned as-is.
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Addr returns the host:port string for the snapshot server.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
