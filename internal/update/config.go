package update

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

type RuntimeConfig struct {
	DBPath               string `toml:"db-path"`
	LogFile              string `toml:"log-file"`
	StatePath            string `toml:"state-file"`
	DesktopNotifications bool   `toml:"desktop-notifications"`
	ReminderPollSeconds  int    `toml:"reminder-poll-seconds"`
	SchedulerBuffer      int    `toml:"scheduler-buffer"`
	BackendTimeoutMillis int    `toml:"backend-timeout-ms"`
}

func DefaultRuntimeConfig() RuntimeConfig {
	dataDir := defaultDataDir()
	return RuntimeConfig{
		DBPath:               filepath.Join(dataDir, "mindflow.db"),
		StatePath:            filepath.Join(dataDir, "ui_state.json"),
		DesktopNotifications: false,
		ReminderPollSeconds:  60,
		SchedulerBuffer:      64,
		BackendTimeoutMillis: 5000,
	}
}

func (c RuntimeConfig) ReminderPollInterval() time.Duration {
	return time.Duration(c.ReminderPollSeconds) * time.Second
}

func (c RuntimeConfig) BackendTimeout() time.Duration {
	return time.Duration(c.BackendTimeoutMillis) * time.Millisecond
}

// DefaultConfigPath is ~/.config/mindflow/config.toml.
func DefaultConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "mindflow", "config.toml"), nil
}

// LoadRuntimeConfig layers defaults, the TOML file and MINDFLOW_* variables.
// A missing file at the default location is fine; an explicit path must exist.
func LoadRuntimeConfig(path string) (RuntimeConfig, error) {
	cfg := DefaultRuntimeConfig()
	explicit := strings.TrimSpace(path) != ""
	if !explicit {
		p, err := DefaultConfigPath()
		if err != nil {
			return RuntimeConfig{}, err
		}
		path = p
	}
	cfg, err := loadConfigFile(path, cfg, explicit)
	if err != nil {
		return RuntimeConfig{}, err
	}
	return RuntimeConfigFromEnv(cfg), nil
}

func loadConfigFile(path string, base RuntimeConfig, mustExist bool) (RuntimeConfig, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) && !mustExist {
		return base, nil
	}
	if err != nil {
		return RuntimeConfig{}, fmt.Errorf("read config file %s: %w", path, err)
	}
	cfg := base
	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return RuntimeConfig{}, fmt.Errorf("parse config file %s: %w", path, err)
	}
	cfg.DBPath = expandHome(cfg.DBPath)
	cfg.LogFile = expandHome(cfg.LogFile)
	cfg.StatePath = expandHome(cfg.StatePath)
	return cfg, nil
}

func RuntimeConfigFromEnv(base RuntimeConfig) RuntimeConfig {
	cfg := base
	if v, ok := getEnvString("MINDFLOW_DB_PATH"); ok {
		cfg.DBPath = expandHome(v)
	}
	if v, ok := getEnvString("MINDFLOW_LOG_FILE"); ok {
		cfg.LogFile = expandHome(v)
	}
	if v, ok := getEnvString("MINDFLOW_STATE_FILE"); ok {
		cfg.StatePath = expandHome(v)
	}
	if v, ok := getEnvBool("MINDFLOW_DESKTOP_NOTIFICATIONS"); ok {
		cfg.DesktopNotifications = v
	}
	if v, ok := getEnvInt("MINDFLOW_REMINDER_POLL_SECONDS"); ok && v > 0 {
		cfg.ReminderPollSeconds = v
	}
	if v, ok := getEnvInt("MINDFLOW_SCHEDULER_BUFFER"); ok && v > 0 {
		cfg.SchedulerBuffer = v
	}
	if v, ok := getEnvInt("MINDFLOW_BACKEND_TIMEOUT_MS"); ok && v > 0 {
		cfg.BackendTimeoutMillis = v
	}
	return cfg
}

func defaultDataDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "mindflow")
	}
	return ".mindflow"
}

func expandHome(p string) string {
	p = strings.TrimSpace(p)
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~"))
}

func getEnvString(name string) (string, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	return raw, raw != ""
}

func getEnvInt(name string) (int, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

func getEnvBool(name string) (bool, bool) {
	raw := strings.TrimSpace(strings.ToLower(os.Getenv(name)))
	if raw == "" {
		return false, false
	}
	switch raw {
	case "1", "true", "yes", "y", "on":
		return true, true
	case "0", "false", "no", "n", "off":
		return false, true
	default:
		return false, false
	}
}
