package domain

import "time"

// ConfigFileName is the configuration file looked up in the data directory
// and in the global config directory.
const ConfigFileName = "incidentctl.toml"

// Duration is a time.Duration that unmarshals from TOML strings like "30m".
type Duration time.Duration

// UnmarshalText parses a duration string.
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

// MarshalText renders the duration string.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// Config represents the application configuration.
type Config struct {
	Storage    StorageConfig    `toml:"storage"`
	Escalation EscalationConfig `toml:"escalation"`
	Log        LogConfig        `toml:"log"`
}

// StorageConfig holds persistence settings from [storage].
type StorageConfig struct {
	Dir        string `toml:"dir"`         // Data directory (primary file, backups, logs)
	MaxBackups int    `toml:"max_backups"` // Retained backup count
}

// EscalationConfig holds the automatic escalation policy from [escalation].
// Thresholds apply to the time since the incident was last updated;
// shorter thresholds for higher priorities.
type EscalationConfig struct {
	Critical      Duration `toml:"critical"`
	High          Duration `toml:"high"`
	Medium        Duration `toml:"medium"`
	Low           Duration `toml:"low"`
	CriticalGrace Duration `toml:"critical_grace"` // Unassigned-critical fast path
	SweepOnStart  bool     `toml:"sweep_on_start"` // Run the sweep when the console opens
}

// Threshold returns the age threshold for the given priority.
func (e EscalationConfig) Threshold(p Priority) time.Duration {
	switch p {
	case PriorityCritical:
		return time.Duration(e.Critical)
	case PriorityHigh:
		return time.Duration(e.High)
	case PriorityMedium:
		return time.Duration(e.Medium)
	default:
		return time.Duration(e.Low)
	}
}

// LogConfig holds logging settings from [log].
type LogConfig struct {
	Level string `toml:"level"` // debug, info, warn, error
}

// NewDefaultConfig returns the built-in configuration defaults.
func NewDefaultConfig() *Config {
	return &Config{
		Storage: StorageConfig{
			Dir:        "data",
			MaxBackups: 5,
		},
		Escalation: EscalationConfig{
			Critical:      Duration(15 * time.Minute),
			High:          Duration(30 * time.Minute),
			Medium:        Duration(2 * time.Hour),
			Low:           Duration(8 * time.Hour),
			CriticalGrace: Duration(1 * time.Minute),
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}
