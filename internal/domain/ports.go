package domain

import "time"

// Store persists the full collection durably.
type Store interface {
	// Load reads the persisted collection. A missing file yields an empty
	// collection; an unparseable or schema-violating file yields an error
	// wrapping ErrCorruptData.
	Load() (*Collection, error)

	// Save writes the full collection atomically, rotating a timestamped
	// backup of the previous primary file first. I/O failures wrap
	// ErrPersistence; a failed save never leaves a partial primary file.
	Save(c *Collection) error

	// ListBackups returns the retained backups, most recent first.
	ListBackups() ([]BackupInfo, error)

	// Restore loads a specific backup, validating like Load.
	Restore(id string) (*Collection, error)
}

// BackupInfo identifies a retained backup snapshot.
// Fields are ordered to minimize memory padding.
type BackupInfo struct {
	Time time.Time // Snapshot creation time
	ID   string    // Backup file name
	Size int64     // File size in bytes
}

// Clock provides time operations for testability.
type Clock interface {
	// Now returns the current time.
	Now() time.Time
}

// RealClock implements Clock using the system clock.
type RealClock struct{}

// Now returns the current time.
func (RealClock) Now() time.Time {
	return time.Now()
}

// Logger writes operational log entries. incidentID 0 means a global entry.
type Logger interface {
	Debug(incidentID int, category, msg string)
	Info(incidentID int, category, msg string)
	Warn(incidentID int, category, msg string)
	Error(incidentID int, category, msg string)
}

// NopLogger discards all log entries.
type NopLogger struct{}

func (NopLogger) Debug(int, string, string) {}
func (NopLogger) Info(int, string, string)  {}
func (NopLogger) Warn(int, string, string)  {}
func (NopLogger) Error(int, string, string) {}
