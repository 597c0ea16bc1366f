// Package storage persists the incident collection to a JSON file with
// timestamped backup rotation and crash-safe atomic writes.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"syscall"
	"time"

	"github.com/tbuendia/incidentctl/internal/domain"
)

const (
	primaryFileName  = "incidents.json"
	backupDirName    = "backups"
	backupPrefix     = "incidents_backup_"
	backupTimeLayout = "20060102_150405"
	backupExt        = ".json"
)

// fileData is the JSON structure of the primary file and its backups.
type fileData struct {
	SavedAt   time.Time          `json:"saved_at"`
	Incidents []*domain.Incident `json:"incidents"`
	Operators []*domain.Operator `json:"operators"`
	NextID    int                `json:"next_id"`
}

// Store implements domain.Store using a JSON file under the data directory.
type Store struct {
	clock      domain.Clock
	dataDir    string
	lockPath   string
	maxBackups int
}

// New creates a Store rooted at dataDir. The directory does not need to
// exist; it is created on first write. maxBackups values below 1 fall back
// to keeping a single backup.
func New(dataDir string, maxBackups int, clock domain.Clock) *Store {
	if maxBackups < 1 {
		maxBackups = 1
	}
	if clock == nil {
		clock = domain.RealClock{}
	}
	return &Store{
		dataDir:    dataDir,
		lockPath:   filepath.Join(dataDir, ".lock"),
		maxBackups: maxBackups,
		clock:      clock,
	}
}

func (s *Store) primaryPath() string {
	return filepath.Join(s.dataDir, primaryFileName)
}

func (s *Store) backupDir() string {
	return filepath.Join(s.dataDir, backupDirName)
}

// Load reads the persisted collection. A missing primary file yields an
// empty collection.
func (s *Store) Load() (*domain.Collection, error) {
	var col *domain.Collection
	err := s.withLock(syscall.LOCK_SH, func() error {
		c, err := s.readCollection(s.primaryPath())
		col = c
		return err
	})
	return col, err
}

// Save writes the full collection durably. The previous primary file is
// copied to a timestamped backup first, the new content is written to a
// temporary sibling and renamed over the primary, then old backups beyond
// the retention limit are pruned.
func (s *Store) Save(c *domain.Collection) error {
	return s.withLock(syscall.LOCK_EX, func() error {
		if err := os.MkdirAll(s.dataDir, 0o750); err != nil {
			return fmt.Errorf("%w: create data directory: %v", domain.ErrPersistence, err)
		}

		if _, err := os.Stat(s.primaryPath()); err == nil {
			if err := s.createBackup(); err != nil {
				return err
			}
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("%w: stat primary file: %v", domain.ErrPersistence, err)
		}

		nextID, incidents, operators := c.Snapshot()
		data := fileData{
			SavedAt:   s.clock.Now(),
			NextID:    nextID,
			Incidents: incidents,
			Operators: operators,
		}
		content, err := json.MarshalIndent(data, "", "  ")
		if err != nil {
			return fmt.Errorf("%w: marshal collection: %v", domain.ErrPersistence, err)
		}

		if err := writeAtomic(s.primaryPath(), content, 0o600); err != nil {
			return err
		}

		return s.pruneBackups()
	})
}

// ListBackups returns the retained backups, most recent first.
func (s *Store) ListBackups() ([]domain.BackupInfo, error) {
	var backups []domain.BackupInfo
	err := s.withLock(syscall.LOCK_SH, func() error {
		var err error
		backups, err = s.listBackups()
		return err
	})
	return backups, err
}

// Restore loads a specific backup, validating its schema like Load.
func (s *Store) Restore(id string) (*domain.Collection, error) {
	if id != filepath.Base(id) || !strings.HasPrefix(id, backupPrefix) {
		return nil, fmt.Errorf("%w: %s", domain.ErrBackupNotFound, id)
	}
	var col *domain.Collection
	err := s.withLock(syscall.LOCK_SH, func() error {
		path := filepath.Join(s.backupDir(), id)
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", domain.ErrBackupNotFound, id)
		}
		c, err := s.readCollection(path)
		col = c
		return err
	})
	return col, err
}

func (s *Store) readCollection(path string) (*domain.Collection, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return domain.NewCollection(), nil
		}
		return nil, fmt.Errorf("%w: read %s: %v", domain.ErrPersistence, filepath.Base(path), err)
	}

	var data fileData
	if err := decodeJSONStrict(content, &data); err != nil {
		return nil, fmt.Errorf("%w: parse %s: %v", domain.ErrCorruptData, filepath.Base(path), err)
	}

	for _, inc := range data.Incidents {
		if err := inc.CheckInvariants(); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrCorruptData, err)
		}
	}
	for _, op := range data.Operators {
		if err := op.CheckInvariants(); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrCorruptData, err)
		}
	}

	col, err := domain.RebuildCollection(data.NextID, data.Incidents, data.Operators)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCorruptData, err)
	}
	return col, nil
}

// createBackup copies the current primary file into the backup directory
// under a timestamped name. Saves within the same second get a numeric
// suffix so rotation accounting stays exact.
func (s *Store) createBackup() error {
	if err := os.MkdirAll(s.backupDir(), 0o750); err != nil {
		return fmt.Errorf("%w: create backup directory: %v", domain.ErrPersistence, err)
	}

	content, err := os.ReadFile(s.primaryPath())
	if err != nil {
		return fmt.Errorf("%w: read primary for backup: %v", domain.ErrPersistence, err)
	}

	stamp := s.clock.Now().Format(backupTimeLayout)
	name := backupPrefix + stamp + backupExt
	path := filepath.Join(s.backupDir(), name)
	for n := 1; ; n++ {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			break
		}
		name = fmt.Sprintf("%s%s_%d%s", backupPrefix, stamp, n, backupExt)
		path = filepath.Join(s.backupDir(), name)
	}

	return writeAtomic(path, content, 0o600)
}

func (s *Store) listBackups() ([]domain.BackupInfo, error) {
	entries, err := os.ReadDir(s.backupDir())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: read backup directory: %v", domain.ErrPersistence, err)
	}

	backups := make([]domain.BackupInfo, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, backupPrefix) || !strings.HasSuffix(name, backupExt) {
			continue
		}
		stamp := strings.TrimSuffix(strings.TrimPrefix(name, backupPrefix), backupExt)
		if len(stamp) > len(backupTimeLayout) {
			stamp = stamp[:len(backupTimeLayout)]
		}
		t, err := time.ParseInLocation(backupTimeLayout, stamp, time.Local)
		if err != nil {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		backups = append(backups, domain.BackupInfo{ID: name, Time: t, Size: info.Size()})
	}

	// Most recent first; the numeric collision suffix sorts later within
	// the same second, so compare by name when times are equal.
	slices.SortFunc(backups, func(a, b domain.BackupInfo) int {
		if !a.Time.Equal(b.Time) {
			if a.Time.After(b.Time) {
				return -1
			}
			return 1
		}
		return strings.Compare(b.ID, a.ID)
	})
	return backups, nil
}

func (s *Store) pruneBackups() error {
	backups, err := s.listBackups()
	if err != nil {
		return err
	}
	for _, old := range backups[min(s.maxBackups, len(backups)):] {
		if err := os.Remove(filepath.Join(s.backupDir(), old.ID)); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("%w: prune backup %s: %v", domain.ErrPersistence, old.ID, err)
		}
	}
	return nil
}

// withLock runs fn under an advisory file lock, guarding against another
// process interleaving a save against the same data directory.
func (s *Store) withLock(lockType int, fn func() error) error {
	if err := os.MkdirAll(s.dataDir, 0o750); err != nil {
		return fmt.Errorf("%w: create data directory: %v", domain.ErrPersistence, err)
	}

	lock, err := os.OpenFile(s.lockPath, os.O_CREATE|os.O_RDWR, 0o600)
	if err != nil {
		return fmt.Errorf("%w: open lock file: %v", domain.ErrPersistence, err)
	}
	defer func() { _ = lock.Close() }()

	if err := syscall.Flock(int(lock.Fd()), lockType); err != nil {
		return fmt.Errorf("%w: acquire lock: %v", domain.ErrPersistence, err)
	}
	defer func() { _ = syscall.Flock(int(lock.Fd()), syscall.LOCK_UN) }()

	return fn()
}

func decodeJSONStrict(content []byte, v any) error {
	dec := json.NewDecoder(strings.NewReader(string(content)))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return err
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return errors.New("unexpected trailing content")
	}
	return nil
}

// writeAtomic writes content to a temporary sibling and renames it into
// place, so a crash mid-write never leaves a half-written file.
func writeAtomic(path string, content []byte, perm os.FileMode) error {
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, content, perm); err != nil {
		return fmt.Errorf("%w: write temp file: %v", domain.ErrPersistence, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("%w: rename temp file: %v", domain.ErrPersistence, err)
	}
	return nil
}

// Ensure Store implements domain.Store.
var _ domain.Store = (*Store)(nil)
