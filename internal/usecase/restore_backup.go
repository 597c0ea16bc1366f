package usecase

import (
	"context"
	"fmt"

	"github.com/tbuendia/incidentctl/internal/repo"
)

// RestoreBackupInput contains the parameters for restoring a backup.
type RestoreBackupInput struct {
	BackupID string
}

// RestoreBackup is the use case for replacing the live collection with a
// backup snapshot. The current state is rotated into a backup first, so a
// restore is itself recoverable.
type RestoreBackup struct {
	incidents *repo.Repository
}

// NewRestoreBackup creates a new RestoreBackup use case.
func NewRestoreBackup(incidents *repo.Repository) *RestoreBackup {
	return &RestoreBackup{incidents: incidents}
}

// Execute restores the backup.
func (uc *RestoreBackup) Execute(_ context.Context, in RestoreBackupInput) error {
	if err := uc.incidents.RestoreBackup(in.BackupID); err != nil {
		return fmt.Errorf("restore backup: %w", err)
	}
	return nil
}
