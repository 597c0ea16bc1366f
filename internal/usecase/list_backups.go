package usecase

import (
	"context"
	"fmt"

	"github.com/tbuendia/incidentctl/internal/domain"
	"github.com/tbuendia/incidentctl/internal/repo"
)

// ListBackupsOutput contains the retained backups, most recent first.
type ListBackupsOutput struct {
	Backups []domain.BackupInfo
}

// ListBackups is the use case for listing the retained backup snapshots.
type ListBackups struct {
	incidents *repo.Repository
}

// NewListBackups creates a new ListBackups use case.
func NewListBackups(incidents *repo.Repository) *ListBackups {
	return &ListBackups{incidents: incidents}
}

// Execute lists the backups.
func (uc *ListBackups) Execute(_ context.Context) (*ListBackupsOutput, error) {
	backups, err := uc.incidents.ListBackups()
	if err != nil {
		return nil, fmt.Errorf("list backups: %w", err)
	}
	return &ListBackupsOutput{Backups: backups}, nil
}
