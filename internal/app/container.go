// Package app provides the dependency injection container for the application.
package app

import (
	"fmt"
	"os"

	"github.com/tbuendia/incidentctl/internal/domain"
	"github.com/tbuendia/incidentctl/internal/escalation"
	"github.com/tbuendia/incidentctl/internal/infra/config"
	"github.com/tbuendia/incidentctl/internal/infra/logging"
	"github.com/tbuendia/incidentctl/internal/infra/storage"
	"github.com/tbuendia/incidentctl/internal/repo"
	"github.com/tbuendia/incidentctl/internal/usecase"
)

// dataDirEnv overrides the configured data directory when set.
const dataDirEnv = "INCIDENTCTL_DATA"

// Container provides dependency injection for the application.
// It holds all port implementations and provides factory methods for use cases.
type Container struct {
	Incidents *repo.Repository
	Store     domain.Store
	Clock     domain.Clock
	Logger    *logging.Logger
	Policy    *escalation.Policy
	Config    *domain.Config

	// Recovery describes what happened if the primary data file could not
	// be loaded cleanly at startup.
	Recovery *repo.RecoveryReport
}

// New creates a new Container rooted at the given data directory. An empty
// dir resolves to the INCIDENTCTL_DATA environment variable and then the
// configured default.
func New(dir string) (*Container, error) {
	if dir == "" {
		dir = os.Getenv(dataDirEnv)
	}

	// The config loader needs a directory before the config names one:
	// resolve against the default when the caller gave nothing.
	probe := dir
	if probe == "" {
		probe = domain.NewDefaultConfig().Storage.Dir
	}
	cfg, err := config.NewLoader(probe).Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if dir == "" {
		dir = cfg.Storage.Dir
	}

	logger := logging.New(dir, logging.ParseLevel(cfg.Log.Level))
	clock := domain.RealClock{}
	store := storage.New(dir, cfg.Storage.MaxBackups, clock)

	incidents, recovery, err := repo.Open(store, clock, logger)
	if err != nil {
		_ = logger.Close()
		return nil, fmt.Errorf("open incident repository: %w", err)
	}

	return &Container{
		Incidents: incidents,
		Store:     store,
		Clock:     clock,
		Logger:    logger,
		Policy:    escalation.NewPolicy(cfg.Escalation, logger),
		Config:    cfg,
		Recovery:  recovery,
	}, nil
}

// NewWithDeps creates a Container with custom dependencies for testing.
func NewWithDeps(cfg *domain.Config, incidents *repo.Repository, store domain.Store, clock domain.Clock) *Container {
	return &Container{
		Incidents: incidents,
		Store:     store,
		Clock:     clock,
		Policy:    escalation.NewPolicy(cfg.Escalation, nil),
		Config:    cfg,
		Recovery:  &repo.RecoveryReport{},
	}
}

// Close releases resources held by the container.
func (c *Container) Close() error {
	if c.Logger != nil {
		return c.Logger.Close()
	}
	return nil
}

// UseCase factory methods

// CreateIncidentUseCase returns a new CreateIncident use case.
func (c *Container) CreateIncidentUseCase() *usecase.CreateIncident {
	return usecase.NewCreateIncident(c.Incidents)
}

// AssignIncidentUseCase returns a new AssignIncident use case.
func (c *Container) AssignIncidentUseCase() *usecase.AssignIncident {
	return usecase.NewAssignIncident(c.Incidents)
}

// TransitionIncidentUseCase returns a new TransitionIncident use case.
func (c *Container) TransitionIncidentUseCase() *usecase.TransitionIncident {
	return usecase.NewTransitionIncident(c.Incidents)
}

// ListIncidentsUseCase returns a new ListIncidents use case.
func (c *Container) ListIncidentsUseCase() *usecase.ListIncidents {
	return usecase.NewListIncidents(c.Incidents)
}

// ShowIncidentUseCase returns a new ShowIncident use case.
func (c *Container) ShowIncidentUseCase() *usecase.ShowIncident {
	return usecase.NewShowIncident(c.Incidents)
}

// ShowStatisticsUseCase returns a new ShowStatistics use case.
func (c *Container) ShowStatisticsUseCase() *usecase.ShowStatistics {
	return usecase.NewShowStatistics(c.Incidents)
}

// SweepEscalationsUseCase returns a new SweepEscalations use case.
func (c *Container) SweepEscalationsUseCase() *usecase.SweepEscalations {
	return usecase.NewSweepEscalations(c.Incidents, c.Policy, c.Clock)
}

// ExportIncidentsUseCase returns a new ExportIncidents use case.
func (c *Container) ExportIncidentsUseCase() *usecase.ExportIncidents {
	return usecase.NewExportIncidents(c.Incidents)
}

// AddOperatorUseCase returns a new AddOperator use case.
func (c *Container) AddOperatorUseCase() *usecase.AddOperator {
	return usecase.NewAddOperator(c.Incidents)
}

// SetOperatorAvailabilityUseCase returns a new SetOperatorAvailability use case.
func (c *Container) SetOperatorAvailabilityUseCase() *usecase.SetOperatorAvailability {
	return usecase.NewSetOperatorAvailability(c.Incidents)
}

// ListOperatorsUseCase returns a new ListOperators use case.
func (c *Container) ListOperatorsUseCase() *usecase.ListOperators {
	return usecase.NewListOperators(c.Incidents)
}

// ListBackupsUseCase returns a new ListBackups use case.
func (c *Container) ListBackupsUseCase() *usecase.ListBackups {
	return usecase.NewListBackups(c.Incidents)
}

// RestoreBackupUseCase returns a new RestoreBackup use case.
func (c *Container) RestoreBackupUseCase() *usecase.RestoreBackup {
	return usecase.NewRestoreBackup(c.Incidents)
}
