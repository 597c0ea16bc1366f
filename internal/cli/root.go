// Package cli provides the command-line interface for incidentctl.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tbuendia/incidentctl/internal/app"
)

// Command group IDs.
const (
	groupIncident = "incident"
	groupOperator = "operator"
	groupData     = "data"
)

// NewRootCommand creates the root command for incidentctl.
// It receives the container for dependency injection and version for display.
func NewRootCommand(c *app.Container, version string) *cobra.Command {
	root := &cobra.Command{
		Use:   "incidentctl",
		Short: "Incident lifecycle tracking console",
		Long: `incidentctl tracks incidents through their lifecycle: registration,
assignment to operators, resolution and automatic escalation.

State lives in a single JSON file under the data directory, rotated
into timestamped backups on every save. Run without arguments to open
the interactive console.`,
		Version: version,
		// SilenceUsage prevents usage from being printed on errors
		SilenceUsage: true,
		// SilenceErrors prevents Cobra from printing errors (we handle it in main)
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			if c == nil || c.Recovery == nil {
				return
			}
			// Data loss at startup is reported, never silent.
			if c.Recovery.Recovered {
				fmt.Fprintf(cmd.ErrOrStderr(),
					"Warning: primary data file was corrupt, recovered from backup %s\n", c.Recovery.BackupID)
			} else if c.Recovery.StartedEmpty {
				fmt.Fprintln(cmd.ErrOrStderr(),
					"Warning: primary data file was corrupt and no valid backup was found, starting empty")
			}
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			// Default: open the interactive console.
			return runConsole(c)
		},
	}

	root.AddGroup(
		&cobra.Group{ID: groupIncident, Title: "Incident Commands:"},
		&cobra.Group{ID: groupOperator, Title: "Operator Commands:"},
		&cobra.Group{ID: groupData, Title: "Data Commands:"},
	)

	root.AddCommand(
		newCreateCommand(c),
		newAssignCommand(c),
		newStartCommand(c),
		newResolveCommand(c),
		newEscalateCommand(c),
		newReopenCommand(c),
		newShowCommand(c),
		newListCommand(c),
		newSearchCommand(c),
		newStatsCommand(c),
		newSweepCommand(c),
		newExportCommand(c),
		newOperatorsCommand(c),
		newBackupsCommand(c),
	)

	return root
}
