package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/tbuendia/incidentctl/internal/app"
	"github.com/tbuendia/incidentctl/internal/usecase"
)

// newBackupsCommand creates the backups command group.
func newBackupsCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "backups",
		Short:   "Manage data file backups",
		GroupID: groupData,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBackupList(cmd, c)
		},
	}

	cmd.AddCommand(
		newBackupListCommand(c),
		newBackupRestoreCommand(c),
	)
	return cmd
}

func runBackupList(cmd *cobra.Command, c *app.Container) error {
	uc := c.ListBackupsUseCase()
	out, err := uc.Execute(cmd.Context())
	if err != nil {
		return err
	}
	if len(out.Backups) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No backups")
		return nil
	}
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 8, 2, ' ', 0)
	fmt.Fprintln(w, "BACKUP\tTIME\tSIZE")
	for _, b := range out.Backups {
		fmt.Fprintf(w, "%s\t%s\t%d\n", b.ID, b.Time.Format(timeFormat), b.Size)
	}
	return w.Flush()
}

func newBackupListCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List retained backups, most recent first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBackupList(cmd, c)
		},
	}
}

func newBackupRestoreCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "restore <backup>",
		Short: "Restore the collection from a backup",
		Long: `Replace the live collection with a backup snapshot. The current state
is rotated into a backup first, so a restore can itself be undone.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			uc := c.RestoreBackupUseCase()
			if err := uc.Execute(cmd.Context(), usecase.RestoreBackupInput{BackupID: args[0]}); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Restored from %s\n", args[0])
			return nil
		},
	}
}
