package cli

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"github.com/tbuendia/incidentctl/internal/app"
	"github.com/tbuendia/incidentctl/internal/domain"
	"github.com/tbuendia/incidentctl/internal/usecase"
)

// listOptions are the shared filter flags for list, search and export.
type listOptions struct {
	Status   string
	Priority string
	Type     string
	Operator string
	Since    string
	Until    string
}

func (o *listOptions) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.Status, "status", "s", "", "Filter by status: pending, in_progress, resolved, escalated")
	cmd.Flags().StringVarP(&o.Priority, "priority", "p", "", "Filter by priority: low, medium, high, critical")
	cmd.Flags().StringVarP(&o.Type, "type", "t", "", "Filter by type: infrastructure, security, application")
	cmd.Flags().StringVarP(&o.Operator, "operator", "o", "", "Filter by assigned operator")
	cmd.Flags().StringVar(&o.Since, "since", "", "Only incidents created at or after this time (RFC 3339 or 2006-01-02)")
	cmd.Flags().StringVar(&o.Until, "until", "", "Only incidents created at or before this time (RFC 3339 or 2006-01-02)")
}

func parseTimeFlag(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid time %q", value)
}

func (o *listOptions) filter(text string) (domain.Filter, error) {
	since, err := parseTimeFlag(o.Since)
	if err != nil {
		return domain.Filter{}, err
	}
	until, err := parseTimeFlag(o.Until)
	if err != nil {
		return domain.Filter{}, err
	}
	return domain.Filter{
		Status:     domain.Status(o.Status),
		Priority:   domain.Priority(o.Priority),
		Type:       domain.IncidentType(o.Type),
		AssignedTo: o.Operator,
		Text:       text,
		Since:      since,
		Until:      until,
	}, nil
}

func printIncidentTable(cmd *cobra.Command, incidents []*domain.Incident) {
	if len(incidents) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No incidents found")
		return
	}
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 8, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTYPE\tPRIORITY\tSTATUS\tASSIGNED\tUPDATED\tDESCRIPTION")
	for _, inc := range incidents {
		assigned := inc.AssignedTo
		if assigned == "" {
			assigned = "-"
		}
		desc := inc.Description
		if len(desc) > 48 {
			desc = desc[:45] + "..."
		}
		fmt.Fprintf(w, "#%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
			inc.ID, inc.Type, inc.Priority, inc.Status, assigned,
			inc.UpdatedAt.Format(timeFormat), desc)
	}
	_ = w.Flush()
}

func runList(cmd *cobra.Command, c *app.Container, f domain.Filter, asJSON bool) error {
	uc := c.ListIncidentsUseCase()
	out, err := uc.Execute(cmd.Context(), usecase.ListIncidentsInput{Filter: f})
	if err != nil {
		return err
	}
	if asJSON {
		incidents := out.Incidents
		if incidents == nil {
			incidents = []*domain.Incident{}
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(incidents)
	}
	printIncidentTable(cmd, out.Incidents)
	return nil
}

// newListCommand creates the list command.
func newListCommand(c *app.Container) *cobra.Command {
	var opts listOptions
	var asJSON bool

	cmd := &cobra.Command{
		Use:     "list",
		Short:   "List incidents in creation order",
		GroupID: groupIncident,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := opts.filter("")
			if err != nil {
				return err
			}
			return runList(cmd, c, f, asJSON)
		},
	}

	opts.register(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	return cmd
}

// newSearchCommand creates the search command.
func newSearchCommand(c *app.Container) *cobra.Command {
	var opts listOptions
	var asJSON bool

	cmd := &cobra.Command{
		Use:     "search <pattern>",
		Short:   "Search incident descriptions",
		GroupID: groupIncident,
		Long: `Search incident descriptions with a case-insensitive regular
expression. An invalid pattern falls back to a literal substring match.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := opts.filter(args[0])
			if err != nil {
				return err
			}
			return runList(cmd, c, f, asJSON)
		},
	}

	opts.register(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	return cmd
}

// newStatsCommand creates the stats command.
func newStatsCommand(c *app.Container) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:     "stats",
		Short:   "Show aggregate incident counters",
		GroupID: groupIncident,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			uc := c.ShowStatisticsUseCase()
			out, err := uc.Execute(cmd.Context())
			if err != nil {
				return err
			}
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(out.Statistics)
			}
			printStatistics(cmd, out.Statistics)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	return cmd
}

func printStatistics(cmd *cobra.Command, stats domain.Statistics) {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 8, 2, ' ', 0)
	fmt.Fprintf(w, "Total incidents:\t%d\n", stats.Total)
	fmt.Fprintln(w, "\nBy status:")
	for _, s := range domain.AllStatuses() {
		fmt.Fprintf(w, "  %s\t%d\n", s, stats.ByStatus[s])
	}
	fmt.Fprintln(w, "\nBy priority:")
	for _, p := range domain.AllPriorities() {
		fmt.Fprintf(w, "  %s\t%d\n", p, stats.ByPriority[p])
	}
	fmt.Fprintln(w, "\nBy type:")
	for _, t := range domain.AllIncidentTypes() {
		fmt.Fprintf(w, "  %s\t%d\n", t, stats.ByType[t])
	}
	fmt.Fprintf(w, "\nOperators:\t%d (%d available)\n", stats.OperatorsTotal, stats.OperatorsAvailable)
	_ = w.Flush()
}

// newExportCommand creates the export command.
func newExportCommand(c *app.Container) *cobra.Command {
	var opts listOptions
	var format string

	cmd := &cobra.Command{
		Use:     "export",
		Short:   "Export incidents as JSON or YAML",
		GroupID: groupData,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := opts.filter("")
			if err != nil {
				return err
			}
			uc := c.ExportIncidentsUseCase()
			out, err := uc.Execute(cmd.Context(), usecase.ExportIncidentsInput{
				Filter: f,
				Format: usecase.ExportFormat(format),
			})
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(out.Data)
			return err
		},
	}

	opts.register(cmd)
	cmd.Flags().StringVarP(&format, "format", "f", "json", "Export format: json, yaml")
	return cmd
}

// newSweepCommand creates the sweep command.
func newSweepCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:     "sweep",
		Short:   "Run the automatic escalation policy",
		GroupID: groupIncident,
		Long: `Evaluate the escalation policy against every active incident and
escalate the ones that are due: incidents not updated within their
priority's age threshold, and unassigned critical incidents past the
grace period.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			uc := c.SweepEscalationsUseCase()
			out, err := uc.Execute(cmd.Context())
			if err != nil {
				return err
			}
			if len(out.EscalatedIDs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No incidents due for escalation")
				return nil
			}
			for _, id := range out.EscalatedIDs {
				fmt.Fprintf(cmd.OutOrStdout(), "Escalated incident #%d\n", id)
			}
			return nil
		},
	}
}
