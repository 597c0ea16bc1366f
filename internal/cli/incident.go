package cli

import (
	"encoding/json"
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/tbuendia/incidentctl/internal/app"
	"github.com/tbuendia/incidentctl/internal/domain"
	"github.com/tbuendia/incidentctl/internal/usecase"
)

const timeFormat = "2006-01-02 15:04:05"

// parseIncidentID parses a positional incident id argument.
func parseIncidentID(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid incident id %q", arg)
	}
	return id, nil
}

// newCreateCommand creates the create command for registering incidents.
func newCreateCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Type     string
		Priority string
	}

	cmd := &cobra.Command{
		Use:     "create <description>",
		Short:   "Register a new incident",
		GroupID: groupIncident,
		Long: `Register a new incident. The incident starts in the pending status.

Examples:
  # Register a high priority infrastructure incident
  incidentctl create --type infrastructure --priority high "router flapping in rack 4"

  # Register a critical security incident
  incidentctl create -t security -p critical "active intrusion on bastion host"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			uc := c.CreateIncidentUseCase()
			out, err := uc.Execute(cmd.Context(), usecase.CreateIncidentInput{
				Type:        domain.IncidentType(opts.Type),
				Priority:    domain.Priority(opts.Priority),
				Description: args[0],
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created incident #%d (%s/%s)\n",
				out.Incident.ID, out.Incident.Type, out.Incident.Priority)
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.Type, "type", "t", "", "Incident type: infrastructure, security, application (required)")
	cmd.Flags().StringVarP(&opts.Priority, "priority", "p", string(domain.PriorityMedium), "Priority: low, medium, high, critical")
	_ = cmd.MarkFlagRequired("type")

	return cmd
}

// newAssignCommand creates the assign command.
func newAssignCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:     "assign <id> <operator>",
		Short:   "Assign an incident to an operator",
		GroupID: groupIncident,
		Long: `Assign an incident to an operator. The operator must be available and
hold a role matching the incident type. A pending or escalated incident
moves to in_progress; an in_progress incident is reassigned.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseIncidentID(args[0])
			if err != nil {
				return err
			}
			uc := c.AssignIncidentUseCase()
			out, err := uc.Execute(cmd.Context(), usecase.AssignIncidentInput{
				IncidentID: id,
				OperatorID: args[1],
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Incident #%d assigned to %s (%s)\n",
				out.Incident.ID, out.Incident.AssignedTo, out.Incident.Status)
			return nil
		},
	}
}

// newTransitionCommand builds a command that moves an incident to a fixed
// target status. All the lifecycle verbs share this shape.
func newTransitionCommand(c *app.Container, use, short string, target domain.Status) *cobra.Command {
	var actor string

	cmd := &cobra.Command{
		Use:     use + " <id>",
		Short:   short,
		GroupID: groupIncident,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseIncidentID(args[0])
			if err != nil {
				return err
			}
			uc := c.TransitionIncidentUseCase()
			out, err := uc.Execute(cmd.Context(), usecase.TransitionIncidentInput{
				IncidentID: id,
				Target:     target,
				Actor:      actor,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Incident #%d is now %s\n", out.Incident.ID, out.Incident.Status)
			return nil
		},
	}

	cmd.Flags().StringVar(&actor, "actor", "", "Actor recorded in the history (default: system)")
	return cmd
}

func newStartCommand(c *app.Container) *cobra.Command {
	return newTransitionCommand(c, "start", "Move an incident to in_progress", domain.StatusInProgress)
}

func newResolveCommand(c *app.Container) *cobra.Command {
	return newTransitionCommand(c, "resolve", "Resolve an incident (terminal)", domain.StatusResolved)
}

func newEscalateCommand(c *app.Container) *cobra.Command {
	return newTransitionCommand(c, "escalate", "Escalate an incident manually", domain.StatusEscalated)
}

func newReopenCommand(c *app.Container) *cobra.Command {
	return newTransitionCommand(c, "reopen", "Re-engage an escalated incident", domain.StatusInProgress)
}

// newShowCommand creates the show command.
func newShowCommand(c *app.Container) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:     "show <id>",
		Short:   "Show an incident with its full history",
		GroupID: groupIncident,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseIncidentID(args[0])
			if err != nil {
				return err
			}
			uc := c.ShowIncidentUseCase()
			out, err := uc.Execute(cmd.Context(), usecase.ShowIncidentInput{IncidentID: id})
			if err != nil {
				return err
			}
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(out.Incident)
			}
			printIncident(cmd, out.Incident)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	return cmd
}

func printIncident(cmd *cobra.Command, inc *domain.Incident) {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 8, 2, ' ', 0)
	fmt.Fprintf(w, "ID:\t#%d\n", inc.ID)
	fmt.Fprintf(w, "Type:\t%s\n", inc.Type)
	fmt.Fprintf(w, "Priority:\t%s\n", inc.Priority)
	fmt.Fprintf(w, "Status:\t%s\n", inc.Status.Display())
	assigned := inc.AssignedTo
	if assigned == "" {
		assigned = "-"
	}
	fmt.Fprintf(w, "Assigned:\t%s\n", assigned)
	fmt.Fprintf(w, "Escalations:\t%d\n", inc.EscalationCount)
	fmt.Fprintf(w, "Created:\t%s\n", inc.CreatedAt.Format(timeFormat))
	fmt.Fprintf(w, "Updated:\t%s\n", inc.UpdatedAt.Format(timeFormat))
	fmt.Fprintf(w, "Description:\t%s\n", inc.Description)
	_ = w.Flush()

	fmt.Fprintln(cmd.OutOrStdout(), "\nHistory:")
	hw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 8, 2, ' ', 0)
	for _, h := range inc.History {
		from := string(h.From)
		if from == "" {
			from = "-"
		}
		fmt.Fprintf(hw, "  %s\t%s -> %s\tby %s\n", h.Time.Format(timeFormat), from, h.To, h.Actor)
	}
	_ = hw.Flush()
}
