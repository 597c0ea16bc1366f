package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/tbuendia/incidentctl/internal/app"
	"github.com/tbuendia/incidentctl/internal/usecase"
)

// newOperatorsCommand creates the operators command group.
func newOperatorsCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "operators",
		Short:   "Manage the operator roster",
		GroupID: groupOperator,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runOperatorList(cmd, c)
		},
	}

	cmd.AddCommand(
		newOperatorListCommand(c),
		newOperatorAddCommand(c),
		newOperatorAvailableCommand(c, true),
		newOperatorAvailableCommand(c, false),
	)
	return cmd
}

func runOperatorList(cmd *cobra.Command, c *app.Container) error {
	uc := c.ListOperatorsUseCase()
	out, err := uc.Execute(cmd.Context())
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 8, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tROLES\tAVAILABLE")
	for _, op := range out.Operators {
		roles := strings.Join(op.Roles, ", ")
		if roles == "" {
			roles = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%t\n", op.ID, op.Name, roles, op.Available)
	}
	return w.Flush()
}

func newOperatorListCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List operators",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runOperatorList(cmd, c)
		},
	}
}

func newOperatorAddCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Name  string
		Roles []string
	}

	cmd := &cobra.Command{
		Use:   "add <id>",
		Short: "Register a new operator",
		Long: `Register a new operator. New operators start available.

Roles decide which incident types an operator may handle:
infrastructure needs admin, network_engineer or system_admin; security
needs security_analyst, admin or incident_responder; application needs
developer, app_support or admin.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			uc := c.AddOperatorUseCase()
			if err := uc.Execute(cmd.Context(), usecase.AddOperatorInput{
				ID:    args[0],
				Name:  opts.Name,
				Roles: opts.Roles,
			}); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added operator %s\n", args[0])
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.Name, "name", "n", "", "Display name (required)")
	cmd.Flags().StringArrayVarP(&opts.Roles, "role", "r", nil, "Roles (can specify multiple)")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newOperatorAvailableCommand(c *app.Container, available bool) *cobra.Command {
	use, short := "available <id>", "Mark an operator available"
	if !available {
		use, short = "unavailable <id>", "Mark an operator unavailable"
	}

	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			uc := c.SetOperatorAvailabilityUseCase()
			if err := uc.Execute(cmd.Context(), usecase.SetOperatorAvailabilityInput{
				OperatorID: args[0],
				Available:  available,
			}); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Operator %s is now available=%t\n", args[0], available)
			return nil
		},
	}
}
