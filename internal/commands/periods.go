package commands

import (
	"fmt"

	"github.com/SscSPs/ledger_engine/internal/dto"
	"github.com/spf13/cobra"
)

func newPeriodsCommand(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "periods",
		Short: "Manage accounting periods",
	}
	cmd.AddCommand(newPeriodsListCommand(rt), newPeriodsAddCommand(rt))
	return cmd
}

func newPeriodsListCommand(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List periods ordered by start date",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := rt.container(cmd.Context())
			if err != nil {
				return err
			}
			periods, err := svc.Period.ListPeriods(cmd.Context(), rt.organizationID)
			if err != nil {
				return err
			}
			if rt.jsonOutput {
				return printJSON(cmd.OutOrStdout(), dto.ToPeriodResponses(periods))
			}
			tw := newTable(cmd.OutOrStdout())
			fmt.Fprintln(tw, "NAME\tSTART\tEND\tACTIVE")
			for _, p := range periods {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%t\n", p.Name, p.StartDate.Format(dto.DateLayout), p.EndDate.Format(dto.DateLayout), p.IsActive)
			}
			return tw.Flush()
		},
	}
}

func newPeriodsAddCommand(rt *runtime) *cobra.Command {
	var req dto.CreatePeriodRequest

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Open an accounting period",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := rt.container(cmd.Context())
			if err != nil {
				return err
			}
			p, err := svc.Period.CreatePeriod(cmd.Context(), rt.organizationID, req, rt.userID)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created period %s %s..%s (%s)\n",
				p.Name, p.StartDate.Format(dto.DateLayout), p.EndDate.Format(dto.DateLayout), p.PeriodID)
			return nil
		},
	}

	cmd.Flags().StringVar(&req.Name, "name", "", "period name (required)")
	cmd.Flags().StringVar(&req.StartDate, "start", "", "first day, YYYY-MM-DD (required)")
	cmd.Flags().StringVar(&req.EndDate, "end", "", "last day, YYYY-MM-DD (required)")
	cmd.Flags().BoolVar(&req.IsActive, "active", false, "make this the active period")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")

	return cmd
}
