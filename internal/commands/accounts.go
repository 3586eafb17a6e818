package commands

import (
	"fmt"
	"strings"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/SscSPs/ledger_engine/internal/dto"
	"github.com/spf13/cobra"
)

func newAccountsCommand(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "accounts",
		Short: "Manage the chart of accounts",
	}
	cmd.AddCommand(newAccountsListCommand(rt), newAccountsAddCommand(rt))
	return cmd
}

func newAccountsListCommand(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List accounts ordered by code",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := rt.container(cmd.Context())
			if err != nil {
				return err
			}
			accounts, err := svc.Account.ListAccounts(cmd.Context(), rt.organizationID)
			if err != nil {
				return err
			}
			if rt.jsonOutput {
				return printJSON(cmd.OutOrStdout(), dto.ToListAccountsResponse(accounts))
			}
			tw := newTable(cmd.OutOrStdout())
			fmt.Fprintln(tw, "CODE\tNAME\tTYPE\tACTIVE")
			for _, acc := range accounts {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%t\n", acc.Code, acc.Name, acc.AccountType, acc.IsActive)
			}
			return tw.Flush()
		},
	}
}

func newAccountsAddCommand(rt *runtime) *cobra.Command {
	var req dto.CreateAccountRequest
	var accountType, parentCode string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := rt.container(cmd.Context())
			if err != nil {
				return err
			}
			req.AccountType = domain.AccountType(strings.ToUpper(accountType))
			if parentCode != "" {
				accounts, err := svc.Account.ListAccounts(cmd.Context(), rt.organizationID)
				if err != nil {
					return err
				}
				for _, acc := range accounts {
					if acc.Code == parentCode {
						req.ParentAccountID = acc.AccountID
					}
				}
				if req.ParentAccountID == "" {
					return fmt.Errorf("parent account %s not found", parentCode)
				}
			}
			acc, err := svc.Account.CreateAccount(cmd.Context(), rt.organizationID, req, rt.userID)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created account %s %s (%s)\n", acc.Code, acc.Name, acc.AccountID)
			return nil
		},
	}

	cmd.Flags().StringVar(&req.Code, "code", "", "account code (required)")
	cmd.Flags().StringVar(&req.Name, "name", "", "account name (required)")
	cmd.Flags().StringVar(&accountType, "type", "", "ASSET, LIABILITY, EQUITY, REVENUE or EXPENSE (required)")
	cmd.Flags().StringVar(&parentCode, "parent", "", "code of the parent account")
	cmd.Flags().StringVar(&req.Description, "description", "", "free text description")
	_ = cmd.MarkFlagRequired("code")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("type")

	return cmd
}
