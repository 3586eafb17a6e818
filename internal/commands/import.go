package commands

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/SscSPs/ledger_engine/internal/dto"
	"github.com/SscSPs/ledger_engine/internal/importer"
	"github.com/spf13/cobra"
)

func newImportCommand(rt *runtime) *cobra.Command {
	var status string

	cmd := &cobra.Command{
		Use:   "import <file.csv>",
		Short: "Import journal entries from a CSV file",
		Long: "Reads date, debit_account, credit_account, amount and description columns.\n" +
			"Accounts may be given by code or name. Nothing is committed unless every row is valid.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("opening %s: %w", args[0], err)
			}
			defer f.Close()

			records, err := importer.ReadRecords(f)
			if err != nil {
				return fmt.Errorf("reading %s: %w", args[0], err)
			}

			svc, err := rt.container(cmd.Context())
			if err != nil {
				return err
			}
			opts := domain.ImportOptions{Status: domain.JournalStatus(strings.ToUpper(status))}
			result, err := svc.Import.ImportJournalEntries(cmd.Context(), rt.organizationID, rt.userID, records, opts)

			out := cmd.OutOrStdout()
			var importErr *apperrors.ImportError
			if errors.As(err, &importErr) && result != nil {
				if rt.jsonOutput {
					_ = printJSON(out, dto.ToImportResponse(result, err))
					return err
				}
				tw := newTable(out)
				fmt.Fprintln(tw, "ROW\tFIELD\tCODE\tMESSAGE")
				for _, re := range result.Errors {
					// Row 1 is the header.
					fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", re.Index+2, re.Field, re.Code, re.Message)
				}
				_ = tw.Flush()
				return err
			}
			if err != nil {
				return err
			}

			if rt.jsonOutput {
				return printJSON(out, dto.ToImportResponse(result, nil))
			}
			total := domain.ZeroMoney
			for _, e := range result.Entries {
				total = total.Add(e.TotalDebit())
			}
			fmt.Fprintf(out, "imported %d entries totalling %s\n", len(result.Entries), total.Display(rt.currency))
			return nil
		},
	}

	cmd.Flags().StringVar(&status, "status", string(domain.Draft), "status of the imported entries, DRAFT or APPROVED")
	return cmd
}
