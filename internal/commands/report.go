package commands

import (
	"fmt"
	"time"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/SscSPs/ledger_engine/internal/core/ledger"
	"github.com/SscSPs/ledger_engine/internal/dto"
	"github.com/spf13/cobra"
)

func newReportCommand(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Generate financial statements",
	}
	cmd.AddCommand(
		newBalanceSheetCommand(rt),
		newIncomeStatementCommand(rt),
		newTrialBalanceCommand(rt),
		newCashFlowCommand(rt),
		newRatiosCommand(rt),
		newLedgerBookCommand(rt),
	)
	return cmd
}

// rangeFlags binds --from and --to. Both default to the current year.
type rangeFlags struct {
	from, to string
}

func (f *rangeFlags) bind(cmd *cobra.Command) {
	now := time.Now()
	cmd.Flags().StringVar(&f.from, "from", ledger.YearStart(now).Format(dto.DateLayout), "first day, YYYY-MM-DD")
	cmd.Flags().StringVar(&f.to, "to", now.Format(dto.DateLayout), "last day, YYYY-MM-DD")
}

func (f *rangeFlags) parse() (time.Time, time.Time, error) {
	return dto.ParseDateRange(f.from, f.to)
}

func bindAsOf(cmd *cobra.Command, asOf *string) {
	cmd.Flags().StringVar(asOf, "as-of", time.Now().Format(dto.DateLayout), "report date, YYYY-MM-DD")
}

func newBalanceSheetCommand(rt *runtime) *cobra.Command {
	var asOf string
	var flat bool

	cmd := &cobra.Command{
		Use:   "balance-sheet",
		Short: "Assets, liabilities and equity as of a date",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := dto.ParseDate("as-of", asOf)
			if err != nil {
				return err
			}
			svc, err := rt.container(cmd.Context())
			if err != nil {
				return err
			}
			report, err := svc.Reporting.ComputeBalanceSheet(cmd.Context(), rt.organizationID, date, ledger.TreeOptions{Flat: flat})
			if err != nil {
				return err
			}
			if rt.jsonOutput {
				return printJSON(cmd.OutOrStdout(), report)
			}

			tw := newTable(cmd.OutOrStdout())
			fmt.Fprintf(tw, "Balance sheet as of %s\t\n", date.Format(dto.DateLayout))
			printSection(tw, report.Assets, rt.currency)
			printSection(tw, report.Liabilities, rt.currency)
			printSection(tw, report.Equity, rt.currency)
			fmt.Fprintf(tw, "  Current earnings\t%s\n", report.NetIncome.Display(rt.currency))
			fmt.Fprintf(tw, "TOTAL ASSETS\t%s\n", report.TotalAssets.Display(rt.currency))
			fmt.Fprintf(tw, "TOTAL LIABILITIES AND EQUITY\t%s\n", report.TotalLiabilitiesAndEquity.Display(rt.currency))
			if !report.IsBalanced {
				fmt.Fprintln(tw, "WARNING: balance sheet does not balance\t")
			}
			return tw.Flush()
		},
	}
	bindAsOf(cmd, &asOf)
	cmd.Flags().BoolVar(&flat, "flat", false, "list accounts without nesting")
	return cmd
}

func newIncomeStatementCommand(rt *runtime) *cobra.Command {
	var rng rangeFlags
	var flat bool

	cmd := &cobra.Command{
		Use:   "income-statement",
		Short: "Revenue and expenses over a date range",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			start, end, err := rng.parse()
			if err != nil {
				return err
			}
			svc, err := rt.container(cmd.Context())
			if err != nil {
				return err
			}
			report, err := svc.Reporting.ComputeIncomeStatement(cmd.Context(), rt.organizationID, start, end, ledger.TreeOptions{Flat: flat})
			if err != nil {
				return err
			}
			if rt.jsonOutput {
				return printJSON(cmd.OutOrStdout(), report)
			}

			tw := newTable(cmd.OutOrStdout())
			fmt.Fprintf(tw, "Income statement %s to %s\t\n", rng.from, rng.to)
			printSection(tw, report.Revenue, rt.currency)
			printSection(tw, report.Expenses, rt.currency)
			fmt.Fprintf(tw, "GROSS PROFIT\t%s\n", report.GrossProfit.Display(rt.currency))
			fmt.Fprintf(tw, "NET INCOME\t%s\n", report.NetIncome.Display(rt.currency))
			return tw.Flush()
		},
	}
	rng.bind(cmd)
	cmd.Flags().BoolVar(&flat, "flat", false, "list accounts without nesting")
	return cmd
}

func newTrialBalanceCommand(rt *runtime) *cobra.Command {
	var asOf string

	cmd := &cobra.Command{
		Use:   "trial-balance",
		Short: "Debit and credit balances of every account as of a date",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := dto.ParseDate("as-of", asOf)
			if err != nil {
				return err
			}
			svc, err := rt.container(cmd.Context())
			if err != nil {
				return err
			}
			report, err := svc.Reporting.ComputeTrialBalance(cmd.Context(), rt.organizationID, date)
			if err != nil {
				return err
			}
			if rt.jsonOutput {
				return printJSON(cmd.OutOrStdout(), report)
			}

			tw := newTable(cmd.OutOrStdout())
			fmt.Fprintln(tw, "CODE\tACCOUNT\tDEBIT\tCREDIT")
			for _, row := range report.Rows {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", row.Code, row.AccountName, row.Debit.Display(rt.currency), row.Credit.Display(rt.currency))
			}
			fmt.Fprintf(tw, "\tTOTAL\t%s\t%s\n", report.TotalDebit.Display(rt.currency), report.TotalCredit.Display(rt.currency))
			if !report.IsBalanced {
				fmt.Fprintln(tw, "WARNING: trial balance does not balance\t\t\t")
			}
			return tw.Flush()
		},
	}
	bindAsOf(cmd, &asOf)
	return cmd
}

func newCashFlowCommand(rt *runtime) *cobra.Command {
	var rng rangeFlags

	cmd := &cobra.Command{
		Use:   "cash-flow",
		Short: "Movements of the cash accounts grouped by activity",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			start, end, err := rng.parse()
			if err != nil {
				return err
			}
			svc, err := rt.container(cmd.Context())
			if err != nil {
				return err
			}
			report, err := svc.Reporting.ComputeCashFlow(cmd.Context(), rt.organizationID, start, end, nil)
			if err != nil {
				return err
			}
			if rt.jsonOutput {
				return printJSON(cmd.OutOrStdout(), report)
			}

			tw := newTable(cmd.OutOrStdout())
			fmt.Fprintf(tw, "Cash flow %s to %s\t\n", rng.from, rng.to)
			fmt.Fprintf(tw, "Beginning cash\t%s\n", report.BeginningCash.Display(rt.currency))
			fmt.Fprintf(tw, "Operating\t%s\n", report.Operating.Display(rt.currency))
			fmt.Fprintf(tw, "Investing\t%s\n", report.Investing.Display(rt.currency))
			fmt.Fprintf(tw, "Financing\t%s\n", report.Financing.Display(rt.currency))
			fmt.Fprintf(tw, "Net cash flow\t%s\n", report.NetCashFlow.Display(rt.currency))
			fmt.Fprintf(tw, "Ending cash\t%s\n", report.EndingCash.Display(rt.currency))
			return tw.Flush()
		},
	}
	rng.bind(cmd)
	return cmd
}

func newRatiosCommand(rt *runtime) *cobra.Command {
	var asOf string

	cmd := &cobra.Command{
		Use:   "ratios",
		Short: "Financial ratios as of a date",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := dto.ParseDate("as-of", asOf)
			if err != nil {
				return err
			}
			svc, err := rt.container(cmd.Context())
			if err != nil {
				return err
			}
			report, err := svc.Reporting.ComputeFinancialRatios(cmd.Context(), rt.organizationID, date, nil)
			if err != nil {
				return err
			}
			if rt.jsonOutput {
				return printJSON(cmd.OutOrStdout(), report)
			}

			tw := newTable(cmd.OutOrStdout())
			rows := []struct {
				name  string
				value string
			}{
				{"Current ratio", report.Liquidity.CurrentRatio.String()},
				{"Quick ratio", report.Liquidity.QuickRatio.String()},
				{"Cash ratio", report.Liquidity.CashRatio.String()},
				{"Gross margin", report.Profitability.GrossMargin.String()},
				{"Net margin", report.Profitability.NetMargin.String()},
				{"Return on assets", report.Profitability.ReturnOnAssets.String()},
				{"Return on equity", report.Profitability.ReturnOnEquity.String()},
				{"Asset turnover", report.Efficiency.AssetTurnover.String()},
				{"Receivables turnover", report.Efficiency.ReceivablesTurnover.String()},
				{"Inventory turnover", report.Efficiency.InventoryTurnover.String()},
				{"Debt to equity", report.Leverage.DebtToEquity.String()},
				{"Debt to assets", report.Leverage.DebtToAssets.String()},
				{"Interest coverage", report.Leverage.InterestCoverage.String()},
			}
			for _, r := range rows {
				fmt.Fprintf(tw, "%s\t%s\n", r.name, r.value)
			}
			return tw.Flush()
		},
	}
	bindAsOf(cmd, &asOf)
	return cmd
}

func newLedgerBookCommand(rt *runtime) *cobra.Command {
	var rng rangeFlags
	var accountCode string

	cmd := &cobra.Command{
		Use:   "ledger-book",
		Short: "Posted lines of one account with running balances",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			start, end, err := rng.parse()
			if err != nil {
				return err
			}
			svc, err := rt.container(cmd.Context())
			if err != nil {
				return err
			}
			book, err := svc.Reporting.GenerateLedgerBook(cmd.Context(), rt.organizationID, accountCode, start, end)
			if err != nil {
				return err
			}
			if rt.jsonOutput {
				return printJSON(cmd.OutOrStdout(), book)
			}

			tw := newTable(cmd.OutOrStdout())
			fmt.Fprintf(tw, "%s %s\t\t\t\t\t\n", book.AccountCode, book.AccountName)
			fmt.Fprintln(tw, "DATE\tNUMBER\tDESCRIPTION\tDEBIT\tCREDIT\tBALANCE")
			fmt.Fprintf(tw, "%s\t\tOpening balance\t\t\t%s\n", rng.from, book.OpeningBalance.Display(rt.currency))
			for _, e := range book.Entries {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
					e.Date.Format(dto.DateLayout), e.EntryNumber, e.Description,
					displayNonZero(e.Debit, rt.currency), displayNonZero(e.Credit, rt.currency),
					e.RunningBalance.Display(rt.currency))
			}
			fmt.Fprintf(tw, "%s\t\tClosing balance\t%s\t%s\t%s\n", rng.to,
				book.TotalDebit.Display(rt.currency), book.TotalCredit.Display(rt.currency), book.ClosingBalance.Display(rt.currency))
			return tw.Flush()
		},
	}
	rng.bind(cmd)
	cmd.Flags().StringVar(&accountCode, "account", "", "account code (required)")
	_ = cmd.MarkFlagRequired("account")
	return cmd
}

func displayNonZero(m domain.Money, currency string) string {
	if m.IsZero() {
		return ""
	}
	return m.Display(currency)
}
