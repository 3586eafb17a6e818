package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
)

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printSection writes a statement section as an indented account tree.
func printSection(tw *tabwriter.Writer, section domain.StatementSection, currency string) {
	fmt.Fprintf(tw, "%s\t\n", strings.ToUpper(section.Label))
	var walk func(nodes []domain.ReportNode)
	walk = func(nodes []domain.ReportNode) {
		for _, n := range nodes {
			fmt.Fprintf(tw, "%s%s %s\t%s\n", strings.Repeat("  ", n.Depth+1), n.Code, n.Name, n.Total.Display(currency))
			walk(n.Children)
		}
	}
	walk(section.Accounts)
	fmt.Fprintf(tw, "  Total %s\t%s\n", section.Label, section.Total.Display(currency))
}
