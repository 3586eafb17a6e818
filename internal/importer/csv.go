// Package importer reads external transaction files into raw import records.
package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
)

// Header is the canonical column order written by WriteRecords.
const Header = "date,debit_account,credit_account,amount,description"

// ErrMissingColumn is returned when a required header column is absent.
var ErrMissingColumn = errors.New("missing required column")

var columnAliases = map[string]string{
	"date":           "date",
	"entry_date":     "date",
	"debit":          "debit_account",
	"debit_account":  "debit_account",
	"credit":         "credit_account",
	"credit_account": "credit_account",
	"amount":         "amount",
	"description":    "description",
	"memo":           "description",
}

var requiredColumns = []string{"date", "debit_account", "credit_account", "amount"}

// ReadRecords reads a headed CSV file. Columns are matched by name in any order;
// description is optional. Field values are kept as text, validation happens at import.
func ReadRecords(r io.Reader) ([]domain.RawRecord, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading CSV header: %w", err)
	}

	cols := make(map[string]int)
	for i, name := range header {
		key := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
		if canonical, ok := columnAliases[key]; ok {
			if _, dup := cols[canonical]; !dup {
				cols[canonical] = i
			}
		}
	}
	for _, name := range requiredColumns {
		if _, ok := cols[name]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, name)
		}
	}

	field := func(rec []string, name string) string {
		i, ok := cols[name]
		if !ok || i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}

	var records []domain.RawRecord
	for row := 2; ; row++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", row, err)
		}
		if blank(rec) {
			continue
		}
		records = append(records, domain.RawRecord{
			Date:          field(rec, "date"),
			DebitAccount:  field(rec, "debit_account"),
			CreditAccount: field(rec, "credit_account"),
			Amount:        field(rec, "amount"),
			Description:   field(rec, "description"),
		})
	}
	return records, nil
}

// WriteRecords writes records with Header as the first row.
func WriteRecords(w io.Writer, records []domain.RawRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, rec := range records {
		row := []string{rec.Date, rec.DebitAccount, rec.CreditAccount, rec.Amount, rec.Description}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func blank(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
