package importer_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/SscSPs/ledger_engine/internal/importer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadRecords(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []domain.RawRecord
		wantErr error
	}{
		{
			name:  "canonical header",
			input: "date,debit_account,credit_account,amount,description\n2024-03-01,1000,4000,150.00,Consulting\n",
			want: []domain.RawRecord{
				{Date: "2024-03-01", DebitAccount: "1000", CreditAccount: "4000", Amount: "150.00", Description: "Consulting"},
			},
		},
		{
			name:  "aliases in any order without description",
			input: "Amount,Credit,Debit,Entry_Date\n10,Sales,Cash,2024-03-02\n",
			want: []domain.RawRecord{
				{Date: "2024-03-02", DebitAccount: "Cash", CreditAccount: "Sales", Amount: "10"},
			},
		},
		{
			name:  "blank rows are skipped and values trimmed",
			input: "date,debit,credit,amount\n\n 2024-03-03 , 1000 , 4000 , 5 \n,,,\n",
			want: []domain.RawRecord{
				{Date: "2024-03-03", DebitAccount: "1000", CreditAccount: "4000", Amount: "5"},
			},
		},
		{
			name:  "empty input",
			input: "",
			want:  nil,
		},
		{
			name:    "missing amount column",
			input:   "date,debit,credit\n2024-03-01,1000,4000\n",
			wantErr: importer.ErrMissingColumn,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := importer.ReadRecords(strings.NewReader(tt.input))
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWriteRecordsRoundTrip(t *testing.T) {
	records := []domain.RawRecord{
		{Date: "2024-03-01", DebitAccount: "Cash", CreditAccount: "Sales", Amount: "1,000.00", Description: "quoted, value"},
	}
	var buf bytes.Buffer
	require.NoError(t, importer.WriteRecords(&buf, records))
	assert.True(t, strings.HasPrefix(buf.String(), importer.Header+"\n"))

	got, err := importer.ReadRecords(&buf)
	require.NoError(t, err)
	assert.Equal(t, records, got)
}
