package ledger_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/ledger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntryNumberPrefix(t *testing.T) {
	assert.Equal(t, "202403", ledger.EntryNumberPrefix(date("2024-03-17")))
	assert.Equal(t, "199912", ledger.EntryNumberPrefix(date("1999-12-31")))
}

func TestNextEntryNumber(t *testing.T) {
	tests := []struct {
		name    string
		max     string
		want    string
		wantErr error
	}{
		{name: "first of month", max: "", want: "2024030001"},
		{name: "increments", max: "2024030041", want: "2024030042"},
		{name: "carries digits", max: "2024030999", want: "2024031000"},
		{name: "foreign prefix", max: "2024020041", wantErr: apperrors.ErrValidation},
		{name: "garbage", max: "202403abcd", wantErr: apperrors.ErrValidation},
		{name: "exhausted", max: "2024039999", wantErr: apperrors.ErrConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ledger.NextEntryNumber("202403", tt.max)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSequencer_IsGapFree(t *testing.T) {
	s := ledger.NewSequencer(map[string]string{"202402": "2024020007"})

	for i := 1; i <= 25; i++ {
		got, err := s.Next("202403")
		require.NoError(t, err)
		assert.Equal(t, fmt.Sprintf("202403%04d", i), got)
	}
	feb, err := s.Next("202402")
	require.NoError(t, err)
	assert.Equal(t, "2024020008", feb)
}
