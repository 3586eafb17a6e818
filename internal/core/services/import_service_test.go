package services_test

import (
	"testing"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/SscSPs/ledger_engine/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestImportService_AllOrNothing(t *testing.T) {
	publisher := new(MockPublisher)
	f := newFixture(t, publisher)

	records := []domain.RawRecord{
		{Date: "2024-03-01", DebitAccount: "Cash", CreditAccount: "Sales", Amount: "100.00", Description: "sale"},
		{Date: "2024-03-02", DebitAccount: "Cash", CreditAccount: "Salez", Amount: "50.00"},
	}

	result, err := f.imports.ImportJournalEntries(f.ctx, orgID, userID, records, domain.ImportOptions{})
	var importErr *apperrors.ImportError
	require.ErrorAs(t, err, &importErr)
	assert.Equal(t, 1, importErr.Count)
	assert.Equal(t, "CSV import failed with 1 errors", err.Error())
	require.NotNil(t, result)
	assert.False(t, result.Committed)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, 1, result.Errors[0].Index)
	assert.Equal(t, domain.CodeInvalidAccount, result.Errors[0].Code)
	assert.Equal(t, "Salez", result.Errors[0].Value)

	entries, err := f.journal.ListEntries(f.ctx, orgID, domain.DateFilter{})
	require.NoError(t, err)
	assert.Empty(t, entries, "nothing is committed when any record fails")
	publisher.AssertNotCalled(t, "PublishEntriesCommitted", mock.Anything, mock.Anything, mock.Anything)

	publisher.On("PublishEntriesCommitted", mock.Anything, orgID, mock.MatchedBy(func(entries []domain.JournalEntry) bool {
		return len(entries) == 2
	})).Return(nil).Once()

	records[1].CreditAccount = "4000"
	result, err = f.imports.ImportJournalEntries(f.ctx, orgID, userID, records, domain.ImportOptions{Status: domain.Approved})
	require.NoError(t, err)
	assert.True(t, result.Committed)
	require.Len(t, result.Entries, 2)
	assert.Equal(t, "2024030001", result.Entries[0].EntryNumber)
	assert.Equal(t, "2024030002", result.Entries[1].EntryNumber)
	assert.Equal(t, domain.Approved, result.Entries[0].Status)
	assert.Equal(t, "sale", result.Entries[0].Description)
	assert.Equal(t, f.ids["1000"], result.Entries[0].Lines[0].AccountID)
	assert.Equal(t, f.ids["4000"], result.Entries[0].Lines[1].AccountID)
	publisher.AssertExpectations(t)
}

func TestImportService_ResubmitWithoutBadRecord(t *testing.T) {
	f := newFixture(t, nil)
	records := []domain.RawRecord{
		{Date: "2024-03-01", DebitAccount: "Cash", CreditAccount: "Sales", Amount: "100.00"},
		{Date: "2024-03-02", DebitAccount: "Cash", CreditAccount: "Salez", Amount: "50.00"},
	}

	result, err := f.imports.ImportJournalEntries(f.ctx, orgID, userID, records, domain.ImportOptions{})
	require.ErrorIs(t, err, apperrors.ErrValidation)
	assert.False(t, result.Committed)
	require.Len(t, result.Errors, 1)

	result, err = f.imports.ImportJournalEntries(f.ctx, orgID, userID, records[:1], domain.ImportOptions{})
	require.NoError(t, err)
	assert.True(t, result.Committed)
	assert.Empty(t, result.Errors)
	require.Len(t, result.Entries, 1)

	entries, err := f.journal.ListEntries(f.ctx, orgID, domain.DateFilter{})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "2024030001", entries[0].EntryNumber)
	assert.Equal(t, domain.NewMoney(10000), entries[0].Lines[0].DebitAmount)
}

func TestImportService_AmbiguousAccountName(t *testing.T) {
	f := newFixture(t, nil)
	_, err := f.accounts.CreateAccount(f.ctx, orgID, dto.CreateAccountRequest{Code: "1010", Name: "cash", AccountType: domain.Asset}, userID)
	require.NoError(t, err)

	records := []domain.RawRecord{
		{Date: "2024-03-01", DebitAccount: "Cash", CreditAccount: "Sales", Amount: "10.00"},
		{Date: "2024-03-01", DebitAccount: "1010", CreditAccount: "Sales", Amount: "10.00"},
	}
	result, err := f.imports.ImportJournalEntries(f.ctx, orgID, userID, records, domain.ImportOptions{})
	require.ErrorIs(t, err, apperrors.ErrValidation)
	assert.False(t, result.Committed)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, 0, result.Errors[0].Index)
	assert.Equal(t, "debitAccount", result.Errors[0].Field)
	assert.Equal(t, domain.CodeInvalidAccount, result.Errors[0].Code)
	assert.Contains(t, result.Errors[0].Message, "ambiguous account reference")
	assert.Contains(t, result.Errors[0].Message, "1000, 1010")

	entries, err := f.journal.ListEntries(f.ctx, orgID, domain.DateFilter{})
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestImportService_RecordErrors(t *testing.T) {
	f := newFixture(t, nil)
	require.NoError(t, f.accounts.DeactivateAccount(f.ctx, orgID, f.ids["5000"], userID))

	tests := []struct {
		name   string
		record domain.RawRecord
		want   []string // codes, in order
	}{
		{name: "bad date", record: domain.RawRecord{Date: "03/01/2024", DebitAccount: "1000", CreditAccount: "4000", Amount: "1"}, want: []string{domain.CodeInvalidDate}},
		{name: "no period", record: domain.RawRecord{Date: "2023-06-01", DebitAccount: "1000", CreditAccount: "4000", Amount: "1"}, want: []string{domain.CodeNoMatchingPeriod}},
		{name: "zero amount", record: domain.RawRecord{Date: "2024-06-01", DebitAccount: "1000", CreditAccount: "4000", Amount: "0"}, want: []string{domain.CodeInvalidAmount}},
		{name: "negative amount", record: domain.RawRecord{Date: "2024-06-01", DebitAccount: "1000", CreditAccount: "4000", Amount: "-5"}, want: []string{domain.CodeInvalidAmount}},
		{name: "same account", record: domain.RawRecord{Date: "2024-06-01", DebitAccount: "Cash", CreditAccount: "1000", Amount: "5"}, want: []string{domain.CodeInvalidAccount}},
		{name: "inactive account", record: domain.RawRecord{Date: "2024-06-01", DebitAccount: "Rent", CreditAccount: "1000", Amount: "5"}, want: []string{domain.CodeInvalidAccount}},
		{
			name:   "every problem is reported",
			record: domain.RawRecord{Date: "junk", DebitAccount: "nope", CreditAccount: "nada", Amount: "abc"},
			want:   []string{domain.CodeInvalidDate, domain.CodeInvalidAccount, domain.CodeInvalidAccount, domain.CodeInvalidAmount},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := f.imports.ImportJournalEntries(f.ctx, orgID, userID, []domain.RawRecord{tt.record}, domain.ImportOptions{})
			assert.ErrorIs(t, err, apperrors.ErrValidation)
			require.NotNil(t, result)
			codes := make([]string, len(result.Errors))
			for i, e := range result.Errors {
				codes[i] = e.Code
				assert.Equal(t, 0, e.Index)
			}
			assert.Equal(t, tt.want, codes)
		})
	}
}

func TestImportService_RejectsBadOptions(t *testing.T) {
	f := newFixture(t, nil)

	_, err := f.imports.ImportJournalEntries(f.ctx, orgID, userID, nil, domain.ImportOptions{})
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	records := []domain.RawRecord{{Date: "2024-03-01", DebitAccount: "1000", CreditAccount: "4000", Amount: "1"}}
	_, err = f.imports.ImportJournalEntries(f.ctx, orgID, userID, records, domain.ImportOptions{Status: domain.Locked})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}
