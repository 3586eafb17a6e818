package services_test

import (
	"errors"
	"testing"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/SscSPs/ledger_engine/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type JournalServiceTestSuite struct {
	suite.Suite
	f         *fixture
	publisher *MockPublisher
}

func (s *JournalServiceTestSuite) SetupTest() {
	s.publisher = new(MockPublisher)
	s.f = newFixture(s.T(), s.publisher)
}

func (s *JournalServiceTestSuite) TearDownTest() {
	s.publisher.AssertExpectations(s.T())
}

func TestJournalServiceTestSuite(t *testing.T) {
	suite.Run(t, new(JournalServiceTestSuite))
}

func (s *JournalServiceTestSuite) expectPublish(times int) {
	s.publisher.On("PublishEntriesCommitted", mock.Anything, orgID, mock.AnythingOfType("[]domain.JournalEntry")).Return(nil).Times(times)
}

func (s *JournalServiceTestSuite) TestCreateEntry_NumbersPerMonth() {
	s.expectPublish(3)

	first := s.f.post("2024-03-05", "1000", "4000", "100.00", domain.Draft)
	second := s.f.post("2024-03-20", "5000", "1000", "40.00", domain.Approved)
	april := s.f.post("2024-04-01", "1000", "4000", "5.00", domain.Draft)

	s.Equal("2024030001", first.EntryNumber)
	s.Equal("2024030002", second.EntryNumber)
	s.Equal("2024040001", april.EntryNumber)

	s.Equal(domain.Draft, first.Status)
	s.Equal(domain.Approved, second.Status)
	s.Equal(fixedNow, first.CreatedAt)
	s.Require().Len(first.Lines, 2)
	s.Equal(1, first.Lines[0].LineNumber)
	s.Equal(domain.MustParseMoney("100.00"), first.TotalDebit())
	s.Equal(first.TotalDebit(), first.TotalCredit())

	got, err := s.f.journal.GetEntryByID(s.f.ctx, orgID, first.EntryID)
	s.Require().NoError(err)
	s.Equal(first.EntryNumber, got.EntryNumber)
}

func (s *JournalServiceTestSuite) TestCreateEntry_Rejections() {
	ids := s.f.ids
	tests := []struct {
		name    string
		req     dto.CreateEntryRequest
		wantErr error
	}{
		{
			name: "unbalanced",
			req: dto.CreateEntryRequest{EntryDate: "2024-03-01", Lines: []dto.CreateEntryLineRequest{
				{AccountID: ids["1000"], Debit: "100.00"},
				{AccountID: ids["4000"], Credit: "90.00"},
			}},
			wantErr: apperrors.ErrUnbalanced,
		},
		{
			name:    "no period covers the date",
			req:     entryRequest("2023-12-31", domain.Draft, ids["1000"], ids["4000"], "10.00"),
			wantErr: apperrors.ErrValidation,
		},
		{
			name:    "unknown account",
			req:     entryRequest("2024-03-01", domain.Draft, "missing", ids["4000"], "10.00"),
			wantErr: apperrors.ErrValidation,
		},
		{
			name:    "locked status on create",
			req:     entryRequest("2024-03-01", domain.Locked, ids["1000"], ids["4000"], "10.00"),
			wantErr: apperrors.ErrValidation,
		},
		{
			name:    "too many decimals",
			req:     entryRequest("2024-03-01", domain.Draft, ids["1000"], ids["4000"], "10.001"),
			wantErr: apperrors.ErrValidation,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			entry, err := s.f.journal.CreateEntry(s.f.ctx, orgID, tt.req, userID)
			s.ErrorIs(err, tt.wantErr)
			s.Nil(entry)
		})
	}

	entries, err := s.f.journal.ListEntries(s.f.ctx, orgID, domain.DateFilter{})
	s.Require().NoError(err)
	s.Empty(entries)
}

func (s *JournalServiceTestSuite) TestCreateEntry_BalanceErrorCarriesTotals() {
	req := dto.CreateEntryRequest{EntryDate: "2024-03-01", Lines: []dto.CreateEntryLineRequest{
		{AccountID: s.f.ids["1000"], Debit: "100.00"},
		{AccountID: s.f.ids["4000"], Credit: "60.00"},
		{AccountID: s.f.ids["4000"], Credit: "30.00"},
	}}
	_, err := s.f.journal.CreateEntry(s.f.ctx, orgID, req, userID)
	var balanceErr *apperrors.BalanceError
	s.Require().ErrorAs(err, &balanceErr)
	s.Equal("100.00", balanceErr.TotalDebit)
	s.Equal("90.00", balanceErr.TotalCredit)
}

func (s *JournalServiceTestSuite) TestCreateEntry_RejectsOneCentDifference() {
	req := dto.CreateEntryRequest{EntryDate: "2024-03-01", Status: domain.Approved, Lines: []dto.CreateEntryLineRequest{
		{AccountID: s.f.ids["1000"], Debit: "100.01"},
		{AccountID: s.f.ids["4000"], Credit: "100.00"},
	}}
	for i := 0; i < 3; i++ {
		_, err := s.f.journal.CreateEntry(s.f.ctx, orgID, req, userID)
		var balanceErr *apperrors.BalanceError
		s.Require().ErrorAs(err, &balanceErr)
		s.Equal("100.01", balanceErr.TotalDebit)
		s.Equal("100.00", balanceErr.TotalCredit)
	}

	entries, err := s.f.journal.ListEntries(s.f.ctx, orgID, domain.DateFilter{})
	s.Require().NoError(err)
	s.Empty(entries)
}

func (s *JournalServiceTestSuite) TestLifecycle() {
	s.expectPublish(2)
	entry := s.f.post("2024-03-05", "1000", "4000", "100.00", domain.Draft)
	other := s.f.post("2024-03-06", "1000", "4000", "1.00", domain.Draft)

	_, err := s.f.journal.LockEntry(s.f.ctx, orgID, entry.EntryID, userID)
	s.ErrorIs(err, apperrors.ErrInvalidState, "draft cannot be locked")

	approved, err := s.f.journal.ApproveEntry(s.f.ctx, orgID, entry.EntryID, userID)
	s.Require().NoError(err)
	s.Equal(domain.Approved, approved.Status)

	locked, err := s.f.journal.LockEntry(s.f.ctx, orgID, entry.EntryID, userID)
	s.Require().NoError(err)
	s.Equal(domain.Locked, locked.Status)

	_, err = s.f.journal.CancelEntry(s.f.ctx, orgID, entry.EntryID, userID)
	var stateErr *apperrors.StateError
	s.Require().ErrorAs(err, &stateErr)
	s.Equal("LOCKED", stateErr.State)

	cancelled, err := s.f.journal.CancelEntry(s.f.ctx, orgID, other.EntryID, userID)
	s.Require().NoError(err)
	s.Equal(domain.Cancelled, cancelled.Status)

	_, err = s.f.journal.ApproveEntry(s.f.ctx, orgID, other.EntryID, userID)
	s.ErrorIs(err, apperrors.ErrInvalidState)

	_, err = s.f.journal.ApproveEntry(s.f.ctx, "org-2", entry.EntryID, userID)
	s.ErrorIs(err, apperrors.ErrNotFound)

	stored, err := s.f.journal.GetEntryByID(s.f.ctx, orgID, entry.EntryID)
	s.Require().NoError(err)
	s.Equal(domain.Locked, stored.Status)
}

func (s *JournalServiceTestSuite) TestListEntries_DateFilter() {
	s.expectPublish(3)
	s.f.post("2024-01-15", "1000", "4000", "1.00", domain.Draft)
	s.f.post("2024-02-15", "1000", "4000", "2.00", domain.Draft)
	s.f.post("2024-03-15", "1000", "4000", "3.00", domain.Draft)

	entries, err := s.f.journal.ListEntries(s.f.ctx, orgID, domain.DateRange(date("2024-02-01"), date("2024-03-15")))
	s.Require().NoError(err)
	s.Require().Len(entries, 2)
	s.Equal("2024020001", entries[0].EntryNumber)
	s.Equal("2024030001", entries[1].EntryNumber)
}

func TestJournalService_PublishFailureKeepsCommit(t *testing.T) {
	publisher := new(MockPublisher)
	publisher.On("PublishEntriesCommitted", mock.Anything, orgID, mock.Anything).Return(errors.New("redis down")).Once()
	f := newFixture(t, publisher)

	entry := f.post("2024-03-05", "1000", "4000", "100.00", domain.Approved)
	require.NotNil(t, entry)

	stored, err := f.journal.GetEntryByID(f.ctx, orgID, entry.EntryID)
	require.NoError(t, err)
	assert.Equal(t, entry.EntryNumber, stored.EntryNumber)
	publisher.AssertExpectations(t)
}
