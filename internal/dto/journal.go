package dto

import (
	"time"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
)

// CreateEntryLineRequest is one debit or credit line. Amounts are decimal strings;
// exactly one of Debit and Credit must be positive.
type CreateEntryLineRequest struct {
	AccountID   string `json:"accountID" binding:"required"`
	Debit       string `json:"debit" binding:"omitempty,money"`
	Credit      string `json:"credit" binding:"omitempty,money"`
	Description string `json:"description"`
}

// CreateEntryRequest defines the data needed to record a journal entry directly.
type CreateEntryRequest struct {
	EntryDate   string                   `json:"entryDate" binding:"required,isodate"`
	Description string                   `json:"description" binding:"max=500"`
	Status      domain.JournalStatus     `json:"status" binding:"omitempty,oneof=DRAFT APPROVED"`
	Lines       []CreateEntryLineRequest `json:"lines" binding:"required,min=2,dive"`
}

// ListEntriesParams filters the entry listing.
type ListEntriesParams struct {
	From      string `form:"from" binding:"omitempty,isodate"`
	To        string `form:"to" binding:"omitempty,isodate"`
	Limit     int    `form:"limit" binding:"omitempty,min=1,max=500"`
	NextToken string `form:"nextToken"`
}

// EntryLineResponse defines the data returned for a journal line.
type EntryLineResponse struct {
	LineID      string       `json:"lineID"`
	LineNumber  int          `json:"lineNumber"`
	AccountID   string       `json:"accountID"`
	Debit       domain.Money `json:"debit"`
	Credit      domain.Money `json:"credit"`
	Description string       `json:"description,omitempty"`
}

// EntryResponse defines the data returned for a journal entry.
type EntryResponse struct {
	EntryID     string               `json:"entryID"`
	EntryNumber string               `json:"entryNumber"`
	PeriodID    string               `json:"periodID"`
	EntryDate   string               `json:"entryDate"`
	Description string               `json:"description"`
	Status      domain.JournalStatus `json:"status"`
	TotalDebit  domain.Money         `json:"totalDebit"`
	TotalCredit domain.Money         `json:"totalCredit"`
	Lines       []EntryLineResponse  `json:"lines"`
	CreatedAt   time.Time            `json:"createdAt"`
	CreatedBy   string               `json:"createdBy"`
}

// ListEntriesResponse wraps a list of entries.
type ListEntriesResponse struct {
	Entries   []EntryResponse `json:"entries"`
	NextToken string          `json:"nextToken,omitempty"`
}

// ToEntryResponse converts a domain.JournalEntry to EntryResponse DTO.
func ToEntryResponse(e *domain.JournalEntry) EntryResponse {
	lines := make([]EntryLineResponse, len(e.Lines))
	for i, l := range e.Lines {
		lines[i] = EntryLineResponse{
			LineID:      l.LineID,
			LineNumber:  l.LineNumber,
			AccountID:   l.AccountID,
			Debit:       l.DebitAmount,
			Credit:      l.CreditAmount,
			Description: l.Description,
		}
	}
	return EntryResponse{
		EntryID:     e.EntryID,
		EntryNumber: e.EntryNumber,
		PeriodID:    e.PeriodID,
		EntryDate:   e.EntryDate.Format(DateLayout),
		Description: e.Description,
		Status:      e.Status,
		TotalDebit:  e.TotalDebit(),
		TotalCredit: e.TotalCredit(),
		Lines:       lines,
		CreatedAt:   e.CreatedAt,
		CreatedBy:   e.CreatedBy,
	}
}

// ToListEntriesResponse converts a slice of entries.
func ToListEntriesResponse(entries []domain.JournalEntry) ListEntriesResponse {
	out := make([]EntryResponse, len(entries))
	for i := range entries {
		out[i] = ToEntryResponse(&entries[i])
	}
	return ListEntriesResponse{Entries: out}
}

// ImportRequest submits raw records as JSON instead of a CSV upload.
type ImportRequest struct {
	Status  domain.JournalStatus `json:"status" binding:"omitempty,oneof=DRAFT APPROVED"`
	Records []domain.RawRecord   `json:"records" binding:"required,min=1"`
}

// ImportResponse reports the outcome of a bulk import.
type ImportResponse struct {
	Committed bool                 `json:"committed"`
	Error     string               `json:"error,omitempty"`
	Entries   []EntryResponse      `json:"entries,omitempty"`
	Errors    []domain.RecordError `json:"errors,omitempty"`
}

// ToImportResponse converts an import result, attaching the aggregate error if any.
func ToImportResponse(result *domain.ImportResult, err error) ImportResponse {
	resp := ImportResponse{Committed: result.Committed, Errors: result.Errors}
	if err != nil {
		resp.Error = err.Error()
	}
	if len(result.Entries) > 0 {
		resp.Entries = ToListEntriesResponse(result.Entries).Entries
	}
	return resp
}
