package domain

// RawRecord is one external transaction record awaiting import. All fields are unparsed text.
type RawRecord struct {
	Date          string `json:"date"`
	DebitAccount  string `json:"debitAccount"`  // account code or name
	CreditAccount string `json:"creditAccount"` // account code or name
	Amount        string `json:"amount"`
	Description   string `json:"description"`
}

// Import failure codes reported per record.
const (
	CodeInvalidDate      = "InvalidDate"
	CodeInvalidAccount   = "InvalidAccount"
	CodeInvalidAmount    = "InvalidAmount"
	CodeNoMatchingPeriod = "NoMatchingPeriod"
)

// RecordError describes why a single record could not be imported.
type RecordError struct {
	Index   int    `json:"index"` // 0-based position in the submitted batch
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Value   string `json:"value,omitempty"`
}

// ImportResult reports either a committed batch or the complete list of record failures.
type ImportResult struct {
	Committed bool           `json:"committed"`
	Entries   []JournalEntry `json:"entries,omitempty"`
	Errors    []RecordError  `json:"errors,omitempty"`
}

// ImportOptions tunes a bulk import.
type ImportOptions struct {
	// Status assigned to every imported entry. Empty means DRAFT.
	Status JournalStatus
}
