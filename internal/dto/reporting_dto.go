package dto

// AsOfParams selects a point-in-time report.
type AsOfParams struct {
	AsOf string `form:"asOf" binding:"required,isodate"`
	Flat bool   `form:"flat"`
}

// RangeParams selects a report over an inclusive date range.
type RangeParams struct {
	From string `form:"from" binding:"required,isodate"`
	To   string `form:"to" binding:"required,isodate"`
	Flat bool   `form:"flat"`
}

// CashFlowParams selects a cash flow report. Unclassified puts every movement in
// operating activities instead of applying the configured classification.
type CashFlowParams struct {
	From         string `form:"from" binding:"required,isodate"`
	To           string `form:"to" binding:"required,isodate"`
	Unclassified bool   `form:"unclassified"`
}

// LedgerBookParams selects one account's ledger over a date range.
type LedgerBookParams struct {
	AccountCode string `form:"accountCode" binding:"required"`
	From        string `form:"from" binding:"required,isodate"`
	To          string `form:"to" binding:"required,isodate"`
}
