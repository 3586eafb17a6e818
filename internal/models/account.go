package models

import "database/sql"

// AccountType defines the fundamental accounting type of an account.
type AccountType string

// Account is a row of the accounts table.
type Account struct {
	AccountID       string         `db:"account_id"`
	OrganizationID  string         `db:"organization_id"`
	Code            string         `db:"code"`
	Name            string         `db:"name"`
	AccountType     AccountType    `db:"account_type"`
	ParentAccountID sql.NullString `db:"parent_account_id"` // Nullable
	Description     string         `db:"description"`
	IsActive        bool           `db:"is_active"`
	AuditFields                    // Embed common audit fields
}
