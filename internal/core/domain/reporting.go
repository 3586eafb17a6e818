package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReportNode is one account in a rendered statement tree.
type ReportNode struct {
	AccountID   string       `json:"accountID"`
	Code        string       `json:"code"`
	Name        string       `json:"name"`
	AccountType AccountType  `json:"accountType"`
	Depth       int          `json:"depth"`
	OwnBalance  Money        `json:"ownBalance"` // lines posted directly to this account
	Total       Money        `json:"total"`      // own balance plus all descendants
	Children    []ReportNode `json:"children,omitempty"`
}

// StatementSection groups the trees of one account type with its total.
type StatementSection struct {
	Label    string       `json:"label"`
	Accounts []ReportNode `json:"accounts"`
	Total    Money        `json:"total"`
}

// BalanceSheetReport represents a balance sheet as of a date.
type BalanceSheetReport struct {
	AsOf                      time.Time        `json:"asOf"`
	Assets                    StatementSection `json:"assets"`
	Liabilities               StatementSection `json:"liabilities"`
	Equity                    StatementSection `json:"equity"`
	TotalAssets               Money            `json:"totalAssets"`
	TotalLiabilities          Money            `json:"totalLiabilities"`
	TotalEquity               Money            `json:"totalEquity"` // raw equity accounts
	NetIncome                 Money            `json:"netIncome"`   // unclosed retained earnings
	AdjustedTotalEquity       Money            `json:"adjustedTotalEquity"`
	TotalLiabilitiesAndEquity Money            `json:"totalLiabilitiesAndEquity"`
	IsBalanced                bool             `json:"isBalanced"`
}

// IncomeStatementReport represents a profit and loss statement over a date range.
type IncomeStatementReport struct {
	StartDate     time.Time        `json:"startDate"`
	EndDate       time.Time        `json:"endDate"`
	Revenue       StatementSection `json:"revenue"`
	Expenses      StatementSection `json:"expenses"`
	TotalRevenue  Money            `json:"totalRevenue"`
	TotalExpenses Money            `json:"totalExpenses"`
	GrossProfit   Money            `json:"grossProfit"`
	NetIncome     Money            `json:"netIncome"`
}

// TrialBalanceRow represents a single row in a trial balance report.
type TrialBalanceRow struct {
	AccountID   string      `json:"accountID"`
	Code        string      `json:"code"`
	AccountName string      `json:"accountName"`
	AccountType AccountType `json:"accountType"`
	Debit       Money       `json:"debit"`
	Credit      Money       `json:"credit"`
}

// TrialBalanceReport lists every non-zero account split into debit and credit columns.
type TrialBalanceReport struct {
	AsOf        time.Time         `json:"asOf"`
	Rows        []TrialBalanceRow `json:"rows"`
	TotalDebit  Money             `json:"totalDebit"`
	TotalCredit Money             `json:"totalCredit"`
	IsBalanced  bool              `json:"isBalanced"`
}

// CashFlowActivity is the bucket a cash movement is classified into.
type CashFlowActivity string

const (
	Operating CashFlowActivity = "OPERATING"
	Investing CashFlowActivity = "INVESTING"
	Financing CashFlowActivity = "FINANCING"
)

// IsValid reports whether a is one of the three activities.
func (a CashFlowActivity) IsValid() bool {
	return a == Operating || a == Investing || a == Financing
}

// CashFlowItem is one cash-touching line inside the report range.
type CashFlowItem struct {
	EntryID     string           `json:"entryID"`
	EntryNumber string           `json:"entryNumber"`
	EntryDate   time.Time        `json:"entryDate"`
	Description string           `json:"description"`
	AccountID   string           `json:"accountID"` // the cash account touched
	Activity    CashFlowActivity `json:"activity"`
	Amount      Money            `json:"amount"` // positive inflow, negative outflow
}

// CashFlowReport approximates a cash flow statement over a date range.
type CashFlowReport struct {
	StartDate     time.Time      `json:"startDate"`
	EndDate       time.Time      `json:"endDate"`
	BeginningCash Money          `json:"beginningCash"`
	Operating     Money          `json:"operating"`
	Investing     Money          `json:"investing"`
	Financing     Money          `json:"financing"`
	NetCashFlow   Money          `json:"netCashFlow"`
	EndingCash    Money          `json:"endingCash"`
	Items         []CashFlowItem `json:"items"`
}

// LiquidityRatios measure short-term solvency.
type LiquidityRatios struct {
	CurrentRatio decimal.Decimal `json:"currentRatio"`
	QuickRatio   decimal.Decimal `json:"quickRatio"`
	CashRatio    decimal.Decimal `json:"cashRatio"`
}

// ProfitabilityRatios measure returns.
type ProfitabilityRatios struct {
	GrossMargin    decimal.Decimal `json:"grossMargin"`
	NetMargin      decimal.Decimal `json:"netMargin"`
	ReturnOnAssets decimal.Decimal `json:"returnOnAssets"`
	ReturnOnEquity decimal.Decimal `json:"returnOnEquity"`
}

// EfficiencyRatios measure how assets turn into revenue.
type EfficiencyRatios struct {
	AssetTurnover       decimal.Decimal `json:"assetTurnover"`
	ReceivablesTurnover decimal.Decimal `json:"receivablesTurnover"`
	InventoryTurnover   decimal.Decimal `json:"inventoryTurnover"`
}

// LeverageRatios measure reliance on debt.
type LeverageRatios struct {
	DebtToEquity     decimal.Decimal `json:"debtToEquity"`
	DebtToAssets     decimal.Decimal `json:"debtToAssets"`
	InterestCoverage decimal.Decimal `json:"interestCoverage"`
}

// RatiosReport bundles the ratio families computed as of a date.
type RatiosReport struct {
	AsOf          time.Time           `json:"asOf"`
	Liquidity     LiquidityRatios     `json:"liquidity"`
	Profitability ProfitabilityRatios `json:"profitability"`
	Efficiency    EfficiencyRatios    `json:"efficiency"`
	Leverage      LeverageRatios      `json:"leverage"`
}

// MultipleAccounts is the counterparty shown when an entry has several other lines.
const MultipleAccounts = "Multiple accounts"

// LedgerEntry is one row of a ledger book.
type LedgerEntry struct {
	Date               time.Time `json:"date"`
	EntryID            string    `json:"entryID"`
	EntryNumber        string    `json:"entryNumber"`
	Description        string    `json:"description"`
	Debit              Money     `json:"debit"`
	Credit             Money     `json:"credit"`
	RunningBalance     Money     `json:"runningBalance"`
	CounterAccountName string    `json:"counterAccountName,omitempty"`
}

// LedgerBook is the chronological history of one account over a date range.
type LedgerBook struct {
	AccountID      string        `json:"accountID"`
	AccountCode    string        `json:"accountCode"`
	AccountName    string        `json:"accountName"`
	AccountType    AccountType   `json:"accountType"`
	StartDate      time.Time     `json:"startDate"`
	EndDate        time.Time     `json:"endDate"`
	OpeningBalance Money         `json:"openingBalance"`
	ClosingBalance Money         `json:"closingBalance"`
	TotalDebit     Money         `json:"totalDebit"`
	TotalCredit    Money         `json:"totalCredit"`
	Entries        []LedgerEntry `json:"entries"`
}
