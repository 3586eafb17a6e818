package ledger

import (
	"time"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RatioPrecision is the number of decimal places ratios are rounded to.
const RatioPrecision = 4

// YearStart returns January 1st of the year containing asOf.
func YearStart(asOf time.Time) time.Time {
	d := domain.TruncateDate(asOf)
	return time.Date(d.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
}

// div divides two amounts, yielding zero when the denominator is zero.
func div(num, den domain.Money) decimal.Decimal {
	if den.IsZero() {
		return decimal.Zero
	}
	return num.Decimal().DivRound(den.Decimal(), RatioPrecision)
}

// ComputeRatios derives the ratio families from point-in-time balances (asOfBalances)
// and a year-to-date income statement (ytdBalances).
func ComputeRatios(h *Hierarchy, asOfBalances, ytdBalances Balances, c Classification, asOf time.Time) domain.RatiosReport {
	currentAssets := c.Sum(h, asOfBalances, CurrentAsset)
	currentLiabilities := c.Sum(h, asOfBalances, CurrentLiability)
	cash := c.Sum(h, asOfBalances, Cash)
	receivables := c.Sum(h, asOfBalances, Receivable)
	inventory := c.Sum(h, asOfBalances, Inventory)

	totalAssets := asOfBalances.SumOfType(h, domain.Asset)
	totalLiabilities := asOfBalances.SumOfType(h, domain.Liability)
	retained := asOfBalances.SumOfType(h, domain.Revenue).Sub(asOfBalances.SumOfType(h, domain.Expense))
	equity := asOfBalances.SumOfType(h, domain.Equity).Add(retained)

	revenue := ytdBalances.SumOfType(h, domain.Revenue)
	expenses := ytdBalances.SumOfType(h, domain.Expense)
	netIncome := revenue.Sub(expenses)
	costOfSales := c.Sum(h, ytdBalances, CostOfSales)
	interest := c.Sum(h, ytdBalances, InterestExpense)

	return domain.RatiosReport{
		AsOf: domain.TruncateDate(asOf),
		Liquidity: domain.LiquidityRatios{
			CurrentRatio: div(currentAssets, currentLiabilities),
			QuickRatio:   div(currentAssets.Sub(inventory), currentLiabilities),
			CashRatio:    div(cash, currentLiabilities),
		},
		Profitability: domain.ProfitabilityRatios{
			GrossMargin:    div(revenue.Sub(costOfSales), revenue),
			NetMargin:      div(netIncome, revenue),
			ReturnOnAssets: div(netIncome, totalAssets),
			ReturnOnEquity: div(netIncome, equity),
		},
		Efficiency: domain.EfficiencyRatios{
			AssetTurnover:       div(revenue, totalAssets),
			ReceivablesTurnover: div(revenue, receivables),
			InventoryTurnover:   div(costOfSales, inventory),
		},
		Leverage: domain.LeverageRatios{
			DebtToEquity:     div(totalLiabilities, equity),
			DebtToAssets:     div(totalLiabilities, totalAssets),
			InterestCoverage: div(netIncome.Add(interest), interest),
		},
	}
}
