package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/SscSPs/ledger_engine/internal/core/ledger"
	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/dto"
	"github.com/gin-gonic/gin"
)

// reportingHandler handles HTTP requests related to financial reports
type reportingHandler struct {
	reportingService portssvc.ReportingService
}

// newReportingHandler creates a new reportingHandler
func newReportingHandler(rs portssvc.ReportingService) *reportingHandler {
	return &reportingHandler{
		reportingService: rs,
	}
}

// registerReportingRoutes registers routes related to financial reports
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingService) {
	h := newReportingHandler(reportingService)

	reportingGroup := rg.Group("/reports")
	{
		reportingGroup.GET("/balance-sheet", h.getBalanceSheet)
		reportingGroup.GET("/income-statement", h.getIncomeStatement)
		reportingGroup.GET("/cash-flow", h.getCashFlow)
		reportingGroup.GET("/trial-balance", h.getTrialBalance)
		reportingGroup.GET("/ratios", h.getRatios)
		reportingGroup.GET("/ledger-book", h.getLedgerBook)
	}
}

// getBalanceSheet godoc
// @Summary Generate balance sheet
// @Description Assets, liabilities and equity as of a date. Net income to date is shown as current earnings.
// @Tags reports
// @Produce json
// @Param orgId path string true "Organization ID"
// @Param asOf query string true "Report date (YYYY-MM-DD)"
// @Param flat query bool false "Render accounts as a flat list"
// @Success 200 {object} domain.BalanceSheetReport
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to generate report"
// @Security BearerAuth
// @Router /organizations/{orgId}/reports/balance-sheet [get]
func (h *reportingHandler) getBalanceSheet(c *gin.Context) {
	logger, orgID, _, ok := requestScope(c)
	if !ok {
		return
	}
	var params dto.AsOfParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindingError(c, logger, err)
		return
	}
	asOf, err := dto.ParseDate("asOf", params.AsOf)
	if err != nil {
		handleServiceError(c, logger, err, "Invalid date")
		return
	}

	report, err := h.reportingService.ComputeBalanceSheet(c.Request.Context(), orgID, asOf, ledger.TreeOptions{Flat: params.Flat})
	if err != nil {
		handleServiceError(c, logger, err, "Failed to generate balance sheet")
		return
	}
	c.JSON(http.StatusOK, report)
}

// getIncomeStatement godoc
// @Summary Generate income statement
// @Description Revenue and expenses over an inclusive date range
// @Tags reports
// @Produce json
// @Param orgId path string true "Organization ID"
// @Param from query string true "Start date (YYYY-MM-DD)"
// @Param to query string true "End date (YYYY-MM-DD)"
// @Param flat query bool false "Render accounts as a flat list"
// @Success 200 {object} domain.IncomeStatementReport
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to generate report"
// @Security BearerAuth
// @Router /organizations/{orgId}/reports/income-statement [get]
func (h *reportingHandler) getIncomeStatement(c *gin.Context) {
	logger, orgID, _, ok := requestScope(c)
	if !ok {
		return
	}
	var params dto.RangeParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindingError(c, logger, err)
		return
	}
	start, end, err := dto.ParseDateRange(params.From, params.To)
	if err != nil {
		handleServiceError(c, logger, err, "Invalid date range")
		return
	}

	report, err := h.reportingService.ComputeIncomeStatement(c.Request.Context(), orgID, start, end, ledger.TreeOptions{Flat: params.Flat})
	if err != nil {
		handleServiceError(c, logger, err, "Failed to generate income statement")
		return
	}
	c.JSON(http.StatusOK, report)
}

// getCashFlow godoc
// @Summary Generate cash flow statement
// @Description Movements of the configured cash accounts grouped by activity
// @Tags reports
// @Produce json
// @Param orgId path string true "Organization ID"
// @Param from query string true "Start date (YYYY-MM-DD)"
// @Param to query string true "End date (YYYY-MM-DD)"
// @Param unclassified query bool false "Report every movement as operating"
// @Success 200 {object} domain.CashFlowReport
// @Failure 400 {object} map[string]string "Invalid input or no cash accounts"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to generate report"
// @Security BearerAuth
// @Router /organizations/{orgId}/reports/cash-flow [get]
func (h *reportingHandler) getCashFlow(c *gin.Context) {
	logger, orgID, _, ok := requestScope(c)
	if !ok {
		return
	}
	var params dto.CashFlowParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindingError(c, logger, err)
		return
	}
	start, end, err := dto.ParseDateRange(params.From, params.To)
	if err != nil {
		handleServiceError(c, logger, err, "Invalid date range")
		return
	}

	var classifier ledger.CashFlowClassifier
	if params.Unclassified {
		classifier = func(domain.JournalEntry, domain.JournalEntryLine) domain.CashFlowActivity {
			return domain.Operating
		}
	}

	report, err := h.reportingService.ComputeCashFlow(c.Request.Context(), orgID, start, end, classifier)
	if err != nil {
		handleServiceError(c, logger, err, "Failed to generate cash flow statement")
		return
	}
	c.JSON(http.StatusOK, report)
}

// getTrialBalance godoc
// @Summary Generate trial balance report
// @Description Generates a trial balance report as of a specific date
// @Tags reports
// @Produce json
// @Param orgId path string true "Organization ID"
// @Param asOf query string true "Report date (YYYY-MM-DD)"
// @Success 200 {object} domain.TrialBalanceReport
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to generate report"
// @Security BearerAuth
// @Router /organizations/{orgId}/reports/trial-balance [get]
func (h *reportingHandler) getTrialBalance(c *gin.Context) {
	logger, orgID, _, ok := requestScope(c)
	if !ok {
		return
	}
	var params dto.AsOfParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindingError(c, logger, err)
		return
	}
	asOf, err := dto.ParseDate("asOf", params.AsOf)
	if err != nil {
		handleServiceError(c, logger, err, "Invalid date")
		return
	}

	report, err := h.reportingService.ComputeTrialBalance(c.Request.Context(), orgID, asOf)
	if err != nil {
		handleServiceError(c, logger, err, "Failed to generate trial balance")
		return
	}
	if !report.IsBalanced {
		logger.Warn("Trial balance is not balanced", slog.String("as_of", params.AsOf))
	}
	c.JSON(http.StatusOK, report)
}

// getRatios godoc
// @Summary Compute financial ratios
// @Description Liquidity, leverage and profitability ratios as of a date, using a year-to-date income statement
// @Tags reports
// @Produce json
// @Param orgId path string true "Organization ID"
// @Param asOf query string true "Report date (YYYY-MM-DD)"
// @Success 200 {object} domain.RatiosReport
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to generate report"
// @Security BearerAuth
// @Router /organizations/{orgId}/reports/ratios [get]
func (h *reportingHandler) getRatios(c *gin.Context) {
	logger, orgID, _, ok := requestScope(c)
	if !ok {
		return
	}
	var params dto.AsOfParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindingError(c, logger, err)
		return
	}
	asOf, err := dto.ParseDate("asOf", params.AsOf)
	if err != nil {
		handleServiceError(c, logger, err, "Invalid date")
		return
	}

	report, err := h.reportingService.ComputeFinancialRatios(c.Request.Context(), orgID, asOf, nil)
	if err != nil {
		handleServiceError(c, logger, err, "Failed to compute financial ratios")
		return
	}
	c.JSON(http.StatusOK, report)
}

// getLedgerBook godoc
// @Summary Generate an account ledger
// @Description Posted lines of one account with running balances over a date range
// @Tags reports
// @Produce json
// @Param orgId path string true "Organization ID"
// @Param accountCode query string true "Account code"
// @Param from query string true "Start date (YYYY-MM-DD)"
// @Param to query string true "End date (YYYY-MM-DD)"
// @Success 200 {object} domain.LedgerBook
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Account not found"
// @Security BearerAuth
// @Router /organizations/{orgId}/reports/ledger-book [get]
func (h *reportingHandler) getLedgerBook(c *gin.Context) {
	logger, orgID, _, ok := requestScope(c)
	if !ok {
		return
	}
	var params dto.LedgerBookParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindingError(c, logger, err)
		return
	}
	start, end, err := dto.ParseDateRange(params.From, params.To)
	if err != nil {
		handleServiceError(c, logger, err, "Invalid date range")
		return
	}

	book, err := h.reportingService.GenerateLedgerBook(c.Request.Context(), orgID, params.AccountCode, start, end)
	if err != nil {
		handleServiceError(c, logger.With(slog.String("account_code", params.AccountCode)), err, "Failed to generate ledger book")
		return
	}
	c.JSON(http.StatusOK, book)
}
