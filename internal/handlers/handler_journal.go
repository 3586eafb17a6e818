package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/dto"
	"github.com/SscSPs/ledger_engine/internal/utils/pagination"
	"github.com/gin-gonic/gin"
)

// journalHandler handles HTTP requests for journal entries and their lifecycle.
type journalHandler struct {
	journalService portssvc.JournalSvcFacade
}

func newJournalHandler(js portssvc.JournalSvcFacade) *journalHandler {
	return &journalHandler{journalService: js}
}

// registerJournalRoutes registers routes related to journal entries.
func registerJournalRoutes(rg *gin.RouterGroup, journalService portssvc.JournalSvcFacade) {
	h := newJournalHandler(journalService)

	entries := rg.Group("/entries")
	{
		entries.POST("", h.createEntry)
		entries.GET("", h.listEntries)
		entries.GET("/:entryId", h.getEntry)
		entries.POST("/:entryId/approve", h.transition("approve", journalService.ApproveEntry))
		entries.POST("/:entryId/lock", h.transition("lock", journalService.LockEntry))
		entries.POST("/:entryId/cancel", h.transition("cancel", journalService.CancelEntry))
	}
}

// createEntry godoc
// @Summary Record a journal entry
// @Description Validates and numbers a balanced journal entry. The entry date must fall within an accounting period.
// @Tags entries
// @Accept  json
// @Produce  json
// @Param   orgId path string true "Organization ID"
// @Param   entry body dto.CreateEntryRequest true "Journal entry"
// @Success 201 {object} dto.EntryResponse
// @Failure 400 {object} map[string]string "Invalid or unbalanced entry"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Account or period not found"
// @Failure 409 {object} map[string]string "Entry numbering conflict"
// @Failure 500 {object} map[string]string "Failed to create entry"
// @Security BearerAuth
// @Router /organizations/{orgId}/entries [post]
func (h *journalHandler) createEntry(c *gin.Context) {
	logger, orgID, userID, ok := requestScope(c)
	if !ok {
		return
	}
	var req dto.CreateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingError(c, logger, err)
		return
	}

	logger.Info("Received request to create journal entry", slog.String("entry_date", req.EntryDate), slog.Int("line_count", len(req.Lines)))

	entry, err := h.journalService.CreateEntry(c.Request.Context(), orgID, req, userID)
	if err != nil {
		handleServiceError(c, logger, err, "Failed to create journal entry")
		return
	}

	logger.Info("Journal entry created", slog.String("entry_id", entry.EntryID), slog.String("entry_number", entry.EntryNumber))
	c.JSON(http.StatusCreated, dto.ToEntryResponse(entry))
}

// listEntries godoc
// @Summary List journal entries
// @Description Lists entries in any status, optionally bounded by entry date
// @Tags entries
// @Produce  json
// @Param   orgId path string true "Organization ID"
// @Param   from query string false "First entry date (YYYY-MM-DD)"
// @Param   to query string false "Last entry date (YYYY-MM-DD)"
// @Param   limit query int false "Page size (max 500)"
// @Param   nextToken query string false "Cursor returned by the previous page"
// @Success 200 {object} dto.ListEntriesResponse
// @Failure 400 {object} map[string]string "Invalid date or token"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list entries"
// @Security BearerAuth
// @Router /organizations/{orgId}/entries [get]
func (h *journalHandler) listEntries(c *gin.Context) {
	logger, orgID, _, ok := requestScope(c)
	if !ok {
		return
	}
	var params dto.ListEntriesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindingError(c, logger, err)
		return
	}

	var filter domain.DateFilter
	var err error
	if params.From != "" {
		if filter.From, err = dto.ParseDate("from", params.From); err != nil {
			handleServiceError(c, logger, err, "Invalid date")
			return
		}
	}
	if params.To != "" {
		if filter.To, err = dto.ParseDate("to", params.To); err != nil {
			handleServiceError(c, logger, err, "Invalid date")
			return
		}
	}

	entries, err := h.journalService.ListEntries(c.Request.Context(), orgID, filter)
	if err != nil {
		handleServiceError(c, logger, err, "Failed to list journal entries")
		return
	}
	page, next, err := pagination.Page(entries, params.NextToken, params.Limit)
	if err != nil {
		handleServiceError(c, logger, apperrors.NewValidationError("nextToken", params.NextToken, err.Error()), "Invalid token")
		return
	}
	resp := dto.ToListEntriesResponse(page)
	resp.NextToken = next
	c.JSON(http.StatusOK, resp)
}

// getEntry godoc
// @Summary Get a journal entry
// @Tags entries
// @Produce  json
// @Param   orgId path string true "Organization ID"
// @Param   entryId path string true "Entry ID"
// @Success 200 {object} dto.EntryResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Entry not found"
// @Security BearerAuth
// @Router /organizations/{orgId}/entries/{entryId} [get]
func (h *journalHandler) getEntry(c *gin.Context) {
	logger, orgID, _, ok := requestScope(c)
	if !ok {
		return
	}
	entryID := c.Param("entryId")
	entry, err := h.journalService.GetEntryByID(c.Request.Context(), orgID, entryID)
	if err != nil {
		handleServiceError(c, logger.With(slog.String("entry_id", entryID)), err, "Failed to retrieve journal entry")
		return
	}
	c.JSON(http.StatusOK, dto.ToEntryResponse(entry))
}

// transition godoc
// @Summary Change the status of a journal entry
// @Description approve: DRAFT to APPROVED. lock: APPROVED to LOCKED. cancel: DRAFT or APPROVED to CANCELLED.
// @Tags entries
// @Produce  json
// @Param   orgId path string true "Organization ID"
// @Param   entryId path string true "Entry ID"
// @Success 200 {object} dto.EntryResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Entry not found"
// @Failure 409 {object} map[string]string "Transition not allowed from the current status"
// @Security BearerAuth
// @Router /organizations/{orgId}/entries/{entryId}/approve [post]
// @Router /organizations/{orgId}/entries/{entryId}/lock [post]
// @Router /organizations/{orgId}/entries/{entryId}/cancel [post]
func (h *journalHandler) transition(action string, apply func(ctx context.Context, organizationID, entryID, userID string) (*domain.JournalEntry, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger, orgID, userID, ok := requestScope(c)
		if !ok {
			return
		}
		entryID := c.Param("entryId")
		logger = logger.With(slog.String("entry_id", entryID), slog.String("action", action))

		entry, err := apply(c.Request.Context(), orgID, entryID, userID)
		if err != nil {
			handleServiceError(c, logger, err, "Failed to "+action+" journal entry")
			return
		}
		logger.Info("Journal entry status changed", slog.String("status", string(entry.Status)))
		c.JSON(http.StatusOK, dto.ToEntryResponse(entry))
	}
}
