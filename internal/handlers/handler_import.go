package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/dto"
	"github.com/SscSPs/ledger_engine/internal/importer"
	"github.com/gin-gonic/gin"
)

const maxImportUploadBytes = 10 << 20

type importHandler struct {
	importService portssvc.ImportSvc
}

// registerImportRoutes registers the bulk import endpoints. limit guards both
// endpoints when non-nil.
func registerImportRoutes(rg *gin.RouterGroup, importService portssvc.ImportSvc, limit gin.HandlerFunc) {
	h := &importHandler{importService: importService}

	imports := rg.Group("/imports")
	if limit != nil {
		imports.Use(limit)
	}
	{
		imports.POST("", h.importJSON)
		imports.POST("/csv", h.importCSV)
	}
}

// importJSON godoc
// @Summary Import journal entries
// @Description Turns raw two-line records into journal entries. Every record is validated; the batch commits only when all pass.
// @Tags imports
// @Accept  json
// @Produce  json
// @Param   orgId path string true "Organization ID"
// @Param   batch body dto.ImportRequest true "Records to import"
// @Success 201 {object} dto.ImportResponse
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 422 {object} dto.ImportResponse "Itemized record errors, nothing committed"
// @Failure 429 {object} map[string]string "Too many requests"
// @Security BearerAuth
// @Router /organizations/{orgId}/imports [post]
func (h *importHandler) importJSON(c *gin.Context) {
	logger, orgID, userID, ok := requestScope(c)
	if !ok {
		return
	}
	var req dto.ImportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingError(c, logger, err)
		return
	}
	h.run(c, logger, orgID, userID, req.Records, domain.ImportOptions{Status: req.Status})
}

// importCSV godoc
// @Summary Import journal entries from CSV
// @Description Multipart upload of a headed CSV (date, debit_account, credit_account, amount, description).
// @Tags imports
// @Accept  multipart/form-data
// @Produce  json
// @Param   orgId path string true "Organization ID"
// @Param   file formData file true "CSV file"
// @Param   status formData string false "DRAFT or APPROVED"
// @Success 201 {object} dto.ImportResponse
// @Failure 400 {object} map[string]string "Unreadable file"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 422 {object} dto.ImportResponse "Itemized record errors, nothing committed"
// @Security BearerAuth
// @Router /organizations/{orgId}/imports/csv [post]
func (h *importHandler) importCSV(c *gin.Context) {
	logger, orgID, userID, ok := requestScope(c)
	if !ok {
		return
	}
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxImportUploadBytes)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		logger.Warn("CSV file missing from upload", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "A CSV file is required in the 'file' field"})
		return
	}
	f, err := fileHeader.Open()
	if err != nil {
		logger.Error("Failed to open uploaded file", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read uploaded file"})
		return
	}
	defer f.Close()

	records, err := importer.ReadRecords(f)
	if err != nil {
		logger.Warn("Failed to parse CSV upload", slog.String("file", fileHeader.Filename), slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid CSV: " + err.Error()})
		return
	}

	opts := domain.ImportOptions{Status: domain.JournalStatus(c.PostForm("status"))}
	h.run(c, logger.With(slog.String("file", fileHeader.Filename)), orgID, userID, records, opts)
}

func (h *importHandler) run(c *gin.Context, logger *slog.Logger, orgID, userID string, records []domain.RawRecord, opts domain.ImportOptions) {
	logger.Info("Received import", slog.Int("records", len(records)))

	result, err := h.importService.ImportJournalEntries(c.Request.Context(), orgID, userID, records, opts)
	var importErr *apperrors.ImportError
	if errors.As(err, &importErr) && result != nil {
		logger.Warn("Import rejected", slog.Int("errors", importErr.Count))
		c.JSON(http.StatusUnprocessableEntity, dto.ToImportResponse(result, err))
		return
	}
	if err != nil {
		handleServiceError(c, logger, err, "Failed to import journal entries")
		return
	}

	logger.Info("Import committed", slog.Int("entries", len(result.Entries)))
	c.JSON(http.StatusCreated, dto.ToImportResponse(result, nil))
}
