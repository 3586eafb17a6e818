package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/dto"
	"github.com/gin-gonic/gin"
)

type periodHandler struct {
	periodService portssvc.PeriodSvcFacade
}

func registerPeriodRoutes(rg *gin.RouterGroup, periodService portssvc.PeriodSvcFacade) {
	h := &periodHandler{periodService: periodService}

	periods := rg.Group("/periods")
	{
		periods.POST("", h.createPeriod)
		periods.GET("", h.listPeriods)
		periods.PATCH("/:periodId", h.updatePeriod)
		periods.DELETE("/:periodId", h.deletePeriod)
	}
}

// createPeriod godoc
// @Summary Create an accounting period
// @Description Opens a period. Periods of one organization must not overlap.
// @Tags periods
// @Accept  json
// @Produce  json
// @Param   orgId path string true "Organization ID"
// @Param   period body dto.CreatePeriodRequest true "Period details"
// @Success 201 {object} dto.PeriodResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 409 {object} map[string]string "Overlaps an existing period"
// @Failure 500 {object} map[string]string "Failed to create period"
// @Security BearerAuth
// @Router /organizations/{orgId}/periods [post]
func (h *periodHandler) createPeriod(c *gin.Context) {
	logger, orgID, userID, ok := requestScope(c)
	if !ok {
		return
	}
	var req dto.CreatePeriodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingError(c, logger, err)
		return
	}

	period, err := h.periodService.CreatePeriod(c.Request.Context(), orgID, req, userID)
	if err != nil {
		handleServiceError(c, logger, err, "Failed to create period")
		return
	}
	logger.Info("Period created", slog.String("period_id", period.PeriodID))
	c.JSON(http.StatusCreated, dto.ToPeriodResponse(period))
}

// listPeriods godoc
// @Summary List accounting periods
// @Tags periods
// @Produce  json
// @Param   orgId path string true "Organization ID"
// @Success 200 {array} dto.PeriodResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list periods"
// @Security BearerAuth
// @Router /organizations/{orgId}/periods [get]
func (h *periodHandler) listPeriods(c *gin.Context) {
	logger, orgID, _, ok := requestScope(c)
	if !ok {
		return
	}
	periods, err := h.periodService.ListPeriods(c.Request.Context(), orgID)
	if err != nil {
		handleServiceError(c, logger, err, "Failed to list periods")
		return
	}
	c.JSON(http.StatusOK, dto.ToPeriodResponses(periods))
}

// updatePeriod godoc
// @Summary Update an accounting period
// @Tags periods
// @Accept  json
// @Produce  json
// @Param   orgId path string true "Organization ID"
// @Param   periodId path string true "Period ID"
// @Param   period body dto.UpdatePeriodRequest true "Fields to change"
// @Success 200 {object} dto.PeriodResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Period not found"
// @Failure 409 {object} map[string]string "Overlaps an existing period"
// @Security BearerAuth
// @Router /organizations/{orgId}/periods/{periodId} [patch]
func (h *periodHandler) updatePeriod(c *gin.Context) {
	logger, orgID, userID, ok := requestScope(c)
	if !ok {
		return
	}
	periodID := c.Param("periodId")
	var req dto.UpdatePeriodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingError(c, logger, err)
		return
	}

	period, err := h.periodService.UpdatePeriod(c.Request.Context(), orgID, periodID, req, userID)
	if err != nil {
		handleServiceError(c, logger.With(slog.String("period_id", periodID)), err, "Failed to update period")
		return
	}
	c.JSON(http.StatusOK, dto.ToPeriodResponse(period))
}

// deletePeriod godoc
// @Summary Delete an accounting period
// @Description Only inactive periods without journal entries can be deleted.
// @Tags periods
// @Param   orgId path string true "Organization ID"
// @Param   periodId path string true "Period ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Period not found"
// @Failure 409 {object} map[string]string "Period is active or referenced"
// @Security BearerAuth
// @Router /organizations/{orgId}/periods/{periodId} [delete]
func (h *periodHandler) deletePeriod(c *gin.Context) {
	logger, orgID, _, ok := requestScope(c)
	if !ok {
		return
	}
	periodID := c.Param("periodId")
	if err := h.periodService.DeletePeriod(c.Request.Context(), orgID, periodID); err != nil {
		handleServiceError(c, logger.With(slog.String("period_id", periodID)), err, "Failed to delete period")
		return
	}
	c.Status(http.StatusNoContent)
}
