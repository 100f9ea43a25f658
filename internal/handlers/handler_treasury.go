package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/andeantrade/treasury_backend/internal/apperrors"
	portssvc "github.com/andeantrade/treasury_backend/internal/core/ports/services"
	"github.com/andeantrade/treasury_backend/internal/dto"
	"github.com/andeantrade/treasury_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// treasuryHandler handles HTTP requests over the aggregation snapshot.
type treasuryHandler struct {
	treasuryService portssvc.TreasurySvcFacade
}

func newTreasuryHandler(ts portssvc.TreasurySvcFacade) *treasuryHandler {
	return &treasuryHandler{
		treasuryService: ts,
	}
}

// registerTreasuryRoutes registers routes related to the treasury summary.
func registerTreasuryRoutes(rg *gin.RouterGroup, treasuryService portssvc.TreasurySvcFacade) {
	h := newTreasuryHandler(treasuryService)

	treasury := rg.Group("/treasury")
	{
		treasury.GET("/summary", h.getSummary)
		treasury.POST("/initialize", h.initializeSnapshot)
		treasury.POST("/recompute", h.recomputeSnapshot)
	}
}

// getSummary godoc
// @Summary Get the treasury summary
// @Description Returns the materialized snapshot, or a live approximation computed on the fly when none exists
// @Tags treasury
// @Produce  json
// @Success 200 {object} dto.TreasurySummaryResponse
// @Failure 500 {object} map[string]string "Failed to read treasury summary"
// @Router /treasury/summary [get]
func (h *treasuryHandler) getSummary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	snapshot, err := h.treasuryService.ReadSnapshot(c.Request.Context())
	if err == nil {
		c.JSON(http.StatusOK, dto.TreasurySummaryResponse{Source: "snapshot", Snapshot: snapshot})
		return
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		logger.Error("Failed to read treasury snapshot", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read treasury summary"})
		return
	}

	live, err := h.treasuryService.LiveSummary(c.Request.Context())
	if err != nil {
		logger.Error("Failed to compute live treasury summary", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read treasury summary"})
		return
	}

	c.JSON(http.StatusOK, dto.TreasurySummaryResponse{Source: "live", Live: live})
}

// initializeSnapshot godoc
// @Summary Initialize the treasury snapshot
// @Description Writes a fresh aggregation document with totals from the active accounts and empty rollups, overwriting any existing snapshot
// @Tags treasury
// @Produce  json
// @Param   X-Actor-ID header string true "Acting user"
// @Success 201 {object} domain.TreasurySnapshot
// @Failure 500 {object} map[string]string "Failed to initialize snapshot"
// @Router /treasury/initialize [post]
func (h *treasuryHandler) initializeSnapshot(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	actorID, ok := middleware.GetActorIDFromContext(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing actor"})
		return
	}

	snapshot, err := h.treasuryService.InitializeSnapshot(c.Request.Context(), actorID)
	if err != nil {
		logger.Error("Failed to initialize treasury snapshot", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to initialize snapshot"})
		return
	}

	logger.Info("Treasury snapshot initialized", slog.String("actor_id", actorID))
	c.JSON(http.StatusCreated, snapshot)
}

// recomputeSnapshot godoc
// @Summary Rebuild the treasury snapshot
// @Description Recomputes the snapshot from scratch off the ledger, replacing the cached figures
// @Tags treasury
// @Produce  json
// @Param   X-Actor-ID header string true "Acting user"
// @Success 200 {object} domain.TreasurySnapshot
// @Failure 500 {object} map[string]string "Failed to recompute snapshot"
// @Router /treasury/recompute [post]
func (h *treasuryHandler) recomputeSnapshot(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	actorID, ok := middleware.GetActorIDFromContext(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing actor"})
		return
	}

	snapshot, err := h.treasuryService.FullRecompute(c.Request.Context(), actorID)
	if err != nil {
		logger.Error("Failed to recompute treasury snapshot", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to recompute snapshot"})
		return
	}

	logger.Info("Treasury snapshot recomputed", slog.String("actor_id", actorID))
	c.JSON(http.StatusOK, snapshot)
}
