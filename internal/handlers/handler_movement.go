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

// movementHandler handles HTTP requests related to ledger movements.
type movementHandler struct {
	movementService portssvc.MovementSvcFacade
}

func newMovementHandler(ms portssvc.MovementSvcFacade) *movementHandler {
	return &movementHandler{
		movementService: ms,
	}
}

// registerMovementRoutes registers routes related to movements.
func registerMovementRoutes(rg *gin.RouterGroup, movementService portssvc.MovementSvcFacade) {
	h := newMovementHandler(movementService)

	movements := rg.Group("/movements")
	{
		movements.POST("", h.registerMovement)
		movements.GET("", h.listMovements)
		movements.GET("/:id", h.getMovement)
		movements.PUT("/:id", h.updateMovement)
		movements.POST("/:id/void", h.voidMovement)
	}
}

// registerMovement godoc
// @Summary Register a movement
// @Description Records an executed money movement and updates the linked account balances
// @Tags movements
// @Accept  json
// @Produce  json
// @Param   movement body dto.RegisterMovementRequest true "Movement details"
// @Param   X-Actor-ID header string true "Acting user"
// @Success 201 {object} dto.MovementResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 404 {object} map[string]string "Linked account not found"
// @Failure 500 {object} map[string]string "Failed to register movement"
// @Router /movements [post]
func (h *movementHandler) registerMovement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.RegisterMovementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for RegisterMovement", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := middleware.GetActorIDFromContext(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing actor"})
		return
	}

	movement, err := h.movementService.RegisterMovement(c.Request.Context(), req, actorID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error registering movement", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to register movement", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register movement"})
		}
		return
	}

	logger.Info("Movement registered",
		slog.String("movement_id", movement.MovementID),
		slog.String("number", movement.Number))
	c.JSON(http.StatusCreated, dto.ToMovementResponse(movement))
}

// getMovement godoc
// @Summary Get a movement by ID
// @Description Retrieves a single movement, voided ones included
// @Tags movements
// @Produce  json
// @Param   id path string true "Movement ID"
// @Success 200 {object} dto.MovementResponse
// @Failure 404 {object} map[string]string "Movement not found"
// @Failure 500 {object} map[string]string "Failed to retrieve movement"
// @Router /movements/{id} [get]
func (h *movementHandler) getMovement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	movementID := c.Param("id")

	movement, err := h.movementService.GetMovementByID(c.Request.Context(), movementID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Movement not found"})
		} else {
			logger.Error("Failed to get movement", slog.String("movement_id", movementID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve movement"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToMovementResponse(movement))
}

// listMovements godoc
// @Summary List movements
// @Description Lists movements filtered by kind, currency, status, account or date range
// @Tags movements
// @Produce  json
// @Param   kind query string false "Movement kind"
// @Param   currency query string false "Currency code (USD or PEN)"
// @Param   status query string false "Movement status"
// @Param   sourceAccountID query string false "Account on either side of the movement"
// @Param   from query string false "Start date (inclusive), YYYY-MM-DD"
// @Param   to query string false "End date (inclusive), YYYY-MM-DD"
// @Param   limit query int false "Maximum rows returned (default 50)"
// @Success 200 {array} dto.MovementResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 500 {object} map[string]string "Failed to list movements"
// @Router /movements [get]
func (h *movementHandler) listMovements(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListMovementsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	movements, err := h.movementService.ListMovements(c.Request.Context(), params.ToFilter())
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to list movements", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list movements"})
		return
	}

	c.JSON(http.StatusOK, dto.ToMovementResponses(movements))
}

// updateMovement godoc
// @Summary Update a movement
// @Description Amends an executed movement; balances and the treasury cache are adjusted by the delta
// @Tags movements
// @Accept  json
// @Produce  json
// @Param   id path string true "Movement ID"
// @Param   movement body dto.UpdateMovementRequest true "Fields to update"
// @Param   X-Actor-ID header string true "Acting user"
// @Success 200 {object} dto.MovementResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 404 {object} map[string]string "Movement not found"
// @Failure 409 {object} map[string]string "Movement is voided or belongs to a conversion"
// @Failure 500 {object} map[string]string "Failed to update movement"
// @Router /movements/{id} [put]
func (h *movementHandler) updateMovement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	movementID := c.Param("id")

	var req dto.UpdateMovementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := middleware.GetActorIDFromContext(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing actor"})
		return
	}

	movement, err := h.movementService.UpdateMovement(c.Request.Context(), movementID, req, actorID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Movement not found"})
		} else if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrConflict) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to update movement", slog.String("movement_id", movementID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update movement"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToMovementResponse(movement))
}

// voidMovement godoc
// @Summary Void a movement
// @Description Reverses a movement's balance effects and marks it VOIDED; the row is kept for audit
// @Tags movements
// @Produce  json
// @Param   id path string true "Movement ID"
// @Param   X-Actor-ID header string true "Acting user"
// @Success 200 {object} dto.MovementResponse
// @Failure 404 {object} map[string]string "Movement not found"
// @Failure 409 {object} map[string]string "Movement already voided or belongs to a conversion"
// @Failure 500 {object} map[string]string "Failed to void movement"
// @Router /movements/{id}/void [post]
func (h *movementHandler) voidMovement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	movementID := c.Param("id")

	actorID, ok := middleware.GetActorIDFromContext(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing actor"})
		return
	}

	movement, err := h.movementService.VoidMovement(c.Request.Context(), movementID, actorID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Movement not found"})
		} else if errors.Is(err, apperrors.ErrConflict) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to void movement", slog.String("movement_id", movementID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to void movement"})
		}
		return
	}

	logger.Info("Movement voided", slog.String("movement_id", movementID))
	c.JSON(http.StatusOK, dto.ToMovementResponse(movement))
}
