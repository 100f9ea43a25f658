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

// conversionHandler handles HTTP requests related to currency conversions.
type conversionHandler struct {
	conversionService portssvc.ConversionSvcFacade
}

func newConversionHandler(cs portssvc.ConversionSvcFacade) *conversionHandler {
	return &conversionHandler{
		conversionService: cs,
	}
}

// registerConversionRoutes registers routes related to conversions.
func registerConversionRoutes(rg *gin.RouterGroup, conversionService portssvc.ConversionSvcFacade) {
	h := newConversionHandler(conversionService)

	conversions := rg.Group("/conversions")
	{
		conversions.POST("", h.registerConversion)
		conversions.GET("", h.listConversions)
		conversions.GET("/:id", h.getConversion)
	}
}

// registerConversion godoc
// @Summary Register a currency conversion
// @Description Records a USD/PEN exchange and the two linked movement legs in a single transaction
// @Tags conversions
// @Accept  json
// @Produce  json
// @Param   conversion body dto.RegisterConversionRequest true "Conversion details"
// @Param   X-Actor-ID header string true "Acting user"
// @Success 201 {object} dto.RegisterConversionResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 404 {object} map[string]string "Linked account not found"
// @Failure 500 {object} map[string]string "Failed to register conversion"
// @Router /conversions [post]
func (h *conversionHandler) registerConversion(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.RegisterConversionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for RegisterConversion", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := middleware.GetActorIDFromContext(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing actor"})
		return
	}

	conversion, legs, err := h.conversionService.RegisterConversion(c.Request.Context(), req, actorID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error registering conversion", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to register conversion", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register conversion"})
		}
		return
	}

	logger.Info("Conversion registered",
		slog.String("conversion_id", conversion.ConversionID),
		slog.String("number", conversion.Number))
	c.JSON(http.StatusCreated, dto.RegisterConversionResponse{
		Conversion: dto.ToConversionResponse(conversion),
		Legs:       dto.ToMovementResponses(legs),
	})
}

// getConversion godoc
// @Summary Get a conversion by ID
// @Description Retrieves a single conversion record
// @Tags conversions
// @Produce  json
// @Param   id path string true "Conversion ID"
// @Success 200 {object} dto.ConversionResponse
// @Failure 404 {object} map[string]string "Conversion not found"
// @Failure 500 {object} map[string]string "Failed to retrieve conversion"
// @Router /conversions/{id} [get]
func (h *conversionHandler) getConversion(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	conversionID := c.Param("id")

	conversion, err := h.conversionService.GetConversionByID(c.Request.Context(), conversionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Conversion not found"})
		} else {
			logger.Error("Failed to get conversion", slog.String("conversion_id", conversionID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve conversion"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToConversionResponse(conversion))
}

// listConversions godoc
// @Summary List conversions
// @Description Lists conversions filtered by origin currency, entity or date range
// @Tags conversions
// @Produce  json
// @Param   originCurrency query string false "Origin currency (USD or PEN)"
// @Param   entity query string false "Exchange entity"
// @Param   from query string false "Start date (inclusive), YYYY-MM-DD"
// @Param   to query string false "End date (inclusive), YYYY-MM-DD"
// @Param   limit query int false "Maximum rows returned (default 50)"
// @Success 200 {array} dto.ConversionResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 500 {object} map[string]string "Failed to list conversions"
// @Router /conversions [get]
func (h *conversionHandler) listConversions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListConversionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	conversions, err := h.conversionService.ListConversions(c.Request.Context(), params.ToFilter())
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to list conversions", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list conversions"})
		return
	}

	c.JSON(http.StatusOK, dto.ToConversionResponses(conversions))
}
