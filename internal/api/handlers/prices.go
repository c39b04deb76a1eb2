package handlers

import (
	"net/http"

	"github.com/HSchlagi/bess-simulation-sub000/internal/api/models"
	"github.com/HSchlagi/bess-simulation-sub000/internal/compare"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// PriceHandler serves resolved market price tables
type PriceHandler struct {
	prices compare.PriceResolver
	log    zerolog.Logger
}

func NewPriceHandler(prices compare.PriceResolver, log zerolog.Logger) *PriceHandler {
	return &PriceHandler{
		prices: prices,
		log:    log.With().Str("component", "price_handler").Logger(),
	}
}

// GetPrices handles GET /api/v1/prices?project_id=N. Without project_id the
// global table is returned.
func (h *PriceHandler) GetPrices(c *gin.Context) {
	var q models.PricesQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, models.NewError("INVALID_REQUEST", err.Error()))
		return
	}
	if q.ProjectID < 0 {
		c.JSON(http.StatusBadRequest, models.NewError("INVALID_REQUEST", "project_id must be >= 0"))
		return
	}

	prices, err := h.prices.ResolvePrices(c.Request.Context(), q.ProjectID)
	if err != nil {
		h.log.Error().Err(err).Int64("project_id", q.ProjectID).Msg("price resolution failed")
		c.JSON(http.StatusBadGateway, models.NewError("PRICE_RESOLUTION_ERROR", err.Error()))
		return
	}
	c.JSON(http.StatusOK, models.PricesResponse{ProjectID: q.ProjectID, Prices: prices})
}
