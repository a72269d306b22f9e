package office

import (
	"strings"

	"github.com/fuelflow/internal/http/handlers/shared"
	"github.com/fuelflow/internal/http/response"

	"github.com/gin-gonic/gin"
)

// ListPrices returns the current regulatory price per product type.
func (h *Handler) ListPrices(c *gin.Context) {
	prices, err := h.PriceService.CurrentAll()
	if err != nil {
		shared.RespondError(c, response.CodeInternal, "price fetch failed", err)
		return
	}
	response.Success(c, prices)
}

// PriceHistory returns the price history of one product type.
func (h *Handler) PriceHistory(c *gin.Context) {
	productType := strings.TrimSpace(c.Query("product_type"))
	if productType == "" {
		shared.RespondError(c, response.CodeBadRequest, "product_type is required", nil)
		return
	}
	history, err := h.PriceService.History(productType)
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.Success(c, history)
}
