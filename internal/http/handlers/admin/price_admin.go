package admin

import (
	"github.com/fuelflow/internal/http/handlers/shared"
	"github.com/fuelflow/internal/http/response"
	"github.com/fuelflow/internal/models"

	"github.com/gin-gonic/gin"
)

// UpdatePriceRequest is the regulatory price update payload.
type UpdatePriceRequest struct {
	ProductType string       `json:"product_type" binding:"required"`
	Unit        string       `json:"unit"`
	BasePrice   models.Money `json:"base_price" binding:"required"`
}

// UpdatePrice publishes a new regulatory price. The previous row is closed,
// not overwritten, so the history stays intact. Existing orders keep the
// price they were created with.
func (h *Handler) UpdatePrice(c *gin.Context) {
	actor, ok := shared.Actor(c)
	if !ok {
		return
	}
	var req UpdatePriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RespondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	price, err := h.PriceService.Update(actor, req.ProductType, req.Unit, req.BasePrice)
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.Success(c, price)
}
