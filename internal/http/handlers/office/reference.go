package office

import (
	"strings"

	"github.com/fuelflow/internal/http/handlers/shared"
	"github.com/fuelflow/internal/http/response"
	"github.com/fuelflow/internal/repository"

	"github.com/gin-gonic/gin"
)

// Reference reads serve the order form dropdowns. Only active rows are
// returned here; admin endpoints manage the full set.
func referenceFilter(c *gin.Context) repository.ReferenceListFilter {
	return repository.ReferenceListFilter{
		Search:     strings.TrimSpace(c.Query("search")),
		OnlyActive: true,
	}
}

// ListClients lists active clients.
func (h *Handler) ListClients(c *gin.Context) {
	clients, _, err := h.ReferenceService.ListClients(referenceFilter(c))
	if err != nil {
		shared.RespondError(c, response.CodeInternal, "client fetch failed", err)
		return
	}
	response.Success(c, clients)
}

// ListDrivers lists active drivers.
func (h *Handler) ListDrivers(c *gin.Context) {
	drivers, _, err := h.ReferenceService.ListDrivers(referenceFilter(c))
	if err != nil {
		shared.RespondError(c, response.CodeInternal, "driver fetch failed", err)
		return
	}
	response.Success(c, drivers)
}

// ListTrucks lists active trucks.
func (h *Handler) ListTrucks(c *gin.Context) {
	trucks, _, err := h.ReferenceService.ListTrucks(referenceFilter(c))
	if err != nil {
		shared.RespondError(c, response.CodeInternal, "truck fetch failed", err)
		return
	}
	response.Success(c, trucks)
}

// ListTransportCompanies lists active transport companies.
func (h *Handler) ListTransportCompanies(c *gin.Context) {
	companies, _, err := h.ReferenceService.ListTransportCompanies(referenceFilter(c))
	if err != nil {
		shared.RespondError(c, response.CodeInternal, "transport company fetch failed", err)
		return
	}
	response.Success(c, companies)
}
