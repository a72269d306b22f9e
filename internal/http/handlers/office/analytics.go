package office

import (
	"fmt"
	"time"

	"github.com/fuelflow/internal/http/handlers/shared"
	"github.com/fuelflow/internal/http/response"

	"github.com/gin-gonic/gin"
)

// AnalyticsReport returns the management overview.
func (h *Handler) AnalyticsReport(c *gin.Context) {
	forceRefresh := c.Query("refresh") == "true"
	report, err := h.AnalyticsService.Report(c.Request.Context(), forceRefresh)
	if err != nil {
		shared.RespondError(c, response.CodeInternal, "analytics report failed", err)
		return
	}
	response.Success(c, report)
}

// ExportOrdersCSV streams the order book as a CSV download.
func (h *Handler) ExportOrdersCSV(c *gin.Context) {
	data, err := h.AnalyticsService.ExportOrdersCSV()
	if err != nil {
		shared.RespondError(c, response.CodeInternal, "order export failed", err)
		return
	}
	filename := fmt.Sprintf("orders_%s.csv", time.Now().Format("20060102_150405"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(200, "text/csv", data)
}
