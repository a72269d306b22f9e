package admin

import (
	"strconv"

	"github.com/fuelflow/internal/http/handlers/shared"
	"github.com/fuelflow/internal/http/response"
	"github.com/fuelflow/internal/provider"

	"github.com/gin-gonic/gin"
)

// Handler serves the administration API.
type Handler struct {
	*provider.Container
}

// New creates the admin handler.
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}

func parseIDParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	parsed, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || parsed == 0 {
		shared.RespondError(c, response.CodeBadRequest, "invalid id", nil)
		return 0, false
	}
	return uint(parsed), true
}

func pageParams(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	return shared.NormalizePagination(page, pageSize)
}
