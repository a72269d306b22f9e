package office

import "github.com/fuelflow/internal/provider"

// Handler serves the department-facing API.
type Handler struct {
	*provider.Container
}

// New creates the office handler.
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
