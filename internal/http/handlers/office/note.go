package office

import (
	"github.com/fuelflow/internal/http/handlers/shared"
	"github.com/fuelflow/internal/http/response"

	"github.com/gin-gonic/gin"
)

// AddNoteRequest is a free-form note payload.
type AddNoteRequest struct {
	Note string `json:"note" binding:"required"`
}

// AddNote appends a note to an order's audit trail.
func (h *Handler) AddNote(c *gin.Context) {
	actor, ok := shared.Actor(c)
	if !ok {
		return
	}
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req AddNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RespondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	note, err := h.NoteService.Add(actor, orderID, req.Note)
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.Success(c, note)
}

// ListNotes returns an order's audit trail in chronological order.
func (h *Handler) ListNotes(c *gin.Context) {
	actor, ok := shared.Actor(c)
	if !ok {
		return
	}
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	notes, err := h.NoteService.List(actor, orderID)
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.Success(c, notes)
}
