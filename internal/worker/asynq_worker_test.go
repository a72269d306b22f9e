package worker

import (
	"testing"

	"github.com/fuelflow/internal/constants"
	"github.com/fuelflow/internal/models"
)

func TestLastDisputeReasonEmptyNotes(t *testing.T) {
	order := &models.Order{}
	if got := lastDisputeReason(order); got != "" {
		t.Fatalf("expected empty reason, got %q", got)
	}
}

func TestLastDisputeReasonPicksLatestDisputeNote(t *testing.T) {
	order := &models.Order{
		Notes: []models.OrderNote{
			{
				NoteType: constants.NoteTypeStatusChange,
				Note:     "Status changed from Pending Approval to Approved",
			},
			{
				NoteType: constants.NoteTypeGeneral,
				Note:     "Client called about to Disputed. Reason: not a transition note",
			},
			{
				NoteType: constants.NoteTypeStatusChange,
				Note:     "Status changed from Delivered to Disputed. Reason: quantity short by 200L",
			},
		},
	}
	if got := lastDisputeReason(order); got != "quantity short by 200L" {
		t.Fatalf("unexpected reason %q", got)
	}
}
