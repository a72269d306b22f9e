package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/fuelflow/internal/constants"
	"github.com/fuelflow/internal/models"
	"github.com/fuelflow/internal/repository"
	"github.com/fuelflow/internal/workflow"
)

// NoteService handles manual order notes. Notes are append-only; there is no
// edit or delete.
type NoteService struct {
	orderRepo repository.OrderRepository
	noteRepo  repository.NoteRepository
}

// NewNoteService creates the note service.
func NewNoteService(orderRepo repository.OrderRepository, noteRepo repository.NoteRepository) *NoteService {
	return &NoteService{orderRepo: orderRepo, noteRepo: noteRepo}
}

// Add appends a general note to an order the actor may see.
func (s *NoteService) Add(actor Actor, orderID uint, text string) (*models.OrderNote, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("%w: note text is required", workflow.ErrValidation)
	}

	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil || !workflow.CanViewOrder(actor.Department, actor.UserID, order) {
		return nil, ErrNotFound
	}

	note := &models.OrderNote{
		OrderRef:       order.ID,
		OrderID:        order.OrderID,
		UserID:         actor.UserID,
		UserName:       actor.Username,
		UserDepartment: actor.Department,
		Note:           text,
		NoteType:       constants.NoteTypeGeneral,
		CreatedAt:      time.Now(),
	}
	if err := s.noteRepo.Create(note); err != nil {
		return nil, err
	}
	return note, nil
}

// List returns the notes of an order the actor may see, oldest first.
func (s *NoteService) List(actor Actor, orderID uint) ([]models.OrderNote, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil || !workflow.CanViewOrder(actor.Department, actor.UserID, order) {
		return nil, ErrNotFound
	}
	return s.noteRepo.List(repository.NoteListFilter{OrderRef: order.ID})
}
