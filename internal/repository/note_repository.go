package repository

import (
	"github.com/fuelflow/internal/models"

	"gorm.io/gorm"
)

// NoteRepository is the order note data access interface.
type NoteRepository interface {
	Create(note *models.OrderNote) error
	List(filter NoteListFilter) ([]models.OrderNote, error)
	WithTx(tx *gorm.DB) *GormNoteRepository
}

// GormNoteRepository is the GORM implementation.
type GormNoteRepository struct {
	db *gorm.DB
}

// NewNoteRepository creates the note repository.
func NewNoteRepository(db *gorm.DB) *GormNoteRepository {
	return &GormNoteRepository{db: db}
}

// WithTx binds the repository to a transaction.
func (r *GormNoteRepository) WithTx(tx *gorm.DB) *GormNoteRepository {
	if tx == nil {
		return r
	}
	return &GormNoteRepository{db: tx}
}

// Create inserts a note.
func (r *GormNoteRepository) Create(note *models.OrderNote) error {
	return r.db.Create(note).Error
}

// List fetches the notes of an order, oldest first.
func (r *GormNoteRepository) List(filter NoteListFilter) ([]models.OrderNote, error) {
	var notes []models.OrderNote
	query := r.db.Where("order_ref = ?", filter.OrderRef)
	if filter.NoteType != "" {
		query = query.Where("note_type = ?", filter.NoteType)
	}
	if err := query.Order("created_at asc").Find(&notes).Error; err != nil {
		return nil, err
	}
	return notes, nil
}
