package repository

import (
	"errors"

	"github.com/fuelflow/internal/models"

	"gorm.io/gorm"
)

// DocumentRepository is the order document metadata access interface.
type DocumentRepository interface {
	Create(doc *models.Document) error
	GetByID(id uint) (*models.Document, error)
	ListByOrder(orderRef uint) ([]models.Document, error)
	Delete(id uint) error
}

// GormDocumentRepository is the GORM implementation.
type GormDocumentRepository struct {
	db *gorm.DB
}

// NewDocumentRepository creates the document repository.
func NewDocumentRepository(db *gorm.DB) *GormDocumentRepository {
	return &GormDocumentRepository{db: db}
}

// Create inserts a document record.
func (r *GormDocumentRepository) Create(doc *models.Document) error {
	return r.db.Create(doc).Error
}

// GetByID fetches a document record by ID.
func (r *GormDocumentRepository) GetByID(id uint) (*models.Document, error) {
	var doc models.Document
	if err := r.db.First(&doc, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &doc, nil
}

// ListByOrder fetches the documents attached to an order, newest first.
func (r *GormDocumentRepository) ListByOrder(orderRef uint) ([]models.Document, error) {
	var docs []models.Document
	if err := r.db.Where("order_ref = ?", orderRef).Order("uploaded_at desc").Find(&docs).Error; err != nil {
		return nil, err
	}
	return docs, nil
}

// Delete removes a document record.
func (r *GormDocumentRepository) Delete(id uint) error {
	return r.db.Delete(&models.Document{}, id).Error
}
