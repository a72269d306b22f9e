package repository

import (
	"errors"
	"strings"

	"github.com/fuelflow/internal/models"

	"gorm.io/gorm"
)

// ClientRepository is the client data access interface.
type ClientRepository interface {
	Create(client *models.Client) error
	GetByID(id uint) (*models.Client, error)
	List(filter ReferenceListFilter) ([]models.Client, int64, error)
	Update(client *models.Client) error
	SetActive(id uint, active bool) error
}

// GormClientRepository is the GORM implementation.
type GormClientRepository struct {
	db *gorm.DB
}

// NewClientRepository creates the client repository.
func NewClientRepository(db *gorm.DB) *GormClientRepository {
	return &GormClientRepository{db: db}
}

// Create inserts a client.
func (r *GormClientRepository) Create(client *models.Client) error {
	return r.db.Create(client).Error
}

// GetByID fetches a client by ID.
func (r *GormClientRepository) GetByID(id uint) (*models.Client, error) {
	var client models.Client
	if err := r.db.First(&client, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &client, nil
}

// List fetches a page of clients matching the filter.
func (r *GormClientRepository) List(filter ReferenceListFilter) ([]models.Client, int64, error) {
	var clients []models.Client
	query := r.db.Model(&models.Client{})

	if filter.OnlyActive {
		query = query.Where("active = ?", true)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		like := "%" + search + "%"
		query = query.Where("client_name LIKE ? OR client_id LIKE ? OR contact_person LIKE ?", like, like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)
	if err := query.Order("client_name asc").Find(&clients).Error; err != nil {
		return nil, 0, err
	}
	return clients, total, nil
}

// Update saves the full client row.
func (r *GormClientRepository) Update(client *models.Client) error {
	return r.db.Save(client).Error
}

// SetActive toggles the client's active flag.
func (r *GormClientRepository) SetActive(id uint, active bool) error {
	return r.db.Model(&models.Client{}).Where("id = ?", id).Update("active", active).Error
}
