package repository

import (
	"errors"
	"strings"

	"github.com/fuelflow/internal/models"

	"gorm.io/gorm"
)

// TruckRepository is the truck data access interface.
type TruckRepository interface {
	Create(truck *models.Truck) error
	GetByID(id uint) (*models.Truck, error)
	List(filter ReferenceListFilter) ([]models.Truck, int64, error)
	Update(truck *models.Truck) error
	SetActive(id uint, active bool) error
}

// GormTruckRepository is the GORM implementation.
type GormTruckRepository struct {
	db *gorm.DB
}

// NewTruckRepository creates the truck repository.
func NewTruckRepository(db *gorm.DB) *GormTruckRepository {
	return &GormTruckRepository{db: db}
}

// Create inserts a truck.
func (r *GormTruckRepository) Create(truck *models.Truck) error {
	return r.db.Create(truck).Error
}

// GetByID fetches a truck by ID.
func (r *GormTruckRepository) GetByID(id uint) (*models.Truck, error) {
	var truck models.Truck
	if err := r.db.First(&truck, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &truck, nil
}

// List fetches a page of trucks matching the filter.
func (r *GormTruckRepository) List(filter ReferenceListFilter) ([]models.Truck, int64, error) {
	var trucks []models.Truck
	query := r.db.Model(&models.Truck{})

	if filter.OnlyActive {
		query = query.Where("active = ?", true)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		like := "%" + search + "%"
		query = query.Where("plate_number LIKE ? OR truck_id LIKE ?", like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)
	if err := query.Order("plate_number asc").Find(&trucks).Error; err != nil {
		return nil, 0, err
	}
	return trucks, total, nil
}

// Update saves the full truck row.
func (r *GormTruckRepository) Update(truck *models.Truck) error {
	return r.db.Save(truck).Error
}

// SetActive toggles the truck's active flag.
func (r *GormTruckRepository) SetActive(id uint, active bool) error {
	return r.db.Model(&models.Truck{}).Where("id = ?", id).Update("active", active).Error
}
