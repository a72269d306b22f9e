package repository

import (
	"errors"
	"strings"

	"github.com/fuelflow/internal/models"

	"gorm.io/gorm"
)

// DriverRepository is the driver data access interface.
type DriverRepository interface {
	Create(driver *models.Driver) error
	GetByID(id uint) (*models.Driver, error)
	List(filter ReferenceListFilter) ([]models.Driver, int64, error)
	Update(driver *models.Driver) error
	SetActive(id uint, active bool) error
}

// GormDriverRepository is the GORM implementation.
type GormDriverRepository struct {
	db *gorm.DB
}

// NewDriverRepository creates the driver repository.
func NewDriverRepository(db *gorm.DB) *GormDriverRepository {
	return &GormDriverRepository{db: db}
}

// Create inserts a driver.
func (r *GormDriverRepository) Create(driver *models.Driver) error {
	return r.db.Create(driver).Error
}

// GetByID fetches a driver by ID.
func (r *GormDriverRepository) GetByID(id uint) (*models.Driver, error) {
	var driver models.Driver
	if err := r.db.First(&driver, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &driver, nil
}

// List fetches a page of drivers matching the filter.
func (r *GormDriverRepository) List(filter ReferenceListFilter) ([]models.Driver, int64, error) {
	var drivers []models.Driver
	query := r.db.Model(&models.Driver{})

	if filter.OnlyActive {
		query = query.Where("active = ?", true)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		like := "%" + search + "%"
		query = query.Where("driver_name LIKE ? OR driver_id LIKE ? OR license_number LIKE ?", like, like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)
	if err := query.Order("driver_name asc").Find(&drivers).Error; err != nil {
		return nil, 0, err
	}
	return drivers, total, nil
}

// Update saves the full driver row.
func (r *GormDriverRepository) Update(driver *models.Driver) error {
	return r.db.Save(driver).Error
}

// SetActive toggles the driver's active flag.
func (r *GormDriverRepository) SetActive(id uint, active bool) error {
	return r.db.Model(&models.Driver{}).Where("id = ?", id).Update("active", active).Error
}
