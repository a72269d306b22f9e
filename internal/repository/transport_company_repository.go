package repository

import (
	"errors"
	"strings"

	"github.com/fuelflow/internal/models"

	"gorm.io/gorm"
)

// TransportCompanyRepository is the transport company data access interface.
type TransportCompanyRepository interface {
	Create(company *models.TransportCompany) error
	GetByID(id uint) (*models.TransportCompany, error)
	List(filter ReferenceListFilter) ([]models.TransportCompany, int64, error)
	Update(company *models.TransportCompany) error
	SetActive(id uint, active bool) error
}

// GormTransportCompanyRepository is the GORM implementation.
type GormTransportCompanyRepository struct {
	db *gorm.DB
}

// NewTransportCompanyRepository creates the transport company repository.
func NewTransportCompanyRepository(db *gorm.DB) *GormTransportCompanyRepository {
	return &GormTransportCompanyRepository{db: db}
}

// Create inserts a transport company.
func (r *GormTransportCompanyRepository) Create(company *models.TransportCompany) error {
	return r.db.Create(company).Error
}

// GetByID fetches a transport company by ID.
func (r *GormTransportCompanyRepository) GetByID(id uint) (*models.TransportCompany, error) {
	var company models.TransportCompany
	if err := r.db.First(&company, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &company, nil
}

// List fetches a page of transport companies matching the filter.
func (r *GormTransportCompanyRepository) List(filter ReferenceListFilter) ([]models.TransportCompany, int64, error) {
	var companies []models.TransportCompany
	query := r.db.Model(&models.TransportCompany{})

	if filter.OnlyActive {
		query = query.Where("active = ?", true)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		like := "%" + search + "%"
		query = query.Where("company_name LIKE ? OR company_id LIKE ?", like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)
	if err := query.Order("company_name asc").Find(&companies).Error; err != nil {
		return nil, 0, err
	}
	return companies, total, nil
}

// Update saves the full transport company row.
func (r *GormTransportCompanyRepository) Update(company *models.TransportCompany) error {
	return r.db.Save(company).Error
}

// SetActive toggles the transport company's active flag.
func (r *GormTransportCompanyRepository) SetActive(id uint, active bool) error {
	return r.db.Model(&models.TransportCompany{}).Where("id = ?", id).Update("active", active).Error
}
