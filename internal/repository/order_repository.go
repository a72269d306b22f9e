package repository

import (
	"errors"
	"strings"

	"github.com/fuelflow/internal/models"

	"gorm.io/gorm"
)

// OrderRepository is the order data access interface.
type OrderRepository interface {
	Create(order *models.Order) error
	GetByID(id uint) (*models.Order, error)
	GetByOrderID(orderID string) (*models.Order, error)
	List(filter OrderListFilter) ([]models.Order, int64, error)
	ListAll() ([]models.Order, error)
	Update(order *models.Order) error
	UpdateFields(id uint, updates map[string]interface{}) error
	UpdateStatusFrom(id uint, fromStatus, toStatus string, updates map[string]interface{}) (int64, error)
	CountByOrderDatePrefix(prefix string) (int64, error)
	WithTx(tx *gorm.DB) *GormOrderRepository
}

// GormOrderRepository is the GORM implementation.
type GormOrderRepository struct {
	db *gorm.DB
}

// NewOrderRepository creates the order repository.
func NewOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// WithTx binds the repository to a transaction.
func (r *GormOrderRepository) WithTx(tx *gorm.DB) *GormOrderRepository {
	if tx == nil {
		return r
	}
	return &GormOrderRepository{db: tx}
}

// Create inserts an order.
func (r *GormOrderRepository) Create(order *models.Order) error {
	return r.db.Create(order).Error
}

// GetByID fetches an order with its client and notes.
func (r *GormOrderRepository) GetByID(id uint) (*models.Order, error) {
	var order models.Order
	query := r.db.Preload("Client").Preload("Notes", func(db *gorm.DB) *gorm.DB {
		return db.Order("created_at asc")
	})
	if err := query.First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

// GetByOrderID fetches an order by its human-readable number.
func (r *GormOrderRepository) GetByOrderID(orderID string) (*models.Order, error) {
	var order models.Order
	query := r.db.Preload("Client").Preload("Notes", func(db *gorm.DB) *gorm.DB {
		return db.Order("created_at asc")
	})
	if err := query.Where("order_id = ?", orderID).First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

// List fetches a page of orders matching the filter.
func (r *GormOrderRepository) List(filter OrderListFilter) ([]models.Order, int64, error) {
	var orders []models.Order
	query := r.db.Model(&models.Order{})

	if filter.CreatedBy != 0 {
		query = query.Where("created_by = ?", filter.CreatedBy)
	}
	if filter.ClientID != 0 {
		query = query.Where("client_id = ?", filter.ClientID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if len(filter.Statuses) > 0 {
		query = query.Where("status IN ?", filter.Statuses)
	}
	if filter.Warehouse != "" {
		query = query.Where("warehouse = ?", filter.Warehouse)
	}
	if filter.Priority != "" {
		query = query.Where("priority = ?", filter.Priority)
	}
	if filter.ProductType != "" {
		query = query.Where("product_type = ?", filter.ProductType)
	}
	if filter.NoDriver {
		query = query.Where("driver_name = '' OR driver_name IS NULL")
	}
	if filter.NoProforma {
		query = query.Where("proforma_number = '' OR proforma_number IS NULL")
	}
	if filter.Search != "" {
		like := "%" + strings.TrimSpace(filter.Search) + "%"
		query = query.Where("order_id LIKE ? OR driver_name LIKE ? OR truck_plate LIKE ?", like, like, like)
	}
	if filter.OrderDateFrom != nil {
		query = query.Where("order_date >= ?", *filter.OrderDateFrom)
	}
	if filter.OrderDateTo != nil {
		query = query.Where("order_date <= ?", *filter.OrderDateTo)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)
	if err := query.Preload("Client").Order("id desc").Find(&orders).Error; err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

// ListAll fetches every order with its client, for analytics folds.
func (r *GormOrderRepository) ListAll() ([]models.Order, error) {
	var orders []models.Order
	if err := r.db.Preload("Client").Order("id asc").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// Update saves the full order row.
func (r *GormOrderRepository) Update(order *models.Order) error {
	return r.db.Save(order).Error
}

// UpdateFields updates selected columns without a status check.
func (r *GormOrderRepository) UpdateFields(id uint, updates map[string]interface{}) error {
	return r.db.Model(&models.Order{}).Where("id = ?", id).Updates(updates).Error
}

// UpdateStatusFrom moves the status with a compare-and-set on the expected
// current value. Returns the number of rows changed; zero means a concurrent
// writer got there first.
func (r *GormOrderRepository) UpdateStatusFrom(id uint, fromStatus, toStatus string, updates map[string]interface{}) (int64, error) {
	if updates == nil {
		updates = map[string]interface{}{}
	}
	updates["status"] = toStatus
	result := r.db.Model(&models.Order{}).
		Where("id = ? AND status = ?", id, fromStatus).
		Updates(updates)
	return result.RowsAffected, result.Error
}

// CountByOrderDatePrefix counts orders whose number starts with the given
// prefix, used to allocate the next sequence of the day.
func (r *GormOrderRepository) CountByOrderDatePrefix(prefix string) (int64, error) {
	var total int64
	err := r.db.Model(&models.Order{}).
		Unscoped().
		Where("order_id LIKE ?", prefix+"%").
		Count(&total).Error
	return total, err
}
