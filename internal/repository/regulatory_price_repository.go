package repository

import (
	"errors"
	"time"

	"github.com/fuelflow/internal/models"

	"gorm.io/gorm"
)

// RegulatoryPriceRepository is the regulatory price data access interface.
type RegulatoryPriceRepository interface {
	Current(productType string) (*models.RegulatoryPrice, error)
	CurrentAll() ([]models.RegulatoryPrice, error)
	History(productType string) ([]models.RegulatoryPrice, error)
	Replace(price *models.RegulatoryPrice) error
}

// GormRegulatoryPriceRepository is the GORM implementation.
type GormRegulatoryPriceRepository struct {
	db *gorm.DB
}

// NewRegulatoryPriceRepository creates the regulatory price repository.
func NewRegulatoryPriceRepository(db *gorm.DB) *GormRegulatoryPriceRepository {
	return &GormRegulatoryPriceRepository{db: db}
}

// Current fetches the open price row for a product type.
func (r *GormRegulatoryPriceRepository) Current(productType string) (*models.RegulatoryPrice, error) {
	var price models.RegulatoryPrice
	if err := r.db.Where("product_type = ? AND effective_to IS NULL", productType).
		Order("effective_from desc").
		First(&price).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &price, nil
}

// CurrentAll fetches the open price row of every product type.
func (r *GormRegulatoryPriceRepository) CurrentAll() ([]models.RegulatoryPrice, error) {
	var prices []models.RegulatoryPrice
	if err := r.db.Where("effective_to IS NULL").
		Order("product_type asc").
		Find(&prices).Error; err != nil {
		return nil, err
	}
	return prices, nil
}

// History fetches all price rows of a product type, newest first.
func (r *GormRegulatoryPriceRepository) History(productType string) ([]models.RegulatoryPrice, error) {
	var prices []models.RegulatoryPrice
	if err := r.db.Where("product_type = ?", productType).
		Order("effective_from desc").
		Find(&prices).Error; err != nil {
		return nil, err
	}
	return prices, nil
}

// Replace closes the open row for the product type and inserts the new one,
// in a single transaction.
func (r *GormRegulatoryPriceRepository) Replace(price *models.RegulatoryPrice) error {
	now := time.Now()
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.RegulatoryPrice{}).
			Where("product_type = ? AND effective_to IS NULL", price.ProductType).
			Update("effective_to", now).Error; err != nil {
			return err
		}
		return tx.Create(price).Error
	})
}
