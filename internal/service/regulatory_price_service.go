package service

import (
	"fmt"
	"time"

	"github.com/fuelflow/internal/models"
	"github.com/fuelflow/internal/repository"
	"github.com/fuelflow/internal/workflow"

	"github.com/shopspring/decimal"
)

// RegulatoryPriceService manages the state-published base prices. Updates
// never rewrite existing orders; the price is copied onto the order at
// creation time.
type RegulatoryPriceService struct {
	priceRepo repository.RegulatoryPriceRepository
}

// NewRegulatoryPriceService creates the regulatory price service.
func NewRegulatoryPriceService(priceRepo repository.RegulatoryPriceRepository) *RegulatoryPriceService {
	return &RegulatoryPriceService{priceRepo: priceRepo}
}

// Current returns the open price row of a product type.
func (s *RegulatoryPriceService) Current(productType string) (*models.RegulatoryPrice, error) {
	price, err := s.priceRepo.Current(productType)
	if err != nil {
		return nil, err
	}
	if price == nil {
		return nil, ErrNotFound
	}
	return price, nil
}

// CurrentAll returns the open price row of every product type.
func (s *RegulatoryPriceService) CurrentAll() ([]models.RegulatoryPrice, error) {
	return s.priceRepo.CurrentAll()
}

// History returns the price history of a product type, newest first.
func (s *RegulatoryPriceService) History(productType string) ([]models.RegulatoryPrice, error) {
	if !validProductType(productType) {
		return nil, fmt.Errorf("%w: unknown product type %q", workflow.ErrValidation, productType)
	}
	return s.priceRepo.History(productType)
}

// Update closes the current price row and opens a new one.
func (s *RegulatoryPriceService) Update(actor Actor, productType, unit string, basePrice models.Money) (*models.RegulatoryPrice, error) {
	if !validProductType(productType) {
		return nil, fmt.Errorf("%w: unknown product type %q", workflow.ErrValidation, productType)
	}
	if basePrice.Decimal.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: base price must be positive", workflow.ErrValidation)
	}

	price := &models.RegulatoryPrice{
		ProductType:   productType,
		BasePrice:     models.NewMoneyFromDecimal(basePrice.Decimal),
		Unit:          unit,
		EffectiveFrom: time.Now(),
		UpdatedBy:     actor.UserID,
	}
	if err := s.priceRepo.Replace(price); err != nil {
		return nil, err
	}
	return price, nil
}
