package models

import (
	"time"
)

// RegulatoryPrice is the state-published base price for a product type.
// Updates close the current row (effective_to) and insert a new one, so the
// price history stays queryable.
type RegulatoryPrice struct {
	ID            uint       `gorm:"primarykey" json:"id"`
	ProductType   string     `gorm:"index;not null" json:"product_type"`
	BasePrice     Money      `gorm:"type:decimal(20,2);not null" json:"base_price"`
	Unit          string     `gorm:"not null" json:"unit"`
	EffectiveFrom time.Time  `gorm:"index;not null" json:"effective_from"`
	EffectiveTo   *time.Time `gorm:"index" json:"effective_to,omitempty"`
	UpdatedBy     uint       `json:"updated_by,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

// TableName sets the table name.
func (RegulatoryPrice) TableName() string {
	return "regulatory_prices"
}
