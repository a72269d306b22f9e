package models

import (
	"time"

	"gorm.io/gorm"
)

// Client is a fuel buyer. Orders reference clients by ID, never own them.
type Client struct {
	ID            uint           `gorm:"primarykey" json:"id"`
	ClientID      string         `gorm:"uniqueIndex;not null" json:"client_id"`
	ClientName    string         `gorm:"index;not null" json:"client_name"`
	Address       string         `json:"address,omitempty"`
	ContactPerson string         `json:"contact_person,omitempty"`
	Phone         string         `json:"phone,omitempty"`
	Email         string         `json:"email,omitempty"`
	TaxID         string         `json:"tax_id,omitempty"`
	AssignedSM    string         `json:"assigned_sm,omitempty"` // sales manager username
	PaymentTerms  string         `json:"payment_terms,omitempty"`
	CreditLimit   *Money         `gorm:"type:decimal(20,2)" json:"credit_limit,omitempty"`
	Notes         string         `json:"notes,omitempty"`
	Active        bool           `gorm:"index;not null;default:true" json:"active"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName sets the table name.
func (Client) TableName() string {
	return "clients"
}

// Driver is a transport driver reference entity.
type Driver struct {
	ID              uint           `gorm:"primarykey" json:"id"`
	DriverID        string         `gorm:"uniqueIndex;not null" json:"driver_id"`
	DriverName      string         `gorm:"index;not null" json:"driver_name"`
	LicenseNumber   string         `gorm:"not null" json:"license_number"`
	Phone           string         `json:"phone,omitempty"`
	Email           string         `json:"email,omitempty"`
	LicenseExpiry   *time.Time     `json:"license_expiry,omitempty"`
	AssignedCompany string         `json:"assigned_company,omitempty"`
	Active          bool           `gorm:"index;not null;default:true" json:"active"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName sets the table name.
func (Driver) TableName() string {
	return "drivers"
}

// Truck is a transport vehicle reference entity.
type Truck struct {
	ID                 uint           `gorm:"primarykey" json:"id"`
	TruckID            string         `gorm:"uniqueIndex;not null" json:"truck_id"`
	PlateNumber        string         `gorm:"index;not null" json:"plate_number"`
	TruckType          string         `json:"truck_type,omitempty"`
	Capacity           *Money         `gorm:"type:decimal(20,2)" json:"capacity,omitempty"`
	CapacityUnit       string         `json:"capacity_unit,omitempty"`
	AssignedDriverID   *uint          `gorm:"index" json:"assigned_driver_id,omitempty"`
	TransportCompanyID *uint          `gorm:"index" json:"transport_company_id,omitempty"`
	Active             bool           `gorm:"index;not null;default:true" json:"active"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName sets the table name.
func (Truck) TableName() string {
	return "trucks"
}

// TransportCompany is a haulage contractor reference entity.
type TransportCompany struct {
	ID            uint           `gorm:"primarykey" json:"id"`
	CompanyID     string         `gorm:"uniqueIndex;not null" json:"company_id"`
	CompanyName   string         `gorm:"index;not null" json:"company_name"`
	ContactPerson string         `json:"contact_person,omitempty"`
	Phone         string         `json:"phone,omitempty"`
	Email         string         `json:"email,omitempty"`
	Address       string         `json:"address,omitempty"`
	RatePerKM     *Money         `gorm:"type:decimal(20,2)" json:"rate_per_km,omitempty"`
	RatePerLoad   *Money         `gorm:"type:decimal(20,2)" json:"rate_per_load,omitempty"`
	PaymentTerms  string         `json:"payment_terms,omitempty"`
	Notes         string         `json:"notes,omitempty"`
	Active        bool           `gorm:"index;not null;default:true" json:"active"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName sets the table name.
func (TransportCompany) TableName() string {
	return "transport_companies"
}
