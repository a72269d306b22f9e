package models

import (
	"time"

	"gorm.io/gorm"
)

// Order is the fuel-distribution order. Commercial fields are set once at
// creation; lifecycle fields are stamped by the workflow transitions and
// Finance document-entry actions, never edited directly.
type Order struct {
	ID        uint   `gorm:"primarykey" json:"id"`
	OrderID   string `gorm:"uniqueIndex;not null" json:"order_id"` // human-assigned order number
	OrderDate string `gorm:"not null" json:"order_date"`
	CreatedBy uint   `gorm:"index;not null" json:"created_by"` // Sales user that owns the order
	ClientID  uint   `gorm:"index;not null" json:"client_id"`

	// Commercial fields, immutable after creation.
	ProductType     string `gorm:"index;not null" json:"product_type"`
	Unit            string `gorm:"not null" json:"unit"`
	Quantity        Money  `gorm:"type:decimal(20,2);not null;default:0" json:"quantity"`
	Margin          Money  `gorm:"type:decimal(20,2);not null;default:0" json:"margin"`
	RegulatoryPrice Money  `gorm:"type:decimal(20,2);not null;default:0" json:"regulatory_price"`
	PriceWithMargin Money  `gorm:"type:decimal(20,2);not null;default:0" json:"price_with_margin"`
	TotalAmount     Money  `gorm:"type:decimal(20,2);not null;default:0" json:"total_amount"`
	PaymentTerms    string `json:"payment_terms"`
	Warehouse       string `json:"warehouse"`
	Priority        string `gorm:"default:'Normal'" json:"priority"`
	NoGulfBrand     bool   `gorm:"default:false" json:"no_gulf_brand"`

	RequestedDeliveryDate *time.Time `json:"requested_delivery_date"`
	PreferredDeliveryTime string     `json:"preferred_delivery_time"`
	AvoidAfterwork        bool       `gorm:"default:false" json:"avoid_afterwork"`

	// Lifecycle fields, stamped by workflow actions.
	Status          string     `gorm:"index;not null" json:"status"`
	ApprovedBy      string     `json:"approved_by,omitempty"`
	ApprovalDate    *time.Time `json:"approval_date,omitempty"`
	RejectedBy      string     `json:"rejected_by,omitempty"`
	RejectionDate   *time.Time `json:"rejection_date,omitempty"`
	RejectionReason string     `json:"rejection_reason,omitempty"`

	// Finance document entries, independent of the status machine.
	ProformaNumber string     `json:"proforma_number,omitempty"`
	ProformaAmount *Money     `gorm:"type:decimal(20,2)" json:"proforma_amount,omitempty"`
	ProformaDate   *time.Time `json:"proforma_date,omitempty"`
	InvoiceNumber  string     `json:"invoice_number,omitempty"`
	InvoiceAmount  *Money     `gorm:"type:decimal(20,2)" json:"invoice_amount,omitempty"`
	InvoiceDate    *time.Time `json:"invoice_date,omitempty"`

	// Transport assignment.
	DriverName        string     `gorm:"index" json:"driver_name,omitempty"`
	TruckPlate        string     `json:"truck_plate,omitempty"`
	TransportCompany  string     `json:"transport_company,omitempty"`
	EstimatedDelivery *time.Time `json:"estimated_delivery,omitempty"`

	// Stage timestamps for cycle-time analytics.
	InWarehouseAt   *time.Time `json:"in_warehouse_at,omitempty"`
	LoadingAt       *time.Time `json:"loading_at,omitempty"`
	LeftWarehouseAt *time.Time `json:"left_warehouse_at,omitempty"`
	ActualDelivery  *time.Time `json:"actual_delivery,omitempty"`
	DisputedAt      *time.Time `json:"disputed_at,omitempty"`
	ResolvedAt      *time.Time `json:"resolved_at,omitempty"`

	UpdatedBy string         `json:"updated_by,omitempty"`
	CreatedAt time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt time.Time      `gorm:"index" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Client *Client     `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	Notes  []OrderNote `gorm:"foreignKey:OrderRef" json:"notes,omitempty"`
}

// TableName sets the table name.
func (Order) TableName() string {
	return "orders"
}
