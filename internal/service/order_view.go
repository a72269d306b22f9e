package service

import (
	"time"

	"github.com/fuelflow/internal/models"
)

// OrderView is the order as one department sees it. Financial fields are
// pointers with omitempty: for Transport and Warehouse they are absent from
// the response entirely, not zeroed.
type OrderView struct {
	ID          uint   `json:"id"`
	OrderID     string `json:"order_id"`
	OrderDate   string `json:"order_date"`
	CreatedBy   uint   `json:"created_by"`
	ClientID    uint   `json:"client_id"`
	ClientName  string `json:"client_name,omitempty"`
	ProductType string `json:"product_type"`
	Unit        string `json:"unit"`
	Quantity    models.Money `json:"quantity"`

	Margin          *models.Money `json:"margin,omitempty"`
	RegulatoryPrice *models.Money `json:"regulatory_price,omitempty"`
	PriceWithMargin *models.Money `json:"price_with_margin,omitempty"`
	TotalAmount     *models.Money `json:"total_amount,omitempty"`
	PaymentTerms    string        `json:"payment_terms,omitempty"`

	Warehouse   string `json:"warehouse,omitempty"`
	Priority    string `json:"priority"`
	NoGulfBrand bool   `json:"no_gulf_brand"`

	RequestedDeliveryDate *time.Time `json:"requested_delivery_date,omitempty"`
	PreferredDeliveryTime string     `json:"preferred_delivery_time,omitempty"`
	AvoidAfterwork        bool       `json:"avoid_afterwork"`

	Status          string     `json:"status"`
	ApprovedBy      string     `json:"approved_by,omitempty"`
	ApprovalDate    *time.Time `json:"approval_date,omitempty"`
	RejectedBy      string     `json:"rejected_by,omitempty"`
	RejectionDate   *time.Time `json:"rejection_date,omitempty"`
	RejectionReason string     `json:"rejection_reason,omitempty"`

	ProformaNumber string        `json:"proforma_number,omitempty"`
	ProformaAmount *models.Money `json:"proforma_amount,omitempty"`
	ProformaDate   *time.Time    `json:"proforma_date,omitempty"`
	InvoiceNumber  string        `json:"invoice_number,omitempty"`
	InvoiceAmount  *models.Money `json:"invoice_amount,omitempty"`
	InvoiceDate    *time.Time    `json:"invoice_date,omitempty"`

	DriverName        string     `json:"driver_name,omitempty"`
	TruckPlate        string     `json:"truck_plate,omitempty"`
	TransportCompany  string     `json:"transport_company,omitempty"`
	EstimatedDelivery *time.Time `json:"estimated_delivery,omitempty"`

	InWarehouseAt   *time.Time `json:"in_warehouse_at,omitempty"`
	LoadingAt       *time.Time `json:"loading_at,omitempty"`
	LeftWarehouseAt *time.Time `json:"left_warehouse_at,omitempty"`
	ActualDelivery  *time.Time `json:"actual_delivery,omitempty"`
	DisputedAt      *time.Time `json:"disputed_at,omitempty"`
	ResolvedAt      *time.Time `json:"resolved_at,omitempty"`

	UpdatedBy string    `json:"updated_by,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Notes []models.OrderNote `json:"notes,omitempty"`
}

// BuildOrderView projects an order for a department. With includeFinancial
// false the margin, prices, totals and billing amounts are dropped; numbers
// and dates of the lifecycle remain visible to everyone who sees the order.
func BuildOrderView(order *models.Order, includeFinancial bool) *OrderView {
	if order == nil {
		return nil
	}
	view := &OrderView{
		ID:                    order.ID,
		OrderID:               order.OrderID,
		OrderDate:             order.OrderDate,
		CreatedBy:             order.CreatedBy,
		ClientID:              order.ClientID,
		ProductType:           order.ProductType,
		Unit:                  order.Unit,
		Quantity:              order.Quantity,
		Warehouse:             order.Warehouse,
		Priority:              order.Priority,
		NoGulfBrand:           order.NoGulfBrand,
		RequestedDeliveryDate: order.RequestedDeliveryDate,
		PreferredDeliveryTime: order.PreferredDeliveryTime,
		AvoidAfterwork:        order.AvoidAfterwork,
		Status:                order.Status,
		ApprovedBy:            order.ApprovedBy,
		ApprovalDate:          order.ApprovalDate,
		RejectedBy:            order.RejectedBy,
		RejectionDate:         order.RejectionDate,
		RejectionReason:       order.RejectionReason,
		ProformaNumber:        order.ProformaNumber,
		ProformaDate:          order.ProformaDate,
		InvoiceNumber:         order.InvoiceNumber,
		InvoiceDate:           order.InvoiceDate,
		DriverName:            order.DriverName,
		TruckPlate:            order.TruckPlate,
		TransportCompany:      order.TransportCompany,
		EstimatedDelivery:     order.EstimatedDelivery,
		InWarehouseAt:         order.InWarehouseAt,
		LoadingAt:             order.LoadingAt,
		LeftWarehouseAt:       order.LeftWarehouseAt,
		ActualDelivery:        order.ActualDelivery,
		DisputedAt:            order.DisputedAt,
		ResolvedAt:            order.ResolvedAt,
		UpdatedBy:             order.UpdatedBy,
		CreatedAt:             order.CreatedAt,
		UpdatedAt:             order.UpdatedAt,
		Notes:                 order.Notes,
	}
	if order.Client != nil {
		view.ClientName = order.Client.ClientName
	}
	if includeFinancial {
		margin := order.Margin
		regulatory := order.RegulatoryPrice
		unitPrice := order.PriceWithMargin
		total := order.TotalAmount
		view.Margin = &margin
		view.RegulatoryPrice = &regulatory
		view.PriceWithMargin = &unitPrice
		view.TotalAmount = &total
		view.PaymentTerms = order.PaymentTerms
		view.ProformaAmount = order.ProformaAmount
		view.InvoiceAmount = order.InvoiceAmount
	}
	return view
}
