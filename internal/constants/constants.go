package constants

// Order status constants (exact wire strings, shared with the legacy sheet exports)
const (
	OrderStatusPendingApproval = "Pending Approval"
	OrderStatusApproved        = "Approved"
	OrderStatusRejected        = "Rejected"
	OrderStatusTruckAssigned   = "Truck Assigned"
	OrderStatusInWarehouse     = "In Warehouse"
	OrderStatusLoading         = "Loading"
	OrderStatusLeftWarehouse   = "Left Warehouse"
	OrderStatusDelivered       = "Delivered"
	OrderStatusDisputed        = "Disputed"
	OrderStatusResolved        = "Resolved"
)

// Department constants
const (
	DepartmentSales      = "Sales"
	DepartmentManagement = "Management"
	DepartmentFinance    = "Finance"
	DepartmentTransport  = "Transport"
	DepartmentWarehouse  = "Warehouse"
	DepartmentAdmin      = "Admin"
)

// Order note type constants
const (
	NoteTypeGeneral      = "General"
	NoteTypeStatusChange = "Status Change"
	NoteTypeDocument     = "Document"
)

// Workflow action constants
const (
	ActionApprove           = "approve"
	ActionReject            = "reject"
	ActionAssignTransport   = "assignTransport"
	ActionMarkInWarehouse   = "markInWarehouse"
	ActionMarkLoading       = "markLoading"
	ActionMarkLeftWarehouse = "markLeftWarehouse"
	ActionMarkDelivered     = "markDelivered"
	ActionMarkDisputed      = "markDisputed"
	ActionResolveDispute    = "resolveDispute"
)

// User status constants
const (
	UserStatusActive   = "active"
	UserStatusDisabled = "disabled"
)

// Priority constants
const (
	PriorityLow      = "Low"
	PriorityNormal   = "Normal"
	PriorityHigh     = "High"
	PriorityUrgent   = "Urgent"
	PriorityCritical = "Critical"
)

// Product types carried by the regulatory price catalogue
var ProductTypes = []string{
	"Eurodiesel",
	"Eurosuper 95 BS",
	"GeForce 95 Plus",
	"Extreme Diesel",
	"Ekstra Lesno",
	"Mazut",
}

// Warehouse locations
var Warehouses = []string{
	"Skopje Ohis",
	"Tetovo",
}

// Payment terms accepted at order creation
var PaymentTerms = []string{
	"Advanced payment",
	"Credit payment",
	"Paid Advance",
}

// Document type constants
var DocumentTypes = []string{
	"Ispratnica",
	"Kantarna beleshka",
	"CMR",
	"POD",
	"Photo",
	"Other",
}

// Quantity unit constants
var Units = []string{"L", "Kg"}

// Queue constants
const (
	QueueDefault              = "default"
	TaskOrderStatusNotify     = "order:status_notify"
	TaskOrderApprovalReminder = "order:approval_reminder"
)

// Cache defaults
const (
	RedisPrefixDefault = "ff"
)
