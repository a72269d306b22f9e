package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/fuelflow/internal/constants"
	"github.com/fuelflow/internal/logger"
	"github.com/fuelflow/internal/models"
	"github.com/fuelflow/internal/queue"
	"github.com/fuelflow/internal/repository"
	"github.com/fuelflow/internal/workflow"

	"github.com/shopspring/decimal"
)

// OrderService handles order creation, listing and Finance document entries.
type OrderService struct {
	orderRepo        repository.OrderRepository
	noteRepo         repository.NoteRepository
	clientRepo       repository.ClientRepository
	priceRepo        repository.RegulatoryPriceRepository
	queueClient      *queue.Client
	reminderDelay    time.Duration
	reminderDisabled bool
}

// NewOrderService creates the order service.
func NewOrderService(orderRepo repository.OrderRepository, noteRepo repository.NoteRepository, clientRepo repository.ClientRepository, priceRepo repository.RegulatoryPriceRepository, queueClient *queue.Client, reminderHours int) *OrderService {
	return &OrderService{
		orderRepo:        orderRepo,
		noteRepo:         noteRepo,
		clientRepo:       clientRepo,
		priceRepo:        priceRepo,
		queueClient:      queueClient,
		reminderDelay:    time.Duration(reminderHours) * time.Hour,
		reminderDisabled: reminderHours <= 0,
	}
}

// CreateOrderInput is the Sales order creation payload.
type CreateOrderInput struct {
	ClientID              uint
	ProductType           string
	Unit                  string
	Quantity              models.Money
	Margin                models.Money
	PaymentTerms          string
	Warehouse             string
	Priority              string
	NoGulfBrand           bool
	RequestedDeliveryDate *time.Time
	PreferredDeliveryTime string
	AvoidAfterwork        bool
}

// CreateOrder creates an order in Pending Approval. Prices are derived on the
// server: unit price is the current regulatory price plus the margin, the
// total is quantity times unit price.
func (s *OrderService) CreateOrder(actor Actor, input CreateOrderInput) (*models.Order, error) {
	if actor.Department != constants.DepartmentSales && actor.Department != constants.DepartmentAdmin {
		return nil, fmt.Errorf("%w: only Sales creates orders", workflow.ErrForbiddenDepartment)
	}
	if input.ClientID == 0 {
		return nil, fmt.Errorf("%w: client is required", workflow.ErrValidation)
	}
	if !validProductType(input.ProductType) {
		return nil, fmt.Errorf("%w: unknown product type %q", workflow.ErrValidation, input.ProductType)
	}
	if input.Quantity.Decimal.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: quantity must be positive", workflow.ErrValidation)
	}
	if input.Margin.Decimal.IsNegative() {
		return nil, fmt.Errorf("%w: margin cannot be negative", workflow.ErrValidation)
	}

	client, err := s.clientRepo.GetByID(input.ClientID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, fmt.Errorf("%w: client", ErrNotFound)
	}
	if !client.Active {
		return nil, ErrClientInactive
	}

	regPrice, err := s.priceRepo.Current(input.ProductType)
	if err != nil {
		return nil, err
	}
	if regPrice == nil {
		return nil, fmt.Errorf("%w: no regulatory price for %s", workflow.ErrValidation, input.ProductType)
	}

	unitPrice := regPrice.BasePrice.Decimal.Add(input.Margin.Decimal)
	total := input.Quantity.Decimal.Mul(unitPrice)

	now := time.Now()
	orderID, err := s.nextOrderID(now)
	if err != nil {
		return nil, err
	}

	unit := strings.TrimSpace(input.Unit)
	if unit == "" {
		unit = regPrice.Unit
	}
	priority := input.Priority
	if priority == "" {
		priority = constants.PriorityNormal
	}

	order := &models.Order{
		OrderID:               orderID,
		OrderDate:             now.Format("2006-01-02"),
		CreatedBy:             actor.UserID,
		ClientID:              input.ClientID,
		ProductType:           input.ProductType,
		Unit:                  unit,
		Quantity:              models.NewMoneyFromDecimal(input.Quantity.Decimal),
		Margin:                models.NewMoneyFromDecimal(input.Margin.Decimal),
		RegulatoryPrice:       regPrice.BasePrice,
		PriceWithMargin:       models.NewMoneyFromDecimal(unitPrice),
		TotalAmount:           models.NewMoneyFromDecimal(total),
		PaymentTerms:          input.PaymentTerms,
		Warehouse:             input.Warehouse,
		Priority:              priority,
		NoGulfBrand:           input.NoGulfBrand,
		RequestedDeliveryDate: input.RequestedDeliveryDate,
		PreferredDeliveryTime: input.PreferredDeliveryTime,
		AvoidAfterwork:        input.AvoidAfterwork,
		Status:                constants.OrderStatusPendingApproval,
		UpdatedBy:             actor.Username,
	}
	if err := s.orderRepo.Create(order); err != nil {
		return nil, err
	}

	if !s.reminderDisabled {
		if err := s.queueClient.EnqueueApprovalReminder(queue.ApprovalReminderPayload{OrderID: order.ID}, s.reminderDelay); err != nil {
			logger.Warnw("order_enqueue_approval_reminder_failed",
				"order_id", order.ID,
				"error", err,
			)
		}
	}

	return s.orderRepo.GetByID(order.ID)
}

// nextOrderID allocates the next order number of the day: ORD-YYYYMMDD-NNN.
func (s *OrderService) nextOrderID(now time.Time) (string, error) {
	prefix := fmt.Sprintf("ORD-%s-", now.Format("20060102"))
	count, err := s.orderRepo.CountByOrderDatePrefix(prefix)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s%03d", prefix, count+1), nil
}

// Get fetches one order the actor may see, redacted for the department.
func (s *OrderService) Get(actor Actor, id uint) (*OrderView, error) {
	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil || !workflow.CanViewOrder(actor.Department, actor.UserID, order) {
		return nil, ErrNotFound
	}
	return BuildOrderView(order, workflow.CanSeeFinancial(actor.Department)), nil
}

// ListInput narrows order listing.
type ListInput struct {
	Page        int
	PageSize    int
	Status      string
	Warehouse   string
	Priority    string
	ProductType string
	Search      string
	Queue       string
}

// Work queue names. Each maps to the set of statuses a department acts on.
const (
	QueueApproval  = "approval"
	QueueTransport = "transport"
	QueueWarehouse = "warehouse"
	QueueDelivery  = "delivery"
	QueueDisputes  = "disputes"
	QueueProforma  = "proforma"
)

// List fetches the orders the actor may see, redacted for the department.
func (s *OrderService) List(actor Actor, input ListInput) ([]*OrderView, int64, error) {
	filter := repository.OrderListFilter{
		Page:        input.Page,
		PageSize:    input.PageSize,
		Status:      input.Status,
		Warehouse:   input.Warehouse,
		Priority:    input.Priority,
		ProductType: input.ProductType,
		Search:      input.Search,
	}
	if actor.Department == constants.DepartmentSales {
		filter.CreatedBy = actor.UserID
	}

	switch input.Queue {
	case "":
	case QueueApproval:
		filter.Status = constants.OrderStatusPendingApproval
	case QueueTransport:
		filter.Status = constants.OrderStatusApproved
		filter.NoDriver = true
	case QueueWarehouse:
		filter.Statuses = []string{
			constants.OrderStatusTruckAssigned,
			constants.OrderStatusInWarehouse,
			constants.OrderStatusLoading,
		}
	case QueueDelivery:
		filter.Status = constants.OrderStatusLeftWarehouse
	case QueueDisputes:
		filter.Status = constants.OrderStatusDisputed
	case QueueProforma:
		filter.Statuses = statusesAllowingProforma()
		filter.NoProforma = true
	default:
		return nil, 0, fmt.Errorf("%w: unknown queue %q", workflow.ErrValidation, input.Queue)
	}

	orders, total, err := s.orderRepo.List(filter)
	if err != nil {
		return nil, 0, err
	}

	includeFinancial := workflow.CanSeeFinancial(actor.Department)
	views := make([]*OrderView, 0, len(orders))
	for i := range orders {
		views = append(views, BuildOrderView(&orders[i], includeFinancial))
	}
	return views, total, nil
}

// DocumentEntryInput is a Finance proforma or invoice entry.
type DocumentEntryInput struct {
	OrderID uint
	Number  string
	Amount  models.Money
	Date    *time.Time
}

// RecordProforma records the proforma number and amount on an order. Allowed
// for every status except Pending Approval and Rejected; entry never changes
// the order status.
func (s *OrderService) RecordProforma(actor Actor, input DocumentEntryInput) (*models.Order, error) {
	if actor.Department != constants.DepartmentFinance && actor.Department != constants.DepartmentAdmin {
		return nil, fmt.Errorf("%w: proforma entry is a Finance action", workflow.ErrForbiddenDepartment)
	}
	if strings.TrimSpace(input.Number) == "" {
		return nil, fmt.Errorf("%w: proforma number is required", workflow.ErrValidation)
	}

	order, err := s.orderRepo.GetByID(input.OrderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrNotFound
	}
	if !workflow.CanEnterProforma(order.Status) {
		return nil, fmt.Errorf("%w: proforma not allowed in %q", workflow.ErrInvalidTransition, order.Status)
	}
	if order.ProformaNumber != "" {
		return nil, ErrDuplicateEntry
	}

	entryDate := time.Now()
	if input.Date != nil {
		entryDate = *input.Date
	}
	amount := models.NewMoneyFromDecimal(input.Amount.Decimal)
	updates := map[string]interface{}{
		"proforma_number": strings.TrimSpace(input.Number),
		"proforma_amount": &amount,
		"proforma_date":   entryDate,
		"updated_by":      actor.Username,
	}
	if err := s.orderRepo.UpdateFields(order.ID, updates); err != nil {
		return nil, err
	}
	s.appendDocumentNote(order, actor, fmt.Sprintf("Proforma %s recorded", strings.TrimSpace(input.Number)))
	return s.orderRepo.GetByID(order.ID)
}

// RecordInvoice records the invoice number and amount. Requires the proforma
// to be present already.
func (s *OrderService) RecordInvoice(actor Actor, input DocumentEntryInput) (*models.Order, error) {
	if actor.Department != constants.DepartmentFinance && actor.Department != constants.DepartmentAdmin {
		return nil, fmt.Errorf("%w: invoice entry is a Finance action", workflow.ErrForbiddenDepartment)
	}
	if strings.TrimSpace(input.Number) == "" {
		return nil, fmt.Errorf("%w: invoice number is required", workflow.ErrValidation)
	}

	order, err := s.orderRepo.GetByID(input.OrderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrNotFound
	}
	if order.InvoiceNumber != "" {
		return nil, ErrDuplicateEntry
	}
	if !workflow.CanEnterInvoice(order) {
		return nil, fmt.Errorf("%w: invoice requires a recorded proforma", workflow.ErrInvalidTransition)
	}

	entryDate := time.Now()
	if input.Date != nil {
		entryDate = *input.Date
	}
	amount := models.NewMoneyFromDecimal(input.Amount.Decimal)
	updates := map[string]interface{}{
		"invoice_number": strings.TrimSpace(input.Number),
		"invoice_amount": &amount,
		"invoice_date":   entryDate,
		"updated_by":     actor.Username,
	}
	if err := s.orderRepo.UpdateFields(order.ID, updates); err != nil {
		return nil, err
	}
	s.appendDocumentNote(order, actor, fmt.Sprintf("Invoice %s recorded", strings.TrimSpace(input.Number)))
	return s.orderRepo.GetByID(order.ID)
}

func (s *OrderService) appendDocumentNote(order *models.Order, actor Actor, text string) {
	note := &models.OrderNote{
		OrderRef:       order.ID,
		OrderID:        order.OrderID,
		UserID:         actor.UserID,
		UserName:       actor.Username,
		UserDepartment: actor.Department,
		Note:           text,
		NoteType:       constants.NoteTypeDocument,
		CreatedAt:      time.Now(),
	}
	if err := s.noteRepo.Create(note); err != nil {
		logger.Warnw("order_document_note_failed",
			"order_id", order.ID,
			"error", err,
		)
	}
}

func validProductType(productType string) bool {
	for _, known := range constants.ProductTypes {
		if known == productType {
			return true
		}
	}
	return false
}

func statusesAllowingProforma() []string {
	out := make([]string, 0, len(workflow.Statuses))
	for _, s := range workflow.Statuses {
		if workflow.CanEnterProforma(s) {
			out = append(out, s)
		}
	}
	return out
}
