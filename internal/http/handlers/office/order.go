package office

import (
	"strconv"
	"strings"
	"time"

	"github.com/fuelflow/internal/http/handlers/shared"
	"github.com/fuelflow/internal/http/response"
	"github.com/fuelflow/internal/models"
	"github.com/fuelflow/internal/service"
	"github.com/fuelflow/internal/workflow"

	"github.com/gin-gonic/gin"
)

// CreateOrderRequest is the order creation payload. Prices are computed on
// the server from the current regulatory price, never taken from the client.
type CreateOrderRequest struct {
	ClientID              uint         `json:"client_id" binding:"required"`
	ProductType           string       `json:"product_type" binding:"required"`
	Unit                  string       `json:"unit"`
	Quantity              models.Money `json:"quantity" binding:"required"`
	Margin                models.Money `json:"margin"`
	PaymentTerms          string       `json:"payment_terms"`
	Warehouse             string       `json:"warehouse"`
	Priority              string       `json:"priority"`
	NoGulfBrand           bool         `json:"no_gulf_brand"`
	RequestedDeliveryDate *time.Time   `json:"requested_delivery_date"`
	PreferredDeliveryTime string       `json:"preferred_delivery_time"`
	AvoidAfterwork        bool         `json:"avoid_afterwork"`
}

// CreateOrder opens a new order in Pending Approval.
func (h *Handler) CreateOrder(c *gin.Context) {
	actor, ok := shared.Actor(c)
	if !ok {
		return
	}
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RespondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	order, err := h.OrderService.CreateOrder(actor, service.CreateOrderInput{
		ClientID:              req.ClientID,
		ProductType:           req.ProductType,
		Unit:                  req.Unit,
		Quantity:              req.Quantity,
		Margin:                req.Margin,
		PaymentTerms:          req.PaymentTerms,
		Warehouse:             req.Warehouse,
		Priority:              req.Priority,
		NoGulfBrand:           req.NoGulfBrand,
		RequestedDeliveryDate: req.RequestedDeliveryDate,
		PreferredDeliveryTime: req.PreferredDeliveryTime,
		AvoidAfterwork:        req.AvoidAfterwork,
	})
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.Success(c, service.BuildOrderView(order, workflow.CanSeeFinancial(actor.Department)))
}

// ListOrders lists orders the caller may see, optionally narrowed to a work
// queue.
func (h *Handler) ListOrders(c *gin.Context) {
	actor, ok := shared.Actor(c)
	if !ok {
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = shared.NormalizePagination(page, pageSize)

	views, total, err := h.OrderService.List(actor, service.ListInput{
		Page:        page,
		PageSize:    pageSize,
		Status:      strings.TrimSpace(c.Query("status")),
		Warehouse:   strings.TrimSpace(c.Query("warehouse")),
		Priority:    strings.TrimSpace(c.Query("priority")),
		ProductType: strings.TrimSpace(c.Query("product_type")),
		Search:      strings.TrimSpace(c.Query("search")),
		Queue:       strings.TrimSpace(c.Query("queue")),
	})
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}

	response.SuccessWithPage(c, views, response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: shared.TotalPages(total, pageSize),
	})
}

// GetOrder returns one order, redacted for the caller's department.
func (h *Handler) GetOrder(c *gin.Context) {
	actor, ok := shared.Actor(c)
	if !ok {
		return
	}
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	view, err := h.OrderService.Get(actor, orderID)
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.Success(c, view)
}

// WorkflowActionRequest is a workflow transition payload.
type WorkflowActionRequest struct {
	Action            string     `json:"action" binding:"required"`
	Reason            string     `json:"reason"`
	DriverName        string     `json:"driver_name"`
	TruckPlate        string     `json:"truck_plate"`
	TransportCompany  string     `json:"transport_company"`
	EstimatedDelivery *time.Time `json:"estimated_delivery"`
}

// ExecuteAction runs one workflow action against an order.
func (h *Handler) ExecuteAction(c *gin.Context) {
	actor, ok := shared.Actor(c)
	if !ok {
		return
	}
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req WorkflowActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RespondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	order, err := h.WorkflowService.Execute(c.Request.Context(), actor, service.TransitionInput{
		OrderID:           orderID,
		Action:            req.Action,
		Reason:            req.Reason,
		DriverName:        req.DriverName,
		TruckPlate:        req.TruckPlate,
		TransportCompany:  req.TransportCompany,
		EstimatedDelivery: req.EstimatedDelivery,
	})
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	// The updated order goes back through the same department projection as
	// Get and List, so Transport and Warehouse never see commercial fields.
	response.Success(c, service.BuildOrderView(order, workflow.CanSeeFinancial(actor.Department)))
}

// DocumentEntryRequest is a proforma or invoice entry payload.
type DocumentEntryRequest struct {
	Number string       `json:"number" binding:"required"`
	Amount models.Money `json:"amount"`
	Date   *time.Time   `json:"date"`
}

// RecordProforma records a proforma entry on an order.
func (h *Handler) RecordProforma(c *gin.Context) {
	h.recordEntry(c, h.OrderService.RecordProforma)
}

// RecordInvoice records an invoice entry on an order.
func (h *Handler) RecordInvoice(c *gin.Context) {
	h.recordEntry(c, h.OrderService.RecordInvoice)
}

func (h *Handler) recordEntry(c *gin.Context, record func(service.Actor, service.DocumentEntryInput) (*models.Order, error)) {
	actor, ok := shared.Actor(c)
	if !ok {
		return
	}
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req DocumentEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RespondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	order, err := record(actor, service.DocumentEntryInput{
		OrderID: orderID,
		Number:  req.Number,
		Amount:  req.Amount,
		Date:    req.Date,
	})
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.Success(c, service.BuildOrderView(order, workflow.CanSeeFinancial(actor.Department)))
}

func parseIDParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	parsed, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || parsed == 0 {
		shared.RespondError(c, response.CodeBadRequest, "invalid id", nil)
		return 0, false
	}
	return uint(parsed), true
}
