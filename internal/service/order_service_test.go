package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/fuelflow/internal/constants"
	"github.com/fuelflow/internal/models"
	"github.com/fuelflow/internal/queue"
	"github.com/fuelflow/internal/repository"
	"github.com/fuelflow/internal/workflow"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupOrderServiceTest(t *testing.T) (*OrderService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:order_svc_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.Client{},
		&models.Order{},
		&models.OrderNote{},
		&models.RegulatoryPrice{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	queueClient, err := queue.NewClient(nil)
	if err != nil {
		t.Fatalf("queue client failed: %v", err)
	}
	svc := NewOrderService(
		repository.NewOrderRepository(db),
		repository.NewNoteRepository(db),
		repository.NewClientRepository(db),
		repository.NewRegulatoryPriceRepository(db),
		queueClient,
		0,
	)
	return svc, db
}

func seedClientAndPrice(t *testing.T, db *gorm.DB) *models.Client {
	t.Helper()
	client := models.Client{ClientID: "CL-001", ClientName: "Kavala Fuels", Active: true}
	if err := db.Create(&client).Error; err != nil {
		t.Fatalf("create client failed: %v", err)
	}
	price := models.RegulatoryPrice{
		ProductType:   "Diesel",
		BasePrice:     models.NewMoneyFromDecimal(decimal.NewFromFloat(1.50)),
		Unit:          "L",
		EffectiveFrom: time.Now().Add(-24 * time.Hour),
	}
	if err := db.Create(&price).Error; err != nil {
		t.Fatalf("create price failed: %v", err)
	}
	return &client
}

func TestOrderServiceCreateComputesPrices(t *testing.T) {
	svc, db := setupOrderServiceTest(t)
	client := seedClientAndPrice(t, db)
	sales := Actor{UserID: 1, Username: "sales1", Department: constants.DepartmentSales}

	order, err := svc.CreateOrder(sales, CreateOrderInput{
		ClientID:    client.ID,
		ProductType: "Diesel",
		Quantity:    models.NewMoneyFromDecimal(decimal.NewFromInt(1000)),
		Margin:      models.NewMoneyFromDecimal(decimal.NewFromFloat(0.10)),
	})
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	if order.Status != constants.OrderStatusPendingApproval {
		t.Fatalf("expected Pending Approval, got %q", order.Status)
	}
	if order.PriceWithMargin.String() != "1.60" {
		t.Fatalf("expected unit price 1.60, got %s", order.PriceWithMargin.String())
	}
	if order.TotalAmount.String() != "1600.00" {
		t.Fatalf("expected total 1600.00, got %s", order.TotalAmount.String())
	}
	if order.RegulatoryPrice.String() != "1.50" {
		t.Fatalf("expected regulatory price copy 1.50, got %s", order.RegulatoryPrice.String())
	}
	wantPrefix := fmt.Sprintf("ORD-%s-", time.Now().Format("20060102"))
	if len(order.OrderID) != len(wantPrefix)+3 || order.OrderID[:len(wantPrefix)] != wantPrefix {
		t.Fatalf("unexpected order number %q", order.OrderID)
	}
}

func TestOrderServiceCreateRejectsInactiveClient(t *testing.T) {
	svc, db := setupOrderServiceTest(t)
	client := seedClientAndPrice(t, db)
	if err := db.Model(client).Update("active", false).Error; err != nil {
		t.Fatalf("deactivate client failed: %v", err)
	}
	sales := Actor{UserID: 1, Username: "sales1", Department: constants.DepartmentSales}

	_, err := svc.CreateOrder(sales, CreateOrderInput{
		ClientID:    client.ID,
		ProductType: "Diesel",
		Quantity:    models.NewMoneyFromDecimal(decimal.NewFromInt(500)),
	})
	if !errors.Is(err, ErrClientInactive) {
		t.Fatalf("want ErrClientInactive, got %v", err)
	}
}

func TestOrderServiceCreateGate(t *testing.T) {
	svc, db := setupOrderServiceTest(t)
	client := seedClientAndPrice(t, db)
	warehouse := Actor{UserID: 5, Username: "wh1", Department: constants.DepartmentWarehouse}

	_, err := svc.CreateOrder(warehouse, CreateOrderInput{
		ClientID:    client.ID,
		ProductType: "Diesel",
		Quantity:    models.NewMoneyFromDecimal(decimal.NewFromInt(500)),
	})
	if !errors.Is(err, workflow.ErrForbiddenDepartment) {
		t.Fatalf("want ErrForbiddenDepartment, got %v", err)
	}
}

func TestOrderServiceSalesSeesOnlyOwnOrders(t *testing.T) {
	svc, db := setupOrderServiceTest(t)
	client := seedClientAndPrice(t, db)

	salesA := Actor{UserID: 1, Username: "sales_a", Department: constants.DepartmentSales}
	salesB := Actor{UserID: 2, Username: "sales_b", Department: constants.DepartmentSales}

	mine, err := svc.CreateOrder(salesA, CreateOrderInput{
		ClientID: client.ID, ProductType: "Diesel",
		Quantity: models.NewMoneyFromDecimal(decimal.NewFromInt(100)),
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := svc.CreateOrder(salesB, CreateOrderInput{
		ClientID: client.ID, ProductType: "Diesel",
		Quantity: models.NewMoneyFromDecimal(decimal.NewFromInt(200)),
	}); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	views, total, err := svc.List(salesA, ListInput{})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 1 || len(views) != 1 || views[0].ID != mine.ID {
		t.Fatalf("sales_a should see only own order, got total=%d", total)
	}

	if _, err := svc.Get(salesB, mine.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("foreign order should read as not found, got %v", err)
	}

	management := Actor{UserID: 3, Username: "manager", Department: constants.DepartmentManagement}
	_, total, err = svc.List(management, ListInput{})
	if err != nil {
		t.Fatalf("management list failed: %v", err)
	}
	if total != 2 {
		t.Fatalf("management should see all orders, got %d", total)
	}
}

func TestOrderServiceViewRedaction(t *testing.T) {
	svc, db := setupOrderServiceTest(t)
	client := seedClientAndPrice(t, db)
	sales := Actor{UserID: 1, Username: "sales1", Department: constants.DepartmentSales}

	order, err := svc.CreateOrder(sales, CreateOrderInput{
		ClientID: client.ID, ProductType: "Diesel",
		Quantity: models.NewMoneyFromDecimal(decimal.NewFromInt(100)),
		Margin:   models.NewMoneyFromDecimal(decimal.NewFromFloat(0.10)),
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	transport := Actor{UserID: 4, Username: "dispatcher", Department: constants.DepartmentTransport}
	view, err := svc.Get(transport, order.ID)
	if err != nil {
		t.Fatalf("transport get failed: %v", err)
	}
	if view.Margin != nil || view.TotalAmount != nil || view.RegulatoryPrice != nil || view.PriceWithMargin != nil {
		t.Fatalf("financial fields leaked to transport: %+v", view)
	}
	if view.Quantity.String() != "100.00" || view.ProductType != "Diesel" {
		t.Fatalf("operational fields missing from transport view")
	}

	finance := Actor{UserID: 6, Username: "fin1", Department: constants.DepartmentFinance}
	view, err = svc.Get(finance, order.ID)
	if err != nil {
		t.Fatalf("finance get failed: %v", err)
	}
	if view.TotalAmount == nil || view.TotalAmount.String() != "160.00" {
		t.Fatalf("finance should see totals, got %+v", view.TotalAmount)
	}
}

func TestOrderServiceProformaAndInvoiceGates(t *testing.T) {
	svc, db := setupOrderServiceTest(t)
	client := seedClientAndPrice(t, db)
	sales := Actor{UserID: 1, Username: "sales1", Department: constants.DepartmentSales}
	finance := Actor{UserID: 6, Username: "fin1", Department: constants.DepartmentFinance}

	order, err := svc.CreateOrder(sales, CreateOrderInput{
		ClientID: client.ID, ProductType: "Diesel",
		Quantity: models.NewMoneyFromDecimal(decimal.NewFromInt(100)),
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	amount := models.NewMoneyFromDecimal(decimal.NewFromInt(150))

	// pending approval blocks proforma
	_, err = svc.RecordProforma(finance, DocumentEntryInput{OrderID: order.ID, Number: "PF-001", Amount: amount})
	if !errors.Is(err, workflow.ErrInvalidTransition) {
		t.Fatalf("proforma on Pending Approval: want ErrInvalidTransition, got %v", err)
	}

	// invoice requires proforma
	if err := db.Model(&models.Order{}).Where("id = ?", order.ID).Update("status", constants.OrderStatusApproved).Error; err != nil {
		t.Fatalf("set status failed: %v", err)
	}
	_, err = svc.RecordInvoice(finance, DocumentEntryInput{OrderID: order.ID, Number: "INV-001", Amount: amount})
	if !errors.Is(err, workflow.ErrInvalidTransition) {
		t.Fatalf("invoice without proforma: want ErrInvalidTransition, got %v", err)
	}

	got, err := svc.RecordProforma(finance, DocumentEntryInput{OrderID: order.ID, Number: "PF-001", Amount: amount})
	if err != nil {
		t.Fatalf("proforma failed: %v", err)
	}
	if got.ProformaNumber != "PF-001" || got.Status != constants.OrderStatusApproved {
		t.Fatalf("proforma entry wrong or status changed: %+v", got)
	}

	_, err = svc.RecordProforma(finance, DocumentEntryInput{OrderID: order.ID, Number: "PF-002", Amount: amount})
	if !errors.Is(err, ErrDuplicateEntry) {
		t.Fatalf("second proforma: want ErrDuplicateEntry, got %v", err)
	}

	got, err = svc.RecordInvoice(finance, DocumentEntryInput{OrderID: order.ID, Number: "INV-001", Amount: amount})
	if err != nil {
		t.Fatalf("invoice failed: %v", err)
	}
	if got.InvoiceNumber != "INV-001" {
		t.Fatalf("invoice entry missing: %+v", got)
	}

	// proforma and invoice are Finance actions
	_, err = svc.RecordProforma(sales, DocumentEntryInput{OrderID: order.ID, Number: "PF-003", Amount: amount})
	if !errors.Is(err, workflow.ErrForbiddenDepartment) {
		t.Fatalf("proforma as sales: want ErrForbiddenDepartment, got %v", err)
	}
}

func TestOrderServiceProformaQueueFiltersAtQuery(t *testing.T) {
	svc, db := setupOrderServiceTest(t)
	seedClientAndPrice(t, db)

	for i := 0; i < 3; i++ {
		order := models.Order{
			OrderID:     fmt.Sprintf("ORD-20260201-%03d", i+1),
			OrderDate:   "2026-02-01",
			CreatedBy:   1,
			ClientID:    1,
			ProductType: "Diesel",
			Unit:        "L",
			Status:      constants.OrderStatusApproved,
		}
		if i == 0 {
			order.ProformaNumber = "PF-100"
		}
		if err := db.Create(&order).Error; err != nil {
			t.Fatalf("create order failed: %v", err)
		}
	}

	finance := Actor{UserID: 6, Username: "fin1", Department: constants.DepartmentFinance}
	views, total, err := svc.List(finance, ListInput{Queue: QueueProforma, Page: 1, PageSize: 2})
	if err != nil {
		t.Fatalf("proforma queue list failed: %v", err)
	}
	if total != 2 {
		t.Fatalf("total must count only orders still owing a proforma, got %d", total)
	}
	if len(views) != 2 {
		t.Fatalf("page should be full, got %d rows", len(views))
	}
	for _, view := range views {
		if view.ProformaNumber != "" {
			t.Fatalf("order %s already has a proforma and must not appear", view.OrderID)
		}
	}
}
