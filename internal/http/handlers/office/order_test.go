package office

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/fuelflow/internal/constants"
	"github.com/fuelflow/internal/http/handlers/shared"
	"github.com/fuelflow/internal/models"
	"github.com/fuelflow/internal/provider"
	"github.com/fuelflow/internal/queue"
	"github.com/fuelflow/internal/repository"
	"github.com/fuelflow/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupOrderHandlerTest(t *testing.T) (*Handler, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:office_order_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Client{},
		&models.Order{},
		&models.OrderNote{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	queueClient, err := queue.NewClient(nil)
	if err != nil {
		t.Fatalf("queue client failed: %v", err)
	}
	workflowService := service.NewWorkflowService(
		db,
		repository.NewOrderRepository(db),
		repository.NewNoteRepository(db),
		queueClient,
		3,
		1,
	)
	return New(&provider.Container{WorkflowService: workflowService}), db
}

func seedHandlerOrder(t *testing.T, db *gorm.DB, status string) *models.Order {
	t.Helper()
	order := models.Order{
		OrderID:         fmt.Sprintf("ORD-20260115-%03d", time.Now().UnixNano()%1000),
		OrderDate:       "2026-01-15",
		CreatedBy:       1,
		ClientID:        1,
		ProductType:     "Diesel",
		Unit:            "L",
		Quantity:        models.NewMoneyFromDecimal(decimal.NewFromInt(2000)),
		Margin:          models.NewMoneyFromDecimal(decimal.NewFromFloat(5.00)),
		RegulatoryPrice: models.NewMoneyFromDecimal(decimal.NewFromFloat(71.50)),
		PriceWithMargin: models.NewMoneyFromDecimal(decimal.NewFromFloat(76.50)),
		TotalAmount:     models.NewMoneyFromDecimal(decimal.NewFromInt(153000)),
		PaymentTerms:    "30 days",
		Status:          status,
		DriverName:      "Nikola",
		TruckPlate:      "SK-1234-AB",
	}
	if err := db.Create(&order).Error; err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	return &order
}

func postAction(t *testing.T, handler *Handler, actor service.Actor, orderID uint, body string) map[string]interface{} {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/api/v1/orders/:id/actions", func(c *gin.Context) {
		c.Set(shared.ContextUserID, actor.UserID)
		c.Set(shared.ContextUsername, actor.Username)
		c.Set(shared.ContextDepartment, actor.Department)
	}, handler.ExecuteAction)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/api/v1/orders/%d/actions", orderID), strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status want 200 got %d", w.Code)
	}
	var resp struct {
		StatusCode int                    `json:"status_code"`
		Msg        string                 `json:"msg"`
		Data       map[string]interface{} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response failed: %v", err)
	}
	if resp.StatusCode != 0 {
		t.Fatalf("envelope code want 0 got %d (%s)", resp.StatusCode, resp.Msg)
	}
	return resp.Data
}

func TestExecuteActionRedactsFinancialForWarehouse(t *testing.T) {
	handler, db := setupOrderHandlerTest(t)
	order := seedHandlerOrder(t, db, constants.OrderStatusTruckAssigned)

	warehouse := service.Actor{UserID: 5, Username: "petar", Department: constants.DepartmentWarehouse}
	data := postAction(t, handler, warehouse, order.ID, `{"action":"markInWarehouse"}`)

	if data["status"] != constants.OrderStatusInWarehouse {
		t.Fatalf("status want %q got %v", constants.OrderStatusInWarehouse, data["status"])
	}
	for _, field := range []string{"margin", "regulatory_price", "price_with_margin", "total_amount", "payment_terms", "proforma_amount", "invoice_amount"} {
		if _, present := data[field]; present {
			t.Fatalf("field %q must be absent for Warehouse, got %v", field, data[field])
		}
	}
	if data["order_id"] != order.OrderID || data["quantity"] == nil {
		t.Fatalf("non-financial fields should remain: %v", data)
	}
}

func TestExecuteActionKeepsFinancialForManagement(t *testing.T) {
	handler, db := setupOrderHandlerTest(t)
	order := seedHandlerOrder(t, db, constants.OrderStatusPendingApproval)

	manager := service.Actor{UserID: 2, Username: "ana", Department: constants.DepartmentManagement}
	data := postAction(t, handler, manager, order.ID, `{"action":"approve"}`)

	if data["status"] != constants.OrderStatusApproved {
		t.Fatalf("status want %q got %v", constants.OrderStatusApproved, data["status"])
	}
	if data["margin"] != "5.00" || data["total_amount"] != "153000.00" {
		t.Fatalf("financial fields should survive for Management: margin=%v total=%v", data["margin"], data["total_amount"])
	}
	if data["approved_by"] != "ana" {
		t.Fatalf("approval stamp missing: %v", data["approved_by"])
	}
}
