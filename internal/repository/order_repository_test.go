package repository

import (
	"fmt"
	"testing"
	"time"

	"github.com/fuelflow/internal/constants"
	"github.com/fuelflow/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupOrderRepositoryTest(t *testing.T) (*GormOrderRepository, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:order_repo_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.Client{},
		&models.Order{},
		&models.OrderNote{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	return NewOrderRepository(db), db
}

func seedOrder(t *testing.T, db *gorm.DB, orderID string, createdBy uint, status string) *models.Order {
	t.Helper()
	order := models.Order{
		OrderID:     orderID,
		OrderDate:   time.Now().UTC().Format("2006-01-02"),
		CreatedBy:   createdBy,
		ClientID:    1,
		ProductType: "Diesel",
		Status:      status,
	}
	if err := db.Create(&order).Error; err != nil {
		t.Fatalf("create order %s failed: %v", orderID, err)
	}
	return &order
}

func TestOrderRepositoryUpdateStatusFromMatchesExpected(t *testing.T) {
	repo, db := setupOrderRepositoryTest(t)
	order := seedOrder(t, db, "ORD-20260101-001", 1, constants.OrderStatusPendingApproval)

	rows, err := repo.UpdateStatusFrom(order.ID, constants.OrderStatusPendingApproval, constants.OrderStatusApproved, map[string]interface{}{
		"approved_by": "manager",
	})
	if err != nil {
		t.Fatalf("update status failed: %v", err)
	}
	if rows != 1 {
		t.Fatalf("expected 1 row affected, got %d", rows)
	}

	got, err := repo.GetByID(order.ID)
	if err != nil {
		t.Fatalf("get order failed: %v", err)
	}
	if got.Status != constants.OrderStatusApproved {
		t.Fatalf("expected Approved, got %q", got.Status)
	}
	if got.ApprovedBy != "manager" {
		t.Fatalf("expected approved_by to be set, got %q", got.ApprovedBy)
	}
}

func TestOrderRepositoryUpdateStatusFromRejectsStaleStatus(t *testing.T) {
	repo, db := setupOrderRepositoryTest(t)
	order := seedOrder(t, db, "ORD-20260101-002", 1, constants.OrderStatusApproved)

	// a second approval against the already-consumed Pending Approval status
	rows, err := repo.UpdateStatusFrom(order.ID, constants.OrderStatusPendingApproval, constants.OrderStatusApproved, nil)
	if err != nil {
		t.Fatalf("update status failed: %v", err)
	}
	if rows != 0 {
		t.Fatalf("expected 0 rows affected, got %d", rows)
	}

	got, err := repo.GetByID(order.ID)
	if err != nil {
		t.Fatalf("get order failed: %v", err)
	}
	if got.Status != constants.OrderStatusApproved {
		t.Fatalf("status changed unexpectedly to %q", got.Status)
	}
}

func TestOrderRepositoryListFiltersByCreatorAndStatus(t *testing.T) {
	repo, db := setupOrderRepositoryTest(t)
	seedOrder(t, db, "ORD-20260101-003", 1, constants.OrderStatusPendingApproval)
	seedOrder(t, db, "ORD-20260101-004", 2, constants.OrderStatusPendingApproval)
	seedOrder(t, db, "ORD-20260101-005", 1, constants.OrderStatusApproved)

	orders, total, err := repo.List(OrderListFilter{CreatedBy: 1})
	if err != nil {
		t.Fatalf("list by creator failed: %v", err)
	}
	if total != 2 || len(orders) != 2 {
		t.Fatalf("expected 2 orders for creator 1, got total=%d len=%d", total, len(orders))
	}

	orders, total, err = repo.List(OrderListFilter{Status: constants.OrderStatusApproved})
	if err != nil {
		t.Fatalf("list by status failed: %v", err)
	}
	if total != 1 || orders[0].OrderID != "ORD-20260101-005" {
		t.Fatalf("expected only the approved order, got total=%d", total)
	}
}

func TestOrderRepositoryListNoDriverQueue(t *testing.T) {
	repo, db := setupOrderRepositoryTest(t)
	seedOrder(t, db, "ORD-20260101-006", 1, constants.OrderStatusApproved)
	assigned := seedOrder(t, db, "ORD-20260101-007", 1, constants.OrderStatusApproved)
	if err := db.Model(assigned).Update("driver_name", "Nikos").Error; err != nil {
		t.Fatalf("set driver failed: %v", err)
	}

	orders, total, err := repo.List(OrderListFilter{Status: constants.OrderStatusApproved, NoDriver: true})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 1 || orders[0].OrderID != "ORD-20260101-006" {
		t.Fatalf("expected only the unassigned order, got total=%d", total)
	}
}

func TestOrderRepositoryListNoProformaQueue(t *testing.T) {
	repo, db := setupOrderRepositoryTest(t)
	seedOrder(t, db, "ORD-20260101-008", 1, constants.OrderStatusApproved)
	billed := seedOrder(t, db, "ORD-20260101-009", 1, constants.OrderStatusApproved)
	if err := db.Model(billed).Update("proforma_number", "PF-001").Error; err != nil {
		t.Fatalf("set proforma failed: %v", err)
	}

	orders, total, err := repo.List(OrderListFilter{Status: constants.OrderStatusApproved, NoProforma: true})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 1 || orders[0].OrderID != "ORD-20260101-008" {
		t.Fatalf("expected only the order without a proforma, got total=%d", total)
	}
}

func TestOrderRepositoryCountByOrderDatePrefix(t *testing.T) {
	repo, db := setupOrderRepositoryTest(t)
	seedOrder(t, db, "ORD-20260102-001", 1, constants.OrderStatusPendingApproval)
	seedOrder(t, db, "ORD-20260102-002", 1, constants.OrderStatusPendingApproval)
	seedOrder(t, db, "ORD-20260103-001", 1, constants.OrderStatusPendingApproval)

	total, err := repo.CountByOrderDatePrefix("ORD-20260102-")
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if total != 2 {
		t.Fatalf("expected 2 orders under prefix, got %d", total)
	}
}

func TestNoteRepositoryDedupeKeyIsUnique(t *testing.T) {
	_, db := setupOrderRepositoryTest(t)
	order := seedOrder(t, db, "ORD-20260101-008", 1, constants.OrderStatusPendingApproval)
	notes := NewNoteRepository(db)

	key := "order:transition:1:Approved:manager"
	first := models.OrderNote{
		OrderRef:  order.ID,
		OrderID:   order.OrderID,
		UserName:  "manager",
		Note:      "Status changed to Approved",
		NoteType:  constants.NoteTypeStatusChange,
		DedupeKey: &key,
	}
	if err := notes.Create(&first); err != nil {
		t.Fatalf("create first note failed: %v", err)
	}

	dup := models.OrderNote{
		OrderRef:  order.ID,
		OrderID:   order.OrderID,
		UserName:  "manager",
		Note:      "Status changed to Approved",
		NoteType:  constants.NoteTypeStatusChange,
		DedupeKey: &key,
	}
	if err := notes.Create(&dup); err == nil {
		t.Fatalf("expected unique constraint violation for duplicate dedupe key")
	}

	got, err := notes.List(NoteListFilter{OrderRef: order.ID})
	if err != nil {
		t.Fatalf("list notes failed: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 note, got %d", len(got))
	}
}
