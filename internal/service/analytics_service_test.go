package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"testing"
	"time"

	"github.com/fuelflow/internal/constants"
	"github.com/fuelflow/internal/models"
	"github.com/fuelflow/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupAnalyticsTest(t *testing.T) (*AnalyticsService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:analytics_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Client{}, &models.Order{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	svc := NewAnalyticsService(repository.NewOrderRepository(db), repository.NewUserRepository(db))
	return svc, db
}

func seedAnalyticsOrder(t *testing.T, db *gorm.DB, n int, mutate func(*models.Order)) *models.Order {
	t.Helper()
	order := models.Order{
		OrderID:     fmt.Sprintf("ORD-20260830-%03d", n),
		OrderDate:   "2026-08-30",
		ClientID:    1,
		ProductType: "Diesel",
		Quantity:    models.NewMoneyFromDecimal(decimal.NewFromInt(100)),
		Unit:        "L",
		Status:      constants.OrderStatusPendingApproval,
		CreatedBy:   1,
	}
	if mutate != nil {
		mutate(&order)
	}
	if err := db.Create(&order).Error; err != nil {
		t.Fatalf("seed order failed: %v", err)
	}
	return &order
}

func TestAnalyticsReportCountsAndSuccessRate(t *testing.T) {
	svc, db := setupAnalyticsTest(t)
	if err := db.Create(&models.User{
		Username:   "sales1",
		FullName:   "Maria P",
		Department: constants.DepartmentSales,
		Status:     constants.UserStatusActive,
	}).Error; err != nil {
		t.Fatalf("seed user failed: %v", err)
	}

	seedAnalyticsOrder(t, db, 1, func(o *models.Order) {
		o.Status = constants.OrderStatusDelivered
		o.TransportCompany = "Hermes Logistics"
	})
	seedAnalyticsOrder(t, db, 2, func(o *models.Order) {
		o.Status = constants.OrderStatusDelivered
		o.ProductType = "Petrol 95"
	})
	seedAnalyticsOrder(t, db, 3, func(o *models.Order) {
		o.Status = constants.OrderStatusRejected
	})
	seedAnalyticsOrder(t, db, 4, func(o *models.Order) {
		o.Status = constants.OrderStatusDisputed
	})

	report, err := svc.Report(context.Background(), true)
	if err != nil {
		t.Fatalf("report failed: %v", err)
	}
	if report.TotalOrders != 4 {
		t.Fatalf("expected 4 orders, got %d", report.TotalOrders)
	}
	if report.StatusCounts[constants.OrderStatusDelivered] != 2 {
		t.Fatalf("delivered count wrong: %v", report.StatusCounts)
	}
	if report.ProductCounts["Diesel"] != 3 || report.ProductCounts["Petrol 95"] != 1 {
		t.Fatalf("product counts wrong: %v", report.ProductCounts)
	}
	if report.TransportCounts["Hermes Logistics"] != 1 {
		t.Fatalf("transport counts wrong: %v", report.TransportCounts)
	}

	if len(report.SalesManagers) != 1 {
		t.Fatalf("expected one sales manager, got %d", len(report.SalesManagers))
	}
	sm := report.SalesManagers[0]
	if sm.Username != "sales1" || sm.Total != 4 || sm.Delivered != 2 || sm.Rejected != 1 || sm.Disputed != 1 {
		t.Fatalf("sales manager stats wrong: %+v", sm)
	}
	if sm.SuccessRate != "50.0%" {
		t.Fatalf("expected success rate 50.0%%, got %q", sm.SuccessRate)
	}
}

func TestAnalyticsDeliveryBuckets(t *testing.T) {
	svc, db := setupAnalyticsTest(t)
	requested := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)

	mark := func(actual *time.Time) func(*models.Order) {
		return func(o *models.Order) {
			o.Status = constants.OrderStatusDelivered
			o.RequestedDeliveryDate = &requested
			o.ActualDelivery = actual
		}
	}
	early := requested.Add(-48 * time.Hour)
	onTime := requested.Add(6 * time.Hour)
	late := requested.Add(72 * time.Hour)

	seedAnalyticsOrder(t, db, 1, mark(&early))
	seedAnalyticsOrder(t, db, 2, mark(&onTime))
	seedAnalyticsOrder(t, db, 3, mark(&late))
	seedAnalyticsOrder(t, db, 4, func(o *models.Order) {
		o.Status = constants.OrderStatusDelivered
	})
	// open orders are not bucketed
	seedAnalyticsOrder(t, db, 5, func(o *models.Order) {
		o.Status = constants.OrderStatusApproved
		o.RequestedDeliveryDate = &requested
	})

	report, err := svc.Report(context.Background(), true)
	if err != nil {
		t.Fatalf("report failed: %v", err)
	}
	perf := report.Delivery
	if perf.Early != 1 || perf.OnTime != 1 || perf.Late != 1 || perf.NoData != 1 {
		t.Fatalf("delivery buckets wrong: %+v", perf)
	}
}

func TestAnalyticsStageAverages(t *testing.T) {
	svc, db := setupAnalyticsTest(t)
	base := time.Date(2026, 8, 1, 8, 0, 0, 0, time.UTC)
	approval := base.Add(48 * time.Hour)
	inWarehouse := approval.Add(24 * time.Hour)

	seedAnalyticsOrder(t, db, 1, func(o *models.Order) {
		o.Status = constants.OrderStatusInWarehouse
		o.CreatedAt = base
		o.ApprovalDate = &approval
		o.InWarehouseAt = &inWarehouse
	})

	report, err := svc.Report(context.Background(), true)
	if err != nil {
		t.Fatalf("report failed: %v", err)
	}
	if report.StageAverages.CreationToApproval != "2.0" {
		t.Fatalf("creation to approval: got %q", report.StageAverages.CreationToApproval)
	}
	if report.StageAverages.ApprovalToWarehouse != "1.0" {
		t.Fatalf("approval to warehouse: got %q", report.StageAverages.ApprovalToWarehouse)
	}
	// no loading stamp, stage stays at zero
	if report.StageAverages.WarehouseToLoading != "0.0" {
		t.Fatalf("warehouse to loading: got %q", report.StageAverages.WarehouseToLoading)
	}
}

func TestAnalyticsExportOrdersCSV(t *testing.T) {
	svc, db := setupAnalyticsTest(t)
	seedAnalyticsOrder(t, db, 1, func(o *models.Order) {
		o.Status = constants.OrderStatusDelivered
		o.DriverName = "Nikos"
		o.TruckPlate = "KVA-1234"
		o.TotalAmount = models.NewMoneyFromDecimal(decimal.NewFromInt(1600))
	})

	data, err := svc.ExportOrdersCSV()
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}
	rows, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	if err != nil {
		t.Fatalf("parse csv failed: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected header plus one row, got %d rows", len(rows))
	}
	if rows[0][0] != "order_id" || rows[0][9] != "total_amount" {
		t.Fatalf("unexpected header: %v", rows[0])
	}
	row := rows[1]
	if row[0] != "ORD-20260830-001" || row[9] != "1600.00" || row[13] != "Nikos" {
		t.Fatalf("unexpected row: %v", row)
	}
}
