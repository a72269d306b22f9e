package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"time"

	"github.com/fuelflow/internal/cache"
	"github.com/fuelflow/internal/constants"
	"github.com/fuelflow/internal/models"
	"github.com/fuelflow/internal/repository"
)

const analyticsCacheTTL = 45 * time.Second

// deliveryTolerance is the on-time window around the requested date.
const deliveryTolerance = 24 * time.Hour

// AnalyticsService folds the order set into management reports.
type AnalyticsService struct {
	orderRepo repository.OrderRepository
	userRepo  repository.UserRepository
}

// NewAnalyticsService creates the analytics service.
func NewAnalyticsService(orderRepo repository.OrderRepository, userRepo repository.UserRepository) *AnalyticsService {
	return &AnalyticsService{orderRepo: orderRepo, userRepo: userRepo}
}

// SalesManagerStats is one Sales user's order outcomes.
type SalesManagerStats struct {
	UserID      uint   `json:"user_id"`
	Username    string `json:"username"`
	FullName    string `json:"full_name"`
	Total       int64  `json:"total"`
	Delivered   int64  `json:"delivered"`
	Rejected    int64  `json:"rejected"`
	Disputed    int64  `json:"disputed"`
	SuccessRate string `json:"success_rate"`
}

// StageAverages are the mean days spent between lifecycle stamps.
type StageAverages struct {
	CreationToApproval  string `json:"creation_to_approval"`
	ApprovalToWarehouse string `json:"approval_to_warehouse"`
	WarehouseToLoading  string `json:"warehouse_to_loading"`
	LoadingToDeparture  string `json:"loading_to_departure"`
	DepartureToDelivery string `json:"departure_to_delivery"`
}

// DeliveryPerformance buckets delivered orders against the requested date.
// Early means delivered more than a day before the requested date, on time
// means within a day either way, late is the rest. Orders without both dates
// fall into NoData.
type DeliveryPerformance struct {
	Early  int64 `json:"early"`
	OnTime int64 `json:"on_time"`
	Late   int64 `json:"late"`
	NoData int64 `json:"no_data"`
}

// AnalyticsReport is the management overview.
type AnalyticsReport struct {
	GeneratedAt      time.Time           `json:"generated_at"`
	TotalOrders      int64               `json:"total_orders"`
	StatusCounts     map[string]int64    `json:"status_counts"`
	ProductCounts    map[string]int64    `json:"product_counts"`
	TransportCounts  map[string]int64    `json:"transport_counts"`
	SalesManagers    []SalesManagerStats `json:"sales_managers"`
	StageAverages    StageAverages       `json:"stage_averages"`
	Delivery         DeliveryPerformance `json:"delivery_performance"`
}

// Report computes the overview, serving a short-lived cached copy when
// available.
func (s *AnalyticsService) Report(ctx context.Context, forceRefresh bool) (*AnalyticsReport, error) {
	const cacheKey = "analytics:report"
	if !forceRefresh {
		var cached AnalyticsReport
		hit, cacheErr := cache.GetJSON(ctx, cacheKey, &cached)
		if cacheErr == nil && hit {
			return &cached, nil
		}
	}

	orders, err := s.orderRepo.ListAll()
	if err != nil {
		return nil, err
	}

	report := &AnalyticsReport{
		GeneratedAt:     time.Now(),
		TotalOrders:     int64(len(orders)),
		StatusCounts:    make(map[string]int64),
		ProductCounts:   make(map[string]int64),
		TransportCounts: make(map[string]int64),
	}

	type smAccumulator struct {
		total, delivered, rejected, disputed int64
	}
	perSM := make(map[uint]*smAccumulator)

	type stageSum struct {
		total time.Duration
		count int64
	}
	var toApproval, toWarehouse, toLoading, toDeparture, toDelivery stageSum
	accumulate := func(sum *stageSum, from, to *time.Time) {
		if from == nil || to == nil || to.Before(*from) {
			return
		}
		sum.total += to.Sub(*from)
		sum.count++
	}

	for i := range orders {
		o := &orders[i]
		report.StatusCounts[o.Status]++
		report.ProductCounts[o.ProductType]++
		if o.TransportCompany != "" {
			report.TransportCounts[o.TransportCompany]++
		}

		acc := perSM[o.CreatedBy]
		if acc == nil {
			acc = &smAccumulator{}
			perSM[o.CreatedBy] = acc
		}
		acc.total++
		switch o.Status {
		case constants.OrderStatusDelivered:
			acc.delivered++
		case constants.OrderStatusRejected:
			acc.rejected++
		case constants.OrderStatusDisputed, constants.OrderStatusResolved:
			acc.disputed++
		}

		createdAt := o.CreatedAt
		accumulate(&toApproval, &createdAt, o.ApprovalDate)
		accumulate(&toWarehouse, o.ApprovalDate, o.InWarehouseAt)
		accumulate(&toLoading, o.InWarehouseAt, o.LoadingAt)
		accumulate(&toDeparture, o.LoadingAt, o.LeftWarehouseAt)
		accumulate(&toDelivery, o.LeftWarehouseAt, o.ActualDelivery)

		s.bucketDelivery(o, &report.Delivery)
	}

	report.StageAverages = StageAverages{
		CreationToApproval:  avgDays(toApproval.total, toApproval.count),
		ApprovalToWarehouse: avgDays(toWarehouse.total, toWarehouse.count),
		WarehouseToLoading:  avgDays(toLoading.total, toLoading.count),
		LoadingToDeparture:  avgDays(toDeparture.total, toDeparture.count),
		DepartureToDelivery: avgDays(toDelivery.total, toDelivery.count),
	}

	ids := make([]uint, 0, len(perSM))
	for id := range perSM {
		ids = append(ids, id)
	}
	users, err := s.userRepo.ListByIDs(ids)
	if err != nil {
		return nil, err
	}
	names := make(map[uint]*models.User, len(users))
	for i := range users {
		names[users[i].ID] = &users[i]
	}
	for id, acc := range perSM {
		stats := SalesManagerStats{
			UserID:    id,
			Total:     acc.total,
			Delivered: acc.delivered,
			Rejected:  acc.rejected,
			Disputed:  acc.disputed,
		}
		if u := names[id]; u != nil {
			stats.Username = u.Username
			stats.FullName = u.FullName
		}
		if acc.total > 0 {
			stats.SuccessRate = fmt.Sprintf("%.1f%%", float64(acc.delivered)/float64(acc.total)*100)
		} else {
			stats.SuccessRate = "0.0%"
		}
		report.SalesManagers = append(report.SalesManagers, stats)
	}

	_ = cache.SetJSON(ctx, "analytics:report", report, analyticsCacheTTL)
	return report, nil
}

func (s *AnalyticsService) bucketDelivery(o *models.Order, perf *DeliveryPerformance) {
	if o.Status != constants.OrderStatusDelivered && o.Status != constants.OrderStatusDisputed && o.Status != constants.OrderStatusResolved {
		return
	}
	if o.RequestedDeliveryDate == nil || o.ActualDelivery == nil {
		perf.NoData++
		return
	}
	diff := o.ActualDelivery.Sub(*o.RequestedDeliveryDate)
	switch {
	case diff < -deliveryTolerance:
		perf.Early++
	case diff <= deliveryTolerance:
		perf.OnTime++
	default:
		perf.Late++
	}
}

func avgDays(total time.Duration, count int64) string {
	if count == 0 {
		return "0.0"
	}
	days := total.Hours() / 24 / float64(count)
	return fmt.Sprintf("%.1f", days)
}

// ExportOrdersCSV renders the full order list as CSV for Management exports.
func (s *AnalyticsService) ExportOrdersCSV() ([]byte, error) {
	orders, err := s.orderRepo.ListAll()
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	header := []string{
		"order_id", "order_date", "client", "product_type", "quantity", "unit",
		"regulatory_price", "margin", "price_with_margin", "total_amount",
		"status", "warehouse", "priority", "driver", "truck", "transport_company",
		"requested_delivery", "actual_delivery",
	}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for i := range orders {
		o := &orders[i]
		clientName := ""
		if o.Client != nil {
			clientName = o.Client.ClientName
		}
		row := []string{
			o.OrderID,
			o.OrderDate,
			clientName,
			o.ProductType,
			o.Quantity.String(),
			o.Unit,
			o.RegulatoryPrice.String(),
			o.Margin.String(),
			o.PriceWithMargin.String(),
			o.TotalAmount.String(),
			o.Status,
			o.Warehouse,
			o.Priority,
			o.DriverName,
			o.TruckPlate,
			o.TransportCompany,
			formatDate(o.RequestedDeliveryDate),
			formatDate(o.ActualDelivery),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}
