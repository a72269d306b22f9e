package workflow

import (
	"github.com/fuelflow/internal/constants"
	"github.com/fuelflow/internal/models"
)

// financialDepartments may see margin, prices, totals and billing documents.
var financialDepartments = map[string]struct{}{
	constants.DepartmentSales:      {},
	constants.DepartmentManagement: {},
	constants.DepartmentFinance:    {},
	constants.DepartmentAdmin:      {},
}

// CanSeeFinancial reports whether a department sees commercial fields.
// Transport and Warehouse work with redacted orders.
func CanSeeFinancial(department string) bool {
	_, ok := financialDepartments[department]
	return ok
}

// CanViewOrder reports whether a user may see an order at all. Sales users
// only see orders they created; every other department sees all orders.
func CanViewOrder(department string, userID uint, order *models.Order) bool {
	if order == nil {
		return false
	}
	if department == constants.DepartmentSales {
		return order.CreatedBy == userID
	}
	return true
}

// FilterVisible keeps only the orders a user may see.
func FilterVisible(department string, userID uint, orders []models.Order) []models.Order {
	if department != constants.DepartmentSales {
		return orders
	}
	out := make([]models.Order, 0, len(orders))
	for i := range orders {
		if orders[i].CreatedBy == userID {
			out = append(out, orders[i])
		}
	}
	return out
}

// Queue predicates. Each work queue view shows the orders a department can
// currently act on.

// NeedsApproval reports whether an order sits in the Management approval queue.
func NeedsApproval(o *models.Order) bool {
	return o != nil && o.Status == constants.OrderStatusPendingApproval
}

// NeedsTransport reports whether an order awaits a transport assignment.
func NeedsTransport(o *models.Order) bool {
	return o != nil && o.Status == constants.OrderStatusApproved && o.DriverName == ""
}

// InWarehousePipeline reports whether an order is in one of the warehouse
// stages the Warehouse department advances.
func InWarehousePipeline(o *models.Order) bool {
	if o == nil {
		return false
	}
	switch o.Status {
	case constants.OrderStatusTruckAssigned, constants.OrderStatusInWarehouse, constants.OrderStatusLoading:
		return true
	}
	return false
}

// AwaitingDelivery reports whether an order is on the road and pending a
// delivered or disputed outcome.
func AwaitingDelivery(o *models.Order) bool {
	return o != nil && o.Status == constants.OrderStatusLeftWarehouse
}

// InDispute reports whether an order awaits a Management resolution.
func InDispute(o *models.Order) bool {
	return o != nil && o.Status == constants.OrderStatusDisputed
}

// NeedsProforma reports whether Finance still owes the order a proforma.
func NeedsProforma(o *models.Order) bool {
	return o != nil && CanEnterProforma(o.Status) && o.ProformaNumber == ""
}

// NeedsInvoice reports whether Finance still owes the order an invoice.
func NeedsInvoice(o *models.Order) bool {
	return o != nil && CanEnterInvoice(o)
}
