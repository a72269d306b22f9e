package workflow

import (
	"fmt"
	"strings"

	"github.com/fuelflow/internal/constants"
	"github.com/fuelflow/internal/models"
)

// Transition is one row of the order status table: the action name, the only
// status it may fire from, the status it produces, and the department allowed
// to trigger it.
type Transition struct {
	Action         string
	From           string
	To             string
	Department     string
	ReasonRequired bool
}

// transitions is the single source of truth for the order lifecycle:
//
//	Pending Approval -> Approved -> Truck Assigned -> In Warehouse -> Loading -> Left Warehouse -> Delivered
//	Pending Approval -> Rejected
//	Left Warehouse -> Disputed -> Resolved
var transitions = map[string]Transition{
	constants.ActionApprove: {
		Action:     constants.ActionApprove,
		From:       constants.OrderStatusPendingApproval,
		To:         constants.OrderStatusApproved,
		Department: constants.DepartmentManagement,
	},
	constants.ActionReject: {
		Action:         constants.ActionReject,
		From:           constants.OrderStatusPendingApproval,
		To:             constants.OrderStatusRejected,
		Department:     constants.DepartmentManagement,
		ReasonRequired: true,
	},
	constants.ActionAssignTransport: {
		Action:     constants.ActionAssignTransport,
		From:       constants.OrderStatusApproved,
		To:         constants.OrderStatusTruckAssigned,
		Department: constants.DepartmentTransport,
	},
	constants.ActionMarkInWarehouse: {
		Action:     constants.ActionMarkInWarehouse,
		From:       constants.OrderStatusTruckAssigned,
		To:         constants.OrderStatusInWarehouse,
		Department: constants.DepartmentWarehouse,
	},
	constants.ActionMarkLoading: {
		Action:     constants.ActionMarkLoading,
		From:       constants.OrderStatusInWarehouse,
		To:         constants.OrderStatusLoading,
		Department: constants.DepartmentWarehouse,
	},
	constants.ActionMarkLeftWarehouse: {
		Action:     constants.ActionMarkLeftWarehouse,
		From:       constants.OrderStatusLoading,
		To:         constants.OrderStatusLeftWarehouse,
		Department: constants.DepartmentWarehouse,
	},
	constants.ActionMarkDelivered: {
		Action:     constants.ActionMarkDelivered,
		From:       constants.OrderStatusLeftWarehouse,
		To:         constants.OrderStatusDelivered,
		Department: constants.DepartmentTransport,
	},
	constants.ActionMarkDisputed: {
		Action:         constants.ActionMarkDisputed,
		From:           constants.OrderStatusLeftWarehouse,
		To:             constants.OrderStatusDisputed,
		Department:     constants.DepartmentTransport,
		ReasonRequired: true,
	},
	constants.ActionResolveDispute: {
		Action:     constants.ActionResolveDispute,
		From:       constants.OrderStatusDisputed,
		To:         constants.OrderStatusResolved,
		Department: constants.DepartmentManagement,
	},
}

// Lookup returns the transition row for an action.
func Lookup(action string) (Transition, bool) {
	t, ok := transitions[action]
	return t, ok
}

// Actions returns all action names in the table.
func Actions() []string {
	names := make([]string, 0, len(transitions))
	for name := range transitions {
		names = append(names, name)
	}
	return names
}

// ResolveInput carries the actor context and payload of a transition attempt.
type ResolveInput struct {
	Action     string
	Department string
	Reason     string

	// assignTransport payload
	DriverName        string
	TruckPlate        string
	TransportCompany  string
	EstimatedDelivery bool
}

// Resolve checks a transition attempt against the table and the order's
// current state. It is pure: callers persist the resulting status change
// themselves, under a compare-and-set on the From status.
func Resolve(order *models.Order, in ResolveInput) (Transition, error) {
	t, ok := transitions[in.Action]
	if !ok {
		return Transition{}, fmt.Errorf("%w: %s", ErrUnknownAction, in.Action)
	}
	if order == nil {
		return Transition{}, fmt.Errorf("%w: order is nil", ErrValidation)
	}
	if in.Department != t.Department {
		return Transition{}, fmt.Errorf("%w: %s requires %s", ErrForbiddenDepartment, t.Action, t.Department)
	}
	if order.Status != t.From {
		return Transition{}, fmt.Errorf("%w: %s is not legal from %q", ErrInvalidTransition, t.Action, order.Status)
	}
	if t.ReasonRequired && strings.TrimSpace(in.Reason) == "" {
		return Transition{}, fmt.Errorf("%w: %s requires a reason", ErrValidation, t.Action)
	}
	if t.Action == constants.ActionAssignTransport {
		if strings.TrimSpace(order.DriverName) != "" {
			return Transition{}, fmt.Errorf("%w: transport already assigned", ErrInvalidTransition)
		}
		if strings.TrimSpace(in.DriverName) == "" ||
			strings.TrimSpace(in.TruckPlate) == "" ||
			strings.TrimSpace(in.TransportCompany) == "" ||
			!in.EstimatedDelivery {
			return Transition{}, fmt.Errorf("%w: driver, truck, company and estimated delivery are required", ErrValidation)
		}
	}
	return t, nil
}

// CanEnterProforma reports whether Finance may record a proforma for the
// given status. Proforma entry never changes status.
func CanEnterProforma(status string) bool {
	return status != constants.OrderStatusPendingApproval && status != constants.OrderStatusRejected
}

// CanEnterInvoice reports whether Finance may record an invoice: the proforma
// must already be present and the invoice not yet entered.
func CanEnterInvoice(order *models.Order) bool {
	if order == nil {
		return false
	}
	return strings.TrimSpace(order.ProformaNumber) != "" && strings.TrimSpace(order.InvoiceNumber) == ""
}
