package workflow

import (
	"github.com/fuelflow/internal/constants"
)

// Statuses lists every order status in pipeline order. The wire strings are
// shared with the legacy spreadsheet exports and must not change.
var Statuses = []string{
	constants.OrderStatusPendingApproval,
	constants.OrderStatusApproved,
	constants.OrderStatusRejected,
	constants.OrderStatusTruckAssigned,
	constants.OrderStatusInWarehouse,
	constants.OrderStatusLoading,
	constants.OrderStatusLeftWarehouse,
	constants.OrderStatusDelivered,
	constants.OrderStatusDisputed,
	constants.OrderStatusResolved,
}

var statusSet = func() map[string]struct{} {
	set := make(map[string]struct{}, len(Statuses))
	for _, s := range Statuses {
		set[s] = struct{}{}
	}
	return set
}()

var terminalSet = map[string]struct{}{
	constants.OrderStatusDelivered: {},
	constants.OrderStatusRejected:  {},
	constants.OrderStatusResolved:  {},
}

// ValidStatus reports whether s is one of the ten defined statuses.
func ValidStatus(s string) bool {
	_, ok := statusSet[s]
	return ok
}

// IsTerminal reports whether no further transition is legal from s.
func IsTerminal(s string) bool {
	_, ok := terminalSet[s]
	return ok
}
