package workflow

import (
	"errors"
	"testing"

	"github.com/fuelflow/internal/constants"
	"github.com/fuelflow/internal/models"
)

func TestStatusSetIsClosed(t *testing.T) {
	if len(Statuses) != 10 {
		t.Fatalf("expected 10 statuses, got %d", len(Statuses))
	}
	for _, s := range Statuses {
		if !ValidStatus(s) {
			t.Fatalf("status %q not recognized", s)
		}
	}
	if ValidStatus("Shipped") {
		t.Fatalf("unknown status accepted")
	}
	for _, tr := range transitions {
		if !ValidStatus(tr.From) || !ValidStatus(tr.To) {
			t.Fatalf("transition %s references unknown status", tr.Action)
		}
	}
}

func TestTerminalStatuses(t *testing.T) {
	terminal := []string{
		constants.OrderStatusDelivered,
		constants.OrderStatusRejected,
		constants.OrderStatusResolved,
	}
	for _, s := range terminal {
		if !IsTerminal(s) {
			t.Fatalf("%q should be terminal", s)
		}
	}
	for _, tr := range transitions {
		if IsTerminal(tr.From) {
			t.Fatalf("transition %s leaves terminal status %q", tr.Action, tr.From)
		}
	}
}

func TestResolveHappyPath(t *testing.T) {
	order := &models.Order{Status: constants.OrderStatusPendingApproval}
	steps := []struct {
		in   ResolveInput
		want string
	}{
		{ResolveInput{Action: constants.ActionApprove, Department: constants.DepartmentManagement}, constants.OrderStatusApproved},
		{ResolveInput{
			Action: constants.ActionAssignTransport, Department: constants.DepartmentTransport,
			DriverName: "Nikos", TruckPlate: "KHO-1234", TransportCompany: "Gulf Transport", EstimatedDelivery: true,
		}, constants.OrderStatusTruckAssigned},
		{ResolveInput{Action: constants.ActionMarkInWarehouse, Department: constants.DepartmentWarehouse}, constants.OrderStatusInWarehouse},
		{ResolveInput{Action: constants.ActionMarkLoading, Department: constants.DepartmentWarehouse}, constants.OrderStatusLoading},
		{ResolveInput{Action: constants.ActionMarkLeftWarehouse, Department: constants.DepartmentWarehouse}, constants.OrderStatusLeftWarehouse},
		{ResolveInput{Action: constants.ActionMarkDelivered, Department: constants.DepartmentTransport}, constants.OrderStatusDelivered},
	}
	for _, step := range steps {
		tr, err := Resolve(order, step.in)
		if err != nil {
			t.Fatalf("%s from %q: %v", step.in.Action, order.Status, err)
		}
		if tr.To != step.want {
			t.Fatalf("%s: want %q, got %q", step.in.Action, step.want, tr.To)
		}
		order.Status = tr.To
		if step.in.Action == constants.ActionAssignTransport {
			order.DriverName = step.in.DriverName
		}
	}
}

func TestResolveDisputePath(t *testing.T) {
	order := &models.Order{Status: constants.OrderStatusLeftWarehouse}
	tr, err := Resolve(order, ResolveInput{
		Action:     constants.ActionMarkDisputed,
		Department: constants.DepartmentTransport,
		Reason:     "short delivery of 200 liters",
	})
	if err != nil {
		t.Fatalf("markDisputed: %v", err)
	}
	order.Status = tr.To

	tr, err = Resolve(order, ResolveInput{
		Action:     constants.ActionResolveDispute,
		Department: constants.DepartmentManagement,
	})
	if err != nil {
		t.Fatalf("resolveDispute: %v", err)
	}
	if tr.To != constants.OrderStatusResolved {
		t.Fatalf("want Resolved, got %q", tr.To)
	}
}

func TestResolveRejectsWrongStatus(t *testing.T) {
	order := &models.Order{Status: constants.OrderStatusApproved}

	// double approve
	_, err := Resolve(order, ResolveInput{Action: constants.ActionApprove, Department: constants.DepartmentManagement})
	if !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("approve on Approved: want ErrInvalidTransition, got %v", err)
	}

	// stage skipping
	_, err = Resolve(order, ResolveInput{Action: constants.ActionMarkLoading, Department: constants.DepartmentWarehouse})
	if !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("markLoading on Approved: want ErrInvalidTransition, got %v", err)
	}
}

func TestResolveRejectsTerminalStatus(t *testing.T) {
	for _, s := range []string{constants.OrderStatusDelivered, constants.OrderStatusRejected, constants.OrderStatusResolved} {
		order := &models.Order{Status: s}
		for action := range transitions {
			in := ResolveInput{Action: action, Department: transitions[action].Department, Reason: "x",
				DriverName: "d", TruckPlate: "t", TransportCompany: "c", EstimatedDelivery: true}
			if _, err := Resolve(order, in); !errors.Is(err, ErrInvalidTransition) {
				t.Fatalf("%s on terminal %q: want ErrInvalidTransition, got %v", action, s, err)
			}
		}
	}
}

func TestResolveRejectsWrongDepartment(t *testing.T) {
	order := &models.Order{Status: constants.OrderStatusPendingApproval}
	for _, dept := range []string{
		constants.DepartmentSales,
		constants.DepartmentFinance,
		constants.DepartmentTransport,
		constants.DepartmentWarehouse,
		constants.DepartmentAdmin,
	} {
		_, err := Resolve(order, ResolveInput{Action: constants.ActionApprove, Department: dept})
		if !errors.Is(err, ErrForbiddenDepartment) {
			t.Fatalf("approve as %s: want ErrForbiddenDepartment, got %v", dept, err)
		}
	}
}

func TestResolveRequiresReason(t *testing.T) {
	order := &models.Order{Status: constants.OrderStatusPendingApproval}
	_, err := Resolve(order, ResolveInput{Action: constants.ActionReject, Department: constants.DepartmentManagement})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("reject without reason: want ErrValidation, got %v", err)
	}
	_, err = Resolve(order, ResolveInput{Action: constants.ActionReject, Department: constants.DepartmentManagement, Reason: "  "})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("reject with blank reason: want ErrValidation, got %v", err)
	}

	order.Status = constants.OrderStatusLeftWarehouse
	_, err = Resolve(order, ResolveInput{Action: constants.ActionMarkDisputed, Department: constants.DepartmentTransport})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("markDisputed without reason: want ErrValidation, got %v", err)
	}
}

func TestAssignTransportGuards(t *testing.T) {
	base := ResolveInput{
		Action:            constants.ActionAssignTransport,
		Department:        constants.DepartmentTransport,
		DriverName:        "Nikos",
		TruckPlate:        "KHO-1234",
		TransportCompany:  "Gulf Transport",
		EstimatedDelivery: true,
	}

	// already assigned
	order := &models.Order{Status: constants.OrderStatusApproved, DriverName: "Someone"}
	if _, err := Resolve(order, base); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("re-assign: want ErrInvalidTransition, got %v", err)
	}

	// incomplete payloads
	order = &models.Order{Status: constants.OrderStatusApproved}
	for _, in := range []ResolveInput{
		func(i ResolveInput) ResolveInput { i.DriverName = ""; return i }(base),
		func(i ResolveInput) ResolveInput { i.TruckPlate = ""; return i }(base),
		func(i ResolveInput) ResolveInput { i.TransportCompany = ""; return i }(base),
		func(i ResolveInput) ResolveInput { i.EstimatedDelivery = false; return i }(base),
	} {
		if _, err := Resolve(order, in); !errors.Is(err, ErrValidation) {
			t.Fatalf("incomplete assignment: want ErrValidation, got %v", err)
		}
	}

	if _, err := Resolve(order, base); err != nil {
		t.Fatalf("complete assignment: %v", err)
	}
}

func TestUnknownAction(t *testing.T) {
	order := &models.Order{Status: constants.OrderStatusPendingApproval}
	_, err := Resolve(order, ResolveInput{Action: "teleport", Department: constants.DepartmentManagement})
	if !errors.Is(err, ErrUnknownAction) {
		t.Fatalf("want ErrUnknownAction, got %v", err)
	}
}

func TestDocumentEntryGates(t *testing.T) {
	if CanEnterProforma(constants.OrderStatusPendingApproval) {
		t.Fatalf("proforma allowed on Pending Approval")
	}
	if CanEnterProforma(constants.OrderStatusRejected) {
		t.Fatalf("proforma allowed on Rejected")
	}
	for _, s := range Statuses {
		if s == constants.OrderStatusPendingApproval || s == constants.OrderStatusRejected {
			continue
		}
		if !CanEnterProforma(s) {
			t.Fatalf("proforma blocked on %q", s)
		}
	}

	if CanEnterInvoice(&models.Order{Status: constants.OrderStatusApproved}) {
		t.Fatalf("invoice allowed without proforma")
	}
	if !CanEnterInvoice(&models.Order{Status: constants.OrderStatusApproved, ProformaNumber: "PF-001"}) {
		t.Fatalf("invoice blocked with proforma present")
	}
	if CanEnterInvoice(&models.Order{ProformaNumber: "PF-001", InvoiceNumber: "INV-001"}) {
		t.Fatalf("invoice allowed twice")
	}
}

func TestFinancialVisibility(t *testing.T) {
	for _, dept := range []string{constants.DepartmentSales, constants.DepartmentManagement, constants.DepartmentFinance, constants.DepartmentAdmin} {
		if !CanSeeFinancial(dept) {
			t.Fatalf("%s should see financial fields", dept)
		}
	}
	for _, dept := range []string{constants.DepartmentTransport, constants.DepartmentWarehouse} {
		if CanSeeFinancial(dept) {
			t.Fatalf("%s should not see financial fields", dept)
		}
	}
}

func TestSalesOwnOrderVisibility(t *testing.T) {
	mine := models.Order{CreatedBy: 7}
	other := models.Order{CreatedBy: 8}

	if !CanViewOrder(constants.DepartmentSales, 7, &mine) {
		t.Fatalf("sales user blocked from own order")
	}
	if CanViewOrder(constants.DepartmentSales, 7, &other) {
		t.Fatalf("sales user sees foreign order")
	}
	if !CanViewOrder(constants.DepartmentManagement, 7, &other) {
		t.Fatalf("management blocked from order")
	}

	got := FilterVisible(constants.DepartmentSales, 7, []models.Order{mine, other})
	if len(got) != 1 || got[0].CreatedBy != 7 {
		t.Fatalf("FilterVisible for sales: got %d orders", len(got))
	}
	got = FilterVisible(constants.DepartmentWarehouse, 7, []models.Order{mine, other})
	if len(got) != 2 {
		t.Fatalf("FilterVisible for warehouse: got %d orders", len(got))
	}
}

func TestQueuePredicates(t *testing.T) {
	if !NeedsApproval(&models.Order{Status: constants.OrderStatusPendingApproval}) {
		t.Fatalf("pending order missing from approval queue")
	}
	if !NeedsTransport(&models.Order{Status: constants.OrderStatusApproved}) {
		t.Fatalf("approved order missing from transport queue")
	}
	if NeedsTransport(&models.Order{Status: constants.OrderStatusApproved, DriverName: "Nikos"}) {
		t.Fatalf("assigned order still in transport queue")
	}
	for _, s := range []string{constants.OrderStatusTruckAssigned, constants.OrderStatusInWarehouse, constants.OrderStatusLoading} {
		if !InWarehousePipeline(&models.Order{Status: s}) {
			t.Fatalf("%q missing from warehouse pipeline", s)
		}
	}
	if InWarehousePipeline(&models.Order{Status: constants.OrderStatusLeftWarehouse}) {
		t.Fatalf("left warehouse order still in warehouse pipeline")
	}
	if !AwaitingDelivery(&models.Order{Status: constants.OrderStatusLeftWarehouse}) {
		t.Fatalf("left warehouse order missing from delivery queue")
	}
	if !InDispute(&models.Order{Status: constants.OrderStatusDisputed}) {
		t.Fatalf("disputed order missing from dispute queue")
	}
	if !NeedsProforma(&models.Order{Status: constants.OrderStatusApproved}) {
		t.Fatalf("approved order missing from proforma queue")
	}
	if NeedsProforma(&models.Order{Status: constants.OrderStatusApproved, ProformaNumber: "PF-001"}) {
		t.Fatalf("order with proforma still in proforma queue")
	}
}
