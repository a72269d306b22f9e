package authz

import (
	"fmt"
	"strings"
	"testing"

	"github.com/fuelflow/internal/constants"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupAuthzServiceTest(t *testing.T) *Service {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	svc, err := NewService(db)
	if err != nil {
		t.Fatalf("new authz service failed: %v", err)
	}
	return svc
}

func TestNormalizeObject(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{in: "/api/v1/orders/:id", want: "/orders/:id"},
		{in: "/admin/prices", want: "/admin/prices"},
		{in: "orders", want: "/orders"},
		{in: "/api/v1", want: "/"},
		{in: "", want: "/"},
	}
	for _, item := range cases {
		got := NormalizeObject(item.in)
		if got != item.want {
			t.Fatalf("normalize object failed, in=%q want=%q got=%q", item.in, item.want, got)
		}
	}
}

func TestRoleForDepartment(t *testing.T) {
	if got := RoleForDepartment(constants.DepartmentSales); got != "role:sales" {
		t.Fatalf("sales role got %q", got)
	}
	if got := RoleForDepartment("Transport "); got != "role:transport" {
		t.Fatalf("transport role got %q", got)
	}
}

func TestBootstrapDepartmentMatrix(t *testing.T) {
	svc := setupAuthzServiceTest(t)
	if err := svc.BootstrapBuiltinRoles(); err != nil {
		t.Fatalf("bootstrap failed: %v", err)
	}

	cases := []struct {
		department string
		object     string
		action     string
		want       bool
	}{
		{constants.DepartmentSales, "/api/v1/orders", "POST", true},
		{constants.DepartmentSales, "/api/v1/orders/7", "GET", true},
		{constants.DepartmentSales, "/api/v1/analytics/report", "GET", false},
		{constants.DepartmentTransport, "/api/v1/orders", "POST", false},
		{constants.DepartmentTransport, "/api/v1/orders/7/actions", "POST", true},
		{constants.DepartmentWarehouse, "/api/v1/orders/7/proforma", "POST", false},
		{constants.DepartmentFinance, "/api/v1/orders/7/proforma", "POST", true},
		{constants.DepartmentFinance, "/api/v1/orders/7/invoice", "POST", true},
		{constants.DepartmentManagement, "/api/v1/analytics/report", "GET", true},
		{constants.DepartmentManagement, "/api/v1/analytics/export", "GET", true},
		{constants.DepartmentManagement, "/api/v1/admin/prices", "PUT", true},
		{constants.DepartmentManagement, "/api/v1/admin/users", "POST", false},
		{constants.DepartmentAdmin, "/api/v1/admin/users", "POST", true},
		{constants.DepartmentAdmin, "/api/v1/analytics/export", "GET", true},
	}
	for _, item := range cases {
		allow, err := svc.EnforceDepartment(0, item.department, item.object, item.action)
		if err != nil {
			t.Fatalf("enforce %s %s %s failed: %v", item.department, item.action, item.object, err)
		}
		if allow != item.want {
			t.Fatalf("enforce %s %s %s: want %v got %v", item.department, item.action, item.object, item.want, allow)
		}
	}
}

func TestUserPolicyExtendsDepartment(t *testing.T) {
	svc := setupAuthzServiceTest(t)
	if err := svc.BootstrapBuiltinRoles(); err != nil {
		t.Fatalf("bootstrap failed: %v", err)
	}

	allow, err := svc.EnforceDepartment(9, constants.DepartmentWarehouse, "/api/v1/analytics/report", "GET")
	if err != nil {
		t.Fatalf("enforce baseline failed: %v", err)
	}
	if allow {
		t.Fatalf("warehouse should not reach analytics by default")
	}

	if err := svc.GrantUserPolicy(9, "/analytics/report", "GET"); err != nil {
		t.Fatalf("grant user policy failed: %v", err)
	}
	allow, err = svc.EnforceDepartment(9, constants.DepartmentWarehouse, "/api/v1/analytics/report", "GET")
	if err != nil {
		t.Fatalf("enforce granted failed: %v", err)
	}
	if !allow {
		t.Fatalf("direct user grant should allow access")
	}

	if err := svc.RevokeUserPolicy(9, "/analytics/report", "GET"); err != nil {
		t.Fatalf("revoke user policy failed: %v", err)
	}
	allow, err = svc.EnforceDepartment(9, constants.DepartmentWarehouse, "/api/v1/analytics/report", "GET")
	if err != nil {
		t.Fatalf("enforce revoked failed: %v", err)
	}
	if allow {
		t.Fatalf("revoked grant should deny access")
	}
}
