package authz

import (
	"fmt"

	"github.com/fuelflow/internal/constants"
)

// RoleSeed is a built-in department role definition.
type RoleSeed struct {
	Role     string
	Inherits []string
	Policies []Policy
}

// staffRole is the baseline every department inherits. Row-level visibility
// and per-action department checks stay in the service layer; routes here are
// the ones any signed-in user may reach.
const staffRole = "staff"

// BuiltinRoleSeeds returns the department permission matrix.
func BuiltinRoleSeeds() []RoleSeed {
	return []RoleSeed{
		{
			Role: staffRole,
			Policies: []Policy{
				{Object: "/profile", Action: "GET"},
				{Object: "/auth/password", Action: "POST"},
				{Object: "/orders", Action: "GET"},
				{Object: "/orders/:id", Action: "GET"},
				{Object: "/orders/:id/actions", Action: "POST"},
				{Object: "/orders/:id/notes", Action: "GET"},
				{Object: "/orders/:id/notes", Action: "POST"},
				{Object: "/orders/:id/documents", Action: "GET"},
				{Object: "/orders/:id/documents", Action: "POST"},
				{Object: "/orders/:id/documents/:doc_id/download", Action: "GET"},
				{Object: "/orders/:id/documents/:doc_id", Action: "DELETE"},
				{Object: "/clients", Action: "GET"},
				{Object: "/drivers", Action: "GET"},
				{Object: "/trucks", Action: "GET"},
				{Object: "/transport-companies", Action: "GET"},
				{Object: "/prices", Action: "GET"},
				{Object: "/prices/history", Action: "GET"},
			},
		},
		{
			Role:     constants.DepartmentSales,
			Inherits: []string{staffRole},
			Policies: []Policy{
				{Object: "/orders", Action: "POST"},
			},
		},
		{
			Role:     constants.DepartmentManagement,
			Inherits: []string{staffRole},
			Policies: []Policy{
				{Object: "/analytics/report", Action: "GET"},
				{Object: "/analytics/export", Action: "GET"},
				{Object: "/admin/prices", Action: "PUT"},
			},
		},
		{
			Role:     constants.DepartmentFinance,
			Inherits: []string{staffRole},
			Policies: []Policy{
				{Object: "/orders/:id/proforma", Action: "POST"},
				{Object: "/orders/:id/invoice", Action: "POST"},
			},
		},
		{
			Role:     constants.DepartmentTransport,
			Inherits: []string{staffRole},
		},
		{
			Role:     constants.DepartmentWarehouse,
			Inherits: []string{staffRole},
		},
		{
			Role: constants.DepartmentAdmin,
			Policies: []Policy{
				{Object: "/*", Action: "*"},
			},
		},
	}
}

// BootstrapBuiltinRoles installs the department matrix. Existing rules are
// left in place, so the call is idempotent.
func (s *Service) BootstrapBuiltinRoles() error {
	if s == nil || s.enforcer == nil {
		return fmt.Errorf("authz service unavailable")
	}

	for _, seed := range BuiltinRoleSeeds() {
		role := RoleForDepartment(seed.Role)

		for _, parent := range seed.Inherits {
			parentRole := RoleForDepartment(parent)
			if _, err := s.enforcer.AddNamedGroupingPolicy("g", role, parentRole); err != nil {
				return fmt.Errorf("link role inheritance failed: %w", err)
			}
		}

		for _, policy := range seed.Policies {
			action := NormalizeAction(policy.Action)
			if action == "" {
				return fmt.Errorf("builtin policy action is required")
			}
			if _, err := s.enforcer.AddPolicy(role, NormalizeObject(policy.Object), action); err != nil {
				return fmt.Errorf("add builtin policy failed: %w", err)
			}
		}
	}

	return nil
}
