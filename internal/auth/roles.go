package auth

// Role is an administrative role carried in a bearer token.
type Role string

const (
	RoleSuperAdmin Role = "super_admin"
	RoleOps        Role = "ops"
	RoleSupport    Role = "support"
)

// Capability names a single administrative action. Endpoints check
// capabilities, never role strings, so the role-to-permission mapping lives
// in exactly one place.
type Capability string

const (
	CanToggleSalesGate    Capability = "toggle_sales_gate"
	CanForceRecalculation Capability = "force_recalculation"
	CanViewProjections    Capability = "view_projections"
)

var roleCapabilities = map[Role]map[Capability]bool{
	RoleSuperAdmin: {
		CanToggleSalesGate:    true,
		CanForceRecalculation: true,
		CanViewProjections:    true,
	},
	RoleOps: {
		CanToggleSalesGate:    true,
		CanForceRecalculation: true,
		CanViewProjections:    true,
	},
	RoleSupport: {
		CanViewProjections: true,
	},
}

// Can reports whether the role holds the capability. Unknown roles hold
// nothing.
func (r Role) Can(c Capability) bool {
	return roleCapabilities[r][c]
}
