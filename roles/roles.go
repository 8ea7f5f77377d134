// Package roles normalizes raw role claims into a closed set and holds the
// pure authorization rules every service consults.
package roles

import "strings"

// Role is the canonical role of a user within the organization.
type Role string

const (
	RoleTenant     Role = "tenant"
	RoleManager    Role = "manager"
	RoleOwner      Role = "owner"
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "superadmin"
	RoleVendor     Role = "vendor"
	RoleUnknown    Role = "unknown"
)

// Resolve maps a raw role label to its canonical Role. Matching is
// case-insensitive and tolerant of the synonyms that appear in imported user
// records. Unrecognized input resolves to RoleUnknown, never an error.
func Resolve(raw string) Role {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "tenant", "renter", "resident":
		return RoleTenant
	case "manager", "property_manager", "propertymanager":
		return RoleManager
	case "owner", "landlord":
		return RoleOwner
	case "admin", "administrator":
		return RoleAdmin
	case "superadmin", "super_admin", "super-admin", "su":
		return RoleSuperAdmin
	case "vendor", "contractor":
		return RoleVendor
	default:
		return RoleUnknown
	}
}

// ResolveClaim resolves a role claim as it arrives from the identity provider:
// either a plain string or a list whose first element is the role.
func ResolveClaim(claim interface{}) Role {
	switch v := claim.(type) {
	case string:
		return Resolve(v)
	case []string:
		if len(v) > 0 {
			return Resolve(v[0])
		}
	case []interface{}:
		if len(v) > 0 {
			if s, ok := v[0].(string); ok {
				return Resolve(s)
			}
		}
	}
	return RoleUnknown
}

// CanDirectMessage reports whether sender may start a direct conversation
// with recipient. The table is intentionally asymmetric: a tenant cannot
// reach an admin directly, escalation exists to cross that boundary.
func CanDirectMessage(sender, recipient Role) bool {
	switch sender {
	case RoleTenant:
		return recipient == RoleManager
	case RoleManager:
		return recipient == RoleTenant || recipient == RoleOwner || recipient == RoleAdmin
	case RoleOwner:
		return recipient == RoleManager || recipient == RoleAdmin
	case RoleAdmin:
		return recipient == RoleManager || recipient == RoleOwner || recipient == RoleSuperAdmin
	case RoleSuperAdmin:
		return recipient != RoleUnknown
	default:
		return false
	}
}

// CanEscalate reports whether the caller's role may escalate a thread.
func CanEscalate(caller Role) bool {
	return caller == RoleTenant || caller == RoleManager || caller == RoleOwner
}

// CanEscalateTo reports whether target is a valid escalation destination.
// Escalation always routes upward to administrative roles, never laterally.
func CanEscalateTo(target Role) bool {
	return target == RoleAdmin || target == RoleSuperAdmin
}

// CanArchive reports whether the caller's role may archive a thread.
func CanArchive(caller Role) bool {
	return caller == RoleAdmin || caller == RoleSuperAdmin
}
