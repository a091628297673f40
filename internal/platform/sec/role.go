// Copyright (c) 2026 Vendora Commerce. All rights reserved.

package sec

// # Admin Roles

// UserRole represents the authorization level granted to a tenant account.
type UserRole string

const (
	// Full control over the tenant, including member management
	RoleOwner UserRole = "owner"

	// Can manage every resource of the tenant
	RoleAdmin UserRole = "admin"

	// Can manage catalog and settings but not members or billing
	RoleStaff UserRole = "staff"

	// Read-only access to the admin panel
	RoleViewer UserRole = "viewer"
)

// # Role Hierarchy

// AtLeast checks if the current role meets or exceeds the required target role.
func (r UserRole) AtLeast(target UserRole) bool {
	return r.level() >= target.level()
}

// level maps a role to a numeric hierarchy level for comparison logic.
func (r UserRole) level() int {

	// Linear scale (10-40) allows for future intermediate roles
	switch r {
	case RoleOwner:
		return 40
	case RoleAdmin:
		return 30
	case RoleStaff:
		return 20
	case RoleViewer:
		return 10
	default:
		return 0
	}
}
