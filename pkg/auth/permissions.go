package auth

import "github.com/angelmondragon/wms-backend/pkg/enums"

// Permission names an action guarded at the route level.
type Permission string

const (
	PermUsersRead       Permission = "users:read"
	PermUsersWrite      Permission = "users:write"
	PermInventoryRead   Permission = "inventory:read"
	PermInventoryWrite  Permission = "inventory:write"
	PermOrdersRead      Permission = "orders:read"
	PermOrdersWrite     Permission = "orders:write"
	PermWarehousesRead  Permission = "warehouses:read"
	PermWarehousesWrite Permission = "warehouses:write"
	PermReportsRead     Permission = "reports:read"
)

var everyone = []enums.Role{enums.RoleEmployee, enums.RoleSupervisor, enums.RoleManager, enums.RoleAdmin}

var adminOnly = []enums.Role{enums.RoleAdmin}

var permissionTable = map[Permission][]enums.Role{
	PermUsersRead:       everyone,
	PermUsersWrite:      adminOnly,
	PermInventoryRead:   everyone,
	PermInventoryWrite:  everyone,
	PermOrdersRead:      everyone,
	PermOrdersWrite:     everyone,
	PermWarehousesRead:  everyone,
	PermWarehousesWrite: adminOnly,
	PermReportsRead:     everyone,
}

// Allowed reports whether role may perform perm. Unknown permissions are denied.
func Allowed(role enums.Role, perm Permission) bool {
	for _, r := range permissionTable[perm] {
		if r == role {
			return true
		}
	}
	return false
}

// RolesFor returns the roles granted perm.
func RolesFor(perm Permission) []enums.Role {
	roles := permissionTable[perm]
	out := make([]enums.Role, len(roles))
	copy(out, roles)
	return out
}
