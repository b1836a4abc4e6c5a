// Package auth holds the role/permission table consulted before mutations.
// Permission checks gate the HTTP surface only; the core workflows do not
// re-check them.
package auth

// Permission names, one per guarded operation family.
const (
	PermReceiptsWrite = "receipts:write"
	PermSuppliesWrite = "supplies:write"
	PermModelsWrite   = "models:write"
	PermPacksWrite    = "packs:write"
	PermDispatchWrite = "dispatch:write"
	PermProfileWrite  = "profile:write"
	PermAuditRead     = "audit:read"
)

var rolePermissions = map[string]map[string]bool{
	"admin": {
		PermReceiptsWrite: true,
		PermSuppliesWrite: true,
		PermModelsWrite:   true,
		PermPacksWrite:    true,
		PermDispatchWrite: true,
		PermProfileWrite:  true,
		PermAuditRead:     true,
	},
	"operario": {
		PermReceiptsWrite: true,
		PermPacksWrite:    true,
	},
	"logistica": {
		PermReceiptsWrite: true,
		PermSuppliesWrite: true,
		PermPacksWrite:    true,
		PermDispatchWrite: true,
	},
}

// Can reports whether the role holds the permission. Unknown roles hold
// nothing.
func Can(role, permission string) bool {
	return rolePermissions[role][permission]
}
