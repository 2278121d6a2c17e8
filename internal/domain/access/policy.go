package access

import "blog-api/internal/domain/users"

// Can reports whether identity may perform op. Reads are always allowed;
// writes require an authenticated admin.
func Can(op Operation, identity Identity) bool {
	if op == OpRead {
		return true
	}
	return identity.Authenticated && identity.Role == users.RoleAdmin
}
