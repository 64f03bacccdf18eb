package model

// Role is a capability tag attached to a user. The set is closed.
type Role string

const (
	RoleDiner      Role = "diner"
	RoleFranchisee Role = "franchisee"
	RoleAdmin      Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleDiner, RoleFranchisee, RoleAdmin:
		return true
	}
	return false
}

// Scoped reports whether the role is meaningful only in relation to a
// specific object id. Currently only franchisee assignments carry a
// scoping object (the franchise id).
func (r Role) Scoped() bool {
	return r == RoleFranchisee
}

// RoleAssignment binds a role to a user, optionally scoped to an
// object. ObjectID is zero for global roles (diner, admin) and holds
// the franchise id for franchisee assignments.
type RoleAssignment struct {
	Role     Role  `json:"role"`
	ObjectID int64 `json:"objectId,omitempty"`
}

// User is a platform account. The stored password hash is never part
// of this struct: read paths load it into a local variable for
// verification and discard it, so no API response can leak it.
type User struct {
	ID    int64            `json:"id"`
	Name  string           `json:"name"`
	Email string           `json:"email"`
	Roles []RoleAssignment `json:"roles"`
}

// IsRole reports whether the user holds the given global role.
func (u User) IsRole(role Role) bool {
	for _, ra := range u.Roles {
		if ra.Role == role {
			return true
		}
	}
	return false
}

// HasScopedRole reports whether the user holds role scoped to
// objectID, e.g. franchisee of a specific franchise.
func (u User) HasScopedRole(role Role, objectID int64) bool {
	for _, ra := range u.Roles {
		if ra.Role == role && ra.ObjectID == objectID {
			return true
		}
	}
	return false
}
