package domain

// Actor identifies the authenticated user performing an operation.
// Admin grants visibility across all donor records regardless of
// ownership; non-admins see and mutate only records they own.
type Actor struct {
	ID    string
	Admin bool
}

// Role is a named RBAC role granted to a user.
type Role struct {
	ID          string
	Name        string
	Description string
}

// Permission is a named capability granted through a role.
type Permission struct {
	ID          string
	Name        string
	Description string
}

// AdminRoleName is the role that unlocks cross-owner visibility.
const AdminRoleName = "admin"
