package domain

import "time"

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// KnownRole reports whether role is one the service understands.
func KnownRole(role string) bool {
	return role == RoleAdmin || role == RoleUser
}

// User is a registered account. Email is the unique key at the store boundary
// and is matched exactly: case-sensitive, stored verbatim.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// Principal is the identity decoded from a verified token and attached to a
// request by the auth middleware. It is request-scoped and never persisted.
type Principal struct {
	ID   string `json:"id"`
	Role string `json:"role"`
}
