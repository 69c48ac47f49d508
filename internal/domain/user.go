package domain

import "time"

// Role enumerates the account role hierarchy: USER < ADMIN < SUPERADMIN.
type Role string

const (
	RoleUser       Role = "user"
	RoleAdmin      Role = "admin"
	RoleSuperadmin Role = "superadmin"
)

// Valid reports whether the role is one of the known values.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleAdmin, RoleSuperadmin:
		return true
	}
	return false
}

// IsAdministrative reports whether the role grants access to the admin area.
func (r Role) IsAdministrative() bool {
	return r == RoleAdmin || r == RoleSuperadmin
}

// User is the account record as reported by the backend. The gateway never
// persists or caches it beyond a single request.
type User struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	ContactNumber string    `json:"contactNumber"`
	IsVerified    bool      `json:"isVerified"`
	Role          Role      `json:"role"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}
