package users

import "time"

// RoleType represents a user's role within the ERP backend. The backend is
// the authority on role assignment; the client only reads it to gate screens.
type RoleType string

const (
	RoleAdmin      RoleType = "ADMIN"      // Full access, including user/role settings
	RoleManager    RoleType = "MANAGER"    // Quotations, orders, customers, reporting
	RoleProduction RoleType = "PRODUCTION" // Work orders, QC, inventory
	RoleSales      RoleType = "SALES"      // Customers, quotations, orders
	RoleViewer     RoleType = "VIEWER"     // Read-only access
)

// Valid reports whether the role is one the client knows about.
func (r RoleType) Valid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleProduction, RoleSales, RoleViewer:
		return true
	}
	return false
}

// User is the profile record returned by the backend's /auth/me endpoint.
type User struct {
	ID        string    `json:"id,omitempty"`
	Email     string    `json:"email,omitempty"`
	Username  string    `json:"username,omitempty"`
	FirstName string    `json:"firstName,omitempty"`
	LastName  string    `json:"lastName,omitempty"`
	Role      RoleType  `json:"role,omitempty"`
	Active    bool      `json:"active,omitempty"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
	LastLogin time.Time `json:"lastLogin,omitempty"`
}

// FullName returns the user's display name.
func (u *User) FullName() string {
	if u.FirstName == "" {
		return u.LastName
	}
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// HasRole reports whether the user's role is one of the given roles.
// An empty role set means no restriction.
func (u *User) HasRole(roles ...RoleType) bool {
	if len(roles) == 0 {
		return true
	}
	for _, r := range roles {
		if u.Role == r {
			return true
		}
	}
	return false
}

// IsAdmin returns true if the user has admin privileges.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
