package domain

// Role defines user permission level
type Role string

const (
	RoleAdmin  Role = "admin"  // Full access to content, theme and settings
	RoleEditor Role = "editor" // Edit content (future)
	RoleViewer Role = "viewer" // Read only (future)
)

// IsValid returns true if this is a known role
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleEditor, RoleViewer:
		return true
	default:
		return false
	}
}

// User is the identity held by a session
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Role     Role   `json:"role"`
}

// IsAdmin checks if the user has admin privileges
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
