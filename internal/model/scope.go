package model

const (
	RoleAdmin   = "ADMIN"
	RoleManager = "MANAGER"
	RoleMember  = "MEMBER"
)

// Scope carries the authenticated caller identity extracted from the JWT.
type Scope struct {
	UserID    string `json:"user_id"`
	Username  string `json:"username"`
	CompanyID string `json:"company_id"`
	Role      string `json:"role"`
}

// IsAdmin checks if the scope has admin role
func (s Scope) IsAdmin() bool {
	return s.Role == RoleAdmin
}

// IsManager checks if the scope has manager role
func (s Scope) IsManager() bool {
	return s.Role == RoleManager
}
