package models

// Roles known to the system. Line managers (encargado_linea) record line
// starts and stops but have no administrative rights.
const (
	RoleAdmin       = "admin"
	RoleSupervisor  = "supervisor"
	RoleTechnician  = "tecnico"
	RoleLineManager = "encargado_linea"
)

// ValidRole reports whether role is one of the known role names.
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleSupervisor, RoleTechnician, RoleLineManager:
		return true
	}
	return false
}

// User is the stored user document. The bcrypt hash never leaves the API.
type User struct {
	ID        string `bson:"id" json:"id"`
	Email     string `bson:"email" json:"email"`
	Password  string `bson:"password" json:"-"`
	Name      string `bson:"name" json:"name"`
	Role      string `bson:"role" json:"role"`
	CreatedAt string `bson:"created_at" json:"created_at"`
}

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Name     string `json:"name" binding:"required"`
	Role     string `json:"role"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse is returned by register and login.
type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}
