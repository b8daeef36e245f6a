package auth

import (
	"github.com/angelmondragon/wms-backend/internal/users"
)

// LoginRequest captures the user credentials sent to the login endpoint.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RegisterRequest is the self-service signup payload. Role is optional and
// defaults to EMPLOYEE.
type RegisterRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Username  string `json:"username" validate:"required"`
	Password  string `json:"password" validate:"required,min=6,max=72"`
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Role      string `json:"role,omitempty"`
}

// AuthResponse is returned by register and login.
type AuthResponse struct {
	User  *users.UserDTO `json:"user"`
	Token string         `json:"token"`
}

// MeResponse wraps the caller's profile.
type MeResponse struct {
	User *users.UserDTO `json:"user"`
}
