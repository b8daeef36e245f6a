package users

import (
	"time"

	"github.com/google/uuid"

	"github.com/angelmondragon/wms-backend/pkg/db/models"
	"github.com/angelmondragon/wms-backend/pkg/enums"
	"github.com/angelmondragon/wms-backend/pkg/pagination"
)

// UserDTO is the transport shape that omits the password hash.
type UserDTO struct {
	ID        uuid.UUID  `json:"id"`
	Email     string     `json:"email"`
	Username  string     `json:"username"`
	FirstName string     `json:"firstName"`
	LastName  string     `json:"lastName"`
	Role      enums.Role `json:"role"`
	IsActive  bool       `json:"isActive"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// UserList is the paginated list payload.
type UserList struct {
	Users      []UserDTO       `json:"users"`
	Pagination pagination.Meta `json:"pagination"`
}

// CreateUserDTO holds the data required by the repo to persist a new user.
type CreateUserDTO struct {
	Email        string
	Username     string
	PasswordHash string
	FirstName    string
	LastName     string
	Role         enums.Role
	IsActive     *bool
}

// UpdateUserInput is a whole-profile overwrite; the password is not editable here.
type UpdateUserInput struct {
	Email     string
	Username  string
	FirstName string
	LastName  string
	Role      enums.Role
	IsActive  *bool
}

func FromModel(u *models.User) *UserDTO {
	if u == nil {
		return nil
	}
	return &UserDTO{
		ID:        u.ID,
		Email:     u.Email,
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Role:      u.Role,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func (c CreateUserDTO) ToModel() *models.User {
	isActive := true
	if c.IsActive != nil {
		isActive = *c.IsActive
	}
	role := c.Role
	if role == "" {
		role = enums.RoleEmployee
	}
	return &models.User{
		Email:     c.Email,
		Username:  c.Username,
		Password:  c.PasswordHash,
		FirstName: c.FirstName,
		LastName:  c.LastName,
		Role:      role,
		IsActive:  isActive,
	}
}
