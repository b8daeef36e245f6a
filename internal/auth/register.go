package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/angelmondragon/wms-backend/internal/users"
	"github.com/angelmondragon/wms-backend/pkg/db"
	"github.com/angelmondragon/wms-backend/pkg/db/models"
	"github.com/angelmondragon/wms-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/wms-backend/pkg/errors"
	"github.com/angelmondragon/wms-backend/pkg/security"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	userExistsMessage      = "User with this email or username already exists"
	passwordTooLongMessage = "Password must be at most 72 bytes"
)

func (s *service) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	username := strings.TrimSpace(req.Username)
	if email == "" || username == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "Email and username are required")
	}

	role := enums.RoleEmployee
	if strings.TrimSpace(req.Role) != "" {
		parsed, err := enums.ParseRole(req.Role)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "Invalid role")
		}
		role = parsed
	}

	passwordHash, err := security.HashPassword(req.Password, s.passwordCfg)
	if errors.Is(err, security.ErrPasswordTooLong) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, passwordTooLongMessage)
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	var created *models.User
	err = s.db.WithTx(ctx, func(tx *gorm.DB) error {
		userRepo := users.NewRepository(tx)

		taken, err := userRepo.ExistsByEmailOrUsername(ctx, email, username, uuid.Nil)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check user uniqueness")
		}
		if taken {
			return pkgerrors.New(pkgerrors.CodeConflict, userExistsMessage)
		}

		user, err := userRepo.Create(ctx, users.CreateUserDTO{
			Email:        email,
			Username:     username,
			PasswordHash: passwordHash,
			FirstName:    strings.TrimSpace(req.FirstName),
			LastName:     strings.TrimSpace(req.LastName),
			Role:         role,
		})
		if err != nil {
			if db.IsUniqueViolation(err, "") {
				return pkgerrors.Wrap(pkgerrors.CodeConflict, err, userExistsMessage)
			}
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create user")
		}
		created = user
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.issue(created)
}
