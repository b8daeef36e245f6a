package users

import (
	"context"

	"github.com/angelmondragon/wms-backend/internal/repo"
	"github.com/angelmondragon/wms-backend/pkg/db/models"
	"github.com/angelmondragon/wms-backend/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository exposes user-related persistence operations.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, dto CreateUserDTO) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	ExistsByEmailOrUsername(ctx context.Context, email, username string, excludeID uuid.UUID) (bool, error)
	List(ctx context.Context, params pagination.Params) ([]models.User, int64, error)
	Save(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountOrderReferences(ctx context.Context, id uuid.UUID) (int64, error)
}

type repository struct {
	repo.Base
}

// NewRepository constructs a users repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{Base: repo.NewBase(db)}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{Base: r.Base.WithTx(tx)}
}

// Create inserts a new user and returns the persisted model.
func (r *repository) Create(ctx context.Context, dto CreateUserDTO) (*models.User, error) {
	user := dto.ToModel()
	if err := r.DB(ctx).Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// FindByEmail retrieves the user matching the provided email.
func (r *repository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.DB(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByID loads a user by their UUID.
func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := r.DB(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// ExistsByEmailOrUsername reports whether another user already holds email or
// username. excludeID may be uuid.Nil.
func (r *repository) ExistsByEmailOrUsername(ctx context.Context, email, username string, excludeID uuid.UUID) (bool, error) {
	q := r.DB(ctx).Model(&models.User{}).Where("(email = ? OR username = ?)", email, username)
	if excludeID != uuid.Nil {
		q = q.Where("id <> ?", excludeID)
	}
	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *repository) List(ctx context.Context, params pagination.Params) ([]models.User, int64, error) {
	var rows []models.User
	total, err := repo.Paginate(r.DB(ctx).Model(&models.User{}), params, repo.NewestFirst, &rows)
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (r *repository) Save(ctx context.Context, user *models.User) error {
	return r.DB(ctx).Save(user).Error
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.DB(ctx).Delete(&models.User{}, "id = ?", id).Error
}

// CountOrderReferences counts orders created by or assigned to the user.
func (r *repository) CountOrderReferences(ctx context.Context, id uuid.UUID) (int64, error) {
	var count int64
	err := r.DB(ctx).Model(&models.Order{}).
		Where("created_by_id = ? OR assigned_to_id = ?", id, id).
		Count(&count).Error
	return count, err
}
