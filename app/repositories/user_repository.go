package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/samber/mo"
	"gorm.io/gorm"

	"github.com/kicksup/kicksup/app/models"
	"github.com/kicksup/kicksup/pkg/orm"
)

// UserRepository handles database operations for User.
type UserRepository struct {
	q orm.Query[models.User]
}

// NewUserRepository binds the repository to db (database.DB when nil).
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{q: orm.For[models.User](db)}
}

// FindByID looks up a user by primary key.
func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (mo.Option[models.User], error) {
	return r.q.Find(ctx, id)
}

// FindByUsername matches the username exactly.
func (r *UserRepository) FindByUsername(ctx context.Context, username string) (mo.Option[models.User], error) {
	return r.q.FirstWhere(ctx, "username = ?", username)
}

func (r *UserRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	return r.q.Exists(ctx, "username = ?", username)
}

// All returns every user, newest first.
func (r *UserRepository) All(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := r.q.DB(ctx).Order("created_at desc").Find(&users).Error
	return users, err
}

// Create persists a new user record.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	return r.q.Create(ctx, user)
}

// Update persists changes to an existing user.
func (r *UserRepository) Update(ctx context.Context, user *models.User) error {
	return r.q.Save(ctx, user)
}

func (r *UserRepository) Delete(ctx context.Context, user *models.User) error {
	return r.q.Delete(ctx, user)
}

// SetRole changes only the role column.
func (r *UserRepository) SetRole(ctx context.Context, id uuid.UUID, role models.Role) error {
	return r.q.DB(ctx).Model(&models.User{}).Where("id = ?", id).Update("role", role).Error
}
