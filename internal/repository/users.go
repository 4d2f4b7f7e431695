package repository

import (
	"context"
	"strings"

	"storefront/internal/domain"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// UserRepository persists users through gorm
type UserRepository struct{ db *gorm.DB }

// NewUserRepository wraps db for user storage
func NewUserRepository(db *gorm.DB) *UserRepository { return &UserRepository{db: db} }

// FindByID loads a user; found is false when no row matches
func (r *UserRepository) FindByID(ctx context.Context, id uint) (domain.User, bool, error) {
	var u domain.User
	err := r.db.WithContext(ctx).First(&u, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.User{}, false, nil
	}
	if err != nil {
		return domain.User{}, false, errors.Wrapf(err, "load user %d", id)
	}
	return u, true, nil
}

// FindByUsername matches case-insensitively; usernames are stored lowercase
func (r *UserRepository) FindByUsername(ctx context.Context, username string) (domain.User, bool, error) {
	var u domain.User
	err := r.db.WithContext(ctx).Where("username = ?", strings.ToLower(username)).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.User{}, false, nil
	}
	if err != nil {
		return domain.User{}, false, errors.Wrapf(err, "load user %q", username)
	}
	return u, true, nil
}

// Exists reports whether a user with id is stored
func (r *UserRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.User{}).Where("id = ?", id).Count(&n).Error
	return n > 0, errors.Wrapf(err, "check user %d", id)
}

// Create stores u; a taken username yields domain.ErrUsernameTaken
func (r *UserRepository) Create(ctx context.Context, u *domain.User) error {
	u.Username = strings.ToLower(u.Username)
	err := r.db.WithContext(ctx).Create(u).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.ErrUsernameTaken
	}
	return errors.Wrap(err, "create user")
}
