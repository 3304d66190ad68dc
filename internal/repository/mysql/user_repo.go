package mysql

import (
	"context"

	"Hey_Blog/internal/model"

	"gorm.io/gorm"
)

type UserRepository struct {
	DB *gorm.DB
}

// Create inserts the user and the structural self-follow edge in one
// transaction, so a user's own posts are in their timeline from the start.
func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		return tx.Create(&model.Follow{FollowerID: user.ID, FollowedID: user.ID}).Error
	})
}

func (r *UserRepository) FindByID(ctx context.Context, id uint64) (*model.User, error) {
	var user model.User
	err := r.DB.WithContext(ctx).Preload("Role").First(&user, id).Error
	return &user, err
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	err := r.DB.WithContext(ctx).Preload("Role").Where("email = ?", email).First(&user).Error
	return &user, err
}

// FindByLogin matches username or email, both unique.
func (r *UserRepository) FindByLogin(ctx context.Context, login string) (*model.User, error) {
	var user model.User
	err := r.DB.WithContext(ctx).Preload("Role").
		Where("username = ? OR email = ?", login, login).First(&user).Error
	return &user, err
}

func (r *UserRepository) Save(ctx context.Context, user *model.User) error {
	return r.DB.WithContext(ctx).Save(user).Error
}

func (r *UserRepository) UpdatePassword(ctx context.Context, user *model.User, hash string) error {
	return r.DB.WithContext(ctx).Model(user).Update("password_hash", hash).Error
}

func (r *UserRepository) MarkConfirmed(ctx context.Context, id uint64) error {
	return r.DB.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).
		Update("confirmed", true).Error
}

func (r *UserRepository) TouchLastSeen(ctx context.Context, id uint64) error {
	return r.DB.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).
		Update("last_seen", gorm.Expr("CURRENT_TIMESTAMP")).Error
}

// UpdateEmail swaps the address and recomputes the cached avatar hash.
func (r *UserRepository) UpdateEmail(ctx context.Context, id uint64, email string) error {
	return r.DB.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).
		Updates(map[string]any{
			"email":       email,
			"avatar_hash": model.GravatarHash(email),
		}).Error
}

// Delete removes the user and cascades every follow edge where it is either
// endpoint.
func (r *UserRepository) Delete(ctx context.Context, id uint64) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("follower_id = ? OR followed_id = ?", id, id).
			Delete(&model.Follow{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.User{}, id).Error
	})
}
