package mysql

import (
	"context"

	"Hey_Blog/internal/model"

	"gorm.io/gorm"
)

type CommentRepository struct {
	DB *gorm.DB
}

func (r *CommentRepository) Create(ctx context.Context, comment *model.Comment) error {
	return r.DB.WithContext(ctx).Create(comment).Error
}

func (r *CommentRepository) FindByID(ctx context.Context, id uint64) (*model.Comment, error) {
	var comment model.Comment
	err := r.DB.WithContext(ctx).Preload("Author").First(&comment, id).Error
	return &comment, err
}

func (r *CommentRepository) Save(ctx context.Context, comment *model.Comment) error {
	return r.DB.WithContext(ctx).Save(comment).Error
}

// ListByPost returns a post's comments oldest first. Disabled comments are
// included; filtering them is the presentation layer's call.
func (r *CommentRepository) ListByPost(ctx context.Context, postID uint64, page, perPage int) ([]model.Comment, int64, error) {
	q := r.DB.WithContext(ctx).Model(&model.Comment{}).Where("post_id = ?", postID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var comments []model.Comment
	err := q.Preload("Author").
		Order("created_at ASC, id ASC").
		Offset((page - 1) * perPage).Limit(perPage).
		Find(&comments).Error
	return comments, total, err
}

// SetDisabled flips the moderation flag; the comment stays stored either way.
func (r *CommentRepository) SetDisabled(ctx context.Context, id uint64, disabled bool) error {
	return r.DB.WithContext(ctx).Model(&model.Comment{}).Where("id = ?", id).
		UpdateColumn("disabled", disabled).Error
}
