package mysql

import (
	"context"

	"Hey_Blog/internal/model"

	"gorm.io/gorm"
)

type PostRepository struct {
	DB *gorm.DB
}

func (r *PostRepository) Create(ctx context.Context, post *model.Post) error {
	return r.DB.WithContext(ctx).Create(post).Error
}

func (r *PostRepository) FindByID(ctx context.Context, id uint64) (*model.Post, error) {
	var post model.Post
	err := r.DB.WithContext(ctx).Preload("Author").First(&post, id).Error
	return &post, err
}

func (r *PostRepository) Save(ctx context.Context, post *model.Post) error {
	return r.DB.WithContext(ctx).Save(post).Error
}

func (r *PostRepository) Delete(ctx context.Context, id uint64) error {
	return r.DB.WithContext(ctx).Delete(&model.Post{}, id).Error
}

// List returns all posts newest first with the total for pagination.
func (r *PostRepository) List(ctx context.Context, page, perPage int) ([]model.Post, int64, error) {
	return r.list(ctx, r.DB.WithContext(ctx).Model(&model.Post{}), page, perPage)
}

func (r *PostRepository) ListByAuthor(ctx context.Context, authorID uint64, page, perPage int) ([]model.Post, int64, error) {
	q := r.DB.WithContext(ctx).Model(&model.Post{}).Where("author_id = ?", authorID)
	return r.list(ctx, q, page, perPage)
}

func (r *PostRepository) list(ctx context.Context, q *gorm.DB, page, perPage int) ([]model.Post, int64, error) {
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var posts []model.Post
	err := q.Preload("Author").
		Order("created_at DESC, id DESC").
		Offset((page - 1) * perPage).Limit(perPage).
		Find(&posts).Error
	return posts, total, err
}

func (r *PostRepository) CountByAuthor(ctx context.Context, authorID uint64) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&model.Post{}).
		Where("author_id = ?", authorID).Count(&n).Error
	return n, err
}

func (r *PostRepository) CountComments(ctx context.Context, postID uint64) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&model.Comment{}).
		Where("post_id = ?", postID).Count(&n).Error
	return n, err
}
