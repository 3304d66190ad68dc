package mysql

import (
	"context"
	"encoding/json"
	"time"

	"Hey_Blog/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type FollowRepository struct {
	DB *gorm.DB
}

type OutboxRepository struct {
	DB *gorm.DB
}

// Follow inserts the edge unless it exists. The composite primary key is the
// authoritative guard; ON CONFLICT DO NOTHING makes a repeat call a no-op.
// Returns changed=true only when the edge was actually created, and only then
// writes the outbox event.
func (r *FollowRepository) Follow(ctx context.Context, followerID, followedID uint64) (bool, error) {
	var changed bool
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Clauses(clause.OnConflict{DoNothing: true}).
			Create(&model.Follow{FollowerID: followerID, FollowedID: followedID})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		changed = true
		return insertOutbox(tx, "follow", followerID, followedID)
	})
	return changed, err
}

// Unfollow deletes the edge if present; deleting a missing edge is a no-op.
func (r *FollowRepository) Unfollow(ctx context.Context, followerID, followedID uint64) (bool, error) {
	var changed bool
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("follower_id = ? AND followed_id = ?", followerID, followedID).
			Delete(&model.Follow{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		changed = true
		return insertOutbox(tx, "unfollow", followerID, followedID)
	})
	return changed, err
}

func (r *FollowRepository) IsFollowing(ctx context.Context, followerID, followedID uint64) (bool, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&model.Follow{}).
		Where("follower_id = ? AND followed_id = ?", followerID, followedID).
		Count(&n).Error
	return n > 0, err
}

func (r *FollowRepository) IsFollowedBy(ctx context.Context, userID, followerID uint64) (bool, error) {
	return r.IsFollowing(ctx, followerID, userID)
}

// Followers lists the users following userID, newest edge first. The self
// edge is excluded from social listings.
func (r *FollowRepository) Followers(ctx context.Context, userID uint64, page, perPage int) ([]model.User, int64, error) {
	return r.edgeUsers(ctx, "follows.followed_id = ? AND follows.follower_id <> ?", "follows.follower_id", userID, page, perPage)
}

// Following lists the users userID follows.
func (r *FollowRepository) Following(ctx context.Context, userID uint64, page, perPage int) ([]model.User, int64, error) {
	return r.edgeUsers(ctx, "follows.follower_id = ? AND follows.followed_id <> ?", "follows.followed_id", userID, page, perPage)
}

func (r *FollowRepository) edgeUsers(ctx context.Context, cond, joinCol string, userID uint64, page, perPage int) ([]model.User, int64, error) {
	q := r.DB.WithContext(ctx).Model(&model.User{}).
		Joins("JOIN follows ON "+joinCol+" = users.id").
		Where(cond, userID, userID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []model.User
	err := q.Order("follows.created_at DESC").
		Offset((page - 1) * perPage).Limit(perPage).
		Find(&users).Error
	return users, total, err
}

// FollowedPosts is the timeline: posts authored by anyone userID follows,
// self included via the structural self-edge, newest first.
func (r *FollowRepository) FollowedPosts(ctx context.Context, userID uint64, page, perPage int) ([]model.Post, int64, error) {
	q := r.DB.WithContext(ctx).Model(&model.Post{}).
		Joins("JOIN follows ON follows.followed_id = posts.author_id").
		Where("follows.follower_id = ?", userID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var posts []model.Post
	err := q.Preload("Author").
		Order("posts.created_at DESC, posts.id DESC").
		Offset((page - 1) * perPage).Limit(perPage).
		Find(&posts).Error
	return posts, total, err
}

func insertOutbox(tx *gorm.DB, event string, follower, followed uint64) error {
	payload, _ := json.Marshal(map[string]any{
		"event_time": time.Now().UTC().Format(time.RFC3339Nano),
		"follower":   follower,
		"followed":   followed,
	})
	return tx.Create(&model.FollowOutbox{
		EventType: event,
		Follower:  follower,
		Followed:  followed,
		Payload:   string(payload),
	}).Error
}

// List returns pending outbox rows oldest first.
func (r *OutboxRepository) List(ctx context.Context, batchSize int) ([]model.FollowOutbox, error) {
	var list []model.FollowOutbox
	err := r.DB.WithContext(ctx).
		Where("status = 0").
		Order("id ASC").
		Limit(batchSize).
		Find(&list).Error
	return list, err
}

func (r *OutboxRepository) MarkSent(ctx context.Context, id uint64) error {
	return r.DB.WithContext(ctx).Model(&model.FollowOutbox{}).Where("id = ?", id).
		Update("status", 1).Error
}

func (r *OutboxRepository) MarkFailed(ctx context.Context, id uint64) error {
	return r.DB.WithContext(ctx).Model(&model.FollowOutbox{}).Where("id = ?", id).
		Updates(map[string]any{"status": 2, "retry": gorm.Expr("retry + 1")}).Error
}
