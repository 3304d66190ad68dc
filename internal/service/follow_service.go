package service

import (
	"context"
	"errors"
	"time"

	"Hey_Blog/internal/apperr"
	"Hey_Blog/internal/auth"
	"Hey_Blog/internal/model"
	"Hey_Blog/internal/pkg"
	"Hey_Blog/internal/repository/mysql"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type FollowService struct {
	follows *mysql.FollowRepository
	users   *mysql.UserRepository
	perPage int
}

func NewFollowService(db *gorm.DB, followersPerPage int) *FollowService {
	return &FollowService{
		follows: &mysql.FollowRepository{DB: db},
		users:   &mysql.UserRepository{DB: db},
		perPage: followersPerPage,
	}
}

// Follow is idempotent: a repeat call reports changed=false. Following
// yourself is also changed=false; the structural self-edge already exists.
func (s *FollowService) Follow(ctx context.Context, actor auth.Actor, followedID uint64) (bool, error) {
	if err := auth.Require(actor, model.PermFollow); err != nil {
		return false, err
	}
	if followedID == actor.UserID() {
		return false, nil
	}
	if _, err := s.users.FindByID(ctx, followedID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, apperr.NotFound("user not found")
		}
		return false, apperr.Internal(err)
	}
	changed, err := s.follows.Follow(ctx, actor.UserID(), followedID)
	if err != nil {
		// the composite key is the authoritative guard under races
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return false, nil
		}
		return false, apperr.Internal(err)
	}
	return changed, nil
}

// Unfollow on a missing edge is a no-op, and self-unfollow is always a no-op:
// the self-edge is structural, not a social follow.
func (s *FollowService) Unfollow(ctx context.Context, actor auth.Actor, followedID uint64) (bool, error) {
	if err := auth.Require(actor, model.PermFollow); err != nil {
		return false, err
	}
	if followedID == actor.UserID() {
		return false, nil
	}
	changed, err := s.follows.Unfollow(ctx, actor.UserID(), followedID)
	if err != nil {
		return false, apperr.Internal(err)
	}
	return changed, nil
}

func (s *FollowService) IsFollowing(ctx context.Context, followerID, followedID uint64) (bool, error) {
	ok, err := s.follows.IsFollowing(ctx, followerID, followedID)
	if err != nil {
		return false, apperr.Internal(err)
	}
	return ok, nil
}

func (s *FollowService) IsFollowedBy(ctx context.Context, userID, followerID uint64) (bool, error) {
	return s.IsFollowing(ctx, followerID, userID)
}

func (s *FollowService) Followers(ctx context.Context, userID uint64, page int) ([]model.User, int64, error) {
	users, total, err := s.follows.Followers(ctx, userID, normalizePage(page), s.perPage)
	if err != nil {
		return nil, 0, apperr.Internal(err)
	}
	return users, total, nil
}

func (s *FollowService) Following(ctx context.Context, userID uint64, page int) ([]model.User, int64, error) {
	users, total, err := s.follows.Following(ctx, userID, normalizePage(page), s.perPage)
	if err != nil {
		return nil, 0, apperr.Internal(err)
	}
	return users, total, nil
}

func normalizePage(page int) int {
	if page < 1 {
		return 1
	}
	return page
}

// OutboxRelayer drains pending follow events to kafka on a fixed interval.
type OutboxRelayer struct {
	repo      *mysql.OutboxRepository
	producer  *pkg.KafkaProducer
	batchSize int
	interval  time.Duration
}

func NewOutboxRelayer(db *gorm.DB, producer *pkg.KafkaProducer) *OutboxRelayer {
	return &OutboxRelayer{
		repo:      &mysql.OutboxRepository{DB: db},
		producer:  producer,
		batchSize: 200,
		interval:  time.Second,
	}
}

func (r *OutboxRelayer) Run(ctx context.Context) {
	t := time.NewTicker(r.interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			r.drainOnce(ctx)
		}
	}
}

func (r *OutboxRelayer) drainOnce(ctx context.Context) {
	rows, err := r.repo.List(ctx, r.batchSize)
	if err != nil {
		pkg.Log.Warn("outbox query failed", zap.Error(err))
		return
	}
	for i := range rows {
		ob := rows[i]
		if err := r.producer.Send(ctx, ob.Follower, []byte(ob.Payload)); err != nil {
			pkg.Log.Warn("outbox send failed", zap.Uint64("id", ob.ID), zap.Error(err))
			_ = r.repo.MarkFailed(ctx, ob.ID)
			continue
		}
		_ = r.repo.MarkSent(ctx, ob.ID)
	}
}
