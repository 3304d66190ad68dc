package service

import (
	"context"
	"errors"
	"strings"

	"Hey_Blog/internal/apperr"
	"Hey_Blog/internal/auth"
	"Hey_Blog/internal/model"
	"Hey_Blog/internal/repository/mysql"

	"gorm.io/gorm"
)

type PostService struct {
	posts   *mysql.PostRepository
	follows *mysql.FollowRepository
	perPage int
}

func NewPostService(db *gorm.DB, postsPerPage int) *PostService {
	return &PostService{
		posts:   &mysql.PostRepository{DB: db},
		follows: &mysql.FollowRepository{DB: db},
		perPage: postsPerPage,
	}
}

// Create requires the write capability; ownership never substitutes for it.
// The sanitized rendering is derived before the post is stored.
func (s *PostService) Create(ctx context.Context, actor auth.Actor, body string) (*model.Post, error) {
	if err := auth.Require(actor, model.PermWrite); err != nil {
		return nil, err
	}
	if strings.TrimSpace(body) == "" {
		return nil, apperr.Validation("body must not be empty")
	}

	post := &model.Post{AuthorID: actor.UserID()}
	post.SetBody(body)
	if err := s.posts.Create(ctx, post); err != nil {
		return nil, apperr.Internal(err)
	}
	post.Author = actor.User()
	return post, nil
}

// Update lets the author or an administrator replace the body; the rendering
// is recomputed in the same step.
func (s *PostService) Update(ctx context.Context, actor auth.Actor, postID uint64, body string) (*model.Post, error) {
	post, err := s.Get(ctx, postID)
	if err != nil {
		return nil, err
	}
	if !auth.CanModify(actor, post.AuthorID) {
		return nil, apperr.Forbidden("not the author")
	}
	if strings.TrimSpace(body) == "" {
		return nil, apperr.Validation("body must not be empty")
	}

	post.SetBody(body)
	if err := s.posts.Save(ctx, post); err != nil {
		return nil, apperr.Internal(err)
	}
	return post, nil
}

func (s *PostService) Get(ctx context.Context, id uint64) (*model.Post, error) {
	post, err := s.posts.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("post not found")
		}
		return nil, apperr.Internal(err)
	}
	return post, nil
}

func (s *PostService) List(ctx context.Context, page int) ([]model.Post, int64, error) {
	posts, total, err := s.posts.List(ctx, normalizePage(page), s.perPage)
	if err != nil {
		return nil, 0, apperr.Internal(err)
	}
	return posts, total, nil
}

func (s *PostService) ListByAuthor(ctx context.Context, authorID uint64, page int) ([]model.Post, int64, error) {
	posts, total, err := s.posts.ListByAuthor(ctx, authorID, normalizePage(page), s.perPage)
	if err != nil {
		return nil, 0, apperr.Internal(err)
	}
	return posts, total, nil
}

// Timeline is the followed-posts view: everyone the user follows, self
// included via the self-edge.
func (s *PostService) Timeline(ctx context.Context, userID uint64, page int) ([]model.Post, int64, error) {
	posts, total, err := s.follows.FollowedPosts(ctx, userID, normalizePage(page), s.perPage)
	if err != nil {
		return nil, 0, apperr.Internal(err)
	}
	return posts, total, nil
}

func (s *PostService) CountByAuthor(ctx context.Context, authorID uint64) (int64, error) {
	n, err := s.posts.CountByAuthor(ctx, authorID)
	if err != nil {
		return 0, apperr.Internal(err)
	}
	return n, nil
}

func (s *PostService) CountComments(ctx context.Context, postID uint64) (int64, error) {
	n, err := s.posts.CountComments(ctx, postID)
	if err != nil {
		return 0, apperr.Internal(err)
	}
	return n, nil
}
