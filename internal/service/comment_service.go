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

type CommentService struct {
	comments *mysql.CommentRepository
	posts    *mysql.PostRepository
	perPage  int
}

func NewCommentService(db *gorm.DB, commentsPerPage int) *CommentService {
	return &CommentService{
		comments: &mysql.CommentRepository{DB: db},
		posts:    &mysql.PostRepository{DB: db},
		perPage:  commentsPerPage,
	}
}

func (s *CommentService) Create(ctx context.Context, actor auth.Actor, postID uint64, body string) (*model.Comment, error) {
	if err := auth.Require(actor, model.PermComment); err != nil {
		return nil, err
	}
	if strings.TrimSpace(body) == "" {
		return nil, apperr.Validation("body must not be empty")
	}
	if _, err := s.posts.FindByID(ctx, postID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("post not found")
		}
		return nil, apperr.Internal(err)
	}

	comment := &model.Comment{AuthorID: actor.UserID(), PostID: postID}
	comment.SetBody(body)
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, apperr.Internal(err)
	}
	comment.Author = actor.User()
	return comment, nil
}

func (s *CommentService) Get(ctx context.Context, id uint64) (*model.Comment, error) {
	comment, err := s.comments.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("comment not found")
		}
		return nil, apperr.Internal(err)
	}
	return comment, nil
}

func (s *CommentService) ListByPost(ctx context.Context, postID uint64, page int) ([]model.Comment, int64, error) {
	comments, total, err := s.comments.ListByPost(ctx, postID, normalizePage(page), s.perPage)
	if err != nil {
		return nil, 0, apperr.Internal(err)
	}
	return comments, total, nil
}

// SetDisabled is the moderation action. The comment stays stored; only the
// flag changes, and only moderators may flip it.
func (s *CommentService) SetDisabled(ctx context.Context, actor auth.Actor, commentID uint64, disabled bool) error {
	if err := auth.Require(actor, model.PermModerate); err != nil {
		return err
	}
	if _, err := s.Get(ctx, commentID); err != nil {
		return err
	}
	if err := s.comments.SetDisabled(ctx, commentID, disabled); err != nil {
		return apperr.Internal(err)
	}
	return nil
}
