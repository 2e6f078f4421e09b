package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/blogosphere/blog/internal/core/domain"
	"github.com/blogosphere/blog/internal/core/ports"
)

type CommentService struct {
	comments ports.CommentRepository
	posts    ports.PostRepository
	audit    ports.AuditRecorder
	logger   zerolog.Logger
	now      func() time.Time
}

func NewCommentService(comments ports.CommentRepository, posts ports.PostRepository, audit ports.AuditRecorder, logger zerolog.Logger) *CommentService {
	if audit == nil {
		audit = NopAudit{}
	}
	return &CommentService{
		comments: comments,
		posts:    posts,
		audit:    audit,
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// ListComments returns the comments of a post in insertion order.
func (s *CommentService) ListComments(ctx context.Context, postID int64) ([]*domain.Comment, error) {
	comments, err := s.comments.ListByPost(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("list comments of post %d: %w", postID, err)
	}
	return comments, nil
}

// AddComment attaches a comment by actor to an existing post.
func (s *CommentService) AddComment(ctx context.Context, actor domain.Actor, postID int64, input ports.CommentInput) (*domain.Comment, error) {
	if _, err := s.posts.FindByID(ctx, postID); err != nil {
		return nil, fmt.Errorf("add comment: %w", err)
	}
	if err := validateInput(input); err != nil {
		return nil, err
	}

	comment := &domain.Comment{
		PostID:         postID,
		AuthorID:       actor.UserID,
		Body:           input.Body,
		Created:        s.now(),
		AuthorUsername: actor.Username,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("add comment to post %d: %w", postID, err)
	}

	s.logger.Info().Int64("post_id", postID).Int64("comment_id", comment.ID).Msg("comment added")
	s.audit.Record(ctx, domain.AuditEvent{
		Action:    domain.AuditCommentAdded,
		PostID:    postID,
		CommentID: comment.ID,
		ActorID:   actor.UserID,
		At:        comment.Created,
	})
	return comment, nil
}

// DeleteComment removes comment id from post postID. Deleting a comment that
// does not exist is a no-op; a comment attached to another post is left
// alone and reported as domain.ErrCommentNotFound.
func (s *CommentService) DeleteComment(ctx context.Context, actor domain.Actor, postID, id int64) error {
	deleted, err := s.comments.DeleteFromPost(ctx, postID, id)
	if err != nil {
		return fmt.Errorf("delete comment %d: %w", id, err)
	}
	if !deleted {
		return s.explainMissed(ctx, postID, id)
	}

	s.logger.Info().Int64("post_id", postID).Int64("comment_id", id).Msg("comment deleted")
	s.audit.Record(ctx, domain.AuditEvent{
		Action:    domain.AuditCommentDeleted,
		PostID:    postID,
		CommentID: id,
		ActorID:   actor.UserID,
		At:        s.now(),
	})
	return nil
}

func (s *CommentService) explainMissed(ctx context.Context, postID, id int64) error {
	other, err := s.comments.FindByID(ctx, id)
	if errors.Is(err, domain.ErrCommentNotFound) {
		s.logger.Debug().Int64("post_id", postID).Int64("comment_id", id).Msg("no comment to delete")
		return nil
	}
	if err != nil {
		return fmt.Errorf("delete comment %d: %w", id, err)
	}
	s.logger.Warn().Int64("post_id", postID).Int64("comment_id", id).Int64("owner_post_id", other.PostID).
		Msg("comment belongs to another post")
	return fmt.Errorf("comment %d is not on post %d: %w", id, postID, domain.ErrCommentNotFound)
}
