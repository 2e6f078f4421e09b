package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/blogosphere/blog/internal/core/domain"
	"github.com/blogosphere/blog/internal/core/ports"
)

type PostService struct {
	repo   ports.PostRepository
	policy Policy
	audit  ports.AuditRecorder
	logger zerolog.Logger
	now    func() time.Time
}

// NewPostService returns a PostService. A nil policy falls back to AllowAll
// and a nil recorder to NopAudit.
func NewPostService(repo ports.PostRepository, policy Policy, audit ports.AuditRecorder, logger zerolog.Logger) *PostService {
	if policy == nil {
		policy = AllowAll
	}
	if audit == nil {
		audit = NopAudit{}
	}
	return &PostService{
		repo:   repo,
		policy: policy,
		audit:  audit,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// ListPosts returns all posts with their author, newest first.
func (s *PostService) ListPosts(ctx context.Context) ([]*domain.Post, error) {
	posts, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return posts, nil
}

// GetPost returns a single post or domain.ErrPostNotFound.
func (s *PostService) GetPost(ctx context.Context, id int64) (*domain.Post, error) {
	post, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get post %d: %w", id, err)
	}
	return post, nil
}

// CreatePost validates the input and inserts a new post authored by actor.
// Repeated submissions create separate posts.
func (s *PostService) CreatePost(ctx context.Context, actor domain.Actor, input ports.PostInput) (*domain.Post, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	post := &domain.Post{
		Title:          input.Title,
		Body:           input.Body,
		Created:        s.now(),
		AuthorID:       actor.UserID,
		AuthorUsername: actor.Username,
	}
	if err := s.repo.Create(ctx, post); err != nil {
		s.logger.Error().Err(err).Int64("author_id", actor.UserID).Msg("failed to create post")
		return nil, fmt.Errorf("create post: %w", err)
	}

	s.logger.Info().Int64("post_id", post.ID).Int64("author_id", actor.UserID).Msg("post created")
	s.record(ctx, domain.AuditPostCreated, post.ID, actor)
	return post, nil
}

// EditPost loads a post for editing. It fails with domain.ErrForbidden when
// the policy does not let actor modify it.
func (s *PostService) EditPost(ctx context.Context, actor domain.Actor, id int64) (*domain.Post, error) {
	post, err := s.modifiable(ctx, actor, id)
	if err != nil {
		return nil, fmt.Errorf("edit post: %w", err)
	}
	return post, nil
}

// UpdatePost replaces the title and body of an existing post.
func (s *PostService) UpdatePost(ctx context.Context, actor domain.Actor, id int64, input ports.PostInput) (*domain.Post, error) {
	post, err := s.modifiable(ctx, actor, id)
	if err != nil {
		return nil, fmt.Errorf("update post: %w", err)
	}
	if err := validateInput(input); err != nil {
		return nil, err
	}

	post.Title = input.Title
	post.Body = input.Body
	if err := s.repo.Update(ctx, post); err != nil {
		return nil, fmt.Errorf("update post %d: %w", id, err)
	}

	s.logger.Info().Int64("post_id", id).Int64("actor_id", actor.UserID).Msg("post updated")
	s.record(ctx, domain.AuditPostUpdated, id, actor)
	return post, nil
}

// DeletePost removes an existing post. Its comments go with it through the
// store's foreign key.
func (s *PostService) DeletePost(ctx context.Context, actor domain.Actor, id int64) error {
	if _, err := s.modifiable(ctx, actor, id); err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete post %d: %w", id, err)
	}

	s.logger.Info().Int64("post_id", id).Int64("actor_id", actor.UserID).Msg("post deleted")
	s.record(ctx, domain.AuditPostDeleted, id, actor)
	return nil
}

// modifiable fetches the post and applies the policy.
func (s *PostService) modifiable(ctx context.Context, actor domain.Actor, id int64) (*domain.Post, error) {
	post, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !s.policy.CanModify(actor, post) {
		s.logger.Warn().Int64("post_id", id).Int64("actor_id", actor.UserID).Msg("modification denied by policy")
		return nil, domain.ErrForbidden
	}
	return post, nil
}

func (s *PostService) record(ctx context.Context, action domain.AuditAction, postID int64, actor domain.Actor) {
	s.audit.Record(ctx, domain.AuditEvent{
		Action:  action,
		PostID:  postID,
		ActorID: actor.UserID,
		At:      s.now(),
	})
}
