package service

import (
	"context"
	"sort"

	"github.com/rs/zerolog"

	"github.com/blogosphere/blog/internal/core/domain"
)

var discardLogger = zerolog.Nop()

// ---------------------------------------------------------------------------
// In-memory stub repositories
// ---------------------------------------------------------------------------

type stubPostRepo struct {
	posts     map[int64]*domain.Post
	nextID    int64
	createErr error
	updates   int
	deletes   int
}

func newStubPostRepo() *stubPostRepo {
	return &stubPostRepo{posts: make(map[int64]*domain.Post)}
}

func (r *stubPostRepo) List(_ context.Context) ([]*domain.Post, error) {
	out := make([]*domain.Post, 0, len(r.posts))
	for _, p := range r.posts {
		clone := *p
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Created.Equal(out[j].Created) {
			return out[i].ID > out[j].ID
		}
		return out[i].Created.After(out[j].Created)
	})
	return out, nil
}

func (r *stubPostRepo) FindByID(_ context.Context, id int64) (*domain.Post, error) {
	p, ok := r.posts[id]
	if !ok {
		return nil, domain.ErrPostNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *stubPostRepo) Create(_ context.Context, p *domain.Post) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.nextID++
	p.ID = r.nextID
	clone := *p
	r.posts[p.ID] = &clone
	return nil
}

func (r *stubPostRepo) Update(_ context.Context, p *domain.Post) error {
	stored, ok := r.posts[p.ID]
	if !ok {
		return domain.ErrPostNotFound
	}
	r.updates++
	stored.Title = p.Title
	stored.Body = p.Body
	return nil
}

func (r *stubPostRepo) Delete(_ context.Context, id int64) error {
	r.deletes++
	delete(r.posts, id)
	return nil
}

type stubCommentRepo struct {
	comments map[int64]*domain.Comment
	nextID   int64
}

func newStubCommentRepo() *stubCommentRepo {
	return &stubCommentRepo{comments: make(map[int64]*domain.Comment)}
}

func (r *stubCommentRepo) ListByPost(_ context.Context, postID int64) ([]*domain.Comment, error) {
	var out []*domain.Comment
	for _, c := range r.comments {
		if c.PostID == postID {
			clone := *c
			out = append(out, &clone)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubCommentRepo) FindByID(_ context.Context, id int64) (*domain.Comment, error) {
	c, ok := r.comments[id]
	if !ok {
		return nil, domain.ErrCommentNotFound
	}
	clone := *c
	return &clone, nil
}

func (r *stubCommentRepo) Create(_ context.Context, c *domain.Comment) error {
	r.nextID++
	c.ID = r.nextID
	clone := *c
	r.comments[c.ID] = &clone
	return nil
}

func (r *stubCommentRepo) DeleteFromPost(_ context.Context, postID, id int64) (bool, error) {
	c, ok := r.comments[id]
	if !ok || c.PostID != postID {
		return false, nil
	}
	delete(r.comments, id)
	return true, nil
}

// recordingAudit keeps every event it receives.
type recordingAudit struct {
	events []domain.AuditEvent
}

func (a *recordingAudit) Record(_ context.Context, e domain.AuditEvent) {
	a.events = append(a.events, e)
}
