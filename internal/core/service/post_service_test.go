package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/blogosphere/blog/internal/core/domain"
	"github.com/blogosphere/blog/internal/core/ports"
)

var alice = domain.Actor{UserID: 1, Username: "alice"}
var bob = domain.Actor{UserID: 2, Username: "bob"}

// tickingClock returns strictly increasing timestamps.
func tickingClock() func() time.Time {
	t := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	return func() time.Time {
		t = t.Add(time.Second)
		return t
	}
}

func newTestPostService(repo *stubPostRepo, policy Policy, audit *recordingAudit) *PostService {
	svc := NewPostService(repo, policy, audit, discardLogger)
	svc.now = tickingClock()
	return svc
}

// ---------------------------------------------------------------------------
// CreatePost
// ---------------------------------------------------------------------------

func TestPostService_Create_Success(t *testing.T) {
	repo := newStubPostRepo()
	audit := &recordingAudit{}
	svc := newTestPostService(repo, nil, audit)

	post, err := svc.CreatePost(context.Background(), alice, ports.PostInput{Title: "Hello", Body: "World"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if post.ID == 0 {
		t.Fatal("expected an assigned id")
	}
	if post.AuthorID != alice.UserID || post.AuthorUsername != "alice" {
		t.Errorf("unexpected author: %d %q", post.AuthorID, post.AuthorUsername)
	}
	if post.Created.IsZero() {
		t.Error("Created must not be zero")
	}

	posts, _ := svc.ListPosts(context.Background())
	if len(posts) != 1 || posts[0].Title != "Hello" || posts[0].Body != "World" {
		t.Fatalf("unexpected listing: %+v", posts)
	}

	if len(audit.events) != 1 || audit.events[0].Action != domain.AuditPostCreated || audit.events[0].PostID != post.ID {
		t.Errorf("unexpected audit events: %+v", audit.events)
	}
}

func TestPostService_Create_EmptyBodyAllowed(t *testing.T) {
	svc := newTestPostService(newStubPostRepo(), nil, &recordingAudit{})

	if _, err := svc.CreatePost(context.Background(), alice, ports.PostInput{Title: "Only a title"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestPostService_Create_EmptyTitleRejected(t *testing.T) {
	repo := newStubPostRepo()
	audit := &recordingAudit{}
	svc := newTestPostService(repo, nil, audit)

	_, err := svc.CreatePost(context.Background(), alice, ports.PostInput{Title: "", Body: "body"})

	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if ve.Message != "Title is required." {
		t.Errorf("unexpected message %q", ve.Message)
	}
	if len(repo.posts) != 0 {
		t.Errorf("expected no insert, repo has %d posts", len(repo.posts))
	}
	if len(audit.events) != 0 {
		t.Errorf("expected no audit events, got %d", len(audit.events))
	}
}

func TestPostService_Create_DuplicatesAllowed(t *testing.T) {
	repo := newStubPostRepo()
	svc := newTestPostService(repo, nil, &recordingAudit{})

	in := ports.PostInput{Title: "Same", Body: "Same"}
	for i := 0; i < 2; i++ {
		if _, err := svc.CreatePost(context.Background(), alice, in); err != nil {
			t.Fatalf("create %d: %v", i, err)
		}
	}
	if len(repo.posts) != 2 {
		t.Fatalf("expected 2 posts, got %d", len(repo.posts))
	}
}

func TestPostService_Create_RepoErrorPropagates(t *testing.T) {
	repo := newStubPostRepo()
	repo.createErr = errors.New("disk full")
	svc := newTestPostService(repo, nil, &recordingAudit{})

	_, err := svc.CreatePost(context.Background(), alice, ports.PostInput{Title: "x"})
	if err == nil || !errors.Is(err, repo.createErr) {
		t.Fatalf("expected wrapped repo error, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// ListPosts / GetPost
// ---------------------------------------------------------------------------

func TestPostService_List_NewestFirst(t *testing.T) {
	svc := newTestPostService(newStubPostRepo(), nil, &recordingAudit{})

	for _, title := range []string{"first", "second", "third"} {
		if _, err := svc.CreatePost(context.Background(), alice, ports.PostInput{Title: title}); err != nil {
			t.Fatalf("create %s: %v", title, err)
		}
	}

	posts, err := svc.ListPosts(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	want := []string{"third", "second", "first"}
	for i, p := range posts {
		if p.Title != want[i] {
			t.Errorf("position %d: expected %q, got %q", i, want[i], p.Title)
		}
	}
}

func TestPostService_Get_NotFound(t *testing.T) {
	svc := newTestPostService(newStubPostRepo(), nil, &recordingAudit{})

	_, err := svc.GetPost(context.Background(), 42)
	if !errors.Is(err, domain.ErrPostNotFound) {
		t.Fatalf("expected ErrPostNotFound, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// UpdatePost
// ---------------------------------------------------------------------------

func TestPostService_Update_ChangesOnlyTitleAndBody(t *testing.T) {
	repo := newStubPostRepo()
	svc := newTestPostService(repo, nil, &recordingAudit{})
	created, _ := svc.CreatePost(context.Background(), alice, ports.PostInput{Title: "Old", Body: "Old body"})

	if _, err := svc.UpdatePost(context.Background(), alice, created.ID, ports.PostInput{Title: "New Title", Body: "New Body"}); err != nil {
		t.Fatalf("update: %v", err)
	}

	got, _ := svc.GetPost(context.Background(), created.ID)
	if got.Title != "New Title" || got.Body != "New Body" {
		t.Errorf("fields not updated: %+v", got)
	}
	if got.ID != created.ID || got.AuthorID != created.AuthorID || !got.Created.Equal(created.Created) {
		t.Errorf("immutable fields changed: before %+v after %+v", created, got)
	}
}

func TestPostService_Update_NotFound(t *testing.T) {
	svc := newTestPostService(newStubPostRepo(), nil, &recordingAudit{})

	_, err := svc.UpdatePost(context.Background(), alice, 7, ports.PostInput{Title: "x"})
	if !errors.Is(err, domain.ErrPostNotFound) {
		t.Fatalf("expected ErrPostNotFound, got %v", err)
	}
}

func TestPostService_Update_EmptyTitleRejected(t *testing.T) {
	repo := newStubPostRepo()
	svc := newTestPostService(repo, nil, &recordingAudit{})
	created, _ := svc.CreatePost(context.Background(), alice, ports.PostInput{Title: "Keep"})

	_, err := svc.UpdatePost(context.Background(), alice, created.ID, ports.PostInput{Title: ""})
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if repo.updates != 0 {
		t.Errorf("expected no update, got %d", repo.updates)
	}
	if got, _ := svc.GetPost(context.Background(), created.ID); got.Title != "Keep" {
		t.Errorf("title changed to %q", got.Title)
	}
}

func TestPostService_Update_AnyUserByDefault(t *testing.T) {
	svc := newTestPostService(newStubPostRepo(), nil, &recordingAudit{})
	created, _ := svc.CreatePost(context.Background(), alice, ports.PostInput{Title: "alice's"})

	if _, err := svc.UpdatePost(context.Background(), bob, created.ID, ports.PostInput{Title: "bob was here"}); err != nil {
		t.Fatalf("expected default policy to allow, got %v", err)
	}
}

func TestPostService_Update_AuthorOnlyPolicy(t *testing.T) {
	repo := newStubPostRepo()
	svc := newTestPostService(repo, AuthorOnly, &recordingAudit{})
	created, _ := svc.CreatePost(context.Background(), alice, ports.PostInput{Title: "alice's"})

	_, err := svc.UpdatePost(context.Background(), bob, created.ID, ports.PostInput{Title: "bob was here"})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if repo.updates != 0 {
		t.Errorf("expected no update, got %d", repo.updates)
	}
}

func TestPostService_Edit_FollowsPolicy(t *testing.T) {
	svc := newTestPostService(newStubPostRepo(), AuthorOnly, &recordingAudit{})
	created, _ := svc.CreatePost(context.Background(), alice, ports.PostInput{Title: "alice's"})

	if _, err := svc.EditPost(context.Background(), bob, created.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for bob, got %v", err)
	}
	post, err := svc.EditPost(context.Background(), alice, created.ID)
	if err != nil || post.Title != "alice's" {
		t.Fatalf("expected alice to edit her post, got %v, %v", post, err)
	}
	if _, err := svc.EditPost(context.Background(), alice, 404); !errors.Is(err, domain.ErrPostNotFound) {
		t.Fatalf("expected ErrPostNotFound, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// DeletePost
// ---------------------------------------------------------------------------

func TestPostService_Delete_ThenNotFound(t *testing.T) {
	audit := &recordingAudit{}
	svc := newTestPostService(newStubPostRepo(), nil, audit)
	created, _ := svc.CreatePost(context.Background(), alice, ports.PostInput{Title: "bye"})

	if err := svc.DeletePost(context.Background(), alice, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.GetPost(context.Background(), created.ID); !errors.Is(err, domain.ErrPostNotFound) {
		t.Fatalf("expected ErrPostNotFound after delete, got %v", err)
	}
	last := audit.events[len(audit.events)-1]
	if last.Action != domain.AuditPostDeleted || last.PostID != created.ID {
		t.Errorf("unexpected audit event %+v", last)
	}
}

func TestPostService_Delete_NotFound(t *testing.T) {
	repo := newStubPostRepo()
	svc := newTestPostService(repo, nil, &recordingAudit{})

	err := svc.DeletePost(context.Background(), alice, 99)
	if !errors.Is(err, domain.ErrPostNotFound) {
		t.Fatalf("expected ErrPostNotFound, got %v", err)
	}
	if repo.deletes != 0 {
		t.Errorf("expected no delete call, got %d", repo.deletes)
	}
}

func TestPostService_Delete_AuthorOnlyPolicy(t *testing.T) {
	repo := newStubPostRepo()
	svc := newTestPostService(repo, AuthorOnly, &recordingAudit{})
	created, _ := svc.CreatePost(context.Background(), alice, ports.PostInput{Title: "mine"})

	if err := svc.DeletePost(context.Background(), bob, created.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if err := svc.DeletePost(context.Background(), alice, created.ID); err != nil {
		t.Fatalf("author delete: %v", err)
	}
}
