package handler

import (
	"fmt"
	"time"

	"github.com/blogosphere/blog/internal/core/domain"
)

// --- Domain → Response ---

func toPostResponse(p *domain.Post) postResponse {
	return postResponse{
		ID:      p.ID,
		Title:   p.Title,
		Body:    p.Body,
		Created: p.Created.UTC().Format(time.RFC3339),
		Author:  authorResponse{ID: p.AuthorID, Username: p.AuthorUsername},
		Links: postLinks{
			Self: fmt.Sprintf("/api/v1/posts/%d", p.ID),
			Page: postPath(p.ID),
		},
	}
}

func toPostList(posts []*domain.Post) listPostsResponse {
	out := listPostsResponse{Data: make([]postResponse, 0, len(posts))}
	for _, p := range posts {
		out.Data = append(out.Data, toPostResponse(p))
	}
	return out
}

func toPostDetail(p *domain.Post, comments []*domain.Comment) postDetailResponse {
	out := postDetailResponse{
		postResponse: toPostResponse(p),
		Comments:     make([]commentResponse, 0, len(comments)),
	}
	for _, c := range comments {
		out.Comments = append(out.Comments, commentResponse{
			ID:      c.ID,
			Body:    c.Body,
			Created: c.Created.UTC().Format(time.RFC3339),
			Author:  authorResponse{ID: c.AuthorID, Username: c.AuthorUsername},
		})
	}
	return out
}
