package sqlstore

import (
	"context"
	"database/sql"
	"errors"

	"github.com/blogosphere/blog/internal/core/domain"
	"github.com/blogosphere/blog/internal/core/ports"
)

// CommentRepository implements ports.CommentRepository.
type CommentRepository struct {
	db *sql.DB
}

func NewCommentRepository(store *DB) ports.CommentRepository {
	return &CommentRepository{db: store.db}
}

func (r *CommentRepository) ListByPost(ctx context.Context, postID int64) ([]*domain.Comment, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT c.id, c.post_id, c.author_id, c.body, c.created, u.username
FROM comment c JOIN "user" u ON c.author_id = u.id
WHERE c.post_id = $1
ORDER BY c.id ASC`, postID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	comments := make([]*domain.Comment, 0)
	for rows.Next() {
		var c domain.Comment
		if err := rows.Scan(&c.ID, &c.PostID, &c.AuthorID, &c.Body, &c.Created, &c.AuthorUsername); err != nil {
			return nil, err
		}
		c.Created = c.Created.UTC()
		comments = append(comments, &c)
	}
	return comments, rows.Err()
}

func (r *CommentRepository) FindByID(ctx context.Context, id int64) (*domain.Comment, error) {
	var c domain.Comment
	err := r.db.QueryRowContext(ctx, `
SELECT c.id, c.post_id, c.author_id, c.body, c.created, u.username
FROM comment c JOIN "user" u ON c.author_id = u.id
WHERE c.id = $1`, id).Scan(&c.ID, &c.PostID, &c.AuthorID, &c.Body, &c.Created, &c.AuthorUsername)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrCommentNotFound
	}
	if err != nil {
		return nil, err
	}
	c.Created = c.Created.UTC()
	return &c, nil
}

func (r *CommentRepository) Create(ctx context.Context, c *domain.Comment) error {
	return r.db.QueryRowContext(ctx,
		`INSERT INTO comment (post_id, author_id, body, created) VALUES ($1, $2, $3, $4) RETURNING id`,
		c.PostID, c.AuthorID, c.Body, c.Created.UTC(),
	).Scan(&c.ID)
}

func (r *CommentRepository) DeleteFromPost(ctx context.Context, postID, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM comment WHERE id = $1 AND post_id = $2`, id, postID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
