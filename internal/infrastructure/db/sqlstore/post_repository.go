package sqlstore

import (
	"context"
	"database/sql"
	"errors"

	"github.com/blogosphere/blog/internal/core/domain"
	"github.com/blogosphere/blog/internal/core/ports"
)

const selectPost = `
SELECT p.id, p.title, p.body, p.created, p.author_id, u.username
FROM post p JOIN "user" u ON p.author_id = u.id`

// PostRepository implements ports.PostRepository.
type PostRepository struct {
	db *sql.DB
}

func NewPostRepository(store *DB) ports.PostRepository {
	return &PostRepository{db: store.db}
}

func (r *PostRepository) List(ctx context.Context) ([]*domain.Post, error) {
	rows, err := r.db.QueryContext(ctx, selectPost+` ORDER BY p.created DESC, p.id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	posts := make([]*domain.Post, 0)
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

func (r *PostRepository) FindByID(ctx context.Context, id int64) (*domain.Post, error) {
	p, err := scanPost(r.db.QueryRowContext(ctx, selectPost+` WHERE p.id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrPostNotFound
	}
	return p, err
}

func (r *PostRepository) Create(ctx context.Context, p *domain.Post) error {
	return r.db.QueryRowContext(ctx,
		`INSERT INTO post (title, body, created, author_id) VALUES ($1, $2, $3, $4) RETURNING id`,
		p.Title, p.Body, p.Created.UTC(), p.AuthorID,
	).Scan(&p.ID)
}

func (r *PostRepository) Update(ctx context.Context, p *domain.Post) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE post SET title = $1, body = $2 WHERE id = $3`,
		p.Title, p.Body, p.ID,
	)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrPostNotFound
	}
	return nil
}

func (r *PostRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM post WHERE id = $1`, id)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPost(row rowScanner) (*domain.Post, error) {
	var p domain.Post
	if err := row.Scan(&p.ID, &p.Title, &p.Body, &p.Created, &p.AuthorID, &p.AuthorUsername); err != nil {
		return nil, err
	}
	p.Created = p.Created.UTC()
	return &p, nil
}
