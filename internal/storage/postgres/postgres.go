package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/sushihentaime/quillpad/internal/models"
	"github.com/sushihentaime/quillpad/internal/storage"
)

type PostgresStorage struct {
	db *sql.DB
}

func New(db *sql.DB) *PostgresStorage {
	return &PostgresStorage{db: db}
}

// expectOneRow maps the affected row count of a single-row statement to ErrNotFound.
func expectOneRow(res sql.Result) error {
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}

	if rows != 1 {
		switch {
		case rows == 0:
			return storage.ErrNotFound
		default:
			return fmt.Errorf("expected 1 row to be affected, got %d", rows)
		}
	}

	return nil
}

func (s *PostgresStorage) InsertBlog(ctx context.Context, blog *models.Blog) error {
	query := `
		INSERT INTO blogs (title, content, excerpt, tags, author, published_at, updated_at, likes, read_time, is_published)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id`

	args := []any{
		blog.Title,
		blog.Content,
		blog.Excerpt,
		pq.Array(blog.Tags),
		blog.Author,
		blog.PublishedAt,
		blog.UpdatedAt,
		blog.Likes,
		blog.ReadTime,
		blog.IsPublished,
	}

	return s.db.QueryRowContext(ctx, query, args...).Scan(&blog.ID)
}

const blogColumns = `id, title, content, excerpt, tags, author, published_at, updated_at, likes, read_time, is_published`

type scanner interface {
	Scan(dest ...any) error
}

func scanBlog(row scanner, blog *models.Blog) error {
	return row.Scan(
		&blog.ID,
		&blog.Title,
		&blog.Content,
		&blog.Excerpt,
		pq.Array(&blog.Tags),
		&blog.Author,
		&blog.PublishedAt,
		&blog.UpdatedAt,
		&blog.Likes,
		&blog.ReadTime,
		&blog.IsPublished,
	)
}

func (s *PostgresStorage) GetBlog(ctx context.Context, id string) (*models.Blog, error) {
	query := `SELECT ` + blogColumns + ` FROM blogs WHERE id = $1`

	var blog models.Blog
	err := scanBlog(s.db.QueryRowContext(ctx, query, id), &blog)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, storage.ErrNotFound
		default:
			return nil, err
		}
	}

	return &blog, nil
}

// UpdateBlog locks the row for the read and the write so concurrent partial updates
// and publish transitions serialize.
func (s *PostgresStorage) UpdateBlog(ctx context.Context, id string, update *models.BlogUpdate) (*models.Blog, bool, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, false, err
	}
	defer tx.Rollback()

	var blog models.Blog
	err = scanBlog(tx.QueryRowContext(ctx, `SELECT `+blogColumns+` FROM blogs WHERE id = $1 FOR UPDATE`, id), &blog)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, false, storage.ErrNotFound
		default:
			return nil, false, err
		}
	}

	stamped := update.Apply(&blog)

	query := `
		UPDATE blogs
		SET title = $1, content = $2, excerpt = $3, tags = $4, published_at = $5, updated_at = $6, read_time = $7, is_published = $8
		WHERE id = $9`

	args := []any{
		blog.Title,
		blog.Content,
		blog.Excerpt,
		pq.Array(blog.Tags),
		blog.PublishedAt,
		blog.UpdatedAt,
		blog.ReadTime,
		blog.IsPublished,
		id,
	}

	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, false, err
	}
	if err := expectOneRow(res); err != nil {
		return nil, false, err
	}

	if err := tx.Commit(); err != nil {
		return nil, false, err
	}

	return &blog, stamped, nil
}

func (s *PostgresStorage) DeleteBlog(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM blogs WHERE id = $1`, id)
	if err != nil {
		return err
	}

	return expectOneRow(res)
}

// ListPublishedBlogs breaks publishedAt ties on id so that page windows are stable.
func (s *PostgresStorage) ListPublishedBlogs(ctx context.Context, tag string) ([]models.Blog, error) {
	query := `
		SELECT ` + blogColumns + `
		FROM blogs
		WHERE is_published = true AND ($1 = '' OR $1 = ANY(tags))
		ORDER BY published_at DESC, id ASC`

	rows, err := s.db.QueryContext(ctx, query, tag)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	blogs := []models.Blog{}
	for rows.Next() {
		var blog models.Blog
		if err := scanBlog(rows, &blog); err != nil {
			return nil, err
		}
		blogs = append(blogs, blog)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return blogs, nil
}

func (s *PostgresStorage) IncrementBlogLikes(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `UPDATE blogs SET likes = likes + 1 WHERE id = $1`, id)
	if err != nil {
		return err
	}

	return expectOneRow(res)
}

func (s *PostgresStorage) InsertComment(ctx context.Context, comment *models.Comment) error {
	query := `
		INSERT INTO comments (blog_id, author, content, created_at, updated_at, likes)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`

	return s.db.QueryRowContext(ctx, query, comment.BlogID, comment.Author, comment.Content, comment.CreatedAt, comment.UpdatedAt, comment.Likes).Scan(&comment.ID)
}

const commentColumns = `id, blog_id, author, content, created_at, updated_at, likes`

func scanComment(row scanner, c *models.Comment) error {
	return row.Scan(&c.ID, &c.BlogID, &c.Author, &c.Content, &c.CreatedAt, &c.UpdatedAt, &c.Likes)
}

func (s *PostgresStorage) GetComment(ctx context.Context, id string) (*models.Comment, error) {
	query := `SELECT ` + commentColumns + ` FROM comments WHERE id = $1`

	var c models.Comment
	err := scanComment(s.db.QueryRowContext(ctx, query, id), &c)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, storage.ErrNotFound
		default:
			return nil, err
		}
	}

	return &c, nil
}

func (s *PostgresStorage) UpdateComment(ctx context.Context, comment *models.Comment) error {
	query := `
		UPDATE comments
		SET author = $1, content = $2, updated_at = $3
		WHERE id = $4`

	res, err := s.db.ExecContext(ctx, query, comment.Author, comment.Content, comment.UpdatedAt, comment.ID)
	if err != nil {
		return err
	}

	return expectOneRow(res)
}

func (s *PostgresStorage) DeleteComment(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		return err
	}

	return expectOneRow(res)
}

func (s *PostgresStorage) ListComments(ctx context.Context, blogID string) ([]models.Comment, error) {
	query := `
		SELECT ` + commentColumns + `
		FROM comments
		WHERE blog_id = $1
		ORDER BY created_at DESC, id ASC`

	rows, err := s.db.QueryContext(ctx, query, blogID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	comments := []models.Comment{}
	for rows.Next() {
		var c models.Comment
		if err := scanComment(rows, &c); err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return comments, nil
}

func (s *PostgresStorage) IncrementCommentLikes(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `UPDATE comments SET likes = likes + 1 WHERE id = $1`, id)
	if err != nil {
		return err
	}

	return expectOneRow(res)
}

func (s *PostgresStorage) Close() error {
	return s.db.Close()
}
