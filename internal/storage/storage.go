// Package storage defines the document store the blog and comment services run on.
// Backends live in the memory, postgres and firestore subpackages.
package storage

import (
	"context"
	"errors"

	"github.com/sushihentaime/quillpad/internal/models"
)

var ErrNotFound = errors.New("document not found")

type BlogStore interface {
	// InsertBlog persists the blog and sets its ID.
	InsertBlog(ctx context.Context, blog *models.Blog) error
	GetBlog(ctx context.Context, id string) (*models.Blog, error)
	// UpdateBlog applies update to the stored blog in one atomic step and returns the result.
	// stamped reports whether this update set publishedAt for the first time.
	UpdateBlog(ctx context.Context, id string, update *models.BlogUpdate) (blog *models.Blog, stamped bool, err error)
	DeleteBlog(ctx context.Context, id string) error
	// ListPublishedBlogs returns every published blog, newest publishedAt first,
	// restricted to blogs carrying tag when tag is not empty.
	ListPublishedBlogs(ctx context.Context, tag string) ([]models.Blog, error)
	// IncrementBlogLikes atomically adds one to likes. ErrNotFound if the blog is missing.
	IncrementBlogLikes(ctx context.Context, id string) error
}

type CommentStore interface {
	InsertComment(ctx context.Context, comment *models.Comment) error
	GetComment(ctx context.Context, id string) (*models.Comment, error)
	UpdateComment(ctx context.Context, comment *models.Comment) error
	DeleteComment(ctx context.Context, id string) error
	// ListComments returns the comments of a blog, newest createdAt first.
	ListComments(ctx context.Context, blogID string) ([]models.Comment, error)
	IncrementCommentLikes(ctx context.Context, id string) error
}

type Storage interface {
	BlogStore
	CommentStore
	Close() error
}
