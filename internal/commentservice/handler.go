package commentservice

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/sushihentaime/quillpad/internal/common"
	"github.com/sushihentaime/quillpad/internal/metrics"
	"github.com/sushihentaime/quillpad/internal/models"
	"github.com/sushihentaime/quillpad/internal/storage"
)

// NewCommentService wires the comment operations to a store. The blog store is only read, to
// check that a new comment's blog exists. mb may be nil.
func NewCommentService(comments storage.CommentStore, blogs storage.BlogStore, mb common.MessageProducer, logger *slog.Logger) *CommentService {
	if mb == nil {
		mb = common.NoopProducer{}
	}

	return &CommentService{
		comments: comments,
		blogs:    blogs,
		mb:       mb,
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC().Truncate(time.Microsecond) },
	}
}

// ListComments returns the comments of a blog, newest first. An unknown blog yields an empty list.
func (s *CommentService) ListComments(ctx context.Context, blogID string) ([]models.Comment, error) {
	comments, err := s.comments.ListComments(ctx, blogID)
	if err != nil {
		return nil, err
	}
	if comments == nil {
		comments = []models.Comment{}
	}

	return comments, nil
}

// CreateComment stores a comment on an existing blog and announces it on the message broker.
func (s *CommentService) CreateComment(ctx context.Context, req *CreateCommentRequest) (*models.Comment, error) {
	blogID := strings.TrimSpace(req.BlogID)
	author := strings.TrimSpace(req.Author)

	v := common.NewValidator()
	validateBlogID(v, blogID)
	validateAuthor(v, author)
	validateContent(v, req.Content)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	blog, err := s.blogs.GetBlog(ctx, blogID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrBlogNotFound
		}
		return nil, err
	}

	now := s.now()
	comment := &models.Comment{
		BlogID:    blogID,
		Author:    author,
		Content:   req.Content,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.comments.InsertComment(ctx, comment); err != nil {
		return nil, err
	}
	metrics.CommentsCreated.Inc()

	event := common.CommentEvent{
		ID:        comment.ID,
		BlogID:    blog.ID,
		BlogTitle: blog.Title,
		Author:    comment.Author,
		Content:   comment.Content,
		CreatedAt: comment.CreatedAt,
	}
	if err := common.PublishEvent(ctx, s.mb, common.CommentCreatedKey, event); err != nil {
		s.logger.Warn("failed to publish comment event", "comment_id", comment.ID, "error", err)
	}

	return comment, nil
}

// UpdateComment replaces the content of a comment. createdAt never changes.
func (s *CommentService) UpdateComment(ctx context.Context, id string, req *UpdateCommentRequest) (*models.Comment, error) {
	v := common.NewValidator()
	validateContent(v, req.Content)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	comment, err := s.comments.GetComment(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}

	comment.Content = req.Content
	comment.UpdatedAt = s.now()

	if err := s.comments.UpdateComment(ctx, comment); err != nil {
		return nil, notFound(err)
	}

	return comment, nil
}

func (s *CommentService) DeleteComment(ctx context.Context, id string) error {
	return notFound(s.comments.DeleteComment(ctx, id))
}

// LikeComment atomically adds one like. A missing comment is reported as ErrCommentNotFound.
func (s *CommentService) LikeComment(ctx context.Context, id string) error {
	if err := s.comments.IncrementCommentLikes(ctx, id); err != nil {
		return notFound(err)
	}
	metrics.ObserveLike(metrics.KindComment)

	return nil
}

func notFound(err error) error {
	if errors.Is(err, storage.ErrNotFound) {
		return ErrCommentNotFound
	}
	return err
}
