package blogservice

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/sushihentaime/quillpad/internal/common"
	"github.com/sushihentaime/quillpad/internal/metrics"
	"github.com/sushihentaime/quillpad/internal/models"
	"github.com/sushihentaime/quillpad/internal/storage"
)

const (
	// cascadeWorkers bounds the number of concurrent comment deletes when a blog is removed.
	cascadeWorkers = 8
	// cascadeTimeout bounds the comment cleanup, which outlives the request that deleted the blog.
	cascadeTimeout = 30 * time.Second
)

// NewBlogService wires the blog operations to a store. The comment store is used for the
// delete cascade. mb may be nil, in which case no events are published.
func NewBlogService(blogs storage.BlogStore, comments storage.CommentStore, cache *common.Cache, mb common.MessageProducer, logger *slog.Logger, author string) *BlogService {
	if mb == nil {
		mb = common.NoopProducer{}
	}

	return &BlogService{
		blogs:    blogs,
		comments: comments,
		c:        cache,
		mb:       mb,
		logger:   logger,
		author:   author,
		now:      func() time.Time { return time.Now().UTC().Truncate(time.Microsecond) },
	}
}

// ListBlogs returns one page of published blogs, newest first. A page or limit below 1 falls back
// to 1 and 10. Total counts every matching blog, not just the ones on the page.
func (s *BlogService) ListBlogs(ctx context.Context, page, limit int, tag string) (*models.BlogPage, error) {
	if page < 1 {
		page = defaultPage
	}
	if limit < 1 {
		limit = defaultLimit
	}
	tag = strings.TrimSpace(tag)

	key := common.CacheKeyBlogs(page, limit, tag)
	if cached, ok := s.c.Get(key); ok {
		p := cached.(models.BlogPage)
		return &p, nil
	}
	gen := s.c.Generation()

	all, err := s.blogs.ListPublishedBlogs(ctx, tag)
	if err != nil {
		return nil, err
	}

	p := models.BlogPage{
		Blogs: paginate(all, page, limit),
		Total: len(all),
		Page:  page,
		Limit: limit,
	}
	s.c.SetIfGeneration(gen, key, p)

	return &p, nil
}

// paginate compares page numbers before computing offsets so huge page or limit values cannot overflow.
func paginate(blogs []models.Blog, page, limit int) []models.Blog {
	if len(blogs) == 0 || page-1 > (len(blogs)-1)/limit {
		return []models.Blog{}
	}

	start := (page - 1) * limit
	end := len(blogs)
	if limit < end-start {
		end = start + limit
	}

	return blogs[start:end]
}

// GetBlog returns a blog by its ID.
func (s *BlogService) GetBlog(ctx context.Context, id string) (*models.Blog, error) {
	key := common.CacheKeyBlog(id)
	if cached, ok := s.c.Get(key); ok {
		b := cached.(models.Blog)
		return &b, nil
	}
	gen := s.c.Generation()

	blog, err := s.blogs.GetBlog(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	s.c.SetIfGeneration(gen, key, *blog)

	return blog, nil
}

// CreateBlog validates the request, derives the excerpt and read time, and stores a new blog.
// Drafts get the Unpublished sentinel as their publishedAt.
func (s *BlogService) CreateBlog(ctx context.Context, req *CreateBlogRequest) (*models.Blog, error) {
	title := strings.TrimSpace(req.Title)
	tags := normalizeTags(req.Tags)

	v := common.NewValidator()
	validateTitle(v, title)
	validateContent(v, req.Content)
	validateTags(v, tags)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	now := s.now()
	blog := &models.Blog{
		Title:       title,
		Content:     req.Content,
		Excerpt:     excerpt(req.Content),
		Tags:        tags,
		Author:      s.author,
		PublishedAt: models.Unpublished,
		UpdatedAt:   now,
		ReadTime:    readTime(req.Content),
		IsPublished: req.IsPublished,
	}
	if req.IsPublished {
		blog.PublishedAt = now
	}

	if err := s.blogs.InsertBlog(ctx, blog); err != nil {
		return nil, err
	}
	s.c.Flush()
	metrics.BlogsCreated.Inc()

	s.publish(ctx, common.BlogCreatedKey, blog)
	if blog.IsPublished {
		s.publish(ctx, common.BlogPublishedKey, blog)
	}

	return blog, nil
}

// UpdateBlog applies the fields present in patch. Empty title or content values are ignored.
// publishedAt is stamped on the first transition to published and never changed afterwards.
// The store applies the update atomically, so concurrent patches of different fields both land.
func (s *BlogService) UpdateBlog(ctx context.Context, id string, patch *models.BlogPatch) (*models.Blog, error) {
	update := &models.BlogUpdate{
		IsPublished: patch.IsPublished,
		UpdatedAt:   s.now(),
	}

	v := common.NewValidator()
	if patch.Tags != nil {
		update.Tags = normalizeTags(*patch.Tags)
		validateTags(v, update.Tags)
	}
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	if patch.Title != nil && strings.TrimSpace(*patch.Title) != "" {
		title := strings.TrimSpace(*patch.Title)
		update.Title = &title
	}
	if patch.Content != nil && strings.TrimSpace(*patch.Content) != "" {
		content := *patch.Content
		ex, rt := excerpt(content), readTime(content)
		update.Content, update.Excerpt, update.ReadTime = &content, &ex, &rt
	}

	blog, stamped, err := s.blogs.UpdateBlog(ctx, id, update)
	if err != nil {
		return nil, notFound(err)
	}
	s.c.Flush()

	if stamped {
		s.publish(ctx, common.BlogPublishedKey, blog)
	}

	return blog, nil
}

// DeleteBlog removes the blog and then, best effort, every comment that references it.
// Cascade failures are logged and do not fail the delete.
func (s *BlogService) DeleteBlog(ctx context.Context, id string) error {
	if err := s.blogs.DeleteBlog(ctx, id); err != nil {
		return notFound(err)
	}
	s.c.Flush()

	s.deleteComments(ctx, id)
	s.publish(ctx, common.BlogDeletedKey, &models.Blog{ID: id})

	return nil
}

func (s *BlogService) deleteComments(ctx context.Context, blogID string) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cascadeTimeout)
	defer cancel()

	comments, err := s.comments.ListComments(ctx, blogID)
	if err != nil {
		s.logger.Error("failed to list comments for cascade delete", "blog_id", blogID, "error", err)
		return
	}

	var (
		g       errgroup.Group
		deleted atomic.Int64
	)
	g.SetLimit(cascadeWorkers)

	for _, c := range comments {
		c := c
		g.Go(func() error {
			err := s.comments.DeleteComment(ctx, c.ID)
			if err != nil && !errors.Is(err, storage.ErrNotFound) {
				return err
			}
			if err == nil {
				deleted.Add(1)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		s.logger.Warn("cascade delete left comments behind", "blog_id", blogID, "deleted", deleted.Load(), "total", len(comments), "error", err)
	}
	metrics.CascadeDeletedComments.Add(float64(deleted.Load()))
}

// LikeBlog atomically adds one like. A missing blog is reported as ErrBlogNotFound.
func (s *BlogService) LikeBlog(ctx context.Context, id string) error {
	if err := s.blogs.IncrementBlogLikes(ctx, id); err != nil {
		return notFound(err)
	}
	s.c.Flush()
	metrics.ObserveLike(metrics.KindBlog)

	return nil
}

func (s *BlogService) publish(ctx context.Context, key common.BindingKey, blog *models.Blog) {
	event := common.BlogEvent{
		ID:          blog.ID,
		Title:       blog.Title,
		Tags:        blog.Tags,
		IsPublished: blog.IsPublished,
		OccurredAt:  s.now(),
	}

	if err := common.PublishEvent(ctx, s.mb, key, event); err != nil {
		s.logger.Warn("failed to publish blog event", "key", string(key), "blog_id", blog.ID, "error", err)
	}
}

func notFound(err error) error {
	if errors.Is(err, storage.ErrNotFound) {
		return ErrBlogNotFound
	}
	return err
}
