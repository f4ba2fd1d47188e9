package memory

import (
	"context"
	"slices"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/sushihentaime/quillpad/internal/models"
	"github.com/sushihentaime/quillpad/internal/storage"
)

type MemoryStorage struct {
	mu       sync.RWMutex
	blogs    map[string]*models.Blog
	comments map[string]*models.Comment
}

func New() *MemoryStorage {
	return &MemoryStorage{
		blogs:    make(map[string]*models.Blog),
		comments: make(map[string]*models.Comment),
	}
}

func copyBlog(b *models.Blog) models.Blog {
	c := *b
	c.Tags = slices.Clone(b.Tags)
	return c
}

func (s *MemoryStorage) InsertBlog(ctx context.Context, blog *models.Blog) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	blog.ID = uuid.New().String()
	b := copyBlog(blog)
	s.blogs[blog.ID] = &b

	return nil
}

func (s *MemoryStorage) GetBlog(ctx context.Context, id string) (*models.Blog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.blogs[id]
	if !ok {
		return nil, storage.ErrNotFound
	}

	blog := copyBlog(b)
	return &blog, nil
}

func (s *MemoryStorage) UpdateBlog(ctx context.Context, id string, update *models.BlogUpdate) (*models.Blog, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.blogs[id]
	if !ok {
		return nil, false, storage.ErrNotFound
	}

	b := copyBlog(current)
	stamped := update.Apply(&b)
	b.Tags = slices.Clone(b.Tags)
	s.blogs[id] = &b

	result := copyBlog(&b)
	return &result, stamped, nil
}

func (s *MemoryStorage) DeleteBlog(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.blogs[id]; !ok {
		return storage.ErrNotFound
	}
	delete(s.blogs, id)

	return nil
}

func (s *MemoryStorage) ListPublishedBlogs(ctx context.Context, tag string) ([]models.Blog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	blogs := []models.Blog{}
	for _, b := range s.blogs {
		if !b.IsPublished {
			continue
		}
		if tag != "" && !slices.Contains(b.Tags, tag) {
			continue
		}
		blogs = append(blogs, copyBlog(b))
	}

	sort.Slice(blogs, func(i, j int) bool {
		if !blogs[i].PublishedAt.Equal(blogs[j].PublishedAt) {
			return blogs[i].PublishedAt.After(blogs[j].PublishedAt)
		}
		return blogs[i].ID < blogs[j].ID
	})

	return blogs, nil
}

func (s *MemoryStorage) IncrementBlogLikes(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.blogs[id]
	if !ok {
		return storage.ErrNotFound
	}
	b.Likes++

	return nil
}

func (s *MemoryStorage) InsertComment(ctx context.Context, comment *models.Comment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	comment.ID = uuid.New().String()
	c := *comment
	s.comments[c.ID] = &c

	return nil
}

func (s *MemoryStorage) GetComment(ctx context.Context, id string) (*models.Comment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.comments[id]
	if !ok {
		return nil, storage.ErrNotFound
	}

	comment := *c
	return &comment, nil
}

func (s *MemoryStorage) UpdateComment(ctx context.Context, comment *models.Comment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.comments[comment.ID]
	if !ok {
		return storage.ErrNotFound
	}

	c := *comment
	c.Likes = current.Likes
	s.comments[c.ID] = &c

	return nil
}

func (s *MemoryStorage) DeleteComment(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.comments[id]; !ok {
		return storage.ErrNotFound
	}
	delete(s.comments, id)

	return nil
}

func (s *MemoryStorage) ListComments(ctx context.Context, blogID string) ([]models.Comment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	comments := []models.Comment{}
	for _, c := range s.comments {
		if c.BlogID == blogID {
			comments = append(comments, *c)
		}
	}

	sort.Slice(comments, func(i, j int) bool {
		if !comments[i].CreatedAt.Equal(comments[j].CreatedAt) {
			return comments[i].CreatedAt.After(comments[j].CreatedAt)
		}
		return comments[i].ID < comments[j].ID
	})

	return comments, nil
}

func (s *MemoryStorage) IncrementCommentLikes(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.comments[id]
	if !ok {
		return storage.ErrNotFound
	}
	c.Likes++

	return nil
}

func (s *MemoryStorage) Close() error {
	return nil
}
