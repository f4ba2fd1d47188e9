package blogservice

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/sushihentaime/quillpad/internal/common"
	"github.com/sushihentaime/quillpad/internal/storage"
)

var ErrBlogNotFound = fmt.Errorf("blog %w", storage.ErrNotFound)

const (
	defaultPage  = 1
	defaultLimit = 10
)

type CreateBlogRequest struct {
	Title       string   `json:"title"`
	Content     string   `json:"content"`
	Tags        []string `json:"tags"`
	IsPublished bool     `json:"isPublished"`
}

type BlogService struct {
	blogs    storage.BlogStore
	comments storage.CommentStore
	c        *common.Cache
	mb       common.MessageProducer
	logger   *slog.Logger
	author   string
	now      func() time.Time
}
