package commentservice

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/sushihentaime/quillpad/internal/common"
	"github.com/sushihentaime/quillpad/internal/storage"
)

var (
	ErrCommentNotFound = fmt.Errorf("comment %w", storage.ErrNotFound)
	ErrBlogNotFound    = fmt.Errorf("blog %w", storage.ErrNotFound)
)

type CreateCommentRequest struct {
	BlogID  string `json:"blogId"`
	Author  string `json:"author"`
	Content string `json:"content"`
}

type UpdateCommentRequest struct {
	Content string `json:"content"`
}

type CommentService struct {
	comments storage.CommentStore
	blogs    storage.BlogStore
	mb       common.MessageProducer
	logger   *slog.Logger
	now      func() time.Time
}
