package common

import (
	"context"
	"encoding/json"
	"time"
)

type BlogEvent struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Tags        []string  `json:"tags"`
	IsPublished bool      `json:"isPublished"`
	OccurredAt  time.Time `json:"occurredAt"`
}

type CommentEvent struct {
	ID        string    `json:"id"`
	BlogID    string    `json:"blogId"`
	BlogTitle string    `json:"blogTitle"`
	Author    string    `json:"author"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

// PublishEvent encodes event as JSON and publishes it on the blog exchange.
func PublishEvent(ctx context.Context, mb MessageProducer, key BindingKey, event any) error {
	body, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return mb.Publish(ctx, body, key, BlogExchange)
}
