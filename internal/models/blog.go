package models

import "time"

// Unpublished is the publishedAt value stored for drafts.
var Unpublished = time.Unix(0, 0).UTC()

type Blog struct {
	ID    string `json:"id" firestore:"-"`
	Title string `json:"title" firestore:"title"`
	// Content may contain HTML or Markdown.
	Content     string    `json:"content" firestore:"content"`
	Excerpt     string    `json:"excerpt" firestore:"excerpt"`
	Tags        []string  `json:"tags" firestore:"tags"`
	Author      string    `json:"author" firestore:"author"`
	PublishedAt time.Time `json:"publishedAt" firestore:"publishedAt"`
	UpdatedAt   time.Time `json:"updatedAt" firestore:"updatedAt"`
	Likes       int64     `json:"likes" firestore:"likes"`
	ReadTime    int       `json:"readTime" firestore:"readTime"`
	IsPublished bool      `json:"isPublished" firestore:"isPublished"`
}

// HasPublishedAt reports whether the blog has ever been published.
func (b *Blog) HasPublishedAt() bool {
	return !b.PublishedAt.IsZero() && !b.PublishedAt.Equal(Unpublished)
}

// BlogPatch carries the optional fields of a partial update. Nil means absent.
type BlogPatch struct {
	Title       *string   `json:"title"`
	Content     *string   `json:"content"`
	Tags        *[]string `json:"tags"`
	IsPublished *bool     `json:"isPublished"`
}

// BlogUpdate is a resolved partial update handed to a store. Nil fields are left as stored.
// Stores apply it atomically against the current document.
type BlogUpdate struct {
	Title       *string
	Content     *string
	Excerpt     *string
	ReadTime    *int
	Tags        []string
	IsPublished *bool
	UpdatedAt   time.Time
}

// Apply writes the present fields onto b and stamps publishedAt with UpdatedAt the first time
// b becomes published. It reports whether that stamp happened.
func (u *BlogUpdate) Apply(b *Blog) bool {
	if u.Title != nil {
		b.Title = *u.Title
	}
	if u.Content != nil {
		b.Content = *u.Content
	}
	if u.Excerpt != nil {
		b.Excerpt = *u.Excerpt
	}
	if u.ReadTime != nil {
		b.ReadTime = *u.ReadTime
	}
	if u.Tags != nil {
		b.Tags = u.Tags
	}
	b.UpdatedAt = u.UpdatedAt

	if u.IsPublished == nil {
		return false
	}
	b.IsPublished = *u.IsPublished
	if b.IsPublished && !b.HasPublishedAt() {
		b.PublishedAt = u.UpdatedAt
		return true
	}

	return false
}

type BlogPage struct {
	Blogs []Blog `json:"blogs"`
	Total int    `json:"total"`
	Page  int    `json:"page"`
	Limit int    `json:"limit"`
}
