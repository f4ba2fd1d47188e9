package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBlogHasPublishedAt(t *testing.T) {
	testCases := []struct {
		name        string
		publishedAt time.Time
		want        bool
	}{
		{name: "zero value", publishedAt: time.Time{}, want: false},
		{name: "epoch sentinel", publishedAt: Unpublished, want: false},
		{name: "epoch in another zone", publishedAt: time.Unix(0, 0).In(time.FixedZone("X", 3600)), want: false},
		{name: "published", publishedAt: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC), want: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			b := Blog{PublishedAt: tc.publishedAt}
			assert.Equal(t, tc.want, b.HasPublishedAt())
		})
	}
}

func TestBlogUpdateApply(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	earlier := now.Add(-time.Hour)
	title := "renamed"
	yes, no := true, false

	testCases := []struct {
		name          string
		blog          Blog
		update        BlogUpdate
		wantStamped   bool
		wantPublished time.Time
		wantTitle     string
	}{
		{
			name:          "absent fields untouched",
			blog:          Blog{Title: "keep", PublishedAt: Unpublished},
			update:        BlogUpdate{UpdatedAt: now},
			wantPublished: Unpublished,
			wantTitle:     "keep",
		},
		{
			name:          "first publish stamps",
			blog:          Blog{Title: "draft", PublishedAt: Unpublished},
			update:        BlogUpdate{Title: &title, IsPublished: &yes, UpdatedAt: now},
			wantStamped:   true,
			wantPublished: now,
			wantTitle:     "renamed",
		},
		{
			name:          "republish keeps stamp",
			blog:          Blog{Title: "old", PublishedAt: earlier},
			update:        BlogUpdate{IsPublished: &yes, UpdatedAt: now},
			wantPublished: earlier,
			wantTitle:     "old",
		},
		{
			name:          "unpublish keeps stamp",
			blog:          Blog{Title: "old", IsPublished: true, PublishedAt: earlier},
			update:        BlogUpdate{IsPublished: &no, UpdatedAt: now},
			wantPublished: earlier,
			wantTitle:     "old",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			b := tc.blog
			stamped := tc.update.Apply(&b)

			assert.Equal(t, tc.wantStamped, stamped)
			assert.True(t, tc.wantPublished.Equal(b.PublishedAt))
			assert.Equal(t, tc.wantTitle, b.Title)
			assert.Equal(t, now, b.UpdatedAt)
		})
	}
}
