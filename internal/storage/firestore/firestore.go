// Package firestore stores blogs and comments as documents in the "blogs" and
// "comments" collections of a Cloud Firestore database.
package firestore

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/sushihentaime/quillpad/internal/models"
	"github.com/sushihentaime/quillpad/internal/storage"
)

const (
	blogsCollection    = "blogs"
	commentsCollection = "comments"
)

type FirestoreStorage struct {
	client *firestore.Client
}

// New connects to the project's default database. An empty credentialsFile falls back to
// application default credentials, or to the emulator when FIRESTORE_EMULATOR_HOST is set.
func New(ctx context.Context, projectID, credentialsFile string) (*FirestoreStorage, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	client, err := firestore.NewClient(ctx, projectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("could not create firestore client: %w", err)
	}

	return &FirestoreStorage{client: client}, nil
}

func mapError(err error) error {
	if status.Code(err) == codes.NotFound {
		return storage.ErrNotFound
	}
	return err
}

func (s *FirestoreStorage) InsertBlog(ctx context.Context, blog *models.Blog) error {
	ref, _, err := s.client.Collection(blogsCollection).Add(ctx, blog)
	if err != nil {
		return err
	}

	blog.ID = ref.ID
	return nil
}

func (s *FirestoreStorage) GetBlog(ctx context.Context, id string) (*models.Blog, error) {
	snap, err := s.client.Collection(blogsCollection).Doc(id).Get(ctx)
	if err != nil {
		return nil, mapError(err)
	}

	var blog models.Blog
	if err := snap.DataTo(&blog); err != nil {
		return nil, err
	}
	blog.ID = snap.Ref.ID

	return &blog, nil
}

// UpdateBlog runs the read and the write in one transaction and only writes the fields present
// in update, plus publishedAt when it gets stamped.
func (s *FirestoreStorage) UpdateBlog(ctx context.Context, id string, update *models.BlogUpdate) (*models.Blog, bool, error) {
	ref := s.client.Collection(blogsCollection).Doc(id)

	var (
		blog    models.Blog
		stamped bool
	)
	err := s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		snap, err := tx.Get(ref)
		if err != nil {
			return err
		}

		blog = models.Blog{}
		if err := snap.DataTo(&blog); err != nil {
			return err
		}
		blog.ID = snap.Ref.ID
		stamped = update.Apply(&blog)

		return tx.Update(ref, blogUpdates(update, &blog, stamped))
	})
	if err != nil {
		return nil, false, mapError(err)
	}

	return &blog, stamped, nil
}

func blogUpdates(update *models.BlogUpdate, blog *models.Blog, stamped bool) []firestore.Update {
	updates := []firestore.Update{{Path: "updatedAt", Value: blog.UpdatedAt}}
	if update.Title != nil {
		updates = append(updates, firestore.Update{Path: "title", Value: blog.Title})
	}
	if update.Content != nil {
		updates = append(updates, firestore.Update{Path: "content", Value: blog.Content})
	}
	if update.Excerpt != nil {
		updates = append(updates, firestore.Update{Path: "excerpt", Value: blog.Excerpt})
	}
	if update.ReadTime != nil {
		updates = append(updates, firestore.Update{Path: "readTime", Value: blog.ReadTime})
	}
	if update.Tags != nil {
		updates = append(updates, firestore.Update{Path: "tags", Value: blog.Tags})
	}
	if update.IsPublished != nil {
		updates = append(updates, firestore.Update{Path: "isPublished", Value: blog.IsPublished})
	}
	if stamped {
		updates = append(updates, firestore.Update{Path: "publishedAt", Value: blog.PublishedAt})
	}

	return updates
}

func (s *FirestoreStorage) DeleteBlog(ctx context.Context, id string) error {
	_, err := s.client.Collection(blogsCollection).Doc(id).Delete(ctx, firestore.Exists)
	return mapError(err)
}

// ListPublishedBlogs needs a composite index on (isPublished, publishedAt desc) and,
// for tag filtering, on (isPublished, tags array, publishedAt desc).
func (s *FirestoreStorage) ListPublishedBlogs(ctx context.Context, tag string) ([]models.Blog, error) {
	q := s.client.Collection(blogsCollection).Where("isPublished", "==", true)
	if tag != "" {
		q = q.Where("tags", "array-contains", tag)
	}
	q = q.OrderBy("publishedAt", firestore.Desc).OrderBy(firestore.DocumentID, firestore.Asc)

	docs, err := q.Documents(ctx).GetAll()
	if err != nil {
		return nil, err
	}

	blogs := make([]models.Blog, 0, len(docs))
	for _, doc := range docs {
		var blog models.Blog
		if err := doc.DataTo(&blog); err != nil {
			return nil, err
		}
		blog.ID = doc.Ref.ID
		blogs = append(blogs, blog)
	}

	return blogs, nil
}

func (s *FirestoreStorage) IncrementBlogLikes(ctx context.Context, id string) error {
	_, err := s.client.Collection(blogsCollection).Doc(id).Update(ctx, []firestore.Update{
		{Path: "likes", Value: firestore.Increment(1)},
	})
	return mapError(err)
}

func (s *FirestoreStorage) InsertComment(ctx context.Context, comment *models.Comment) error {
	ref, _, err := s.client.Collection(commentsCollection).Add(ctx, comment)
	if err != nil {
		return err
	}

	comment.ID = ref.ID
	return nil
}

func (s *FirestoreStorage) GetComment(ctx context.Context, id string) (*models.Comment, error) {
	snap, err := s.client.Collection(commentsCollection).Doc(id).Get(ctx)
	if err != nil {
		return nil, mapError(err)
	}

	var c models.Comment
	if err := snap.DataTo(&c); err != nil {
		return nil, err
	}
	c.ID = snap.Ref.ID

	return &c, nil
}

func (s *FirestoreStorage) UpdateComment(ctx context.Context, comment *models.Comment) error {
	_, err := s.client.Collection(commentsCollection).Doc(comment.ID).Update(ctx, []firestore.Update{
		{Path: "author", Value: comment.Author},
		{Path: "content", Value: comment.Content},
		{Path: "updatedAt", Value: comment.UpdatedAt},
	})
	return mapError(err)
}

func (s *FirestoreStorage) DeleteComment(ctx context.Context, id string) error {
	_, err := s.client.Collection(commentsCollection).Doc(id).Delete(ctx, firestore.Exists)
	return mapError(err)
}

func (s *FirestoreStorage) ListComments(ctx context.Context, blogID string) ([]models.Comment, error) {
	docs, err := s.client.Collection(commentsCollection).
		Where("blogId", "==", blogID).
		OrderBy("createdAt", firestore.Desc).
		OrderBy(firestore.DocumentID, firestore.Asc).
		Documents(ctx).GetAll()
	if err != nil {
		return nil, err
	}

	comments := make([]models.Comment, 0, len(docs))
	for _, doc := range docs {
		var c models.Comment
		if err := doc.DataTo(&c); err != nil {
			return nil, err
		}
		c.ID = doc.Ref.ID
		comments = append(comments, c)
	}

	return comments, nil
}

func (s *FirestoreStorage) IncrementCommentLikes(ctx context.Context, id string) error {
	_, err := s.client.Collection(commentsCollection).Doc(id).Update(ctx, []firestore.Update{
		{Path: "likes", Value: firestore.Increment(1)},
	})
	return mapError(err)
}

func (s *FirestoreStorage) Close() error {
	return s.client.Close()
}
