package repositories

import (
	"context"
	"time"

	"github.com/pawsconnect/backend/internal/models"
	"github.com/pawsconnect/backend/internal/store"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const commentsCollection = "comments"

// CommentRepository defines the interface for comment data operations
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, id string) (*models.Comment, error)
	ListByPostID(ctx context.Context, postID string) ([]models.Comment, error)
	Delete(ctx context.Context, id string) error
}

// StoreCommentRepository implements CommentRepository over a DocumentStore.
type StoreCommentRepository struct {
	store store.DocumentStore
}

// NewStoreCommentRepository creates a new StoreCommentRepository
func NewStoreCommentRepository(s store.DocumentStore) *StoreCommentRepository {
	return &StoreCommentRepository{store: s}
}

// Create assigns the id, stamps the creation time and writes the comment.
func (r *StoreCommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	comment.ID = primitive.NewObjectID().Hex()
	comment.CreatedAt = time.Now().UTC()
	return r.store.Set(ctx, commentsCollection, comment.ID, comment)
}

// GetByID retrieves a comment by id.
func (r *StoreCommentRepository) GetByID(ctx context.Context, id string) (*models.Comment, error) {
	raw, err := r.store.Get(ctx, commentsCollection, id)
	if err != nil {
		return nil, err
	}
	var comment models.Comment
	if err := bson.Unmarshal(raw, &comment); err != nil {
		return nil, err
	}
	return &comment, nil
}

// ListByPostID retrieves a post's comments in the order they were written.
func (r *StoreCommentRepository) ListByPostID(ctx context.Context, postID string) ([]models.Comment, error) {
	raws, err := r.store.Query(ctx, commentsCollection,
		[]store.Filter{{Field: "post_id", Op: store.Eq, Value: postID}},
		store.Options{Sort: "created_at"})
	if err != nil {
		return nil, err
	}
	comments := make([]models.Comment, 0, len(raws))
	for _, raw := range raws {
		var comment models.Comment
		if err := bson.Unmarshal(raw, &comment); err != nil {
			return nil, err
		}
		comments = append(comments, comment)
	}
	return comments, nil
}

// Delete removes the comment document.
func (r *StoreCommentRepository) Delete(ctx context.Context, id string) error {
	return r.store.Delete(ctx, commentsCollection, id)
}
