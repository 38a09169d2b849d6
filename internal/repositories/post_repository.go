package repositories

import (
	"context"
	"time"

	"github.com/pawsconnect/backend/internal/models"
	"github.com/pawsconnect/backend/internal/store"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// descriptiveFields are the pet listing fields the search tokens derive
// from; touching any of them forces a token recompute.
var descriptiveFields = map[string]bool{
	"name":     true,
	"age":      true,
	"sex":      true,
	"species":  true,
	"breed":    true,
	"property": true,
	"status":   true,
}

// PostRepository defines the interface for post data operations
type PostRepository interface {
	Create(ctx context.Context, collection string, post *models.Post) error
	GetByID(ctx context.Context, collection, id string) (*models.Post, error)
	ListByAuthor(ctx context.Context, collection, authorID string) ([]models.Post, error)
	ListAll(ctx context.Context, collection string) ([]models.Post, error)
	ListByIDs(ctx context.Context, collection string, ids []string) ([]models.Post, error)
	SearchPetListings(ctx context.Context, token string) ([]models.Post, error)
	FilterPetListings(ctx context.Context, species []string, property string) ([]models.Post, error)
	UpdateFields(ctx context.Context, collection, id string, fields map[string]any) error
	UpdateAuthorSnapshot(ctx context.Context, collection, id, username, avatarURL string) error
	SetStatus(ctx context.Context, id, status string) error
	AddLike(ctx context.Context, collection, id, actorID string) error
	RemoveLike(ctx context.Context, collection, id, actorID string) error
	Delete(ctx context.Context, collection, id string) error
}

// StorePostRepository implements PostRepository over a DocumentStore.
type StorePostRepository struct {
	store store.DocumentStore
}

// NewStorePostRepository creates a new StorePostRepository
func NewStorePostRepository(s store.DocumentStore) *StorePostRepository {
	return &StorePostRepository{store: s}
}

// Create assigns the id, stamps the creation time and, for pet listings,
// derives the search tokens and default status before writing.
func (r *StorePostRepository) Create(ctx context.Context, collection string, post *models.Post) error {
	post.ID = primitive.NewObjectID().Hex()
	post.CreatedAt = time.Now().UTC()
	if post.LikedBy == nil {
		post.LikedBy = []string{}
	}
	if collection == models.CollectionPetListing {
		if post.Status == "" {
			post.Status = models.StatusAvailable
		}
		post.SearchTokens = post.PetSearchTokens()
	}
	return r.store.Set(ctx, collection, post.ID, post)
}

// GetByID retrieves a post by id.
func (r *StorePostRepository) GetByID(ctx context.Context, collection, id string) (*models.Post, error) {
	raw, err := r.store.Get(ctx, collection, id)
	if err != nil {
		return nil, err
	}
	var post models.Post
	if err := bson.Unmarshal(raw, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

// ListByAuthor retrieves an author's posts, newest first.
func (r *StorePostRepository) ListByAuthor(ctx context.Context, collection, authorID string) ([]models.Post, error) {
	return r.query(ctx, collection,
		[]store.Filter{{Field: "author_id", Op: store.Eq, Value: authorID}},
		store.Options{Sort: "created_at", Desc: true})
}

// ListAll retrieves every post in the collection, newest first.
func (r *StorePostRepository) ListAll(ctx context.Context, collection string) ([]models.Post, error) {
	return r.query(ctx, collection, nil, store.Options{Sort: "created_at", Desc: true})
}

// ListByIDs retrieves the posts whose ids are in ids, newest first. Missing
// ids are silently skipped.
func (r *StorePostRepository) ListByIDs(ctx context.Context, collection string, ids []string) ([]models.Post, error) {
	if len(ids) == 0 {
		return []models.Post{}, nil
	}
	return r.query(ctx, collection,
		[]store.Filter{{Field: "_id", Op: store.In, Value: ids}},
		store.Options{Sort: "created_at", Desc: true})
}

// SearchPetListings finds listings whose search tokens contain the given
// lower-cased token.
func (r *StorePostRepository) SearchPetListings(ctx context.Context, token string) ([]models.Post, error) {
	return r.query(ctx, models.CollectionPetListing,
		[]store.Filter{{Field: "search_tokens", Op: store.Eq, Value: token}},
		store.Options{Sort: "created_at", Desc: true})
}

// FilterPetListings finds listings matching the adopter's desired species
// and property type. When the combined filter matches nothing it retries on
// species alone, keeping the behavior the search screen has always had.
func (r *StorePostRepository) FilterPetListings(ctx context.Context, species []string, property string) ([]models.Post, error) {
	filters := []store.Filter{{Field: "species", Op: store.In, Value: species}}
	if property != "" {
		both := append([]store.Filter{}, filters...)
		both = append(both, store.Filter{Field: "property", Op: store.Eq, Value: property})
		posts, err := r.query(ctx, models.CollectionPetListing, both, store.Options{Sort: "created_at", Desc: true})
		if err != nil {
			return nil, err
		}
		if len(posts) > 0 {
			return posts, nil
		}
	}
	return r.query(ctx, models.CollectionPetListing, filters, store.Options{Sort: "created_at", Desc: true})
}

// UpdateFields applies a partial update. Editing any descriptive pet listing
// field re-derives the search tokens from the written document, so the
// tokens never drift from the fields they summarize.
func (r *StorePostRepository) UpdateFields(ctx context.Context, collection, id string, fields map[string]any) error {
	if err := r.store.UpdateFields(ctx, collection, id, fields); err != nil {
		return err
	}
	if collection != models.CollectionPetListing {
		return nil
	}
	touched := false
	for key := range fields {
		if descriptiveFields[key] {
			touched = true
			break
		}
	}
	if !touched {
		return nil
	}
	post, err := r.GetByID(ctx, collection, id)
	if err != nil {
		return err
	}
	return r.store.UpdateFields(ctx, collection, id, map[string]any{"search_tokens": post.PetSearchTokens()})
}

// UpdateAuthorSnapshot rewrites the denormalized author fields.
func (r *StorePostRepository) UpdateAuthorSnapshot(ctx context.Context, collection, id, username, avatarURL string) error {
	return r.store.UpdateFields(ctx, collection, id, map[string]any{
		"author_name":       username,
		"author_avatar_url": avatarURL,
	})
}

// SetStatus writes a pet listing's adoption status.
func (r *StorePostRepository) SetStatus(ctx context.Context, id, status string) error {
	return r.UpdateFields(ctx, models.CollectionPetListing, id, map[string]any{"status": status})
}

// AddLike adds actorID to the post's likedBy set. The write touches only
// that field, so concurrent edits to the rest of the document survive.
func (r *StorePostRepository) AddLike(ctx context.Context, collection, id, actorID string) error {
	return r.store.AddToSet(ctx, collection, id, "liked_by", actorID)
}

// RemoveLike removes actorID from the post's likedBy set.
func (r *StorePostRepository) RemoveLike(ctx context.Context, collection, id, actorID string) error {
	return r.store.RemoveFromSet(ctx, collection, id, "liked_by", actorID)
}

// Delete removes the post document.
func (r *StorePostRepository) Delete(ctx context.Context, collection, id string) error {
	return r.store.Delete(ctx, collection, id)
}

func (r *StorePostRepository) query(ctx context.Context, collection string, filters []store.Filter, opts store.Options) ([]models.Post, error) {
	raws, err := r.store.Query(ctx, collection, filters, opts)
	if err != nil {
		return nil, err
	}
	posts := make([]models.Post, 0, len(raws))
	for _, raw := range raws {
		var post models.Post
		if err := bson.Unmarshal(raw, &post); err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, nil
}
