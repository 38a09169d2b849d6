package repositories

import (
	"context"

	"github.com/pawsconnect/backend/internal/models"
	"github.com/pawsconnect/backend/internal/store"
	"go.mongodb.org/mongo-driver/bson"
)

// ProfileRepository defines the interface for adopter and shelter profile
// documents.
type ProfileRepository interface {
	GetUser(ctx context.Context, id string) (*models.UserProfile, error)
	SaveUser(ctx context.Context, profile *models.UserProfile) error
	UpdateUserFields(ctx context.Context, id string, fields map[string]any) error
	DeleteUser(ctx context.Context, id string) error

	GetShelter(ctx context.Context, id string) (*models.ShelterProfile, error)
	SaveShelter(ctx context.Context, profile *models.ShelterProfile) error
	UpdateShelterFields(ctx context.Context, id string, fields map[string]any) error
	DeleteShelter(ctx context.Context, id string) error
	ListShelters(ctx context.Context) ([]models.ShelterProfile, error)

	AddBookmark(ctx context.Context, userID, petID string) error
	RemoveBookmark(ctx context.Context, userID, petID string) error
	AddRating(ctx context.Context, shelterID string, stars int) error
}

// StoreProfileRepository implements ProfileRepository over a DocumentStore.
type StoreProfileRepository struct {
	store store.DocumentStore
}

// NewStoreProfileRepository creates a new StoreProfileRepository
func NewStoreProfileRepository(s store.DocumentStore) *StoreProfileRepository {
	return &StoreProfileRepository{store: s}
}

// GetUser retrieves an adopter profile by actor id.
func (r *StoreProfileRepository) GetUser(ctx context.Context, id string) (*models.UserProfile, error) {
	raw, err := r.store.Get(ctx, models.CollectionUsers, id)
	if err != nil {
		return nil, err
	}
	var profile models.UserProfile
	if err := bson.Unmarshal(raw, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// SaveUser writes the full adopter profile document.
func (r *StoreProfileRepository) SaveUser(ctx context.Context, profile *models.UserProfile) error {
	if profile.BookmarkedPets == nil {
		profile.BookmarkedPets = []string{}
	}
	return r.store.Set(ctx, models.CollectionUsers, profile.ID, profile)
}

// UpdateUserFields applies a partial update to an adopter profile.
func (r *StoreProfileRepository) UpdateUserFields(ctx context.Context, id string, fields map[string]any) error {
	return r.store.UpdateFields(ctx, models.CollectionUsers, id, fields)
}

// DeleteUser removes an adopter profile document.
func (r *StoreProfileRepository) DeleteUser(ctx context.Context, id string) error {
	return r.store.Delete(ctx, models.CollectionUsers, id)
}

// GetShelter retrieves a shelter profile by actor id.
func (r *StoreProfileRepository) GetShelter(ctx context.Context, id string) (*models.ShelterProfile, error) {
	raw, err := r.store.Get(ctx, models.CollectionShelters, id)
	if err != nil {
		return nil, err
	}
	var profile models.ShelterProfile
	if err := bson.Unmarshal(raw, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// SaveShelter writes the full shelter profile document.
func (r *StoreProfileRepository) SaveShelter(ctx context.Context, profile *models.ShelterProfile) error {
	return r.store.Set(ctx, models.CollectionShelters, profile.ID, profile)
}

// UpdateShelterFields applies a partial update to a shelter profile.
func (r *StoreProfileRepository) UpdateShelterFields(ctx context.Context, id string, fields map[string]any) error {
	return r.store.UpdateFields(ctx, models.CollectionShelters, id, fields)
}

// DeleteShelter removes a shelter profile document.
func (r *StoreProfileRepository) DeleteShelter(ctx context.Context, id string) error {
	return r.store.Delete(ctx, models.CollectionShelters, id)
}

// ListShelters retrieves every shelter profile, used by the map screen.
func (r *StoreProfileRepository) ListShelters(ctx context.Context) ([]models.ShelterProfile, error) {
	raws, err := r.store.Query(ctx, models.CollectionShelters, nil, store.Options{Sort: "username"})
	if err != nil {
		return nil, err
	}
	shelters := make([]models.ShelterProfile, 0, len(raws))
	for _, raw := range raws {
		var profile models.ShelterProfile
		if err := bson.Unmarshal(raw, &profile); err != nil {
			return nil, err
		}
		shelters = append(shelters, profile)
	}
	return shelters, nil
}

// AddBookmark adds petID to the user's bookmark set.
func (r *StoreProfileRepository) AddBookmark(ctx context.Context, userID, petID string) error {
	return r.store.AddToSet(ctx, models.CollectionUsers, userID, "bookmarked_pets", petID)
}

// RemoveBookmark removes petID from the user's bookmark set.
func (r *StoreProfileRepository) RemoveBookmark(ctx context.Context, userID, petID string) error {
	return r.store.RemoveFromSet(ctx, models.CollectionUsers, userID, "bookmarked_pets", petID)
}

// AddRating folds a star rating into the shelter's accumulators with the
// store's native increment, so concurrent raters never lose updates.
func (r *StoreProfileRepository) AddRating(ctx context.Context, shelterID string, stars int) error {
	return r.store.Increment(ctx, models.CollectionShelters, shelterID, map[string]int64{
		"ratings.sum":   int64(stars),
		"ratings.count": 1,
	})
}
