package feed

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pawsconnect/backend/internal/models"
	"github.com/pawsconnect/backend/internal/repositories"
	"github.com/pawsconnect/backend/internal/store"
)

func newFeedFixture(t *testing.T) (*Service, repositories.PostRepository, repositories.ProfileRepository, *miniredis.Miniredis) {
	t.Helper()
	documents := store.NewMemoryStore()
	posts := repositories.NewStorePostRepository(documents)
	profiles := repositories.NewStoreProfileRepository(documents)

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	return NewService(posts, profiles, client, time.Minute), posts, profiles, mr
}

func seedListing(t *testing.T, posts repositories.PostRepository, authorID, name string) *models.Post {
	t.Helper()
	post := &models.Post{
		AuthorID:   authorID,
		AuthorName: "Snapshot Name",
		MediaURL:   "https://example.com/" + name + ".jpg",
		Name:       name,
		Species:    "Dog",
	}
	require.NoError(t, posts.Create(context.Background(), models.CollectionPetListing, post))
	return post
}

func TestFeedJoinsFreshAuthor(t *testing.T) {
	svc, posts, profiles, _ := newFeedFixture(t)
	ctx := context.Background()

	require.NoError(t, profiles.SaveShelter(ctx, &models.ShelterProfile{ID: "shelter-1", Username: "Happy Paws"}))
	seedListing(t, posts, "shelter-1", "Rex")

	items, err := svc.Feed(ctx, models.CollectionPetListing)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Happy Paws", items[0].Author.Username)
}

func TestFeedServesFromCacheUntilInvalidated(t *testing.T) {
	svc, posts, _, _ := newFeedFixture(t)
	ctx := context.Background()

	seedListing(t, posts, "shelter-1", "Rex")

	items, err := svc.Feed(ctx, models.CollectionPetListing)
	require.NoError(t, err)
	require.Len(t, items, 1)

	// A write that skips invalidation is not visible yet.
	seedListing(t, posts, "shelter-1", "Max")
	items, err = svc.Feed(ctx, models.CollectionPetListing)
	require.NoError(t, err)
	assert.Len(t, items, 1)

	svc.Invalidate(ctx, models.CollectionPetListing)
	items, err = svc.Feed(ctx, models.CollectionPetListing)
	require.NoError(t, err)
	assert.Len(t, items, 2)
}

func TestFeedCacheExpires(t *testing.T) {
	svc, posts, _, mr := newFeedFixture(t)
	ctx := context.Background()

	seedListing(t, posts, "shelter-1", "Rex")
	_, err := svc.Feed(ctx, models.CollectionPetListing)
	require.NoError(t, err)

	seedListing(t, posts, "shelter-1", "Max")
	mr.FastForward(2 * time.Minute)

	items, err := svc.Feed(ctx, models.CollectionPetListing)
	require.NoError(t, err)
	assert.Len(t, items, 2)
}

func TestFeedDegradesWithoutRedis(t *testing.T) {
	documents := store.NewMemoryStore()
	posts := repositories.NewStorePostRepository(documents)
	profiles := repositories.NewStoreProfileRepository(documents)
	svc := NewService(posts, profiles, nil, time.Minute)

	seedListing(t, posts, "shelter-1", "Rex")

	items, err := svc.Feed(context.Background(), models.CollectionPetListing)
	require.NoError(t, err)
	assert.Len(t, items, 1)

	// Invalidate on a nil client is a no-op.
	svc.Invalidate(context.Background(), models.CollectionPetListing)
}

func TestBookmarkedListingsSkipsDeleted(t *testing.T) {
	svc, posts, profiles, _ := newFeedFixture(t)
	ctx := context.Background()

	kept := seedListing(t, posts, "shelter-1", "Rex")
	gone := seedListing(t, posts, "shelter-1", "Max")
	require.NoError(t, posts.Delete(ctx, models.CollectionPetListing, gone.ID))

	require.NoError(t, profiles.SaveUser(ctx, &models.UserProfile{
		ID:             "user-1",
		Username:       "Alice",
		BookmarkedPets: []string{kept.ID, gone.ID},
	}))

	profile, err := profiles.GetUser(ctx, "user-1")
	require.NoError(t, err)

	items, err := svc.BookmarkedListings(ctx, profile)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, kept.ID, items[0].ID)
}
