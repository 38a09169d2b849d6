package repositories

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pawsconnect/backend/internal/models"
	"github.com/pawsconnect/backend/internal/store"
)

func newPetListing(t *testing.T, repo *StorePostRepository, authorID, name, species, property string) *models.Post {
	t.Helper()
	post := &models.Post{
		AuthorID: authorID,
		MediaURL: "https://example.com/pet.jpg",
		Name:     name,
		Age:      "2",
		Sex:      "Male",
		Species:  species,
		Property: property,
	}
	require.NoError(t, repo.Create(context.Background(), models.CollectionPetListing, post))
	return post
}

func TestCreateStampsPetListing(t *testing.T) {
	repo := NewStorePostRepository(store.NewMemoryStore())

	post := newPetListing(t, repo, "shelter-1", "Rex", "Dog", "HDB")

	assert.NotEmpty(t, post.ID)
	assert.False(t, post.CreatedAt.IsZero())
	assert.Equal(t, models.StatusAvailable, post.Status)
	assert.Contains(t, post.SearchTokens, "rex")
	assert.Contains(t, post.SearchTokens, "available")
	assert.NotNil(t, post.LikedBy)
}

func TestCreateLeavesOtherCollectionsUntokenized(t *testing.T) {
	repo := NewStorePostRepository(store.NewMemoryStore())

	post := &models.Post{AuthorID: "u1", MediaURL: "https://example.com/a.jpg", Caption: "hello"}
	require.NoError(t, repo.Create(context.Background(), models.CollectionPosts, post))

	assert.Empty(t, post.Status)
	assert.Empty(t, post.SearchTokens)
}

func TestUpdateFieldsRecomputesSearchTokens(t *testing.T) {
	repo := NewStorePostRepository(store.NewMemoryStore())
	ctx := context.Background()

	post := newPetListing(t, repo, "shelter-1", "Rex", "Dog", "HDB")

	require.NoError(t, repo.UpdateFields(ctx, models.CollectionPetListing, post.ID, map[string]any{"name": "Buddy"}))

	updated, err := repo.GetByID(ctx, models.CollectionPetListing, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "Buddy", updated.Name)
	assert.Contains(t, updated.SearchTokens, "buddy")
	assert.NotContains(t, updated.SearchTokens, "rex")
}

func TestUpdateFieldsSkipsRecomputeForNonDescriptiveEdits(t *testing.T) {
	repo := NewStorePostRepository(store.NewMemoryStore())
	ctx := context.Background()

	post := newPetListing(t, repo, "shelter-1", "Rex", "Dog", "HDB")
	before := post.SearchTokens

	require.NoError(t, repo.UpdateFields(ctx, models.CollectionPetListing, post.ID, map[string]any{"caption": "new caption"}))

	updated, err := repo.GetByID(ctx, models.CollectionPetListing, post.ID)
	require.NoError(t, err)
	assert.Equal(t, before, updated.SearchTokens)
}

func TestSetStatusRecomputesSearchTokens(t *testing.T) {
	repo := NewStorePostRepository(store.NewMemoryStore())
	ctx := context.Background()

	post := newPetListing(t, repo, "shelter-1", "Rex", "Dog", "HDB")

	require.NoError(t, repo.SetStatus(ctx, post.ID, models.StatusPending))

	updated, err := repo.GetByID(ctx, models.CollectionPetListing, post.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, updated.Status)
	assert.Contains(t, updated.SearchTokens, "pending")
	assert.Contains(t, updated.SearchTokens, "adoption")
	assert.NotContains(t, updated.SearchTokens, "available")
}

func TestSearchPetListings(t *testing.T) {
	repo := NewStorePostRepository(store.NewMemoryStore())
	ctx := context.Background()

	rex := newPetListing(t, repo, "shelter-1", "Rex", "Dog", "HDB")
	newPetListing(t, repo, "shelter-1", "Whiskers", "Cat", "Condo")

	found, err := repo.SearchPetListings(ctx, "dog")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, rex.ID, found[0].ID)

	none, err := repo.SearchPetListings(ctx, "hamster")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestFilterPetListingsFallsBackToSpecies(t *testing.T) {
	repo := NewStorePostRepository(store.NewMemoryStore())
	ctx := context.Background()

	dog := newPetListing(t, repo, "shelter-1", "Rex", "Dog", "Landed")
	newPetListing(t, repo, "shelter-1", "Whiskers", "Cat", "Condo")

	// No dog lives in an HDB, so the property constraint is dropped.
	found, err := repo.FilterPetListings(ctx, []string{"Dog"}, "HDB")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, dog.ID, found[0].ID)
}

func TestFilterPetListingsCombined(t *testing.T) {
	repo := NewStorePostRepository(store.NewMemoryStore())
	ctx := context.Background()

	hdbDog := newPetListing(t, repo, "shelter-1", "Rex", "Dog", "HDB")
	newPetListing(t, repo, "shelter-1", "Max", "Dog", "Landed")

	found, err := repo.FilterPetListings(ctx, []string{"Dog"}, "HDB")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, hdbDog.ID, found[0].ID)
}

func TestLikeSetOperations(t *testing.T) {
	repo := NewStorePostRepository(store.NewMemoryStore())
	ctx := context.Background()

	post := newPetListing(t, repo, "shelter-1", "Rex", "Dog", "HDB")

	require.NoError(t, repo.AddLike(ctx, models.CollectionPetListing, post.ID, "u1"))
	require.NoError(t, repo.AddLike(ctx, models.CollectionPetListing, post.ID, "u1"))
	require.NoError(t, repo.AddLike(ctx, models.CollectionPetListing, post.ID, "u2"))

	updated, err := repo.GetByID(ctx, models.CollectionPetListing, post.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"u1", "u2"}, updated.LikedBy)

	require.NoError(t, repo.RemoveLike(ctx, models.CollectionPetListing, post.ID, "u1"))
	updated, err = repo.GetByID(ctx, models.CollectionPetListing, post.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"u2"}, updated.LikedBy)
}

func TestListByIDsSkipsMissing(t *testing.T) {
	repo := NewStorePostRepository(store.NewMemoryStore())
	ctx := context.Background()

	post := newPetListing(t, repo, "shelter-1", "Rex", "Dog", "HDB")

	found, err := repo.ListByIDs(ctx, models.CollectionPetListing, []string{post.ID, "gone"})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, post.ID, found[0].ID)

	empty, err := repo.ListByIDs(ctx, models.CollectionPetListing, nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}
