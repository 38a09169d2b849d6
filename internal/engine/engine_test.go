package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/pawsconnect/backend/internal/media"
	"github.com/pawsconnect/backend/internal/models"
	"github.com/pawsconnect/backend/internal/repositories"
	"github.com/pawsconnect/backend/internal/store"
)

type stubRevoker struct {
	revoked []string
}

func (r *stubRevoker) DeleteUser(ctx context.Context, uid string) error {
	r.revoked = append(r.revoked, uid)
	return nil
}

type fixture struct {
	engine   *Engine
	posts    repositories.PostRepository
	comments repositories.CommentRepository
	profiles repositories.ProfileRepository
	accounts repositories.AccountRepository
	media    *media.MemoryStorage
	revoker  *stubRevoker
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	documents := store.NewMemoryStore()
	posts := repositories.NewStorePostRepository(documents)
	comments := repositories.NewStoreCommentRepository(documents)
	profiles := repositories.NewStoreProfileRepository(documents)

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Account{}))
	accounts := repositories.NewPostgresAccountRepository(db)

	mediaStore := media.NewMemoryStorage()
	revoker := &stubRevoker{}
	return &fixture{
		engine:   New(posts, comments, profiles, accounts, mediaStore, revoker),
		posts:    posts,
		comments: comments,
		profiles: profiles,
		accounts: accounts,
		media:    mediaStore,
		revoker:  revoker,
	}
}

func (f *fixture) addShelter(t *testing.T, id, name string) models.Actor {
	t.Helper()
	require.NoError(t, f.profiles.SaveShelter(context.Background(), &models.ShelterProfile{ID: id, Username: name, Email: id + "@example.com"}))
	require.NoError(t, f.accounts.Create(&models.Account{FirebaseUID: id, Email: id + "@example.com", Kind: models.KindShelter, DisplayName: name}))
	return models.Actor{ID: id, Email: id + "@example.com", Kind: models.KindShelter, DisplayName: name}
}

func (f *fixture) addAdopter(t *testing.T, id, name string) models.Actor {
	t.Helper()
	require.NoError(t, f.profiles.SaveUser(context.Background(), &models.UserProfile{ID: id, Username: name, Email: id + "@example.com"}))
	require.NoError(t, f.accounts.Create(&models.Account{FirebaseUID: id, Email: id + "@example.com", Kind: models.KindAdopter, DisplayName: name}))
	return models.Actor{ID: id, Email: id + "@example.com", Kind: models.KindAdopter, DisplayName: name}
}

func (f *fixture) addListing(t *testing.T, shelter models.Actor, name string) *models.Post {
	t.Helper()
	post, err := f.engine.CreatePost(context.Background(), models.CollectionPetListing, shelter, &models.CreatePostRequest{
		MediaURL: "https://example.com/" + name + ".jpg",
		Name:     name,
		Age:      "2",
		Sex:      "Male",
		Species:  "Dog",
		Property: "HDB",
	})
	require.NoError(t, err)
	return post
}

func TestToggleLikeFlipsAndRestores(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	shelter := f.addShelter(t, "shelter-1", "Happy Paws")
	adopter := f.addAdopter(t, "user-1", "Alice")
	post := f.addListing(t, shelter, "Rex")

	result, err := f.engine.ToggleLike(ctx, models.CollectionPetListing, post.ID, adopter.ID)
	require.NoError(t, err)
	assert.True(t, result.Liked)
	assert.Equal(t, 1, result.LikeCount)

	result, err = f.engine.ToggleLike(ctx, models.CollectionPetListing, post.ID, adopter.ID)
	require.NoError(t, err)
	assert.False(t, result.Liked)
	assert.Equal(t, 0, result.LikeCount)

	stored, err := f.posts.GetByID(ctx, models.CollectionPetListing, post.ID)
	require.NoError(t, err)
	assert.Empty(t, stored.LikedBy)
}

func TestToggleLikeNeverDuplicates(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	shelter := f.addShelter(t, "shelter-1", "Happy Paws")
	post := f.addListing(t, shelter, "Rex")

	for _, actorID := range []string{"u1", "u2", "u1"} {
		_, err := f.engine.ToggleLike(ctx, models.CollectionPetListing, post.ID, actorID)
		require.NoError(t, err)
	}

	stored, err := f.posts.GetByID(ctx, models.CollectionPetListing, post.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"u2"}, stored.LikedBy)
}

func TestToggleLikeRequiresActor(t *testing.T) {
	f := newFixture(t)
	_, err := f.engine.ToggleLike(context.Background(), models.CollectionPetListing, "p1", "")
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestToggleLikeMissingPost(t *testing.T) {
	f := newFixture(t)
	_, err := f.engine.ToggleLike(context.Background(), models.CollectionPetListing, "gone", "u1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestToggleBookmark(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	adopter := f.addAdopter(t, "user-1", "Alice")

	bookmarked, err := f.engine.ToggleBookmark(ctx, adopter.ID, "pet-1")
	require.NoError(t, err)
	assert.True(t, bookmarked)

	profile, err := f.profiles.GetUser(ctx, adopter.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"pet-1"}, profile.BookmarkedPets)

	bookmarked, err = f.engine.ToggleBookmark(ctx, adopter.ID, "pet-1")
	require.NoError(t, err)
	assert.False(t, bookmarked)

	profile, err = f.profiles.GetUser(ctx, adopter.ID)
	require.NoError(t, err)
	assert.Empty(t, profile.BookmarkedPets)
}

func TestSubmitRatingAccumulates(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	shelter := f.addShelter(t, "shelter-1", "Happy Paws")

	require.NoError(t, f.engine.SubmitRating(ctx, shelter.ID, "user-1", 5))
	require.NoError(t, f.engine.SubmitRating(ctx, shelter.ID, "user-1", 3))

	profile, err := f.profiles.GetShelter(ctx, shelter.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(8), profile.Ratings.Sum)
	assert.Equal(t, int64(2), profile.Ratings.Count)

	avg, ok := profile.Ratings.Average()
	assert.True(t, ok)
	assert.Equal(t, 4.0, avg)
}

func TestSubmitRatingRejectsOutOfRange(t *testing.T) {
	f := newFixture(t)
	for _, stars := range []int{0, 6, -1} {
		err := f.engine.SubmitRating(context.Background(), "shelter-1", "user-1", stars)
		assert.ErrorIs(t, err, ErrValidation)
	}
}

func TestAddCommentStampsDisplayName(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	shelter := f.addShelter(t, "shelter-1", "Happy Paws")
	adopter := f.addAdopter(t, "user-1", "Alice")
	post := f.addListing(t, shelter, "Rex")

	comment, err := f.engine.AddComment(ctx, models.CollectionPetListing, post.ID, adopter, "  So cute!  ")
	require.NoError(t, err)
	assert.Equal(t, "So cute!", comment.Text)
	assert.Equal(t, "Alice", comment.AuthorName)
	assert.NotEmpty(t, comment.ID)
	assert.False(t, comment.CreatedAt.IsZero())
}

func TestAddCommentFallsBackToUnknown(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	shelter := f.addShelter(t, "shelter-1", "Happy Paws")
	post := f.addListing(t, shelter, "Rex")

	// Actor with no cached name and no profile document.
	ghost := models.Actor{ID: "ghost", Kind: models.KindAdopter}
	comment, err := f.engine.AddComment(ctx, models.CollectionPetListing, post.ID, ghost, "hello")
	require.NoError(t, err)
	assert.Equal(t, "Unknown", comment.AuthorName)
}

func TestAddCommentRejectsBlankText(t *testing.T) {
	f := newFixture(t)
	shelter := f.addShelter(t, "shelter-1", "Happy Paws")
	post := f.addListing(t, shelter, "Rex")

	_, err := f.engine.AddComment(context.Background(), models.CollectionPetListing, post.ID, shelter, "   ")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestDeleteCommentOwnership(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	shelter := f.addShelter(t, "shelter-1", "Happy Paws")
	adopter := f.addAdopter(t, "user-1", "Alice")
	post := f.addListing(t, shelter, "Rex")

	comment, err := f.engine.AddComment(ctx, models.CollectionPetListing, post.ID, adopter, "mine")
	require.NoError(t, err)

	err = f.engine.DeleteComment(ctx, post.ID, comment.ID, shelter.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	// The failed delete left the comment in place.
	comments, err := f.engine.ListComments(ctx, models.CollectionPetListing, post.ID)
	require.NoError(t, err)
	assert.Len(t, comments, 1)

	require.NoError(t, f.engine.DeleteComment(ctx, post.ID, comment.ID, adopter.ID))
	comments, err = f.engine.ListComments(ctx, models.CollectionPetListing, post.ID)
	require.NoError(t, err)
	assert.Empty(t, comments)
}

func TestDeleteCommentWrongPost(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	shelter := f.addShelter(t, "shelter-1", "Happy Paws")
	post := f.addListing(t, shelter, "Rex")
	other := f.addListing(t, shelter, "Max")

	comment, err := f.engine.AddComment(ctx, models.CollectionPetListing, post.ID, shelter, "hi")
	require.NoError(t, err)

	err = f.engine.DeleteComment(ctx, other.ID, comment.ID, shelter.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCycleStatusWalksTheCycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	shelter := f.addShelter(t, "shelter-1", "Happy Paws")
	post := f.addListing(t, shelter, "Rex")

	for _, want := range []string{models.StatusPending, models.StatusAdopted, models.StatusAvailable} {
		status, err := f.engine.CycleStatus(ctx, post.ID, shelter.ID)
		require.NoError(t, err)
		assert.Equal(t, want, status)
	}
}

func TestCycleStatusOnlyOwner(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	shelter := f.addShelter(t, "shelter-1", "Happy Paws")
	post := f.addListing(t, shelter, "Rex")

	_, err := f.engine.CycleStatus(ctx, post.ID, "someone-else")
	assert.ErrorIs(t, err, ErrForbidden)

	stored, err := f.posts.GetByID(ctx, models.CollectionPetListing, post.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusAvailable, stored.Status)
}

func TestCreatePostDenormalizesAuthor(t *testing.T) {
	f := newFixture(t)
	shelter := f.addShelter(t, "shelter-1", "Happy Paws")
	post := f.addListing(t, shelter, "Rex")

	assert.Equal(t, "Happy Paws", post.AuthorName)
	assert.Equal(t, shelter.ID, post.AuthorID)
}

func TestCreatePostUnknownCollection(t *testing.T) {
	f := newFixture(t)
	shelter := f.addShelter(t, "shelter-1", "Happy Paws")

	_, err := f.engine.CreatePost(context.Background(), "stories", shelter, &models.CreatePostRequest{MediaURL: "https://example.com/a.jpg"})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestUpdatePostOnlyAuthor(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	shelter := f.addShelter(t, "shelter-1", "Happy Paws")
	post := f.addListing(t, shelter, "Rex")

	_, err := f.engine.UpdatePost(ctx, models.CollectionPetListing, post.ID, "intruder", map[string]any{"name": "Stolen"})
	assert.ErrorIs(t, err, ErrForbidden)

	stored, err := f.posts.GetByID(ctx, models.CollectionPetListing, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "Rex", stored.Name)
}

func TestDeletePostOnlyAuthor(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	shelter := f.addShelter(t, "shelter-1", "Happy Paws")
	post := f.addListing(t, shelter, "Rex")

	assert.ErrorIs(t, f.engine.DeletePost(ctx, models.CollectionPetListing, post.ID, "intruder"), ErrForbidden)
	require.NoError(t, f.engine.DeletePost(ctx, models.CollectionPetListing, post.ID, shelter.ID))

	_, err := f.posts.GetByID(ctx, models.CollectionPetListing, post.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestDeletePostLeavesComments(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	shelter := f.addShelter(t, "shelter-1", "Happy Paws")
	adopter := f.addAdopter(t, "user-1", "Alice")
	post := f.addListing(t, shelter, "Rex")

	comment, err := f.engine.AddComment(ctx, models.CollectionPetListing, post.ID, adopter, "bye")
	require.NoError(t, err)

	require.NoError(t, f.engine.DeletePost(ctx, models.CollectionPetListing, post.ID, shelter.ID))

	// No cascade: the comment document survives its parent.
	orphan, err := f.comments.GetByID(ctx, comment.ID)
	require.NoError(t, err)
	assert.Equal(t, post.ID, orphan.PostID)
}

func TestRefreshAuthorSnapshot(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	shelter := f.addShelter(t, "shelter-1", "Happy Paws")
	post := f.addListing(t, shelter, "Rex")

	require.NoError(t, f.profiles.UpdateShelterFields(ctx, shelter.ID, map[string]any{"username": "Happier Paws"}))
	require.NoError(t, f.engine.RefreshAuthorSnapshot(ctx, models.CollectionPetListing, post.ID))

	stored, err := f.posts.GetByID(ctx, models.CollectionPetListing, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "Happier Paws", stored.AuthorName)
}

func TestDeleteProfileRunsAllSteps(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	adopter := f.addAdopter(t, "user-1", "Alice")

	url, err := f.media.Upload(ctx, media.AvatarPath(adopter.ID), []byte("img"), "image/jpeg")
	require.NoError(t, err)
	require.NoError(t, f.profiles.UpdateUserFields(ctx, adopter.ID, map[string]any{"profile_picture": url}))

	require.NoError(t, f.engine.DeleteProfile(ctx, adopter))

	assert.False(t, f.media.Has(url))
	_, err = f.profiles.GetUser(ctx, adopter.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
	_, err = f.accounts.GetByFirebaseUID(adopter.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.Equal(t, []string{adopter.ID}, f.revoker.revoked)
}

func TestDeleteProfileWithoutAvatar(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	shelter := f.addShelter(t, "shelter-1", "Happy Paws")

	require.NoError(t, f.engine.DeleteProfile(ctx, shelter))

	_, err := f.profiles.GetShelter(ctx, shelter.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
	assert.Equal(t, []string{shelter.ID}, f.revoker.revoked)
}

func TestInteractionScenario(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	shelter := f.addShelter(t, "shelter-1", "Happy Paws")
	adopter := f.addAdopter(t, "user-1", "Alice")

	listing := f.addListing(t, shelter, "Rex")

	// Adopter finds the listing, likes it, bookmarks it and asks a question.
	like, err := f.engine.ToggleLike(ctx, models.CollectionPetListing, listing.ID, adopter.ID)
	require.NoError(t, err)
	assert.True(t, like.Liked)

	bookmarked, err := f.engine.ToggleBookmark(ctx, adopter.ID, listing.ID)
	require.NoError(t, err)
	assert.True(t, bookmarked)

	_, err = f.engine.AddComment(ctx, models.CollectionPetListing, listing.ID, adopter, "Is Rex good with kids?")
	require.NoError(t, err)

	// Shelter marks the adoption as in progress, then complete.
	status, err := f.engine.CycleStatus(ctx, listing.ID, shelter.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, status)

	status, err = f.engine.CycleStatus(ctx, listing.ID, shelter.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusAdopted, status)

	// Happy adopter rates the shelter.
	require.NoError(t, f.engine.SubmitRating(ctx, shelter.ID, adopter.ID, 5))

	stored, err := f.posts.GetByID(ctx, models.CollectionPetListing, listing.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusAdopted, stored.Status)
	assert.Equal(t, []string{adopter.ID}, stored.LikedBy)
	assert.Contains(t, stored.SearchTokens, "adopted")

	profile, err := f.profiles.GetShelter(ctx, shelter.ID)
	require.NoError(t, err)
	avg, ok := profile.Ratings.Average()
	assert.True(t, ok)
	assert.Equal(t, 5.0, avg)
}
