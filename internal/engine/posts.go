package engine

import (
	"context"
	"fmt"
	"log"

	"github.com/pawsconnect/backend/internal/models"
)

// CreatePost creates a post in the named collection, denormalizing the
// author's current profile onto it. The media object is expected to be
// uploaded already; if this write fails the object stays orphaned (no
// compensating rollback) and the caller sees the error.
func (e *Engine) CreatePost(ctx context.Context, collection string, actor models.Actor, req *models.CreatePostRequest) (*models.Post, error) {
	if actor.ID == "" {
		return nil, ErrUnauthenticated
	}
	if !models.IsPostCollection(collection) {
		return nil, fmt.Errorf("%w: unknown collection %q", ErrValidation, collection)
	}
	username, avatarURL := e.authorSnapshot(ctx, actor.ID)
	post := &models.Post{
		AuthorID:        actor.ID,
		AuthorName:      username,
		AuthorAvatarURL: avatarURL,
		MediaURL:        req.MediaURL,
		Caption:         req.Caption,
		Name:            req.Name,
		Age:             req.Age,
		Sex:             req.Sex,
		Species:         req.Species,
		Breed:           req.Breed,
		Property:        req.Property,
	}
	if err := e.posts.Create(ctx, collection, post); err != nil {
		log.Printf("post create failed after media upload; object %s is orphaned", req.MediaURL)
		return nil, storeErr(err)
	}
	return post, nil
}

// UpdatePost applies a partial edit to the author's own post.
func (e *Engine) UpdatePost(ctx context.Context, collection, postID, actorID string, fields map[string]any) (*models.Post, error) {
	if actorID == "" {
		return nil, ErrUnauthenticated
	}
	post, err := e.posts.GetByID(ctx, collection, postID)
	if err != nil {
		return nil, storeErr(err)
	}
	if post.AuthorID != actorID {
		return nil, fmt.Errorf("%w: only the author may edit a post", ErrForbidden)
	}
	if len(fields) == 0 {
		return post, nil
	}
	if err := e.posts.UpdateFields(ctx, collection, postID, fields); err != nil {
		return nil, storeErr(err)
	}
	updated, err := e.posts.GetByID(ctx, collection, postID)
	if err != nil {
		return nil, storeErr(err)
	}
	return updated, nil
}

// CycleStatus advances a pet listing's adoption status one step along the
// fixed cycle. Only the shelter that owns the listing may call it.
func (e *Engine) CycleStatus(ctx context.Context, postID, actorID string) (string, error) {
	if actorID == "" {
		return "", ErrUnauthenticated
	}
	post, err := e.posts.GetByID(ctx, models.CollectionPetListing, postID)
	if err != nil {
		return "", storeErr(err)
	}
	if post.AuthorID != actorID {
		return "", fmt.Errorf("%w: only the listing shelter may change its status", ErrForbidden)
	}
	next := models.NextStatus(post.Status)
	if err := e.posts.SetStatus(ctx, postID, next); err != nil {
		return "", storeErr(err)
	}
	return next, nil
}

// DeletePost removes the author's own post document. Its comments and
// stored media object are deliberately left in place; what remains is
// logged so operators can reconcile the orphans.
func (e *Engine) DeletePost(ctx context.Context, collection, postID, actorID string) error {
	if actorID == "" {
		return ErrUnauthenticated
	}
	post, err := e.posts.GetByID(ctx, collection, postID)
	if err != nil {
		return storeErr(err)
	}
	if post.AuthorID != actorID {
		return fmt.Errorf("%w: only the author may delete a post", ErrForbidden)
	}
	if err := e.posts.Delete(ctx, collection, postID); err != nil {
		return storeErr(err)
	}
	orphaned := 0
	if comments, err := e.comments.ListByPostID(ctx, postID); err == nil {
		orphaned = len(comments)
	}
	log.Printf("post %s/%s deleted; %d comments and media %s left behind", collection, postID, orphaned, post.MediaURL)
	return nil
}

// RefreshAuthorSnapshot rewrites a post's denormalized author fields from
// the author's current profile.
func (e *Engine) RefreshAuthorSnapshot(ctx context.Context, collection, postID string) error {
	post, err := e.posts.GetByID(ctx, collection, postID)
	if err != nil {
		return storeErr(err)
	}
	username, avatarURL := e.authorSnapshot(ctx, post.AuthorID)
	return storeErr(e.posts.UpdateAuthorSnapshot(ctx, collection, postID, username, avatarURL))
}
