package engine

import (
	"context"
	"fmt"
)

// LikeResult reports the actor's likedBy membership after a toggle and the
// resulting like count.
type LikeResult struct {
	Liked     bool `json:"liked"`
	LikeCount int  `json:"like_count"`
}

// ToggleLike flips the actor's membership in the post's likedBy set. Each
// call inverts the current state; two calls in sequence restore it. Only
// the likedBy field is written, so concurrent edits to the rest of the
// document survive. Any actor may like any post.
func (e *Engine) ToggleLike(ctx context.Context, collection, postID, actorID string) (*LikeResult, error) {
	if actorID == "" {
		return nil, ErrUnauthenticated
	}
	post, err := e.posts.GetByID(ctx, collection, postID)
	if err != nil {
		return nil, storeErr(err)
	}
	if post.HasLiked(actorID) {
		if err := e.posts.RemoveLike(ctx, collection, postID, actorID); err != nil {
			return nil, storeErr(err)
		}
		return &LikeResult{Liked: false, LikeCount: post.LikeCount() - 1}, nil
	}
	if err := e.posts.AddLike(ctx, collection, postID, actorID); err != nil {
		return nil, storeErr(err)
	}
	return &LikeResult{Liked: true, LikeCount: post.LikeCount() + 1}, nil
}

// ToggleBookmark flips petID's membership in the actor's own bookmark set.
// The set lives on the actor's profile, so no ownership check is needed.
func (e *Engine) ToggleBookmark(ctx context.Context, actorID, petID string) (bool, error) {
	if actorID == "" {
		return false, ErrUnauthenticated
	}
	profile, err := e.profiles.GetUser(ctx, actorID)
	if err != nil {
		return false, storeErr(err)
	}
	if profile.HasBookmarked(petID) {
		if err := e.profiles.RemoveBookmark(ctx, actorID, petID); err != nil {
			return false, storeErr(err)
		}
		return false, nil
	}
	if err := e.profiles.AddBookmark(ctx, actorID, petID); err != nil {
		return false, storeErr(err)
	}
	return true, nil
}

// SubmitRating folds a star rating into the shelter's accumulators using
// the store's atomic increment. Nothing ties ratings to the rater, so the
// same actor may rate a shelter repeatedly and each submission counts.
func (e *Engine) SubmitRating(ctx context.Context, shelterID, actorID string, stars int) error {
	if actorID == "" {
		return ErrUnauthenticated
	}
	if stars < 1 || stars > 5 {
		return fmt.Errorf("%w: stars must be between 1 and 5", ErrValidation)
	}
	return storeErr(e.profiles.AddRating(ctx, shelterID, stars))
}
