package engine

import (
	"context"
	"fmt"
	"strings"

	"github.com/pawsconnect/backend/internal/models"
)

// AddComment appends a comment to the post, stamping the creation time and
// the resolved author display name.
func (e *Engine) AddComment(ctx context.Context, collection, postID string, actor models.Actor, text string) (*models.Comment, error) {
	if actor.ID == "" {
		return nil, ErrUnauthenticated
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("%w: comment text is empty", ErrValidation)
	}
	if _, err := e.posts.GetByID(ctx, collection, postID); err != nil {
		return nil, storeErr(err)
	}
	comment := &models.Comment{
		PostID:     postID,
		AuthorID:   actor.ID,
		AuthorName: e.resolveDisplayName(ctx, actor),
		Text:       text,
	}
	if err := e.comments.Create(ctx, comment); err != nil {
		return nil, storeErr(err)
	}
	return comment, nil
}

// DeleteComment removes a comment. Only its author may delete it; the
// check lives here, not just in the UI. The parent post is untouched.
func (e *Engine) DeleteComment(ctx context.Context, postID, commentID, actorID string) error {
	if actorID == "" {
		return ErrUnauthenticated
	}
	comment, err := e.comments.GetByID(ctx, commentID)
	if err != nil {
		return storeErr(err)
	}
	if comment.PostID != postID {
		return ErrNotFound
	}
	if comment.AuthorID != actorID {
		return fmt.Errorf("%w: only the comment author may delete it", ErrForbidden)
	}
	return storeErr(e.comments.Delete(ctx, commentID))
}

// ListComments returns a post's comments oldest first.
func (e *Engine) ListComments(ctx context.Context, collection, postID string) ([]models.Comment, error) {
	if _, err := e.posts.GetByID(ctx, collection, postID); err != nil {
		return nil, storeErr(err)
	}
	comments, err := e.comments.ListByPostID(ctx, postID)
	if err != nil {
		return nil, storeErr(err)
	}
	return comments, nil
}
