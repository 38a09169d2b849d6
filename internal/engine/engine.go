package engine

import (
	"context"

	"github.com/pawsconnect/backend/internal/media"
	"github.com/pawsconnect/backend/internal/models"
	"github.com/pawsconnect/backend/internal/repositories"
)

// CredentialRevoker deletes an actor's identity-provider credential.
// *auth.Client satisfies it.
type CredentialRevoker interface {
	DeleteUser(ctx context.Context, uid string) error
}

// Engine implements the feed interaction operations: toggles, comments,
// status cycling, ratings and the multi-step deletes. It owns no state of
// its own; every call is an independent read-modify-write against the
// stores.
type Engine struct {
	posts    repositories.PostRepository
	comments repositories.CommentRepository
	profiles repositories.ProfileRepository
	accounts repositories.AccountRepository
	media    media.Storage
	revoker  CredentialRevoker
}

// New creates a new Engine
func New(
	posts repositories.PostRepository,
	comments repositories.CommentRepository,
	profiles repositories.ProfileRepository,
	accounts repositories.AccountRepository,
	mediaStore media.Storage,
	revoker CredentialRevoker,
) *Engine {
	return &Engine{
		posts:    posts,
		comments: comments,
		profiles: profiles,
		accounts: accounts,
		media:    mediaStore,
		revoker:  revoker,
	}
}

// authorSnapshot resolves the profile fields denormalized onto a post at
// creation time: shelter profile first (most posts are shelter-authored),
// then user profile, then the "Unknown" sentinel.
func (e *Engine) authorSnapshot(ctx context.Context, authorID string) (username, avatarURL string) {
	if shelter, err := e.profiles.GetShelter(ctx, authorID); err == nil {
		return shelter.Username, shelter.ProfilePicture
	}
	if user, err := e.profiles.GetUser(ctx, authorID); err == nil {
		return user.Username, user.ProfilePicture
	}
	return "Unknown", ""
}

// resolveDisplayName resolves the name stamped onto a comment: the cached
// sign-in name, then the user profile, then the shelter profile, then the
// "Unknown" sentinel. The order is load-bearing for mixed actor kinds
// commenting on shelter-authored posts.
func (e *Engine) resolveDisplayName(ctx context.Context, actor models.Actor) string {
	if actor.DisplayName != "" {
		return actor.DisplayName
	}
	if user, err := e.profiles.GetUser(ctx, actor.ID); err == nil && user.Username != "" {
		return user.Username
	}
	if shelter, err := e.profiles.GetShelter(ctx, actor.ID); err == nil && shelter.Username != "" {
		return shelter.Username
	}
	return "Unknown"
}
