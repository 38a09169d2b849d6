package media

import (
	"context"
	"fmt"
	"time"
)

// Storage abstracts the object store holding post media and avatars.
type Storage interface {
	Upload(ctx context.Context, path string, data []byte, contentType string) (string, error)
	Delete(ctx context.Context, url string) error
}

// PostMediaPath returns the object path for a new post image, namespaced by
// the uploading actor.
func PostMediaPath(actorID string) string {
	return fmt.Sprintf("posts/%s/%d", actorID, time.Now().UnixMilli())
}

// AvatarPath returns the object path for a new profile picture.
func AvatarPath(actorID string) string {
	return fmt.Sprintf("profilePictures/%s/%d", actorID, time.Now().UnixMilli())
}
