package feed

import (
	"sort"

	"github.com/pawsconnect/backend/internal/models"
)

// Author is the fresh profile snapshot joined onto a feed item at read
// time, in preference to the denormalized copy on the post.
type Author struct {
	ID             string `json:"id"`
	Username       string `json:"username"`
	ProfilePicture string `json:"profile_picture,omitempty"`
}

// Item is a post joined with its author.
type Item struct {
	models.Post
	Author    Author `json:"author"`
	LikeCount int    `json:"like_count"`
}

// Assemble joins posts with author profiles and orders them newest first.
// Ties on creation time break on id ascending so the order is stable across
// snapshots. A post whose author has no current profile keeps its
// denormalized snapshot.
func Assemble(posts []models.Post, authors map[string]Author) []Item {
	items := make([]Item, len(posts))
	for i, post := range posts {
		author, ok := authors[post.AuthorID]
		if !ok {
			author = Author{ID: post.AuthorID, Username: post.AuthorName, ProfilePicture: post.AuthorAvatarURL}
		}
		items[i] = Item{Post: post, Author: author, LikeCount: post.LikeCount()}
	}
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].ID < items[j].ID
		}
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	return items
}
