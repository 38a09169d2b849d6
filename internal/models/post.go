package models

import (
	"strings"
	"time"
)

// Post collections. Each variant lives in its own collection, keeping the
// layout the mobile clients already depend on.
const (
	CollectionPetListing  = "petListing"
	CollectionFundraising = "fundraising"
	CollectionSuccess     = "success"
	CollectionPosts       = "posts"
)

// PostCollections lists every collection a post document may live in.
var PostCollections = []string{
	CollectionPetListing,
	CollectionFundraising,
	CollectionSuccess,
	CollectionPosts,
}

// IsPostCollection reports whether name is one of the post collections.
func IsPostCollection(name string) bool {
	for _, c := range PostCollections {
		if c == name {
			return true
		}
	}
	return false
}

// Pet listing adoption status values. Transitions follow the fixed cycle
// available -> pending adoption -> adopted -> available.
const (
	StatusAvailable = "available"
	StatusPending   = "pending adoption"
	StatusAdopted   = "adopted"
)

// NextStatus returns the successor of s in the adoption cycle. Anything
// outside the cycle resets to available.
func NextStatus(s string) string {
	switch s {
	case StatusAvailable:
		return StatusPending
	case StatusPending:
		return StatusAdopted
	default:
		return StatusAvailable
	}
}

// Post represents a feed post document. All four variants share this shape;
// the pet listing fields are populated only for documents in the petListing
// collection.
type Post struct {
	ID              string    `json:"id" bson:"_id"`
	AuthorID        string    `json:"author_id" bson:"author_id"`
	AuthorName      string    `json:"author_name" bson:"author_name"`
	AuthorAvatarURL string    `json:"author_avatar_url,omitempty" bson:"author_avatar_url,omitempty"`
	MediaURL        string    `json:"media_url" bson:"media_url"`
	Caption         string    `json:"caption,omitempty" bson:"caption,omitempty"`
	CreatedAt       time.Time `json:"created_at" bson:"created_at"`
	LikedBy         []string  `json:"liked_by" bson:"liked_by"`

	// Pet listing details.
	Name     string `json:"name,omitempty" bson:"name,omitempty"`
	Age      string `json:"age,omitempty" bson:"age,omitempty"`
	Sex      string `json:"sex,omitempty" bson:"sex,omitempty"`
	Species  string `json:"species,omitempty" bson:"species,omitempty"`
	Breed    string `json:"breed,omitempty" bson:"breed,omitempty"`
	Property string `json:"property,omitempty" bson:"property,omitempty"`
	Status   string `json:"status,omitempty" bson:"status,omitempty"`

	// Derived from the descriptive fields above; recomputed on every edit
	// of them. Never accepted from clients.
	SearchTokens []string `json:"-" bson:"search_tokens,omitempty"`
}

// LikeCount is the cardinality of likedBy; there is no separate counter.
func (p *Post) LikeCount() int { return len(p.LikedBy) }

// HasLiked reports whether actorID is currently in likedBy.
func (p *Post) HasLiked(actorID string) bool {
	for _, id := range p.LikedBy {
		if id == actorID {
			return true
		}
	}
	return false
}

// PetSearchTokens derives the search token set from the listing's current
// descriptive fields.
func (p *Post) PetSearchTokens() []string {
	return DeriveSearchTokens(p.Age, p.Name, p.Species, p.Sex, p.Breed, p.Property, p.Status)
}

// DeriveSearchTokens lower-cases and whitespace-tokenizes the given fields.
// Empty fields contribute nothing and duplicate tokens collapse, so the
// result is always tokenize(lower(join(fields))).
func DeriveSearchTokens(fields ...string) []string {
	seen := make(map[string]struct{})
	var tokens []string
	for _, f := range fields {
		for _, tok := range strings.Fields(strings.ToLower(f)) {
			if _, ok := seen[tok]; ok {
				continue
			}
			seen[tok] = struct{}{}
			tokens = append(tokens, tok)
		}
	}
	return tokens
}

// CreatePostRequest defines the request body for creating a new post. Media
// is uploaded first and referenced here by URL; the pet listing details are
// used only when posting to the petListing collection.
type CreatePostRequest struct {
	MediaURL string `json:"media_url" validate:"required,url"`
	Caption  string `json:"caption,omitempty" validate:"omitempty,max=500"`
	Name     string `json:"name,omitempty" validate:"omitempty,max=100"`
	Age      string `json:"age,omitempty" validate:"omitempty,max=50"`
	Sex      string `json:"sex,omitempty" validate:"omitempty,max=50"`
	Species  string `json:"species,omitempty" validate:"omitempty,max=100"`
	Breed    string `json:"breed,omitempty" validate:"omitempty,max=100"`
	Property string `json:"property,omitempty" validate:"omitempty,max=100"`
}

// UpdatePostRequest defines the request body for editing an existing post.
// Only the author may apply it; omitted fields are left untouched.
type UpdatePostRequest struct {
	Caption  *string `json:"caption,omitempty" validate:"omitempty,max=500"`
	Name     *string `json:"name,omitempty" validate:"omitempty,max=100"`
	Age      *string `json:"age,omitempty" validate:"omitempty,max=50"`
	Sex      *string `json:"sex,omitempty" validate:"omitempty,max=50"`
	Species  *string `json:"species,omitempty" validate:"omitempty,max=100"`
	Breed    *string `json:"breed,omitempty" validate:"omitempty,max=100"`
	Property *string `json:"property,omitempty" validate:"omitempty,max=100"`
}

// Fields flattens the request into a partial-update map.
func (r *UpdatePostRequest) Fields() map[string]any {
	fields := make(map[string]any)
	set := func(key string, v *string) {
		if v != nil {
			fields[key] = *v
		}
	}
	set("caption", r.Caption)
	set("name", r.Name)
	set("age", r.Age)
	set("sex", r.Sex)
	set("species", r.Species)
	set("breed", r.Breed)
	set("property", r.Property)
	return fields
}
