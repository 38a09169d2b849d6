package feed

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/pawsconnect/backend/internal/models"
	"github.com/pawsconnect/backend/internal/repositories"
	"github.com/redis/go-redis/v9"
)

// Service produces feed snapshots for a collection. Every call re-reads the
// stores, so consumers restart the sequence simply by calling again; a
// short-TTL Redis cache sits in front, and a nil or unreachable client
// degrades to uncached reads.
type Service struct {
	posts    repositories.PostRepository
	profiles repositories.ProfileRepository
	cache    *redis.Client
	ttl      time.Duration
}

// NewService creates a new feed Service
func NewService(posts repositories.PostRepository, profiles repositories.ProfileRepository, cache *redis.Client, ttl time.Duration) *Service {
	return &Service{posts: posts, profiles: profiles, cache: cache, ttl: ttl}
}

// Feed returns the collection's posts joined with fresh author profiles,
// newest first.
func (s *Service) Feed(ctx context.Context, collection string) ([]Item, error) {
	key := "feed:" + collection
	if items, ok := s.cached(ctx, key); ok {
		return items, nil
	}

	posts, err := s.posts.ListAll(ctx, collection)
	if err != nil {
		return nil, err
	}

	authors := make(map[string]Author)
	for _, post := range posts {
		if _, ok := authors[post.AuthorID]; ok {
			continue
		}
		if author, ok := s.lookupAuthor(ctx, post.AuthorID); ok {
			authors[post.AuthorID] = author
		}
	}

	items := Assemble(posts, authors)
	s.store(ctx, key, items)
	return items, nil
}

// Invalidate drops the cached snapshot for a collection after a write.
func (s *Service) Invalidate(ctx context.Context, collection string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, "feed:"+collection).Err(); err != nil {
		log.Printf("feed cache invalidate failed for %s: %v", collection, err)
	}
}

func (s *Service) lookupAuthor(ctx context.Context, authorID string) (Author, bool) {
	if shelter, err := s.profiles.GetShelter(ctx, authorID); err == nil {
		return Author{ID: authorID, Username: shelter.Username, ProfilePicture: shelter.ProfilePicture}, true
	}
	if user, err := s.profiles.GetUser(ctx, authorID); err == nil {
		return Author{ID: authorID, Username: user.Username, ProfilePicture: user.ProfilePicture}, true
	}
	return Author{}, false
}

func (s *Service) cached(ctx context.Context, key string) ([]Item, bool) {
	if s.cache == nil {
		return nil, false
	}
	payload, err := s.cache.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		log.Printf("feed cache read failed: %v", err)
		return nil, false
	}
	var items []Item
	if err := json.Unmarshal([]byte(payload), &items); err != nil {
		return nil, false
	}
	return items, true
}

func (s *Service) store(ctx context.Context, key string, items []Item) {
	if s.cache == nil {
		return
	}
	payload, err := json.Marshal(items)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, payload, s.ttl).Err(); err != nil {
		log.Printf("feed cache write failed: %v", err)
	}
}

// BookmarkedListings returns the user's bookmarked pet listings, newest
// first. Listings deleted since they were bookmarked are skipped.
func (s *Service) BookmarkedListings(ctx context.Context, profile *models.UserProfile) ([]Item, error) {
	posts, err := s.posts.ListByIDs(ctx, models.CollectionPetListing, profile.BookmarkedPets)
	if err != nil {
		return nil, err
	}
	authors := make(map[string]Author)
	for _, post := range posts {
		if _, ok := authors[post.AuthorID]; ok {
			continue
		}
		if author, ok := s.lookupAuthor(ctx, post.AuthorID); ok {
			authors[post.AuthorID] = author
		}
	}
	return Assemble(posts, authors), nil
}
