package media

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// MemoryStorage implements Storage in process, for tests.
type MemoryStorage struct {
	mu      sync.Mutex
	objects map[string][]byte
}

// NewMemoryStorage creates an empty MemoryStorage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{objects: make(map[string][]byte)}
}

// Upload stores the bytes and returns a mem:// URL for the path.
func (s *MemoryStorage) Upload(ctx context.Context, path string, data []byte, contentType string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[path] = append([]byte(nil), data...)
	return "mem://" + path, nil
}

// Delete removes a previously uploaded object.
func (s *MemoryStorage) Delete(ctx context.Context, url string) error {
	path := strings.TrimPrefix(url, "mem://")
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.objects[path]; !ok {
		return fmt.Errorf("object %q not found", path)
	}
	delete(s.objects, path)
	return nil
}

// Has reports whether an object exists for the URL.
func (s *MemoryStorage) Has(url string) bool {
	path := strings.TrimPrefix(url, "mem://")
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.objects[path]
	return ok
}
