package chat

import (
	"context"
	"fmt"
	"sync"

	"github.com/pawsconnect/backend/internal/models"
)

// MemoryChannel implements Channel in process, for tests.
type MemoryChannel struct {
	mu      sync.Mutex
	next    int
	entries map[string]map[string]models.Message
}

// NewMemoryChannel creates an empty MemoryChannel.
func NewMemoryChannel() *MemoryChannel {
	return &MemoryChannel{entries: make(map[string]map[string]models.Message)}
}

// Push appends value under path with a monotonically increasing key.
func (c *MemoryChannel) Push(ctx context.Context, path string, value any) (string, error) {
	msg, ok := value.(models.Message)
	if !ok {
		return "", fmt.Errorf("unsupported value type %T", value)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.next++
	key := fmt.Sprintf("m%06d", c.next)
	if c.entries[path] == nil {
		c.entries[path] = make(map[string]models.Message)
	}
	c.entries[path][key] = msg
	return key, nil
}

// List returns a copy of everything stored under path.
func (c *MemoryChannel) List(ctx context.Context, path string) (map[string]models.Message, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(map[string]models.Message, len(c.entries[path]))
	for key, msg := range c.entries[path] {
		out[key] = msg
	}
	return out, nil
}
