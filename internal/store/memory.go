package store

import (
	"context"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryStore implements DocumentStore on in-process maps. It mirrors the
// MongoStore semantics (set-add without duplicates, dotted-path increments,
// array-membership equality) and is what the tests run against.
type MemoryStore struct {
	mu          sync.RWMutex
	collections map[string]map[string]map[string]any
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{collections: make(map[string]map[string]map[string]any)}
}

func (s *MemoryStore) Get(ctx context.Context, collection, id string) (bson.Raw, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.collections[collection][id]
	if !ok {
		return nil, ErrNotFound
	}
	return bson.Marshal(doc)
}

func (s *MemoryStore) Set(ctx context.Context, collection, id string, doc any) error {
	m, err := toDoc(doc)
	if err != nil {
		return err
	}
	m["_id"] = id
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.collections[collection] == nil {
		s.collections[collection] = make(map[string]map[string]any)
	}
	s.collections[collection][id] = m
	return nil
}

func (s *MemoryStore) UpdateFields(ctx context.Context, collection, id string, fields map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.collections[collection][id]
	if !ok {
		return ErrNotFound
	}
	for field, value := range fields {
		parent, key := resolvePath(doc, field)
		parent[key] = normalize(value)
	}
	return nil
}

func (s *MemoryStore) AddToSet(ctx context.Context, collection, id, field string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.collections[collection][id]
	if !ok {
		return ErrNotFound
	}
	parent, key := resolvePath(doc, field)
	value = normalize(value)
	arr, _ := parent[key].([]any)
	for _, existing := range arr {
		if reflect.DeepEqual(existing, value) {
			return nil
		}
	}
	parent[key] = append(arr, value)
	return nil
}

func (s *MemoryStore) RemoveFromSet(ctx context.Context, collection, id, field string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.collections[collection][id]
	if !ok {
		return ErrNotFound
	}
	parent, key := resolvePath(doc, field)
	value = normalize(value)
	arr, _ := parent[key].([]any)
	kept := arr[:0]
	for _, existing := range arr {
		if !reflect.DeepEqual(existing, value) {
			kept = append(kept, existing)
		}
	}
	parent[key] = kept
	return nil
}

func (s *MemoryStore) Increment(ctx context.Context, collection, id string, deltas map[string]int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.collections[collection][id]
	if !ok {
		return ErrNotFound
	}
	for field, delta := range deltas {
		parent, key := resolvePath(doc, field)
		current, ok := asInt64(parent[key])
		if !ok && parent[key] != nil {
			return fmt.Errorf("field %q is not numeric", field)
		}
		parent[key] = current + delta
	}
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, collection, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.collections[collection][id]; !ok {
		return ErrNotFound
	}
	delete(s.collections[collection], id)
	return nil
}

func (s *MemoryStore) Query(ctx context.Context, collection string, filters []Filter, opts Options) ([]bson.Raw, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var matched []map[string]any
	for _, doc := range s.collections[collection] {
		if matchesAll(doc, filters) {
			matched = append(matched, doc)
		}
	}

	sortField := opts.Sort
	if sortField == "" {
		// Map iteration order is random; fall back to id order so unsorted
		// queries stay deterministic.
		sortField = "_id"
	}
	sort.SliceStable(matched, func(i, j int) bool {
		cmp := compareValues(lookupPath(matched[i], sortField), lookupPath(matched[j], sortField))
		if opts.Desc && opts.Sort != "" {
			return cmp > 0
		}
		return cmp < 0
	})

	if opts.Skip > 0 {
		if opts.Skip >= int64(len(matched)) {
			matched = nil
		} else {
			matched = matched[opts.Skip:]
		}
	}
	if opts.Limit > 0 && int64(len(matched)) > opts.Limit {
		matched = matched[:opts.Limit]
	}

	docs := make([]bson.Raw, 0, len(matched))
	for _, doc := range matched {
		raw, err := bson.Marshal(doc)
		if err != nil {
			return nil, err
		}
		docs = append(docs, raw)
	}
	return docs, nil
}

func matchesAll(doc map[string]any, filters []Filter) bool {
	for _, f := range filters {
		if !matches(lookupPath(doc, f.Field), f) {
			return false
		}
	}
	return true
}

func matches(got any, f Filter) bool {
	switch f.Op {
	case Eq:
		return equalOrContains(got, normalize(f.Value))
	case In:
		candidates := reflect.ValueOf(f.Value)
		if candidates.Kind() != reflect.Slice {
			return false
		}
		for i := 0; i < candidates.Len(); i++ {
			if equalOrContains(got, normalize(candidates.Index(i).Interface())) {
				return true
			}
		}
		return false
	case Gte:
		return compareValues(got, normalize(f.Value)) >= 0
	case Lte:
		return compareValues(got, normalize(f.Value)) <= 0
	default:
		return false
	}
}

// equalOrContains applies equality, treating an array-valued field as a
// membership test the way the document store does.
func equalOrContains(got, want any) bool {
	if arr, ok := got.([]any); ok {
		for _, elem := range arr {
			if reflect.DeepEqual(elem, want) {
				return true
			}
		}
		return false
	}
	return reflect.DeepEqual(got, want)
}

// toDoc converts an arbitrary document into nested map[string]any form via
// a BSON round-trip, so stored values carry the same types the real backend
// would hand back.
func toDoc(v any) (map[string]any, error) {
	b, err := bson.Marshal(v)
	if err != nil {
		return nil, err
	}
	var d bson.D
	if err := bson.Unmarshal(b, &d); err != nil {
		return nil, err
	}
	return fromD(d), nil
}

func fromD(d bson.D) map[string]any {
	m := make(map[string]any, len(d))
	for _, e := range d {
		m[e.Key] = fromValue(e.Value)
	}
	return m
}

func fromValue(v any) any {
	switch t := v.(type) {
	case bson.D:
		return fromD(t)
	case primitive.A:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = fromValue(e)
		}
		return out
	default:
		return v
	}
}

// resolvePath walks a dotted field path, creating intermediate documents,
// and returns the parent map plus the final key.
func resolvePath(doc map[string]any, path string) (map[string]any, string) {
	parts := strings.Split(path, ".")
	for _, part := range parts[:len(parts)-1] {
		next, ok := doc[part].(map[string]any)
		if !ok {
			next = make(map[string]any)
			doc[part] = next
		}
		doc = next
	}
	return doc, parts[len(parts)-1]
}

func lookupPath(doc map[string]any, path string) any {
	parts := strings.Split(path, ".")
	var current any = doc
	for _, part := range parts {
		m, ok := current.(map[string]any)
		if !ok {
			return nil
		}
		current = m[part]
	}
	return current
}

// normalize maps Go values onto the types a BSON round-trip would produce,
// so filter values compare cleanly against stored ones.
func normalize(v any) any {
	switch t := v.(type) {
	case time.Time:
		return primitive.NewDateTimeFromTime(t)
	case int:
		return int64(t)
	case int32:
		return int64(t)
	case []string:
		out := make([]any, len(t))
		for i, s := range t {
			out[i] = s
		}
		return out
	default:
		return v
	}
}

func asInt64(v any) (int64, bool) {
	switch t := v.(type) {
	case int64:
		return t, true
	case int32:
		return int64(t), true
	case int:
		return int64(t), true
	case float64:
		return int64(t), true
	default:
		return 0, false
	}
}

func asFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case int64:
		return float64(t), true
	case int32:
		return float64(t), true
	case int:
		return float64(t), true
	case float64:
		return t, true
	case primitive.DateTime:
		return float64(t), true
	default:
		return 0, false
	}
}

func compareValues(a, b any) int {
	if af, ok := asFloat(a); ok {
		if bf, ok := asFloat(b); ok {
			switch {
			case af < bf:
				return -1
			case af > bf:
				return 1
			default:
				return 0
			}
		}
	}
	as, aok := a.(string)
	bs, bok := b.(string)
	if aok && bok {
		return strings.Compare(as, bs)
	}
	return 0
}
