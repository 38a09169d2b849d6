package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
)

// ErrNotFound is returned when the referenced document does not exist.
var ErrNotFound = errors.New("document not found")

// Op is a query filter operator.
type Op string

// Supported filter operators. Eq against an array-valued field matches
// membership, mirroring the backing store's equality semantics.
const (
	Eq  Op = "=="
	In  Op = "in"
	Gte Op = ">="
	Lte Op = "<="
)

// Filter restricts a query to documents whose field matches Value under Op.
type Filter struct {
	Field string
	Op    Op
	Value any
}

// Options controls query ordering and windowing. Sort names a single field;
// Desc reverses it. A zero Limit means no limit.
type Options struct {
	Sort  string
	Desc  bool
	Skip  int64
	Limit int64
}

// DocumentStore is the minimal adapter the repositories are built on.
// Documents travel as raw BSON; callers decode into their own types. Every
// mutating field operation is atomic per document; nothing spans documents.
type DocumentStore interface {
	Get(ctx context.Context, collection, id string) (bson.Raw, error)
	Set(ctx context.Context, collection, id string, doc any) error
	UpdateFields(ctx context.Context, collection, id string, fields map[string]any) error
	AddToSet(ctx context.Context, collection, id, field string, value any) error
	RemoveFromSet(ctx context.Context, collection, id, field string, value any) error
	Increment(ctx context.Context, collection, id string, deltas map[string]int64) error
	Delete(ctx context.Context, collection, id string) error
	Query(ctx context.Context, collection string, filters []Filter, opts Options) ([]bson.Raw, error)
}
