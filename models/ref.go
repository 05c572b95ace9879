package models

import (
	"encoding/json"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Ref points at another document by id and optionally carries the resolved
// document. Unresolved refs marshal as the bare id, resolved ones as the
// document itself.
type Ref[T any] struct {
	ID  primitive.ObjectID
	Doc *T

	resolved bool
}

// NewRef returns an unresolved reference.
func NewRef[T any](id primitive.ObjectID) Ref[T] {
	return Ref[T]{ID: id}
}

// Resolve records the lookup outcome; doc is nil when the target is gone.
func (r *Ref[T]) Resolve(doc *T) {
	r.Doc = doc
	r.resolved = true
}

// Resolved reports whether a lookup already ran for this reference.
func (r Ref[T]) Resolved() bool {
	return r.resolved || r.Doc != nil
}

func (r Ref[T]) MarshalJSON() ([]byte, error) {
	if r.Doc != nil {
		return json.Marshal(r.Doc)
	}
	if r.resolved {
		return []byte("null"), nil
	}
	return json.Marshal(r.ID)
}
