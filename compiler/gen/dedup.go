package gen

import (
	"slices"
	"strings"

	"github.com/syssam/valgen/hashing"
)

// GenerationRequest asks for a utility type named ClassName with helpers for
// the listed value types. Two requests are equal when their class names are
// equal and their type lists are equal element by element, in order.
type GenerationRequest struct {
	ClassName string
	Types     []string
	// Origin is where the request was declared. It takes no part in equality.
	Origin string
}

// Equal reports whether r and other request the same utility.
func (r GenerationRequest) Equal(other GenerationRequest) bool {
	return r.ClassName == other.ClassName && slices.Equal(r.Types, other.Types)
}

// Hash folds the type names into the class name hash with the 31 multiplier.
// A request without types hashes to the class name hash.
func (r GenerationRequest) Hash() int32 {
	return hashing.Fold(hashing.String(r.ClassName), r.Types, hashing.String)
}

// String renders the request as ClassName[A, B].
func (r GenerationRequest) String() string {
	return r.ClassName + "[" + strings.Join(r.Types, ", ") + "]"
}

// Registry deduplicates the generation requests of one round. Requests are
// kept in arrival order; a structurally equal request is accepted once.
type Registry struct {
	buckets  map[int32][]int
	names    map[string]int
	requests []GenerationRequest
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		buckets: make(map[int32][]int),
		names:   make(map[string]int),
	}
}

// Add registers req and reports whether it was not seen before. A request
// reusing the class name of an earlier request with a different type list is
// still registered, and a ConflictError warning is reported to sink.
func (r *Registry) Add(req GenerationRequest, sink Sink) bool {
	h := req.Hash()
	for _, i := range r.buckets[h] {
		if r.requests[i].Equal(req) {
			return false
		}
	}
	if i, ok := r.names[req.ClassName]; ok {
		if sink != nil {
			err := NewConflictError(req.ClassName, r.requests[i].Types, req.Types)
			sink.Report(Diagnostic{Severity: SeverityWarning, Pos: req.Origin, Type: req.ClassName, Message: err.Error(), Err: err})
		}
	} else {
		r.names[req.ClassName] = len(r.requests)
	}
	r.buckets[h] = append(r.buckets[h], len(r.requests))
	r.requests = append(r.requests, req)
	return true
}

// Contains reports whether an equal request was registered.
func (r *Registry) Contains(req GenerationRequest) bool {
	for _, i := range r.buckets[req.Hash()] {
		if r.requests[i].Equal(req) {
			return true
		}
	}
	return false
}

// Requests returns the distinct requests in arrival order.
func (r *Registry) Requests() []GenerationRequest {
	return slices.Clone(r.requests)
}

// Len returns the number of distinct requests.
func (r *Registry) Len() int { return len(r.requests) }
