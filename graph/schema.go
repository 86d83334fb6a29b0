package graph

import "fmt"

// Reducer merges an incoming channel value into the previous one and returns
// the merged result. Reducers are pure: they never mutate their inputs.
type Reducer func(prev, incoming any) any

// ChannelSpec declares how one state channel behaves.
//
// Reducer and Default are fixed at schema construction; nodes cannot change
// merge semantics at runtime. Decode is optional and only consulted by
// persistent checkpoint stores that need to restore a typed value from its
// JSON encoding.
type ChannelSpec struct {
	Reducer Reducer
	Default func() any
	Decode  func(data []byte) (any, error)
}

// Schema is the fixed set of channels a graph's state carries. Every state
// snapshot created from a schema holds exactly these channels, seeded with
// their defaults.
type Schema struct {
	channels map[string]ChannelSpec
}

// NewSchema creates a Schema from channel specs. Every channel must declare
// a reducer; Default and Decode may be nil.
func NewSchema(channels map[string]ChannelSpec) (*Schema, error) {
	if len(channels) == 0 {
		return nil, fmt.Errorf("schema has no channels")
	}

	for name, spec := range channels {
		if name == "" {
			return nil, fmt.Errorf("channel name cannot be empty")
		}
		if spec.Reducer == nil {
			return nil, fmt.Errorf("channel %s has no reducer", name)
		}
	}

	// Copy so callers cannot mutate the schema after construction.
	owned := make(map[string]ChannelSpec, len(channels))
	for name, spec := range channels {
		owned[name] = spec
	}

	return &Schema{channels: owned}, nil
}

// Has reports whether the schema declares the named channel.
func (s *Schema) Has(name string) bool {
	_, exists := s.channels[name]
	return exists
}

func (s *Schema) defaults() map[string]any {
	data := make(map[string]any, len(s.channels))
	for name, spec := range s.channels {
		if spec.Default != nil {
			data[name] = spec.Default()
		} else {
			data[name] = nil
		}
	}
	return data
}

// AppendSlice returns an append-only reducer for []T channels. Incoming
// elements are concatenated after the previous ones; prior elements are never
// dropped or reordered. Both a single T and a []T are accepted as incoming
// values. A nil incoming value keeps the previous slice.
func AppendSlice[T any]() Reducer {
	return func(prev, incoming any) any {
		prevSlice, _ := prev.([]T)

		switch inc := incoming.(type) {
		case nil:
			return prevSlice
		case []T:
			merged := make([]T, 0, len(prevSlice)+len(inc))
			merged = append(merged, prevSlice...)
			merged = append(merged, inc...)
			return merged
		case T:
			merged := make([]T, 0, len(prevSlice)+1)
			merged = append(merged, prevSlice...)
			merged = append(merged, inc)
			return merged
		default:
			return prevSlice
		}
	}
}

// LastValue returns an overwrite-if-present reducer: a non-empty incoming
// value replaces the previous one, while nil or an empty string keeps it.
// Channels not named in an update are untouched regardless of reducer.
func LastValue() Reducer {
	return func(prev, incoming any) any {
		if incoming == nil {
			return prev
		}
		if s, ok := incoming.(string); ok && s == "" {
			return prev
		}
		return incoming
	}
}
