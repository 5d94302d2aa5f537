package consoletypes

import (
	"fmt"
	"reflect"
)

// Converter is a bidirectional string/value codec registered under one TypeKey.
type Converter interface {
	// Key returns the TypeKey this converter serves.
	Key() TypeKey
	// Parse converts text into a value of the target type.
	Parse(text string, target reflect.Type) (any, error)
	// Format renders a value back into its wire text.
	Format(value any) (string, error)
}

// SuggestionProvider returns completion candidates for one TypeKey.
// Providers keyed by TypeKeyEnum receive the concrete enum type as target.
type SuggestionProvider interface {
	Key() TypeKey
	Suggest(target reflect.Type, partial string) []string
}

// TargetResolver finds the live instances a non-static command runs against.
// The returned slice may be empty.
type TargetResolver interface {
	Resolve(owner reflect.Type, policy TargetPolicy) []any
}

// TargetResolverFunc adapts a function to TargetResolver.
type TargetResolverFunc func(owner reflect.Type, policy TargetPolicy) []any

// Resolve calls f.
func (f TargetResolverFunc) Resolve(owner reflect.Type, policy TargetPolicy) []any {
	return f(owner, policy)
}

// Enum is implemented by host types whose values form a closed, named set.
// EnumValues must be callable on the zero value.
type Enum interface {
	fmt.Stringer
	EnumValues() []Enum
}
