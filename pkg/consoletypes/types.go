// Package consoletypes defines the shared data model of the devconsole engine.
// This file contains the identity types used by the registries: type keys,
// command keys and target policies.
package consoletypes

import (
	"fmt"
	"reflect"
)

// TypeKey identifies the conversion and suggestion category of a value type.
// All enum types collapse to TypeKeyEnum.
type TypeKey string

const (
	// TypeKeyEnum is the shared key for every type implementing Enum.
	TypeKeyEnum TypeKey = "enum"
	// TypeKeyCommand selects the command-name suggestion provider.
	TypeKeyCommand TypeKey = "command"
)

var enumInterface = reflect.TypeOf((*Enum)(nil)).Elem()

// KeyOf returns the TypeKey for a declared Go type.
// Named types are keyed by their import path, so same-named types of different packages stay apart.
func KeyOf(t reflect.Type) TypeKey {
	if t == nil {
		return ""
	}
	if IsEnum(t) {
		return TypeKeyEnum
	}
	return TypeKey(TypeName(t))
}

// KeyFor is the generic form of KeyOf.
func KeyFor[T any]() TypeKey {
	return KeyOf(reflect.TypeFor[T]())
}

// KeyOfValue returns the TypeKey of a value's runtime type.
func KeyOfValue(v any) TypeKey {
	if v == nil {
		return ""
	}
	return KeyOf(reflect.TypeOf(v))
}

// IsEnum reports whether t implements Enum.
func IsEnum(t reflect.Type) bool {
	return t != nil && t.Implements(enumInterface)
}

// TypeName returns the fully-qualified name of t, e.g. "devconsole/internal/scene.Shape".
// Pointers to named types keep the qualified name; other unnamed types fall back to their Go type string.
func TypeName(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}
	if t.Kind() == reflect.Pointer && t.Name() == "" {
		return "*" + TypeName(t.Elem())
	}
	if t.Name() == "" || t.PkgPath() == "" {
		return t.String()
	}
	return t.PkgPath() + "." + t.Name()
}

// CommandKey uniquely identifies one overload in the command registry.
// It is comparable and can be used directly as a map key.
type CommandKey struct {
	Name  string
	Arity int
}

// NewCommandKey builds a CommandKey.
func NewCommandKey(name string, arity int) CommandKey {
	return CommandKey{Name: name, Arity: arity}
}

// String renders the key as "name/arity".
func (k CommandKey) String() string {
	return fmt.Sprintf("%s/%d", k.Name, k.Arity)
}

// TargetPolicy governs how many live host instances a non-static command applies to.
type TargetPolicy int

const (
	// TargetAll runs the command against every active instance.
	TargetAll TargetPolicy = iota
	// TargetSingle runs the command against exactly one active instance.
	TargetSingle
	// TargetSingleIncludeInactive is TargetSingle including inactive instances.
	TargetSingleIncludeInactive
	// TargetAllIncludeInactive is TargetAll including inactive instances.
	TargetAllIncludeInactive
)

// String returns the policy name.
func (p TargetPolicy) String() string {
	switch p {
	case TargetAll:
		return "All"
	case TargetSingle:
		return "Single"
	case TargetSingleIncludeInactive:
		return "SingleIncludeInactive"
	case TargetAllIncludeInactive:
		return "AllIncludeInactive"
	default:
		return fmt.Sprintf("TargetPolicy(%d)", int(p))
	}
}

// IsSingle reports whether the policy targets one instance.
func (p TargetPolicy) IsSingle() bool {
	return p == TargetSingle || p == TargetSingleIncludeInactive
}

// IncludesInactive reports whether inactive instances are eligible.
func (p TargetPolicy) IncludesInactive() bool {
	return p == TargetSingleIncludeInactive || p == TargetAllIncludeInactive
}

// DefaultGroup is used when a command declares no group.
const DefaultGroup = "Global"

// EnumValuesOf returns the members of an enum type, or nil when t is not an enum.
func EnumValuesOf(t reflect.Type) []Enum {
	if !IsEnum(t) {
		return nil
	}
	zero, ok := reflect.Zero(t).Interface().(Enum)
	if !ok {
		return nil
	}
	return zero.EnumValues()
}
