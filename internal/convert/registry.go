// Package convert provides the value conversion registry of devconsole.
// It maps type keys to bidirectional string/value codecs and converts raw argument
// tokens into the typed values a command declares.
package convert

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"sync"

	"devconsole/internal/logger"
	"devconsole/pkg/consoletypes"
)

var log = logger.NewStyledLogger("convert")

// Registry manages converter registration and lookup by TypeKey.
// It is safe for concurrent use; after Freeze it rejects further registration.
type Registry struct {
	mu            sync.RWMutex
	converters    map[consoletypes.TypeKey]consoletypes.Converter
	allowOverride bool
	builtins      bool
	frozen        bool
}

// Option configures a Registry.
type Option func(*Registry)

// WithOverride lets a later registration replace an existing converter for the same key.
func WithOverride(allow bool) Option {
	return func(r *Registry) {
		r.allowOverride = allow
	}
}

// WithoutBuiltins creates the registry empty.
func WithoutBuiltins() Option {
	return func(r *Registry) {
		r.builtins = false
	}
}

// NewRegistry creates a converter registry populated with the built-in converters.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		converters: make(map[consoletypes.TypeKey]consoletypes.Converter),
		builtins:   true,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.builtins {
		for _, c := range Builtins() {
			_ = r.Register(c)
		}
	}
	return r
}

// Register adds a converter under its key.
// A collision is logged and rejected with a DuplicateRegistrationError unless overrides are allowed.
func (r *Registry) Register(c consoletypes.Converter) error {
	if c == nil {
		return fmt.Errorf("converter cannot be nil")
	}
	key := c.Key()
	if key == "" {
		return fmt.Errorf("converter %T has an empty type key", c)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.frozen {
		return consoletypes.ErrRegistryFrozen
	}

	if _, exists := r.converters[key]; exists {
		if !r.allowOverride {
			err := &consoletypes.DuplicateRegistrationError{Kind: "converter", Key: string(key)}
			log.Warn("Converter registration rejected", "key", key, "error", err)
			return err
		}
		log.Debug("Converter overridden", "key", key)
	}

	r.converters[key] = c
	log.Debug("Registered", "kind", "converter", "key", string(key))
	return nil
}

// Lookup returns the converter registered for key.
func (r *Registry) Lookup(key consoletypes.TypeKey) (consoletypes.Converter, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.converters[key]
	return c, ok
}

// Supports reports whether a converter exists for t.
func (r *Registry) Supports(t reflect.Type) bool {
	_, ok := r.Lookup(consoletypes.KeyOf(t))
	return ok
}

// Keys returns the registered type keys in sorted order.
func (r *Registry) Keys() []consoletypes.TypeKey {
	r.mu.RLock()
	defer r.mu.RUnlock()

	keys := make([]consoletypes.TypeKey, 0, len(r.converters))
	for k := range r.converters {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// Len returns the number of registered converters.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.converters)
}

// Freeze makes the registry read-only.
func (r *Registry) Freeze() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.frozen = true
}

// Format renders v with the converter for its runtime type.
func (r *Registry) Format(v any) (s string, err error) {
	if v == nil {
		return "", &consoletypes.NoConverterError{Type: "<nil>"}
	}
	t := reflect.TypeOf(v)
	c, ok := r.Lookup(consoletypes.KeyOf(t))
	if !ok {
		return "", &consoletypes.NoConverterError{Type: consoletypes.TypeName(t)}
	}

	defer func() {
		if p := recover(); p != nil {
			err = &consoletypes.ConversionError{Type: consoletypes.TypeName(t), Err: fmt.Errorf("panic: %v", p)}
		}
	}()

	s, err = c.Format(v)
	if err != nil {
		return "", wrapConversion("", t, err)
	}
	return s, nil
}

// ToString is the reporting form of Format: failures are logged and yield ok == false.
func (r *Registry) ToString(v any) (string, bool) {
	s, err := r.Format(v)
	if err != nil {
		log.Warn("Failed to convert value to string", "type", fmt.Sprintf("%T", v), "error", err)
		return "", false
	}
	return s, true
}

// Parse converts text into a value of type t.
// Enum destinations receive the text as "<type name>:<text>".
func (r *Registry) Parse(text string, t reflect.Type) (v any, err error) {
	if t == nil {
		return nil, fmt.Errorf("destination type cannot be nil")
	}
	key := consoletypes.KeyOf(t)
	c, ok := r.Lookup(key)
	if !ok {
		return nil, &consoletypes.NoConverterError{Type: consoletypes.TypeName(t)}
	}
	if key == consoletypes.TypeKeyEnum {
		text = consoletypes.TypeName(t) + ":" + text
	}

	defer func() {
		if p := recover(); p != nil {
			v = nil
			err = &consoletypes.ConversionError{Text: text, Type: consoletypes.TypeName(t), Err: fmt.Errorf("panic: %v", p)}
		}
	}()

	v, err = c.Parse(text, t)
	if err != nil {
		return nil, wrapConversion(text, t, err)
	}
	if v != nil && !reflect.TypeOf(v).AssignableTo(t) {
		return nil, &consoletypes.ConversionError{
			Text: text,
			Type: consoletypes.TypeName(t),
			Err:  fmt.Errorf("converter returned %T", v),
		}
	}
	return v, nil
}

// FromString is the reporting form of Parse: failures are logged and yield ok == false.
func (r *Registry) FromString(text string, t reflect.Type) (any, bool) {
	v, err := r.Parse(text, t)
	if err != nil {
		log.Debug("Failed to convert string", "text", text, "error", err)
		return nil, false
	}
	return v, true
}

// ConvertArguments converts tokens pairwise into the given types.
// It is all-or-nothing: the first failure aborts and no partial result is returned.
func (r *Registry) ConvertArguments(tokens []string, types []reflect.Type) ([]any, error) {
	if len(tokens) != len(types) {
		return nil, fmt.Errorf("argument count mismatch: %d tokens for %d parameters", len(tokens), len(types))
	}

	values := make([]any, len(tokens))
	for i, token := range tokens {
		v, err := r.Parse(token, types[i])
		if err != nil {
			return nil, fmt.Errorf("argument %d: %w", i+1, err)
		}
		values[i] = v
	}
	return values, nil
}

// wrapConversion keeps typed conversion errors as they are and wraps anything else.
func wrapConversion(text string, t reflect.Type, err error) error {
	var convErr *consoletypes.ConversionError
	var formatErr *consoletypes.FormatError
	if errors.As(err, &convErr) || errors.As(err, &formatErr) {
		return err
	}
	return &consoletypes.ConversionError{Text: text, Type: consoletypes.TypeName(t), Err: err}
}
