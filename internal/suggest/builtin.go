package suggest

import (
	"reflect"
	"sort"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/google/uuid"

	"devconsole/pkg/consoletypes"
)

// Builtins returns the default providers for every built-in converter type.
func Builtins() []consoletypes.SuggestionProvider {
	return []consoletypes.SuggestionProvider{
		Literal[int8]("0"),
		Literal[int16]("0"),
		Literal[int32]("0"),
		Literal[int64]("0"),
		Literal[int]("0"),
		Literal[uint8]("0"),
		Literal[uint16]("0"),
		Literal[uint32]("0"),
		Literal[uint64]("0"),
		Literal[uint]("0"),
		Literal[float32]("0.0"),
		Literal[float64]("0.0"),
		Literal[string]("text"),
		Literal[time.Duration]("1s"),
		Literal[*semver.Version]("1.0.0"),
		Literal[consoletypes.Vector2]("0.0,0.0"),
		Literal[consoletypes.Vector3]("0.0,0.0,0.0"),
		Literal[consoletypes.Vector4]("0.0,0.0,0.0,0.0"),
		Literal[consoletypes.Vector2Int]("0,0"),
		Literal[consoletypes.Vector3Int]("0,0,0"),
		Literal[consoletypes.Quaternion]("0.0,0.0,0.0,1.0"),
		Literal[consoletypes.Color]("0.0,0.0,0.0,1.0"),
		Literal[consoletypes.Rect]("0.0,0.0,0.0,0.0"),
		Literal[consoletypes.Bounds]("0.0,0.0,0.0,0.0,0.0,0.0"),
		Func[bool](func(partial string) []string {
			return FilterPrefix([]string{"true", "false"}, partial)
		}),
		Func[time.Time](func(string) []string {
			return []string{time.Now().UTC().Format(time.RFC3339)}
		}),
		Func[uuid.UUID](func(string) []string {
			return []string{uuid.NewString()}
		}),
		EnumProvider{},
	}
}

// funcProvider serves the key of T from a function of the partial input.
type funcProvider[T any] struct {
	suggest func(partial string) []string
}

// Func builds a provider keyed by T.
func Func[T any](fn func(partial string) []string) consoletypes.SuggestionProvider {
	return &funcProvider[T]{suggest: fn}
}

// Literal builds a provider keyed by T that always offers the same values.
func Literal[T any](values ...string) consoletypes.SuggestionProvider {
	return Func[T](func(string) []string {
		out := make([]string, len(values))
		copy(out, values)
		return out
	})
}

func (p *funcProvider[T]) Key() consoletypes.TypeKey {
	return consoletypes.KeyFor[T]()
}

func (p *funcProvider[T]) Suggest(_ reflect.Type, partial string) []string {
	return p.suggest(partial)
}

// EnumProvider offers the members of the concrete enum type it is asked about.
type EnumProvider struct{}

// Key returns consoletypes.TypeKeyEnum.
func (EnumProvider) Key() consoletypes.TypeKey {
	return consoletypes.TypeKeyEnum
}

// Suggest returns member names of target starting with partial, sorted.
func (EnumProvider) Suggest(target reflect.Type, partial string) []string {
	values := consoletypes.EnumValuesOf(target)
	names := make([]string, len(values))
	for i, v := range values {
		names[i] = v.String()
	}
	return FilterPrefix(names, partial)
}

// FilterPrefix returns the candidates starting with partial, ignoring case, sorted lexicographically.
func FilterPrefix(candidates []string, partial string) []string {
	lower := strings.ToLower(partial)
	matches := make([]string, 0, len(candidates))
	for _, c := range candidates {
		if strings.HasPrefix(strings.ToLower(c), lower) {
			matches = append(matches, c)
		}
	}
	sort.Strings(matches)
	return matches
}
