package convert

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/google/uuid"

	"devconsole/internal/parser"
	"devconsole/pkg/consoletypes"
)

// Builtins returns a fresh set of the converters every registry starts with.
func Builtins() []consoletypes.Converter {
	return []consoletypes.Converter{
		Func(parseInt[int8](8), formatInt[int8]),
		Func(parseInt[int16](16), formatInt[int16]),
		Func(parseInt[int32](32), formatInt[int32]),
		Func(parseInt[int64](64), formatInt[int64]),
		Func(parseInt[int](strconv.IntSize), formatInt[int]),
		Func(parseUint[uint8](8), formatUint[uint8]),
		Func(parseUint[uint16](16), formatUint[uint16]),
		Func(parseUint[uint32](32), formatUint[uint32]),
		Func(parseUint[uint64](64), formatUint[uint64]),
		Func(parseUint[uint](strconv.IntSize), formatUint[uint]),
		Func(parseFloat32, formatFloat32),
		Func(parseFloat64, formatFloat64),
		Func(parseBool, strconv.FormatBool),
		Func(parseString, parser.Quote),
		Func(parseTime, formatTime),
		Func(time.ParseDuration, time.Duration.String),
		Func(parseUUID, uuid.UUID.String),
		Func(parseSemver, formatSemver),
		Func(parseVector2, formatVector2),
		Func(parseVector3, formatVector3),
		Func(parseVector4, formatVector4),
		Func(parseVector2Int, formatVector2Int),
		Func(parseVector3Int, formatVector3Int),
		Func(parseQuaternion, formatQuaternion),
		Func(parseColor, formatColor),
		Func(parseRect, formatRect),
		Func(parseBounds, formatBounds),
		EnumConverter{},
	}
}

// funcConverter adapts a typed parse/format pair to consoletypes.Converter.
type funcConverter[T any] struct {
	parse  func(string) (T, error)
	format func(T) string
}

// Func builds a converter keyed by T from a parse and a format function.
func Func[T any](parse func(string) (T, error), format func(T) string) consoletypes.Converter {
	return &funcConverter[T]{parse: parse, format: format}
}

func (c *funcConverter[T]) Key() consoletypes.TypeKey {
	return consoletypes.KeyFor[T]()
}

func (c *funcConverter[T]) Parse(text string, _ reflect.Type) (any, error) {
	v, err := c.parse(text)
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (c *funcConverter[T]) Format(value any) (string, error) {
	v, ok := value.(T)
	if !ok {
		return "", fmt.Errorf("expected %s, got %T", reflect.TypeFor[T](), value)
	}
	return c.format(v), nil
}

type signed interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64
}

type unsigned interface {
	~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

func parseInt[T signed](bits int) func(string) (T, error) {
	return func(text string) (T, error) {
		n, err := strconv.ParseInt(strings.TrimSpace(text), 10, bits)
		if err != nil {
			return 0, err
		}
		return T(n), nil
	}
}

func formatInt[T signed](v T) string {
	return strconv.FormatInt(int64(v), 10)
}

func parseUint[T unsigned](bits int) func(string) (T, error) {
	return func(text string) (T, error) {
		n, err := strconv.ParseUint(strings.TrimSpace(text), 10, bits)
		if err != nil {
			return 0, err
		}
		return T(n), nil
	}
}

func formatUint[T unsigned](v T) string {
	return strconv.FormatUint(uint64(v), 10)
}

func parseFloat32(text string) (float32, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(text), 32)
	if err != nil {
		return 0, err
	}
	return float32(f), nil
}

func formatFloat32(v float32) string {
	return strconv.FormatFloat(float64(v), 'g', -1, 32)
}

func parseFloat64(text string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(text), 64)
}

func formatFloat64(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func parseBool(text string) (bool, error) {
	switch {
	case strings.EqualFold(strings.TrimSpace(text), "true"):
		return true, nil
	case strings.EqualFold(strings.TrimSpace(text), "false"):
		return false, nil
	default:
		return false, fmt.Errorf("expected true or false")
	}
}

func parseString(text string) (string, error) {
	return parser.Unquote(text), nil
}

func parseTime(text string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, text)
}

func formatTime(t time.Time) string {
	return t.Format(time.RFC3339Nano)
}

func parseUUID(text string) (uuid.UUID, error) {
	return uuid.Parse(text)
}

func parseSemver(text string) (*semver.Version, error) {
	return semver.NewVersion(text)
}

func formatSemver(v *semver.Version) string {
	if v == nil {
		return ""
	}
	return v.String()
}
