package convert

import (
	"errors"
	"math"
	"reflect"
	"testing"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"devconsole/pkg/consoletypes"
)

func TestBuiltins_RoundTrip(t *testing.T) {
	r := NewRegistry()

	tests := []struct {
		name  string
		value any
		text  string
	}{
		{name: "int8", value: int8(-128), text: "-128"},
		{name: "int16", value: int16(300), text: "300"},
		{name: "int32", value: int32(-7), text: "-7"},
		{name: "int64", value: int64(math.MaxInt64), text: "9223372036854775807"},
		{name: "int", value: 42, text: "42"},
		{name: "uint8", value: uint8(255), text: "255"},
		{name: "uint16", value: uint16(65535), text: "65535"},
		{name: "uint32", value: uint32(7), text: "7"},
		{name: "uint64", value: uint64(1 << 40), text: "1099511627776"},
		{name: "uint", value: uint(9), text: "9"},
		{name: "float32", value: float32(1.5), text: "1.5"},
		{name: "float64", value: 0.25, text: "0.25"},
		{name: "bool", value: true, text: "true"},
		{name: "string", value: "cube", text: "cube"},
		{name: "string with space", value: "New Object", text: `"New Object"`},
		{name: "duration", value: 90 * time.Second, text: "1m30s"},
		{name: "vector2", value: consoletypes.Vector2{X: 1, Y: -2}, text: "1,-2"},
		{name: "vector3", value: consoletypes.Vector3{X: 1, Y: 2, Z: 3}, text: "1,2,3"},
		{name: "vector4", value: consoletypes.Vector4{X: 0.5, Y: 1, Z: 2, W: 3}, text: "0.5,1,2,3"},
		{name: "vector2int", value: consoletypes.Vector2Int{X: 4, Y: 5}, text: "4,5"},
		{name: "vector3int", value: consoletypes.Vector3Int{X: -1, Y: 0, Z: 1}, text: "-1,0,1"},
		{name: "quaternion", value: consoletypes.Quaternion{W: 1}, text: "0,0,0,1"},
		{name: "color", value: consoletypes.Color{R: 1, G: 0.5, B: 0, A: 1}, text: "1,0.5,0,1"},
		{name: "rect", value: consoletypes.Rect{X: 0, Y: 0, Width: 10, Height: 20}, text: "0,0,10,20"},
		{
			name:  "bounds",
			value: consoletypes.Bounds{Center: consoletypes.Vector3{X: 1, Y: 2, Z: 3}, Size: consoletypes.Vector3{X: 4, Y: 5, Z: 6}},
			text:  "1,2,3,4,5,6",
		},
		{name: "enum", value: levelHigh, text: "High"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, err := r.Format(tt.value)
			require.NoError(t, err)
			assert.Equal(t, tt.text, text)

			back, err := r.Parse(text, reflect.TypeOf(tt.value))
			require.NoError(t, err)
			assert.Equal(t, tt.value, back)
		})
	}
}

func TestBuiltins_TimeRoundTrip(t *testing.T) {
	r := NewRegistry()
	now := time.Date(2024, 3, 14, 15, 9, 26, 535897932, time.UTC)

	text, err := r.Format(now)
	require.NoError(t, err)
	assert.Equal(t, "2024-03-14T15:09:26.535897932Z", text)

	back, err := r.Parse(text, reflect.TypeFor[time.Time]())
	require.NoError(t, err)
	assert.True(t, now.Equal(back.(time.Time)))
}

func TestBuiltins_UUIDAndSemver(t *testing.T) {
	r := NewRegistry()

	id := uuid.New()
	text, ok := r.ToString(id)
	require.True(t, ok)
	back, ok := r.FromString(text, reflect.TypeFor[uuid.UUID]())
	require.True(t, ok)
	assert.Equal(t, id, back)

	v := semver.MustParse("1.4.2")
	text, ok = r.ToString(v)
	require.True(t, ok)
	assert.Equal(t, "1.4.2", text)
	parsed, ok := r.FromString(text, reflect.TypeFor[*semver.Version]())
	require.True(t, ok)
	assert.True(t, v.Equal(parsed.(*semver.Version)))
}

func TestBuiltins_ParseEdgeCases(t *testing.T) {
	r := NewRegistry()

	tests := []struct {
		name    string
		text    string
		typ     reflect.Type
		want    any
		wantErr bool
	}{
		{name: "bool is case-insensitive", text: "TRUE", typ: reflect.TypeFor[bool](), want: true},
		{name: "bool rejects yes", text: "yes", typ: reflect.TypeFor[bool](), wantErr: true},
		{name: "int8 overflow", text: "200", typ: reflect.TypeFor[int8](), wantErr: true},
		{name: "uint rejects negative", text: "-1", typ: reflect.TypeFor[uint32](), wantErr: true},
		{name: "quoted token is not an int", text: `"5"`, typ: reflect.TypeFor[int](), wantErr: true},
		{name: "string strips quotes", text: `"New Object"`, typ: reflect.TypeFor[string](), want: "New Object"},
		{name: "quoted token is not a vector", text: `"1,2,3"`, typ: reflect.TypeFor[consoletypes.Vector3](), wantErr: true},
		{name: "quoted token is not an enum member", text: `"High"`, typ: reflect.TypeFor[level](), wantErr: true},
		{name: "quoted token is not a uuid", text: `"6ba7b810-9dad-11d1-80b4-00c04fd430c8"`, typ: reflect.TypeFor[uuid.UUID](), wantErr: true},
		{name: "quoted token is not a version", text: `"1.4.2"`, typ: reflect.TypeFor[*semver.Version](), wantErr: true},
		{name: "quoted token is not a time", text: `"2024-03-14T15:09:26Z"`, typ: reflect.TypeFor[time.Time](), wantErr: true},
		{name: "vector components are trimmed", text: "1, 2 ,3", typ: reflect.TypeFor[consoletypes.Vector3](), want: consoletypes.Vector3{X: 1, Y: 2, Z: 3}},
		{name: "vector component not a number", text: "1,a,3", typ: reflect.TypeFor[consoletypes.Vector3](), wantErr: true},
		{name: "int vector rejects fractions", text: "1.5,2", typ: reflect.TypeFor[consoletypes.Vector2Int](), wantErr: true},
		{name: "duration", text: "250ms", typ: reflect.TypeFor[time.Duration](), want: 250 * time.Millisecond},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := r.Parse(tt.text, tt.typ)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, v)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, v)
		})
	}
}

func TestBuiltins_TupleComponentCount(t *testing.T) {
	r := NewRegistry()

	tests := []struct {
		text     string
		typ      reflect.Type
		expected int
		got      int
	}{
		{text: "1,2", typ: reflect.TypeFor[consoletypes.Vector3](), expected: 3, got: 2},
		{text: "1,2,3", typ: reflect.TypeFor[consoletypes.Vector2](), expected: 2, got: 3},
		{text: "1,0,0", typ: reflect.TypeFor[consoletypes.Color](), expected: 4, got: 3},
		{text: "1,2,3,4,5", typ: reflect.TypeFor[consoletypes.Bounds](), expected: 6, got: 5},
	}

	for _, tt := range tests {
		t.Run(tt.typ.String(), func(t *testing.T) {
			_, err := r.Parse(tt.text, tt.typ)
			var formatErr *consoletypes.FormatError
			require.True(t, errors.As(err, &formatErr))
			assert.Equal(t, tt.expected, formatErr.Expected)
			assert.Equal(t, tt.got, formatErr.Got)
		})
	}
}

func TestFunc_FormatRejectsWrongType(t *testing.T) {
	c := Func(parseFloat32, formatFloat32)
	_, err := c.Format("not a float")
	assert.ErrorContains(t, err, "expected float32")
}
