package convert

import (
	"strconv"
	"strings"

	"devconsole/pkg/consoletypes"
)

// components splits comma-joined tuple text and checks the component count.
func components(text, typeName string, n int) ([]string, error) {
	parts := strings.Split(text, ",")
	if len(parts) != n {
		return nil, &consoletypes.FormatError{Text: text, Type: typeName, Expected: n, Got: len(parts)}
	}
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts, nil
}

func floats(text, typeName string, n int) ([]float32, error) {
	parts, err := components(text, typeName, n)
	if err != nil {
		return nil, err
	}
	out := make([]float32, n)
	for i, p := range parts {
		f, err := strconv.ParseFloat(p, 32)
		if err != nil {
			return nil, &consoletypes.ConversionError{Text: text, Type: typeName, Err: err}
		}
		out[i] = float32(f)
	}
	return out, nil
}

func ints(text, typeName string, n int) ([]int, error) {
	parts, err := components(text, typeName, n)
	if err != nil {
		return nil, err
	}
	out := make([]int, n)
	for i, p := range parts {
		v, err := strconv.Atoi(p)
		if err != nil {
			return nil, &consoletypes.ConversionError{Text: text, Type: typeName, Err: err}
		}
		out[i] = v
	}
	return out, nil
}

func joinFloats(values ...float32) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = formatFloat32(v)
	}
	return strings.Join(parts, ",")
}

func joinInts(values ...int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ",")
}

func parseVector2(text string) (consoletypes.Vector2, error) {
	f, err := floats(text, "Vector2", 2)
	if err != nil {
		return consoletypes.Vector2{}, err
	}
	return consoletypes.Vector2{X: f[0], Y: f[1]}, nil
}

func formatVector2(v consoletypes.Vector2) string {
	return joinFloats(v.X, v.Y)
}

func parseVector3(text string) (consoletypes.Vector3, error) {
	f, err := floats(text, "Vector3", 3)
	if err != nil {
		return consoletypes.Vector3{}, err
	}
	return consoletypes.Vector3{X: f[0], Y: f[1], Z: f[2]}, nil
}

func formatVector3(v consoletypes.Vector3) string {
	return joinFloats(v.X, v.Y, v.Z)
}

func parseVector4(text string) (consoletypes.Vector4, error) {
	f, err := floats(text, "Vector4", 4)
	if err != nil {
		return consoletypes.Vector4{}, err
	}
	return consoletypes.Vector4{X: f[0], Y: f[1], Z: f[2], W: f[3]}, nil
}

func formatVector4(v consoletypes.Vector4) string {
	return joinFloats(v.X, v.Y, v.Z, v.W)
}

func parseVector2Int(text string) (consoletypes.Vector2Int, error) {
	n, err := ints(text, "Vector2Int", 2)
	if err != nil {
		return consoletypes.Vector2Int{}, err
	}
	return consoletypes.Vector2Int{X: n[0], Y: n[1]}, nil
}

func formatVector2Int(v consoletypes.Vector2Int) string {
	return joinInts(v.X, v.Y)
}

func parseVector3Int(text string) (consoletypes.Vector3Int, error) {
	n, err := ints(text, "Vector3Int", 3)
	if err != nil {
		return consoletypes.Vector3Int{}, err
	}
	return consoletypes.Vector3Int{X: n[0], Y: n[1], Z: n[2]}, nil
}

func formatVector3Int(v consoletypes.Vector3Int) string {
	return joinInts(v.X, v.Y, v.Z)
}

func parseQuaternion(text string) (consoletypes.Quaternion, error) {
	f, err := floats(text, "Quaternion", 4)
	if err != nil {
		return consoletypes.Quaternion{}, err
	}
	return consoletypes.Quaternion{X: f[0], Y: f[1], Z: f[2], W: f[3]}, nil
}

func formatQuaternion(q consoletypes.Quaternion) string {
	return joinFloats(q.X, q.Y, q.Z, q.W)
}

func parseColor(text string) (consoletypes.Color, error) {
	f, err := floats(text, "Color", 4)
	if err != nil {
		return consoletypes.Color{}, err
	}
	return consoletypes.Color{R: f[0], G: f[1], B: f[2], A: f[3]}, nil
}

func formatColor(c consoletypes.Color) string {
	return joinFloats(c.R, c.G, c.B, c.A)
}

func parseRect(text string) (consoletypes.Rect, error) {
	f, err := floats(text, "Rect", 4)
	if err != nil {
		return consoletypes.Rect{}, err
	}
	return consoletypes.Rect{X: f[0], Y: f[1], Width: f[2], Height: f[3]}, nil
}

func formatRect(r consoletypes.Rect) string {
	return joinFloats(r.X, r.Y, r.Width, r.Height)
}

func parseBounds(text string) (consoletypes.Bounds, error) {
	f, err := floats(text, "Bounds", 6)
	if err != nil {
		return consoletypes.Bounds{}, err
	}
	return consoletypes.Bounds{
		Center: consoletypes.Vector3{X: f[0], Y: f[1], Z: f[2]},
		Size:   consoletypes.Vector3{X: f[3], Y: f[4], Z: f[5]},
	}, nil
}

func formatBounds(b consoletypes.Bounds) string {
	return joinFloats(b.Center.X, b.Center.Y, b.Center.Z, b.Size.X, b.Size.Y, b.Size.Z)
}
