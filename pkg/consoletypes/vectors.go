package consoletypes

// Vector2 is a two-component float vector.
type Vector2 struct {
	X, Y float32
}

// Vector3 is a three-component float vector.
type Vector3 struct {
	X, Y, Z float32
}

// Vector4 is a four-component float vector.
type Vector4 struct {
	X, Y, Z, W float32
}

// Vector2Int is a two-component integer vector.
type Vector2Int struct {
	X, Y int
}

// Vector3Int is a three-component integer vector.
type Vector3Int struct {
	X, Y, Z int
}

// Quaternion is a rotation stored as x,y,z,w.
type Quaternion struct {
	X, Y, Z, W float32
}

// Color is an RGBA color with float channels in [0,1].
type Color struct {
	R, G, B, A float32
}

// Rect is an axis-aligned rectangle.
type Rect struct {
	X, Y, Width, Height float32
}

// Bounds is an axis-aligned box given by its center and size.
type Bounds struct {
	Center Vector3
	Size   Vector3
}

// Add returns v + o.
func (v Vector3) Add(o Vector3) Vector3 {
	return Vector3{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z}
}
