// Package embedded provides access to embedded scene files.
package embedded

import _ "embed"

// DefaultSceneData contains the embedded default scene YAML data.
//
//go:embed scenes/default.yaml
var DefaultSceneData []byte
