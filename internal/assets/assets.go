// Package assets embeds the built-in scene and preview shaders.
package assets

import _ "embed"

// DefaultScene is the built-in scene description (YAML).
//
//go:embed scene.yaml
var DefaultScene []byte

// BuildingVertexShader transforms the building volume.
//
//go:embed building.vert
var BuildingVertexShader string

// BuildingFragmentShader shades the building volume.
//
//go:embed building.frag
var BuildingFragmentShader string
