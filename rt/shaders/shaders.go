package shaders

import (
	_ "embed"
)

//go:embed basic.wgsl
var BasicWGSL string

//go:embed wireframe.wgsl
var WireframeWGSL string

//go:embed overlay.wgsl
var OverlayWGSL string
