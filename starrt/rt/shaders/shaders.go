package shaders

import (
	_ "embed"
)

//go:embed star.wgsl
var StarWGSL string

//go:embed hud.wgsl
var HudWGSL string

const (
	StarVertexEntry   = "vertexMain"
	StarFragmentEntry = "fragmentMain"

	HudVertexEntry   = "vs_main"
	HudFragmentEntry = "fs_main"
)
