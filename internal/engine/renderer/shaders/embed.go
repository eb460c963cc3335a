// Package shaders provides embedded GLSL shader sources.
package shaders

import _ "embed"

// Lighting is shared by every lit program; it declares the Material
// uniform block and the shade/finish helpers.
//
//go:embed lighting.glsl
var Lighting string

// VoxelVertexShader draws instanced boxes, the ground and the water grid.
//
//go:embed voxel.vert
var VoxelVertexShader string

// VoxelFragmentShader is the lit surface shader with PCF sun shadows.
//
//go:embed voxel.frag
var VoxelFragmentShader string

// ShadowVertexShader renders instanced depth into the sun's shadow map.
//
//go:embed shadow.vert
var ShadowVertexShader string

// ShadowFragmentShader is the empty depth-only fragment stage.
//
//go:embed shadow.frag
var ShadowFragmentShader string

// PointsVertexShader draws the rotating mist field as point sprites.
//
//go:embed points.vert
var PointsVertexShader string

// PointsFragmentShader shades mist points.
//
//go:embed points.frag
var PointsFragmentShader string

// OverlayVertexShader draws a screen-space quad from gl_VertexID.
//
//go:embed overlay.vert
var OverlayVertexShader string

// OverlayFragmentShader samples the overlay texture.
//
//go:embed overlay.frag
var OverlayFragmentShader string
