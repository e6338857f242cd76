// Package quarkgl is a small software 3D engine used to draw the scroll scene.
//
// It covers what the scene needs and nothing more: a node hierarchy with Euler
// rotations, triangle meshes with flat or toon shading, a point cloud for
// particles, one directional light and a perspective camera.
//
// Pipeline (fixed):
//
//	Nodes → World transform → View/Projection → Clip → Rasterize → Target.
//
// The renderer draws into a caller-provided Target and keeps its depth buffer
// between frames, so the render hot path does not allocate once sized.
package quarkgl
