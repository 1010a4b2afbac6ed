// Package geom provides the path geometry for the year wheel: a single
// family of closed convex curves that morphs continuously between a circle
// and a rounded square.
//
// # Overview
//
// The wheel places markers on a superellipse |x|^n + |y|^n = 1, where the
// exponent n is driven by a single corner parameter in [0,1]. A corner of 1
// yields n = 2 (a perfect circle); a corner of 0 pushes n high enough that
// the curve reads as a square with rounded corners. Because the whole family
// is one formula over one scalar, the morph between the extremes is smooth
// with no branch point.
//
// All functions here are pure and total: any real angle and any clamped
// corner value produce a finite point. State (direction, season order,
// per-marker events) lives in package wheel, not here.
//
// # Basic Usage
//
//	p := geom.PositionOnPath(400, 300, 200, math.Pi/4, 0.5)
//
// computes the point a quarter-turn around a half-morphed wheel centered at
// (400, 300) with nominal radius 200.
package geom
