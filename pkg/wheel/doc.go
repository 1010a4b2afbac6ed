// Package wheel implements the year-wheel layout engine: it owns the
// ordered collection of week markers and month labels, converts each
// marker's logical index into an angle, and asks package geom for the
// point on the circle/square path at that angle.
//
// # Overview
//
// An [Engine] holds all mutable bookkeeping: the current corner parameter,
// direction of travel, start angle, season order, and per-marker event
// lists. Every geometric computation is delegated to the pure functions in
// pkg/geom, which keeps the angle/position math trivially testable and the
// engine a thin bookkeeping layer.
//
// A layout pass is idempotent and O(N + M): markers have no cross-marker
// dependencies, so [Engine.Relayout] is a pure function of the engine's
// parameters and the container size.
//
// # Concurrency
//
// Engines are single-threaded: every operation runs to completion before
// returning and no internal locking is provided. Callers that share
// an engine across goroutines must serialize access.
//
// # Basic Usage
//
//	eng := wheel.New()
//	eng.Relayout(800, 800)
//	eng.SetCornerRadius(25)          // UI range 0..50 maps to corner 0.5
//	m, _ := eng.Marker(13)           // quarter-way around the year
//
// Serialize the result with [Engine.Export] and [MarshalLayout] for
// rendering or storage.
package wheel
