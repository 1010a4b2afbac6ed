// Package render turns computed wheel layouts into output artifacts.
//
// Subpackages:
//   - styles: the Style interface plus the flat "simple" look
//   - styles/ink: seeded hand-drawn look with jittered strokes
//   - sink: SVG, PNG, and JSON output
//
// The split mirrors the layout/render boundary of the rest of the system:
// sinks consume a serialized [wheel.Layout] and never touch the engine.
package render
