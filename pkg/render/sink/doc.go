// Package sink renders serialized wheel layouts to output formats.
//
// Three sinks share one sampled-path helper so their geometry agrees:
//
//   - [RenderSVG]: interactive SVG with hover/activation wiring
//   - [RenderPNG]: direct raster drawing via fogleman/gg
//   - [RenderJSON]: the layout itself, for round-tripping
//
// Sinks are pure functions of a [wheel.Layout]; they never touch the
// layout engine.
package sink
