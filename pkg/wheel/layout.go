package wheel

import (
	"encoding/json"
	"fmt"
	"os"
)

// Layout is the serialization format for a computed wheel: everything a
// renderer or a saved-wheel store needs, with no reference back to the
// engine that produced it.
//
// Fields carry both JSON tags (files, HTTP API) and BSON tags (the
// saved-wheel store).
type Layout struct {
	// Frame dimensions in device-independent pixels.
	Width  float64 `json:"width" bson:"width"`
	Height float64 `json:"height" bson:"height"`

	// Parameters the layout was computed from.
	Year       int      `json:"year,omitempty" bson:"year,omitempty"`
	Corner     float64  `json:"corner" bson:"corner"`
	Direction  int      `json:"direction" bson:"direction"`
	StartAngle float64  `json:"start_angle" bson:"start_angle"`
	Seasons    []string `json:"seasons" bson:"seasons"`

	// Visual style hint ("simple", "ink"); renderers may override.
	Style string `json:"style,omitempty" bson:"style,omitempty"`

	// Positioned elements.
	Markers []Marker `json:"markers" bson:"markers"`
	Labels  []Label  `json:"labels,omitempty" bson:"labels,omitempty"`
}

// Export snapshots the engine into a serializable Layout.
func (e *Engine) Export() Layout {
	return Layout{
		Width:      e.width,
		Height:     e.height,
		Corner:     e.corner,
		Direction:  e.direction,
		StartAngle: e.startAngle,
		Seasons:    e.Seasons(),
		Markers:    e.Markers(),
		Labels:     e.Labels(),
	}
}

// MarshalLayout serializes a Layout to pretty-printed JSON bytes.
func MarshalLayout(l Layout) ([]byte, error) {
	return json.MarshalIndent(l, "", "  ")
}

// UnmarshalLayout deserializes JSON bytes into a Layout.
// A layout without markers is rejected; there is nothing to render.
func UnmarshalLayout(data []byte) (Layout, error) {
	var l Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return Layout{}, fmt.Errorf("unmarshal layout: %w", err)
	}
	if len(l.Markers) == 0 {
		return Layout{}, fmt.Errorf("layout must contain markers")
	}
	return l, nil
}

// WriteLayoutFile writes a Layout to a JSON file.
func WriteLayoutFile(l Layout, path string) error {
	data, err := MarshalLayout(l)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadLayoutFile reads a Layout from a JSON file.
func ReadLayoutFile(path string) (Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Layout{}, fmt.Errorf("read %s: %w", path, err)
	}
	return UnmarshalLayout(data)
}
