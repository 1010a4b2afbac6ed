package sink

import "github.com/komapc/yearwheel/pkg/wheel"

// RenderJSON serializes the layout itself, for callers that want to render
// elsewhere or feed a saved wheel back through the pipeline.
func RenderJSON(l wheel.Layout) ([]byte, error) {
	return wheel.MarshalLayout(l)
}
