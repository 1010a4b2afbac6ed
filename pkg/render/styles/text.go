package styles

import "strings"

const (
	// LabelFontMin and LabelFontMax bound month label sizes; the sink
	// scales within this range with the frame.
	LabelFontMin = 9.0
	LabelFontMax = 18.0
)

// LabelFontSize picks a month label size proportional to the frame,
// clamped to the readable range.
func LabelFontSize(frameWidth, frameHeight float64) float64 {
	size := min(frameWidth, frameHeight) / 45
	return max(LabelFontMin, min(LabelFontMax, size))
}

// escapeText escapes the XML special characters in label text.
func escapeText(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")
	return r.Replace(s)
}
