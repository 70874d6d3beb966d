package sink

import "github.com/jthierer/bubblepack/pkg/chart"

// RenderJSON renders the layout itself as a pretty-printed JSON artifact.
// The output round-trips through [chart.UnmarshalLayout].
func RenderJSON(l chart.Layout) ([]byte, error) {
	return chart.MarshalLayout(l)
}
