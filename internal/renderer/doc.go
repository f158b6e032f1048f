// Package renderer paints editor frames onto a terminal backend.
//
// The renderer is stateless between frames: Draw repaints the whole
// screen from a View snapshot every time, and the backend's internal
// diffing keeps terminal writes small. Layout math for the wrapped
// text area lives in the layout subpackage, scroll state in viewport,
// and the terminal abstraction in backend.
package renderer
