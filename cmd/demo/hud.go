package main

import (
	"fmt"

	"glsafe/renderer"
)

// frameCounter averages the frame rate over one-second windows for the
// title bar.
type frameCounter struct {
	start   float64
	frames  int
	started bool
}

// tick counts a frame finished at now. Once a second it returns a summary
// of the frame rate and the last frame's stats.
func (c *frameCounter) tick(now float64, stats renderer.Stats) (string, bool) {
	if !c.started {
		c.start, c.started = now, true
		return "", false
	}
	c.frames++
	elapsed := now - c.start
	if elapsed < 1 {
		return "", false
	}
	fps := float64(c.frames) / elapsed
	c.start, c.frames = now, 0
	return fmt.Sprintf("%.0f fps | %d objects, %d culled | %d draws | %d triangles",
		fps, stats.Objects, stats.Culled, stats.DrawCalls, stats.Triangles), true
}
