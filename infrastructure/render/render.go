// Package render exports a scene as a static 2D image. It is the
// fallback path for clients without WebGL and the backing for the
// snapshot CLI; the 3D scene document stays the primary output.
package render

import (
	"fmt"
	"image/color"

	"insightgraph/domain/scene"
)

const (
	canvasWidth  = 1200
	canvasHeight = 900
	margin       = 80.0
)

// projector maps scene coordinates, which are centered at the origin,
// onto canvas pixels. Y flips because the scene is y-up and the canvas
// is y-down.
type projector struct {
	scale    float64
	centerX  float64
	centerY  float64
	offsetX  float64
	offsetY  float64
}

func newProjector(sc *scene.Scene, width, height int) projector {
	minX, maxX := 0.0, 0.0
	minY, maxY := 0.0, 0.0
	for i, n := range sc.Nodes {
		if i == 0 || n.X < minX {
			minX = n.X
		}
		if i == 0 || n.X > maxX {
			maxX = n.X
		}
		if i == 0 || n.Y < minY {
			minY = n.Y
		}
		if i == 0 || n.Y > maxY {
			maxY = n.Y
		}
	}

	spanX := maxX - minX
	spanY := maxY - minY
	scale := 1.0
	if spanX > 0 || spanY > 0 {
		sx := (float64(width) - 2*margin) / max(spanX, 1)
		sy := (float64(height) - 2*margin) / max(spanY, 1)
		scale = min(sx, sy)
	}

	return projector{
		scale:   scale,
		centerX: (minX + maxX) / 2,
		centerY: (minY + maxY) / 2,
		offsetX: float64(width) / 2,
		offsetY: float64(height) / 2,
	}
}

func (p projector) point(x, y float64) (float64, float64) {
	return p.offsetX + (x-p.centerX)*p.scale,
		p.offsetY - (y-p.centerY)*p.scale
}

// radius scales a node radius, clamped so small nodes stay visible
func (p projector) radius(r float64) float64 {
	scaled := r * p.scale
	if scaled < 4 {
		return 4
	}
	if scaled > 60 {
		return 60
	}
	return scaled
}

func parseHex(hex string) color.RGBA {
	var r, g, b uint8
	if _, err := fmt.Sscanf(hex, "#%02x%02x%02x", &r, &g, &b); err != nil {
		return color.RGBA{A: 0xff}
	}
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}

func min(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func max(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
