package render

import (
	"fmt"
	"io"

	svg "github.com/ajstarks/svgo"

	"insightgraph/domain/scene"
)

// WriteSVG renders the scene as an SVG document
func WriteSVG(sc *scene.Scene, w io.Writer) error {
	canvas := svg.New(w)
	canvas.Start(canvasWidth, canvasHeight)
	canvas.Rect(0, 0, canvasWidth, canvasHeight, "fill:"+sc.Background)

	if sc.Empty {
		canvas.Text(canvasWidth/2, canvasHeight/2, sc.Message,
			"fill:#95a5a6;font-size:20px;font-family:system-ui,sans-serif;text-anchor:middle")
		canvas.End()
		return nil
	}

	p := newProjector(sc, canvasWidth, canvasHeight)

	// Links go under nodes.
	for _, seg := range sc.Links {
		x1, y1 := p.point(seg.From[0], seg.From[1])
		x2, y2 := p.point(seg.To[0], seg.To[1])
		canvas.Line(int(x1), int(y1), int(x2), int(y2),
			fmt.Sprintf("stroke:%s;stroke-width:1.5;stroke-opacity:0.7", seg.Color))
	}

	for _, n := range sc.Nodes {
		x, y := p.point(n.X, n.Y)
		r := p.radius(n.Radius)
		canvas.Circle(int(x), int(y), int(r), "fill:"+n.Color)

		if n.Label.Always {
			canvas.Text(int(x), int(y-r-6), n.Label.Text,
				"fill:#f8f8f2;font-size:12px;font-family:system-ui,sans-serif;text-anchor:middle")
		}
	}

	canvas.End()
	return nil
}
