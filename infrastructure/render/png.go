package render

import (
	"image/color"
	"io"

	"git.sr.ht/~sbinet/gg"

	"insightgraph/domain/scene"
)

// WritePNG renders the scene as a PNG image
func WritePNG(sc *scene.Scene, w io.Writer) error {
	dc := gg.NewContext(canvasWidth, canvasHeight)
	dc.SetColor(parseHex(sc.Background))
	dc.Clear()

	if sc.Empty {
		dc.SetColor(color.RGBA{0x95, 0xa5, 0xa6, 0xff})
		dc.DrawStringAnchored(sc.Message, canvasWidth/2, canvasHeight/2, 0.5, 0.5)
		return dc.EncodePNG(w)
	}

	p := newProjector(sc, canvasWidth, canvasHeight)

	for _, seg := range sc.Links {
		x1, y1 := p.point(seg.From[0], seg.From[1])
		x2, y2 := p.point(seg.To[0], seg.To[1])
		c := parseHex(seg.Color)
		dc.SetColor(color.RGBA{c.R, c.G, c.B, 0xb0})
		dc.SetLineWidth(1.5)
		dc.DrawLine(x1, y1, x2, y2)
		dc.Stroke()
	}

	for _, n := range sc.Nodes {
		x, y := p.point(n.X, n.Y)
		r := p.radius(n.Radius)

		dc.SetColor(parseHex(n.Color))
		dc.DrawCircle(x, y, r)
		dc.Fill()

		if n.Label.Always {
			dc.SetColor(color.RGBA{0xf8, 0xf8, 0xf2, 0xff})
			dc.DrawStringAnchored(n.Label.Text, x, y-r-8, 0.5, 0.5)
		}
	}

	return dc.EncodePNG(w)
}
