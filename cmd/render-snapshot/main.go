// render-snapshot lays out a graph JSON file and writes a static 2D
// image, without running the HTTP service. Useful for report pipelines
// and for eyeballing layout tuning changes.
//
// Usage:
//
//	render-snapshot -in session.json -out session.svg
//	cat session.json | render-snapshot -out session.png
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"insightgraph/domain/layout"
	"insightgraph/domain/scene"
	"insightgraph/infrastructure/render"
	"insightgraph/interfaces/http/rest/dto"
)

func main() {
	in := flag.String("in", "", "graph JSON file (defaults to stdin)")
	out := flag.String("out", "graph.svg", "output file; .svg or .png picks the format")
	linkCap := flag.Int("cap", 0, "rendered link cap (0 = default)")
	threshold := flag.Float64("label-threshold", 0, "always-show-label size threshold (0 = default)")
	flag.Parse()

	if err := run(*in, *out, *linkCap, *threshold); err != nil {
		fmt.Fprintln(os.Stderr, "render-snapshot:", err)
		os.Exit(1)
	}
}

func run(in, out string, linkCap int, threshold float64) error {
	var reader io.Reader = os.Stdin
	if in != "" {
		f, err := os.Open(in)
		if err != nil {
			return err
		}
		defer f.Close()
		reader = f
	}

	var req dto.CreateGraphRequest
	if err := json.NewDecoder(reader).Decode(&req); err != nil {
		return fmt.Errorf("decoding graph: %w", err)
	}

	nodes, links, err := req.ToEntities()
	if err != nil {
		return err
	}

	positioned := layout.NewEngine(layout.DefaultParams()).Run(nodes, links)

	sc, err := scene.NewBuilder(linkCap, threshold).Build(positioned, links)
	if err != nil {
		return err
	}

	f, err := os.Create(out)
	if err != nil {
		return err
	}
	defer f.Close()

	switch ext := strings.ToLower(filepath.Ext(out)); ext {
	case ".png":
		return render.WritePNG(sc, f)
	case ".svg":
		return render.WriteSVG(sc, f)
	default:
		return fmt.Errorf("unsupported output format %q", ext)
	}
}
