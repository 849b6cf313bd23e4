// Command sp-plot renders the space points of a stored reconstruction run
// as scatter plots (X/Y top view and X/Z side view).
package main

import (
	"flag"
	"fmt"
	"image/color"
	"log"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/detlab/spacepoint/internal/spdb"
)

var (
	dbPath = flag.String("db", "", "Path to the space-point sqlite database")
	runID  = flag.String("run", "", "Run id to plot (default: latest run)")
	outDir = flag.String("out", ".", "Output directory for PNG files")
)

func main() {
	flag.Parse()
	if *dbPath == "" {
		flag.Usage()
		os.Exit(2)
	}
	if err := run(); err != nil {
		log.Fatalf("sp-plot: %v", err)
	}
}

func run() error {
	db, err := spdb.Open(*dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	id := *runID
	if id == "" {
		if id, err = db.LatestRunID(); err != nil {
			return err
		}
	}
	summary, err := db.GetRun(id)
	if err != nil {
		return err
	}
	points, err := db.ListPoints(id)
	if err != nil {
		return err
	}
	if len(points) == 0 {
		return fmt.Errorf("run %s holds no resolved space points", id)
	}
	log.Printf("plotting run %s: %d space points (of %d candidates)", id, len(points), summary.Candidates)

	xy := make(plotter.XYs, len(points))
	xz := make(plotter.XYs, len(points))
	for i, p := range points {
		xy[i] = plotter.XY{X: p.X, Y: p.Y}
		xz[i] = plotter.XY{X: p.X, Y: p.Z}
	}

	if err := savePlot(xy, "space points (top view)", "x", "y",
		filepath.Join(*outDir, fmt.Sprintf("sp_%s_xy.png", shortID(id)))); err != nil {
		return err
	}
	return savePlot(xz, "space points (side view)", "x", "z",
		filepath.Join(*outDir, fmt.Sprintf("sp_%s_xz.png", shortID(id))))
}

func savePlot(pts plotter.XYs, title, xLabel, yLabel, file string) error {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel

	scatter, err := plotter.NewScatter(pts)
	if err != nil {
		return fmt.Errorf("failed to build scatter: %w", err)
	}
	scatter.GlyphStyle.Radius = vg.Points(2)
	scatter.GlyphStyle.Color = color.RGBA{R: 31, G: 119, B: 180, A: 255}
	p.Add(scatter)

	if err := p.Save(8*vg.Inch, 8*vg.Inch, file); err != nil {
		return fmt.Errorf("failed to save %s: %w", file, err)
	}
	log.Printf("wrote %s", file)
	return nil
}

// shortID keeps filenames readable for uuid run ids.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
