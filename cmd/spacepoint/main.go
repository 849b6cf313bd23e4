// Command spacepoint reconstructs 3D space points from a JSON scene of
// strip-detector hits and optionally persists the result to sqlite.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/detlab/spacepoint/internal/config"
	"github.com/detlab/spacepoint/internal/monitoring"
	"github.com/detlab/spacepoint/internal/sensor"
	"github.com/detlab/spacepoint/internal/spdb"
	"github.com/detlab/spacepoint/internal/strip"
)

var (
	scenePath  = flag.String("scene", "", "Path to the JSON scene file (surfaces + hits)")
	configPath = flag.String("config", "", "Optional JSON tuning file; defaults apply when omitted")
	dbPath     = flag.String("db", "", "Optional sqlite database to store the run in")
	verbose    = flag.Bool("v", false, "Enable verbose diagnostics")
)

func main() {
	flag.Parse()
	if *scenePath == "" {
		flag.Usage()
		os.Exit(2)
	}
	if *verbose {
		monitoring.EnableDebug()
	}

	if err := run(); err != nil {
		log.Fatalf("spacepoint: %v", err)
	}
}

func run() error {
	scene, err := sensor.LoadScene(*scenePath)
	if err != nil {
		return err
	}
	log.Printf("loaded scene: %d surfaces, %d front hits, %d back hits",
		len(scene.Surfaces), len(scene.Front), len(scene.Back))

	builderCfg := config.EmptyBuilderConfig()
	if *configPath != "" {
		builderCfg, err = config.LoadBuilderConfig(*configPath)
		if err != nil {
			return err
		}
	}
	cfg := builderCfg.StripConfig()
	if err := cfg.Validate(); err != nil {
		return err
	}

	var points []strip.SpacePoint
	if err := strip.AddHits(&points, scene.Front, scene.Back, cfg); err != nil {
		return err
	}
	strip.CalculateSpacePoints(points, cfg)

	resolved := 0
	for _, sp := range points {
		if !sp.Resolved {
			continue
		}
		resolved++
		fmt.Printf("%.6f %.6f %.6f\n", sp.Position.X, sp.Position.Y, sp.Position.Z)
	}
	log.Printf("matched %d candidate pairs, resolved %d space points", len(points), resolved)

	if *dbPath != "" {
		db, err := spdb.Open(*dbPath)
		if err != nil {
			return err
		}
		defer db.Close()
		runID, err := db.InsertRun(cfg, len(scene.Front), len(scene.Back), points)
		if err != nil {
			return err
		}
		log.Printf("stored run %s in %s", runID, *dbPath)
	}
	return nil
}
