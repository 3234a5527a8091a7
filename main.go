package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"itinglobe/internal/config"
	"itinglobe/internal/debug"
	"itinglobe/internal/geo"
	"itinglobe/internal/globe"
	"itinglobe/internal/snapshot"
	"itinglobe/internal/svgview"
	"itinglobe/internal/ui"
)

func main() {
	// Parse command line flags
	help := flag.Bool("h", false, "Show help message")
	configPath := flag.String("c", "", "Config file (default: ./config.yaml if present)")
	debugLog := flag.String("d", "", "Debug log file (e.g., debug.log)")
	bordersPath := flag.String("borders", "", "Country borders, GeoJSON or .shp (overrides data.borders)")
	itinPath := flag.String("itin", "", "Itinerary, JSON or .csv (overrides data.itinerary)")
	exportPath := flag.String("export", "", "Render the initial view to a file (.svg, .png, .jpg, .webp) and exit")
	flag.Parse()

	// Show help if requested
	if *help {
		fmt.Println("itinglobe - Interactive itinerary globe for the terminal")
		fmt.Println("\nUsage: itinglobe [options]")
		fmt.Println("\nOptions:")
		flag.PrintDefaults()
		fmt.Println("\nKeys: drag or h/j/k/l rotate, +/- zoom, 0 reset zoom, space toggles spin,")
		fmt.Println("      [ and ] change spin speed, e exports SVG, q quits")
		os.Exit(0)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if *bordersPath != "" {
		cfg.Data.Borders = *bordersPath
	}
	if *itinPath != "" {
		cfg.Data.Itinerary = *itinPath
	}

	// Set up debug logging if requested
	if *debugLog != "" {
		logFile, err := os.Create(*debugLog)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to create debug log: %v\n", err)
		} else {
			defer logFile.Close()
			debug.SetOutput(logFile)
			debug.Log("itinglobe debug log started")
			fmt.Printf("Debug logging enabled: %s\n", *debugLog)
		}
	}

	// Load borders and itinerary; missing data leaves an empty globe
	fmt.Println("Loading globe data...")
	data := geo.LoadDataset(cfg.Data.Borders, cfg.Data.Itinerary, func(format string, args ...interface{}) {
		fmt.Fprintf(os.Stderr, "Warning: "+format+"\n", args...)
	})
	fmt.Printf("Loaded %d borders and %d waypoints\n", len(data.Borders), len(data.Waypoints))

	if *exportPath != "" {
		if err := export(*exportPath, data, cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Saved %s\n", *exportPath)
		return
	}

	app, err := ui.NewApp(data, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create application: %v\n", err)
		os.Exit(1)
	}

	// Run with panic recovery to ensure terminal is always restored
	func() {
		defer func() {
			if r := recover(); r != nil {
				fmt.Fprintf(os.Stderr, "\nPanic: %v\n", r)
			}
		}()

		if err := app.Run(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
	}()

	fmt.Println("\nGoodbye!")
}

// export renders the configured initial view into an image file
func export(path string, data *geo.Dataset, cfg *config.Config) error {
	width, height := cfg.Export.Width, cfg.Export.Height
	initial := geo.State{
		Lon:   cfg.Globe.RotateLon,
		Lat:   cfg.Globe.RotateLat,
		Roll:  cfg.Globe.RotateRoll,
		Scale: cfg.Globe.Scale,
	}
	opts := globe.Options{
		Sensitivity: cfg.Globe.Sensitivity,
		Scale:       globe.ScaleControl{Min: cfg.Scale.Min, Max: cfg.Scale.Max},
		PinRadius:   cfg.Globe.PinRadius,
		Interval:    cfg.AutoRotate.Interval,
	}

	if strings.EqualFold(filepath.Ext(path), ".svg") {
		doc := svgview.NewDocument(width, height)
		g, err := globe.New(initial, data, float64(width), float64(height), doc, nil, opts)
		if err != nil {
			return err
		}
		defer g.Close()

		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", path, err)
		}
		if err := doc.Render(f); err != nil {
			f.Close()
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
		return f.Close()
	}

	raster := snapshot.NewRaster(width, height)
	g, err := globe.New(initial, data, float64(width), float64(height), raster, nil, opts)
	if err != nil {
		return err
	}
	defer g.Close()

	return snapshot.WriteFile(path, raster.Image(), cfg.Export.Quality)
}
