// Package main is the skyherald almanac exporter.
//
// The almanac is a one-shot CLI that precomputes weather for a date range and
// writes it out as gzip-compressed JSON. Because the engine is deterministic,
// the export is a faithful snapshot of what the API and the herald will serve
// for those dates. It doubles as a warm-up for far-future dates, whose first
// resolution walks every intervening epoch.
//
// Usage:
//
//	almanac -from 2025-09-01 -to 2025-12-31 -out winter.json.gz
//	almanac -from 2025-09-01 -to 2025-09-30 -region patlania
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/klauspost/compress/gzip"

	"skyherald/internal/config"
	"skyherald/internal/engine"
	"skyherald/internal/forecasts"
	"skyherald/internal/types"
)

const dateFormat = "2006-01-02"

// maxExportDays caps the range so a typo in a year does not produce a
// multi-gigabyte file.
const maxExportDays = 3700

// almanacExport is the top-level document written to the output file.
type almanacExport struct {
	GeneratedAt time.Time       `json:"generated_at"`
	From        string          `json:"from"`
	To          string          `json:"to"`
	Regions     []regionAlmanac `json:"regions"`
}

// regionAlmanac holds one region's results for the full range, in date order.
type regionAlmanac struct {
	RegionID   string                 `json:"region_id"`
	RegionName string                 `json:"region_name"`
	Days       []*types.WeatherResult `json:"days"`
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	fromFlag := flag.String("from", "", "start date (YYYY-MM-DD, inclusive)")
	toFlag := flag.String("to", "", "end date (YYYY-MM-DD, inclusive)")
	regionFlag := flag.String("region", "", "export a single region by ID (default: all regions)")
	outFlag := flag.String("out", "almanac.json.gz", "output file path")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}
	logger := newLogger(cfg.LogLevel)

	from, to, err := parseRange(*fromFlag, *toFlag)
	if err != nil {
		return err
	}
	days := int(to.Sub(from).Hours()/24) + 1
	if days > maxExportDays {
		return fmt.Errorf("range spans %d days, maximum is %d", days, maxExportDays)
	}

	registry, err := config.LoadRegions(cfg.Regions.Path)
	if err != nil {
		return fmt.Errorf("loading regions from %s: %w", cfg.Regions.Path, err)
	}

	regions := registry.All()
	if *regionFlag != "" {
		region, ok := registry.Get(*regionFlag)
		if !ok {
			return fmt.Errorf("unknown region %q", *regionFlag)
		}
		regions = []types.Region{region}
	}

	// The almanac is a one-shot tool with no metrics endpoint to scrape.
	weather := forecasts.NewWeatherService(registry, engine.NewResolver(), logger, nil)

	logger.Info("exporting almanac",
		"from", from.Format(dateFormat),
		"to", to.Format(dateFormat),
		"days", days,
		"regions", len(regions),
		"out", *outFlag,
	)

	export := almanacExport{
		GeneratedAt: time.Now().UTC(),
		From:        from.Format(dateFormat),
		To:          to.Format(dateFormat),
	}

	ctx := context.Background()
	for _, region := range regions {
		entry := regionAlmanac{
			RegionID:   region.ID,
			RegionName: region.Name,
			Days:       make([]*types.WeatherResult, 0, days),
		}
		for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
			result, err := weather.Daily(ctx, region.ID, d)
			if err != nil {
				return fmt.Errorf("resolving %s on %s: %w", region.ID, d.Format(dateFormat), err)
			}
			entry.Days = append(entry.Days, result)
		}
		export.Regions = append(export.Regions, entry)
	}

	if err := writeExport(*outFlag, &export); err != nil {
		return err
	}

	logger.Info("almanac written", "out", *outFlag)
	return nil
}

// parseRange validates the flag pair and returns UTC midnight bounds.
func parseRange(fromStr, toStr string) (time.Time, time.Time, error) {
	if fromStr == "" || toStr == "" {
		return time.Time{}, time.Time{}, fmt.Errorf("both -from and -to are required")
	}
	from, err := time.ParseInLocation(dateFormat, fromStr, time.UTC)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid -from date %q: %w", fromStr, err)
	}
	to, err := time.ParseInLocation(dateFormat, toStr, time.UTC)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid -to date %q: %w", toStr, err)
	}
	if to.Before(from) {
		return time.Time{}, time.Time{}, fmt.Errorf("-to %s is before -from %s", toStr, fromStr)
	}
	return from, to, nil
}

// writeExport encodes the document as gzip-compressed JSON.
func writeExport(path string, export *almanacExport) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}

	gz, err := gzip.NewWriterLevel(f, gzip.BestCompression)
	if err != nil {
		f.Close()
		return fmt.Errorf("initializing gzip writer: %w", err)
	}

	if err := json.NewEncoder(gz).Encode(export); err != nil {
		gz.Close()
		f.Close()
		return fmt.Errorf("encoding export: %w", err)
	}
	if err := gz.Close(); err != nil {
		f.Close()
		return fmt.Errorf("flushing gzip stream: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}
	return nil
}

// newLogger creates a structured slog.Logger configured for the given log level.
func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "info":
		lvl = slog.LevelInfo
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: lvl,
	})
	return slog.New(handler)
}
