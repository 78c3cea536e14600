// Command tripsplit-share produces the shareable trip artifacts without going
// through the HTTP server: the summary text block, the backup JSON and the
// rendered summary card. It reads whatever trip the configured backend holds.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"golang.org/x/sync/errgroup"

	"tripsplit/internal/cli"
	"tripsplit/internal/core"
	"tripsplit/internal/render"
	"tripsplit/internal/share"
	"tripsplit/internal/store"
)

func main() {
	printText := flag.Bool("text", false, "print the summary text block to stdout")
	backupPath := flag.String("backup", "", "write the backup JSON to this file (- for stdout)")
	imagePath := flag.String("image", "", "render the summary card PNG to this file")
	flag.Parse()

	logger := cli.SetupLogger()
	cli.LoadEnvFile()
	cfg := cli.LoadAndValidateConfig(logger)

	if !*printText && *backupPath == "" && *imagePath == "" {
		fmt.Fprintln(os.Stderr, "nothing to do: pass -text, -backup FILE or -image FILE")
		flag.Usage()
		os.Exit(2)
	}

	ctx := context.Background()
	records := cli.OpenRecordStore(ctx, logger, cfg)

	st, err := store.New(ctx, store.Config{
		Records:  records.Records,
		Debounce: cfg.SaveDebounce,
	})
	if err != nil {
		logger.Error("Failed to load trip state", "error", err)
		os.Exit(1)
	}

	trip := st.Snapshot()
	summary := share.Build(trip, core.ComputeTotals(trip))

	// File outputs run concurrently; stdout stays sequential so -text and
	// -backup - cannot interleave.
	g, _ := errgroup.WithContext(ctx)

	if *backupPath != "" && *backupPath != "-" {
		path := *backupPath
		g.Go(func() error {
			return writeBackup(logger, trip, path)
		})
	}
	if *imagePath != "" {
		path := *imagePath
		g.Go(func() error {
			return writeImage(logger, summary, path)
		})
	}

	if *printText {
		fmt.Println(summary.Text())
	}
	if *backupPath == "-" {
		data, err := core.EncodeTrip(trip, true)
		if err != nil {
			logger.Error("Encoding backup failed", "error", err)
			os.Exit(1)
		}
		os.Stdout.Write(data)
		fmt.Println()
	}

	if err := g.Wait(); err != nil {
		logger.Error("Writing share output failed", "error", err)
		os.Exit(1)
	}

	if err := st.Close(); err != nil {
		logger.Error("Closing trip store failed", "error", err)
	}
	if records.Cleanup != nil {
		if err := records.Cleanup(); err != nil {
			logger.Error("Backend cleanup failed", "error", err)
		}
	}
}

func writeBackup(logger *slog.Logger, trip core.Trip, path string) error {
	data, err := core.EncodeTrip(trip, true)
	if err != nil {
		return fmt.Errorf("encoding backup: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing backup: %w", err)
	}
	logger.Info("Backup written", "path", path, "bytes", len(data))
	return nil
}

func writeImage(logger *slog.Logger, summary share.Summary, path string) error {
	card, err := render.NewCard()
	if err != nil {
		return fmt.Errorf("preparing card renderer: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating image file: %w", err)
	}
	if err := card.RenderPNG(f, summary); err != nil {
		f.Close()
		return fmt.Errorf("rendering summary card: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing image file: %w", err)
	}
	logger.Info("Summary card written", "path", path)
	return nil
}
