package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/MeKo-Tech/colorengine/internal/archive"
	"github.com/MeKo-Tech/colorengine/internal/colorconv"
	"github.com/MeKo-Tech/colorengine/internal/palette"
	"github.com/MeKo-Tech/colorengine/internal/swatch"
	"github.com/MeKo-Tech/colorengine/internal/worker"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var gridCmd = &cobra.Command{
	Use:   "grid <base>...",
	Short: "Render swatch sheets for one or more base colors",
	Long: `Build an HSL color grid around each base color and render it as a PNG
swatch sheet. Rows rotate the hue, columns step the lightness, and every cell
is labelled in whichever text color contrasts best with it.

Sheets are written to --output-dir as <rrggbb>.png, or packed into a single
SQLite archive with --format=archive.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runGrid,
}

func init() {
	rootCmd.AddCommand(gridCmd)

	// Grid layout
	gridCmd.Flags().Int("rows", palette.DefaultRows, "Number of rows (hue steps)")
	gridCmd.Flags().Int("columns", palette.DefaultColumns, "Number of columns (lightness steps)")
	gridCmd.Flags().Float64("hue-step", palette.DefaultHueStep, "Hue rotation per row in degrees")
	gridCmd.Flags().Float64("lightness-step", palette.DefaultLightnessStep, "Lightness change per column in percent")

	// Rendering
	gridCmd.Flags().Int("cell-size", swatch.DefaultCellSize, "Swatch cell size in pixels")
	gridCmd.Flags().Bool("labels", true, "Draw hex labels on each cell")
	gridCmd.Flags().Bool("hidpi", false, "Also render a 2x (@2x) sheet alongside the base sheet")
	gridCmd.Flags().String("png-compression", "default", "PNG compression (default, speed, best, none)")

	// Batch
	gridCmd.Flags().IntP("workers", "w", 0, "Number of parallel workers (default: number of CPUs)")
	gridCmd.Flags().Bool("progress", true, "Show progress bar")
	gridCmd.Flags().Bool("force", false, "Overwrite sheets that already exist")
	gridCmd.Flags().Bool("allow-failures", false, "Exit successfully even if some sheets fail")

	// Output
	gridCmd.Flags().String("format", "folder", "Output format: folder or archive")
	gridCmd.Flags().String("output-file", "", "Archive file path for --format=archive (e.g. swatches.db)")

	mustBindFlags(gridCmd, map[string]string{
		"grid.rows":            "rows",
		"grid.columns":         "columns",
		"grid.hue_step":        "hue-step",
		"grid.lightness_step":  "lightness-step",
		"grid.cell_size":       "cell-size",
		"grid.labels":          "labels",
		"grid.hidpi":           "hidpi",
		"grid.png_compression": "png-compression",
		"grid.workers":         "workers",
		"grid.progress":        "progress",
		"grid.force":           "force",
		"grid.allow_failures":  "allow-failures",
		"grid.format":          "format",
		"grid.output_file":     "output-file",
	})
}

// gridSettings is the resolved configuration of one grid run.
type gridSettings struct {
	palette        palette.Options
	render         swatch.RenderOptions
	pngCompression string
	outputDir      string
	format         string
	outputFile     string
	workers        int
	hidpi          bool
	progress       bool
	force          bool
	allowFailures  bool
}

func loadGridSettings() (gridSettings, error) {
	s := gridSettings{
		palette: palette.Options{
			Rows:          viper.GetInt("grid.rows"),
			Columns:       viper.GetInt("grid.columns"),
			HueStep:       viper.GetFloat64("grid.hue_step"),
			LightnessStep: viper.GetFloat64("grid.lightness_step"),
		},
		render: swatch.RenderOptions{
			CellSize: viper.GetInt("grid.cell_size"),
			Scale:    1,
			Labels:   viper.GetBool("grid.labels"),
		},
		pngCompression: viper.GetString("grid.png_compression"),
		outputDir:      viper.GetString("output-dir"),
		format:         viper.GetString("grid.format"),
		outputFile:     viper.GetString("grid.output_file"),
		workers:        viper.GetInt("grid.workers"),
		hidpi:          viper.GetBool("grid.hidpi"),
		progress:       viper.GetBool("grid.progress"),
		force:          viper.GetBool("grid.force"),
		allowFailures:  viper.GetBool("grid.allow_failures"),
	}

	if s.palette.Rows <= 0 || s.palette.Columns <= 0 {
		return s, fmt.Errorf("rows and columns must be positive")
	}
	if s.render.CellSize <= 0 {
		return s, fmt.Errorf("cell-size must be positive")
	}
	if s.format != "folder" && s.format != "archive" {
		return s, fmt.Errorf("invalid format %q: must be 'folder' or 'archive'", s.format)
	}
	if s.format == "archive" && s.outputFile == "" {
		return s, fmt.Errorf("--output-file is required when using --format=archive")
	}
	if _, err := swatch.ParseCompression(s.pngCompression); err != nil {
		return s, err
	}
	if s.workers <= 0 {
		s.workers = runtime.NumCPU()
	}

	return s, nil
}

func parseBases(args []string) ([]colorconv.Color, error) {
	seen := make(map[colorconv.Color]bool, len(args))
	bases := make([]colorconv.Color, 0, len(args))
	for _, arg := range args {
		c, err := colorconv.ParseColor(arg)
		if err != nil {
			return nil, err
		}
		if seen[c] {
			continue
		}
		seen[c] = true
		bases = append(bases, c)
	}
	return bases, nil
}

func gridTasks(bases []colorconv.Color, force, hidpi bool) []worker.Task {
	tasks := make([]worker.Task, 0, len(bases)*2)
	for _, base := range bases {
		tasks = append(tasks, worker.Task{Base: base, Force: force})
		if hidpi {
			tasks = append(tasks, worker.Task{Base: base, Force: force, Suffix: swatch.HiDPISuffix})
		}
	}
	return tasks
}

func runGrid(cmd *cobra.Command, args []string) error {
	if logger == nil {
		initLogging()
	}

	s, err := loadGridSettings()
	if err != nil {
		return err
	}
	bases, err := parseBases(args)
	if err != nil {
		return err
	}

	var archiveWriter *archive.Writer
	if s.format == "archive" {
		archiveWriter, err = archive.New(s.outputFile, archive.Metadata{
			Name:           "colorengine swatches",
			Description:    "HSL swatch sheets",
			Version:        "1.0",
			Format:         "png",
			PNGCompression: s.pngCompression,
			Rows:           s.palette.Rows,
			Columns:        s.palette.Columns,
			CellSize:       s.render.CellSize,
			HueStep:        s.palette.HueStep,
			LightnessStep:  s.palette.LightnessStep,
		})
		if err != nil {
			return fmt.Errorf("failed to create archive: %w", err)
		}
		defer archiveWriter.Close()
	}

	opts := swatch.GeneratorOptions{
		Palette:        s.palette,
		Render:         s.render,
		PNGCompression: s.pngCompression,
	}
	if archiveWriter != nil {
		opts.SheetWriter = archiveWriter
	}

	gen, err := swatch.NewGenerator(s.outputDir, logger, opts)
	if err != nil {
		return fmt.Errorf("failed to init generator: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-sigCh:
			logger.Info("Received interrupt signal, cancelling...")
			cancel()
		case <-ctx.Done():
		}
	}()

	tasks := gridTasks(bases, s.force, s.hidpi)
	logger.Info("Rendering swatch sheets",
		"bases", len(bases),
		"sheets", len(tasks),
		"workers", s.workers,
		"format", s.format,
		"output_dir", s.outputDir,
	)

	progress := worker.NewProgress(len(tasks), s.progress)
	pool := worker.New(worker.Config{
		Workers:    s.workers,
		Generator:  gen,
		OnProgress: progress.Callback(),
	})

	results := pool.Run(ctx, tasks)
	progress.Done()

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
			logger.Error("Sheet rendering failed", "base", r.Task.Base.Hex(), "suffix", r.Task.Suffix, "error", r.Err)
			continue
		}
		if r.Path != "" {
			fmt.Fprintln(cmd.OutOrStdout(), r.Path)
		}
	}
	logger.Info(progress.Summary())

	if archiveWriter != nil {
		if err := archiveWriter.Flush(); err != nil {
			return fmt.Errorf("failed to flush archive: %w", err)
		}
		logger.Info("Archive written", "path", s.outputFile)
	}

	if failed > 0 {
		if s.allowFailures {
			logger.Warn("Some sheets failed, continuing due to --allow-failures", "failed_count", failed)
			return nil
		}
		return fmt.Errorf("%d sheets failed to render", failed)
	}
	return nil
}
