package cmd

import (
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/MeKo-Tech/colorengine/internal/palette"
	"github.com/MeKo-Tech/colorengine/internal/server"
	"github.com/MeKo-Tech/colorengine/internal/swatch"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the color API and swatch sheets (optionally rendering missing sheets on-demand)",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("addr", "127.0.0.1:8080", "Listen address (host:port)")
	serveCmd.Flags().String("sheets-dir", "", "Directory containing swatch sheets (defaults to --output-dir)")
	serveCmd.Flags().String("archive", "", "Serve sheets from a swatch archive instead of a directory")

	serveCmd.Flags().Bool("generate-missing", true, "Render missing sheets on-demand and cache them to disk")
	serveCmd.Flags().Bool("disable-cache", false, "Always re-render sheets (still writes to disk)")
	serveCmd.Flags().Int("max-concurrent-renders", runtime.NumCPU(), "Max concurrent sheet renders (default: number of CPUs)")
	serveCmd.Flags().Duration("render-timeout", 30*time.Second, "Timeout per sheet render")
	serveCmd.Flags().String("cache-control", "no-store", "Cache-Control header for served sheets")

	serveCmd.Flags().Int("cell-size", swatch.DefaultCellSize, "Swatch cell size in pixels (@2x requests render twice as large)")
	serveCmd.Flags().String("png-compression", "default", "PNG compression (default, speed, best, none)")

	mustBindFlags(serveCmd, map[string]string{
		"serve.addr":                   "addr",
		"serve.sheets_dir":             "sheets-dir",
		"serve.archive":                "archive",
		"serve.generate_missing":       "generate-missing",
		"serve.disable_cache":          "disable-cache",
		"serve.max_concurrent_renders": "max-concurrent-renders",
		"serve.render_timeout":         "render-timeout",
		"serve.cache_control":          "cache-control",
		"serve.cell_size":              "cell-size",
		"serve.png_compression":        "png-compression",
	})
}

func runServe(cmd *cobra.Command, args []string) error {
	if logger == nil {
		initLogging()
	}

	addr := viper.GetString("serve.addr")
	sheetsDir := viper.GetString("serve.sheets_dir")
	if sheetsDir == "" {
		sheetsDir = viper.GetString("output-dir")
	}
	archivePath := viper.GetString("serve.archive")
	generateMissing := viper.GetBool("serve.generate_missing")
	disableCache := viper.GetBool("serve.disable_cache")
	maxConc := viper.GetInt("serve.max_concurrent_renders")
	renderTimeout := viper.GetDuration("serve.render_timeout")
	cacheControl := viper.GetString("serve.cache_control")
	cellSize := viper.GetInt("serve.cell_size")
	pngCompression := viper.GetString("serve.png_compression")

	routes := server.Routes{API: server.NewAPI(logger)}

	if archivePath != "" {
		ah, err := server.NewArchiveHandler(server.ArchiveConfig{
			ArchivePath:  archivePath,
			CacheControl: cacheControl,
		}, logger)
		if err != nil {
			return err
		}
		defer ah.Close()
		routes.Swatches = ah.Handler()
	} else {
		render := swatch.DefaultRenderOptions()
		render.CellSize = cellSize
		gen, err := swatch.NewGenerator(sheetsDir, logger, swatch.GeneratorOptions{
			Palette:        palette.DefaultOptions(),
			Render:         render,
			PNGCompression: pngCompression,
		})
		if err != nil {
			return fmt.Errorf("failed to init generator: %w", err)
		}

		od := server.NewOnDemandSwatches(gen, server.OnDemandSwatchesConfig{
			SheetsDir:            sheetsDir,
			CacheControl:         cacheControl,
			MaxConcurrentRenders: maxConc,
			RenderTimeout:        renderTimeout,
			GenerateMissing:      generateMissing,
			DisableCache:         disableCache,
		}, logger)
		routes.Swatches = od.Handler()
		routes.Status = od.StatusHandler()
	}

	logger.Info("color server listening",
		"addr", addr,
		"sheets_dir", sheetsDir,
		"archive", archivePath,
		"generate_missing", generateMissing,
		"max_concurrent_renders", maxConc,
	)

	srv := &http.Server{Addr: addr, Handler: server.NewMux(routes), ReadHeaderTimeout: 5 * time.Second}
	return srv.ListenAndServe()
}
