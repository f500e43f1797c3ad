package main

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/natefinch/atomic"
	"github.com/spf13/cobra"

	webhandler "github.com/ericfisherdev/devfolio/internal/adapter/driving/web"
)

func newBuildCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Write the portfolio as a static site",
		Long: `Build loads the portfolio once and writes index.html plus its stylesheet to
the output directory. A fresh cache entry is used without contacting GitHub.
Nothing is written when neither GitHub nor the cache has data.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBuild(cmd.Context(), output, logger)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "dist", "output directory")

	return cmd
}

func runBuild(ctx context.Context, output string, logger *slog.Logger) error {
	a, err := newApp(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := a.close(); closeErr != nil {
			logger.Error("error closing cache store", "error", closeErr)
		}
	}()

	var page bytes.Buffer
	if err := webhandler.RenderStatic(ctx, a.portfolio, &page); err != nil {
		return err
	}

	if err := os.MkdirAll(output, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	if err := webhandler.WriteStaticAssets(output); err != nil {
		return fmt.Errorf("write static assets: %w", err)
	}

	index := filepath.Join(output, "index.html")
	size := page.Len()
	if err := atomic.WriteFile(index, &page); err != nil {
		return fmt.Errorf("write %s: %w", index, err)
	}
	// Temp files are created 0600; the page is meant to be served.
	if err := os.Chmod(index, 0o644); err != nil {
		return fmt.Errorf("chmod %s: %w", index, err)
	}

	logger.Info("static site written", "path", index, "bytes", size)
	return nil
}
