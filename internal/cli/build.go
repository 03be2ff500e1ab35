package cli

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/devchandra/devsite/blog/application"
	"github.com/devchandra/devsite/internal/config"
	"github.com/devchandra/devsite/internal/export"
	"github.com/devchandra/devsite/internal/watch"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func (a *app) newBuildCommand() *cobra.Command {
	var watchContent bool

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Export posts, categories and the sitemap as static files",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.build(cmd.Context(), watchContent)
		},
	}

	cmd.Flags().StringP("output", "o", "public", "output directory")
	cmd.Flags().BoolVarP(&watchContent, "watch", "w", false, "rebuild when the content directory changes (fs source only)")
	a.bind(cmd, "output_dir", "output")

	return cmd
}

func (a *app) build(ctx context.Context, watchContent bool) error {
	if watchContent && a.cfg.Source != config.SourceFS {
		return errors.New("--watch needs the fs source")
	}

	source, closeSource, err := openSource(a.cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeSource(); err != nil {
			log.Error().Err(err).Msg("Failed to close document source")
		}
	}()

	exporter := export.NewExporter(application.NewPostService(source), a.cfg.OutputDir)
	if err := exporter.Build(ctx); err != nil {
		return err
	}

	if !watchContent {
		return nil
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info().Str("dir", a.cfg.ContentDir).Msg("Watching for changes")
	return watch.Watch(ctx, a.cfg.ContentDir, watch.DefaultDebounce, func() {
		if err := exporter.Build(ctx); err != nil {
			log.Error().Err(err).Msg("Rebuild failed")
		}
	})
}
