// Command walker drives a concurrent related-video graph crawl from the
// terminal: start a fresh run, resume one from its checkpoint, export the
// discovered graph, or render it with graphviz. Its persistent-flag and
// subcommand layout follows rohmanhakim-docs-crawler's cobra-based CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/videograph/walker/internal/checkpoint"
	"github.com/videograph/walker/internal/config"
	"github.com/videograph/walker/internal/engine"
	"github.com/videograph/walker/internal/expander"
	"github.com/videograph/walker/internal/export"
	"github.com/videograph/walker/internal/graphstore"
	"github.com/videograph/walker/internal/graphviz"
	"github.com/videograph/walker/internal/logging"
	"github.com/videograph/walker/internal/seed"
	"github.com/videograph/walker/internal/sink"
	"github.com/videograph/walker/internal/ui"
	"github.com/videograph/walker/internal/vertex"
)

var (
	configPath      string
	seedURLs        []string
	randomSeedCount int
	useRender       bool
	download        bool
	dashboard       bool
	exportFormat    string
	graphFormat     string
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "walker",
		Short: "Concurrent related-video graph crawler",
		Long: `walker discovers a graph of related videos starting from a set of
seed URLs or search queries, following each video's related-video edges
until a discovery cap or depth bound stops the walk.`,
	}

	root.PersistentFlags().StringVar(&configPath, "config", "", "path to a WalkConfig JSON file (defaults applied if omitted)")

	root.AddCommand(runCmd(), resumeCmd(), exportCmd(), graphCmd())
	return root
}

func runCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Start a fresh crawl",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			cfg.SeedURLs = append(cfg.SeedURLs, seedURLs...)
			cfg.RandomSeeds = randomSeedCount
			cfg.UseRenderFallback = useRender
			cfg.DownloadEnabled = download

			return runCrawl(cfg, nil)
		},
	}
	cmd.Flags().StringArrayVar(&seedURLs, "seed", nil, "a seed video URL or id (repeatable)")
	cmd.Flags().IntVar(&randomSeedCount, "random-seeds", 0, "number of additional seeds to resolve via search queries")
	cmd.Flags().BoolVar(&useRender, "render-fallback", false, "fall back to headless-browser rendering when a page scrape finds no related ids")
	cmd.Flags().BoolVar(&download, "download", false, "acquire a watch-page artifact for every discovered vertex")
	cmd.Flags().BoolVar(&dashboard, "dashboard", false, "show a live fyne dashboard while the crawl runs")
	return cmd
}

func resumeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resume",
		Short: "Resume a crawl from its checkpoint",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if !checkpoint.Exists(cfg.CheckpointPath) {
				return fmt.Errorf("no checkpoint at %s", cfg.CheckpointPath)
			}
			data, err := checkpoint.Load(cfg.CheckpointPath)
			if err != nil {
				return err
			}
			return runCrawl(cfg, data)
		},
	}
	cmd.Flags().BoolVar(&dashboard, "dashboard", false, "show a live fyne dashboard while the crawl runs")
	return cmd
}

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export <output-path>",
		Short: "Export the checkpointed graph to JSON, JSONL, CSV, or XLSX",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			data, err := checkpoint.Load(cfg.CheckpointPath)
			if err != nil {
				return err
			}

			list := make([]*vertex.Vertex, 0, len(data.Discovered))
			for _, v := range data.Discovered {
				list = append(list, v)
			}

			out := export.New()
			if exportFormat == "" {
				return out.ExportAuto(args[0], list)
			}
			return out.Export(args[0], export.Format(exportFormat), list)
		},
	}
	cmd.Flags().StringVar(&exportFormat, "format", "", "json|jsonl|csv|xlsx (inferred from the output path's extension if omitted)")
	return cmd
}

func graphCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "graph <output-path>",
		Short: "Render the durable graph store to DOT, SVG, or PNG",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			store, err := graphstore.Open(cfg.GraphStorePath)
			if err != nil {
				return err
			}
			defer store.Close()

			format := graphviz.Format(graphFormat)
			if format == "" {
				format = graphviz.FormatSVG
			}
			renderer := graphviz.New(store)
			return renderer.Render(context.Background(), args[0], format)
		},
	}
	cmd.Flags().StringVar(&graphFormat, "format", "", "dot|svg|png (default svg)")
	return cmd
}

func loadConfig() (*config.WalkConfig, error) {
	if configPath == "" {
		return config.Default(), nil
	}
	return config.Load(configPath)
}

// runCrawl wires together an Engine, its expander/sink/seed source, runs it
// to completion or interruption, and always writes a final checkpoint and
// export on the way out, so an interrupted run never loses what it already
// discovered.
func runCrawl(cfg *config.WalkConfig, resumeFrom *checkpoint.Data) error {
	log := logging.New(cfg.LogLevel)
	runID := uuid.New().String()
	log.Infow("starting run", "run_id", runID)

	resolver := expander.NewYtDlpResolver()
	pageExpander := expander.NewPageScrapeExpander(resolver, log)

	var exp expander.Expander = pageExpander
	if cfg.UseRenderFallback {
		renderExpander := expander.NewRenderExpander(pageExpander, log)
		defer renderExpander.Close()
		exp = renderExpander
	}

	var dlSink sink.Sink = sink.NoopSink{}
	if cfg.DownloadEnabled {
		dlSink = sink.NewHTTPDownloadSink(cfg.DownloadDir)
	}

	eng, err := engine.New(cfg, exp, dlSink, log)
	if err != nil {
		return fmt.Errorf("build engine: %w", err)
	}
	eng.Checkpointer = func() { saveCheckpoint(eng, cfg, log) }

	if resumeFrom != nil {
		eng.Restore(resumeFrom)
		log.Infow("resumed from checkpoint", "visited", len(resumeFrom.Visited), "discovered", len(resumeFrom.Discovered))
	} else {
		seeder := seed.New(resolver)
		for _, raw := range cfg.SeedURLs {
			id, err := seeder.AddSeed(raw)
			if err != nil {
				log.Warnw("skipping unresolvable seed", "seed", raw, "err", err)
				continue
			}
			eng.Seed(id)
		}
		if cfg.RandomSeeds > 0 {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			ids, err := seeder.AddRandomSeeds(ctx, cfg.RandomSeeds)
			cancel()
			if err != nil {
				log.Warnw("random seed resolution failed", "err", err)
			}
			for _, id := range ids {
				eng.Seed(id)
			}
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Infow("interrupt received, stopping")
		eng.Stop()
	}()

	if dashboard {
		dash := ui.NewDashboard(eng)
		dash.OnStop = eng.Stop
		go func() {
			snap, runErr := eng.Run(ctx)
			if runErr != nil {
				log.Errorw("crawl failed", "err", runErr)
			}
			finalize(eng, cfg, snap, log)
			dash.Window().Close()
		}()
		dash.RunPolling(time.Second)
		return nil
	}

	snap, err := eng.Run(ctx)
	if err != nil {
		return fmt.Errorf("run: %w", err)
	}
	finalize(eng, cfg, snap, log)
	return nil
}

func saveCheckpoint(eng *engine.Engine, cfg *config.WalkConfig, log *zap.SugaredLogger) {
	visited, discovered := eng.Store().Snapshot()
	data := &checkpoint.Data{
		Visited:    visited,
		Discovered: discovered,
		Stats:      eng.Stats().Snapshot().ToCheckpoint(),
	}
	if err := checkpoint.Save(cfg.CheckpointPath, data); err != nil {
		log.Warnw("checkpoint save failed", "err", err)
	}
}

func finalize(eng *engine.Engine, cfg *config.WalkConfig, snap engine.Snapshot, log *zap.SugaredLogger) {
	log.Infow("run finished",
		"discovered", snap.VideosDiscovered,
		"processed", snap.VideosProcessed,
		"errors", snap.Errors,
		"rate", snap.VideosPerSecond,
	)
	saveCheckpoint(eng, cfg, log)

	if cfg.GraphStorePath != "" {
		store, err := graphstore.Open(cfg.GraphStorePath)
		if err != nil {
			log.Warnw("graphstore open failed", "err", err)
		} else {
			defer store.Close()
			if err := store.PutAll(eng.Store().All()); err != nil {
				log.Warnw("graphstore write failed", "err", err)
			}
		}
	}

	if cfg.ExportPath != "" {
		if err := export.New().ExportAuto(cfg.ExportPath, eng.Store().All()); err != nil {
			log.Warnw("export failed", "err", err)
		}
	}
}
