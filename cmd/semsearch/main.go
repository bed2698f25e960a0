package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/crossmerch/semsearch/internal/config"
	"github.com/crossmerch/semsearch/internal/embedding/openai"
	"github.com/crossmerch/semsearch/internal/httpapi"
	"github.com/crossmerch/semsearch/internal/observability"
	"github.com/crossmerch/semsearch/internal/pipeline"
	"github.com/crossmerch/semsearch/internal/server"
	"github.com/crossmerch/semsearch/internal/store"
	"github.com/crossmerch/semsearch/internal/store/memory"
	"github.com/crossmerch/semsearch/internal/store/qdrant"
)

func main() {
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "semsearch",
		Short: "Cross-lingual semantic product search service",
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "configs/semsearch.yaml", "Config file path")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the search HTTP service",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(configPath)
		},
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			fmt.Printf("embedder: model=%s base_url=%s dimension=%d\n",
				cfg.Embedder.Model, cfg.Embedder.BaseURL, cfg.Embedder.Dimension)
			fmt.Printf("store:    backend=%s host=%s port=%d collection=%s\n",
				cfg.Store.Backend, cfg.Store.Host, cfg.Store.Port, cfg.Store.Collection)
			fmt.Printf("http:     addr=%s\n", cfg.HTTP.Addr)
			fmt.Printf("log:      level=%s format=%s\n", cfg.Log.Level, cfg.Log.Format)
			return nil
		},
	}

	rootCmd.AddCommand(serveCmd, configCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func serve(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	setupLogging(cfg.Log)

	ctx := context.Background()

	tp, err := observability.InitTracing(ctx, &observability.TracingConfig{
		ServiceName:  "semsearch",
		Environment:  cfg.Tracing.Environment,
		OTLPEndpoint: cfg.Tracing.OTLPEndpoint,
		SampleRate:   cfg.Tracing.SampleRate,
	})
	if err != nil {
		return fmt.Errorf("init tracing: %w", err)
	}

	provider := openai.New(cfg.Embedder.APIKey, cfg.Embedder.Model, cfg.Embedder.BaseURL, cfg.Embedder.Dimension)

	var docs store.DocumentStore
	switch cfg.Store.Backend {
	case "memory":
		docs = memory.New(cfg.Embedder.Dimension)
	default:
		docs, err = qdrant.New(ctx, cfg.Store.Host, cfg.Store.Port, cfg.Store.Collection, cfg.Embedder.Dimension)
		if err != nil {
			return err
		}
	}
	if err := docs.EnsureSchema(ctx); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}

	metrics := observability.NewMetrics()
	indexer := pipeline.NewIndexer(provider, docs, metrics)
	searcher := pipeline.NewSearcher(provider, docs, metrics)

	srv := httpapi.NewServer(&httpapi.Config{ListenAddr: cfg.HTTP.Addr}, indexer, searcher, metrics)

	shutdown := server.NewShutdownHandler(nil)
	shutdown.RegisterHook(server.HTTPServerShutdownHook("httpapi", srv.Stop))
	shutdown.RegisterHook(server.StoreShutdownHook(docs.Close))
	shutdown.RegisterHook(server.TracerShutdownHook(tp.Shutdown))
	shutdown.Start()

	go func() {
		if err := srv.Start(); err != nil {
			slog.Error("http server stopped", "error", err)
			shutdown.Shutdown()
		}
	}()

	slog.Info("semsearch ready",
		"addr", cfg.HTTP.Addr,
		"store", cfg.Store.Backend,
		"model", cfg.Embedder.Model,
	)
	shutdown.Wait()
	return nil
}

func setupLogging(cfg config.LogConfig) {
	level := slog.LevelInfo
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler))
}
