package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/efebarandurmaz/ranker/api/scorepb"
	"github.com/efebarandurmaz/ranker/internal/config"
	"github.com/efebarandurmaz/ranker/internal/corpus"
	"github.com/efebarandurmaz/ranker/internal/logging"
	"github.com/efebarandurmaz/ranker/internal/observability"
	"github.com/efebarandurmaz/ranker/internal/ranking"
	"github.com/efebarandurmaz/ranker/internal/server"
	"github.com/efebarandurmaz/ranker/internal/store"
)

var version = "0.1.0"

func main() {
	var (
		configPath string
		envFile    string
	)

	rootCmd := &cobra.Command{
		Use:           "ranker",
		Short:         "BM25 ranking service for papers and datasets",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the ScoreGetter gRPC API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), configPath, envFile)
		},
	}
	serveCmd.Flags().StringVar(&configPath, "config", "", "Config file path (optional)")
	serveCmd.Flags().StringVar(&envFile, "env-file", ".env", "Dotenv file loaded before configuration")

	var (
		populateAddr    string
		populateKind    string
		populateTimeout time.Duration
	)
	populateCmd := &cobra.Command{
		Use:   "populate",
		Short: "Rebuild an index on a running server",
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := corpus.ParseKind(populateKind)
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), populateTimeout)
			defer cancel()
			return withClient(populateAddr, func(c scorepb.ScoreGetterClient) error {
				if err := populate(ctx, c, k); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Populated %s index\n", k)
				return nil
			})
		},
	}
	populateCmd.Flags().StringVar(&populateAddr, "addr", "localhost:10000", "Server address")
	populateCmd.Flags().StringVar(&populateKind, "kind", "", "Index to rebuild (paper or dataset)")
	populateCmd.Flags().DurationVar(&populateTimeout, "timeout", 10*time.Minute, "Request timeout")
	_ = populateCmd.MarkFlagRequired("kind")

	var (
		scoreAddr    string
		scoreKind    string
		query        string
		numResults   uint32
		scoreTimeout time.Duration
	)
	scoreCmd := &cobra.Command{
		Use:   "score",
		Short: "Rank papers or datasets against a query",
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := corpus.ParseKind(scoreKind)
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), scoreTimeout)
			defer cancel()
			return withClient(scoreAddr, func(c scorepb.ScoreGetterClient) error {
				_, err := score(ctx, c, k, query, numResults, cmd.OutOrStdout())
				return err
			})
		},
	}
	scoreCmd.Flags().StringVar(&scoreAddr, "addr", "localhost:10000", "Server address")
	scoreCmd.Flags().StringVar(&scoreKind, "kind", "dataset", "Index to query (paper or dataset)")
	scoreCmd.Flags().StringVarP(&query, "query", "q", "", "Query text")
	scoreCmd.Flags().Uint32VarP(&numResults, "num-results", "n", 10, "Maximum number of results")
	scoreCmd.Flags().DurationVar(&scoreTimeout, "timeout", time.Minute, "Request timeout")
	_ = scoreCmd.MarkFlagRequired("query")

	rootCmd.AddCommand(serveCmd, populateCmd, scoreCmd)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runServe(ctx context.Context, configPath, envFile string) error {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("loading %s: %w", envFile, err)
		}
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	logger, err := logging.Setup(cfg.Log, os.Stderr)
	if err != nil {
		return fmt.Errorf("logging: %w", err)
	}

	tp, err := observability.InitTracing(ctx, &observability.TracingConfig{
		ServiceName:    cfg.Tracing.ServiceName,
		ServiceVersion: version,
		Environment:    cfg.Tracing.Environment,
		OTLPEndpoint:   cfg.Tracing.Endpoint,
		SampleRate:     cfg.Tracing.SampleRate,
	})
	if err != nil {
		return fmt.Errorf("tracing: %w", err)
	}

	audit := observability.DisabledAuditLogger()
	if cfg.Audit.Enabled {
		audit, err = observability.NewAuditLogger(&observability.AuditConfig{Enabled: true, OutputPath: cfg.Audit.Output})
		if err != nil {
			return fmt.Errorf("audit: %w", err)
		}
	}

	start := time.Now()
	st, err := store.Open(ctx, cfg.Database)
	audit.LogDBConnect(ctx, cfg.Database.Driver, time.Since(start), err)
	if err != nil {
		return err
	}

	indexOpts, err := ranking.IndexOptions(cfg.Index)
	if err != nil {
		st.Close()
		return err
	}
	metrics := observability.NewRankerMetrics(corpus.KindPaper.String(), corpus.KindDataset.String())
	svc := ranking.New(st, ranking.Config{
		MaxResults:       cfg.Server.MaxResults,
		PopulateInterval: cfg.Index.PopulateInterval,
		Index:            indexOpts,
		Metrics:          metrics,
		Audit:            audit,
		Logger:           logger,
	})

	gs, grpcHealth := server.NewGRPCServer(server.NewScoreServer(svc, cfg.Server.StreamBuffer), server.GRPCConfig{
		Logger:     logger,
		Reflection: cfg.Server.Reflection,
	})

	graceful := server.NewGracefulServer(&server.HealthConfig{
		Version:      version,
		GRPC:         grpcHealth,
		GRPCServices: []string{scorepb.ScoreGetter_ServiceDesc.ServiceName},
		Metrics:      metrics.Handler(),
	}, &server.ShutdownConfig{
		Timeout: cfg.Server.ShutdownTimeout,
		Signals: []os.Signal{syscall.SIGTERM, syscall.SIGINT},
	})
	graceful.Health.RegisterCheck("database", server.DatabaseHealthChecker(st.Ping))
	graceful.Health.RegisterCheck("index.paper", server.IndexHealthChecker(
		func() string { return svc.Papers.Stats().Generation },
		func() int { return svc.Papers.Stats().Documents },
	))
	graceful.Health.RegisterCheck("index.dataset", server.IndexHealthChecker(
		func() string { return svc.Datasets.Stats().Generation },
		func() int { return svc.Datasets.Stats().Documents },
	))
	graceful.Shutdown.Register(
		server.GRPCServerShutdownHook(gs),
		server.TracingShutdownHook(tp.Shutdown),
		server.DatabaseShutdownHook(st.Close),
		server.AuditLoggerShutdownHook(audit.Close),
	)

	lis, err := net.Listen("tcp", cfg.Server.GRPCAddr)
	if err != nil {
		st.Close()
		return fmt.Errorf("listen %s: %w", cfg.Server.GRPCAddr, err)
	}

	graceful.Start(cfg.Server.HealthAddr)
	go func() {
		if err := gs.Serve(lis); err != nil {
			logger.Error("gRPC server stopped", "error", err)
			graceful.Shutdown.Shutdown()
		}
	}()

	if cfg.Index.PopulateOnStart {
		if err := svc.PopulateAll(ctx); err != nil {
			logger.Warn("Initial populate failed", "error", err)
		}
	}
	graceful.Health.SetReady(true)
	logger.Info("Ranker serving",
		"grpc_addr", lis.Addr().String(),
		"health_addr", cfg.Server.HealthAddr,
		"version", version,
	)

	graceful.Wait()
	logger.Info("Ranker stopped")
	return nil
}
