package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/scribeflow/scribe/agent"
	"github.com/scribeflow/scribe/observability"
	"github.com/scribeflow/scribe/workflow"
)

func main() {
	var (
		configFile    = flag.String("config", "", "Path to workflow config JSON file (optional)")
		topic         = flag.String("topic", "", "Research topic (overrides config)")
		metricsListen = flag.String("metrics-listen", "", "Address for Prometheus metrics endpoint (optional, e.g. :9090)")
		verbose       = flag.Bool("verbose", false, "Enable verbose logging to stderr")
	)
	flag.Parse()

	cfg := workflow.DefaultConfig()
	if *configFile != "" {
		loaded, err := workflow.LoadConfig(*configFile)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		cfg = loaded
	}
	if *topic != "" {
		cfg.Topic = *topic
	}

	logLevel := slog.LevelInfo
	if *verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))

	var observer observability.Observer = observability.NewSlogObserver(logger)

	if *metricsListen != "" {
		registry := prometheus.NewRegistry()
		promObserver, err := observability.NewPromObserver(registry)
		if err != nil {
			log.Fatalf("Failed to create metrics observer: %v", err)
		}
		observer = observability.NewMultiObserver(observer, promObserver)

		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
		go func() {
			if err := http.ListenAndServe(*metricsListen, mux); err != nil {
				logger.Error("metrics endpoint failed", "error", err)
			}
		}()
	}

	wf, err := workflow.New(cfg, workflow.WithObserver(observer))
	if err != nil {
		if errors.Is(err, agent.ErrMissingAPIKey) {
			envName := cfg.Agent.APIKeyEnv
			if envName == "" {
				envName = "OPENAI_API_KEY"
			}
			fmt.Fprintf(os.Stderr, "Error: %s provider requires an API key.\n", cfg.Agent.Provider)
			fmt.Fprintf(os.Stderr, "Set the %s environment variable and try again:\n", envName)
			fmt.Fprintf(os.Stderr, "  export %s=<your key>\n", envName)
			os.Exit(1)
		}
		log.Fatalf("Failed to create workflow: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	result, err := wf.Run(ctx, cfg.Topic)
	if err != nil {
		if errors.Is(err, agent.ErrGeneration) {
			log.Fatalf("Workflow run failed: %v\n(check that your API key is valid and has quota)", err)
		}
		log.Fatalf("Workflow run failed: %v", err)
	}

	fmt.Println("==================================================")
	fmt.Println(result.Summary)
	fmt.Println("==================================================")

	logger.Debug("run finished", "run_id", result.RunID, "messages", len(result.Messages))
}
