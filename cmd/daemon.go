package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/naka-gawa/profilegen/internal/metrics"
	"github.com/naka-gawa/profilegen/internal/scheduler"
)

var daemonCmd = &cobra.Command{
	Use:   "daemon",
	Short: "Runs the pipeline on a cron schedule until interrupted",
	Long: `Runs the full pipeline on a cron schedule (daily at midnight by default)
and serves Prometheus metrics. A failed run is counted and logged but does
not stop the daemon. SIGINT or SIGTERM shuts it down gracefully.`,
	Run: func(cmd *cobra.Command, args []string) {
		logger := newLogger(cmd)

		cfg, err := loadConfig(cmd)
		if err != nil {
			fail("Error: %v", err)
		}
		if cron, _ := cmd.Flags().GetString("cron"); cron != "" {
			cfg.Cron = cron
		}
		if addr, _ := cmd.Flags().GetString("metrics-addr"); addr != "" {
			cfg.MetricsAddr = addr
		}

		pipeline, err := buildPipeline(cmd, cfg, logger)
		if err != nil {
			fail("Error: %v", err)
		}

		m := metrics.New()
		sched, err := scheduler.New(logger)
		if err != nil {
			fail("Error: %v", err)
		}

		task := func() {
			start := time.Now()
			runErr := pipeline.Run(context.Background())
			m.ObserveRun(runErr, time.Since(start))
			if runErr != nil {
				fmt.Fprintf(os.Stderr, "Scheduled pipeline run failed: %v\n", runErr)
				return
			}
			logger.Println("Scheduled pipeline run completed.")
		}
		if _, err := sched.ScheduleCron(cfg.Cron, "pipeline-run", task); err != nil {
			fail("Error: %v", err)
		}
		sched.Start()

		server := &http.Server{Addr: cfg.MetricsAddr, Handler: m.Handler()}
		go func() {
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				fmt.Fprintf(os.Stderr, "Metrics server failed: %v\n", err)
			}
		}()
		fmt.Printf("Daemon started: cron %q, metrics on %s\n", cfg.Cron, cfg.MetricsAddr)

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		<-ctx.Done()

		fmt.Println("Shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			fmt.Fprintf(os.Stderr, "Metrics server shutdown: %v\n", err)
		}
		if err := sched.Shutdown(); err != nil {
			fail("Scheduler shutdown failed: %v", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(daemonCmd)
	daemonCmd.Flags().String("cron", "", "Cron expression for scheduled runs (default from config)")
	daemonCmd.Flags().String("metrics-addr", "", "Listen address for the Prometheus endpoint")
}
