package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"hrml/recruiter-service/internal/api"
	"hrml/recruiter-service/internal/scheduler"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the recruiter HTTP API",
	Long: `Serve the recruiter API on RECRUITER_PORT.

When REFRESH_INTERVAL_MINUTES is above zero the job board is re-fetched and
favorite jobs' applicants are warmed in the background.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	d, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer d.Close()

	// ── Scheduler ────────────────────────────────────────────────────────────
	if d.cfg.RefreshInterval > 0 {
		sched := scheduler.New(d.svc, d.cfg.RefreshInterval)
		if err := sched.Start(ctx); err != nil {
			return fmt.Errorf("scheduler: %w", err)
		}
		defer sched.Stop()
	}

	// ── HTTP server ──────────────────────────────────────────────────────────
	app := api.NewApp(api.NewHandler(d.svc, d.sessions), version)

	errCh := make(chan error, 1)
	go func() {
		log.Printf("[recruiter] v%s listening on :%s", version, d.cfg.Port)
		errCh <- app.Listen(":" + d.cfg.Port)
	}()

	// ── Graceful shutdown ────────────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case <-quit:
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	}

	log.Println("[recruiter] Shutting down…")
	cancel()
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Printf("[recruiter] Shutdown error: %v", err)
	}
	log.Println("[recruiter] Stopped.")
	return nil
}
