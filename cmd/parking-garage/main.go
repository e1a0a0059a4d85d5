package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"parking-garage/internal/config"
	"parking-garage/internal/logging"
	"parking-garage/internal/parking"
	"parking-garage/internal/server"
)

var (
	cfg  = config.Load()
	port string
)

var rootCmd = &cobra.Command{
	Use:   "parking-garage",
	Short: "Multi-floor parking garage simulator",
	Long: `Simulates a 3-floor garage with 26 spots per floor and a flat $10/hour fee.

Run without a subcommand to park and unpark one car and print the result.
That run exports telemetry only when OTEL_EXPORTER_OTLP_ENDPOINT is set.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withGarage(cmd.Context(), cfg.OTelEndpointSet, func(ctx context.Context, lot *parking.InstrumentedParkingLot, _ *parking.TelemetryProvider) error {
			return parking.RunDemo(ctx, cmd.OutOrStdout(), lot)
		})
	},
}

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Read park/unpark commands from stdin",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withGarage(cmd.Context(), true, func(ctx context.Context, lot *parking.InstrumentedParkingLot, tp *parking.TelemetryProvider) error {
			parking.NewShell(lot, &sync.Mutex{}, tp, cmd.InOrStdin(), cmd.OutOrStdout()).Run(ctx)
			return nil
		})
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the garage over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withGarage(cmd.Context(), true, func(ctx context.Context, lot *parking.InstrumentedParkingLot, _ *parking.TelemetryProvider) error {
			return serve(ctx, server.NewServer(port, cfg.OTelServiceName, lot, &sync.Mutex{}))
		})
	},
}

var bothCmd = &cobra.Command{
	Use:   "both",
	Short: "Serve over HTTP and read shell commands against the same garage",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withGarage(cmd.Context(), true, func(ctx context.Context, lot *parking.InstrumentedParkingLot, tp *parking.TelemetryProvider) error {
			var mu sync.Mutex
			srv := server.NewServer(port, cfg.OTelServiceName, lot, &mu)
			shell := parking.NewShell(lot, &mu, tp, cmd.InOrStdin(), cmd.OutOrStdout())

			g, gctx := errgroup.WithContext(ctx)
			g.Go(func() error {
				return serve(gctx, srv)
			})

			// The shell may sit in a blocking stdin read, so it is not waited on.
			shellDone := make(chan struct{})
			go func() {
				shell.Run(gctx)
				close(shellDone)
			}()
			g.Go(func() error {
				select {
				case <-shellDone:
					logging.Info(gctx, "CLI exited")
					return errShellClosed
				case <-gctx.Done():
					return nil
				}
			})

			if err := g.Wait(); err != nil && !errors.Is(err, errShellClosed) {
				return err
			}
			return nil
		})
	},
}

var errShellClosed = errors.New("shell closed")

func init() {
	for _, cmd := range []*cobra.Command{serveCmd, bothCmd} {
		cmd.Flags().StringVarP(&port, "port", "p", cfg.Port, "Port for HTTP server")
	}
	rootCmd.AddCommand(shellCmd, serveCmd, bothCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// withGarage sets up telemetry and logging, builds the garage and tears
// telemetry down once run returns. Without export, spans and metrics go to
// a no-op provider.
func withGarage(ctx context.Context, export bool, run func(context.Context, *parking.InstrumentedParkingLot, *parking.TelemetryProvider) error) error {
	telemetryProvider, err := newTelemetry(ctx, export)
	if err != nil {
		return fmt.Errorf("initialize telemetry: %w", err)
	}
	defer shutdownTelemetry(telemetryProvider)

	logging.Init(os.Stderr, cfg.OTelServiceName, cfg.Environment)

	lot, err := parking.NewInstrumentedParkingLot(parking.DefaultFloors, telemetryProvider)
	if err != nil {
		return fmt.Errorf("create parking lot: %w", err)
	}

	return run(ctx, lot, telemetryProvider)
}

func newTelemetry(ctx context.Context, export bool) (*parking.TelemetryProvider, error) {
	if !export {
		return parking.NewNoopTelemetryProvider(), nil
	}
	return parking.NewTelemetryProvider(ctx, cfg.OTelServiceName, cfg.OTelEndpoint)
}

func serve(ctx context.Context, srv *server.Server) error {
	go func() {
		<-ctx.Done()
		logging.Info(context.Background(), "received shutdown signal")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logging.Error(shutdownCtx, "server shutdown error", "error", err)
		}
	}()

	return srv.Start()
}

func shutdownTelemetry(telemetryProvider *parking.TelemetryProvider) {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := telemetryProvider.Shutdown(shutdownCtx); err != nil {
		fmt.Fprintf(os.Stderr, "Error shutting down telemetry: %v\n", err)
	}
}
