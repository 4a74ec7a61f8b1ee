// Package serve implements the serve command: the daily posting schedule
// plus the status server.
package serve

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonesrussell/north-cloud/postbot/cmd/common"
	"github.com/jonesrussell/north-cloud/postbot/internal/logger"
	"github.com/jonesrussell/north-cloud/postbot/internal/metrics"
	"github.com/jonesrussell/north-cloud/postbot/internal/scheduler"
	"github.com/jonesrussell/north-cloud/postbot/internal/status"
	"github.com/spf13/cobra"
)

// Command returns the serve command.
func Command() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Post once a day on the configured schedule",
		Long: `Run the bot in scheduled mode. A post is generated and published every day
at schedule.hour:schedule.minute in schedule.timezone. A failed post is logged
and the bot waits for the next slot. /health and /metrics are served on
status.port unless it is 0.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			deps, err := common.NewCommandDeps()
			if err != nil {
				return fmt.Errorf("failed to get dependencies: %w", err)
			}
			defer func() { _ = deps.Logger.Sync() }()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return run(ctx, deps)
		},
	}
}

func run(ctx context.Context, deps common.CommandDeps) error {
	cfg := deps.Config
	m := metrics.New()

	b, err := common.Bot(ctx, deps, m)
	if err != nil {
		return err
	}

	loc, err := cfg.Schedule.Location()
	if err != nil {
		return err
	}
	sched, err := scheduler.New(cfg.Schedule.Hour, cfg.Schedule.Minute, loc, b, deps.Logger)
	if err != nil {
		return fmt.Errorf("create scheduler: %w", err)
	}

	deps.Logger.Info("Scheduled to post daily",
		logger.Int("hour", cfg.Schedule.Hour),
		logger.Int("minute", cfg.Schedule.Minute),
		logger.String("timezone", cfg.Schedule.Timezone),
		logger.Strings("categories", cfg.Content.Categories),
		logger.Time("next_run", sched.NextAfter(time.Now())),
	)
	sched.Start(ctx)
	defer sched.Stop()

	var srvErr <-chan error
	if cfg.Status.Port > 0 {
		srv := status.NewServer(status.Config{
			Port:           cfg.Status.Port,
			ServiceName:    cfg.Service.Name,
			ServiceVersion: common.Version,
			Debug:          cfg.Service.Debug,
			Checks: map[string]status.HealthChecker{
				"scheduler": status.SchedulerHealthChecker(sched),
			},
			Metrics: m.Handler(),
		}, deps.Logger)
		srvErr = srv.StartAsync()
		defer func() {
			//nolint:contextcheck // ctx is already cancelled at shutdown
			if shutdownErr := srv.Shutdown(context.Background()); shutdownErr != nil {
				deps.Logger.Error("Status server shutdown failed", logger.Error(shutdownErr))
			}
		}()
	}

	deps.Logger.Info("Bot scheduled successfully. Keep this process running to post at the scheduled time.")

	select {
	case <-ctx.Done():
		deps.Logger.Info("Shutdown signal received")
		return nil
	case err = <-srvErr:
		return err
	}
}
