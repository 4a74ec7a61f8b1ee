// Package scheduler triggers a post run once a day at a fixed local time.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/jonesrussell/north-cloud/postbot/internal/logger"
	"github.com/jonesrussell/north-cloud/postbot/internal/publisher"
	"github.com/robfig/cron/v3"
)

const timeFormat = "2006-01-02 15:04:05 MST"

// Runner performs one post run.
type Runner interface {
	Run(ctx context.Context) (*publisher.PostResult, error)
}

// Status is a snapshot of the scheduler state.
type Status struct {
	Running   bool
	Spec      string
	NextRun   time.Time
	LastRun   time.Time
	LastError error
	Runs      int
}

// Scheduler runs a Runner daily at hour:minute in a location.
type Scheduler struct {
	cron     *cron.Cron
	schedule cron.Schedule
	spec     string
	loc      *time.Location
	runner   Runner
	log      logger.Logger

	mu      sync.RWMutex
	ctx     context.Context
	cancel  context.CancelFunc
	running bool
	lastRun time.Time
	lastErr error
	runs    int
}

// Spec returns the five-field cron expression for a daily slot.
func Spec(hour, minute int) string {
	return fmt.Sprintf("%d %d * * *", minute, hour)
}

// New creates a scheduler for the daily slot hour:minute in loc.
func New(hour, minute int, loc *time.Location, runner Runner, log logger.Logger) (*Scheduler, error) {
	if loc == nil {
		return nil, errors.New("scheduler: location is required")
	}
	if log == nil {
		log = logger.NewNop()
	}

	spec := Spec(hour, minute)
	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
	schedule, err := parser.Parse(spec)
	if err != nil {
		return nil, fmt.Errorf("parse schedule %q: %w", spec, err)
	}

	cl := cronLogger{log: log}
	s := &Scheduler{
		cron: cron.New(
			cron.WithParser(parser),
			cron.WithLocation(loc),
			cron.WithLogger(cl),
			cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
		),
		schedule: schedule,
		spec:     spec,
		loc:      loc,
		runner:   runner,
		log:      log,
	}

	s.cron.Schedule(schedule, cron.FuncJob(s.trigger))
	return s, nil
}

// Start begins waiting for the daily slot. Runs use a context derived
// from ctx and are cancelled by Stop.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return
	}

	s.ctx, s.cancel = context.WithCancel(ctx)
	s.running = true
	s.cron.Start()

	s.log.Info("Scheduler started",
		logger.String("schedule", s.spec),
		logger.String("timezone", s.loc.String()),
		logger.String("next_run", s.NextAfter(time.Now()).Format(timeFormat)),
	)
}

// Stop stops the scheduler and waits for a run in progress to finish.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	cancel := s.cancel
	s.mu.Unlock()

	<-s.cron.Stop().Done()
	cancel()
	s.log.Info("Scheduler stopped")
}

// NextAfter returns the first slot strictly after t.
func (s *Scheduler) NextAfter(t time.Time) time.Time {
	return s.schedule.Next(t.In(s.loc))
}

// RunOnce performs one run. A failure is logged and recorded; it never
// stops the scheduler.
func (s *Scheduler) RunOnce(ctx context.Context) {
	s.log.Info("Scheduled run starting", logger.String("triggered_at", time.Now().In(s.loc).Format(timeFormat)))

	res, err := s.runner.Run(ctx)

	s.mu.Lock()
	s.lastRun = time.Now()
	s.lastErr = err
	s.runs++
	s.mu.Unlock()

	if err != nil {
		s.log.Error("Scheduled posting failed", logger.Error(err),
			logger.String("next_run", s.NextAfter(time.Now()).Format(timeFormat)))
		return
	}
	s.log.Info("Scheduled posting completed successfully", logger.String("post_id", res.ID))
}

// Status returns the current scheduler state.
func (s *Scheduler) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Status{
		Running:   s.running,
		Spec:      s.spec,
		NextRun:   s.NextAfter(time.Now()),
		LastRun:   s.lastRun,
		LastError: s.lastErr,
		Runs:      s.runs,
	}
}

func (s *Scheduler) trigger() {
	s.mu.RLock()
	ctx := s.ctx
	s.mu.RUnlock()
	if ctx == nil {
		ctx = context.Background()
	}
	s.RunOnce(ctx)
}

// cronLogger adapts logger.Logger to cron.Logger.
type cronLogger struct {
	log logger.Logger
}

func (c cronLogger) Info(msg string, keysAndValues ...any) {
	c.log.Debug("cron: "+msg, fields(keysAndValues)...)
}

func (c cronLogger) Error(err error, msg string, keysAndValues ...any) {
	c.log.Error("cron: "+msg, append(fields(keysAndValues), logger.Error(err))...)
}

func fields(keysAndValues []any) []logger.Field {
	out := make([]logger.Field, 0, len(keysAndValues)/2)
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		key, ok := keysAndValues[i].(string)
		if !ok {
			key = fmt.Sprint(keysAndValues[i])
		}
		out = append(out, logger.Any(key, keysAndValues[i+1]))
	}
	return out
}
