package server

import (
	"context"
	"fmt"

	"fjacquet/spend-insights/internal/logging"

	"github.com/robfig/cron/v3"
)

// Scheduler runs background jobs on cron schedules.
type Scheduler struct {
	cron   *cron.Cron
	logger logging.Logger
}

// NewScheduler creates a scheduler whose jobs recover from panics and never
// overlap with themselves.
func NewScheduler(logger logging.Logger) *Scheduler {
	logger = logging.OrNop(logger)
	cl := cronLogger{logger: logger}
	return &Scheduler{
		cron:   cron.New(cron.WithLogger(cl), cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl))),
		logger: logger,
	}
}

// Add registers job under a standard 5-field cron spec.
func (s *Scheduler) Add(spec, name string, job func() error) error {
	_, err := s.cron.AddFunc(spec, func() {
		if err := job(); err != nil {
			s.logger.WithError(err).Error("Scheduled job failed", logging.F(logging.FieldOperation, name))
			return
		}
		s.logger.Info("Scheduled job completed", logging.F(logging.FieldOperation, name))
	})
	if err != nil {
		return fmt.Errorf("invalid schedule %q for %s: %w", spec, name, err)
	}
	return nil
}

// Len returns the number of registered jobs.
func (s *Scheduler) Len() int {
	return len(s.cron.Entries())
}

// Start runs the scheduler in the background.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop halts the scheduler; the returned context is done once running jobs finish.
func (s *Scheduler) Stop() context.Context {
	return s.cron.Stop()
}

// cronLogger adapts logging.Logger to cron.Logger.
type cronLogger struct {
	logger logging.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Debug(msg, pairs(keysAndValues)...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.WithError(err).Error(msg, pairs(keysAndValues)...)
}

func pairs(keysAndValues []interface{}) []logging.Field {
	fields := make([]logging.Field, 0, len(keysAndValues)/2)
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		fields = append(fields, logging.F(fmt.Sprint(keysAndValues[i]), keysAndValues[i+1]))
	}
	return fields
}
