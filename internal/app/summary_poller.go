package app

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/MGTheTrain/book-organiser/internal/domain/summaries"
	"github.com/MGTheTrain/book-organiser/internal/pkg/config"
	"github.com/MGTheTrain/book-organiser/internal/pkg/logger"
	"github.com/MGTheTrain/book-organiser/internal/pkg/metrics"
	"github.com/robfig/cron/v3"
)

// SummaryPoller fills in pending AI summaries on a cron schedule. Runs never
// overlap: a tick that fires while a run is in progress is skipped.
type SummaryPoller struct {
	summaries summaries.SummaryRepository
	generator summaries.Generator
	schedule  string
	logger    logger.Logger
	metrics   *metrics.Metrics
	now       func() time.Time

	running sync.Mutex
	mu      sync.Mutex
	cron    *cron.Cron
}

// NewSummaryPoller creates a poller. The schedule uses robfig/cron syntax.
func NewSummaryPoller(
	repo summaries.SummaryRepository,
	generator summaries.Generator,
	settings *config.PollerSettings,
	logger logger.Logger,
	m *metrics.Metrics,
) (*SummaryPoller, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	if _, err := cron.ParseStandard(settings.Schedule); settings.Enabled && err != nil {
		return nil, fmt.Errorf("invalid poller schedule %q: %w", settings.Schedule, err)
	}

	return &SummaryPoller{
		summaries: repo,
		generator: generator,
		schedule:  settings.Schedule,
		logger:    logger,
		metrics:   m,
		now:       time.Now,
	}, nil
}

// Run performs one pass right away, then keeps polling on the schedule until
// ctx is cancelled. In-flight generation is cancelled together with ctx.
func (p *SummaryPoller) Run(ctx context.Context) error {
	if err := p.Start(ctx); err != nil {
		return err
	}
	p.tick(ctx)

	<-ctx.Done()
	p.Stop()
	return nil
}

// Start registers the schedule and returns immediately
func (p *SummaryPoller) Start(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cron != nil {
		return nil
	}

	c := cron.New(cron.WithChain(
		cron.Recover(cronLogger{p.logger}),
		cron.SkipIfStillRunning(cronLogger{p.logger}),
	))
	if _, err := c.AddFunc(p.schedule, func() { p.tick(ctx) }); err != nil {
		return fmt.Errorf("failed to schedule summary poller: %w", err)
	}
	c.Start()
	p.cron = c

	p.logger.Info("Summary poller started with schedule", p.schedule)
	return nil
}

// Stop halts the schedule and waits for a running pass to return
func (p *SummaryPoller) Stop() {
	p.mu.Lock()
	c := p.cron
	p.cron = nil
	p.mu.Unlock()

	if c == nil {
		return
	}
	<-c.Stop().Done()
	p.logger.Info("Summary poller stopped")
}

func (p *SummaryPoller) tick(ctx context.Context) {
	completed, err := p.RunOnce(ctx)
	if err != nil {
		p.logger.Error("Summary poller run failed:", err)
		return
	}
	if completed > 0 {
		p.logger.Info("Summary poller completed", completed, "summaries")
	}
}

// RunOnce performs a single pass over the pending summaries and returns how
// many were completed. A failure on one summary is logged and leaves it
// pending for the next pass. A pass already in progress makes RunOnce return
// immediately.
func (p *SummaryPoller) RunOnce(ctx context.Context) (int, error) {
	if !p.running.TryLock() {
		p.logger.Debug("Summary poller pass already in progress")
		return 0, nil
	}
	defer p.running.Unlock()

	pending, err := p.summaries.ListPending(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list pending summaries: %w", err)
	}
	defer p.metrics.ObservePollerRun(len(pending))

	completed := 0
	for _, summary := range pending {
		if err := ctx.Err(); err != nil {
			return completed, err
		}
		if summary.Book == nil {
			p.logger.Warn("Skipping ai summary", summary.ID, "without book")
			continue
		}

		if err := p.complete(ctx, summary); err != nil {
			p.logger.Error("Failed to generate ai summary for book", summary.BookID, ":", err)
			continue
		}
		completed++
	}
	return completed, nil
}

// complete generates only the missing fields. Fields generated before a
// failure are stored so that the next pass does not request them again.
// Every write is conditional on the row still holding the text loaded at the
// start, so a Regenerate issued meanwhile is never overwritten.
func (p *SummaryPoller) complete(ctx context.Context, summary *summaries.AISummary) error {
	previous := *summary
	filled := 0
	for _, field := range summary.MissingFields() {
		text, err := p.generator.Generate(ctx, field, summary.Book)
		p.metrics.ObserveSummaryField(string(field), err)
		if err != nil {
			if filled > 0 {
				if saveErr := p.summaries.SaveGenerated(ctx, &previous, summary); saveErr != nil {
					p.logger.Warn("Failed to store partial ai summary", summary.ID, ":", saveErr)
				}
			}
			return fmt.Errorf("generating %s: %w", field, err)
		}
		summary.Set(field, text)
		filled++
	}

	summary.MarkGenerated(p.generator.Model(), p.now())
	if err := p.summaries.SaveGenerated(ctx, &previous, summary); err != nil {
		if errors.Is(err, summaries.ErrConflict) {
			p.logger.Info("Ai summary", summary.ID, "changed during generation, leaving it for the next pass")
		}
		return fmt.Errorf("failed to store ai summary: %w", err)
	}
	return nil
}

// cronLogger routes cron's internal logging through the application logger
type cronLogger struct {
	logger logger.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Debug(append([]interface{}{"cron:", msg}, keysAndValues...)...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Error(append([]interface{}{"cron:", msg, err}, keysAndValues...)...)
}
