//go:build unit
// +build unit

package app

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/MGTheTrain/book-organiser/internal/domain/books"
	"github.com/MGTheTrain/book-organiser/internal/domain/summaries"
	"github.com/MGTheTrain/book-organiser/internal/pkg/config"
	"github.com/MGTheTrain/book-organiser/internal/pkg/metrics"
	"github.com/MGTheTrain/book-organiser/internal/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func newTestPoller(t *testing.T) (*SummaryPoller, *testutil.MockSummaryRepository, *testutil.MockGenerator) {
	t.Helper()
	repo := new(testutil.MockSummaryRepository)
	gen := new(testutil.MockGenerator)
	m := metrics.New()

	p, err := NewSummaryPoller(repo, gen, &config.PollerSettings{Enabled: true, Schedule: "@every 1m"}, testutil.SetupTestLogger(t), m)
	require.NoError(t, err)
	p.now = func() time.Time { return fixedNow }
	return p, repo, gen
}

func pendingSummary(id uint) *summaries.AISummary {
	return &summaries.AISummary{
		ID:     id,
		BookID: id,
		Book:   &books.Book{ID: id, UserID: "owner", Title: "Dune", Authors: []string{"Frank Herbert"}},
		Model:  summaries.DefaultModel,
	}
}

func TestNewSummaryPoller_InvalidSchedule(t *testing.T) {
	_, err := NewSummaryPoller(
		new(testutil.MockSummaryRepository),
		new(testutil.MockGenerator),
		&config.PollerSettings{Enabled: true, Schedule: "not a schedule"},
		testutil.SetupTestLogger(t),
		nil,
	)
	assert.ErrorContains(t, err, "invalid poller schedule")
}

func TestSummaryPoller_RunOnce_CompletesPending(t *testing.T) {
	ctx := context.Background()
	p, repo, gen := newTestPoller(t)
	summary := pendingSummary(1)

	repo.On("ListPending", ctx).Return([]*summaries.AISummary{summary}, nil)
	gen.On("Generate", ctx, summaries.FieldSummary, summary.Book).Return("A desert planet.", nil)
	gen.On("Generate", ctx, summaries.FieldKeyQuotes, summary.Book).Return("Fear is the mind-killer.", nil)
	gen.On("Generate", ctx, summaries.FieldKeyThemes, summary.Book).Return("Ecology", nil)
	gen.On("Model").Return("llama3.2")
	repo.On("SaveGenerated", ctx, mock.MatchedBy(func(prev *summaries.AISummary) bool {
		return prev.IsPending() && prev.Summary == "" && prev != summary
	}), summary).Return(nil).Once()

	completed, err := p.RunOnce(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, completed)

	assert.True(t, summary.IsGenerated)
	assert.False(t, summary.IsPending())
	assert.Equal(t, "llama3.2", summary.Model)
	require.NotNil(t, summary.GeneratedAt)
	assert.Equal(t, fixedNow, *summary.GeneratedAt)
	repo.AssertExpectations(t)
	gen.AssertExpectations(t)
}

func TestSummaryPoller_RunOnce_OnlyMissingFields(t *testing.T) {
	ctx := context.Background()
	p, repo, gen := newTestPoller(t)
	summary := pendingSummary(1)
	summary.Summary = "Already there"
	summary.KeyQuotes = "Already there too"

	repo.On("ListPending", ctx).Return([]*summaries.AISummary{summary}, nil)
	gen.On("Generate", ctx, summaries.FieldKeyThemes, summary.Book).Return("Power", nil).Once()
	gen.On("Model").Return("llama3.2")
	repo.On("SaveGenerated", ctx, mock.MatchedBy(func(prev *summaries.AISummary) bool {
		return prev.Summary == "Already there" && prev.KeyThemes == ""
	}), summary).Return(nil)

	completed, err := p.RunOnce(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, completed)
	assert.Equal(t, "Already there", summary.Summary)
	assert.Equal(t, "Power", summary.KeyThemes)
	gen.AssertNumberOfCalls(t, "Generate", 1)
}

func TestSummaryPoller_RunOnce_FailureLeavesPending(t *testing.T) {
	ctx := context.Background()
	p, repo, gen := newTestPoller(t)
	failing := pendingSummary(1)
	healthy := pendingSummary(2)

	repo.On("ListPending", ctx).Return([]*summaries.AISummary{failing, healthy}, nil)
	gen.On("Generate", ctx, summaries.FieldSummary, failing.Book).Return("Partial", nil)
	gen.On("Generate", ctx, summaries.FieldKeyQuotes, failing.Book).Return("", errors.New("model offline"))
	gen.On("Generate", ctx, mock.Anything, healthy.Book).Return("text", nil)
	gen.On("Model").Return("llama3.2")
	repo.On("SaveGenerated", ctx, mock.Anything, mock.Anything).Return(nil)

	completed, err := p.RunOnce(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, completed)

	assert.True(t, failing.IsPending())
	assert.Equal(t, "Partial", failing.Summary)
	assert.Nil(t, failing.GeneratedAt)
	assert.True(t, healthy.IsGenerated)
	repo.AssertNumberOfCalls(t, "SaveGenerated", 2)
}

func TestSummaryPoller_RunOnce_RegeneratedDuringGeneration(t *testing.T) {
	ctx := context.Background()
	p, repo, gen := newTestPoller(t)
	summary := pendingSummary(1)

	repo.On("ListPending", ctx).Return([]*summaries.AISummary{summary}, nil)
	gen.On("Generate", ctx, mock.Anything, summary.Book).Return("text", nil)
	gen.On("Model").Return("llama3.2")
	repo.On("SaveGenerated", ctx, mock.Anything, summary).
		Return(fmt.Errorf("ai summary with ID 1: %w", summaries.ErrConflict))

	completed, err := p.RunOnce(ctx)
	require.NoError(t, err)
	assert.Zero(t, completed)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestSummaryPoller_RunOnce_ListFailure(t *testing.T) {
	ctx := context.Background()
	p, repo, _ := newTestPoller(t)
	repo.On("ListPending", ctx).Return(nil, errors.New("db down"))

	_, err := p.RunOnce(ctx)
	assert.ErrorContains(t, err, "db down")
}

func TestSummaryPoller_RunOnce_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p, repo, gen := newTestPoller(t)
	repo.On("ListPending", ctx).Return([]*summaries.AISummary{pendingSummary(1)}, nil)

	completed, err := p.RunOnce(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, completed)
	gen.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything, mock.Anything)
}

func TestSummaryPoller_RunOnce_SkipsOverlappingPass(t *testing.T) {
	p, repo, _ := newTestPoller(t)

	p.running.Lock()
	defer p.running.Unlock()

	completed, err := p.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Zero(t, completed)
	repo.AssertNotCalled(t, "ListPending", mock.Anything)
}

func TestSummaryPoller_Run_StopsWithContext(t *testing.T) {
	p, repo, _ := newTestPoller(t)
	listed := make(chan struct{}, 1)
	repo.On("ListPending", mock.Anything).Run(func(mock.Arguments) {
		select {
		case listed <- struct{}{}:
		default:
		}
	}).Return([]*summaries.AISummary{}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- p.Run(ctx) }()

	select {
	case <-listed:
	case <-time.After(2 * time.Second):
		t.Fatal("poller did not run the first pass")
	}
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("poller did not stop")
	}
}
