// Package email provides email sending functionality.
package email

import (
	"context"
	"log/slog"
	"time"

	"github.com/finance-tracker/wallet/internal/application/usecase/billing"
)

// Worker periodically sends reminders for bills that fall due soon.
type Worker struct {
	reminders    *billing.SendBillRemindersUseCase
	pollInterval time.Duration
}

// WorkerConfig holds configuration for the reminder worker.
type WorkerConfig struct {
	PollInterval time.Duration
}

// DefaultWorkerConfig returns the default worker configuration.
func DefaultWorkerConfig() WorkerConfig {
	return WorkerConfig{
		PollInterval: time.Hour,
	}
}

// NewWorker creates a new reminder worker.
func NewWorker(reminders *billing.SendBillRemindersUseCase, config WorkerConfig) *Worker {
	if config.PollInterval <= 0 {
		config = DefaultWorkerConfig()
	}
	return &Worker{
		reminders:    reminders,
		pollInterval: config.PollInterval,
	}
}

// Start begins the worker loop. It blocks until the context is cancelled.
func (w *Worker) Start(ctx context.Context) {
	slog.Info("Bill reminder worker started", "poll_interval", w.pollInterval)

	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	// Process immediately on start, then on ticker
	w.ProcessNow(ctx)

	for {
		select {
		case <-ctx.Done():
			slog.Info("Bill reminder worker shutting down")
			return
		case <-ticker.C:
			w.ProcessNow(ctx)
		}
	}
}

// ProcessNow runs one reminder pass.
func (w *Worker) ProcessNow(ctx context.Context) {
	out, err := w.reminders.Execute(ctx)
	if err != nil {
		slog.Error("Bill reminder run failed", "error", err)
		return
	}
	if out.Sent+out.Failed+out.Skipped == 0 {
		return
	}
	slog.Info("Bill reminder run finished",
		"sent", out.Sent,
		"skipped", out.Skipped,
		"failed", out.Failed,
	)
}
