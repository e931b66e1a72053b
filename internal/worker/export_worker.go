// Package worker rebuilds external reports in response to ledger change
// events.
package worker

import (
	"context"
	"fmt"
	"log/slog"

	"fintrack/internal/amqp"
	"fintrack/internal/export"
	"fintrack/internal/ledger"
)

// ExportWorker regenerates a user's monthly report whenever their ledger
// changes. The message only names the user; the worker reads the current
// ledger from storage, so replays and duplicates are harmless.
type ExportWorker struct {
	store  ledger.TransactionStore
	writer export.ReportWriter
}

func NewExportWorker(store ledger.TransactionStore, writer export.ReportWriter) *ExportWorker {
	return &ExportWorker{store: store, writer: writer}
}

// HandleLedgerChanged processes a single ledger change message.
func (w *ExportWorker) HandleLedgerChanged(ctx context.Context, msg *amqp.LedgerChangedMessage) error {
	slog.InfoContext(ctx, "Processing ledger change",
		"user_id", msg.UserID,
		"change", msg.Change)

	entries, err := w.store.ListTransactions(ctx, msg.UserID)
	if err != nil {
		return fmt.Errorf("list transactions: %w", err)
	}

	report := export.BuildMonthlyReport(entries)
	if err := w.writer.WriteReport(ctx, msg.UserID, report); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	slog.InfoContext(ctx, "Report rebuilt",
		"user_id", msg.UserID,
		"months", len(report.Months))

	return nil
}
