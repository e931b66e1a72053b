package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"fintrack/internal/amqp"
	"fintrack/internal/core"
	"fintrack/internal/export"
)

type stubStore struct {
	entries map[string][]core.TransactionEntry
	err     error
}

func (s *stubStore) ListTransactions(_ context.Context, userID string) ([]core.TransactionEntry, error) {
	return s.entries[userID], s.err
}

func (s *stubStore) CreateTransaction(_ context.Context, _ string, _ core.TransactionEntry) error {
	return nil
}

func (s *stubStore) DeleteTransaction(_ context.Context, _, _ string) error {
	return nil
}

type recordingWriter struct {
	users   []string
	reports []export.Report
	err     error
}

func (w *recordingWriter) WriteReport(_ context.Context, userID string, r export.Report) error {
	w.users = append(w.users, userID)
	w.reports = append(w.reports, r)
	return w.err
}

func TestHandleLedgerChanged(t *testing.T) {
	ctx := context.Background()
	store := &stubStore{entries: map[string][]core.TransactionEntry{
		"u1": {
			{
				Kind: core.KindExpense, Amount: core.Money{Cents: 1500}, Category: "Food",
				OccurredAt: time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC),
			},
		},
	}}
	writer := &recordingWriter{}
	w := NewExportWorker(store, writer)

	msg := amqp.NewLedgerChangedMessage("u1", "transaction.created")
	if err := w.HandleLedgerChanged(ctx, msg); err != nil {
		t.Fatalf("handle: %v", err)
	}

	if len(writer.users) != 1 || writer.users[0] != "u1" {
		t.Fatalf("expected one report for u1, got %v", writer.users)
	}
	if len(writer.reports[0].Months) != 1 || writer.reports[0].Months[0].Label != "March 2025" {
		t.Fatalf("unexpected report: %+v", writer.reports[0])
	}
}

func TestHandleLedgerChangedStoreError(t *testing.T) {
	ctx := context.Background()
	store := &stubStore{err: errors.New("db down")}
	writer := &recordingWriter{}
	w := NewExportWorker(store, writer)

	err := w.HandleLedgerChanged(ctx, amqp.NewLedgerChangedMessage("u1", "transaction.created"))
	if err == nil {
		t.Fatal("expected error when store fails")
	}
	if len(writer.users) != 0 {
		t.Fatalf("report written despite store failure")
	}
}

func TestHandleLedgerChangedWriterError(t *testing.T) {
	ctx := context.Background()
	store := &stubStore{entries: map[string][]core.TransactionEntry{}}
	writer := &recordingWriter{err: errors.New("sheets down")}
	w := NewExportWorker(store, writer)

	err := w.HandleLedgerChanged(ctx, amqp.NewLedgerChangedMessage("u1", "transaction.deleted"))
	if err == nil {
		t.Fatal("expected error when writer fails")
	}
}
