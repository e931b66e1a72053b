// Package ledger defines the storage collaborator contracts for the
// transaction ledger and the service that orchestrates validation, storage
// and change notification around the pure engine functions.
package ledger

import (
	"context"

	"fintrack/internal/core"
)

type (
	// TransactionStore is the outbound contract for transaction records.
	// The ledger is append-mostly: entries are created and deleted, never
	// updated in place.
	TransactionStore interface {
		ListTransactions(ctx context.Context, userID string) ([]core.TransactionEntry, error)
		CreateTransaction(ctx context.Context, userID string, e core.TransactionEntry) error
		// DeleteTransaction fails with core.ErrNotFound for unknown IDs.
		DeleteTransaction(ctx context.Context, userID, id string) error
	}

	// EventPublisher announces ledger changes to downstream consumers (the
	// export worker). Best-effort: a failed publish is logged, never
	// surfaced to the user whose write already succeeded.
	EventPublisher interface {
		PublishLedgerChanged(ctx context.Context, userID, change string) error
	}
)
