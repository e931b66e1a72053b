package ledger

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"fintrack/internal/budget"
	"fintrack/internal/core"
	applog "fintrack/internal/log"
)

// Service orchestrates ledger operations: it validates entries, talks to
// the stores and publishes change events. All computation is delegated to
// the pure functions in core; the service holds no caches and runs no
// background work.
type Service struct {
	store  TransactionStore
	plans  budget.Store
	events EventPublisher
}

// NewService wires the service. events may be nil when no broker is
// configured.
func NewService(store TransactionStore, plans budget.Store, events EventPublisher) *Service {
	return &Service{store: store, plans: plans, events: events}
}

// AddTransaction validates and persists a new entry, assigning an ID when
// the caller did not supply one.
func (s *Service) AddTransaction(ctx context.Context, userID string, e core.TransactionEntry) (core.TransactionEntry, error) {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if err := e.Validate(); err != nil {
		return core.TransactionEntry{}, err
	}
	if err := s.store.CreateTransaction(ctx, userID, e); err != nil {
		return core.TransactionEntry{}, fmt.Errorf("create transaction: %w", err)
	}

	s.publish(ctx, userID, "transaction.created")
	return e, nil
}

// DeleteTransaction removes one entry by ID.
func (s *Service) DeleteTransaction(ctx context.Context, userID, id string) error {
	if err := s.store.DeleteTransaction(ctx, userID, id); err != nil {
		return err
	}

	s.publish(ctx, userID, "transaction.deleted")
	return nil
}

// Transactions returns the user's full raw transaction set.
func (s *Service) Transactions(ctx context.Context, userID string) ([]core.TransactionEntry, error) {
	return s.store.ListTransactions(ctx, userID)
}

// BalanceView assembles the current and available balance from a fresh read
// of both ledgers. Nothing is cached; callers re-derive after mutations.
func (s *Service) BalanceView(ctx context.Context, userID string) (core.BalanceView, error) {
	entries, err := s.store.ListTransactions(ctx, userID)
	if err != nil {
		return core.BalanceView{}, fmt.Errorf("list transactions: %w", err)
	}
	categories, err := s.plans.ListCategories(ctx, userID)
	if err != nil {
		return core.BalanceView{}, fmt.Errorf("list budget categories: %w", err)
	}

	current := core.ComputeBalance(entries)
	return core.BalanceView{
		CurrentBalance:   current,
		AvailableBalance: core.AvailableBalance(current, categories),
	}, nil
}

func (s *Service) publish(ctx context.Context, userID, change string) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishLedgerChanged(ctx, userID, change); err != nil {
		applog.FromContext(ctx).ErrorContext(ctx, "Failed to publish ledger change",
			applog.FieldUserID, userID,
			applog.FieldChange, change,
			applog.FieldError, err)
	}
}
