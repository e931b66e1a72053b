// Package budget implements the allocation engine over the plan sub-ledger:
// category and item CRUD with the totalAmount invariant, and the available
// balance derivation against the transaction ledger.
package budget

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"fintrack/internal/core"
	applog "fintrack/internal/log"
)

// Store is the storage collaborator contract for the budget sub-ledger.
// Every mutation either succeeds fully or fails with a reported error; the
// engine never sees a partial write.
type Store interface {
	ListCategories(ctx context.Context, userID string) ([]core.BudgetCategory, error)
	// GetCategory fails with core.ErrNotFound for unknown or deleted IDs.
	GetCategory(ctx context.Context, userID, categoryID string) (core.BudgetCategory, error)
	CreateCategory(ctx context.Context, userID string, c core.BudgetCategory) error
	// ReplaceItems atomically swaps a category's item list and denormalized
	// total.
	ReplaceItems(ctx context.Context, userID, categoryID string, items []core.PlanItem, total core.Money) error
	// DeleteCategory removes the category and all its items as one unit and
	// fails with core.ErrNotFound when the category does not exist.
	DeleteCategory(ctx context.Context, userID, categoryID string) error
}

// Publisher notifies downstream consumers that a user's ledger-visible state
// changed. Publishing is best-effort; failures never fail the mutation.
type Publisher interface {
	PublishLedgerChanged(ctx context.Context, userID, change string) error
}

// Planner runs the allocation operations. It holds no state of its own:
// every mutation re-reads the category from the store and recomputes the
// denormalized total from the full item list, never from a cached delta, so
// retried calls stay idempotent-safe. Concurrent writers to the same
// category must be serialized by the storage collaborator.
type Planner struct {
	store  Store
	events Publisher
}

// NewPlanner wires a planner to its store. events may be nil.
func NewPlanner(store Store, events Publisher) *Planner {
	return &Planner{store: store, events: events}
}

// CreateCategory adds an empty plan bucket. The name must be non-empty and
// unique among the user's active categories.
func (p *Planner) CreateCategory(ctx context.Context, userID, name string) (core.BudgetCategory, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return core.BudgetCategory{}, core.ErrEmptyName
	}

	existing, err := p.store.ListCategories(ctx, userID)
	if err != nil {
		return core.BudgetCategory{}, fmt.Errorf("list categories: %w", err)
	}
	for _, c := range existing {
		if strings.EqualFold(c.Name, name) {
			return core.BudgetCategory{}, core.ErrDuplicateName
		}
	}

	cat := core.BudgetCategory{
		ID:        uuid.NewString(),
		Name:      name,
		Items:     nil,
		CreatedAt: time.Now(),
	}
	if err := p.store.CreateCategory(ctx, userID, cat); err != nil {
		return core.BudgetCategory{}, fmt.Errorf("create category: %w", err)
	}

	p.publish(ctx, userID, "budget.category.created")
	return cat, nil
}

// AddItem appends an allocation line and recomputes the category total from
// scratch. Fails with ErrNotFound for deleted or unknown categories and
// ErrInvalidAmount for non-positive amounts.
func (p *Planner) AddItem(ctx context.Context, userID, categoryID, description string, amount core.Money) (core.BudgetCategory, error) {
	if err := amount.Validate(); err != nil {
		return core.BudgetCategory{}, err
	}

	cat, err := p.store.GetCategory(ctx, userID, categoryID)
	if err != nil {
		return core.BudgetCategory{}, err
	}

	cat.Items = append(cat.Items, core.PlanItem{
		ID:          uuid.NewString(),
		Description: strings.TrimSpace(description),
		Amount:      amount,
		CreatedAt:   time.Now(),
	})
	cat.TotalAmount = cat.ItemsTotal()

	if err := p.store.ReplaceItems(ctx, userID, categoryID, cat.Items, cat.TotalAmount); err != nil {
		return core.BudgetCategory{}, fmt.Errorf("replace items: %w", err)
	}

	p.publish(ctx, userID, "budget.item.added")
	return cat, nil
}

// RemoveItem drops the item at the given position and recomputes the total
// from the remainder. The index is validated against the item list as it
// exists at removal time; positional removal is racy under concurrent edits,
// which is why writers must be serialized per category.
func (p *Planner) RemoveItem(ctx context.Context, userID, categoryID string, index int) (core.BudgetCategory, error) {
	cat, err := p.store.GetCategory(ctx, userID, categoryID)
	if err != nil {
		return core.BudgetCategory{}, err
	}
	if index < 0 || index >= len(cat.Items) {
		return core.BudgetCategory{}, core.ErrIndexOutOfRange
	}

	cat.Items = append(cat.Items[:index], cat.Items[index+1:]...)
	cat.TotalAmount = cat.ItemsTotal()

	if err := p.store.ReplaceItems(ctx, userID, categoryID, cat.Items, cat.TotalAmount); err != nil {
		return core.BudgetCategory{}, fmt.Errorf("replace items: %w", err)
	}

	p.publish(ctx, userID, "budget.item.removed")
	return cat, nil
}

// DeleteCategory removes the category and its items as one atomic unit.
// Calling it twice is safe: the second call reports ErrNotFound.
func (p *Planner) DeleteCategory(ctx context.Context, userID, categoryID string) error {
	if err := p.store.DeleteCategory(ctx, userID, categoryID); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return core.ErrNotFound
		}
		return fmt.Errorf("delete category: %w", err)
	}

	p.publish(ctx, userID, "budget.category.deleted")
	return nil
}

// Categories lists the user's active plan buckets.
func (p *Planner) Categories(ctx context.Context, userID string) ([]core.BudgetCategory, error) {
	return p.store.ListCategories(ctx, userID)
}

func (p *Planner) publish(ctx context.Context, userID, change string) {
	if p.events == nil {
		return
	}
	if err := p.events.PublishLedgerChanged(ctx, userID, change); err != nil {
		applog.FromContext(ctx).ErrorContext(ctx, "Failed to publish ledger change",
			applog.FieldUserID, userID,
			applog.FieldChange, change,
			applog.FieldError, err)
	}
}
