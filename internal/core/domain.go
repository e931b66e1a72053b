package core

import (
	"strings"
	"time"
)

// EntryKind tells whether a transaction adds to or subtracts from the
// balance. Amounts are always stored as positive magnitudes; the kind is the
// only carrier of sign. Never infer direction from an amount.
type EntryKind string

const (
	KindIncome  EntryKind = "Income"
	KindExpense EntryKind = "Expense"
)

// Valid reports whether k is one of the two known kinds.
func (k EntryKind) Valid() bool {
	return k == KindIncome || k == KindExpense
}

type (
	// TransactionEntry is one immutable ledger record. Edits are modeled by
	// collaborators as delete+insert; the engine never mutates an entry.
	TransactionEntry struct {
		ID         string
		Kind       EntryKind
		Amount     Money
		Category   string
		OccurredAt time.Time
		Note       string
	}

	// PlanItem is one allocation line inside a budget category.
	PlanItem struct {
		ID          string
		Description string
		Amount      Money
		CreatedAt   time.Time
	}

	// BudgetCategory is the sub-ledger bucket. TotalAmount is denormalized
	// and must equal the sum of item amounts after every engine operation;
	// it is always recomputed from the full item list, never patched with a
	// delta.
	BudgetCategory struct {
		ID          string
		Name        string
		Items       []PlanItem
		TotalAmount Money
		CreatedAt   time.Time
	}

	// BalanceView pairs the ledger balance with what is left after planned
	// allocations. AvailableBalance may be negative; the engine does not
	// clamp it.
	BalanceView struct {
		CurrentBalance   Money
		AvailableBalance Money
	}
)

// Validate checks the construction-time invariants of an entry. A zero
// OccurredAt is tolerated here; the time-range filter excludes such entries
// from dated views.
func (e TransactionEntry) Validate() error {
	if !e.Kind.Valid() {
		return ErrInvalidInput
	}
	if err := e.Amount.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(e.Category) == "" {
		return ErrEmptyName
	}
	return nil
}

// Magnitude returns the stored non-negative amount. Comparisons across
// entries (highest/lowest) are defined over this value with the kind kept
// alongside for display.
func (e TransactionEntry) Magnitude() Money {
	return e.Amount
}

// ItemsTotal sums the category's item amounts from scratch.
func (c BudgetCategory) ItemsTotal() Money {
	var cents int64
	for _, it := range c.Items {
		cents += it.Amount.Cents
	}
	return Money{Cents: cents}
}

// ComputeBalance folds the full transaction set into the current balance.
// Addition is commutative, so the result is invariant under reordering.
// An empty set yields zero.
func ComputeBalance(entries []TransactionEntry) Money {
	var cents int64
	for _, e := range entries {
		switch e.Kind {
		case KindIncome:
			cents += e.Amount.Cents
		case KindExpense:
			cents -= e.Amount.Cents
		}
	}
	return Money{Cents: cents}
}

// AvailableBalance subtracts every category's planned total from the current
// balance. Pure; callers re-derive it after each sub-ledger mutation.
func AvailableBalance(current Money, categories []BudgetCategory) Money {
	cents := current.Cents
	for _, c := range categories {
		cents -= c.TotalAmount.Cents
	}
	return Money{Cents: cents}
}
