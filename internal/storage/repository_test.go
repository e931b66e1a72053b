package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"fintrack/internal/core"
)

func newTestRepository(t *testing.T) *Repository {
	t.Helper()
	repo, err := NewRepository(filepath.Join(t.TempDir(), "fintrack.db"))
	if err != nil {
		t.Fatalf("new repository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestTransactionRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	occurred := time.Date(2024, time.March, 15, 10, 30, 0, 0, time.UTC)
	entry := core.TransactionEntry{
		ID:         "t1",
		Kind:       core.KindExpense,
		Amount:     core.Money{Cents: 4550},
		Category:   "Food",
		OccurredAt: occurred,
		Note:       "lunch",
	}
	if err := repo.CreateTransaction(ctx, "u1", entry); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := repo.ListTransactions(ctx, "u1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(got))
	}
	if got[0].ID != "t1" || got[0].Kind != core.KindExpense || got[0].Amount.Cents != 4550 {
		t.Fatalf("entry mismatch: %+v", got[0])
	}
	if !got[0].OccurredAt.Equal(occurred) {
		t.Fatalf("occurred_at: expected %v, got %v", occurred, got[0].OccurredAt)
	}
	if got[0].Note != "lunch" {
		t.Fatalf("note: got %q", got[0].Note)
	}
}

func TestTransactionsScopedByUser(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	now := time.Now().UTC()
	for _, tc := range []struct{ id, user string }{
		{"a1", "alice"}, {"a2", "alice"}, {"b1", "bob"},
	} {
		err := repo.CreateTransaction(ctx, tc.user, core.TransactionEntry{
			ID: tc.id, Kind: core.KindIncome, Amount: core.Money{Cents: 100},
			Category: "Salary", OccurredAt: now,
		})
		if err != nil {
			t.Fatalf("create %s: %v", tc.id, err)
		}
	}

	alice, err := repo.ListTransactions(ctx, "alice")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(alice) != 2 {
		t.Fatalf("expected 2 entries for alice, got %d", len(alice))
	}

	if err := repo.DeleteTransaction(ctx, "bob", "a1"); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("cross-user delete: expected ErrNotFound, got %v", err)
	}
}

func TestDeleteTransactionNotFound(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	if err := repo.DeleteTransaction(ctx, "u1", "missing"); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListTransactionsOrderedNewestFirst(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	days := []int{10, 25, 3}
	for i, d := range days {
		err := repo.CreateTransaction(ctx, "u1", core.TransactionEntry{
			ID: string(rune('a' + i)), Kind: core.KindExpense,
			Amount: core.Money{Cents: 100}, Category: "Food",
			OccurredAt: time.Date(2024, time.May, d, 0, 0, 0, 0, time.UTC),
		})
		if err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	got, err := repo.ListTransactions(ctx, "u1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	for i := 1; i < len(got); i++ {
		if got[i].OccurredAt.After(got[i-1].OccurredAt) {
			t.Fatalf("entries not newest-first at %d: %v after %v", i, got[i].OccurredAt, got[i-1].OccurredAt)
		}
	}
}

func TestBudgetCategoryLifecycle(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	cat := core.BudgetCategory{ID: "c1", Name: "Vacation", CreatedAt: time.Now().UTC()}
	if err := repo.CreateCategory(ctx, "u1", cat); err != nil {
		t.Fatalf("create category: %v", err)
	}

	items := []core.PlanItem{
		{ID: "i1", Description: "Flights", Amount: core.Money{Cents: 45000}, CreatedAt: time.Now().UTC()},
		{ID: "i2", Description: "Hotel", Amount: core.Money{Cents: 80000}, CreatedAt: time.Now().UTC()},
	}
	if err := repo.ReplaceItems(ctx, "u1", "c1", items, core.Money{Cents: 125000}); err != nil {
		t.Fatalf("replace items: %v", err)
	}

	got, err := repo.GetCategory(ctx, "u1", "c1")
	if err != nil {
		t.Fatalf("get category: %v", err)
	}
	if got.TotalAmount.Cents != 125000 {
		t.Fatalf("total: expected 125000, got %d", got.TotalAmount.Cents)
	}
	if len(got.Items) != 2 || got.Items[0].ID != "i1" || got.Items[1].ID != "i2" {
		t.Fatalf("items out of order: %+v", got.Items)
	}
	if got.ItemsTotal().Cents != got.TotalAmount.Cents {
		t.Fatalf("stored total %d diverges from items sum %d", got.TotalAmount.Cents, got.ItemsTotal().Cents)
	}

	if err := repo.DeleteCategory(ctx, "u1", "c1"); err != nil {
		t.Fatalf("delete category: %v", err)
	}
	if _, err := repo.GetCategory(ctx, "u1", "c1"); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	if err := repo.DeleteCategory(ctx, "u1", "c1"); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("second delete: expected ErrNotFound, got %v", err)
	}
}

func TestReplaceItemsPreservesPositions(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	if err := repo.CreateCategory(ctx, "u1", core.BudgetCategory{ID: "c1", Name: "Gadgets", CreatedAt: time.Now().UTC()}); err != nil {
		t.Fatalf("create category: %v", err)
	}

	first := []core.PlanItem{
		{ID: "i1", Description: "Phone", Amount: core.Money{Cents: 30000}, CreatedAt: time.Now().UTC()},
		{ID: "i2", Description: "Case", Amount: core.Money{Cents: 2000}, CreatedAt: time.Now().UTC()},
		{ID: "i3", Description: "Charger", Amount: core.Money{Cents: 1500}, CreatedAt: time.Now().UTC()},
	}
	if err := repo.ReplaceItems(ctx, "u1", "c1", first, core.Money{Cents: 33500}); err != nil {
		t.Fatalf("replace items: %v", err)
	}

	// Drop the middle item the way a positional removal does.
	second := []core.PlanItem{first[0], first[2]}
	if err := repo.ReplaceItems(ctx, "u1", "c1", second, core.Money{Cents: 31500}); err != nil {
		t.Fatalf("replace items again: %v", err)
	}

	got, err := repo.GetCategory(ctx, "u1", "c1")
	if err != nil {
		t.Fatalf("get category: %v", err)
	}
	if len(got.Items) != 2 || got.Items[0].ID != "i1" || got.Items[1].ID != "i3" {
		t.Fatalf("unexpected items after removal: %+v", got.Items)
	}
	if got.TotalAmount.Cents != 31500 {
		t.Fatalf("total: expected 31500, got %d", got.TotalAmount.Cents)
	}
}

func TestReplaceItemsUnknownCategory(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	err := repo.ReplaceItems(ctx, "u1", "ghost", nil, core.Money{})
	if !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListCategoriesScopedByUser(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	now := time.Now().UTC()
	if err := repo.CreateCategory(ctx, "alice", core.BudgetCategory{ID: "c1", Name: "Trip", CreatedAt: now}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := repo.CreateCategory(ctx, "bob", core.BudgetCategory{ID: "c2", Name: "Trip", CreatedAt: now}); err != nil {
		t.Fatalf("create for second user: %v", err)
	}

	cats, err := repo.ListCategories(ctx, "alice")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(cats) != 1 || cats[0].ID != "c1" {
		t.Fatalf("expected only alice's category, got %+v", cats)
	}
}
