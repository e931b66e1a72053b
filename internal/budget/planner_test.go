package budget

import (
	"context"
	"errors"
	"testing"

	"fintrack/internal/core"
)

// memStore is an in-memory Store used to exercise the planner.
type memStore struct {
	categories map[string][]core.BudgetCategory // userID -> categories
	failWrites bool
}

var errStoreDown = errors.New("store down")

func newMemStore() *memStore {
	return &memStore{categories: make(map[string][]core.BudgetCategory)}
}

func (s *memStore) ListCategories(_ context.Context, userID string) ([]core.BudgetCategory, error) {
	out := make([]core.BudgetCategory, len(s.categories[userID]))
	copy(out, s.categories[userID])
	return out, nil
}

func (s *memStore) GetCategory(_ context.Context, userID, categoryID string) (core.BudgetCategory, error) {
	for _, c := range s.categories[userID] {
		if c.ID == categoryID {
			return c, nil
		}
	}
	return core.BudgetCategory{}, core.ErrNotFound
}

func (s *memStore) CreateCategory(_ context.Context, userID string, c core.BudgetCategory) error {
	if s.failWrites {
		return errStoreDown
	}
	s.categories[userID] = append(s.categories[userID], c)
	return nil
}

func (s *memStore) ReplaceItems(_ context.Context, userID, categoryID string, items []core.PlanItem, total core.Money) error {
	if s.failWrites {
		return errStoreDown
	}
	for i, c := range s.categories[userID] {
		if c.ID == categoryID {
			c.Items = items
			c.TotalAmount = total
			s.categories[userID][i] = c
			return nil
		}
	}
	return core.ErrNotFound
}

func (s *memStore) DeleteCategory(_ context.Context, userID, categoryID string) error {
	cats := s.categories[userID]
	for i, c := range cats {
		if c.ID == categoryID {
			s.categories[userID] = append(cats[:i], cats[i+1:]...)
			return nil
		}
	}
	return core.ErrNotFound
}

// checkInvariant asserts totalAmount == sum(items.amount) for every stored
// category.
func checkInvariant(t *testing.T, s *memStore, userID string) {
	t.Helper()
	for _, c := range s.categories[userID] {
		if c.TotalAmount.Cents != c.ItemsTotal().Cents {
			t.Fatalf("category %q: total %d != items sum %d", c.Name, c.TotalAmount.Cents, c.ItemsTotal().Cents)
		}
	}
}

func TestCreateCategory(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	p := NewPlanner(store, nil)

	cat, err := p.CreateCategory(ctx, "u1", "  Vacation ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cat.ID == "" || cat.Name != "Vacation" {
		t.Fatalf("bad category: %+v", cat)
	}
	if cat.TotalAmount.Cents != 0 {
		t.Fatalf("new category must start at zero, got %d", cat.TotalAmount.Cents)
	}

	if _, err := p.CreateCategory(ctx, "u1", "vacation"); !errors.Is(err, core.ErrDuplicateName) {
		t.Fatalf("expected ErrDuplicateName, got %v", err)
	}
	if _, err := p.CreateCategory(ctx, "u1", "   "); !errors.Is(err, core.ErrEmptyName) {
		t.Fatalf("expected ErrEmptyName, got %v", err)
	}

	// Another user may reuse the name.
	if _, err := p.CreateCategory(ctx, "u2", "Vacation"); err != nil {
		t.Fatalf("other user: unexpected error: %v", err)
	}
}

func TestAddItem(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	p := NewPlanner(store, nil)

	cat, err := p.CreateCategory(ctx, "u1", "Vacation")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := p.AddItem(ctx, "u1", cat.ID, "flights", core.Money{Cents: 45000})
	if err != nil {
		t.Fatalf("add item: %v", err)
	}
	if got.TotalAmount.Cents != 45000 {
		t.Fatalf("expected total 45000, got %d", got.TotalAmount.Cents)
	}

	got, err = p.AddItem(ctx, "u1", cat.ID, "hotel", core.Money{Cents: 30000})
	if err != nil {
		t.Fatalf("add item: %v", err)
	}
	if got.TotalAmount.Cents != 75000 || len(got.Items) != 2 {
		t.Fatalf("expected total 75000 over 2 items, got %d over %d", got.TotalAmount.Cents, len(got.Items))
	}
	checkInvariant(t, store, "u1")

	if _, err := p.AddItem(ctx, "u1", cat.ID, "free", core.Money{Cents: 0}); !errors.Is(err, core.ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}
	if _, err := p.AddItem(ctx, "u1", "no-such-id", "x", core.Money{Cents: 100}); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	// Failed operations leave the stored state untouched.
	checkInvariant(t, store, "u1")
	stored, _ := store.GetCategory(ctx, "u1", cat.ID)
	if stored.TotalAmount.Cents != 75000 {
		t.Fatalf("failed add mutated state: %d", stored.TotalAmount.Cents)
	}
}

func TestRemoveItem(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	p := NewPlanner(store, nil)

	cat, _ := p.CreateCategory(ctx, "u1", "Vacation")
	if _, err := p.AddItem(ctx, "u1", cat.ID, "flights", core.Money{Cents: 45000}); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := p.AddItem(ctx, "u1", cat.ID, "hotel", core.Money{Cents: 30000}); err != nil {
		t.Fatalf("add: %v", err)
	}

	got, err := p.RemoveItem(ctx, "u1", cat.ID, 0)
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if len(got.Items) != 1 || got.Items[0].Description != "hotel" {
		t.Fatalf("expected [hotel], got %+v", got.Items)
	}
	if got.TotalAmount.Cents != 30000 {
		t.Fatalf("expected total 30000, got %d", got.TotalAmount.Cents)
	}
	checkInvariant(t, store, "u1")

	for _, bad := range []int{-1, 1, 99} {
		if _, err := p.RemoveItem(ctx, "u1", cat.ID, bad); !errors.Is(err, core.ErrIndexOutOfRange) {
			t.Fatalf("index %d: expected ErrIndexOutOfRange, got %v", bad, err)
		}
	}
	checkInvariant(t, store, "u1")
}

func TestDeleteCategory(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	p := NewPlanner(store, nil)

	cat, _ := p.CreateCategory(ctx, "u1", "Vacation")
	if _, err := p.AddItem(ctx, "u1", cat.ID, "flights", core.Money{Cents: 45000}); err != nil {
		t.Fatalf("add: %v", err)
	}

	if err := p.DeleteCategory(ctx, "u1", cat.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	// The cascade removed the items with the category.
	if _, err := store.GetCategory(ctx, "u1", cat.ID); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("category survived delete")
	}

	// Second delete is a reported no-op, not a crash.
	if err := p.DeleteCategory(ctx, "u1", cat.ID); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	// And the id is gone for item operations too.
	if _, err := p.AddItem(ctx, "u1", cat.ID, "late", core.Money{Cents: 100}); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestAvailableBalanceAfterMutations(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	p := NewPlanner(store, nil)
	current := core.Money{Cents: 200000}

	cat, _ := p.CreateCategory(ctx, "u1", "Vacation")
	if _, err := p.AddItem(ctx, "u1", cat.ID, "flights", core.Money{Cents: 45000}); err != nil {
		t.Fatalf("add: %v", err)
	}

	cats, _ := p.Categories(ctx, "u1")
	if got := core.AvailableBalance(current, cats).Cents; got != 155000 {
		t.Fatalf("expected 155000, got %d", got)
	}

	if _, err := p.RemoveItem(ctx, "u1", cat.ID, 0); err != nil {
		t.Fatalf("remove: %v", err)
	}
	cats, _ = p.Categories(ctx, "u1")
	if got := core.AvailableBalance(current, cats).Cents; got != 200000 {
		t.Fatalf("expected 200000, got %d", got)
	}
}
