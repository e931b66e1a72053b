package core

import "strings"

// Category is a selectable label for classifying entries. Icon is an opaque
// tag interpreted by the presentation collaborator.
type Category struct {
	Name string
	Icon string
	Kind EntryKind
}

// CategorySet keeps the selectable categories partitioned by kind. Names are
// unique within a partition, but the same name may exist independently as
// both an income and an expense category.
type CategorySet struct {
	byKind map[EntryKind][]Category
}

// NewCategorySet returns a set seeded with the stock categories.
func NewCategorySet() *CategorySet {
	s := &CategorySet{byKind: make(map[EntryKind][]Category)}
	for _, c := range defaultCategories {
		s.byKind[c.Kind] = append(s.byKind[c.Kind], c)
	}
	return s
}

var defaultCategories = []Category{
	{Name: "Food", Icon: "fast-food-outline", Kind: KindExpense},
	{Name: "Transport", Icon: "bus-outline", Kind: KindExpense},
	{Name: "Shopping", Icon: "cart-outline", Kind: KindExpense},
	{Name: "Entertainment", Icon: "game-controller-outline", Kind: KindExpense},
	{Name: "Healthcare", Icon: "heart-outline", Kind: KindExpense},
	{Name: "Bills", Icon: "receipt-outline", Kind: KindExpense},
	{Name: "Utilities", Icon: "cloud-outline", Kind: KindExpense},
	{Name: "Travel", Icon: "airplane-outline", Kind: KindExpense},
	{Name: "Salary", Icon: "wallet-outline", Kind: KindIncome},
	{Name: "Freelance", Icon: "briefcase-outline", Kind: KindIncome},
	{Name: "Investment", Icon: "bar-chart-outline", Kind: KindIncome},
	{Name: "Gift", Icon: "gift-outline", Kind: KindIncome},
}

// Add appends an ad-hoc user-defined category. The name must be non-empty
// after trimming and unique within its kind partition.
func (s *CategorySet) Add(c Category) error {
	c.Name = strings.TrimSpace(c.Name)
	if c.Name == "" {
		return ErrEmptyName
	}
	if !c.Kind.Valid() {
		return ErrInvalidInput
	}
	for _, existing := range s.byKind[c.Kind] {
		if strings.EqualFold(existing.Name, c.Name) {
			return ErrDuplicateName
		}
	}
	s.byKind[c.Kind] = append(s.byKind[c.Kind], c)
	return nil
}

// List returns the categories of one partition in insertion order.
func (s *CategorySet) List(kind EntryKind) []Category {
	out := make([]Category, len(s.byKind[kind]))
	copy(out, s.byKind[kind])
	return out
}

// Lookup finds a category by kind and name.
func (s *CategorySet) Lookup(kind EntryKind, name string) (Category, bool) {
	for _, c := range s.byKind[kind] {
		if strings.EqualFold(c.Name, name) {
			return c, true
		}
	}
	return Category{}, false
}
