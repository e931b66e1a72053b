// Package storage implements the storage collaborator contracts on SQLite.
// The repository is the only component that touches SQL; the engine sees
// plain core values.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"fintrack/internal/budget"
	"fintrack/internal/core"
	"fintrack/internal/ledger"

	_ "modernc.org/sqlite"
)

// Repository stores both the transaction ledger and the budget sub-ledger.
type Repository struct {
	db *sql.DB
}

// Interface conformance.
var (
	_ ledger.TransactionStore = (*Repository)(nil)
	_ budget.Store            = (*Repository)(nil)
)

// NewRepository opens (creating if needed) the database at dbPath and runs
// migrations.
func NewRepository(dbPath string) (*Repository, error) {
	if dir := filepath.Dir(dbPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Repository{db: db}, nil
}

func (r *Repository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// ListTransactions implements ledger.TransactionStore.
func (r *Repository) ListTransactions(ctx context.Context, userID string) ([]core.TransactionEntry, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, kind, amount_cents, category, occurred_at, note
		FROM transactions
		WHERE user_id = ?
		ORDER BY occurred_at DESC, created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()

	var out []core.TransactionEntry
	for rows.Next() {
		var (
			e          core.TransactionEntry
			kind       string
			occurredAt string
		)
		if err := rows.Scan(&e.ID, &kind, &e.Amount.Cents, &e.Category, &occurredAt, &e.Note); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		e.Kind = core.EntryKind(kind)
		if t, err := time.Parse(time.RFC3339Nano, occurredAt); err == nil {
			e.OccurredAt = t
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// CreateTransaction implements ledger.TransactionStore.
func (r *Repository) CreateTransaction(ctx context.Context, userID string, e core.TransactionEntry) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO transactions (id, user_id, kind, amount_cents, category, occurred_at, note)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.ID, userID, string(e.Kind), e.Amount.Cents, e.Category,
		e.OccurredAt.Format(time.RFC3339Nano), e.Note)
	if err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}
	return nil
}

// DeleteTransaction implements ledger.TransactionStore.
func (r *Repository) DeleteTransaction(ctx context.Context, userID, id string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM transactions WHERE user_id = ? AND id = ?`, userID, id)
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return core.ErrNotFound
	}
	return nil
}

// ListCategories implements budget.Store.
func (r *Repository) ListCategories(ctx context.Context, userID string) ([]core.BudgetCategory, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, total_cents, created_at
		FROM budget_categories
		WHERE user_id = ?
		ORDER BY created_at, id`, userID)
	if err != nil {
		return nil, fmt.Errorf("query budget categories: %w", err)
	}
	defer rows.Close()

	var out []core.BudgetCategory
	for rows.Next() {
		var (
			c         core.BudgetCategory
			createdAt string
		)
		if err := rows.Scan(&c.ID, &c.Name, &c.TotalAmount.Cents, &createdAt); err != nil {
			return nil, fmt.Errorf("scan budget category: %w", err)
		}
		if t, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
			c.CreatedAt = t
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range out {
		items, err := r.listItems(ctx, out[i].ID)
		if err != nil {
			return nil, err
		}
		out[i].Items = items
	}
	return out, nil
}

// GetCategory implements budget.Store.
func (r *Repository) GetCategory(ctx context.Context, userID, categoryID string) (core.BudgetCategory, error) {
	var (
		c         core.BudgetCategory
		createdAt string
	)
	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, total_cents, created_at
		FROM budget_categories
		WHERE user_id = ? AND id = ?`, userID, categoryID).
		Scan(&c.ID, &c.Name, &c.TotalAmount.Cents, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return core.BudgetCategory{}, core.ErrNotFound
	}
	if err != nil {
		return core.BudgetCategory{}, fmt.Errorf("query budget category: %w", err)
	}
	if t, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
		c.CreatedAt = t
	}

	items, err := r.listItems(ctx, c.ID)
	if err != nil {
		return core.BudgetCategory{}, err
	}
	c.Items = items
	return c, nil
}

func (r *Repository) listItems(ctx context.Context, categoryID string) ([]core.PlanItem, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, description, amount_cents, created_at
		FROM budget_items
		WHERE category_id = ?
		ORDER BY position`, categoryID)
	if err != nil {
		return nil, fmt.Errorf("query budget items: %w", err)
	}
	defer rows.Close()

	var items []core.PlanItem
	for rows.Next() {
		var (
			it        core.PlanItem
			createdAt string
		)
		if err := rows.Scan(&it.ID, &it.Description, &it.Amount.Cents, &createdAt); err != nil {
			return nil, fmt.Errorf("scan budget item: %w", err)
		}
		if t, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
			it.CreatedAt = t
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// CreateCategory implements budget.Store.
func (r *Repository) CreateCategory(ctx context.Context, userID string, c core.BudgetCategory) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO budget_categories (id, user_id, name, total_cents, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		c.ID, userID, c.Name, c.TotalAmount.Cents, c.CreatedAt.Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("insert budget category: %w", err)
	}
	return nil
}

// ReplaceItems implements budget.Store: item list and denormalized total
// change together in one transaction, never separately.
func (r *Repository) ReplaceItems(ctx context.Context, userID, categoryID string, items []core.PlanItem, total core.Money) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		UPDATE budget_categories SET total_cents = ?
		WHERE user_id = ? AND id = ?`, total.Cents, userID, categoryID)
	if err != nil {
		return fmt.Errorf("update category total: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return core.ErrNotFound
	}

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM budget_items WHERE category_id = ?`, categoryID); err != nil {
		return fmt.Errorf("clear budget items: %w", err)
	}
	for pos, it := range items {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO budget_items (id, category_id, position, description, amount_cents, created_at)
			VALUES (?, ?, ?, ?, ?, ?)`,
			it.ID, categoryID, pos, it.Description, it.Amount.Cents,
			it.CreatedAt.Format(time.RFC3339Nano)); err != nil {
			return fmt.Errorf("insert budget item: %w", err)
		}
	}

	return tx.Commit()
}

// DeleteCategory implements budget.Store. The category row and its items go
// in one transaction; a missing category reports core.ErrNotFound.
func (r *Repository) DeleteCategory(ctx context.Context, userID, categoryID string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM budget_items WHERE category_id = ?`, categoryID); err != nil {
		return fmt.Errorf("delete budget items: %w", err)
	}

	res, err := tx.ExecContext(ctx,
		`DELETE FROM budget_categories WHERE user_id = ? AND id = ?`, userID, categoryID)
	if err != nil {
		return fmt.Errorf("delete budget category: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return core.ErrNotFound
	}

	return tx.Commit()
}
