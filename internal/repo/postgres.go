package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/pkordes/parking-roster/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, *pgx.Conn, and
// pgx.Tx. Accepting this interface instead of *pgxpool.Pool directly allows
// integration tests to pass a transaction that is rolled back after each
// test. Begin on a pgx.Tx opens a savepoint, so Write stays atomic either way.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

// pgSheetRepo stores spreadsheet tabs in Postgres: one sheet_tabs row per
// tab, one sheet_rows row per spreadsheet row with the cells as TEXT[].
type pgSheetRepo struct {
	db db
}

// NewPostgresSheetRepo constructs a SheetRepo backed by the provided db
// connection. In production pass *pgxpool.Pool; in tests pass a pgx.Tx.
func NewPostgresSheetRepo(db db) SheetRepo {
	return &pgSheetRepo{db: db}
}

// ReadAll returns the rows of a tab ordered by position.
func (r *pgSheetRepo) ReadAll(ctx context.Context, tab string) ([][]string, error) {
	t, err := r.tabByTitle(ctx, tab)
	if err != nil {
		return nil, fmt.Errorf("repo.PostgresSheetRepo.ReadAll: tab %q: %w", tab, err)
	}

	const q = `
		SELECT cells
		FROM sheet_rows
		WHERE tab_id = @tab_id
		ORDER BY position`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"tab_id": t.ID})
	if err != nil {
		return nil, fmt.Errorf("repo.PostgresSheetRepo.ReadAll: %w", err)
	}
	defer rows.Close()

	out := [][]string{}
	for rows.Next() {
		var cells []string
		if err := rows.Scan(&cells); err != nil {
			return nil, fmt.Errorf("repo.PostgresSheetRepo.ReadAll: scan: %w", err)
		}
		out = append(out, cells)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.PostgresSheetRepo.ReadAll: rows: %w", err)
	}
	return out, nil
}

// ListTabs returns all tabs in creation order.
func (r *pgSheetRepo) ListTabs(ctx context.Context) ([]domain.Tab, error) {
	const q = `SELECT id, title FROM sheet_tabs ORDER BY id`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.PostgresSheetRepo.ListTabs: %w", err)
	}
	defer rows.Close()

	tabs := []domain.Tab{}
	for rows.Next() {
		t, err := scanTab(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.PostgresSheetRepo.ListTabs: scan: %w", err)
		}
		tabs = append(tabs, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.PostgresSheetRepo.ListTabs: rows: %w", err)
	}
	return tabs, nil
}

// EnsureTab upserts the tab by title and deletes any rows it already had.
// The DO UPDATE SET trick forces RETURNING to fire on conflict too.
func (r *pgSheetRepo) EnsureTab(ctx context.Context, title string, _ int) (domain.Tab, error) {
	const q = `
		INSERT INTO sheet_tabs (title)
		VALUES (@title)
		ON CONFLICT (title) DO UPDATE SET updated_at = now()
		RETURNING id, title`

	t, err := scanTab(r.db.QueryRow(ctx, q, pgx.NamedArgs{"title": title}))
	if err != nil {
		return domain.Tab{}, fmt.Errorf("repo.PostgresSheetRepo.EnsureTab: %w", err)
	}
	if err := r.Clear(ctx, t); err != nil {
		return domain.Tab{}, fmt.Errorf("repo.PostgresSheetRepo.EnsureTab: %w", err)
	}
	return t, nil
}

// Clear deletes every row of the tab.
func (r *pgSheetRepo) Clear(ctx context.Context, tab domain.Tab) error {
	const q = `DELETE FROM sheet_rows WHERE tab_id = @tab_id`

	if _, err := r.db.Exec(ctx, q, pgx.NamedArgs{"tab_id": tab.ID}); err != nil {
		return fmt.Errorf("repo.PostgresSheetRepo.Clear: %w", err)
	}
	return nil
}

// Write replaces the tab's rows inside one transaction: either every row is
// stored or none is.
func (r *pgSheetRepo) Write(ctx context.Context, tab domain.Tab, values [][]string) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("repo.PostgresSheetRepo.Write: begin: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	tag, err := tx.Exec(ctx, `UPDATE sheet_tabs SET updated_at = now() WHERE id = @id`, pgx.NamedArgs{"id": tab.ID})
	if err != nil {
		return fmt.Errorf("repo.PostgresSheetRepo.Write: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.PostgresSheetRepo.Write: tab %q: %w", tab.Title, domain.ErrNotFound)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM sheet_rows WHERE tab_id = @tab_id`, pgx.NamedArgs{"tab_id": tab.ID}); err != nil {
		return fmt.Errorf("repo.PostgresSheetRepo.Write: clear: %w", err)
	}

	_, err = tx.CopyFrom(ctx,
		pgx.Identifier{"sheet_rows"},
		[]string{"tab_id", "position", "cells"},
		pgx.CopyFromSlice(len(values), func(i int) ([]any, error) {
			return []any{tab.ID, i, values[i]}, nil
		}),
	)
	if err != nil {
		return fmt.Errorf("repo.PostgresSheetRepo.Write: copy: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("repo.PostgresSheetRepo.Write: commit: %w", err)
	}
	return nil
}

func (r *pgSheetRepo) tabByTitle(ctx context.Context, title string) (domain.Tab, error) {
	const q = `SELECT id, title FROM sheet_tabs WHERE title = @title`
	return scanTab(r.db.QueryRow(ctx, q, pgx.NamedArgs{"title": title}))
}

// scanner is satisfied by both pgx.Row and pgx.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// scanTab maps a single database row into a domain.Tab.
func scanTab(s scanner) (domain.Tab, error) {
	var t domain.Tab
	if err := s.Scan(&t.ID, &t.Title); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Tab{}, domain.ErrNotFound
		}
		return domain.Tab{}, err
	}
	return t, nil
}
