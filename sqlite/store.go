package sqlite

import (
	"context"
	"database/sql"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
	autodocs "github.com/ziyacivan/autodocs-mcp"
)

// Compile-time interface verification.
var _ autodocs.PageStore = (*PageStore)(nil)

// PageStore implements autodocs.PageStore using SQLite.
type PageStore struct {
	db *DB
}

// NewPageStore creates a new PageStore.
func NewPageStore(db *DB) *PageStore {
	return &PageStore{db: db}
}

// hashContent computes xxHash of content and returns hex string.
func hashContent(content string) string {
	h := xxhash.Sum64String(content)
	b := make([]byte, 8)
	b[0] = byte(h >> 56)
	b[1] = byte(h >> 48)
	b[2] = byte(h >> 40)
	b[3] = byte(h >> 32)
	b[4] = byte(h >> 24)
	b[5] = byte(h >> 16)
	b[6] = byte(h >> 8)
	b[7] = byte(h)
	return hex.EncodeToString(b)
}

// CreateRun records a scrape run and all of its pages in one transaction.
func (s *PageStore) CreateRun(ctx context.Context, run *autodocs.Run, pages []*autodocs.Page) error {
	if err := run.Validate(); err != nil {
		return err
	}

	run.ID = uuid.New().String()
	run.CreatedAt = time.Now().UTC()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs (id, base_url, format, failed, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, run.ID, run.BaseURL, string(run.Format), run.Failed, run.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return err
	}

	fetchedAt := run.CreatedAt.Format(time.RFC3339)
	for _, page := range pages {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO pages (id, run_id, url, title, content, content_hash, position, fetched_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`, uuid.New().String(), run.ID, page.URL, page.Title, page.Content,
			hashContent(page.Content), page.Position, fetchedAt)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// FindRunByID retrieves a run by ID.
func (s *PageStore) FindRunByID(ctx context.Context, id string) (*autodocs.Run, error) {
	var run autodocs.Run
	var format, createdAt string

	err := s.db.QueryRowContext(ctx, `
		SELECT id, base_url, format, failed, created_at
		FROM runs
		WHERE id = ?
	`, id).Scan(&run.ID, &run.BaseURL, &format, &run.Failed, &createdAt)

	if err == sql.ErrNoRows {
		return nil, autodocs.Errorf(autodocs.ENOTFOUND, "run not found")
	}
	if err != nil {
		return nil, err
	}

	run.Format = autodocs.Format(format)
	run.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse created_at: %w", err)
	}

	return &run, nil
}

// FindRuns retrieves runs, most recent first.
func (s *PageStore) FindRuns(ctx context.Context) ([]*autodocs.Run, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, base_url, format, failed, created_at
		FROM runs
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []*autodocs.Run
	for rows.Next() {
		var run autodocs.Run
		var format, createdAt string

		if err := rows.Scan(&run.ID, &run.BaseURL, &format, &run.Failed, &createdAt); err != nil {
			return nil, err
		}

		run.Format = autodocs.Format(format)
		run.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse created_at: %w", err)
		}

		runs = append(runs, &run)
	}

	return runs, rows.Err()
}

// FindPages retrieves stored pages matching the filter, in discovery order.
func (s *PageStore) FindPages(ctx context.Context, filter autodocs.PageFilter) ([]*autodocs.StoredPage, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, run_id, url, title, content, content_hash, position, fetched_at FROM pages WHERE 1=1")

	if filter.RunID != nil {
		query.WriteString(" AND run_id = ?")
		args = append(args, *filter.RunID)
	}
	if filter.URL != nil {
		query.WriteString(" AND url = ?")
		args = append(args, *filter.URL)
	}

	query.WriteString(" ORDER BY position ASC")

	if filter.Limit > 0 {
		query.WriteString(" LIMIT ?")
		args = append(args, filter.Limit)
	}
	if filter.Offset > 0 {
		query.WriteString(" OFFSET ?")
		args = append(args, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pages []*autodocs.StoredPage
	for rows.Next() {
		var page autodocs.StoredPage
		var fetchedAt string

		if err := rows.Scan(&page.ID, &page.RunID, &page.URL, &page.Title,
			&page.Content, &page.ContentHash, &page.Position, &fetchedAt); err != nil {
			return nil, err
		}

		page.FetchedAt, err = time.Parse(time.RFC3339, fetchedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse fetched_at: %w", err)
		}

		pages = append(pages, &page)
	}

	return pages, rows.Err()
}

// DeleteRun permanently removes a run and its pages.
func (s *PageStore) DeleteRun(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM runs WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return autodocs.Errorf(autodocs.ENOTFOUND, "run not found")
	}

	return nil
}
