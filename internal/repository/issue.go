package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/sumire/issuetrack/internal/domain"
)

const issueColumns = "id, title, description, status, priority, created_at, updated_at"

const schemaSQLite = `
CREATE TABLE IF NOT EXISTS issues (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	title TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	status TEXT NOT NULL DEFAULT 'open' CHECK (status IN ('open', 'in_progress', 'done')),
	priority INTEGER NOT NULL DEFAULT 2 CHECK (priority IN (1, 2, 3)),
	created_at TEXT NOT NULL,
	updated_at TEXT NOT NULL
)`

const schemaPostgres = `
CREATE TABLE IF NOT EXISTS issues (
	id BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
	title TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	status TEXT NOT NULL DEFAULT 'open' CHECK (status IN ('open', 'in_progress', 'done')),
	priority INTEGER NOT NULL DEFAULT 2 CHECK (priority IN (1, 2, 3)),
	created_at TEXT NOT NULL,
	updated_at TEXT NOT NULL
)`

// IssueRepository is the single owner of the issues table; all reads and
// writes go through it.
type IssueRepository struct {
	db *sqlx.DB
}

// NewIssueRepository creates a new IssueRepository.
func NewIssueRepository(db *sqlx.DB) *IssueRepository {
	return &IssueRepository{db: db}
}

// Init creates the issues table if it does not exist yet.
func (r *IssueRepository) Init(ctx context.Context) error {
	schema := schemaSQLite
	if r.db.DriverName() == "pgx" {
		schema = schemaPostgres
	}
	if _, err := r.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("create issues table: %w", err)
	}
	return nil
}

// searchClause matches the term as a case-insensitive substring of title or
// description. Lowercasing both sides keeps the behavior identical across
// SQLite and Postgres collations.
const searchClause = ` WHERE LOWER(title) LIKE '%' || LOWER(?) || '%'
	OR LOWER(description) LIKE '%' || LOWER(?) || '%'`

// List returns one page of issues ordered by created_at descending (ties
// broken by ascending id) plus the total number of matching rows before
// pagination. A page past the end yields an empty slice with the true total.
func (r *IssueRepository) List(ctx context.Context, page, limit int, search string) ([]domain.Issue, int, error) {
	where := ""
	args := []any{}
	if search != "" {
		where = searchClause
		args = append(args, search, search)
	}

	var total int
	err := r.db.GetContext(ctx, &total, r.db.Rebind("SELECT COUNT(*) FROM issues"+where), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("count issues: %w", err)
	}

	query := "SELECT " + issueColumns + " FROM issues" + where +
		" ORDER BY created_at DESC, id ASC LIMIT ? OFFSET ?"
	args = append(args, limit, (page-1)*limit)

	issues := []domain.Issue{}
	if err := r.db.SelectContext(ctx, &issues, r.db.Rebind(query), args...); err != nil {
		return nil, 0, fmt.Errorf("list issues: %w", err)
	}

	return issues, total, nil
}

// Create inserts a new issue with status open and both timestamps set to now.
func (r *IssueRepository) Create(ctx context.Context, title, description string, priority domain.Priority) (*domain.Issue, error) {
	now := domain.Now()

	var id int64
	err := r.db.QueryRowxContext(ctx, r.db.Rebind(
		`INSERT INTO issues (title, description, status, priority, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?) RETURNING id`),
		title, description, domain.StatusOpen, priority, now, now,
	).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("insert issue: %w", err)
	}

	return &domain.Issue{
		ID:          id,
		Title:       title,
		Description: description,
		Status:      domain.StatusOpen,
		Priority:    priority,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// Get retrieves an issue by id.
func (r *IssueRepository) Get(ctx context.Context, id int64) (*domain.Issue, error) {
	var issue domain.Issue
	err := r.db.GetContext(ctx, &issue,
		r.db.Rebind("SELECT "+issueColumns+" FROM issues WHERE id = ?"), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get issue %d: %w", id, err)
	}
	return &issue, nil
}

// Update applies the populated fields of patch to the issue and refreshes
// updated_at. Fields absent from the patch keep their current value. An empty
// patch is a no-op that returns the current row without touching updated_at.
func (r *IssueRepository) Update(ctx context.Context, id int64, patch domain.IssuePatch) (*domain.Issue, error) {
	if patch.Empty() {
		return r.Get(ctx, id)
	}

	sets := []string{}
	args := []any{}
	if patch.Title != nil {
		sets = append(sets, "title = ?")
		args = append(args, *patch.Title)
	}
	if patch.Description != nil {
		sets = append(sets, "description = ?")
		args = append(args, *patch.Description)
	}
	if patch.Status != nil {
		sets = append(sets, "status = ?")
		args = append(args, *patch.Status)
	}
	if patch.Priority != nil {
		sets = append(sets, "priority = ?")
		args = append(args, *patch.Priority)
	}
	sets = append(sets, "updated_at = ?")
	args = append(args, domain.Now(), id)

	query := "UPDATE issues SET " + strings.Join(sets, ", ") + " WHERE id = ?"
	res, err := r.db.ExecContext(ctx, r.db.Rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("update issue %d: %w", id, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("update issue %d: rows affected: %w", id, err)
	}
	if affected == 0 {
		return nil, domain.ErrNotFound
	}

	return r.Get(ctx, id)
}

// Delete permanently removes an issue.
func (r *IssueRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, r.db.Rebind("DELETE FROM issues WHERE id = ?"), id)
	if err != nil {
		return fmt.Errorf("delete issue %d: %w", id, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete issue %d: rows affected: %w", id, err)
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// BulkInsert writes issues with explicit timestamps inside one transaction.
// Used by the seeder only.
func (r *IssueRepository) BulkInsert(ctx context.Context, issues []domain.Issue) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed transaction: %w", err)
	}
	defer tx.Rollback()

	for _, issue := range issues {
		_, err := tx.NamedExecContext(ctx,
			`INSERT INTO issues (title, description, status, priority, created_at, updated_at)
			 VALUES (:title, :description, :status, :priority, :created_at, :updated_at)`,
			issue)
		if err != nil {
			return fmt.Errorf("insert seed issue: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed transaction: %w", err)
	}
	return nil
}
