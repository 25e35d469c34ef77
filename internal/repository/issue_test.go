package repository

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sumire/issuetrack/internal/domain"
)

func newTestRepo(t *testing.T) *IssueRepository {
	t.Helper()

	db, err := Connect(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := NewIssueRepository(db)
	require.NoError(t, repo.Init(context.Background()))
	return repo
}

func strPtr(s string) *string { return &s }

func statusPtr(s domain.Status) *domain.Status { return &s }

func prioPtr(p domain.Priority) *domain.Priority { return &p }

func TestCreate(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	issue, err := repo.Create(ctx, "Login bug", "crash on submit", domain.PriorityHigh)
	require.NoError(t, err)

	assert.GreaterOrEqual(t, issue.ID, int64(1))
	assert.Equal(t, "Login bug", issue.Title)
	assert.Equal(t, "crash on submit", issue.Description)
	assert.Equal(t, domain.StatusOpen, issue.Status)
	assert.Equal(t, domain.PriorityHigh, issue.Priority)
	assert.Equal(t, issue.CreatedAt, issue.UpdatedAt)

	got, err := repo.Get(ctx, issue.ID)
	require.NoError(t, err)
	assert.Equal(t, issue, got)
}

func TestGet_NotFound(t *testing.T) {
	repo := newTestRepo(t)

	_, err := repo.Get(context.Background(), 999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdate_PartialMerge(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, "X", "details", domain.PriorityHigh)
	require.NoError(t, err)

	updated, err := repo.Update(ctx, created.ID, domain.IssuePatch{
		Status: statusPtr(domain.StatusDone),
	})
	require.NoError(t, err)

	assert.Equal(t, domain.StatusDone, updated.Status)
	assert.Equal(t, created.Title, updated.Title)
	assert.Equal(t, created.Description, updated.Description)
	assert.Equal(t, created.Priority, updated.Priority)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
	assert.GreaterOrEqual(t, updated.UpdatedAt.String(), created.CreatedAt.String())

	// Applying the same patch again leaves the same final state.
	again, err := repo.Update(ctx, created.ID, domain.IssuePatch{
		Status: statusPtr(domain.StatusDone),
	})
	require.NoError(t, err)
	assert.Equal(t, updated.Status, again.Status)
	assert.Equal(t, updated.Title, again.Title)
	assert.Equal(t, updated.Priority, again.Priority)
}

func TestUpdate_AllFields(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, "old title", "old desc", domain.PriorityMedium)
	require.NoError(t, err)

	updated, err := repo.Update(ctx, created.ID, domain.IssuePatch{
		Title:       strPtr("new title"),
		Description: strPtr("new desc"),
		Status:      statusPtr(domain.StatusInProgress),
		Priority:    prioPtr(domain.PriorityLow),
	})
	require.NoError(t, err)

	assert.Equal(t, "new title", updated.Title)
	assert.Equal(t, "new desc", updated.Description)
	assert.Equal(t, domain.StatusInProgress, updated.Status)
	assert.Equal(t, domain.PriorityLow, updated.Priority)
}

func TestUpdate_EmptyPatchIsNoOp(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, "X", "", domain.PriorityMedium)
	require.NoError(t, err)

	got, err := repo.Update(ctx, created.ID, domain.IssuePatch{})
	require.NoError(t, err)
	assert.Equal(t, created, got)
	assert.Equal(t, created.UpdatedAt, got.UpdatedAt)
}

func TestUpdate_NotFound(t *testing.T) {
	repo := newTestRepo(t)

	_, err := repo.Update(context.Background(), 42, domain.IssuePatch{
		Title: strPtr("anything"),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// Empty patch on a missing id is still a 404, not a silent success.
	_, err = repo.Update(context.Background(), 42, domain.IssuePatch{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDelete(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, "X", "", domain.PriorityMedium)
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, created.ID))

	_, err = repo.Get(ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// Deleting twice reports the missing row instead of masking it.
	assert.ErrorIs(t, repo.Delete(ctx, created.ID), domain.ErrNotFound)
}

func seedIssues(t *testing.T, repo *IssueRepository, n int) {
	t.Helper()

	issues := make([]domain.Issue, 0, n)
	for i := 1; i <= n; i++ {
		// Distinct, ascending created_at values so the expected descending
		// order is unambiguous.
		ts := domain.Timestamp{}
		require.NoError(t, ts.Scan(fmt.Sprintf("2026-08-%02d 12:00:00", i)))
		issues = append(issues, domain.Issue{
			Title:       fmt.Sprintf("issue %d", i),
			Description: "",
			Status:      domain.StatusOpen,
			Priority:    domain.PriorityMedium,
			CreatedAt:   ts,
			UpdatedAt:   ts,
		})
	}
	require.NoError(t, repo.BulkInsert(context.Background(), issues))
}

func TestList_Pagination(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	seedIssues(t, repo, 5)

	page2, total, err := repo.List(ctx, 2, 2, "")
	require.NoError(t, err)
	assert.Equal(t, 5, total)
	assert.Len(t, page2, 2)

	// Concatenating all pages yields every issue exactly once, newest first.
	seen := map[int64]bool{}
	var all []domain.Issue
	for page := 1; page <= 3; page++ {
		issues, total, err := repo.List(ctx, page, 2, "")
		require.NoError(t, err)
		assert.Equal(t, 5, total)
		for _, issue := range issues {
			assert.False(t, seen[issue.ID], "issue %d appeared twice", issue.ID)
			seen[issue.ID] = true
		}
		all = append(all, issues...)
	}
	require.Len(t, all, 5)
	for i := 1; i < len(all); i++ {
		assert.LessOrEqual(t, all[i].CreatedAt.String(), all[i-1].CreatedAt.String())
	}
}

func TestList_PageBeyondEnd(t *testing.T) {
	repo := newTestRepo(t)
	seedIssues(t, repo, 3)

	issues, total, err := repo.List(context.Background(), 5, 10, "")
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.NotNil(t, issues)
	assert.Empty(t, issues)
}

func TestList_SearchCaseInsensitive(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	_, err := repo.Create(ctx, "Login bug", "crash on submit", domain.PriorityHigh)
	require.NoError(t, err)
	_, err = repo.Create(ctx, "Slow dashboard", "the LOGIN widget spins forever", domain.PriorityLow)
	require.NoError(t, err)
	_, err = repo.Create(ctx, "Unrelated", "nothing to see", domain.PriorityMedium)
	require.NoError(t, err)

	// Matches title and description regardless of case.
	issues, total, err := repo.List(ctx, 1, 10, "login")
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Len(t, issues, 2)

	issues, total, err = repo.List(ctx, 1, 10, "LOGIN")
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Len(t, issues, 2)

	// Total counts matches before pagination.
	issues, total, err = repo.List(ctx, 1, 1, "login")
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Len(t, issues, 1)

	_, total, err = repo.List(ctx, 1, 10, "no such term")
	require.NoError(t, err)
	assert.Equal(t, 0, total)
}

func TestInit_Idempotent(t *testing.T) {
	repo := newTestRepo(t)
	assert.NoError(t, repo.Init(context.Background()))
}
