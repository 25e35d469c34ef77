package service

import (
	"context"

	"github.com/sumire/issuetrack/internal/domain"
)

// IssueStore defines the issue data access interface consumed by IssueService.
type IssueStore interface {
	List(ctx context.Context, page, limit int, search string) ([]domain.Issue, int, error)
	Create(ctx context.Context, title, description string, priority domain.Priority) (*domain.Issue, error)
	Get(ctx context.Context, id int64) (*domain.Issue, error)
	Update(ctx context.Context, id int64, patch domain.IssuePatch) (*domain.Issue, error)
	Delete(ctx context.Context, id int64) error
}

// IssuePage is one page of the issue list plus the paging echo and the total
// match count before pagination.
type IssuePage struct {
	Data  []domain.Issue `json:"data"`
	Page  int            `json:"page"`
	Limit int            `json:"limit"`
	Total int            `json:"total"`
}

// IssueService implements the issue operations on top of an IssueStore.
type IssueService struct {
	issues IssueStore
}

// NewIssueService creates a new IssueService.
func NewIssueService(issues IssueStore) *IssueService {
	return &IssueService{issues: issues}
}

// List returns the requested page of issues.
func (s *IssueService) List(ctx context.Context, page, limit int, search string) (*IssuePage, error) {
	data, total, err := s.issues.List(ctx, page, limit, search)
	if err != nil {
		return nil, err
	}
	if data == nil {
		data = []domain.Issue{}
	}
	return &IssuePage{Data: data, Page: page, Limit: limit, Total: total}, nil
}

// Create stores a new issue.
func (s *IssueService) Create(ctx context.Context, title, description string, priority domain.Priority) (*domain.Issue, error) {
	return s.issues.Create(ctx, title, description, priority)
}

// Get retrieves one issue by id.
func (s *IssueService) Get(ctx context.Context, id int64) (*domain.Issue, error) {
	return s.issues.Get(ctx, id)
}

// Update applies a partial update to an issue.
func (s *IssueService) Update(ctx context.Context, id int64, patch domain.IssuePatch) (*domain.Issue, error) {
	return s.issues.Update(ctx, id, patch)
}

// Delete permanently removes an issue.
func (s *IssueService) Delete(ctx context.Context, id int64) error {
	return s.issues.Delete(ctx, id)
}
