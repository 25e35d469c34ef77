package handler

import (
	"strconv"
	"strings"

	"github.com/sumire/issuetrack/internal/domain"
)

const (
	defaultPage  = 1
	defaultLimit = 10
	maxLimit     = 100
)

// ListIssuesQuery is the normalized form of the listing query string.
type ListIssuesQuery struct {
	Page   int
	Limit  int
	Search string
}

// ParseListQuery normalizes raw page/limit/q query parameters. Absent values
// take their defaults; non-numeric or out-of-range values fail.
func ParseListQuery(rawPage, rawLimit, rawSearch string) (ListIssuesQuery, error) {
	q := ListIssuesQuery{
		Page:   defaultPage,
		Limit:  defaultLimit,
		Search: strings.TrimSpace(rawSearch),
	}

	if rawPage != "" {
		n, err := strconv.Atoi(rawPage)
		if err != nil || n < 1 {
			return ListIssuesQuery{}, &domain.ValidationError{Field: "page", Message: "must be an integer greater than or equal to 1"}
		}
		q.Page = n
	}

	if rawLimit != "" {
		n, err := strconv.Atoi(rawLimit)
		if err != nil || n < 1 || n > maxLimit {
			return ListIssuesQuery{}, &domain.ValidationError{Field: "limit", Message: "must be an integer between 1 and 100"}
		}
		q.Limit = n
	}

	return q, nil
}

// ParseID parses a path identifier as a positive integer.
func ParseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		return 0, &domain.ValidationError{Field: "id", Message: "must be a positive integer"}
	}
	return id, nil
}

// CreateIssueRequest is the body of POST /api/issues. Unknown fields are
// ignored by JSON decoding.
type CreateIssueRequest struct {
	Title       string           `json:"title" validate:"required"`
	Description string           `json:"description"`
	Priority    *domain.Priority `json:"priority" validate:"omitempty,oneof=1 2 3"`
}

// PriorityOrDefault returns the requested priority, or medium when absent.
func (r CreateIssueRequest) PriorityOrDefault() domain.Priority {
	if r.Priority == nil {
		return domain.PriorityMedium
	}
	return *r.Priority
}

// UpdateIssueRequest is the body of PATCH /api/issues/{id}: one optional slot
// per mutable attribute. An entirely empty body denotes a no-op update.
type UpdateIssueRequest struct {
	Title       *string          `json:"title" validate:"omitempty,min=1"`
	Description *string          `json:"description"`
	Status      *domain.Status   `json:"status" validate:"omitempty,oneof=open in_progress done"`
	Priority    *domain.Priority `json:"priority" validate:"omitempty,oneof=1 2 3"`
}

// Patch converts the request into the store-level patch form.
func (r UpdateIssueRequest) Patch() domain.IssuePatch {
	return domain.IssuePatch{
		Title:       r.Title,
		Description: r.Description,
		Status:      r.Status,
		Priority:    r.Priority,
	}
}
