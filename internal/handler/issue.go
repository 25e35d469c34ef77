package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sumire/issuetrack/internal/domain"
	"github.com/sumire/issuetrack/internal/service"
)

// IssueHandler handles the issue resource endpoints.
type IssueHandler struct {
	issues *service.IssueService
}

// NewIssueHandler creates a new IssueHandler.
func NewIssueHandler(issues *service.IssueService) *IssueHandler {
	return &IssueHandler{issues: issues}
}

// Register mounts the issue routes on the given group.
func (h *IssueHandler) Register(g *echo.Group) {
	g.GET("", h.List)
	g.POST("", h.Create)
	g.GET("/:id", h.Get)
	g.PATCH("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
}

// List handles GET /api/issues?page&limit&q.
func (h *IssueHandler) List(c echo.Context) error {
	q, err := ParseListQuery(c.QueryParam("page"), c.QueryParam("limit"), c.QueryParam("q"))
	if err != nil {
		return err
	}

	page, err := h.issues.List(c.Request().Context(), q.Page, q.Limit, q.Search)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, page)
}

// Create handles POST /api/issues.
func (h *IssueHandler) Create(c echo.Context) error {
	var req CreateIssueRequest
	if err := c.Bind(&req); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	if err := c.Validate(req); err != nil {
		return err
	}

	issue, err := h.issues.Create(c.Request().Context(), req.Title, req.Description, req.PriorityOrDefault())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, issue)
}

// Get handles GET /api/issues/:id.
func (h *IssueHandler) Get(c echo.Context) error {
	id, err := ParseID(c.Param("id"))
	if err != nil {
		return err
	}

	issue, err := h.issues.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, issue)
}

// Update handles PATCH /api/issues/:id.
func (h *IssueHandler) Update(c echo.Context) error {
	id, err := ParseID(c.Param("id"))
	if err != nil {
		return err
	}

	var req UpdateIssueRequest
	if err := c.Bind(&req); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	if err := c.Validate(req); err != nil {
		return err
	}

	issue, err := h.issues.Update(c.Request().Context(), id, req.Patch())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, issue)
}

// Delete handles DELETE /api/issues/:id.
func (h *IssueHandler) Delete(c echo.Context) error {
	id, err := ParseID(c.Param("id"))
	if err != nil {
		return err
	}

	if err := h.issues.Delete(c.Request().Context(), id); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}
