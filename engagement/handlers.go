package engagement

import (
	"fmt"
	"net/http"
	"net/mail"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
)

// Handler serves the engagement HTTP endpoints.
type Handler struct {
	store   *Store
	reports ReportSink
	limiter *rateLimiter
}

// NewHandler creates an engagement handler. Write endpoints are rate-limited
// to 30 requests per IP per minute.
func NewHandler(store *Store, reports ReportSink) *Handler {
	return &Handler{
		store:   store,
		reports: reports,
		limiter: newRateLimiter(30, time.Minute),
	}
}

// RegisterRoutes mounts the engagement endpoints on an API route group.
func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.POST("/newsletter", h.Subscribe)
	g.GET("/posts/:slug/comments", h.ListComments)
	g.POST("/posts/:slug/comments", h.AddComment)
	g.POST("/posts/:slug/like", h.Like)
	g.POST("/posts/:slug/report", h.Report)
}

// Input validation limits.
const (
	maxEmailLen         = 254
	maxAuthorLen        = 80
	maxCommentLen       = 4000
	maxReasonLen        = 80
	maxReportDetailLen  = 2000
	maxCommentsPerVisit = 200
)

// Subscribe handles a newsletter signup from either a JSON body or the
// footer form.
func (h *Handler) Subscribe(c echo.Context) error {
	if !h.limiter.allow(c.RealIP()) {
		return c.NoContent(http.StatusTooManyRequests)
	}

	var req struct {
		Email string `json:"email" form:"email"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
	}
	email := strings.TrimSpace(strings.ToLower(req.Email))
	if email == "" || len(email) > maxEmailLen {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "a valid email is required"})
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "a valid email is required"})
	}

	if err := h.store.Subscribe(email); err != nil {
		return fmt.Errorf("newsletter subscribe: %w", err)
	}
	return c.JSON(http.StatusOK, map[string]any{"ok": true})
}

// ListComments returns the comments for a post.
func (h *Handler) ListComments(c echo.Context) error {
	comments, err := h.store.ListComments(c.Param("slug"))
	if err != nil {
		return err
	}
	if len(comments) > maxCommentsPerVisit {
		comments = comments[len(comments)-maxCommentsPerVisit:]
	}
	return c.JSON(http.StatusOK, comments)
}

// AddComment stores a reader comment.
func (h *Handler) AddComment(c echo.Context) error {
	if !h.limiter.allow(c.RealIP()) {
		return c.NoContent(http.StatusTooManyRequests)
	}

	var req struct {
		Author string `json:"author" form:"author"`
		Body   string `json:"body" form:"body"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
	}
	author := strings.TrimSpace(req.Author)
	body := strings.TrimSpace(req.Body)
	if author == "" || len(author) > maxAuthorLen {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "a name is required"})
	}
	if body == "" || len(body) > maxCommentLen {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "a comment body is required"})
	}

	visitor := VisitorHash(c.RealIP(), c.Request().UserAgent())
	comment, err := h.store.AddComment(Comment{
		PostSlug: c.Param("slug"),
		Author:   author,
		Body:     body,
	}, visitor)
	if err != nil {
		return fmt.Errorf("add comment: %w", err)
	}
	return c.JSON(http.StatusOK, comment)
}

// Like records a like; one per visitor hash per post.
func (h *Handler) Like(c echo.Context) error {
	if !h.limiter.allow(c.RealIP()) {
		return c.NoContent(http.StatusTooManyRequests)
	}

	visitor := VisitorHash(c.RealIP(), c.Request().UserAgent())
	count, err := h.store.Like(c.Param("slug"), visitor)
	if err != nil {
		return fmt.Errorf("like post: %w", err)
	}
	return c.JSON(http.StatusOK, map[string]any{"ok": true, "likes": count})
}

// Report forwards a content report to the configured sink.
func (h *Handler) Report(c echo.Context) error {
	if !h.limiter.allow(c.RealIP()) {
		return c.NoContent(http.StatusTooManyRequests)
	}

	var req struct {
		Reason string `json:"reason" form:"reason"`
		Detail string `json:"detail" form:"detail"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
	}
	reason := strings.TrimSpace(req.Reason)
	if reason == "" || len(reason) > maxReasonLen {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "a reason is required"})
	}
	if len(req.Detail) > maxReportDetailLen {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "detail is too long"})
	}

	report := Report{
		PostSlug:    c.Param("slug"),
		Reason:      reason,
		Detail:      strings.TrimSpace(req.Detail),
		VisitorHash: VisitorHash(c.RealIP(), c.Request().UserAgent()),
		CreatedAt:   time.Now().UTC(),
	}
	if err := h.reports.SaveReport(report); err != nil {
		return fmt.Errorf("save report: %w", err)
	}
	return c.JSON(http.StatusOK, map[string]any{"ok": true})
}
