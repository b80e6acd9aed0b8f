package waypost

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
)

// PostStore is the backend post-storage primitive the write path delegates
// to. The SQLite Store satisfies it; tests substitute a recording fake.
type PostStore interface {
	Create(p Post) (string, error)
	Update(id string, p Post) error
}

// errInlineImage is the one business rule enforced at this layer: featured
// images must be hosted URLs, not inline base64 payloads. Authors upload
// through /admin/images/upload and reference the result.
var errInlineImage = errors.New("featuredImage must be a hosted URL, not an inline data URL")

var errMissingSlug = errors.New("a slug or a title to derive one from is required")

// handleCreatePost accepts a raw post document, normalizes it, and persists
// it through the PostStore. Responds {ok:true, id} or 400 {error}.
func (a *App) handleCreatePost(c echo.Context) error {
	var raw map[string]any
	if err := json.NewDecoder(c.Request().Body).Decode(&raw); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid JSON body"})
	}
	doc, err := normalizePost(raw, time.Now().UTC(), true)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	post, err := docToPost(doc)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	id, err := a.Posts.Create(post)
	if err != nil {
		return fmt.Errorf("create post: %w", err)
	}
	a.Cache.Invalidate()
	return c.JSON(http.StatusOK, map[string]any{"ok": true, "id": id})
}

// handleUpdatePost normalizes a raw document and overlays it onto the post
// with the given identifier.
func (a *App) handleUpdatePost(c echo.Context) error {
	id := c.Param("id")
	var raw map[string]any
	if err := json.NewDecoder(c.Request().Body).Decode(&raw); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid JSON body"})
	}
	doc, err := normalizePost(raw, time.Now().UTC(), false)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	post, err := docToPost(doc)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	if err := a.Posts.Update(id, post); err != nil {
		if errors.Is(err, ErrNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "post not found"})
		}
		return fmt.Errorf("update post %s: %w", id, err)
	}
	a.Cache.Invalidate()
	return c.JSON(http.StatusOK, map[string]any{"ok": true, "id": id})
}

// normalizePost shapes a raw post document before persistence. The order
// matters: cleaning runs first so every later step sees only surviving keys.
func normalizePost(raw map[string]any, now time.Time, create bool) (map[string]any, error) {
	doc := Clean(raw)

	if create {
		if _, ok := doc["status"]; !ok {
			doc["status"] = StatusDraft
		}
	}

	if _, ok := doc["slug"]; !ok {
		title, _ := doc["title"].(string)
		if create && title == "" {
			return nil, errMissingSlug
		}
		if title != "" {
			slug := Slugify(title)
			if slug == "" {
				return nil, errMissingSlug
			}
			doc["slug"] = slug
		}
	}

	if img, ok := doc["featuredImage"].(string); ok && strings.HasPrefix(img, "data:") {
		return nil, errInlineImage
	}

	if cs, ok := doc["contentSections"].([]any); ok {
		doc["contentSections"] = normalizeSections(cs)
	}

	if create {
		body, _ := doc["body"].(string)
		doc["readingTime"] = ReadingTime(body)
	} else if body, ok := doc["body"].(string); ok {
		doc["readingTime"] = ReadingTime(body)
	}

	doc["updatedAt"] = now.Format(time.RFC3339)
	if create {
		doc["createdAt"] = now.Format(time.RFC3339)
	}
	return doc, nil
}

// normalizeSections reduces each section entry to its type tag and cleaned
// data payload. Entries without a type tag are dropped; unknown tags are
// kept so the renderer can decide what to do with them.
func normalizeSections(entries []any) []any {
	out := make([]any, 0, len(entries))
	for _, e := range entries {
		entry, ok := e.(map[string]any)
		if !ok {
			continue
		}
		typ, _ := entry["type"].(string)
		if typ == "" {
			continue
		}
		data, _ := entry["data"].(map[string]any)
		out = append(out, map[string]any{"type": typ, "data": Clean(data)})
	}
	return out
}

// docToPost decodes a normalized document into the typed Post the store
// persists. Unknown keys are discarded here; the schema is the contract.
func docToPost(doc map[string]any) (Post, error) {
	b, err := json.Marshal(doc)
	if err != nil {
		return Post{}, fmt.Errorf("encode post document: %w", err)
	}
	var p Post
	if err := json.Unmarshal(b, &p); err != nil {
		return Post{}, fmt.Errorf("post document does not match the post schema: %w", err)
	}
	return p, nil
}

// handleGetPost returns a single post as JSON for the editor UI.
func (a *App) handleGetPost(c echo.Context) error {
	post, err := a.Store.GetPostAny(c.Param("slug"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "post not found"})
		}
		return err
	}
	return c.JSON(http.StatusOK, post)
}

// handleListPosts returns published posts as JSON, optionally filtered by
// category.
func (a *App) handleListPosts(c echo.Context) error {
	posts, err := a.Cache.ListPosts(c.QueryParam("category"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, posts)
}

// handleDeletePost removes a post by identifier.
func (a *App) handleDeletePost(c echo.Context) error {
	id := c.Param("id")
	if err := a.Store.DeletePost(id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "post not found"})
		}
		return fmt.Errorf("delete post %s: %w", id, err)
	}
	a.Cache.Invalidate()
	return c.JSON(http.StatusOK, map[string]any{"ok": true})
}

// handleSavePage upserts the section list for a standalone page such as the
// homepage. Sections go through the same normalization as post sections.
func (a *App) handleSavePage(c echo.Context) error {
	slug := c.Param("slug")
	var raw map[string]any
	if err := json.NewDecoder(c.Request().Body).Decode(&raw); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid JSON body"})
	}
	doc := Clean(raw)
	if cs, ok := doc["sections"].([]any); ok {
		doc["sections"] = normalizeSections(cs)
	}
	b, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode page document: %w", err)
	}
	var page Page
	if err := json.Unmarshal(b, &page); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "page document does not match the page schema"})
	}
	page.Slug = slug
	if err := a.Store.SavePage(page); err != nil {
		return fmt.Errorf("save page %s: %w", slug, err)
	}
	a.Cache.Invalidate()
	return c.JSON(http.StatusOK, map[string]any{"ok": true})
}

var _ PostStore = (*Store)(nil)
