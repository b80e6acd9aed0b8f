package waypost

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
)

// recordingStore captures the typed posts the write path hands to storage.
type recordingStore struct {
	created []Post
	updated map[string]Post
	fail    error
}

func (r *recordingStore) Create(p Post) (string, error) {
	if r.fail != nil {
		return "", r.fail
	}
	r.created = append(r.created, p)
	return "generated-id", nil
}

func (r *recordingStore) Update(id string, p Post) error {
	if r.fail != nil {
		return r.fail
	}
	if r.updated == nil {
		r.updated = make(map[string]Post)
	}
	r.updated[id] = p
	return nil
}

func testApp(rs *recordingStore) *App {
	a := New(SiteConfig{})
	a.Posts = rs
	a.Cache = NewContentCache(nil, time.Minute)
	return a
}

func postJSON(t *testing.T, a *App, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := a.Echo.NewContext(req, rec)
	parts := strings.Split(strings.Trim(target, "/"), "/")
	if method == http.MethodPut && len(parts) == 3 {
		c.SetParamNames("id")
		c.SetParamValues(parts[2])
	}
	var err error
	switch method {
	case http.MethodPost:
		err = a.handleCreatePost(c)
	case http.MethodPut:
		err = a.handleUpdatePost(c)
	}
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	return rec
}

func TestCreatePostDerivesSlugAndDefaults(t *testing.T) {
	rs := &recordingStore{}
	a := testApp(rs)

	rec := postJSON(t, a, http.MethodPost, "/api/posts",
		`{"title": "Hello World", "body": "<p>First post.</p>"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body %s", rec.Code, rec.Body)
	}
	if len(rs.created) != 1 {
		t.Fatalf("created %d posts, want 1", len(rs.created))
	}
	p := rs.created[0]
	if p.Slug != "hello-world" {
		t.Errorf("Slug = %q, want %q", p.Slug, "hello-world")
	}
	if p.Status != StatusDraft {
		t.Errorf("Status = %q, want draft by default", p.Status)
	}
	if p.ReadingTime != 1 {
		t.Errorf("ReadingTime = %d, want 1", p.ReadingTime)
	}
	if p.CreatedAt == "" || p.UpdatedAt == "" {
		t.Error("timestamps should be stamped on create")
	}
	if _, err := time.Parse(time.RFC3339, p.CreatedAt); err != nil {
		t.Errorf("CreatedAt %q is not RFC3339: %v", p.CreatedAt, err)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("response is not JSON: %v", err)
	}
	if resp["ok"] != true || resp["id"] != "generated-id" {
		t.Errorf("response = %v, want ok with the store id", resp)
	}
}

func TestCreatePostRejectsInlineImages(t *testing.T) {
	rs := &recordingStore{}
	a := testApp(rs)

	rec := postJSON(t, a, http.MethodPost, "/api/posts",
		`{"title": "Pic", "featuredImage": "data:image/png;base64,iVBORw0"}`)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if len(rs.created) != 0 {
		t.Error("nothing should be persisted when validation fails")
	}
	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("response is not JSON: %v", err)
	}
	if resp["error"] == "" {
		t.Error("error response should carry an error message")
	}
}

func TestCreatePostRequiresSlugOrTitle(t *testing.T) {
	rs := &recordingStore{}
	a := testApp(rs)

	rec := postJSON(t, a, http.MethodPost, "/api/posts", `{"body": "<p>No title.</p>"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}

	// A title that slugifies to nothing is as bad as no title.
	rec = postJSON(t, a, http.MethodPost, "/api/posts", `{"title": "!!!"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status for unslugifiable title = %d, want 400", rec.Code)
	}
	if len(rs.created) != 0 {
		t.Error("nothing should be persisted")
	}
}

func TestCreatePostNormalizesSections(t *testing.T) {
	rs := &recordingStore{}
	a := testApp(rs)

	rec := postJSON(t, a, http.MethodPost, "/api/posts", `{
		"title": "Sections",
		"contentSections": [
			{"type": "text", "data": {"content": "<p>hi</p>", "alignment": ""}},
			{"data": {"content": "orphan"}},
			{"type": "mystery", "data": {"x": "y"}},
			"not even an object"
		]
	}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body %s", rec.Code, rec.Body)
	}

	secs := rs.created[0].ContentSections
	if len(secs) != 2 {
		t.Fatalf("got %d sections, want 2 (untyped and non-object entries dropped)", len(secs))
	}
	if secs[0].Type != "text" {
		t.Errorf("first section type = %q, want text", secs[0].Type)
	}
	if _, ok := secs[0].Data["alignment"]; ok {
		t.Error("cleaned-away keys must not survive into storage")
	}
	// Unknown types are stored; the renderer decides to skip them.
	if secs[1].Type != "mystery" {
		t.Errorf("second section type = %q, want mystery", secs[1].Type)
	}
}

func TestUpdatePostPartialDocument(t *testing.T) {
	rs := &recordingStore{}
	a := testApp(rs)

	rec := postJSON(t, a, http.MethodPut, "/api/posts/abc123",
		`{"title": "New Title", "subtitle": ""}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body %s", rec.Code, rec.Body)
	}

	p, ok := rs.updated["abc123"]
	if !ok {
		t.Fatal("update should reach the store with the path id")
	}
	if p.Title != "New Title" {
		t.Errorf("Title = %q, want %q", p.Title, "New Title")
	}
	if p.Slug != "new-title" {
		t.Errorf("Slug = %q, want it derived from the new title", p.Slug)
	}
	// No body in the document means no reading-time recalculation.
	if p.ReadingTime != 0 {
		t.Errorf("ReadingTime = %d, want zero (untouched)", p.ReadingTime)
	}
	if p.Status != "" {
		t.Errorf("Status = %q, want zero (untouched)", p.Status)
	}
	if p.UpdatedAt == "" {
		t.Error("UpdatedAt should be stamped on every update")
	}
	if p.CreatedAt != "" {
		t.Error("CreatedAt must not be stamped on update")
	}
}

func TestUpdatePostRecalculatesReadingTimeWithBody(t *testing.T) {
	rs := &recordingStore{}
	a := testApp(rs)

	body := "<p>" + strings.Repeat("wander ", 300) + "</p>"
	doc, _ := json.Marshal(map[string]any{"body": body})
	rec := postJSON(t, a, http.MethodPut, "/api/posts/abc123", string(doc))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body %s", rec.Code, rec.Body)
	}
	if got := rs.updated["abc123"].ReadingTime; got != 2 {
		t.Errorf("ReadingTime = %d, want 2 for 300 words", got)
	}
}

func TestUpdatePostMissing(t *testing.T) {
	rs := &recordingStore{fail: ErrNotFound}
	a := testApp(rs)

	rec := postJSON(t, a, http.MethodPut, "/api/posts/ghost", `{"title": "Boo"}`)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestCreatePostInvalidJSON(t *testing.T) {
	rs := &recordingStore{}
	a := testApp(rs)

	rec := postJSON(t, a, http.MethodPost, "/api/posts", `{not json`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}
