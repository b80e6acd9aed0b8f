package waypost

import (
	"errors"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/wayfaremedia/waypost/sections"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(filepath.Join(t.TempDir(), "waypost.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func testPost() Post {
	return Post{
		Slug:       "hidden-beaches-of-menorca",
		Title:      "Hidden Beaches of Menorca",
		Status:     StatusPublished,
		Format:     FormatStandard,
		Categories: []string{"beaches", "spain"},
		Body:       "<p>Start at the southern trailhead before sunrise.</p>",
		ContentSections: []sections.Envelope{
			{Type: "text", Data: map[string]any{"content": "<p>Pack water.</p>"}},
		},
		FeaturedImage: "/public/uploads/menorca-cove.jpg",
		ReadingTime:   4,
		CreatedAt:     "2026-08-01T09:00:00Z",
		UpdatedAt:     "2026-08-01T09:00:00Z",
	}
}

func TestCreateAndGetPost(t *testing.T) {
	s := setupTestStore(t)

	id, err := s.Create(testPost())
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if id == "" {
		t.Fatal("Create should generate an id")
	}

	got, err := s.GetPost("hidden-beaches-of-menorca")
	if err != nil {
		t.Fatalf("GetPost failed: %v", err)
	}
	if got.Title != "Hidden Beaches of Menorca" {
		t.Errorf("Title = %q, want %q", got.Title, "Hidden Beaches of Menorca")
	}
	if !reflect.DeepEqual(got.Categories, []string{"beaches", "spain"}) {
		t.Errorf("Categories = %v, want [beaches spain]", got.Categories)
	}
	if len(got.ContentSections) != 1 || got.ContentSections[0].Type != "text" {
		t.Errorf("ContentSections = %v, want one text section", got.ContentSections)
	}
}

func TestGetPostSkipsDrafts(t *testing.T) {
	s := setupTestStore(t)

	p := testPost()
	p.Status = StatusDraft
	if _, err := s.Create(p); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if _, err := s.GetPost(p.Slug); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetPost on draft = %v, want ErrNotFound", err)
	}
	if _, err := s.GetPostAny(p.Slug); err != nil {
		t.Errorf("GetPostAny on draft failed: %v", err)
	}
}

func TestUpdateMergesPartialDocuments(t *testing.T) {
	s := setupTestStore(t)

	id, err := s.Create(testPost())
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	// Only the title arrives; everything else keeps its stored value.
	err = s.Update(id, Post{
		Title:     "Hidden Coves of Menorca",
		UpdatedAt: "2026-08-02T10:00:00Z",
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	got, err := s.GetPostByID(id)
	if err != nil {
		t.Fatalf("GetPostByID failed: %v", err)
	}
	if got.Title != "Hidden Coves of Menorca" {
		t.Errorf("Title = %q, want the updated title", got.Title)
	}
	if got.Body == "" {
		t.Error("Body should keep its stored value on a partial update")
	}
	if got.FeaturedImage != "/public/uploads/menorca-cove.jpg" {
		t.Errorf("FeaturedImage = %q, want stored value", got.FeaturedImage)
	}
	if got.CreatedAt != "2026-08-01T09:00:00Z" {
		t.Errorf("CreatedAt = %q, should never change on update", got.CreatedAt)
	}
	if got.UpdatedAt != "2026-08-02T10:00:00Z" {
		t.Errorf("UpdatedAt = %q, want the new timestamp", got.UpdatedAt)
	}
}

func TestUpdateMissingPost(t *testing.T) {
	s := setupTestStore(t)

	err := s.Update("no-such-id", Post{Title: "x"})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Update on missing post = %v, want ErrNotFound", err)
	}
}

func TestListPostsByCategory(t *testing.T) {
	s := setupTestStore(t)

	a := testPost()
	if _, err := s.Create(a); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	b := testPost()
	b.Slug = "street-food-in-hanoi"
	b.Title = "Street Food in Hanoi"
	b.Categories = []string{"food", "vietnam"}
	if _, err := s.Create(b); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	posts, err := s.ListPosts("food")
	if err != nil {
		t.Fatalf("ListPosts failed: %v", err)
	}
	if len(posts) != 1 || posts[0].Slug != "street-food-in-hanoi" {
		t.Errorf("ListPosts(food) = %v, want only the Hanoi post", posts)
	}

	all, err := s.ListPosts("")
	if err != nil {
		t.Fatalf("ListPosts failed: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("ListPosts(\"\") returned %d posts, want 2", len(all))
	}

	cats, err := s.ListCategories()
	if err != nil {
		t.Fatalf("ListCategories failed: %v", err)
	}
	if !reflect.DeepEqual(cats, []string{"beaches", "food", "spain", "vietnam"}) {
		t.Errorf("ListCategories = %v, want sorted distinct categories", cats)
	}
}

func TestDeletePost(t *testing.T) {
	s := setupTestStore(t)

	id, err := s.Create(testPost())
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if err := s.DeletePost(id); err != nil {
		t.Fatalf("DeletePost failed: %v", err)
	}
	if err := s.DeletePost(id); !errors.Is(err, ErrNotFound) {
		t.Errorf("second DeletePost = %v, want ErrNotFound", err)
	}
}

func TestSaveAndGetPage(t *testing.T) {
	s := setupTestStore(t)

	page := Page{
		Slug:  "home",
		Title: "Welcome",
		Sections: []sections.Envelope{
			{Type: "hero", Data: map[string]any{"title": "Wander further"}},
		},
	}
	if err := s.SavePage(page); err != nil {
		t.Fatalf("SavePage failed: %v", err)
	}

	got, err := s.GetPage("home")
	if err != nil {
		t.Fatalf("GetPage failed: %v", err)
	}
	if got.Title != "Welcome" {
		t.Errorf("Title = %q, want %q", got.Title, "Welcome")
	}
	if len(got.Sections) != 1 || got.Sections[0].Type != "hero" {
		t.Errorf("Sections = %v, want one hero", got.Sections)
	}

	// Upsert replaces.
	page.Title = "Welcome back"
	if err := s.SavePage(page); err != nil {
		t.Fatalf("SavePage upsert failed: %v", err)
	}
	got, err = s.GetPage("home")
	if err != nil {
		t.Fatalf("GetPage failed: %v", err)
	}
	if got.Title != "Welcome back" {
		t.Errorf("Title after upsert = %q, want %q", got.Title, "Welcome back")
	}
}

func TestImageMetadata(t *testing.T) {
	s := setupTestStore(t)

	img := Image{
		Filename:     "menorca-cove.jpg",
		OriginalName: "IMG_4021.jpeg",
		Width:        1600,
		Height:       1067,
		Size:         284113,
		UploadedAt:   "2026-08-01T09:00:00Z",
	}
	if err := s.SaveImage(img); err != nil {
		t.Fatalf("SaveImage failed: %v", err)
	}

	images, err := s.ListImages()
	if err != nil {
		t.Fatalf("ListImages failed: %v", err)
	}
	if len(images) != 1 || images[0].Filename != "menorca-cove.jpg" {
		t.Errorf("ListImages = %v, want the saved image", images)
	}

	if err := s.DeleteImage("menorca-cove.jpg"); err != nil {
		t.Fatalf("DeleteImage failed: %v", err)
	}
	images, err = s.ListImages()
	if err != nil {
		t.Fatalf("ListImages failed: %v", err)
	}
	if len(images) != 0 {
		t.Errorf("ListImages after delete = %v, want empty", images)
	}
}
