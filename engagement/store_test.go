package engagement

import (
	"path/filepath"
	"testing"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(filepath.Join(t.TempDir(), "engagement.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSubscribeDeduplicates(t *testing.T) {
	s := setupTestStore(t)

	if err := s.Subscribe("reader@example.com"); err != nil {
		t.Fatalf("Subscribe failed: %v", err)
	}
	// Same address again must not error.
	if err := s.Subscribe("reader@example.com"); err != nil {
		t.Fatalf("repeat Subscribe failed: %v", err)
	}

	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM subscribers`).Scan(&n); err != nil {
		t.Fatalf("count subscribers: %v", err)
	}
	if n != 1 {
		t.Errorf("subscriber count = %d, want 1", n)
	}
}

func TestCommentsRoundTrip(t *testing.T) {
	s := setupTestStore(t)

	c, err := s.AddComment(Comment{
		PostSlug: "hidden-beaches",
		Author:   "Mara",
		Body:     "We found the third cove by accident. Worth the hike.",
	}, "abcd1234")
	if err != nil {
		t.Fatalf("AddComment failed: %v", err)
	}
	if c.ID == 0 {
		t.Error("comment should have an assigned id")
	}

	comments, err := s.ListComments("hidden-beaches")
	if err != nil {
		t.Fatalf("ListComments failed: %v", err)
	}
	if len(comments) != 1 {
		t.Fatalf("got %d comments, want 1", len(comments))
	}
	if comments[0].Author != "Mara" {
		t.Errorf("Author = %q, want %q", comments[0].Author, "Mara")
	}

	other, err := s.ListComments("another-post")
	if err != nil {
		t.Fatalf("ListComments failed: %v", err)
	}
	if len(other) != 0 {
		t.Errorf("got %d comments for other post, want 0", len(other))
	}
}

func TestLikeOncePerVisitor(t *testing.T) {
	s := setupTestStore(t)

	count, err := s.Like("hidden-beaches", "visitor-a")
	if err != nil {
		t.Fatalf("Like failed: %v", err)
	}
	if count != 1 {
		t.Errorf("like count = %d, want 1", count)
	}

	// Same visitor again: still one like.
	count, err = s.Like("hidden-beaches", "visitor-a")
	if err != nil {
		t.Fatalf("repeat Like failed: %v", err)
	}
	if count != 1 {
		t.Errorf("like count after repeat = %d, want 1", count)
	}

	count, err = s.Like("hidden-beaches", "visitor-b")
	if err != nil {
		t.Fatalf("Like failed: %v", err)
	}
	if count != 2 {
		t.Errorf("like count = %d, want 2", count)
	}
}

func TestSaveReport(t *testing.T) {
	s := setupTestStore(t)

	err := s.SaveReport(Report{
		PostSlug:    "hidden-beaches",
		Reason:      "broken-image",
		Detail:      "The gallery's second photo does not load.",
		VisitorHash: "abcd1234",
	})
	if err != nil {
		t.Fatalf("SaveReport failed: %v", err)
	}

	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM reports WHERE post_slug = ?`, "hidden-beaches").Scan(&n); err != nil {
		t.Fatalf("count reports: %v", err)
	}
	if n != 1 {
		t.Errorf("report count = %d, want 1", n)
	}
}

func TestSettingsUpsert(t *testing.T) {
	s := setupTestStore(t)

	got, err := s.GetSetting("missing")
	if err != nil {
		t.Fatalf("GetSetting failed: %v", err)
	}
	if got != "" {
		t.Errorf("missing setting = %q, want empty", got)
	}

	if err := s.SetSetting("hash_salt", "aa"); err != nil {
		t.Fatalf("SetSetting failed: %v", err)
	}
	if err := s.SetSetting("hash_salt", "bb"); err != nil {
		t.Fatalf("SetSetting upsert failed: %v", err)
	}
	got, err = s.GetSetting("hash_salt")
	if err != nil {
		t.Fatalf("GetSetting failed: %v", err)
	}
	if got != "bb" {
		t.Errorf("hash_salt = %q, want %q", got, "bb")
	}
}
