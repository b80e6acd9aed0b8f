package waypost

import (
	"errors"
	"testing"
	"time"
)

func TestContentCacheServesAndInvalidates(t *testing.T) {
	s := setupTestStore(t)
	cache := NewContentCache(s, time.Minute)

	if _, err := s.Create(testPost()); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	posts, err := cache.ListPosts("")
	if err != nil {
		t.Fatalf("ListPosts failed: %v", err)
	}
	if len(posts) != 1 {
		t.Fatalf("got %d posts, want 1", len(posts))
	}

	// A write behind the cache's back is invisible until invalidation.
	b := testPost()
	b.Slug = "second-post"
	if _, err := s.Create(b); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	posts, err = cache.ListPosts("")
	if err != nil {
		t.Fatalf("ListPosts failed: %v", err)
	}
	if len(posts) != 1 {
		t.Errorf("stale read returned %d posts, want 1", len(posts))
	}

	cache.Invalidate()
	posts, err = cache.ListPosts("")
	if err != nil {
		t.Fatalf("ListPosts failed: %v", err)
	}
	if len(posts) != 2 {
		t.Errorf("after invalidation got %d posts, want 2", len(posts))
	}
}

func TestContentCacheCategoryFilterIsCaseInsensitive(t *testing.T) {
	s := setupTestStore(t)
	cache := NewContentCache(s, time.Minute)

	if _, err := s.Create(testPost()); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	posts, err := cache.ListPosts("BEACHES")
	if err != nil {
		t.Fatalf("ListPosts failed: %v", err)
	}
	if len(posts) != 1 {
		t.Errorf("got %d posts for BEACHES, want 1", len(posts))
	}

	posts, err = cache.ListPosts("deserts")
	if err != nil {
		t.Fatalf("ListPosts failed: %v", err)
	}
	if len(posts) != 0 {
		t.Errorf("got %d posts for deserts, want 0", len(posts))
	}
}

func TestContentCacheGetPost(t *testing.T) {
	s := setupTestStore(t)
	cache := NewContentCache(s, time.Minute)

	if _, err := s.Create(testPost()); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	p, err := cache.GetPost("hidden-beaches-of-menorca")
	if err != nil {
		t.Fatalf("GetPost failed: %v", err)
	}
	if p.Title != "Hidden Beaches of Menorca" {
		t.Errorf("Title = %q", p.Title)
	}

	if _, err := cache.GetPost("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetPost(missing) = %v, want ErrNotFound", err)
	}
}
