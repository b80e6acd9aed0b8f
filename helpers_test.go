package waypost

import "testing"

func TestBuildURL(t *testing.T) {
	tests := []struct {
		base     string
		segments []string
		want     string
	}{
		{"https://example.com", nil, "https://example.com"},
		{"https://example.com", []string{"posts", "my-slug"}, "https://example.com/posts/my-slug/"},
		{"https://example.com/", []string{"category", "beaches"}, "https://example.com/category/beaches/"},
	}
	for _, tt := range tests {
		if got := BuildURL(tt.base, tt.segments...); got != tt.want {
			t.Errorf("BuildURL(%q, %v) = %q, want %q", tt.base, tt.segments, got, tt.want)
		}
	}
}

func TestExcerpt(t *testing.T) {
	if got := Excerpt("", 10); got != "" {
		t.Errorf("Excerpt of empty body = %q, want empty", got)
	}
	if got := Excerpt("<p>short body</p>", 10); got != "short body" {
		t.Errorf("Excerpt = %q, want %q", got, "short body")
	}
	long := Excerpt("<p>one two three four five</p>", 3)
	if long != "one two three…" {
		t.Errorf("Excerpt = %q, want truncated with ellipsis", long)
	}
}
