package waypost

import (
	"strings"
	"testing"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Hello World", "hello-world"},
		{"Café del Mar!", "cafe-del-mar"},
		{"  Multiple   Spaces  ", "multiple-spaces"},
		{"snake_case_title", "snake-case-title"},
		{"Already-Hyphenated-Title", "already-hyphenated-title"},
		{"--- leading and trailing ---", "leading-and-trailing"},
		{"100% Pure: Beaches & Coves", "100-pure-beaches-coves"},
		{"Şehir Gezisi İçin Notlar", "sehir-gezisi-icin-notlar"},
		{"!!!", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := Slugify(tt.in); got != tt.want {
			t.Errorf("Slugify(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestReadingTime(t *testing.T) {
	if got := ReadingTime(""); got != 1 {
		t.Errorf("ReadingTime(\"\") = %d, want 1", got)
	}
	if got := ReadingTime("<p></p><div></div>"); got != 1 {
		t.Errorf("ReadingTime of markup-only body = %d, want 1", got)
	}
	if got := ReadingTime("<p>just a few words here</p>"); got != 1 {
		t.Errorf("ReadingTime of a short body = %d, want 1", got)
	}

	// 220 words reads in exactly one minute; one more pushes it to two.
	word := "wander "
	if got := ReadingTime("<p>" + strings.Repeat(word, 220) + "</p>"); got != 1 {
		t.Errorf("ReadingTime of 220 words = %d, want 1", got)
	}
	if got := ReadingTime("<p>" + strings.Repeat(word, 221) + "</p>"); got != 2 {
		t.Errorf("ReadingTime of 221 words = %d, want 2", got)
	}

	// Tags act as word separators: "one</p><p>two" is two words.
	if got := ReadingTime("<p>" + strings.Repeat("word</p><p>", 440) + "</p>"); got != 2 {
		t.Errorf("ReadingTime of 440 tag-separated words = %d, want 2", got)
	}
}
