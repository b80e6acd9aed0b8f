package waypost

import "github.com/wayfaremedia/waypost/sections"

// Post status values. The backend treats anything else as draft.
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
	StatusArchived  = "archived"
)

// Post format values. Standard posts carry a section list; simple posts
// render their HTML body directly.
const (
	FormatStandard = "standard"
	FormatSimple   = "simple"
)

// Post is the core content type stored in SQLite and rendered by templates.
// Body is trusted HTML produced by the CMS editor; ContentSections is the
// ordered section list interpreted by the sections package.
type Post struct {
	ID              string              `json:"id"`
	Title           string              `json:"title"`
	Slug            string              `json:"slug"`
	Status          string              `json:"status"`
	Format          string              `json:"format"`
	Categories      []string            `json:"categories"`
	Body            string              `json:"body"`
	ContentSections []sections.Envelope `json:"contentSections"`
	FeaturedImage   string              `json:"featuredImage"`
	ReadingTime     int                 `json:"readingTime"`
	CreatedAt       string              `json:"createdAt"`
	UpdatedAt       string              `json:"updatedAt"`
}

// Published reports whether the post is visible on the public site.
func (p Post) Published() bool {
	return p.Status == StatusPublished
}

// Link returns the public path for the post, which depends on its format.
func (p Post) Link() string {
	if p.Format == FormatSimple {
		return "/stories/" + p.Slug
	}
	return "/posts/" + p.Slug
}

// Page is a CMS-authored landing page: a slug plus an ordered section list.
// The homepage is the page with slug "home".
type Page struct {
	Slug     string              `json:"slug"`
	Title    string              `json:"title"`
	Sections []sections.Envelope `json:"sections"`
}

// Image holds metadata for an uploaded, processed image.
type Image struct {
	Filename     string
	OriginalName string
	Width        int
	Height       int
	Size         int
	UploadedAt   string
}
