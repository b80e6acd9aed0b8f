// Package views renders the public site pages. Types here mirror the root
// package's models to avoid import cycles; handlers convert before calling.
package views

import "github.com/wayfaremedia/waypost/sections"

// SiteConfig holds site-wide settings populated from environment variables.
// Every handler passes this to templates so nothing is hardcoded.
type SiteConfig struct {
	Name        string // SITE_NAME  (default "Waypost")
	URL         string // SITE_URL   (default "http://localhost:3000")
	Description string // SITE_DESCRIPTION
	Author      string // SITE_AUTHOR
}

// PageMeta carries per-page OpenGraph and SEO metadata into the <head>.
type PageMeta struct {
	Title       string
	Description string
	URL         string // canonical + og:url
	OGType      string // "website" or "article"
}

// PostView is the view model for a post: the fields templates need, plus
// the raw section list handed to the sections renderer.
type PostView struct {
	Title         string
	Slug          string
	Link          string
	Status        string
	Categories    []string
	Body          string
	Sections      []sections.Envelope
	FeaturedImage string
	ReadingTime   int
	PublishDate   string
	UpdatedAt     string
}
