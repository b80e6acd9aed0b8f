package sections

import (
	"bytes"
	"context"
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/a-h/templ"
)

// Body returns a component rendering the in-flow sections of a post in
// order. Hero and breadcrumb sections are owned by the full-page layout and
// are skipped here, as are envelopes with unknown type tags. Rendering is
// pure: the same list always produces the same bytes.
func Body(list []Envelope) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var buf bytes.Buffer
		for _, env := range list {
			sec, ok := Decode(env)
			if !ok {
				continue
			}
			renderSection(&buf, sec)
		}
		_, err := w.Write(buf.Bytes())
		return err
	})
}

// HeroBanner renders the full-bleed hero for the page layout.
func HeroBanner(h Hero) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var buf bytes.Buffer
		renderHero(&buf, h)
		_, err := w.Write(buf.Bytes())
		return err
	})
}

// BreadcrumbTrail renders the navigation trail for the page layout.
func BreadcrumbTrail(b Breadcrumb) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var buf bytes.Buffer
		renderBreadcrumb(&buf, b)
		_, err := w.Write(buf.Bytes())
		return err
	})
}

func renderSection(buf *bytes.Buffer, sec Section) {
	switch s := sec.(type) {
	case Hero, Breadcrumb:
		// Handled by the full-page layout.
	case Text:
		renderText(buf, s)
	case Image:
		renderImage(buf, s)
	case Gallery:
		renderGallery(buf, s)
	case PopularPosts:
		renderPopularPosts(buf, s)
	case Video:
		renderVideo(buf, s)
	default:
		// Unhandled section kinds render nothing.
	}
}

func renderHero(buf *bytes.Buffer, h Hero) {
	buf.WriteString(`<section class="hero`)
	if h.Parallax {
		buf.WriteString(` hero-parallax`)
	}
	buf.WriteString(`"`)
	if h.BackgroundImage != "" {
		buf.WriteString(` style="background-image:url('` + attr(h.BackgroundImage) + `')"`)
	}
	buf.WriteString(`>`)

	op := h.OverlayOpacity
	if op < 0 {
		op = 0
	}
	if op > 1 {
		op = 1
	}
	fmt.Fprintf(buf, `<div class="hero-overlay" style="background:rgba(0,0,0,%.2f)"></div>`, op)

	buf.WriteString(`<div class="hero-content">`)
	if h.Title != "" {
		buf.WriteString(`<h1>` + attr(h.Title) + `</h1>`)
	}
	if h.Subtitle != "" {
		buf.WriteString(`<p class="hero-subtitle">` + attr(h.Subtitle) + `</p>`)
	}
	if meta := joinMeta(h.Author, h.Date, h.ReadTime); meta != "" {
		buf.WriteString(`<p class="hero-meta">` + meta + `</p>`)
	}
	buf.WriteString(`</div></section>`)
}

func renderText(buf *bytes.Buffer, s Text) {
	buf.WriteString(`<section class="post-section post-text align-` + alignment(s.Alignment))
	if s.DropCap {
		buf.WriteString(` drop-cap`)
	}
	// Content is trusted HTML from the CMS editor; it is written verbatim.
	buf.WriteString(`"><div class="text-column">`)
	buf.WriteString(s.Content)
	buf.WriteString(`</div></section>`)
}

func renderImage(buf *bytes.Buffer, s Image) {
	if s.URL == "" {
		return
	}
	justify := "center"
	switch s.Alignment {
	case AlignLeft:
		justify = "flex-start"
	case AlignRight:
		justify = "flex-end"
	}
	buf.WriteString(`<section class="post-section post-image" style="display:flex;justify-content:` + justify + `">`)
	buf.WriteString(`<figure`)
	if cls := decorationClass(s.Rounded, s.Shadow); cls != "" {
		buf.WriteString(` class="` + cls + `"`)
	}
	buf.WriteString(`><img src="` + attr(s.URL) + `" alt="` + attr(s.Alt) + `"`)
	if s.Width > 0 {
		fmt.Fprintf(buf, ` width="%d"`, s.Width)
	}
	if s.Height > 0 {
		fmt.Fprintf(buf, ` height="%d"`, s.Height)
	}
	buf.WriteString(` loading="lazy"/>`)
	if s.Caption != "" {
		buf.WriteString(`<figcaption>` + attr(s.Caption) + `</figcaption>`)
	}
	buf.WriteString(`</figure></section>`)
}

func renderGallery(buf *bytes.Buffer, s Gallery) {
	cols := s.Columns
	if cols < 1 {
		cols = 1
	}
	if cols > 6 {
		cols = 6
	}
	gap := "16px"
	switch s.Spacing {
	case SpacingSm:
		gap = "8px"
	case SpacingLg:
		gap = "24px"
	}
	layout := s.Layout
	if layout == "" {
		layout = LayoutGrid
	}
	fmt.Fprintf(buf, `<section class="post-section post-gallery layout-%s" style="display:grid;grid-template-columns:repeat(%d,1fr);gap:%s">`,
		attr(layout), cols, gap)
	for _, img := range s.Images {
		if img.URL == "" {
			// A tile without an image keeps its grid position so the
			// surrounding layout stays stable.
			buf.WriteString(`<div class="gallery-tile gallery-placeholder"></div>`)
			continue
		}
		buf.WriteString(`<figure class="gallery-tile"><img src="` + attr(img.URL) + `" alt="` + attr(img.AltText) + `" loading="lazy"/>`)
		if img.Caption != "" {
			buf.WriteString(`<figcaption>` + attr(img.Caption) + `</figcaption>`)
		}
		buf.WriteString(`</figure>`)
	}
	buf.WriteString(`</section>`)
}

func renderPopularPosts(buf *bytes.Buffer, s PopularPosts) {
	buf.WriteString(`<section class="post-section popular-posts"><div class="popular-featured">`)
	if s.Title != "" {
		buf.WriteString(`<h2>` + attr(s.Title) + `</h2>`)
	}
	if s.Description != "" {
		buf.WriteString(`<p class="popular-description">` + attr(s.Description) + `</p>`)
	}
	if s.Featured != nil {
		renderPostRef(buf, *s.Featured, "featured-post")
	}
	buf.WriteString(`</div><div class="popular-side">`)
	for _, ref := range s.SidePosts {
		renderPostRef(buf, ref, "side-post")
	}
	buf.WriteString(`</div></section>`)
}

func renderPostRef(buf *bytes.Buffer, ref PostRef, class string) {
	title := ref.Title
	if title == "" {
		title = "Untitled"
	}
	buf.WriteString(`<article class="` + class + `">`)
	if ref.Image != "" {
		buf.WriteString(`<img src="` + attr(ref.Image) + `" alt="` + attr(title) + `" loading="lazy"/>`)
	}
	if ref.Href != "" {
		buf.WriteString(`<h3><a href="` + attr(ref.Href) + `">` + attr(title) + `</a></h3>`)
	} else {
		buf.WriteString(`<h3>` + attr(title) + `</h3>`)
	}
	if ref.Excerpt != "" {
		buf.WriteString(`<p class="excerpt">` + attr(ref.Excerpt) + `</p>`)
	}
	if meta := joinMeta(ref.ReadTime, ref.PublishDate); meta != "" {
		buf.WriteString(`<p class="meta">` + meta + `</p>`)
	}
	buf.WriteString(`</article>`)
}

func renderBreadcrumb(buf *bytes.Buffer, b Breadcrumb) {
	if !b.Enabled || len(b.Items) == 0 {
		return
	}
	buf.WriteString(`<nav class="breadcrumb" aria-label="Breadcrumb"><ol>`)
	for _, item := range b.Items {
		buf.WriteString(`<li><a href="` + attr(item.Href) + `">` + attr(item.Label) + `</a></li>`)
	}
	buf.WriteString(`</ol></nav>`)
}

func renderVideo(buf *bytes.Buffer, s Video) {
	if s.URL == "" {
		return
	}
	buf.WriteString(`<section class="post-section post-video"><figure><video src="` + attr(s.URL) + `"`)
	if s.Poster != "" {
		buf.WriteString(` poster="` + attr(s.Poster) + `"`)
	}
	if s.Title != "" {
		buf.WriteString(` title="` + attr(s.Title) + `"`)
	}
	if s.Autoplay {
		buf.WriteString(` autoplay`)
	}
	if s.Muted {
		buf.WriteString(` muted`)
	}
	if s.Loop {
		buf.WriteString(` loop`)
	}
	if s.Controls {
		buf.WriteString(` controls`)
	}
	if h, ok := s.Height["base"]; ok && h != "" {
		buf.WriteString(` style="height:` + attr(h) + `"`)
	}
	buf.WriteString(` playsinline></video>`)
	if s.Caption != "" {
		buf.WriteString(`<figcaption>` + attr(s.Caption) + `</figcaption>`)
	}
	buf.WriteString(`</figure></section>`)
}

// joinMeta joins the non-empty parts of a metadata line with a separator.
func joinMeta(parts ...string) string {
	var kept []string
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, attr(p))
		}
	}
	return strings.Join(kept, " &middot; ")
}

func alignment(a string) string {
	switch a {
	case AlignCenter, AlignRight, AlignJustify:
		return a
	default:
		return AlignLeft
	}
}

func decorationClass(rounded, shadow bool) string {
	switch {
	case rounded && shadow:
		return "rounded shadowed"
	case rounded:
		return "rounded"
	case shadow:
		return "shadowed"
	}
	return ""
}

func attr(s string) string {
	return html.EscapeString(s)
}
