package views

import (
	"bytes"
	"context"
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/a-h/templ"

	"github.com/wayfaremedia/waypost/sections"
)

// page wraps a body writer in the shared HTML shell.
func page(cfg SiteConfig, meta PageMeta, jsonLD string, body func(ctx context.Context, buf *bytes.Buffer) error) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var buf bytes.Buffer
		buf.WriteString(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8"/>`)
		buf.WriteString(`<meta name="viewport" content="width=device-width, initial-scale=1"/>`)
		buf.WriteString(`<title>` + html.EscapeString(meta.Title) + `</title>`)
		if meta.Description != "" {
			buf.WriteString(`<meta name="description" content="` + html.EscapeString(meta.Description) + `"/>`)
		}
		if meta.URL != "" {
			buf.WriteString(`<link rel="canonical" href="` + html.EscapeString(meta.URL) + `"/>`)
			buf.WriteString(`<meta property="og:url" content="` + html.EscapeString(meta.URL) + `"/>`)
		}
		buf.WriteString(`<meta property="og:title" content="` + html.EscapeString(meta.Title) + `"/>`)
		if meta.OGType != "" {
			buf.WriteString(`<meta property="og:type" content="` + html.EscapeString(meta.OGType) + `"/>`)
		}
		buf.WriteString(`<link rel="stylesheet" href="/public/site.css"/>`)
		if jsonLD != "" {
			buf.WriteString(`<script type="application/ld+json">` + jsonLD + `</script>`)
		}
		buf.WriteString(`</head><body>`)
		writeHeader(&buf, cfg)
		buf.WriteString(`<main>`)
		if err := body(ctx, &buf); err != nil {
			return err
		}
		buf.WriteString(`</main>`)
		writeFooter(&buf, cfg)
		buf.WriteString(`<script src="/public/engagement.js" defer></script>`)
		buf.WriteString(`</body></html>`)
		_, err := w.Write(buf.Bytes())
		return err
	})
}

func writeHeader(buf *bytes.Buffer, cfg SiteConfig) {
	buf.WriteString(`<header class="site-header"><a class="site-name" href="/">` + html.EscapeString(cfg.Name) + `</a></header>`)
}

func writeFooter(buf *bytes.Buffer, cfg SiteConfig) {
	buf.WriteString(`<footer class="site-footer">`)
	buf.WriteString(`<form class="newsletter" method="post" action="/api/newsletter">`)
	buf.WriteString(`<label for="newsletter-email">Get new stories by email</label>`)
	buf.WriteString(`<input id="newsletter-email" type="email" name="email" required placeholder="you@example.com"/>`)
	buf.WriteString(`<button type="submit">Subscribe</button></form>`)
	buf.WriteString(`<p class="footer-note">` + html.EscapeString(cfg.Description) + `</p>`)
	buf.WriteString(`</footer>`)
}

// Home renders the homepage: CMS-authored sections for the "home" page (if
// any) followed by the latest posts and the category list.
func Home(cfg SiteConfig, pageSections []sections.Envelope, posts []PostView, categories []string) templ.Component {
	meta := PageMeta{
		Title:       cfg.Name,
		Description: cfg.Description,
		URL:         buildURL(cfg.URL),
		OGType:      "website",
	}
	return page(cfg, meta, WebsiteJsonLD(cfg), func(ctx context.Context, buf *bytes.Buffer) error {
		if hero, ok := sections.FindHero(pageSections); ok {
			if err := sections.HeroBanner(hero).Render(ctx, buf); err != nil {
				return err
			}
		}
		if err := sections.Body(pageSections).Render(ctx, buf); err != nil {
			return err
		}
		writeCategoryNav(buf, categories, "")
		buf.WriteString(`<section class="post-grid">`)
		for _, p := range posts {
			writePostCard(buf, p)
		}
		buf.WriteString(`</section>`)
		return nil
	})
}

// Category renders the listing page for one category.
func Category(cfg SiteConfig, category string, posts []PostView, categories []string) templ.Component {
	meta := PageMeta{
		Title:       category + " — " + cfg.Name,
		Description: cfg.Description,
		URL:         buildURL(cfg.URL, "category", category),
		OGType:      "website",
	}
	return page(cfg, meta, WebsiteJsonLD(cfg), func(ctx context.Context, buf *bytes.Buffer) error {
		writeCategoryNav(buf, categories, category)
		buf.WriteString(`<h1 class="category-title">` + html.EscapeString(category) + `</h1>`)
		buf.WriteString(`<section class="post-grid">`)
		for _, p := range posts {
			writePostCard(buf, p)
		}
		buf.WriteString(`</section>`)
		return nil
	})
}

// Post renders a full post page. The hero and breadcrumb come from the
// post's own section list when present; otherwise a hero is synthesized
// from the post fields and a default trail is built.
func Post(cfg SiteConfig, post PostView) templ.Component {
	meta := PageMeta{
		Title:       post.Title + " — " + cfg.Name,
		Description: cfg.Description,
		URL:         buildURL(cfg.URL, post.Link),
		OGType:      "article",
	}
	return page(cfg, meta, ArticleJsonLD(cfg, post), func(ctx context.Context, buf *bytes.Buffer) error {
		hero, ok := sections.FindHero(post.Sections)
		if !ok {
			hero = sections.Hero{
				BackgroundImage: post.FeaturedImage,
				Title:           post.Title,
				Date:            post.PublishDate,
				ReadTime:        fmt.Sprintf("%d min read", post.ReadingTime),
				OverlayOpacity:  0.4,
			}
		}
		if err := sections.HeroBanner(hero).Render(ctx, buf); err != nil {
			return err
		}

		crumb, ok := sections.FindBreadcrumb(post.Sections)
		if !ok {
			crumb = defaultTrail(post)
		}
		if err := sections.BreadcrumbTrail(crumb).Render(ctx, buf); err != nil {
			return err
		}

		buf.WriteString(`<article class="post-body" data-post-slug="` + html.EscapeString(post.Slug) + `">`)
		if err := sections.Body(post.Sections).Render(ctx, buf); err != nil {
			return err
		}
		buf.WriteString(`</article>`)
		writeEngagementBar(buf, post)
		return nil
	})
}

// Story renders a simple post: title plus trusted HTML body, no section
// pipeline.
func Story(cfg SiteConfig, post PostView) templ.Component {
	meta := PageMeta{
		Title:       post.Title + " — " + cfg.Name,
		Description: cfg.Description,
		URL:         buildURL(cfg.URL, post.Link),
		OGType:      "article",
	}
	return page(cfg, meta, ArticleJsonLD(cfg, post), func(ctx context.Context, buf *bytes.Buffer) error {
		buf.WriteString(`<article class="story" data-post-slug="` + html.EscapeString(post.Slug) + `">`)
		buf.WriteString(`<h1>` + html.EscapeString(post.Title) + `</h1>`)
		fmt.Fprintf(buf, `<p class="story-meta">%d min read</p>`, post.ReadingTime)
		buf.WriteString(post.Body)
		buf.WriteString(`</article>`)
		writeEngagementBar(buf, post)
		return nil
	})
}

// NotFound renders the 404 page.
func NotFound(cfg SiteConfig) templ.Component {
	meta := PageMeta{Title: "Not found — " + cfg.Name, OGType: "website"}
	return page(cfg, meta, "", func(ctx context.Context, buf *bytes.Buffer) error {
		buf.WriteString(`<section class="error-page"><h1>404</h1><p>That trail does not exist. <a href="/">Head home.</a></p></section>`)
		return nil
	})
}

// ServerError renders the 500 page.
func ServerError(cfg SiteConfig) templ.Component {
	meta := PageMeta{Title: "Something went wrong — " + cfg.Name, OGType: "website"}
	return page(cfg, meta, "", func(ctx context.Context, buf *bytes.Buffer) error {
		buf.WriteString(`<section class="error-page"><h1>500</h1><p>Something went wrong on our side. Try again shortly.</p></section>`)
		return nil
	})
}

func defaultTrail(post PostView) sections.Breadcrumb {
	items := []sections.Crumb{{Label: "Home", Href: "/"}}
	if len(post.Categories) > 0 {
		items = append(items, sections.Crumb{
			Label: post.Categories[0],
			Href:  "/category/" + PathEscape(post.Categories[0]),
		})
	}
	items = append(items, sections.Crumb{Label: post.Title, Href: post.Link})
	return sections.Breadcrumb{Enabled: true, Items: items}
}

func writeCategoryNav(buf *bytes.Buffer, categories []string, active string) {
	if len(categories) == 0 {
		return
	}
	buf.WriteString(`<nav class="categories"><ul>`)
	for _, c := range categories {
		cls := "category-pill"
		if strings.EqualFold(c, active) {
			cls += " active"
		}
		buf.WriteString(`<li><a class="` + cls + `" href="/category/` + PathEscape(c) + `">` + html.EscapeString(c) + `</a></li>`)
	}
	buf.WriteString(`</ul></nav>`)
}

func writePostCard(buf *bytes.Buffer, p PostView) {
	buf.WriteString(`<article class="post-card">`)
	if p.FeaturedImage != "" {
		buf.WriteString(`<a href="` + html.EscapeString(p.Link) + `"><img src="` + html.EscapeString(p.FeaturedImage) + `" alt="` + html.EscapeString(p.Title) + `" loading="lazy"/></a>`)
	}
	buf.WriteString(`<h2><a href="` + html.EscapeString(p.Link) + `">` + html.EscapeString(p.Title) + `</a></h2>`)
	fmt.Fprintf(buf, `<p class="card-meta">%d min read</p>`, p.ReadingTime)
	buf.WriteString(`</article>`)
}

func writeEngagementBar(buf *bytes.Buffer, post PostView) {
	buf.WriteString(`<section class="engagement" data-post-slug="` + html.EscapeString(post.Slug) + `">`)
	buf.WriteString(`<button class="like-button" type="button">Like <span class="like-count"></span></button>`)
	buf.WriteString(`<button class="report-button" type="button">Report</button>`)
	buf.WriteString(`<div class="comments"><ul class="comment-list"></ul>`)
	buf.WriteString(`<form><input name="author" required placeholder="Your name"/>`)
	buf.WriteString(`<textarea name="body" required placeholder="Add a comment"></textarea>`)
	buf.WriteString(`<button type="submit">Post comment</button></form></div>`)
	buf.WriteString(`</section>`)
}
