package waypost

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"

	"github.com/wayfaremedia/waypost/views"
)

// Render writes a templ component as an HTTP 200 HTML response.
func Render(c echo.Context, cmp templ.Component) error {
	return RenderStatus(c, http.StatusOK, cmp)
}

// RenderStatus writes a templ component with a specific HTTP status code.
func RenderStatus(c echo.Context, code int, cmp templ.Component) error {
	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	c.Response().WriteHeader(code)
	return cmp.Render(c.Request().Context(), c.Response().Writer)
}

func (a *App) viewConfig() views.SiteConfig {
	return views.SiteConfig{
		Name:        a.Config.Name,
		URL:         a.Config.URL,
		Description: a.Config.Description,
		Author:      a.Config.Author,
	}
}

func toView(p Post) views.PostView {
	return views.PostView{
		Title:         p.Title,
		Slug:          p.Slug,
		Link:          p.Link(),
		Status:        p.Status,
		Categories:    p.Categories,
		Body:          p.Body,
		Sections:      p.ContentSections,
		FeaturedImage: p.FeaturedImage,
		ReadingTime:   p.ReadingTime,
		PublishDate:   shortDate(p.CreatedAt),
		UpdatedAt:     shortDate(p.UpdatedAt),
	}
}

func toViews(posts []Post) []views.PostView {
	out := make([]views.PostView, len(posts))
	for i, p := range posts {
		out[i] = toView(p)
	}
	return out
}

// shortDate reduces an RFC3339 timestamp to its date part for display.
func shortDate(ts string) string {
	if t, err := time.Parse(time.RFC3339, ts); err == nil {
		return t.Format("2006-01-02")
	}
	return ts
}

// handleHome serves the homepage: CMS-authored "home" page sections plus the
// latest posts. A missing home page is fine — the section list is empty.
func (a *App) handleHome(c echo.Context) error {
	page, err := a.Store.GetPage("home")
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return err
	}
	posts, err := a.Cache.ListPosts("")
	if err != nil {
		return err
	}
	categories, err := a.Cache.ListCategories()
	if err != nil {
		return err
	}
	return Render(c, views.Home(a.viewConfig(), page.Sections, toViews(posts), categories))
}

// handlePost serves a full post page. Simple-format posts redirect to their
// story URL so each post has one canonical location.
func (a *App) handlePost(c echo.Context) error {
	slug := c.Param("slug")
	post, err := a.Cache.GetPost(slug)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return RenderStatus(c, http.StatusNotFound, views.NotFound(a.viewConfig()))
		}
		return err
	}
	if post.Format == FormatSimple {
		return c.Redirect(http.StatusMovedPermanently, post.Link())
	}
	return Render(c, views.Post(a.viewConfig(), toView(post)))
}

// handleStory serves a simple post: title and trusted HTML body only.
func (a *App) handleStory(c echo.Context) error {
	slug := c.Param("slug")
	post, err := a.Cache.GetPost(slug)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return RenderStatus(c, http.StatusNotFound, views.NotFound(a.viewConfig()))
		}
		return err
	}
	if post.Format != FormatSimple {
		return c.Redirect(http.StatusMovedPermanently, post.Link())
	}
	return Render(c, views.Story(a.viewConfig(), toView(post)))
}

// handleCategory serves the listing page for one category.
func (a *App) handleCategory(c echo.Context) error {
	category := c.Param("category")
	posts, err := a.Cache.ListPosts(category)
	if err != nil {
		return err
	}
	categories, err := a.Cache.ListCategories()
	if err != nil {
		return err
	}
	return Render(c, views.Category(a.viewConfig(), category, toViews(posts), categories))
}

func (a *App) handleSitemap(c echo.Context) error {
	posts, err := a.Cache.ListPosts("")
	if err != nil {
		return err
	}
	return a.renderSitemap(c, posts)
}

func (a *App) handleFeed(c echo.Context) error {
	posts, err := a.Cache.ListPosts("")
	if err != nil {
		return err
	}
	return a.renderRSS(c, posts)
}

func handlePostsRedirect(c echo.Context) error {
	return c.Redirect(http.StatusMovedPermanently, "/")
}

func (a *App) handleFavicon(c echo.Context) error {
	return c.File(a.staticDir + "/favicon.svg")
}

// handleRobots generates robots.txt dynamically using the site URL.
func (a *App) handleRobots(c echo.Context) error {
	body := fmt.Sprintf("User-agent: *\nAllow: /\nDisallow: /admin/\n\nSitemap: %s/sitemap.xml\n", a.Config.URL)
	return c.String(http.StatusOK, body)
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	he, ok := err.(*echo.HTTPError)
	if ok && he.Code == http.StatusNotFound {
		_ = RenderStatus(c, http.StatusNotFound, views.NotFound(a.viewConfig()))
		return
	}
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 {
		c.Logger().Errorf("server error: %v", err)
		_ = RenderStatus(c, code, views.ServerError(a.viewConfig()))
		return
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}
