package waypost

import (
	"crypto/subtle"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/wayfaremedia/waypost/views"
)

func (a *App) handleAdmin(c echo.Context) error {
	if !IsEditor(c) {
		return Render(c, views.EditorLogin(a.viewConfig(), false, CsrfToken(c)))
	}
	return a.renderEditorDashboard(c, c.QueryParam("msg"))
}

func (a *App) handleAdminLogin(c echo.Context) error {
	if !a.loginLimiter.Allow(c.RealIP()) {
		return c.String(http.StatusTooManyRequests, "Too many login attempts. Try again later.")
	}
	pass := c.FormValue("password")
	if subtle.ConstantTimeCompare([]byte(pass), []byte(a.Config.EditorPassword)) == 1 {
		if err := setEditorSession(c); err != nil {
			return err
		}
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	return Render(c, views.EditorLogin(a.viewConfig(), true, CsrfToken(c)))
}

func handleAdminLogout(c echo.Context) error {
	if err := clearEditorSession(c); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/admin/")
}

func (a *App) renderEditorDashboard(c echo.Context, msg string) error {
	posts, err := a.Store.ListAllPosts()
	if err != nil {
		return err
	}
	images, err := a.Store.ListImages()
	if err != nil {
		return err
	}
	return Render(c, views.EditorDashboard(a.viewConfig(), toViews(posts), imagesToViews(images), msg, CsrfToken(c)))
}

func imagesToViews(images []Image) []views.ImageView {
	out := make([]views.ImageView, len(images))
	for i, img := range images {
		out[i] = views.ImageView{
			Filename: img.Filename,
			Width:    img.Width,
			Height:   img.Height,
		}
	}
	return out
}
