package views

import (
	"bytes"
	"context"
	"fmt"
	"html"
	"io"

	"github.com/a-h/templ"
)

// ImageView is the uploaded-image summary shown on the editor dashboard.
type ImageView struct {
	Filename string
	Width    int
	Height   int
}

func EditorLogin(cfg SiteConfig, failed bool, csrf string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var buf bytes.Buffer
		buf.WriteString(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8"/>`)
		buf.WriteString(`<meta name="viewport" content="width=device-width, initial-scale=1"/>`)
		buf.WriteString(`<meta name="robots" content="noindex"/>`)
		buf.WriteString(`<title>Editor &middot; ` + html.EscapeString(cfg.Name) + `</title>`)
		buf.WriteString(`<link rel="stylesheet" href="/public/site.css"/></head><body class="editor">`)
		buf.WriteString(`<main class="editor-login"><h1>Editor login</h1>`)
		if failed {
			buf.WriteString(`<p class="login-error">Wrong password.</p>`)
		}
		buf.WriteString(`<form method="post" action="/admin/login/">`)
		buf.WriteString(`<input type="hidden" name="_csrf" value="` + html.EscapeString(csrf) + `"/>`)
		buf.WriteString(`<input type="password" name="password" autofocus required placeholder="Password"/>`)
		buf.WriteString(`<button type="submit">Sign in</button></form></main></body></html>`)
		_, err := w.Write(buf.Bytes())
		return err
	})
}

// EditorDashboard lists every post (drafts included) and the image library.
// Post editing itself happens over the JSON API; the dashboard links out.
func EditorDashboard(cfg SiteConfig, posts []PostView, images []ImageView, msg, csrf string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var buf bytes.Buffer
		buf.WriteString(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8"/>`)
		buf.WriteString(`<meta name="viewport" content="width=device-width, initial-scale=1"/>`)
		buf.WriteString(`<meta name="robots" content="noindex"/>`)
		buf.WriteString(`<title>Dashboard &middot; ` + html.EscapeString(cfg.Name) + `</title>`)
		buf.WriteString(`<link rel="stylesheet" href="/public/site.css"/></head><body class="editor">`)
		buf.WriteString(`<header class="editor-header"><h1>` + html.EscapeString(cfg.Name) + ` editor</h1>`)
		buf.WriteString(`<form method="post" action="/admin/logout/">`)
		buf.WriteString(`<input type="hidden" name="_csrf" value="` + html.EscapeString(csrf) + `"/>`)
		buf.WriteString(`<button type="submit">Log out</button></form></header><main>`)
		if msg != "" {
			buf.WriteString(`<p class="editor-msg">` + html.EscapeString(msg) + `</p>`)
		}

		buf.WriteString(`<section class="editor-posts"><h2>Posts</h2><table>`)
		buf.WriteString(`<tr><th>Title</th><th>Status</th><th>Updated</th></tr>`)
		for _, p := range posts {
			title := p.Title
			if title == "" {
				title = "Untitled"
			}
			buf.WriteString(`<tr><td><a href="` + html.EscapeString(p.Link) + `">` + html.EscapeString(title) + `</a></td>`)
			buf.WriteString(`<td>` + html.EscapeString(p.Status) + `</td>`)
			buf.WriteString(`<td>` + html.EscapeString(p.UpdatedAt) + `</td></tr>`)
		}
		buf.WriteString(`</table></section>`)

		buf.WriteString(`<section class="editor-images"><h2>Images</h2>`)
		buf.WriteString(`<form method="post" action="/admin/images/upload/" enctype="multipart/form-data">`)
		buf.WriteString(`<input type="hidden" name="_csrf" value="` + html.EscapeString(csrf) + `"/>`)
		buf.WriteString(`<input type="file" name="image" accept="image/*" required/>`)
		buf.WriteString(`<button type="submit">Upload</button></form><ul class="image-list">`)
		for _, img := range images {
			buf.WriteString(`<li><img src="/public/uploads/` + html.EscapeString(img.Filename) + `" loading="lazy"/>`)
			buf.WriteString(`<code>` + html.EscapeString(img.Filename) + `</code>`)
			buf.WriteString(fmt.Sprintf(`<span>%dx%d</span></li>`, img.Width, img.Height))
		}
		buf.WriteString(`</ul></section></main></body></html>`)
		_, err := w.Write(buf.Bytes())
		return err
	})
}
