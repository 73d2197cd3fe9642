package web

import (
	"embed"
	"html/template"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/render"

	"yatube/internal/adapters/httpapi/middleware"
	"yatube/internal/core/actor"
)

//go:embed templates/*.html
var templateFS embed.FS

var pages = []string{
	"index.html",
	"group.html",
	"profile.html",
	"post.html",
	"post_form.html",
	"login.html",
	"signup.html",
	"error.html",
}

var funcs = template.FuncMap{
	"date":    func(t time.Time) string { return t.Format("2 January 2006 15:04") },
	"isodate": func(t time.Time) string { return t.Format(time.RFC3339) },
}

// pageData is passed to every page. Content is page specific.
type pageData struct {
	Title   string
	Actor   actor.Actor
	Content any
}

// parseTemplates builds one template set per page, each rendered through
// layout.html.
func parseTemplates() (map[string]*template.Template, error) {
	out := make(map[string]*template.Template, len(pages))
	for _, page := range pages {
		t, err := template.New("layout.html").Funcs(funcs).ParseFS(templateFS, "templates/layout.html", "templates/"+page)
		if err != nil {
			return nil, err
		}
		out[page] = t
	}
	return out, nil
}

func (h *Handler) render(c *gin.Context, status int, page, title string, content any) {
	c.Render(status, render.HTML{
		Template: h.templates[page],
		Name:     "layout.html",
		Data: pageData{
			Title:   title,
			Actor:   middleware.Actor(c),
			Content: content,
		},
	})
}
