// Package view renders the HTML pages of the blog.
package view

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/blogosphere/blog/internal/core/domain"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Page names.
const (
	Index    = "index.html"
	Create   = "create.html"
	Update   = "update.html"
	Post     = "post.html"
	Register = "register.html"
	Login    = "login.html"
	Error    = "error.html"
)

var pages = []string{Index, Create, Update, Post, Register, Login, Error}

// Page is the data every template receives.
type Page struct {
	User     *domain.User
	Flash    string
	Form     map[string]string
	Posts    []*domain.Post
	Post     *domain.Post
	Comments []*domain.Comment

	Status  int
	Message string
}

// ModifyFunc reports whether user may edit post. It decides whether edit
// links are shown.
type ModifyFunc func(user *domain.User, post *domain.Post) bool

// UserFunc resolves the identity of the request being rendered.
type UserFunc func(c echo.Context) *domain.User

// Renderer implements echo.Renderer over the embedded templates.
type Renderer struct {
	templates map[string]*template.Template
	user      UserFunc
}

// New parses every page against the base layout.
func New(canModify ModifyFunc, user UserFunc) (*Renderer, error) {
	funcs := template.FuncMap{
		"date": func(t time.Time) string { return t.Format("2006-01-02") },
		"canModify": func(u *domain.User, p *domain.Post) bool {
			return u != nil && p != nil && canModify != nil && canModify(u, p)
		},
		"statusText": http.StatusText,
	}

	r := &Renderer{templates: make(map[string]*template.Template, len(pages)), user: user}
	for _, name := range pages {
		t, err := template.New(name).Funcs(funcs).ParseFS(templatesFS, "templates/base.html", "templates/"+name)
		if err != nil {
			return nil, fmt.Errorf("view: parse %s: %w", name, err)
		}
		r.templates[name] = t
	}
	return r, nil
}

// Render executes page name. A *Page without a user gets the request's
// identity filled in.
func (r *Renderer) Render(w io.Writer, name string, data any, c echo.Context) error {
	t, ok := r.templates[name]
	if !ok {
		return fmt.Errorf("view: unknown page %q", name)
	}
	if p, ok := data.(*Page); ok && p.User == nil && r.user != nil && c != nil {
		p.User = r.user(c)
	}
	return t.ExecuteTemplate(w, "base", data)
}
