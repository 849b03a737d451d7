package web

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/erazemk/trznica/internal/category"
	"github.com/erazemk/trznica/internal/format"
	webembed "github.com/erazemk/trznica/web"
)

// Templates holds parsed HTML templates.
type Templates struct {
	pages     map[string]*template.Template
	fragments *template.Template
}

// FuncMap returns the template function map. now is used for relative times.
func FuncMap(now func() time.Time) template.FuncMap {
	return template.FuncMap{
		"price":    format.Price,
		"date":     format.Date,
		"dateTime": format.DateTime,
		"bytes":    format.Bytes,
		"ago": func(t time.Time) string {
			return format.RelativeTime(t, now())
		},
		"deref": func(s *string) string {
			if s == nil {
				return ""
			}
			return *s
		},
		"plural": func(n int, word string) string {
			if n == 1 {
				return "1 " + word
			}
			return fmt.Sprintf("%d %ss", n, word)
		},
		// Preview thumbnails are inline JPEG data URLs, which html/template
		// would otherwise replace with #ZgotmplZ.
		"dataURL": func(s string) template.URL {
			if strings.HasPrefix(s, "data:image/jpeg;base64,") {
				return template.URL(s)
			}
			return ""
		},
	}
}

// LoadTemplates parses all page templates with the layout and the shared partials.
func LoadTemplates(now func() time.Time) (*Templates, error) {
	tfs := webembed.TemplatesFS()

	layoutBytes, err := fs.ReadFile(tfs, "layout.html")
	if err != nil {
		return nil, fmt.Errorf("reading layout template: %w", err)
	}
	partialBytes, err := fs.ReadFile(tfs, "partials.html")
	if err != nil {
		return nil, fmt.Errorf("reading partials template: %w", err)
	}

	pages := []string{
		"home.html",
		"category.html",
		"item.html",
		"create.html",
		"not_found.html",
	}

	ts := &Templates{pages: make(map[string]*template.Template)}

	for _, page := range pages {
		pageBytes, err := fs.ReadFile(tfs, page)
		if err != nil {
			return nil, fmt.Errorf("reading template %s: %w", page, err)
		}

		tmpl := template.New(page).Funcs(FuncMap(now))
		for _, src := range []struct {
			name string
			body []byte
		}{{"layout", layoutBytes}, {"partials", partialBytes}, {page, pageBytes}} {
			if tmpl, err = tmpl.Parse(string(src.body)); err != nil {
				return nil, fmt.Errorf("parsing %s for %s: %w", src.name, page, err)
			}
		}
		ts.pages[page] = tmpl
	}

	ts.fragments, err = template.New("fragments").Funcs(FuncMap(now)).Parse(string(partialBytes))
	if err != nil {
		return nil, fmt.Errorf("parsing fragments: %w", err)
	}
	return ts, nil
}

// Render renders a page inside the layout with the given status code.
func (ts *Templates) Render(w http.ResponseWriter, status int, name string, data any) {
	tmpl, ok := ts.pages[name]
	if !ok {
		http.Error(w, "template not found", http.StatusInternalServerError)
		return
	}
	write(w, status, name, func(buf *bytes.Buffer) error {
		return tmpl.ExecuteTemplate(buf, "layout", data)
	})
}

// RenderFragment renders one partial on its own, for script-driven updates.
func (ts *Templates) RenderFragment(w http.ResponseWriter, status int, name string, data any) {
	write(w, status, name, func(buf *bytes.Buffer) error {
		return ts.fragments.ExecuteTemplate(buf, name, data)
	})
}

func write(w http.ResponseWriter, status int, name string, exec func(*bytes.Buffer) error) {
	var buf bytes.Buffer
	if err := exec(&buf); err != nil {
		slog.Error("failed to render template", "template", name, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("failed to write response", "template", name, "error", err)
	}
}

// PageData is the base data passed to all templates.
type PageData struct {
	Title      string
	Path       string
	Categories []category.Category
	Token      string
	Error      string
	Success    string
}

// ActiveCategory reports whether the page belongs to the category with slug.
func (p PageData) ActiveCategory(slug string) bool {
	return p.Path == "/category/"+slug
}
