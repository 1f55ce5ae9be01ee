package view

import (
	"bytes"
	"embed"
	"html/template"
	"io/fs"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/diewo77/techfix/internal/auth"
	"github.com/diewo77/techfix/internal/catalog"
	"github.com/diewo77/techfix/internal/i18n"
	"github.com/gorilla/csrf"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

//go:embed templates
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

var (
	tplCache = struct {
		sync.RWMutex
		m map[string]*template.Template
	}{m: map[string]*template.Template{}}

	langResolver  = func(r *http.Request) string { return i18n.LangFromContext(r.Context()) }
	toastResolver func(http.ResponseWriter, *http.Request) []auth.Toast
)

// SetLangResolver allows the host app to provide a custom language resolver.
func SetLangResolver(f func(*http.Request) string) {
	if f != nil {
		langResolver = f
	}
}

// SetToastResolver sets the callback that drains pending toasts for the
// page being rendered.
func SetToastResolver(f func(http.ResponseWriter, *http.Request) []auth.Toast) {
	toastResolver = f
}

// Static serves the embedded assets.
func Static() http.Handler {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.FileServer(http.FS(sub))
}

// Funcs returns the func map bound to r.
func Funcs(r *http.Request) template.FuncMap {
	lang := langResolver(r)
	return template.FuncMap{
		"t":    func(code string) string { return i18n.T(lang, code) },
		"tf":   func(code string, args ...any) string { return i18n.Tf(lang, code, args...) },
		"lang": func() string { return lang },
		"money": func(d decimal.Decimal) string {
			return catalog.FormatBRL(d)
		},
		"icon": func(key string) string { return catalog.IconFor(key).Glyph() },
		// safeURL marks shop constants such as tel: links as trusted.
		"safeURL": func(s string) template.URL { return template.URL(s) },
		"csrfField": func() template.HTML {
			return csrf.TemplateField(r)
		},
		"signedIn": func() bool {
			_, ok := auth.SubjectFromContext(r.Context())
			return ok
		},
		"year": func() int { return time.Now().Year() },
		// dict creates a map from key-value pairs for passing to sub-templates.
		// Usage: {{ template "partial" (dict "Key1" val1 "Key2" val2) }}
		"dict": func(values ...any) map[string]any {
			if len(values)%2 != 0 {
				return nil
			}
			m := make(map[string]any, len(values)/2)
			for i := 0; i < len(values); i += 2 {
				key, ok := values[i].(string)
				if !ok {
					continue
				}
				m[key] = values[i+1]
			}
			return m
		},
	}
}

// stubFuncs lets templates parse before a request is known.
var stubFuncs = Funcs(&http.Request{})

// load parses layout, partials and the page once; requests get a clone
// bound to their own funcs.
func load(name string) (*template.Template, error) {
	tplCache.RLock()
	t, ok := tplCache.m[name]
	tplCache.RUnlock()
	if ok {
		return t, nil
	}
	t, err := template.New("layout.html").Funcs(stubFuncs).ParseFS(templateFS,
		"templates/layout.html",
		"templates/partials/*.html",
		"templates/"+name,
	)
	if err != nil {
		return nil, errors.Wrapf(err, "parse %s", name)
	}
	tplCache.Lock()
	tplCache.m[name] = t
	tplCache.Unlock()
	return t, nil
}

// Render executes page name inside the layout with a 200 status.
func Render(w http.ResponseWriter, r *http.Request, name string, data map[string]any) error {
	return RenderStatus(w, r, http.StatusOK, name, data)
}

// RenderStatus renders into a buffer first so a template error never
// leaves a half-written page.
func RenderStatus(w http.ResponseWriter, r *http.Request, status int, name string, data map[string]any) error {
	base, err := load(name)
	if err != nil {
		return err
	}
	t, err := base.Clone()
	if err != nil {
		return errors.Wrap(err, "clone template")
	}
	t.Funcs(Funcs(r))

	if data == nil {
		data = map[string]any{}
	}
	if _, exists := data["Year"]; !exists {
		data["Year"] = time.Now().Year()
	}
	if _, exists := data["Page"]; !exists {
		data["Page"] = strings.TrimSuffix(name, ".html")
	}
	if toastResolver != nil {
		pending, _ := data["Toasts"].([]auth.Toast)
		data["Toasts"] = append(toastResolver(w, r), pending...)
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout.html", data); err != nil {
		return errors.Wrapf(err, "execute %s", name)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err = buf.WriteTo(w)
	return err
}

// ResetForTests clears the template cache and resolvers.
func ResetForTests() {
	tplCache.Lock()
	tplCache.m = map[string]*template.Template{}
	tplCache.Unlock()
	toastResolver = nil
	langResolver = func(r *http.Request) string { return i18n.LangFromContext(r.Context()) }
}
