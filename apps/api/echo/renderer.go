package echoapi

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/tally/core/student"
)

const (
	templatesDir  = "templates"
	baseTemplate  = "_base.gohtml"
	errorTemplate = "error"
)

//go:embed all:templates
var templatesFS embed.FS

var templateFuncs = template.FuncMap{
	"grade": student.Grade,
	"fmt2":  func(f float64) string { return fmt.Sprintf("%.2f", f) },
	"fmt1":  func(f float64) string { return fmt.Sprintf("%.1f", f) },
	"money": func(f float64) string { return fmt.Sprintf("$%.2f", f) },
	"gradeClass": func(label string) string {
		return "grade-" + strings.ToLower(label[:1])
	},
}

// renderer implements echo.Renderer.
// Page templates live in templates/<app>/ and are executed inside that app's _base.gohtml layout;
// templates/*.gohtml are shared and executed on their own.
type renderer struct {
	templates map[string]*template.Template
}

var _ echo.Renderer = (*renderer)(nil)

// newRenderer parses every embedded template. With strict, executing a template that
// references a missing map key fails instead of printing "<no value>".
func newRenderer(strict bool) *renderer {
	r, err := parseTemplates(templatesFS, strict)
	if err != nil {
		panic(err)
	}
	return r
}

func parseTemplates(fsys fs.FS, strict bool) (*renderer, error) {
	r := &renderer{templates: make(map[string]*template.Template)}
	newTmpl := func(name string) *template.Template {
		t := template.New(name).Funcs(templateFuncs)
		if strict {
			t = t.Option("missingkey=error")
		}
		return t
	}

	entries, err := fs.ReadDir(fsys, templatesDir)
	if err != nil {
		return nil, errors.Wrap(err, "reading templates")
	}
	for _, entry := range entries {
		name := entry.Name()
		if !entry.IsDir() {
			t, err := newTmpl(name).ParseFS(fsys, path.Join(templatesDir, name))
			if err != nil {
				return nil, errors.Wrapf(err, "parsing template %q", name)
			}
			r.templates[strings.TrimSuffix(name, path.Ext(name))] = t
			continue
		}

		app := name
		base := path.Join(templatesDir, app, baseTemplate)
		pages, err := fs.Glob(fsys, path.Join(templatesDir, app, "*.gohtml"))
		if err != nil {
			return nil, errors.Wrapf(err, "listing %s templates", app)
		}
		for _, page := range pages {
			pageName := path.Base(page)
			if pageName == baseTemplate {
				continue
			}
			t, err := newTmpl(baseTemplate).ParseFS(fsys, base, page)
			if err != nil {
				return nil, errors.Wrapf(err, "parsing template %q", page)
			}
			r.templates[app+"/"+strings.TrimSuffix(pageName, path.Ext(pageName))] = t
		}
	}
	return r, nil
}

func (r *renderer) Render(w io.Writer, name string, data interface{}, _ echo.Context) error {
	t, ok := r.templates[name]
	if !ok {
		return errors.Errorf("template %q not found", name)
	}
	return t.Execute(w, data)
}
