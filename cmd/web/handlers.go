package main

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"github.com/go-webauthn/webauthn/webauthn"
	"github.com/myrjola/kompassi/internal/contexthelpers"
	"github.com/myrjola/kompassi/internal/errors"
	"github.com/myrjola/kompassi/ui"
	"html/template"
	"log/slog"
	"net/http"
)

func init() {
	gob.Register(webauthn.SessionData{})
}

// pageTemplate returns a template for the given page name.
//
// pageName corresponds to a directory inside ui/templates/pages. It has to include a template named "page".
func (app *application) pageTemplate(pageName string) (*template.Template, error) {
	// We need to initialize the FuncMap before parsing the files. These will be overridden in the render function.
	t, err := template.New(pageName).Funcs(template.FuncMap{
		"nonce": func() string {
			panic("not implemented")
		},
		"csrf": func() string {
			panic("not implemented")
		},
	}).ParseFS(ui.Files, "templates/base.gohtml", fmt.Sprintf("templates/pages/%s/*.gohtml", pageName))
	if err != nil {
		return nil, fmt.Errorf("parse page template files: %w", err)
	}
	return t, nil
}

func (app *application) render(w http.ResponseWriter, r *http.Request, status int, file string, data any) {
	var (
		err error
		t   *template.Template
	)

	if t, err = app.pageTemplate(file); err != nil {
		app.serverError(w, r, errors.Wrap(err, "parse template", slog.String("template", file)))
		return
	}

	buf := new(bytes.Buffer)
	if err = app.executeTemplate(buf, r, t, "base", data); err != nil {
		app.serverError(w, r, errors.Wrap(err, "execute template", slog.String("template", file)))
		return
	}

	w.WriteHeader(status)

	_, _ = buf.WriteTo(w)
}

// renderPartial renders a single named template without the base layout, used
// for htmx swaps.
func (app *application) renderPartial(w http.ResponseWriter, r *http.Request, file string, partial string, data any) {
	var (
		err error
		t   *template.Template
	)

	if t, err = app.pageTemplate(file); err != nil {
		app.serverError(w, r, errors.Wrap(err, "parse template", slog.String("template", file)))
		return
	}

	buf := new(bytes.Buffer)
	if err = app.executeTemplate(buf, r, t, partial, data); err != nil {
		app.serverError(w, r, errors.Wrap(err, "execute partial", slog.String("partial", partial)))
		return
	}

	_, _ = buf.WriteTo(w)
}

func (app *application) executeTemplate(buf *bytes.Buffer, r *http.Request, t *template.Template, name string, data any) error {
	ctx := r.Context()
	nonce := fmt.Sprintf("nonce=\"%s\"", contexthelpers.CSPNonce(ctx))
	csrf := fmt.Sprintf("<input type=\"hidden\" name=\"csrf_token\" value=\"%s\"/>", contexthelpers.CSRFToken(ctx))
	t.Funcs(template.FuncMap{
		"nonce": func() template.HTMLAttr {
			return template.HTMLAttr(nonce) //nolint:gosec, we trust the nonce since it's not provided by user.
		},
		"csrf": func() template.HTML {
			return template.HTML(csrf) //nolint:gosec, we trust the csrf since it's not provided by user.
		},
	})
	return t.ExecuteTemplate(buf, name, data)
}
