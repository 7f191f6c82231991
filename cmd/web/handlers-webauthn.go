package main

import (
	"github.com/myrjola/kompassi/internal/errors"
	"net/http"
)

// The passkey endpoints delegate the ceremonies to webauthnhandler. The
// browser drives them from ui/static/passkeys.js, and a finished registration
// upgrades the session-scoped anonymous quiz identity to a durable one.

func (app *application) beginRegistration(w http.ResponseWriter, r *http.Request) {
	out, err := app.webAuthnHandler.BeginRegistration(r.Context())
	if err != nil {
		app.serverError(w, r, errors.Wrap(err, "begin passkey registration"))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if _, err = w.Write(out); err != nil {
		app.serverError(w, r, errors.Wrap(err, "write registration options"))
	}
}

func (app *application) finishRegistration(w http.ResponseWriter, r *http.Request) {
	if err := app.webAuthnHandler.FinishRegistration(r); err != nil {
		app.serverError(w, r, errors.Wrap(err, "finish passkey registration"))
	}
}

func (app *application) beginLogin(w http.ResponseWriter, r *http.Request) {
	out, err := app.webAuthnHandler.BeginLogin(w, r)
	if err != nil {
		app.serverError(w, r, errors.Wrap(err, "begin passkey login"))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if _, err = w.Write(out); err != nil {
		app.serverError(w, r, errors.Wrap(err, "write login options"))
	}
}

func (app *application) finishLogin(w http.ResponseWriter, r *http.Request) {
	if err := app.webAuthnHandler.FinishLogin(r); err != nil {
		app.serverError(w, r, errors.Wrap(err, "finish passkey login"))
	}
}

// logout clears the authenticated session and returns the visitor to the
// home page as an anonymous user.
func (app *application) logout(w http.ResponseWriter, r *http.Request) {
	if err := app.webAuthnHandler.Logout(r.Context()); err != nil {
		app.serverError(w, r, errors.Wrap(err, "logout"))
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
