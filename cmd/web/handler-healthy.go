package main

import "net/http"

// healthy answers readiness probes. The catalog and database are wired before
// the listener opens, so reaching this handler means the app is serving.
func (app *application) healthy(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
