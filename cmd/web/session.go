package main

import (
	"crypto/rand"
	"github.com/myrjola/kompassi/internal/contexthelpers"
	"github.com/myrjola/kompassi/internal/errors"
	"net/http"
)

const anonymousIDSessionKey = "anonymousUserID"

const anonymousIDSize = 32

// currentUserID returns the id that keys quiz answers. Authenticated users
// get their passkey handle, everyone else a random id scoped to the session
// so the quiz works without an account.
func (app *application) currentUserID(r *http.Request) ([]byte, error) {
	ctx := r.Context()
	if contexthelpers.IsAuthenticated(ctx) {
		return contexthelpers.AuthenticatedUserID(ctx), nil
	}

	if id := app.sessionManager.GetBytes(ctx, anonymousIDSessionKey); id != nil {
		return id, nil
	}

	id := make([]byte, anonymousIDSize)
	if _, err := rand.Read(id); err != nil {
		return nil, errors.Wrap(err, "generate anonymous user id")
	}
	app.sessionManager.Put(ctx, anonymousIDSessionKey, id)
	return id, nil
}
