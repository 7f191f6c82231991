package main

import (
	"github.com/justinas/alice"
	"github.com/myrjola/kompassi/ui"
	"io/fs"
	"net/http"
	"time"
)

func (app *application) routes(defaultTimeout time.Duration) http.Handler {
	mux := http.NewServeMux()

	staticFS, err := fs.Sub(ui.Files, "static")
	if err != nil {
		// The static directory is embedded, a failure here is a build defect.
		panic(err)
	}
	mux.Handle("GET /static/", alice.New(cacheForeverHeaders).
		Then(http.StripPrefix("/static", http.FileServer(http.FS(staticFS)))))

	base := alice.New(
		app.sessionManager.LoadAndSave,
		noSurf,
		app.cspNonce,
		app.webAuthnHandler.AuthenticateMiddleware,
		commonContext,
	)

	mux.Handle("GET /{$}", base.ThenFunc(app.home))
	mux.Handle("GET /quiz", base.ThenFunc(app.quiz))
	mux.Handle("POST /quiz/answer", base.ThenFunc(app.submitAnswer))
	mux.Handle("POST /quiz/hot-topic", base.ThenFunc(app.submitHotTopic))
	mux.Handle("GET /results", base.ThenFunc(app.results))
	mux.Handle("POST /results/reset", base.ThenFunc(app.resetAnswers))
	mux.Handle("POST /snapshots", base.ThenFunc(app.shareSnapshot))
	mux.Handle("GET /snapshots/{snapshotID}", base.ThenFunc(app.snapshot))

	mux.Handle("POST /api/insights", base.Append(app.insightLimiter.Middleware).ThenFunc(app.startInsights))

	mux.Handle("POST /api/registration/start", base.ThenFunc(app.beginRegistration))
	mux.Handle("POST /api/registration/finish", base.ThenFunc(app.finishRegistration))
	mux.Handle("POST /api/login/start", base.ThenFunc(app.beginLogin))
	mux.Handle("POST /api/login/finish", base.ThenFunc(app.finishLogin))
	mux.Handle("POST /api/logout", base.ThenFunc(app.logout))
	mux.Handle("GET /api/healthy", http.HandlerFunc(app.healthy))

	// The SSE stream outlives the handler timeout, it is mounted outside the
	// timeout handler with a session middleware that does not write cookies.
	sse := alice.New(
		app.serverSentEventMiddleware,
		app.webAuthnHandler.AuthenticateMiddleware,
	)
	outer := http.NewServeMux()
	outer.Handle("GET /api/insights/stream", sse.ThenFunc(app.streamInsights))
	outer.Handle("/", timeoutHandler(mux, defaultTimeout))

	return app.recoverPanic(app.logRequest(secureHeaders(outer)))
}
