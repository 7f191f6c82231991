package main

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"github.com/myrjola/kompassi/internal/errors"
	"github.com/myrjola/kompassi/internal/insights"
	"github.com/myrjola/kompassi/internal/scoring"
	"io"
	"log/slog"
	"net/http"
	"time"
)

const insightStreamTimeout = time.Minute

// startInsights kicks off insight generation for the user's current answers.
// With live insights available the tokens are published to the stream broker
// and the client is expected to attach to the SSE stream. Without an API key
// the canned analysis is returned directly.
func (app *application) startInsights(w http.ResponseWriter, r *http.Request) {
	userID, err := app.currentUserID(r)
	if err != nil {
		app.serverError(w, r, err)
		return
	}
	answers, err := app.answers.Get(r.Context(), userID)
	if err != nil {
		app.serverError(w, r, err)
		return
	}
	breakdown := scoring.Score(answers, app.catalog.Questions(), scoring.Options{})

	// Probe the stream before spawning the producer so disabled insights
	// degrade synchronously.
	ctx, cancel := context.WithTimeout(context.Background(), insightStreamTimeout)
	stream, err := app.insights.Stream(ctx, answers, breakdown)
	if err != nil {
		cancel()
		if !errors.Is(err, insights.ErrDisabled) {
			app.logger.LogAttrs(r.Context(), slog.LevelWarn, "insight stream failed, serving canned analysis",
				errors.SlogError(err))
		}
		result := app.insights.Generate(r.Context(), answers, breakdown)
		w.Header().Set("Content-Type", "application/json")
		if err = json.NewEncoder(w).Encode(result); err != nil {
			app.serverError(w, r, errors.Wrap(err, "encode insights"))
		}
		return
	}

	key := hex.EncodeToString(userID)
	tokens := make(chan string)
	app.insightBroker.Publish(key, tokens)
	go func() {
		defer cancel()
		defer func() {
			close(tokens)
			app.insightBroker.Unpublish(key)
		}()
		defer func() {
			_ = stream.Close()
		}()
		for {
			response, recvErr := stream.Recv()
			if errors.Is(recvErr, io.EOF) {
				return
			}
			if recvErr != nil {
				app.logger.LogAttrs(ctx, slog.LevelWarn, "insight stream interrupted", errors.SlogError(recvErr))
				return
			}
			if len(response.Choices) == 0 {
				continue
			}
			select {
			case tokens <- response.Choices[0].Delta.Content:
			case <-ctx.Done():
				return
			}
		}
	}()

	w.WriteHeader(http.StatusAccepted)
}

// streamInsights relays the live token stream over SSE. When no stream is in
// flight the completed analysis is sent as a single event instead.
func (app *application) streamInsights(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		app.serverError(w, r, errors.New("response writer does not support flushing"))
		return
	}

	userID, err := app.currentUserID(r)
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	key := hex.EncodeToString(userID)
	tokens := <-app.insightBroker.Subscribe(key)
	if tokens == nil {
		// No producer in flight, send the completed analysis in one event.
		answers, getErr := app.answers.Get(r.Context(), userID)
		if getErr != nil {
			app.serverError(w, r, getErr)
			return
		}
		breakdown := scoring.Score(answers, app.catalog.Questions(), scoring.Options{})
		result := app.insights.Generate(r.Context(), answers, breakdown)
		encoded, marshalErr := json.Marshal(result)
		if marshalErr != nil {
			app.serverError(w, r, errors.Wrap(marshalErr, "encode insights"))
			return
		}
		fmt.Fprintf(w, "event: insights\ndata: %s\n\n", encoded)
		flusher.Flush()
		return
	}

	for token := range tokens {
		// JSON-encode so multi-line tokens survive the SSE framing.
		encoded, marshalErr := json.Marshal(token)
		if marshalErr != nil {
			continue
		}
		fmt.Fprintf(w, "data: %s\n\n", encoded)
		flusher.Flush()

		select {
		case <-r.Context().Done():
			return
		default:
		}
	}

	fmt.Fprint(w, "event: done\ndata: {}\n\n")
	flusher.Flush()
}
