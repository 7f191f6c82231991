package main

import (
	"github.com/myrjola/kompassi/internal/errors"
	"github.com/myrjola/kompassi/internal/scoring"
	"log/slog"
	"net/http"
	"strconv"
	"time"
)

// hotTopicDelta is the signed contribution a single response adds to its
// axis. SignedValue already carries the decay factor.
func hotTopicDelta(topic scoring.Question, value int, opts scoring.Options) float64 {
	contributions := scoring.ComputeContributions(
		scoring.Answers{topic.ID: value},
		[]scoring.Question{topic},
		opts,
	)
	if len(contributions) != 1 {
		return 0
	}
	return contributions[0].SignedValue
}

// submitHotTopic stores the response to a currently active hot topic. The
// per-axis delta is persisted alongside the raw value so older result
// snapshots can be explained without a recompute, the authoritative scores
// always come from recomputing over the full answer set.
func (app *application) submitHotTopic(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		app.clientError(w, r, http.StatusBadRequest)
		return
	}
	topicID := r.PostForm.Get("topic_id")

	var topic scoring.Question
	found := false
	for _, candidate := range app.catalog.HotTopics(time.Now()) {
		if candidate.ID == topicID {
			topic = candidate
			found = true
			break
		}
	}
	if !found {
		app.clientError(w, r, http.StatusBadRequest)
		return
	}

	value, err := strconv.Atoi(r.PostForm.Get("value"))
	if err != nil || value < 1 || value > 5 {
		app.clientError(w, r, http.StatusBadRequest)
		return
	}

	userID, err := app.currentUserID(r)
	if err != nil {
		app.serverError(w, r, err)
		return
	}
	ctx := r.Context()

	delta := hotTopicDelta(topic, value, scoring.Options{})

	if err = app.hotTopics.Upsert(ctx, userID, topicID, topic.Axis, value, delta); err != nil {
		app.serverError(w, r, errors.Wrap(err, "save hot topic response", slog.String("topic_id", topicID)))
		return
	}
	// The response also joins the answer set so result recomputes include it.
	if err = app.answers.Upsert(ctx, userID, topicID, value); err != nil {
		app.serverError(w, r, errors.Wrap(err, "save hot topic answer", slog.String("topic_id", topicID)))
		return
	}

	htmxHandler := app.htmx.NewHandler(w, r)
	if !htmxHandler.IsHxRequest() {
		http.Redirect(w, r, "/quiz", http.StatusSeeOther)
		return
	}

	data, err := app.quizTemplateData(r)
	if err != nil {
		app.serverError(w, r, err)
		return
	}
	for _, view := range data.HotTopics {
		if view.ID == topicID {
			app.renderPartial(w, r, "quiz", "hot-topic", view)
			return
		}
	}
	app.notFound(w, r)
}
