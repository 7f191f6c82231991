package main

import (
	"github.com/myrjola/kompassi/internal/errors"
	"github.com/myrjola/kompassi/internal/repositories"
	"github.com/myrjola/kompassi/internal/scoring"
	"log/slog"
	"net/http"
)

type axisView struct {
	Axis    scoring.Axis
	Label   string
	Display float64
}

var axisLabels = map[scoring.Axis]string{
	scoring.AxisEconomic: "Left / Right",
	scoring.AxisSocial:   "Liberal / Conservative",
	scoring.AxisGlobal:   "Global / National",
	scoring.AxisProgress: "Reform / Tradition",
}

type resultsTemplateData struct {
	BaseTemplateData

	Country        string
	Countries      []string
	Axes           []axisView
	Matches        []scoring.MatchResult
	HotDeltas      map[scoring.Axis]float64
	Answered       int
	Total          int
	LatestSnapshot *repositories.Snapshot
}

func axisViews(breakdown scoring.Breakdown) []axisView {
	views := make([]axisView, 0, len(scoring.Axes()))
	for _, axis := range scoring.Axes() {
		views = append(views, axisView{
			Axis:    axis,
			Label:   axisLabels[axis],
			Display: scoring.ToDisplayScale(breakdown.Normalized[axis]),
		})
	}
	return views
}

func (app *application) selectedCountry(r *http.Request) string {
	country := r.URL.Query().Get("country")
	for _, candidate := range app.catalog.Countries() {
		if candidate == country {
			return country
		}
	}
	countries := app.catalog.Countries()
	if len(countries) == 0 {
		return ""
	}
	return countries[0]
}

func (app *application) results(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, err := app.currentUserID(r)
	if err != nil {
		app.serverError(w, r, err)
		return
	}
	answers, err := app.answers.Get(ctx, userID)
	if err != nil {
		app.serverError(w, r, err)
		return
	}
	hotDeltas, err := app.hotTopics.AggregateDeltas(ctx, userID)
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	latest, err := app.snapshots.Latest(ctx, userID)
	if err != nil && !errors.Is(err, repositories.ErrNoSnapshot) {
		app.serverError(w, r, err)
		return
	}

	country := app.selectedCountry(r)
	questions := app.catalog.Questions()
	breakdown := scoring.Score(answers, questions, scoring.Options{})

	data := resultsTemplateData{
		BaseTemplateData: newBaseTemplateData(r),
		Country:          country,
		Countries:        app.catalog.Countries(),
		Axes:             axisViews(breakdown),
		Matches:          scoring.ComputeMatches(country, answers, questions, app.catalog.Parties(country), scoring.Options{}),
		HotDeltas:        hotDeltas,
		Answered:         len(answers),
		Total:            len(questions),
		LatestSnapshot:   latest,
	}

	app.render(w, r, http.StatusOK, "results", data)
}

// shareSnapshot persists the current scores under a fresh share id and
// redirects to the shareable page.
func (app *application) shareSnapshot(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, err := app.currentUserID(r)
	if err != nil {
		app.serverError(w, r, err)
		return
	}
	answers, err := app.answers.Get(ctx, userID)
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	country := app.selectedCountry(r)
	questions := app.catalog.Questions()
	breakdown := scoring.Score(answers, questions, scoring.Options{})
	legacySums := scoring.LegacyAxisSums(answers, questions)

	snapshot := repositories.NewSnapshot(userID, country, breakdown, legacySums)
	if err = app.snapshots.Insert(ctx, snapshot); err != nil {
		app.serverError(w, r, errors.Wrap(err, "insert snapshot"))
		return
	}

	http.Redirect(w, r, "/snapshots/"+snapshot.ID, http.StatusSeeOther)
}

type snapshotTemplateData struct {
	BaseTemplateData

	Snapshot repositories.Snapshot
	Axes     []axisView
	Matches  []scoring.MatchResult
}

// snapshot renders a previously shared score set. The page recomputes party
// matches from the stored position so catalog updates are reflected.
func (app *application) snapshot(w http.ResponseWriter, r *http.Request) {
	snapshotID := r.PathValue("snapshotID")
	stored, err := app.snapshots.Get(r.Context(), snapshotID)
	if err != nil {
		if errors.Is(err, repositories.ErrNoSnapshot) {
			app.notFound(w, r)
			return
		}
		app.serverError(w, r, errors.Wrap(err, "get snapshot", slog.String("snapshot_id", snapshotID)))
		return
	}

	axes := make([]axisView, 0, len(scoring.Axes()))
	for _, axis := range scoring.Axes() {
		axes = append(axes, axisView{
			Axis:    axis,
			Label:   axisLabels[axis],
			Display: stored.Display()[axis],
		})
	}
	position := scoring.PartyPosition{
		Economic: scoring.ToPartyScale(scoring.FromDisplayScale(stored.Economic)),
		Social:   scoring.ToPartyScale(scoring.FromDisplayScale(stored.Social)),
	}

	data := snapshotTemplateData{
		BaseTemplateData: newBaseTemplateData(r),
		Snapshot:         *stored,
		Axes:             axes,
		Matches:          scoring.MatchPosition(stored.Country, position, app.catalog.Parties(stored.Country)),
	}

	app.render(w, r, http.StatusOK, "snapshot", data)
}

// resetAnswers deletes every answer of the user and returns them to an empty
// quiz.
func (app *application) resetAnswers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, err := app.currentUserID(r)
	if err != nil {
		app.serverError(w, r, err)
		return
	}
	if err = app.answers.Reset(ctx, userID); err != nil {
		app.serverError(w, r, err)
		return
	}
	if err = app.hotTopics.Reset(ctx, userID); err != nil {
		app.serverError(w, r, err)
		return
	}
	http.Redirect(w, r, "/quiz", http.StatusSeeOther)
}
