package main

import (
	"github.com/myrjola/kompassi/internal/errors"
	"github.com/myrjola/kompassi/internal/scoring"
	"log/slog"
	"net/http"
	"strconv"
	"time"
)

type questionView struct {
	scoring.Question

	Number   int
	Selected int
}

type quizTemplateData struct {
	BaseTemplateData

	Questions []questionView
	HotTopics []questionView
	Answered  int
	Total     int
}

func (app *application) quizTemplateData(r *http.Request) (quizTemplateData, error) {
	userID, err := app.currentUserID(r)
	if err != nil {
		return quizTemplateData{}, errors.Wrap(err, "current user id")
	}
	answers, err := app.answers.Get(r.Context(), userID)
	if err != nil {
		return quizTemplateData{}, errors.Wrap(err, "get answers")
	}

	data := quizTemplateData{
		BaseTemplateData: newBaseTemplateData(r),
		Questions:        nil,
		HotTopics:        nil,
		Answered:         len(answers),
		Total:            0,
	}
	number := 0
	for _, question := range app.catalog.Questions() {
		if question.Type == scoring.QuestionTypeHot {
			continue
		}
		number++
		data.Questions = append(data.Questions, questionView{
			Question: question,
			Number:   number,
			Selected: answers[question.ID],
		})
	}
	for _, topic := range app.catalog.HotTopics(time.Now()) {
		number++
		data.HotTopics = append(data.HotTopics, questionView{
			Question: topic,
			Number:   number,
			Selected: answers[topic.ID],
		})
	}
	data.Total = number
	return data, nil
}

func (app *application) quiz(w http.ResponseWriter, r *http.Request) {
	data, err := app.quizTemplateData(r)
	if err != nil {
		app.serverError(w, r, err)
		return
	}
	app.render(w, r, http.StatusOK, "quiz", data)
}

// submitAnswer stores one Likert answer. htmx requests get the updated
// question card back, plain form posts are redirected to the quiz.
func (app *application) submitAnswer(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		app.clientError(w, r, http.StatusBadRequest)
		return
	}
	questionID := r.PostForm.Get("question_id")
	question, ok := app.catalog.Question(questionID)
	if !ok || question.Type == scoring.QuestionTypeHot {
		app.clientError(w, r, http.StatusBadRequest)
		return
	}
	value, err := strconv.Atoi(r.PostForm.Get("value"))
	if err != nil || !validAnswer(question, value) {
		app.clientError(w, r, http.StatusBadRequest)
		return
	}

	userID, err := app.currentUserID(r)
	if err != nil {
		app.serverError(w, r, err)
		return
	}
	if err = app.answers.Upsert(r.Context(), userID, questionID, value); err != nil {
		app.serverError(w, r, errors.Wrap(err, "save answer", slog.String("question_id", questionID)))
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
	for _, view := range append(data.Questions, data.HotTopics...) {
		if view.ID == questionID {
			app.renderPartial(w, r, "quiz", "question", view)
			return
		}
	}
	app.notFound(w, r)
}

func validAnswer(question scoring.Question, value int) bool {
	if question.Type == scoring.QuestionTypeYesNo {
		return value == scoring.AnswerNo || value == scoring.AnswerYes
	}
	return value >= 1 && value <= 5
}
