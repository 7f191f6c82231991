package main

import (
	"net/http"
)

type homeTemplateData struct {
	BaseTemplateData

	Countries     []string
	QuestionCount int
	AnsweredCount int
}

func (app *application) home(w http.ResponseWriter, r *http.Request) {
	userID, err := app.currentUserID(r)
	if err != nil {
		app.serverError(w, r, err)
		return
	}
	answered, err := app.answers.Get(r.Context(), userID)
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	data := homeTemplateData{
		BaseTemplateData: newBaseTemplateData(r),
		Countries:        app.catalog.Countries(),
		QuestionCount:    len(app.catalog.Questions()),
		AnsweredCount:    len(answered),
	}

	app.render(w, r, http.StatusOK, "home", data)
}
