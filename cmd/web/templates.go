package main

import (
	"github.com/myrjola/kompassi/internal/contexthelpers"
	"net/http"
)

type BaseTemplateData struct {
	Authenticated bool
	CurrentPath   string
}

func newBaseTemplateData(r *http.Request) BaseTemplateData {
	return BaseTemplateData{
		Authenticated: contexthelpers.IsAuthenticated(r.Context()),
		CurrentPath:   contexthelpers.CurrentPath(r.Context()),
	}
}
