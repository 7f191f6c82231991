package catalog_test

import (
	"github.com/myrjola/kompassi/internal/catalog"
	"github.com/myrjola/kompassi/internal/scoring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
	"time"
)

func TestLoadEmbeddedCatalogs(t *testing.T) {
	c, err := catalog.Load()
	require.NoError(t, err)

	questions := c.Questions()
	require.NotEmpty(t, questions)

	answeredAxes := map[scoring.Axis]bool{}
	for _, question := range questions {
		answeredAxes[question.Axis] = true
	}
	for _, axis := range scoring.Axes() {
		assert.True(t, answeredAxes[axis], "catalog should cover axis %s", axis)
	}

	require.NotEmpty(t, c.Countries())
	for _, country := range c.Countries() {
		assert.NotEmpty(t, c.Parties(country), "country %s should have parties", country)
	}
}

func TestQuestionLookup(t *testing.T) {
	c, err := catalog.Load()
	require.NoError(t, err)

	question, ok := c.Question("eco-taxes")
	require.True(t, ok)
	assert.Equal(t, scoring.AxisEconomic, question.Axis)

	_, ok = c.Question("does-not-exist")
	assert.False(t, ok)
}

func TestNewValidation(t *testing.T) {
	valid := scoring.Question{
		ID: "q", Text: "t", Axis: scoring.AxisSocial, Type: scoring.QuestionTypeScale, Weight: 1, Direction: 1,
	}

	tests := []struct {
		name   string
		mutate func(q scoring.Question) scoring.Question
	}{
		{"unknown axis", func(q scoring.Question) scoring.Question { q.Axis = "vibes"; return q }},
		{"unknown type", func(q scoring.Question) scoring.Question { q.Type = "essay"; return q }},
		{"negative weight", func(q scoring.Question) scoring.Question { q.Weight = -1; return q }},
		{"invalid direction", func(q scoring.Question) scoring.Question { q.Direction = 0; return q }},
		{"hot without start", func(q scoring.Question) scoring.Question {
			q.Type = scoring.QuestionTypeHot
			q.StartAt = nil
			return q
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := catalog.New([]scoring.Question{tt.mutate(valid)}, nil)
			assert.Error(t, err)
		})
	}

	t.Run("duplicate id", func(t *testing.T) {
		_, err := catalog.New([]scoring.Question{valid, valid}, nil)
		assert.Error(t, err)
	})

	t.Run("party outside scale", func(t *testing.T) {
		_, err := catalog.New(nil, []scoring.Party{
			{ID: "p", Name: "P", Country: "fi", Position: scoring.PartyPosition{Economic: 11}},
		})
		assert.Error(t, err)
	})
}

func TestHotTopics(t *testing.T) {
	start := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	questions := []scoring.Question{
		{ID: "h", Text: "t", Axis: scoring.AxisGlobal, Type: scoring.QuestionTypeHot,
			Weight: 1, Direction: 1, StartAt: &start, EndAt: &end},
	}
	c, err := catalog.New(questions, nil)
	require.NoError(t, err)

	assert.Empty(t, c.HotTopics(start.AddDate(0, 0, -1)), "not yet started")
	assert.Len(t, c.HotTopics(start.AddDate(0, 0, 7)), 1, "active")
	assert.Empty(t, c.HotTopics(end), "ended")
}
