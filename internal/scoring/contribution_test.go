package scoring_test

import (
	"github.com/myrjola/kompassi/internal/scoring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
	"time"
)

func TestComputeContributions(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	opts := scoring.Options{Now: now}

	questions := []scoring.Question{
		{ID: "1", Axis: scoring.AxisEconomic, Type: scoring.QuestionTypeScale, Weight: 2, Direction: -1},
		{ID: "2", Axis: scoring.AxisSocial, Type: scoring.QuestionTypeScale, Weight: 1, Direction: 1},
	}

	tests := []struct {
		name    string
		answers scoring.Answers
		want    []scoring.Contribution
	}{
		{
			name:    "weighted negative direction",
			answers: scoring.Answers{"1": 5},
			want: []scoring.Contribution{
				{QuestionID: "1", Axis: scoring.AxisEconomic, SignedValue: -4, DecayFactor: 1},
			},
		},
		{
			name:    "neutral answer contributes zero",
			answers: scoring.Answers{"2": 3},
			want: []scoring.Contribution{
				{QuestionID: "2", Axis: scoring.AxisSocial, SignedValue: 0, DecayFactor: 1},
			},
		},
		{
			name:    "malformed value maps to zero strength",
			answers: scoring.Answers{"2": 42},
			want: []scoring.Contribution{
				{QuestionID: "2", Axis: scoring.AxisSocial, SignedValue: 0, DecayFactor: 1},
			},
		},
		{
			name:    "unknown question ids are skipped",
			answers: scoring.Answers{"nope": 5},
			want:    []scoring.Contribution{},
		},
		{
			name:    "empty answers produce no contributions",
			answers: scoring.Answers{},
			want:    []scoring.Contribution{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := scoring.ComputeContributions(tt.answers, questions, opts)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestComputeContributionsIsPure(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	startAt := now.AddDate(0, 0, -10)
	questions := []scoring.Question{
		{ID: "hot", Axis: scoring.AxisGlobal, Type: scoring.QuestionTypeHot, Weight: 1, Direction: 1, StartAt: &startAt},
	}
	answers := scoring.Answers{"hot": 4}
	opts := scoring.Options{Now: now}

	first := scoring.ComputeContributions(answers, questions, opts)
	second := scoring.ComputeContributions(answers, questions, opts)
	assert.Equal(t, first, second)
}

func TestHotTopicDecay(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	hotQuestion := func(startAt time.Time) []scoring.Question {
		return []scoring.Question{
			{ID: "hot", Axis: scoring.AxisGlobal, Type: scoring.QuestionTypeHot, Weight: 1, Direction: 1, StartAt: &startAt},
		}
	}
	answers := scoring.Answers{"hot": 5}

	t.Run("age zero keeps full weight", func(t *testing.T) {
		got := scoring.ComputeContributions(answers, hotQuestion(now), scoring.Options{Now: now})
		require.Len(t, got, 1)
		assert.InDelta(t, 1.0, got[0].DecayFactor, 1e-12)
		assert.InDelta(t, 2.0, got[0].SignedValue, 1e-12)
	})

	t.Run("one half-life halves the weight", func(t *testing.T) {
		startAt := now.AddDate(0, 0, -45)
		got := scoring.ComputeContributions(answers, hotQuestion(startAt), scoring.Options{Now: now})
		require.Len(t, got, 1)
		assert.InDelta(t, 0.5, got[0].DecayFactor, 1e-9)
	})

	t.Run("configurable half-life", func(t *testing.T) {
		startAt := now.AddDate(0, 0, -10)
		got := scoring.ComputeContributions(answers, hotQuestion(startAt),
			scoring.Options{Now: now, HalfLifeDays: 10})
		require.Len(t, got, 1)
		assert.InDelta(t, 0.5, got[0].DecayFactor, 1e-9)
	})

	t.Run("old topics decay towards zero", func(t *testing.T) {
		startAt := now.AddDate(-20, 0, 0)
		got := scoring.ComputeContributions(answers, hotQuestion(startAt), scoring.Options{Now: now})
		require.Len(t, got, 1)
		assert.Less(t, got[0].DecayFactor, 1e-12)
	})

	t.Run("future start keeps full weight", func(t *testing.T) {
		startAt := now.AddDate(0, 0, 7)
		got := scoring.ComputeContributions(answers, hotQuestion(startAt), scoring.Options{Now: now})
		require.Len(t, got, 1)
		assert.InDelta(t, 1.0, got[0].DecayFactor, 1e-12)
	})

	t.Run("hot question without start keeps full weight", func(t *testing.T) {
		questions := []scoring.Question{
			{ID: "hot", Axis: scoring.AxisGlobal, Type: scoring.QuestionTypeHot, Weight: 1, Direction: 1},
		}
		got := scoring.ComputeContributions(answers, questions, scoring.Options{Now: now})
		require.Len(t, got, 1)
		assert.InDelta(t, 1.0, got[0].DecayFactor, 1e-12)
	})
}
