package scoring_test

import (
	"github.com/myrjola/kompassi/internal/scoring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

func testCatalog() []scoring.Question {
	return []scoring.Question{
		{ID: "eco1", Axis: scoring.AxisEconomic, Type: scoring.QuestionTypeScale, Weight: 2, Direction: -1},
		{ID: "eco2", Axis: scoring.AxisEconomic, Type: scoring.QuestionTypeScale, Weight: 1, Direction: 1},
		{ID: "soc1", Axis: scoring.AxisSocial, Type: scoring.QuestionTypeScale, Weight: 1, Direction: 1},
		{ID: "glo1", Axis: scoring.AxisGlobal, Type: scoring.QuestionTypeYesNo, Weight: 1.5, Direction: 1},
		{ID: "pro1", Axis: scoring.AxisProgress, Type: scoring.QuestionTypeScale, Weight: 0.5, Direction: -1},
	}
}

func TestAggregateEmptyAnswers(t *testing.T) {
	breakdown := scoring.Score(scoring.Answers{}, testCatalog(), scoring.Options{})
	for _, axis := range scoring.Axes() {
		assert.Zero(t, breakdown.Normalized[axis], "axis %s should be neutral", axis)
	}
}

func TestAggregateBounds(t *testing.T) {
	// Push every answer to an extreme and verify the guarantee that
	// normalized values stay within [-1, 1].
	extremes := []scoring.Answers{
		{"eco1": 1, "eco2": 1, "soc1": 1, "glo1": scoring.AnswerNo, "pro1": 1},
		{"eco1": 5, "eco2": 5, "soc1": 5, "glo1": scoring.AnswerYes, "pro1": 5},
		{"eco1": 1, "eco2": 5, "soc1": 3, "glo1": scoring.AnswerYes, "pro1": 2},
	}
	for _, answers := range extremes {
		breakdown := scoring.Score(answers, testCatalog(), scoring.Options{})
		for _, axis := range scoring.Axes() {
			assert.GreaterOrEqual(t, breakdown.Normalized[axis], -1.0)
			assert.LessOrEqual(t, breakdown.Normalized[axis], 1.0)
		}
	}
}

func TestAggregateNormalization(t *testing.T) {
	questions := []scoring.Question{
		{ID: "eco1", Axis: scoring.AxisEconomic, Type: scoring.QuestionTypeScale, Weight: 2, Direction: 1},
		{ID: "eco2", Axis: scoring.AxisEconomic, Type: scoring.QuestionTypeScale, Weight: 1, Direction: 1},
	}
	// Denominator is (2+1)*2 = 6. One fully agreeing answer on the weight-2
	// question contributes 4, so the normalized position is 4/6.
	breakdown := scoring.Score(scoring.Answers{"eco1": 5}, questions, scoring.Options{})
	assert.InDelta(t, 4.0/6.0, breakdown.Normalized[scoring.AxisEconomic], 1e-12)
	assert.InDelta(t, 6.0, breakdown.Norms[scoring.AxisEconomic], 1e-12)
}

func TestAggregateDenominatorFloor(t *testing.T) {
	// A lone zero-weight question would make the denominator zero without the
	// floor of 1.
	questions := []scoring.Question{
		{ID: "z", Axis: scoring.AxisProgress, Type: scoring.QuestionTypeScale, Weight: 0, Direction: 1},
	}
	breakdown := scoring.Score(scoring.Answers{"z": 5}, questions, scoring.Options{})
	require.InDelta(t, 1.0, breakdown.Norms[scoring.AxisProgress], 1e-12)
	assert.Zero(t, breakdown.Normalized[scoring.AxisProgress])
}

func TestAggregateSymmetry(t *testing.T) {
	// Negating every direction and mirroring every answer around the neutral
	// midpoint must leave normalized positions unchanged.
	questions := testCatalog()
	answers := scoring.Answers{"eco1": 5, "eco2": 2, "soc1": 4, "glo1": scoring.AnswerNo, "pro1": 1}

	mirroredQuestions := make([]scoring.Question, len(questions))
	for i, q := range questions {
		q.Direction = -q.Direction
		mirroredQuestions[i] = q
	}
	mirroredAnswers := make(scoring.Answers, len(answers))
	for id, value := range answers {
		mirroredAnswers[id] = 6 - value
	}

	original := scoring.Score(answers, questions, scoring.Options{})
	mirrored := scoring.Score(mirroredAnswers, mirroredQuestions, scoring.Options{})
	for _, axis := range scoring.Axes() {
		assert.InDelta(t, original.Normalized[axis], mirrored.Normalized[axis], 1e-12,
			"axis %s should be unchanged under double negation", axis)
	}
}

func TestAggregateIdempotence(t *testing.T) {
	questions := testCatalog()
	answers := scoring.Answers{"eco1": 4, "soc1": 2}
	first := scoring.Score(answers, questions, scoring.Options{})
	second := scoring.Score(answers, questions, scoring.Options{})
	assert.Equal(t, first, second)
}
