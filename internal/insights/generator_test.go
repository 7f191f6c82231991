package insights_test

import (
	"context"
	"github.com/myrjola/kompassi/internal/catalog"
	"github.com/myrjola/kompassi/internal/errors"
	"github.com/myrjola/kompassi/internal/insights"
	"github.com/myrjola/kompassi/internal/scoring"
	"github.com/myrjola/kompassi/internal/testhelpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"io"
	"testing"
)

func TestGeneratorWithoutClient(t *testing.T) {
	t.Parallel()

	cat, err := catalog.Load()
	require.NoError(t, err)

	logger := testhelpers.NewLogger(io.Discard)
	generator := insights.NewGenerator(nil, cat, logger)

	t.Run("names the dominant leaning", func(t *testing.T) {
		t.Parallel()

		answers := scoring.Answers{"eco-taxes": 5, "eco-basic-income": 5}
		breakdown := scoring.Score(answers, cat.Questions(), scoring.Options{})

		result := generator.Generate(context.Background(), answers, breakdown)

		assert.Contains(t, result.Summary, "economics")
		assert.NotEmpty(t, result.TopDrivers)
	})

	t.Run("stays neutral for balanced answers", func(t *testing.T) {
		t.Parallel()

		answers := scoring.Answers{}
		for _, question := range cat.Questions() {
			if question.Type == scoring.QuestionTypeScale {
				answers[question.ID] = 3
			}
		}
		breakdown := scoring.Score(answers, cat.Questions(), scoring.Options{})

		result := generator.Generate(context.Background(), answers, breakdown)

		assert.Contains(t, result.Summary, "do not lean")
	})

	t.Run("ranks the heaviest questions first", func(t *testing.T) {
		t.Parallel()

		answers := scoring.Answers{"eco-taxes": 5, "eco-regulation": 4}
		breakdown := scoring.Score(answers, cat.Questions(), scoring.Options{})

		result := generator.Generate(context.Background(), answers, breakdown)

		taxes, ok := cat.Question("eco-taxes")
		require.True(t, ok)
		require.NotEmpty(t, result.TopDrivers)
		assert.Contains(t, taxes.Text, result.TopDrivers[0])
	})

	t.Run("streaming is disabled", func(t *testing.T) {
		t.Parallel()

		answers := scoring.Answers{"eco-taxes": 5}
		breakdown := scoring.Score(answers, cat.Questions(), scoring.Options{})

		_, err := generator.Stream(context.Background(), answers, breakdown)
		assert.True(t, errors.Is(err, insights.ErrDisabled))
	})
}
