package repositories_test

import (
	"context"
	"github.com/myrjola/kompassi/internal/repositories"
	"github.com/myrjola/kompassi/internal/scoring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

func TestHotTopicRepository(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	hotTopics := repositories.NewHotTopicRepository(newTestDatabase(t), newTestLogger())

	t.Run("no responses yields zero deltas", func(t *testing.T) {
		deltas, err := hotTopics.AggregateDeltas(ctx, testUserID)
		require.NoError(t, err)
		for _, axis := range scoring.Axes() {
			assert.Zero(t, deltas[axis])
		}
	})

	t.Run("deltas accumulate per axis", func(t *testing.T) {
		require.NoError(t, hotTopics.Upsert(ctx, testUserID, "hot-energy-crisis", scoring.AxisEconomic, 5, -3))
		require.NoError(t, hotTopics.Upsert(ctx, testUserID, "hot-windfall-tax", scoring.AxisEconomic, 4, -1.5))
		require.NoError(t, hotTopics.Upsert(ctx, testUserID, "hot-ai-regulation", scoring.AxisProgress, 2, 1))

		deltas, err := hotTopics.AggregateDeltas(ctx, testUserID)
		require.NoError(t, err)
		assert.InDelta(t, -4.5, deltas[scoring.AxisEconomic], 1e-12)
		assert.InDelta(t, 1.0, deltas[scoring.AxisProgress], 1e-12)
		assert.Zero(t, deltas[scoring.AxisSocial])
	})

	t.Run("second response replaces the first", func(t *testing.T) {
		require.NoError(t, hotTopics.Upsert(ctx, testUserID, "hot-energy-crisis", scoring.AxisEconomic, 1, 3))

		responses, err := hotTopics.Responses(ctx, testUserID)
		require.NoError(t, err)
		assert.Equal(t, 1, responses["hot-energy-crisis"])

		deltas, err := hotTopics.AggregateDeltas(ctx, testUserID)
		require.NoError(t, err)
		assert.InDelta(t, 1.5, deltas[scoring.AxisEconomic], 1e-12)
	})

	t.Run("reset removes every response", func(t *testing.T) {
		require.NoError(t, hotTopics.Reset(ctx, testUserID))

		responses, err := hotTopics.Responses(ctx, testUserID)
		require.NoError(t, err)
		assert.Empty(t, responses)

		deltas, err := hotTopics.AggregateDeltas(ctx, testUserID)
		require.NoError(t, err)
		for _, axis := range scoring.Axes() {
			assert.Zero(t, deltas[axis])
		}
	})
}
