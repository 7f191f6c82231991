package answers_test

import (
	"context"
	"github.com/myrjola/kompassi/internal/answers"
	"github.com/myrjola/kompassi/internal/errors"
	"github.com/myrjola/kompassi/internal/scoring"
	"github.com/myrjola/kompassi/internal/testhelpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"io"
	"testing"
)

type flakyStore struct {
	answers map[string]scoring.Answers
	failing bool
}

var errUnavailable = errors.NewSentinel("store unavailable")

func newFlakyStore() *flakyStore {
	return &flakyStore{answers: map[string]scoring.Answers{}}
}

func (s *flakyStore) Get(_ context.Context, userID []byte) (scoring.Answers, error) {
	if s.failing {
		return nil, errUnavailable
	}
	stored, ok := s.answers[string(userID)]
	if !ok {
		return scoring.Answers{}, nil
	}
	clone := make(scoring.Answers, len(stored))
	for id, value := range stored {
		clone[id] = value
	}
	return clone, nil
}

func (s *flakyStore) Upsert(_ context.Context, userID []byte, questionID string, value int) error {
	if s.failing {
		return errUnavailable
	}
	stored, ok := s.answers[string(userID)]
	if !ok {
		stored = scoring.Answers{}
		s.answers[string(userID)] = stored
	}
	stored[questionID] = value
	return nil
}

func (s *flakyStore) Reset(_ context.Context, userID []byte) error {
	if s.failing {
		return errUnavailable
	}
	delete(s.answers, string(userID))
	return nil
}

func TestCachedStore(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	userID := []byte{1, 2, 3}
	logger := testhelpers.NewLogger(io.Discard)

	t.Run("reads prefer the backing store", func(t *testing.T) {
		t.Parallel()

		backing := newFlakyStore()
		store := answers.NewCachedStore(backing, logger)

		require.NoError(t, backing.Upsert(ctx, userID, "eco-taxes", 4))

		got, err := store.Get(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, scoring.Answers{"eco-taxes": 4}, got)
	})

	t.Run("serves cached answers when the backing store fails", func(t *testing.T) {
		t.Parallel()

		backing := newFlakyStore()
		store := answers.NewCachedStore(backing, logger)

		require.NoError(t, store.Upsert(ctx, userID, "eco-taxes", 4))
		require.NoError(t, store.Upsert(ctx, userID, "soc-conscription", 1))

		backing.failing = true

		got, err := store.Get(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, scoring.Answers{"eco-taxes": 4, "soc-conscription": 1}, got)
	})

	t.Run("falls back to empty answers when nothing is cached", func(t *testing.T) {
		t.Parallel()

		backing := newFlakyStore()
		backing.failing = true
		store := answers.NewCachedStore(backing, logger)

		got, err := store.Get(ctx, userID)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("failed writes leave the cache untouched", func(t *testing.T) {
		t.Parallel()

		backing := newFlakyStore()
		store := answers.NewCachedStore(backing, logger)

		require.NoError(t, store.Upsert(ctx, userID, "eco-taxes", 4))

		backing.failing = true
		require.Error(t, store.Upsert(ctx, userID, "eco-taxes", 1))

		got, err := store.Get(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, scoring.Answers{"eco-taxes": 4}, got)
	})

	t.Run("reset clears both stores", func(t *testing.T) {
		t.Parallel()

		backing := newFlakyStore()
		store := answers.NewCachedStore(backing, logger)

		require.NoError(t, store.Upsert(ctx, userID, "eco-taxes", 4))
		require.NoError(t, store.Reset(ctx, userID))

		backing.failing = true

		got, err := store.Get(ctx, userID)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("cached copies are isolated from callers", func(t *testing.T) {
		t.Parallel()

		backing := newFlakyStore()
		store := answers.NewCachedStore(backing, logger)

		require.NoError(t, store.Upsert(ctx, userID, "eco-taxes", 4))

		first, err := store.Get(ctx, userID)
		require.NoError(t, err)
		first["eco-taxes"] = 1

		backing.failing = true
		second, err := store.Get(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, 4, second["eco-taxes"])
	})
}
