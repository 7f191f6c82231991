// Package answers defines the answer store contract and a cache-backed
// implementation with a fixed read-precedence order.
package answers

import (
	"context"
	"github.com/myrjola/kompassi/internal/errors"
	"github.com/myrjola/kompassi/internal/scoring"
	"log/slog"
	"sync"
)

// Store provides access to a user's answer map.
type Store interface {
	// Get reads the user's full answer map.
	Get(ctx context.Context, userID []byte) (scoring.Answers, error)
	// Upsert overwrites the answer for one question.
	Upsert(ctx context.Context, userID []byte, questionID string, value int) error
	// Reset deletes every answer of the user.
	Reset(ctx context.Context, userID []byte) error
}

// CachedStore layers a single in-memory cache over a backing store.
//
// Reads follow a fixed precedence: the backing store first, the cached copy
// when the backing store fails, and an empty answer map when neither has
// data. Writes go through to the backing store and only update the cache on
// success, so a failed write leaves prior state untouched.
type CachedStore struct {
	backing Store
	logger  *slog.Logger

	mu    sync.Mutex
	cache map[string]scoring.Answers
}

var _ Store = (*CachedStore)(nil)

func NewCachedStore(backing Store, logger *slog.Logger) *CachedStore {
	return &CachedStore{
		backing: backing,
		logger:  logger.With("source", "CachedStore"),
		cache:   map[string]scoring.Answers{},
	}
}

func (s *CachedStore) Get(ctx context.Context, userID []byte) (scoring.Answers, error) {
	answers, err := s.backing.Get(ctx, userID)
	if err == nil {
		s.mu.Lock()
		s.cache[string(userID)] = cloneAnswers(answers)
		s.mu.Unlock()
		return answers, nil
	}

	s.logger.LogAttrs(ctx, slog.LevelWarn, "answer store read failed, serving cached answers",
		errors.SlogError(err))

	s.mu.Lock()
	cached, ok := s.cache[string(userID)]
	s.mu.Unlock()
	if !ok {
		return scoring.Answers{}, nil
	}
	return cloneAnswers(cached), nil
}

func (s *CachedStore) Upsert(ctx context.Context, userID []byte, questionID string, value int) error {
	if err := s.backing.Upsert(ctx, userID, questionID, value); err != nil {
		return errors.Wrap(err, "upsert answer")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	cached, ok := s.cache[string(userID)]
	if !ok {
		cached = scoring.Answers{}
		s.cache[string(userID)] = cached
	}
	cached[questionID] = value
	return nil
}

func (s *CachedStore) Reset(ctx context.Context, userID []byte) error {
	if err := s.backing.Reset(ctx, userID); err != nil {
		return errors.Wrap(err, "reset answers")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.cache, string(userID))
	return nil
}

func cloneAnswers(answers scoring.Answers) scoring.Answers {
	clone := make(scoring.Answers, len(answers))
	for id, value := range answers {
		clone[id] = value
	}
	return clone
}
