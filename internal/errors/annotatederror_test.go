package errors_test

import (
	"github.com/myrjola/kompassi/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"log/slog"
	"strings"
	"testing"
)

func TestWrap(t *testing.T) {
	sentinel := errors.NewSentinel("answer store unavailable")
	wrapped := errors.Wrap(sentinel, "load answers", slog.String("user_id", "abc"))

	assert.True(t, errors.Is(wrapped, sentinel), "wrapped error should match sentinel")
	assert.Equal(t, "load answers: answer store unavailable", wrapped.Error())

	var annotated errors.AnnotatedError
	require.True(t, errors.As(wrapped, &annotated))

	value := annotated.LogValue()
	require.Equal(t, slog.KindGroup, value.Kind())
	attrs := value.Group()
	require.NotEmpty(t, attrs)
	assert.Equal(t, "source", attrs[0].Key)
	assert.True(t, strings.Contains(attrs[0].Value.String(), "annotatederror_test.go"),
		"source should point to the call site, got %s", attrs[0].Value.String())
	assert.Equal(t, "user_id", attrs[1].Key)
}

func TestNew(t *testing.T) {
	err := errors.New("no parties for country", slog.String("country", "fi"))
	assert.Equal(t, "no parties for country", err.Error())
	assert.Nil(t, errors.Unwrap(err))
}

func TestJoin(t *testing.T) {
	first := errors.NewSentinel("first")
	second := errors.NewSentinel("second")
	joined := errors.Join(first, second)
	assert.True(t, errors.Is(joined, first))
	assert.True(t, errors.Is(joined, second))
}
