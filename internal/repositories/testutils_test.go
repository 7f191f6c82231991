package repositories_test

import (
	"context"
	"github.com/myrjola/kompassi/internal/sqlite"
	"github.com/stretchr/testify/require"
	"io"
	"log/slog"
	"testing"

	"github.com/myrjola/kompassi/internal/testhelpers"
)

var testUserID = []byte{0x01, 0x02, 0x03}

func newTestDatabase(t *testing.T) *sqlite.Database {
	t.Helper()
	db, err := sqlite.NewDatabase(context.Background(), ":memory:", newTestLogger())
	require.NoError(t, err)
	return db
}

func newTestLogger() *slog.Logger {
	return testhelpers.NewLogger(io.Discard)
}
