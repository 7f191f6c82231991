package sqlite

import (
	"context"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"io"
	"log/slog"
	"strings"
	"testing"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestMigrateIsIdempotent(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	db, err := NewDatabase(ctx, ":memory:", newTestLogger())
	require.NoError(t, err)

	// Running the same schema again must be a no-op.
	require.NoError(t, db.migrate(ctx, schemaDefinition))

	var count int
	err = db.ReadOnly.QueryRowContext(ctx,
		`SELECT count(*) FROM sqlite_schema WHERE type = 'table' AND name NOT LIKE 'sqlite_%'`).Scan(&count)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, count, 5)
}

func TestMigrateAddsAndDropsColumns(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	db, err := NewDatabase(ctx, ":memory:", newTestLogger())
	require.NoError(t, err)

	// Widen the answers table and check that existing data survives.
	_, err = db.ReadWrite.ExecContext(ctx,
		`INSERT INTO answers (user_id, question_id, value) VALUES (x'01', 'eco-taxes', 4)`)
	require.NoError(t, err)

	changed := strings.Replace(schemaDefinition,
		"    updated_at  TEXT    NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ')),\n    PRIMARY KEY (user_id, question_id)",
		"    updated_at  TEXT    NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ')),\n    source      TEXT    NOT NULL DEFAULT 'web',\n    PRIMARY KEY (user_id, question_id)",
		1)
	require.NotEqual(t, schemaDefinition, changed)
	require.NoError(t, db.migrate(ctx, changed))

	var value int
	var source string
	err = db.ReadOnly.QueryRowContext(ctx,
		`SELECT value, source FROM answers WHERE question_id = 'eco-taxes'`).Scan(&value, &source)
	require.NoError(t, err)
	assert.Equal(t, 4, value)
	assert.Equal(t, "web", source)
}
