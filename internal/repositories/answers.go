package repositories

import (
	"context"
	"database/sql"
	"github.com/myrjola/kompassi/internal/errors"
	"github.com/myrjola/kompassi/internal/scoring"
	"github.com/myrjola/kompassi/internal/sqlite"
	"log/slog"
)

// AnswerRepository stores one answer per (user, question) pair.
type AnswerRepository struct {
	dbs    *sqlite.Database
	logger *slog.Logger
}

func NewAnswerRepository(dbs *sqlite.Database, logger *slog.Logger) *AnswerRepository {
	return &AnswerRepository{
		dbs:    dbs,
		logger: logger.With("source", "AnswerRepository"),
	}
}

// Upsert writes the answer, overwriting any previous value for the question.
func (r *AnswerRepository) Upsert(ctx context.Context, userID []byte, questionID string, value int) error {
	stmt := `INSERT INTO answers (user_id, question_id, value)
VALUES (@user_id, @question_id, @value)
ON CONFLICT (user_id, question_id)
    DO UPDATE SET value = excluded.value, updated_at = strftime('%Y-%m-%dT%H:%M:%fZ')`
	params := []any{
		sql.Named("user_id", userID),
		sql.Named("question_id", questionID),
		sql.Named("value", value),
	}
	if _, err := r.dbs.ReadWrite.ExecContext(ctx, stmt, params...); err != nil {
		return errors.Wrap(err, "upsert answer", slog.String("question_id", questionID))
	}
	return nil
}

// Get reads the user's full answer map. A user without answers gets an empty
// non-nil map.
func (r *AnswerRepository) Get(ctx context.Context, userID []byte) (scoring.Answers, error) {
	var (
		rows *sql.Rows
		err  error
	)
	stmt := `SELECT question_id, value FROM answers WHERE user_id = ?`
	if rows, err = r.dbs.ReadOnly.QueryContext(ctx, stmt, userID); err != nil {
		return nil, errors.Wrap(err, "query answers")
	}
	defer func() {
		if err = rows.Close(); err != nil {
			err = errors.Wrap(err, "close rows")
			r.logger.Error("could not close rows", errors.SlogError(err))
		}
	}()

	answers := scoring.Answers{}
	for rows.Next() {
		var (
			questionID string
			value      int
		)
		if err = rows.Scan(&questionID, &value); err != nil {
			return nil, errors.Wrap(err, "scan answer")
		}
		answers[questionID] = value
	}
	if err = rows.Err(); err != nil {
		return nil, errors.Wrap(err, "rows error")
	}
	return answers, nil
}

// Reset deletes every answer of the user. This is the only structural delete
// the answer store supports.
func (r *AnswerRepository) Reset(ctx context.Context, userID []byte) error {
	if _, err := r.dbs.ReadWrite.ExecContext(ctx, `DELETE FROM answers WHERE user_id = ?`, userID); err != nil {
		return errors.Wrap(err, "reset answers")
	}
	return nil
}
