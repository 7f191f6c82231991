package repositories

import (
	"context"
	"database/sql"
	"github.com/myrjola/kompassi/internal/errors"
	"github.com/myrjola/kompassi/internal/scoring"
	"github.com/myrjola/kompassi/internal/sqlite"
	"log/slog"
)

// HotTopicRepository stores a single response per (topic, user) pair together
// with the signed axis delta the response contributed at answer time.
//
// The deltas are a render-time convenience for callers that want to add
// hot-topic effects to a previously persisted base score. Authoritative
// scoring always recomputes from the complete answer set instead.
type HotTopicRepository struct {
	dbs    *sqlite.Database
	logger *slog.Logger
}

func NewHotTopicRepository(dbs *sqlite.Database, logger *slog.Logger) *HotTopicRepository {
	return &HotTopicRepository{
		dbs:    dbs,
		logger: logger.With("source", "HotTopicRepository"),
	}
}

// Upsert writes the user's response to a hot topic. Answering the same topic
// again replaces the previous response and its delta.
func (r *HotTopicRepository) Upsert(
	ctx context.Context,
	userID []byte,
	topicID string,
	axis scoring.Axis,
	value int,
	delta float64,
) error {
	stmt := `INSERT INTO hot_topic_responses (user_id, topic_id, axis, value, delta)
VALUES (@user_id, @topic_id, @axis, @value, @delta)
ON CONFLICT (user_id, topic_id)
    DO UPDATE SET axis        = excluded.axis,
                  value       = excluded.value,
                  delta       = excluded.delta,
                  answered_at = strftime('%Y-%m-%dT%H:%M:%fZ')`
	params := []any{
		sql.Named("user_id", userID),
		sql.Named("topic_id", topicID),
		sql.Named("axis", string(axis)),
		sql.Named("value", value),
		sql.Named("delta", delta),
	}
	if _, err := r.dbs.ReadWrite.ExecContext(ctx, stmt, params...); err != nil {
		return errors.Wrap(err, "upsert hot topic response", slog.String("topic_id", topicID))
	}
	return nil
}

// AggregateDeltas reads back the summed signed deltas per axis.
func (r *HotTopicRepository) AggregateDeltas(ctx context.Context, userID []byte) (map[scoring.Axis]float64, error) {
	var (
		rows *sql.Rows
		err  error
	)
	stmt := `SELECT axis, COALESCE(SUM(delta), 0) FROM hot_topic_responses WHERE user_id = ? GROUP BY axis`
	if rows, err = r.dbs.ReadOnly.QueryContext(ctx, stmt, userID); err != nil {
		return nil, errors.Wrap(err, "query hot topic deltas")
	}
	defer func() {
		if err = rows.Close(); err != nil {
			err = errors.Wrap(err, "close rows")
			r.logger.Error("could not close rows", errors.SlogError(err))
		}
	}()

	deltas := make(map[scoring.Axis]float64, len(scoring.Axes()))
	for _, axis := range scoring.Axes() {
		deltas[axis] = 0
	}
	for rows.Next() {
		var (
			axis  string
			delta float64
		)
		if err = rows.Scan(&axis, &delta); err != nil {
			return nil, errors.Wrap(err, "scan delta")
		}
		deltas[scoring.Axis(axis)] = delta
	}
	if err = rows.Err(); err != nil {
		return nil, errors.Wrap(err, "rows error")
	}
	return deltas, nil
}

// Responses reads the user's hot-topic responses keyed by topic id.
func (r *HotTopicRepository) Responses(ctx context.Context, userID []byte) (map[string]int, error) {
	var (
		rows *sql.Rows
		err  error
	)
	stmt := `SELECT topic_id, value FROM hot_topic_responses WHERE user_id = ?`
	if rows, err = r.dbs.ReadOnly.QueryContext(ctx, stmt, userID); err != nil {
		return nil, errors.Wrap(err, "query hot topic responses")
	}
	defer func() {
		if err = rows.Close(); err != nil {
			err = errors.Wrap(err, "close rows")
			r.logger.Error("could not close rows", errors.SlogError(err))
		}
	}()

	responses := map[string]int{}
	for rows.Next() {
		var (
			topicID string
			value   int
		)
		if err = rows.Scan(&topicID, &value); err != nil {
			return nil, errors.Wrap(err, "scan response")
		}
		responses[topicID] = value
	}
	if err = rows.Err(); err != nil {
		return nil, errors.Wrap(err, "rows error")
	}
	return responses, nil
}

// Reset deletes every hot-topic response of the user.
func (r *HotTopicRepository) Reset(ctx context.Context, userID []byte) error {
	stmt := `DELETE FROM hot_topic_responses WHERE user_id = ?`
	if _, err := r.dbs.ReadWrite.ExecContext(ctx, stmt, userID); err != nil {
		return errors.Wrap(err, "reset hot topic responses")
	}
	return nil
}
