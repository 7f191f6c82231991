package repositories

import (
	"context"
	"database/sql"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/myrjola/kompassi/internal/errors"
	"github.com/myrjola/kompassi/internal/scoring"
	"github.com/myrjola/kompassi/internal/sqlite"
	"log/slog"
)

var ErrNoSnapshot = errors.NewSentinel("no snapshot found")

// Snapshot is a persisted "last known" axis score set identified by a share
// id. The axis columns are on the display scale [-100, 100]. The legacy
// columns carry the historical snapshot scale that external consumers of the
// answers table still read; they are written through the explicit conversion
// in the scoring package, never by ad hoc arithmetic.
type Snapshot struct {
	ID             string  `db:"id"`
	UserID         []byte  `db:"user_id"`
	Country        string  `db:"country"`
	Economic       float64 `db:"economic"`
	Social         float64 `db:"social"`
	Global         float64 `db:"global"`
	Progress       float64 `db:"progress"`
	LegacyEconomic float64 `db:"legacy_economic"`
	LegacySocial   float64 `db:"legacy_social"`
	LegacyGlobal   float64 `db:"legacy_global"`
	LegacyProgress float64 `db:"legacy_progress"`
	CreatedAt      string  `db:"created_at"`
}

// Display returns the axis scores on the display scale.
func (s *Snapshot) Display() map[scoring.Axis]float64 {
	return map[scoring.Axis]float64{
		scoring.AxisEconomic: s.Economic,
		scoring.AxisSocial:   s.Social,
		scoring.AxisGlobal:   s.Global,
		scoring.AxisProgress: s.Progress,
	}
}

// NewSnapshot builds a snapshot row from a scoring breakdown and the matching
// legacy sums.
func NewSnapshot(
	userID []byte,
	country string,
	breakdown scoring.Breakdown,
	legacySums map[scoring.Axis]float64,
) Snapshot {
	return Snapshot{
		ID:             uuid.NewString(),
		UserID:         userID,
		Country:        country,
		Economic:       scoring.ToDisplayScale(breakdown.Normalized[scoring.AxisEconomic]),
		Social:         scoring.ToDisplayScale(breakdown.Normalized[scoring.AxisSocial]),
		Global:         scoring.ToDisplayScale(breakdown.Normalized[scoring.AxisGlobal]),
		Progress:       scoring.ToDisplayScale(breakdown.Normalized[scoring.AxisProgress]),
		LegacyEconomic: scoring.ToLegacySnapshot(legacySums[scoring.AxisEconomic]),
		LegacySocial:   scoring.ToLegacySnapshot(legacySums[scoring.AxisSocial]),
		LegacyGlobal:   scoring.ToLegacySnapshot(legacySums[scoring.AxisGlobal]),
		LegacyProgress: scoring.ToLegacySnapshot(legacySums[scoring.AxisProgress]),
	}
}

// SnapshotRepository persists axis score snapshots for shareable result links.
type SnapshotRepository struct {
	readWrite *sqlx.DB
	readOnly  *sqlx.DB
	logger    *slog.Logger
}

func NewSnapshotRepository(dbs *sqlite.Database, logger *slog.Logger) *SnapshotRepository {
	return &SnapshotRepository{
		readWrite: sqlx.NewDb(dbs.ReadWrite, "sqlite3"),
		readOnly:  sqlx.NewDb(dbs.ReadOnly, "sqlite3"),
		logger:    logger.With("source", "SnapshotRepository"),
	}
}

// Insert persists the snapshot.
func (r *SnapshotRepository) Insert(ctx context.Context, snapshot Snapshot) error {
	stmt := `INSERT INTO snapshots (id, user_id, country,
                       economic, social, global, progress,
                       legacy_economic, legacy_social, legacy_global, legacy_progress)
VALUES (:id, :user_id, :country,
        :economic, :social, :global, :progress,
        :legacy_economic, :legacy_social, :legacy_global, :legacy_progress)`
	if _, err := r.readWrite.NamedExecContext(ctx, stmt, snapshot); err != nil {
		return errors.Wrap(err, "insert snapshot", slog.String("snapshot_id", snapshot.ID))
	}
	return nil
}

// Get fetches a snapshot by its share id.
func (r *SnapshotRepository) Get(ctx context.Context, id string) (*Snapshot, error) {
	var snapshot Snapshot
	stmt := `SELECT id, user_id, country,
       economic, social, global, progress,
       legacy_economic, legacy_social, legacy_global, legacy_progress,
       created_at
FROM snapshots WHERE id = ?`
	if err := r.readOnly.GetContext(ctx, &snapshot, stmt, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNoSnapshot
		}
		return nil, errors.Wrap(err, "get snapshot", slog.String("snapshot_id", id))
	}
	return &snapshot, nil
}

// Latest fetches the user's most recent snapshot.
func (r *SnapshotRepository) Latest(ctx context.Context, userID []byte) (*Snapshot, error) {
	var snapshot Snapshot
	stmt := `SELECT id, user_id, country,
       economic, social, global, progress,
       legacy_economic, legacy_social, legacy_global, legacy_progress,
       created_at
FROM snapshots WHERE user_id = ? ORDER BY created_at DESC, id LIMIT 1`
	if err := r.readOnly.GetContext(ctx, &snapshot, stmt, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNoSnapshot
		}
		return nil, errors.Wrap(err, "latest snapshot")
	}
	return &snapshot, nil
}
