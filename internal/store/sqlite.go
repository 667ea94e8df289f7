package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/sells-group/bizhealth/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db   *sql.DB
	opts options
	now  func() time.Time
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string, opts ...Option) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close() //nolint:errcheck
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db, opts: buildOptions(opts), now: time.Now}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS analyses (
	id                  TEXT PRIMARY KEY,
	status              TEXT NOT NULL,
	total_score         INTEGER NOT NULL,
	percentage          REAL NOT NULL,
	annual_revenue_loss INTEGER NOT NULL,
	result              TEXT NOT NULL,
	created_at          INTEGER NOT NULL,
	saved_at            INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS current_analysis (
	slot       INTEGER PRIMARY KEY CHECK (slot = 1),
	result     TEXT NOT NULL,
	updated_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS settings (
	slot       INTEGER PRIMARY KEY CHECK (slot = 1),
	data       TEXT NOT NULL,
	updated_at INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_analyses_saved_at ON analyses(saved_at DESC);
CREATE INDEX IF NOT EXISTS idx_analyses_status ON analyses(status);
CREATE INDEX IF NOT EXISTS idx_analyses_created_at ON analyses(created_at);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// SaveAnalysis makes r the current analysis and prepends it to history in
// one transaction, then trims history to the retention limit.
func (s *SQLiteStore) SaveAnalysis(ctx context.Context, r *model.BusinessHealthResult) error {
	data, err := json.Marshal(r)
	if err != nil {
		return eris.Wrap(err, "sqlite: marshal analysis")
	}
	savedAt := s.now().UnixNano()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return eris.Wrap(err, "sqlite: begin save")
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO current_analysis (slot, result, updated_at) VALUES (1, ?, ?)
		 ON CONFLICT(slot) DO UPDATE SET result = excluded.result, updated_at = excluded.updated_at`,
		string(data), savedAt,
	); err != nil {
		return eris.Wrap(err, "sqlite: upsert current analysis")
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO analyses (id, status, total_score, percentage, annual_revenue_loss, result, created_at, saved_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET status = excluded.status, total_score = excluded.total_score,
		   percentage = excluded.percentage, annual_revenue_loss = excluded.annual_revenue_loss,
		   result = excluded.result, created_at = excluded.created_at, saved_at = excluded.saved_at`,
		r.ID, string(r.Status), r.TotalScore, r.Percentage, r.AnnualRevenueLoss, string(data), r.Timestamp, savedAt,
	); err != nil {
		return eris.Wrapf(err, "sqlite: insert history %s", r.ID)
	}

	res, err := tx.ExecContext(ctx,
		`DELETE FROM analyses WHERE id NOT IN (
			SELECT id FROM analyses ORDER BY saved_at DESC, id DESC LIMIT ?
		)`,
		s.opts.historyLimit,
	)
	if err != nil {
		return eris.Wrap(err, "sqlite: trim history")
	}

	if err := tx.Commit(); err != nil {
		return eris.Wrap(err, "sqlite: commit save")
	}

	if n, _ := res.RowsAffected(); n > 0 {
		zap.L().Debug("sqlite: trimmed history", zap.Int64("removed", n), zap.Int("limit", s.opts.historyLimit))
	}
	return nil
}

func (s *SQLiteStore) CurrentAnalysis(ctx context.Context) (*model.BusinessHealthResult, error) {
	var data string
	err := s.db.QueryRowContext(ctx, `SELECT result FROM current_analysis WHERE slot = 1`).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: get current analysis")
	}
	return decodeResult([]byte(data))
}

func (s *SQLiteStore) ClearCurrent(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM current_analysis`)
	return eris.Wrap(err, "sqlite: clear current analysis")
}

func (s *SQLiteStore) GetAnalysis(ctx context.Context, id string) (*model.BusinessHealthResult, error) {
	var data string
	err := s.db.QueryRowContext(ctx, `SELECT result FROM analyses WHERE id = ?`, id).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, eris.Wrapf(ErrNotFound, "sqlite: get analysis %s", id)
	}
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: get analysis %s", id)
	}
	return decodeResult([]byte(data))
}

func (s *SQLiteStore) ListHistory(ctx context.Context, filter HistoryFilter) ([]model.BusinessHealthResult, error) {
	var (
		where []string
		args  []any
	)
	if filter.Status != "" {
		where = append(where, "status = ?")
		args = append(args, string(filter.Status))
	}

	q := `SELECT result FROM analyses`
	if len(where) > 0 {
		q += " WHERE " + strings.Join(where, " AND ")
	}
	q += " ORDER BY saved_at DESC, id DESC"
	if filter.Limit > 0 || filter.Offset > 0 {
		limit := filter.Limit
		if limit <= 0 {
			limit = -1
		}
		q += " LIMIT ? OFFSET ?"
		args = append(args, limit, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list history")
	}
	defer rows.Close() //nolint:errcheck

	var out []model.BusinessHealthResult
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan history")
		}
		r, err := decodeResult([]byte(data))
		if err != nil {
			return nil, err
		}
		out = append(out, *r)
	}
	return out, eris.Wrap(rows.Err(), "sqlite: iterate history")
}

func (s *SQLiteStore) DeleteAnalysis(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM analyses WHERE id = ?`, id)
	if err != nil {
		return eris.Wrapf(err, "sqlite: delete analysis %s", id)
	}
	return checkRowsAffected(res, id)
}

func (s *SQLiteStore) ClearHistory(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM analyses`)
	return eris.Wrap(err, "sqlite: clear history")
}

func (s *SQLiteStore) LoadSettings(ctx context.Context) (model.AppSettings, error) {
	var data string
	err := s.db.QueryRowContext(ctx, `SELECT data FROM settings WHERE slot = 1`).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return model.DefaultSettings(), nil
	}
	if err != nil {
		return model.AppSettings{}, eris.Wrap(err, "sqlite: load settings")
	}
	return decodeSettings([]byte(data))
}

func (s *SQLiteStore) SaveSettings(ctx context.Context, settings model.AppSettings) error {
	data, err := json.Marshal(settings)
	if err != nil {
		return eris.Wrap(err, "sqlite: marshal settings")
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO settings (slot, data, updated_at) VALUES (1, ?, ?)
		 ON CONFLICT(slot) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`,
		string(data), s.now().UnixNano(),
	)
	return eris.Wrap(err, "sqlite: save settings")
}

func (s *SQLiteStore) ResetSettings(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM settings`)
	return eris.Wrap(err, "sqlite: reset settings")
}

func (s *SQLiteStore) ClearAll(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return eris.Wrap(err, "sqlite: begin clear")
	}
	defer tx.Rollback() //nolint:errcheck

	for _, table := range []string{"current_analysis", "analyses", "settings"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return eris.Wrapf(err, "sqlite: clear %s", table)
		}
	}
	return eris.Wrap(tx.Commit(), "sqlite: commit clear")
}

func checkRowsAffected(res sql.Result, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return eris.Wrap(err, "rows affected")
	}
	if n == 0 {
		return eris.Wrapf(ErrNotFound, "analysis %s", id)
	}
	return nil
}

func decodeResult(data []byte) (*model.BusinessHealthResult, error) {
	var r model.BusinessHealthResult
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, eris.Wrap(err, "store: decode analysis")
	}
	return &r, nil
}

func decodeSettings(data []byte) (model.AppSettings, error) {
	s := model.DefaultSettings()
	if err := json.Unmarshal(data, &s); err != nil {
		return model.AppSettings{}, eris.Wrap(err, "store: decode settings")
	}
	return s, nil
}
