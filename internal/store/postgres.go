package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/bizhealth/internal/model"
)

// Pool is the subset of *pgxpool.Pool used by PostgresStore. pgxmock's pool
// satisfies it in tests.
type Pool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
	Ping(ctx context.Context) error
}

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool    Pool
	closeFn func()
	opts    options
	now     func() time.Time
}

// PoolConfig holds optional connection pool tuning parameters.
type PoolConfig struct {
	MaxConns int32 `yaml:"max_conns" mapstructure:"max_conns"`
	MinConns int32 `yaml:"min_conns" mapstructure:"min_conns"`
}

// NewPostgres creates a PostgresStore with a connection pool and pings it.
func NewPostgres(ctx context.Context, connString string, poolCfg *PoolConfig, opts ...Option) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}

	maxConns := int32(10)
	minConns := int32(1)
	if poolCfg != nil {
		if poolCfg.MaxConns > 0 {
			maxConns = poolCfg.MaxConns
		}
		if poolCfg.MinConns > 0 {
			minConns = poolCfg.MinConns
		}
	}
	pgxCfg.MaxConns = maxConns
	pgxCfg.MinConns = minConns
	pgxCfg.MaxConnLifetime = 30 * time.Minute
	pgxCfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return newPostgresWithPool(pool, pool.Close, opts...), nil
}

func newPostgresWithPool(pool Pool, closeFn func(), opts ...Option) *PostgresStore {
	return &PostgresStore{pool: pool, closeFn: closeFn, opts: buildOptions(opts), now: time.Now}
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS analyses (
	id                  TEXT PRIMARY KEY,
	status              TEXT NOT NULL,
	total_score         INTEGER NOT NULL,
	percentage          DOUBLE PRECISION NOT NULL,
	annual_revenue_loss BIGINT NOT NULL,
	result              JSONB NOT NULL,
	created_at          BIGINT NOT NULL,
	saved_at            BIGINT NOT NULL
);

CREATE TABLE IF NOT EXISTS current_analysis (
	slot       SMALLINT PRIMARY KEY CHECK (slot = 1),
	result     JSONB NOT NULL,
	updated_at BIGINT NOT NULL
);

CREATE TABLE IF NOT EXISTS settings (
	slot       SMALLINT PRIMARY KEY CHECK (slot = 1),
	data       JSONB NOT NULL,
	updated_at BIGINT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_analyses_saved_at ON analyses(saved_at DESC, id DESC);
CREATE INDEX IF NOT EXISTS idx_analyses_status ON analyses(status);
CREATE INDEX IF NOT EXISTS idx_analyses_created_at ON analyses(created_at);
`

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	if s.closeFn != nil {
		s.closeFn()
	}
	return nil
}

func (s *PostgresStore) SaveAnalysis(ctx context.Context, r *model.BusinessHealthResult) error {
	data, err := json.Marshal(r)
	if err != nil {
		return eris.Wrap(err, "postgres: marshal analysis")
	}
	savedAt := s.now().UnixNano()

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return eris.Wrap(err, "postgres: begin save")
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	if _, err := tx.Exec(ctx,
		`INSERT INTO current_analysis (slot, result, updated_at) VALUES (1, $1, $2)
		 ON CONFLICT (slot) DO UPDATE SET result = EXCLUDED.result, updated_at = EXCLUDED.updated_at`,
		data, savedAt,
	); err != nil {
		return eris.Wrap(err, "postgres: upsert current analysis")
	}

	if _, err := tx.Exec(ctx,
		`INSERT INTO analyses (id, status, total_score, percentage, annual_revenue_loss, result, created_at, saved_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 ON CONFLICT (id) DO UPDATE SET status = EXCLUDED.status, total_score = EXCLUDED.total_score,
		   percentage = EXCLUDED.percentage, annual_revenue_loss = EXCLUDED.annual_revenue_loss,
		   result = EXCLUDED.result, created_at = EXCLUDED.created_at, saved_at = EXCLUDED.saved_at`,
		r.ID, string(r.Status), r.TotalScore, r.Percentage, r.AnnualRevenueLoss, data, r.Timestamp, savedAt,
	); err != nil {
		return eris.Wrapf(err, "postgres: insert history %s", r.ID)
	}

	tag, err := tx.Exec(ctx,
		`DELETE FROM analyses WHERE id NOT IN (
			SELECT id FROM analyses ORDER BY saved_at DESC, id DESC LIMIT $1
		)`,
		s.opts.historyLimit,
	)
	if err != nil {
		return eris.Wrap(err, "postgres: trim history")
	}

	if err := tx.Commit(ctx); err != nil {
		return eris.Wrap(err, "postgres: commit save")
	}

	if n := tag.RowsAffected(); n > 0 {
		zap.L().Debug("postgres: trimmed history", zap.Int64("removed", n), zap.Int("limit", s.opts.historyLimit))
	}
	return nil
}

func (s *PostgresStore) CurrentAnalysis(ctx context.Context) (*model.BusinessHealthResult, error) {
	var data []byte
	err := s.pool.QueryRow(ctx, `SELECT result FROM current_analysis WHERE slot = 1`).Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrap(err, "postgres: get current analysis")
	}
	return decodeResult(data)
}

func (s *PostgresStore) ClearCurrent(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM current_analysis`)
	return eris.Wrap(err, "postgres: clear current analysis")
}

func (s *PostgresStore) GetAnalysis(ctx context.Context, id string) (*model.BusinessHealthResult, error) {
	var data []byte
	err := s.pool.QueryRow(ctx, `SELECT result FROM analyses WHERE id = $1`, id).Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, eris.Wrapf(ErrNotFound, "postgres: get analysis %s", id)
	}
	if err != nil {
		return nil, eris.Wrapf(err, "postgres: get analysis %s", id)
	}
	return decodeResult(data)
}

func (s *PostgresStore) ListHistory(ctx context.Context, filter HistoryFilter) ([]model.BusinessHealthResult, error) {
	var (
		where []string
		args  []any
	)
	if filter.Status != "" {
		args = append(args, string(filter.Status))
		where = append(where, fmt.Sprintf("status = $%d", len(args)))
	}

	q := `SELECT result FROM analyses`
	if len(where) > 0 {
		q += " WHERE " + strings.Join(where, " AND ")
	}
	q += " ORDER BY saved_at DESC, id DESC"
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		q += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		q += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := s.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list history")
	}
	defer rows.Close()

	var out []model.BusinessHealthResult
	for rows.Next() {
		var data []byte
		if err := rows.Scan(&data); err != nil {
			return nil, eris.Wrap(err, "postgres: scan history")
		}
		r, err := decodeResult(data)
		if err != nil {
			return nil, err
		}
		out = append(out, *r)
	}
	return out, eris.Wrap(rows.Err(), "postgres: iterate history")
}

func (s *PostgresStore) DeleteAnalysis(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM analyses WHERE id = $1`, id)
	if err != nil {
		return eris.Wrapf(err, "postgres: delete analysis %s", id)
	}
	if tag.RowsAffected() == 0 {
		return eris.Wrapf(ErrNotFound, "analysis %s", id)
	}
	return nil
}

func (s *PostgresStore) ClearHistory(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM analyses`)
	return eris.Wrap(err, "postgres: clear history")
}

func (s *PostgresStore) LoadSettings(ctx context.Context) (model.AppSettings, error) {
	var data []byte
	err := s.pool.QueryRow(ctx, `SELECT data FROM settings WHERE slot = 1`).Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.DefaultSettings(), nil
	}
	if err != nil {
		return model.AppSettings{}, eris.Wrap(err, "postgres: load settings")
	}
	return decodeSettings(data)
}

func (s *PostgresStore) SaveSettings(ctx context.Context, settings model.AppSettings) error {
	data, err := json.Marshal(settings)
	if err != nil {
		return eris.Wrap(err, "postgres: marshal settings")
	}
	_, err = s.pool.Exec(ctx,
		`INSERT INTO settings (slot, data, updated_at) VALUES (1, $1, $2)
		 ON CONFLICT (slot) DO UPDATE SET data = EXCLUDED.data, updated_at = EXCLUDED.updated_at`,
		data, s.now().UnixNano(),
	)
	return eris.Wrap(err, "postgres: save settings")
}

func (s *PostgresStore) ResetSettings(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM settings`)
	return eris.Wrap(err, "postgres: reset settings")
}

func (s *PostgresStore) ClearAll(ctx context.Context) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return eris.Wrap(err, "postgres: begin clear")
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	if _, err := tx.Exec(ctx, `TRUNCATE current_analysis, analyses, settings`); err != nil {
		return eris.Wrap(err, "postgres: truncate")
	}
	return eris.Wrap(tx.Commit(ctx), "postgres: commit clear")
}
