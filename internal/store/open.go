package store

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/bizhealth/internal/resilience"
)

// Open creates the store for driver ("sqlite" or "postgres") and migrates it.
// Postgres connects are retried while the server reports transient errors.
func Open(ctx context.Context, driver, dsn string, opts ...Option) (Store, error) {
	var (
		st  Store
		err error
	)
	switch driver {
	case "sqlite":
		if dsn == "" {
			dsn = "bizhealth.db"
		}
		st, err = NewSQLite(dsn, opts...)
	case "postgres":
		retry := resilience.DefaultRetryConfig()
		retry.OnRetry = resilience.RetryLogger("store", "postgres connect")
		st, err = resilience.DoVal(ctx, retry, func(ctx context.Context) (Store, error) {
			return NewPostgres(ctx, dsn, nil, opts...)
		})
	default:
		return nil, eris.Errorf("store: unsupported driver %q", driver)
	}
	if err != nil {
		return nil, err
	}

	if err := st.Migrate(ctx); err != nil {
		st.Close() //nolint:errcheck
		return nil, err
	}
	zap.L().Debug("store: opened", zap.String("driver", driver))
	return st, nil
}
