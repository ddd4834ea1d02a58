package permkit

import (
	"context"

	"github.com/fernandezvara/dbkit"
)

// Connectivity checks for the store, for readiness probes that want to know
// whether role definitions can currently be loaded or saved.

// Ping runs a minimal query against the database. Returns an error when the
// database is not reachable.
func (st *Store) Ping(ctx context.Context) error {
	var one int
	return st.db.NewSelect().Model((*struct{})(nil)).ColumnExpr("1").Limit(1).Scan(ctx, &one)
}

// IsHealthy reports whether the database is reachable.
func (st *Store) IsHealthy(ctx context.Context) bool {
	if db, ok := st.db.(*dbkit.DBKit); ok {
		return db.IsHealthy(ctx)
	}
	return st.Ping(ctx) == nil
}

// Health returns the connection status with latency and pool statistics.
// When the store runs on something other than a *dbkit.DBKit, such as a
// transaction, only reachability is reported.
func (st *Store) Health(ctx context.Context) dbkit.HealthStatus {
	if db, ok := st.db.(*dbkit.DBKit); ok {
		return db.Health(ctx)
	}
	return dbkit.HealthStatus{Healthy: st.IsHealthy(ctx)}
}
