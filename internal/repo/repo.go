package repo

import (
	"context"
	"database/sql"
	"strings"
	"time"

	_ "github.com/lib/pq"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/Jatin1628/Osdag-bridge-module/internal/catalog"
	"github.com/Jatin1628/Osdag-bridge-module/internal/metrics"
)

var ErrUnsupportedDriver = eris.New("repo: unsupported driver")

type Repository interface {
	ListAllLocations(ctx context.Context) ([]catalog.Location, error)
	CountDistricts(ctx context.Context) (int, error)
}

// SQLLocationRepository reads the location tables maintained by the data
// ingestion tooling. It never writes.
type SQLLocationRepository struct {
	db *sql.DB
}

func NewSQLLocationRepository(db *sql.DB) *SQLLocationRepository {
	return &SQLLocationRepository{db: db}
}

// Districts without wind, seismic and temperature rows drop out of the inner join.
const listLocationsQuery = `
SELECT s.name, d.name, w.wind_speed, z.seismic_zone, t.min_temp_c, t.max_temp_c
FROM locations_district d
JOIN locations_state s ON s.id = d.state_id
JOIN locations_winddata w ON w.district_id = d.id
JOIN locations_seismicdata z ON z.district_id = d.id
JOIN locations_temperaturedata t ON t.district_id = d.id
ORDER BY d.id`

func (r *SQLLocationRepository) ListAllLocations(ctx context.Context) ([]catalog.Location, error) {
	start := time.Now()
	rows, err := r.db.QueryContext(ctx, listLocationsQuery)
	if err != nil {
		return nil, eris.Wrap(err, "repo: list locations")
	}
	defer rows.Close()

	var out []catalog.Location
	for rows.Next() {
		var (
			state, district, zone string
			wind, minT, maxT      float64
		)
		if err := rows.Scan(&state, &district, &wind, &zone, &minT, &maxT); err != nil {
			return nil, eris.Wrap(err, "repo: scan location")
		}
		loc, err := catalog.Normalize(catalog.Record{
			"state": state, "district": district, "wind_speed": wind,
			"seismic_zone": zone, "min_temp": minT, "max_temp": maxT,
		})
		if err != nil {
			zap.L().Warn("repo: skipping location row",
				zap.String("state", state),
				zap.String("district", district),
				zap.Error(err),
			)
			continue
		}
		out = append(out, loc)
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "repo: iterate locations")
	}
	metrics.CatalogLoadDurationMs.WithLabelValues("sql").Observe(float64(time.Since(start).Milliseconds()))
	return out, nil
}

func (r *SQLLocationRepository) CountDistricts(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM locations_district").Scan(&n)
	if err != nil {
		return 0, eris.Wrap(err, "repo: count districts")
	}
	return n, nil
}

// Open connects to the location database. Postgres DSNs without an explicit
// sslmode get sslmode=require.
func Open(ctx context.Context, driver, dsn string) (*sql.DB, error) {
	switch driver {
	case "postgres":
		dsn = withSSLMode(dsn)
	case "sqlite":
	default:
		return nil, eris.Wrapf(ErrUnsupportedDriver, "%q", driver)
	}
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, eris.Wrap(err, "repo: open")
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, eris.Wrapf(err, "repo: ping %s", driver)
	}
	return db, nil
}

func withSSLMode(dsn string) string {
	if strings.Contains(dsn, "sslmode=") {
		return dsn
	}
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		if strings.Contains(dsn, "?") {
			return dsn + "&sslmode=require"
		}
		return dsn + "?sslmode=require"
	}
	return dsn + " sslmode=require"
}
