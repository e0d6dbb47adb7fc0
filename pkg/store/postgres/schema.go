package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/google/uuid"
	"github.com/oiime/logrusbun"
	"github.com/sirupsen/logrus"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/extra/bunotel"

	"github.com/slangscope/slangscope/internal"
	"github.com/slangscope/slangscope/pkg/models"
)

var log = internal.GetLogger()

type AnalysisSchema struct {
	bun.BaseModel `bun:"table:analysis,alias:a" yaml:"-"`

	UUID uuid.UUID `bun:",pk,type:uuid,default:gen_random_uuid()"                     yaml:"uuid"`
	// ID is used for sorting analyses created at the same time
	ID        int64                  `bun:",autoincrement"                                              yaml:"id,omitempty"`
	CreatedAt time.Time              `bun:"type:timestamptz,notnull,default:current_timestamp"          yaml:"created_at,omitempty"`
	UpdatedAt time.Time              `bun:"type:timestamptz,nullzero,default:current_timestamp"         yaml:"updated_at,omitempty"`
	Text      string                 `bun:",notnull"                                                    yaml:"text"`
	Terms     []models.SlangTerm     `bun:"type:jsonb,notnull"                                          yaml:"terms"`
	Summary   *models.SummaryResult  `bun:"type:jsonb"                                                  yaml:"summary,omitempty"`
	Status    models.AnalysisStatus  `bun:",notnull"                                                    yaml:"status"`
	Error     string                 `bun:",nullzero"                                                   yaml:"error,omitempty"`
	Metadata  map[string]interface{} `bun:"type:jsonb,nullzero,json_use_number"                         yaml:"metadata,omitempty"`
}

var _ bun.BeforeAppendModelHook = (*AnalysisSchema)(nil)

func (s *AnalysisSchema) BeforeAppendModel(_ context.Context, query bun.Query) error {
	if _, ok := query.(*bun.UpdateQuery); ok {
		s.UpdatedAt = time.Now()
	}
	return nil
}

// BeforeCreateTable is a marker method to ensure uniform interface across all table models - used in table creation iterator
func (s *AnalysisSchema) BeforeCreateTable(
	_ context.Context,
	_ *bun.CreateTableQuery,
) error {
	return nil
}

var tableList = []bun.BeforeCreateTableHook{
	&AnalysisSchema{},
}

// CreateSchema creates the db schema if it does not exist.
func CreateSchema(ctx context.Context, db *bun.DB) error {
	for _, schema := range tableList {
		_, err := db.NewCreateTable().
			Model(schema).
			IfNotExists().
			WithForeignKeys().
			Exec(ctx)
		if err != nil {
			// bun still trying to create indexes despite IfNotExists flag
			if strings.Contains(err.Error(), "already exists") {
				continue
			}
			return fmt.Errorf("error creating table for schema %T: %w", schema, err)
		}
	}

	_, err := db.NewCreateIndex().
		Model((*AnalysisSchema)(nil)).
		Index("analysis_created_at_idx").
		Column("created_at").
		IfNotExists().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("error creating analysis_created_at_idx: %w", err)
	}

	return nil
}

// minServerVersion is the first release with a built-in gen_random_uuid().
const minServerVersion = "13.0.0"

// checkServerVersion returns an error if the server is older than minServerVersion.
func checkServerVersion(ctx context.Context, db *bun.DB) error {
	var version string
	if err := db.QueryRowContext(ctx, "SHOW server_version").Scan(&version); err != nil {
		return fmt.Errorf("error reading server version: %w", err)
	}

	return compareServerVersion(version)
}

func compareServerVersion(version string) error {
	requiredVersion, err := semver.NewVersion(minServerVersion)
	if err != nil {
		return fmt.Errorf("error parsing required server version: %w", err)
	}

	// server_version may carry a distribution suffix, e.g. "15.4 (Debian 15.4-1.pgdg120+1)"
	if i := strings.IndexByte(version, ' '); i > 0 {
		version = version[:i]
	}

	thisVersion, err := semver.NewVersion(version)
	if err != nil {
		return fmt.Errorf("error parsing server version %q: %w", version, err)
	}

	if requiredVersion.GreaterThan(thisVersion) {
		return fmt.Errorf("postgres %s is not supported, %s or later is required", version, minServerVersion)
	}

	log.Debugf("postgres server version %s", version)

	return nil
}

// NewPostgresConn creates a new bun.DB connection to a postgres database using the provided DSN.
// The connection is configured to pool connections based on the number of PROCs available.
func NewPostgresConn(dsn string) *bun.DB {
	maxOpenConns := 4 * runtime.GOMAXPROCS(0)

	sqldb := sql.OpenDB(
		pgdriver.NewConnector(
			pgdriver.WithDSN(dsn),
			pgdriver.WithReadTimeout(30*time.Second),
		),
	)
	sqldb.SetMaxOpenConns(maxOpenConns)
	sqldb.SetMaxIdleConns(maxOpenConns)

	db := bun.NewDB(sqldb, pgdialect.New())
	db.AddQueryHook(bunotel.NewQueryHook(bunotel.WithDBName("slangscope")))

	return db
}

// EnableDebugLogging logs every query at debug level and slow queries as warnings.
func EnableDebugLogging(db *bun.DB, log logrus.FieldLogger) {
	db.AddQueryHook(logrusbun.NewQueryHook(logrusbun.QueryHookOptions{
		LogSlow:         time.Second,
		Logger:          log,
		QueryLevel:      logrus.DebugLevel,
		ErrorLevel:      logrus.ErrorLevel,
		SlowLevel:       logrus.WarnLevel,
		MessageTemplate: "{{.Operation}}[{{.Duration}}]: {{.Query}}",
		ErrorTemplate:   "{{.Operation}}[{{.Duration}}]: {{.Query}}: {{.Error}}",
	}))
}
