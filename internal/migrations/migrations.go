// Package migrations owns the versioned schema and data migrations. They are
// registered as goose Go migrations so data fixes can reuse the models.
package migrations

import (
	"context"
	"fmt"
	"time"

	"github.com/pressly/goose/v3"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/veioenza/seqr/internal/metrics"
)

const (
	VersionBaseline            int64 = 1
	VersionRepairCaseReview    int64 = 2
	VersionConstrainCaseReview int64 = 3
)

const caseReviewStatusConstraint = "individuals_case_review_status_check"

// Dialect maps a configured database driver onto a goose dialect.
func Dialect(driver string) (goose.Dialect, error) {
	switch driver {
	case "postgres", "":
		return goose.DialectPostgres, nil
	case "mysql":
		return goose.DialectMySQL, nil
	case "sqlite", "sqlite3":
		return goose.DialectSQLite3, nil
	default:
		return "", fmt.Errorf("no migration dialect for driver %q", driver)
	}
}

// Status describes one known migration and whether it has been applied.
type Status struct {
	Version   int64
	Applied   bool
	AppliedAt time.Time
}

type Migrator struct {
	provider *goose.Provider
	log      *zap.Logger
}

func New(db *gorm.DB, driver string, log *zap.Logger, m *metrics.Metrics) (*Migrator, error) {
	dialect, err := Dialect(driver)
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	repair := &caseReviewRepair{log: log, repaired: m.CaseReviewRepaired}
	constrainUp, constrainDown := constrainCaseReviewStatus(dialect, log)

	provider, err := goose.NewProvider(dialect, sqlDB, nil,
		goose.WithDisableGlobalRegistry(true),
		goose.WithGoMigrations(
			goose.NewGoMigration(VersionBaseline,
				&goose.GoFunc{RunDB: baseline(db), Mode: goose.TransactionDisabled},
				&goose.GoFunc{RunDB: dropBaseline(db), Mode: goose.TransactionDisabled},
			),
			goose.NewGoMigration(VersionRepairCaseReview,
				&goose.GoFunc{RunTx: repair.up, Mode: goose.TransactionEnabled},
				&goose.GoFunc{Mode: goose.TransactionEnabled},
			),
			goose.NewGoMigration(VersionConstrainCaseReview, constrainUp, constrainDown),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to build migration provider: %w", err)
	}

	return &Migrator{provider: provider, log: log}, nil
}

func (m *Migrator) Up(ctx context.Context) error {
	results, err := m.provider.Up(ctx)
	m.logResults(results)
	if err != nil {
		return fmt.Errorf("migrate up: %w", err)
	}
	return nil
}

func (m *Migrator) UpTo(ctx context.Context, version int64) error {
	results, err := m.provider.UpTo(ctx, version)
	m.logResults(results)
	if err != nil {
		return fmt.Errorf("migrate up to %d: %w", version, err)
	}
	return nil
}

func (m *Migrator) Version(ctx context.Context) (int64, error) {
	version, err := m.provider.GetDBVersion(ctx)
	if err != nil {
		return 0, fmt.Errorf("get migration version: %w", err)
	}
	return version, nil
}

func (m *Migrator) Status(ctx context.Context) ([]Status, error) {
	statuses, err := m.provider.Status(ctx)
	if err != nil {
		return nil, fmt.Errorf("get migration status: %w", err)
	}

	out := make([]Status, 0, len(statuses))
	for _, s := range statuses {
		out = append(out, Status{
			Version:   s.Source.Version,
			Applied:   s.State == goose.StateApplied,
			AppliedAt: s.AppliedAt,
		})
	}
	return out, nil
}

// Pending reports whether any known migration has not been applied yet.
func (m *Migrator) Pending(ctx context.Context) (bool, error) {
	return m.provider.HasPending(ctx)
}

func (m *Migrator) logResults(results []*goose.MigrationResult) {
	for _, r := range results {
		if r.Error != nil {
			m.log.Error("migration failed",
				zap.Int64("version", r.Source.Version),
				zap.Error(r.Error))
			continue
		}
		m.log.Info("migration applied",
			zap.Int64("version", r.Source.Version),
			zap.String("direction", r.Direction),
			zap.Duration("duration", r.Duration))
	}
}
