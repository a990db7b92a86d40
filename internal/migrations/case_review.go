package migrations

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/pressly/goose/v3"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/veioenza/seqr/internal/models"
)

// statusList renders the valid codes as a quoted SQL list.
func statusList() string {
	quoted := make([]string, len(models.CaseReviewStatuses))
	for i, s := range models.CaseReviewStatuses {
		quoted[i] = "'" + string(s) + "'"
	}
	return strings.Join(quoted, ", ")
}

var (
	resetEmptyStatusSQL = fmt.Sprintf(
		"UPDATE individuals SET case_review_status = '%s' WHERE case_review_status IS NULL OR case_review_status = ''",
		models.CaseReviewInReview,
	)
	resetUnknownStatusSQL = fmt.Sprintf(
		"UPDATE individuals SET case_review_status = '%s' WHERE case_review_status NOT IN (%s)",
		models.CaseReviewUncertain, statusList(),
	)
)

type caseReviewRepair struct {
	log      *zap.Logger
	repaired prometheus.Counter
}

// up reassigns every invalid case review status. Empty values must be
// handled first: NULL never matches NOT IN.
func (r *caseReviewRepair) up(ctx context.Context, tx *sql.Tx) error {
	empty, err := execCount(ctx, tx, resetEmptyStatusSQL)
	if err != nil {
		return fmt.Errorf("reset empty case review status: %w", err)
	}

	unknown, err := execCount(ctx, tx, resetUnknownStatusSQL)
	if err != nil {
		return fmt.Errorf("reset unknown case review status: %w", err)
	}

	r.repaired.Add(float64(empty + unknown))
	r.log.Info("reset invalid case review status",
		zap.Int64("set_in_review", empty),
		zap.Int64("set_uncertain", unknown))
	return nil
}

func execCount(ctx context.Context, tx *sql.Tx, query string) (int64, error) {
	res, err := tx.ExecContext(ctx, query)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func postgresConstrainSQL() []string {
	return []string{
		"ALTER TABLE individuals ALTER COLUMN case_review_status TYPE varchar(2)",
		fmt.Sprintf("ALTER TABLE individuals ALTER COLUMN case_review_status SET DEFAULT '%s'", models.DefaultCaseReviewStatus),
		"ALTER TABLE individuals ALTER COLUMN case_review_status SET NOT NULL",
		"ALTER TABLE individuals DROP CONSTRAINT IF EXISTS " + caseReviewStatusConstraint,
		fmt.Sprintf("ALTER TABLE individuals ADD CONSTRAINT %s CHECK (case_review_status IN (%s))",
			caseReviewStatusConstraint, statusList()),
	}
}

func postgresUnconstrainSQL() []string {
	return []string{
		"ALTER TABLE individuals DROP CONSTRAINT IF EXISTS " + caseReviewStatusConstraint,
		"ALTER TABLE individuals ALTER COLUMN case_review_status DROP NOT NULL",
	}
}

func mysqlConstrainSQL() []string {
	return []string{
		fmt.Sprintf("ALTER TABLE individuals MODIFY case_review_status varchar(2) NOT NULL DEFAULT '%s'", models.DefaultCaseReviewStatus),
		fmt.Sprintf("ALTER TABLE individuals ADD CONSTRAINT %s CHECK (case_review_status IN (%s))",
			caseReviewStatusConstraint, statusList()),
	}
}

func mysqlUnconstrainSQL() []string {
	return []string{
		"ALTER TABLE individuals DROP CHECK " + caseReviewStatusConstraint,
		fmt.Sprintf("ALTER TABLE individuals MODIFY case_review_status varchar(2) NULL DEFAULT '%s'", models.DefaultCaseReviewStatus),
	}
}

// constrainCaseReviewStatus tightens the column once the data is clean.
// MySQL commits DDL implicitly, so it runs outside a transaction. SQLite
// cannot alter columns; the baseline schema already carries size and default.
func constrainCaseReviewStatus(dialect goose.Dialect, log *zap.Logger) (up, down *goose.GoFunc) {
	switch dialect {
	case goose.DialectPostgres:
		return &goose.GoFunc{RunTx: execTx(postgresConstrainSQL()), Mode: goose.TransactionEnabled},
			&goose.GoFunc{RunTx: execTx(postgresUnconstrainSQL()), Mode: goose.TransactionEnabled}
	case goose.DialectMySQL:
		return &goose.GoFunc{RunDB: execDB(mysqlConstrainSQL()), Mode: goose.TransactionDisabled},
			&goose.GoFunc{RunDB: execDB(mysqlUnconstrainSQL()), Mode: goose.TransactionDisabled}
	default:
		skip := func(ctx context.Context, _ *sql.DB) error {
			log.Info("skipping case review status constraint", zap.String("dialect", string(dialect)))
			return nil
		}
		return &goose.GoFunc{RunDB: skip, Mode: goose.TransactionDisabled},
			&goose.GoFunc{Mode: goose.TransactionDisabled}
	}
}

func execTx(statements []string) func(context.Context, *sql.Tx) error {
	return func(ctx context.Context, tx *sql.Tx) error {
		for _, stmt := range statements {
			if _, err := tx.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("%s: %w", stmt, err)
			}
		}
		return nil
	}
}

func execDB(statements []string) func(context.Context, *sql.DB) error {
	return func(ctx context.Context, db *sql.DB) error {
		for _, stmt := range statements {
			if _, err := db.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("%s: %w", stmt, err)
			}
		}
		return nil
	}
}
