package migrations

import (
	"context"
	"database/sql"

	"gorm.io/gorm"

	"github.com/veioenza/seqr/internal/models"
)

func baseline(db *gorm.DB) func(context.Context, *sql.DB) error {
	return func(ctx context.Context, _ *sql.DB) error {
		return db.WithContext(ctx).AutoMigrate(models.All()...)
	}
}

func dropBaseline(db *gorm.DB) func(context.Context, *sql.DB) error {
	return func(ctx context.Context, _ *sql.DB) error {
		all := models.All()
		for i := len(all) - 1; i >= 0; i-- {
			if err := db.WithContext(ctx).Migrator().DropTable(all[i]); err != nil {
				return err
			}
		}
		return nil
	}
}
