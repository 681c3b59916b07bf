package migrations

import (
	"context"

	"github.com/uptrace/bun"

	"eventhub/internal/models"
)

// Run creates the users and events tables plus the email lookup index.
// Safe to call on every startup.
func Run(ctx context.Context, db *bun.DB) error {
	tables := []interface{}{(*models.User)(nil), (*models.Event)(nil)}
	for _, m := range tables {
		if _, err := db.NewCreateTable().Model(m).IfNotExists().Exec(ctx); err != nil {
			return err
		}
	}

	_, err := db.ExecContext(ctx, "CREATE INDEX IF NOT EXISTS idx_users_email ON users (email)")
	return err
}
