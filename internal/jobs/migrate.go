package jobs

import (
	"context"
	"fmt"

	"club-booking/pkg/database"

	"github.com/riverqueue/river/riverdriver/riverpgxv5"
	"github.com/riverqueue/river/rivermigrate"
)

// Migrate brings the queue's own schema up to date. It must run before the
// first Queue.Start against a fresh database.
func Migrate(ctx context.Context, db *database.DB) error {
	migrator, err := rivermigrate.New(riverpgxv5.New(db.Pool()), nil)
	if err != nil {
		return fmt.Errorf("create river migrator: %w", err)
	}

	if _, err := migrator.Migrate(ctx, rivermigrate.DirectionUp, &rivermigrate.MigrateOpts{}); err != nil {
		return fmt.Errorf("run river migrations: %w", err)
	}
	return nil
}
