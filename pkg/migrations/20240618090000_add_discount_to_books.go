package migrations

import (
	"context"

	"github.com/pkg/errors"
	"github.com/uptrace/bun"
)

func init() {
	up := func(_ context.Context, db *bun.DB) error {
		_, err := db.Exec(`ALTER TABLE books ADD COLUMN discount DECIMAL(7,2) NOT NULL DEFAULT 0`)
		return errors.WithStack(err)
	}

	down := func(_ context.Context, db *bun.DB) error {
		_, err := db.Exec(`ALTER TABLE books DROP COLUMN discount`)
		return errors.WithStack(err)
	}

	Migrations.MustRegister(up, down)
}
