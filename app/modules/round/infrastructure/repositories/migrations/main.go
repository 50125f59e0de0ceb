package roundmigrations

import "github.com/uptrace/bun/migrate"

var Migrations = migrate.NewMigrations()

func init() {
	// Each MustRegister call derives its migration ID from the caller's file name.
	if err := Migrations.DiscoverCaller(); err != nil {
		panic(err)
	}
}
