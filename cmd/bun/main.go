package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	roundqueue "github.com/Black-And-White-Club/frolf-rounds/app/modules/round/infrastructure/queue"
	"github.com/Black-And-White-Club/frolf-rounds/config"
	"github.com/Black-And-White-Club/frolf-rounds/internal/db/bundb"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/uptrace/bun/migrate"
	"github.com/urfave/cli/v2"
)

func main() {
	cliApp := &cli.App{
		Name: "bun",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Value: "config.yaml",
				Usage: "Path to the configuration file",
			},
		},
		Commands: []*cli.Command{
			newMultiModuleDBCommand(),
		},
	}

	if err := cliApp.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// withMigrators loads the config, opens the database and hands the ordered
// module migrators to fn.
func withMigrators(c *cli.Context, fn func(cfg *config.Config, migrators []bundb.ModuleMigrator) error) error {
	cfg, err := config.LoadConfig(c.String("config"))
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := bundb.Open(c.Context, cfg.Postgres.DSN)
	if err != nil {
		return err
	}
	defer db.Close()

	return fn(cfg, bundb.Migrators(db))
}

func findMigrator(migrators []bundb.ModuleMigrator, name string) (*migrate.Migrator, error) {
	for _, m := range migrators {
		if m.Name == name {
			return m.Migrator, nil
		}
	}
	return nil, fmt.Errorf("invalid module name: %s", name)
}

func newMultiModuleDBCommand() *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "database migrations",
		Subcommands: []*cli.Command{
			{
				Name:  "init",
				Usage: "create migration tables",
				Action: func(c *cli.Context) error {
					return withMigrators(c, func(_ *config.Config, migrators []bundb.ModuleMigrator) error {
						for _, m := range migrators {
							fmt.Printf("Initializing migrations for module: %s\n", m.Name)
							if err := m.Migrator.Init(c.Context); err != nil {
								return fmt.Errorf("module %s: %w", m.Name, err)
							}
						}
						return nil
					})
				},
			},
			{
				Name:  "migrate",
				Usage: "migrate database",
				Action: func(c *cli.Context) error {
					return withMigrators(c, func(_ *config.Config, migrators []bundb.ModuleMigrator) error {
						for _, m := range migrators {
							fmt.Printf("Running migrations for module: %s\n", m.Name)
							group, err := m.Migrator.Migrate(c.Context)
							if err != nil {
								return err
							}
							if group.IsZero() {
								fmt.Printf("No new migrations to run for module: %s\n", m.Name)
							} else {
								fmt.Printf("Migrated module: %s to %s\n", m.Name, group)
							}
						}
						return nil
					})
				},
			},
			{
				Name:  "rollback",
				Usage: "rollback the last migration group",
				Action: func(c *cli.Context) error {
					return withMigrators(c, func(_ *config.Config, migrators []bundb.ModuleMigrator) error {
						for i := len(migrators) - 1; i >= 0; i-- {
							m := migrators[i]
							fmt.Printf("Rolling back migrations for module: %s\n", m.Name)
							group, err := m.Migrator.Rollback(c.Context)
							if err != nil {
								return err
							}
							if group.IsZero() {
								fmt.Printf("No groups to roll back for module: %s\n", m.Name)
							} else {
								fmt.Printf("Rolled back module: %s to %s\n", m.Name, group)
							}
						}
						return nil
					})
				},
			},
			{
				Name:      "create_go",
				Usage:     "create Go migration",
				ArgsUsage: "<module> <name...>",
				Action: func(c *cli.Context) error {
					return withMigrators(c, func(_ *config.Config, migrators []bundb.ModuleMigrator) error {
						migrator, err := findMigrator(migrators, c.Args().First())
						if err != nil {
							return err
						}
						mf, err := migrator.CreateGoMigration(c.Context, strings.Join(c.Args().Tail(), "_"))
						if err != nil {
							return err
						}
						fmt.Printf("Created migration: %s (%s)\n", mf.Name, mf.Path)
						return nil
					})
				},
			},
			{
				Name:  "status",
				Usage: "print migrations status",
				Action: func(c *cli.Context) error {
					return withMigrators(c, func(_ *config.Config, migrators []bundb.ModuleMigrator) error {
						for _, m := range migrators {
							ms, err := m.Migrator.MigrationsWithStatus(c.Context)
							if err != nil {
								return err
							}
							fmt.Printf("Migrations for module: %s\n", m.Name)
							fmt.Printf("  Applied: %s\n", ms.Applied())
							fmt.Printf("  Unapplied: %s\n", ms.Unapplied())
						}
						return nil
					})
				},
			},
			{
				Name:  "river",
				Usage: "apply River job queue migrations",
				Action: func(c *cli.Context) error {
					cfg, err := config.LoadConfig(c.String("config"))
					if err != nil {
						return fmt.Errorf("failed to load config: %w", err)
					}
					pool, err := pgxpool.New(c.Context, cfg.Postgres.DSN)
					if err != nil {
						return fmt.Errorf("failed to create pgx pool: %w", err)
					}
					defer pool.Close()

					if err := roundqueue.Migrate(c.Context, pool); err != nil {
						return err
					}
					fmt.Println("River migrations applied")
					return nil
				},
			},
		},
	}
}
