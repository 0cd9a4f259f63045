package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"club-booking/internal/audit"
	"club-booking/internal/data/migrations"
	"club-booking/internal/data/repository"
	"club-booking/internal/jobs"
	"club-booking/internal/seed"
	"club-booking/internal/usecase"
	"club-booking/pkg/database"
	"club-booking/pkg/metrics"
	"club-booking/pkg/utils"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

func main() {
	app := &cli.App{
		Name:  "clubctl",
		Usage: "operations tooling for the club booking service",
		Commands: []*cli.Command{
			newMigrateCommand(),
			newSweepCommand(),
			newSeedCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// connect loads the .env config and opens the database pool. Callers own
// closing the returned pool.
func connect() (*utils.Config, *database.DB, error) {
	config, err := utils.LoadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	db, err := database.InitDB(config.Database)
	if err != nil {
		return nil, nil, fmt.Errorf("connect database: %w", err)
	}
	return config, db, nil
}

func newMigrateCommand() *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "database migrations",
		Subcommands: []*cli.Command{
			{
				Name:  "up",
				Usage: "apply pending migrations, including the job queue schema",
				Action: func(c *cli.Context) error {
					_, db, err := connect()
					if err != nil {
						return err
					}
					defer db.Close()

					applied, err := migrations.Apply(c.Context, db)
					if err != nil {
						return err
					}
					fmt.Printf("Applied %d migration(s)\n", applied)

					if err := jobs.Migrate(c.Context, db); err != nil {
						return err
					}
					fmt.Println("Job queue schema is up to date")
					return nil
				},
			},
			{
				Name:  "status",
				Usage: "print migration status",
				Action: func(c *cli.Context) error {
					_, db, err := connect()
					if err != nil {
						return err
					}
					defer db.Close()

					applied, pending, err := migrations.Status(c.Context, db)
					if err != nil {
						return err
					}

					fmt.Printf("Applied (%d):\n", len(applied))
					for _, version := range applied {
						fmt.Printf("  %s\n", version)
					}
					fmt.Printf("Pending (%d):\n", len(pending))
					for _, version := range pending {
						fmt.Printf("  %s\n", version)
					}
					return nil
				},
			},
		},
	}
}

func newSweepCommand() *cli.Command {
	return &cli.Command{
		Name:  "sweep",
		Usage: "close pools whose auto-close date has passed",
		Action: func(c *cli.Context) error {
			config, db, err := connect()
			if err != nil {
				return err
			}
			defer db.Close()

			logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
			if err != nil {
				logger = zap.NewNop()
			}
			defer logger.Sync()

			repo := repository.NewRepository(db, logger)
			service := usecase.NewService(repo, db, config, audit.NewLogSink(logger), metrics.New(), logger)

			closed, err := service.Pool.CloseDuePools(c.Context, time.Now())
			if err != nil {
				return err
			}
			fmt.Printf("Closed %d pool(s)\n", closed)
			return nil
		},
	}
}

func newSeedCommand() *cli.Command {
	return &cli.Command{
		Name:  "seed",
		Usage: "fill the calendar with generated demo bookings",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "days",
				Value: 14,
				Usage: "days of calendar to fill, starting tomorrow",
			},
			&cli.Int64Flag{
				Name:  "seed",
				Usage: "generator seed; the current time when unset",
			},
		},
		Action: func(c *cli.Context) error {
			config, db, err := connect()
			if err != nil {
				return err
			}
			defer db.Close()

			logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
			if err != nil {
				logger = zap.NewNop()
			}
			defer logger.Sync()

			repo := repository.NewRepository(db, logger)
			service := usecase.NewService(repo, db, config, audit.NewLogSink(logger), metrics.New(), logger)

			seedValue := c.Int64("seed")
			if seedValue == 0 {
				seedValue = time.Now().UnixNano()
			}

			seeder := seed.New(service, config.Club, seedValue, logger)
			summary, err := seeder.Run(c.Context, c.Int("days"))
			if err != nil {
				return err
			}
			fmt.Printf("Seeded %d booking(s), %d pool registration(s), %d team(s), %d roll-up player(s) with seed %d\n",
				summary.Bookings, summary.Registrations, summary.Teams, summary.Players, seedValue)
			return nil
		},
	}
}
