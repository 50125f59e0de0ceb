package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Black-And-White-Club/frolf-rounds/app"
	"github.com/Black-And-White-Club/frolf-rounds/config"
	"github.com/urfave/cli/v2"
)

func main() {
	cliApp := &cli.App{
		Name:  "frolf-rounds",
		Usage: "round lifecycle API",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Value:   "config.yaml",
				Usage:   "path to the configuration file",
				EnvVars: []string{"CONFIG_PATH"},
			},
			&cli.BoolFlag{
				Name:  "migrate",
				Usage: "apply pending database migrations before serving",
			},
		},
		Action: run,
	}

	if err := cliApp.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func run(c *cli.Context) error {
	ctx, cancel := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.LoadConfig(c.String("config"))
	if err != nil {
		return err
	}

	application, err := app.NewApp(ctx, cfg, c.Bool("migrate"))
	if err != nil {
		return err
	}

	return application.Run(ctx)
}
