package board

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/fluted/departureboard/pkg/config"
	"github.com/fluted/departureboard/pkg/display"
	"github.com/fluted/departureboard/pkg/entur"
)

func RegisterCLI() *cli.Command {
	flags := []cli.Flag{
		&cli.StringFlag{
			Name:  "config",
			Value: "config/config.json",
			Usage: "path to the config file",
		},
		&cli.StringFlag{
			Name:  "display",
			Value: "png",
			Usage: "display implementation (png, terminal)",
		},
		&cli.StringFlag{
			Name:  "frame",
			Value: "board.png",
			Usage: "frame output path for the png display",
		},
	}

	return &cli.Command{
		Name:  "board",
		Usage: "Render the live departure board",
		Subcommands: []*cli.Command{
			{
				Name:  "run",
				Usage: "run the fetch & render loop until interrupted",
				Flags: flags,
				Action: func(c *cli.Context) error {
					scheduler, err := newScheduler(c)
					if err != nil {
						return err
					}

					ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
					defer stop()

					return scheduler.Run(ctx)
				},
			},
			{
				Name:  "render-once",
				Usage: "fetch once, draw a single frame and exit",
				Flags: flags,
				Action: func(c *cli.Context) error {
					scheduler, err := newScheduler(c)
					if err != nil {
						return err
					}

					return scheduler.RenderOnce(context.Background())
				},
			},
		},
	}
}

func newScheduler(c *cli.Context) (*Scheduler, error) {
	cfg := config.Load(c.String("config"))

	canvas, err := display.New(c.String("display"), c.String("frame"))
	if err != nil {
		return nil, err
	}

	return &Scheduler{
		Querier: entur.NewClient(cfg.API.BaseURL, cfg.API.ClientName),
		Layout: &Layout{
			Canvas:  canvas,
			MaxRows: cfg.Settings.NumberOfDepartures,
		},
		Stops:           cfg.TransitStops(),
		Count:           cfg.Settings.NumberOfDepartures,
		RefreshInterval: cfg.Settings.RefreshDuration(),
		Zone:            cfg.Settings.Location(),
	}, nil
}
