package config

import (
	"github.com/kr/pretty"
	"github.com/urfave/cli/v2"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Inspect the departure board configuration",
		Subcommands: []*cli.Command{
			{
				Name:  "inspect",
				Usage: "print the resolved configuration, defaults applied",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "config",
						Value: "config/config.json",
						Usage: "path to the config file",
					},
				},
				Action: func(c *cli.Context) error {
					_, err := pretty.Println(Load(c.String("config")))
					return err
				},
			},
		},
	}
}
