// Command wxscene renders a procedural weather scene in the terminal
package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
)

var version = "dev"

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "wxscene: %v\n", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:    "wxscene",
		Usage:   "animated weather scene driven by current conditions",
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "config file (toml, yaml or json), default searches ./wxscene.* and ~/.config/wxscene",
			},
		},
		DefaultCommand: "run",
		Commands: []*cli.Command{
			runCommand(),
			renderCommand(),
			describeCommand(),
			profilesCommand(),
		},
	}
}
