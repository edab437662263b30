// Command proforma projects hospitality portfolios from scenario files.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"
	"github.com/joho/godotenv"

	"hospitality_proforma/pkg/core/logger"
)

func main() {
	_ = godotenv.Load()
	logger.InitFromEnv()
	defer logger.Sync()

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	register(commander)

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}

// register adds every subcommand, grouped for the help output
func register(c *subcommands.Commander) {
	c.Register(c.HelpCommand(), "")
	c.Register(c.FlagsCommand(), "")
	c.Register(c.CommandsCommand(), "")

	c.Register(&initCmd{}, "scenario")
	c.Register(&runCmd{}, "scenario")
	c.Register(&returnsCmd{}, "scenario")
	c.Register(&reportCmd{}, "scenario")

	c.Register(&saveCmd{}, "store")
	c.Register(&showCmd{}, "store")
	c.Register(&runsCmd{}, "store")
}
