package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/etnz/rebalance/cmd"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

func main() {
	// Shell completion: a no-op unless invoked by the completion hook.
	completion().Complete("rebal")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))

	for _, c := range cmd.Commands {
		commander.Register(c, "")
	}
	commander.Register(commander.HelpCommand(), "help")
	commander.Register(commander.FlagsCommand(), "help")
	commander.Register(commander.CommandsCommand(), "help")

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}

func completion() *complete.Command {
	files := predict.Files("*")
	inputs := map[string]complete.Predictor{
		"s": files,
		"p": files,
		"j": files,
	}
	plan := map[string]complete.Predictor{
		"v":         predict.Nothing,
		"r":         predict.Set{"nearest", "up", "down"},
		"tolerance": predict.Nothing,
	}
	for k, v := range inputs {
		plan[k] = v
	}
	return &complete.Command{
		Sub: map[string]*complete.Command{
			"plan":  {Flags: plan},
			"check": {Flags: inputs},
			"topic": {},
		},
	}
}
