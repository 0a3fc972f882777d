package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"slices"

	flag "github.com/spf13/pflag"
	"go.uber.org/automaxprocs/maxprocs"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	// Container-aware GOMAXPROCS drives the default worker count.
	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply and the program continues safely.
	undo, _ := maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))

	code := run(os.Args[1:], DefaultEnv())
	undo()
	os.Exit(code)
}

// commands lists the subcommands; anything else is treated as build input.
var commands = []string{"build", "preprocess", "doctor", "version", "help", "completion"}

// splitCommand returns the subcommand and its arguments. Without a known
// command name, everything is passed to build.
func splitCommand(args []string) (string, []string) {
	if len(args) > 0 && slices.Contains(commands, args[0]) {
		return args[0], args[1:]
	}
	if len(args) > 0 && (args[0] == "-h" || args[0] == "--help") {
		return "help", args[1:]
	}
	return "build", args
}

// run dispatches a command and returns the process exit code.
func run(args []string, env *Environment) int {
	ctx, stop := notifyContext(context.Background())
	defer stop()

	cmd, rest := splitCommand(args)

	var err error
	switch cmd {
	case "build":
		err = runBuild(ctx, rest, env, true)
	case "preprocess":
		err = runBuild(ctx, rest, env, false)
	case "doctor":
		return runDoctorCmd(ctx, rest, env)
	case "version":
		fmt.Fprintf(env.Stdout, "md2deck %s\n", Version)
		return ExitSuccess
	case "help":
		runHelp(rest, env)
		return ExitSuccess
	case "completion":
		err = runCompletion(rest, env)
	}

	if errors.Is(err, flag.ErrHelp) {
		return ExitSuccess
	}
	if err != nil {
		fmt.Fprintf(env.Stderr, "error: %v%s\n", err, hintFor(err))
		return exitCodeFor(err)
	}
	return ExitSuccess
}
