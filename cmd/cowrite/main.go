package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/cowrite/cowrite/internal/build"
)

// command is one verb of the cowrite binary. run receives the arguments that
// follow the verb.
type command struct {
	name    string
	aliases []string
	args    string
	summary string
	run     func(out io.Writer, args []string) error
}

var errUsage = errors.New("invalid usage")

func commands() []command {
	return []command{
		{name: "serve", args: "[-c file]", summary: "run the HTTP server (default)", run: serve},
		{name: "config", args: "preview|validate|get", summary: "inspect the resolved configuration", run: runConfig},
		{name: "version", aliases: []string{"--version", "-v"}, summary: "print the release version", run: func(out io.Writer, _ []string) error {
			_, err := fmt.Fprintln(out, build.Version)
			return err
		}},
		{name: "build-info", summary: "print version, commit and toolchain", run: func(out io.Writer, _ []string) error {
			_, err := fmt.Fprintln(out, build.GetBuildInfo())
			return err
		}},
		{name: "help", aliases: []string{"--help", "-h"}, summary: "show this text", run: func(out io.Writer, _ []string) error {
			printUsage(out)
			return nil
		}},
	}
}

func lookup(name string) (command, bool) {
	for _, cmd := range commands() {
		if cmd.name == name {
			return cmd, true
		}

		for _, alias := range cmd.aliases {
			if alias == name {
				return cmd, true
			}
		}
	}

	return command{}, false
}

func printUsage(out io.Writer) {
	fmt.Fprintln(out, "cowrite serves comments, knowledge bases and organizations over HTTP.")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Commands:")

	for _, cmd := range commands() {
		fmt.Fprintf(out, "  %-32s %s\n", strings.TrimSpace(cmd.name+" "+cmd.args), cmd.summary)
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Config commands accept -c/--config to read a specific file instead of")
	fmt.Fprintln(out, "searching ., ./conf and /etc/cowrite. Preview takes -f/--format yml|json.")
}

func main() {
	args := os.Args[1:]
	cmd, _ := lookup("serve")

	if len(args) > 0 {
		c, ok := lookup(args[0])

		switch {
		case ok:
			cmd, args = c, args[1:]
		case !strings.HasPrefix(args[0], "-"):
			fmt.Fprintf(os.Stderr, "cowrite: unknown command %q\n\n", args[0])
			printUsage(os.Stderr)
			os.Exit(2)
		}
	}

	if err := cmd.run(os.Stdout, args); err != nil {
		fmt.Fprintf(os.Stderr, "cowrite %s: %v\n", cmd.name, err)

		if errors.Is(err, errUsage) {
			os.Exit(2)
		}

		os.Exit(1)
	}
}
