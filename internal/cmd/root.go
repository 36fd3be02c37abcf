// Package cmd wires the semantic core's pass driver to a command line.
// Source parsing is out of scope for this core (see the package doc on
// ast), so "check" takes one of a fixed set of named scenarios -- the
// literal worked examples the core's test suite also reproduces -- and
// runs it through the standard pipeline, printing diagnostics and the
// resulting argument type assignments.
package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var (
	debug      bool
	configPath string
	logger     *slog.Logger
)

var RootCmd = &cobra.Command{
	Use:   "souffle",
	Short: "Datalog semantic core: type environment, component instantiation, inference, provenance",
	Long: `souffle runs the front-end semantic core of a Datalog compiler over a
named scenario program: type environment construction, component
instantiation, constraint-based type inference, and provenance
instrumentation.

Use "souffle check <scenario>" to run one; "souffle check --list" names
the available scenarios.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupLogger()
	},
}

func init() {
	RootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	RootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML configuration file (provenance mode, RAM domain size, debug report)")
	RootCmd.AddCommand(checkCmd)
}

func setupLogger() {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// Execute runs the root command, exiting the process with status 1 on
// any returned error.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
