// Package main is casql's entry point: a single cobra command tree rooted
// at "casql", following the same rootCmd/init()-registration idiom the
// pack's packetd CLI uses for its own subcommands.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/caslabs/casql/internal/casqlerr"
)

var rootCmd = &cobra.Command{
	Use:   "casql",
	Short: "Run one SQL query against a Postgres server and stream the result as JSON",
}

func main() {
	// With SIGPIPE ignored, a write to a closed stdout fails with EPIPE,
	// which jsonenc classifies as IoBrokenPipe, instead of killing the
	// process.
	signal.Ignore(syscall.SIGPIPE)
	if err := rootCmd.Execute(); err != nil {
		reportAndExit(err)
	}
}

// reportAndExit prints the single stderr diagnostic line spec.md §7
// requires and exits 1, unless err is classified IoBrokenPipe (suppressed:
// a successful early termination, exit 0, no error output).
func reportAndExit(err error) {
	if casqlerr.KindOf(err) == casqlerr.IoBrokenPipe {
		os.Exit(0)
	}
	fmt.Fprintln(os.Stderr, err.Error())
	os.Exit(1)
}
