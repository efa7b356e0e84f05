// Command ethutil exposes the ethutil primitives on the command line:
// address derivation, checksums, hashing, signing, signer recovery and
// account encoding.
//
// Usage:
//
//	ethutil [global flags] <command> [args]
//
// Global flags:
//
//	--config      TOML config file
//	--chainid     Chain id for EIP-155 signatures and EIP-1191 checksums
//	--homestead   Reject high-s signatures when validating (default: true)
//	--verbosity   Log level 0-5 (default: 2)
//	--log.format  Log format: terminal, logfmt, json (default: terminal)
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// Build-time version info, overridable with ldflags:
//
//	go build -ldflags "-X main.version=v0.2.0 -X main.commit=abc1234"
var (
	version = "v0.1.0-dev"
	commit  = "unknown"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// usageError marks errors caused by bad flags or arguments.
type usageError struct{ error }

func (e usageError) Unwrap() error { return e.error }

// run is the actual entry point, returning an exit code: 0 on success, 1 when
// a command fails and 2 on usage errors. Accepts CLI arguments (without the
// program name) so it can be tested in isolation.
func run(args []string, stdout, stderr io.Writer) int {
	root := newRootCmd(stdout, stderr)
	root.SetArgs(args)
	if err := root.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		var ue usageError
		if errors.As(err, &ue) {
			return 2
		}
		return 1
	}
	return 0
}

// exactArgs is cobra.ExactArgs reporting a usageError.
func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.ExactArgs(n)(cmd, args); err != nil {
			return usageError{err}
		}
		return nil
	}
}

// minArgs is cobra.MinimumNArgs reporting a usageError.
func minArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.MinimumNArgs(n)(cmd, args); err != nil {
			return usageError{err}
		}
		return nil
	}
}
