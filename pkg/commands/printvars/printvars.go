// Package printvars implements discovery mode: print every variable
// name the template tree references, one per line.
package printvars

import (
	"fmt"
	"io"

	"github.com/arthur-debert/dotweave/pkg/config"
	"github.com/arthur-debert/dotweave/pkg/filesystem"
	"github.com/arthur-debert/dotweave/pkg/logging"
	"github.com/arthur-debert/dotweave/pkg/peeker"
)

// Options holds options for the print command
type Options struct {
	Config *config.Config
	FS     filesystem.FS
	Out    io.Writer
}

// PrintVariables scans the template tree and writes the discovered
// variable names, sorted and deduplicated, to opts.Out.
func PrintVariables(opts Options) error {
	logger := logging.GetLogger("commands.print")
	logger.Info().Msg("scanning tree")

	vars, errs := peeker.New(opts.Config, opts.FS).Variables()
	if !errs.IsEmpty() {
		return errs
	}

	for _, name := range vars {
		fmt.Fprintln(opts.Out, name)
	}
	return nil
}
