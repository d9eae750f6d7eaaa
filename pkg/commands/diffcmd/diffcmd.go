// Package diffcmd implements the diff command. The build phase runs
// for real; the comparison against the currently linked tree is not
// implemented.
package diffcmd

import (
	"github.com/arthur-debert/dotweave/pkg/builder"
	"github.com/arthur-debert/dotweave/pkg/config"
	"github.com/arthur-debert/dotweave/pkg/env"
	"github.com/arthur-debert/dotweave/pkg/errors"
	"github.com/arthur-debert/dotweave/pkg/filesystem"
	"github.com/arthur-debert/dotweave/pkg/logging"
)

// Options holds options for the diff command
type Options struct {
	Config *config.Config
	FS     filesystem.FS
}

// Diff builds the tree, then reports that diffing is not implemented.
func Diff(opts Options) error {
	logger := logging.GetLogger("commands.diff")

	bindings, envErr := env.NewBuilder(opts.FS, opts.Config.VariablesPath, opts.Config.Flags).Build()
	if envErr != nil {
		return errors.NewList(envErr)
	}

	logger.Info().Msg("building tree")
	if errs := builder.New(opts.Config, opts.FS, bindings).Build(); !errs.IsEmpty() {
		return errs
	}

	logger.Info().Msg("checking differences between current state and dotfiles")
	return errors.New(errors.ErrNotImplemented, opts.Config.LinkDir, "diff is not implemented")
}
