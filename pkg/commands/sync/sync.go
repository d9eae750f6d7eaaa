// Package sync implements the sync command: materialize the build
// tree from the template tree, then expose it in the link tree.
package sync

import (
	"github.com/arthur-debert/dotweave/pkg/builder"
	"github.com/arthur-debert/dotweave/pkg/config"
	"github.com/arthur-debert/dotweave/pkg/env"
	"github.com/arthur-debert/dotweave/pkg/errors"
	"github.com/arthur-debert/dotweave/pkg/filesystem"
	"github.com/arthur-debert/dotweave/pkg/linker"
	"github.com/arthur-debert/dotweave/pkg/logging"
)

// Options holds options for the sync command
type Options struct {
	Config *config.Config
	FS     filesystem.FS

	// Env overrides the binding set; when nil it is built from the
	// host collaborators and the configured variables file.
	Env env.Env
}

// Sync builds the tree and then links it. The first failing phase
// returns its aggregated errors; whatever was already written stays on
// disk (there is no rollback).
func Sync(opts Options) error {
	logger := logging.GetLogger("commands.sync")

	bindings := opts.Env
	if bindings == nil {
		var envErr *errors.Error
		bindings, envErr = env.NewBuilder(opts.FS, opts.Config.VariablesPath, opts.Config.Flags).Build()
		if envErr != nil {
			return errors.NewList(envErr)
		}
	}

	logger.Info().Msg("building tree")
	if errs := builder.New(opts.Config, opts.FS, bindings).Build(); !errs.IsEmpty() {
		return errs
	}

	logger.Info().Msg("linking tree")
	if errs := linker.New(opts.Config, opts.FS).Link(); !errs.IsEmpty() {
		return errs
	}

	return nil
}
