// Package linker exposes the build tree in the link tree: one symlink
// per build-tree file, with existing links replaced.
package linker

import (
	stderrors "errors"
	"io/fs"

	"github.com/arthur-debert/dotweave/pkg/config"
	"github.com/arthur-debert/dotweave/pkg/errors"
	"github.com/arthur-debert/dotweave/pkg/filesystem"
	"github.com/arthur-debert/dotweave/pkg/logging"
	"github.com/arthur-debert/dotweave/pkg/walker"
	"github.com/rs/zerolog"
)

// Linker walks the build tree and creates symlinks in the link tree
type Linker struct {
	cfg    *config.Config
	fs     filesystem.FS
	logger zerolog.Logger
}

// New creates a Linker
func New(cfg *config.Config, fsys filesystem.FS) *Linker {
	return &Linker{
		cfg:    cfg,
		fs:     fsys,
		logger: logging.GetLogger("linker"),
	}
}

// Link traverses the build tree and mirrors it into the link tree as
// symlinks. Existing links are replaced; individual failures never
// stop the traversal.
func (l *Linker) Link() *errors.List {
	w := &walker.Walker[struct{}]{
		FS:         l.fs,
		SourceRoot: l.cfg.BuildDir,
		EnterDir:   l.enterDir,
		VisitFile:  l.visitFile,
		Logger:     &l.logger,
	}

	_, errs := w.Walk()
	return errs
}

func (l *Linker) enterDir(rel string) *errors.Error {
	linkPath := l.cfg.LinkPath(rel)
	if err := l.fs.Mkdir(linkPath, 0755); err != nil && !stderrors.Is(err, fs.ErrExist) {
		return errors.Wrap(err, errors.ErrDirCreate, linkPath)
	}
	return nil
}

// visitFile replaces whatever sits at the link path with a symlink to
// the build-tree file.
func (l *Linker) visitFile(rel string) (struct{}, *errors.Error) {
	buildPath := l.cfg.BuildPath(rel)
	linkPath := l.cfg.LinkPath(rel)

	switch err := l.fs.Remove(linkPath); {
	case err == nil:
		l.logger.Debug().Str("path", linkPath).Msg("removed existing file")
	case stderrors.Is(err, fs.ErrNotExist):
	default:
		return struct{}{}, errors.Wrap(err, errors.ErrFileRemove, linkPath)
	}

	target := Target(buildPath, linkPath)
	l.logger.Debug().Str("link", linkPath).Str("target", target).Msg("linking")

	if err := l.fs.Symlink(target, linkPath); err != nil {
		return struct{}{}, errors.Wrap(err, errors.ErrSymlink, linkPath)
	}

	return struct{}{}, nil
}
