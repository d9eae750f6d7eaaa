// Package walker implements the concurrent tree traversal at the core
// of dotweave.
//
// A Walker recursively descends a source tree. For each directory it
// runs a pre-action (typically "create the mirror directory at the
// destination"), lists the entries, then fans out: one goroutine per
// subdirectory and one per file, all concurrent with each other.
// Results are merged bottom-up at single-threaded join points.
//
// A failure in one file or subtree never prevents sibling work: the
// whole reachable tree is always visited and every independent failure
// is reported. The one short-circuit is a directory listing failure,
// which leaves nothing to enumerate. There is no cancellation and no
// bound on fan-out; simplicity is preferred over bounded concurrency.
package walker

import (
	"path/filepath"
	"sync"

	"github.com/arthur-debert/dotweave/pkg/errors"
	"github.com/arthur-debert/dotweave/pkg/filesystem"
	"github.com/arthur-debert/dotweave/pkg/logging"
	"github.com/rs/zerolog"
)

// Walker traverses the tree rooted at SourceRoot, applying VisitFile
// to every regular file and EnterDir to every directory before its
// entries are processed. Entries that are neither directories nor
// regular files (symlinks, sockets) are skipped.
type Walker[T any] struct {
	FS         filesystem.FS
	SourceRoot string

	// EnterDir is the directory pre-action, called with the relative
	// path before the directory's entries are processed. A returned
	// error is fatal for this subtree only. May be nil.
	EnterDir func(rel string) *errors.Error

	// VisitFile is the per-file action. The returned error is
	// recorded against the file; it never aborts siblings.
	VisitFile func(rel string) (T, *errors.Error)

	// Merge folds a file or subtree value into the accumulator. May
	// be nil for actions that produce no values.
	Merge func(acc, value T) T

	// Logger defaults to the "walker" component logger
	Logger *zerolog.Logger
}

type fileOutcome[T any] struct {
	value T
	err   *errors.Error
}

type dirOutcome[T any] struct {
	value T
	errs  *errors.List
}

// Walk traverses the whole tree and returns the merged accumulated
// value, or every failure encountered anywhere in the tree.
func (w *Walker[T]) Walk() (T, *errors.List) {
	return w.walkDir("")
}

func (w *Walker[T]) walkDir(rel string) (T, *errors.List) {
	var acc T
	sourcePath := filepath.Join(w.SourceRoot, rel)
	logger := w.logger()

	logger.Info().Str("path", sourcePath).Msg("traversing")

	if w.EnterDir != nil {
		if err := w.EnterDir(rel); err != nil {
			return acc, errors.NewList(err)
		}
	}

	entries, err := w.FS.ReadDir(sourcePath)
	if err != nil {
		return acc, errors.NewList(errors.Wrap(err, errors.ErrDirList, sourcePath))
	}

	errs := errors.NewList()
	var fileRels, dirRels []string

	for _, entry := range entries {
		info, infoErr := entry.Info()
		if infoErr != nil {
			errs.Add(errors.Wrap(infoErr, errors.ErrFileStat, filepath.Join(sourcePath, entry.Name())))
			continue
		}

		childRel := filepath.Join(rel, entry.Name())
		switch {
		case info.IsDir():
			dirRels = append(dirRels, childRel)
		case info.Mode().IsRegular():
			fileRels = append(fileRels, childRel)
		default:
			logger.Debug().Str("path", filepath.Join(sourcePath, entry.Name())).Msg("skipping special entry")
		}
	}

	// Fan out: every file and every subdirectory at this level runs
	// concurrently. Each task writes only its own slot, so the merge
	// below needs no locking.
	fileOut := make([]fileOutcome[T], len(fileRels))
	dirOut := make([]dirOutcome[T], len(dirRels))

	var wg sync.WaitGroup
	for i, childRel := range dirRels {
		wg.Add(1)
		go func(i int, childRel string) {
			defer wg.Done()
			value, subErrs := w.walkDir(childRel)
			dirOut[i] = dirOutcome[T]{value: value, errs: subErrs}
		}(i, childRel)
	}
	for i, childRel := range fileRels {
		wg.Add(1)
		go func(i int, childRel string) {
			defer wg.Done()
			value, err := w.VisitFile(childRel)
			fileOut[i] = fileOutcome[T]{value: value, err: err}
		}(i, childRel)
	}
	wg.Wait()

	for _, outcome := range fileOut {
		if outcome.err != nil {
			errs.Add(outcome.err)
			continue
		}
		acc = w.merge(acc, outcome.value)
	}
	for _, outcome := range dirOut {
		if !outcome.errs.IsEmpty() {
			errs.Merge(outcome.errs)
			continue
		}
		acc = w.merge(acc, outcome.value)
	}

	if errs.IsEmpty() {
		return acc, nil
	}
	var zero T
	return zero, errs
}

func (w *Walker[T]) merge(acc, value T) T {
	if w.Merge == nil {
		return acc
	}
	return w.Merge(acc, value)
}

func (w *Walker[T]) logger() zerolog.Logger {
	if w.Logger != nil {
		return *w.Logger
	}
	return logging.GetLogger("walker")
}
