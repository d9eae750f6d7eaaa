// Package builder materializes the build tree from the template tree:
// template files are rendered against the binding set, everything else
// is copied verbatim.
package builder

import (
	stderrors "errors"
	"io/fs"
	"strings"

	"github.com/arthur-debert/dotweave/pkg/config"
	"github.com/arthur-debert/dotweave/pkg/env"
	"github.com/arthur-debert/dotweave/pkg/errors"
	"github.com/arthur-debert/dotweave/pkg/filesystem"
	"github.com/arthur-debert/dotweave/pkg/logging"
	"github.com/arthur-debert/dotweave/pkg/template"
	"github.com/arthur-debert/dotweave/pkg/walker"
	"github.com/rs/zerolog"
)

// Builder walks the template tree and writes the build tree
type Builder struct {
	cfg      *config.Config
	fs       filesystem.FS
	bindings map[string]interface{}
	logger   zerolog.Logger
}

// New creates a Builder rendering against the given binding set
func New(cfg *config.Config, fsys filesystem.FS, e env.Env) *Builder {
	return &Builder{
		cfg:      cfg,
		fs:       fsys,
		bindings: e.Bindings(),
		logger:   logging.GetLogger("builder"),
	}
}

// Build traverses the template tree and mirrors it into the build
// tree. Individual failures never stop the traversal; the returned
// list holds every failure with its originating path, and is nil when
// the whole tree built cleanly.
func (b *Builder) Build() *errors.List {
	w := &walker.Walker[struct{}]{
		FS:         b.fs,
		SourceRoot: b.cfg.TemplateDir,
		EnterDir:   b.enterDir,
		VisitFile:  b.visitFile,
		Logger:     &b.logger,
	}

	_, errs := w.Walk()
	return errs
}

// enterDir creates the mirror directory in the build tree. An already
// existing directory is fine: re-running the builder against a
// populated build tree is supported, and concurrent tasks may race to
// create a shared parent.
func (b *Builder) enterDir(rel string) *errors.Error {
	buildPath := b.cfg.BuildPath(rel)
	if err := b.fs.Mkdir(buildPath, 0755); err != nil && !stderrors.Is(err, fs.ErrExist) {
		return errors.Wrap(err, errors.ErrDirCreate, buildPath)
	}
	return nil
}

func (b *Builder) visitFile(rel string) (struct{}, *errors.Error) {
	if strings.HasSuffix(rel, template.Extension) {
		return struct{}{}, b.renderFile(rel)
	}
	return struct{}{}, b.copyFile(rel)
}

// renderFile renders one template file into the build tree, stripping
// the template suffix and carrying over the source permission bits.
// Read, parse and render failures are located at the template path;
// write and chmod failures at the destination path.
func (b *Builder) renderFile(rel string) *errors.Error {
	templatePath := b.cfg.TemplatePath(rel)
	buildPath := b.cfg.BuildPath(strings.TrimSuffix(rel, template.Extension))

	b.logger.Debug().Str("path", templatePath).Msg("rendering")

	data, err := b.fs.ReadFile(templatePath)
	if err != nil {
		return errors.Wrap(err, errors.ErrFileRead, templatePath)
	}

	info, err := b.fs.Stat(templatePath)
	if err != nil {
		return errors.Wrap(err, errors.ErrFileStat, templatePath)
	}

	tmpl, err := template.Parse(rel, string(data))
	if err != nil {
		return errors.Wrap(err, errors.ErrTemplateParse, templatePath)
	}

	rendered, err := tmpl.Render(b.bindings)
	if err != nil {
		return errors.Wrap(err, errors.ErrTemplateRender, templatePath)
	}

	perm := info.Mode().Perm()
	if err := b.fs.WriteFile(buildPath, rendered, perm); err != nil {
		return errors.Wrap(err, errors.ErrFileWrite, buildPath)
	}

	// WriteFile only applies perm on creation; an existing file from a
	// previous run keeps its old bits unless corrected.
	if err := b.fs.Chmod(buildPath, perm); err != nil {
		return errors.Wrap(err, errors.ErrFileWrite, buildPath)
	}

	return nil
}

// copyFile byte-copies one static file into the build tree, keeping
// the source permission bits.
func (b *Builder) copyFile(rel string) *errors.Error {
	templatePath := b.cfg.TemplatePath(rel)
	buildPath := b.cfg.BuildPath(rel)

	b.logger.Debug().Str("from", templatePath).Str("to", buildPath).Msg("copying")

	data, err := b.fs.ReadFile(templatePath)
	if err != nil {
		return errors.Wrap(err, errors.ErrFileCopy, templatePath)
	}

	info, err := b.fs.Stat(templatePath)
	if err != nil {
		return errors.Wrap(err, errors.ErrFileCopy, templatePath)
	}

	perm := info.Mode().Perm()
	if err := b.fs.WriteFile(buildPath, data, perm); err != nil {
		return errors.Wrap(err, errors.ErrFileCopy, templatePath)
	}
	if err := b.fs.Chmod(buildPath, perm); err != nil {
		return errors.Wrap(err, errors.ErrFileCopy, templatePath)
	}

	return nil
}
