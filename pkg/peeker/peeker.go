// Package peeker implements discovery mode: report every variable name
// referenced by the template tree, without rendering anything or
// touching a destination tree.
package peeker

import (
	"sort"
	"strings"

	"github.com/arthur-debert/dotweave/pkg/config"
	"github.com/arthur-debert/dotweave/pkg/errors"
	"github.com/arthur-debert/dotweave/pkg/filesystem"
	"github.com/arthur-debert/dotweave/pkg/logging"
	"github.com/arthur-debert/dotweave/pkg/template"
	"github.com/arthur-debert/dotweave/pkg/walker"
	"github.com/rs/zerolog"
)

// Peeker walks the template tree and extracts variable references
type Peeker struct {
	cfg    *config.Config
	fs     filesystem.FS
	logger zerolog.Logger
}

// New creates a Peeker
func New(cfg *config.Config, fsys filesystem.FS) *Peeker {
	return &Peeker{
		cfg:    cfg,
		fs:     fsys,
		logger: logging.GetLogger("peeker"),
	}
}

// Variables returns the sorted, deduplicated names of every variable
// referenced by any template file in the tree. Non-template files
// contribute nothing. Duplicates across files are collapsed once, at
// the top level.
func (p *Peeker) Variables() ([]string, *errors.List) {
	w := &walker.Walker[[]string]{
		FS:         p.fs,
		SourceRoot: p.cfg.TemplateDir,
		VisitFile:  p.visitFile,
		Merge: func(acc, value []string) []string {
			return append(acc, value...)
		},
		Logger: &p.logger,
	}

	vars, errs := w.Walk()
	if !errs.IsEmpty() {
		return nil, errs
	}

	sort.Strings(vars)
	return dedup(vars), nil
}

func (p *Peeker) visitFile(rel string) ([]string, *errors.Error) {
	if !strings.HasSuffix(rel, template.Extension) {
		return nil, nil
	}

	templatePath := p.cfg.TemplatePath(rel)
	p.logger.Debug().Str("path", templatePath).Msg("reading")

	data, err := p.fs.ReadFile(templatePath)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrFileRead, templatePath)
	}

	tmpl, err := template.Parse(rel, string(data))
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrTemplateParse, templatePath)
	}

	return tmpl.Variables(), nil
}

func dedup(sorted []string) []string {
	out := sorted[:0]
	for i, v := range sorted {
		if i == 0 || sorted[i-1] != v {
			out = append(out, v)
		}
	}
	return out
}
