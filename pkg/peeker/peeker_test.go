// pkg/peeker/peeker_test.go
// TEST TYPE: Integration Test
// DEPENDENCIES: Real filesystem (t.TempDir)
// PURPOSE: Test variable discovery over a template tree

package peeker_test

import (
	"path/filepath"
	"testing"

	"github.com/arthur-debert/dotweave/pkg/config"
	"github.com/arthur-debert/dotweave/pkg/errors"
	"github.com/arthur-debert/dotweave/pkg/filesystem"
	"github.com/arthur-debert/dotweave/pkg/peeker"
	"github.com/arthur-debert/dotweave/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPeeker(t *testing.T, files map[string]string) *peeker.Peeker {
	t.Helper()
	cfg := &config.Config{TemplateDir: t.TempDir()}
	testutil.WriteTree(t, cfg.TemplateDir, files)
	return peeker.New(cfg, filesystem.NewOS())
}

func TestVariablesSortedAndDeduplicated(t *testing.T) {
	p := testPeeker(t, map[string]string{
		"one.tpl": "{{.a}}",
		"two.tpl": "{{.a}} {{.b}}",
	})

	vars, errs := p.Variables()
	require.True(t, errs.IsEmpty())
	assert.Equal(t, []string{"a", "b"}, vars)
}

func TestVariablesAcrossSubdirectories(t *testing.T) {
	p := testPeeker(t, map[string]string{
		"bashrc.tpl":            "{{.hostname}} {{.username}}",
		"config/ssh/config.tpl": "{{if .work}}{{.proxy}}{{end}}",
		"config/git/config.tpl": "{{.username}} {{.email}}",
	})

	vars, errs := p.Variables()
	require.True(t, errs.IsEmpty())
	assert.Equal(t, []string{"email", "hostname", "proxy", "username", "work"}, vars)
}

func TestVariablesIgnoresStaticFiles(t *testing.T) {
	p := testPeeker(t, map[string]string{
		"vimrc":      "{{.not_counted}}",
		"bashrc.tpl": "{{.counted}}",
	})

	vars, errs := p.Variables()
	require.True(t, errs.IsEmpty())
	assert.Equal(t, []string{"counted"}, vars)
}

func TestVariablesEmptyTree(t *testing.T) {
	p := testPeeker(t, nil)

	vars, errs := p.Variables()
	require.True(t, errs.IsEmpty())
	assert.Empty(t, vars)
}

func TestVariablesCollectsParseFailures(t *testing.T) {
	p := testPeeker(t, map[string]string{
		"good.tpl":   "{{.fine}}",
		"broken.tpl": "{{.oops",
		"worse.tpl":  "{{end}}",
	})

	_, errs := p.Variables()
	require.Equal(t, 2, errs.Len())
	for _, e := range errs.Errors() {
		assert.Equal(t, errors.ErrTemplateParse, e.Code)
		assert.Equal(t, ".tpl", filepath.Ext(e.Path))
	}
}
