// pkg/commands/sync/sync_test.go
// TEST TYPE: Integration Test
// DEPENDENCIES: Real filesystem (t.TempDir, symlinks)
// PURPOSE: End-to-end sync: template tree -> build tree -> link tree

package sync_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/dotweave/pkg/commands/sync"
	"github.com/arthur-debert/dotweave/pkg/config"
	"github.com/arthur-debert/dotweave/pkg/env"
	"github.com/arthur-debert/dotweave/pkg/errors"
	"github.com/arthur-debert/dotweave/pkg/filesystem"
	"github.com/arthur-debert/dotweave/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	base := t.TempDir()
	return &config.Config{
		TemplateDir:   filepath.Join(base, "tree"),
		BuildDir:      filepath.Join(base, "build"),
		LinkDir:       filepath.Join(base, "home"),
		VariablesPath: filepath.Join(base, "variables.toml"),
	}
}

func TestSyncEndToEnd(t *testing.T) {
	cfg := testConfig(t)
	testutil.WriteTree(t, cfg.TemplateDir, map[string]string{
		"bashrc.tpl":        "export HOST={{.hostname}}\n",
		"vimrc":             "set number\n",
		"config/git/config": "[core]\n",
	})

	err := sync.Sync(sync.Options{
		Config: cfg,
		FS:     filesystem.NewOS(),
		Env:    env.Env{"hostname": env.String("box")},
	})
	require.NoError(t, err)

	// link tree mirrors the build tree, templates rendered
	got, readErr := os.ReadFile(filepath.Join(cfg.LinkDir, "bashrc"))
	require.NoError(t, readErr)
	assert.Equal(t, "export HOST=box\n", string(got))

	assert.Equal(t, []string{
		"bashrc",
		"config/git/config",
		"vimrc",
	}, testutil.TreePaths(t, cfg.LinkDir))

	info, lstatErr := os.Lstat(filepath.Join(cfg.LinkDir, "vimrc"))
	require.NoError(t, lstatErr)
	assert.NotZero(t, info.Mode()&os.ModeSymlink)
}

func TestSyncBuildsEnvFromVariablesFile(t *testing.T) {
	cfg := testConfig(t)
	cfg.Flags = []string{"work"}
	testutil.WriteTree(t, cfg.TemplateDir, map[string]string{
		"rc.tpl": "editor={{.editor}}{{if .work}} mode=work{{end}}\n",
	})
	require.NoError(t, os.WriteFile(cfg.VariablesPath, []byte("editor = \"vim\"\nwork = false\n"), 0644))

	err := sync.Sync(sync.Options{Config: cfg, FS: filesystem.NewOS()})
	require.NoError(t, err)

	got, readErr := os.ReadFile(filepath.Join(cfg.LinkDir, "rc"))
	require.NoError(t, readErr)
	assert.Equal(t, "editor=vim mode=work\n", string(got))
}

func TestSyncBuildFailureLeavesPartialWork(t *testing.T) {
	cfg := testConfig(t)
	testutil.WriteTree(t, cfg.TemplateDir, map[string]string{
		"good.txt":   "fine\n",
		"broken.tpl": "{{.unterminated",
	})

	err := sync.Sync(sync.Options{
		Config: cfg,
		FS:     filesystem.NewOS(),
		Env:    env.Env{},
	})
	require.Error(t, err)

	var list *errors.List
	require.ErrorAs(t, err, &list)
	assert.Equal(t, 1, list.Len())

	// the healthy file was built anyway, and nothing was rolled back
	assert.FileExists(t, filepath.Join(cfg.BuildDir, "good.txt"))

	// linking never ran
	assert.NoDirExists(t, cfg.LinkDir)
}

func TestSyncVariablesTypeErrorIsFatal(t *testing.T) {
	cfg := testConfig(t)
	testutil.WriteTree(t, cfg.TemplateDir, map[string]string{"f": "x\n"})
	require.NoError(t, os.WriteFile(cfg.VariablesPath, []byte("n = 42\n"), 0644))

	err := sync.Sync(sync.Options{Config: cfg, FS: filesystem.NewOS()})
	require.Error(t, err)

	var list *errors.List
	require.ErrorAs(t, err, &list)
	require.Equal(t, 1, list.Len())
	assert.Equal(t, errors.ErrVariableType, list.Errors()[0].Code)
}
