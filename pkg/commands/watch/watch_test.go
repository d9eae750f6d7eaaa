// pkg/commands/watch/watch_test.go
// TEST TYPE: Integration Test
// DEPENDENCIES: Real filesystem, fsnotify
// PURPOSE: Test that watch mode performs the initial sync and re-syncs
// after template changes

package watch_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/arthur-debert/dotweave/pkg/commands/watch"
	"github.com/arthur-debert/dotweave/pkg/config"
	"github.com/arthur-debert/dotweave/pkg/filesystem"
	"github.com/arthur-debert/dotweave/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func waitForContent(t *testing.T, path, want string) bool {
	t.Helper()
	deadline := time.Now().Add(10 * time.Second)
	for time.Now().Before(deadline) {
		if data, err := os.ReadFile(path); err == nil && string(data) == want {
			return true
		}
		time.Sleep(20 * time.Millisecond)
	}
	return false
}

func TestWatchSyncsOnChange(t *testing.T) {
	base := t.TempDir()
	cfg := &config.Config{
		TemplateDir:   filepath.Join(base, "tree"),
		BuildDir:      filepath.Join(base, "build"),
		LinkDir:       filepath.Join(base, "home"),
		VariablesPath: filepath.Join(base, "variables.toml"),
	}
	testutil.WriteTree(t, cfg.TemplateDir, map[string]string{
		"rc": "v1\n",
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- watch.Watch(ctx, watch.Options{
			Config:   cfg,
			FS:       filesystem.NewOS(),
			Debounce: 50 * time.Millisecond,
		})
	}()

	linked := filepath.Join(cfg.LinkDir, "rc")
	require.True(t, waitForContent(t, linked, "v1\n"), "initial sync")

	require.NoError(t, os.WriteFile(filepath.Join(cfg.TemplateDir, "rc"), []byte("v2\n"), 0644))
	assert.True(t, waitForContent(t, linked, "v2\n"), "re-sync after change")

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop on cancel")
	}
}
