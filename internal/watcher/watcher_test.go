package watcher

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func startWatcher(t *testing.T, path string, debounce time.Duration) (*Watcher, func()) {
	t.Helper()
	w := New(path, debounce)

	ctx, cancel := context.WithCancel(context.Background())
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return w.Run(ctx) })

	// Give the inotify watch time to attach before the test writes.
	time.Sleep(100 * time.Millisecond)

	return w, func() {
		cancel()
		err := g.Wait()
		assert.ErrorIs(t, err, context.Canceled)
	}
}

func TestWatcher_SignalsOnWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	require.NoError(t, os.WriteFile(path, []byte("[]"), 0o644))

	w, stop := startWatcher(t, path, 50*time.Millisecond)
	defer stop()

	require.NoError(t, os.WriteFile(path, []byte(`[{"product_id":1}]`), 0o644))

	select {
	case <-w.Changes():
	case <-time.After(3 * time.Second):
		t.Fatal("no change signal after write")
	}
}

func TestWatcher_CoalescesBursts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	require.NoError(t, os.WriteFile(path, []byte("[]"), 0o644))

	w, stop := startWatcher(t, path, 150*time.Millisecond)
	defer stop()

	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(path, []byte("[]"), 0o644))
		time.Sleep(10 * time.Millisecond)
	}

	select {
	case <-w.Changes():
	case <-time.After(3 * time.Second):
		t.Fatal("no change signal after burst")
	}

	// The burst settles into a single signal.
	select {
	case _, ok := <-w.Changes():
		if ok {
			t.Fatal("burst produced a second signal")
		}
	case <-time.After(400 * time.Millisecond):
	}
}

func TestWatcher_IgnoresSiblingFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.json")
	require.NoError(t, os.WriteFile(path, []byte("[]"), 0o644))

	w, stop := startWatcher(t, path, 50*time.Millisecond)
	defer stop()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.json"), []byte("{}"), 0o644))

	select {
	case <-w.Changes():
		t.Fatal("signal for an unrelated file")
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatcher_MissingFileFails(t *testing.T) {
	w := New(filepath.Join(t.TempDir(), "absent.json"), 0)
	err := w.Run(context.Background())
	assert.Error(t, err)
}
