package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcherPublishesValidEdits(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scene.toml")
	require.NoError(t, os.WriteFile(path, []byte("[scene]\nbackground = \"#000000\"\n"), 0o644))

	w, err := NewWatcher(path, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()
	defer func() {
		cancel()
		assert.NoError(t, <-done)
	}()

	// An invalid edit is skipped.
	require.NoError(t, os.WriteFile(path, []byte("[scene]\nbackground = \"nope\"\n"), 0o644))
	select {
	case cfg := <-w.Updates():
		t.Fatalf("unexpected update %+v", cfg.Scene)
	case <-time.After(4 * settle):
	}

	require.NoError(t, os.WriteFile(path, []byte("[scene]\nbackground = \"#101010\"\n"), 0o644))
	select {
	case cfg := <-w.Updates():
		assert.Equal(t, "#101010", cfg.Scene.Background)
		assert.Equal(t, "#59d2f3", cfg.Scene.MaterialColor)
	case <-time.After(3 * time.Second):
		t.Fatal("no update after a valid edit")
	}
}

func TestWatcherIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scene.toml")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	w, err := NewWatcher(path, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.toml"), []byte("x = 1\n"), 0o644))
	select {
	case <-w.Updates():
		t.Fatal("update for an unrelated file")
	case <-time.After(4 * settle):
	}

	cancel()
	assert.NoError(t, <-done)
}
