package watcher_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/kiln/internal/adapters/watcher"
	"go.trai.ch/kiln/internal/core/ports"
	"go.trai.ch/kiln/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func nextEvent(t *testing.T, events <-chan ports.WatchEvent, match func(ports.WatchEvent) bool) ports.WatchEvent {
	t.Helper()
	timeout := time.After(5 * time.Second)
	for {
		select {
		case ev, ok := <-events:
			require.True(t, ok, "event stream closed")
			if match(ev) {
				return ev
			}
		case <-timeout:
			t.Fatal("timed out waiting for event")
		}
	}
}

func stream(w *watcher.Watcher) <-chan ports.WatchEvent {
	ch := make(chan ports.WatchEvent)
	go func() {
		defer close(ch)
		for ev := range w.Events() {
			ch <- ev
		}
	}()
	return ch
}

func TestWatcher_ReportsChanges(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Warn(gomock.Any()).AnyTimes()

	root := t.TempDir()
	styles := filepath.Join(root, "src", "styles")
	require.NoError(t, os.MkdirAll(styles, 0o750))

	w, err := watcher.NewWatcher(mockLogger)
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	defer func() { _ = w.Stop() }()

	require.NoError(t, w.Start(ctx, filepath.Join(root, "src"), filepath.Join(root, "missing")))
	events := stream(w)

	target := filepath.Join(styles, "main.scss")
	require.NoError(t, os.WriteFile(target, []byte("a{}"), 0o600))
	ev := nextEvent(t, events, func(ev ports.WatchEvent) bool { return ev.Path == target })
	assert.Contains(t, []ports.WatchOp{ports.OpCreate, ports.OpWrite}, ev.Operation)

	// Directories created after Start are watched too.
	nested := filepath.Join(root, "src", "img")
	require.NoError(t, os.Mkdir(nested, 0o750))
	nextEvent(t, events, func(ev ports.WatchEvent) bool { return ev.Path == nested })

	image := filepath.Join(nested, "cat.png")
	require.Eventually(t, func() bool {
		_ = os.WriteFile(image, []byte("png"), 0o600)
		select {
		case ev := <-events:
			return ev.Path == image
		case <-time.After(200 * time.Millisecond):
			return false
		}
	}, 5*time.Second, 10*time.Millisecond)
}

func TestWatcher_StopEndsEvents(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)

	w, err := watcher.NewWatcher(mockLogger)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, w.Start(ctx, t.TempDir()))
	cancel()

	done := make(chan struct{})
	go func() {
		for range w.Events() {
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("events did not end after cancellation")
	}
	require.NoError(t, w.Stop())
}
