package orchestrate

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nboutline/pkg/utils"
)

func testLog() *logrus.Entry {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger.WithField("component", "test")
}

func TestRun_ProcessesEveryPath(t *testing.T) {
	var mu sync.Mutex
	var seen []string
	process := func(ctx context.Context, path string) (int, bool, error) {
		mu.Lock()
		seen = append(seen, path)
		mu.Unlock()
		return 1, true, nil
	}

	paths := []string{"a.ipynb", "b.ipynb", "c.ipynb"}
	o := NewOrchestrator(paths, 2, process, testLog())

	results := o.Run()

	require.Len(t, results, 3)
	sort.Strings(seen)
	assert.Equal(t, paths, seen)
	for _, r := range results {
		assert.True(t, r.Success)
		assert.True(t, r.Changed)
		assert.Equal(t, 1, r.Warnings)
		assert.NoError(t, r.Err)
	}
	assert.Equal(t, 0, Failed(results))
}

func TestRun_OneFailureDoesNotStopOthers(t *testing.T) {
	boom := errors.New("boom")
	process := func(ctx context.Context, path string) (int, bool, error) {
		if path == "bad.ipynb" {
			return 0, false, boom
		}
		return 0, true, nil
	}

	o := NewOrchestrator([]string{"good.ipynb", "bad.ipynb", "also-good.ipynb"}, 2, process, testLog())

	results := o.Run()

	require.Len(t, results, 3)
	assert.Equal(t, 1, Failed(results))
	for _, r := range results {
		if r.Path == "bad.ipynb" {
			assert.False(t, r.Success)
			assert.ErrorIs(t, r.Err, boom)
		} else {
			assert.True(t, r.Success)
		}
	}
}

func TestRun_CancelStopsPendingFiles(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	var once sync.Once
	process := func(ctx context.Context, path string) (int, bool, error) {
		once.Do(func() { close(started) })
		if ctx.Err() != nil {
			return 0, false, ctx.Err()
		}
		<-release
		return 0, false, ctx.Err()
	}

	// One worker slot: the first file blocks it, the second waits on the
	// semaphore until Cancel lets it fail fast
	o := NewOrchestrator([]string{"first.ipynb", "second.ipynb"}, 1, process, testLog())

	done := make(chan []FileResult)
	go func() { done <- o.Run() }()

	<-started
	o.Cancel()
	close(release)

	results := <-done
	require.Len(t, results, 2)
	assert.NotZero(t, Failed(results))
	foundCanceled := false
	for _, r := range results {
		if errors.Is(r.Err, context.Canceled) {
			foundCanceled = true
		}
	}
	assert.True(t, foundCanceled, "a pending file should report context.Canceled")
}

func TestRun_WorkerFloor(t *testing.T) {
	process := func(ctx context.Context, path string) (int, bool, error) {
		return 0, false, nil
	}

	o := NewOrchestrator([]string{"a.ipynb"}, 0, process, testLog())

	results := o.Run()
	require.Len(t, results, 1)
	assert.True(t, results[0].Success)
}

func TestValidatePaths(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "nb.ipynb")
	require.NoError(t, os.WriteFile(file, []byte("{}"), 0o644))

	t.Run("regular file ok", func(t *testing.T) {
		assert.NoError(t, ValidatePaths([]string{file}))
	})

	t.Run("missing file", func(t *testing.T) {
		err := ValidatePaths([]string{filepath.Join(dir, "absent.ipynb")})
		require.Error(t, err)
		assert.ErrorIs(t, err, utils.ErrFilesystem)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("directory rejected", func(t *testing.T) {
		err := ValidatePaths([]string{dir})
		require.Error(t, err)
		assert.ErrorIs(t, err, utils.ErrFilesystem)
		assert.Contains(t, err.Error(), "directory")
	})

	t.Run("empty list ok", func(t *testing.T) {
		assert.NoError(t, ValidatePaths(nil))
	})
}
