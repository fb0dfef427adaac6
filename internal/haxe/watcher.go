package haxe

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// BuildFileWatcher watches the project's hxml build files. A change to
// the build configuration invalidates the running compiler server (its
// class paths, defines and with them the advertised display methods),
// so the watcher triggers a restart callback.
type BuildFileWatcher struct {
	projectRoot string
	watcher     *fsnotify.Watcher
	onChange    func(ctx context.Context)
	logger      zerolog.Logger
	done        chan struct{}
}

// NewBuildFileWatcher starts watching the project root for hxml changes.
// onChange runs debounced on its own goroutine.
func NewBuildFileWatcher(projectRoot string, logger zerolog.Logger, onChange func(ctx context.Context)) (*BuildFileWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	bw := &BuildFileWatcher{
		projectRoot: projectRoot,
		watcher:     watcher,
		onChange:    onChange,
		logger:      logger,
		done:        make(chan struct{}),
	}

	if err := watcher.Add(projectRoot); err != nil {
		_ = watcher.Close()
		return nil, err
	}

	go bw.watchChanges()

	return bw, nil
}

// watchChanges processes filesystem events until the watcher closes.
func (bw *BuildFileWatcher) watchChanges() {
	// Debounce: editors write hxml files in bursts.
	var timer *time.Timer
	const settle = 500 * time.Millisecond

	for {
		select {
		case <-bw.done:
			return
		case event, ok := <-bw.watcher.Events:
			if !ok {
				return
			}
			if !isBuildFile(event.Name) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			bw.logger.Info().Str("file", event.Name).Msg("build file changed")
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(settle, func() {
				bw.onChange(bw.logger.WithContext(context.Background()))
			})
		case err, ok := <-bw.watcher.Errors:
			if !ok {
				return
			}
			bw.logger.Warn().Err(err).Msg("build file watcher error")
		}
	}
}

// Close stops watching.
func (bw *BuildFileWatcher) Close() error {
	close(bw.done)
	return bw.watcher.Close()
}

func isBuildFile(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".hxml")
}
