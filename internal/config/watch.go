package config

import (
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/Faultbox/towerview/internal/logger"
	"github.com/Faultbox/towerview/pkg/choreo"
)

// SceneWatcher reloads a scene file whenever it changes on disk.
//
// Reloaded scenes are delivered on Updates. Only the newest unread scene is
// kept, so a slow frame loop never falls behind a burst of saves.
type SceneWatcher struct {
	path    string
	fov     choreo.FOVRange
	watcher *fsnotify.Watcher
	updates chan *Scene
	done    chan struct{}
}

// WatchScene starts watching path. The parent directory is watched so that
// editors which save by renaming are picked up too.
func WatchScene(path string, fov choreo.FOVRange) (*SceneWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating scene watcher: %w", err)
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		w.Close()
		return nil, fmt.Errorf("watching %s: %w", filepath.Dir(abs), err)
	}

	sw := &SceneWatcher{
		path:    abs,
		fov:     fov,
		watcher: w,
		updates: make(chan *Scene, 1),
		done:    make(chan struct{}),
	}
	go sw.run()
	logger.Info("watching scene file", zap.String("path", abs))
	return sw, nil
}

// Updates delivers freshly loaded scenes. It is closed by Close.
func (sw *SceneWatcher) Updates() <-chan *Scene {
	return sw.updates
}

// Close stops watching and waits for the watch goroutine to exit.
func (sw *SceneWatcher) Close() error {
	err := sw.watcher.Close()
	<-sw.done
	return err
}

func (sw *SceneWatcher) run() {
	defer close(sw.done)
	defer close(sw.updates)

	for {
		select {
		case event, ok := <-sw.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != sw.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			scene, err := LoadScene(sw.path, sw.fov)
			if err != nil {
				logger.Error("scene reload failed, keeping current scene", zap.Error(err))
				continue
			}
			logger.Info("scene reloaded", zap.String("path", sw.path), zap.String("name", scene.Name))
			sw.publish(scene)

		case err, ok := <-sw.watcher.Errors:
			if !ok {
				return
			}
			logger.Warn("scene watcher error", zap.Error(err))
		}
	}
}

func (sw *SceneWatcher) publish(s *Scene) {
	select {
	case sw.updates <- s:
	default:
		select {
		case <-sw.updates:
		default:
		}
		sw.updates <- s
	}
}
