package assets

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/hoshiryu/remesh/pipeline/core"
)

// MeshInfo tracks one watched mesh file.
type MeshInfo struct {
	Path       string
	LastQueued time.Time
}

// MeshWatcher observes an input directory tree and reports every created or
// rewritten mesh file on its Events channel.
type MeshWatcher struct {
	meshes map[string]MeshInfo

	mutex sync.RWMutex

	done     chan struct{}
	fsnotify *fsnotify.Watcher
	isClosed bool
	events   chan string
	errors   chan error
}

func NewMeshWatcher() (*MeshWatcher, error) {
	fsWatch, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &MeshWatcher{
		meshes:   make(map[string]MeshInfo),
		fsnotify: fsWatch,
		events:   make(chan string),
		errors:   make(chan error),
		done:     make(chan struct{}),
	}, nil
}

func (mw *MeshWatcher) Initialize(meshDir string) error {
	go mw.start()

	if err := mw.addRecursive(meshDir); err != nil {
		return err
	}

	return nil
}

// Events reports the paths of mesh files that appeared or changed.
func (mw *MeshWatcher) Events() <-chan string {
	return mw.events
}

// Errors reports watcher failures.
func (mw *MeshWatcher) Errors() <-chan error {
	return mw.errors
}

// Shutdown stops the watcher and closes the event channels.
func (mw *MeshWatcher) Shutdown() {
	mw.mutex.Lock()
	defer mw.mutex.Unlock()
	if mw.isClosed {
		return
	}
	mw.isClosed = true
	close(mw.done)
}

// addRecursive starts watching the named directory and all sub-directories.
func (mw *MeshWatcher) addRecursive(name string) error {
	if mw.isClosed {
		return errors.New("mesh watcher instance already closed")
	}
	return mw.watchRecursive(name, false)
}

func (mw *MeshWatcher) start() {
	for {
		select {

		case e := <-mw.fsnotify.Events:
			s, err := os.Stat(e.Name)
			if err == nil && s != nil && s.IsDir() {
				if e.Op&fsnotify.Create != 0 {
					mw.watchRecursive(e.Name, false)
				}
				continue
			}
			// Handle create or modify events
			if e.Op&(fsnotify.Create|fsnotify.Write) != 0 {
				mw.handleFileEvent(e.Name)
			}
			//Can't stat a deleted directory, so just pretend that it's always a directory and
			//try to remove from the watch list...  we really have no clue if it's a directory or not...
			if e.Op&fsnotify.Remove != 0 {
				mw.removeMesh(e.Name)
				mw.fsnotify.Remove(e.Name)
			}

		case e := <-mw.fsnotify.Errors:
			mw.errors <- e
			core.LogError(e.Error())

		case <-mw.done:
			mw.fsnotify.Close()
			close(mw.events)
			close(mw.errors)
			return
		}
	}
}

// watchRecursive adds all directories under the given one to the watch list.
// this is probably a very racey process. What if a file is added to a folder before we get the watch added?
func (mw *MeshWatcher) watchRecursive(path string, unWatch bool) error {
	return filepath.Walk(path, func(walkPath string, fi os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if fi.IsDir() {
			if unWatch {
				if err = mw.fsnotify.Remove(walkPath); err != nil {
					return err
				}
			} else {
				if err = mw.fsnotify.Add(walkPath); err != nil {
					return err
				}
			}
		}
		return nil
	})
}

// IsMeshFile reports whether the path looks like a mesh the pipeline can load.
func IsMeshFile(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".obj")
}

// How long after queuing a mesh further events for it are ignored. Editors
// emit a create plus several writes when saving a file.
const requeueDelay = 100 * time.Millisecond

// Handle the creation or modification of a file
func (mw *MeshWatcher) handleFileEvent(path string) {
	if !IsMeshFile(path) {
		return
	}

	mw.mutex.Lock()
	if info, ok := mw.meshes[path]; ok && time.Since(info.LastQueued) < requeueDelay {
		mw.mutex.Unlock()
		return
	}
	mw.meshes[path] = MeshInfo{Path: path, LastQueued: time.Now()}
	closed := mw.isClosed
	mw.mutex.Unlock()
	if closed {
		return
	}

	select {
	case mw.events <- path:
	case <-mw.done:
	}
}

func (mw *MeshWatcher) removeMesh(path string) {
	mw.mutex.Lock()
	defer mw.mutex.Unlock()
	delete(mw.meshes, path)
}
