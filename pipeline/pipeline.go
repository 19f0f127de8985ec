package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/hoshiryu/remesh/pipeline/assets"
	"github.com/hoshiryu/remesh/pipeline/assets/loaders"
	"github.com/hoshiryu/remesh/pipeline/containers"
	"github.com/hoshiryu/remesh/pipeline/core"
	"github.com/hoshiryu/remesh/pipeline/geometry"
	"github.com/hoshiryu/remesh/pipeline/systems"
)

type Stage uint8

const (
	// Pipeline is in an uninitialized state
	StageUninitialized Stage = iota
	// Pipeline is currently initializing
	StageInitializing
	// Pipeline initialization is complete
	StageInitialized
	// Pipeline is currently running
	StageRunning
	// Pipeline is in the process of shutting down
	StageShuttingDown
)

// How often the pending queue is drained in watch mode. Editors tend to
// write mesh files in bursts, so changes are batched instead of processed
// per event.
const drainInterval = 500 * time.Millisecond

type Pipeline struct {
	currentStage Stage
	config       *Config
	jobs         *systems.JobSystem
	watcher      *assets.MeshWatcher
	loader       assets.Loader
	compactor    *geometry.Compactor
	pending      *containers.RingQueue[string]
	clock        *core.Clock

	done     chan struct{}
	doneOnce sync.Once
}

func New(config *Config) (*Pipeline, error) {
	if config == nil {
		config = DefaultConfig()
	}

	return &Pipeline{
		currentStage: StageUninitialized,
		config:       config,
		loader:       &loaders.ObjLoader{},
		pending:      containers.NewRingQueue[string](config.Pipeline.QueueSize),
		clock:        core.NewClock(),
		done:         make(chan struct{}),
	}, nil
}

func (p *Pipeline) Initialize() error {
	p.currentStage = StageInitializing

	if err := core.MetricsInitialize(); err != nil {
		core.LogError(err.Error())
		return err
	}

	jobs, err := systems.NewJobSystem(p.config.Pipeline.Workers, p.config.Pipeline.QueueSize)
	if err != nil {
		core.LogError(err.Error())
		return err
	}
	p.jobs = jobs
	p.compactor = geometry.NewCompactor(jobs)

	if err := os.MkdirAll(p.config.Assets.OutputDir, 0o755); err != nil {
		return err
	}

	if p.config.Pipeline.Watch {
		watcher, err := assets.NewMeshWatcher()
		if err != nil {
			core.LogError(err.Error())
			return err
		}
		if err := watcher.Initialize(p.config.Assets.InputDir); err != nil {
			core.LogError(err.Error())
			return err
		}
		p.watcher = watcher
	}

	p.currentStage = StageInitialized
	return nil
}

// Run processes every mesh already present in the input directory, then, in
// watch mode, keeps reprocessing meshes as they change until Shutdown.
func (p *Pipeline) Run() error {
	if p.currentStage == StageShuttingDown {
		return core.ErrPipelineShuttingDown
	}
	if p.currentStage != StageInitialized {
		return fmt.Errorf("pipeline must be initialized before running")
	}
	p.currentStage = StageRunning
	// The pool must outlive the final drain, so it is torn down here and
	// not in Shutdown.
	defer p.jobs.Shutdown()

	if err := p.processDir(p.config.Assets.InputDir); err != nil {
		return err
	}

	if !p.config.Pipeline.Watch {
		p.report()
		return nil
	}

	core.LogInfo("watching %s", p.config.Assets.InputDir)
	ticker := time.NewTicker(drainInterval)
	defer ticker.Stop()
	for {
		select {
		case path, ok := <-p.watcher.Events():
			if !ok {
				p.drainPending()
				p.report()
				return nil
			}
			if err := p.pending.Enqueue(path); err != nil {
				core.LogWarn("pending queue full, dropping %s", path)
			}
		case <-ticker.C:
			p.drainPending()
		case <-p.done:
			p.drainPending()
			p.report()
			return nil
		}
	}
}

// Shutdown signals the run loop to finish its pending work and return. Safe
// to call from a signal handler goroutine while Run is blocked.
func (p *Pipeline) Shutdown() error {
	p.currentStage = StageShuttingDown
	p.doneOnce.Do(func() {
		close(p.done)
	})
	if p.watcher != nil {
		p.watcher.Shutdown()
	}
	return nil
}

func (p *Pipeline) processDir(dir string) error {
	return filepath.Walk(dir, func(path string, fi os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if fi.IsDir() || !assets.IsMeshFile(path) {
			return nil
		}
		if p.isExported(path) {
			return nil
		}
		if err := p.ProcessFile(path); err != nil {
			core.LogError("mesh %s failed to export: %s", path, err.Error())
		}
		return nil
	})
}

func (p *Pipeline) drainPending() {
	seen := make(map[string]bool)
	for !p.pending.IsEmpty() {
		path, err := p.pending.Dequeue()
		if err != nil {
			return
		}
		if seen[path] || p.isExported(path) {
			continue
		}
		seen[path] = true
		if err := p.ProcessFile(path); err != nil {
			core.LogError("mesh %s failed to export: %s", path, err.Error())
		}
	}
}

// isExported recognizes the pipeline's own output files, which must not be
// fed back in when the output directory overlaps a watched directory.
func (p *Pipeline) isExported(path string) bool {
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return strings.HasSuffix(base, p.config.Export.Suffix)
}

// ProcessFile loads one mesh, compacts it and exports it to the output
// directory under the configured suffix.
func (p *Pipeline) ProcessFile(path string) error {
	mesh, err := p.loader.Load(path)
	if err != nil {
		return err
	}

	if _, err := p.Process(mesh); err != nil {
		return err
	}

	outPath := filepath.Join(p.config.Assets.OutputDir, mesh.Name+p.config.Export.Suffix+".obj")
	if err := p.loader.Save(outPath, mesh); err != nil {
		return err
	}
	core.LogInfo("mesh from %s successfully exported to %s", path, outPath)
	return nil
}

// Process compacts a mesh in place and returns the original-to-compacted
// vertex remap. Exported formats expect deduplicated geometry, so this runs
// immediately before every export.
func (p *Pipeline) Process(mesh *geometry.Mesh) (geometry.VertexRemap, error) {
	vertsIn := len(mesh.Vertices)

	p.clock.Start()
	vertexMap, err := p.compactor.RemoveDuplicates(mesh)
	p.clock.Update()
	if err != nil {
		return nil, err
	}

	core.MetricsRecord(vertsIn, len(mesh.Vertices), p.clock.ElapsedMS())
	return vertexMap, nil
}

func (p *Pipeline) report() {
	meshes, in, out := core.MetricsTotals()
	core.LogInfo("processed %d meshes, %d vertices in, %d out (%d duplicates removed)", meshes, in, out, in-out)
}
