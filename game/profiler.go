package game

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"runtime/pprof"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

var (
	errProfileCooldown = errors.New("capture on cooldown")
	errProfileBusy     = errors.New("already profiling")
)

// Profiler captures a CPU profile when an update tick runs long. Dragging a
// guard re-casts every visibility polygon each tick, so slow ticks point at
// the coverage pass.
type Profiler struct {
	mu          sync.Mutex
	busy        bool
	lastCapture time.Time
	cooldown    time.Duration
	duration    time.Duration
	dir         string
	log         *logrus.Entry
}

// NewProfiler writes profiles under dir. An empty dir disables profiling and returns nil.
func NewProfiler(dir string, log *logrus.Entry) *Profiler {
	if dir == "" {
		return nil
	}
	return &Profiler{
		cooldown: 10 * time.Second,
		duration: 3 * time.Second,
		dir:      dir,
		log:      log,
	}
}

// Capture starts a background CPU profile tagged with reason
func (p *Profiler) Capture(reason string) error {
	if p == nil {
		return nil
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.busy {
		return errProfileBusy
	}
	if since := time.Since(p.lastCapture); since < p.cooldown {
		return fmt.Errorf("%w (last capture %v ago)", errProfileCooldown, since.Round(time.Second))
	}
	if err := os.MkdirAll(p.dir, 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", p.dir, err)
	}

	p.busy = true
	p.lastCapture = time.Now()
	path := filepath.Join(p.dir, fmt.Sprintf("slow-tick-%s-%s.cpu.prof", p.lastCapture.Format("20060102-150405"), reason))

	go func() {
		defer func() {
			p.mu.Lock()
			p.busy = false
			p.mu.Unlock()
		}()
		if err := p.captureCPU(path); err != nil {
			p.log.WithError(err).Warn("CPU profile failed.")
			return
		}

		var m runtime.MemStats
		runtime.ReadMemStats(&m)
		p.log.WithFields(logrus.Fields{
			"profile":       path,
			"heap_alloc_kb": m.HeapAlloc / 1024,
			"num_gc":        m.NumGC,
		}).Info("CPU profile saved. Inspect with go tool pprof.")
	}()
	return nil
}

func (p *Profiler) captureCPU(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create profile file: %w", err)
	}
	defer f.Close()

	if err := pprof.StartCPUProfile(f); err != nil {
		return fmt.Errorf("start CPU profile: %w", err)
	}
	time.Sleep(p.duration)
	pprof.StopCPUProfile()
	return nil
}
