// Package file watches an on-disk YAML config file and turns each save
// into the same ordered (path, op, value) delta stream pkg/northbound/api
// produces from a REST transaction, so a file-based operator and the API
// agree on one ingestion path (spec.md §6).
//
// Grounded on the teacher's pkg/controlplane/runtime.SettingsWatcher: a
// cached snapshot, a version/content comparison to detect real changes,
// and an atomic swap of the cached value on change. The difference is the
// change signal — fsnotify file events here instead of a DB poll ticker —
// and that the diff against the previous snapshot is itself the payload
// (a Transaction) rather than a settings struct swap.
package file

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strconv"
	"sync"

	"github.com/fsnotify/fsnotify"
	"gopkg.in/yaml.v3"

	"github.com/routeflow/ribd/internal/logger"
	"github.com/routeflow/ribd/pkg/northbound"
)

// Watcher watches Path for changes and submits the resulting deltas to
// Registry. It is safe to read Snapshot concurrently with Start's
// background goroutine.
type Watcher struct {
	Path     string
	Registry *northbound.Registry

	mu   sync.RWMutex
	tree map[string]any

	watcher *fsnotify.Watcher
	stopCh  chan struct{}
	stopped chan struct{}
}

// NewWatcher creates a Watcher for path, performing an initial load so the
// first fsnotify event diffs against real prior state rather than an
// empty tree.
func NewWatcher(path string, registry *northbound.Registry) (*Watcher, error) {
	w := &Watcher{Path: path, Registry: registry}
	tree, err := loadTree(path)
	if err != nil {
		return nil, fmt.Errorf("file: initial load of %s: %w", path, err)
	}
	w.tree = tree
	return w, nil
}

// Snapshot returns the most recently loaded config tree, flattened to
// path->value. Callers must not mutate the returned map.
func (w *Watcher) Snapshot() any {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.tree
}

// Start begins watching Path in the background. It returns once the
// fsnotify watch is established; the goroutine itself runs until ctx is
// done or Stop is called.
func (w *Watcher) Start(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("file: new fsnotify watcher: %w", err)
	}
	if err := fw.Add(w.Path); err != nil {
		fw.Close()
		return fmt.Errorf("file: watch %s: %w", w.Path, err)
	}
	w.watcher = fw
	w.stopCh = make(chan struct{})
	w.stopped = make(chan struct{})

	go w.run(ctx)
	return nil
}

// Stop stops the background goroutine and releases the fsnotify watch.
func (w *Watcher) Stop() {
	if w.stopCh == nil {
		return
	}
	select {
	case <-w.stopCh:
	default:
		close(w.stopCh)
	}
	<-w.stopped
	w.watcher.Close()
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.stopped)
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			w.reload()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logger.Warn("northbound file watcher error", "path", w.Path, "error", err)
		}
	}
}

// reload reads Path, diffs it against the cached tree, and submits the
// resulting Transaction. A read or parse failure is logged and the
// cached tree is left unchanged, matching the SettingsWatcher's
// non-fatal-poll-error behavior.
func (w *Watcher) reload() {
	next, err := loadTree(w.Path)
	if err != nil {
		logger.Warn("northbound file watcher: reload failed, keeping prior config", "path", w.Path, "error", err)
		return
	}

	w.mu.Lock()
	prev := w.tree
	w.tree = next
	w.mu.Unlock()

	deltas := diff(prev, next)
	if len(deltas) == 0 {
		return
	}
	if err := w.Registry.ApplyTransaction(northbound.Transaction{Deltas: deltas}); err != nil {
		logger.Warn("northbound file watcher: transaction rejected", "path", w.Path, "error", err)
		return
	}
	logger.Info("northbound file watcher: applied config change", "path", w.Path, "deltas", len(deltas))
}

// loadTree reads and flattens path's YAML document into path->value pairs
// using the same "/"-joined path shape the REST surface's Delta.Path uses
// (e.g. "/protocol/ospf/instance/default/router-id").
func loadTree(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	flat := make(map[string]any)
	flatten("", raw, flat)
	return flat, nil
}

func flatten(prefix string, v any, out map[string]any) {
	switch t := v.(type) {
	case map[string]any:
		for k, child := range t {
			flatten(prefix+"/"+k, child, out)
		}
	case []any:
		for i, child := range t {
			flatten(prefix+"/"+strconv.Itoa(i), child, out)
		}
	default:
		out[prefix] = v
	}
}

// diff compares two flattened trees and returns the ordered set of
// deltas that transform prev into next: OpDelete for keys removed,
// OpCreate for keys added, OpModify for keys whose value changed.
func diff(prev, next map[string]any) []northbound.Delta {
	var deltas []northbound.Delta

	for path, v := range next {
		if old, ok := prev[path]; !ok {
			deltas = append(deltas, northbound.Delta{Path: path, Op: northbound.OpCreate, Value: v})
		} else if !equalValue(old, v) {
			deltas = append(deltas, northbound.Delta{Path: path, Op: northbound.OpModify, Value: v})
		}
	}
	for path := range prev {
		if _, ok := next[path]; !ok {
			deltas = append(deltas, northbound.Delta{Path: path, Op: northbound.OpDelete})
		}
	}

	sort.Slice(deltas, func(i, j int) bool { return deltas[i].Path < deltas[j].Path })
	return deltas
}

func equalValue(a, b any) bool {
	return fmt.Sprint(a) == fmt.Sprint(b)
}
