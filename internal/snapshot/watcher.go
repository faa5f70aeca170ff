package snapshot

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"time"
)

// Broadcaster is the subset of the WebSocket hub the watcher needs.
type Broadcaster interface {
	Broadcast(msg []byte)
}

// Watcher polls the snapshot files for modification-time changes and tells
// connected dashboards to refetch. The monitor rewrites whole files, so an
// mtime bump is a reliable change signal.
type Watcher struct {
	dir      string
	hub      Broadcaster
	interval time.Duration
	mtimes   map[string]time.Time
}

// NewWatcher creates a Watcher over the snapshot directory.
func NewWatcher(dir string, hub Broadcaster, interval time.Duration) *Watcher {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return &Watcher{
		dir:      dir,
		hub:      hub,
		interval: interval,
		mtimes:   make(map[string]time.Time),
	}
}

// Run polls until the context is cancelled.
func (w *Watcher) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	// Prime the mtime table so startup does not count as a change.
	w.check(false)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.check(true)
		}
	}
}

func (w *Watcher) check(notify bool) {
	for _, name := range []string{EmailsFile, EventsFile, MentionsFile} {
		info, err := os.Stat(filepath.Join(w.dir, name))
		if err != nil {
			// Missing files are normal before the monitor's first run.
			continue
		}

		prev, seen := w.mtimes[name]
		w.mtimes[name] = info.ModTime()

		if notify && seen && info.ModTime().After(prev) {
			log.Printf("Watcher: %s changed, notifying clients", name)
			msg, err := json.Marshal(map[string]string{
				"type": "snapshot_updated",
				"file": name,
			})
			if err != nil {
				continue
			}
			w.hub.Broadcast(msg)
		}
	}
}
