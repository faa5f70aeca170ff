package snapshot

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingBroadcaster struct {
	messages [][]byte
}

func (b *recordingBroadcaster) Broadcast(msg []byte) {
	b.messages = append(b.messages, msg)
}

func touch(t *testing.T, path string, at time.Time) {
	t.Helper()
	require.NoError(t, os.Chtimes(path, at, at))
}

func TestWatcher_Check(t *testing.T) {
	dir := t.TempDir()
	emailsPath := filepath.Join(dir, EmailsFile)
	require.NoError(t, os.WriteFile(emailsPath, []byte(`{"emails": []}`), 0o644))

	base := time.Now().Add(-time.Hour)
	touch(t, emailsPath, base)

	hub := &recordingBroadcaster{}
	w := NewWatcher(dir, hub, time.Second)

	// Priming pass: the existing file must not count as a change.
	w.check(false)
	assert.Empty(t, hub.messages)

	// Unchanged mtime: still nothing.
	w.check(true)
	assert.Empty(t, hub.messages)

	// Bump the mtime the way the monitor's whole-file rewrite does.
	touch(t, emailsPath, base.Add(time.Minute))
	w.check(true)

	require.Len(t, hub.messages, 1)
	var msg map[string]string
	require.NoError(t, json.Unmarshal(hub.messages[0], &msg))
	assert.Equal(t, "snapshot_updated", msg["type"])
	assert.Equal(t, EmailsFile, msg["file"])
}

func TestWatcher_Check_NewFileCountsOnNextChange(t *testing.T) {
	dir := t.TempDir()
	hub := &recordingBroadcaster{}
	w := NewWatcher(dir, hub, time.Second)

	// No snapshot files yet; the monitor has not run.
	w.check(false)
	w.check(true)
	assert.Empty(t, hub.messages)

	// A file appearing is recorded but not announced until it changes again,
	// matching the priming behavior at startup.
	eventsPath := filepath.Join(dir, EventsFile)
	require.NoError(t, os.WriteFile(eventsPath, []byte(`{"events": []}`), 0o644))
	base := time.Now().Add(-time.Hour)
	touch(t, eventsPath, base)
	w.check(true)
	assert.Empty(t, hub.messages)

	touch(t, eventsPath, base.Add(time.Minute))
	w.check(true)
	require.Len(t, hub.messages, 1)
}

func TestNewWatcher_DefaultInterval(t *testing.T) {
	w := NewWatcher(t.TempDir(), &recordingBroadcaster{}, 0)
	assert.Equal(t, 30*time.Second, w.interval)
}
