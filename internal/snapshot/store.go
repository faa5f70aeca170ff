// Package snapshot reads the JSON snapshot files the external monitor
// process writes. The files are the system of record; nothing here ever
// writes them back.
package snapshot

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"

	"github.com/dayboard-hq/dayboard/backend/internal/models"
)

// Snapshot file names, fixed by the monitor process.
const (
	EmailsFile   = "emails_monitor.json"
	EventsFile   = "email_events.json"
	MentionsFile = "slack_mentions_report.json"
)

// NotFoundError reports a missing snapshot file. The attempted path is kept
// so the API can return it for diagnostics.
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("snapshot file not found: %s", e.Path)
}

// Store reads snapshots from a directory, one whole-file read per call.
// There is no caching and no locking; the monitor replaces files atomically
// and concurrent readers just see one version or the other.
type Store struct {
	dir string
}

// NewStore creates a Store rooted at the given snapshot directory.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Dir returns the snapshot directory the store reads from.
func (s *Store) Dir() string {
	return s.dir
}

// LoadEmailsDocument reads emails_monitor.json as a generic JSON document,
// preserving whatever extra fields the monitor wrote. The "emails" field is
// coerced to an array if it is missing or has the wrong type. Returns the
// document and the path that was read.
func (s *Store) LoadEmailsDocument() (map[string]any, string, error) {
	return s.loadDocument(EmailsFile, "emails")
}

// LoadEventsDocument reads email_events.json, coercing the "events" field.
func (s *Store) LoadEventsDocument() (map[string]any, string, error) {
	return s.loadDocument(EventsFile, "events")
}

// LoadMentionsDocument reads slack_mentions_report.json, coercing the
// "mentions" field.
func (s *Store) LoadMentionsDocument() (map[string]any, string, error) {
	return s.loadDocument(MentionsFile, "mentions")
}

func (s *Store) loadDocument(filename, listKey string) (map[string]any, string, error) {
	path := filepath.Join(s.dir, filename)

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, path, &NotFoundError{Path: path}
	}
	if err != nil {
		return nil, path, fmt.Errorf("read %s: %w", path, err)
	}

	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		// A top-level array or scalar is still valid JSON; recover with an
		// empty document rather than failing the request.
		var anyDoc any
		if json.Unmarshal(data, &anyDoc) != nil {
			return nil, path, fmt.Errorf("parse %s: %w", path, err)
		}
		log.Printf("snapshot: expected a JSON object in %s, got something else", filename)
		doc = map[string]any{}
	}

	if _, ok := doc[listKey].([]any); !ok {
		log.Printf("snapshot: expected %q to be an array in %s, coercing to empty", listKey, filename)
		doc[listKey] = []any{}
	}

	return doc, path, nil
}

// LoadEmails reads emails_monitor.json and decodes the email records.
// Records that fail to decode are logged and skipped; the rest load.
func (s *Store) LoadEmails() ([]models.Email, error) {
	raws, err := s.loadRecords(EmailsFile, "emails")
	if err != nil {
		return nil, err
	}

	emails := make([]models.Email, 0, len(raws))
	for i, raw := range raws {
		var email models.Email
		if err := json.Unmarshal(raw, &email); err != nil {
			log.Printf("snapshot: skipping malformed email record %d: %v", i, err)
			continue
		}
		emails = append(emails, email)
	}
	return emails, nil
}

// LoadEvents reads email_events.json and decodes the extracted event stubs.
func (s *Store) LoadEvents() ([]models.EmailEvent, error) {
	raws, err := s.loadRecords(EventsFile, "events")
	if err != nil {
		return nil, err
	}

	events := make([]models.EmailEvent, 0, len(raws))
	for i, raw := range raws {
		var event models.EmailEvent
		if err := json.Unmarshal(raw, &event); err != nil {
			log.Printf("snapshot: skipping malformed event record %d: %v", i, err)
			continue
		}
		events = append(events, event)
	}
	return events, nil
}

// LoadMentions reads slack_mentions_report.json as the typed report.
func (s *Store) LoadMentions() (*models.SlackMentionsReport, error) {
	path := filepath.Join(s.dir, MentionsFile)

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, &NotFoundError{Path: path}
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var report models.SlackMentionsReport
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &report, nil
}

// loadRecords reads a snapshot file and returns the raw JSON records under
// listKey, deferring per-record decoding to the caller.
func (s *Store) loadRecords(filename, listKey string) ([]json.RawMessage, error) {
	path := filepath.Join(s.dir, filename)

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, &NotFoundError{Path: path}
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	var records []json.RawMessage
	if raw, ok := doc[listKey]; ok {
		if err := json.Unmarshal(raw, &records); err != nil {
			log.Printf("snapshot: expected %q to be an array in %s, coercing to empty", listKey, filename)
			records = nil
		}
	} else {
		log.Printf("snapshot: expected %q to be an array in %s, coercing to empty", listKey, filename)
	}
	return records, nil
}
