// Package editor holds the state of one editing session: the document
// being edited, where it lives on disk, and whether it has unsaved
// changes. UI surfaces stay thin adapters over this package; they
// translate input events into the operations here and render the
// resulting state.
package editor

import (
	"github.com/google/uuid"
	zlog "github.com/rs/zerolog/log"

	"github.com/osa030/setlistmaker/internal/domain/setlist"
	"github.com/osa030/setlistmaker/internal/infra/store"
)

// Session is the mutable editing state. The document is owned
// exclusively by the session; exports receive clones.
type Session struct {
	ID    uuid.UUID // Correlates log lines from one session
	Doc   *setlist.Document
	Path  string // Current file path, empty for an unsaved new file
	Dirty bool
}

// NewSession starts a session on a fresh document dated today.
func NewSession(artist string, useDuration bool) *Session {
	doc := setlist.New(artist)
	doc.UseDuration = useDuration
	s := &Session{ID: uuid.New(), Doc: doc}
	zlog.Debug().Stringer("session", s.ID).Msg("editor session started")
	return s
}

// NewFile discards the current document and starts over. The artist
// and duration mode are preferences, not file content, so they carry
// over. Callers guard unsaved changes first.
func (s *Session) NewFile() {
	artist := s.Doc.Artist
	useDuration := s.Doc.UseDuration
	s.Doc = setlist.New(artist)
	s.Doc.UseDuration = useDuration
	s.Path = ""
	s.Dirty = false
}

// Load replaces the document with the contents of path. On failure the
// in-memory document is left unchanged. A file without an artist or a
// parseable date keeps the session's current values for those fields.
func (s *Session) Load(path string) error {
	loaded, err := store.Load(path)
	if err != nil {
		return err
	}
	if loaded.Artist == "" {
		loaded.Artist = s.Doc.Artist
	}
	if (loaded.Date == setlist.Date{}) {
		loaded.Date = s.Doc.Date
	}
	loaded.UseDuration = s.Doc.UseDuration
	s.Doc = loaded
	s.Path = path
	s.Dirty = false
	return nil
}

// Save writes the document to its current path.
func (s *Session) Save() error {
	return s.SaveAs(s.Path)
}

// SaveAs writes the document to path and makes it the current path.
func (s *Session) SaveAs(path string) error {
	if err := store.Save(s.Doc, path); err != nil {
		return err
	}
	s.Path = path
	s.Dirty = false
	return nil
}

// HasPath reports whether the session is bound to a file yet.
func (s *Session) HasPath() bool {
	return s.Path != ""
}

// DefaultFilename derives the save/export filename from the document.
func (s *Session) DefaultFilename(extension string) string {
	return store.DefaultFilename(s.Doc.Date.String(), s.Doc.Event, extension)
}

// Snapshot returns a read-only copy for export components.
func (s *Session) Snapshot() *setlist.Document {
	return s.Doc.Clone()
}

// AddSong appends a song entry.
func (s *Session) AddSong(title, description, duration string) {
	s.Doc.Append(setlist.NewSong(title, description, duration))
	s.Dirty = true
}

// AddMC appends an MC entry.
func (s *Session) AddMC(description string) {
	s.Doc.Append(setlist.NewMC(description))
	s.Dirty = true
}

// UpdateItem replaces the entry at index i.
func (s *Session) UpdateItem(i int, item setlist.Item) {
	if s.Doc.Update(i, item) {
		s.Dirty = true
	}
}

// Remove deletes the entry at index i.
func (s *Session) Remove(i int) {
	if s.Doc.RemoveAt(i) {
		s.Dirty = true
	}
}

// Move swaps the entry at index i one step up (delta -1) or down
// (delta +1) and returns the entry's new index.
func (s *Session) Move(i, delta int) int {
	if delta != -1 && delta != 1 {
		return i
	}
	if s.Doc.Swap(i, i+delta) {
		s.Dirty = true
		return i + delta
	}
	return i
}

// SetArtist updates the document's artist.
func (s *Session) SetArtist(artist string) {
	if s.Doc.Artist == artist {
		return
	}
	s.Doc.Artist = artist
	s.Dirty = true
}

// SetEvent updates the event label.
func (s *Session) SetEvent(event string) {
	if s.Doc.Event == event {
		return
	}
	s.Doc.Event = event
	s.Dirty = true
}

// SetDate updates the date components.
func (s *Session) SetDate(d setlist.Date) {
	if s.Doc.Date == d {
		return
	}
	s.Doc.Date = d
	s.Dirty = true
}

// SetUseDuration toggles duration mode. Durations already entered are
// retained either way; the flag only controls display and totals.
func (s *Session) SetUseDuration(on bool) {
	s.Doc.UseDuration = on
}
