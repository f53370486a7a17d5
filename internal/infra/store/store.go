// Package store reads and writes setlist documents as .set files
// (JSON body). The writer always emits the current object shape; the
// reader additionally accepts two legacy shapes still found in old
// files: a bare top-level items array, and a combined "date" string
// in place of separate year/month/day fields.
package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	zlog "github.com/rs/zerolog/log"

	"github.com/osa030/setlistmaker/internal/domain/setlist"
)

// fileItem is the per-item wire shape.
type fileItem struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Duration    string `json:"duration"`
	IsMC        bool   `json:"is_mc"`
}

// fileDocument is the top-level wire shape. Date components are
// strings on the wire; the editor lets the performer type them freely.
type fileDocument struct {
	Artist string     `json:"artist"`
	Year   string     `json:"year"`
	Month  string     `json:"month"`
	Day    string     `json:"day"`
	Event  string     `json:"event"`
	Date   string     `json:"date,omitempty"` // legacy combined field, read only
	Items  []fileItem `json:"items"`
}

// Save writes the document to path with human-readable indentation.
// Non-ASCII characters are emitted literally, not escaped, so the file
// stays greppable for Japanese titles. Duration strings are persisted
// even when the document's duration mode is off.
func Save(doc *setlist.Document, path string) error {
	if doc.IsEmpty() {
		return setlist.ErrEmptyDocument
	}

	fd := fileDocument{
		Artist: doc.Artist,
		Year:   strconv.Itoa(doc.Date.Year),
		Month:  strconv.Itoa(doc.Date.Month),
		Day:    strconv.Itoa(doc.Date.Day),
		Event:  doc.Event,
		Items:  make([]fileItem, 0, doc.Len()),
	}
	for _, item := range doc.Items {
		fd.Items = append(fd.Items, fileItem{
			Title:       item.Title,
			Description: item.Description,
			Duration:    item.Duration,
			IsMC:        item.IsMC,
		})
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(fd); err != nil {
		return errors.Wrapf(err, "failed to encode %s", path)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return errors.Wrapf(err, "failed to write %s", path)
	}
	zlog.Info().Str("path", path).Int("items", doc.Len()).Msg("setlist saved")
	return nil
}

// Load reads a document from path. Missing fields default to empty
// values; a legacy combined date string is parsed best-effort, leaving
// the date components untouched when it does not parse.
func Load(path string) (*setlist.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", path)
	}
	doc, err := decode(data)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse %s", path)
	}
	zlog.Info().Str("path", path).Int("items", doc.Len()).Msg("setlist loaded")
	return doc, nil
}

func decode(data []byte) (*setlist.Document, error) {
	doc := &setlist.Document{}

	// Legacy shape: a bare top-level array is an items-only document.
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var items []fileItem
		if err := json.Unmarshal(data, &items); err != nil {
			return nil, err
		}
		for _, it := range items {
			doc.Append(setlist.Item(it))
		}
		return doc, nil
	}

	var fd fileDocument
	if err := json.Unmarshal(data, &fd); err != nil {
		return nil, err
	}

	doc.Artist = fd.Artist
	doc.Event = fd.Event
	if fd.Date != "" {
		if d, ok := parseLegacyDate(fd.Date); ok {
			doc.Date = d
		} else {
			zlog.Warn().Str("date", fd.Date).Msg("unparseable legacy date field, ignored")
		}
	} else {
		// Month and day pickers start at 1, so missing or unreadable
		// values fall back to 1 rather than 0.
		doc.Date = setlist.Date{
			Year:  atoiOrZero(fd.Year),
			Month: atoiOrDefault(fd.Month, 1),
			Day:   atoiOrDefault(fd.Day, 1),
		}
	}
	for _, it := range fd.Items {
		doc.Append(setlist.Item(it))
	}
	return doc, nil
}

// parseLegacyDate parses the old combined "YYYY/MM/DD" date field.
func parseLegacyDate(s string) (setlist.Date, bool) {
	parts := strings.Split(s, "/")
	if len(parts) != 3 {
		return setlist.Date{}, false
	}
	var d setlist.Date
	if _, err := fmt.Sscanf(s, "%d/%d/%d", &d.Year, &d.Month, &d.Day); err != nil {
		return setlist.Date{}, false
	}
	return d, true
}

func atoiOrZero(s string) int {
	return atoiOrDefault(s, 0)
}

func atoiOrDefault(s string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return def
	}
	return n
}
