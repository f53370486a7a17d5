// Package setlist provides the setlist document model: an ordered
// running order of songs and MC (spoken interlude) entries.
package setlist

// Item represents one entry in the running order.
type Item struct {
	Title       string // Display name ("MC" by convention for spoken segments)
	Description string // Free-text note (lighting, gear, positions)
	Duration    string // Raw duration token, e.g. "4:30"; unvalidated at rest
	IsMC        bool   // MC entries are excluded from totals and song numbering
}

// NewSong creates a song entry.
func NewSong(title, description, duration string) Item {
	return Item{Title: title, Description: description, Duration: duration}
}

// NewMC creates an MC entry. MC entries carry no duration.
func NewMC(description string) Item {
	return Item{Title: "MC", Description: description, IsMC: true}
}
