package store

import (
	"fmt"
	"strings"
)

// unsafe characters are replaced in event names to keep the derived
// filename valid on every filesystem the exported files end up on.
var unsafe = strings.NewReplacer(
	"\\", "_", "/", "_", ":", "_", "*", "_", "?", "_",
	"\"", "_", "<", "_", ">", "_", "|", "_",
)

// DefaultFilename derives a filename from the document's date and
// event, e.g. "2024-05-01_学園祭ライブ.set". A missing event falls
// back to "_live".
func DefaultFilename(date, event, extension string) string {
	datePart := strings.ReplaceAll(date, "/", "-")
	eventPart := unsafe.Replace(strings.TrimSpace(event))
	switch {
	case datePart != "" && eventPart != "":
		return fmt.Sprintf("%s_%s%s", datePart, eventPart, extension)
	case datePart != "":
		return fmt.Sprintf("%s_live%s", datePart, extension)
	default:
		return "setlist" + extension
	}
}
