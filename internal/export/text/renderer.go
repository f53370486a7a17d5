// Package text renders a setlist document as a share-ready plain-text
// summary, e.g. for pasting into a group chat.
package text

import (
	"fmt"
	"strings"

	"github.com/osa030/setlistmaker/internal/domain/setlist"
	"github.com/osa030/setlistmaker/internal/domain/timecode"
)

const separator = "--------------------"

// Render produces the plain-text summary of a document. Entries appear
// in performance order; the song counter skips MC entries. Durations
// and the Total Time footer appear only when the document's duration
// mode is on. An empty document is rejected with
// setlist.ErrEmptyDocument before any work.
func Render(doc *setlist.Document) (string, error) {
	if doc.IsEmpty() {
		return "", setlist.ErrEmptyDocument
	}

	var b strings.Builder
	fmt.Fprintf(&b, "【%s】\n", doc.Artist)
	fmt.Fprintf(&b, "Date: %s / %s\n", doc.Date, doc.Event)
	b.WriteString(separator + "\n")

	songCounter := 0
	for _, item := range doc.Items {
		if item.IsMC {
			b.WriteString("◆ MC")
			if item.Description != "" {
				fmt.Fprintf(&b, " (%s)", item.Description)
			}
			b.WriteString("\n")
			continue
		}
		songCounter++
		fmt.Fprintf(&b, "%d. %s", songCounter, item.Title)
		if doc.UseDuration && item.Duration != "" {
			fmt.Fprintf(&b, " (%s)", item.Duration)
		}
		if item.Description != "" {
			fmt.Fprintf(&b, " ... %s", item.Description)
		}
		b.WriteString("\n")
	}

	b.WriteString(separator + "\n")
	if doc.UseDuration {
		fmt.Fprintf(&b, "Total Time: %s\n", timecode.Format(doc.TotalSeconds()))
	}
	return b.String(), nil
}
