package pdf

import (
	"io"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/go-pdf/fpdf"
	zlog "github.com/rs/zerolog/log"

	"github.com/osa030/setlistmaker/internal/domain/setlist"
)

// Exporter renders setlist documents to PDF using a probed font
// capability and a layout configuration.
type Exporter struct {
	layout Layout
	font   FontCapability
}

// NewExporter creates an exporter. The font capability may be
// unavailable; in that case every export attempt fails with
// ErrFontUnavailable.
func NewExporter(layout Layout, font FontCapability) *Exporter {
	return &Exporter{layout: layout, font: font}
}

// Export writes the document as a PDF to w. The document must be
// non-empty and the font capability must be available.
func (e *Exporter) Export(doc *setlist.Document, w io.Writer) error {
	if doc.IsEmpty() {
		return setlist.ErrEmptyDocument
	}
	if !e.font.Available() {
		return ErrFontUnavailable
	}

	pages, err := Paginate(doc, e.layout)
	if err != nil {
		return err
	}

	out := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: e.layout.PageWidth, Ht: e.layout.PageHeight},
	})
	out.SetAutoPageBreak(false, 0)
	out.AddUTF8FontFromBytes(e.font.Family, "", e.font.Data)

	for _, page := range pages {
		out.AddPage()
		for _, run := range page.Texts {
			out.SetFont(e.font.Family, "", run.Size)
			out.SetTextColor(run.Color.R, run.Color.G, run.Color.B)
			x := run.X
			if run.Align == AlignRight {
				x -= out.GetStringWidth(run.Text)
			}
			out.Text(x, run.Y, run.Text)
		}
		for _, rule := range page.Rules {
			out.SetDrawColor(rule.Color.R, rule.Color.G, rule.Color.B)
			out.Line(rule.X1, rule.Y, rule.X2, rule.Y)
		}
	}

	if err := out.Output(w); err != nil {
		return errors.Wrap(err, "failed to write PDF")
	}
	zlog.Debug().Int("pages", len(pages)).Int("items", doc.Len()).Msg("PDF rendered")
	return nil
}

// ExportFile writes the document as a PDF at path. Preconditions are
// checked before the file is touched, and a file that failed mid-write
// is removed; no partial artifact is left behind.
func (e *Exporter) ExportFile(doc *setlist.Document, path string) error {
	if doc.IsEmpty() {
		return setlist.ErrEmptyDocument
	}
	if !e.font.Available() {
		return ErrFontUnavailable
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "failed to create %s", path)
	}
	if err := e.Export(doc, f); err != nil {
		f.Close()
		os.Remove(path)
		return errors.Wrapf(err, "failed to export %s", path)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return errors.Wrapf(err, "failed to close %s", path)
	}
	return nil
}
