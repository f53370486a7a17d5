// Package pdf lays out a setlist document across fixed-size pages and
// writes the result as a PDF program sheet.
//
// Layout is split in two passes: Paginate produces pure draw
// directives (text runs and rules with positions), and Exporter emits
// them through the PDF backend. The directives are what tests assert
// against.
package pdf

import (
	"fmt"

	"github.com/osa030/setlistmaker/internal/domain/setlist"
	"github.com/osa030/setlistmaker/internal/domain/timecode"
)

// Layout holds the page geometry and per-line heights, in millimeters
// except for font sizes, which are in points. The defaults reproduce
// the A4 sheet the tool has always produced; they are parameters, not
// constants, so a different font can be accommodated.
type Layout struct {
	PageWidth  float64 `mapstructure:"page_width" default:"210" validate:"gt=0"`
	PageHeight float64 `mapstructure:"page_height" default:"297" validate:"gt=0"`
	Margin     float64 `mapstructure:"margin" default:"20" validate:"gte=0"`

	// First-page header block
	TitleY     float64 `mapstructure:"title_y" default:"30"`
	TitleSize  float64 `mapstructure:"title_size" default:"28" validate:"gt=0"`
	HeaderY    float64 `mapstructure:"header_y" default:"42"`
	HeaderSize float64 `mapstructure:"header_size" default:"14" validate:"gt=0"`

	// Cursor band: body starts at BodyTop on page one and ContTop on
	// continuation pages; a break is emitted once the cursor passes
	// PageHeight-BottomBand.
	BodyTop    float64 `mapstructure:"body_top" default:"60" validate:"gt=0"`
	ContTop    float64 `mapstructure:"cont_top" default:"30" validate:"gt=0"`
	BottomBand float64 `mapstructure:"bottom_band" default:"40" validate:"gt=0"`

	// MC lines
	MCIndent     float64 `mapstructure:"mc_indent" default:"30"`
	MCDescX      float64 `mapstructure:"mc_desc_x" default:"55"`
	MCSize       float64 `mapstructure:"mc_size" default:"14" validate:"gt=0"`
	MCDescSize   float64 `mapstructure:"mc_desc_size" default:"11" validate:"gt=0"`
	MCLineHeight float64 `mapstructure:"mc_line_height" default:"15" validate:"gt=0"`

	// Song lines
	SongIndent   float64 `mapstructure:"song_indent" default:"25"`
	SongSize     float64 `mapstructure:"song_size" default:"22" validate:"gt=0"`
	DurationSize float64 `mapstructure:"duration_size" default:"14" validate:"gt=0"`
	DescGap      float64 `mapstructure:"desc_gap" default:"8" validate:"gt=0"`
	DescIndent   float64 `mapstructure:"desc_indent" default:"35"`
	DescSize     float64 `mapstructure:"desc_size" default:"12" validate:"gt=0"`
	RuleGap      float64 `mapstructure:"rule_gap" default:"5" validate:"gt=0"`
	PostRuleGap  float64 `mapstructure:"post_rule_gap" default:"15" validate:"gt=0"`

	// Total Time footer, measured from the page bottom
	FooterY    float64 `mapstructure:"footer_y" default:"15" validate:"gt=0"`
	FooterSize float64 `mapstructure:"footer_size" default:"12" validate:"gt=0"`
}

// Color is an RGB triple in the 0-255 range.
type Color struct {
	R, G, B int
}

var (
	colorBlack = Color{0, 0, 0}
	colorGray  = Color{77, 77, 77}
	colorDesc  = Color{51, 51, 153}
	colorRule  = Color{204, 204, 204}
)

// Align selects the horizontal anchor of a text run.
type Align int

const (
	AlignLeft  Align = iota // X is the left edge of the run
	AlignRight              // X is the right edge of the run
)

// TextRun is a single piece of text drawn at a baseline position.
type TextRun struct {
	X, Y  float64
	Size  float64
	Color Color
	Align Align
	Text  string
}

// Rule is a horizontal line directive.
type Rule struct {
	X1, X2, Y float64
	Color     Color
}

// Page is the ordered set of directives for one output page.
type Page struct {
	Texts []TextRun
	Rules []Rule
}

// Paginate lays the document out across as many pages as needed.
// The title block is drawn only on the first page; the cursor starts
// below it and a page break is emitted whenever the cursor has passed
// the bottom threshold before the next entry. Song numbering is
// continuous across breaks. An entry taller than a whole page is drawn
// from the cursor anyway and may overflow; entries are never split.
func Paginate(doc *setlist.Document, l Layout) ([]Page, error) {
	if doc.IsEmpty() {
		return nil, setlist.ErrEmptyDocument
	}

	var pages []Page
	cur := Page{}
	cur.Texts = append(cur.Texts,
		TextRun{X: l.Margin, Y: l.TitleY, Size: l.TitleSize, Color: colorBlack,
			Text: fmt.Sprintf("SETLIST: %s", doc.Artist)},
		TextRun{X: l.Margin, Y: l.HeaderY, Size: l.HeaderSize, Color: colorBlack,
			Text: fmt.Sprintf("Date: %s   Venue: %s", doc.Date, doc.Event)},
	)

	y := l.BodyTop
	limit := l.PageHeight - l.BottomBand
	songCounter := 0

	for _, item := range doc.Items {
		if y > limit {
			pages = append(pages, cur)
			cur = Page{}
			y = l.ContTop
		}

		if item.IsMC {
			cur.Texts = append(cur.Texts, TextRun{
				X: l.MCIndent, Y: y, Size: l.MCSize, Color: colorGray, Text: "◆ MC",
			})
			if item.Description != "" {
				cur.Texts = append(cur.Texts, TextRun{
					X: l.MCDescX, Y: y, Size: l.MCDescSize, Color: colorGray,
					Text: fmt.Sprintf("(%s)", item.Description),
				})
			}
			y += l.MCLineHeight
			continue
		}

		songCounter++
		cur.Texts = append(cur.Texts, TextRun{
			X: l.SongIndent, Y: y, Size: l.SongSize, Color: colorBlack,
			Text: fmt.Sprintf("%d. %s", songCounter, item.Title),
		})
		if doc.UseDuration && item.Duration != "" {
			cur.Texts = append(cur.Texts, TextRun{
				X: l.PageWidth - l.Margin, Y: y, Size: l.DurationSize,
				Color: colorBlack, Align: AlignRight, Text: item.Duration,
			})
		}
		if item.Description != "" {
			y += l.DescGap
			cur.Texts = append(cur.Texts, TextRun{
				X: l.DescIndent, Y: y, Size: l.DescSize, Color: colorDesc,
				Text: fmt.Sprintf("※ %s", item.Description),
			})
		}
		y += l.RuleGap
		cur.Rules = append(cur.Rules, Rule{
			X1: l.Margin, X2: l.PageWidth - l.Margin, Y: y, Color: colorRule,
		})
		y += l.PostRuleGap
	}

	if doc.UseDuration {
		cur.Texts = append(cur.Texts, TextRun{
			X: l.Margin, Y: l.PageHeight - l.FooterY, Size: l.FooterSize,
			Color: colorBlack,
			Text:  fmt.Sprintf("Total Time: %s", timecode.Format(doc.TotalSeconds())),
		})
	}
	pages = append(pages, cur)
	return pages, nil
}
