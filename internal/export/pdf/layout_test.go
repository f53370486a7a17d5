package pdf

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osa030/setlistmaker/internal/domain/setlist"
)

func testDocument(items ...setlist.Item) *setlist.Document {
	return &setlist.Document{
		Artist: "carrel bites",
		Date:   setlist.Date{Year: 2024, Month: 5, Day: 1},
		Event:  "学園祭ライブ",
		Items:  items,
	}
}

// pageTexts flattens a page's runs for easy containment checks.
func pageTexts(p Page) string {
	var b strings.Builder
	for _, run := range p.Texts {
		b.WriteString(run.Text)
		b.WriteString("\n")
	}
	return b.String()
}

func TestPaginate_EmptyDocument(t *testing.T) {
	_, err := Paginate(testDocument(), DefaultLayout())
	assert.ErrorIs(t, err, setlist.ErrEmptyDocument)
}

func TestPaginate_HeaderOnFirstPageOnly(t *testing.T) {
	items := make([]setlist.Item, 0, 20)
	for i := 0; i < 20; i++ {
		items = append(items, setlist.NewSong(fmt.Sprintf("Song %d", i+1), "", ""))
	}
	doc := testDocument(items...)

	pages, err := Paginate(doc, DefaultLayout())
	require.NoError(t, err)
	require.Greater(t, len(pages), 1, "20 songs must not fit on one A4 page")

	assert.Contains(t, pageTexts(pages[0]), "SETLIST: carrel bites")
	assert.Contains(t, pageTexts(pages[0]), "Date: 2024/05/01   Venue: 学園祭ライブ")
	for i, p := range pages[1:] {
		assert.NotContains(t, pageTexts(p), "SETLIST:", "continuation page %d must not repeat the header", i+2)
	}
}

func TestPaginate_PageBreakCount(t *testing.T) {
	// With the default layout a song without a description occupies
	// RuleGap+PostRuleGap = 20mm. Page one offers BodyTop=60 to
	// PageHeight-BottomBand=257, so songs at 60,80,...,240 fit before
	// the cursor passes the threshold at 260: 10 songs. Continuation
	// pages start at 30 and fit songs at 30,50,...,250: 12 songs.
	tests := []struct {
		name      string
		songs     int
		wantPages int
	}{
		{name: "single song", songs: 1, wantPages: 1},
		{name: "exactly fills first page", songs: 10, wantPages: 1},
		{name: "one past the first page", songs: 11, wantPages: 2},
		{name: "fills two pages", songs: 22, wantPages: 2},
		{name: "spills to third page", songs: 23, wantPages: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items := make([]setlist.Item, 0, tt.songs)
			for i := 0; i < tt.songs; i++ {
				items = append(items, setlist.NewSong(fmt.Sprintf("Song %d", i+1), "", ""))
			}

			pages, err := Paginate(testDocument(items...), DefaultLayout())
			require.NoError(t, err)
			assert.Len(t, pages, tt.wantPages)
		})
	}
}

func TestPaginate_SongNumberingContinuousAcrossPages(t *testing.T) {
	items := make([]setlist.Item, 0, 15)
	for i := 0; i < 15; i++ {
		items = append(items, setlist.NewSong(fmt.Sprintf("Song %c", 'A'+i), "", ""))
	}
	doc := testDocument(items...)

	pages, err := Paginate(doc, DefaultLayout())
	require.NoError(t, err)
	require.Len(t, pages, 2)

	assert.Contains(t, pageTexts(pages[0]), "10. Song J")
	assert.Contains(t, pageTexts(pages[1]), "11. Song K")
}

func TestPaginate_SongCounterSkipsMC(t *testing.T) {
	doc := testDocument(
		setlist.NewMC(""),
		setlist.NewSong("A", "", ""),
		setlist.NewMC("tuning"),
		setlist.NewSong("B", "", ""),
	)

	pages, err := Paginate(doc, DefaultLayout())
	require.NoError(t, err)
	require.Len(t, pages, 1)

	texts := pageTexts(pages[0])
	assert.Contains(t, texts, "1. A")
	assert.Contains(t, texts, "2. B")
	assert.Contains(t, texts, "◆ MC")
	assert.Contains(t, texts, "(tuning)")
}

func TestPaginate_DurationRightAligned(t *testing.T) {
	doc := testDocument(setlist.NewSong("A", "", "4:30"))
	doc.UseDuration = true
	l := DefaultLayout()

	pages, err := Paginate(doc, l)
	require.NoError(t, err)

	var run TextRun
	found := false
	for _, r := range pages[0].Texts {
		if r.Text == "4:30" {
			run, found = r, true
		}
	}
	require.True(t, found, "duration run should be emitted")
	assert.Equal(t, AlignRight, run.Align)
	assert.Equal(t, l.PageWidth-l.Margin, run.X)
}

func TestPaginate_DurationHiddenWhenModeOff(t *testing.T) {
	doc := testDocument(setlist.NewSong("A", "", "4:30"))
	doc.UseDuration = false

	pages, err := Paginate(doc, DefaultLayout())
	require.NoError(t, err)

	assert.NotContains(t, pageTexts(pages[0]), "4:30")
	assert.NotContains(t, pageTexts(pages[0]), "Total Time")
}

func TestPaginate_TotalTimeOnLastPageOnly(t *testing.T) {
	items := make([]setlist.Item, 0, 15)
	for i := 0; i < 15; i++ {
		items = append(items, setlist.NewSong(fmt.Sprintf("Song %d", i+1), "", "4:00"))
	}
	doc := testDocument(items...)
	doc.UseDuration = true

	pages, err := Paginate(doc, DefaultLayout())
	require.NoError(t, err)
	require.Len(t, pages, 2)

	assert.NotContains(t, pageTexts(pages[0]), "Total Time")
	assert.Contains(t, pageTexts(pages[1]), "Total Time: 60:00")
}

func TestPaginate_DescriptionAddsSecondaryLine(t *testing.T) {
	doc := testDocument(setlist.NewSong("A", "check the lighting", ""))
	l := DefaultLayout()

	pages, err := Paginate(doc, l)
	require.NoError(t, err)

	texts := pageTexts(pages[0])
	assert.Contains(t, texts, "※ check the lighting")

	// The description line sits DescGap below the title baseline.
	var titleY, descY float64
	for _, r := range pages[0].Texts {
		switch r.Text {
		case "1. A":
			titleY = r.Y
		case "※ check the lighting":
			descY = r.Y
		}
	}
	assert.Equal(t, l.DescGap, descY-titleY)
}

func TestPaginate_RulePerSong(t *testing.T) {
	doc := testDocument(
		setlist.NewSong("A", "", ""),
		setlist.NewMC(""),
		setlist.NewSong("B", "", ""),
	)

	pages, err := Paginate(doc, DefaultLayout())
	require.NoError(t, err)

	assert.Len(t, pages[0].Rules, 2, "rules follow songs, not MC lines")
}

func TestDecodeSettings(t *testing.T) {
	tests := []struct {
		name     string
		settings map[string]any
		wantErr  bool
		check    func(t *testing.T, l Layout)
	}{
		{
			name:     "empty settings yield defaults",
			settings: map[string]any{},
			check: func(t *testing.T, l Layout) {
				assert.Equal(t, DefaultLayout(), l)
			},
		},
		{
			name:     "override a single key",
			settings: map[string]any{"bottom_band": 50.0},
			check: func(t *testing.T, l Layout) {
				assert.Equal(t, 50.0, l.BottomBand)
				assert.Equal(t, 210.0, l.PageWidth)
			},
		},
		{
			name:     "body_top below the bottom band",
			settings: map[string]any{"body_top": 280.0},
			wantErr:  true,
		},
		{
			name:     "negative margin rejected",
			settings: map[string]any{"margin": -1.0},
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := DecodeSettings(tt.settings)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			tt.check(t, l)
		})
	}
}

func TestExporter_FontUnavailable(t *testing.T) {
	e := NewExporter(DefaultLayout(), FontCapability{})
	doc := testDocument(setlist.NewSong("A", "", ""))

	err := e.Export(doc, &strings.Builder{})
	assert.ErrorIs(t, err, ErrFontUnavailable)
}

func TestExporter_EmptyDocument(t *testing.T) {
	e := NewExporter(DefaultLayout(), FontCapability{Family: "test", Data: []byte{0}})

	err := e.Export(testDocument(), &strings.Builder{})
	assert.ErrorIs(t, err, setlist.ErrEmptyDocument)
}
