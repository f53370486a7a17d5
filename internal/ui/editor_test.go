package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osa030/setlistmaker/internal/app/editor"
	"github.com/osa030/setlistmaker/internal/domain/setlist"
	"github.com/osa030/setlistmaker/internal/export/pdf"
)

func newTestModel(useDuration bool) Model {
	return NewModel(Params{
		Session:  editor.NewSession("carrel bites", useDuration),
		Exporter: pdf.NewExporter(pdf.DefaultLayout(), pdf.FontCapability{}),
	})
}

func key(s string) tea.KeyMsg {
	if len(s) == 1 {
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	}
	return tea.KeyMsg{}
}

func send(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	var model tea.Model = m
	for _, msg := range msgs {
		model, _ = model.Update(msg)
	}
	return model.(Model)
}

func typeText(t *testing.T, m Model, s string) Model {
	t.Helper()
	return send(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
}

func TestModel_AddSongFlow(t *testing.T) {
	m := newTestModel(false)

	m = send(t, m, key("a"))
	assert.Equal(t, StateInputTitle, m.state)

	m = typeText(t, m, "Opening Song")
	m = send(t, m, key("enter"))
	assert.Equal(t, StateInputDesc, m.state, "duration prompt is skipped when duration mode is off")

	m = send(t, m, key("enter"))
	assert.Equal(t, StateList, m.state)

	require.Equal(t, 1, m.session.Doc.Len())
	assert.Equal(t, "Opening Song", m.session.Doc.Items[0].Title)
	assert.True(t, m.session.Dirty)
}

func TestModel_AddSongWithDuration(t *testing.T) {
	m := newTestModel(true)

	m = send(t, m, key("a"))
	m = typeText(t, m, "A")
	m = send(t, m, key("enter"))
	assert.Equal(t, StateInputTime, m.state)

	// The time prompt is pre-filled with "4:00"
	m = send(t, m, key("enter"))
	m = send(t, m, key("enter"))

	require.Equal(t, 1, m.session.Doc.Len())
	assert.Equal(t, "4:00", m.session.Doc.Items[0].Duration)
}

func TestModel_AddMC(t *testing.T) {
	m := newTestModel(false)

	m = send(t, m, key("m"))
	assert.Equal(t, StateInputDesc, m.state)
	m = typeText(t, m, "member introduction")
	m = send(t, m, key("enter"))

	require.Equal(t, 1, m.session.Doc.Len())
	assert.True(t, m.session.Doc.Items[0].IsMC)
	assert.Equal(t, "member introduction", m.session.Doc.Items[0].Description)
}

func TestModel_EmptyTitleCancelsAdd(t *testing.T) {
	m := newTestModel(false)

	m = send(t, m, key("a"), key("enter"))

	assert.Equal(t, StateList, m.state)
	assert.Equal(t, 0, m.session.Doc.Len())
	assert.False(t, m.session.Dirty)
}

func TestModel_MoveAndDelete(t *testing.T) {
	m := newTestModel(false)
	m.session.AddSong("A", "", "")
	m.session.AddSong("B", "", "")
	m.session.Dirty = false

	// Cursor follows a moved item
	m = send(t, m, key("J"))
	assert.Equal(t, 1, m.cursor)
	assert.Equal(t, "B", m.session.Doc.Items[0].Title)

	m = send(t, m, key("x"))
	assert.Equal(t, 1, m.session.Doc.Len())
	assert.Equal(t, 0, m.cursor, "cursor clamps after deleting the last row")
}

func TestModel_QuitGuardsUnsavedChanges(t *testing.T) {
	m := newTestModel(false)
	m.session.AddSong("A", "", "")

	m = send(t, m, key("q"))
	assert.Equal(t, StateConfirmQuit, m.state)

	// Anything but y/s returns to the list
	m = send(t, m, key("n"))
	assert.Equal(t, StateList, m.state)
}

func TestModel_QuitDirectWhenClean(t *testing.T) {
	m := newTestModel(false)

	model, cmd := m.Update(key("q"))
	assert.Equal(t, StateList, model.(Model).state)
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestModel_ExportWithoutFontReportsStatus(t *testing.T) {
	m := newTestModel(false)
	m.session.AddSong("A", "", "")

	m = send(t, m, key("p"))
	assert.Contains(t, m.status, "フォント")
}

func TestModel_ExportEmptyReportsStatus(t *testing.T) {
	m := newTestModel(false)

	m = send(t, m, key("p"))
	assert.Contains(t, m.status, "リストが空です")
}

func TestModel_EditSongFlow(t *testing.T) {
	m := newTestModel(true)
	m.session.AddSong("A", "old note", "3:00")
	m.session.AddSong("B", "", "4:00")
	m.session.Dirty = false

	// Enter on the cursor row opens the add flow pre-filled with the
	// item's current values
	m = send(t, m, key("enter"))
	assert.Equal(t, StateInputTitle, m.state)
	assert.Equal(t, "A", m.input.Value())

	m = typeText(t, m, " (reprise)")
	m = send(t, m, key("enter"))
	assert.Equal(t, StateInputTime, m.state)
	assert.Equal(t, "3:00", m.input.Value())

	m = send(t, m, key("enter"))
	assert.Equal(t, StateInputDesc, m.state)
	assert.Equal(t, "old note", m.input.Value())

	m = typeText(t, m, "s")
	m = send(t, m, key("enter"))
	assert.Equal(t, StateList, m.state)

	require.Equal(t, 2, m.session.Doc.Len())
	assert.Equal(t, "A (reprise)", m.session.Doc.Items[0].Title)
	assert.Equal(t, "3:00", m.session.Doc.Items[0].Duration)
	assert.Equal(t, "old notes", m.session.Doc.Items[0].Description)
	assert.Equal(t, "B", m.session.Doc.Items[1].Title, "other rows are untouched")
	assert.Equal(t, 0, m.cursor)
	assert.True(t, m.session.Dirty)
}

func TestModel_EditMCKeepsIdentity(t *testing.T) {
	m := newTestModel(false)
	m.session.AddMC("intro")
	m.session.Dirty = false

	m = send(t, m, key("enter"))
	assert.Equal(t, StateInputDesc, m.state)
	assert.Equal(t, "intro", m.input.Value())

	m = typeText(t, m, " talk")
	m = send(t, m, key("enter"))

	require.Equal(t, 1, m.session.Doc.Len())
	assert.True(t, m.session.Doc.Items[0].IsMC)
	assert.Equal(t, "MC", m.session.Doc.Items[0].Title)
	assert.Equal(t, "intro talk", m.session.Doc.Items[0].Description)
	assert.True(t, m.session.Dirty)
}

func TestModel_EditKeepsDurationWhenModeOff(t *testing.T) {
	m := newTestModel(false)
	m.session.AddSong("A", "", "5:00")

	// Duration mode off skips the time prompt, but an edit keeps the
	// stored duration
	m = send(t, m, key("enter"), key("enter"), key("enter"))

	assert.Equal(t, StateList, m.state)
	assert.Equal(t, "5:00", m.session.Doc.Items[0].Duration)
}

func TestModel_EditCancelDoesNotAppend(t *testing.T) {
	m := newTestModel(false)
	m.session.AddSong("A", "", "")
	m.session.Dirty = false

	m = send(t, m, key("enter"), key("esc"))
	assert.Equal(t, StateList, m.state)

	// A later add starts a fresh item instead of overwriting the row
	m = send(t, m, key("a"))
	m = typeText(t, m, "B")
	m = send(t, m, key("enter"), key("enter"))

	require.Equal(t, 2, m.session.Doc.Len())
	assert.Equal(t, "A", m.session.Doc.Items[0].Title)
	assert.Equal(t, "B", m.session.Doc.Items[1].Title)
}

func TestModel_EditDate(t *testing.T) {
	m := newTestModel(false)
	m.session.SetDate(setlist.Date{Year: 2024, Month: 5, Day: 1})
	m.session.Dirty = false

	m = send(t, m, key("D"))
	assert.Equal(t, StateInputDate, m.state)
	assert.Equal(t, "2024/05/01", m.input.Value())

	m.input.SetValue("2025/12/31")
	m = send(t, m, key("enter"))

	assert.Equal(t, StateList, m.state)
	assert.Equal(t, setlist.Date{Year: 2025, Month: 12, Day: 31}, m.session.Doc.Date)
	assert.True(t, m.session.Dirty)
}

func TestModel_EditDateRejectsGarbage(t *testing.T) {
	m := newTestModel(false)
	m.session.SetDate(setlist.Date{Year: 2024, Month: 5, Day: 1})
	m.session.Dirty = false

	m = send(t, m, key("D"))
	m.input.SetValue("not a date")
	m = send(t, m, key("enter"))

	assert.Equal(t, StateList, m.state)
	assert.Contains(t, m.status, "日付")
	assert.Equal(t, setlist.Date{Year: 2024, Month: 5, Day: 1}, m.session.Doc.Date)
	assert.False(t, m.session.Dirty)
}

func TestModel_EditArtist(t *testing.T) {
	m := newTestModel(false)

	m = send(t, m, key("b"))
	assert.Equal(t, StateInputArtist, m.state)
	assert.Equal(t, "carrel bites", m.input.Value())

	m.input.SetValue("side project")
	m = send(t, m, key("enter"))

	assert.Equal(t, "side project", m.session.Doc.Artist)
	assert.True(t, m.session.Dirty)
}

func TestModel_ToggleDurationMode(t *testing.T) {
	m := newTestModel(false)
	m = send(t, m, key("t"))
	assert.True(t, m.session.Doc.UseDuration)
	m = send(t, m, key("t"))
	assert.False(t, m.session.Doc.UseDuration)
}
