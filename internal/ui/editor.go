// Package ui provides a Bubble Tea terminal editor for setlists. It
// is a thin adapter: every key event maps onto an editor.Session
// operation and the view renders the resulting state.
package ui

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/cockroachdb/errors"

	"github.com/osa030/setlistmaker/internal/app/editor"
	"github.com/osa030/setlistmaker/internal/domain/setlist"
	"github.com/osa030/setlistmaker/internal/domain/timecode"
	"github.com/osa030/setlistmaker/internal/export/pdf"
	"github.com/osa030/setlistmaker/internal/export/text"
)

// State represents the current UI state.
type State int

const (
	StateList        State = iota // Browsing the running order
	StateInputTitle               // Entering a song title (new or edited)
	StateInputTime                // Entering the song's duration
	StateInputDesc                // Entering a description (song or MC)
	StateInputEvent               // Editing the event label
	StateInputDate                // Editing the date
	StateInputArtist              // Editing the artist name
	StateConfirmQuit              // Unsaved changes, confirm discard
)

// Params wires the editing surface to the rest of the application.
type Params struct {
	Session   *editor.Session
	Exporter  *pdf.Exporter
	ExportDir string
	SaveDir   string
}

// Model is the Bubble Tea model for the setlist editor.
type Model struct {
	state State
	input textinput.Model

	session  *editor.Session
	exporter *pdf.Exporter

	exportDir string
	saveDir   string

	cursor int
	status string

	// Pending item fields collected across input states; editIndex is
	// the row being edited, or -1 when a new entry is being added
	pendingTitle string
	pendingTime  string
	pendingMC    bool
	editIndex    int

	width  int
	height int
}

// NewModel creates the editor model around an existing session.
func NewModel(p Params) Model {
	ti := textinput.New()
	ti.CharLimit = 200
	ti.Width = 40

	return Model{
		state:     StateList,
		input:     ti,
		session:   p.Session,
		exporter:  p.Exporter,
		exportDir: p.ExportDir,
		saveDir:   p.SaveDir,
		editIndex: -1,
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch m.state {
		case StateList:
			return m.updateList(msg)
		case StateConfirmQuit:
			return m.updateConfirmQuit(msg)
		default:
			return m.updateInput(msg)
		}
	}
	return m, nil
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""
	switch msg.String() {
	case "ctrl+c", "q":
		if m.session.Dirty {
			m.state = StateConfirmQuit
			return m, nil
		}
		return m, tea.Quit

	case "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down":
		if m.cursor < m.session.Doc.Len()-1 {
			m.cursor++
		}

	case "K", "shift+up":
		m.cursor = m.session.Move(m.cursor, -1)
	case "J", "shift+down":
		m.cursor = m.session.Move(m.cursor, 1)

	case "x", "delete":
		m.session.Remove(m.cursor)
		if m.cursor >= m.session.Doc.Len() && m.cursor > 0 {
			m.cursor--
		}

	case "a":
		m.pendingMC = false
		m.editIndex = -1
		return m.startInput(StateInputTitle, "曲名", ""), nil

	case "m":
		m.pendingMC = true
		m.editIndex = -1
		return m.startInput(StateInputDesc, "MCメモ", ""), nil

	case "enter":
		// Edit the cursor row, reusing the add flow pre-filled with
		// the item's current values
		item, ok := m.session.Doc.At(m.cursor)
		if !ok {
			return m, nil
		}
		m.pendingMC = item.IsMC
		m.editIndex = m.cursor
		if item.IsMC {
			return m.startInput(StateInputDesc, "MCメモ", item.Description), nil
		}
		return m.startInput(StateInputTitle, "曲名", item.Title), nil

	case "e":
		return m.startInput(StateInputEvent, "イベント名 / 会場", m.session.Doc.Event), nil

	case "D":
		return m.startInput(StateInputDate, "日付 (YYYY/MM/DD)", m.session.Doc.Date.String()), nil

	case "b":
		return m.startInput(StateInputArtist, "Artist", m.session.Doc.Artist), nil

	case "t":
		m.session.SetUseDuration(!m.session.Doc.UseDuration)

	case "s":
		m.save()

	case "p":
		m.exportPDF()

	case "c":
		m.copyText()
	}
	return m, nil
}

func (m Model) updateConfirmQuit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		return m, tea.Quit
	case "s":
		m.save()
		if !m.session.Dirty {
			return m, tea.Quit
		}
		m.state = StateList
	default:
		m.state = StateList
	}
	return m, nil
}

func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.state = StateList
		m.editIndex = -1
		m.input.Blur()
		return m, nil

	case "enter":
		value := strings.TrimSpace(m.input.Value())
		switch m.state {
		case StateInputTitle:
			if value == "" {
				m.state = StateList
				m.editIndex = -1
				m.input.Blur()
				return m, nil
			}
			m.pendingTitle = value
			existing, editing := m.editingItem()
			if m.session.Doc.UseDuration {
				prefill := "4:00"
				if editing {
					prefill = existing.Duration
				}
				return m.startInput(StateInputTime, "演奏時間 (分:秒)", prefill), nil
			}
			// With duration mode off the prompt is skipped; an edited
			// item keeps its stored duration
			m.pendingTime = existing.Duration
			return m.startInput(StateInputDesc, "説明・備考", existing.Description), nil

		case StateInputTime:
			m.pendingTime = value
			existing, _ := m.editingItem()
			return m.startInput(StateInputDesc, "説明・備考", existing.Description), nil

		case StateInputDesc:
			if existing, editing := m.editingItem(); editing {
				if m.pendingMC {
					existing.Description = value
				} else {
					existing.Title = m.pendingTitle
					existing.Duration = m.pendingTime
					existing.Description = value
				}
				m.session.UpdateItem(m.editIndex, existing)
				m.cursor = m.editIndex
				m.editIndex = -1
			} else if m.pendingMC {
				m.session.AddMC(value)
				m.cursor = m.session.Doc.Len() - 1
			} else {
				m.session.AddSong(m.pendingTitle, value, m.pendingTime)
				m.cursor = m.session.Doc.Len() - 1
			}
			m.state = StateList
			m.input.Blur()
			return m, nil

		case StateInputEvent:
			m.session.SetEvent(value)
			m.state = StateList
			m.input.Blur()
			return m, nil

		case StateInputDate:
			if d, ok := parseDate(value); ok {
				m.session.SetDate(d)
			} else {
				m.status = "日付を解釈できません"
			}
			m.state = StateList
			m.input.Blur()
			return m, nil

		case StateInputArtist:
			if value != "" {
				m.session.SetArtist(value)
			}
			m.state = StateList
			m.input.Blur()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// editingItem returns the item under edit, or a zero item when a new
// entry is being added.
func (m Model) editingItem() (setlist.Item, bool) {
	if m.editIndex < 0 {
		return setlist.Item{}, false
	}
	return m.session.Doc.At(m.editIndex)
}

// parseDate reads a YYYY/MM/DD string.
func parseDate(s string) (setlist.Date, bool) {
	parts := strings.Split(s, "/")
	if len(parts) != 3 {
		return setlist.Date{}, false
	}
	var n [3]int
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || v < 0 {
			return setlist.Date{}, false
		}
		n[i] = v
	}
	return setlist.Date{Year: n[0], Month: n[1], Day: n[2]}, true
}

func (m Model) startInput(state State, placeholder, value string) Model {
	m.state = state
	m.input.Placeholder = placeholder
	m.input.SetValue(value)
	m.input.CursorEnd()
	m.input.Focus()
	return m
}

func (m *Model) save() {
	path := m.session.Path
	if path == "" {
		path = filepath.Join(m.saveDir, m.session.DefaultFilename(".set"))
	}
	if err := m.session.SaveAs(path); err != nil {
		m.status = statusForError(err, "保存できません")
		return
	}
	m.status = fmt.Sprintf("保存しました: %s", path)
}

func (m *Model) exportPDF() {
	path := filepath.Join(m.exportDir, m.session.DefaultFilename(".pdf"))
	if err := m.exporter.ExportFile(m.session.Snapshot(), path); err != nil {
		m.status = statusForError(err, "PDFを出力できません")
		return
	}
	m.status = fmt.Sprintf("PDFを出力しました: %s", path)
}

func (m *Model) copyText() {
	rendered, err := text.Render(m.session.Snapshot())
	if err != nil {
		m.status = statusForError(err, "コピーできません")
		return
	}
	if err := clipboard.WriteAll(rendered); err != nil {
		m.status = fmt.Sprintf("コピーできません: %v", err)
		return
	}
	m.status = "クリップボードにコピーしました"
}

func statusForError(err error, prefix string) string {
	switch {
	case errors.Is(err, setlist.ErrEmptyDocument):
		return "リストが空です"
	case errors.Is(err, pdf.ErrFontUnavailable):
		return "PDF出力用フォントが見つかりません"
	default:
		return fmt.Sprintf("%s: %v", prefix, err)
	}
}

// totalTime renders the live running total for the footer.
func (m Model) totalTime() string {
	return timecode.Format(m.session.Doc.TotalSeconds())
}

// Run starts the editor.
func Run(p Params) error {
	prog := tea.NewProgram(NewModel(p), tea.WithAltScreen())
	_, err := prog.Run()
	return err
}
