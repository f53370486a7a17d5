package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Styles for the editor
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#F8B500"))

	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ECDC4"))

	cursorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6B6B"))

	mcStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#6C757D"))

	descStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A8DADC"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#95E1A3"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C757D"))
)

// View renders the UI.
func (m Model) View() string {
	var b strings.Builder

	doc := m.session.Doc
	dirty := ""
	if m.session.Dirty {
		dirty = "*"
	}
	file := "新規ファイル"
	if m.session.HasPath() {
		file = m.session.Path
	}
	b.WriteString(titleStyle.Render(fmt.Sprintf("🎸 %s", doc.Artist)))
	b.WriteString(dimStyle.Render(fmt.Sprintf("  %s%s", dirty, file)))
	b.WriteString("\n")
	b.WriteString(headerStyle.Render(fmt.Sprintf("📅 %s / %s", doc.Date, doc.Event)))
	b.WriteString("\n\n")

	b.WriteString(m.viewItems())

	if doc.UseDuration {
		b.WriteString("\n")
		b.WriteString(headerStyle.Render(fmt.Sprintf("Total Time: %s", m.totalTime())))
		b.WriteString("\n")
	}

	switch m.state {
	case StateConfirmQuit:
		b.WriteString("\n")
		b.WriteString(cursorStyle.Render("変更が保存されていません。破棄しますか？ (y: 破棄 / s: 保存 / その他: 戻る)"))
		b.WriteString("\n")
	case StateList:
		if m.status != "" {
			b.WriteString("\n")
			b.WriteString(statusStyle.Render(m.status))
			b.WriteString("\n")
		}
	default:
		b.WriteString("\n")
		b.WriteString(headerStyle.Render(m.input.Placeholder + ":"))
		b.WriteString("\n")
		b.WriteString(m.input.View())
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.helpText()))
	return b.String()
}

func (m Model) viewItems() string {
	doc := m.session.Doc
	if doc.IsEmpty() {
		return dimStyle.Render("  (まだ曲がありません — a で追加)") + "\n"
	}

	var b strings.Builder
	songCounter := 0
	for i, item := range doc.Items {
		marker := "  "
		if i == m.cursor && m.state == StateList {
			marker = cursorStyle.Render("▶ ")
		}

		if item.IsMC {
			line := "◆ MC"
			if item.Description != "" {
				line += fmt.Sprintf(" (%s)", item.Description)
			}
			b.WriteString(marker + mcStyle.Render(line))
		} else {
			songCounter++
			line := fmt.Sprintf("%2d. %s", songCounter, item.Title)
			if doc.UseDuration && item.Duration != "" {
				line += fmt.Sprintf("  [%s]", item.Duration)
			}
			b.WriteString(marker + line)
			if item.Description != "" {
				b.WriteString(descStyle.Render(fmt.Sprintf("  … %s", item.Description)))
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) helpText() string {
	switch m.state {
	case StateList:
		return "a: 曲追加 • m: MC追加 • enter: 編集 • e: イベント • D: 日付 • b: アーティスト • J/K: 移動 • x: 削除 • t: 時間表示 • s: 保存 • p: PDF • c: コピー • q: 終了"
	case StateConfirmQuit:
		return ""
	default:
		return "enter: 確定 • esc: キャンセル"
	}
}
