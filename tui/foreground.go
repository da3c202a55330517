package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/lalomorales22/megacli/chat"
	"github.com/lalomorales22/megacli/grid"
)

// Layout row budget: header box (3), input box (3), footer line (1).
const (
	headerRows = 3
	inputRows  = 3
	footerRows = 1
)

// foregroundGrid draws the chat UI into a transparent grid sized to the
// current viewport. Cells left unwritten stay transparent so the video
// shows through them.
func (m Model) foregroundGrid() grid.Grid {
	g := grid.New(m.width, m.height)
	if m.width < 4 || m.height < headerRows+inputRows+footerRows+2 {
		return g
	}

	providerColor := cellColor(m.chat.Provider().Hex())

	// Header
	drawBox(g, 0, 0, m.width, headerRows, providerColor, "")
	drawText(g, 1, 2, "MEGA-CLI // "+m.chat.Provider().Name(), providerColor)

	// Messages
	msgTop := headerRows
	msgRows := m.height - headerRows - inputRows - footerRows
	if m.showHelp {
		m.drawHelp(g, msgTop, msgRows)
	} else {
		m.drawMessages(g, msgTop, msgRows, providerColor)
	}

	// Input
	inputTop := m.height - inputRows - footerRows
	drawBox(g, inputTop, 0, m.width, inputRows, colorInput, "Input")
	if m.chat.Streaming() {
		drawText(g, inputTop+1, 2, m.spin.View()+" Waiting for response...", colorInput)
	} else {
		line := "> " + m.input.Value() + "_"
		drawText(g, inputTop+1, 2, truncateLeft(line, m.width-4), colorInput)
	}

	// Footer
	footer := "F1 Help | F2 Switch AI | Ctrl+C Exit | Ctrl+L Clear"
	if m.background != nil && m.background.Static() && m.background.Err() != nil {
		footer = "video stopped, background frozen | " + footer
	}
	drawText(g, m.height-1, centerCol(m.width, footer), footer, colorFooter)

	return g
}

func (m Model) drawMessages(g grid.Grid, top, rows int, providerColor grid.RGB) {
	drawBox(g, top, 0, m.width, rows, colorBorder, "Messages")
	if rows < 3 {
		return
	}
	innerW := m.width - 4
	innerH := rows - 2

	msgs := m.chat.Messages()
	if len(msgs) == 0 {
		welcome := []string{
			"Welcome to MEGA-CLI!",
			"",
			"Connected to: " + m.chat.Provider().Name(),
			"",
			"Type your message and press Enter to start.",
			"The video plays in the background while you chat!",
			"",
			"Press F1 for help.",
		}
		startRow := top + 1 + (innerH-len(welcome))/2
		if startRow < top+1 {
			startRow = top + 1
		}
		for i, line := range welcome {
			if i >= innerH {
				break
			}
			drawText(g, startRow+i, centerCol(m.width, line), line, colorWelcome)
		}
		return
	}

	row := top + 1
	for idx := m.chat.Scroll(); idx < len(msgs) && row < top+1+innerH; idx++ {
		msg := msgs[idx]
		prefix, color := "You: ", colorUser
		switch {
		case msg.System:
			prefix, color = "", colorSystem
		case msg.Role == chat.RoleAssistant:
			prefix, color = m.chat.Provider().Name()+": ", providerColor
		}
		for _, line := range wrapText(prefix+msg.Content, innerW) {
			if row >= top+1+innerH {
				break
			}
			drawText(g, row, 2, line, color)
			row++
		}
		row++ // blank line between messages
	}
}

func (m Model) drawHelp(g grid.Grid, top, rows int) {
	drawBox(g, top, 0, m.width, rows, colorHelp, "Help")
	help := []string{
		"MEGA-CLI Keyboard Shortcuts",
		"",
		"Navigation:",
		"  Up/Down       Scroll messages",
		"  PgUp/PgDn     Scroll 10 messages",
		"",
		"Commands:",
		"  Enter         Send message",
		"  F1            Toggle this help",
		"  F2            Switch AI provider",
		"  Ctrl+L        Clear conversation",
		"  Esc / Ctrl+C  Exit",
		"",
		"The video background loops continuously while you",
		"chat. Conversations are kept per provider; switch",
		"with F2 and your history is preserved.",
		"",
		"Press F1 to return to chat.",
	}
	for i, line := range help {
		if i >= rows-2 {
			break
		}
		drawText(g, top+1+i, 2, line, colorHelp)
	}
}

// drawText writes s at (row, col), clipping at the right edge. Wide runes
// shadow their trailing cell so the painter keeps columns aligned. Returns
// the column after the last written cell.
func drawText(g grid.Grid, row, col int, s string, color grid.RGB) int {
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if col+w > g.Cols {
			break
		}
		g.Set(row, col, grid.Cell{Glyph: r, Color: color})
		if w == 2 {
			g.Set(row, col+1, grid.Cell{Glyph: ' ', Color: color})
		}
		col += w
	}
	return col
}

// drawBox draws a rounded border with an optional title embedded in the
// top edge.
func drawBox(g grid.Grid, top, left, width, height int, color grid.RGB, title string) {
	if width < 2 || height < 2 {
		return
	}
	b := lipgloss.RoundedBorder()
	right := left + width - 1
	bottom := top + height - 1

	g.Set(top, left, grid.Cell{Glyph: firstRune(b.TopLeft), Color: color})
	g.Set(top, right, grid.Cell{Glyph: firstRune(b.TopRight), Color: color})
	g.Set(bottom, left, grid.Cell{Glyph: firstRune(b.BottomLeft), Color: color})
	g.Set(bottom, right, grid.Cell{Glyph: firstRune(b.BottomRight), Color: color})

	for col := left + 1; col < right; col++ {
		g.Set(top, col, grid.Cell{Glyph: firstRune(b.Top), Color: color})
		g.Set(bottom, col, grid.Cell{Glyph: firstRune(b.Bottom), Color: color})
	}
	for row := top + 1; row < bottom; row++ {
		g.Set(row, left, grid.Cell{Glyph: firstRune(b.Left), Color: color})
		g.Set(row, right, grid.Cell{Glyph: firstRune(b.Right), Color: color})
	}

	if title != "" && width > len(title)+4 {
		drawText(g, top, left+2, " "+title+" ", color)
	}
}

func firstRune(s string) rune {
	for _, r := range s {
		return r
	}
	return ' '
}

// wrapText greedily wraps s to the given display width, breaking long
// words when they exceed a whole line.
func wrapText(s string, width int) []string {
	if width < 1 {
		return nil
	}
	var lines []string
	for _, para := range strings.Split(s, "\n") {
		cur := ""
		curW := 0
		for _, word := range strings.Fields(para) {
			wordW := runewidth.StringWidth(word)
			switch {
			case curW == 0:
				// first word on the line
			case curW+1+wordW <= width:
				cur += " "
				curW++
			default:
				lines = append(lines, cur)
				cur, curW = "", 0
			}
			for wordW > width {
				head := runewidth.Truncate(word, width, "")
				lines = append(lines, head)
				word = word[len(head):]
				wordW = runewidth.StringWidth(word)
			}
			cur += word
			curW += wordW
		}
		lines = append(lines, cur)
	}
	return lines
}

// truncateLeft keeps the tail of s when it is wider than width, so the
// cursor end of a long input line stays visible.
func truncateLeft(s string, width int) string {
	if runewidth.StringWidth(s) <= width {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 && runewidth.StringWidth(string(runes)) > width {
		runes = runes[1:]
	}
	return string(runes)
}

func centerCol(width int, s string) int {
	col := (width - runewidth.StringWidth(s)) / 2
	if col < 0 {
		col = 0
	}
	return col
}
