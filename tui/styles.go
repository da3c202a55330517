package tui

import (
	"github.com/charmbracelet/lipgloss"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/lalomorales22/megacli/grid"
)

var titleStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("205"))

// cellColor parses a hex theme color into the RGB used for grid cells.
func cellColor(hex string) grid.RGB {
	c, err := colorful.Hex(hex)
	if err != nil {
		return grid.RGB{R: 255, G: 255, B: 255}
	}
	r, g, b := c.RGB255()
	return grid.RGB{R: r, G: g, B: b}
}

var (
	colorUser    = cellColor("#8ec07c")
	colorBorder  = cellColor("#ebdbb2")
	colorInput   = cellColor("#83a598")
	colorFooter  = cellColor("#7c6f64")
	colorHelp    = cellColor("#8ec8d4")
	colorWelcome = cellColor("#fbf1c7")
	colorSystem  = cellColor("#928374")
)
