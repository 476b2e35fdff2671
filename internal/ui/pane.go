package ui

import (
	"fmt"
	"strings"

	"github.com/samsamfire/canmon/pkg/msg"
)

// A Column maps one table field onto a pane column through a typed
// formatter, resolved once at pane construction.
type Column struct {
	Title  string
	Width  int
	Format func(m msg.Message) string
}

// A Pane is one scrollable view over the message table, restricted to a
// set of message types. Scrolling shifts the window into the filtered
// table instead of redrawing the full table each frame.
type Pane struct {
	Name    string
	Types   []msg.Type
	Columns []Column

	top    int
	cursor int
}

func NewPane(name string, types []msg.Type, columns []Column) *Pane {
	return &Pane{Name: name, Types: types, Columns: columns}
}

// ScrollUp moves the cursor, shifting the window when it hits the top.
func (p *Pane) ScrollUp(rate int) {
	for i := 0; i < rate; i++ {
		p.cursor--
		if p.cursor < 0 {
			p.cursor = 0
			p.top--
			if p.top < 0 {
				p.top = 0
			}
		}
	}
}

// ScrollDown moves the cursor, shifting the window past the bottom edge.
func (p *Pane) ScrollDown(rate int, visible int, total int) {
	for i := 0; i < rate; i++ {
		p.cursor++
		if p.cursor >= visible {
			p.cursor = visible - 1
			if p.cursor < 0 {
				p.cursor = 0
			}
			if p.top+visible < total {
				p.top++
			}
		}
	}
}

func (p *Pane) ResetScroll() {
	p.top = 0
	p.cursor = 0
}

// Render draws the pane into a string of exactly height lines.
func (p *Pane) Render(table *msg.Table, width int, height int, selected bool, st styles) string {
	filtered := table.Filter(p.Types...)
	total := filtered.Len()

	rows := height - 2 // title line + column header line
	if rows < 0 {
		rows = 0
	}
	// Clamp the window if entries scrolled away under us
	if p.top > total-rows {
		p.top = total - rows
	}
	if p.top < 0 {
		p.top = 0
	}
	window := filtered.Window(p.top, p.top+rows)

	var b strings.Builder
	title := fmt.Sprintf("%s (%d)", p.Name, total)
	if selected {
		b.WriteString(st.paneTitleSel.Render("> " + title))
	} else {
		b.WriteString(st.paneTitle.Render("  " + title))
	}
	b.WriteString("\n")
	b.WriteString(st.colHeader.Render(p.renderHeader(width)))
	b.WriteString("\n")

	for i, message := range window {
		line := p.renderRow(message, width)
		if selected && i == p.cursor {
			b.WriteString(st.rowSel.Render(line))
		} else {
			b.WriteString(st.row.Render(line))
		}
		b.WriteString("\n")
	}
	for i := len(window); i < rows; i++ {
		b.WriteString("\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func (p *Pane) renderHeader(width int) string {
	cells := make([]string, 0, len(p.Columns))
	for _, col := range p.Columns {
		cells = append(cells, pad(col.Title, col.Width))
	}
	return clip(strings.Join(cells, "  "), width)
}

func (p *Pane) renderRow(message msg.Message, width int) string {
	cells := make([]string, 0, len(p.Columns))
	for _, col := range p.Columns {
		cells = append(cells, pad(col.Format(message), col.Width))
	}
	return clip(strings.Join(cells, "  "), width)
}

func pad(s string, width int) string {
	if len(s) > width {
		return s[:width]
	}
	return s + strings.Repeat(" ", width-len(s))
}

func clip(s string, width int) string {
	if width > 0 && len(s) > width {
		return s[:width]
	}
	return s
}
