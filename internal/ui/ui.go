package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/samsamfire/canmon/pkg/bus"
	"github.com/samsamfire/canmon/pkg/msg"
)

const (
	redrawInterval   = 50 * time.Millisecond
	defaultPoll      = time.Millisecond
	framesPerRedraw  = 256
	fastScrollRate   = 16
	timestampLayout  = "15:04:05.000"
	headerTimeFormat = "Mon Jan  2 15:04:05 2006"
)

type tickMsg time.Time

// The Dashboard is the bubbletea model owning the whole terminal view :
// a connectivity header, the heartbeat pane, the miscellaneous pane and
// a key hint footer. It is also the single consumer of the frame bus,
// draining it into the message table once per redraw tick.
type Dashboard struct {
	frameBus    *bus.Bus
	table       *msg.Table
	interfaces  []string
	st          styles
	panes       []*Pane
	selected    int
	width       int
	height      int
	pollTimeout time.Duration
}

func NewDashboard(frameBus *bus.Bus, table *msg.Table, interfaces []string) *Dashboard {
	hbPane := NewPane("Heartbeats", []msg.Type{msg.TypeHeartbeat}, []Column{
		{Title: "Node ID", Width: 8, Format: func(m msg.Message) string { return fmt.Sprintf("0x%02X", m.Node) }},
		{Title: "State", Width: 24, Format: func(m msg.Message) string { return m.Text }},
		{Title: "Interface", Width: 10, Format: func(m msg.Message) string { return m.Interface }},
		{Title: "Updated", Width: 12, Format: func(m msg.Message) string { return m.Timestamp.Format(timestampLayout) }},
	})
	miscPane := NewPane("Miscellaneous",
		[]msg.Type{msg.TypeNMT, msg.TypeSync, msg.TypeTime, msg.TypeEmcy, msg.TypeSDO, msg.TypePDO},
		[]Column{
			{Title: "COB ID", Width: 7, Format: func(m msg.Message) string { return m.CobId() }},
			{Title: "Node", Width: 5, Format: func(m msg.Message) string { return fmt.Sprintf("0x%02X", m.Node) }},
			{Title: "Type", Width: 5, Format: func(m msg.Message) string { return m.Type.String() }},
			{Title: "Message", Width: 48, Format: func(m msg.Message) string { return m.Text }},
			{Title: "Interface", Width: 10, Format: func(m msg.Message) string { return m.Interface }},
		})
	return &Dashboard{
		frameBus:    frameBus,
		table:       table,
		interfaces:  interfaces,
		st:          newStyles(),
		panes:       []*Pane{hbPane, miscPane},
		pollTimeout: defaultPoll,
	}
}

// SetPollTimeout adjusts how long a single empty bus poll may wait.
// Values reaching the redraw interval would freeze input handling and
// are ignored.
func (d *Dashboard) SetPollTimeout(timeout time.Duration) {
	if timeout > 0 && timeout < redrawInterval {
		d.pollTimeout = timeout
	}
}

func (d *Dashboard) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(redrawInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (d *Dashboard) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch message := message.(type) {
	case tea.WindowSizeMsg:
		d.width = message.Width
		d.height = message.Height
		for _, pane := range d.panes {
			pane.ResetScroll()
		}
		return d, nil
	case tea.KeyMsg:
		return d.handleKey(message)
	case tickMsg:
		d.drain()
		return d, tick()
	}
	return d, nil
}

// drain pulls at most framesPerRedraw records off the bus per tick so a
// babbling bus cannot starve the render loop.
func (d *Dashboard) drain() {
	for i := 0; i < framesPerRedraw; i++ {
		rec := d.frameBus.Receive(d.pollTimeout)
		if rec == nil {
			return
		}
		d.table.Insert(*rec)
	}
}

func (d *Dashboard) handleKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	pane := d.panes[d.selected]
	visible, total := d.paneExtent(pane)
	switch key.String() {
	case "q", "ctrl+c":
		return d, tea.Quit
	case "up", "k":
		pane.ScrollUp(1)
	case "down", "j":
		pane.ScrollDown(1, visible, total)
	case "shift+up":
		pane.ScrollUp(fastScrollRate)
	case "shift+down":
		pane.ScrollDown(fastScrollRate, visible, total)
	case "tab", "ctrl+up", "ctrl+down":
		d.selected = (d.selected + 1) % len(d.panes)
	}
	return d, nil
}

func (d *Dashboard) paneExtent(pane *Pane) (visible int, total int) {
	visible = d.paneHeight() - 2
	if visible < 0 {
		visible = 0
	}
	total = d.table.Filter(pane.Types...).Len()
	if visible > total {
		visible = total
	}
	return visible, total
}

// paneHeight splits the space left by the header and footer lines.
func (d *Dashboard) paneHeight() int {
	h := (d.height - 2) / len(d.panes)
	if h < 3 {
		h = 3
	}
	return h
}

func (d *Dashboard) View() string {
	var b strings.Builder
	b.WriteString(d.renderHeader())
	b.WriteString("\n")
	for i, pane := range d.panes {
		b.WriteString(pane.Render(d.table, d.width, d.paneHeight(), i == d.selected, d.st))
		b.WriteString("\n")
	}
	b.WriteString(d.renderFooter())
	return b.String()
}

// renderHeader draws the wall clock and one colored label per configured
// interface : green while its device reports running, red once gone.
func (d *Dashboard) renderHeader() string {
	active := make(map[string]bool)
	for _, dev := range d.frameBus.ActiveDevices() {
		active[dev.Name()] = true
	}
	parts := []string{d.st.header.Render(time.Now().Format(headerTimeFormat) + ",")}
	for _, name := range d.interfaces {
		if active[name] {
			parts = append(parts, d.st.ifaceUp.Render(name))
		} else {
			parts = append(parts, d.st.ifaceDown.Render(name))
		}
	}
	return clip(strings.Join(parts, " "), d.width)
}

func (d *Dashboard) renderFooter() string {
	footer := "q: quit, tab: switch pane, up/down: scroll, shift+up/down: fast scroll"
	if dropped := d.frameBus.Dropped(); dropped > 0 {
		footer = fmt.Sprintf("%s | dropped: %d", footer, dropped)
	}
	return d.st.footer.Render(clip(footer, d.width))
}
