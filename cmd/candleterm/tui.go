package main

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/yitech/candleterm/chart"
	"github.com/yitech/candleterm/series"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#aaaaaa"))
	footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#555555"))
	pausedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#e0b04c"))
)

// seriesMsg signals that the store changed and the chart must redraw.
type seriesMsg struct{}

type model struct {
	symbol   string
	interval string
	ch       *chart.Chart
	store    *series.Store
	state    *chart.State
	updates  <-chan struct{}

	width  int
	height int
}

func newModel(symbol, interval string, ch *chart.Chart, store *series.Store, updates <-chan struct{}) model {
	return model{
		symbol:   symbol,
		interval: interval,
		ch:       ch,
		store:    store,
		state:    chart.NewState(),
		updates:  updates,
	}
}

func (m model) Init() tea.Cmd {
	return waitForUpdate(m.updates)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "left", "h":
			m.pan(-1)
		case "right", "l":
			m.pan(+1)
		case "esc", "r":
			m.state.ResetCursor()
		case "f":
			m.toggleFit()
		}
		return m, nil

	case seriesMsg:
		return m, waitForUpdate(m.updates)
	}

	return m, nil
}

func (m model) View() string {
	if m.width == 0 {
		return "connecting…"
	}

	chartH := m.height - 2
	if chartH < 1 {
		chartH = 1
	}
	buf := chart.NewCellBuffer(m.width, chartH)
	candles := m.store.Snapshot()
	m.ch.Render(buf, chart.Rect{X: 0, Y: 0, Width: m.width, Height: chartH}, candles, m.state)

	var b strings.Builder
	b.WriteString(m.renderHeader(candles))
	b.WriteByte('\n')
	b.WriteString(buf.String())
	b.WriteByte('\n')
	b.WriteString(footerStyle.Render("[←/→] pan  [esc] live  [f] fit  [q] quit"))
	return b.String()
}

// waitForUpdate blocks on the store's change channel and returns a Cmd
// that fires seriesMsg.
func waitForUpdate(ch <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		<-ch
		return seriesMsg{}
	}
}

// pan moves the window cursor by dir intervals, clamped to the padded
// series. Panning right past the newest candle snaps back to live.
func (m *model) pan(dir int64) {
	info := m.state.Info
	if info.LastReal == 0 {
		return
	}
	step := info.Interval.Millis()

	cur, ok := m.state.Cursor()
	if !ok {
		cur = info.LastReal
	}
	cur += dir * step

	if cur >= info.LastReal {
		m.state.ResetCursor()
		return
	}
	if cur < info.Earliest {
		cur = info.Earliest
	}
	m.state.SetCursor(cur)
}

// toggleFit flips between one-candle-per-column and stretch-to-fit
// compositing. Both modes share the window, so a pinned cursor carries
// across the toggle.
func (m *model) toggleFit() {
	if m.ch.FitModeSet() == chart.Fit {
		m.ch.SetFitMode(chart.Fixed)
	} else {
		m.ch.SetFitMode(chart.Fit)
	}
}

func (m model) renderHeader(candles []chart.Candle) string {
	if len(candles) == 0 {
		return headerStyle.Render(fmt.Sprintf("%s  %s  waiting for data…", m.symbol, m.interval))
	}
	last := candles[len(candles)-1]
	line := fmt.Sprintf("%s  %s  O:%.2f  H:%.2f  L:%.2f  C:%.2f",
		m.symbol, m.interval, last.Open, last.High, last.Low, last.Close)

	if cur, ok := m.state.Cursor(); ok {
		at := time.UnixMilli(cur).UTC().Format("2006/01/02 15:04")
		return headerStyle.Render(line) + "  " + pausedStyle.Render("⏸ "+at)
	}
	return headerStyle.Render(line)
}

// runTUI wires a store to a bubbletea program and blocks until exit.
// Store changes are coalesced through a 1-slot channel so a fast feed
// cannot outrun the renderer.
func runTUI(symbol, interval string, ch *chart.Chart, store *series.Store) error {
	updates := make(chan struct{}, 1)
	tok := store.OnChange(func() {
		select {
		case updates <- struct{}{}:
		default:
		}
	})
	defer tok.Unsubscribe()

	p := tea.NewProgram(
		newModel(symbol, interval, ch, store, updates),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
