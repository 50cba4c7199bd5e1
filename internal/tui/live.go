// Package tui renders a running simulation as a live terminal dashboard.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/turbsim/internal/config"
	"github.com/san-kum/turbsim/internal/host"
)

var (
	cyan    = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	white   = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dim     = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	dimmer  = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	green   = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	yellow  = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	magenta = lipgloss.NewStyle().Foreground(lipgloss.Color("213"))
)

const historyLen = 60

type model struct {
	cfg    *config.Config
	cancel context.CancelFunc

	ticks <-chan host.Tick
	done  <-chan error

	latest     host.Tick
	rotorHist  []float64
	torqueHist []float64
	seen       int

	finished bool
	runErr   error

	width  int
	height int
}

type tickMsg time.Time

func frame() tea.Cmd {
	return tea.Tick(50*time.Millisecond, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m model) Init() tea.Cmd { return frame() }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "escape":
			m.cancel()
			return m, tea.Quit
		}
		return m, nil
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tickMsg:
		m.drain()
		if m.finished {
			return m, nil
		}
		return m, frame()
	}
	return m, nil
}

// drain pulls everything the simulation produced since the last frame.
func (m *model) drain() {
	for {
		select {
		case t, ok := <-m.ticks:
			if !ok {
				m.ticks = nil
				continue
			}
			m.latest = t
			m.seen++
			m.rotorHist = append(m.rotorHist, t.RotorSpeed)
			if len(m.rotorHist) > historyLen {
				m.rotorHist = m.rotorHist[1:]
			}
			m.torqueHist = append(m.torqueHist, t.Torque)
			if len(m.torqueHist) > historyLen {
				m.torqueHist = m.torqueHist[1:]
			}
		case err := <-m.done:
			m.finished = true
			m.runErr = err
			return
		default:
			return
		}
	}
}

func (m model) View() string {
	var b strings.Builder

	statusIcon := green.Render("●")
	statusText := green.Render("running")
	if m.finished {
		if m.runErr != nil {
			statusIcon = yellow.Render("○")
			statusText = yellow.Render("failed: " + m.runErr.Error())
		} else {
			statusIcon = dim.Render("○")
			statusText = dim.Render("done")
		}
	}
	b.WriteString(fmt.Sprintf("\n   %s %s  %s\n",
		statusIcon, cyan.Render(m.cfg.Stages.TurbineControl), statusText))

	duration := m.cfg.Sim.Duration
	progress := 0.0
	if duration > 0 {
		progress = m.latest.Time / duration
	}
	if progress > 1 {
		progress = 1
	}
	barWidth := 36
	filled := int(progress * float64(barWidth))
	timeStr := fmt.Sprintf("%.1fs/%.0fs", m.latest.Time, duration)
	bar := cyan.Render(strings.Repeat("━", filled)) + dimmer.Render(strings.Repeat("─", barWidth-filled))
	b.WriteString(fmt.Sprintf("   %s %s  %s\n\n", bar, dim.Render(timeStr), dim.Render(fmt.Sprintf("%d ticks", m.seen))))

	b.WriteString("   " + dim.Render("ω measured ") + white.Render(fmt.Sprintf("%7.3f rad/s", m.latest.RotorSpeed)))
	b.WriteString("   " + dim.Render("ω plant ") + white.Render(fmt.Sprintf("%7.3f rad/s", m.latest.PlantOmega)))
	b.WriteString("   " + dim.Render("τ demand ") + magenta.Render(fmt.Sprintf("%9.1f N·m", m.latest.Torque)))
	b.WriteString("\n\n")

	if len(m.rotorHist) > 1 {
		b.WriteString(fmt.Sprintf("   %s %s\n", dim.Render("ω"), cyan.Render(sparkline(m.rotorHist, 48))))
	}
	if len(m.torqueHist) > 1 {
		b.WriteString(fmt.Sprintf("   %s %s\n", dim.Render("τ"), magenta.Render(sparkline(m.torqueHist, 48))))
	}

	b.WriteString("\n" + dim.Render("   q quit") + "\n")
	return b.String()
}

func sparkline(data []float64, width int) string {
	if len(data) == 0 {
		return ""
	}
	chars := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}
	minVal, maxVal := data[0], data[0]
	for _, v := range data {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	rang := maxVal - minVal
	if rang == 0 {
		rang = 1
	}
	step := len(data) / width
	if step < 1 {
		step = 1
	}
	var b strings.Builder
	for i := 0; i < len(data); i += step {
		idx := int((data[i] - minVal) / rang * float64(len(chars)-1))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(chars) {
			idx = len(chars) - 1
		}
		b.WriteRune(chars[idx])
	}
	return b.String()
}

// Run drives a full closed-loop run behind a live dashboard. It returns the
// simulation result so the caller can persist it.
func Run(cfg *config.Config) (*host.Result, error) {
	h, err := host.New(cfg)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ticks := make(chan host.Tick, 256)
	done := make(chan error, 1)

	var result *host.Result
	go func() {
		r, err := h.RunWithCallback(ctx, func(t host.Tick) bool {
			select {
			case ticks <- t:
			default: // dashboard lags, drop the frame
			}
			return true
		})
		result = r
		close(ticks)
		done <- err
	}()

	m := model{
		cfg:    cfg,
		cancel: cancel,
		ticks:  ticks,
		done:   done,
		width:  80,
		height: 24,
	}

	p := tea.NewProgram(m)
	final, err := p.Run()
	if err != nil {
		return nil, err
	}
	cancel()

	fm := final.(model)
	if fm.runErr != nil && fm.runErr != context.Canceled {
		return result, fm.runErr
	}
	// Wait for the run goroutine if the user quit before it finished.
	if !fm.finished {
		if err := <-done; err != nil && err != context.Canceled {
			return result, err
		}
	}
	return result, nil
}
