//go:build !windows

package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type interactiveModel struct {
	results    map[string]result
	spinner    spinner.Model
	running    string
	list       []scenario
	cfg        runConfig
	selected   int
	runningAll bool
}

type resultMsg result

func newInteractiveModel(list []scenario, cfg runConfig) *interactiveModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	return &interactiveModel{
		list:    list,
		cfg:     cfg,
		spinner: sp,
		results: make(map[string]result),
	}
}

func (m *interactiveModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m *interactiveModel) start(s scenario) tea.Cmd {
	m.running = s.name
	return func() tea.Msg {
		return resultMsg(execute(s, m.cfg))
	}
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit

		case "up", "k":
			if m.selected > 0 {
				m.selected--
			}

		case "down", "j":
			if m.selected < len(m.list)-1 {
				m.selected++
			}

		case "enter":
			if m.running == "" {
				return m, m.start(m.list[m.selected])
			}

		case "a":
			if m.running == "" {
				return m, m.runAll(0)
			}
		}

	case resultMsg:
		r := result(msg)
		if r.err == nil && r.live != 0 {
			r.err = fmt.Errorf("%d wrapped objects still live", r.live)
		}
		m.results[r.name] = r
		m.running = ""
		if next := m.indexOf(r.name) + 1; m.runningAll && next < len(m.list) {
			return m, m.runAll(next)
		}
		m.runningAll = false

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m *interactiveModel) runAll(from int) tea.Cmd {
	m.runningAll = true
	return m.start(m.list[from])
}

func (m *interactiveModel) indexOf(name string) int {
	for i, s := range m.list {
		if s.name == name {
			return i
		}
	}
	return -1
}

func (m *interactiveModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("refcheck"))
	b.WriteString(fmt.Sprintf(" threads=%d iterations=%d\n\n", m.cfg.threads, m.cfg.iterations))

	for i, s := range m.list {
		line := fmt.Sprintf("%-12s %s", s.name, m.status(s.name))
		if i == m.selected {
			b.WriteString(selectedStyle.Render("> " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}

	if r, ok := m.results[m.list[m.selected].name]; ok {
		b.WriteString("\n")
		b.WriteString(fmt.Sprintf("allocs=%d frees=%d duration=%v\n", r.allocs, r.frees, r.duration))
		if r.err != nil {
			b.WriteString(failStyle.Render(r.err.Error()))
		} else {
			b.WriteString(passStyle.Render(r.detail))
		}
		b.WriteString("\n")
	} else {
		b.WriteString("\n")
		b.WriteString(helpStyle.Render(m.list[m.selected].description))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("↑/↓ select • enter run • a run all • q quit"))
	return b.String()
}

func (m *interactiveModel) status(name string) string {
	if m.running == name {
		return m.spinner.View()
	}
	r, ok := m.results[name]
	switch {
	case !ok:
		return helpStyle.Render("-")
	case r.err != nil:
		return failStyle.Render("FAIL")
	default:
		return passStyle.Render("PASS")
	}
}

func runInteractive(list []scenario, cfg runConfig) error {
	p := tea.NewProgram(newInteractiveModel(list, cfg), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
