// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package prompt

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/envcmp/envcmp/internal/envs"
)

type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	Toggle key.Binding
	Done   key.Binding
	Quit   key.Binding
}

var keys = keyMap{
	Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Toggle: key.NewBinding(key.WithKeys(" ", "space"), key.WithHelp("space", "toggle")),
	Done:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "compare")),
	Quit:   key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q/esc", "quit")),
}

var (
	pickerTitle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#f6be00"))
	pickerCursor = lipgloss.NewStyle().Foreground(lipgloss.Color("#623CE4"))
	pickerHelp   = lipgloss.NewStyle().Faint(true)
)

// Pick shows a full-screen list of environments and returns the two the
// user marked, in the order they were marked.
func Pick(list []envs.Environment) ([]envs.Environment, error) {
	p := tea.NewProgram(pickerModel{items: list})
	m, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("picker: %w", err)
	}
	chosen := m.(pickerModel).chosen()
	if len(chosen) != 2 { //nolint:mnd
		return nil, ErrAborted
	}
	return chosen, nil
}

type pickerModel struct {
	items    []envs.Environment
	cursor   int
	selected []int
	quit     bool
}

func (m pickerModel) Init() tea.Cmd { return nil }

func (m pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	k, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(k, keys.Quit):
		m.quit = true
		m.selected = nil
		return m, tea.Quit
	case key.Matches(k, keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(k, keys.Down):
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}
	case key.Matches(k, keys.Toggle):
		if i := m.position(m.cursor); i >= 0 {
			m.selected = append(m.selected[:i:i], m.selected[i+1:]...)
		} else if len(m.selected) < 2 { //nolint:mnd
			m.selected = append(m.selected, m.cursor)
		}
	case key.Matches(k, keys.Done):
		if len(m.selected) == 2 { //nolint:mnd
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m pickerModel) View() string {
	var b strings.Builder
	b.WriteString(pickerTitle.Render("Select two environments to compare:") + "\n\n")

	for i, env := range m.items {
		cursor := " "
		if m.cursor == i {
			cursor = pickerCursor.Render(">")
		}
		mark := " "
		if pos := m.position(i); pos >= 0 {
			mark = fmt.Sprintf("%d", pos+1)
		}
		fmt.Fprintf(&b, "%s [%s] %s\n", cursor, mark, env)
	}

	help := []string{}
	for _, binding := range []key.Binding{keys.Toggle, keys.Done, keys.Quit} {
		h := binding.Help()
		help = append(help, h.Key+": "+h.Desc)
	}
	b.WriteString("\n" + pickerHelp.Render(strings.Join(help, ", ")) + "\n")
	return b.String()
}

// position returns where item sits in the selection order, or -1.
func (m pickerModel) position(item int) int {
	for i, s := range m.selected {
		if s == item {
			return i
		}
	}
	return -1
}

func (m pickerModel) chosen() []envs.Environment {
	if m.quit {
		return nil
	}
	out := make([]envs.Environment, 0, len(m.selected))
	for _, i := range m.selected {
		out = append(out, m.items[i])
	}
	return out
}
