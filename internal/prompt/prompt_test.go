// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package prompt

import (
	"bytes"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/envcmp/envcmp/internal/envs"
)

var sample = []envs.Environment{
	{Name: "base", Kind: envs.KindConda, Path: "/opt/conda"},
	{Name: "proj", Kind: envs.KindConda, Path: "/opt/conda/envs/proj"},
	{Name: "ml", Kind: envs.KindConda, Path: "/opt/conda/envs/ml"},
}

func TestKind(t *testing.T) {
	tests := []struct {
		in      string
		want    envs.Kind
		wantErr bool
	}{
		{"\n", envs.KindConda, false},
		{"c\n", envs.KindConda, false},
		{"v\n", envs.KindVirtualenv, false},
		{"v", envs.KindVirtualenv, false},
		{"x\n", envs.KindConda, true},
	}

	for _, tt := range tests {
		t.Run(strings.TrimSpace(tt.in), func(t *testing.T) {
			var out bytes.Buffer
			got, err := New(strings.NewReader(tt.in), &out).Kind()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Contains(t, out.String(), "(c/v) [c]")
		})
	}
}

func TestKind_EOF(t *testing.T) {
	_, err := New(strings.NewReader(""), &bytes.Buffer{}).Kind()
	assert.ErrorIs(t, err, ErrAborted)
}

func TestShowAndChoose(t *testing.T) {
	var out bytes.Buffer
	p := New(strings.NewReader("2\nml\n"), &out)

	p.Show(envs.KindConda, sample)
	first, err := p.Choose("first", sample)
	require.NoError(t, err)
	second, err := p.Choose("second", sample)
	require.NoError(t, err)

	assert.Equal(t, "proj", first.Name)
	assert.Equal(t, "ml", second.Name)
	assert.Contains(t, out.String(), "Available conda environments:\n1: base (/opt/conda)\n")
	assert.Contains(t, out.String(), "Enter the number for the second environment: ")
}

func TestChoose_Invalid(t *testing.T) {
	p := New(strings.NewReader("9\n"), &bytes.Buffer{})
	_, err := p.Choose("first", sample)
	assert.ErrorIs(t, err, envs.ErrInvalidSelection)
}

func press(m tea.Model, msgs ...tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	for _, msg := range msgs {
		m, cmd = m.Update(msg)
	}
	return m, cmd
}

var (
	down  = tea.KeyMsg{Type: tea.KeyDown}
	space = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	enter = tea.KeyMsg{Type: tea.KeyEnter}
	quit  = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}}
)

func TestPicker_SelectsInOrder(t *testing.T) {
	m, cmd := press(pickerModel{items: sample}, down, down, space, tea.KeyMsg{Type: tea.KeyUp}, space, enter)

	require.NotNil(t, cmd)
	got := m.(pickerModel).chosen()
	require.Len(t, got, 2)
	assert.Equal(t, "ml", got[0].Name)
	assert.Equal(t, "proj", got[1].Name)
}

func TestPicker_EnterNeedsTwo(t *testing.T) {
	_, cmd := press(pickerModel{items: sample}, space, enter)
	assert.Nil(t, cmd)
}

func TestPicker_ToggleOffAndLimit(t *testing.T) {
	m, _ := press(pickerModel{items: sample}, space, space, down, space, down, space)
	pm := m.(pickerModel)
	assert.Equal(t, []int{1, 2}, pm.selected)

	m, _ = press(pm, tea.KeyMsg{Type: tea.KeyUp}, tea.KeyMsg{Type: tea.KeyUp}, space)
	assert.Equal(t, []int{1, 2}, m.(pickerModel).selected)
}

func TestPicker_Quit(t *testing.T) {
	m, cmd := press(pickerModel{items: sample}, space, down, space, quit)
	require.NotNil(t, cmd)
	assert.Empty(t, m.(pickerModel).chosen())
}

func TestPicker_View(t *testing.T) {
	m, _ := press(pickerModel{items: sample}, down, space)
	view := m.(pickerModel).View()

	assert.Contains(t, view, "Select two environments")
	assert.Contains(t, view, "[1] proj (/opt/conda/envs/proj)")
	assert.Contains(t, view, "[ ] base (/opt/conda)")
}
