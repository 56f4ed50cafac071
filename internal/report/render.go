// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package report

import (
	"encoding/json"
	"fmt"
	"image/color"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/lipgloss/v2/table"
	"gopkg.in/yaml.v2"

	"github.com/envcmp/envcmp/internal/config"
	"github.com/envcmp/envcmp/internal/differ"
)

// Styles decorate the rendered text.
type Styles struct {
	Title   lipgloss.Style
	Heading lipgloss.Style
	OnlyA   lipgloss.Style
	OnlyB   lipgloss.Style
	Common  lipgloss.Style
}

// PlainStyles render without any escape sequences. The report file uses
// these.
func PlainStyles() Styles {
	plain := lipgloss.NewStyle()
	return Styles{Title: plain, Heading: plain, OnlyA: plain, OnlyB: plain, Common: plain}
}

// ColorStyles highlights the only-in groups. Colors come from the config
// (colors.title, colors.only_a, colors.only_b) or a default suited to the
// terminal background.
func ColorStyles(isDark bool) Styles {
	resolveColor := func(key string, light string, dark string) color.Color {
		if c, err := config.GetString(key); err == nil && c != "" {
			return lipgloss.Color(c)
		}
		if isDark {
			return lipgloss.Color(dark)
		}
		return lipgloss.Color(light)
	}

	title := resolveColor("colors.title", "#b08800", "#f6be00")
	return Styles{
		Title:   lipgloss.NewStyle().Bold(true).Foreground(title),
		Heading: lipgloss.NewStyle().Bold(true),
		OnlyA:   lipgloss.NewStyle().Foreground(resolveColor("colors.only_a", "#d7005f", "#ff5f87")),
		OnlyB:   lipgloss.NewStyle().Foreground(resolveColor("colors.only_b", "#0088a0", "#00c8f0")),
		Common:  lipgloss.NewStyle(),
	}
}

// Render writes r as text.
func Render(w io.Writer, r Report, st Styles) error {
	var b strings.Builder

	fmt.Fprintln(&b, st.Title.Render(fmt.Sprintf("%s vs %s", r.A, r.B)))

	for _, s := range r.Sections {
		fmt.Fprintln(&b)
		fmt.Fprintln(&b, st.Heading.Render(s.Title))

		group(&b, "Only in "+s.LabelA, entryRows(s.Result.OnlyA, s.Display), st.OnlyA)
		group(&b, "Only in "+s.LabelB, entryRows(s.Result.OnlyB, s.Display), st.OnlyB)
		group(&b, "Common", pairRows(s.Result.Common, s.Display), st.Common)

		for _, d := range s.Details {
			fmt.Fprintln(&b)
			fmt.Fprint(&b, indent(d.Text, "    "))
		}
	}

	if len(r.Warnings) > 0 {
		fmt.Fprintln(&b)
		fmt.Fprintln(&b, st.Heading.Render("Warnings"))
		for _, warning := range r.Warnings {
			fmt.Fprintln(&b, "  "+warning)
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// Encode writes r as json or yaml.
func Encode(w io.Writer, r Report, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	case "yaml":
		out, err := yaml.Marshal(r)
		if err != nil {
			return fmt.Errorf("yaml marshal: %w", err)
		}
		_, err = w.Write(out)
		return err
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

// group writes one titled block. An empty group prints "none" so every group
// appears in the output.
func group(b *strings.Builder, title string, rows [][]string, style lipgloss.Style) {
	fmt.Fprintf(b, "  %s (%d)\n", title, len(rows))
	if len(rows) == 0 {
		fmt.Fprintln(b, "    none")
		return
	}

	t := table.New().
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		Border(lipgloss.HiddenBorder()).
		StyleFunc(func(_, col int) lipgloss.Style {
			s := style.PaddingLeft(4) //nolint:mnd
			if col > 0 {
				s = style.PaddingLeft(2) //nolint:mnd
			}
			return s
		}).
		Rows(rows...)

	for _, line := range strings.Split(t.String(), "\n") {
		if line = strings.TrimRight(line, " "); line != "" {
			fmt.Fprintln(b, line)
		}
	}
}

func entryRows(entries []differ.Entry, display Display) [][]string {
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		switch display {
		case DisplayVersion:
			rows = append(rows, []string{e.Key, e.Value})
		case DisplayValue:
			rows = append(rows, []string{e.Key + "=" + e.Value})
		default:
			rows = append(rows, []string{e.Key})
		}
	}
	return rows
}

func pairRows(pairs []differ.Pair, display Display) [][]string {
	rows := make([][]string, 0, len(pairs))
	for _, p := range pairs {
		switch display {
		case DisplayVersion:
			rows = append(rows, []string{p.Key, p.A, p.B})
		case DisplayValue:
			rows = append(rows, []string{p.Key + "=" + p.A, p.Key + "=" + p.B})
		default:
			rows = append(rows, []string{p.Key})
		}
	}
	return rows
}

func indent(s, prefix string) string {
	var b strings.Builder
	for _, line := range strings.SplitAfter(s, "\n") {
		if line != "" {
			b.WriteString(prefix + line)
		}
	}
	return b.String()
}
