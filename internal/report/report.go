// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package report

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/envcmp/envcmp/internal/differ"
	"github.com/envcmp/envcmp/internal/envs"
	"github.com/envcmp/envcmp/internal/log"
	"github.com/envcmp/envcmp/internal/metadata"
	"github.com/envcmp/envcmp/internal/packages"
)

// ErrWrite is returned when the report file cannot be written.
var ErrWrite = errors.New("cannot write report")

// Display says how a section's values are shown next to their keys.
type Display string

const (
	// DisplayVersion shows "name  version".
	DisplayVersion Display = "version"
	// DisplayValue shows "NAME=value".
	DisplayValue Display = "value"
	// DisplayKey shows the key only; values are script bodies.
	DisplayKey Display = "key"
)

// Detail is extra text attached to one common key, such as a script diff.
type Detail struct {
	Key  string `json:"key" yaml:"key"`
	Text string `json:"text" yaml:"text"`
}

// Section is one comparison.
type Section struct {
	Title   string        `json:"title" yaml:"title"`
	LabelA  string        `json:"label_a" yaml:"label_a"`
	LabelB  string        `json:"label_b" yaml:"label_b"`
	Display Display       `json:"display" yaml:"display"`
	Result  differ.Result `json:"result" yaml:"result"`
	Details []Detail      `json:"details,omitempty" yaml:"details,omitempty"`
}

// Report is the full comparison of environments A and B.
type Report struct {
	A        envs.Environment `json:"a" yaml:"a"`
	B        envs.Environment `json:"b" yaml:"b"`
	Sections []Section        `json:"sections" yaml:"sections"`
	Warnings []string         `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// Side is everything gathered about one environment.
type Side struct {
	Env      envs.Environment
	Packages packages.Listing
	Metadata metadata.Metadata
}

// Options tune Build.
type Options struct {
	// ScriptDiff attaches a unified diff to common scripts whose bodies
	// differ.
	ScriptDiff bool
}

// Build compares a and b. Sections appear in a fixed order: conda packages
// (when both sides have a conda view), pip packages, variables, startup
// scripts, then the conda vs pip cross-check of each conda environment.
func Build(a, b Side, opts Options) Report {
	r := Report{A: a.Env, B: b.Env}
	nameA, nameB := a.Env.Name, b.Env.Name

	if a.Packages.Conda != nil && b.Packages.Conda != nil {
		r.add("Conda packages", nameA, nameB, DisplayVersion, a.Packages.Conda, b.Packages.Conda)
	}
	r.add("Pip packages", nameA, nameB, DisplayVersion, a.Packages.Pip, b.Packages.Pip)
	r.add("Variables", nameA, nameB, DisplayValue, a.Metadata.Variables, b.Metadata.Variables)

	scripts := r.add("Startup scripts", nameA, nameB, DisplayKey, a.Metadata.Scripts, b.Metadata.Scripts)
	if opts.ScriptDiff {
		for _, p := range scripts.Result.Common {
			if d := differ.Unified(nameA+"/"+p.Key, nameB+"/"+p.Key, p.A, p.B); d != "" {
				scripts.Details = append(scripts.Details, Detail{Key: p.Key, Text: d})
			}
		}
	}

	for _, side := range []Side{a, b} {
		if side.Packages.Conda == nil {
			continue
		}
		r.add("Conda vs Pip in "+side.Env.Name, "conda", "pip", DisplayVersion, side.Packages.Conda, side.Packages.Pip)
	}

	for _, side := range []Side{a, b} {
		for _, w := range append(append([]error{}, side.Packages.Warnings...), side.Metadata.Warnings...) {
			r.Warnings = append(r.Warnings, side.Env.Name+": "+w.Error())
		}
		for _, n := range side.Packages.Notices {
			r.Warnings = append(r.Warnings, side.Env.Name+": "+n)
		}
	}

	return r
}

func (r *Report) add(title, labelA, labelB string, display Display, a, b *differ.Set) *Section {
	r.Sections = append(r.Sections, Section{
		Title:   title,
		LabelA:  labelA,
		LabelB:  labelB,
		Display: display,
		Result:  differ.Compare(a, b),
	})
	return &r.Sections[len(r.Sections)-1]
}

var nameReplacer = strings.NewReplacer("/", "_", "\\", "_")

// FileName returns the report file name for environments a and b.
func FileName(a, b string) string {
	return nameReplacer.Replace(a) + "_vs_" + nameReplacer.Replace(b) + ".txt"
}

// Write renders r as plain text into dir, replacing any existing file, and
// returns the file's path. Failures wrap ErrWrite.
func Write(dir string, r Report) (string, error) {
	if dir == "" {
		dir = "."
	}
	path := filepath.Join(dir, FileName(r.A.Name, r.B.Name))

	var buf bytes.Buffer
	if err := Render(&buf, r, PlainStyles()); err != nil {
		return path, fmt.Errorf("%w: %w", ErrWrite, err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil { //nolint:gosec,mnd
		return path, fmt.Errorf("%w: %w", ErrWrite, err)
	}

	log.Infof("wrote %s (%s)", path, humanize.Bytes(uint64(buf.Len()))) //nolint:gosec
	return path, nil
}
