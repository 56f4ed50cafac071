// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// docsgen writes markdown and man pages for every envcmp command into the
// directory named by its first argument. Flags come from the live command
// tree; descriptions and examples come from templates/envcmp.yaml.
package main

import (
	"embed"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"text/template"
	"time"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"

	"github.com/envcmp/envcmp/internal/command"
	"github.com/envcmp/envcmp/internal/meta"
)

//go:embed templates
var templates embed.FS

type Config struct {
	Subcommands []Subcommand `yaml:"subcommands"`
}

type Subcommand struct {
	ID          string    `yaml:"id"`
	Short       string    `yaml:"short"`
	Description string    `yaml:"description"`
	Usage       string    `yaml:"usage"`
	Flags       []Flag    `yaml:"-"`
	Examples    []Example `yaml:"examples"`
	Notes       []string  `yaml:"notes,omitempty"`
}

type Flag struct {
	ID          string
	Syntax      string
	Description string
	Default     string
	EnvVar      string
}

type Example struct {
	Command     string `yaml:"command"`
	Description string `yaml:"description"`
}

type TemplateData struct {
	Subcommand
	Date    string
	Version string
	IDUpper string
}

type Outputs struct {
	Template string
	Folder   string
	Prefix   string
	Suffix   string
}

// usageFlag and defaultFlag are the optional documentation methods of
// urfave/cli flags.
type usageFlag interface {
	GetUsage() string
	TakesValue() bool
}

type defaultFlag interface {
	GetDefaultText() string
}

func main() {
	docs := "docs"
	if len(os.Args) > 1 {
		docs = os.Args[1]
	}

	if err := generate(docs, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func generate(docs string, progress io.Writer) error {
	data, err := templates.ReadFile("templates/envcmp.yaml")
	if err != nil {
		return err
	}
	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return fmt.Errorf("parsing envcmp.yaml: %w", err)
	}

	app := command.NewApp(meta.Meta{})

	types := []Outputs{
		{Template: "templates/envcmp.md.tmpl", Folder: filepath.Join(docs, "commands"), Suffix: ".md"},
		{Template: "templates/envcmp.man.tmpl", Folder: filepath.Join(docs, "man", "share", "man1"), Prefix: "envcmp-", Suffix: ".1"},
	}

	for _, sub := range config.Subcommands {
		cmd := findCommand(app, sub.ID)
		if cmd == nil {
			return fmt.Errorf("no command %q in the command tree", sub.ID)
		}
		sub.Flags = flagsOf(cmd)
		if sub.Usage == "" {
			sub.Usage = cmd.UsageText
		}
		if sub.Short == "" {
			sub.Short = cmd.Usage
		}

		metadata := TemplateData{
			Subcommand: sub,
			Date:       time.Now().Format("January 2, 2006"),
			Version:    getVersion(),
			IDUpper:    strings.ToUpper(sub.ID),
		}

		for _, t := range types {
			path := filepath.Join(t.Folder, t.Prefix+sub.ID+t.Suffix)
			fmt.Fprintln(progress, "Generating", path)
			if err := render(t, path, metadata); err != nil {
				return err
			}
		}
	}
	return nil
}

func render(t Outputs, path string, metadata TemplateData) error {
	if err := os.MkdirAll(t.Folder, 0o755); err != nil { //nolint:mnd
		return err
	}

	tmpl, err := template.ParseFS(templates, t.Template)
	if err != nil {
		return err
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return tmpl.Execute(file, metadata)
}

// findCommand maps a document id to the command it describes. The root
// command's action is the comparison, documented as "compare".
func findCommand(app *cli.Command, id string) *cli.Command {
	if id == "compare" {
		return app
	}
	for _, c := range app.Commands {
		if c.Name == id {
			return c
		}
	}
	return nil
}

func flagsOf(cmd *cli.Command) []Flag {
	var result []Flag
	for _, f := range cmd.Flags {
		names := f.Names()

		syntax := make([]string, 0, len(names))
		for _, n := range names {
			if len(n) == 1 {
				syntax = append(syntax, "-"+n)
			} else {
				syntax = append(syntax, "--"+n)
			}
		}

		flag := Flag{ID: names[0], Syntax: strings.Join(syntax, ", ")}
		if u, ok := f.(usageFlag); ok {
			flag.Description = u.GetUsage()
			if u.TakesValue() {
				flag.Syntax += " value"
			}
		}
		if d, ok := f.(defaultFlag); ok {
			flag.Default = d.GetDefaultText()
		}
		if names[0] != "version" {
			flag.EnvVar = "ENVCMP_" + strings.ToUpper(strings.ReplaceAll(names[0], "-", "_"))
		}
		result = append(result, flag)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result
}

// getVersion returns the version string from git tags, stripping the leading
// "v" prefix. Falls back to "dev" if git describe fails.
func getVersion() string {
	out, err := exec.Command("git", "describe", "--tags", "--abbrev=0").Output()
	if err != nil {
		return "dev"
	}

	version := strings.TrimSpace(string(out))
	return strings.TrimPrefix(version, "v")
}
