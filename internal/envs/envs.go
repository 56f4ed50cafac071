// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package envs

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/envcmp/envcmp/internal/config"
	"github.com/envcmp/envcmp/internal/runner"
)

// ErrNoEnvironments is returned when discovery finds nothing to compare.
var ErrNoEnvironments = errors.New("no environments found")

// Environment is one discovered Python environment. It is passed explicitly
// to every query instead of relying on the activated shell.
type Environment struct {
	Name string `json:"name" yaml:"name"`
	Kind Kind   `json:"kind" yaml:"kind"`
	Path string `json:"path" yaml:"path"`
}

func (e Environment) String() string {
	return e.Name + " (" + e.Path + ")"
}

// Python returns the interpreter inside the environment. Package queries run
// through it so pip inspects this environment and no other.
func (e Environment) Python() string {
	if runtime.GOOS == "windows" {
		if e.Kind == KindConda {
			return filepath.Join(e.Path, "python.exe")
		}
		return filepath.Join(e.Path, "Scripts", "python.exe")
	}
	return filepath.Join(e.Path, "bin", "python")
}

// Stamp returns the latest modification time of the places a package install
// touches (conda-meta and site-packages). It is the zero time when none exist.
func (e Environment) Stamp() time.Time {
	candidates := []string{
		filepath.Join(e.Path, "conda-meta"),
		filepath.Join(e.Path, "conda-meta", "history"),
		filepath.Join(e.Path, "Lib", "site-packages"),
	}
	if matches, err := filepath.Glob(filepath.Join(e.Path, "lib", "python*", "site-packages")); err == nil {
		candidates = append(candidates, matches...)
	}

	var latest time.Time
	for _, c := range candidates {
		if fi, err := os.Stat(c); err == nil && fi.ModTime().After(latest) {
			latest = fi.ModTime()
		}
	}
	return latest
}

// uniqueNames qualifies names shared by several environments with their
// parent directory ("envs/proj", "me/proj"). Names still shared after that
// become the full path. Distinct names are left alone.
func uniqueNames(list []Environment) {
	qualify := func(rename func(Environment) string) {
		count := map[string]int{}
		for _, e := range list {
			count[e.Name]++
		}
		for i, e := range list {
			if count[e.Name] > 1 {
				list[i].Name = rename(e)
			}
		}
	}

	qualify(func(e Environment) string {
		if e.Name != filepath.Base(e.Path) {
			return e.Name
		}
		return filepath.Base(filepath.Dir(e.Path)) + "/" + e.Name
	})
	qualify(func(e Environment) string {
		return filepath.ToSlash(e.Path)
	})
}

// Enumerator lists the environments of one kind in display order.
type Enumerator interface {
	Enumerate(ctx context.Context) ([]Environment, error)
}

type options struct {
	condaExe string
	venvHome string
}

// Option customizes enumeration.
type Option func(*options)

// WithCondaExe overrides the conda executable.
func WithCondaExe(exe string) Option {
	return func(o *options) { o.condaExe = exe }
}

// WithVirtualenvHome overrides the directory scanned for virtualenvs.
func WithVirtualenvHome(dir string) Option {
	return func(o *options) { o.venvHome = dir }
}

// NewEnumerator returns the Enumerator for kind. Conda discovery shells out
// through r; virtualenv discovery only reads the filesystem.
func NewEnumerator(kind Kind, r runner.Runner, opts ...Option) Enumerator {
	o := options{
		condaExe: CondaExe(),
		venvHome: VirtualenvHome(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	if kind == KindVirtualenv {
		return &virtualenvEnumerator{home: o.venvHome}
	}
	return &condaEnumerator{exe: o.condaExe, runner: r}
}

// CondaExe resolves the conda executable: config conda.exe, then $CONDA_EXE,
// then "conda" from PATH.
func CondaExe() string {
	if exe, err := config.GetString("conda.exe"); err == nil && exe != "" {
		return expandHome(exe)
	}
	if exe := os.Getenv("CONDA_EXE"); exe != "" {
		return exe
	}
	return "conda"
}

// VirtualenvHome resolves the virtualenv directory: config virtualenv.home,
// then $WORKON_HOME, then ~/.virtualenvs.
func VirtualenvHome() string {
	if dir, err := config.GetString("virtualenv.home"); err == nil && dir != "" {
		return expandHome(dir)
	}
	if dir := os.Getenv("WORKON_HOME"); dir != "" {
		return expandHome(dir)
	}
	return expandHome("~/.virtualenvs")
}

func expandHome(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~"))
}
