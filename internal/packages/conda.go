// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package packages

import (
	"context"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/envcmp/envcmp/internal/differ"
	"github.com/envcmp/envcmp/internal/envs"
)

// listConda returns conda's view of env. Packages installed from the pypi
// channel belong to the pip view and are skipped.
func (l *Lister) listConda(ctx context.Context, env envs.Environment) (*differ.Set, []error) {
	out, err := l.runner.Run(ctx, l.condaExe, "list", "-p", env.Path, "--json")
	if err != nil {
		return differ.NewSet(), []error{fmt.Errorf("conda list: %w", err)}
	}
	if !gjson.ValidBytes(out) {
		return differ.NewSet(), []error{fmt.Errorf("conda list: invalid JSON output")}
	}

	all := differ.NewSet()
	gjson.ParseBytes(out).ForEach(func(_, pkg gjson.Result) bool {
		if pkg.Get("channel").String() == "pypi" {
			return true
		}
		if name := Canonical(pkg.Get("name").String()); name != "" {
			all.Put(name, pkg.Get("version").String())
		}
		return true
	})

	if !l.topLevel {
		return all, nil
	}

	requested, err := l.condaRequested(ctx, env)
	if err != nil {
		return all, []error{fmt.Errorf("conda history unavailable, listing all packages: %w", err)}
	}
	return all.Filter(func(name, _ string) bool { return requested[name] }), nil
}

// condaRequested returns the canonical names the user explicitly asked conda
// for, from the environment's history.
func (l *Lister) condaRequested(ctx context.Context, env envs.Environment) (map[string]bool, error) {
	out, err := l.runner.Run(ctx, l.condaExe, "env", "export", "-p", env.Path, "--from-history", "--json")
	if err != nil {
		return nil, err
	}
	if !gjson.ValidBytes(out) {
		return nil, fmt.Errorf("conda env export: invalid JSON output")
	}

	requested := map[string]bool{}
	gjson.GetBytes(out, "dependencies").ForEach(func(_, dep gjson.Result) bool {
		// Nested {"pip": [...]} blocks describe the pip view.
		if dep.Type == gjson.String {
			if name := matchSpecName(dep.String()); name != "" {
				requested[name] = true
			}
		}
		return true
	})
	return requested, nil
}

// matchSpecName extracts the package name from a conda match spec such as
// "conda-forge::numpy>=1.26" or "python=3.11".
func matchSpecName(spec string) string {
	if i := strings.LastIndex(spec, "::"); i >= 0 {
		spec = spec[i+2:]
	}
	if i := strings.IndexAny(spec, "=<>!~ ["); i >= 0 {
		spec = spec[:i]
	}
	return Canonical(spec)
}
