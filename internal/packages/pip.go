// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package packages

import (
	"context"
	"fmt"

	"github.com/tidwall/gjson"

	"github.com/envcmp/envcmp/internal/differ"
	"github.com/envcmp/envcmp/internal/envs"
)

// listPip returns pip's view of env. Top-level packages come from the
// helper's dependency tree roots, or from pip's --not-required listing when
// the helper is unavailable.
func (l *Lister) listPip(ctx context.Context, env envs.Environment) (*differ.Set, []error) {
	if !l.topLevel {
		return l.pipList(ctx, env)
	}

	var warns []error
	var haveHelper bool
	if l.autoInstall {
		_, err := l.EnsureHelper(ctx, env)
		if err != nil {
			warns = append(warns, err)
		}
		haveHelper = err == nil
	} else {
		haveHelper = l.HasHelper(ctx, env)
	}

	if !haveHelper {
		if !l.autoInstall {
			warns = append(warns, fmt.Errorf("%w: %s not installed and auto-install is off", ErrHelperMissing, l.helper))
		}
		set, errs := l.pipList(ctx, env, "--not-required")
		return set, append(warns, errs...)
	}

	out, err := l.runner.Run(ctx, env.Python(), "-m", l.helper, "--json-tree")
	if err != nil {
		return differ.NewSet(), append(warns, fmt.Errorf("%s: %w", l.helper, err))
	}
	if !gjson.ValidBytes(out) {
		return differ.NewSet(), append(warns, fmt.Errorf("%s: invalid JSON output", l.helper))
	}

	self := Canonical(l.helper)
	installedNow := l.installed[env.Path]
	set := differ.NewSet()
	gjson.ParseBytes(out).ForEach(func(_, root gjson.Result) bool {
		name := Canonical(root.Get("package_name").String())
		if name == "" {
			name = Canonical(root.Get("key").String())
		}
		if name == "" || (installedNow && name == self) {
			return true
		}
		set.Put(name, root.Get("installed_version").String())
		return true
	})
	return set, warns
}

// pipList runs `pip list --format=json` with extra arguments.
func (l *Lister) pipList(ctx context.Context, env envs.Environment, extra ...string) (*differ.Set, []error) {
	args := append([]string{"-m", "pip", "list", "--format=json"}, extra...)
	out, err := l.runner.Run(ctx, env.Python(), args...)
	if err != nil {
		return differ.NewSet(), []error{fmt.Errorf("pip list: %w", err)}
	}
	if !gjson.ValidBytes(out) {
		return differ.NewSet(), []error{fmt.Errorf("pip list: invalid JSON output")}
	}

	set := differ.NewSet()
	gjson.ParseBytes(out).ForEach(func(_, pkg gjson.Result) bool {
		if name := Canonical(pkg.Get("name").String()); name != "" {
			set.Put(name, pkg.Get("version").String())
		}
		return true
	})
	return set, nil
}
