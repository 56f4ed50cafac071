// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package envs

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/tidwall/gjson"

	"github.com/envcmp/envcmp/internal/log"
	"github.com/envcmp/envcmp/internal/runner"
)

type condaEnumerator struct {
	exe    string
	runner runner.Runner
}

// Enumerate runs `conda info --json`. The envs array is already in conda's
// display order; the root prefix is reported as "base".
func (c *condaEnumerator) Enumerate(ctx context.Context) ([]Environment, error) {
	out, err := c.runner.Run(ctx, c.exe, "info", "--json")
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNoEnvironments, err)
	}
	if !gjson.ValidBytes(out) {
		return nil, fmt.Errorf("%w: %s info returned invalid JSON", ErrNoEnvironments, c.exe)
	}

	info := gjson.ParseBytes(out)
	root := filepath.Clean(info.Get("root_prefix").String())
	log.Debugf("conda root prefix: %s", root)

	var result []Environment
	seen := map[string]bool{}
	info.Get("envs").ForEach(func(_, value gjson.Result) bool {
		path := filepath.Clean(value.String())
		if value.String() == "" || seen[path] {
			return true
		}
		seen[path] = true

		name := filepath.Base(path)
		if path == root {
			name = "base"
		}
		result = append(result, Environment{Name: name, Kind: KindConda, Path: path})
		return true
	})

	if len(result) == 0 {
		return nil, ErrNoEnvironments
	}
	uniqueNames(result)
	log.Debugf("conda envs: %d", len(result))
	return result, nil
}
