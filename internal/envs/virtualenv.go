// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package envs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/envcmp/envcmp/internal/log"
)

type virtualenvEnumerator struct {
	home string
}

// Enumerate lists the directories directly under the virtualenv home in
// lexical order. Plain files are skipped; symlinks to directories count.
func (v *virtualenvEnumerator) Enumerate(_ context.Context) ([]Environment, error) {
	entries, err := os.ReadDir(v.home)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNoEnvironments, err)
	}

	var result []Environment
	for _, entry := range entries {
		path := filepath.Join(v.home, entry.Name())
		fi, err := os.Stat(path)
		if err != nil || !fi.IsDir() {
			log.Tracef("skipping %s", path)
			continue
		}
		result = append(result, Environment{Name: entry.Name(), Kind: KindVirtualenv, Path: path})
	}

	if len(result) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoEnvironments, v.home)
	}
	log.Debugf("virtualenvs in %s: %d", v.home, len(result))
	return result, nil
}
