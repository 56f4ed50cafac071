// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package envs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// ErrInvalidSelection is returned when a selection spec matches nothing.
var ErrInvalidSelection = errors.New("invalid selection")

// Resolve returns the environment matching spec. A spec can be:
//   - a 1-based index into envs, as shown by the interactive listing
//   - an exact environment name, or a directory name shared by no other
//     environment
//   - a directory path, absolute or relative to the working directory
func Resolve(envs []Environment, spec string) (Environment, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return Environment{}, fmt.Errorf("%w: empty", ErrInvalidSelection)
	}

	if isNumeric(spec) {
		i, _ := strconv.Atoi(spec)
		if i < 1 || i > len(envs) {
			return Environment{}, fmt.Errorf("%w: %d is not between 1 and %d", ErrInvalidSelection, i, len(envs))
		}
		return envs[i-1], nil
	}

	for _, e := range envs {
		if e.Name == spec {
			return e, nil
		}
	}

	// A bare directory name still selects an environment whose name was
	// qualified, as long as only one environment has that directory name.
	var byBase []Environment
	for _, e := range envs {
		if filepath.Base(e.Path) == spec {
			byBase = append(byBase, e)
		}
	}
	switch len(byBase) {
	case 1:
		return byBase[0], nil
	case 0:
	default:
		names := make([]string, len(byBase))
		for i, e := range byBase {
			names[i] = e.Name
		}
		return Environment{}, fmt.Errorf("%w: %q is ambiguous, use one of %s", ErrInvalidSelection, spec, strings.Join(names, ", "))
	}

	if dir, err := absDir(spec); err == nil {
		for _, e := range envs {
			if filepath.Clean(e.Path) == dir {
				return e, nil
			}
		}
	}

	return Environment{}, fmt.Errorf("%w: no environment matches %q", ErrInvalidSelection, spec)
}

// absDir makes p absolute against the working directory and cleans it.
func absDir(p string) (string, error) {
	if filepath.IsAbs(p) {
		return filepath.Clean(p), nil
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(cwd, p), nil
}

func isNumeric(s string) bool {
	_, err := strconv.Atoi(s)
	return err == nil
}
