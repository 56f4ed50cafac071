// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package metadata

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/envcmp/envcmp/internal/differ"
	"github.com/envcmp/envcmp/internal/envs"
	"github.com/envcmp/envcmp/internal/log"
)

// Metadata is what one environment applies on activation. Scripts maps the
// script's path relative to the environment root to its content.
type Metadata struct {
	Variables *differ.Set
	Scripts   *differ.Set
	Warnings  []error
}

var (
	condaScriptDirs = []string{
		"etc/conda/activate.d",
		"etc/conda/deactivate.d",
	}
	venvHooks = []string{
		"bin/preactivate",
		"bin/postactivate",
		"bin/predeactivate",
		"bin/postdeactivate",
	}
)

// exportRegex matches `export NAME=VALUE` as written in sh activation hooks.
var exportRegex = regexp.MustCompile(`^\s*export\s+([A-Za-z_][A-Za-z0-9_]*)=(.*)$`)

// Read collects the variables and scripts of env. A missing directory or
// file contributes nothing; unreadable or malformed files add a warning.
func Read(env envs.Environment) Metadata {
	md := Metadata{
		Variables: differ.NewSet(),
		Scripts:   differ.NewSet(),
	}

	if env.Kind == envs.KindConda {
		md.readCondaState(env)
		for _, dir := range condaScriptDirs {
			md.readScriptDir(env, dir)
		}
	} else {
		md.Variables.Put("VIRTUAL_ENV", env.Path)
		for _, hook := range venvHooks {
			md.readScript(env, hook)
		}
	}

	for _, id := range md.Scripts.Keys() {
		if !activates(id) {
			continue
		}
		body, _ := md.Scripts.Get(id)
		for _, kv := range exports(body) {
			md.Variables.Put(kv.Key, kv.Value)
		}
	}

	for _, w := range md.Warnings {
		log.Warnf("%s: %v", env.Name, w)
	}
	log.Debugf("%s: %d variables, %d scripts", env.Name, md.Variables.Len(), md.Scripts.Len())
	return md
}

// readCondaState adds the env_vars recorded in conda-meta/state, in file
// order.
func (md *Metadata) readCondaState(env envs.Environment) {
	path := filepath.Join(env.Path, "conda-meta", "state")
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return
	}
	if err != nil {
		md.Warnings = append(md.Warnings, fmt.Errorf("reading %s: %w", path, err))
		return
	}
	if !gjson.ValidBytes(data) {
		md.Warnings = append(md.Warnings, fmt.Errorf("reading %s: invalid JSON", path))
		return
	}

	gjson.GetBytes(data, "env_vars").ForEach(func(key, value gjson.Result) bool {
		md.Variables.Put(key.String(), value.String())
		return true
	})
}

// readScriptDir adds every regular file directly under dir.
func (md *Metadata) readScriptDir(env envs.Environment, dir string) {
	entries, err := os.ReadDir(filepath.Join(env.Path, filepath.FromSlash(dir)))
	if errors.Is(err, fs.ErrNotExist) {
		return
	}
	if err != nil {
		md.Warnings = append(md.Warnings, fmt.Errorf("reading %s: %w", dir, err))
		return
	}

	for _, e := range entries {
		if e.Type().IsRegular() {
			md.readScript(env, dir+"/"+e.Name())
		}
	}
}

// readScript adds the script at id (slash separated, relative to the
// environment root) when it exists.
func (md *Metadata) readScript(env envs.Environment, id string) {
	data, err := os.ReadFile(filepath.Join(env.Path, filepath.FromSlash(id)))
	if errors.Is(err, fs.ErrNotExist) {
		return
	}
	if err != nil {
		md.Warnings = append(md.Warnings, fmt.Errorf("reading %s: %w", id, err))
		return
	}
	md.Scripts.Put(id, string(data))
}

// activates reports whether the script runs on activation rather than
// deactivation.
func activates(id string) bool {
	return strings.Contains(id, "/activate.d/") ||
		strings.HasSuffix(id, "/preactivate") ||
		strings.HasSuffix(id, "/postactivate")
}

// exports returns the `export NAME=VALUE` assignments in body in order.
// Surrounding quotes are removed from the value.
func exports(body string) []differ.Entry {
	var result []differ.Entry

	scanner := bufio.NewScanner(strings.NewReader(body))
	for scanner.Scan() {
		m := exportRegex.FindStringSubmatch(scanner.Text())
		if m == nil {
			continue
		}
		result = append(result, differ.Entry{Key: m[1], Value: unquote(strings.TrimSpace(m[2]))})
	}
	return result
}

func unquote(s string) string {
	if len(s) >= 2 && (s[0] == '"' || s[0] == '\'') && s[len(s)-1] == s[0] {
		return s[1 : len(s)-1]
	}
	return s
}
