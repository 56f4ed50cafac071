// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/envcmp/envcmp/internal/cacheutil"
	"github.com/envcmp/envcmp/internal/command"
	"github.com/envcmp/envcmp/internal/config"
	"github.com/envcmp/envcmp/internal/log"
	"github.com/envcmp/envcmp/internal/version"
)

var ctx = context.Background()

// flagAliases maps short flag names to the name they stand for.
var flagAliases = map[string]string{
	"a": "first",
	"b": "second",
	"c": "color",
	"d": "out-dir",
	"f": "filter",
	"h": "help",
	"k": "kind",
	"o": "output",
	"v": "version",
}

// boolFlags never take a separate value argument.
var boolFlags = []string{
	"all", "color", "help", "no-cache", "no-install", "script-diff", "tui", "version",
}

func main() {
	os.Exit(realMain())
}

// handleVersion checks for --version/-v and returns whether it was handled.
func handleVersion(args []string) bool {
	for _, a := range args {
		if a == "--version" || a == "-v" {
			fmt.Println(version.Version)
			return true
		}
	}
	return false
}

// processCommandArgs handles command-specific argument processing.
func processCommandArgs(args []string) []string {
	if len(args) > 1 && args[1] == "completion" {
		// Short-circuit completion: pass args directly.
		return args
	}

	args = processSetOnly(args)
	log.Debugf("args after set processing: args=%v", args)

	return deduplicateFlags(args)
}

// initAndRunApp initializes the app and runs it, returning the exit code.
func initAndRunApp(args []string) int {
	// Pre-create cache directory when caching is enabled.
	if _, ok, err := cacheutil.EnsureBaseDir(); err != nil && ok {
		fmt.Fprintln(os.Stderr, err)
		log.Debugf("cache ensure err: err=%v", err)
	}

	app, err := command.InitApp(ctx, args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		log.Debugf("app init err: err=%v", err)
		return 1
	}

	if err := app.Run(ctx, args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		log.Debugf("app run err: err=%v", err)
		return 2
	}

	return 0
}

func realMain() int {
	log.InitLogger()

	args := os.Args
	log.Debugf("args captured: args=%v", args)

	if handleVersion(args) {
		return 0
	}

	// If --help appears anywhere, skip command processing and let the CLI handle it.
	if !slices.Contains(args, "--help") && !slices.Contains(args, "-h") {
		args = processCommandArgs(args)
	}

	return initAndRunApp(args)
}

// processSetOnly expands the first @name argument into the entries of the
// config list sets.<name>, at the position the @name occupied. Each entry is
// split on whitespace, so "--kind v" becomes two arguments.
func processSetOnly(args []string) []string {
	for i := 1; i < len(args); i++ {
		if !strings.HasPrefix(args[i], "@") || len(args[i]) == 1 {
			continue
		}

		name := args[i][1:]
		entries, err := config.GetStringSlice("sets." + name)
		if err != nil {
			log.Warnf("argument set %q not found in config", name)
		}

		rest := slices.Clone(args[i+1:])
		return injectConfigSet(args[:i], entries, rest)
	}
	return args
}

// injectConfigSet returns head, the whitespace-split entries, then tail.
func injectConfigSet(head []string, entries []string, tail []string) []string {
	result := slices.Clone(head)
	for _, entry := range entries {
		result = append(result, strings.Fields(entry)...)
	}
	return append(result, tail...)
}

// deduplicateFlags drops every occurrence of a flag except the last so that
// later arguments (the command line after an expanded set) override earlier
// ones. Short and long spellings of a flag count as the same flag. A flag's value travels with it. Positional arguments keep their
// place, and everything after "--" is left alone.
func deduplicateFlags(args []string) []string {
	result := make([]string, 0, len(args))
	if len(args) == 0 {
		return result
	}

	type token struct {
		flag  string
		parts []string
	}

	var tokens []token
	last := map[string]int{}

	for i := 1; i < len(args); i++ {
		a := args[i]
		if a == "--" {
			tokens = append(tokens, token{parts: args[i:]})
			break
		}
		if !strings.HasPrefix(a, "-") || a == "-" {
			tokens = append(tokens, token{parts: []string{a}})
			continue
		}

		name, _, hasValue := strings.Cut(strings.TrimLeft(a, "-"), "=")
		if long, ok := flagAliases[name]; ok {
			name = long
		}
		t := token{flag: name, parts: []string{a}}
		if !hasValue && !slices.Contains(boolFlags, name) &&
			i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			t.parts = append(t.parts, args[i+1])
			i++
		}

		last[t.flag] = len(tokens)
		tokens = append(tokens, t)
	}

	result = append(result, args[0])
	for i, t := range tokens {
		if t.flag != "" && last[t.flag] != i {
			continue
		}
		result = append(result, t.parts...)
	}
	return result
}
