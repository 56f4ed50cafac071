// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package config provides loading and typed accessors for envcmp's user
// configuration. The configuration is a YAML document located in the user's
// configuration directory, typically:
//   - Linux: $XDG_CONFIG_HOME/envcmp.yaml or $HOME/.config/envcmp.yaml
//   - macOS: $HOME/Library/Application Support/envcmp.yaml
//   - Windows: %APPDATA%/envcmp.yaml
//
// ENVCMP_CFG_FILE overrides the location. Recognised keys:
//
//	conda:
//	  exe: /opt/miniconda3/bin/conda
//	virtualenv:
//	  home: ~/.virtualenvs
//	pip:
//	  helper: pipdeptree
//	  install: true
//	colors:
//	  title: "#f6be00"
//	  only_a: "#ff5f87"
//	  only_b: "#00c8f0"
//	cache:
//	  hours: 24
//	aws:
//	  profile: reports
//	  region: us-east-1
//	sets:
//	  ml:
//	    - --kind c
//	    - --first base
//
// Top-level keys matching flag names (kind, out-dir, output, color, filter,
// all, no-install, no-cache, script-diff, tui, s3) provide flag defaults. A
// key under a command name (list.kind) applies to that command only. An
// @name argument expands to the entries of sets.name.
package config
