// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package command defines the CLI command set for envcmp. The root command
// compares two environments; subcommands list environments and print shell
// completion scripts. It wires flags, config file fallbacks, validators and
// actions.
package command
