// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package report assembles the comparison of two environments into sections
// and renders them as styled console text, plain text for the report file,
// or JSON/YAML.
package report
