// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package prompt asks the user which environments to compare, either with
// plain line prompts or with a full-screen picker.
package prompt
