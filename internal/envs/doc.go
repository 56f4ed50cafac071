// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package envs discovers Conda and virtualenv environments and resolves a
// user's selection to one of them.
package envs
