// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package cacheutil stores package listings on disk between runs so repeated
// comparisons do not re-run conda and pip when an environment is unchanged.
package cacheutil
