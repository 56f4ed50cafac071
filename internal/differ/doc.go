// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package differ computes the only-in-A, only-in-B and common groups between
// two ordered sets, and renders text diffs of script bodies.
package differ
