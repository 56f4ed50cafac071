// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package runner is the single seam through which envcmp invokes conda, pip
// and their helpers. Tests substitute a Func.
package runner
