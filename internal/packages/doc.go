// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package packages lists the top-level packages of a Python environment as
// seen by conda and by pip. Both tools are driven through a runner.Runner
// against the environment's own interpreter and prefix, never the activated
// shell. A failing tool yields an empty view plus a warning; it never aborts
// the listing of the other view.
//
// The pip view relies on a dependency introspection helper (pipdeptree by
// default). When the helper is missing it is installed once per environment
// unless auto-install is disabled, in which case pip's own --not-required
// listing is used.
package packages
