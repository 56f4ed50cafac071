// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package metadata reads the environment variables and startup scripts an
// environment applies on activation. Everything is read from the
// environment's directory; nothing is activated or executed.
//
// Conda environments keep variables set with `conda env config vars set` in
// conda-meta/state and run the scripts under etc/conda/activate.d and
// etc/conda/deactivate.d. Virtualenvs export VIRTUAL_ENV and run the
// virtualenvwrapper hooks in bin/. In both cases `export NAME=VALUE` lines in
// the activation scripts contribute variables too.
package metadata
