// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package meta

import (
	"context"
	"io"

	"github.com/envcmp/envcmp/internal/config"
	"github.com/envcmp/envcmp/internal/runner"
)

// Meta contains runtime state shared by commands: CLI arguments, loaded
// configuration, the process streams and the runner used for every external
// tool. Commands read and write only through these so they can be driven
// from tests.
type Meta struct {
	Args        []string
	Config      config.Type
	Context     context.Context
	StartingDir string

	Runner runner.Runner
	In     io.Reader
	Out    io.Writer
	Err    io.Writer
}
