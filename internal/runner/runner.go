// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package runner

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/envcmp/envcmp/internal/log"
)

// Runner invokes an external program and returns its stdout. Implementations
// block until the program exits or ctx is cancelled.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// Func adapts an ordinary function to the Runner interface.
type Func func(ctx context.Context, name string, args ...string) ([]byte, error)

// Run calls f.
func (f Func) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	return f(ctx, name, args...)
}

// Error is returned when a program cannot be started or exits non-zero.
type Error struct {
	Cmdline string
	Stderr  string
	Err     error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%s: %v", e.Cmdline, e.Err)
	if e.Stderr != "" {
		msg += ": " + e.Stderr
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Exec runs programs with os/exec. Env, when non-nil, replaces the inherited
// environment.
type Exec struct {
	Env []string
}

// Run implements Runner.
func (x Exec) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmdline := Cmdline(name, args...)
	log.Debugf("exec: %s", cmdline)

	cmd := exec.CommandContext(ctx, name, args...)
	if x.Env != nil {
		cmd.Env = x.Env
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return stdout.Bytes(), &Error{
			Cmdline: cmdline,
			Stderr:  lastLine(stderr.String()),
			Err:     err,
		}
	}

	log.Tracef("exec done: %s bytes=%d", cmdline, stdout.Len())
	return stdout.Bytes(), nil
}

// Cmdline renders a program invocation for logs and errors.
func Cmdline(name string, args ...string) string {
	return strings.TrimSpace(name + " " + strings.Join(args, " "))
}

// lastLine returns the last non-empty line of s. Tools such as pip print
// their actual complaint last.
func lastLine(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if l := strings.TrimSpace(lines[i]); l != "" {
			return l
		}
	}
	return ""
}
