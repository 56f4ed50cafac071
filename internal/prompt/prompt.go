// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/envcmp/envcmp/internal/envs"
)

// ErrAborted is returned when input ends or the user quits before choosing.
var ErrAborted = errors.New("selection aborted")

// Prompter asks questions on out and reads answers line by line from in.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

// New returns a Prompter.
func New(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out}
}

// Kind asks for the environment type. An empty answer is Conda.
func (p *Prompter) Kind() (envs.Kind, error) {
	answer, err := p.ask("Environment type (c/v) [c]: ")
	if err != nil {
		return envs.KindConda, err
	}
	return envs.ParseKind(answer)
}

// Show prints the numbered environment list.
func (p *Prompter) Show(kind envs.Kind, list []envs.Environment) {
	Show(p.out, kind, list)
}

// Show writes the numbered listing that selection indices refer to.
func Show(w io.Writer, kind envs.Kind, list []envs.Environment) {
	fmt.Fprintf(w, "Available %s environments:\n", kind)
	for i, env := range list {
		fmt.Fprintf(w, "%d: %s\n", i+1, env)
	}
}

// Choose asks for one environment by index, name or path.
func (p *Prompter) Choose(label string, list []envs.Environment) (envs.Environment, error) {
	answer, err := p.ask(fmt.Sprintf("Enter the number for the %s environment: ", label))
	if err != nil {
		return envs.Environment{}, err
	}
	return envs.Resolve(list, answer)
}

func (p *Prompter) ask(question string) (string, error) {
	fmt.Fprint(p.out, question)

	line, err := p.in.ReadString('\n')
	if err != nil && (!errors.Is(err, io.EOF) || line == "") {
		if errors.Is(err, io.EOF) {
			return "", ErrAborted
		}
		return "", fmt.Errorf("reading answer: %w", err)
	}
	return strings.TrimSpace(line), nil
}
