// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/envcmp/envcmp/internal/config"
	"github.com/envcmp/envcmp/internal/log"
	"github.com/envcmp/envcmp/internal/meta"
	"github.com/envcmp/envcmp/internal/runner"
)

func InitApp(ctx context.Context, args []string) (*cli.Command, error) {
	sd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}

	// The arg[1] immediately following the binary (arg[0]) is the envcmp
	// subcommand and also represents the namespace key to be used when
	// retrieving config values. arg[1] could be a flag, so ignore it then.
	var ns string
	if len(args) > 1 && !strings.HasPrefix(args[1], "-") {
		ns = args[1]
	}

	config.Config.Namespace = ns
	cfg, err := config.Load()
	if err != nil {
		log.Debugf("config not loaded: %v", err)
	}

	return NewApp(meta.Meta{
		Args:        args,
		Config:      cfg,
		Context:     ctx,
		StartingDir: sd,
		Runner:      runner.Exec{},
		In:          os.Stdin,
		Out:         os.Stdout,
		Err:         os.Stderr,
	}), nil
}

// NewApp builds the command tree around m.
func NewApp(m meta.Meta) *cli.Command {
	cfgFile := config.File()

	app := &cli.Command{
		Name:  "envcmp",
		Usage: "compare two Python environments",
		UsageText: "envcmp [--kind c|v] [--first ENV --second ENV] [flags]\n" +
			"envcmp list [--kind c|v]",
		Flags: append(NewCompareFlags(cfgFile),
			&cli.BoolFlag{
				Name:        "version",
				Aliases:     []string{"v"},
				Usage:       "envcmp version info",
				HideDefault: true,
				Local:       true,
			},
		),
		Metadata: map[string]any{
			"meta": m,
		},
		Action:    compareCommandAction,
		Writer:    m.Out,
		ErrWriter: m.Err,
	}

	app.Commands = append(app.Commands,
		listCommandBuilder(m, cfgFile),
		completionCommandBuilder(m),
	)

	// Make sure flags are sorted for the --help text.
	for _, cmd := range append([]*cli.Command{app}, app.Commands...) {
		sort.Slice(cmd.Flags, func(i, j int) bool {
			return cmd.Flags[i].Names()[0] < cmd.Flags[j].Names()[0]
		})
	}

	return app
}
