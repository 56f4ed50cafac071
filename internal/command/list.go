// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v2"

	"github.com/envcmp/envcmp/internal/envs"
	"github.com/envcmp/envcmp/internal/meta"
	"github.com/envcmp/envcmp/internal/prompt"
)

func listCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := cmd.Metadata["meta"].(meta.Meta)

	kind, err := envs.ParseKind(cmd.String("kind"))
	if err != nil {
		return err
	}

	list, err := envs.NewEnumerator(kind, m.Runner).Enumerate(ctx)
	if err != nil {
		return err
	}

	switch cmd.String("output") {
	case "json":
		enc := json.NewEncoder(m.Out)
		enc.SetIndent("", "  ")
		return enc.Encode(list)
	case "yaml":
		out, err := yaml.Marshal(list)
		if err != nil {
			return fmt.Errorf("yaml marshal: %w", err)
		}
		_, err = m.Out.Write(out)
		return err
	default:
		prompt.Show(m.Out, kind, list)
		return nil
	}
}

func listCommandBuilder(meta meta.Meta, cfgFile string) *cli.Command {
	return &cli.Command{
		Name:      "list",
		Usage:     "list environments of a kind",
		UsageText: "envcmp list [--kind c|v] [--output text|json|yaml]",
		Flags:     NewListFlags(cfgFile),
		Metadata: map[string]any{
			"meta": meta,
		},
		Action: listCommandAction,
	}
}
