// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/urfave/cli/v3"

	"github.com/envcmp/envcmp/internal/aws"
	"github.com/envcmp/envcmp/internal/cacheutil"
	"github.com/envcmp/envcmp/internal/config"
	"github.com/envcmp/envcmp/internal/envs"
	"github.com/envcmp/envcmp/internal/filters"
	"github.com/envcmp/envcmp/internal/log"
	"github.com/envcmp/envcmp/internal/meta"
	"github.com/envcmp/envcmp/internal/metadata"
	"github.com/envcmp/envcmp/internal/packages"
	"github.com/envcmp/envcmp/internal/prompt"
	"github.com/envcmp/envcmp/internal/report"
)

// compareCommandAction is the root action: select two environments, gather
// packages and metadata for each, compare, render and write the report.
func compareCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := cmd.Metadata["meta"].(meta.Meta)

	// Keep stdout parseable when it carries json or yaml.
	output := cmd.String("output")
	promptOut := m.Out
	if output != "text" {
		promptOut = m.Err
	}
	p := prompt.New(m.In, promptOut)

	a, b, err := selectEnvironments(ctx, cmd, m, p)
	if err != nil {
		return err
	}
	log.Debugf("comparing %s and %s", a, b)

	if !cmd.Bool("no-cache") {
		hours, _ := config.GetInt("cache.hours", 24) //nolint:mnd
		if err := cacheutil.Purge(hours); err != nil {
			log.WithError(err).Warnf("cache purge failed")
		}
	}

	opts := []packages.Option{
		packages.WithTopLevel(!cmd.Bool("all")),
		packages.WithCache(!cmd.Bool("no-cache")),
	}
	if cmd.Bool("no-install") {
		opts = append(opts, packages.WithAutoInstall(false))
	}
	lister := packages.NewLister(m.Runner, opts...)
	flt := filters.BuildFilters(cmd.String("filter"))

	r := report.Build(
		gather(ctx, lister, flt, a),
		gather(ctx, lister, flt, b),
		report.Options{ScriptDiff: cmd.Bool("script-diff")},
	)

	if err := render(m.Out, r, output, cmd.Bool("color")); err != nil {
		return err
	}

	path, err := report.Write(cmd.String("out-dir"), r)
	if err != nil {
		return err
	}
	fmt.Fprintf(m.Err, "Report written to %s\n", path)

	if uri := cmd.String("s3"); uri != "" {
		return publish(ctx, m, uri, path)
	}
	return nil
}

// selectEnvironments resolves --first/--second, prompting for whatever is
// missing.
func selectEnvironments(ctx context.Context, cmd *cli.Command, m meta.Meta, p *prompt.Prompter) (envs.Environment, envs.Environment, error) {
	var none envs.Environment
	first, second := cmd.String("first"), cmd.String("second")
	interactive := first == "" || second == ""

	var (
		kind envs.Kind
		err  error
	)
	if cmd.String("kind") == "" && interactive {
		kind, err = p.Kind()
	} else {
		kind, err = envs.ParseKind(cmd.String("kind"))
	}
	if err != nil {
		return none, none, err
	}

	list, err := envs.NewEnumerator(kind, m.Runner).Enumerate(ctx)
	if err != nil {
		return none, none, err
	}

	if interactive && cmd.Bool("tui") {
		chosen, err := prompt.Pick(list)
		if err != nil {
			return none, none, err
		}
		return chosen[0], chosen[1], nil
	}

	if interactive {
		p.Show(kind, list)
	}

	a, err := resolveOrAsk(p, list, first, "first")
	if err != nil {
		return none, none, err
	}
	b, err := resolveOrAsk(p, list, second, "second")
	if err != nil {
		return none, none, err
	}
	return a, b, nil
}

func resolveOrAsk(p *prompt.Prompter, list []envs.Environment, spec string, label string) (envs.Environment, error) {
	if spec != "" {
		return envs.Resolve(list, spec)
	}
	return p.Choose(label, list)
}

// gather lists packages and reads metadata for env. Filters narrow both
// package views.
func gather(ctx context.Context, lister *packages.Lister, flt []filters.Filter, env envs.Environment) report.Side {
	listing := lister.List(ctx, env)
	listing.Conda = filters.Apply(listing.Conda, flt)
	listing.Pip = filters.Apply(listing.Pip, flt)

	return report.Side{
		Env:      env,
		Packages: listing,
		Metadata: metadata.Read(env),
	}
}

func render(w io.Writer, r report.Report, output string, color bool) error {
	if output != "text" {
		return report.Encode(w, r, output)
	}

	styles := report.PlainStyles()
	if color {
		styles = report.ColorStyles(lipgloss.HasDarkBackground(os.Stdin, os.Stdout))
	}
	return report.Render(w, r, styles)
}

func publish(ctx context.Context, m meta.Meta, uri string, path string) error {
	loc, err := aws.ParseS3URI(uri)
	if err != nil {
		return err
	}

	var opts []aws.Option
	if profile, _ := config.GetString("aws.profile", ""); profile != "" {
		opts = append(opts, aws.WithProfile(profile))
	}
	if region, _ := config.GetString("aws.region", ""); region != "" {
		opts = append(opts, aws.WithRegion(region))
	}

	cfg, err := aws.LoadAWSConfig(ctx, opts...)
	if err != nil {
		return fmt.Errorf("aws config: %w", err)
	}

	object, err := aws.Publish(ctx, aws.NewS3(cfg), loc, path)
	if err != nil {
		return err
	}
	fmt.Fprintf(m.Err, "Report published to %s\n", object)
	return nil
}
