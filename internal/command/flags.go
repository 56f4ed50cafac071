// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"os"
	"strings"

	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"
)

// NewCompareFlags returns the flags of the root (compare) command. Every flag
// falls back to ENVCMP_<NAME> and then to the same key in the config file at
// cfgFile.
func NewCompareFlags(cfgFile string) []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:    "all",
			Usage:   "compare every installed package, not only top-level ones",
			Local:   true,
			Sources: configSources("", "all", cfgFile),
		},
		&cli.BoolFlag{
			Name:    "color",
			Aliases: []string{"c"},
			Usage:   "enable colored text output",
			Value:   term.IsTerminal(int(os.Stdout.Fd())), //nolint:gosec
			Local:   true,
			Sources: configSources("", "color", cfgFile),
		},
		&cli.StringFlag{
			Name:    "filter",
			Aliases: []string{"f"},
			Usage:   "comma-separated list of package filters, e.g. name^py,name!~test",
			Local:   true,
			Sources: configSources("", "filter", cfgFile),
			Validator: func(value string) error {
				return FlagValidators(value, FilterValidator)
			},
		},
		&cli.StringFlag{
			Name:    "first",
			Aliases: []string{"a"},
			Usage:   "first environment: index, name or path",
			Local:   true,
		},
		&cli.StringFlag{
			Name:    "kind",
			Aliases: []string{"k"},
			Usage:   "environment type: c (conda) or v (virtualenv)",
			Local:   true,
			Sources: configSources("", "kind", cfgFile),
			Validator: func(value string) error {
				return FlagValidators(value, KindValidator)
			},
		},
		&cli.BoolFlag{
			Name:    "no-cache",
			Usage:   "do not read or write the package listing cache",
			Local:   true,
			Sources: configSources("", "no-cache", cfgFile),
		},
		&cli.BoolFlag{
			Name:    "no-install",
			Usage:   "do not install the pip dependency helper when missing",
			Local:   true,
			Sources: configSources("", "no-install", cfgFile),
		},
		&cli.StringFlag{
			Name:    "out-dir",
			Aliases: []string{"d"},
			Usage:   "directory the report file is written to",
			Value:   ".",
			Local:   true,
			Sources: configSources("", "out-dir", cfgFile),
		},
		newOutputFlag("", cfgFile),
		&cli.StringFlag{
			Name:    "s3",
			Usage:   "publish the report file to s3://bucket[/prefix]",
			Local:   true,
			Sources: configSources("", "s3", cfgFile),
		},
		&cli.BoolFlag{
			Name:    "script-diff",
			Usage:   "show unified diffs of startup scripts present in both environments",
			Local:   true,
			Sources: configSources("", "script-diff", cfgFile),
		},
		&cli.StringFlag{
			Name:    "second",
			Aliases: []string{"b"},
			Usage:   "second environment: index, name or path",
			Local:   true,
		},
		&cli.BoolFlag{
			Name:    "tui",
			Usage:   "pick environments in a full-screen list",
			Local:   true,
			Sources: configSources("", "tui", cfgFile),
		},
	}
}

// NewListFlags returns the flags of the list command.
func NewListFlags(cfgFile string) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "kind",
			Aliases: []string{"k"},
			Usage:   "environment type: c (conda) or v (virtualenv)",
			Sources: configSources("list", "kind", cfgFile),
			Validator: func(value string) error {
				return FlagValidators(value, KindValidator)
			},
		},
		newOutputFlag("list", cfgFile),
	}
}

func newOutputFlag(ns string, cfgFile string) *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "console output format: text, json or yaml",
		Value:   "text",
		Local:   true,
		Sources: configSources(ns, "output", cfgFile),
		Validator: func(value string) error {
			return FlagValidators(value, OutputValidator)
		},
	}
}

// configSources builds the fallback chain for a flag: the ENVCMP_ variable,
// then the namespaced config key (ns.name), then the top-level key.
func configSources(ns string, name string, cfgFile string) cli.ValueSourceChain {
	chain := cli.NewValueSourceChain(cli.EnvVar(envVarName(name)))
	if cfgFile == "" {
		return chain
	}

	if ns != "" {
		chain.Chain = append(chain.Chain, yaml.YAML(ns+"."+name, altsrc.StringSourcer(cfgFile)))
	}
	chain.Chain = append(chain.Chain, yaml.YAML(name, altsrc.StringSourcer(cfgFile)))

	return chain
}

// envVarName maps a flag name to its environment variable, out-dir to
// ENVCMP_OUT_DIR.
func envVarName(name string) string {
	return "ENVCMP_" + strings.ToUpper(strings.ReplaceAll(name, "-", "_"))
}
