// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/envcmp/envcmp/internal/meta"
)

const bashCompletionScript = `# bash completion for envcmp
# Fallback if bash-completion is not installed
if ! declare -F _get_comp_words_by_ref >/dev/null 2>&1; then
  _get_comp_words_by_ref() {
    cur=${COMP_WORDS[COMP_CWORD]}
    prev=${COMP_WORDS[COMP_CWORD-1]}
  }
fi

_envcmp()
{
    local cur prev
    COMPREPLY=()
    _get_comp_words_by_ref -n : cur prev

    local opts="--kind -k --first -a --second -b --out-dir -d --output -o --color -c --filter -f --all --no-install --no-cache --script-diff --tui --s3 --help --version"

    if [[ ${COMP_CWORD} -eq 1 && "$cur" != -* ]]; then
        COMPREPLY=( $(compgen -W "list completion" -- "$cur") )
        return 0
    fi

    case "${COMP_WORDS[1]}" in
        list)
            opts="--kind -k --output -o --help"
            ;;
        completion)
            COMPREPLY=( $(compgen -W "bash zsh" -- "$cur") )
            return 0
            ;;
    esac

    case "$prev" in
        --output|-o)
            COMPREPLY=( $(compgen -W "text json yaml" -- "$cur") )
            return 0
            ;;
        --kind|-k)
            COMPREPLY=( $(compgen -W "conda virtualenv" -- "$cur") )
            return 0
            ;;
        --out-dir|-d|--first|-a|--second|-b)
            COMPREPLY=( $(compgen -o dirnames -- "$cur") )
            return 0
            ;;
    esac

    COMPREPLY=( $(compgen -W "$opts" -- "$cur") )
    return 0
}

complete -F _envcmp envcmp
`

const zshCompletionScript = `#compdef envcmp

_envcmp() {
  local -a cmds
  cmds=(
    'list:list environments of a kind'
    'completion:generate shell completion script'
  )

  local -a kinds
  kinds=(conda virtualenv)

  if (( CURRENT == 2 )) && [[ $words[2] != -* ]]; then
    _describe -t commands 'envcmp commands' cmds
  fi

  case $words[2] in
    list)
      _arguments -C \
        '(-k --kind)'{-k,--kind}'[environment type]:kind:(conda virtualenv)' \
        '(-o --output)'{-o,--output}'[output format]:format:(text json yaml)'
      ;;
    completion)
      _arguments '1:shell:(bash zsh)'
      ;;
    *)
      _arguments -C \
        '(-k --kind)'{-k,--kind}'[environment type]:kind:(conda virtualenv)' \
        '(-a --first)'{-a,--first}'[first environment]:env:_directories' \
        '(-b --second)'{-b,--second}'[second environment]:env:_directories' \
        '(-d --out-dir)'{-d,--out-dir}'[report directory]:dir:_directories' \
        '(-o --output)'{-o,--output}'[output format]:format:(text json yaml)' \
        '(-c --color)'{-c,--color}'[enable colored text]' \
        '(-f --filter)'{-f,--filter}'[package filters]:filters' \
        '--all[compare all packages, not only top-level]' \
        '--no-install[do not install the pip helper]' \
        '--no-cache[do not use the listing cache]' \
        '--script-diff[show diffs of common startup scripts]' \
        '--tui[pick environments full-screen]' \
        '--s3[publish the report to S3]:uri'
      ;;
  esac
}

# If this file is sourced directly (not autoloaded via fpath), ensure compsys
# is initialized and register the completion
if ! typeset -f compdef >/dev/null 2>&1; then
  autoload -Uz compinit && compinit -i
fi
compdef _envcmp envcmp
`

func completionCommandAction(_ context.Context, cmd *cli.Command) error {
	m := cmd.Metadata["meta"].(meta.Meta)

	shell := ""
	if args := cmd.Args().Slice(); len(args) > 0 {
		shell = args[0]
	}
	if shell == "" {
		// Try to detect from SHELL.
		sh := os.Getenv("SHELL")
		switch {
		case strings.HasSuffix(sh, "zsh"):
			shell = "zsh"
		case strings.HasSuffix(sh, "bash"):
			shell = "bash"
		}
	}

	switch shell {
	case "bash":
		fmt.Fprint(m.Out, bashCompletionScript)
	case "zsh":
		fmt.Fprint(m.Out, zshCompletionScript)
	default:
		fmt.Fprintln(m.Err, "usage: envcmp completion [bash|zsh]")
	}
	return nil
}

func completionCommandBuilder(meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "completion",
		Usage:     "generate shell completion script",
		UsageText: "envcmp completion [bash|zsh]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Action: completionCommandAction,
	}
}
