// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package packages

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/envcmp/envcmp/internal/cacheutil"
	"github.com/envcmp/envcmp/internal/config"
	"github.com/envcmp/envcmp/internal/differ"
	"github.com/envcmp/envcmp/internal/envs"
	"github.com/envcmp/envcmp/internal/log"
	"github.com/envcmp/envcmp/internal/runner"
)

// DefaultHelper is the pip dependency introspection helper.
const DefaultHelper = "pipdeptree"

// ErrHelperMissing is recorded when the helper is absent and could not be
// installed.
var ErrHelperMissing = errors.New("dependency helper unavailable")

// Source identifies which package manager reported a record.
type Source string

const (
	SourceConda Source = "conda"
	SourcePip   Source = "pip"
)

// Record is one installed package as reported by one source.
type Record struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	Source  Source `json:"source"`
}

// Listing holds both views of one environment. Conda is nil for
// environments conda does not manage. Notices record changes made to the
// environment, such as a helper install.
type Listing struct {
	Conda    *differ.Set
	Pip      *differ.Set
	Warnings []error
	Notices  []string
}

// Lister queries package managers for environment contents.
type Lister struct {
	runner      runner.Runner
	condaExe    string
	helper      string
	autoInstall bool
	topLevel    bool
	cache       bool

	// attempted records helper installs per environment path so a failed
	// install is not retried and a successful one is remembered.
	attempted map[string]error
	installed map[string]bool
}

// Option customizes a Lister.
type Option func(*Lister)

// WithCondaExe overrides the conda executable.
func WithCondaExe(exe string) Option {
	return func(l *Lister) { l.condaExe = exe }
}

// WithHelper overrides the dependency helper module name.
func WithHelper(name string) Option {
	return func(l *Lister) { l.helper = name }
}

// WithAutoInstall controls whether a missing helper is installed.
func WithAutoInstall(on bool) Option {
	return func(l *Lister) { l.autoInstall = on }
}

// WithTopLevel controls whether only directly requested packages are listed.
func WithTopLevel(on bool) Option {
	return func(l *Lister) { l.topLevel = on }
}

// WithCache controls use of the on-disk listing cache.
func WithCache(on bool) Option {
	return func(l *Lister) { l.cache = on }
}

// NewLister returns a Lister running commands through r. Defaults come from
// the config file (pip.helper, pip.install).
func NewLister(r runner.Runner, opts ...Option) *Lister {
	helper, _ := config.GetString("pip.helper", DefaultHelper)
	install, _ := config.GetBool("pip.install", true)

	l := &Lister{
		runner:      r,
		condaExe:    envs.CondaExe(),
		helper:      helper,
		autoInstall: install,
		topLevel:    true,
		cache:       true,
		attempted:   map[string]error{},
		installed:   map[string]bool{},
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// List returns the conda view (conda environments only) and the pip view of
// env. Failures are recorded in Listing.Warnings and logged.
func (l *Lister) List(ctx context.Context, env envs.Environment) Listing {
	var listing Listing

	if env.Kind == envs.KindConda {
		set, warns := l.cached(env, SourceConda, func() (*differ.Set, []error) {
			return l.listConda(ctx, env)
		})
		listing.Conda = set
		listing.Warnings = append(listing.Warnings, warns...)
	}

	set, warns := l.cached(env, SourcePip, func() (*differ.Set, []error) {
		return l.listPip(ctx, env)
	})
	listing.Pip = set
	listing.Warnings = append(listing.Warnings, warns...)

	if l.installed[env.Path] {
		listing.Notices = append(listing.Notices, fmt.Sprintf("installed %s with pip", l.helper))
	}

	for _, w := range listing.Warnings {
		log.Warnf("%s: %v", env.Name, w)
	}
	return listing
}

// cached wraps fn with the listing cache. Only clean listings are stored.
func (l *Lister) cached(env envs.Environment, src Source, fn func() (*differ.Set, []error)) (*differ.Set, []error) {
	stamp := env.Stamp()
	if !l.cache || stamp.IsZero() {
		return fn()
	}

	key := fmt.Sprintf("%s|%s|top=%t|%d", env.Path, src, l.topLevel, stamp.UnixNano())
	subdirs := []string{"packages"}

	var records []Record
	if cacheutil.ReadJSON(subdirs, key, &records) {
		return fromRecords(records), nil
	}

	set, warns := fn()
	if len(warns) > 0 || l.installed[env.Path] {
		return set, warns
	}
	if err := cacheutil.WriteJSON(subdirs, key, toRecords(set, src)); err != nil {
		log.WithError(err).Warnf("failed to cache %s listing for %s", src, env.Name)
	}
	return set, nil
}

// HasHelper reports whether the helper module runs under env's interpreter.
func (l *Lister) HasHelper(ctx context.Context, env envs.Environment) bool {
	_, err := l.runner.Run(ctx, env.Python(), "-m", l.helper, "--version")
	return err == nil
}

// EnsureHelper installs the helper into env when it is missing. It reports
// whether this call (or an earlier one in this run) performed the install.
// A present helper is never reinstalled and a failed install is not retried.
// The install is announced at warn level since it modifies env.
func (l *Lister) EnsureHelper(ctx context.Context, env envs.Environment) (bool, error) {
	if err, ok := l.attempted[env.Path]; ok {
		return l.installed[env.Path], err
	}
	if l.HasHelper(ctx, env) {
		return false, nil
	}

	log.Warnf("%s: %s missing, installing it with pip", env.Name, l.helper)
	_, err := l.runner.Run(ctx, env.Python(), "-m", "pip", "install", l.helper)
	if err == nil && !l.HasHelper(ctx, env) {
		err = fmt.Errorf("%s still not importable after install", l.helper)
	}
	if err != nil {
		err = fmt.Errorf("%w: %w", ErrHelperMissing, err)
	}

	l.attempted[env.Path] = err
	l.installed[env.Path] = err == nil
	return err == nil, err
}

var canonicalRe = regexp.MustCompile(`[-_.]+`)

// Canonical normalizes a distribution name so conda and pip spellings of
// the same project compare equal ("PyYAML" and "pyyaml", "ruamel.yaml" and
// "ruamel-yaml").
func Canonical(name string) string {
	return canonicalRe.ReplaceAllString(strings.ToLower(strings.TrimSpace(name)), "-")
}

func toRecords(s *differ.Set, src Source) []Record {
	records := make([]Record, 0, s.Len())
	for _, e := range s.Entries() {
		records = append(records, Record{Name: e.Key, Version: e.Value, Source: src})
	}
	return records
}

func fromRecords(records []Record) *differ.Set {
	s := differ.NewSet()
	for _, r := range records {
		s.Put(r.Name, r.Version)
	}
	return s
}
