// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package packages

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/envcmp/envcmp/internal/config"
	"github.com/envcmp/envcmp/internal/envs"
	"github.com/envcmp/envcmp/internal/log"
	"github.com/envcmp/envcmp/internal/runner"
)

const (
	condaListJSON = `[
  {"name": "numpy", "version": "1.26.4", "channel": "conda-forge"},
  {"name": "python", "version": "3.11.9", "channel": "conda-forge"},
  {"name": "PyYAML", "version": "6.0.1", "channel": "conda-forge"},
  {"name": "requests", "version": "2.31.0", "channel": "pypi"},
  {"name": "openssl", "version": "3.3.0", "channel": "conda-forge"}
]`
	condaExportJSON = `{
  "name": "proj",
  "channels": ["conda-forge"],
  "dependencies": ["python=3.11", "conda-forge::numpy>=1.26", "pyyaml", {"pip": ["requests"]}]
}`
	treeJSON = `[
  {"key": "requests", "package_name": "requests", "installed_version": "2.31.0", "dependencies": []},
  {"key": "pipdeptree", "package_name": "pipdeptree", "installed_version": "2.23.1", "dependencies": []},
  {"key": "ruamel-yaml", "package_name": "ruamel.yaml", "installed_version": "0.18.6", "dependencies": []}
]`
	pipNotRequiredJSON = `[{"name": "requests", "version": "2.31.0"}, {"name": "Flask", "version": "3.0.3"}]`
	pipAllJSON         = `[{"name": "requests", "version": "2.31.0"}, {"name": "urllib3", "version": "2.2.1"}]`
)

// fakeRunner answers by command line and records every invocation.
type fakeRunner struct {
	calls    []string
	handlers map[string]func() ([]byte, error)
}

func (f *fakeRunner) Run(_ context.Context, name string, args ...string) ([]byte, error) {
	cmd := runner.Cmdline(name, args...)
	f.calls = append(f.calls, cmd)
	if h, ok := f.handlers[cmd]; ok {
		return h()
	}
	return nil, &runner.Error{Cmdline: cmd, Err: errors.New("exit status 1")}
}

func (f *fakeRunner) on(out string, name string, args ...string) {
	f.handlers[runner.Cmdline(name, args...)] = func() ([]byte, error) { return []byte(out), nil }
}

func (f *fakeRunner) count(name string, args ...string) int {
	cmd := runner.Cmdline(name, args...)
	n := 0
	for _, c := range f.calls {
		if c == cmd {
			n++
		}
	}
	return n
}

func setup(t *testing.T) {
	t.Helper()
	t.Setenv("ENVCMP_CFG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv("ENVCMP_CACHE", "0")
	config.Config = config.Type{}
	t.Cleanup(func() { config.Config = config.Type{} })
}

var condaEnv = envs.Environment{Name: "proj", Kind: envs.KindConda, Path: "/envs/proj"}

func newFake(env envs.Environment, helperPresent bool) *fakeRunner {
	f := &fakeRunner{handlers: map[string]func() ([]byte, error){}}
	f.on(condaListJSON, "conda", "list", "-p", env.Path, "--json")
	f.on(condaExportJSON, "conda", "env", "export", "-p", env.Path, "--from-history", "--json")
	f.on(treeJSON, env.Python(), "-m", "pipdeptree", "--json-tree")
	f.on(pipNotRequiredJSON, env.Python(), "-m", "pip", "list", "--format=json", "--not-required")
	f.on(pipAllJSON, env.Python(), "-m", "pip", "list", "--format=json")
	if helperPresent {
		f.on("pipdeptree 2.23.1", env.Python(), "-m", "pipdeptree", "--version")
	}
	return f
}

func newTestLister(f runner.Runner, opts ...Option) *Lister {
	return NewLister(f, append([]Option{WithCondaExe("conda"), WithHelper("pipdeptree")}, opts...)...)
}

func TestList_Conda(t *testing.T) {
	setup(t)
	f := newFake(condaEnv, true)

	got := newTestLister(f).List(context.Background(), condaEnv)

	assert.Empty(t, got.Warnings)
	require.NotNil(t, got.Conda)
	assert.Equal(t, []string{"numpy", "python", "pyyaml"}, got.Conda.Keys())
	v, _ := got.Conda.Get("pyyaml")
	assert.Equal(t, "6.0.1", v)

	assert.Equal(t, []string{"requests", "pipdeptree", "ruamel-yaml"}, got.Pip.Keys())
	assert.Equal(t, 0, f.count(condaEnv.Python(), "-m", "pip", "install", "pipdeptree"))
}

func TestList_CondaHistoryFailureKeepsEverything(t *testing.T) {
	setup(t)
	f := newFake(condaEnv, true)
	delete(f.handlers, runner.Cmdline("conda", "env", "export", "-p", condaEnv.Path, "--from-history", "--json"))

	got := newTestLister(f).List(context.Background(), condaEnv)

	assert.Equal(t, []string{"numpy", "python", "pyyaml", "openssl"}, got.Conda.Keys())
	require.Len(t, got.Warnings, 1)
	assert.Contains(t, got.Warnings[0].Error(), "conda history unavailable")
}

func TestList_CondaFailureStillListsPip(t *testing.T) {
	setup(t)
	f := newFake(condaEnv, true)
	delete(f.handlers, runner.Cmdline("conda", "list", "-p", condaEnv.Path, "--json"))

	got := newTestLister(f).List(context.Background(), condaEnv)

	require.NotNil(t, got.Conda)
	assert.Equal(t, 0, got.Conda.Len())
	assert.Equal(t, 3, got.Pip.Len())
	require.Len(t, got.Warnings, 1)

	var rerr *runner.Error
	assert.ErrorAs(t, got.Warnings[0], &rerr)
}

func TestList_VirtualenvHasNoCondaView(t *testing.T) {
	setup(t)
	env := envs.Environment{Name: "web", Kind: envs.KindVirtualenv, Path: "/venvs/web"}
	f := newFake(env, true)

	got := newTestLister(f).List(context.Background(), env)

	assert.Nil(t, got.Conda)
	assert.Equal(t, 3, got.Pip.Len())
	for _, c := range f.calls {
		assert.NotContains(t, c, "conda ")
	}
}

func TestList_HelperInstalledOnce(t *testing.T) {
	setup(t)
	f := newFake(condaEnv, false)
	install := runner.Cmdline(condaEnv.Python(), "-m", "pip", "install", "pipdeptree")
	f.handlers[install] = func() ([]byte, error) {
		f.on("pipdeptree 2.23.1", condaEnv.Python(), "-m", "pipdeptree", "--version")
		return []byte("Successfully installed pipdeptree-2.23.1"), nil
	}

	l := newTestLister(f)
	got := l.List(context.Background(), condaEnv)
	again := l.List(context.Background(), condaEnv)

	assert.Empty(t, got.Warnings)
	assert.Equal(t, []string{"requests", "ruamel-yaml"}, got.Pip.Keys())
	assert.Equal(t, []string{"requests", "ruamel-yaml"}, again.Pip.Keys())
	assert.Equal(t, 1, f.count(condaEnv.Python(), "-m", "pip", "install", "pipdeptree"))
	// One check before the install and one after it.
	assert.Equal(t, 2, f.count(condaEnv.Python(), "-m", "pipdeptree", "--version"))
	assert.Equal(t, []string{"installed pipdeptree with pip"}, got.Notices)
}

func TestList_InstallAnnouncedAtDefaultLevel(t *testing.T) {
	setup(t)
	t.Setenv("ENVCMP_LOG", "")
	var console bytes.Buffer
	log.InitLoggerTo(&console)
	t.Cleanup(log.InitLogger)

	f := newFake(condaEnv, false)
	install := runner.Cmdline(condaEnv.Python(), "-m", "pip", "install", "pipdeptree")
	f.handlers[install] = func() ([]byte, error) {
		f.on("pipdeptree 2.23.1", condaEnv.Python(), "-m", "pipdeptree", "--version")
		return nil, nil
	}

	newTestLister(f).List(context.Background(), condaEnv)

	assert.Contains(t, console.String(), "proj: pipdeptree missing, installing it with pip")
}

func TestList_HelperPresentCheckedOnce(t *testing.T) {
	setup(t)
	f := newFake(condaEnv, true)

	got := newTestLister(f).List(context.Background(), condaEnv)

	assert.Empty(t, got.Notices)
	assert.Equal(t, 1, f.count(condaEnv.Python(), "-m", "pipdeptree", "--version"))
}

func TestList_InstallFailureFallsBack(t *testing.T) {
	setup(t)
	f := newFake(condaEnv, false)

	got := newTestLister(f).List(context.Background(), condaEnv)

	assert.Equal(t, []string{"requests", "flask"}, got.Pip.Keys())
	require.Len(t, got.Warnings, 1)
	assert.ErrorIs(t, got.Warnings[0], ErrHelperMissing)
	assert.Equal(t, 1, f.count(condaEnv.Python(), "-m", "pip", "install", "pipdeptree"))
}

func TestList_NoInstall(t *testing.T) {
	setup(t)
	f := newFake(condaEnv, false)

	got := newTestLister(f, WithAutoInstall(false)).List(context.Background(), condaEnv)

	assert.Equal(t, []string{"requests", "flask"}, got.Pip.Keys())
	require.Len(t, got.Warnings, 1)
	assert.ErrorIs(t, got.Warnings[0], ErrHelperMissing)
	assert.Equal(t, 0, f.count(condaEnv.Python(), "-m", "pip", "install", "pipdeptree"))
}

func TestList_All(t *testing.T) {
	setup(t)
	f := newFake(condaEnv, false)

	got := newTestLister(f, WithTopLevel(false)).List(context.Background(), condaEnv)

	assert.Empty(t, got.Warnings)
	assert.Equal(t, []string{"numpy", "python", "pyyaml", "openssl"}, got.Conda.Keys())
	assert.Equal(t, []string{"requests", "urllib3"}, got.Pip.Keys())
	assert.Equal(t, 0, f.count(condaEnv.Python(), "-m", "pipdeptree", "--version"))
}

func TestEnsureHelper_Present(t *testing.T) {
	setup(t)
	f := newFake(condaEnv, true)
	l := newTestLister(f)

	installed, err := l.EnsureHelper(context.Background(), condaEnv)
	assert.NoError(t, err)
	assert.False(t, installed)
	assert.True(t, l.HasHelper(context.Background(), condaEnv))
	assert.Equal(t, 0, f.count(condaEnv.Python(), "-m", "pip", "install", "pipdeptree"))
}

func TestEnsureHelper_FailureNotRetried(t *testing.T) {
	setup(t)
	f := newFake(condaEnv, false)
	l := newTestLister(f)

	_, err := l.EnsureHelper(context.Background(), condaEnv)
	assert.ErrorIs(t, err, ErrHelperMissing)
	_, err = l.EnsureHelper(context.Background(), condaEnv)
	assert.ErrorIs(t, err, ErrHelperMissing)

	assert.Equal(t, 1, f.count(condaEnv.Python(), "-m", "pip", "install", "pipdeptree"))
}

func TestList_Cached(t *testing.T) {
	setup(t)
	t.Setenv("ENVCMP_CACHE", "1")
	t.Setenv("ENVCMP_CACHE_DIR", t.TempDir())

	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "lib", "python3.11", "site-packages"), 0o755))
	env := envs.Environment{Name: "web", Kind: envs.KindVirtualenv, Path: dir}

	first := newTestLister(newFake(env, true)).List(context.Background(), env)
	require.Empty(t, first.Warnings)

	broken := &fakeRunner{handlers: map[string]func() ([]byte, error){}}
	second := newTestLister(broken).List(context.Background(), env)

	assert.Empty(t, second.Warnings)
	assert.Equal(t, first.Pip.Entries(), second.Pip.Entries())
	assert.Empty(t, broken.calls)
}

func TestCanonical(t *testing.T) {
	tests := map[string]string{
		"PyYAML":            "pyyaml",
		"ruamel.yaml":       "ruamel-yaml",
		"typing_extensions": "typing-extensions",
		"Foo__Bar-.baz":     "foo-bar-baz",
		" numpy ":           "numpy",
	}
	for in, want := range tests {
		assert.Equal(t, want, Canonical(in), in)
	}
}

func TestMatchSpecName(t *testing.T) {
	tests := map[string]string{
		"python=3.11":              "python",
		"conda-forge::numpy>=1.26": "numpy",
		"pyyaml":                   "pyyaml",
		"scikit-learn 1.5.*":       "scikit-learn",
		"pytorch[build=cuda*]":     "pytorch",
	}
	for in, want := range tests {
		assert.Equal(t, want, matchSpecName(in), in)
	}
}
