// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package metadata

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/envcmp/envcmp/internal/differ"
	"github.com/envcmp/envcmp/internal/envs"
)

// writeFiles creates files (slash separated paths) beneath root.
func writeFiles(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, body := range files {
		p := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
	}
}

func TestRead_Conda(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"conda-meta/state":                     `{"env_vars": {"ZETA": "1", "ALPHA": "two"}}`,
		"etc/conda/activate.d/env_vars.sh":     "#!/bin/sh\nexport CUDA_HOME=\"/usr/local/cuda\"\nexport ALPHA=three\n",
		"etc/conda/deactivate.d/env_vars.sh":   "#!/bin/sh\nunset CUDA_HOME\nexport LEFTOVER=1\n",
		"etc/conda/activate.d/sub/ignored.txt": "export NESTED=1\n",
	})

	md := Read(envs.Environment{Name: "proj", Kind: envs.KindConda, Path: root})

	assert.Empty(t, md.Warnings)
	assert.Equal(t, []string{
		"etc/conda/activate.d/env_vars.sh",
		"etc/conda/deactivate.d/env_vars.sh",
	}, md.Scripts.Keys())
	assert.Equal(t, []string{"ZETA", "ALPHA", "CUDA_HOME"}, md.Variables.Keys())

	v, _ := md.Variables.Get("ALPHA")
	assert.Equal(t, "three", v)
	v, _ = md.Variables.Get("CUDA_HOME")
	assert.Equal(t, "/usr/local/cuda", v)
}

func TestRead_CondaEmpty(t *testing.T) {
	md := Read(envs.Environment{Name: "base", Kind: envs.KindConda, Path: t.TempDir()})

	assert.Empty(t, md.Warnings)
	assert.Equal(t, 0, md.Variables.Len())
	assert.Equal(t, 0, md.Scripts.Len())
}

func TestRead_CondaMalformedState(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{"conda-meta/state": "{not json"})

	md := Read(envs.Environment{Name: "proj", Kind: envs.KindConda, Path: root})

	require.Len(t, md.Warnings, 1)
	assert.Contains(t, md.Warnings[0].Error(), "invalid JSON")
	assert.Equal(t, 0, md.Variables.Len())
}

func TestRead_Virtualenv(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"bin/postactivate":   "export DJANGO_SETTINGS_MODULE='site.settings'\n",
		"bin/predeactivate":  "unset DJANGO_SETTINGS_MODULE\n",
		"bin/activate":       "export PATH=\"$VIRTUAL_ENV/bin:$PATH\"\n",
		"bin/postdeactivate": "",
	})

	md := Read(envs.Environment{Name: "web", Kind: envs.KindVirtualenv, Path: root})

	assert.Empty(t, md.Warnings)
	assert.Equal(t, []string{"bin/postactivate", "bin/predeactivate", "bin/postdeactivate"}, md.Scripts.Keys())
	assert.Equal(t, []string{"VIRTUAL_ENV", "DJANGO_SETTINGS_MODULE"}, md.Variables.Keys())

	v, _ := md.Variables.Get("VIRTUAL_ENV")
	assert.Equal(t, root, v)
	v, _ = md.Variables.Get("DJANGO_SETTINGS_MODULE")
	assert.Equal(t, "site.settings", v)
}

func TestRead_NoScriptsEitherSide(t *testing.T) {
	a := Read(envs.Environment{Name: "a", Kind: envs.KindVirtualenv, Path: t.TempDir()})
	b := Read(envs.Environment{Name: "b", Kind: envs.KindVirtualenv, Path: t.TempDir()})

	r := differ.Compare(a.Scripts, b.Scripts)
	assert.True(t, r.Empty())
}

func TestExports(t *testing.T) {
	body := "# comment\n  export A=1\nexport B=\"two words\"\nexport C='x'\nexport 9BAD=1\nexportD=1\nPATH=/x\n"

	assert.Equal(t, []differ.Entry{
		{Key: "A", Value: "1"},
		{Key: "B", Value: "two words"},
		{Key: "C", Value: "x"},
	}, exports(body))
}
