// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package log

import (
	"bytes"
	"errors"
	"testing"

	"github.com/apex/log"
	"github.com/stretchr/testify/assert"
)

func TestInitLoggerTo_Levels(t *testing.T) {
	tests := []struct {
		env      string
		expected log.Level
	}{
		{"", log.WarnLevel},
		{"trace", log.DebugLevel},
		{"debug", log.DebugLevel},
		{"INFO", log.InfoLevel},
		{"warn", log.WarnLevel},
		{"error", log.ErrorLevel},
		{"bogus", log.WarnLevel},
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			t.Setenv("ENVCMP_LOG", tt.env)
			var buf bytes.Buffer
			InitLoggerTo(&buf)

			logger, ok := log.Log.(*log.Logger)
			if assert.True(t, ok) {
				assert.Equal(t, tt.expected, logger.Level)
			}
		})
	}
}

func TestLineHandler_Format(t *testing.T) {
	t.Setenv("ENVCMP_LOG", "debug")
	var buf bytes.Buffer
	InitLoggerTo(&buf)

	Warnf("listing %s failed", "pip")
	WithError(errors.New("boom")).Error("install")

	out := buf.String()
	assert.Contains(t, out, " W listing pip failed\n")
	assert.Contains(t, out, " E install error=boom\n")
}

func TestTracef_OnlyWhenTraceEnabled(t *testing.T) {
	var buf bytes.Buffer

	t.Setenv("ENVCMP_LOG", "debug")
	InitLoggerTo(&buf)
	Tracef("hidden")
	assert.NotContains(t, buf.String(), "hidden")

	t.Setenv("ENVCMP_LOG", "trace")
	InitLoggerTo(&buf)
	Tracef("shown")
	assert.Contains(t, buf.String(), " T shown\n")
}
