// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package differ

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSet_PutKeepsFirstPosition(t *testing.T) {
	s := NewSet()
	s.Put("b", "1")
	s.Put("a", "1")
	s.Put("b", "2")

	assert.Equal(t, []string{"b", "a"}, s.Keys())
	v, ok := s.Get("b")
	assert.True(t, ok)
	assert.Equal(t, "2", v)
	assert.Equal(t, 2, s.Len())
}

func TestSet_Nil(t *testing.T) {
	var s *Set
	assert.Equal(t, 0, s.Len())
	assert.Nil(t, s.Keys())
	assert.Empty(t, s.Entries())
	assert.False(t, s.Has("x"))
}

func TestSetOf_OddArgs(t *testing.T) {
	s := SetOf("a", "1", "b")
	v, ok := s.Get("b")
	assert.True(t, ok)
	assert.Equal(t, "", v)
}

func TestSet_KeysIsACopy(t *testing.T) {
	s := SetOf("a", "1")
	keys := s.Keys()
	keys[0] = "mutated"
	assert.Equal(t, []string{"a"}, s.Keys())
}

func TestSet_Filter(t *testing.T) {
	s := SetOf("pytest", "8", "numpy", "1", "pyyaml", "6")
	f := s.Filter(func(k, _ string) bool { return strings.HasPrefix(k, "py") })

	assert.Equal(t, []string{"pytest", "pyyaml"}, f.Keys())
	assert.Equal(t, 3, s.Len())
}
