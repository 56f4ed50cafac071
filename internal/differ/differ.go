// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package differ

import (
	"strings"

	difflib "github.com/pmezard/go-difflib/difflib"
)

// Entry is a single key and the value carried along for display.
type Entry struct {
	Key   string `json:"key" yaml:"key"`
	Value string `json:"value" yaml:"value"`
}

// Pair is a key present on both sides with the value from each side.
type Pair struct {
	Key string `json:"key" yaml:"key"`
	A   string `json:"a" yaml:"a"`
	B   string `json:"b" yaml:"b"`
}

// Result holds the three disjoint groups produced by Compare. Every key of
// either input lands in exactly one group.
type Result struct {
	OnlyA  []Entry `json:"only_a" yaml:"only_a"`
	OnlyB  []Entry `json:"only_b" yaml:"only_b"`
	Common []Pair  `json:"common" yaml:"common"`
}

// Empty reports whether all three groups are empty.
func (r Result) Empty() bool {
	return len(r.OnlyA) == 0 && len(r.OnlyB) == 0 && len(r.Common) == 0
}

// Compare computes the key-set difference between a and b. OnlyA and Common
// follow a's insertion order, OnlyB follows b's. Values are carried along but
// never compared, so a version change on a shared key is still Common. A nil
// set behaves as an empty one.
func Compare(a, b *Set) Result {
	result := Result{
		OnlyA:  []Entry{},
		OnlyB:  []Entry{},
		Common: []Pair{},
	}

	for _, key := range a.Keys() {
		va, _ := a.Get(key)
		if vb, ok := b.Get(key); ok {
			result.Common = append(result.Common, Pair{Key: key, A: va, B: vb})
		} else {
			result.OnlyA = append(result.OnlyA, Entry{Key: key, Value: va})
		}
	}

	for _, key := range b.Keys() {
		if a.Has(key) {
			continue
		}
		vb, _ := b.Get(key)
		result.OnlyB = append(result.OnlyB, Entry{Key: key, Value: vb})
	}

	return result
}

// Unified returns a unified diff of two text bodies, or "" when they are
// identical.
func Unified(aName, bName, a, b string) string {
	if a == b {
		return ""
	}

	u := difflib.UnifiedDiff{
		A:        difflib.SplitLines(a),
		B:        difflib.SplitLines(b),
		FromFile: aName,
		ToFile:   bName,
		Context:  3,
	}
	s, err := difflib.GetUnifiedDiffString(u)
	if err != nil {
		return ""
	}

	// SplitLines leaves a trailing "\n" line for bodies without a final
	// newline; keep the output tidy either way.
	return strings.TrimRight(s, "\n") + "\n"
}
