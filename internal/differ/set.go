// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package differ

// Set is an insertion-ordered string map. It backs package sets (name to
// version), variable sets (name to value) and script sets (identifier to
// content). The zero value is not usable; a nil *Set reads as empty.
type Set struct {
	keys   []string
	values map[string]string
}

// NewSet returns an empty Set.
func NewSet() *Set {
	return &Set{values: map[string]string{}}
}

// SetOf builds a Set from alternating key, value arguments. A trailing key
// without a value gets "".
func SetOf(kv ...string) *Set {
	s := NewSet()
	for i := 0; i < len(kv); i += 2 {
		v := ""
		if i+1 < len(kv) {
			v = kv[i+1]
		}
		s.Put(kv[i], v)
	}
	return s
}

// Put stores value under key. The first Put of a key fixes its position;
// later Puts only replace the value.
func (s *Set) Put(key, value string) {
	if _, ok := s.values[key]; !ok {
		s.keys = append(s.keys, key)
	}
	s.values[key] = value
}

// Get returns the value stored under key.
func (s *Set) Get(key string) (string, bool) {
	if s == nil {
		return "", false
	}
	v, ok := s.values[key]
	return v, ok
}

// Has reports whether key is present.
func (s *Set) Has(key string) bool {
	_, ok := s.Get(key)
	return ok
}

// Len returns the number of keys.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.keys)
}

// Keys returns the keys in insertion order.
func (s *Set) Keys() []string {
	if s == nil {
		return nil
	}
	return append([]string(nil), s.keys...)
}

// Entries returns the key/value pairs in insertion order.
func (s *Set) Entries() []Entry {
	entries := make([]Entry, 0, s.Len())
	for _, k := range s.Keys() {
		entries = append(entries, Entry{Key: k, Value: s.values[k]})
	}
	return entries
}

// Filter returns a new Set holding the entries for which keep returns true,
// in the original order.
func (s *Set) Filter(keep func(key, value string) bool) *Set {
	out := NewSet()
	for _, e := range s.Entries() {
		if keep(e.Key, e.Value) {
			out.Put(e.Key, e.Value)
		}
	}
	return out
}
