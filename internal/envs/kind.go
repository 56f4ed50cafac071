// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package envs

import (
	"fmt"
	"strings"
)

// Kind selects the enumeration and listing strategy for an environment.
type Kind int

const (
	KindConda Kind = iota
	KindVirtualenv
)

// ParseKind maps user input to a Kind. Empty input means Conda, matching the
// interactive prompt default.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "c", "conda":
		return KindConda, nil
	case "v", "venv", "virtualenv":
		return KindVirtualenv, nil
	default:
		return KindConda, fmt.Errorf("unknown environment type %q (want c or v)", s)
	}
}

func (k Kind) String() string {
	switch k {
	case KindConda:
		return "conda"
	case KindVirtualenv:
		return "virtualenv"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// MarshalText renders the kind by name in JSON output.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// MarshalYAML renders the kind by name in YAML output.
func (k Kind) MarshalYAML() (interface{}, error) {
	return k.String(), nil
}

// UnmarshalText accepts any spelling ParseKind does.
func (k *Kind) UnmarshalText(b []byte) error {
	parsed, err := ParseKind(string(b))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}
