// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"fmt"
	"slices"

	"github.com/envcmp/envcmp/internal/envs"
	"github.com/envcmp/envcmp/internal/filters"
)

type FlagValidatorType func(any) error

func FlagValidators(value any, validators ...FlagValidatorType) error {
	for _, v := range validators {
		if err := v(value); err != nil {
			return err
		}
	}
	return nil
}

func OutputValidator(value any) error {
	var validOutputFlagValues = []string{"text", "json", "yaml"}
	s, _ := value.(string)
	if !slices.Contains(validOutputFlagValues, s) {
		return fmt.Errorf("must be one of %v", validOutputFlagValues)
	}
	return nil
}

func KindValidator(value any) error {
	s, _ := value.(string)
	_, err := envs.ParseKind(s)
	return err
}

// FilterValidator rejects a non-empty spec in which no expression parses.
func FilterValidator(value any) error {
	s, _ := value.(string)
	if s != "" && len(filters.BuildFilters(s)) == 0 {
		return fmt.Errorf("no valid filter in %q", s)
	}
	return nil
}
