// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package filters

import (
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/apex/log"

	"github.com/envcmp/envcmp/internal/differ"
)

// filterRegex splits an expression into key, operator (with optional
// negation) and target. "name" is key only, "name=" is key and operator with
// an empty target.
var filterRegex = regexp.MustCompile(`^([^!=^~<>@/]*)(!?[=^~<>@/])?(.*)$`)

const (
	KeyName    = "name"
	KeyVersion = "version"
)

// Filter is a single parsed --filter expression.
type Filter struct {
	Key     string `yaml:"key" json:"Key"`
	Negate  bool   `yaml:"negate" json:"Negate"`
	Operand string `yaml:"operand" json:"Operand"`
	Value   string `yaml:"value" json:"Value"`
}

// BuildFilters parses a filter specification string into a slice of Filter.
// Invalid specs (unknown key, missing operand, malformed expression) are
// skipped.
func BuildFilters(spec string) []Filter {
	//nolint:prealloc
	var filters []Filter

	if strings.TrimSpace(spec) == "" {
		return filters
	}

	// Allow a different delimiter for regexes that contain commas.
	delim := ","
	if d, ok := os.LookupEnv("ENVCMP_FILTER_DELIM"); ok && d != "" {
		delim = d
	}

	for _, filterSpec := range strings.Split(spec, delim) {
		filterSpec = strings.TrimSpace(filterSpec)
		if filterSpec == "" {
			continue
		}

		parts := filterRegex.FindStringSubmatch(filterSpec)
		if parts == nil {
			log.Error("invalid filter: " + filterSpec)
			continue
		}

		key := strings.ToLower(strings.TrimSpace(parts[1]))
		operand := parts[2]
		target := parts[3]

		if key != KeyName && key != KeyVersion {
			log.Errorf("invalid filter: unknown key %q in %s", key, filterSpec)
			continue
		}
		if operand == "" {
			log.Error("invalid filter: missing operator in " + filterSpec)
			continue
		}

		negate := strings.HasPrefix(operand, "!")
		operand = strings.TrimPrefix(operand, "!")

		if operand == "/" {
			if _, err := regexp.Compile(target); err != nil {
				log.Errorf("invalid filter: bad regex %q: %v", target, err)
				continue
			}
		}

		filters = append(filters, Filter{
			Key:     key,
			Negate:  negate,
			Operand: operand,
			Value:   target,
		})
	}

	return filters
}

// Apply returns the entries of set that match every filter, in set order.
// With no filters the set is returned unchanged.
func Apply(set *differ.Set, filters []Filter) *differ.Set {
	if len(filters) == 0 || set == nil {
		return set
	}
	kept := set.Filter(func(name, version string) bool {
		return Matches(name, version, filters)
	})
	log.Debugf("filters kept %d of %d packages", kept.Len(), set.Len())
	return kept
}

// Matches reports whether a package passes all filters.
func Matches(name, version string, filters []Filter) bool {
	for _, filter := range filters {
		value := name
		if filter.Key == KeyVersion {
			value = version
		}
		if !checkOperand(value, filter) {
			return false
		}
	}
	return true
}

// checkOperand evaluates one filter against value.
func checkOperand(value string, filter Filter) bool {
	switch filter.Operand {
	case "=":
		return value == filter.Value == !filter.Negate
	case "^":
		return strings.HasPrefix(value, filter.Value) == !filter.Negate
	case "~":
		return strings.Contains(strings.ToLower(value), strings.ToLower(filter.Value)) == !filter.Negate
	case "@":
		return strings.Contains(value, filter.Value) == !filter.Negate
	case "<":
		return (compareVersions(value, filter.Value) < 0) == !filter.Negate
	case ">":
		return (compareVersions(value, filter.Value) > 0) == !filter.Negate
	case "/":
		matched, err := regexp.MatchString(filter.Value, value)
		if err != nil {
			log.Error("invalid regex: " + filter.Value)
			return false
		}
		return matched == !filter.Negate
	default:
		log.Error("unsupported filtering operand: " + filter.Operand)
		return false
	}
}

// compareVersions orders dotted versions segment by segment. Segments that
// are both numeric compare as numbers, anything else compares as text, and a
// missing segment sorts first ("1.2" < "1.2.1").
func compareVersions(a, b string) int {
	as := strings.Split(a, ".")
	bs := strings.Split(b, ".")

	for i := 0; i < len(as) || i < len(bs); i++ {
		if i >= len(as) {
			return -1
		}
		if i >= len(bs) {
			return 1
		}

		an, aerr := strconv.Atoi(as[i])
		bn, berr := strconv.Atoi(bs[i])
		if aerr == nil && berr == nil {
			if an != bn {
				if an < bn {
					return -1
				}
				return 1
			}
			continue
		}
		if c := strings.Compare(as[i], bs[i]); c != 0 {
			return c
		}
	}
	return 0
}
