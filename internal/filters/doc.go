// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package filters narrows package sets before they are compared.
//
// A filter specification is a list of key-operator-target expressions joined
// by a delimiter (default: comma, override with ENVCMP_FILTER_DELIM). Keys are
// "name" (the canonical package name) and "version".
//
// Operators:
//
//   - = : exact match
//   - ^ : prefix match
//   - ~ : case-insensitive substring match
//   - @ : substring match
//   - / : regular expression match
//   - < : version ordering, less than
//   - > : version ordering, greater than
//
// Any operator may be negated with a leading '!'.
//
// Examples:
//
//   - "name^py" : packages whose name starts with "py"
//   - "name!~test" : packages whose name does not contain "test"
//   - "name/^(numpy|scipy)$,version>1.20" : numpy or scipy newer than 1.20
//
// A package is kept only when it matches every expression. Malformed
// expressions and unknown keys are logged and skipped.
package filters
