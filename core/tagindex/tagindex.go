// Copyright 2024 - 2026, the Inkwell contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package tagindex provides the pure query operations used to build the
"browse by tag" index.

The site loader produces a table mapping tag names to the posts carrying
them. Rendering wants that table in a deterministic, case-insensitive
alphabetical order, with internal bookkeeping entries filtered out.
Two filtering strategies exist: ListValued keeps only entries whose value
is genuinely a list (the canonical strategy), and WithoutBookkeeping drops
the known non-tag keys by name.

All operations are side-effect free and never mutate their input.
*/
package tagindex

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strings"
)

// Bookkeeping keys that may appear alongside real tags in some internal
// table representations and must never show up in a user-facing listing.
const (
	keyType = "type"
	keyPath = "path"
)

// ErrNotTagTable is returned by the dynamic entry points when the input is
// not a string-keyed map. Rendering must fail the page loudly rather than
// produce a partial tag index.
var ErrNotTagTable = errors.New("tagindex: input is not a string-keyed map")

// TagTable maps a tag name to its associated value, usually the list of
// posts carrying that tag. Keys are unique; iteration order is unspecified.
type TagTable[V any] map[string]V

// SortedNames returns every key of table exactly once, sorted ascending by
// its lowercased form.
//
// Tag names differing only by case stay distinct entries; they end up
// adjacent, ordered by a byte comparison of the original names so repeated
// calls over the same table always agree.
func SortedNames[V any](table map[string]V) []string {
	names := make([]string, 0, len(table))
	for name := range table {
		names = append(names, name)
	}

	slices.SortFunc(names, compareFold)

	return names
}

// WithoutBookkeeping returns a copy of table without the "type" and "path"
// entries. Every other entry is carried over unchanged.
func WithoutBookkeeping[V any](table map[string]V) map[string]V {
	filtered := make(map[string]V, len(table))

	for name, value := range table {
		if name == keyType || name == keyPath {
			continue
		}

		filtered[name] = value
	}

	return filtered
}

// ListValued returns a copy of table containing exactly the entries whose
// value is a slice or array.
//
// This is the preferred way to separate genuine tag-to-posts entries from
// scalar bookkeeping values: it keys on what the entry is rather than on a
// hardcoded name.
func ListValued(table map[string]any) map[string]any {
	filtered := make(map[string]any, len(table))

	for name, value := range table {
		if !isList(value) {
			continue
		}

		filtered[name] = value
	}

	return filtered
}

// SortedNamesOf is the dynamic form of SortedNames for callers holding the
// table as an untyped value. It returns ErrNotTagTable when v is not a
// string-keyed map.
func SortedNamesOf(v any) ([]string, error) {
	keys, err := stringKeys(v)
	if err != nil {
		return nil, err
	}

	slices.SortFunc(keys, compareFold)

	return keys, nil
}

// ListValuedOf is the dynamic form of ListValued. It returns ErrNotTagTable
// when v is not a string-keyed map.
func ListValuedOf(v any) (map[string]any, error) {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return nil, fmt.Errorf("%w: got %T", ErrNotTagTable, v)
	}

	filtered := make(map[string]any, rv.Len())

	iter := rv.MapRange()
	for iter.Next() {
		value := iter.Value().Interface()
		if !isList(value) {
			continue
		}

		filtered[iter.Key().String()] = value
	}

	return filtered, nil
}

// compareFold orders a before b by lowercased form, breaking ties between
// case-variants with a byte comparison so the overall order is total.
func compareFold(a, b string) int {
	if c := strings.Compare(strings.ToLower(a), strings.ToLower(b)); c != 0 {
		return c
	}

	return strings.Compare(a, b)
}

// isList reports whether v is a slice or array of any element type.
func isList(v any) bool {
	switch reflect.ValueOf(v).Kind() {
	case reflect.Slice, reflect.Array:
		return true
	default:
		return false
	}
}

// stringKeys extracts the keys of any string-keyed map.
func stringKeys(v any) ([]string, error) {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return nil, fmt.Errorf("%w: got %T", ErrNotTagTable, v)
	}

	keys := make([]string, 0, rv.Len())

	iter := rv.MapRange()
	for iter.Next() {
		keys = append(keys, iter.Key().String())
	}

	return keys, nil
}
