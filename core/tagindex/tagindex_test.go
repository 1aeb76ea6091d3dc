// Copyright 2024 - 2026, the Inkwell contributors
// SPDX-License-Identifier: AGPL-3.0-only

package tagindex

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSortedNames(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		table map[string][]string
		want  []string
	}{
		{
			name:  "mixed case sorts by lowercased form",
			table: map[string][]string{"Ruby": {"post1"}, "ai": {"post2"}, "AWS": {"post3"}},
			want:  []string{"ai", "AWS", "Ruby"},
		},
		{
			name:  "empty table yields empty sequence",
			table: map[string][]string{},
			want:  []string{},
		},
		{
			name:  "single entry",
			table: map[string][]string{"crystal-lang": {"post1"}},
			want:  []string{"crystal-lang"},
		},
		{
			name:  "case variants stay distinct and adjacent",
			table: map[string][]string{"AI": nil, "ai": nil, "zig": nil},
			want:  []string{"AI", "ai", "zig"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := SortedNames(tt.table)
			assert.Equal(t, tt.want, got)

			// Output is a permutation of the key set.
			assert.Len(t, got, len(tt.table))
			for _, name := range got {
				assert.Contains(t, tt.table, name)
			}

			// Adjacent pairs are ordered by lowercased form.
			for i := 1; i < len(got); i++ {
				assert.LessOrEqual(t, strings.ToLower(got[i-1]), strings.ToLower(got[i]))
			}
		})
	}
}

func TestSortedNames_Deterministic(t *testing.T) {
	t.Parallel()

	table := map[string]int{"Go": 1, "go": 2, "GO": 3, "rust": 4, "Zig": 5}

	first := SortedNames(table)
	for range 20 {
		assert.Equal(t, first, SortedNames(table), "repeated calls must agree")
	}
}

func TestSortedNames_DoesNotMutateInput(t *testing.T) {
	t.Parallel()

	table := map[string]string{"b": "2", "A": "1"}

	SortedNames(table)

	assert.Equal(t, map[string]string{"b": "2", "A": "1"}, table)
}

func TestWithoutBookkeeping(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		table map[string]any
		want  map[string]any
	}{
		{
			name:  "drops type and path",
			table: map[string]any{"type": "posts", "path": "/tags/", "crystal-lang": []string{"post1"}},
			want:  map[string]any{"crystal-lang": []string{"post1"}},
		},
		{
			name:  "no bookkeeping keys present",
			table: map[string]any{"infrastructure": []string{"post2"}},
			want:  map[string]any{"infrastructure": []string{"post2"}},
		},
		{
			name:  "empty table",
			table: map[string]any{},
			want:  map[string]any{},
		},
		{
			name:  "near-miss keys are kept",
			table: map[string]any{"types": 1, "Path": 2, "type": 3},
			want:  map[string]any{"types": 1, "Path": 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := WithoutBookkeeping(tt.table)
			assert.Equal(t, tt.want, got)
			assert.NotContains(t, got, "type")
			assert.NotContains(t, got, "path")
		})
	}
}

func TestListValued(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		table map[string]any
		want  map[string]any
	}{
		{
			name: "keeps only slice values",
			table: map[string]any{
				"type":           "posts",
				"crystal-lang":   []string{"post1"},
				"infrastructure": []string{"post2"},
			},
			want: map[string]any{
				"crystal-lang":   []string{"post1"},
				"infrastructure": []string{"post2"},
			},
		},
		{
			name:  "arrays count as lists",
			table: map[string]any{"fixed": [2]int{1, 2}, "count": 7},
			want:  map[string]any{"fixed": [2]int{1, 2}},
		},
		{
			name:  "empty table",
			table: map[string]any{},
			want:  map[string]any{},
		},
		{
			name:  "maps and nils are not lists",
			table: map[string]any{"meta": map[string]string{}, "missing": nil},
			want:  map[string]any{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, ListValued(tt.table))
		})
	}
}

func TestSortedNamesOf(t *testing.T) {
	t.Parallel()

	got, err := SortedNamesOf(map[string][]int{"Ruby": nil, "ai": nil, "AWS": nil})
	require.NoError(t, err)
	assert.Equal(t, []string{"ai", "AWS", "Ruby"}, got)

	_, err = SortedNamesOf([]string{"not", "a", "map"})
	require.ErrorIs(t, err, ErrNotTagTable)

	_, err = SortedNamesOf(map[int]string{1: "x"})
	require.ErrorIs(t, err, ErrNotTagTable)
}

func TestListValuedOf(t *testing.T) {
	t.Parallel()

	got, err := ListValuedOf(map[string]any{"type": "posts", "go": []string{"post1"}})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"go": []string{"post1"}}, got)

	// Typed maps work too; values are reported as-is.
	got, err = ListValuedOf(map[string][]string{"go": {"post1"}})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"go": []string{"post1"}}, got)

	_, err = ListValuedOf("nope")
	require.ErrorIs(t, err, ErrNotTagTable)
}
