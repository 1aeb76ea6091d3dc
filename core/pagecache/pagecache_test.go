// Copyright 2024 - 2026, the Inkwell contributors
// SPDX-License-Identifier: AGPL-3.0-only

package pagecache

import (
	"bytes"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_InvalidSize(t *testing.T) {
	t.Parallel()

	for _, size := range []int{0, -1} {
		_, err := New(size, false)
		assert.ErrorIs(t, err, ErrInvalidSize)
	}
}

func TestAddGet(t *testing.T) {
	t.Parallel()

	for _, compress := range []bool{false, true} {
		t.Run("compress="+strconv.FormatBool(compress), func(t *testing.T) {
			t.Parallel()

			cache, err := New(4, compress)
			require.NoError(t, err)

			body := bytes.Repeat([]byte("<p>hello world</p>"), 64)

			cache.Add("/posts/hello", body)

			got, ok := cache.Get("/posts/hello")
			require.True(t, ok)
			assert.Equal(t, body, got)

			_, ok = cache.Get("/posts/missing")
			assert.False(t, ok)
		})
	}
}

func TestGet_ReturnsCopy(t *testing.T) {
	t.Parallel()

	cache, err := New(2, false)
	require.NoError(t, err)

	cache.Add("/", []byte("original"))

	got, ok := cache.Get("/")
	require.True(t, ok)

	got[0] = 'X'

	again, ok := cache.Get("/")
	require.True(t, ok)
	assert.Equal(t, []byte("original"), again)
}

func TestAdd_DoesNotAliasCaller(t *testing.T) {
	t.Parallel()

	cache, err := New(2, false)
	require.NoError(t, err)

	body := []byte("original")
	cache.Add("/", body)

	body[0] = 'X'

	got, ok := cache.Get("/")
	require.True(t, ok)
	assert.Equal(t, []byte("original"), got)
}

func TestEviction(t *testing.T) {
	t.Parallel()

	cache, err := New(2, false)
	require.NoError(t, err)

	assert.False(t, cache.Add("/a", []byte("a")))
	assert.False(t, cache.Add("/b", []byte("b")))

	// Touch /a so /b becomes the eviction candidate.
	_, ok := cache.Get("/a")
	require.True(t, ok)

	assert.True(t, cache.Add("/c", []byte("c")), "expected an eviction at capacity")
	assert.Equal(t, 2, cache.Len())

	_, ok = cache.Get("/b")
	assert.False(t, ok, "/b should have been evicted")

	_, ok = cache.Get("/a")
	assert.True(t, ok)
}

func TestRemove(t *testing.T) {
	t.Parallel()

	cache, err := New(2, false)
	require.NoError(t, err)

	cache.Add("/a", []byte("a"))

	assert.True(t, cache.Remove("/a"))
	assert.False(t, cache.Remove("/a"))
	assert.Zero(t, cache.Len())
}

func TestAdd_UpdateExisting(t *testing.T) {
	t.Parallel()

	cache, err := New(2, true)
	require.NoError(t, err)

	cache.Add("/a", []byte("first"))
	cache.Add("/a", bytes.Repeat([]byte("second"), 32))

	got, ok := cache.Get("/a")
	require.True(t, ok)
	assert.Equal(t, bytes.Repeat([]byte("second"), 32), got)
	assert.Equal(t, 1, cache.Len())
}
