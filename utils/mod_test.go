package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFindIndex(t *testing.T) {
	require.Equal(t, 1, FindIndex([]int{4, 5, 5}, 5), "Should return the first occurrence")
	require.Equal(t, -1, FindIndex([]string{"a"}, "b"), "Should return -1 for a missing item")
	require.Equal(t, -1, FindIndex(nil, 0), "Should return -1 for an empty slice")
}

func TestArgMax(t *testing.T) {
	identity := func(v int) int { return v }

	t.Run("picks the highest key", func(t *testing.T) {
		require.Equal(t, 2, ArgMax([]int{1, 3, 7, 2}, identity))
	})

	t.Run("breaks ties by first occurrence", func(t *testing.T) {
		require.Equal(t, 1, ArgMax([]int{1, 7, 7, 2}, identity))
	})

	t.Run("handles negative keys", func(t *testing.T) {
		require.Equal(t, 2, ArgMax([]float64{-3, -2, -1}, func(v float64) float64 { return v }))
	})

	t.Run("returns -1 for an empty slice", func(t *testing.T) {
		require.Equal(t, -1, ArgMax([]int{}, identity))
	})
}
