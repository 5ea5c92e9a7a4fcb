package helpers

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChunk(t *testing.T) {
	t.Run("splits into even batches with a remainder", func(t *testing.T) {
		chunks := Chunk([]int64{1, 2, 3, 4, 5, 6, 7}, 3)
		require.Len(t, chunks, 3)
		assert.Equal(t, []int64{1, 2, 3}, chunks[0])
		assert.Equal(t, []int64{4, 5, 6}, chunks[1])
		assert.Equal(t, []int64{7}, chunks[2])
	})

	t.Run("empty input yields no chunks", func(t *testing.T) {
		assert.Nil(t, Chunk([]int64{}, 3))
	})

	t.Run("non-positive size yields one chunk", func(t *testing.T) {
		chunks := Chunk([]string{"a", "b"}, 0)
		require.Len(t, chunks, 1)
		assert.Equal(t, []string{"a", "b"}, chunks[0])
	})

	t.Run("exact multiple has no short tail", func(t *testing.T) {
		chunks := Chunk([]int{1, 2, 3, 4}, 2)
		require.Len(t, chunks, 2)
		assert.Len(t, chunks[1], 2)
	})
}

func TestFetchInBatches(t *testing.T) {
	t.Run("merges results in batch order", func(t *testing.T) {
		var calls [][]int64
		results, err := FetchInBatches([]int64{1, 2, 3, 4, 5}, 2, func(batch []int64) ([]string, error) {
			calls = append(calls, batch)
			out := make([]string, 0, len(batch))
			for range batch {
				out = append(out, "r")
			}
			return out, nil
		})
		require.NoError(t, err)
		assert.Len(t, results, 5)
		require.Len(t, calls, 3)
		assert.Equal(t, []int64{5}, calls[2])
	})

	t.Run("stops on first error", func(t *testing.T) {
		boom := errors.New("boom")
		calls := 0
		_, err := FetchInBatches([]int64{1, 2, 3, 4}, 2, func(batch []int64) ([]int, error) {
			calls++
			return nil, boom
		})
		assert.ErrorIs(t, err, boom)
		assert.Equal(t, 1, calls)
	})

	t.Run("no ids means no fetches", func(t *testing.T) {
		results, err := FetchInBatches(nil, 2, func(batch []int64) ([]int, error) {
			t.Fatal("fetch should not be called")
			return nil, nil
		})
		require.NoError(t, err)
		assert.Empty(t, results)
	})
}
