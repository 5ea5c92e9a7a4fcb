package helpers

// Chunk splits items into consecutive slices of at most size elements.
// A size <= 0 yields a single chunk with all items.
func Chunk[T any](items []T, size int) [][]T {
	if len(items) == 0 {
		return nil
	}
	if size <= 0 {
		return [][]T{items}
	}

	chunks := make([][]T, 0, (len(items)+size-1)/size)
	for start := 0; start < len(items); start += size {
		end := start + size
		if end > len(items) {
			end = len(items)
		}
		chunks = append(chunks, items[start:end])
	}
	return chunks
}

// FetchInBatches splits ids into batches of at most batchSize, calls fetch for
// each batch, and merges the results in batch order. Query providers that cap
// the number of values in an IN clause get fed one batch at a time.
func FetchInBatches[ID any, R any](ids []ID, batchSize int, fetch func([]ID) ([]R, error)) ([]R, error) {
	var merged []R
	for _, batch := range Chunk(ids, batchSize) {
		results, err := fetch(batch)
		if err != nil {
			return nil, err
		}
		merged = append(merged, results...)
	}
	return merged, nil
}
