package model

// combinations returns every size-subset of items as index-ordered slices, in lexicographic order of indices.
//
// Example:
//
//	combinations([]int64{1, 2, 3}, 2) // [[1 2] [1 3] [2 3]]
func combinations(items []int64, size int) [][]int64 {
	if size < 0 || size > len(items) {
		return [][]int64{}
	}
	result := make([][]int64, 0)
	combinationsFrom(items, size, 0, make([]int64, 0, size), &result)
	return result
}

func combinationsFrom(items []int64, size, start int, combination []int64, result *[][]int64) {
	if len(combination) == size {
		combinationCopy := make([]int64, len(combination))
		copy(combinationCopy, combination)
		*result = append(*result, combinationCopy)
		return
	}

	// Stop early when not enough items remain to complete the combination
	for i := start; i <= len(items)-(size-len(combination)); i++ {
		combinationsFrom(items, size, i+1, append(combination, items[i]), result)
	}
}
