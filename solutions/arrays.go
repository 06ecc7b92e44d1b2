package solutions

import (
	"slices"

	"github.com/ValentinKolb/tcio/lib/codec"
	"github.com/ValentinKolb/tcio/lib/harness"
)

func init() {
	harness.Register("two-sum", harness.Func2(TwoSum))
	harness.Register("merge-intervals", harness.Func1(MergeIntervals))
	harness.Register("min-max", harness.Func1(MinMax))
	harness.Register("group-by-length", harness.Func1(GroupByLength))
}

// TwoSum returns the indices of the two numbers that add up to target
func TwoSum(nums []int, target int) []int {
	seen := make(map[int]int, len(nums))
	for i, n := range nums {
		if j, ok := seen[target-n]; ok {
			return []int{j, i}
		}
		seen[n] = i
	}
	return []int{}
}

// MergeIntervals merges all overlapping [start, end] intervals
func MergeIntervals(intervals [][]int) [][]int {
	sorted := slices.Clone(intervals)
	slices.SortFunc(sorted, func(a, b []int) int {
		return a[0] - b[0]
	})

	merged := make([][]int, 0, len(sorted))
	for _, iv := range sorted {
		if n := len(merged); n > 0 && iv[0] <= merged[n-1][1] {
			merged[n-1][1] = max(merged[n-1][1], iv[1])
			continue
		}
		merged = append(merged, []int{iv[0], iv[1]})
	}
	return merged
}

// MinMax returns the smallest and the largest number. Both are 0 for no numbers.
func MinMax(nums []int) codec.Pair[int, int] {
	if len(nums) == 0 {
		return codec.Pair[int, int]{}
	}
	return codec.MakePair(slices.Min(nums), slices.Max(nums))
}

// GroupByLength groups words by their length
func GroupByLength(words []string) map[int][]string {
	groups := make(map[int][]string)
	for _, w := range words {
		groups[len(w)] = append(groups[len(w)], w)
	}
	return groups
}
