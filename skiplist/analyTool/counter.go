package analyTool

import "github.com/Hakuto4838/skipmap/skiplist"

// CompareCounter 記錄比較函數被呼叫的次數，作為與硬體無關的成本指標
type CompareCounter struct {
	n int64
}

// Reset 在每次操作前歸零
func (c *CompareCounter) Reset() { c.n = 0 }

func (c *CompareCounter) Count() int64 { return c.n }

// Counting 包裝比較函數，每次呼叫都累加到 counter
func Counting[K any](counter *CompareCounter, compare skiplist.Comparator[K]) skiplist.Comparator[K] {
	return func(a, b K) int {
		counter.n++
		return compare(a, b)
	}
}
