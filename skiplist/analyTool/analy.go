package analyTool

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/Hakuto4838/skipmap/skiplist"
	"github.com/olekukonko/tablewriter"
)

type StepMap[K comparable] map[K]int

// FindStep 計算找到指定 key 的總步數和各層步數
// 右移一格算一步，往下一層也算一步
func FindStep[K, V any](sl skiplist.Analyable[K, V], compare skiplist.Comparator[K], key K) (step int, level []int) {
	cur := sl.GetHead()
	if cur == nil {
		return 0, []int{}
	}

	_, height := sl.GetMaxStats()
	stepsPerLevel := make([]int, height)
	totalSteps := 0

	for h := height - 1; h >= 0; h-- {
		levelSteps := 0
		for {
			next := cur.GetNextAt(int32(h))
			if next == nil {
				break
			}
			c := compare(next.GetKey(), key)
			if c == 0 {
				// 加上最後一步
				stepsPerLevel[h] = levelSteps + 1
				return totalSteps + levelSteps + 1, stepsPerLevel
			}
			if c > 0 {
				break
			}
			cur = next
			levelSteps++
		}
		stepsPerLevel[h] = levelSteps
		totalSteps += levelSteps
		if h > 0 {
			totalSteps++
		}
	}
	return totalSteps, stepsPerLevel
}

// AnalyzeStep 根據 key 的出現機率計算平均搜尋步數
func AnalyzeStep[K comparable, V any](sl skiplist.Analyable[K, V], compare skiplist.Comparator[K], keys map[K]float64) (float64, StepMap[K]) {
	if len(keys) == 0 {
		return 0.0, nil
	}

	step := StepMap[K]{}
	var totalExpectedSteps, totalProbability float64
	for k, p := range keys {
		if !sl.ContainsKey(k) {
			continue
		}
		s, _ := FindStep(sl, compare, k)
		step[k] = s
		totalExpectedSteps += float64(s) * p
		totalProbability += p
	}
	if totalProbability > 0 {
		return totalExpectedSteps / totalProbability, step
	}
	return 0.0, step
}

// PrintSkipList 以每層一列的方式印出前 maxNodes 個節點
func PrintSkipList[K, V any](w io.Writer, sl skiplist.Analyable[K, V], maxLevel, maxNodes int) {
	_, height := sl.GetMaxStats()
	if height == 0 {
		fmt.Fprintln(w, "skip list 為空")
		return
	}
	maxLevel = min(maxLevel, height-1)
	output := make([]strings.Builder, maxLevel+1)
	for i := range output {
		fmt.Fprintf(&output[i], "level %d : head ->", i)
	}

	node := sl.GetHead().GetNextAt(0)
	for count := 0; node != nil && count < maxNodes; count++ {
		lv := int(node.GetLevel())
		for i := range output {
			if i <= lv {
				fmt.Fprintf(&output[i], "%4v ->", node.GetKey())
			} else {
				output[i].WriteString("     ->")
			}
		}
		node = node.GetNextAt(0)
	}

	for i := maxLevel; i >= 0; i-- {
		fmt.Fprintln(w, output[i].String())
	}
}

// PrintLink 沿著每一層的連結印出節點
func PrintLink[K, V any](w io.Writer, sl skiplist.Analyable[K, V], maxLevel, maxNodes int) {
	_, height := sl.GetMaxStats()
	maxLevel = min(maxLevel, height-1)

	for i := maxLevel; i >= 0; i-- {
		fmt.Fprintf(w, "level %d : head", i)
		node := sl.GetHead().GetNextAt(int32(i))
		for count := 0; node != nil && count < maxNodes; count++ {
			fmt.Fprintf(w, " -> %v", node.GetKey())
			node = node.GetNextAt(int32(i))
		}
		fmt.Fprintln(w)
	}
}

// CheckStruct 檢查 skip list 的結構是否正確：
// 每層 key 嚴格遞增、第 L 層恰好是第 0 層中高度大於 L 的節點、
// 高度等於最高節點的高度、size 等於第 0 層節點數
func CheckStruct[K, V any](sl skiplist.Analyable[K, V], compare skiplist.Comparator[K]) error {
	size, height := sl.GetMaxStats()
	head := sl.GetHead()
	if head == nil {
		return fmt.Errorf("nil head")
	}

	var bottom []skiplist.Nodelike[K, V]
	tallest := 0
	for node := head.GetNextAt(0); node != nil; node = node.GetNextAt(0) {
		if n := len(bottom); n > 0 && compare(bottom[n-1].GetKey(), node.GetKey()) >= 0 {
			return fmt.Errorf("level 0 out of order at %v -> %v", bottom[n-1].GetKey(), node.GetKey())
		}
		bottom = append(bottom, node)
		tallest = max(tallest, int(node.GetLevel())+1)
	}
	if len(bottom) != size {
		return fmt.Errorf("size %d, level 0 holds %d nodes", size, len(bottom))
	}
	if tallest != height {
		return fmt.Errorf("height %d, tallest node %d", height, tallest)
	}

	for lv := 1; lv <= int(head.GetLevel()); lv++ {
		node := head.GetNextAt(int32(lv))
		if lv >= height && node != nil {
			return fmt.Errorf("head links level %d above height %d", lv, height)
		}
		for _, want := range bottom {
			if int(want.GetLevel()) < lv {
				continue
			}
			if node == nil {
				return fmt.Errorf("level %d ends before %v", lv, want.GetKey())
			}
			if node != want {
				return fmt.Errorf("level %d: got %v, want %v", lv, node.GetKey(), want.GetKey())
			}
			node = node.GetNextAt(int32(lv))
		}
		if node != nil {
			return fmt.Errorf("level %d has extra node %v", lv, node.GetKey())
		}
	}
	return nil
}

// CountLevel 計算每層的節點數量
func CountLevel[K, V any](sl skiplist.Analyable[K, V]) []int {
	_, height := sl.GetMaxStats()
	levelCounts := make([]int, height)
	for node := sl.GetHead().GetNextAt(0); node != nil; node = node.GetNextAt(0) {
		for i := 0; i <= int(node.GetLevel()) && i < height; i++ {
			levelCounts[i]++
		}
	}
	return levelCounts
}

// RenderLevels 以表格輸出每層節點數與相對下一層的比例
func RenderLevels(w io.Writer, levelCounts []int) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Level", "Nodes", "Ratio"})
	table.SetAlignment(tablewriter.ALIGN_RIGHT)
	table.SetAutoWrapText(false)
	for i := len(levelCounts) - 1; i >= 0; i-- {
		ratio := "-"
		if i > 0 && levelCounts[i-1] > 0 {
			ratio = fmt.Sprintf("%.3f", float64(levelCounts[i])/float64(levelCounts[i-1]))
		}
		table.Append([]string{fmt.Sprintf("%d", i), fmt.Sprintf("%d", levelCounts[i]), ratio})
	}
	table.Render()
}

// Print 依 key 排序輸出步數
func (mp StepMap[K]) Print(w io.Writer, compare skiplist.Comparator[K]) {
	keys := make([]K, 0, len(mp))
	for k := range mp {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		return compare(keys[i], keys[j]) < 0
	})
	for _, k := range keys {
		fmt.Fprintf(w, "%4v ", k)
	}
	fmt.Fprintln(w)
	for _, k := range keys {
		fmt.Fprintf(w, "%4d ", mp[k])
	}
	fmt.Fprintln(w)
}
