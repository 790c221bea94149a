package analyTool

import (
	"strings"
	"testing"

	"github.com/Hakuto4838/skipmap/skiplist"
	"github.com/Hakuto4838/skipmap/skiplist/basic"
)

// fakeNode / fakeList 手動拼出結構，用來驗證 CheckStruct 會抓到錯誤
type fakeNode struct {
	key  int
	next []*fakeNode
	head bool
}

func (n *fakeNode) GetKey() int     { return n.key }
func (n *fakeNode) GetValue() int   { return n.key }
func (n *fakeNode) GetLevel() int32 { return int32(len(n.next) - 1) }
func (n *fakeNode) IsHead() bool    { return n.head }
func (n *fakeNode) GetNextAt(level int32) skiplist.Nodelike[int, int] {
	if level < 0 || int(level) >= len(n.next) || n.next[level] == nil {
		return nil
	}
	return n.next[level]
}

type fakeList struct {
	head   *fakeNode
	size   int
	height int
}

func (l *fakeList) Set(int, int) (int, bool, error)      { return 0, false, nil }
func (l *fakeList) Get(int) (int, error)                 { return 0, skiplist.ErrNotFound }
func (l *fakeList) ContainsKey(int) bool                 { return false }
func (l *fakeList) Remove(int) (int, bool, error)        { return 0, false, nil }
func (l *fakeList) Size() int                            { return l.size }
func (l *fakeList) GetMaxStats() (int, int)              { return l.size, l.height }
func (l *fakeList) GetHead() skiplist.Nodelike[int, int] { return l.head }

// 建立 head -> 1(h2) -> 2(h1) -> 3(h2)
func buildFake() (*fakeList, []*fakeNode) {
	head := &fakeNode{next: make([]*fakeNode, 4), head: true}
	n1 := &fakeNode{key: 1, next: make([]*fakeNode, 2)}
	n2 := &fakeNode{key: 2, next: make([]*fakeNode, 1)}
	n3 := &fakeNode{key: 3, next: make([]*fakeNode, 2)}
	head.next[0], n1.next[0], n2.next[0] = n1, n2, n3
	head.next[1], n1.next[1] = n1, n3
	return &fakeList{head: head, size: 3, height: 2}, []*fakeNode{n1, n2, n3}
}

func TestCheckStruct(t *testing.T) {
	cmp := skiplist.Ordered[int]()

	l, _ := buildFake()
	if err := CheckStruct[int, int](l, cmp); err != nil {
		t.Fatalf("valid list rejected: %v", err)
	}

	tests := []struct {
		name    string
		corrupt func(l *fakeList, n []*fakeNode)
	}{
		{"size", func(l *fakeList, n []*fakeNode) { l.size = 4 }},
		{"height", func(l *fakeList, n []*fakeNode) { l.height = 3 }},
		{"order", func(l *fakeList, n []*fakeNode) { n[1].key = 5 }},
		{"skipped tower", func(l *fakeList, n []*fakeNode) { n[0].next[1] = nil }},
		{"level above tower", func(l *fakeList, n []*fakeNode) { n[0].next[1] = n[1] }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, n := buildFake()
			tt.corrupt(l, n)
			if err := CheckStruct[int, int](l, cmp); err == nil {
				t.Error("broken list accepted")
			}
		})
	}
}

func TestCountingComparator(t *testing.T) {
	var counter CompareCounter
	cmp := Counting(&counter, skiplist.Ordered[int]())
	m := basic.NewMap[int, int](cmp, basic.WithSeed(42))

	for i := range 1000 {
		m.Set(i, i)
	}
	counter.Reset()
	m.Get(500)
	if counter.Count() == 0 || counter.Count() > 200 {
		t.Errorf("Get(500) used %d comparisons", counter.Count())
	}

	counter.Reset()
	if counter.Count() != 0 {
		t.Error("Reset did not clear counter")
	}
}

func TestFindStep(t *testing.T) {
	l, _ := buildFake()
	cmp := skiplist.Ordered[int]()

	// head -> 1 (level 1)
	if step, _ := FindStep[int, int](l, cmp, 1); step != 1 {
		t.Errorf("FindStep(1) = %d, want 1", step)
	}
	// level 1: head->1 (1 步)，3 在 level 1 直接找到 (+1)
	if step, _ := FindStep[int, int](l, cmp, 3); step != 2 {
		t.Errorf("FindStep(3) = %d, want 2", step)
	}
	// level 1: head->1, 下降, level 0: 1->2
	step, perLevel := FindStep[int, int](l, cmp, 2)
	if step != 3 {
		t.Errorf("FindStep(2) = %d, want 3", step)
	}
	if len(perLevel) != 2 || perLevel[1] != 1 || perLevel[0] != 1 {
		t.Errorf("perLevel = %v, want [1 1]", perLevel)
	}

	score, steps := AnalyzeStep[int, int](l, cmp, map[int]float64{1: 0.5, 3: 0.5})
	// fakeList.ContainsKey 一律 false
	if score != 0 || len(steps) != 0 {
		t.Errorf("AnalyzeStep = (%f, %v)", score, steps)
	}
}

func TestAnalyzeStepOnMap(t *testing.T) {
	cmp := skiplist.Ordered[int]()
	m := basic.NewMap[int, int](cmp, basic.WithSeed(1))
	dist := make(map[int]float64)
	for i := range 64 {
		m.Set(i, i)
		dist[i] = 1.0 / 64
	}
	score, steps := AnalyzeStep[int, int](m, cmp, dist)
	if len(steps) != 64 {
		t.Fatalf("steps for %d keys, want 64", len(steps))
	}
	if score <= 0 || score > 64 {
		t.Errorf("average steps %f out of range", score)
	}

	var sb strings.Builder
	steps.Print(&sb, cmp)
	if lines := strings.Count(sb.String(), "\n"); lines != 2 {
		t.Errorf("Print wrote %d lines, want 2", lines)
	}
}

func TestCountAndRenderLevels(t *testing.T) {
	l, _ := buildFake()
	counts := CountLevel[int, int](l)
	if len(counts) != 2 || counts[0] != 3 || counts[1] != 2 {
		t.Fatalf("CountLevel = %v, want [3 2]", counts)
	}

	var sb strings.Builder
	RenderLevels(&sb, counts)
	out := sb.String()
	if !strings.Contains(out, "LEVEL") || !strings.Contains(out, "0.667") {
		t.Errorf("unexpected table:\n%s", out)
	}
}

func TestPrintSkipList(t *testing.T) {
	l, _ := buildFake()
	var sb strings.Builder
	PrintSkipList[int, int](&sb, l, 5, 10)
	lines := strings.Split(strings.TrimSpace(sb.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines:\n%s", len(lines), sb.String())
	}
	if !strings.HasPrefix(lines[0], "level 1") || !strings.Contains(lines[1], "2 ->") {
		t.Errorf("unexpected output:\n%s", sb.String())
	}

	sb.Reset()
	PrintLink[int, int](&sb, l, 5, 10)
	if !strings.Contains(sb.String(), "level 1 : head -> 1 -> 3") {
		t.Errorf("unexpected links:\n%s", sb.String())
	}

	sb.Reset()
	empty := &fakeList{head: &fakeNode{next: make([]*fakeNode, 1), head: true}}
	PrintSkipList[int, int](&sb, empty, 5, 10)
	if !strings.Contains(sb.String(), "為空") {
		t.Errorf("empty list output %q", sb.String())
	}
}
