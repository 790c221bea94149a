package basic

import (
	"strings"
	"testing"
)

func TestDump(t *testing.T) {
	// 只有一層，輸出可以固定
	m := NewMap[int, string](func(a, b int) int { return a - b }, WithCapacity(1))
	m.Set(6, "six")
	m.Set(4, "four")
	m.Set(8, "eight")

	var sb strings.Builder
	if err := m.Dump(&sb); err != nil {
		t.Fatal(err)
	}
	want := strings.Join([]string{
		"           X",
		"           |",
		"         4-*",
		"           |",
		"         6-*",
		"           |",
		"         8-*",
		"           |",
		"           O",
	}, "\n") + "\n"
	if sb.String() != want {
		t.Errorf("Dump =\n%s\nwant\n%s", sb.String(), want)
	}
}

func TestDumpMissingLanes(t *testing.T) {
	m := newIntMap(5)
	for i := range 30 {
		m.Set(i*3, "v")
	}
	var sb strings.Builder
	m.Dump(&sb)
	lines := strings.Split(strings.TrimSuffix(sb.String(), "\n"), "\n")
	// X 列 + 每個節點兩列 + 開頭連結列 + O 列
	if len(lines) != 2+2*30+1 {
		t.Fatalf("dump has %d lines", len(lines))
	}
	for _, line := range lines {
		if len(line) != dumpWidth+2*m.Height() {
			t.Errorf("line %q width %d, want %d", line, len(line), dumpWidth+2*m.Height())
		}
	}
}

func TestDumpLongKey(t *testing.T) {
	m := NewMap[string, int](func(a, b string) int { return strings.Compare(a, b) }, WithCapacity(1))
	m.Set("abcdefghijklmno", 1)
	var sb strings.Builder
	m.Dump(&sb)
	if !strings.Contains(sb.String(), "abcdefghij-*") {
		t.Errorf("long key not truncated:\n%s", sb.String())
	}
}

func TestString(t *testing.T) {
	m := newIntMap(42)
	if m.String() != "[]" {
		t.Errorf("String() = %q, want []", m.String())
	}
	m.Set(6, "six")
	m.Set(4, "four")
	if got := m.String(); got != "[(4 four) (6 six)]" {
		t.Errorf("String() = %q", got)
	}
}
