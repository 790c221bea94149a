package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Hakuto4838/skipmap/datastream"
)

func TestParseSizes(t *testing.T) {
	got, err := parseSizes("100, 1e3,,2000")
	if err != nil {
		t.Fatal(err)
	}
	want := []int{100, 1000, 2000}
	if len(got) != len(want) {
		t.Fatalf("parseSizes = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("parseSizes[%d] = %d, want %d", i, got[i], want[i])
		}
	}
	for _, bad := range []string{"", "abc", "-5"} {
		if _, err := parseSizes(bad); err == nil {
			t.Errorf("parseSizes(%q) accepted", bad)
		}
	}
}

func TestMeasureEfficiency(t *testing.T) {
	st, m := measureEfficiency(1000, 50, 16, 42)
	if m.Size() < 990 || m.Size() > 1000 {
		t.Errorf("size drifted to %d", m.Size())
	}
	if st.get <= 0 || st.set <= 0 || st.remove <= 0 {
		t.Errorf("missing comparisons: %+v", st)
	}
	// 期望 O(log n)，1000 個節點不該超過 200 次比較
	if st.get > 200 || st.set > 200 || st.remove > 200 {
		t.Errorf("comparisons too high: %+v", st)
	}
}

func TestCollectBenchFilesFromDir(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.bin", "a.bin", "skip.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0o644); err != nil {
			t.Fatal(err)
		}
	}
	files, err := collectBenchFilesFromDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 2 || filepath.Base(files[0]) != "a.bin" {
		t.Errorf("files = %v", files)
	}
}

func BenchmarkReplay(b *testing.B) {
	path := filepath.Join(b.TempDir(), "bench.bin")
	cfg := datastream.BenchConfig{N: 1000, S: 1.07, V: 1, Seed: 1, K: 20000, Phase1Ratio: 0.5, DeleteRatio: 0.1}
	if _, err := datastream.WriteBenchFile(cfg, path); err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	for range b.N {
		runReplay([]string{path}, 1, 16, 1, false)
	}
}
