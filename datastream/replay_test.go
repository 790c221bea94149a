package datastream

import (
	"testing"

	"github.com/Hakuto4838/skipmap/skiplist"
	"github.com/Hakuto4838/skipmap/skiplist/analyTool"
	"github.com/Hakuto4838/skipmap/skiplist/basic"
)

func TestReplay(t *testing.T) {
	cfg := BenchConfig{N: 200, S: 1.1, V: 1, Seed: 9, K: 4000, Phase1Ratio: 0.5, DeleteRatio: 0.1, SimpleKey: true}
	bf, err := GenerateOps(cfg)
	if err != nil {
		t.Fatal(err)
	}

	var counter analyTool.CompareCounter
	cmp := skiplist.Ordered[int64]()
	m := basic.NewMap[int64, float64](analyTool.Counting(&counter, cmp), basic.WithSeed(9))
	st := bf.Replay(m, &counter)

	if got := st.Ops[OpQuery] + st.Ops[OpInsert] + st.Ops[OpDelete]; got != cfg.K {
		t.Fatalf("replayed %d ops, want %d", got, cfg.K)
	}
	if st.Ops[OpInsert] < cfg.N {
		t.Errorf("only %d inserts for %d keys", st.Ops[OpInsert], cfg.N)
	}
	if st.PerOp(OpQuery) <= 0 || st.Total() <= 0 {
		t.Errorf("no comparisons recorded: %+v", st)
	}

	// 重播結束後 map 內容必須等於最後仍存在的 key
	present := map[int64]bool{}
	for _, op := range bf.Ops {
		switch op.Type {
		case OpInsert:
			present[op.Key] = true
		case OpDelete:
			present[op.Key] = false
		}
	}
	live := 0
	for k, ok := range present {
		if ok {
			live++
		}
		if m.ContainsKey(k) != ok {
			t.Errorf("ContainsKey(%d) = %v, want %v", k, !ok, ok)
		}
	}
	if m.Size() != live {
		t.Errorf("Size() = %d, want %d", m.Size(), live)
	}
	if err := analyTool.CheckStruct[int64, float64](m, cmp); err != nil {
		t.Error(err)
	}

	// counter 為 nil 時只計時
	m2 := basic.NewMap[int64, float64](cmp, basic.WithSeed(9))
	if st2 := bf.Replay(m2, nil); st2.Total() != 0 {
		t.Errorf("nil counter recorded comparisons: %+v", st2)
	}
}
