package datastream

import (
	"time"

	"github.com/Hakuto4838/skipmap/skiplist"
)

// Counter 每筆操作前歸零、操作後讀取的計數器（例如比較次數）
type Counter interface {
	Reset()
	Count() int64
}

// ReplayStats 依操作種類統計的重播結果
type ReplayStats struct {
	Ops         [3]int
	Comparisons [3]int64
	Elapsed     time.Duration
}

// PerOp 某種操作的平均計數，沒有該操作時回傳 0
func (s ReplayStats) PerOp(t OperationType) float64 {
	if int(t) >= len(s.Ops) || s.Ops[t] == 0 {
		return 0
	}
	return float64(s.Comparisons[t]) / float64(s.Ops[t])
}

// Total 所有操作的平均計數
func (s ReplayStats) Total() float64 {
	var ops int
	var cmps int64
	for i := range s.Ops {
		ops += s.Ops[i]
		cmps += s.Comparisons[i]
	}
	if ops == 0 {
		return 0
	}
	return float64(cmps) / float64(ops)
}

// Replay 將操作序列套用到 m，Insert 的 value 為該 key 的機率；counter 可為 nil
func (bf *BenchFile) Replay(m skiplist.OrderedMap[int64, float64], counter Counter) ReplayStats {
	var st ReplayStats
	model := bf.ToSequenceModel()
	start := time.Now()
	for {
		op, ok := model.Next()
		if !ok {
			break
		}
		if counter != nil {
			counter.Reset()
		}
		switch op.Type {
		case OpQuery:
			m.Get(op.Key)
		case OpInsert:
			m.Set(op.Key, bf.Dist[op.Key])
		case OpDelete:
			m.Remove(op.Key)
		default:
			continue
		}
		st.Ops[op.Type]++
		if counter != nil {
			st.Comparisons[op.Type] += counter.Count()
		}
	}
	st.Elapsed = time.Since(start)
	return st
}
