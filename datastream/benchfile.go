package datastream

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"sort"

	"golang.org/x/exp/mmap"
)

// 檔案格式（LittleEndian）：
// [8]byte  Magic: "SLBENCH1"
// uint16   Version: 1
// uint16   Reserved: 0
// uint32   DistCount
// 重複 DistCount 次：
//   int64   Key
//   float64 Weight
// uint64   OpCount
// 重複 OpCount 次：
//   uint8   OperationType (0=Query,1=Insert,2=Delete)
//   int64   Key

var (
	benchMagic   = [8]byte{'S', 'L', 'B', 'E', 'N', 'C', 'H', '1'}
	benchVersion = uint16(1)
)

// BenchConfig 產生 bench 檔的參數
type BenchConfig struct {
	N           int     // key 數量
	S, V        float64 // Zipf 參數，S = 0 時使用均勻分布
	Seed        uint64
	K           int     // 操作數，需 >= N
	Phase1Ratio float64 // 第一階段佔比，第一階段保證每個 key 至少出現一次
	DeleteRatio float64 // key 已存在時轉為 Delete 的機率
	SimpleKey   bool
}

type BenchFile struct {
	Dist map[int64]float64
	Ops  []Operation
}

type BenchInfo struct {
	Dist    map[int64]float64
	Entropy float64
}

func (c BenchConfig) validate() error {
	phase1Size := int(float64(c.K) * c.Phase1Ratio)
	if c.K < c.N {
		return fmt.Errorf("k (%d) must be >= n (%d) to ensure each key appears at least once", c.K, c.N)
	}
	if phase1Size < c.N || phase1Size > c.K {
		return fmt.Errorf("phase1Size (%d) must satisfy n <= phase1Size <= k", phase1Size)
	}
	if c.DeleteRatio < 0.0 || c.DeleteRatio > 1.0 {
		return fmt.Errorf("deleteRatio (%v) must be between 0.0 and 1.0", c.DeleteRatio)
	}
	return nil
}

// GenerateOps 依設定產生分布與操作序列
// 規則：key 不在表中時為 Insert，否則以 DeleteRatio 機率 Delete，其餘為 Query
func GenerateOps(cfg BenchConfig) (*BenchFile, error) {
	rk, err := NewRankedKeys(cfg.N, cfg.S, cfg.V, cfg.Seed, cfg.SimpleKey)
	if err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	phase1Size := int(float64(cfg.K) * cfg.Phase1Ratio)

	// 第一階段：前 n 個覆蓋所有 key，其餘依分布補齊後打亂
	keys := make([]int64, 0, cfg.K)
	for rank := 0; rank < cfg.N; rank++ {
		keys = append(keys, rk.KeyAt(rank))
	}
	for len(keys) < phase1Size {
		keys = append(keys, rk.Next())
	}
	rk.rng.Shuffle(len(keys), func(i, j int) { keys[i], keys[j] = keys[j], keys[i] })
	// 第二階段
	for len(keys) < cfg.K {
		keys = append(keys, rk.Next())
	}

	present := make(map[int64]bool, cfg.N)
	ops := make([]Operation, len(keys))
	for i, key := range keys {
		op := OpQuery
		switch {
		case !present[key]:
			op = OpInsert
			present[key] = true
		case rk.rng.Float64() < cfg.DeleteRatio:
			op = OpDelete
			present[key] = false
		}
		ops[i] = Operation{Type: op, Key: key}
	}
	return &BenchFile{Dist: rk.Dist(), Ops: ops}, nil
}

// WriteBenchFile 產生操作序列並寫入 bin 檔
func WriteBenchFile(cfg BenchConfig, filename string) (*BenchInfo, error) {
	bf, err := GenerateOps(cfg)
	if err != nil {
		return nil, err
	}

	file, err := os.Create(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	w := bufio.NewWriter(file)
	if err := bf.Encode(w); err != nil {
		return nil, err
	}
	if err := w.Flush(); err != nil {
		return nil, err
	}
	return &BenchInfo{Dist: bf.Dist, Entropy: EntropyFromDist(bf.Dist)}, file.Close()
}

// Encode 以 SLBENCH1 格式輸出，分布依 key 升冪寫入以確保可重現
func (bf *BenchFile) Encode(w io.Writer) error {
	le := binary.LittleEndian
	if _, err := w.Write(benchMagic[:]); err != nil {
		return err
	}
	if err := binary.Write(w, le, benchVersion); err != nil {
		return err
	}
	if err := binary.Write(w, le, uint16(0)); err != nil { // reserved
		return err
	}

	keys := make([]int64, 0, len(bf.Dist))
	for k := range bf.Dist {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	if err := binary.Write(w, le, uint32(len(keys))); err != nil {
		return err
	}
	for _, k := range keys {
		if err := binary.Write(w, le, k); err != nil {
			return err
		}
		if err := binary.Write(w, le, bf.Dist[k]); err != nil {
			return err
		}
	}

	if err := binary.Write(w, le, uint64(len(bf.Ops))); err != nil {
		return err
	}
	for _, op := range bf.Ops {
		if err := binary.Write(w, le, uint8(op.Type)); err != nil {
			return err
		}
		if err := binary.Write(w, le, op.Key); err != nil {
			return err
		}
	}
	return nil
}

// ReadBenchFile 透過 mmap 讀取 bin 檔，回傳分布與操作序列
func ReadBenchFile(filename string) (*BenchFile, error) {
	ra, err := mmap.Open(filename)
	if err != nil {
		return nil, err
	}
	defer ra.Close()

	bf, err := DecodeBenchFile(io.NewSectionReader(ra, 0, int64(ra.Len())))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return bf, nil
}

// DecodeBenchFile 解析 SLBENCH1 格式
func DecodeBenchFile(r io.Reader) (*BenchFile, error) {
	le := binary.LittleEndian
	var magic [8]byte
	if _, err := io.ReadFull(r, magic[:]); err != nil {
		return nil, err
	}
	if magic != benchMagic {
		return nil, fmt.Errorf("invalid magic: %q", magic)
	}
	var hdr struct {
		Version  uint16
		Reserved uint16
		Count    uint32
	}
	if err := binary.Read(r, le, &hdr); err != nil {
		return nil, err
	}
	if hdr.Version != benchVersion {
		return nil, fmt.Errorf("unsupported version: %d", hdr.Version)
	}

	dist := make(map[int64]float64, hdr.Count)
	for i := uint32(0); i < hdr.Count; i++ {
		var entry struct {
			Key    int64
			Weight float64
		}
		if err := binary.Read(r, le, &entry); err != nil {
			return nil, err
		}
		dist[entry.Key] = entry.Weight
	}

	var opCount uint64
	if err := binary.Read(r, le, &opCount); err != nil {
		return nil, err
	}
	ops := make([]Operation, 0, min(opCount, 1<<20))
	for i := uint64(0); i < opCount; i++ {
		var rec struct {
			Type uint8
			Key  int64
		}
		if err := binary.Read(r, le, &rec); err != nil {
			return nil, err
		}
		ops = append(ops, Operation{Type: OperationType(rec.Type), Key: rec.Key})
	}
	return &BenchFile{Dist: dist, Ops: ops}, nil
}

// ToSequenceModel 將 BenchFile 轉為可重播的 SequenceModel
func (bf *BenchFile) ToSequenceModel() *SequenceModel {
	if bf == nil {
		return NewSequenceModelFromOps(nil)
	}
	return NewSequenceModelFromOps(bf.Ops)
}
