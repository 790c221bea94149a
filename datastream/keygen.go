package datastream

import (
	"fmt"
	"math"
	randv2 "math/rand/v2"
)

// KeyStream 無窮的 key 來源
type KeyStream interface {
	Next() int64
}

// UniformKeys 在 [0, limit) 之間均勻取 key
type UniformKeys struct {
	rng   *randv2.Rand
	limit int64
}

func NewUniformKeys(limit int64, seed uint64) *UniformKeys {
	return &UniformKeys{
		rng:   randv2.New(randv2.NewPCG(seed, 0)),
		limit: limit,
	}
}

func (u *UniformKeys) Next() int64 {
	return u.rng.Int64N(u.limit)
}

// Intn 回傳 [0, n) 的亂數，與 key 共用同一個來源
func (u *UniformKeys) Intn(n int) int {
	return u.rng.IntN(n)
}

// RankedKeys 將 n 個 key 依排名（rank）配上機率
// s == 0 時為均勻分布，否則為 Zipf(s, v)
type RankedKeys struct {
	rng       *randv2.Rand
	zipf      *randv2.Zipf
	rankToKey []int64
	weights   []float64
}

// NewRankedKeys 建立排名 key 來源
// simpleKey 為 true 時 key 為 0..n-1 的排列，否則為不重複的隨機 uint32
func NewRankedKeys(n int, s, v float64, seed uint64, simpleKey bool) (*RankedKeys, error) {
	if n <= 0 {
		return nil, fmt.Errorf("invalid n: %d", n)
	}
	if s != 0 && (s <= 1.0 || v < 1.0) {
		return nil, fmt.Errorf("invalid zipf params: s=%v must >1, v=%v must >=1", s, v)
	}
	r := randv2.New(randv2.NewPCG(seed, 0))
	rk := &RankedKeys{
		rng:       r,
		rankToKey: make([]int64, n),
		weights:   make([]float64, n),
	}

	// rank -> key 的隨機對應（不重複）
	if simpleKey {
		for i := range rk.rankToKey {
			rk.rankToKey[i] = int64(i)
		}
		r.Shuffle(n, func(i, j int) { rk.rankToKey[i], rk.rankToKey[j] = rk.rankToKey[j], rk.rankToKey[i] })
	} else {
		seen := make(map[int64]struct{}, n)
		for i := range rk.rankToKey {
			key := int64(r.Uint32())
			for _, ok := seen[key]; ok; _, ok = seen[key] {
				key = int64(r.Uint32())
			}
			rk.rankToKey[i] = key
			seen[key] = struct{}{}
		}
	}

	if s == 0 {
		for i := range rk.weights {
			rk.weights[i] = 1.0 / float64(n)
		}
		return rk, nil
	}

	rk.zipf = randv2.NewZipf(r, s, v, uint64(n-1))
	var sum float64
	for i := range rk.weights {
		rk.weights[i] = 1.0 / math.Pow(v+float64(i), s)
		sum += rk.weights[i]
	}
	for i := range rk.weights {
		rk.weights[i] /= sum
	}
	return rk, nil
}

// Rank 依分布抽出一個 rank
func (rk *RankedKeys) Rank() int {
	if rk.zipf == nil {
		return rk.rng.IntN(len(rk.rankToKey))
	}
	return int(rk.zipf.Uint64())
}

func (rk *RankedKeys) Next() int64 {
	return rk.rankToKey[rk.Rank()]
}

// KeyAt 回傳 rank 對應的 key
func (rk *RankedKeys) KeyAt(rank int) int64 {
	return rk.rankToKey[rank]
}

func (rk *RankedKeys) Len() int {
	return len(rk.rankToKey)
}

// Dist 回傳 key -> 機率
func (rk *RankedKeys) Dist() map[int64]float64 {
	dist := make(map[int64]float64, len(rk.rankToKey))
	for rank, key := range rk.rankToKey {
		dist[key] = rk.weights[rank]
	}
	return dist
}

func (rk *RankedKeys) Entropy() float64 {
	return EntropyFromDist(rk.Dist())
}

// EntropyFromDist 計算分布的熵（單位：bit），忽略 <= 0 的值
func EntropyFromDist(dist map[int64]float64) float64 {
	h := 0.0
	for _, p := range dist {
		if p > 0 {
			h -= p * math.Log2(p)
		}
	}
	return h
}
