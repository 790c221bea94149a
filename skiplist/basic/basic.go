package basic

import (
	"fmt"
	"math/rand"

	"github.com/Hakuto4838/skipmap/skiplist"
)

// head 固定在 index 0，head 不會是任何節點的後繼，所以 link 為 0 代表沒有下一個節點
const (
	headIdx int32 = 0
	nilLink int32 = 0
)

type basicNode[K, V any] struct {
	key   K
	value V
	next  []int32
}

// Map 以 arena 存放節點的 skip list，節點之間以 index 相連
// 非併發安全，需要併發存取時請在外部加鎖
type Map[K, V any] struct {
	nodes   []basicNode[K, V]
	free    []int32
	update  []int32 // 每層的前驅節點，Set/Remove 共用
	compare skiplist.Comparator[K]
	rand    *rand.Rand
	prob    float64
	height  int32
	size    int
}

func NewMap[K, V any](compare skiplist.Comparator[K], opts ...Option) *Map[K, V] {
	if compare == nil {
		panic("basic: nil comparator")
	}
	cfg := newConfig(opts)
	m := &Map[K, V]{
		nodes:   make([]basicNode[K, V], 1, 64),
		update:  make([]int32, cfg.capacity),
		compare: compare,
		rand:    cfg.rand,
		prob:    cfg.prob,
	}
	m.nodes[headIdx].next = make([]int32, cfg.capacity)
	return m
}

func (m *Map[K, V]) randomHeight() int32 {
	lvl := int32(1)
	for m.rand.Float64() < m.prob && lvl < int32(m.Capacity()) {
		lvl++
	}
	return lvl
}

// advance 在第 lv 層從 x 往右走到最後一個 key 小於目標的節點
// 若該節點的後繼等於目標，一併回傳後繼
func (m *Map[K, V]) advance(x, lv int32, key K) (pred, hit int32) {
	for {
		nx := m.nodes[x].next[lv]
		if nx == nilLink {
			return x, nilLink
		}
		c := m.compare(m.nodes[nx].key, key)
		if c < 0 {
			x = nx
			continue
		}
		if c == 0 {
			return x, nx
		}
		return x, nilLink
	}
}

func (m *Map[K, V]) find(key K) (int32, bool) {
	x := headIdx
	for lv := m.height - 1; lv >= 0; lv-- {
		var hit int32
		x, hit = m.advance(x, lv, key)
		if hit != nilLink {
			return hit, true
		}
	}
	return nilLink, false
}

func (m *Map[K, V]) alloc(key K, value V, lvl int32) int32 {
	if n := len(m.free); n > 0 {
		idx := m.free[n-1]
		m.free = m.free[:n-1]
		nd := &m.nodes[idx]
		nd.key, nd.value = key, value
		if cap(nd.next) >= int(lvl) {
			nd.next = nd.next[:lvl]
			clear(nd.next)
		} else {
			nd.next = make([]int32, lvl)
		}
		return idx
	}
	m.nodes = append(m.nodes, basicNode[K, V]{
		key:   key,
		value: value,
		next:  make([]int32, lvl),
	})
	return int32(len(m.nodes) - 1)
}

func (m *Map[K, V]) release(idx int32) {
	var zk K
	var zv V
	nd := &m.nodes[idx]
	nd.key, nd.value = zk, zv
	nd.next = nd.next[:0]
	m.free = append(m.free, idx)
}

// Set 插入或更新 key，若 key 已存在則回傳舊值與 replaced = true
func (m *Map[K, V]) Set(key K, value V) (old V, replaced bool, err error) {
	if skiplist.IsNil(key) {
		return old, false, fmt.Errorf("set: nil key: %w", skiplist.ErrInvalidArgument)
	}

	x := headIdx
	for lv := m.height - 1; lv >= 0; lv-- {
		var hit int32
		x, hit = m.advance(x, lv, key)
		if hit != nilLink {
			// 已存在，只覆寫 value
			old = m.nodes[hit].value
			m.nodes[hit].value = value
			return old, true, nil
		}
		m.update[lv] = x
	}

	lvl := m.randomHeight()
	for lv := m.height; lv < lvl; lv++ {
		m.update[lv] = headIdx
	}
	idx := m.alloc(key, value, lvl)
	for lv := int32(0); lv < lvl; lv++ {
		p := m.update[lv]
		m.nodes[idx].next[lv] = m.nodes[p].next[lv]
		m.nodes[p].next[lv] = idx
	}
	m.size++
	m.height = max(m.height, lvl)
	return old, false, nil
}

// Get 取得 key 對應的 value，不存在時回傳 skiplist.ErrNotFound
func (m *Map[K, V]) Get(key K) (V, error) {
	var zero V
	if skiplist.IsNil(key) {
		return zero, fmt.Errorf("get: nil key: %w", skiplist.ErrInvalidArgument)
	}
	if m.height == 0 {
		return zero, skiplist.ErrNotFound
	}
	idx, found := m.find(key)
	if !found {
		return zero, skiplist.ErrNotFound
	}
	return m.nodes[idx].value, nil
}

// ContainsKey 判斷 key 是否存在，nil key 視為不存在
func (m *Map[K, V]) ContainsKey(key K) bool {
	if skiplist.IsNil(key) || m.height == 0 {
		return false
	}
	_, found := m.find(key)
	return found
}

// Remove 刪除 key，回傳被刪除的 value；key 不存在不算錯誤
func (m *Map[K, V]) Remove(key K) (old V, removed bool, err error) {
	if skiplist.IsNil(key) {
		return old, false, fmt.Errorf("remove: nil key: %w", skiplist.ErrInvalidArgument)
	}
	if m.nodes[headIdx].next[0] == nilLink {
		return old, false, nil
	}

	// 每一層都要記錄前驅，不能提早結束
	x, target := headIdx, nilLink
	for lv := m.height - 1; lv >= 0; lv-- {
		x, target = m.advance(x, lv, key)
		m.update[lv] = x
	}
	if target == nilLink {
		return old, false, nil
	}

	tn := &m.nodes[target]
	for lv := range tn.next {
		p := m.update[lv]
		m.nodes[p].next[lv] = tn.next[lv]
	}
	m.size--
	if int32(len(tn.next)) >= m.height {
		head := m.nodes[headIdx].next
		h := int32(len(head))
		for h > 0 && head[h-1] == nilLink {
			h--
		}
		m.height = h
	}
	old = tn.value
	m.release(target)
	return old, true, nil
}

func (m *Map[K, V]) Size() int {
	return m.size
}

// Height 目前最高節點的高度，空表為 0
func (m *Map[K, V]) Height() int {
	return int(m.height)
}

// Capacity 層數上限
func (m *Map[K, V]) Capacity() int {
	return len(m.nodes[headIdx].next)
}

func (m *Map[K, V]) GetMaxStats() (int, int) {
	return m.size, int(m.height)
}

func (m *Map[K, V]) GetHead() skiplist.Nodelike[K, V] {
	return nodeView[K, V]{m: m, idx: headIdx}
}

// nodeView 實作 Nodelike 介面
type nodeView[K, V any] struct {
	m   *Map[K, V]
	idx int32
}

func (v nodeView[K, V]) GetKey() K {
	return v.m.nodes[v.idx].key
}

func (v nodeView[K, V]) GetValue() V {
	return v.m.nodes[v.idx].value
}

func (v nodeView[K, V]) GetLevel() int32 {
	return int32(len(v.m.nodes[v.idx].next) - 1)
}

func (v nodeView[K, V]) GetNextAt(level int32) skiplist.Nodelike[K, V] {
	next := v.m.nodes[v.idx].next
	if level < 0 || level >= int32(len(next)) {
		return nil
	}
	if next[level] == nilLink {
		return nil
	}
	return nodeView[K, V]{m: v.m, idx: next[level]}
}

func (v nodeView[K, V]) IsHead() bool {
	return v.idx == headIdx
}
