package basic

import (
	"iter"

	"github.com/Hakuto4838/skipmap/skiplist"
)

// Iterator 沿著第 0 層單向走訪，走完後不會重新開始
// 走訪期間除了 Iterator.Remove 以外的修改，行為未定義
type Iterator[K, V any] struct {
	m    *Map[K, V]
	cur  int32
	ok   bool // cur 是最近一次產出的節點
	done bool
}

// Iter 回傳新的 iterator，位置在第一個元素之前
func (m *Map[K, V]) Iter() *Iterator[K, V] {
	return &Iterator[K, V]{m: m, cur: headIdx}
}

// Next 前進到下一個節點，沒有下一個時回傳 false
func (it *Iterator[K, V]) Next() bool {
	if it.done {
		return false
	}
	nx := it.m.nodes[it.cur].next[0]
	if nx == nilLink {
		it.done = true
		it.ok = false
		return false
	}
	it.cur = nx
	it.ok = true
	return true
}

// Key REQUIRES: Next() 回傳 true 且尚未 Remove
func (it *Iterator[K, V]) Key() K {
	if !it.ok {
		var zero K
		return zero
	}
	return it.m.nodes[it.cur].key
}

// Value REQUIRES: Next() 回傳 true 且尚未 Remove
func (it *Iterator[K, V]) Value() V {
	if !it.ok {
		var zero V
		return zero
	}
	return it.m.nodes[it.cur].value
}

// Remove 從 map 刪除最近一次產出的 key
func (it *Iterator[K, V]) Remove() error {
	if !it.ok {
		return skiplist.ErrIllegalState
	}
	if _, _, err := it.m.Remove(it.m.nodes[it.cur].key); err != nil {
		return err
	}
	// 退回第 0 層的前驅，下一次 Next 接著被刪節點的後繼
	it.cur = it.m.update[0]
	it.ok = false
	return nil
}

// Keys 回傳只能走訪一次的 key 序列
func (m *Map[K, V]) Keys() iter.Seq[K] {
	it := m.Iter()
	return func(yield func(K) bool) {
		for it.Next() {
			if !yield(it.Key()) {
				return
			}
		}
	}
}

// Values 回傳只能走訪一次的 value 序列
func (m *Map[K, V]) Values() iter.Seq[V] {
	it := m.Iter()
	return func(yield func(V) bool) {
		for it.Next() {
			if !yield(it.Value()) {
				return
			}
		}
	}
}

func (m *Map[K, V]) All() iter.Seq2[K, V] {
	it := m.Iter()
	return func(yield func(K, V) bool) {
		for it.Next() {
			if !yield(it.Key(), it.Value()) {
				return
			}
		}
	}
}

func (m *Map[K, V]) ForEach(fn func(key K, value V)) {
	for x := m.nodes[headIdx].next[0]; x != nilLink; x = m.nodes[x].next[0] {
		fn(m.nodes[x].key, m.nodes[x].value)
	}
}
