package skiplist

import (
	"cmp"
	"reflect"

	"github.com/emirpasic/gods/utils"
	"golang.org/x/exp/constraints"
)

// Ordered 回傳內建可排序型別的比較函數
func Ordered[K constraints.Ordered]() Comparator[K] {
	return func(a, b K) int {
		return cmp.Compare(a, b)
	}
}

// FromGods 將 gods 的 utils.Comparator（例如 utils.IntComparator）轉為 Comparator[K]
func FromGods[K any](c utils.Comparator) Comparator[K] {
	if c == nil {
		return nil
	}
	return func(a, b K) int {
		return c(a, b)
	}
}

// Reverse 反轉排序
func Reverse[K any](c Comparator[K]) Comparator[K] {
	return func(a, b K) int {
		return c(b, a)
	}
}

// IsNil 判斷 key 是否為缺失值（nil interface、nil pointer、nil map/slice/func/chan）
func IsNil[K any](key K) bool {
	v := any(key)
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface, reflect.UnsafePointer:
		return rv.IsNil()
	}
	return false
}
