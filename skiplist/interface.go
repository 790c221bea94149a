package skiplist

// Comparator 定義 key 的全序關係
// a < b 回傳負數，a == b 回傳 0，a > b 回傳正數
type Comparator[K any] func(a, b K) int

// OrderedMap 有序映射的公開介面
type OrderedMap[K, V any] interface {
	Set(key K, value V) (old V, replaced bool, err error)
	Get(key K) (V, error)
	ContainsKey(key K) bool
	Remove(key K) (old V, removed bool, err error)
	Size() int
}

// Analyable 提供分析功能的介面
type Analyable[K, V any] interface {
	OrderedMap[K, V]
	// GetMaxStats 獲取節點數與目前高度（最高層 index + 1）
	GetMaxStats() (size int, height int)
	GetHead() Nodelike[K, V]
}

// Nodelike 節點的唯讀視圖，head 的 GetKey 沒有意義
type Nodelike[K, V any] interface {
	GetKey() K
	GetValue() V
	// GetLevel 回傳節點最高層的 index（高度 - 1）
	GetLevel() int32
	// GetNextAt 回傳第 level 層的下一個節點，不存在時回傳 nil
	GetNextAt(level int32) Nodelike[K, V]
	IsHead() bool
}
