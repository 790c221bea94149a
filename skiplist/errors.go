package skiplist

import "errors"

var (
	// ErrInvalidArgument key 為 nil
	ErrInvalidArgument = errors.New("skiplist: invalid argument")
	// ErrNotFound 查詢的 key 不存在
	ErrNotFound = errors.New("skiplist: key not found")
	// ErrIllegalState iterator 尚未產出元素或重複刪除
	ErrIllegalState = errors.New("skiplist: illegal iterator state")
)
