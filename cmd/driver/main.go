package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/Hakuto4838/skipmap/skiplist"
	"github.com/Hakuto4838/skipmap/skiplist/analyTool"
	"github.com/Hakuto4838/skipmap/skiplist/basic"
	"github.com/avamsi/ergo/assert"
)

// run 手動測試：插入 6、4、8，每步印出內容，刪除 8 前後各 dump 一次
func run(w io.Writer, opts ...basic.Option) error {
	m := basic.NewMap[int, string](skiplist.Ordered[int](), opts...)
	fmt.Fprintln(w, m)
	for _, kv := range []struct {
		k int
		v string
	}{{6, "six"}, {4, "four"}, {8, "eight"}} {
		if _, _, err := m.Set(kv.k, kv.v); err != nil {
			return err
		}
		fmt.Fprintln(w, m)
	}
	if err := m.Dump(w); err != nil {
		return err
	}
	if _, _, err := m.Remove(8); err != nil {
		return err
	}
	if err := m.Dump(w); err != nil {
		return err
	}
	return analyTool.CheckStruct[int, string](m, skiplist.Ordered[int]())
}

func main() {
	var capacity int
	var seed int64
	flag.IntVar(&capacity, "capacity", 16, "maximum number of levels")
	flag.Int64Var(&seed, "seed", 0, "seed for node heights (0 = time based)")
	flag.Parse()

	opts := []basic.Option{basic.WithCapacity(capacity)}
	if seed != 0 {
		opts = append(opts, basic.WithSeed(seed))
	}
	assert.Nil(run(os.Stdout, opts...))
}
