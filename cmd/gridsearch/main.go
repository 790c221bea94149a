package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/Hakuto4838/skipmap/datastream"
	"github.com/Hakuto4838/skipmap/skiplist"
	"github.com/Hakuto4838/skipmap/skiplist/analyTool"
	"github.com/Hakuto4838/skipmap/skiplist/basic"
	"github.com/avamsi/ergo/assert"
	"github.com/olekukonko/tablewriter"
)

type result struct {
	capacity int
	p        float64
	cost     float64 // 平均每筆操作的比較次數
	ms       float64
}

// evaluateCost 以 (capacity, p) 重播所有 bench 檔
// 成本為所有檔案、所有 run 的平均每筆操作比較次數
func evaluateCost(capacity int, p float64, benchFiles []*datastream.BenchFile, runs int, seed int64) result {
	cmp := skiplist.Ordered[int64]()
	var counter analyTool.CompareCounter
	var cost, ms float64
	for _, bf := range benchFiles {
		for i := 0; i < runs; i++ {
			m := basic.NewMap[int64, float64](analyTool.Counting(&counter, cmp),
				basic.WithCapacity(capacity),
				basic.WithProbability(p),
				basic.WithSeed(seed+int64(i)))
			st := bf.Replay(m, &counter)
			cost += st.Total()
			ms += float64(st.Elapsed.Microseconds()) / 1000.0
		}
	}
	n := float64(len(benchFiles) * runs)
	return result{capacity: capacity, p: p, cost: cost / n, ms: ms / n}
}

func main() {
	var benchPath string
	var benchDir string
	var capMin, capMax, capStep int
	var pMin, pMax, pStep float64
	var runs int
	var seed int64
	var top int
	var outputCSV string

	flag.StringVar(&benchPath, "bench", "", "單一 benchmark 檔案路徑")
	flag.StringVar(&benchDir, "benchdir", "", "包含多個 benchmark 檔案的目錄 (使用所有 .bin 檔案)")
	flag.IntVar(&capMin, "capmin", 4, "capacity 的最小值")
	flag.IntVar(&capMax, "capmax", 32, "capacity 的最大值")
	flag.IntVar(&capStep, "capstep", 4, "capacity 的步長")
	flag.Float64Var(&pMin, "pmin", 0.2, "升層機率的最小值")
	flag.Float64Var(&pMax, "pmax", 0.7, "升層機率的最大值")
	flag.Float64Var(&pStep, "pstep", 0.05, "升層機率的步長")
	flag.IntVar(&runs, "runs", 3, "每組參數運行的次數（取平均值）")
	flag.Int64Var(&seed, "seed", time.Now().UnixNano(), "seed for node heights")
	flag.IntVar(&top, "top", 10, "顯示成本最低的前幾組")
	flag.StringVar(&outputCSV, "csv", "", "輸出 CSV 檔案路徑（選填，用於生成熱力圖）")
	flag.Parse()

	var benchFiles []string
	if benchDir != "" {
		files, err := filepath.Glob(filepath.Join(benchDir, "*.bin"))
		if err != nil {
			log.Fatalf("掃描目錄失敗: %v", err)
		}
		if len(files) == 0 {
			log.Fatalf("目錄中找不到 .bin 檔案: %s", benchDir)
		}
		benchFiles = files
	} else if benchPath != "" {
		benchFiles = []string{benchPath}
	} else {
		log.Fatal("請提供 -bench 或 -benchdir 參數")
	}
	if capStep <= 0 || pStep <= 0 || runs <= 0 {
		log.Fatalf("invalid step/runs: capstep=%d pstep=%v runs=%d", capStep, pStep, runs)
	}

	loaded := make([]*datastream.BenchFile, 0, len(benchFiles))
	for _, fpath := range benchFiles {
		bf, err := datastream.ReadBenchFile(fpath)
		if err != nil {
			log.Fatalf("讀取 benchmark 檔案失敗 %s: %v", fpath, err)
		}
		loaded = append(loaded, bf)
		fmt.Printf("  - %s: %d 操作\n", filepath.Base(fpath), len(bf.Ops))
	}

	results := grid(capMin, capMax, capStep, pMin, pMax, pStep, func(c int, p float64) result {
		return evaluateCost(c, p, loaded, runs, seed)
	})

	if outputCSV != "" {
		f := assert.Ok(os.Create(outputCSV))
		w := csv.NewWriter(f)
		assert.Nil(w.Write([]string{"capacity", "p", "cmp_per_op", "ms"}))
		for _, r := range results {
			assert.Nil(w.Write([]string{
				strconv.Itoa(r.capacity),
				strconv.FormatFloat(r.p, 'f', 4, 64),
				strconv.FormatFloat(r.cost, 'f', 4, 64),
				strconv.FormatFloat(r.ms, 'f', 3, 64),
			}))
		}
		w.Flush()
		assert.Nil(w.Error())
		assert.Nil(f.Close())
		fmt.Printf("CSV 結果已保存至: %s\n", outputCSV)
	}

	sort.SliceStable(results, func(i, j int) bool { return results[i].cost < results[j].cost })
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Rank", "Capacity", "P", "Cmp/Op", "Avg(ms)"})
	table.SetAlignment(tablewriter.ALIGN_CENTER)
	for i, r := range results[:min(top, len(results))] {
		table.Append([]string{
			strconv.Itoa(i + 1),
			strconv.Itoa(r.capacity),
			fmt.Sprintf("%.2f", r.p),
			fmt.Sprintf("%.3f", r.cost),
			fmt.Sprintf("%.3f", r.ms),
		})
	}
	table.Render()
}

// grid 依序評估所有 (capacity, p) 組合
func grid(capMin, capMax, capStep int, pMin, pMax, pStep float64, eval func(int, float64) result) []result {
	pCount := int(math.Round((pMax-pMin)/pStep)) + 1
	var results []result
	for c := capMin; c <= capMax; c += capStep {
		for i := 0; i < pCount; i++ {
			p := pMin + float64(i)*pStep
			results = append(results, eval(c, p))
		}
	}
	return results
}
