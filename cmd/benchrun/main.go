package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/Hakuto4838/skipmap/datastream"
	"github.com/Hakuto4838/skipmap/skiplist"
	"github.com/Hakuto4838/skipmap/skiplist/analyTool"
	"github.com/Hakuto4838/skipmap/skiplist/basic"
	"github.com/emirpasic/gods/utils"
	"github.com/olekukonko/tablewriter"
)

const defaultSizes = "100,200,500,1000,2000,5000,10000,20000,50000,100000,200000,500000"

func main() {
	var mode string
	var sizes string
	var cycles int
	var file string
	var dir string
	var runs int
	var capacity int
	var seed int64
	var levels bool

	flag.StringVar(&mode, "mode", "efficiency", "efficiency: 隨機 key 在不同大小下的比較次數; replay: 重播 bench 檔")
	flag.StringVar(&sizes, "sizes", defaultSizes, "comma list of map sizes for efficiency mode")
	flag.IntVar(&cycles, "cycles", 100, "get/set/remove cycles per size")
	flag.StringVar(&file, "file", "", "existing bench streamfile (SLBENCH1 format)")
	flag.StringVar(&dir, "dir", "", "directory containing bench files to replay (all .bin files)")
	flag.IntVar(&runs, "runs", 5, "how many times to repeat each replay")
	flag.IntVar(&capacity, "capacity", 16, "maximum number of levels")
	flag.Int64Var(&seed, "seed", time.Now().UnixNano(), "seed for key streams and node heights")
	flag.BoolVar(&levels, "levels", false, "print per-level node counts of the last map")
	flag.Parse()

	switch mode {
	case "efficiency":
		ns, err := parseSizes(sizes)
		if err != nil {
			log.Fatalf("invalid -sizes: %v", err)
		}
		if cycles <= 0 {
			log.Fatalf("invalid -cycles: %d", cycles)
		}
		runEfficiency(ns, cycles, capacity, seed, levels)
	case "replay":
		var benchPaths []string
		if dir != "" {
			files, err := collectBenchFilesFromDir(dir)
			if err != nil {
				log.Fatalf("scan directory %s: %v", dir, err)
			}
			if len(files) == 0 {
				log.Fatalf("no .bin files found in directory: %s", dir)
			}
			benchPaths = files
		} else if file != "" {
			benchPaths = []string{file}
		} else {
			log.Fatalf("replay mode needs -file or -dir")
		}
		runReplay(benchPaths, runs, capacity, seed, levels)
	default:
		log.Fatalf("unknown -mode: %s", mode)
	}
}

func parseSizes(s string) ([]int, error) {
	var out []int
	for _, p := range strings.Split(s, ",") {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		f, err := strconv.ParseFloat(p, 64) // 支援 1e5
		if err != nil {
			return nil, err
		}
		if f <= 0 {
			return nil, fmt.Errorf("size must be positive: %s", p)
		}
		out = append(out, int(f))
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no sizes")
	}
	return out, nil
}

// collectBenchFilesFromDir 收集指定目錄下所有 .bin 檔案
func collectBenchFilesFromDir(dir string) ([]string, error) {
	var files []string
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && filepath.Ext(path) == ".bin" {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

type effStats struct {
	get, set, remove float64
	height           int
}

// runEfficiency 對每個大小量測 get/set/remove 的平均比較次數
func runEfficiency(sizes []int, cycles, capacity int, seed int64, levels bool) {
	fmt.Printf("cycles per size: %d, capacity: %d, seed: %d\n", cycles, capacity, seed)
	fmt.Println(strings.Repeat("=", 80))

	var last *basic.Map[int64, string]
	rows := make([][]string, 0, len(sizes))
	for i, n := range sizes {
		fmt.Printf("[%d/%d] size %d...\n", i+1, len(sizes), n)
		st, m := measureEfficiency(n, cycles, capacity, seed+int64(i))
		last = m
		rows = append(rows, []string{
			strconv.Itoa(n),
			fmt.Sprintf("%.2f", st.get),
			fmt.Sprintf("%.2f", st.set),
			fmt.Sprintf("%.2f", st.remove),
			fmt.Sprintf("%.2f", 2*math.Log2(float64(n))),
			strconv.Itoa(st.height),
		})
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Size", "Get", "Set", "Remove", "2·log2(n)", "Height"})
	table.SetAlignment(tablewriter.ALIGN_CENTER)
	table.SetAutoWrapText(false)
	table.AppendBulk(rows)
	table.Render()

	if levels && last != nil {
		analyTool.RenderLevels(os.Stdout, analyTool.CountLevel[int64, string](last))
	}
}

func measureEfficiency(size, cycles, capacity int, seed int64) (effStats, *basic.Map[int64, string]) {
	var counter analyTool.CompareCounter
	cmp := analyTool.Counting(&counter, skiplist.FromGods[int64](utils.Int64Comparator))
	m := basic.NewMap[int64, string](cmp, basic.WithCapacity(capacity), basic.WithSeed(seed))
	src := datastream.NewUniformKeys(math.MaxInt32, uint64(seed))

	keys := make([]int64, 0, size+cycles)
	for range size {
		k := src.Next()
		m.Set(k, "hello")
		keys = append(keys, k)
	}

	// 每輪先查一個已存在的 key，再插入新 key，最後刪除一個 key，大小維持不變
	var getCount, setCount, removeCount int64
	for range cycles {
		counter.Reset()
		m.Get(keys[src.Intn(len(keys))])
		getCount += counter.Count()

		k := src.Next()
		keys = append(keys, k)
		counter.Reset()
		m.Set(k, "hello")
		setCount += counter.Count()

		idx := src.Intn(len(keys))
		counter.Reset()
		m.Remove(keys[idx])
		removeCount += counter.Count()
		keys[idx] = keys[len(keys)-1]
		keys = keys[:len(keys)-1]
	}

	c := float64(cycles)
	return effStats{
		get:    float64(getCount) / c,
		set:    float64(setCount) / c,
		remove: float64(removeCount) / c,
		height: m.Height(),
	}, m
}

// runReplay 重播每個 bench 檔，輸出時間與各操作的平均比較次數
func runReplay(benchPaths []string, runs, capacity int, seed int64, levels bool) {
	if runs <= 0 {
		runs = 1
	}
	cmp := skiplist.Ordered[int64]()
	rows := make([][]string, 0, len(benchPaths))
	for idx, benchPath := range benchPaths {
		fmt.Printf("[%d/%d] replay: %s\n", idx+1, len(benchPaths), filepath.Base(benchPath))
		bf, err := datastream.ReadBenchFile(benchPath)
		if err != nil {
			log.Printf("  ERROR reading bench file: %v", err)
			continue
		}
		fmt.Printf("  ops: %d, entropy: %.6f\n", len(bf.Ops), datastream.EntropyFromDist(bf.Dist))

		// 計時不經過計數器
		durations := make([]float64, 0, runs)
		for i := 0; i < runs; i++ {
			m := basic.NewMap[int64, float64](cmp, basic.WithCapacity(capacity), basic.WithSeed(seed))
			st := bf.Replay(m, nil)
			durations = append(durations, float64(st.Elapsed.Microseconds())/1000.0)
		}
		sort.Float64s(durations)

		var counter analyTool.CompareCounter
		m := basic.NewMap[int64, float64](analyTool.Counting(&counter, cmp), basic.WithCapacity(capacity), basic.WithSeed(seed))
		st := bf.Replay(m, &counter)
		score, _ := analyTool.AnalyzeStep[int64, float64](m, cmp, bf.Dist)

		rows = append(rows, []string{
			filepath.Base(benchPath),
			strconv.Itoa(len(bf.Ops)),
			fmt.Sprintf("%.3f", average(durations)),
			fmt.Sprintf("%.3f", durations[0]),
			fmt.Sprintf("%.3f", durations[len(durations)-1]),
			fmt.Sprintf("%.2f", st.PerOp(datastream.OpQuery)),
			fmt.Sprintf("%.2f", st.PerOp(datastream.OpInsert)),
			fmt.Sprintf("%.2f", st.PerOp(datastream.OpDelete)),
			fmt.Sprintf("%.4f", score),
		})
		if levels {
			analyTool.RenderLevels(os.Stdout, analyTool.CountLevel[int64, float64](m))
		}
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"File", "Ops", "Avg(ms)", "Min(ms)", "Max(ms)", "Query", "Insert", "Delete", "AvgSteps"})
	table.SetAlignment(tablewriter.ALIGN_CENTER)
	table.SetAutoWrapText(false)
	table.AppendBulk(rows)
	table.Render()
}

// 輔助函數：計算平均值
func average(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
