package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/Hakuto4838/skipmap/datastream"
	"github.com/avamsi/ergo/assert"
)

// parseScientificNotation 解析科學記號字串（如 "1e5"）為整數
func parseScientificNotation(s string) (int, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	return int(f), nil
}

// formatScientific 將數字格式化為科學記號（用於檔名）
func formatScientific(n int) string {
	if n == 0 {
		return "0"
	}
	exp, divisor := 0, 1
	for n/divisor >= 10 {
		divisor *= 10
		exp++
	}
	coefficient := float64(n) / float64(divisor)
	if coefficient == float64(int(coefficient)) {
		return fmt.Sprintf("%de%d", int(coefficient), exp)
	}
	return fmt.Sprintf("%.1fe%d", coefficient, exp)
}

// formatDecimal 將浮點數格式化為不含小數點的字串（用於檔名），保留兩位小數
func formatDecimal(f float64) string {
	val := int(f*100 + 0.5)
	switch {
	case val%100 == 0:
		return strconv.Itoa(val / 100)
	case val%10 == 0:
		return fmt.Sprintf("%d_%d", val/100, (val%100)/10)
	default:
		return fmt.Sprintf("%d_%02d", val/100, val%100)
	}
}

func main() {
	var out string
	var path string
	var nStr string
	var kStr string
	var seed int64
	var nums int
	var cfg datastream.BenchConfig

	flag.StringVar(&nStr, "n", "0", "number of keys (支援科學記號，如 1e5)")
	flag.Float64Var(&cfg.S, "a", 1.07, "Zipf parameter s (設為 0 時使用均勻分布)")
	flag.Float64Var(&cfg.V, "b", 1.0, "Zipf parameter v (當 a > 0 時有效，需 >= 1)")
	flag.StringVar(&kStr, "k", "0", "number of operations to generate (支援科學記號，如 1e6)")
	flag.Int64Var(&seed, "seed", time.Now().UnixNano(), "seed for generators")
	flag.Float64Var(&cfg.Phase1Ratio, "phase1Ratio", 0.5, "ratio of phase1 operations")
	flag.Float64Var(&cfg.DeleteRatio, "deleteRatio", 0.1, "ratio of delete operations")
	flag.IntVar(&nums, "nums", 1, "number of files to generate")
	flag.StringVar(&out, "out", "", "output filename prefix (留空則自動生成)")
	flag.StringVar(&path, "path", ".", "output directory path")
	flag.BoolVar(&cfg.SimpleKey, "simple", false, "keys are 0..n-1 instead of random uint32")
	flag.Parse()

	var err error
	if cfg.N, err = parseScientificNotation(nStr); err != nil {
		log.Fatalf("解析參數 n 錯誤: %v", err)
	}
	if cfg.K, err = parseScientificNotation(kStr); err != nil {
		log.Fatalf("解析參數 k 錯誤: %v", err)
	}

	if out == "" {
		out = fmt.Sprintf("bench_n%s_k%s_a%s_b%s_p1r%s_dr%s",
			formatScientific(cfg.N),
			formatScientific(cfg.K),
			formatDecimal(cfg.S),
			formatDecimal(cfg.V),
			formatDecimal(cfg.Phase1Ratio),
			formatDecimal(cfg.DeleteRatio))
	}
	if path != "." && path != "" {
		assert.Nil(os.MkdirAll(path, 0o755))
	}

	fmt.Printf("生成參數:\n")
	fmt.Printf("  n (keys): %d\n", cfg.N)
	fmt.Printf("  k (operations): %d\n", cfg.K)
	fmt.Printf("  s: %.2f, v: %.2f\n", cfg.S, cfg.V)
	fmt.Printf("  phase1Ratio: %.2f, deleteRatio: %.2f\n", cfg.Phase1Ratio, cfg.DeleteRatio)
	fmt.Printf("  seed: %d, 檔案數量: %d\n", seed, nums)
	fmt.Printf("  輸出: %s\n\n", filepath.Join(path, out))

	for i := 0; i < nums; i++ {
		filename := out + ".bin"
		if nums > 1 {
			filename = fmt.Sprintf("%s_%d.bin", out, i)
		}
		outfile := filepath.Join(path, filename)
		cfg.Seed = uint64(seed + int64(i))
		info, err := datastream.WriteBenchFile(cfg, outfile)
		if err != nil {
			log.Fatalf("generate %s: %v", outfile, err)
		}
		fmt.Printf("%s  entropy %.4f\n", outfile, info.Entropy)
	}
	fmt.Println("完成!")
}
