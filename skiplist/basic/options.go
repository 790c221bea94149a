package basic

import (
	"math/rand"
	"time"
)

const (
	defaultCapacity = 16
	maxCapacity     = 64
	probability     = 0.5
)

type config struct {
	capacity int
	prob     float64
	rand     *rand.Rand
}

// Option 設定 Map 的建構參數
type Option func(*config)

// WithCapacity 設定層數上限（head 的 link 數量），超出 [1, 64] 會被夾住
func WithCapacity(n int) Option {
	return func(c *config) {
		c.capacity = min(max(n, 1), maxCapacity)
	}
}

// WithProbability 設定升層機率，只接受 (0, 1)
func WithProbability(p float64) Option {
	return func(c *config) {
		if p > 0 && p < 1 {
			c.prob = p
		}
	}
}

// WithSeed 以固定種子產生節點高度
func WithSeed(seed int64) Option {
	return func(c *config) {
		c.rand = rand.New(rand.NewSource(seed))
	}
}

// WithRand 使用外部提供的亂數來源
func WithRand(r *rand.Rand) Option {
	return func(c *config) {
		if r != nil {
			c.rand = r
		}
	}
}

func newConfig(opts []Option) config {
	cfg := config{
		capacity: defaultCapacity,
		prob:     probability,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.rand == nil {
		cfg.rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return cfg
}
