package cache

import (
	"encoding/binary"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"

	"github.com/tradelab/indicore/pkg/indicator"
	"github.com/tradelab/indicore/pkg/types"
)

const DefaultExpiry = 5 * time.Minute

// Key identifies one calculation: the full indicator configuration and the
// fingerprint of the price data.
type Key struct {
	Indicator string
	Data      uint64
}

func NewKey(ind indicator.Indicator, data uint64) Key {
	// String() only prints the display subset of the parameters
	return Key{Indicator: fmt.Sprintf("%#v", ind), Data: data}
}

// Fingerprint hashes the bar times and prices of the series.
func Fingerprint(prices *types.PriceSeries) uint64 {
	d := xxhash.New()

	var buf [8]byte
	write := func(u uint64) {
		binary.LittleEndian.PutUint64(buf[:], u)
		_, _ = d.Write(buf[:])
	}

	write(uint64(prices.Bars()))
	for _, t := range prices.Time {
		write(uint64(t.UnixNano()))
	}
	for _, col := range [][]float64{prices.Open, prices.High, prices.Low, prices.Close} {
		for _, v := range col {
			write(math.Float64bits(v))
		}
	}

	return d.Sum64()
}

type outputWithTime struct {
	updatedAt time.Time
	output    indicator.Output
}

// OutputCache memoizes calculator outputs in memory. Cached outputs share their
// arrays with every caller and must be treated as read-only.
type OutputCache struct {
	sync.Mutex

	expiry  time.Duration
	outputs map[Key]outputWithTime
}

func NewOutputCache(expiry time.Duration) *OutputCache {
	if expiry <= 0 {
		expiry = DefaultExpiry
	}

	return &OutputCache{
		expiry:  expiry,
		outputs: make(map[Key]outputWithTime),
	}
}

func (c *OutputCache) Get(key Key) (indicator.Output, bool) {
	c.Lock()
	defer c.Unlock()

	data, ok := c.outputs[key]
	if !ok || time.Since(data.updatedAt) > c.expiry {
		return indicator.Output{}, false
	}

	return data.output, true
}

func (c *OutputCache) Set(key Key, output indicator.Output) {
	c.Lock()
	defer c.Unlock()

	c.outputs[key] = outputWithTime{
		updatedAt: time.Now(),
		output:    output,
	}
}

func (c *OutputCache) Len() int {
	c.Lock()
	defer c.Unlock()
	return len(c.outputs)
}

// Prune drops the expired entries.
func (c *OutputCache) Prune() {
	c.Lock()
	defer c.Unlock()

	for key, data := range c.outputs {
		if time.Since(data.updatedAt) > c.expiry {
			delete(c.outputs, key)
		}
	}
}

// Calculate returns the cached output of the indicator for the prices, calculating
// and storing it on a miss. hit reports whether the cache served the result.
func (c *OutputCache) Calculate(ind indicator.Indicator, prices *types.PriceSeries, fingerprint uint64) (output indicator.Output, hit bool) {
	key := NewKey(ind, fingerprint)
	if output, ok := c.Get(key); ok {
		return output, true
	}

	output = ind.Calculate(prices)
	c.Set(key, output)
	return output, false
}
