package pipeline

import "sort"

// counter is a frequency map that remembers first-insertion order so
// ranking ties come out first-seen-first.
type counter struct {
	index  map[string]int
	keys   []string
	counts []int
}

func newCounter() *counter {
	return &counter{index: make(map[string]int)}
}

func (c *counter) add(key string, n int) {
	i, ok := c.index[key]
	if !ok {
		i = len(c.keys)
		c.index[key] = i
		c.keys = append(c.keys, key)
		c.counts = append(c.counts, 0)
	}
	c.counts[i] += n
}

type ranked struct {
	Key   string
	Count int
}

// top returns up to n entries by descending count. The sort is stable over
// insertion order.
func (c *counter) top(n int) []ranked {
	out := make([]ranked, len(c.keys))
	for i, k := range c.keys {
		out[i] = ranked{Key: k, Count: c.counts[i]}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})
	if n >= 0 && len(out) > n {
		out = out[:n]
	}
	return out
}
