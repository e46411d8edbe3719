package markup

import "sync"

// cacheKey is the composite identity of one render: view type, plan, and
// input sizes. Correctness never depends on a hit; the cache only skips
// regeneration for repeated identical requests within one process.
type cacheKey struct {
	view      ViewType
	planID    string
	nAssign   int
	nMembers  int
	nProjects int
}

// Cache memoizes generated charts.
type Cache struct {
	mu      sync.Mutex
	entries map[cacheKey]Chart
}

func NewCache() *Cache {
	return &Cache{entries: make(map[cacheKey]Chart)}
}

// Generate returns a cached chart for an equivalent input, rendering and
// storing one otherwise.
func (c *Cache) Generate(in Input) Chart {
	var key cacheKey
	if in.Plan != nil {
		key = cacheKey{
			view:      in.View,
			planID:    in.Plan.ID,
			nAssign:   len(in.Assignments),
			nMembers:  len(in.TeamMembers),
			nProjects: len(in.Projects),
		}
		c.mu.Lock()
		if chart, ok := c.entries[key]; ok {
			c.mu.Unlock()
			return chart
		}
		c.mu.Unlock()
	}

	chart := Generate(in)

	if in.Plan != nil {
		c.mu.Lock()
		c.entries[key] = chart
		c.mu.Unlock()
	}
	return chart
}

// Invalidate drops every cached chart for the given plan.
func (c *Cache) Invalidate(planID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for key := range c.entries {
		if key.planID == planID {
			delete(c.entries, key)
		}
	}
}
