package search

import (
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/dmitrijs2005/hrportal/internal/client/api"
)

// resultCache keeps recent lookups per normalized query and limit. A nil
// *resultCache is a disabled cache.
type resultCache struct {
	lru *expirable.LRU[string, []api.EmployeeSummary]
}

func newResultCache(size int, ttl time.Duration) *resultCache {
	if size <= 0 || ttl <= 0 {
		return nil
	}
	return &resultCache{lru: expirable.NewLRU[string, []api.EmployeeSummary](size, nil, ttl)}
}

func cacheKey(query string, limit int) string {
	return strings.ToLower(strings.TrimSpace(query)) + "\x00" + strconv.Itoa(limit)
}

func (c *resultCache) get(query string, limit int) ([]api.EmployeeSummary, bool) {
	if c == nil {
		return nil, false
	}
	v, ok := c.lru.Get(cacheKey(query, limit))
	if !ok {
		return nil, false
	}
	return cloneResults(v), true
}

func (c *resultCache) add(query string, limit int, results []api.EmployeeSummary) {
	if c == nil {
		return
	}
	c.lru.Add(cacheKey(query, limit), cloneResults(results))
}

func (c *resultCache) purge() {
	if c != nil {
		c.lru.Purge()
	}
}

func cloneResults(in []api.EmployeeSummary) []api.EmployeeSummary {
	out := make([]api.EmployeeSummary, len(in))
	copy(out, in)
	return out
}
