package service

import (
	"strconv"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
)

// retrievalCache memoizes RetrievedContext bundles. Caching is sound only
// because retrieval is fully deterministic; the store version in the key
// makes every mutation an implicit invalidation. Cached bundles are cloned
// on both sides so callers can never alias each other's context.
type retrievalCache struct {
	entries *lru.Cache[string, *RetrievedContext]
}

// EnableCache bounds the engine with an LRU of the given size. Call before
// the engine is shared; the cache itself follows the store's single-owner
// contract.
func (e *Engine) EnableCache(size int) error {
	entries, err := lru.New[string, *RetrievedContext](size)
	if err != nil {
		return err
	}
	e.cache = &retrievalCache{entries: entries}
	return nil
}

// cacheKey length-prefixes the query and every topic so the encoding is
// injective: no choice of query and topic strings can collide, whatever
// bytes they contain.
func cacheKey(version uint64, query string, topics []string) string {
	var b strings.Builder
	b.WriteString(strconv.FormatUint(version, 10))
	b.WriteByte('|')
	b.WriteString(strconv.Itoa(len(query)))
	b.WriteByte(':')
	b.WriteString(query)
	for _, t := range topics {
		b.WriteString(strconv.Itoa(len(t)))
		b.WriteByte(':')
		b.WriteString(t)
	}
	return b.String()
}

func (c *retrievalCache) get(version uint64, query string, topics []string) (*RetrievedContext, bool) {
	rc, ok := c.entries.Get(cacheKey(version, query, topics))
	if !ok {
		return nil, false
	}
	return rc.clone(), true
}

func (c *retrievalCache) put(version uint64, query string, topics []string, rc *RetrievedContext) {
	c.entries.Add(cacheKey(version, query, topics), rc.clone())
}

func (c *retrievalCache) purge() {
	c.entries.Purge()
}
