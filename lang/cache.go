package lang

import (
	"context"
	"io"
	"sync"

	"github.com/zeebo/xxh3"

	"github.com/ardnew/segrule/log"
)

// cacheEntry holds the at-most-once-compile state for a single expression
// text: the first caller to see a miss compiles it and every concurrent
// caller waits on the same sync.Once, per the at-most-once-compile property
// (§4.2).
type cacheEntry struct {
	once     sync.Once
	compiled *Compiled
	err      *Error
}

// Cache is a concurrent expressionText -> *Compiled map. Lookups never
// block on each other; only two callers racing on the *same* uncached text
// block on one another, and only until the first one finishes compiling.
//
// An optional bound turns it into a simple LRU: every lookup moves its text
// to the most-recent end of the order, and once the number of distinct
// entries exceeds max, the least recently used entry is evicted. The
// bound is off by default (max == 0) per §9's SHOULD-note, since unbounded
// growth is the common case for a process that only ever sees a bounded
// rule set.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]*cacheEntry
	order   []string
	max     int
	logger  log.Logger
}

// NewCache creates an unbounded [Cache]. Use [NewBoundedCache] for an
// LRU-evicting variant.
func NewCache() *Cache {
	return &Cache{entries: make(map[string]*cacheEntry), logger: log.Make(io.Discard)}
}

// NewBoundedCache creates a [Cache] that evicts its least-recently-used
// entry once more than max distinct expression texts have been compiled.
func NewBoundedCache(max int) *Cache {
	return &Cache{entries: make(map[string]*cacheEntry), max: max, logger: log.Make(io.Discard)}
}

// SetLogger installs the logger used for trace-level cache diagnostics. A
// freshly created [Cache] discards trace lines until one is installed.
func (c *Cache) SetLogger(l log.Logger) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.logger = l
}

// fingerprint returns a fast, collision-tolerant trace identifier for text.
// It is never used as the cache's map key — the cache is keyed on the exact
// expression text to avoid any possibility of a hash collision silently
// aliasing two distinct expressions — only as a short value for log lines.
func fingerprint(text string) uint64 {
	return xxh3.HashString(text)
}

// getOrCompile returns the cached [Compiled] for text, compiling it via fn
// exactly once even under concurrent callers.
func (c *Cache) getOrCompile(text string, fn func() (*Compiled, *Error)) (*Compiled, *Error) {
	c.mu.RLock()
	entry, ok := c.entries[text]
	logger := c.logger
	c.mu.RUnlock()

	miss := !ok

	if !ok {
		c.mu.Lock()
		entry, ok = c.entries[text]

		if !ok {
			entry = &cacheEntry{}
			c.entries[text] = entry
			c.order = append(c.order, text)
			c.evictIfNeeded()
		}

		c.mu.Unlock()
	}

	entry.once.Do(func() {
		logger.Fingerprint(fingerprint(text)).TraceContext(context.Background(), "compiling expression")

		entry.compiled, entry.err = fn()
	})

	if !miss {
		if c.max > 0 {
			c.mu.Lock()
			for i, k := range c.order {
				if k == text {
					c.order = append(c.order[:i], c.order[i+1:]...)
					c.order = append(c.order, text)

					break
				}
			}
			c.mu.Unlock()
		}

		logger.Fingerprint(fingerprint(text)).TraceContext(context.Background(), "cache hit")
	}

	return entry.compiled, entry.err
}

// evictIfNeeded drops the least recently used entry once the cache exceeds
// its bound.
// Callers hold c.mu for writing.
func (c *Cache) evictIfNeeded() {
	if c.max <= 0 {
		return
	}

	for len(c.order) > c.max {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.entries, oldest)
	}
}

// Clear empties the cache. In-flight compiles already past their Once are
// unaffected; a subsequent lookup for the same text recompiles.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]*cacheEntry)
	c.order = nil
}

// Size reports the number of distinct expression texts currently cached.
func (c *Cache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.entries)
}

// Compiler pairs a frozen function [Catalog] with a [Cache], giving
// iteration operators (§4.3) a single handle through which to recompile a
// string-literal predicate, and giving [Engine] a single handle through
// which to compile top-level expressions.
type Compiler struct {
	catalog *Catalog
	cache   *Cache
}

// NewCompiler creates a [Compiler] bound to catalog with an unbounded
// cache.
func NewCompiler(catalog *Catalog) *Compiler {
	return &Compiler{catalog: catalog, cache: NewCache()}
}

// NewBoundedCompiler creates a [Compiler] whose cache evicts past max
// distinct entries.
func NewBoundedCompiler(catalog *Catalog, max int) *Compiler {
	return &Compiler{catalog: catalog, cache: NewBoundedCache(max)}
}

// Compile returns the cached [Compiled] form of text, validating and
// parsing it at most once regardless of how many goroutines request it
// concurrently.
func (c *Compiler) Compile(text string) (*Compiled, *Error) {
	return c.cache.getOrCompile(text, func() (*Compiled, *Error) {
		return compile(c.catalog, text)
	})
}

// SetLogger installs the logger used for the compiler's cache diagnostics.
func (c *Compiler) SetLogger(l log.Logger) { c.cache.SetLogger(l) }

// ClearCache empties the compiler's cache.
func (c *Compiler) ClearCache() { c.cache.Clear() }

// CacheSize reports the number of distinct expression texts cached.
func (c *Compiler) CacheSize() int { return c.cache.Size() }

// Catalog returns the compiler's function catalog.
func (c *Compiler) Catalog() *Catalog { return c.catalog }

// Compile validates and parses text against catalog, producing an
// executable [Compiled] value. It runs [Validate] first so that a
// malformed expression is reported with the ordered, suggestion-bearing
// [KindSyntax] errors from §4.1 rather than a raw parser failure.
func Compile(catalog *Catalog, text string) (*Compiled, *Error) {
	return compile(catalog, text)
}

func compile(catalog *Catalog, text string) (*Compiled, *Error) {
	if result := Validate(catalog, text); !result.Valid {
		return nil, result.toError()
	}

	root, err := newParser(text).parseExpression()
	if err != nil {
		return nil, err
	}

	return &Compiled{root: root, catalog: catalog, source: text}, nil
}
