package engine

import (
	"container/list"
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/singleflight"

	"github.com/vango-dev/universal/internal/errors"
)

// FactoryCache memoizes compiled factories by module identity.
//
// Concurrent misses for the same module share one compilation. Failed
// compilations are never cached. With MaxEntries > 0 the least recently
// used factory is evicted once the cache is full.
type FactoryCache struct {
	mu         sync.Mutex
	maxEntries int
	entries    map[string]*list.Element
	order      *list.List // front = most recent
	gen        uint64     // bumped by Remove and Purge
	compiling  map[string]int

	group   singleflight.Group
	metrics *Metrics
	tracer  trace.Tracer
}

type cacheItem struct {
	key     string
	factory Factory
}

// CacheOption configures a FactoryCache.
type CacheOption func(*FactoryCache)

// WithCacheMetrics records hits, misses, evictions and compile time.
func WithCacheMetrics(m *Metrics) CacheOption {
	return func(c *FactoryCache) {
		c.metrics = m
	}
}

// WithCacheTracer traces compilations.
func WithCacheTracer(t trace.Tracer) CacheOption {
	return func(c *FactoryCache) {
		c.tracer = t
	}
}

// NewFactoryCache creates a cache holding at most maxEntries factories.
// Zero means unbounded.
func NewFactoryCache(maxEntries int, opts ...CacheOption) *FactoryCache {
	c := &FactoryCache{
		maxEntries: maxEntries,
		entries:    make(map[string]*list.Element),
		order:      list.New(),
		compiling:  make(map[string]int),
		tracer:     tracerFor(nil, ""),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the factory for module. A module that is already a Factory is
// returned unchanged. Otherwise the cached factory is returned, or the
// module is compiled with compiler and the result cached. Compile errors
// are returned unchanged.
//
// Modules with an empty ModuleID have no stable identity and are compiled
// on every call.
//
// A shared compilation is detached from the cancellation of whichever
// caller started it, so each caller only sees its own ctx errors.
func (c *FactoryCache) Get(ctx context.Context, module Module, compiler Compiler) (Factory, error) {
	if module == nil {
		return nil, errors.New("E102")
	}
	if f, ok := module.(Factory); ok {
		return f, nil
	}

	key := module.ModuleID()
	if key == "" {
		return c.compile(ctx, module, compiler)
	}

	if f, ok := c.lookup(key); ok {
		c.metrics.cacheHit()
		return f, nil
	}

	shared := context.WithoutCancel(ctx)
	ch := c.group.DoChan(key, func() (any, error) {
		if f, ok := c.lookup(key); ok {
			c.metrics.cacheHit()
			return f, nil
		}
		c.metrics.cacheMiss()
		gen := c.begin(key)
		f, err := c.compile(shared, module, compiler)
		c.finish(key, f, err, gen)
		if err != nil {
			return nil, err
		}
		return f, nil
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(Factory), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (c *FactoryCache) compile(ctx context.Context, module Module, compiler Compiler) (f Factory, err error) {
	if compiler == nil {
		return nil, errors.New("E103").WithContextf("no compiler")
	}
	ctx, span := startSpan(ctx, c.tracer, spanCompile, attrModule.String(module.ModuleID()))
	defer func() { endSpan(span, err) }()

	start := time.Now()
	f, err = compiler.CompileModule(ctx, module)
	c.metrics.observeCompile(time.Since(start))
	return f, err
}

func (c *FactoryCache) lookup(key string) (Factory, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	c.order.MoveToFront(elem)
	return elem.Value.(*cacheItem).factory, true
}

// begin marks key as compiling and returns the current generation.
func (c *FactoryCache) begin(key string) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.compiling[key]++
	return c.gen
}

// finish caches a successful compilation unless the cache was invalidated
// after it began.
func (c *FactoryCache) finish(key string, f Factory, err error, gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.compiling[key]--; c.compiling[key] <= 0 {
		delete(c.compiling, key)
	}
	if err != nil || gen != c.gen {
		return
	}

	if elem, ok := c.entries[key]; ok {
		elem.Value.(*cacheItem).factory = f
		c.order.MoveToFront(elem)
		return
	}

	// Evict LRU entries if at capacity
	for c.maxEntries > 0 && c.order.Len() >= c.maxEntries {
		oldest := c.order.Back()
		if oldest == nil {
			break
		}
		c.order.Remove(oldest)
		delete(c.entries, oldest.Value.(*cacheItem).key)
		c.metrics.cacheEvicted()
	}

	c.entries[key] = c.order.PushFront(&cacheItem{key: key, factory: f})
	c.metrics.setCacheEntries(len(c.entries))
}

// Remove drops the factory cached for id. It reports whether one was
// present.
func (c *FactoryCache) Remove(id string) bool {
	c.group.Forget(id)
	c.mu.Lock()
	defer c.mu.Unlock()

	c.gen++
	elem, ok := c.entries[id]
	if !ok {
		return false
	}
	c.order.Remove(elem)
	delete(c.entries, id)
	c.metrics.setCacheEntries(len(c.entries))
	return true
}

// Purge drops every cached factory. Compilations already in flight still
// answer their callers but are not cached.
func (c *FactoryCache) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for key := range c.compiling {
		c.group.Forget(key)
	}
	c.gen++
	c.entries = make(map[string]*list.Element)
	c.order = list.New()
	c.metrics.setCacheEntries(0)
}

// Len returns the number of cached factories.
func (c *FactoryCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
