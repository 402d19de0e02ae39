package engine

import (
	"context"
	stderrors "errors"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestFactoryCacheGet(t *testing.T) {
	c := NewFactoryCache(0)
	compiler := &fakeCompiler{}
	ctx := context.Background()

	f1, err := c.Get(ctx, fakeModule{id: "a"}, compiler)
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	f2, err := c.Get(ctx, fakeModule{id: "a"}, compiler)
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if f1 != f2 {
		t.Error("same module should return the cached factory")
	}
	if f1.Source().ModuleID() != "a" {
		t.Errorf("Source() = %q, want a", f1.Source().ModuleID())
	}

	if _, err := c.Get(ctx, fakeModule{id: "b"}, compiler); err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if got := compiler.calls.Load(); got != 2 {
		t.Errorf("compile calls = %d, want 2", got)
	}
	if c.Len() != 2 {
		t.Errorf("Len() = %d, want 2", c.Len())
	}
}

func TestFactoryCachePassesFactoriesThrough(t *testing.T) {
	c := NewFactoryCache(0)
	factory := &fakeFactory{src: fakeModule{id: "aot"}}

	got, err := c.Get(context.Background(), factory, nil)
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if got != factory {
		t.Error("factory should be returned unchanged")
	}
	if c.Len() != 0 {
		t.Error("precompiled factories should not be cached")
	}
}

func TestFactoryCacheErrorsNotCached(t *testing.T) {
	c := NewFactoryCache(0)
	boom := stderrors.New("boom")
	compiler := &fakeCompiler{err: boom}

	for i := 0; i < 2; i++ {
		if _, err := c.Get(context.Background(), fakeModule{id: "a"}, compiler); err != boom {
			t.Fatalf("Get() error = %v, want %v", err, boom)
		}
	}
	if compiler.calls.Load() != 2 {
		t.Errorf("compile calls = %d, want 2", compiler.calls.Load())
	}

	compiler.err = nil
	if _, err := c.Get(context.Background(), fakeModule{id: "a"}, compiler); err != nil {
		t.Fatalf("Get() after recovery error: %v", err)
	}
	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1", c.Len())
	}
}

func TestFactoryCacheEmptyIDNotCached(t *testing.T) {
	c := NewFactoryCache(0)
	compiler := &fakeCompiler{}

	for i := 0; i < 2; i++ {
		if _, err := c.Get(context.Background(), fakeModule{}, compiler); err != nil {
			t.Fatalf("Get() error: %v", err)
		}
	}
	if compiler.calls.Load() != 2 {
		t.Errorf("compile calls = %d, want 2", compiler.calls.Load())
	}
	if c.Len() != 0 {
		t.Errorf("Len() = %d, want 0", c.Len())
	}
}

func TestFactoryCacheNilArguments(t *testing.T) {
	c := NewFactoryCache(0)
	if _, err := c.Get(context.Background(), nil, &fakeCompiler{}); !stderrors.Is(err, ErrModuleRequired) {
		t.Errorf("nil module error = %v, want E102", err)
	}
	if _, err := c.Get(context.Background(), fakeModule{id: "a"}, nil); !stderrors.Is(err, ErrEngineMisconfigured) {
		t.Errorf("nil compiler error = %v, want E103", err)
	}
}

func TestFactoryCacheConcurrentMiss(t *testing.T) {
	c := NewFactoryCache(0)
	compiler := &fakeCompiler{gate: make(chan struct{})}

	const n = 32
	var wg sync.WaitGroup
	results := make([]Factory, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			f, err := c.Get(context.Background(), fakeModule{id: "shared"}, compiler)
			if err != nil {
				t.Errorf("Get() error: %v", err)
			}
			results[i] = f
		}(i)
	}

	time.Sleep(20 * time.Millisecond)
	close(compiler.gate)
	wg.Wait()

	if got := compiler.calls.Load(); got != 1 {
		t.Errorf("compile calls = %d, want 1", got)
	}
	for i := 1; i < n; i++ {
		if results[i] != results[0] {
			t.Fatal("concurrent callers received different factories")
		}
	}
}

func TestFactoryCacheWaiterHonorsContext(t *testing.T) {
	c := NewFactoryCache(0)
	compiler := &fakeCompiler{gate: make(chan struct{})}
	defer close(compiler.gate)

	go c.Get(context.Background(), fakeModule{id: "slow"}, compiler)
	time.Sleep(10 * time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := c.Get(ctx, fakeModule{id: "slow"}, compiler); !stderrors.Is(err, context.Canceled) {
		t.Errorf("Get() error = %v, want context.Canceled", err)
	}
}

func TestFactoryCacheLRU(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewMetrics(WithRegistry(reg))
	c := NewFactoryCache(2, WithCacheMetrics(metrics))
	compiler := &fakeCompiler{}
	ctx := context.Background()

	get := func(id string) {
		t.Helper()
		if _, err := c.Get(ctx, fakeModule{id: id}, compiler); err != nil {
			t.Fatalf("Get(%q) error: %v", id, err)
		}
	}

	get("a")
	get("b")
	get("a") // a is now most recent
	get("c") // evicts b

	if c.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", c.Len())
	}
	before := compiler.calls.Load()
	get("a")
	if compiler.calls.Load() != before {
		t.Error("a should still be cached")
	}
	get("b")
	if compiler.calls.Load() != before+1 {
		t.Error("b should have been evicted and recompiled")
	}

	if got := testutil.ToFloat64(metrics.cacheEvictions); got != 2 {
		t.Errorf("factory_cache_evictions_total = %v, want 2", got)
	}
	if got := testutil.ToFloat64(metrics.cacheEntries); got != 2 {
		t.Errorf("factory_cache_entries = %v, want 2", got)
	}
}

func TestFactoryCacheRemoveAndPurge(t *testing.T) {
	c := NewFactoryCache(0)
	compiler := &fakeCompiler{}
	ctx := context.Background()

	for _, id := range []string{"a", "b", "c"} {
		if _, err := c.Get(ctx, fakeModule{id: id}, compiler); err != nil {
			t.Fatal(err)
		}
	}

	if !c.Remove("b") {
		t.Error("Remove(b) should report a removed entry")
	}
	if c.Remove("b") {
		t.Error("second Remove(b) should report nothing removed")
	}
	if c.Len() != 2 {
		t.Errorf("Len() = %d, want 2", c.Len())
	}

	c.Purge()
	if c.Len() != 0 {
		t.Errorf("Len() after Purge = %d, want 0", c.Len())
	}
	if _, err := c.Get(ctx, fakeModule{id: "a"}, compiler); err != nil {
		t.Fatal(err)
	}
	if compiler.calls.Load() != 4 {
		t.Errorf("compile calls = %d, want 4", compiler.calls.Load())
	}
}

func TestFactoryCacheLeaderCancelDoesNotFailWaiters(t *testing.T) {
	c := NewFactoryCache(0)
	compiler := &fakeCompiler{gate: make(chan struct{})}

	leaderCtx, cancel := context.WithCancel(context.Background())
	leaderErr := make(chan error, 1)
	go func() {
		_, err := c.Get(leaderCtx, fakeModule{id: "shared"}, compiler)
		leaderErr <- err
	}()
	time.Sleep(10 * time.Millisecond)

	type result struct {
		f   Factory
		err error
	}
	waiter := make(chan result, 1)
	go func() {
		f, err := c.Get(context.Background(), fakeModule{id: "shared"}, compiler)
		waiter <- result{f, err}
	}()
	time.Sleep(10 * time.Millisecond)

	cancel()
	if err := <-leaderErr; !stderrors.Is(err, context.Canceled) {
		t.Errorf("leader Get() error = %v, want context.Canceled", err)
	}

	close(compiler.gate)
	res := <-waiter
	if res.err != nil {
		t.Fatalf("waiter Get() error: %v", res.err)
	}
	if res.f == nil || res.f.Source().ModuleID() != "shared" {
		t.Errorf("waiter factory = %v, want one compiled from shared", res.f)
	}
	if got := compiler.calls.Load(); got != 1 {
		t.Errorf("compile calls = %d, want 1", got)
	}
	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1", c.Len())
	}
}

func TestFactoryCachePurgeDuringCompile(t *testing.T) {
	c := NewFactoryCache(0)
	compiler := &fakeCompiler{gate: make(chan struct{})}

	done := make(chan error, 2)
	get := func() {
		_, err := c.Get(context.Background(), fakeModule{id: "app"}, compiler)
		done <- err
	}

	go get()
	waitForCalls(t, compiler, 1)

	c.Purge()

	// A caller arriving after the purge starts its own compilation.
	go get()
	waitForCalls(t, compiler, 2)

	close(compiler.gate)
	for i := 0; i < 2; i++ {
		if err := <-done; err != nil {
			t.Fatalf("Get() error: %v", err)
		}
	}
	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1 (only the post-purge compile)", c.Len())
	}
}

func TestFactoryCacheRemoveDuringCompile(t *testing.T) {
	c := NewFactoryCache(0)
	compiler := &fakeCompiler{gate: make(chan struct{})}

	done := make(chan error, 1)
	go func() {
		_, err := c.Get(context.Background(), fakeModule{id: "app"}, compiler)
		done <- err
	}()
	waitForCalls(t, compiler, 1)

	c.Remove("app")
	close(compiler.gate)
	if err := <-done; err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if c.Len() != 0 {
		t.Errorf("Len() = %d, want 0", c.Len())
	}
}

func waitForCalls(t *testing.T, compiler *fakeCompiler, n int32) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for compiler.calls.Load() < n {
		if time.Now().After(deadline) {
			t.Fatalf("compile calls = %d, want %d", compiler.calls.Load(), n)
		}
		time.Sleep(time.Millisecond)
	}
}
