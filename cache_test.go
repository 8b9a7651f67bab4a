package odatafilter

import (
	"context"
	"fmt"
	"sync"
	"testing"
)

func TestParseCacheReturnsSameTree(t *testing.T) {
	p := NewParser(&testResolver{}, WithCache(16))

	first, err := p.Parse(context.Background(), "Price gt 100", "$it")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	second, err := p.Parse(context.Background(), "Price gt 100", "$it")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if first != second {
		t.Error("Expected the cached tree instance on the second parse")
	}
}

func TestParseCacheDistinguishesRangeVariable(t *testing.T) {
	cache := NewParseCache(16)
	fq := &FilterQueryOption{}

	cache.put("Price gt 100", "$it", fq)
	if _, ok := cache.get("Price gt 100", "$other"); ok {
		t.Error("Cache must not serve a tree parsed under a different range variable")
	}
	if got, ok := cache.get("Price gt 100", "$it"); !ok || got != fq {
		t.Error("Expected the stored tree for the original key")
	}
}

func TestParseCacheEvictsAtCapacity(t *testing.T) {
	cache := NewParseCache(4)

	for i := 0; i < 4; i++ {
		cache.put(fmt.Sprintf("Price gt %d", i), "$it", &FilterQueryOption{})
	}
	if cache.Len() != 4 {
		t.Fatalf("Expected 4 cached trees, got %d", cache.Len())
	}

	// The fifth insert triggers a full evict before storing.
	cache.put("Price gt 4", "$it", &FilterQueryOption{})
	if cache.Len() != 1 {
		t.Errorf("Expected 1 cached tree after eviction, got %d", cache.Len())
	}
}

func TestParseCacheConcurrentAccess(t *testing.T) {
	p := NewParser(&testResolver{}, WithCache(32))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				filter := fmt.Sprintf("Price gt %d", j%4)
				if _, err := p.Parse(context.Background(), filter, "$it"); err != nil {
					t.Errorf("Parse failed: %v", err)
					return
				}
			}
		}(i)
	}
	wg.Wait()
}

func TestParserErrorsAreNotCached(t *testing.T) {
	p := NewParser(&testResolver{}, WithCache(16))

	if _, err := p.Parse(context.Background(), "Home lt Office", "$it"); err == nil {
		t.Fatal("Expected a type mismatch error")
	}
	if p.cache.Len() != 0 {
		t.Errorf("Expected no cached entries after a failed parse, got %d", p.cache.Len())
	}
}
