package cache

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/shelfscan/backend/internal/domain"
)

type dealKey struct {
	productID string
	retailer  string
	dealURL   string
}

// MemoryDealCache is a thread-safe in-memory deal cache with TTL support.
// Used when no persistent store is configured.
type MemoryDealCache struct {
	data      map[dealKey]domain.CachedDeal
	mutex     sync.RWMutex
	done      chan struct{}
	closeOnce sync.Once
}

// NewMemoryDealCache creates a new in-memory deal cache.
func NewMemoryDealCache() *MemoryDealCache {
	c := &MemoryDealCache{
		data: make(map[dealKey]domain.CachedDeal),
		done: make(chan struct{}),
	}

	// Remove expired entries every 10 minutes
	go c.cleanupExpired()

	return c
}

// Get returns the unexpired deals for a product, cheapest first.
func (c *MemoryDealCache) Get(ctx context.Context, productID string) ([]domain.CachedDeal, error) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	now := time.Now()
	var deals []domain.CachedDeal
	for key, deal := range c.data {
		if key.productID != productID || deal.Expired(now) {
			continue
		}
		deals = append(deals, deal)
	}
	if len(deals) == 0 {
		return nil, domain.ErrCacheMiss
	}

	sortByPrice(deals)
	return deals, nil
}

// Put upserts deals keyed on (product_id, retailer, deal_url). Last write
// wins.
func (c *MemoryDealCache) Put(ctx context.Context, deals []domain.CachedDeal) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	for _, d := range deals {
		c.data[dealKey{d.ProductID, d.Retailer, d.DealURL}] = d
	}
	return nil
}

// Close stops the cleanup goroutine. Safe to call more than once; reads and
// writes remain usable afterwards.
func (c *MemoryDealCache) Close() error {
	c.closeOnce.Do(func() { close(c.done) })
	return nil
}

// Size returns the current number of entries (for debugging/monitoring)
func (c *MemoryDealCache) Size() int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return len(c.data)
}

func (c *MemoryDealCache) cleanupExpired() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.mutex.Lock()
			now := time.Now()
			for key, deal := range c.data {
				if deal.Expired(now) {
					delete(c.data, key)
				}
			}
			c.mutex.Unlock()
		case <-c.done:
			return
		}
	}
}

func sortByPrice(deals []domain.CachedDeal) {
	sort.Slice(deals, func(i, j int) bool {
		return deals[i].Price < deals[j].Price
	})
}
