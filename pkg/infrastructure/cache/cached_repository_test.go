package cache

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/vsinha/moldplan/pkg/domain/entities"
	"github.com/vsinha/moldplan/pkg/infrastructure/repositories/memory"
	testhelpers "github.com/vsinha/moldplan/pkg/infrastructure/testing"
)

// countingSource records how often reads reach the backing store
type countingSource struct {
	*memory.Store
	partReads  atomic.Int32
	stockReads atomic.Int32
}

func (s *countingSource) GetParts(ctx context.Context, machineID string) ([]*entities.Part, error) {
	s.partReads.Add(1)
	return s.Store.GetParts(ctx, machineID)
}

func (s *countingSource) GetStock(ctx context.Context, parts []entities.PartNumber) ([]*entities.StockRecord, error) {
	s.stockReads.Add(1)
	return s.Store.GetStock(ctx, parts)
}

func TestCachedRepository_ReadThrough(t *testing.T) {
	ctx := context.Background()
	client, cleanup := testhelpers.SetupRedisContainer(ctx, t)
	defer cleanup()

	source := &countingSource{Store: testhelpers.BuildPressShopTestData()}
	repo := NewCachedRepository(source, client, time.Minute, nil)

	first, err := repo.GetParts(ctx, testhelpers.PressShopMachine)
	if err != nil {
		t.Fatalf("GetParts failed: %v", err)
	}
	second, err := repo.GetParts(ctx, testhelpers.PressShopMachine)
	if err != nil {
		t.Fatalf("GetParts failed: %v", err)
	}

	if got := source.partReads.Load(); got != 1 {
		t.Errorf("Expected 1 source read, got %d", got)
	}
	if len(first) != 3 || len(second) != 3 {
		t.Fatalf("Expected 3 parts from both reads, got %d and %d", len(first), len(second))
	}
	if second[0].PartNumber != first[0].PartNumber || second[0].CycleTimeSeconds != first[0].CycleTimeSeconds {
		t.Errorf("Expected cached part to round-trip, got %+v", second[0])
	}

	if err := repo.Invalidate(ctx); err != nil {
		t.Fatalf("Invalidate failed: %v", err)
	}
	if _, err := repo.GetParts(ctx, testhelpers.PressShopMachine); err != nil {
		t.Fatalf("GetParts failed: %v", err)
	}
	if got := source.partReads.Load(); got != 2 {
		t.Errorf("Expected a source read after invalidation, got %d reads", got)
	}
}

func TestCachedRepository_StockKeyIgnoresOrder(t *testing.T) {
	ctx := context.Background()
	client, cleanup := testhelpers.SetupRedisContainer(ctx, t)
	defer cleanup()

	source := &countingSource{Store: testhelpers.BuildPressShopTestData()}
	repo := NewCachedRepository(source, client, time.Minute, nil)

	a, err := repo.GetStock(ctx, []entities.PartNumber{"BRK-100", "CVR-200"})
	if err != nil {
		t.Fatalf("GetStock failed: %v", err)
	}
	b, err := repo.GetStock(ctx, []entities.PartNumber{"CVR-200", "BRK-100"})
	if err != nil {
		t.Fatalf("GetStock failed: %v", err)
	}

	if got := source.stockReads.Load(); got != 1 {
		t.Errorf("Expected reordered part list to hit the cache, got %d source reads", got)
	}
	if len(a) != len(b) {
		t.Fatalf("Expected identical stock rows, got %d and %d", len(a), len(b))
	}
	for i := range a {
		if !a[i].Total().Equal(b[i].Total()) {
			t.Errorf("Row %d: expected total %s, got %s", i, a[i].Total(), b[i].Total())
		}
	}
}

func TestCachedRepository_FallsBackWhenRedisDown(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()

	source := &countingSource{Store: testhelpers.BuildPressShopTestData()}
	repo := NewCachedRepository(source, client, 0, nil)

	parts, err := repo.GetParts(context.Background(), testhelpers.PressShopMachine)
	if err != nil {
		t.Fatalf("Expected read to succeed without redis, got %v", err)
	}
	if len(parts) != 3 {
		t.Errorf("Expected 3 parts from the source, got %d", len(parts))
	}
	if repo.ttl != DefaultTTL {
		t.Errorf("Expected default TTL %v, got %v", DefaultTTL, repo.ttl)
	}
}

func TestPartsDigest_OrderIndependent(t *testing.T) {
	a := partsDigest([]entities.PartNumber{"A", "B", "C"})
	b := partsDigest([]entities.PartNumber{"C", "A", "B"})
	c := partsDigest([]entities.PartNumber{"A", "B"})

	if a != b {
		t.Errorf("Expected same digest for reordered parts, got %s and %s", a, b)
	}
	if a == c {
		t.Error("Expected different digest for different part sets")
	}
}
