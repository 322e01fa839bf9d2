package stats

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestStorage(t *testing.T) {
	tempDir := t.TempDir()

	storage, err := NewStorage(tempDir)
	if err != nil {
		t.Fatalf("Failed to create storage: %v", err)
	}

	t.Run("IncrementStats", func(t *testing.T) {
		storage.IncrementStats(1, 2, 3)
		stats := storage.GetCurrentStats()

		if stats.CacheHits != 1 {
			t.Errorf("Expected 1 cache hit, got %d", stats.CacheHits)
		}
		if stats.CacheMisses != 2 {
			t.Errorf("Expected 2 cache misses, got %d", stats.CacheMisses)
		}
		if stats.ReadabilityFailures != 3 {
			t.Errorf("Expected 3 readability failures, got %d", stats.ReadabilityFailures)
		}
	})

	t.Run("Cleanup", func(t *testing.T) {
		oldMonth := time.Now().AddDate(0, -2, 0).Format("2006-01")
		storage.mutex.Lock()
		storage.stats[oldMonth] = &MonthlyStats{
			CacheHits:   100,
			LastUpdated: time.Now().AddDate(0, -2, 0),
		}
		storage.mutex.Unlock()

		storage.Cleanup(1)

		if _, exists := storage.GetMonthlyStats(oldMonth); exists {
			t.Error("Old stats should have been cleaned up")
		}
		if _, exists := storage.GetMonthlyStats(getCurrentMonth()); !exists {
			t.Error("Current month should have been kept")
		}
	})

	t.Run("ConcurrentAccess", func(t *testing.T) {
		before := storage.GetCurrentStats()

		done := make(chan bool)
		for i := 0; i < 10; i++ {
			go func() {
				for j := 0; j < 100; j++ {
					storage.IncrementStats(1, 1, 0)
					storage.GetCurrentStats()
				}
				done <- true
			}()
		}
		for i := 0; i < 10; i++ {
			<-done
		}

		stats := storage.GetCurrentStats()
		if got := stats.CacheHits - before.CacheHits; got != 1000 {
			t.Errorf("Expected 1000 new cache hits, got %d", got)
		}
		if got := stats.CacheMisses - before.CacheMisses; got != 1000 {
			t.Errorf("Expected 1000 new cache misses, got %d", got)
		}
	})

	t.Run("Persistence", func(t *testing.T) {
		want := storage.GetCurrentStats()
		if err := storage.Shutdown(); err != nil {
			t.Fatalf("Failed to shut down storage: %v", err)
		}

		info, err := os.Stat(filepath.Join(tempDir, "stats.json"))
		if err != nil {
			t.Fatalf("Failed to stat file: %v", err)
		}
		if info.Size() > 1024 {
			t.Errorf("File size too large: %d bytes", info.Size())
		}

		storage2, err := NewStorage(tempDir)
		if err != nil {
			t.Fatalf("Failed to create second storage: %v", err)
		}
		defer storage2.Shutdown()

		stats := storage2.GetCurrentStats()
		if stats.CacheHits != want.CacheHits {
			t.Errorf("Expected %d cache hits after reload, got %d", want.CacheHits, stats.CacheHits)
		}
	})
}

func TestGetAllMonths(t *testing.T) {
	storage, err := NewStorage(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create storage: %v", err)
	}
	defer storage.Shutdown()

	storage.stats["2024-01"] = &MonthlyStats{}
	storage.stats["2024-03"] = &MonthlyStats{}
	storage.stats["2023-12"] = &MonthlyStats{}

	months := storage.GetAllMonths()
	want := []string{"2024-03", "2024-01", "2023-12"}
	if len(months) != len(want) {
		t.Fatalf("Expected %d months, got %d", len(want), len(months))
	}
	for i := range want {
		if months[i] != want[i] {
			t.Errorf("Expected month %s at %d, got %s", want[i], i, months[i])
		}
	}
}

func TestShutdownIsIdempotent(t *testing.T) {
	storage, err := NewStorage(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create storage: %v", err)
	}

	if err := storage.Shutdown(); err != nil {
		t.Fatalf("First shutdown failed: %v", err)
	}
	if err := storage.Shutdown(); err != nil {
		t.Fatalf("Second shutdown failed: %v", err)
	}
}
