package analyzer

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/seo-optimizer/contentquality/stats"
	"github.com/seo-optimizer/contentquality/textanalyzer"
	"golang.org/x/sync/errgroup"
	"lukechampine.com/blake3"
)

// Cache entry with expiration
type cacheEntry struct {
	report    *Report
	timestamp time.Time
}

// CacheStats provides statistics about the analyzer's cache
type CacheStats struct {
	Entries     int           `json:"entries"`
	Hits        int           `json:"hits"`
	Misses      int           `json:"misses"`
	TTL         time.Duration `json:"ttl"`
	MaxEntries  int           `json:"maxEntries"`
	LastCleanup time.Time     `json:"lastCleanup"`
}

// Options tunes the analyzer cache and the scoring curves
type Options struct {
	CacheTTL        time.Duration
	MaxCacheSize    int
	CleanupInterval time.Duration
	RetainMonths    int // months of usage counters kept by the cleanup
	Thresholds      Thresholds
}

// DefaultOptions returns the options New uses when given zero values
func DefaultOptions() Options {
	return Options{
		CacheTTL:        30 * time.Minute,
		MaxCacheSize:    1000,
		CleanupInterval: 5 * time.Minute,
		RetainMonths:    12,
		Thresholds:      DefaultThresholds(),
	}
}

// Analyzer runs the content audits on page artifacts and caches the reports
type Analyzer struct {
	cache           map[string]cacheEntry
	cacheMutex      sync.RWMutex
	cacheTTL        time.Duration
	maxCacheSize    int
	lastCleanup     time.Time
	cleanupInterval time.Duration
	retainMonths    int
	thresholds      Thresholds
	stats           *stats.Storage
	done            chan struct{}
	shutdownOnce    sync.Once
}

// New creates a new Analyzer instance
func New(dataDir string, opts Options) (*Analyzer, error) {
	defaults := DefaultOptions()
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = defaults.CacheTTL
	}
	if opts.MaxCacheSize <= 0 {
		opts.MaxCacheSize = defaults.MaxCacheSize
	}
	if opts.CleanupInterval <= 0 {
		opts.CleanupInterval = defaults.CleanupInterval
	}
	if opts.RetainMonths <= 0 {
		opts.RetainMonths = defaults.RetainMonths
	}
	if opts.Thresholds == (Thresholds{}) {
		opts.Thresholds = defaults.Thresholds
	}

	statsStorage, err := stats.NewStorage(dataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize stats storage: %w", err)
	}

	analyzer := &Analyzer{
		cache:           make(map[string]cacheEntry),
		cacheTTL:        opts.CacheTTL,
		maxCacheSize:    opts.MaxCacheSize,
		cleanupInterval: opts.CleanupInterval,
		retainMonths:    opts.RetainMonths,
		lastCleanup:     time.Now(),
		thresholds:      opts.Thresholds,
		stats:           statsStorage,
		done:            make(chan struct{}),
	}

	statsStorage.Cleanup(analyzer.retainMonths)
	go analyzer.periodicCleanup()

	return analyzer, nil
}

// periodicCleanup removes expired cache entries and old usage counters
// until Shutdown
func (a *Analyzer) periodicCleanup() {
	ticker := time.NewTicker(a.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.cleanup()
			a.stats.Cleanup(a.retainMonths)
		case <-a.done:
			return
		}
	}
}

// cleanup removes expired entries and enforces the size limit
func (a *Analyzer) cleanup() {
	a.cacheMutex.Lock()
	defer a.cacheMutex.Unlock()
	a.cleanupLocked()
}

func (a *Analyzer) cleanupLocked() {
	now := time.Now()

	for key, entry := range a.cache {
		if now.Sub(entry.timestamp) > a.cacheTTL {
			delete(a.cache, key)
		}
	}

	// Still over the limit: drop the oldest entries
	if len(a.cache) > a.maxCacheSize {
		type keyed struct {
			key       string
			timestamp time.Time
		}
		entries := make([]keyed, 0, len(a.cache))
		for key, entry := range a.cache {
			entries = append(entries, keyed{key, entry.timestamp})
		}

		sort.Slice(entries, func(i, j int) bool {
			return entries[i].timestamp.Before(entries[j].timestamp)
		})

		for i := 0; i < len(entries)-a.maxCacheSize; i++ {
			delete(a.cache, entries[i].key)
		}
	}

	a.lastCleanup = now
}

// SetMaxCacheSize sets the maximum number of cached reports
func (a *Analyzer) SetMaxCacheSize(size int) {
	a.cacheMutex.Lock()
	defer a.cacheMutex.Unlock()
	a.maxCacheSize = size
	a.cleanupLocked()
}

// SetCacheTTL sets the cache TTL
func (a *Analyzer) SetCacheTTL(ttl time.Duration) {
	a.cacheMutex.Lock()
	defer a.cacheMutex.Unlock()
	a.cacheTTL = ttl
}

// ClearCache clears the report cache
func (a *Analyzer) ClearCache() {
	a.cacheMutex.Lock()
	defer a.cacheMutex.Unlock()
	a.cache = make(map[string]cacheEntry)
}

// generateCacheKey hashes the canonical JSON form of the artifacts
func generateCacheKey(page PageArtifacts) (string, error) {
	data, err := json.Marshal(page)
	if err != nil {
		return "", fmt.Errorf("failed to encode artifacts: %w", err)
	}
	hash := blake3.Sum256(data)
	return hex.EncodeToString(hash[:]), nil
}

// GetCacheStats returns statistics about the cache
func (a *Analyzer) GetCacheStats() CacheStats {
	current := a.stats.GetCurrentStats()

	a.cacheMutex.RLock()
	defer a.cacheMutex.RUnlock()

	return CacheStats{
		Entries:     len(a.cache),
		Hits:        current.CacheHits,
		Misses:      current.CacheMisses,
		TTL:         a.cacheTTL,
		MaxEntries:  a.maxCacheSize,
		LastCleanup: a.lastCleanup,
	}
}

// IsCached checks if a report for the artifacts is cached and not expired
func (a *Analyzer) IsCached(page PageArtifacts) bool {
	cacheKey, err := generateCacheKey(page)
	if err != nil {
		return false
	}

	a.cacheMutex.RLock()
	defer a.cacheMutex.RUnlock()

	entry, found := a.cache[cacheKey]
	return found && time.Since(entry.timestamp) < a.cacheTTL
}

// Analyze runs every audit on the page, serving repeated pages from cache
func (a *Analyzer) Analyze(page PageArtifacts) (*Report, error) {
	cacheKey, err := generateCacheKey(page)
	if err != nil {
		return nil, err
	}

	a.cacheMutex.RLock()
	if entry, found := a.cache[cacheKey]; found && time.Since(entry.timestamp) < a.cacheTTL {
		a.cacheMutex.RUnlock()
		a.stats.IncrementStats(1, 0, 0)
		return entry.report, nil
	}
	a.cacheMutex.RUnlock()

	report := a.Evaluate(page)

	readabilityFailures := 0
	if audit, ok := report.Audit(ReadingLevelID); ok && audit.ErrorMessage != "" {
		readabilityFailures = 1
	}
	a.stats.IncrementStats(0, 1, readabilityFailures)

	a.cacheMutex.Lock()
	a.cache[cacheKey] = cacheEntry{
		report:    report,
		timestamp: time.Now(),
	}
	if len(a.cache) > a.maxCacheSize {
		a.cleanupLocked()
	}
	a.cacheMutex.Unlock()

	return report, nil
}

// Evaluate runs the audits without touching the cache
func (a *Analyzer) Evaluate(page PageArtifacts) *Report {
	return Evaluate(page, a.thresholds)
}

// Evaluate runs every audit on page with the given thresholds. The audits
// share the extracted text but are otherwise independent, so they run
// concurrently.
func Evaluate(page PageArtifacts, t Thresholds) *Report {
	text := textanalyzer.GetMainText(page.ContentMarkup())
	textLength := textanalyzer.TextLength(text)
	description := page.MetaContent("description")

	runs := []func() MetricScore{
		func() MetricScore { return ContentLength(text, t.ContentLength) },
		func() MetricScore { return ReadingLevel(text, t.Readability) },
		func() MetricScore { return KeywordCheck(text, page.Title, description, t.Keywords) },
		func() MetricScore { return HeadingCheck(page.Headings) },
		func() MetricScore { return ImageTextRatio(page.Images, textLength, t.ImageRatio) },
	}

	results := make([]MetricScore, len(runs))
	var g errgroup.Group
	for i, run := range runs {
		g.Go(func() error {
			results[i] = run()
			return nil
		})
	}
	// Audits report problems in their results, never as errors
	_ = g.Wait()

	report := BuildReport(page.URL, results)
	log.Debug().
		Str("url", page.URL).
		Int("text_length", textLength).
		Int("audits", len(report.Audits)).
		Msg("Content audits completed")
	return report
}

// GetStats returns the statistics storage instance
func (a *Analyzer) GetStats() *stats.Storage {
	return a.stats
}

// Shutdown stops the cleanup goroutine and saves the statistics
func (a *Analyzer) Shutdown() error {
	if a == nil {
		return nil
	}

	var err error
	a.shutdownOnce.Do(func() {
		close(a.done)

		if a.stats != nil {
			if serr := a.stats.Shutdown(); serr != nil {
				err = fmt.Errorf("failed to shutdown stats storage: %w", serr)
			}
		}

		a.ClearCache()
	})
	return err
}
