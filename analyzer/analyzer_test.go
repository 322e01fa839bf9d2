package analyzer

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAnalyzer(t *testing.T) *Analyzer {
	t.Helper()
	a, err := New(t.TempDir(), Options{})
	require.NoError(t, err)
	t.Cleanup(func() { a.Shutdown() })
	return a
}

func samplePage() PageArtifacts {
	var body strings.Builder
	body.WriteString("<main><h1>Brewing Coffee at Home</h1>")
	for i := 0; i < 40; i++ {
		body.WriteString("<p>Good coffee starts with fresh beans. Grind them just before you brew. ")
		body.WriteString("Use clean water and a steady hand.</p>")
		if i%10 == 0 {
			body.WriteString(fmt.Sprintf("<h2>Step %d</h2>", i/10+1))
		}
	}
	body.WriteString("<script>var tracking = '<img>';</script></main>")

	return PageArtifacts{
		URL:          "https://example.com/coffee",
		MainContent:  body.String(),
		Title:        "Brewing Coffee at Home",
		MetaElements: []MetaElement{{Name: "Description", Content: "How to brew great coffee"}},
		Headings:     headings("H1", "H2", "H2", "H2", "H2"),
		Images:       visibleImages(8),
	}
}

func TestEvaluate_FullPage(t *testing.T) {
	report := Evaluate(samplePage(), DefaultThresholds())

	require.Len(t, report.Audits, 5)
	ids := make([]string, 0, len(report.Audits))
	for _, audit := range report.Audits {
		ids = append(ids, audit.ID)
	}
	assert.Equal(t, []string{ContentLengthID, ReadingLevelID, KeywordCheckID, HeadingCheckID, ImageTextRatioID}, ids)

	for _, audit := range report.Audits {
		assert.False(t, audit.NotApplicable, audit.ID)
		require.NotNil(t, audit.Score, audit.ID)
		assert.GreaterOrEqual(t, *audit.Score, 0.0, audit.ID)
		assert.LessOrEqual(t, *audit.Score, 1.0, audit.ID)
	}

	heading, ok := report.Audit(HeadingCheckID)
	require.True(t, ok)
	assert.Equal(t, 1.0, *heading.Score)

	keyword, ok := report.Audit(KeywordCheckID)
	require.True(t, ok)
	assert.Contains(t, keyword.DisplayValue, "from title")

	require.NotNil(t, report.Score)
	assert.Equal(t, "https://example.com/coffee", report.URL)
	assert.Equal(t, "Content Quality", report.Category.Title)
	assert.Len(t, report.Groups, 4)
}

func TestEvaluate_EmptyArtifacts(t *testing.T) {
	report := Evaluate(PageArtifacts{}, DefaultThresholds())

	require.Len(t, report.Audits, 5)

	length, _ := report.Audit(ContentLengthID)
	assert.Equal(t, 0.0, *length.Score)

	reading, _ := report.Audit(ReadingLevelID)
	assert.True(t, reading.NotApplicable)

	keyword, _ := report.Audit(KeywordCheckID)
	assert.True(t, keyword.NotApplicable)

	heading, _ := report.Audit(HeadingCheckID)
	assert.Equal(t, 0.0, *heading.Score)

	ratio, _ := report.Audit(ImageTextRatioID)
	assert.True(t, ratio.NotApplicable)

	require.NotNil(t, report.Score)
	assert.Equal(t, 0.0, *report.Score)
	assert.Len(t, report.Recommendations, 2)
}

func TestEvaluate_Deterministic(t *testing.T) {
	page := samplePage()
	first := Evaluate(page, DefaultThresholds())
	second := Evaluate(page, DefaultThresholds())

	assert.Equal(t, first, second)
}

func TestEvaluate_FallsBackToRawHTML(t *testing.T) {
	page := PageArtifacts{RawHTML: "<body><p>" + strings.Repeat("word ", 300) + "</p></body>"}
	report := Evaluate(page, DefaultThresholds())

	length, _ := report.Audit(ContentLengthID)
	assert.Equal(t, 0.5, *length.Score)
}

func TestCalculateCategoryScore(t *testing.T) {
	assert.Nil(t, calculateCategoryScore(nil))
	assert.Nil(t, calculateCategoryScore([]MetricScore{notApplicable(ReadingLevelID, "skip")}))

	score := calculateCategoryScore([]MetricScore{
		newScore(ContentLengthID, float(1)),
		newScore(HeadingCheckID, float(0.5)),
		notApplicable(ImageTextRatioID, "skip"),
	})
	require.NotNil(t, score)
	assert.Equal(t, 0.75, *score)
}

func TestGenerateRecommendations(t *testing.T) {
	failing := newScore(HeadingCheckID, float(0.6))
	explained := newScore(ImageTextRatioID, float(0.5))
	explained.Explanation = "Try adding more images"

	recommendations := generateRecommendations([]MetricScore{
		newScore(ContentLengthID, float(1)),
		failing,
		notApplicable(ReadingLevelID, "Not enough text to check"),
		explained,
	})

	meta, _ := Meta(HeadingCheckID)
	assert.Equal(t, []string{meta.Description, "Try adding more images"}, recommendations)
}

func TestAnalyze_CachesReports(t *testing.T) {
	a := newTestAnalyzer(t)
	page := samplePage()

	assert.False(t, a.IsCached(page))

	first, err := a.Analyze(page)
	require.NoError(t, err)
	assert.True(t, a.IsCached(page))

	second, err := a.Analyze(page)
	require.NoError(t, err)
	assert.Same(t, first, second)

	stats := a.GetCacheStats()
	assert.Equal(t, 1, stats.Entries)
	assert.Equal(t, 1, stats.Hits)
	assert.Equal(t, 1, stats.Misses)

	other := page
	other.Title = "Something else"
	assert.False(t, a.IsCached(other))
}

func TestAnalyze_CountsReadabilityFailures(t *testing.T) {
	a := newTestAnalyzer(t)

	_, err := a.Analyze(PageArtifacts{MainContent: strings.Repeat("1234 ", 60)})
	require.NoError(t, err)

	assert.Equal(t, 1, a.GetStats().GetCurrentStats().ReadabilityFailures)
}

func TestCachePurging(t *testing.T) {
	a := newTestAnalyzer(t)
	a.SetCacheTTL(50 * time.Millisecond)

	page := samplePage()
	_, err := a.Analyze(page)
	require.NoError(t, err)
	require.True(t, a.IsCached(page), "report should be cached immediately after analysis")

	time.Sleep(100 * time.Millisecond)

	assert.False(t, a.IsCached(page), "report should not be cached after TTL expiration")

	a.cleanup()
	assert.Equal(t, 0, a.GetCacheStats().Entries)
}

func TestMaxCacheSize(t *testing.T) {
	a := newTestAnalyzer(t)

	for i := 0; i < 5; i++ {
		page := samplePage()
		page.URL = fmt.Sprintf("https://example.com/%d", i)
		_, err := a.Analyze(page)
		require.NoError(t, err)
	}
	assert.Equal(t, 5, a.GetCacheStats().Entries)

	a.SetMaxCacheSize(2)
	assert.Equal(t, 2, a.GetCacheStats().Entries)

	a.ClearCache()
	assert.Equal(t, 0, a.GetCacheStats().Entries)
}

func TestConcurrentCacheAccess(t *testing.T) {
	a := newTestAnalyzer(t)
	page := samplePage()

	concurrency := 50
	var wg sync.WaitGroup
	errChan := make(chan error, concurrency)

	for i := 0; i < concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if i%2 == 0 {
				if _, err := a.Analyze(page); err != nil {
					errChan <- fmt.Errorf("analyze error: %w", err)
				}
			} else {
				a.IsCached(page)
			}
		}()
	}

	wg.Wait()
	close(errChan)

	for err := range errChan {
		t.Errorf("Concurrent access error: %v", err)
	}
	assert.Equal(t, 1, a.GetCacheStats().Entries)
}

func TestShutdownTwice(t *testing.T) {
	a, err := New(t.TempDir(), Options{})
	require.NoError(t, err)

	assert.NoError(t, a.Shutdown())
	assert.NoError(t, a.Shutdown())
}

func TestNew_PrunesOldUsageMonths(t *testing.T) {
	dir := t.TempDir()
	current := time.Now().Format("2006-01")
	data := fmt.Sprintf(`{"2001-01":{"cache_hits":5},%q:{"cache_hits":2}}`, current)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "stats.json"), []byte(data), 0644))

	a, err := New(dir, Options{RetainMonths: 3})
	require.NoError(t, err)
	t.Cleanup(func() { a.Shutdown() })

	assert.Equal(t, []string{current}, a.GetStats().GetAllMonths())
	assert.Equal(t, 2, a.GetStats().GetCurrentStats().CacheHits)
}

func TestDefaultOptions_RetainsAYear(t *testing.T) {
	assert.Equal(t, 12, DefaultOptions().RetainMonths)
}
