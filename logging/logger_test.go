package logging

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestStatistics(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "statistics_test")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tempDir)

	t.Run("TrackAudit", func(t *testing.T) {
		s := Initialize(tempDir)
		s.TrackVisitor("10.0.0.1")
		s.TrackVisitor("10.0.0.1")
		s.TrackVisitor("10.0.0.2")
		s.TrackAudit("https://example.com/post?utm=1", 100, false)
		s.TrackAudit("https://example.com/post/", 300, true)
		s.TrackAudit("http://localhost:3000/page", 200, false)

		if got := s.GetUniqueVisitorsCount(); got != 2 {
			t.Errorf("Expected 2 unique visitors, got %d", got)
		}
		if got := s.TotalRequests(); got != 3 {
			t.Errorf("Expected 3 requests, got %d", got)
		}
		if got := s.AverageLoadTime; got != 200 {
			t.Errorf("Expected average load time 200, got %v", got)
		}
		rate := s.GetErrorRate()
		if rate < 33.3 || rate > 33.4 {
			t.Errorf("Expected error rate ~33.3, got %v", rate)
		}
		popular := s.GetPopularURLs(5)
		if len(popular) != 1 || popular["https://example.com/post"] != 2 {
			t.Errorf("Unexpected popular URLs: %v", popular)
		}
	})

	t.Run("OldVisitorsExpire", func(t *testing.T) {
		s := Initialize(t.TempDir())
		s.UniqueVisitors["10.0.0.9"] = time.Now().Add(-48 * time.Hour)
		if got := s.GetUniqueVisitorsCount(); got != 0 {
			t.Errorf("Expected 0 recent visitors, got %d", got)
		}
	})

	t.Run("Persistence", func(t *testing.T) {
		s := Initialize(tempDir)
		s.TrackAudit("https://example.org", 50, false)
		if err := s.Save(); err != nil {
			t.Fatalf("Failed to save statistics: %v", err)
		}
		if _, err := os.Stat(filepath.Join(tempDir, statisticsFile)); err != nil {
			t.Fatalf("Statistics file missing: %v", err)
		}

		reloaded := Initialize(tempDir)
		if got := reloaded.TotalRequests(); got != s.TotalRequests() {
			t.Errorf("Expected %d requests after reload, got %d", s.TotalRequests(), got)
		}
		if reloaded.GetPopularURLs(5)["https://example.org"] != 1 {
			t.Errorf("Popular URL not restored: %v", reloaded.GetPopularURLs(5))
		}
	})

	t.Run("DevModeShowsPopularURLs", func(t *testing.T) {
		s := Initialize(t.TempDir())
		s.TrackAudit("https://example.net/a", 10, false)

		t.Setenv(ENV_DEV_MODE, "false")
		if _, ok := s.GetStatistics()["popularUrls"]; ok {
			t.Error("popularUrls should be hidden outside development mode")
		}

		t.Setenv(ENV_DEV_MODE, "true")
		if _, ok := s.GetStatistics()["popularUrls"]; !ok {
			t.Error("popularUrls should be shown in development mode")
		}
	})
}

func TestSetup(t *testing.T) {
	if err := Setup("debug", false); err != nil {
		t.Fatalf("Setup failed: %v", err)
	}
	if err := Setup("", true); err != nil {
		t.Fatalf("Setup with default level failed: %v", err)
	}
	if err := Setup("shouting", false); err == nil {
		t.Error("Expected an error for an unknown level")
	}
}
