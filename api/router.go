// Package api exposes the content audits over HTTP.
package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/seo-optimizer/contentquality/analyzer"
	"github.com/seo-optimizer/contentquality/artifacts"
	"github.com/seo-optimizer/contentquality/logging"
	"github.com/seo-optimizer/contentquality/middleware"
	"github.com/seo-optimizer/contentquality/stats"
)

// AuditPrefix is the route prefix counted as audit traffic in the statistics
const AuditPrefix = "/api/audit"

// maxDocumentSize bounds the raw HTML accepted by the html endpoint
const maxDocumentSize = 5 << 20

type handlers struct {
	analyzer *analyzer.Analyzer
	stats    *logging.Statistics
}

// NewRouter wires the middlewares and routes
func NewRouter(a *analyzer.Analyzer, requests *logging.Statistics, limiter *middleware.RateLimiter) *gin.Engine {
	h := &handlers{analyzer: a, stats: requests}

	r := gin.New()
	r.Use(middleware.RequestTracker(requests, AuditPrefix))
	r.Use(middleware.ErrorHandler())
	r.Use(limiter.RateLimit())
	r.Use(cors())

	api := r.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		api.POST("/audit", h.auditArtifacts)
		api.POST("/audit/html", h.auditHTML)

		api.GET("/statistics", h.statistics)
		api.GET("/cache", func(c *gin.Context) {
			c.JSON(http.StatusOK, h.analyzer.GetCacheStats())
		})
		api.DELETE("/cache", func(c *gin.Context) {
			h.analyzer.ClearCache()
			c.Status(http.StatusNoContent)
		})
	}

	return r
}

func cors() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With, X-Request-ID")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// auditArtifacts scores artifacts gathered by a browser host
func (h *handlers) auditArtifacts(c *gin.Context) {
	var page analyzer.PageArtifacts
	if err := c.ShouldBindJSON(&page); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid page artifacts: " + err.Error(),
		})
		return
	}
	h.respond(c, page)
}

// auditHTML gathers the artifacts from a raw HTML body first
func (h *handlers) auditHTML(c *gin.Context) {
	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxDocumentSize))
	if err != nil {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{
			"error": "Failed to read document: " + err.Error(),
		})
		return
	}

	page, err := artifacts.Gather(string(body), c.Query("url"))
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, artifacts.ErrEmptyDocument) {
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	h.respond(c, page)
}

func (h *handlers) respond(c *gin.Context, page analyzer.PageArtifacts) {
	c.Set(middleware.AuditURLKey, page.URL)

	report, err := h.analyzer.Analyze(page)
	if err != nil {
		log.Error().Err(err).Str("url", page.URL).Msg("Audit failed")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to audit page: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, report)
}

func (h *handlers) statistics(c *gin.Context) {
	usage := h.analyzer.GetStats()
	months := make(map[string]stats.MonthlyStats)
	for _, month := range usage.GetAllMonths() {
		if monthly, ok := usage.GetMonthlyStats(month); ok {
			months[month] = monthly
		}
	}

	result := h.stats.GetStatistics()
	result["usage"] = usage.GetCurrentStats()
	result["usageByMonth"] = months
	c.JSON(http.StatusOK, result)
}
