package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/seo-optimizer/contentquality/logging"
)

const (
	// RequestIDKey is the gin context key holding the request ID
	RequestIDKey = "request_id"
	// RequestIDHeader carries the request ID in both directions
	RequestIDHeader = "X-Request-ID"
	// AuditURLKey lets handlers report the audited page URL
	AuditURLKey = "audit_url"

	saveEvery = 100
)

// RequestTracker assigns a request ID, writes an access log line and records
// visitor and audit statistics. Requests whose path starts with auditPrefix
// and use POST count as audits.
func RequestTracker(stats *logging.Statistics, auditPrefix string) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		requestID := c.GetHeader(RequestIDHeader)
		if _, err := uuid.Parse(requestID); err != nil {
			requestID = uuid.NewString()
		}
		c.Set(RequestIDKey, requestID)
		c.Header(RequestIDHeader, requestID)

		// Track unique visitor
		stats.TrackVisitor(c.ClientIP())

		c.Next()

		elapsed := time.Since(start)
		status := c.Writer.Status()

		log.Info().
			Str("request_id", requestID).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", status).
			Dur("latency", elapsed).
			Str("ip", c.ClientIP()).
			Msg("Request handled")

		if c.Request.Method != http.MethodPost || !strings.HasPrefix(c.FullPath(), auditPrefix) {
			return
		}

		loadTime := float64(elapsed.Milliseconds())
		stats.TrackAudit(c.GetString(AuditURLKey), loadTime, status >= 400)

		// Periodically save statistics
		if stats.TotalRequests()%saveEvery == 0 {
			go func() {
				if err := stats.Save(); err != nil {
					log.Error().Err(err).Msg("Failed to save statistics")
				}
			}()
		}
	}
}
