package api

import (
	"net/http"
	"time"

	"fjacquet/clinic-journal/internal/logging"
	"github.com/gin-gonic/gin"
)

// NewRouter registers the read API under /api/v1.
func NewRouter(h *Handlers) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(h.logger))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := r.Group("/api/v1/years/:year")
	v1.GET("/journal", h.JournalHandler())
	v1.GET("/ledger", h.LedgerHandler())
	v1.GET("/gaps", h.GapsHandler())
	v1.GET("/export/:book", h.ExportHandler())

	return r
}

// requestLogger logs every request at DEBUG.
func requestLogger(logger logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Debug("Request served",
			logging.F("method", c.Request.Method),
			logging.F("path", c.Request.URL.Path),
			logging.F("status", c.Writer.Status()),
			logging.F(logging.FieldDuration, time.Since(start).Milliseconds()))
	}
}
