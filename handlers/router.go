package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"student-aid-matcher/logger"
)

// NewRouter wires the API routes
func NewRouter(h *APIHandler, log *logger.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), RequestLogger(log))

	api := router.Group("/api")
	{
		api.GET("/categories", h.GetCategories)
		api.POST("/files/validate", h.ValidateFile)

		// Matching routes
		api.POST("/matches", h.FindMatches)
		api.POST("/statistics", h.GetStatistics)
		api.POST("/query", h.Query)

		// Result table routes
		api.GET("/sessions", h.ListSessions)
		api.GET("/sessions/:sessionId/matches", h.GetSessionMatches)
		api.DELETE("/sessions/:sessionId", h.DeleteSession)

		api.POST("/export", h.Export)

		api.GET("/ping", PingHandler)
	}
	return router
}

// RequestLogger logs one line per request
func RequestLogger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []interface{}{
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"latency", time.Since(start),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, "errors", c.Errors.String())
		}
		if c.Writer.Status() >= 500 {
			log.Error("request", fields...)
			return
		}
		log.Info("request", fields...)
	}
}
