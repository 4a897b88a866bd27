package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/fitlife-pro/fitlife/internal/log"
)

const (
	allowMethods = "GET, POST, PUT, PATCH, OPTIONS"
	allowHeaders = "Content-Type, Authorization"
)

// cors answers preflights and tags every response with the allowed origin.
func cors(origin string) gin.HandlerFunc {
	if origin == "" {
		origin = "*"
	}
	return func(c *gin.Context) {
		h := c.Writer.Header()
		h.Set("Access-Control-Allow-Origin", origin)
		h.Set("Access-Control-Allow-Methods", allowMethods)
		h.Set("Access-Control-Allow-Headers", allowHeaders)
		if origin != "*" {
			h.Add("Vary", "Origin")
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// requestLogger writes one line per request to the process log.
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		line := "%s %s %d %s"
		args := []interface{}{c.Request.Method, c.Request.URL.Path, status, time.Since(start).Round(time.Millisecond)}
		switch {
		case status >= http.StatusInternalServerError:
			log.Errorf(line, args...)
		case status >= http.StatusBadRequest:
			log.Warnf(line, args...)
		default:
			log.Printf(line, args...)
		}
	}
}

// recovery turns a handler panic into a 500 and keeps the process alive.
func recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Errorf("panic serving %s %s: %v", c.Request.Method, c.Request.URL.Path, recovered)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	})
}
