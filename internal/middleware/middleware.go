package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"geonotes/pkg/log"
	"geonotes/pkg/response"
)

// RequestID reuses the caller's X-Request-ID or mints one, and stores it in
// the request context for the logger.
func (m Middleware) RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if id == "" {
			id = uuid.NewString()
		}

		c.Request = c.Request.WithContext(log.WithRequestID(c.Request.Context(), id))
		c.Header(HeaderRequestID, id)
		c.Next()
	}
}

// AccessLog writes one line per request.
func (m Middleware) AccessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		started := time.Now()
		c.Next()

		ctx := c.Request.Context()
		status := c.Writer.Status()
		route := routeOf(c)
		elapsed := time.Since(started)

		switch {
		case status >= http.StatusInternalServerError:
			m.l.Errorf(ctx, "http: %s %s %d %s", c.Request.Method, route, status, elapsed)
		case status >= http.StatusBadRequest:
			m.l.Warnf(ctx, "http: %s %s %d %s", c.Request.Method, route, status, elapsed)
		default:
			m.l.Debugf(ctx, "http: %s %s %d %s", c.Request.Method, route, status, elapsed)
		}
	}
}

// Metrics records request counts and latency per route template.
func (m Middleware) Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		if m.metrics == nil {
			c.Next()
			return
		}

		started := time.Now()
		c.Next()
		m.metrics.ObserveHTTP(c.Request.Method, routeOf(c), c.Writer.Status(), started)
	}
}

// Recovery turns a panic into a 500 envelope and logs it.
func (m Middleware) Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				m.l.Errorf(c.Request.Context(), "http: panic on %s %s: %v", c.Request.Method, routeOf(c), r)
				response.InternalError(c, nil)
				c.Abort()
			}
		}()
		c.Next()
	}
}

// routeOf returns the route template so label cardinality stays bounded.
func routeOf(c *gin.Context) string {
	if route := c.FullPath(); route != "" {
		return route
	}
	return "unmatched"
}
