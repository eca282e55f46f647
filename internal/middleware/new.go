package middleware

import (
	"geonotes/pkg/log"
	"geonotes/pkg/metrics"
)

// HeaderRequestID carries the request ID in both directions.
const HeaderRequestID = "X-Request-ID"

type Middleware struct {
	l       log.Logger
	metrics *metrics.Collector
}

// New builds the middleware set. m may be nil, which disables HTTP metrics.
func New(l log.Logger, m *metrics.Collector) Middleware {
	return Middleware{
		l:       l,
		metrics: m,
	}
}
