// Package instrumented decorates a Gateway with Prometheus metrics.
package instrumented

import (
	"context"
	"time"

	"geonotes/internal/model"
	"geonotes/internal/note/repository"
	"geonotes/pkg/metrics"
)

type gateway struct {
	inner   repository.Gateway
	driver  string
	metrics *metrics.Collector
}

// New wraps inner so every call is counted and timed under the driver label.
func New(inner repository.Gateway, driver string, m *metrics.Collector) repository.Gateway {
	return &gateway{inner: inner, driver: driver, metrics: m}
}

func (g *gateway) FetchPage(ctx context.Context, opt repository.FetchPageOptions) (model.Page, error) {
	start := time.Now()
	page, err := g.inner.FetchPage(ctx, opt)
	g.metrics.ObserveGateway("fetch_page", g.driver, start, err)
	return page, err
}

func (g *gateway) Create(ctx context.Context, opt repository.CreateNoteOptions) (string, error) {
	start := time.Now()
	key, err := g.inner.Create(ctx, opt)
	g.metrics.ObserveGateway("create", g.driver, start, err)
	return key, err
}

func (g *gateway) Update(ctx context.Context, n model.Note) error {
	start := time.Now()
	err := g.inner.Update(ctx, n)
	g.metrics.ObserveGateway("update", g.driver, start, err)
	return err
}

func (g *gateway) Delete(ctx context.Context, key string) error {
	start := time.Now()
	err := g.inner.Delete(ctx, key)
	g.metrics.ObserveGateway("delete", g.driver, start, err)
	return err
}

func (g *gateway) GetNote(ctx context.Context, key string) (model.Note, error) {
	start := time.Now()
	n, err := g.inner.GetNote(ctx, key)
	g.metrics.ObserveGateway("get", g.driver, start, err)
	return n, err
}

// Invalidate forwards to the wrapped gateway when it caches reads.
func (g *gateway) Invalidate(key string) {
	if inv, ok := g.inner.(repository.Invalidator); ok {
		inv.Invalidate(key)
	}
}
