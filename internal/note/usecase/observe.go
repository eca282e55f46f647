package usecase

import (
	"context"

	"geonotes/internal/note"
)

func (a *implAggregator) Subscribe(fn note.Observer) (cancel func()) {
	a.obsMu.Lock()
	a.nextObsID++
	id := a.nextObsID
	a.observers[id] = fn
	a.obsMu.Unlock()

	return func() {
		a.obsMu.Lock()
		delete(a.observers, id)
		a.obsMu.Unlock()
	}
}

// publish delivers snap to every observer unless a newer snapshot has already
// gone out. Observers run under obsMu and must not call back into the
// aggregator's mutating methods.
func (a *implAggregator) publish(snap note.Snapshot) {
	a.obsMu.Lock()
	defer a.obsMu.Unlock()

	if snap.Version <= a.delivered {
		return
	}
	a.delivered = snap.Version

	if a.metrics != nil {
		a.metrics.ListSize.Set(float64(snap.Len()))
	}
	for _, fn := range a.observers {
		fn(snap)
	}
}

func (a *implAggregator) Watch(ctx context.Context) <-chan note.Snapshot {
	ch := make(chan note.Snapshot, 1)
	var last uint64

	// push runs under obsMu or before subscription, never concurrently.
	push := func(s note.Snapshot) {
		if s.Version <= last && last != 0 {
			return
		}
		last = s.Version
		select {
		case ch <- s:
		default:
			select {
			case <-ch:
			default:
			}
			ch <- s
		}
	}

	a.obsMu.Lock()
	push(a.Snapshot())
	a.nextObsID++
	id := a.nextObsID
	a.observers[id] = push
	a.obsMu.Unlock()

	go func() {
		<-ctx.Done()
		a.obsMu.Lock()
		delete(a.observers, id)
		a.obsMu.Unlock()
		close(ch)
	}()
	return ch
}
