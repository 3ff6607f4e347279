package core

import (
	"context"
	"time"

	"github.com/vnykmshr/gostream/pkg/metrics"
)

// Instrument returns an operator that records Prometheus metrics for every
// activation of the stream it is applied to: activations, forwarded items,
// completions, failures, open activations and activation lifetime, all
// labeled with the given stream name. A nil registry yields a no-op operator.
func Instrument[T any](reg *metrics.Registry, name string) Operator[T] {
	return func(source Stream[T]) Stream[T] {
		if reg == nil {
			return source
		}
		return New(func(ctx context.Context) (Source[T], error) {
			in, err := source.Open(ctx)
			if err != nil {
				reg.StreamFailures.WithLabelValues(name).Inc()
				return nil, err
			}

			reg.StreamActivations.WithLabelValues(name).Inc()
			reg.StreamActive.WithLabelValues(name).Inc()

			return &instrumentedSource[T]{
				in:      in,
				reg:     reg,
				name:    name,
				started: time.Now(),
			}, nil
		})
	}
}

type instrumentedSource[T any] struct {
	in      *Streamer[T]
	reg     *metrics.Registry
	name    string
	started time.Time
	done    bool
}

func (m *instrumentedSource[T]) Next(ctx context.Context) (T, bool, error) {
	v, ok, err := m.in.Next(ctx)
	switch {
	case err != nil:
		if !m.done {
			m.done = true
			m.reg.StreamFailures.WithLabelValues(m.name).Inc()
		}
	case !ok:
		if !m.done {
			m.done = true
			m.reg.StreamCompletions.WithLabelValues(m.name).Inc()
		}
	default:
		m.reg.ItemsForwarded.WithLabelValues(m.name).Inc()
	}
	return v, ok, err
}

func (m *instrumentedSource[T]) Close() error {
	m.reg.StreamActive.WithLabelValues(m.name).Dec()
	m.reg.StreamDuration.WithLabelValues(m.name).Observe(time.Since(m.started).Seconds())
	return m.in.Close()
}
