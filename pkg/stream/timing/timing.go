package timing

import (
	"context"
	stderrors "errors"
	"time"

	"golang.org/x/time/rate"

	ctxutil "github.com/vnykmshr/gostream/pkg/common/context"
	gserrors "github.com/vnykmshr/gostream/pkg/common/errors"
	"github.com/vnykmshr/gostream/pkg/common/validation"
	"github.com/vnykmshr/gostream/pkg/metrics"
	"github.com/vnykmshr/gostream/pkg/stream/core"
)

// Option configures a timing operator.
type Option func(*options)

type options struct {
	reg  *metrics.Registry
	name string
}

// WithMetrics records elapsed deadlines for the operator on the given
// registry, labeled with the stream name. A nil registry is a no-op.
func WithMetrics(reg *metrics.Registry, name string) Option {
	return func(o *options) {
		o.reg = reg
		o.name = name
	}
}

func applyOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Delay postpones the activation of the stream by d. The upstream source is
// not opened until the delay has elapsed, so side effects of activation are
// postponed as well. A negative d is a configuration error.
func Delay[T any](s core.Stream[T], d time.Duration) core.Stream[T] {
	return DelayOp[T](d)(s)
}

// DelayOp is the pipe form of Delay.
func DelayOp[T any](d time.Duration) core.Operator[T] {
	return func(source core.Stream[T]) core.Stream[T] {
		return core.New(func(ctx context.Context) (core.Source[T], error) {
			if d < 0 {
				return nil, validation.PositiveDuration("delay", "duration", int64(d))
			}

			var in *core.Streamer[T]
			return core.NewSource(func(ctx context.Context) (T, bool, error) {
				var zero T
				if in == nil {
					if err := ctxutil.Sleep(ctx, d); err != nil {
						return zero, false, err
					}
					st, err := source.Open(ctx)
					if err != nil {
						return zero, false, err
					}
					in = st
				}
				return in.Next(ctx)
			}, func() error {
				if in == nil {
					return nil
				}
				return in.Close()
			}), nil
		})
	}
}

// Timeout fails the stream with errors.ErrTimeout if the source takes
// longer than d to produce its next element. On timeout the source is
// released before the error is returned; any release failure is attached to
// the timeout error. A non-positive d is a configuration error.
func Timeout[T any](s core.Stream[T], d time.Duration, opts ...Option) core.Stream[T] {
	return TimeoutOp[T](d, opts...)(s)
}

// TimeoutOp is the pipe form of Timeout.
func TimeoutOp[T any](d time.Duration, opts ...Option) core.Operator[T] {
	return func(source core.Stream[T]) core.Stream[T] {
		return core.New(func(ctx context.Context) (core.Source[T], error) {
			if err := validation.PositiveDuration("timeout", "duration", int64(d)); err != nil {
				return nil, err
			}
			o := applyOptions(opts)

			in, err := source.Open(ctx)
			if err != nil {
				return nil, err
			}

			released := false
			release := func() error {
				if released {
					return nil
				}
				released = true
				return in.Close()
			}

			return core.NewSource(func(ctx context.Context) (T, bool, error) {
				var zero T
				tctx, cancel := context.WithTimeout(ctx, d)
				v, ok, err := in.Next(tctx)
				cancel()
				if err != nil {
					// Distinguish our deadline from cancellation of the
					// caller's own context.
					if stderrors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
						if o.reg != nil {
							o.reg.Timeouts.WithLabelValues(o.name).Inc()
						}
						if cerr := release(); cerr != nil {
							return zero, false, stderrors.Join(gserrors.ErrTimeout, cerr)
						}
						return zero, false, gserrors.ErrTimeout
					}
					return zero, false, err
				}
				return v, ok, nil
			}, release), nil
		})
	}
}

// SpaceOut enforces a minimum interval between consecutive elements,
// smoothing out bursts. Elements are fetched eagerly and held until the
// interval allows their release. A non-positive interval is a configuration
// error.
func SpaceOut[T any](s core.Stream[T], interval time.Duration) core.Stream[T] {
	return SpaceOutOp[T](interval)(s)
}

// SpaceOutOp is the pipe form of SpaceOut.
func SpaceOutOp[T any](interval time.Duration) core.Operator[T] {
	return core.Pipable(func(_ context.Context, in *core.Streamer[T]) (core.Source[T], error) {
		if err := validation.PositiveDuration("space out", "interval", int64(interval)); err != nil {
			return nil, err
		}

		limiter := rate.NewLimiter(rate.Every(interval), 1)
		return core.SourceFunc[T](func(ctx context.Context) (T, bool, error) {
			var zero T
			v, ok, err := in.Next(ctx)
			if err != nil || !ok {
				return zero, false, err
			}
			if err := limiter.Wait(ctx); err != nil {
				return zero, false, err
			}
			return v, true, nil
		}), nil
	})
}
