package mirrorkv

import (
	"context"
	"fmt"

	"github.com/mirrorkv/mirrorkv.go/internal/codec"
	"github.com/mirrorkv/mirrorkv.go/pkg/config"
	"github.com/mirrorkv/mirrorkv.go/pkg/connection"
	"github.com/mirrorkv/mirrorkv.go/pkg/kv"
	"github.com/mirrorkv/mirrorkv.go/pkg/logger"
	"github.com/mirrorkv/mirrorkv.go/pkg/pool"
	"github.com/mirrorkv/mirrorkv.go/pkg/shadow"
)

// FromConfigFile loads conf from path and calls FromConfig. Opts apply on
// top of the wiring derived from the file.
func FromConfigFile(ctx context.Context, path string, opts ...Option) (*DualWriter, error) {
	conf, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	return FromConfig(ctx, conf, opts...)
}

// Option adjusts the Config assembled by FromConfig before New runs.
type Option func(*Config)

// WithSink routes shadow failures to sink instead of discarding them.
func WithSink(sink shadow.Sink) Option {
	return func(c *Config) { c.Sink = sink }
}

// WithLogger overrides the default logger.
func WithLogger(l logger.Logger) Option {
	return func(c *Config) { c.Logger = l }
}

// FromConfig dials both cluster endpoints and assembles a DualWriter.
//
// The target connection must come up; a target that cannot be reached is a
// construction error. The origin is best effort, matching its runtime role:
// a failed origin dial leaves its host pool marked down, so the eligibility
// gate suppresses shadow traffic until an operator intervenes, and the
// DualWriter still serves target traffic.
func FromConfig(ctx context.Context, conf *config.File, opts ...Option) (*DualWriter, error) {
	target, err := dialEndpoint(ctx, conf.Target)
	if err != nil {
		return nil, fmt.Errorf("target %s: %w", conf.Target.URL, err)
	}

	registry := pool.NewRegistry(conf.DualWrite.Enabled, conf.DualWrite.Percentage)

	var origin kv.Client
	originConn, err := dialEndpoint(ctx, conf.Origin)
	if err == nil {
		origin = originConn
		registry.MarkUp(conf.Origin.URL)
	} else {
		origin = unreachableClient{}
		registry.MarkDown(conf.Origin.URL)
	}

	c := Config{
		Origin:   origin,
		Target:   target,
		Provider: registry,
	}
	for _, opt := range opts {
		opt(&c)
	}

	if _, down := origin.(unreachableClient); down && c.Logger != nil {
		c.Logger.Warn("origin endpoint unreachable, shadow traffic suppressed",
			"url", conf.Origin.URL)
	}

	c.Executor = shadow.NewExecutor(shadow.ExecutorConfig{
		Workers:   conf.Shadow.Workers,
		QueueSize: conf.Shadow.QueueSize,
		Sink:      c.Sink,
	})
	c.Executor.Start()

	dw, err := New(c)
	if err != nil {
		return nil, err
	}
	dw.ownsExecutor = true
	return dw, nil
}

func dialEndpoint(ctx context.Context, ep config.EndpointConfig) (*kv.RPCClient, error) {
	ws := connection.NewWebSocketConnection(connection.NewConnectionParams{
		BaseURL:     ep.URL,
		Marshaler:   codec.CborMarshaler{},
		Unmarshaler: codec.CborUnmarshaler{},
	})
	if err := ws.Connect(ctx); err != nil {
		return nil, err
	}
	return kv.NewRPCClient(ws, ep.Name), nil
}

// unreachableClient stands in for an origin whose endpoint never came up.
// The gate keeps its pool marked down, so these methods are not expected to
// run; if topology races them into a shadow task anyway, the error is
// absorbed like any other shadow failure.
type unreachableClient struct{}

var errOriginUnreachable = fmt.Errorf("origin endpoint unreachable")

func (unreachableClient) Set(string, string) (*kv.Result[string], error) {
	return nil, errOriginUnreachable
}

func (unreachableClient) SetEX(string, int64, string) (*kv.Result[string], error) {
	return nil, errOriginUnreachable
}

func (unreachableClient) SetNX(string, string) (*kv.Result[int64], error) {
	return nil, errOriginUnreachable
}

func (unreachableClient) Append(string, string) (*kv.Result[int64], error) {
	return nil, errOriginUnreachable
}

func (unreachableClient) Incr(string) (*kv.Result[int64], error) {
	return nil, errOriginUnreachable
}

func (unreachableClient) IncrBy(string, int64) (*kv.Result[int64], error) {
	return nil, errOriginUnreachable
}

func (unreachableClient) Del(string) (*kv.Result[int64], error) {
	return nil, errOriginUnreachable
}

func (unreachableClient) Exists(string) (*kv.Result[bool], error) {
	return nil, errOriginUnreachable
}

func (unreachableClient) Expire(string, int64) (*kv.Result[int64], error) {
	return nil, errOriginUnreachable
}

func (unreachableClient) PExpire(string, int64) (*kv.Result[int64], error) {
	return nil, errOriginUnreachable
}

func (unreachableClient) Persist(string) (*kv.Result[int64], error) {
	return nil, errOriginUnreachable
}

func (unreachableClient) Rename(string, string) (*kv.Result[string], error) {
	return nil, errOriginUnreachable
}

func (unreachableClient) HSet(string, string, string) (*kv.Result[int64], error) {
	return nil, errOriginUnreachable
}

func (unreachableClient) HSetNX(string, string, string) (*kv.Result[int64], error) {
	return nil, errOriginUnreachable
}

func (unreachableClient) HDel(string, ...string) (*kv.Result[int64], error) {
	return nil, errOriginUnreachable
}

func (unreachableClient) HMSet(string, map[string]string) (*kv.Result[string], error) {
	return nil, errOriginUnreachable
}

func (unreachableClient) SAdd(string, ...string) (*kv.Result[int64], error) {
	return nil, errOriginUnreachable
}

func (unreachableClient) SRem(string, ...string) (*kv.Result[int64], error) {
	return nil, errOriginUnreachable
}

func (unreachableClient) SPop(string) (*kv.Result[string], error) {
	return nil, errOriginUnreachable
}

func (unreachableClient) SMove(string, string, string) (*kv.Result[int64], error) {
	return nil, errOriginUnreachable
}

func (unreachableClient) LPush(string, ...string) (*kv.Result[int64], error) {
	return nil, errOriginUnreachable
}

func (unreachableClient) RPush(string, ...string) (*kv.Result[int64], error) {
	return nil, errOriginUnreachable
}

func (unreachableClient) LPop(string) (*kv.Result[string], error) {
	return nil, errOriginUnreachable
}

func (unreachableClient) RPop(string) (*kv.Result[string], error) {
	return nil, errOriginUnreachable
}

func (unreachableClient) ZAdd(string, float64, string) (*kv.Result[int64], error) {
	return nil, errOriginUnreachable
}

func (unreachableClient) ZRem(string, ...string) (*kv.Result[int64], error) {
	return nil, errOriginUnreachable
}

func (unreachableClient) ZIncrBy(string, float64, string) (*kv.Result[float64], error) {
	return nil, errOriginUnreachable
}
