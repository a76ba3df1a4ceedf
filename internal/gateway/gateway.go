package gateway

import (
	"context"
	"sync"

	"github.com/redis/go-redis/v9"

	"dteai/internal/logger"
	"dteai/pkg/errors"
	"dteai/pkg/logging"
	"dteai/pkg/metrics"
)

// HandlerFunc processes one raw channel payload. A returned error is logged
// at the gateway boundary and never stops the listen loop.
type HandlerFunc func(ctx context.Context, payload string) error

// Gateway is the pub/sub surface between this service and the external
// request-issuing backend. One handler per channel; registration happens
// during startup wiring and is read-only once Listen runs.
type Gateway struct {
	client *redis.Client
	logger logger.Logger

	mu       sync.RWMutex
	pubsub   *redis.PubSub
	handlers map[string]HandlerFunc
	closed   bool

	closeOnce sync.Once
	closeErr  error
}

func New(client *redis.Client, log logger.Logger) *Gateway {
	return &Gateway{
		client:   client,
		logger:   log,
		handlers: make(map[string]HandlerFunc),
	}
}

// Connect verifies the bus is reachable and creates the subscription
// context. Safe to call again while connected.
func (g *Gateway) Connect(ctx context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.closed {
		return errors.ErrConnection.WithMessage("gateway already disconnected")
	}
	if g.pubsub != nil {
		return nil
	}

	if err := g.client.Ping(ctx).Err(); err != nil {
		return errors.Wrap(err, errors.ErrConnection)
	}

	g.pubsub = g.client.Subscribe(ctx)
	g.logger.InfowCtx(ctx, "Connected to message bus")
	return nil
}

// Subscribe registers the handler for a channel. Re-subscribing the same
// channel replaces the previous handler.
func (g *Gateway) Subscribe(ctx context.Context, channel string, handler HandlerFunc) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.pubsub == nil {
		return errors.ErrConnection.WithMessage("gateway is not connected")
	}

	if err := g.pubsub.Subscribe(ctx, channel); err != nil {
		return errors.Wrap(err, errors.ErrConnection)
	}

	g.handlers[channel] = handler
	g.logger.InfowCtx(ctx, "Subscribed to channel", "channel", channel)
	return nil
}

// Listen demultiplexes inbound messages to registered handlers until the
// context is cancelled. It is not re-enterable: cancellation closes the
// subscription, and resuming requires a fresh gateway.
func (g *Gateway) Listen(ctx context.Context) error {
	g.mu.RLock()
	pubsub := g.pubsub
	g.mu.RUnlock()

	if pubsub == nil {
		return errors.ErrConnection.WithMessage("gateway is not connected")
	}

	g.logger.InfowCtx(ctx, "Message bus listener started")

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			g.logger.InfowCtx(ctx, "Message bus listener stopped", "reason", "context canceled")
			return g.Disconnect()
		case msg, ok := <-ch:
			if !ok {
				g.logger.InfowCtx(ctx, "Message bus listener stopped", "reason", "subscription closed")
				return nil
			}
			g.dispatch(ctx, msg.Channel, msg.Payload)
		}
	}
}

func (g *Gateway) dispatch(ctx context.Context, channel, payload string) {
	g.mu.RLock()
	handler, ok := g.handlers[channel]
	g.mu.RUnlock()

	msgCtx := logging.WithChannel(ctx, channel)

	if !ok || handler == nil {
		metrics.BusConsumedTotal.WithLabelValues(channel, "unhandled").Inc()
		g.logger.DebugwCtx(msgCtx, "No handler for channel, message dropped")
		return
	}

	err := g.invoke(msgCtx, handler, payload)
	if err != nil {
		metrics.BusConsumedTotal.WithLabelValues(channel, "error").Inc()
		g.logger.ErrorwCtx(msgCtx, "Handler failed, listener continues",
			"error", err,
		)
		return
	}

	metrics.BusConsumedTotal.WithLabelValues(channel, "handled").Inc()
}

func (g *Gateway) invoke(ctx context.Context, handler HandlerFunc, payload string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.RecoverPanic(r)
			g.logger.ErrorwCtx(ctx, "Panic recovered in channel handler",
				"error", err,
			)
		}
	}()
	return handler(ctx, payload)
}

// Publish is fire-and-forget: a publish failure is logged and reported as
// false so it never aborts the caller's in-flight request handling.
func (g *Gateway) Publish(ctx context.Context, channel, message string) bool {
	if err := g.client.Publish(ctx, channel, message).Err(); err != nil {
		metrics.BusPublishedTotal.WithLabelValues(channel, "error").Inc()
		g.logger.ErrorwCtx(ctx, "Failed to publish message",
			"channel", channel,
			"error", err,
		)
		return false
	}

	metrics.BusPublishedTotal.WithLabelValues(channel, "published").Inc()
	g.logger.DebugwCtx(ctx, "Published message", "channel", channel)
	return true
}

// Disconnect closes the subscription. Safe to call multiple times and from
// concurrent teardown paths; the underlying client is owned by the caller.
func (g *Gateway) Disconnect() error {
	g.closeOnce.Do(func() {
		g.mu.Lock()
		defer g.mu.Unlock()

		g.closed = true
		if g.pubsub != nil {
			g.closeErr = g.pubsub.Close()
			g.pubsub = nil
		}
		g.logger.Infow("Disconnected from message bus")
	})
	return g.closeErr
}
