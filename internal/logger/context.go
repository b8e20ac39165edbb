package logger

import (
	"context"
	"time"
)

// contextKey is a private type for context keys to avoid collisions
type contextKey struct{}

// logContextKey is the key for LogContext in context.Context
var logContextKey = contextKey{}

// LogContext holds request-scoped logging context for a single protocol
// instance processing one event (a received PDU, a timer fire, an ibus
// message).
type LogContext struct {
	TraceID   string    // OpenTelemetry trace ID
	SpanID    string    // OpenTelemetry span ID
	Protocol  string    // ospfv2, ospfv3, isis, bgp
	Instance  string    // instance/VRF name
	Interface string    // interface name, if applicable
	Neighbor  string    // neighbor/peer identifier, if applicable
	StartTime time.Time // for duration calculation
}

// WithContext returns a new context with the given LogContext
func WithContext(ctx context.Context, lc *LogContext) context.Context {
	return context.WithValue(ctx, logContextKey, lc)
}

// FromContext retrieves the LogContext from context, or nil if not present
func FromContext(ctx context.Context) *LogContext {
	if ctx == nil {
		return nil
	}
	lc, _ := ctx.Value(logContextKey).(*LogContext)
	return lc
}

// NewLogContext creates a new LogContext for the given protocol instance.
func NewLogContext(protocol, instance string) *LogContext {
	return &LogContext{
		Protocol:  protocol,
		Instance:  instance,
		StartTime: time.Now(),
	}
}

// Clone creates a copy of the LogContext
func (lc *LogContext) Clone() *LogContext {
	if lc == nil {
		return nil
	}
	clone := *lc
	return &clone
}

// WithInterface returns a copy with the interface set
func (lc *LogContext) WithInterface(iface string) *LogContext {
	clone := lc.Clone()
	if clone != nil {
		clone.Interface = iface
	}
	return clone
}

// WithNeighbor returns a copy with the neighbor set
func (lc *LogContext) WithNeighbor(neighbor string) *LogContext {
	clone := lc.Clone()
	if clone != nil {
		clone.Neighbor = neighbor
	}
	return clone
}

// WithTrace returns a copy with trace info set
func (lc *LogContext) WithTrace(traceID, spanID string) *LogContext {
	clone := lc.Clone()
	if clone != nil {
		clone.TraceID = traceID
		clone.SpanID = spanID
	}
	return clone
}

// DurationMs returns the duration since StartTime in milliseconds
func (lc *LogContext) DurationMs() float64 {
	if lc == nil || lc.StartTime.IsZero() {
		return 0
	}
	return float64(time.Since(lc.StartTime).Microseconds()) / 1000.0
}
